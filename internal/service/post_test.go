package service

import (
	"context"
	"errors"
	"testing"

	"github.com/inkwell/inkwell/internal/model"
	"github.com/inkwell/inkwell/internal/testutil"
)

// newBlogFixture returns a post service with two registered users and one
// post owned by the first.
func newBlogFixture(t *testing.T) (context.Context, *PostService, *model.User, *model.User, *model.Post) {
	t.Helper()
	ctx := context.Background()
	store := testutil.NewMemStore()

	alice, err := store.CreateUser(ctx, "alice", "hash-a")
	if err != nil {
		t.Fatalf("create alice: %v", err)
	}
	bob, err := store.CreateUser(ctx, "bob", "hash-b")
	if err != nil {
		t.Fatalf("create bob: %v", err)
	}

	svc := NewPostService(store)
	post, err := svc.Create(ctx, "first", "hello", alice)
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	return ctx, svc, alice, bob, post
}

func TestPostService_Create_TitleRequired(t *testing.T) {
	ctx, svc, alice, _, _ := newBlogFixture(t)

	_, err := svc.Create(ctx, "", "body", alice)
	if !errors.Is(err, ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
	if err.Error() != "title is required" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestPostService_Create_SetsAuthor(t *testing.T) {
	ctx, svc, alice, _, post := newBlogFixture(t)

	if post.AuthorID != alice.ID {
		t.Errorf("author_id = %d, want %d", post.AuthorID, alice.ID)
	}
	if post.Created.IsZero() {
		t.Error("created timestamp should be set")
	}

	fetched, err := svc.Fetch(ctx, post.ID, false, nil)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if fetched.Author != "alice" {
		t.Errorf("joined author = %q, want alice", fetched.Author)
	}
}

func TestPostService_Fetch_OwnershipIsolation(t *testing.T) {
	ctx, svc, alice, bob, post := newBlogFixture(t)

	// The owner passes the author check.
	if _, err := svc.Fetch(ctx, post.ID, true, alice); err != nil {
		t.Errorf("owner fetch failed: %v", err)
	}

	// Any other identity is forbidden.
	if _, err := svc.Fetch(ctx, post.ID, true, bob); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden for non-owner, got %v", err)
	}

	// Without the check, anyone may read.
	if _, err := svc.Fetch(ctx, post.ID, false, bob); err != nil {
		t.Errorf("public fetch failed: %v", err)
	}
	if _, err := svc.Fetch(ctx, post.ID, false, nil); err != nil {
		t.Errorf("anonymous public fetch failed: %v", err)
	}
}

func TestPostService_Fetch_NotFoundBeforeOwnership(t *testing.T) {
	ctx, svc, _, bob, _ := newBlogFixture(t)

	// A missing post is NotFound even for a viewer who could never own
	// it; the ownership check is never reached.
	_, err := svc.Fetch(ctx, 9999, true, bob)
	if !errors.Is(err, ErrPostNotFound) {
		t.Errorf("expected ErrPostNotFound, got %v", err)
	}

	_, err = svc.Fetch(ctx, 9999, true, nil)
	if !errors.Is(err, ErrPostNotFound) {
		t.Errorf("anonymous viewer: expected ErrPostNotFound, got %v", err)
	}
}

func TestPostService_Update(t *testing.T) {
	ctx, svc, alice, bob, post := newBlogFixture(t)

	if err := svc.Update(ctx, post.ID, "second", "edited", alice); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	updated, err := svc.Fetch(ctx, post.ID, false, nil)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if updated.Title != "second" || updated.Body != "edited" {
		t.Errorf("post not updated: %+v", updated)
	}
	// Author and creation timestamp are untouched by updates.
	if updated.AuthorID != alice.ID {
		t.Errorf("author_id changed to %d", updated.AuthorID)
	}
	if !updated.Created.Equal(post.Created) {
		t.Errorf("created changed: %s -> %s", post.Created, updated.Created)
	}

	// Non-owner cannot update, and title validation never runs for them.
	if err := svc.Update(ctx, post.ID, "", "", bob); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}

	// Owner with an empty title gets the validation error.
	if err := svc.Update(ctx, post.ID, "", "body", alice); !errors.Is(err, ErrTitleRequired) {
		t.Errorf("expected ErrTitleRequired, got %v", err)
	}

	if err := svc.Update(ctx, 9999, "t", "b", alice); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("expected ErrPostNotFound, got %v", err)
	}
}

func TestPostService_Delete(t *testing.T) {
	ctx, svc, alice, bob, post := newBlogFixture(t)

	// NotFound before any ownership check.
	if err := svc.Delete(ctx, 9999, bob); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("expected ErrPostNotFound, got %v", err)
	}

	// Non-owner is forbidden.
	if err := svc.Delete(ctx, post.ID, bob); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}

	// Owner succeeds, after which the post is gone.
	if err := svc.Delete(ctx, post.ID, alice); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := svc.Fetch(ctx, post.ID, false, nil); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("expected ErrPostNotFound after delete, got %v", err)
	}
}

func TestPostService_List_NewestFirst(t *testing.T) {
	ctx, svc, alice, _, _ := newBlogFixture(t)

	if _, err := svc.Create(ctx, "later", "", alice); err != nil {
		t.Fatalf("create: %v", err)
	}

	posts, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("len(posts) = %d, want 2", len(posts))
	}
	if posts[0].Title != "later" {
		t.Errorf("expected newest post first, got %q", posts[0].Title)
	}
	if posts[0].Created.Before(posts[1].Created) {
		t.Error("posts not in reverse chronological order")
	}
}
