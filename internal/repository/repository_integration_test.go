//go:build integration

package repository_test

import (
	"errors"
	"testing"

	"github.com/inkwell/inkwell/internal/repository"
	"github.com/inkwell/inkwell/internal/testutil"
)

func TestIntegrationUserRepository_CreateUser(t *testing.T) {
	ctx, repo := testutil.NewTestRepository(t)

	username := testutil.UniqueUsername("create")
	user, err := repo.CreateUser(ctx, username, "hash")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if user.ID == 0 {
		t.Error("expected assigned id")
	}
	if user.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}

	byID, err := repo.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if byID.Username != username {
		t.Errorf("username = %q, want %q", byID.Username, username)
	}

	byName, err := repo.GetUserByUsername(ctx, username)
	if err != nil {
		t.Fatalf("GetUserByUsername failed: %v", err)
	}
	if byName.ID != user.ID {
		t.Errorf("id = %d, want %d", byName.ID, user.ID)
	}
}

func TestIntegrationUserRepository_DuplicateUsername(t *testing.T) {
	ctx, repo := testutil.NewTestRepository(t)

	username := testutil.UniqueUsername("dup")
	if _, err := repo.CreateUser(ctx, username, "hash1"); err != nil {
		t.Fatalf("CreateUser (first) failed: %v", err)
	}

	_, err := repo.CreateUser(ctx, username, "hash2")
	if !errors.Is(err, repository.ErrUsernameTaken) {
		t.Errorf("expected ErrUsernameTaken, got: %v", err)
	}
}

func TestIntegrationUserRepository_NotFound(t *testing.T) {
	ctx, repo := testutil.NewTestRepository(t)

	if _, err := repo.GetUserByID(ctx, 999999); !errors.Is(err, repository.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got: %v", err)
	}
	if _, err := repo.GetUserByUsername(ctx, "nobody-here"); !errors.Is(err, repository.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got: %v", err)
	}
}

func TestIntegrationPostRepository_CRUD(t *testing.T) {
	ctx, repo := testutil.NewTestRepository(t)

	author, err := repo.CreateUser(ctx, testutil.UniqueUsername("author"), "hash")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	post, err := repo.CreatePost(ctx, "title", "body", author.ID)
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	if post.ID == 0 || post.Created.IsZero() {
		t.Errorf("post not fully populated: %+v", post)
	}

	fetched, err := repo.GetPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if fetched.Author != author.Username {
		t.Errorf("joined author = %q, want %q", fetched.Author, author.Username)
	}
	if fetched.AuthorID != author.ID {
		t.Errorf("author_id = %d, want %d", fetched.AuthorID, author.ID)
	}

	if err := repo.UpdatePost(ctx, post.ID, "new title", "new body"); err != nil {
		t.Fatalf("UpdatePost failed: %v", err)
	}

	updated, err := repo.GetPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetPost after update failed: %v", err)
	}
	if updated.Title != "new title" || updated.Body != "new body" {
		t.Errorf("post not updated: %+v", updated)
	}
	if !updated.Created.Equal(post.Created) {
		t.Errorf("created changed on update: %s -> %s", post.Created, updated.Created)
	}
	if updated.AuthorID != author.ID {
		t.Errorf("author_id changed on update: %d", updated.AuthorID)
	}

	if err := repo.DeletePost(ctx, post.ID); err != nil {
		t.Fatalf("DeletePost failed: %v", err)
	}
	if _, err := repo.GetPost(ctx, post.ID); !errors.Is(err, repository.ErrPostNotFound) {
		t.Errorf("expected ErrPostNotFound after delete, got: %v", err)
	}
}

func TestIntegrationPostRepository_NotFound(t *testing.T) {
	ctx, repo := testutil.NewTestRepository(t)

	if _, err := repo.GetPost(ctx, 999999); !errors.Is(err, repository.ErrPostNotFound) {
		t.Errorf("GetPost: expected ErrPostNotFound, got: %v", err)
	}
	if err := repo.UpdatePost(ctx, 999999, "t", "b"); !errors.Is(err, repository.ErrPostNotFound) {
		t.Errorf("UpdatePost: expected ErrPostNotFound, got: %v", err)
	}
	if err := repo.DeletePost(ctx, 999999); !errors.Is(err, repository.ErrPostNotFound) {
		t.Errorf("DeletePost: expected ErrPostNotFound, got: %v", err)
	}
}

func TestIntegrationPostRepository_ListNewestFirst(t *testing.T) {
	ctx, repo := testutil.NewTestRepository(t)

	author, err := repo.CreateUser(ctx, testutil.UniqueUsername("lister"), "hash")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	first, err := repo.CreatePost(ctx, "first", "", author.ID)
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	second, err := repo.CreatePost(ctx, "second", "", author.ID)
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	posts, err := repo.ListPosts(ctx)
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("len(posts) = %d, want 2", len(posts))
	}
	if posts[0].ID != second.ID || posts[1].ID != first.ID {
		t.Errorf("order = [%d %d], want [%d %d]", posts[0].ID, posts[1].ID, second.ID, first.ID)
	}
}
