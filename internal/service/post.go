package service

import (
	"context"
	"errors"

	"github.com/inkwell/inkwell/internal/model"
	"github.com/inkwell/inkwell/internal/repository"
)

// Service errors.
var (
	ErrTitleRequired = errors.New("title is required")
	ErrPostNotFound  = errors.New("post not found")
	ErrForbidden     = errors.New("forbidden")
)

// PostStore is the post persistence needed by PostService.
// Satisfied by *repository.Repository.
type PostStore interface {
	CreatePost(ctx context.Context, title, body string, authorID int64) (*model.Post, error)
	GetPost(ctx context.Context, id int64) (*model.Post, error)
	ListPosts(ctx context.Context) ([]*model.Post, error)
	UpdatePost(ctx context.Context, id int64, title, body string) error
	DeletePost(ctx context.Context, id int64) error
}

// PostService handles post business logic, including the ownership checks
// on mutating operations.
type PostService struct {
	posts PostStore
}

// NewPostService creates a new PostService.
func NewPostService(posts PostStore) *PostService {
	return &PostService{posts: posts}
}

// Fetch loads a post joined with its author's username.
//
// A missing post is always reported as ErrPostNotFound, before any
// ownership check. With checkAuthor set, the viewer must be the post's
// author or Fetch fails with ErrForbidden. checkAuthor=false serves the
// public single-post view, where the viewer does not matter.
func (s *PostService) Fetch(ctx context.Context, id int64, checkAuthor bool, viewer *model.User) (*model.Post, error) {
	post, err := s.posts.GetPost(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if checkAuthor && (viewer == nil || viewer.ID != post.AuthorID) {
		return nil, ErrForbidden
	}

	return post, nil
}

// List returns all posts newest-first.
func (s *PostService) List(ctx context.Context) ([]*model.Post, error) {
	return s.posts.ListPosts(ctx)
}

// Create validates and inserts a new post owned by the author.
func (s *PostService) Create(ctx context.Context, title, body string, author *model.User) (*model.Post, error) {
	if title == "" {
		return nil, ErrTitleRequired
	}
	return s.posts.CreatePost(ctx, title, body, author.ID)
}

// Update overwrites a post's title and body, leaving author and creation
// timestamp untouched. The ownership check runs first, so NotFound and
// Forbidden take precedence over title validation.
func (s *PostService) Update(ctx context.Context, id int64, title, body string, viewer *model.User) error {
	if _, err := s.Fetch(ctx, id, true, viewer); err != nil {
		return err
	}
	if title == "" {
		return ErrTitleRequired
	}

	err := s.posts.UpdatePost(ctx, id, title, body)
	if errors.Is(err, repository.ErrPostNotFound) {
		return ErrPostNotFound
	}
	return err
}

// Delete removes a post after the ownership check passes.
func (s *PostService) Delete(ctx context.Context, id int64, viewer *model.User) error {
	if _, err := s.Fetch(ctx, id, true, viewer); err != nil {
		return err
	}

	err := s.posts.DeletePost(ctx, id)
	if errors.Is(err, repository.ErrPostNotFound) {
		return ErrPostNotFound
	}
	return err
}
