package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/inkwell/inkwell/internal/model"
)

// ErrPostNotFound is returned when no post exists with the requested id.
var ErrPostNotFound = errors.New("post not found")

// CreatePost inserts a new post and returns it with its assigned id and
// creation timestamp. The author id is fixed at creation and never changes.
func (r *Repository) CreatePost(ctx context.Context, title, body string, authorID int64) (*model.Post, error) {
	query := `
		INSERT INTO posts (title, body, author_id)
		VALUES ($1, $2, $3)
		RETURNING id, title, body, created, author_id
	`

	var post model.Post
	err := r.pool.QueryRow(ctx, query, title, body, authorID).Scan(
		&post.ID,
		&post.Title,
		&post.Body,
		&post.Created,
		&post.AuthorID,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return &post, nil
}

// GetPost retrieves a post by id, joined with its owning user so the
// author's username is available for display.
func (r *Repository) GetPost(ctx context.Context, id int64) (*model.Post, error) {
	query := `
		SELECT p.id, p.title, p.body, p.created, p.author_id, u.username
		FROM posts p
		JOIN users u ON p.author_id = u.id
		WHERE p.id = $1
	`

	post, err := scanPost(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return post, nil
}

// ListPosts retrieves all posts newest-first, each joined with its author.
func (r *Repository) ListPosts(ctx context.Context) ([]*model.Post, error) {
	query := `
		SELECT p.id, p.title, p.body, p.created, p.author_id, u.username
		FROM posts p
		JOIN users u ON p.author_id = u.id
		ORDER BY p.created DESC, p.id DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var posts []*model.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}

	return posts, nil
}

// UpdatePost overwrites a post's title and body. The author id and
// creation timestamp are deliberately left untouched.
func (r *Repository) UpdatePost(ctx context.Context, id int64, title, body string) error {
	query := `
		UPDATE posts
		SET title = $2, body = $3
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, id, title, body)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrPostNotFound
	}

	return nil
}

// DeletePost removes a post row.
func (r *Repository) DeletePost(ctx context.Context, id int64) error {
	query := `DELETE FROM posts WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrPostNotFound
	}

	return nil
}

// scanPost scans a joined post/user row into a Post model.
func scanPost(row pgx.Row) (*model.Post, error) {
	var post model.Post
	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Body,
		&post.Created,
		&post.AuthorID,
		&post.Author,
	)
	return &post, err
}
