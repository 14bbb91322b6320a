package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/inkwell/inkwell/internal/model"
	"github.com/inkwell/inkwell/internal/repository"
)

// MemStore is an in-memory stand-in for *repository.Repository. It returns
// the same sentinel errors, so services and middleware behave exactly as
// they would against the real store.
type MemStore struct {
	mu       sync.Mutex
	users    map[int64]*model.User
	posts    map[int64]*model.Post
	nextUser int64
	nextPost int64
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{
		users: make(map[int64]*model.User),
		posts: make(map[int64]*model.Post),
	}
}

// CreateUser mirrors Repository.CreateUser, including the unique-username
// conflict translation.
func (m *MemStore) CreateUser(ctx context.Context, username, passwordHash string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == username {
			return nil, repository.ErrUsernameTaken
		}
	}

	m.nextUser++
	user := &model.User{
		ID:           m.nextUser,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	m.users[user.ID] = user

	copied := *user
	return &copied, nil
}

// GetUserByID mirrors Repository.GetUserByID.
func (m *MemStore) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

// GetUserByUsername mirrors Repository.GetUserByUsername.
func (m *MemStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

// CreatePost mirrors Repository.CreatePost.
func (m *MemStore) CreatePost(ctx context.Context, title, body string, authorID int64) (*model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextPost++
	post := &model.Post{
		ID:       m.nextPost,
		Title:    title,
		Body:     body,
		Created:  time.Now(),
		AuthorID: authorID,
	}
	m.posts[post.ID] = post

	return m.joined(post), nil
}

// GetPost mirrors Repository.GetPost, including the author-username join.
func (m *MemStore) GetPost(ctx context.Context, id int64) (*model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	post, ok := m.posts[id]
	if !ok {
		return nil, repository.ErrPostNotFound
	}
	return m.joined(post), nil
}

// ListPosts mirrors Repository.ListPosts ordering: newest first, ties
// broken by descending id.
func (m *MemStore) ListPosts(ctx context.Context) ([]*model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	posts := make([]*model.Post, 0, len(m.posts))
	for _, p := range m.posts {
		posts = append(posts, m.joined(p))
	}
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].Created.Equal(posts[j].Created) {
			return posts[i].Created.After(posts[j].Created)
		}
		return posts[i].ID > posts[j].ID
	})
	return posts, nil
}

// UpdatePost mirrors Repository.UpdatePost: only title and body change.
func (m *MemStore) UpdatePost(ctx context.Context, id int64, title, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	post, ok := m.posts[id]
	if !ok {
		return repository.ErrPostNotFound
	}
	post.Title = title
	post.Body = body
	return nil
}

// DeletePost mirrors Repository.DeletePost.
func (m *MemStore) DeletePost(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.posts[id]; !ok {
		return repository.ErrPostNotFound
	}
	delete(m.posts, id)
	return nil
}

// joined copies a post and fills in the author's username. Callers must
// hold m.mu.
func (m *MemStore) joined(post *model.Post) *model.Post {
	copied := *post
	if author, ok := m.users[post.AuthorID]; ok {
		copied.Author = author.Username
	}
	return &copied
}
