package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dpetrovv/blog-api/internal/db"
	"github.com/dpetrovv/blog-api/internal/models"
)

// fakeStore is an in-memory stand-in for db.Store so handler tests run
// without a database.
type fakeStore struct {
	users map[string]models.User
	posts map[string]models.BlogPost

	failWith error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users: make(map[string]models.User),
		posts: make(map[string]models.BlogPost),
	}
}

func (f *fakeStore) CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	if _, exists := f.users[username]; exists {
		return nil, db.ErrDuplicateUser
	}
	user := models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	f.users[username] = user
	return &user, nil
}

func (f *fakeStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	user, exists := f.users[username]
	if !exists {
		return nil, nil
	}
	return &user, nil
}

func (f *fakeStore) CreatePost(ctx context.Context, title, content, author string) (*models.BlogPost, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	post := models.BlogPost{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		Author:    author,
		CreatedAt: time.Now(),
	}
	f.posts[post.ID] = post
	return &post, nil
}

func (f *fakeStore) ListPosts(ctx context.Context) ([]models.BlogPost, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	posts := make([]models.BlogPost, 0, len(f.posts))
	for _, post := range f.posts {
		posts = append(posts, post)
	}
	return posts, nil
}

func (f *fakeStore) GetPost(ctx context.Context, id string) (*models.BlogPost, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	post, exists := f.posts[id]
	if !exists {
		return nil, db.ErrNotFound
	}
	return &post, nil
}

func (f *fakeStore) UpdatePost(ctx context.Context, id, title, content string) (*models.BlogPost, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	post, exists := f.posts[id]
	if !exists {
		return nil, db.ErrNotFound
	}
	post.Title = title
	post.Content = content
	f.posts[id] = post
	return &post, nil
}

func (f *fakeStore) DeletePost(ctx context.Context, id string) error {
	if f.failWith != nil {
		return f.failWith
	}
	if _, exists := f.posts[id]; !exists {
		return db.ErrNotFound
	}
	delete(f.posts, id)
	return nil
}
