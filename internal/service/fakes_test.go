package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"

	"bloglist/internal/domain"
	"bloglist/internal/repository"
	"bloglist/internal/storage"
)

type memoryBlogs struct {
	mu    sync.Mutex
	order []string
	byID  map[string]domain.Blog
	users *memoryUsers
}

func newMemoryBlogs(users *memoryUsers) *memoryBlogs {
	return &memoryBlogs{byID: map[string]domain.Blog{}, users: users}
}

func (m *memoryBlogs) Init(ctx context.Context) error { return nil }

func (m *memoryBlogs) Create(ctx context.Context, blog *domain.Blog) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if blog.ID == "" {
		blog.ID = uuid.NewString()
	}
	m.order = append(m.order, blog.ID)
	m.byID[blog.ID] = *blog
	return blog.ID, nil
}

func (m *memoryBlogs) populate(blog domain.Blog) domain.Blog {
	if m.users == nil || blog.UserID == "" {
		return blog
	}
	if u, ok := m.users.get(blog.UserID); ok {
		blog.Owner = &domain.Owner{ID: u.ID, Username: u.Username, Name: u.Name}
	}
	return blog
}

func (m *memoryBlogs) Get(ctx context.Context, id string) (*domain.Blog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	blog, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("blog: %w", repository.ErrNotFound)
	}
	blog = m.populate(blog)
	return &blog, nil
}

func (m *memoryBlogs) List(ctx context.Context) ([]domain.Blog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Blog{}
	for _, id := range m.order {
		if blog, ok := m.byID[id]; ok {
			out = append(out, m.populate(blog))
		}
	}
	return out, nil
}

func (m *memoryBlogs) ListByIDs(ctx context.Context, ids []string) ([]domain.Blog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Blog{}
	for _, id := range ids {
		if blog, ok := m.byID[id]; ok {
			out = append(out, m.populate(blog))
		}
	}
	return out, nil
}

func (m *memoryBlogs) Update(ctx context.Context, id string, patch domain.BlogPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	blog, ok := m.byID[id]
	if !ok {
		return fmt.Errorf("blog: %w", repository.ErrNotFound)
	}
	if patch.Title != nil {
		blog.Title = *patch.Title
	}
	if patch.Author != nil {
		blog.Author = *patch.Author
	}
	if patch.URL != nil {
		blog.URL = *patch.URL
	}
	if patch.Likes != nil {
		blog.Likes = *patch.Likes
	}
	m.byID[id] = blog
	return nil
}

func (m *memoryBlogs) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return fmt.Errorf("blog: %w", repository.ErrNotFound)
	}
	delete(m.byID, id)
	return nil
}

func (m *memoryBlogs) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID), nil
}

type memoryUsers struct {
	mu        sync.Mutex
	byID      map[string]*domain.User
	order     []string
	appendErr error
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byID: map[string]*domain.User{}}
}

func (m *memoryUsers) get(id string) (domain.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return domain.User{}, false
	}
	return *u, true
}

func (m *memoryUsers) Init(ctx context.Context) error { return nil }

func (m *memoryUsers) Create(ctx context.Context, user *domain.User) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Username == user.Username {
			return "", fmt.Errorf("user %q: %w", user.Username, repository.ErrAlreadyExists)
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	stored := *user
	stored.BlogIDs = []string{}
	m.byID[user.ID] = &stored
	m.order = append(m.order, user.ID)
	return user.ID, nil
}

func (m *memoryUsers) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Username == username {
			cp := *u
			cp.BlogIDs = append([]string{}, u.BlogIDs...)
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("user: %w", repository.ErrNotFound)
}

func (m *memoryUsers) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("user: %w", repository.ErrNotFound)
	}
	cp := *u
	cp.BlogIDs = append([]string{}, u.BlogIDs...)
	return &cp, nil
}

func (m *memoryUsers) List(ctx context.Context) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.User{}
	for _, id := range m.order {
		cp := *m.byID[id]
		cp.BlogIDs = append([]string{}, m.byID[id].BlogIDs...)
		out = append(out, cp)
	}
	return out, nil
}

func (m *memoryUsers) AppendBlog(ctx context.Context, userID, blogID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.appendErr != nil {
		return m.appendErr
	}
	u, ok := m.byID[userID]
	if !ok {
		return fmt.Errorf("user: %w", repository.ErrNotFound)
	}
	u.BlogIDs = append(u.BlogIDs, blogID)
	return nil
}

func (m *memoryUsers) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID), nil
}

type memoryStorage struct {
	objects map[string][]byte
	opts    []storage.UploadOptions
	failErr error
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{objects: map[string][]byte{}}
}

func (m *memoryStorage) Upload(ctx context.Context, body io.Reader, opts storage.UploadOptions) (string, error) {
	if m.failErr != nil {
		return "", m.failErr
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return "", err
	}
	m.objects[opts.Key] = buf.Bytes()
	m.opts = append(m.opts, opts)
	return "s3://" + opts.Bucket + "/" + opts.Key, nil
}

func (m *memoryStorage) ListObjects(ctx context.Context, bucket, prefix string) ([]storage.ObjectInfo, error) {
	out := []storage.ObjectInfo{}
	for key, body := range m.objects {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			out = append(out, storage.ObjectInfo{Key: key, Size: int64(len(body))})
		}
	}
	return out, nil
}

var errStoreDown = errors.New("store unavailable")
