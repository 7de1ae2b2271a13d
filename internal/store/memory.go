package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"capstone-blog/internal/model"
)

// MemoryStore keeps posts in a slice in insertion order.
type MemoryStore struct {
	mu     sync.RWMutex
	posts  []model.Post
	nextID int64
	opts   options
}

func NewMemoryStore(opts ...Option) *MemoryStore {
	return &MemoryStore{
		nextID: 1,
		opts:   newOptions(opts),
	}
}

// List returns a copy of all posts in insertion order.
func (s *MemoryStore) List(_ context.Context) ([]model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := make([]model.Post, len(s.posts))
	copy(posts, s.posts)
	return posts, nil
}

// Create appends a post under the next identifier. Input is stored as given.
func (s *MemoryStore) Create(_ context.Context, title, content string) (model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.opts.now()
	post := model.Post{
		ID:        s.nextID,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.nextID++
	s.posts = append(s.posts, post)
	return post, nil
}

func (s *MemoryStore) FindByID(_ context.Context, id int64) (model.Post, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return model.Post{}, false, nil
	}
	return s.posts[i], true, nil
}

// Update replaces title and content with their trimmed values and bumps UpdatedAt.
func (s *MemoryStore) Update(_ context.Context, id int64, title, content string) (model.Post, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return model.Post{}, false, nil
	}
	p := &s.posts[i]
	p.Title = strings.TrimSpace(title)
	p.Content = strings.TrimSpace(content)
	p.UpdatedAt = touch(p.CreatedAt, s.opts.now())
	return *p, true, nil
}

func (s *MemoryStore) Delete(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	s.posts = append(s.posts[:i], s.posts[i+1:]...)
	return true, nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// touch keeps UpdatedAt from ever falling behind CreatedAt.
func touch(created, now time.Time) time.Time {
	if now.Before(created) {
		return created
	}
	return now
}

// caller holds mu
func (s *MemoryStore) indexOf(id int64) int {
	for i := range s.posts {
		if s.posts[i].ID == id {
			return i
		}
	}
	return -1
}
