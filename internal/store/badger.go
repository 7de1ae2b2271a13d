package store

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"capstone-blog/internal/model"

	"github.com/dgraph-io/badger/v4"
)

var postPrefix = []byte("post:")

// BadgerStore keeps posts in an in-memory Badger instance.
// Keys are the big-endian id under postPrefix, so key order is insertion order.
type BadgerStore struct {
	mu     sync.Mutex
	db     *badger.DB
	nextID int64
	opts   options
}

// NewBadgerStore opens Badger in memory mode. Nothing is written to disk.
func NewBadgerStore(opts ...Option) (*BadgerStore, error) {
	bopts := badger.DefaultOptions("").WithInMemory(true)
	bopts.Logger = nil // Silence default logger

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}
	return &BadgerStore{db: db, nextID: 1, opts: newOptions(opts)}, nil
}

func (s *BadgerStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func postKey(id int64) []byte {
	key := make([]byte, len(postPrefix)+8)
	copy(key, postPrefix)
	binary.BigEndian.PutUint64(key[len(postPrefix):], uint64(id))
	return key
}

// List iterates the post prefix, which yields insertion order.
func (s *BadgerStore) List(_ context.Context) ([]model.Post, error) {
	posts := []model.Post{}
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = postPrefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var p model.Post
				if err := json.Unmarshal(val, &p); err != nil {
					return err
				}
				posts = append(posts, p)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (s *BadgerStore) Create(_ context.Context, title, content string) (model.Post, error) {
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
	if err := s.db.Update(func(txn *badger.Txn) error {
		return put(txn, post)
	}); err != nil {
		return model.Post{}, fmt.Errorf("create post: %w", err)
	}
	// advance only after commit
	s.nextID++
	return post, nil
}

func (s *BadgerStore) FindByID(_ context.Context, id int64) (model.Post, bool, error) {
	var post model.Post
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		post, err = get(txn, id)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return model.Post{}, false, nil
	}
	if err != nil {
		return model.Post{}, false, fmt.Errorf("find post %d: %w", id, err)
	}
	return post, true, nil
}

func (s *BadgerStore) Update(_ context.Context, id int64, title, content string) (model.Post, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var post model.Post
	err := s.db.Update(func(txn *badger.Txn) error {
		var err error
		post, err = get(txn, id)
		if err != nil {
			return err
		}
		post.Title = strings.TrimSpace(title)
		post.Content = strings.TrimSpace(content)
		post.UpdatedAt = touch(post.CreatedAt, s.opts.now())
		return put(txn, post)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return model.Post{}, false, nil
	}
	if err != nil {
		return model.Post{}, false, fmt.Errorf("update post %d: %w", id, err)
	}
	return post, true, nil
}

func (s *BadgerStore) Delete(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(postKey(id)); err != nil {
			return err
		}
		return txn.Delete(postKey(id))
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("delete post %d: %w", id, err)
	}
	return true, nil
}

func get(txn *badger.Txn, id int64) (model.Post, error) {
	var post model.Post
	item, err := txn.Get(postKey(id))
	if err != nil {
		return post, err
	}
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &post)
	})
	return post, err
}

func put(txn *badger.Txn, post model.Post) error {
	data, err := json.Marshal(post)
	if err != nil {
		return err
	}
	return txn.SetEntry(badger.NewEntry(postKey(post.ID), data))
}
