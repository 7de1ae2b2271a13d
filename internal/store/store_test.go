package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepClock returns a clock that advances one second per call.
func stepClock() func() time.Time {
	var mu sync.Mutex
	t := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

// forEachBackend runs fn against a fresh instance of every store backend.
func forEachBackend(t *testing.T, fn func(t *testing.T, s Store)) {
	for _, backend := range []string{BackendMemory, BackendBadger} {
		t.Run(backend, func(t *testing.T) {
			s, err := Open(backend, WithClock(stepClock()))
			require.NoError(t, err)
			defer s.Close()
			fn(t, s)
		})
	}
}

func TestStore_Create_AssignsIncreasingIDs(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		first, err := s.Create(ctx, "one", "1")
		require.NoError(t, err)
		second, err := s.Create(ctx, "two", "2")
		require.NoError(t, err)

		assert.Equal(t, int64(1), first.ID)
		assert.Equal(t, int64(2), second.ID)

		// Deleting must not free an id for reuse
		removed, err := s.Delete(ctx, second.ID)
		require.NoError(t, err)
		require.True(t, removed)

		third, err := s.Create(ctx, "three", "3")
		require.NoError(t, err)
		assert.Equal(t, int64(3), third.ID)
	})
}

func TestStore_Create_SetsTimestamps(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		post, err := s.Create(context.Background(), "Hello", "World")
		require.NoError(t, err)

		assert.False(t, post.CreatedAt.IsZero())
		assert.True(t, post.CreatedAt.Equal(post.UpdatedAt))
	})
}

func TestStore_FindByID(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		created, err := s.Create(ctx, "Hello", "World")
		require.NoError(t, err)

		found, ok, err := s.FindByID(ctx, created.ID)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "Hello", found.Title)
		assert.Equal(t, "World", found.Content)
		assert.True(t, created.CreatedAt.Equal(found.CreatedAt))

		_, ok, err = s.FindByID(ctx, 999)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestStore_Update(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		created, err := s.Create(ctx, "Old", "Original")
		require.NoError(t, err)

		updated, ok, err := s.Update(ctx, created.ID, "  New ", " Updated  ")
		require.NoError(t, err)
		require.True(t, ok)

		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "New", updated.Title)
		assert.Equal(t, "Updated", updated.Content)
		assert.True(t, created.CreatedAt.Equal(updated.CreatedAt), "CreatedAt must not change")
		assert.True(t, updated.UpdatedAt.After(created.UpdatedAt), "UpdatedAt must advance")

		stored, ok, err := s.FindByID(ctx, created.ID)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "New", stored.Title)
		assert.True(t, updated.UpdatedAt.Equal(stored.UpdatedAt))
	})
}

func TestStore_Update_NotFound(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		_, ok, err := s.Update(ctx, 42, "title", "content")
		require.NoError(t, err)
		assert.False(t, ok)

		posts, err := s.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, posts, "Update must never create a post")
	})
}

func TestStore_Delete(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		removed, err := s.Delete(ctx, 999)
		require.NoError(t, err)
		assert.False(t, removed)

		post, err := s.Create(ctx, "Hello", "World")
		require.NoError(t, err)

		removed, err = s.Delete(ctx, post.ID)
		require.NoError(t, err)
		assert.True(t, removed)

		_, ok, err := s.FindByID(ctx, post.ID)
		require.NoError(t, err)
		assert.False(t, ok)

		removed, err = s.Delete(ctx, post.ID)
		require.NoError(t, err)
		assert.False(t, removed, "Second delete is a no-op")
	})
}

func TestStore_List_InsertionOrder(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		for _, title := range []string{"a", "b", "c"} {
			_, err := s.Create(ctx, title, "body")
			require.NoError(t, err)
		}
		// Mutating a post must not move it
		_, _, err := s.Update(ctx, 1, "a2", "body")
		require.NoError(t, err)

		posts, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, posts, 3)
		assert.Equal(t, []int64{1, 2, 3}, []int64{posts[0].ID, posts[1].ID, posts[2].ID})
		assert.Equal(t, "a2", posts[0].Title)
	})
}

func TestStore_ConcurrentCreate_UniqueIDs(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		const n = 50
		ctx := context.Background()

		var wg sync.WaitGroup
		ids := make(chan int64, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				p, err := s.Create(ctx, "t", "c")
				if assert.NoError(t, err) {
					ids <- p.ID
				}
			}()
		}
		wg.Wait()
		close(ids)

		seen := make(map[int64]bool)
		for id := range ids {
			assert.False(t, seen[id], "duplicate id %d", id)
			seen[id] = true
		}
		assert.Len(t, seen, n)
	})
}

func TestMemoryStore_List_ReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	_, err := s.Create(ctx, "Hello", "World")
	require.NoError(t, err)

	posts, _ := s.List(ctx)
	posts[0].Title = "mutated"

	stored, _, _ := s.FindByID(ctx, 1)
	assert.Equal(t, "Hello", stored.Title)
}

func TestStore_Update_ClockBehindCreatedAt(t *testing.T) {
	calls := 0
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	// second call goes back in time
	clock := func() time.Time {
		calls++
		if calls == 1 {
			return base
		}
		return base.Add(-time.Hour)
	}
	s := NewMemoryStore(WithClock(clock))
	ctx := context.Background()

	_, err := s.Create(ctx, "t", "c")
	require.NoError(t, err)
	updated, ok, err := s.Update(ctx, 1, "t2", "c2")
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open("postgres")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown store backend")
}
