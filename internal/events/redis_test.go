package events

import (
	"context"
	"testing"
	"time"

	"capstone-blog/internal/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisQueue_Publish_And_Pop(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	q, err := NewRedisQueue(mr.Addr())
	require.NoError(t, err)
	defer q.Close()

	ctx := context.Background()
	event := model.NewPostEvent(model.EventCreated, model.Post{ID: 7, Title: "Hello"})
	require.NoError(t, q.Publish(ctx, event))

	queue, _ := mr.List(queueKey)
	assert.Len(t, queue, 1, "Should have 1 item in queue")

	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	popped, err := q.Pop(ctx)
	require.NoError(t, err)

	assert.Equal(t, event.ID, popped.ID)
	assert.Equal(t, model.EventCreated, popped.Type)
	assert.Equal(t, int64(7), popped.PostID)
	assert.Equal(t, "Hello", popped.Title)

	// Popping drains the queue but keeps the recent list
	queue, _ = mr.List(queueKey)
	assert.Empty(t, queue)
	recent, err := q.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, event.ID, recent[0].ID)
}

func TestRedisQueue_Recent_IsBounded(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	q, err := NewRedisQueue(mr.Addr())
	require.NoError(t, err)
	defer q.Close()

	ctx := context.Background()
	for i := 0; i < RecentLimit+5; i++ {
		require.NoError(t, q.Publish(ctx, model.NewPostEvent(model.EventUpdated, model.Post{ID: int64(i + 1)})))
	}

	recent, _ := mr.List(recentKey)
	assert.Len(t, recent, RecentLimit)

	events, err := q.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, int64(RecentLimit+5), events[0].PostID, "Newest event comes first")
}

func TestNewRedisQueue_Unreachable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	_, err = NewRedisQueue(addr)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to redis")
}
