package events

import (
	"context"
	"encoding/json"
	"fmt"

	"capstone-blog/internal/model"

	"github.com/redis/go-redis/v9"
)

const (
	queueKey  = "queue:post-events"
	recentKey = "list:recent-events"
	// RecentLimit caps the recent-events list.
	RecentLimit = 50
)

// RedisQueue pushes post events onto a Redis list and pops them for the worker.
type RedisQueue struct {
	rdb *redis.Client
}

func NewRedisQueue(addr string) (*RedisQueue, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &RedisQueue{rdb: rdb}, nil
}

func (q *RedisQueue) Close() error {
	return q.rdb.Close()
}

// Publish enqueues the event and records it in the bounded recent list.
func (q *RedisQueue) Publish(ctx context.Context, event model.PostEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	pipe := q.rdb.Pipeline()
	pipe.LPush(ctx, queueKey, data)
	pipe.LPush(ctx, recentKey, data)
	pipe.LTrim(ctx, recentKey, 0, RecentLimit-1)
	_, err = pipe.Exec(ctx)
	return err
}

// Pop blocks until an event is available or ctx is done.
func (q *RedisQueue) Pop(ctx context.Context) (model.PostEvent, error) {
	// 0 means wait forever until an item arrives
	result, err := q.rdb.BRPop(ctx, 0, queueKey).Result()
	if err != nil {
		return model.PostEvent{}, err
	}

	var event model.PostEvent
	if err := json.Unmarshal([]byte(result[1]), &event); err != nil {
		return model.PostEvent{}, fmt.Errorf("decode post event: %w", err)
	}
	return event, nil
}

// Recent returns up to limit of the newest events, newest first.
func (q *RedisQueue) Recent(ctx context.Context, limit int) ([]model.PostEvent, error) {
	raw, err := q.rdb.LRange(ctx, recentKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	var out []model.PostEvent
	for _, item := range raw {
		var e model.PostEvent
		if err := json.Unmarshal([]byte(item), &e); err == nil {
			out = append(out, e)
		}
	}
	return out, nil
}
