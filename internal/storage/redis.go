package storage

import (
	"context"
	"encoding/json"
	"errors"

	"todo_api/internal/domain"

	redis "github.com/redis/go-redis/v9"
)

// Redis stores the collection as one JSON document under a single key.
type Redis struct {
	client *redis.Client
	key    string
}

// NewRedis returns a Redis backend keeping the collection named name.
func NewRedis(client *redis.Client, name string) *Redis {
	return &Redis{client: client, key: "todo:tasks:" + name}
}

// Key returns the redis key holding the collection.
func (s *Redis) Key() string {
	return s.key
}

func (s *Redis) Read(ctx context.Context) ([]domain.Task, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ReadFailure("key not found", err)
		}
		return nil, domain.ReadFailure("unexpected read error", err)
	}

	var tasks []domain.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, domain.ReadFailure("JSON parsing error", err)
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}

func (s *Redis) Write(ctx context.Context, tasks []domain.Task) error {
	if tasks == nil {
		tasks = []domain.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return domain.WriteFailure("unexpected write error", err)
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return domain.WriteFailure("unexpected write error", err)
	}
	return nil
}
