// Package storage holds the interchangeable task collection backends.
//
// Every backend satisfies Storage: Read returns the whole collection and
// Write replaces it. Failures are reported as domain.StorageError values of
// kind domain.ErrStorageRead or domain.ErrStorageWrite, whatever the medium.
package storage

import (
	"context"
	"errors"
	"io/fs"

	"todo_api/internal/domain"

	redis "github.com/redis/go-redis/v9"
)

// Storage reads and replaces a whole collection of tasks.
type Storage interface {
	Read(ctx context.Context) ([]domain.Task, error)
	Write(ctx context.Context, tasks []domain.Task) error
}

// IsAbsent reports whether err is a read failure caused by a missing source.
func IsAbsent(err error) bool {
	if !errors.Is(err, domain.ErrStorageRead) {
		return false
	}
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, redis.Nil)
}

// Ensure initializes an absent source with an empty collection. Any other
// read failure is returned unchanged.
func Ensure(ctx context.Context, s Storage) error {
	_, err := s.Read(ctx)
	if err == nil {
		return nil
	}
	if !IsAbsent(err) {
		return err
	}
	return s.Write(ctx, []domain.Task{})
}
