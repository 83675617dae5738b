package service

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// Resolver builds per-request Todo facades over one Store. Concurrent
// resolutions of the same username share a single lookup, so a burst of
// first requests creates the user once.
type Resolver struct {
	store       Store
	allowCreate bool
	sf          singleflight.Group
}

func NewResolver(store Store, allowCreate bool) *Resolver {
	return &Resolver{store: store, allowCreate: allowCreate}
}

func (r *Resolver) Resolve(ctx context.Context, username string) (*Todo, error) {
	// the lookup is shared, so one caller's cancellation must not fail the rest
	shared := context.WithoutCancel(ctx)
	v, err, _ := r.sf.Do(username, func() (interface{}, error) {
		return NewTodo(shared, r.store, username, r.allowCreate)
	})
	if err != nil {
		return nil, err
	}
	todo := *v.(*Todo)
	return &todo, nil
}

// Store returns the store the resolved facades delegate to.
func (r *Resolver) Store() Store {
	return r.store
}
