// Package lock serializes work per key, either inside one process or across
// processes sharing a Redis instance.
package lock

import (
	"context"
	"errors"
)

var ErrNotObtained = errors.New("lock not obtained")

// Locker hands out exclusive locks by key. The returned release function must
// be called exactly once.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// With runs fn while holding the lock for key.
func With(ctx context.Context, l Locker, key string, fn func() error) error {
	release, err := l.Acquire(ctx, key)
	if err != nil {
		return err
	}
	defer release()
	return fn()
}
