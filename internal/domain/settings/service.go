package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

// Get returns the stored entry for key. Known keys that were never written
// report ErrNotSet.
func (s *Service) Get(ctx context.Context, key string) (Entry, error) {
	key = strings.TrimSpace(key)
	if !Known(key) {
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return s.store.Get(ctx, key)
}

// Set decodes and validates raw before storing it, overwriting any previous
// value for key.
func (s *Service) Set(ctx context.Context, key string, raw json.RawMessage) (Entry, error) {
	key = strings.TrimSpace(key)
	value, err := Decode(key, raw)
	if err != nil {
		return Entry{}, err
	}
	return s.store.Upsert(ctx, key, value)
}

// All returns every setting with defaults filled in for unset keys.
func (s *Service) All(ctx context.Context) (Settings, error) {
	entries, err := s.store.List(ctx)
	if err != nil {
		return Settings{}, err
	}
	return Apply(entries)
}
