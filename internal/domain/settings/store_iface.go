package settings

import "context"

type StoreAPI interface {
	Get(ctx context.Context, key string) (Entry, error)
	Upsert(ctx context.Context, key string, value Value) (Entry, error)
	List(ctx context.Context) ([]Entry, error)
}
