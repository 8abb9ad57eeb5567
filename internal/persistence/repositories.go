package persistence

import "context"

// KeyValueStore is the durable string store every higher level store sits on.
//
// Values are opaque strings; callers own the encoding. GetItem reports
// ErrNotFound for absent keys and RemoveItem treats an absent key as success.
type KeyValueStore interface {
	GetItem(ctx context.Context, key string) (string, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

// ClosableStore is a KeyValueStore holding external resources.
type ClosableStore interface {
	KeyValueStore
	Close() error
}
