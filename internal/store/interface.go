package store

import "context"

// Interface defines the contract for document store access
// This allows for easy mocking in tests
type Interface interface {
	Get(ctx context.Context, path string, out interface{}) (bool, error)
	GetShallow(ctx context.Context, collection string) (map[string]bool, error)
	GetRange(ctx context.Context, collection string, q Query, out interface{}) error
	Put(ctx context.Context, path string, value interface{}) error
	Push(ctx context.Context, collection string, value interface{}) (string, error)
	Delete(ctx context.Context, path string) error
}

// Ensure Client implements Interface
var _ Interface = (*Client)(nil)
