package blobs

import "context"

// Repository is a key -> blob store.
type Repository interface {
	// Get returns the blob stored under key, or (nil, nil) when absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns every stored key with its blob.
	List(ctx context.Context) (map[string][]byte, error)

	// Clear removes every key.
	Clear(ctx context.Context) error
}

// Store is a Repository that can apply several writes as one unit.
type Store interface {
	Repository

	// WithinTx runs fn with a repository whose writes become visible together
	// when fn returns nil and are discarded when it returns an error.
	// fn must use the repository it is given, not the Store itself.
	WithinTx(ctx context.Context, fn func(ctx context.Context, r Repository) error) error
}
