// Package storage opens the blob store selected by configuration: it opens
// the database or bucket, applies migrations and returns a blobs.Store with a
// matching close function.
package storage

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/projtrack/internal/config"
	"github.com/dmitrijs2005/projtrack/internal/repositories/blobs"
)

// Backend is an opened blob store.
type Backend struct {
	Store blobs.Store
	close func() error
}

// Close releases the underlying connection, if any.
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// Open selects and opens the backend named by cfg.StorageDriver.
func Open(ctx context.Context, cfg *config.Config) (*Backend, error) {
	switch cfg.StorageDriver {
	case config.DriverSQLite:
		db, err := OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Backend{Store: blobs.NewSQLiteStore(db), close: db.Close}, nil

	case config.DriverPostgres:
		db, err := OpenPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return &Backend{Store: blobs.NewPostgresStore(db), close: db.Close}, nil

	case config.DriverS3:
		client, err := NewS3Client(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		return &Backend{Store: blobs.NewS3Store(client, cfg.S3.Bucket, cfg.S3.Prefix)}, nil

	case config.DriverMemory:
		return &Backend{Store: blobs.NewMemoryStore()}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
