// Package blobs provides the key -> blob persistence boundary used by the
// projtrack stores.
//
// # Overview
//
// Each store serializes its full snapshot and writes it under a single
// namespaced key (see internal/common for the key names). The package defines
// the Repository contract (Get/Set/Delete/List/Clear) and the Store contract,
// which adds WithinTx for writing several keys as one unit.
//
// # Contract
//
//   - Get returns (nil, nil) when the key is absent.
//   - Set overwrites any existing value.
//   - Delete is idempotent.
//
// # Implementations
//
//   - SQLiteStore   — local database file (modernc.org/sqlite), transactional
//   - PostgresStore — shared database (pgx stdlib driver), transactional
//   - S3Store       — object storage bucket; WithinTx is best effort
//   - MemoryStore   — process memory, used by tests and the "memory" driver
//
// Typical usage
//
//	store := blobs.NewSQLiteStore(db)
//	_ = store.Set(ctx, "project-storage", data)
//	err := store.WithinTx(ctx, func(ctx context.Context, r blobs.Repository) error {
//	    if err := r.Set(ctx, "auth-storage", users); err != nil {
//	        return err
//	    }
//	    return r.Set(ctx, "user-credentials", creds)
//	})
package blobs
