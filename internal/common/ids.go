package common

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator produces opaque identifiers for new entities.
type IDGenerator func() string

// NewID returns a random token. Uniqueness is not verified; collisions are
// treated as negligible.
func NewID() string {
	return uuid.NewString()
}

// SequentialIDs returns a deterministic generator yielding prefix-1, prefix-2, ...
// It is safe for concurrent use.
func SequentialIDs(prefix string) IDGenerator {
	var n atomic.Int64
	return func() string {
		return fmt.Sprintf("%s-%d", prefix, n.Add(1))
	}
}
