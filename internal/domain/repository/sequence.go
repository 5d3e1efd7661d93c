package repository

import "context"

// SequenceRepository hands out monotonically increasing values per key.
type SequenceRepository interface {
	Next(ctx context.Context, key string) (int64, error)
}
