package ports

import (
	"context"
	"iter"

	"github.com/renato0307/clawusage/internal/domain"
)

// UsageReader reads stored daily usage
type UsageReader interface {
	// All yields every stored record ordered by date ascending.
	// Each range over the sequence runs a fresh query.
	All(ctx context.Context) iter.Seq2[domain.UsageRecord, error]
	Status(ctx context.Context) (domain.StoreStatus, error)
}

// UsageWriter writes daily usage
type UsageWriter interface {
	// Lock takes the exclusive write lock; the returned func releases it
	Lock(ctx context.Context) (func() error, error)
	// Upsert writes a record atomically, reporting whether a new row was created
	Upsert(ctx context.Context, record domain.UsageRecord) (inserted bool, err error)
}

// UsageRepository is the composite interface
type UsageRepository interface {
	UsageReader
	UsageWriter
	Close() error
}
