package storage

import (
	"context"

	"github.com/mcoot/elotrack/internal/model"
)

// Storage persists the whole ladder state as one snapshot
type Storage interface {
	// Load returns the last saved snapshot, or model.ErrStateNotFound if
	// nothing has been saved yet
	Load(ctx context.Context) (*model.Snapshot, error)

	// Save atomically replaces the stored snapshot. A failed Save leaves the
	// previously stored snapshot intact.
	Save(ctx context.Context, snap *model.Snapshot) error

	Close() error
}
