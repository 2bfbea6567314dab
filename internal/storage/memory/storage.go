package memory

import (
	"context"
	"sync"

	"github.com/mcoot/elotrack/internal/model"
	"github.com/mcoot/elotrack/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu   sync.RWMutex
	snap *model.Snapshot

	// SaveErr, when set, is returned by Save without touching the stored snapshot
	SaveErr error
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) Load(ctx context.Context) (*model.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return nil, model.ErrStateNotFound
	}
	return clone(s.snap), nil
}

func (s *Storage) Save(ctx context.Context, snap *model.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.snap = clone(snap)
	return nil
}

func (s *Storage) Close() error {
	return nil
}

func clone(snap *model.Snapshot) *model.Snapshot {
	out := &model.Snapshot{
		Players:   make([]model.PlayerRow, len(snap.Players)),
		Sets:      make([]model.SetRow, len(snap.Sets)),
		TotalSets: snap.TotalSets,
	}
	copy(out.Players, snap.Players)
	copy(out.Sets, snap.Sets)
	return out
}
