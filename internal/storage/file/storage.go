package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fxamacker/cbor/v2"
	"github.com/natefinch/atomic"

	"github.com/mcoot/elotrack/internal/model"
	"github.com/mcoot/elotrack/internal/storage"
)

// DefaultPath is the data file used when none is configured
const DefaultPath = "elo.cbor"

// Storage keeps the snapshot in a single CBOR-encoded file. Saves write a
// temporary file and rename it over the old one.
type Storage struct {
	path string
}

// New creates a file storage at path. The file is created on first Save.
func New(path string) (*Storage, error) {
	if path == "" {
		path = DefaultPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}
	return &Storage{path: path}, nil
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Path returns the data file location
func (s *Storage) Path() string {
	return s.path
}

func (s *Storage) Load(ctx context.Context) (*model.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, model.ErrStateNotFound
		}
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}

	var snap model.Snapshot
	if err := cbor.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", model.ErrCorruptState, s.path, err)
	}
	return &snap, nil
}

func (s *Storage) Save(ctx context.Context, snap *model.Snapshot) error {
	data, err := cbor.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	if err := atomic.WriteFile(s.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	return nil
}

func (s *Storage) Close() error {
	return nil
}
