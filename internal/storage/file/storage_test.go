package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/elotrack/internal/model"
	"github.com/mcoot/elotrack/internal/storage"
	"github.com/mcoot/elotrack/internal/storage/storagetest"
)

type StorageSuite struct {
	storagetest.Suite
	dir string
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.Open = func() storage.Storage {
		store, err := New(filepath.Join(s.dir, "elo.cbor"))
		s.Require().NoError(err)
		return store
	}
}

func (s *StorageSuite) TestCreatesParentDirectory() {
	path := filepath.Join(s.dir, "nested", "deeper", "elo.cbor")
	store, err := New(path)
	s.Require().NoError(err)

	s.Require().NoError(store.Save(context.Background(), storagetest.SampleSnapshot()))
	_, err = os.Stat(path)
	s.NoError(err)
}

func (s *StorageSuite) TestPersistsAcrossInstances() {
	ctx := context.Background()
	path := filepath.Join(s.dir, "elo.cbor")

	first, err := New(path)
	s.Require().NoError(err)
	s.Require().NoError(first.Save(ctx, storagetest.SampleSnapshot()))

	second, err := New(path)
	s.Require().NoError(err)
	snap, err := second.Load(ctx)
	s.Require().NoError(err)
	s.Equal("Big_Tim", snap.Players[2].Name)
}

func (s *StorageSuite) TestCorruptFile() {
	path := filepath.Join(s.dir, "elo.cbor")
	s.Require().NoError(os.WriteFile(path, []byte("not cbor at all"), 0o644))

	store, err := New(path)
	s.Require().NoError(err)
	_, err = store.Load(context.Background())
	s.ErrorIs(err, model.ErrCorruptState)
}

func (s *StorageSuite) TestSaveOverDirectoryFails() {
	path := filepath.Join(s.dir, "blocked")
	store, err := New(path)
	s.Require().NoError(err)

	s.Require().NoError(os.Mkdir(path, 0o755))
	s.Require().NoError(os.WriteFile(filepath.Join(path, "keep"), []byte("x"), 0o644))

	s.Error(store.Save(context.Background(), storagetest.SampleSnapshot()))

	// the existing directory is untouched
	kept, err := os.ReadFile(filepath.Join(path, "keep"))
	s.Require().NoError(err)
	s.Equal("x", string(kept))
}
