package factory

import (
	"context"
	"path/filepath"
	"testing"

	opt "github.com/repeale/fp-go/option"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/elotrack/internal/model"
	"github.com/mcoot/elotrack/internal/services/ladder"
	"github.com/mcoot/elotrack/internal/storage"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
	s.Require().NoError(s.app.Ladder.Load(s.ctx))
}

func (s *IntegrationSuite) record(a, b string, score model.Score) {
	_, err := s.app.Ladder.RecordSet(s.ctx, ladder.RecordRequest{
		PlayerA: a,
		PlayerB: b,
		Score:   score,
	})
	s.Require().NoError(err)
}

// Test: a season of sets across three players, with one going inactive
func (s *IntegrationSuite) TestSeasonFlow() {
	for _, name := range []string{"Nacho", "Danial", "Big_Tim"} {
		_, created, err := s.app.Ladder.AddPlayer(s.ctx, name, opt.None[float64]())
		s.Require().NoError(err)
		s.True(created)
	}

	s.record("Nacho", "Danial", model.Score{WinsA: 4, WinsB: 2})
	s.record("Big_Tim", "Nacho", model.Score{WinsA: 1, WinsB: 1})

	s.app.MockClock.AdvanceDays(15)
	s.record("Nacho", "Danial", model.Score{WinsA: 0, WinsB: 3})

	// Big_Tim last played 22 days ago
	s.app.MockClock.AdvanceDays(7)
	active := s.app.Ladder.ActivePlayers(21)
	s.Require().Len(active, 2)
	for i, rp := range active {
		s.Equal(i+1, rp.Rank)
		s.NotEqual("Big_Tim", rp.Player.Name)
	}

	all := s.app.Ladder.AllPlayers()
	s.Len(all, 3)

	var total float64
	for _, rp := range all {
		total += rp.Player.Rating
	}
	s.InDelta(3*model.DefaultRating, total, 1e-6)

	saved, err := s.app.MemoryStore.Load(s.ctx)
	s.Require().NoError(err)
	s.Equal(int32(3), saved.TotalSets)
}

// Test: state survives a transfer between backends
func (s *IntegrationSuite) TestTransferToFile() {
	s.record("Ann", "Bo", model.Score{WinsA: 1})

	path := filepath.Join(s.T().TempDir(), "copy.cbor")
	out, err := OpenStorage(StorageTypeFile, path, nil)
	s.Require().NoError(err)
	defer out.Close()

	s.Require().NoError(storage.Transfer(s.ctx, s.app.Storage, out))

	app, err := New(Config{StorageType: StorageTypeFile, DataPath: path})
	s.Require().NoError(err)
	defer app.Close()
	s.Require().NoError(app.Ladder.Load(s.ctx))

	s.Equal(s.app.Ladder.Players(), app.Ladder.Players())
}

func (s *IntegrationSuite) TestCustomRatingFactors() {
	app := newWithDependencies(s.app.Storage, s.app.MockClock, Config{KFactor: 10, DefaultRating: 1500}, nil)
	s.Require().NoError(app.Ladder.Load(s.ctx))

	_, err := app.Ladder.RecordSet(s.ctx, ladder.RecordRequest{
		PlayerA: "Ann",
		PlayerB: "Bo",
		Score:   model.Score{WinsA: 1},
		Create:  true,
	})
	s.Require().NoError(err)

	ann, err := app.Ladder.Find("Ann")
	s.Require().NoError(err)
	s.InDelta(1505.0, ann.Rating, 1e-9)
}

func (s *IntegrationSuite) TestOpenStorageRejectsUnknownType() {
	_, err := OpenStorage("floppy", "", nil)
	s.ErrorContains(err, "invalid StorageType")
}

func (s *IntegrationSuite) TestOpenStorageRequiresRedisConfig() {
	_, err := OpenStorage(StorageTypeRedis, "", nil)
	s.Error(err)
}

func (s *IntegrationSuite) TestOpenEveryFileBackend() {
	dir := s.T().TempDir()
	for _, storageType := range []string{StorageTypeFile, StorageTypeBolt, StorageTypeSQLite, StorageTypeMemory} {
		store, err := OpenStorage(storageType, filepath.Join(dir, "state."+storageType), nil)
		s.Require().NoError(err, storageType)

		_, err = store.Load(s.ctx)
		s.ErrorIs(err, model.ErrStateNotFound, storageType)
		s.NoError(store.Close(), storageType)
	}
}
