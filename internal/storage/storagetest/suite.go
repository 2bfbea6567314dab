// Package storagetest holds the behaviour every storage backend must share.
package storagetest

import (
	"context"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/elotrack/internal/model"
	"github.com/mcoot/elotrack/internal/storage"
)

// Suite runs the storage contract against a backend. Embed it in a
// backend-specific suite and set Open in SetupTest.
type Suite struct {
	suite.Suite

	// Open returns a fresh, empty backend
	Open func() storage.Storage
}

// SampleSnapshot returns a small but non-trivial ladder state
func SampleSnapshot() *model.Snapshot {
	return &model.Snapshot{
		Players: []model.PlayerRow{
			{Name: "Nacho", Rating: 1231.0874519, Ordinal: 0},
			{Name: "Danial", Rating: 1168.9125481, Ordinal: 1},
			{Name: "Big_Tim", Rating: 1400, Ordinal: 2},
		},
		Sets: []model.SetRow{
			{PlayerA: 0, PlayerB: 1, WinsA: 4, WinsB: 2, Date: "2024-01-05"},
			{PlayerA: 1, PlayerB: 0, WinsA: 0, WinsB: 1, Date: "2024-01-06"},
			{PlayerA: 2, PlayerB: 0, WinsA: 3, WinsB: 3, Date: "2023-12-31"},
		},
		TotalSets: 3,
	}
}

func (s *Suite) TestLoadEmpty() {
	store := s.Open()
	defer store.Close()

	_, err := store.Load(context.Background())
	s.ErrorIs(err, model.ErrStateNotFound)
}

func (s *Suite) TestSaveAndLoad() {
	ctx := context.Background()
	store := s.Open()
	defer store.Close()

	want := SampleSnapshot()
	s.Require().NoError(store.Save(ctx, want))

	got, err := store.Load(ctx)
	s.Require().NoError(err)
	s.Equal(want.TotalSets, got.TotalSets)
	s.Equal(want.Sets, got.Sets)
	s.Require().Len(got.Players, len(want.Players))
	for i := range want.Players {
		s.Equal(want.Players[i].Name, got.Players[i].Name)
		s.Equal(want.Players[i].Ordinal, got.Players[i].Ordinal)
		s.InDelta(want.Players[i].Rating, got.Players[i].Rating, 1e-9)
	}
}

func (s *Suite) TestSaveReplaces() {
	ctx := context.Background()
	store := s.Open()
	defer store.Close()

	s.Require().NoError(store.Save(ctx, SampleSnapshot()))

	smaller := &model.Snapshot{
		Players: []model.PlayerRow{{Name: "Solo", Rating: 1200, Ordinal: 0}},
	}
	s.Require().NoError(store.Save(ctx, smaller))

	got, err := store.Load(ctx)
	s.Require().NoError(err)
	s.Len(got.Players, 1)
	s.Equal("Solo", got.Players[0].Name)
	s.Empty(got.Sets)
	s.Equal(int32(0), got.TotalSets)
}

func (s *Suite) TestSaveEmptyLadder() {
	ctx := context.Background()
	store := s.Open()
	defer store.Close()

	s.Require().NoError(store.Save(ctx, &model.Snapshot{}))

	got, err := store.Load(ctx)
	s.Require().NoError(err)
	s.Empty(got.Players)
	s.Empty(got.Sets)
}
