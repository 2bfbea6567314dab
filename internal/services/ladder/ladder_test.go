package ladder

import (
	"context"
	"errors"
	"testing"
	"time"

	opt "github.com/repeale/fp-go/option"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/elotrack/internal/dependencies/mocks"
	"github.com/mcoot/elotrack/internal/model"
	"github.com/mcoot/elotrack/internal/services/rating"
	"github.com/mcoot/elotrack/internal/storage/memory"
	"github.com/mcoot/elotrack/internal/testutil"
)

const epsilon = 1e-9

type LadderSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	ladder  *Ladder
	ctx     context.Context
}

func TestLadderSuite(t *testing.T) {
	suite.Run(t, new(LadderSuite))
}

func (s *LadderSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 4, 30, 12, 0, 0, 0, time.UTC))
	s.ladder = s.newLadder()
	s.ctx = context.Background()
	s.Require().NoError(s.ladder.Load(s.ctx))
}

func (s *LadderSuite) newLadder() *Ladder {
	return New(s.storage, rating.New(), s.clock, model.DefaultRating, testutil.NopLogger())
}

func (s *LadderSuite) add(name string) model.Player {
	p, created, err := s.ladder.AddPlayer(s.ctx, name, opt.None[float64]())
	s.Require().NoError(err)
	s.Require().True(created)
	return p
}

func (s *LadderSuite) record(a, b string, winsA, winsB int, date opt.Option[time.Time]) {
	_, err := s.ladder.RecordSet(s.ctx, RecordRequest{
		PlayerA: a,
		PlayerB: b,
		Score:   model.Score{WinsA: winsA, WinsB: winsB},
		Date:    date,
		Create:  true,
	})
	s.Require().NoError(err)
}

func (s *LadderSuite) daysAgo(days int) opt.Option[time.Time] {
	return opt.Some(s.clock.Now().AddDate(0, 0, -days))
}

// Load tests

func (s *LadderSuite) TestLoadEmptyStore() {
	s.Empty(s.ladder.Players())
	s.Empty(s.ladder.History())
}

func (s *LadderSuite) TestLoadRoundTrip() {
	s.add("Ann")
	s.add("Bo")
	s.record("Ann", "Bo", 3, 1, opt.None[time.Time]())
	s.record("Bo", "Cy", 0, 2, s.daysAgo(3))

	reloaded := s.newLadder()
	s.Require().NoError(reloaded.Load(s.ctx))

	s.Equal(s.ladder.Players(), reloaded.Players())
	s.Equal(s.ladder.History(), reloaded.History())
}

func (s *LadderSuite) TestLoadDoesNotReplayRatings() {
	snap := &model.Snapshot{
		Players: []model.PlayerRow{
			{Name: "Ann", Rating: 1500, Ordinal: 0},
			{Name: "Bo", Rating: 900, Ordinal: 1},
		},
		Sets: []model.SetRow{
			{PlayerA: 0, PlayerB: 1, WinsA: 4, WinsB: 1, Date: "2024-04-29"},
		},
		TotalSets: 1,
	}
	s.Require().NoError(s.storage.Save(s.ctx, snap))
	s.Require().NoError(s.ladder.Load(s.ctx))

	ann, err := s.ladder.Find("Ann")
	s.Require().NoError(err)
	s.Equal(1500.0, ann.Rating)
	s.Equal(5, ann.Games)

	bo, err := s.ladder.Find("Bo")
	s.Require().NoError(err)
	s.Equal(900.0, bo.Rating)
	s.Equal(5, bo.Games)
}

func (s *LadderSuite) TestLoadCorruptState() {
	s.Require().NoError(s.storage.Save(s.ctx, &model.Snapshot{TotalSets: 5}))

	err := s.ladder.Load(s.ctx)
	s.ErrorIs(err, model.ErrCorruptState)
}

// AddPlayer tests

func (s *LadderSuite) TestAddPlayerAtDefaultRating() {
	p := s.add("Ann")

	s.Equal(model.DefaultRating, p.Rating)
	s.Equal(model.Ordinal(0), p.Ordinal)

	saved, err := s.storage.Load(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(saved.Players, 1)
	s.Equal("Ann", saved.Players[0].Name)
}

func (s *LadderSuite) TestAddPlayerAtRating() {
	p, created, err := s.ladder.AddPlayer(s.ctx, "Big_Tim", opt.Some(1400.0))
	s.Require().NoError(err)
	s.True(created)
	s.Equal(1400.0, p.Rating)
}

func (s *LadderSuite) TestAddDuplicateWarnsAndReturnsExisting() {
	logger, buf := testutil.CaptureLogger()
	s.ladder = New(s.storage, rating.New(), s.clock, model.DefaultRating, logger)
	s.Require().NoError(s.ladder.Load(s.ctx))

	first, _, err := s.ladder.AddPlayer(s.ctx, "Ann", opt.Some(1300.0))
	s.Require().NoError(err)

	second, created, err := s.ladder.AddPlayer(s.ctx, "Ann", opt.Some(1000.0))
	s.Require().NoError(err)
	s.False(created)
	s.Equal(first, second)
	s.Len(s.ladder.Players(), 1)
	s.Contains(buf.String(), `"level":"WARN"`)
	s.Contains(buf.String(), "player already exists")
}

func (s *LadderSuite) TestAddEmptyNameFails() {
	_, _, err := s.ladder.AddPlayer(s.ctx, "", opt.None[float64]())
	s.ErrorIs(err, model.ErrInvalidName)

	_, err = s.storage.Load(s.ctx)
	s.ErrorIs(err, model.ErrStateNotFound)
}

// RecordSet tests

func (s *LadderSuite) TestRecordSetUpdatesAndPersists() {
	s.add("Ann")
	s.add("Bo")

	result, err := s.ladder.RecordSet(s.ctx, RecordRequest{
		PlayerA: "Ann",
		PlayerB: "Bo",
		Score:   model.Score{WinsA: 1},
	})
	s.Require().NoError(err)
	s.InDelta(1216.0, result.FinalA, epsilon)
	s.InDelta(1184.0, result.FinalB, epsilon)

	ann, err := s.ladder.Find("Ann")
	s.Require().NoError(err)
	s.InDelta(1216.0, ann.Rating, epsilon)
	s.Equal(1, ann.Games)

	saved, err := s.storage.Load(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(saved.Sets, 1)
	s.Equal("2024-04-30", saved.Sets[0].Date)
	s.Equal(int32(1), saved.TotalSets)
}

func (s *LadderSuite) TestRecordUnknownPlayer() {
	s.add("Ann")

	_, err := s.ladder.RecordSet(s.ctx, RecordRequest{
		PlayerA: "Ann",
		PlayerB: "Ghost",
		Score:   model.Score{WinsA: 2},
	})
	s.ErrorIs(err, model.ErrPlayerNotFound)
	s.Len(s.ladder.Players(), 1)
	s.Empty(s.ladder.History())
}

func (s *LadderSuite) TestRecordCreatesPlayersWhenAsked() {
	s.record("Ann", "Bo", 1, 0, opt.None[time.Time]())

	players := s.ladder.Players()
	s.Require().Len(players, 2)
	s.Equal("Ann", players[0].Name)
	s.Equal(model.Ordinal(1), players[1].Ordinal)
	s.InDelta(1216.0, players[0].Rating, epsilon)
}

func (s *LadderSuite) TestRecordAgainstSelf() {
	s.add("Ann")

	_, err := s.ladder.RecordSet(s.ctx, RecordRequest{
		PlayerA: "Ann",
		PlayerB: "Ann",
		Score:   model.Score{WinsA: 1},
	})
	s.ErrorIs(err, model.ErrInvalidSet)
}

func (s *LadderSuite) TestInvalidScoreCreatesNobody() {
	_, err := s.ladder.RecordSet(s.ctx, RecordRequest{
		PlayerA: "Ann",
		PlayerB: "Bo",
		Score:   model.Score{},
		Create:  true,
	})
	s.ErrorIs(err, model.ErrInvalidSet)
	s.Empty(s.ladder.Players())
}

func (s *LadderSuite) TestSaveFailureRollsBack() {
	s.add("Ann")
	s.add("Bo")
	s.storage.SaveErr = errors.New("disk full")

	_, err := s.ladder.RecordSet(s.ctx, RecordRequest{
		PlayerA: "Ann",
		PlayerB: "Cy",
		Score:   model.Score{WinsA: 3, WinsB: 1},
		Create:  true,
	})
	s.ErrorIs(err, s.storage.SaveErr)

	s.Len(s.ladder.Players(), 2)
	s.Empty(s.ladder.History())
	ann, err := s.ladder.Find("Ann")
	s.Require().NoError(err)
	s.Equal(model.DefaultRating, ann.Rating)
	s.Equal(0, ann.Games)
}

// Reporting tests

func (s *LadderSuite) TestActivePlayersWindow() {
	s.record("Ann", "Bo", 3, 0, s.daysAgo(29))
	s.record("Cy", "Di", 0, 1, s.daysAgo(21))
	s.add("Eve")

	active := s.ladder.ActivePlayers(21)
	s.Require().Len(active, 2)
	s.Equal("Di", active[0].Player.Name)
	s.Equal(1, active[0].Rank)
	s.Equal("Cy", active[1].Player.Name)
	s.Equal(2, active[1].Rank)

	s.Len(s.ladder.AllPlayers(), 5)
}

func (s *LadderSuite) TestMostRecentFollowsRecordingOrder() {
	s.record("Ann", "Bo", 1, 0, opt.None[time.Time]())
	s.record("Ann", "Cy", 1, 0, s.daysAgo(60))

	names := []string{}
	for _, rp := range s.ladder.ActivePlayers(21) {
		names = append(names, rp.Player.Name)
	}
	s.Equal([]string{"Bo"}, names)
}

func (s *LadderSuite) TestHistoryFor() {
	s.record("Ann", "Bo", 1, 0, opt.None[time.Time]())
	s.record("Bo", "Cy", 2, 2, opt.None[time.Time]())
	s.record("Cy", "Ann", 0, 1, opt.None[time.Time]())

	entries, err := s.ladder.HistoryFor("Cy")
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal("Bo", entries[0].NameA)
	s.Equal("Ann", entries[1].NameB)

	_, err = s.ladder.HistoryFor("Nobody")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}
