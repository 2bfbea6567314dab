package report

import (
	"sort"
	"time"

	opt "github.com/repeale/fp-go/option"

	"github.com/mcoot/elotrack/internal/dependencies/clock"
	"github.com/mcoot/elotrack/internal/model"
)

// DefaultActiveDays is how recently a player must have played to be listed
const DefaultActiveDays = 21

// RankedPlayer is a player with its position in a filtered listing
type RankedPlayer struct {
	Rank   int
	Player model.Player
}

// LastPlayed looks up the date of a player's most recent set
type LastPlayed interface {
	LastDateInvolving(ordinal model.Ordinal) opt.Option[time.Time]
}

// Service builds ranking reports from immutable player snapshots
type Service struct {
	clock clock.Clock
}

// New creates a report Service
func New(clock clock.Clock) *Service {
	return &Service{clock: clock}
}

// DaysSince returns the number of whole calendar days between date and today
func (s *Service) DaysSince(date time.Time) int {
	today := clock.Today(s.clock)
	return int(today.Sub(model.DateOf(date)).Hours() / 24)
}

// ActivePlayers ranks players by rating, keeping only those whose last set
// was at most withinDays days ago. Players who have never played are left
// out. Ranks are 1-based and count only the players that were kept.
func (s *Service) ActivePlayers(players []model.Player, last LastPlayed, withinDays int) []RankedPlayer {
	sorted := SortByRating(players)

	ranked := make([]RankedPlayer, 0, len(sorted))
	for _, p := range sorted {
		date := last.LastDateInvolving(p.Ordinal)
		if opt.IsNone(date) {
			continue
		}
		if s.DaysSince(date.Value) > withinDays {
			continue
		}
		ranked = append(ranked, RankedPlayer{Rank: len(ranked) + 1, Player: p})
	}
	return ranked
}

// AllPlayers ranks every player by rating with no activity filter
func (s *Service) AllPlayers(players []model.Player) []RankedPlayer {
	sorted := SortByRating(players)
	ranked := make([]RankedPlayer, len(sorted))
	for i, p := range sorted {
		ranked[i] = RankedPlayer{Rank: i + 1, Player: p}
	}
	return ranked
}

// SortByRating returns a copy of players ordered by rating, highest first,
// with ties in their original order
func SortByRating(players []model.Player) []model.Player {
	out := make([]model.Player, len(players))
	copy(out, players)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rating > out[j].Rating
	})
	return out
}
