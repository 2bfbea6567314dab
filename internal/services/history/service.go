package history

import (
	"time"

	opt "github.com/repeale/fp-go/option"

	"github.com/mcoot/elotrack/internal/model"
)

// History is the append-only log of recorded sets, in recording order
type History struct {
	sets []model.MatchSet
}

// New creates an empty History
func New() *History {
	return &History{}
}

// Append adds a set to the end of the log
func (h *History) Append(set model.MatchSet) {
	h.sets = append(h.sets, set)
}

// All returns every set in recording order
func (h *History) All() []model.MatchSet {
	out := make([]model.MatchSet, len(h.sets))
	copy(out, h.sets)
	return out
}

// Len returns the number of recorded sets
func (h *History) Len() int {
	return len(h.sets)
}

// Involving returns the sets a player took part in, in recording order
func (h *History) Involving(ordinal model.Ordinal) []model.MatchSet {
	var out []model.MatchSet
	for _, set := range h.sets {
		if set.Involves(ordinal) {
			out = append(out, set)
		}
	}
	return out
}

// LastDateInvolving returns the date of the last appended set that involves
// the player. "Last" is by append order, not by comparing dates: a log that
// was back-filled out of chronological order reports the last-appended set.
func (h *History) LastDateInvolving(ordinal model.Ordinal) opt.Option[time.Time] {
	last := opt.None[time.Time]()
	for _, set := range h.sets {
		if set.Involves(ordinal) {
			last = opt.Some(set.Date)
		}
	}
	return last
}

// GamesPlayed sums the games of every set the player took part in
func (h *History) GamesPlayed(ordinal model.Ordinal) int {
	total := 0
	for _, set := range h.sets {
		if set.Involves(ordinal) {
			total += set.NumGames()
		}
	}
	return total
}
