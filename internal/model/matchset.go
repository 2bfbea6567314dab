package model

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-day format used for set dates everywhere
const DateLayout = "2006-01-02"

// MatchSet is one recorded set between two players. The ratings it produced
// are already folded into the players; a MatchSet is never replayed.
type MatchSet struct {
	PlayerA Ordinal
	PlayerB Ordinal
	Score   Score
	Date    time.Time // UTC midnight of the day the set was played
}

// NumGames returns the number of games in the set
func (m MatchSet) NumGames() int {
	return m.Score.Total()
}

// Involves reports whether the given player took part in the set
func (m MatchSet) Involves(ordinal Ordinal) bool {
	return m.PlayerA == ordinal || m.PlayerB == ordinal
}

// DateString returns the set date as YYYY-MM-DD
func (m MatchSet) DateString() string {
	return FormatDate(m.Date)
}

// DateOf truncates t to its calendar day, expressed as UTC midnight
func DateOf(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a set date as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD set date
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}
