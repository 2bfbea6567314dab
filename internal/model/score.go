package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ScoreDelimiter separates the two win counts in the "W-L" form
const ScoreDelimiter = "-"

// MaxWins is the largest win count a set row can persist
const MaxWins = math.MaxInt32

// Score is the aggregate result of a set: games won by each side
type Score struct {
	WinsA int
	WinsB int
}

// Total returns the number of games in the set
func (s Score) Total() int {
	return s.WinsA + s.WinsB
}

// Validate checks that the score describes at least one game
func (s Score) Validate() error {
	if s.WinsA < 0 || s.WinsB < 0 {
		return fmt.Errorf("%w: negative win count %d-%d", ErrMalformedScore, s.WinsA, s.WinsB)
	}
	if s.WinsA > MaxWins || s.WinsB > MaxWins {
		return fmt.Errorf("%w: win count %d-%d exceeds %d", ErrMalformedScore, s.WinsA, s.WinsB, MaxWins)
	}
	if s.Total() == 0 {
		return fmt.Errorf("%w: a set needs at least one game", ErrInvalidSet)
	}
	return nil
}

func (s Score) String() string {
	return fmt.Sprintf("%d%s%d", s.WinsA, ScoreDelimiter, s.WinsB)
}

// ParseScore parses "W-L" into a Score. Both sides must be plain non-negative
// integers separated by a single delimiter. A parsed 0-0 is returned as-is;
// rejecting empty sets is Validate's job.
func ParseScore(raw string) (Score, error) {
	parts := strings.Split(raw, ScoreDelimiter)
	if len(parts) != 2 {
		return Score{}, fmt.Errorf("%w: %q is not of the form W-L", ErrMalformedScore, raw)
	}

	wins := [2]int{}
	for i, part := range parts {
		n, err := parseCount(part)
		if err != nil {
			return Score{}, fmt.Errorf("%w: %q is not of the form W-L", ErrMalformedScore, raw)
		}
		wins[i] = n
	}

	return Score{WinsA: wins[0], WinsB: wins[1]}, nil
}

func parseCount(s string) (int, error) {
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	return strconv.Atoi(s)
}
