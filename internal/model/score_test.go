package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScore(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected Score
	}{{
		"simple",
		"4-2",
		Score{WinsA: 4, WinsB: 2},
	}, {
		"shutout",
		"3-0",
		Score{WinsA: 3, WinsB: 0},
	}, {
		"multi digit",
		"10-12",
		Score{WinsA: 10, WinsB: 12},
	}, {
		"empty set still parses",
		"0-0",
		Score{},
	}}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			score, err := ParseScore(test.raw)
			require.NoError(t, err)
			assert.Equal(t, test.expected, score)
		})
	}
}

func TestParseScoreMalformed(t *testing.T) {
	for _, raw := range []string{"", "4", "4-", "-2", "4-2-1", "a-2", "4--2", "+4-2", "4 -2", "4:2"} {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseScore(raw)
			assert.ErrorIs(t, err, ErrMalformedScore)
		})
	}
}

func TestScoreValidate(t *testing.T) {
	assert.NoError(t, Score{WinsA: 1}.Validate())
	assert.ErrorIs(t, Score{}.Validate(), ErrInvalidSet)
	assert.ErrorIs(t, Score{WinsA: -1, WinsB: 2}.Validate(), ErrMalformedScore)
	assert.NoError(t, Score{WinsA: MaxWins, WinsB: 1}.Validate())
}

func TestScoreTooLargeToStore(t *testing.T) {
	score, err := ParseScore("2147483648-1")
	require.NoError(t, err)
	assert.ErrorIs(t, score.Validate(), ErrMalformedScore)
	assert.ErrorIs(t, Score{WinsA: 1, WinsB: MaxWins + 1}.Validate(), ErrMalformedScore)
}

func TestScoreString(t *testing.T) {
	assert.Equal(t, "3-1", Score{WinsA: 3, WinsB: 1}.String())
}
