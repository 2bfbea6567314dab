package matchset

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/elotrack/internal/model"
	"github.com/mcoot/elotrack/internal/services/history"
	"github.com/mcoot/elotrack/internal/services/rating"
)

// Result describes what recording a set did to both players
type Result struct {
	Set model.MatchSet

	StartA, StartB float64
	FinalA, FinalB float64

	// Tied is the number of interleaved win pairs; ExtraA and ExtraB are the
	// surplus wins applied afterwards (at most one is non-zero)
	Tied   int
	ExtraA int
	ExtraB int
}

// DeltaA returns player A's total rating change over the set
func (r *Result) DeltaA() float64 {
	return r.FinalA - r.StartA
}

// DeltaB returns player B's total rating change over the set
func (r *Result) DeltaB() float64 {
	return r.FinalB - r.StartB
}

// Processor turns an aggregate set score into a sequence of single-game
// rating updates
type Processor struct {
	calculator *rating.Calculator
	history    *history.History
	logger     *slog.Logger
}

// New creates a Processor that appends recorded sets to h
func New(calculator *rating.Calculator, h *history.History, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Processor{
		calculator: calculator,
		history:    h,
		logger:     logger,
	}
}

// RecordSet applies a set between a and b and appends it to the history.
//
// The true order of games inside a set is unknown, so wins are interleaved:
// min(WinsA, WinsB) rounds of an A win followed by a B win, then the surplus
// wins of whichever player won more. Each game reads both ratings as they
// stood after the previous game.
func (p *Processor) RecordSet(a, b *model.Player, score model.Score, date time.Time) (*Result, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("%w: both players are required", model.ErrInvalidSet)
	}
	if a.Ordinal == b.Ordinal {
		return nil, fmt.Errorf("%w: %q cannot play against themselves", model.ErrInvalidSet, a.Name)
	}
	if err := score.Validate(); err != nil {
		return nil, err
	}

	tied := min(score.WinsA, score.WinsB)
	result := &Result{
		StartA: a.Rating,
		StartB: b.Rating,
		Tied:   tied,
		ExtraA: score.WinsA - tied,
		ExtraB: score.WinsB - tied,
	}

	for i := 0; i < tied; i++ {
		p.playGame(a, b, rating.Win)
		p.playGame(a, b, rating.Loss)
	}
	for i := 0; i < result.ExtraA; i++ {
		p.playGame(a, b, rating.Win)
	}
	for i := 0; i < result.ExtraB; i++ {
		p.playGame(a, b, rating.Loss)
	}

	games := score.Total()
	a.Games += games
	b.Games += games

	result.FinalA = a.Rating
	result.FinalB = b.Rating
	result.Set = model.MatchSet{
		PlayerA: a.Ordinal,
		PlayerB: b.Ordinal,
		Score:   score,
		Date:    model.DateOf(date),
	}
	p.history.Append(result.Set)

	p.logger.Info("set recorded",
		slog.String("player_a", a.Name),
		slog.String("player_b", b.Name),
		slog.String("score", score.String()),
		slog.Int("tied", result.Tied),
		slog.Float64("delta_a", result.DeltaA()),
		slog.Float64("delta_b", result.DeltaB()),
	)

	return result, nil
}

// playGame applies one game. Both new ratings are computed from the pre-game
// values before either is committed.
func (p *Processor) playGame(a, b *model.Player, outcomeA rating.Outcome) {
	newA := p.calculator.Update(a.Rating, b.Rating, outcomeA)
	newB := p.calculator.Update(b.Rating, a.Rating, outcomeA.Opposite())

	p.logger.Debug("game applied",
		slog.String("player_a", a.Name),
		slog.Float64("outcome_a", float64(outcomeA)),
		slog.Float64("rating_a", newA),
		slog.Float64("rating_b", newB),
	)

	a.Rating = newA
	b.Rating = newB
}
