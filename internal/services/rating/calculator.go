package rating

import "math"

const (
	// K is the default K-factor, the largest possible change from one game
	K = 32
	// D is the default deviation: a D-point lead means 10:1 expected odds
	D = 400
)

// Outcome is a single game result from one player's point of view
type Outcome float64

const (
	Loss Outcome = 0
	Draw Outcome = 0.5
	Win  Outcome = 1
)

// Opposite returns the same result seen from the other player
func (o Outcome) Opposite() Outcome {
	return 1 - o
}

// Calculator computes classic logistic Elo updates
type Calculator struct {
	K float64
	D float64
}

// New creates a Calculator with the default factors
func New() *Calculator {
	return &Calculator{K: K, D: D}
}

// NewWithFactors creates a Calculator with a custom K-factor and deviation.
// Non-positive values fall back to the defaults.
func NewWithFactors(k, d float64) *Calculator {
	c := New()
	if k > 0 {
		c.K = k
	}
	if d > 0 {
		c.D = d
	}
	return c
}

// ExpectedScore gives the expected score of a player rated ratingA against ratingB
func (c *Calculator) ExpectedScore(ratingA, ratingB float64) float64 {
	return 1 / (1 + math.Pow(10, (ratingB-ratingA)/c.D))
}

// Delta gives the rating change for the first player for the given outcome
func (c *Calculator) Delta(ratingA, ratingB float64, outcome Outcome) float64 {
	return c.K * (float64(outcome) - c.ExpectedScore(ratingA, ratingB))
}

// Update gives the new rating for the first player only. Callers update the
// opponent with a second call using outcome.Opposite().
func (c *Calculator) Update(ratingA, ratingB float64, outcome Outcome) float64 {
	return ratingA + c.Delta(ratingA, ratingB, outcome)
}
