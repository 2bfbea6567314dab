package model

import "strings"

// DefaultRating is the starting rating for a player added without one
const DefaultRating = 1200.0

// Ordinal is a player's stable position in the registry. It is assigned once
// at creation and used as the persistence key.
type Ordinal int32

// Player is a rated participant in the ladder
type Player struct {
	Name    string
	Rating  float64
	Games   int // cumulative games played across all recorded sets
	Ordinal Ordinal
}

// DisplayName returns the name as shown to humans (underscores become spaces)
func (p Player) DisplayName() string {
	return strings.ReplaceAll(p.Name, "_", " ")
}
