package model

import "fmt"

// PlayerRow is the persisted form of a player. Games is not stored; it is
// rebuilt from the set history on load.
type PlayerRow struct {
	Name    string  `json:"name" cbor:"name"`
	Rating  float64 `json:"rating" cbor:"rating"`
	Ordinal int32   `json:"ordinal" cbor:"ordinal"`
}

// SetRow is the persisted form of a match set
type SetRow struct {
	PlayerA int32  `json:"player_a" cbor:"player_a"`
	PlayerB int32  `json:"player_b" cbor:"player_b"`
	WinsA   int32  `json:"wins_a" cbor:"wins_a"`
	WinsB   int32  `json:"wins_b" cbor:"wins_b"`
	Date    string `json:"date" cbor:"date"`
}

// Snapshot is the complete persisted state: players in ordinal order and sets
// in recording order
type Snapshot struct {
	Players   []PlayerRow `json:"players" cbor:"players"`
	Sets      []SetRow    `json:"sets" cbor:"sets"`
	TotalSets int32       `json:"tot_sets" cbor:"tot_sets"`
}

// NewSnapshot builds a Snapshot from live state
func NewSnapshot(players []Player, sets []MatchSet) *Snapshot {
	snap := &Snapshot{
		Players:   make([]PlayerRow, 0, len(players)),
		Sets:      make([]SetRow, 0, len(sets)),
		TotalSets: int32(len(sets)),
	}
	for _, p := range players {
		snap.Players = append(snap.Players, PlayerRow{
			Name:    p.Name,
			Rating:  p.Rating,
			Ordinal: int32(p.Ordinal),
		})
	}
	for _, m := range sets {
		snap.Sets = append(snap.Sets, SetRow{
			PlayerA: int32(m.PlayerA),
			PlayerB: int32(m.PlayerB),
			WinsA:   int32(m.Score.WinsA),
			WinsB:   int32(m.Score.WinsB),
			Date:    m.DateString(),
		})
	}
	return snap
}

// Validate checks the structural invariants of a loaded snapshot
func (s *Snapshot) Validate() error {
	if int(s.TotalSets) != len(s.Sets) {
		return fmt.Errorf("%w: tot_sets is %d but %d sets are stored", ErrCorruptState, s.TotalSets, len(s.Sets))
	}

	names := make(map[string]struct{}, len(s.Players))
	for i, p := range s.Players {
		if int(p.Ordinal) != i {
			return fmt.Errorf("%w: player %q has ordinal %d at row %d", ErrCorruptState, p.Name, p.Ordinal, i)
		}
		if _, dup := names[p.Name]; dup {
			return fmt.Errorf("%w: duplicate player %q", ErrCorruptState, p.Name)
		}
		names[p.Name] = struct{}{}
	}

	n := int32(len(s.Players))
	for i, row := range s.Sets {
		if row.PlayerA < 0 || row.PlayerA >= n || row.PlayerB < 0 || row.PlayerB >= n {
			return fmt.Errorf("%w: set %d references an unknown player", ErrCorruptState, i)
		}
		if row.PlayerA == row.PlayerB {
			return fmt.Errorf("%w: set %d has player %d on both sides", ErrCorruptState, i, row.PlayerA)
		}
		if err := (Score{WinsA: int(row.WinsA), WinsB: int(row.WinsB)}).Validate(); err != nil {
			return fmt.Errorf("%w: set %d: %v", ErrCorruptState, i, err)
		}
		if _, err := ParseDate(row.Date); err != nil {
			return fmt.Errorf("%w: set %d: %v", ErrCorruptState, i, err)
		}
	}
	return nil
}

// MatchSets converts the stored set rows back into MatchSets. Call Validate
// first.
func (s *Snapshot) MatchSets() ([]MatchSet, error) {
	sets := make([]MatchSet, 0, len(s.Sets))
	for i, row := range s.Sets {
		date, err := ParseDate(row.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: set %d: %v", ErrCorruptState, i, err)
		}
		sets = append(sets, MatchSet{
			PlayerA: Ordinal(row.PlayerA),
			PlayerB: Ordinal(row.PlayerB),
			Score:   Score{WinsA: int(row.WinsA), WinsB: int(row.WinsB)},
			Date:    date,
		})
	}
	return sets, nil
}
