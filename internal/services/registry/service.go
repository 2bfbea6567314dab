package registry

import (
	"fmt"
	"math"
	"sort"

	"github.com/mcoot/elotrack/internal/model"
)

// Registry owns every Player. Players are looked up by exact name and keep
// the ordinal they were created with.
type Registry struct {
	players []*model.Player
	byName  map[string]*model.Player
}

// New creates an empty Registry
func New() *Registry {
	return &Registry{
		byName: make(map[string]*model.Player),
	}
}

// Find returns the player with exactly this name (case-sensitive)
func (r *Registry) Find(name string) (*model.Player, error) {
	p, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", model.ErrPlayerNotFound, name)
	}
	return p, nil
}

// Get returns the player with the given ordinal
func (r *Registry) Get(ordinal model.Ordinal) (*model.Player, error) {
	if ordinal < 0 || int(ordinal) >= len(r.players) {
		return nil, fmt.Errorf("%w: ordinal %d", model.ErrPlayerNotFound, ordinal)
	}
	return r.players[ordinal], nil
}

// Create adds a new player with the next ordinal. It refuses names that are
// already registered.
func (r *Registry) Create(name string, rating float64) (*model.Player, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is empty", model.ErrInvalidName)
	}
	if math.IsNaN(rating) || math.IsInf(rating, 0) {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidRating, rating)
	}
	if _, ok := r.byName[name]; ok {
		return nil, fmt.Errorf("%w: %q", model.ErrDuplicateName, name)
	}

	p := &model.Player{
		Name:    name,
		Rating:  rating,
		Ordinal: model.Ordinal(len(r.players)),
	}
	r.add(p)
	return p, nil
}

// Restore re-adds a previously persisted player. Players must be restored in
// ordinal order.
func (r *Registry) Restore(p model.Player) error {
	if int(p.Ordinal) != len(r.players) {
		return fmt.Errorf("%w: expected ordinal %d for %q, got %d", model.ErrCorruptState, len(r.players), p.Name, p.Ordinal)
	}
	if _, ok := r.byName[p.Name]; ok {
		return fmt.Errorf("%w: duplicate player %q", model.ErrCorruptState, p.Name)
	}
	r.add(&p)
	return nil
}

func (r *Registry) add(p *model.Player) {
	r.players = append(r.players, p)
	r.byName[p.Name] = p
}

// Len returns the number of registered players
func (r *Registry) Len() int {
	return len(r.players)
}

// Players returns all players in ordinal order
func (r *Registry) Players() []*model.Player {
	out := make([]*model.Player, len(r.players))
	copy(out, r.players)
	return out
}

// List returns all players by rating, highest first. Equal ratings keep
// insertion order.
func (r *Registry) List() []*model.Player {
	out := r.Players()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rating > out[j].Rating
	})
	return out
}
