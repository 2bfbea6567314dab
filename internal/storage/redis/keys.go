package redis

import "fmt"

// playersKey returns the LIST of JSON player rows, in ordinal order
func (s *Storage) playersKey() string {
	return fmt.Sprintf("%s:players", s.cfg.KeyPrefix)
}

// setsKey returns the LIST of JSON set rows, in recording order
func (s *Storage) setsKey() string {
	return fmt.Sprintf("%s:sets", s.cfg.KeyPrefix)
}

// totSetsKey returns the scalar set count; its presence marks saved state
func (s *Storage) totSetsKey() string {
	return fmt.Sprintf("%s:tot_sets", s.cfg.KeyPrefix)
}
