package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mcoot/elotrack/internal/model"
	"github.com/mcoot/elotrack/internal/services/ladder"
	"github.com/mcoot/elotrack/internal/services/matchset"
	"github.com/mcoot/elotrack/internal/services/report"
)

const separator = "--------------------------------------------------------------"

// Output handles formatting output based on the configured format
type Output struct {
	format string
	out    io.Writer
	errOut io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, out, errOut io.Writer) *Output {
	return &Output{format: format, out: out, errOut: errOut}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		data, _ := json.Marshal(ErrorResponse{Error: toCLIError(err)})
		fmt.Fprintln(o.errOut, string(data))
	} else {
		fmt.Fprintf(o.errOut, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.out, string(data))
	} else {
		fmt.Fprintln(o.out, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.out)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		fmt.Fprintln(o.out, v.String())
	case AddResult:
		o.printAddResult(v)
	case RecordResult:
		o.printRecordResult(v)
	case Roster:
		o.printRoster(v)
	case History:
		o.printHistory(v)
	case Overview:
		o.printOverview(v)
	case TransferResult:
		fmt.Fprintf(o.out, "Copied %d players and %d sets to %s storage\n", v.Players, v.Sets, v.To)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player is the output form of a player
type Player struct {
	Name    string  `json:"name"`
	Rating  float64 `json:"rating"`
	Games   int     `json:"games"`
	Ordinal int32   `json:"ordinal"`
}

func newPlayer(p model.Player) Player {
	return Player{
		Name:    p.Name,
		Rating:  p.Rating,
		Games:   p.Games,
		Ordinal: int32(p.Ordinal),
	}
}

// String renders the player as "Display Name - 1216"
func (p Player) String() string {
	return formatPlayer(p.Name, p.Rating)
}

func formatPlayer(name string, rating float64) string {
	return fmt.Sprintf("%s - %.0f", model.Player{Name: name}.DisplayName(), rating)
}

// RankedPlayer is a player with its position in a listing
type RankedPlayer struct {
	Rank int `json:"rank"`
	Player
}

// Roster is a ranked player listing
type Roster struct {
	// Days is the activity window, or nil for an unfiltered roster
	Days    *int           `json:"active_days,omitempty"`
	Players []RankedPlayer `json:"players"`
}

func newRoster(ranked []report.RankedPlayer, days *int) Roster {
	r := Roster{Days: days, Players: make([]RankedPlayer, 0, len(ranked))}
	for _, rp := range ranked {
		r.Players = append(r.Players, RankedPlayer{Rank: rp.Rank, Player: newPlayer(rp.Player)})
	}
	return r
}

// Set is the output form of a recorded set
type Set struct {
	PlayerA string `json:"player_a"`
	PlayerB string `json:"player_b"`
	WinsA   int    `json:"wins_a"`
	WinsB   int    `json:"wins_b"`
	Date    string `json:"date"`
}

func newSet(e ladder.HistoryEntry) Set {
	return Set{
		PlayerA: e.NameA,
		PlayerB: e.NameB,
		WinsA:   e.Set.Score.WinsA,
		WinsB:   e.Set.Score.WinsB,
		Date:    e.Set.DateString(),
	}
}

// String renders the set as "A 4 - 2 B -- 2024-01-05"
func (s Set) String() string {
	return fmt.Sprintf("%s %d - %d %s -- %s", s.PlayerA, s.WinsA, s.WinsB, s.PlayerB, s.Date)
}

// History is a list of sets in recording order
type History struct {
	Sets []Set `json:"sets"`
}

func newHistory(entries []ladder.HistoryEntry) History {
	h := History{Sets: make([]Set, 0, len(entries))}
	for _, e := range entries {
		h.Sets = append(h.Sets, newSet(e))
	}
	return h
}

// AddResult reports an add attempt
type AddResult struct {
	Player  Player  `json:"player"`
	Created bool    `json:"created"`
	Active  *Roster `json:"active,omitempty"`
}

// RecordResult reports what a recorded set did to both players
type RecordResult struct {
	Set    Set     `json:"set"`
	StartA float64 `json:"start_a"`
	StartB float64 `json:"start_b"`
	FinalA float64 `json:"final_a"`
	FinalB float64 `json:"final_b"`
	Tied   int     `json:"tied"`
	ExtraA int     `json:"extra_a"`
	ExtraB int     `json:"extra_b"`
	Active *Roster `json:"active,omitempty"`
}

func newRecordResult(nameA, nameB string, r *matchset.Result) RecordResult {
	return RecordResult{
		Set:    newSet(ladder.HistoryEntry{Set: r.Set, NameA: nameA, NameB: nameB}),
		StartA: r.StartA,
		StartB: r.StartB,
		FinalA: r.FinalA,
		FinalB: r.FinalB,
		Tied:   r.Tied,
		ExtraA: r.ExtraA,
		ExtraB: r.ExtraB,
	}
}

// Overview is everything the bare command prints
type Overview struct {
	All     Roster  `json:"all"`
	History History `json:"history"`
	Active  Roster  `json:"active"`
}

// TransferResult reports a copy between storage backends
type TransferResult struct {
	To      string `json:"to"`
	Players int    `json:"players"`
	Sets    int    `json:"sets"`
}

func (o *Output) printAddResult(a AddResult) {
	if a.Created {
		fmt.Fprintf(o.out, "Added player %s\n", a.Player)
	} else {
		fmt.Fprintf(o.out, "Player %s already exists!\n", a.Player)
	}
	if a.Active != nil {
		fmt.Fprintln(o.out)
		o.printRoster(*a.Active)
	}
}

func (o *Output) printRecordResult(r RecordResult) {
	s := r.Set
	fmt.Fprintf(o.out, "Adding set of %s vs. %s with score %d-%d\n", s.PlayerA, s.PlayerB, s.WinsA, s.WinsB)
	fmt.Fprintf(o.out, "Starting %s ELO = %.2f\n", s.PlayerA, r.StartA)
	fmt.Fprintf(o.out, "Starting %s ELO = %.2f\n", s.PlayerB, r.StartB)
	fmt.Fprintf(o.out, "Added %d tied games, %d extra for %s and %d for %s\n", r.Tied, r.ExtraA, s.PlayerA, r.ExtraB, s.PlayerB)
	fmt.Fprintf(o.out, "Final %s ELO = %.2f\n", s.PlayerA, r.FinalA)
	fmt.Fprintf(o.out, "Final %s ELO = %.2f\n", s.PlayerB, r.FinalB)
	if r.Active != nil {
		fmt.Fprintln(o.out)
		o.printRoster(*r.Active)
	}
}

func (o *Output) printRoster(r Roster) {
	if r.Days != nil {
		fmt.Fprintf(o.out, "## PLAYERS ACTIVE IN THE LAST %d DAYS\n\n", *r.Days)
	} else {
		fmt.Fprint(o.out, "## ALL PLAYERS\n\n")
	}
	if len(r.Players) == 0 {
		fmt.Fprintln(o.out, "No players.")
	}
	for _, rp := range r.Players {
		fmt.Fprintf(o.out, "%d - %s\n", rp.Rank, rp.Player)
	}
	fmt.Fprintln(o.out, separator)
}

func (o *Output) printHistory(h History) {
	if len(h.Sets) == 0 {
		fmt.Fprintln(o.out, "No sets recorded.")
	}
	for _, s := range h.Sets {
		fmt.Fprintln(o.out, s)
	}
}

func (o *Output) printOverview(v Overview) {
	fmt.Fprint(o.out, usageBanner)
	o.printRoster(v.All)
	fmt.Fprintln(o.out, "\nGame history:")
	o.printHistory(v.History)
	fmt.Fprintln(o.out)
	o.printRoster(v.Active)
}

const usageBanner = `Welcome to ELO score tracking! How to use:

    - Adding new player: 'elo Nacho'
    - Adding new player with starting ELO different from default 1200: 'elo Nacho 1400'
    - Adding result for match: 'elo Nacho Danial 4-2'

`
