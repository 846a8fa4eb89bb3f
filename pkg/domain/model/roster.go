package model

import (
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/samber/lo"
	"github.com/secmon-lab/ziggy/pkg/domain/types"
)

// Record is one row of tabular input data keyed by header name
type Record map[string]string

// Has reports whether the record exposes the column
func (r Record) Has(column string) bool {
	_, ok := r[column]
	return ok
}

// Schema names the columns of team and room data. Names are case-sensitive.
type Schema struct {
	TeamColumn   string   `yaml:"team_column"`
	EmailColumns []string `yaml:"email_columns"`
	AffColumn    string   `yaml:"aff_column"`
	NegColumn    string   `yaml:"neg_column"`
}

// DefaultSchema returns the column layout of the team and round files
func DefaultSchema() Schema {
	return Schema{
		TeamColumn:   "Team",
		EmailColumns: []string{"Email 1", "Email 2"},
		AffColumn:    "AFF",
		NegColumn:    "NEG",
	}
}

// TeamColumns returns the required team data columns in check order
func (s Schema) TeamColumns() []string {
	return append([]string{s.TeamColumn}, s.EmailColumns...)
}

// RoomColumns returns the required room data columns in check order
func (s Schema) RoomColumns() []string {
	return []string{s.AffColumn, s.NegColumn}
}

// Teams validates team records against the schema and converts them.
// The first missing column of the first offending record wins.
func (s Schema) Teams(records []Record) ([]TeamRecord, error) {
	if len(records) == 0 {
		return nil, goerr.Wrap(ErrSchema, "team data is empty")
	}
	if err := checkColumns("team", records, s.TeamColumns()); err != nil {
		return nil, err
	}

	return lo.Map(records, func(r Record, _ int) TeamRecord {
		return TeamRecord{
			Team: r[s.TeamColumn],
			Slots: lo.Map(s.EmailColumns, func(col string, _ int) types.Address {
				return types.Address(r[col])
			}),
		}
	}), nil
}

// Rooms validates room records against the schema and converts them.
// Rooms are numbered from 1 in input order.
func (s Schema) Rooms(records []Record) ([]RoomRecord, error) {
	if len(records) == 0 {
		return nil, goerr.Wrap(ErrSchema, "round data is empty")
	}
	if err := checkColumns("round", records, s.RoomColumns()); err != nil {
		return nil, err
	}

	return lo.Map(records, func(r Record, i int) RoomRecord {
		return RoomRecord{
			Index:       i + 1,
			Affirmative: r[s.AffColumn],
			Negative:    r[s.NegColumn],
		}
	}), nil
}

func checkColumns(kind string, records []Record, columns []string) error {
	for i, r := range records {
		for _, col := range columns {
			if !r.Has(col) {
				return goerr.Wrap(ErrSchema,
					fmt.Sprintf("the %s data is not formatted correctly, make sure it contains this column (case-sensitive): %q", kind, col),
					goerr.V("column", col),
					goerr.V("row", i+1))
			}
		}
	}
	return nil
}

// TeamRecord is one row of team data
type TeamRecord struct {
	Team string
	// Slots holds every e-mail slot of the row, blanks included
	Slots []types.Address
}

// Emails returns the non-blank addresses of the team in slot order
func (t TeamRecord) Emails() []types.Address {
	return lo.FilterMap(t.Slots, func(a types.Address, _ int) (types.Address, bool) {
		return a.Trim(), !a.IsBlank()
	})
}

// RoomRecord is one pairing of an affirmative and a negative team
type RoomRecord struct {
	// Index is the 1-based position of the room in the round data
	Index       int    `json:"index"`
	Affirmative string `json:"aff"`
	Negative    string `json:"neg"`
}

// String identifies the room for error messages and reports
func (r RoomRecord) String() string {
	return fmt.Sprintf("room %d (Affirmative %s vs. Negative %s)", r.Index, r.Affirmative, r.Negative)
}

// CountMode selects how participants of a room are counted
type CountMode int

const (
	// CountRecipients counts non-blank addresses only
	CountRecipients CountMode = iota
	// CountSlots counts every scanned e-mail slot, blanks included
	CountSlots
)

// MatchedRoom is a room with its resolved recipients
type MatchedRoom struct {
	Room RoomRecord `json:"room"`
	// Recipients keeps insertion order and duplicates
	Recipients []types.Address `json:"recipients"`
	// SlotCount is the number of e-mail slots scanned for the room
	SlotCount int `json:"slot_count"`
}

// ParticipantCount returns the number of participants under the given mode
func (m MatchedRoom) ParticipantCount(mode CountMode) int {
	if mode == CountSlots {
		return m.SlotCount
	}
	return len(m.Recipients)
}
