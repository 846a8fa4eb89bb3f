package usecase

import (
	"context"
	"fmt"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ziggy/pkg/domain/model"
)

const (
	// DefaultMaxRooms is the exclusive upper bound of rooms in one batch
	DefaultMaxRooms = 3000
	// DefaultMaxRecipients is the exclusive upper bound of recipients per room
	DefaultMaxRecipients = 10000
)

// MatcherConfig holds configuration for Matcher
type MatcherConfig struct {
	schema        model.Schema
	maxRooms      int
	maxRecipients int
}

// MatcherOption is a functional option for configuring Matcher
type MatcherOption func(*MatcherConfig)

// WithSchema sets the column names of team and room data
func WithSchema(schema model.Schema) MatcherOption {
	return func(c *MatcherConfig) {
		c.schema = schema
	}
}

// WithMaxRooms sets the room bound. Zero or less disables the check.
func WithMaxRooms(n int) MatcherOption {
	return func(c *MatcherConfig) {
		c.maxRooms = n
	}
}

// WithMaxRecipients sets the per-room recipient bound. Zero or less disables the check.
func WithMaxRecipients(n int) MatcherOption {
	return func(c *MatcherConfig) {
		c.maxRecipients = n
	}
}

// Matcher resolves the recipients of every room from the team roster
type Matcher struct {
	config *MatcherConfig
}

// NewMatcher creates a new Matcher with default bounds and optional settings
func NewMatcher(opts ...MatcherOption) *Matcher {
	config := &MatcherConfig{
		schema:        model.DefaultSchema(),
		maxRooms:      DefaultMaxRooms,
		maxRecipients: DefaultMaxRecipients,
	}
	for _, opt := range opts {
		opt(config)
	}
	return &Matcher{config: config}
}

// Schema returns the column layout the matcher validates against
func (m *Matcher) Schema() model.Schema {
	return m.config.schema
}

// Match validates raw team and room rows and resolves recipients per room.
// Validation runs in order (team columns, room columns, room count) and
// nothing is returned when any check fails.
func (m *Matcher) Match(ctx context.Context, teamRows, roomRows []model.Record) ([]model.MatchedRoom, error) {
	teams, err := m.config.schema.Teams(teamRows)
	if err != nil {
		return nil, err
	}
	rooms, err := m.config.schema.Rooms(roomRows)
	if err != nil {
		return nil, err
	}
	return m.MatchRecords(ctx, teams, rooms)
}

// MatchRecords resolves recipients for already converted records. Every
// team row whose name equals the room's AFF or NEG contributes its
// addresses, so duplicated team rows contribute once per row.
func (m *Matcher) MatchRecords(ctx context.Context, teams []model.TeamRecord, rooms []model.RoomRecord) ([]model.MatchedRoom, error) {
	if len(teams) == 0 {
		return nil, goerr.Wrap(model.ErrSchema, "team data is empty")
	}
	if len(rooms) == 0 {
		return nil, goerr.Wrap(model.ErrSchema, "round data is empty")
	}
	if m.config.maxRooms > 0 && len(rooms) >= m.config.maxRooms {
		return nil, goerr.Wrap(model.ErrCapacity,
			fmt.Sprintf("too many rooms in one batch, there must be fewer than %d", m.config.maxRooms),
			goerr.V("rooms", len(rooms)),
			goerr.V("max", m.config.maxRooms))
	}

	index := newTeamIndex(teams)
	matched := make([]model.MatchedRoom, 0, len(rooms))

	for _, room := range rooms {
		result := model.MatchedRoom{Room: room}
		for _, team := range index.lookup(room.Affirmative, room.Negative) {
			result.SlotCount += len(team.Slots)
			result.Recipients = append(result.Recipients, team.Emails()...)
		}

		if len(result.Recipients) == 0 {
			return nil, goerr.Wrap(model.ErrEmptyRecipients,
				fmt.Sprintf("there are no recipients for %s, double check the team data and round data for errors", room),
				goerr.V("room", room.Index),
				goerr.V("aff", room.Affirmative),
				goerr.V("neg", room.Negative))
		}
		if m.config.maxRecipients > 0 && len(result.Recipients) >= m.config.maxRecipients {
			return nil, goerr.Wrap(model.ErrCapacity,
				fmt.Sprintf("there must be fewer than %d recipients per room, %s has %d", m.config.maxRecipients, room, len(result.Recipients)),
				goerr.V("room", room.Index),
				goerr.V("recipients", len(result.Recipients)),
				goerr.V("max", m.config.maxRecipients))
		}

		matched = append(matched, result)
	}

	ctxlog.From(ctx).Debug("Rooms matched",
		"rooms", len(matched),
		"teams", len(teams),
	)

	return matched, nil
}

// teamIndex maps team names to row positions, keeping every row
type teamIndex struct {
	teams  []model.TeamRecord
	byName map[string][]int
}

func newTeamIndex(teams []model.TeamRecord) *teamIndex {
	idx := &teamIndex{
		teams:  teams,
		byName: make(map[string][]int, len(teams)),
	}
	for i, team := range teams {
		idx.byName[team.Team] = append(idx.byName[team.Team], i)
	}
	return idx
}

// lookup returns the rows matching either name in roster order. A row
// matching both names is returned once.
func (x *teamIndex) lookup(aff, neg string) []model.TeamRecord {
	positions := x.byName[aff]
	if neg != aff {
		positions = mergeSorted(positions, x.byName[neg])
	}

	result := make([]model.TeamRecord, 0, len(positions))
	for _, pos := range positions {
		result = append(result, x.teams[pos])
	}
	return result
}

func mergeSorted(a, b []int) []int {
	merged := make([]int, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i] < b[j] {
			merged = append(merged, a[i])
			i++
		} else {
			merged = append(merged, b[j])
			j++
		}
	}
	merged = append(merged, a[i:]...)
	return append(merged, b[j:]...)
}
