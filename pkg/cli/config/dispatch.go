package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ziggy/pkg/domain/interfaces"
	"github.com/secmon-lab/ziggy/pkg/domain/model"
	"github.com/secmon-lab/ziggy/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// Dispatch holds batch limits and pacing
type Dispatch struct {
	MaxRooms         int
	MaxRecipients    int
	MaxSubjectLength int
	CountMode        string
	RateLimit        float64
}

// Flags returns CLI flags for Dispatch configuration
func (d *Dispatch) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "max-rooms",
			Usage:       "Rooms per batch must be fewer than this (0 disables)",
			Category:    "Dispatch",
			Value:       usecase.DefaultMaxRooms,
			Sources:     cli.EnvVars("ZIGGY_MAX_ROOMS"),
			Destination: &d.MaxRooms,
		},
		&cli.IntFlag{
			Name:        "max-recipients",
			Usage:       "Recipients per room must be fewer than this (0 disables)",
			Category:    "Dispatch",
			Value:       usecase.DefaultMaxRecipients,
			Sources:     cli.EnvVars("ZIGGY_MAX_RECIPIENTS"),
			Destination: &d.MaxRecipients,
		},
		&cli.IntFlag{
			Name:        "max-subject-length",
			Usage:       "Subject must be shorter than this many characters (0 disables)",
			Category:    "Dispatch",
			Value:       usecase.DefaultMaxSubjectLength,
			Sources:     cli.EnvVars("ZIGGY_MAX_SUBJECT_LENGTH"),
			Destination: &d.MaxSubjectLength,
		},
		&cli.StringFlag{
			Name:        "count-mode",
			Usage:       "Participant counting (recipients, slots)",
			Category:    "Dispatch",
			Value:       "recipients",
			Sources:     cli.EnvVars("ZIGGY_COUNT_MODE"),
			Destination: &d.CountMode,
		},
		&cli.FloatFlag{
			Name:        "rate-limit",
			Usage:       "Maximum sends per second (0 means unlimited)",
			Category:    "Dispatch",
			Sources:     cli.EnvVars("ZIGGY_RATE_LIMIT"),
			Destination: &d.RateLimit,
		},
	}
}

// Matcher creates a matcher using the given column layout
func (d *Dispatch) Matcher(schema model.Schema) *usecase.Matcher {
	return usecase.NewMatcher(
		usecase.WithSchema(schema),
		usecase.WithMaxRooms(d.MaxRooms),
		usecase.WithMaxRecipients(d.MaxRecipients),
	)
}

// Dispatcher creates a dispatcher sending through sender
func (d *Dispatch) Dispatcher(sender interfaces.Sender) (*usecase.Dispatcher, error) {
	var mode model.CountMode
	switch d.CountMode {
	case "recipients", "":
		mode = model.CountRecipients
	case "slots":
		mode = model.CountSlots
	default:
		return nil, goerr.New("invalid count mode", goerr.V("mode", d.CountMode))
	}

	return usecase.NewDispatcher(sender,
		usecase.WithMaxSubjectLength(d.MaxSubjectLength),
		usecase.WithCountMode(mode),
		usecase.WithRateLimit(d.RateLimit),
	), nil
}

// LogValue returns structured log value
func (d Dispatch) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("max_rooms", d.MaxRooms),
		slog.Int("max_recipients", d.MaxRecipients),
		slog.Int("max_subject_length", d.MaxSubjectLength),
		slog.String("count_mode", d.CountMode),
		slog.Float64("rate_limit", d.RateLimit),
	)
}
