package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ziggy/pkg/domain/model"
	"github.com/secmon-lab/ziggy/pkg/domain/types"
	"github.com/secmon-lab/ziggy/pkg/utils/table"
	"github.com/urfave/cli/v3"
)

// Form holds the per-round message fields and input files. Blank values
// are filled from stored settings.
type Form struct {
	TeamFile    string
	RoundFile   string
	From        string
	ReplyTo     string
	Subject     string
	Information string
	Round       int
}

// Flags returns CLI flags for the message form
func (f *Form) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "team-file",
			Aliases:     []string{"t"},
			Usage:       "Team data CSV (Team, Email 1, Email 2)",
			Category:    "Form",
			Destination: &f.TeamFile,
		},
		&cli.StringFlag{
			Name:        "round-file",
			Aliases:     []string{"r"},
			Usage:       "Round data CSV (AFF, NEG)",
			Category:    "Form",
			Destination: &f.RoundFile,
		},
		&cli.StringFlag{
			Name:        "from",
			Usage:       "Sender address",
			Category:    "Form",
			Sources:     cli.EnvVars("ZIGGY_FROM"),
			Destination: &f.From,
		},
		&cli.StringFlag{
			Name:        "reply-to",
			Usage:       "Reply-to address",
			Category:    "Form",
			Sources:     cli.EnvVars("ZIGGY_REPLY_TO"),
			Destination: &f.ReplyTo,
		},
		&cli.StringFlag{
			Name:        "subject",
			Usage:       "Message subject",
			Category:    "Form",
			Destination: &f.Subject,
		},
		&cli.StringFlag{
			Name:        "information",
			Usage:       "Additional information appended to every message",
			Category:    "Form",
			Destination: &f.Information,
		},
		&cli.IntFlag{
			Name:        "round",
			Usage:       "Round number",
			Category:    "Form",
			Destination: &f.Round,
		},
	}
}

// Template returns the message fields given on the command line
func (f *Form) Template() model.MessageTemplate {
	return model.MessageTemplate{
		From:        types.Address(f.From),
		ReplyTo:     types.Address(f.ReplyTo),
		Subject:     f.Subject,
		Round:       types.RoundNumber(f.Round),
		Information: f.Information,
	}
}

// Files returns the input file paths, falling back to stored ones
func (f *Form) Files(stored *model.Settings) (teamFile, roundFile string, err error) {
	teamFile, roundFile = f.TeamFile, f.RoundFile
	if stored != nil {
		if teamFile == "" {
			teamFile = stored.TeamFile
		}
		if roundFile == "" {
			roundFile = stored.RoundFile
		}
	}

	if teamFile == "" {
		return "", "", goerr.New("please choose a team file (--team-file)")
	}
	if roundFile == "" {
		return "", "", goerr.New("please choose a round file (--round-file)")
	}
	return teamFile, roundFile, nil
}

// Tables loads team and round data
func (f *Form) Tables(stored *model.Settings) (teams, rooms []model.Record, err error) {
	teamFile, roundFile, err := f.Files(stored)
	if err != nil {
		return nil, nil, err
	}

	if teams, err = table.Load(teamFile); err != nil {
		return nil, nil, goerr.Wrap(err, "failed to load team data")
	}
	if rooms, err = table.Load(roundFile); err != nil {
		return nil, nil, goerr.Wrap(err, "failed to load round data")
	}
	return teams, rooms, nil
}

// Settings converts the form into a settings update
func (f *Form) Settings() *model.Settings {
	return &model.Settings{
		Template:  f.Template(),
		TeamFile:  f.TeamFile,
		RoundFile: f.RoundFile,
	}
}

// LogValue returns structured log value
func (f Form) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("team_file", f.TeamFile),
		slog.String("round_file", f.RoundFile),
		slog.String("from", f.From),
		slog.String("subject", f.Subject),
		slog.Int("round", f.Round),
	)
}
