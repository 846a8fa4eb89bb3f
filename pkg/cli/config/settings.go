package config

import (
	"context"
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ziggy/pkg/domain/interfaces"
	"github.com/secmon-lab/ziggy/pkg/domain/model"
	"github.com/secmon-lab/ziggy/pkg/domain/types"
	"github.com/secmon-lab/ziggy/pkg/usecase"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// SettingsFile is the YAML layout of the settings file
type SettingsFile struct {
	model.Settings `yaml:",inline"`
	Schema         *model.Schema `yaml:"schema,omitempty"`
}

// Settings holds the settings file location and profile
type Settings struct {
	Path    string
	Profile string

	file *SettingsFile
}

// Flags returns CLI flags for Settings configuration
func (s *Settings) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "settings-file",
			Usage:       "YAML file with form defaults and column names",
			Category:    "Settings",
			Sources:     cli.EnvVars("ZIGGY_SETTINGS_FILE"),
			Destination: &s.Path,
		},
		&cli.StringFlag{
			Name:        "settings-profile",
			Usage:       "Stored settings profile",
			Category:    "Settings",
			Value:       types.DefaultSettingsID.String(),
			Sources:     cli.EnvVars("ZIGGY_SETTINGS_PROFILE"),
			Destination: &s.Profile,
		},
	}
}

// Load reads the settings file once. Without a path the built-in defaults apply.
func (s *Settings) Load() (*SettingsFile, error) {
	if s.file != nil {
		return s.file, nil
	}

	file := &SettingsFile{Settings: *model.DefaultSettings()}
	if s.Path != "" {
		loaded, err := LoadSettingsFromFile(s.Path)
		if err != nil {
			return nil, err
		}
		file = loaded
	}

	s.file = file
	return file, nil
}

// ID returns the selected settings profile
func (s *Settings) ID() types.SettingsID {
	if s.Profile == "" {
		return types.DefaultSettingsID
	}
	return types.SettingsID(s.Profile)
}

// Schema returns the column layout from the settings file or the default
func (s *Settings) Schema() (model.Schema, error) {
	file, err := s.Load()
	if err != nil {
		return model.Schema{}, err
	}
	if file.Schema == nil {
		return model.DefaultSchema(), nil
	}
	return *file.Schema, nil
}

// Configure creates the settings use case backed by repo
func (s *Settings) Configure(ctx context.Context, repo interfaces.Repository) (*usecase.Settings, error) {
	file, err := s.Load()
	if err != nil {
		return nil, err
	}
	defaults := file.Settings
	return usecase.NewSettings(repo, &defaults), nil
}

// LogValue returns structured log value
func (s Settings) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("path", s.Path),
		slog.String("profile", s.Profile),
	)
}

// LoadSettingsFromFile loads form defaults from a YAML file. Blank fields
// keep the built-in defaults.
func LoadSettingsFromFile(path string) (*SettingsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(err, "settings file not found",
				goerr.V("path", path))
		}
		return nil, goerr.Wrap(err, "failed to read settings file",
			goerr.V("path", path))
	}

	var file SettingsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse YAML settings",
			goerr.V("path", path))
	}

	defaults := model.DefaultSettings()
	defaults.Merge(&file.Settings)
	file.Settings = *defaults

	if file.Schema != nil {
		if err := validateSchema(file.Schema); err != nil {
			return nil, goerr.Wrap(err, "invalid settings file", goerr.V("path", path))
		}
	}

	return &file, nil
}

func validateSchema(schema *model.Schema) error {
	if schema.TeamColumn == "" || schema.AffColumn == "" || schema.NegColumn == "" {
		return goerr.New("schema needs team_column, aff_column and neg_column")
	}
	if len(schema.EmailColumns) == 0 {
		return goerr.New("schema needs at least one email column")
	}
	return nil
}
