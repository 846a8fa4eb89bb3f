package model

import (
	"strings"
	"time"

	"github.com/secmon-lab/ziggy/pkg/domain/types"
)

// Settings are the stored form defaults used when a send request leaves
// fields blank
type Settings struct {
	ID        types.SettingsID `json:"id" yaml:"-"`
	Template  MessageTemplate  `json:"template" yaml:"template"`
	TeamFile  string           `json:"team_file,omitempty" yaml:"team_file"`
	RoundFile string           `json:"round_file,omitempty" yaml:"round_file"`
	UpdatedAt time.Time        `json:"updated_at" yaml:"-"`
}

// DefaultSettings returns the built-in defaults
func DefaultSettings() *Settings {
	return &Settings{
		ID: types.DefaultSettingsID,
		Template: MessageTemplate{
			Subject: "Debate - Postings",
			Round:   1,
		},
	}
}

// Apply fills blank fields of tmpl with the stored values
func (s *Settings) Apply(tmpl MessageTemplate) MessageTemplate {
	if s == nil {
		return tmpl
	}
	if tmpl.From.IsBlank() {
		tmpl.From = s.Template.From
	}
	if tmpl.ReplyTo.IsBlank() {
		tmpl.ReplyTo = s.Template.ReplyTo
	}
	if strings.TrimSpace(tmpl.Subject) == "" {
		tmpl.Subject = s.Template.Subject
	}
	if tmpl.Round.IsZero() {
		tmpl.Round = s.Template.Round
	}
	if strings.TrimSpace(tmpl.Information) == "" {
		tmpl.Information = s.Template.Information
	}
	return tmpl
}

// Merge overwrites stored values with the non-blank fields of update
func (s *Settings) Merge(update *Settings) {
	if update == nil {
		return
	}
	s.Template = update.Template.withDefaults(s.Template)
	if update.TeamFile != "" {
		s.TeamFile = update.TeamFile
	}
	if update.RoundFile != "" {
		s.RoundFile = update.RoundFile
	}
}

func (t MessageTemplate) withDefaults(base MessageTemplate) MessageTemplate {
	return (&Settings{Template: base}).Apply(t)
}
