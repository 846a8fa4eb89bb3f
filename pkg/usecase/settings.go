package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ziggy/pkg/domain/interfaces"
	"github.com/secmon-lab/ziggy/pkg/domain/model"
	"github.com/secmon-lab/ziggy/pkg/domain/types"
)

// Settings manages stored form defaults
type Settings struct {
	repo     interfaces.Repository
	defaults *model.Settings
}

// NewSettings creates a new Settings use case. defaults is returned when
// nothing is stored; nil falls back to model.DefaultSettings.
func NewSettings(repo interfaces.Repository, defaults *model.Settings) *Settings {
	if defaults == nil {
		defaults = model.DefaultSettings()
	}
	return &Settings{
		repo:     repo,
		defaults: defaults,
	}
}

// Get returns the stored settings or the defaults when none are stored
func (u *Settings) Get(ctx context.Context, id types.SettingsID) (*model.Settings, error) {
	if id == "" {
		id = types.DefaultSettingsID
	}

	stored, err := u.repo.GetSettings(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrSettingsNotFound) {
			result := *u.defaults
			result.ID = id
			return &result, nil
		}
		return nil, goerr.Wrap(err, "failed to get settings", goerr.V("id", id))
	}
	return stored, nil
}

// Update merges non-blank fields of update into the stored settings
func (u *Settings) Update(ctx context.Context, id types.SettingsID, update *model.Settings) (*model.Settings, error) {
	current, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	current.Merge(update)
	current.UpdatedAt = time.Now()

	if err := u.repo.PutSettings(ctx, current); err != nil {
		return nil, goerr.Wrap(err, "failed to save settings", goerr.V("id", current.ID))
	}

	ctxlog.From(ctx).Info("Settings updated", "id", current.ID)
	return current, nil
}

// Reset removes stored settings so the defaults apply again
func (u *Settings) Reset(ctx context.Context, id types.SettingsID) error {
	if id == "" {
		id = types.DefaultSettingsID
	}
	if err := u.repo.DeleteSettings(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to reset settings", goerr.V("id", id))
	}

	ctxlog.From(ctx).Info("Settings reset", "id", id)
	return nil
}

// Resolve fills blank template fields from the stored settings
func (u *Settings) Resolve(ctx context.Context, id types.SettingsID, tmpl model.MessageTemplate) (model.MessageTemplate, error) {
	settings, err := u.Get(ctx, id)
	if err != nil {
		return tmpl, err
	}
	return settings.Apply(tmpl), nil
}
