package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/ziggy/pkg/domain/interfaces/mocks"
	"github.com/secmon-lab/ziggy/pkg/domain/model"
	"github.com/secmon-lab/ziggy/pkg/domain/types"
	"github.com/secmon-lab/ziggy/pkg/repository"
	"github.com/secmon-lab/ziggy/pkg/usecase"
)

func TestSettings(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns defaults when nothing is stored", func(t *testing.T) {
		uc := usecase.NewSettings(repository.NewMemory(), nil)
		settings, err := uc.Get(ctx, "")
		gt.NoError(t, err).Required()
		gt.Equal(t, types.DefaultSettingsID, settings.ID)
		gt.Equal(t, "Debate - Postings", settings.Template.Subject)
		gt.Equal(t, types.RoundNumber(1), settings.Template.Round)
	})

	t.Run("Update merges non-blank fields", func(t *testing.T) {
		uc := usecase.NewSettings(repository.NewMemory(), nil)

		updated, err := uc.Update(ctx, "", &model.Settings{
			Template: model.MessageTemplate{From: "tab@x.com", Round: 4},
		})
		gt.NoError(t, err).Required()
		gt.Equal(t, types.Address("tab@x.com"), updated.Template.From)
		gt.Equal(t, "Debate - Postings", updated.Template.Subject)
		gt.False(t, updated.UpdatedAt.IsZero())

		stored, err := uc.Get(ctx, types.DefaultSettingsID)
		gt.NoError(t, err).Required()
		gt.Equal(t, types.RoundNumber(4), stored.Template.Round)
	})

	t.Run("Reset restores defaults", func(t *testing.T) {
		uc := usecase.NewSettings(repository.NewMemory(), nil)
		_, err := uc.Update(ctx, "", &model.Settings{
			Template: model.MessageTemplate{Subject: "custom"},
		})
		gt.NoError(t, err).Required()
		gt.NoError(t, uc.Reset(ctx, ""))

		settings, err := uc.Get(ctx, "")
		gt.NoError(t, err).Required()
		gt.Equal(t, "Debate - Postings", settings.Template.Subject)
	})

	t.Run("Custom defaults", func(t *testing.T) {
		defaults := model.DefaultSettings()
		defaults.Template.From = "noreply@tournament.org"
		uc := usecase.NewSettings(repository.NewMemory(), defaults)

		tmpl, err := uc.Resolve(ctx, "", model.MessageTemplate{Subject: "Finals"})
		gt.NoError(t, err).Required()
		gt.Equal(t, types.Address("noreply@tournament.org"), tmpl.From)
		gt.Equal(t, "Finals", tmpl.Subject)
		gt.Equal(t, types.RoundNumber(1), tmpl.Round)
	})

	t.Run("Repository failure is returned", func(t *testing.T) {
		repoErr := errors.New("connection refused")
		repo := &mocks.RepositoryMock{
			GetSettingsFunc: func(ctx context.Context, id types.SettingsID) (*model.Settings, error) {
				return nil, repoErr
			},
		}
		uc := usecase.NewSettings(repo, nil)
		_, err := uc.Get(ctx, "")
		gt.Error(t, err)
		gt.True(t, errors.Is(err, repoErr))
	})
}
