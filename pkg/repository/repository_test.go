package repository_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/ziggy/pkg/domain/interfaces"
	"github.com/secmon-lab/ziggy/pkg/domain/model"
	"github.com/secmon-lab/ziggy/pkg/domain/types"
	"github.com/secmon-lab/ziggy/pkg/repository"
)

func newSettingsID() types.SettingsID {
	return types.SettingsID(fmt.Sprintf("settings-%d", time.Now().UnixNano()))
}

func testRepository(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Run("PutSettings", func(t *testing.T) {
		repo := newRepo(t)
		defer repo.Close()

		ctx := context.Background()
		settings := &model.Settings{
			ID: newSettingsID(),
			Template: model.MessageTemplate{
				From:        "tab@x.com",
				ReplyTo:     "director@x.com",
				Subject:     "Round 3",
				Round:       3,
				Information: "Bring your own timer.",
			},
			TeamFile:  "teams.csv",
			RoundFile: "round3.csv",
			UpdatedAt: time.Now(),
		}

		gt.NoError(t, repo.PutSettings(ctx, settings))

		retrieved, err := repo.GetSettings(ctx, settings.ID)
		gt.NoError(t, err).Required()
		gt.Equal(t, settings.ID, retrieved.ID)
		gt.Equal(t, settings.Template, retrieved.Template)
		gt.Equal(t, settings.TeamFile, retrieved.TeamFile)
		gt.Equal(t, settings.RoundFile, retrieved.RoundFile)
		// Timestamp comparison with tolerance for storage precision
		gt.True(t, settings.UpdatedAt.Sub(retrieved.UpdatedAt).Abs() < time.Second)
	})

	t.Run("PutSettings_Overwrite", func(t *testing.T) {
		repo := newRepo(t)
		defer repo.Close()

		ctx := context.Background()
		id := newSettingsID()
		gt.NoError(t, repo.PutSettings(ctx, &model.Settings{
			ID:       id,
			Template: model.MessageTemplate{Subject: "first", Round: 1},
		}))
		gt.NoError(t, repo.PutSettings(ctx, &model.Settings{
			ID:       id,
			Template: model.MessageTemplate{Subject: "second", Round: 2},
		}))

		retrieved, err := repo.GetSettings(ctx, id)
		gt.NoError(t, err).Required()
		gt.Equal(t, "second", retrieved.Template.Subject)
		gt.Equal(t, types.RoundNumber(2), retrieved.Template.Round)
	})

	t.Run("GetSettings_NotFound", func(t *testing.T) {
		repo := newRepo(t)
		defer repo.Close()

		_, err := repo.GetSettings(context.Background(), newSettingsID())
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrSettingsNotFound))
	})

	t.Run("DeleteSettings", func(t *testing.T) {
		repo := newRepo(t)
		defer repo.Close()

		ctx := context.Background()
		id := newSettingsID()
		gt.NoError(t, repo.PutSettings(ctx, &model.Settings{ID: id}))
		gt.NoError(t, repo.DeleteSettings(ctx, id))

		_, err := repo.GetSettings(ctx, id)
		gt.True(t, errors.Is(err, model.ErrSettingsNotFound))

		// deleting again is fine
		gt.NoError(t, repo.DeleteSettings(ctx, id))
	})

	t.Run("EmptyID", func(t *testing.T) {
		repo := newRepo(t)
		defer repo.Close()

		ctx := context.Background()
		_, err := repo.GetSettings(ctx, "")
		gt.Error(t, err)
		gt.Error(t, repo.PutSettings(ctx, &model.Settings{}))
		gt.Error(t, repo.PutSettings(ctx, nil))
		gt.Error(t, repo.DeleteSettings(ctx, ""))
	})
}

func TestMemoryRepository(t *testing.T) {
	testRepository(t, func(t *testing.T) interfaces.Repository {
		return repository.NewMemory()
	})
}

func TestMemoryRepository_ReturnsCopy(t *testing.T) {
	repo := repository.NewMemory()
	ctx := context.Background()

	gt.NoError(t, repo.PutSettings(ctx, &model.Settings{
		ID:       types.DefaultSettingsID,
		Template: model.MessageTemplate{Subject: "kept"},
	}))

	retrieved, err := repo.GetSettings(ctx, types.DefaultSettingsID)
	gt.NoError(t, err).Required()
	retrieved.Template.Subject = "changed"

	again, err := repo.GetSettings(ctx, types.DefaultSettingsID)
	gt.NoError(t, err).Required()
	gt.Equal(t, "kept", again.Template.Subject)
}

func TestFirestoreRepository(t *testing.T) {
	// Skip test if Firestore test environment variables are not set
	projectID := os.Getenv("TEST_FIRESTORE_PROJECT")
	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE")

	if projectID == "" || databaseID == "" {
		t.Skip("Skipping Firestore test: TEST_FIRESTORE_PROJECT and TEST_FIRESTORE_DATABASE must be set")
	}

	testRepository(t, func(t *testing.T) interfaces.Repository {
		ctx := context.Background()
		logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
		ctx = ctxlog.With(ctx, logger)

		repo, err := repository.NewFirestore(ctx, projectID, databaseID)
		gt.NoError(t, err)
		return repo
	})
}
