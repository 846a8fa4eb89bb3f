package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ziggy/pkg/domain/interfaces"
	"github.com/secmon-lab/ziggy/pkg/domain/model"
	"github.com/secmon-lab/ziggy/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	settingsCollection = "settings"
)

// Firestore implements Repository interface with Firestore
type Firestore struct {
	client *firestore.Client
}

// NewFirestore creates a new Firestore repository
func NewFirestore(ctx context.Context, projectID, databaseID string) (interfaces.Repository, error) {
	logger := ctxlog.From(ctx)

	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client")
	}

	// Fail fast on an invalid project or missing permissions
	_, err = client.Collection(settingsCollection).Limit(1).Documents(ctx).Next()
	if err != nil && err != iterator.Done {
		if status.Code(err) == codes.PermissionDenied || status.Code(err) == codes.Unauthenticated {
			_ = client.Close()
			return nil, goerr.Wrap(err, "failed to connect to firestore project",
				goerr.V("firestore error code", status.Code(err).String()),
			)
		}
		logger.Debug("Firestore connection test returned error (may be empty collection)",
			"error", err,
			"errorCode", status.Code(err).String(),
		)
	}

	logger.Info("Firestore repository initialized successfully",
		"projectID", projectID,
		"databaseID", databaseID,
	)

	return &Firestore{
		client: client,
	}, nil
}

// GetSettings retrieves settings by ID
func (f *Firestore) GetSettings(ctx context.Context, id types.SettingsID) (*model.Settings, error) {
	if id == "" {
		return nil, goerr.New("settings ID is empty")
	}

	doc, err := f.client.Collection(settingsCollection).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrSettingsNotFound, "settings not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get settings from firestore", goerr.V("id", id))
	}

	var settings model.Settings
	if err := doc.DataTo(&settings); err != nil {
		return nil, goerr.Wrap(err, "failed to decode settings", goerr.V("id", id))
	}
	settings.ID = id

	return &settings, nil
}

// PutSettings saves settings to Firestore
func (f *Firestore) PutSettings(ctx context.Context, settings *model.Settings) error {
	if settings == nil {
		return goerr.New("settings is nil")
	}
	if settings.ID == "" {
		return goerr.New("settings ID is empty")
	}

	_, err := f.client.Collection(settingsCollection).Doc(settings.ID.String()).Set(ctx, settings)
	if err != nil {
		return goerr.Wrap(err, "failed to save settings to firestore", goerr.V("id", settings.ID))
	}

	return nil
}

// DeleteSettings removes settings from Firestore. Deleting missing
// settings is not an error.
func (f *Firestore) DeleteSettings(ctx context.Context, id types.SettingsID) error {
	if id == "" {
		return goerr.New("settings ID is empty")
	}

	if _, err := f.client.Collection(settingsCollection).Doc(id.String()).Delete(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil
		}
		return goerr.Wrap(err, "failed to delete settings from firestore", goerr.V("id", id))
	}

	return nil
}

// Close closes the Firestore client
func (f *Firestore) Close() error {
	return f.client.Close()
}
