package interfaces

//go:generate moq -out mocks/repository_mock.go -pkg mocks . Repository

import (
	"context"

	"github.com/secmon-lab/ziggy/pkg/domain/model"
	"github.com/secmon-lab/ziggy/pkg/domain/types"
)

// Repository defines the interface for settings persistence
type Repository interface {
	// GetSettings returns model.ErrSettingsNotFound when nothing is stored
	GetSettings(ctx context.Context, id types.SettingsID) (*model.Settings, error)
	PutSettings(ctx context.Context, settings *model.Settings) error
	DeleteSettings(ctx context.Context, id types.SettingsID) error

	// Close closes the repository connection
	Close() error
}
