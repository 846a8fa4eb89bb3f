package repository

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ziggy/pkg/domain/interfaces"
	"github.com/secmon-lab/ziggy/pkg/domain/model"
	"github.com/secmon-lab/ziggy/pkg/domain/types"
)

// Memory implements Repository interface with in-memory storage
type Memory struct {
	mu       sync.RWMutex
	settings map[types.SettingsID]*model.Settings
}

// NewMemory creates a new memory repository
func NewMemory() interfaces.Repository {
	return &Memory{
		settings: make(map[types.SettingsID]*model.Settings),
	}
}

// GetSettings retrieves settings by ID
func (m *Memory) GetSettings(ctx context.Context, id types.SettingsID) (*model.Settings, error) {
	if id == "" {
		return nil, goerr.New("settings ID is empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	stored, exists := m.settings[id]
	if !exists {
		return nil, goerr.Wrap(model.ErrSettingsNotFound, "settings not found", goerr.V("id", id))
	}

	// Return a copy to prevent external modification
	settingsCopy := *stored
	return &settingsCopy, nil
}

// PutSettings saves settings, replacing any stored under the same ID
func (m *Memory) PutSettings(ctx context.Context, settings *model.Settings) error {
	if settings == nil {
		return goerr.New("settings is nil")
	}
	if settings.ID == "" {
		return goerr.New("settings ID is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	settingsCopy := *settings
	m.settings[settings.ID] = &settingsCopy
	return nil
}

// DeleteSettings removes settings. Deleting missing settings is not an error.
func (m *Memory) DeleteSettings(ctx context.Context, id types.SettingsID) error {
	if id == "" {
		return goerr.New("settings ID is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.settings, id)
	return nil
}

// Close is a no-op for memory repository
func (m *Memory) Close() error {
	return nil
}
