package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for matching and dispatch. Callers distinguish error
// kinds with errors.Is; context values are attached with goerr.V.
var (
	// ErrSchema indicates missing columns or empty team/room data
	ErrSchema = goerr.New("invalid table schema")
	// ErrCapacity indicates too many rooms in a batch or recipients in a room
	ErrCapacity = goerr.New("capacity exceeded")
	// ErrEmptyRecipients indicates a room that matched no addresses
	ErrEmptyRecipients = goerr.New("no recipients")
	// ErrValidation indicates an invalid message template
	ErrValidation = goerr.New("validation failed")

	// ErrInvalidCredentials is reported by senders when the API key is rejected
	ErrInvalidCredentials = goerr.New("invalid credentials")
	// ErrServiceUnavailable is reported by senders when the endpoint cannot be found
	ErrServiceUnavailable = goerr.New("service unavailable")

	ErrSettingsNotFound = goerr.New("settings not found")
)

// ErrTagDelivery marks the cause of a room whose notification could not be
// sent. It never aborts a batch.
var ErrTagDelivery = goerr.NewTag("delivery_failure")
