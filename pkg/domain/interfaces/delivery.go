package interfaces

//go:generate moq -out mocks/delivery_mock.go -pkg mocks . Sender Reporter

import (
	"context"

	"github.com/secmon-lab/ziggy/pkg/domain/model"
)

// Sender delivers one rendered room message. Adapters translate transport
// failures (rejected credentials, unreachable endpoint, HTTP status codes)
// into errors; the dispatcher only distinguishes success from failure.
type Sender interface {
	Send(ctx context.Context, req *model.DispatchRequest) error
}

// Reporter publishes the outcome of a dispatch run
type Reporter interface {
	Report(ctx context.Context, outcome *model.DispatchOutcome) error
}
