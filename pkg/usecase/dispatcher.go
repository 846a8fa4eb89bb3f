package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ziggy/pkg/domain/interfaces"
	"github.com/secmon-lab/ziggy/pkg/domain/model"
	"golang.org/x/time/rate"
)

// DefaultMaxSubjectLength is the exclusive subject length bound imposed by
// the SendGrid API
const DefaultMaxSubjectLength = 78

// DispatcherConfig holds configuration for Dispatcher
type DispatcherConfig struct {
	maxSubjectLength int
	countMode        model.CountMode
	limiter          *rate.Limiter
}

// DispatcherOption is a functional option for configuring Dispatcher
type DispatcherOption func(*DispatcherConfig)

// WithMaxSubjectLength sets the subject bound in characters. Zero or less
// disables the check.
func WithMaxSubjectLength(n int) DispatcherOption {
	return func(c *DispatcherConfig) {
		c.maxSubjectLength = n
	}
}

// WithCountMode selects how participants are counted
func WithCountMode(mode model.CountMode) DispatcherOption {
	return func(c *DispatcherConfig) {
		c.countMode = mode
	}
}

// WithRateLimit paces sends to at most r per second. Sends stay sequential.
func WithRateLimit(r float64) DispatcherOption {
	return func(c *DispatcherConfig) {
		if r > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(r), 1)
		}
	}
}

// Dispatcher renders and sends one notification per matched room
type Dispatcher struct {
	sender interfaces.Sender
	config *DispatcherConfig
}

// NewDispatcher creates a new Dispatcher
func NewDispatcher(sender interfaces.Sender, opts ...DispatcherOption) *Dispatcher {
	config := &DispatcherConfig{
		maxSubjectLength: DefaultMaxSubjectLength,
		countMode:        model.CountRecipients,
	}
	for _, opt := range opts {
		opt(config)
	}
	return &Dispatcher{
		sender: sender,
		config: config,
	}
}

// Validate checks the template before any message is sent
func (d *Dispatcher) Validate(tmpl model.MessageTemplate) error {
	if tmpl.From.IsBlank() {
		return goerr.Wrap(model.ErrValidation, "missing from address, please specify one",
			goerr.V("field", "from"))
	}
	if strings.TrimSpace(tmpl.Subject) == "" {
		return goerr.Wrap(model.ErrValidation, "missing subject, please write a subject line",
			goerr.V("field", "subject"))
	}
	if n := utf8.RuneCountInString(tmpl.Subject); d.config.maxSubjectLength > 0 && n >= d.config.maxSubjectLength {
		return goerr.Wrap(model.ErrValidation,
			fmt.Sprintf("subject too long, it must be fewer than %d characters", d.config.maxSubjectLength),
			goerr.V("field", "subject"),
			goerr.V("length", n))
	}
	if tmpl.Round.IsZero() {
		return goerr.Wrap(model.ErrValidation, "missing round number, please specify one",
			goerr.V("field", "round"))
	}
	return nil
}

// Dispatch sends one message per room in input order. A failed send is
// recorded in the outcome and the batch continues. When ctx is done, no
// further rooms are attempted and the partial outcome is returned together
// with the context error. Template validation errors return no outcome.
func (d *Dispatcher) Dispatch(ctx context.Context, matched []model.MatchedRoom, tmpl model.MessageTemplate) (*model.DispatchOutcome, error) {
	if err := d.Validate(tmpl); err != nil {
		return nil, err
	}

	outcome := model.NewDispatchOutcome()
	logger := ctxlog.From(ctx).With("batch_id", outcome.BatchID)

	for i, room := range matched {
		if err := d.wait(ctx); err != nil {
			outcome.Canceled = true
			logger.Warn("Dispatch canceled",
				"attempted", outcome.RoomCount,
				"remaining", len(matched)-i,
				"error", err)
			return outcome, goerr.Wrap(err, "dispatch canceled",
				goerr.V("attempted", outcome.RoomCount),
				goerr.V("rooms", len(matched)))
		}

		participants := room.ParticipantCount(d.config.countMode)
		outcome.RoomCount++
		outcome.ParticipantCount += participants

		if err := d.send(ctx, tmpl, room); err != nil {
			logger.Warn("Failed to send room notification",
				"room", room.Room.Index,
				"of", len(matched),
				"error", err)
			outcome.Errors = append(outcome.Errors, model.RoomFailure{
				Room:  room.Room,
				Cause: err,
			})
			continue
		}

		outcome.DeliveredParticipants += participants
		logger.Debug("Room notification sent",
			"room", room.Room.Index,
			"recipients", len(room.Recipients))
	}

	logger.Info("Dispatch completed",
		"rooms", outcome.RoomCount,
		"participants", outcome.ParticipantCount,
		"failed", len(outcome.Errors))

	return outcome, nil
}

func (d *Dispatcher) send(ctx context.Context, tmpl model.MessageTemplate, room model.MatchedRoom) error {
	req, err := BuildRequest(tmpl, room)
	if err == nil {
		err = d.sender.Send(ctx, req)
	}
	if err != nil {
		return goerr.Wrap(err, fmt.Sprintf("failed to send %s", room.Room),
			goerr.V("room", room.Room.Index),
			goerr.T(model.ErrTagDelivery))
	}
	return nil
}

func (d *Dispatcher) wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d.config.limiter == nil {
		return nil
	}
	return d.config.limiter.Wait(ctx)
}
