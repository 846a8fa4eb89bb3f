package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ziggy/pkg/domain/interfaces"
	"github.com/secmon-lab/ziggy/pkg/domain/model"
	"github.com/secmon-lab/ziggy/pkg/domain/types"
)

// SendInput is one round of postings to dispatch
type SendInput struct {
	Teams      []model.Record
	Rooms      []model.Record
	Template   model.MessageTemplate
	SettingsID types.SettingsID
}

// Preview is a rendered room message that has not been sent
type Preview struct {
	Room    model.MatchedRoom
	Request *model.DispatchRequest
}

// PostingOption is a functional option for configuring Posting
type PostingOption func(*Posting)

// WithSettings fills blank template fields from stored settings
func WithSettings(settings *Settings) PostingOption {
	return func(p *Posting) {
		p.settings = settings
	}
}

// WithReporter publishes outcomes after a dispatch run
func WithReporter(reporter interfaces.Reporter) PostingOption {
	return func(p *Posting) {
		p.reporter = reporter
	}
}

// Posting runs validation, matching and dispatch for one round
type Posting struct {
	matcher    *Matcher
	dispatcher *Dispatcher
	settings   *Settings
	reporter   interfaces.Reporter
}

// NewPosting creates a new Posting use case
func NewPosting(matcher *Matcher, dispatcher *Dispatcher, opts ...PostingOption) *Posting {
	p := &Posting{
		matcher:    matcher,
		dispatcher: dispatcher,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Template resolves and validates the message template of the input
func (p *Posting) Template(ctx context.Context, in *SendInput) (model.MessageTemplate, error) {
	tmpl := in.Template
	if p.settings != nil {
		resolved, err := p.settings.Resolve(ctx, in.SettingsID, tmpl)
		if err != nil {
			return tmpl, err
		}
		tmpl = resolved
	}
	if err := p.dispatcher.Validate(tmpl); err != nil {
		return tmpl, err
	}
	return tmpl, nil
}

// Send validates the template, matches rooms and dispatches every room.
// Fatal errors return no outcome. Per-room failures are listed in the
// returned outcome.
func (p *Posting) Send(ctx context.Context, in *SendInput) (*model.DispatchOutcome, error) {
	tmpl, err := p.Template(ctx, in)
	if err != nil {
		return nil, err
	}

	matched, err := p.matcher.Match(ctx, in.Teams, in.Rooms)
	if err != nil {
		return nil, err
	}

	ctxlog.From(ctx).Info("Dispatching postings",
		"round", tmpl.Round,
		"rooms", len(matched))

	return p.dispatcher.Dispatch(ctx, matched, tmpl)
}

// Match validates the input tables and resolves recipients without sending
func (p *Posting) Match(ctx context.Context, teams, rooms []model.Record) ([]model.MatchedRoom, error) {
	return p.matcher.Match(ctx, teams, rooms)
}

// Preview renders every room's message without sending it
func (p *Posting) Preview(ctx context.Context, in *SendInput) ([]Preview, error) {
	tmpl, err := p.Template(ctx, in)
	if err != nil {
		return nil, err
	}

	matched, err := p.matcher.Match(ctx, in.Teams, in.Rooms)
	if err != nil {
		return nil, err
	}

	previews := make([]Preview, 0, len(matched))
	for _, room := range matched {
		req, err := BuildRequest(tmpl, room)
		if err != nil {
			return nil, err
		}
		previews = append(previews, Preview{Room: room, Request: req})
	}
	return previews, nil
}

// Report publishes the outcome when a reporter is configured
func (p *Posting) Report(ctx context.Context, outcome *model.DispatchOutcome) error {
	if p.reporter == nil || outcome == nil {
		return nil
	}
	if err := p.reporter.Report(ctx, outcome); err != nil {
		return goerr.Wrap(err, "failed to report dispatch outcome",
			goerr.V("batch_id", outcome.BatchID))
	}
	return nil
}
