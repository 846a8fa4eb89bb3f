package slack

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ziggy/pkg/domain/interfaces"
	"github.com/secmon-lab/ziggy/pkg/domain/model"
	"github.com/secmon-lab/ziggy/pkg/domain/types"
	"github.com/slack-go/slack"
)

// Reporter posts dispatch outcomes to a Slack channel
type Reporter struct {
	client    interfaces.SlackClient
	channelID types.ChannelID
}

var _ interfaces.Reporter = (*Reporter)(nil)

// NewReporter creates a new Reporter
func NewReporter(client interfaces.SlackClient, channelID types.ChannelID) *Reporter {
	return &Reporter{
		client:    client,
		channelID: channelID,
	}
}

// Verify checks that the token is valid before any report is posted
func (r *Reporter) Verify(ctx context.Context) error {
	resp, err := r.client.AuthTestContext(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to verify Slack token")
	}

	ctxlog.From(ctx).Info("Slack reporter authenticated",
		"team", resp.Team,
		"user", resp.User,
		"channel", r.channelID,
	)
	return nil
}

// Report posts the outcome summary to the configured channel
func (r *Reporter) Report(ctx context.Context, outcome *model.DispatchOutcome) error {
	if outcome == nil {
		return goerr.New("outcome is nil")
	}

	channel, ts, err := r.client.PostMessage(ctx, string(r.channelID),
		slack.MsgOptionText(OutcomeText(outcome), false),
		slack.MsgOptionBlocks(BuildOutcomeBlocks(outcome)...),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post dispatch report",
			goerr.V("channel", r.channelID),
			goerr.V("batch_id", outcome.BatchID))
	}

	ctxlog.From(ctx).Debug("Dispatch report posted",
		"channel", channel,
		"ts", ts,
		"batch_id", outcome.BatchID,
	)
	return nil
}
