package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ziggy/pkg/domain/types"
	slackSvc "github.com/secmon-lab/ziggy/pkg/service/slack"
	"github.com/urfave/cli/v3"
)

// Slack holds configuration of the outcome reporter
type Slack struct {
	OAuthToken string
	Channel    string
}

// Flags returns CLI flags for Slack configuration
func (s *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-oauth-token",
			Usage:       "Slack OAuth token used to post dispatch reports",
			Category:    "Slack",
			Sources:     cli.EnvVars("ZIGGY_SLACK_OAUTH_TOKEN"),
			Destination: &s.OAuthToken,
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel ID receiving dispatch reports",
			Category:    "Slack",
			Sources:     cli.EnvVars("ZIGGY_SLACK_CHANNEL"),
			Destination: &s.Channel,
		},
	}
}

// ConfigureOptional creates a verified reporter, or nil when Slack is not configured
func (s *Slack) ConfigureOptional(ctx context.Context, logger *slog.Logger) (*slackSvc.Reporter, error) {
	if s.OAuthToken == "" && s.Channel == "" {
		logger.Debug("Slack not configured, dispatch reports are disabled")
		return nil, nil
	}
	if !s.IsConfigured() {
		return nil, goerr.New("both --slack-oauth-token and --slack-channel are required for reports")
	}

	reporter := slackSvc.NewReporter(slackSvc.NewClientAdapter(s.OAuthToken), types.ChannelID(s.Channel))
	if err := reporter.Verify(ctx); err != nil {
		return nil, err
	}
	return reporter, nil
}

// IsConfigured checks if Slack is properly configured
func (s *Slack) IsConfigured() bool {
	return s.OAuthToken != "" && s.Channel != ""
}

// LogValue returns structured log value
func (s Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("has_oauth_token", s.OAuthToken != ""),
		slog.String("channel", s.Channel),
	)
}
