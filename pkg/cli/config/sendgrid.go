package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ziggy/pkg/domain/interfaces"
	"github.com/secmon-lab/ziggy/pkg/service/console"
	"github.com/secmon-lab/ziggy/pkg/service/sendgrid"
	"github.com/urfave/cli/v3"
)

const (
	SenderSendGrid = "sendgrid"
	SenderConsole  = "console"
)

// Delivery selects and configures the mail sender
type Delivery struct {
	Sender string
	APIKey string
	Host   string
}

// Flags returns CLI flags for Delivery configuration
func (d *Delivery) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sender",
			Usage:       "Mail sender (sendgrid, console). console only logs messages",
			Category:    "Delivery",
			Value:       SenderSendGrid,
			Sources:     cli.EnvVars("ZIGGY_SENDER"),
			Destination: &d.Sender,
		},
		&cli.StringFlag{
			Name:        "sendgrid-api-key",
			Usage:       "SendGrid API key",
			Category:    "Delivery",
			Sources:     cli.EnvVars("ZIGGY_SENDGRID_API_KEY", "SENDGRID_API_KEY"),
			Destination: &d.APIKey,
		},
		&cli.StringFlag{
			Name:        "sendgrid-host",
			Usage:       "SendGrid API host",
			Category:    "Delivery",
			Value:       sendgrid.DefaultHost,
			Sources:     cli.EnvVars("ZIGGY_SENDGRID_HOST"),
			Destination: &d.Host,
		},
	}
}

// Configure creates the selected sender
func (d *Delivery) Configure() (interfaces.Sender, error) {
	switch d.Sender {
	case SenderConsole:
		return console.New(), nil
	case SenderSendGrid, "":
		if d.APIKey == "" {
			return nil, goerr.New("SendGrid API key is required. Set ZIGGY_SENDGRID_API_KEY or use --sender console")
		}
		return sendgrid.New(d.APIKey, sendgrid.WithHost(d.Host)), nil
	default:
		return nil, goerr.New("invalid sender", goerr.V("sender", d.Sender))
	}
}

// LogValue returns structured log value
func (d Delivery) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("sender", d.Sender),
		slog.Bool("has_api_key", d.APIKey != ""),
		slog.String("host", d.Host),
	)
}
