package sendgrid

import (
	"context"
	"fmt"
	"net/http"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ziggy/pkg/domain/interfaces"
	"github.com/secmon-lab/ziggy/pkg/domain/model"
	"github.com/sendgrid/rest"
	sg "github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const (
	// DefaultHost is the SendGrid API endpoint
	DefaultHost = "https://api.sendgrid.com"

	sendEndpoint = "/v3/mail/send"
)

// Option configures the SendGrid client
type Option func(*Client)

// WithHost overrides the API host
func WithHost(host string) Option {
	return func(c *Client) {
		c.host = host
	}
}

// Client sends room notifications through the SendGrid v3 mail API
type Client struct {
	apiKey string
	host   string
}

var _ interfaces.Sender = (*Client)(nil)

// New creates a new SendGrid client
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey: apiKey,
		host:   DefaultHost,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send posts one message. All recipients share a single personalization so
// they see each other in the "to" field.
func (c *Client) Send(ctx context.Context, req *model.DispatchRequest) error {
	if req == nil {
		return goerr.New("dispatch request is nil")
	}

	request := sg.GetRequest(c.apiKey, sendEndpoint, c.host)
	request.Method = rest.Post
	request.Body = mail.GetRequestBody(buildMail(req))

	resp, err := sg.MakeRequestWithContext(ctx, request)
	if err != nil {
		return goerr.Wrap(err, "failed to call SendGrid API", goerr.V("to", req.ToField()))
	}

	if err := classify(resp); err != nil {
		return err
	}

	ctxlog.From(ctx).Debug("SendGrid accepted message",
		"status", resp.StatusCode,
		"recipients", len(req.To),
	)
	return nil
}

func buildMail(req *model.DispatchRequest) *mail.SGMailV3 {
	p := mail.NewPersonalization()
	for _, to := range req.To {
		p.AddTos(mail.NewEmail("", to.String()))
	}

	m := mail.NewV3Mail()
	m.SetFrom(mail.NewEmail("", req.From.String()))
	m.Subject = req.Subject
	m.AddPersonalizations(p)
	m.AddContent(mail.NewContent("text/html", req.BodyHTML))
	if req.HasReplyTo() {
		m.SetReplyTo(mail.NewEmail("", req.ReplyTo.String()))
	}
	return m
}

func classify(resp *rest.Response) error {
	switch {
	case resp.StatusCode < http.StatusMultipleChoices:
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return goerr.Wrap(model.ErrInvalidCredentials,
			"SendGrid rejected your request. Make sure you are using a valid API key.",
			goerr.V("status", resp.StatusCode))
	case resp.StatusCode == http.StatusNotFound:
		return goerr.Wrap(model.ErrServiceUnavailable,
			"SendGrid could not be reached. Check your internet connection and try again.",
			goerr.V("status", resp.StatusCode))
	default:
		return goerr.New(fmt.Sprintf("SendGrid returned status %d", resp.StatusCode),
			goerr.V("status", resp.StatusCode),
			goerr.V("body", resp.Body))
	}
}
