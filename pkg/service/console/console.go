package console

import (
	"context"
	"sync"

	"github.com/m-mizutani/ctxlog"
	"github.com/secmon-lab/ziggy/pkg/domain/interfaces"
	"github.com/secmon-lab/ziggy/pkg/domain/model"
)

// Sender logs each message instead of delivering it
type Sender struct {
	mu    sync.Mutex
	count int
}

var _ interfaces.Sender = (*Sender)(nil)

// New creates a dry-run sender
func New() *Sender {
	return &Sender{}
}

// Send logs the rendered message and always succeeds
func (s *Sender) Send(ctx context.Context, req *model.DispatchRequest) error {
	s.mu.Lock()
	s.count++
	n := s.count
	s.mu.Unlock()

	ctxlog.From(ctx).Info("Dry-run message",
		"seq", n,
		"from", req.From,
		"reply_to", req.ReplyTo,
		"to", req.ToField(),
		"subject", req.Subject,
		"body", req.BodyHTML,
	)
	return nil
}

// Count returns the number of messages logged so far
func (s *Sender) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}
