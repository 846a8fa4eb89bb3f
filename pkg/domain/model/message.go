package model

import (
	"strings"

	"github.com/samber/lo"
	"github.com/secmon-lab/ziggy/pkg/domain/types"
)

// MessageTemplate holds the values shared by every message of a round
type MessageTemplate struct {
	From        types.Address     `json:"from" yaml:"from"`
	ReplyTo     types.Address     `json:"reply_to,omitempty" yaml:"reply_to"`
	Subject     string            `json:"subject" yaml:"subject"`
	Round       types.RoundNumber `json:"round" yaml:"round"`
	Information string            `json:"information,omitempty" yaml:"information"`
}

// DispatchRequest is one rendered message handed to a Sender
type DispatchRequest struct {
	From     types.Address
	ReplyTo  types.Address
	Subject  string
	To       []types.Address
	BodyHTML string
}

// ToField renders all recipients as one shared "to" field. Every
// recipient of a room sees the others.
func (r *DispatchRequest) ToField() string {
	return strings.Join(lo.Map(r.To, func(a types.Address, _ int) string {
		return a.String()
	}), ", ")
}

// HasReplyTo reports whether a reply-to address is set
func (r *DispatchRequest) HasReplyTo() bool {
	return !r.ReplyTo.IsBlank()
}
