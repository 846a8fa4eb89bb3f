package types

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// Address represents an e-mail address of a participant
type Address string

// String returns the string representation
func (a Address) String() string {
	return string(a)
}

// IsBlank reports whether the address is empty or whitespace only
func (a Address) IsBlank() bool {
	return strings.TrimSpace(string(a)) == ""
}

// Trim returns the address without surrounding whitespace
func (a Address) Trim() Address {
	return Address(strings.TrimSpace(string(a)))
}

// RoundNumber identifies a debate round. Zero means the round is not set.
type RoundNumber int

// String returns the string representation
func (n RoundNumber) String() string {
	return strconv.Itoa(int(n))
}

// IsZero reports whether the round number is missing
func (n RoundNumber) IsZero() bool {
	return n == 0
}

// ParseRoundNumber parses a round number from user input
func ParseRoundNumber(s string) (RoundNumber, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, goerr.Wrap(err, "round number must be an integer", goerr.V("value", s))
	}
	return RoundNumber(n), nil
}

// BatchID identifies one dispatch run
type BatchID string

// String returns the string representation
func (id BatchID) String() string {
	return string(id)
}

// NewBatchID creates a new BatchID
func NewBatchID() BatchID {
	return BatchID(fmt.Sprintf("batch-%s", uuid.New().String()))
}

// SettingsID identifies a stored settings profile
type SettingsID string

// DefaultSettingsID is the profile used when none is specified
const DefaultSettingsID SettingsID = "default"

// String returns the string representation
func (id SettingsID) String() string {
	return string(id)
}

// ChannelID represents a Slack channel identifier
type ChannelID string

// String returns the string representation
func (id ChannelID) String() string {
	return string(id)
}
