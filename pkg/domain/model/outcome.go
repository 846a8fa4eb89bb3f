package model

import (
	"encoding/json"

	"github.com/secmon-lab/ziggy/pkg/domain/types"
)

// RoomFailure records a room whose notification could not be delivered
type RoomFailure struct {
	Room  RoomRecord
	Cause error
}

// MarshalJSON renders the cause as its message
func (f RoomFailure) MarshalJSON() ([]byte, error) {
	cause := ""
	if f.Cause != nil {
		cause = f.Cause.Error()
	}
	return json.Marshal(struct {
		Room  RoomRecord `json:"room"`
		Cause string     `json:"cause"`
	}{
		Room:  f.Room,
		Cause: cause,
	})
}

// DispatchOutcome is the aggregate result of one dispatch run
type DispatchOutcome struct {
	BatchID types.BatchID `json:"batch_id"`
	// RoomCount is the number of rooms attempted
	RoomCount int `json:"room_count"`
	// ParticipantCount covers every attempted room, failed ones included
	ParticipantCount int `json:"participant_count"`
	// DeliveredParticipants covers successfully sent rooms only
	DeliveredParticipants int `json:"delivered_participants"`
	// Errors is ordered by room input order
	Errors []RoomFailure `json:"errors"`
	// Canceled is set when the run stopped before all rooms were attempted
	Canceled bool `json:"canceled"`
}

// NewDispatchOutcome creates an empty outcome for a new batch
func NewDispatchOutcome() *DispatchOutcome {
	return &DispatchOutcome{
		BatchID: types.NewBatchID(),
		Errors:  []RoomFailure{},
	}
}

// Delivered returns the number of rooms sent successfully
func (o *DispatchOutcome) Delivered() int {
	return o.RoomCount - len(o.Errors)
}

// HasErrors reports whether any room failed
func (o *DispatchOutcome) HasErrors() bool {
	return len(o.Errors) > 0
}
