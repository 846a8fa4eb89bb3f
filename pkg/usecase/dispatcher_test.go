package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/ziggy/pkg/domain/interfaces/mocks"
	"github.com/secmon-lab/ziggy/pkg/domain/model"
	"github.com/secmon-lab/ziggy/pkg/domain/types"
	"github.com/secmon-lab/ziggy/pkg/usecase"
)

func validTemplate() model.MessageTemplate {
	return model.MessageTemplate{
		From:    "tab@x.com",
		Subject: "Debate - Postings",
		Round:   1,
	}
}

func matchedRooms(n int) []model.MatchedRoom {
	rooms := make([]model.MatchedRoom, 0, n)
	for i := range n {
		rooms = append(rooms, model.MatchedRoom{
			Room:       model.RoomRecord{Index: i + 1, Affirmative: "A", Negative: "B"},
			Recipients: []types.Address{"a@x.com", "b@x.com"},
			SlotCount:  4,
		})
	}
	return rooms
}

func TestDispatcher_Dispatch(t *testing.T) {
	ctx := context.Background()

	t.Run("Sends one message per room in order", func(t *testing.T) {
		sender := &mocks.SenderMock{
			SendFunc: func(ctx context.Context, req *model.DispatchRequest) error {
				return nil
			},
		}
		dispatcher := usecase.NewDispatcher(sender)

		outcome, err := dispatcher.Dispatch(ctx, matchedRooms(3), validTemplate())
		gt.NoError(t, err).Required()

		calls := sender.SendCalls()
		gt.A(t, calls).Length(3)
		for _, call := range calls {
			gt.Equal(t, types.Address("tab@x.com"), call.Req.From)
			gt.Equal(t, []types.Address{"a@x.com", "b@x.com"}, call.Req.To)
			gt.S(t, call.Req.BodyHTML).Contains("Affirmative A vs. Negative B")
		}

		gt.Equal(t, 3, outcome.RoomCount)
		gt.Equal(t, 6, outcome.ParticipantCount)
		gt.Equal(t, 6, outcome.DeliveredParticipants)
		gt.Equal(t, 3, outcome.Delivered())
		gt.False(t, outcome.HasErrors())
		gt.False(t, outcome.Canceled)
		gt.True(t, strings.HasPrefix(outcome.BatchID.String(), "batch-"))
	})

	t.Run("Failed rooms are recorded and the batch continues", func(t *testing.T) {
		sendErr := goerr.Wrap(model.ErrServiceUnavailable, "sendgrid returned 404")
		sender := &mocks.SenderMock{
			SendFunc: func(ctx context.Context, req *model.DispatchRequest) error {
				if len(req.To) == 1 {
					return sendErr
				}
				return nil
			},
		}
		rooms := matchedRooms(4)
		rooms[1].Recipients = []types.Address{"solo@x.com"}
		rooms[3].Recipients = []types.Address{"solo@x.com"}

		outcome, err := usecase.NewDispatcher(sender).Dispatch(ctx, rooms, validTemplate())
		gt.NoError(t, err).Required()
		gt.A(t, sender.SendCalls()).Length(4)

		gt.Equal(t, 4, outcome.RoomCount)
		gt.A(t, outcome.Errors).Length(2)
		gt.Equal(t, 2, outcome.Errors[0].Room.Index)
		gt.Equal(t, 4, outcome.Errors[1].Room.Index)
		// failed rooms are still counted
		gt.Equal(t, 6, outcome.ParticipantCount)
		gt.Equal(t, 4, outcome.DeliveredParticipants)
		gt.Equal(t, 2, outcome.Delivered())

		cause := outcome.Errors[0].Cause
		gt.True(t, goerr.HasTag(cause, model.ErrTagDelivery))
		gt.True(t, errors.Is(cause, model.ErrServiceUnavailable))
		gt.S(t, cause.Error()).Contains("room 2")
	})

	t.Run("Every room failing still returns an outcome", func(t *testing.T) {
		sender := &mocks.SenderMock{
			SendFunc: func(ctx context.Context, req *model.DispatchRequest) error {
				return model.ErrInvalidCredentials
			},
		}
		outcome, err := usecase.NewDispatcher(sender).Dispatch(ctx, matchedRooms(2), validTemplate())
		gt.NoError(t, err).Required()
		gt.A(t, outcome.Errors).Length(2)
		gt.Equal(t, 0, outcome.DeliveredParticipants)
		gt.True(t, errors.Is(outcome.Errors[1].Cause, model.ErrInvalidCredentials))
	})

	t.Run("Slot counting includes blank slots", func(t *testing.T) {
		sender := &mocks.SenderMock{
			SendFunc: func(ctx context.Context, req *model.DispatchRequest) error {
				return nil
			},
		}
		dispatcher := usecase.NewDispatcher(sender, usecase.WithCountMode(model.CountSlots))
		outcome, err := dispatcher.Dispatch(ctx, matchedRooms(2), validTemplate())
		gt.NoError(t, err).Required()
		gt.Equal(t, 8, outcome.ParticipantCount)
	})

	t.Run("Cancellation stops before the next room", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		defer cancel()

		sender := &mocks.SenderMock{
			SendFunc: func(ctx context.Context, req *model.DispatchRequest) error {
				cancel()
				return nil
			},
		}
		outcome, err := usecase.NewDispatcher(sender).Dispatch(cctx, matchedRooms(3), validTemplate())
		gt.Error(t, err)
		gt.True(t, errors.Is(err, context.Canceled))
		gt.V(t, outcome).NotNil()
		gt.True(t, outcome.Canceled)
		gt.Equal(t, 1, outcome.RoomCount)
		gt.A(t, sender.SendCalls()).Length(1)
	})

	t.Run("Rate limit keeps every room", func(t *testing.T) {
		sender := &mocks.SenderMock{
			SendFunc: func(ctx context.Context, req *model.DispatchRequest) error {
				return nil
			},
		}
		dispatcher := usecase.NewDispatcher(sender, usecase.WithRateLimit(1000))
		outcome, err := dispatcher.Dispatch(ctx, matchedRooms(5), validTemplate())
		gt.NoError(t, err).Required()
		gt.Equal(t, 5, outcome.RoomCount)
	})
}

func TestDispatcher_Validate(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(*model.MessageTemplate)
		field  string
	}{
		{
			name:   "Missing from",
			modify: func(m *model.MessageTemplate) { m.From = " " },
			field:  "from address",
		},
		{
			name:   "Missing subject",
			modify: func(m *model.MessageTemplate) { m.Subject = "" },
			field:  "missing subject",
		},
		{
			name:   "Subject of 78 characters",
			modify: func(m *model.MessageTemplate) { m.Subject = strings.Repeat("s", 78) },
			field:  "subject too long",
		},
		{
			name:   "Missing round",
			modify: func(m *model.MessageTemplate) { m.Round = 0 },
			field:  "round number",
		},
		{
			name: "From is checked first",
			modify: func(m *model.MessageTemplate) {
				m.From = ""
				m.Subject = ""
				m.Round = 0
			},
			field: "from address",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sender := &mocks.SenderMock{}
			tmpl := validTemplate()
			tc.modify(&tmpl)

			outcome, err := usecase.NewDispatcher(sender).Dispatch(context.Background(), matchedRooms(2), tmpl)
			gt.Error(t, err)
			gt.True(t, errors.Is(err, model.ErrValidation))
			gt.S(t, err.Error()).Contains(tc.field)
			gt.Nil(t, outcome)
			gt.A(t, sender.SendCalls()).Length(0)
		})
	}

	t.Run("Subject of 77 characters is accepted", func(t *testing.T) {
		tmpl := validTemplate()
		tmpl.Subject = strings.Repeat("s", 77)
		gt.NoError(t, usecase.NewDispatcher(&mocks.SenderMock{}).Validate(tmpl))
	})

	t.Run("Subject length counts characters", func(t *testing.T) {
		tmpl := validTemplate()
		tmpl.Subject = strings.Repeat("é", 77)
		gt.NoError(t, usecase.NewDispatcher(&mocks.SenderMock{}).Validate(tmpl))
	})

	t.Run("Subject bound can be disabled", func(t *testing.T) {
		tmpl := validTemplate()
		tmpl.Subject = strings.Repeat("s", 200)
		dispatcher := usecase.NewDispatcher(&mocks.SenderMock{}, usecase.WithMaxSubjectLength(0))
		gt.NoError(t, dispatcher.Validate(tmpl))
	})
}
