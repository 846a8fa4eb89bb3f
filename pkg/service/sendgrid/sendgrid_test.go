package sendgrid_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/ziggy/pkg/domain/model"
	"github.com/secmon-lab/ziggy/pkg/domain/types"
	"github.com/secmon-lab/ziggy/pkg/service/sendgrid"
)

type capturedMail struct {
	From struct {
		Email string `json:"email"`
	} `json:"from"`
	ReplyTo *struct {
		Email string `json:"email"`
	} `json:"reply_to"`
	Subject          string `json:"subject"`
	Personalizations []struct {
		To []struct {
			Email string `json:"email"`
		} `json:"to"`
	} `json:"personalizations"`
	Content []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"content"`
}

func newServer(t *testing.T, status int, captured *capturedMail, authHeader *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.Equal(t, "/v3/mail/send", r.URL.Path)
		gt.Equal(t, http.MethodPost, r.Method)
		if authHeader != nil {
			*authHeader = r.Header.Get("Authorization")
		}
		body, err := io.ReadAll(r.Body)
		gt.NoError(t, err)
		if captured != nil {
			gt.NoError(t, json.Unmarshal(body, captured))
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"errors":[{"message":"test"}]}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func sampleRequest() *model.DispatchRequest {
	return &model.DispatchRequest{
		From:     "tab@x.com",
		ReplyTo:  "director@x.com",
		Subject:  "Debate - Postings",
		To:       []types.Address{"a1@x.com", "b1@x.com", "b2@x.com"},
		BodyHTML: "<p>Hello,</p>",
	}
}

func TestClient_Send(t *testing.T) {
	t.Run("Posts one personalization with every recipient", func(t *testing.T) {
		var captured capturedMail
		var auth string
		srv := newServer(t, http.StatusAccepted, &captured, &auth)

		client := sendgrid.New("SG.test-key", sendgrid.WithHost(srv.URL))
		gt.NoError(t, client.Send(context.Background(), sampleRequest()))

		gt.Equal(t, "Bearer SG.test-key", auth)
		gt.Equal(t, "tab@x.com", captured.From.Email)
		gt.Equal(t, "Debate - Postings", captured.Subject)
		gt.A(t, captured.Personalizations).Length(1)
		gt.A(t, captured.Personalizations[0].To).Length(3)
		gt.Equal(t, "b2@x.com", captured.Personalizations[0].To[2].Email)
		gt.V(t, captured.ReplyTo).NotNil()
		gt.Equal(t, "director@x.com", captured.ReplyTo.Email)
		gt.A(t, captured.Content).Length(1)
		gt.Equal(t, "text/html", captured.Content[0].Type)
		gt.Equal(t, "<p>Hello,</p>", captured.Content[0].Value)
	})

	t.Run("Reply-to is omitted when blank", func(t *testing.T) {
		var captured capturedMail
		srv := newServer(t, http.StatusAccepted, &captured, nil)

		req := sampleRequest()
		req.ReplyTo = ""
		gt.NoError(t, sendgrid.New("key", sendgrid.WithHost(srv.URL)).Send(context.Background(), req))
		gt.Nil(t, captured.ReplyTo)
	})

	testCases := []struct {
		name   string
		status int
		target error
	}{
		{"Unauthorized", http.StatusUnauthorized, model.ErrInvalidCredentials},
		{"Not found", http.StatusNotFound, model.ErrServiceUnavailable},
		{"Bad request", http.StatusBadRequest, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newServer(t, tc.status, nil, nil)
			err := sendgrid.New("key", sendgrid.WithHost(srv.URL)).Send(context.Background(), sampleRequest())
			gt.Error(t, err)
			if tc.target != nil {
				gt.True(t, errors.Is(err, tc.target))
			} else {
				gt.False(t, errors.Is(err, model.ErrInvalidCredentials))
				gt.False(t, errors.Is(err, model.ErrServiceUnavailable))
				gt.S(t, err.Error()).Contains("400")
			}
		})
	}

	t.Run("Nil request", func(t *testing.T) {
		gt.Error(t, sendgrid.New("key").Send(context.Background(), nil))
	})
}
