package usecase

import (
	"bytes"
	"html/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ziggy/pkg/domain/model"
)

// postingBody is the fixed HTML skeleton of a room notification. Every
// substituted value is escaped by html/template.
var postingBody = template.Must(template.New("posting").Parse(
	`<!DOCTYPE html><html><head><meta charset="UTF-8"></head><body>` +
		`<p>Hello,</p>` +
		`<p>Your debate round {{.Round}} pairing is as follows: Affirmative {{.Affirmative}} vs. Negative {{.Negative}}.</p>` +
		`<p>{{.Information}}</p>` +
		`</body></html>`))

// RenderBody renders the HTML body of one room's message
func RenderBody(tmpl model.MessageTemplate, room model.RoomRecord) (string, error) {
	var buf bytes.Buffer
	if err := postingBody.Execute(&buf, struct {
		Round       string
		Affirmative string
		Negative    string
		Information string
	}{
		Round:       tmpl.Round.String(),
		Affirmative: room.Affirmative,
		Negative:    room.Negative,
		Information: tmpl.Information,
	}); err != nil {
		return "", goerr.Wrap(err, "failed to render message body",
			goerr.V("room", room.Index))
	}
	return buf.String(), nil
}

// BuildRequest renders the message for one matched room. All recipients
// share a single "to" field.
func BuildRequest(tmpl model.MessageTemplate, room model.MatchedRoom) (*model.DispatchRequest, error) {
	body, err := RenderBody(tmpl, room.Room)
	if err != nil {
		return nil, err
	}
	return &model.DispatchRequest{
		From:     tmpl.From.Trim(),
		ReplyTo:  tmpl.ReplyTo.Trim(),
		Subject:  tmpl.Subject,
		To:       room.Recipients,
		BodyHTML: body,
	}, nil
}
