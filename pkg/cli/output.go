package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/secmon-lab/ziggy/pkg/domain/model"
	"github.com/secmon-lab/ziggy/pkg/domain/types"
)

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	t.SetHeader(header)
	t.SetAutoWrapText(false)
	t.SetAutoFormatHeaders(false)
	return t
}

func joinAddresses(addrs []types.Address) string {
	return (&model.DispatchRequest{To: addrs}).ToField()
}

// printMatched lists every room with its recipients
func printMatched(w io.Writer, matched []model.MatchedRoom, mode model.CountMode) {
	t := newTable(w, "Room", "Affirmative", "Negative", "Participants", "Recipients")
	for _, room := range matched {
		t.Append([]string{
			strconv.Itoa(room.Room.Index),
			room.Room.Affirmative,
			room.Room.Negative,
			strconv.Itoa(room.ParticipantCount(mode)),
			joinAddresses(room.Recipients),
		})
	}
	t.Render()

	total := lo.SumBy(matched, func(room model.MatchedRoom) int {
		return room.ParticipantCount(mode)
	})
	fmt.Fprintf(w, "%d rooms and %d participants matched.\n", len(matched), total)
}

// printOutcome lists failed rooms and the summary line
func printOutcome(w io.Writer, outcome *model.DispatchOutcome) {
	if outcome.HasErrors() {
		t := newTable(w, "Room", "Affirmative", "Negative", "Error")
		for _, failure := range outcome.Errors {
			cause := ""
			if failure.Cause != nil {
				cause = failure.Cause.Error()
			}
			t.Append([]string{
				strconv.Itoa(failure.Room.Index),
				failure.Room.Affirmative,
				failure.Room.Negative,
				cause,
			})
		}
		t.Render()
		fmt.Fprintf(w, "%d of %d rooms could not be sent.\n", len(outcome.Errors), outcome.RoomCount)
	}
	if outcome.Canceled {
		fmt.Fprintln(w, "Sending was canceled before every room was attempted.")
	}

	fmt.Fprintf(w, "The message was sent to %d rooms and %d participants.\n",
		outcome.Delivered(), outcome.DeliveredParticipants)
}
