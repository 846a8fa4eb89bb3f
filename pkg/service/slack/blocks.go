package slack

import (
	"fmt"
	"strings"

	"github.com/secmon-lab/ziggy/pkg/domain/model"
	"github.com/slack-go/slack"
)

// maxFailureLines caps listed failures to stay under Slack's block limits
const maxFailureLines = 10

// outcomeEmoji returns emoji based on how much of the batch was delivered
func outcomeEmoji(outcome *model.DispatchOutcome) string {
	switch {
	case outcome.Canceled:
		return "⏹️"
	case outcome.RoomCount > 0 && outcome.Delivered() == 0:
		return "🚨"
	case outcome.HasErrors():
		return "⚠️"
	default:
		return "✅"
	}
}

// OutcomeText is the plain-text fallback of an outcome report
func OutcomeText(outcome *model.DispatchOutcome) string {
	return fmt.Sprintf("%s Postings sent to %d of %d rooms (%d participants)",
		outcomeEmoji(outcome), outcome.Delivered(), outcome.RoomCount, outcome.DeliveredParticipants)
}

// BuildOutcomeBlocks creates the Slack message blocks summarizing a dispatch run
func BuildOutcomeBlocks(outcome *model.DispatchOutcome) []slack.Block {
	blocks := []slack.Block{
		slack.NewHeaderBlock(
			slack.NewTextBlockObject(slack.PlainTextType,
				fmt.Sprintf("%s Debate postings dispatched", outcomeEmoji(outcome)), true, false),
		),
		slack.NewSectionBlock(nil, []*slack.TextBlockObject{
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Rooms:*\n%d", outcome.RoomCount), false, false),
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Participants:*\n%d", outcome.ParticipantCount), false, false),
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Delivered:*\n%d rooms / %d participants", outcome.Delivered(), outcome.DeliveredParticipants), false, false),
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Failed:*\n%d", len(outcome.Errors)), false, false),
		}, nil),
	}

	if outcome.Canceled {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, "_The run was canceled before every room was attempted._", false, false),
			nil, nil,
		))
	}

	if outcome.HasErrors() {
		var lines []string
		for i, failure := range outcome.Errors {
			if i == maxFailureLines {
				lines = append(lines, fmt.Sprintf("…and %d more", len(outcome.Errors)-maxFailureLines))
				break
			}
			cause := "unknown error"
			if failure.Cause != nil {
				cause = failure.Cause.Error()
			}
			lines = append(lines, fmt.Sprintf("• %s: %s", failure.Room, cause))
		}

		blocks = append(blocks,
			slack.NewDividerBlock(),
			slack.NewSectionBlock(
				slack.NewTextBlockObject(slack.MarkdownType, "*Failed rooms*\n"+strings.Join(lines, "\n"), false, false),
				nil, nil,
			),
		)
	}

	blocks = append(blocks, slack.NewContextBlock("",
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("Batch `%s`", outcome.BatchID), false, false),
	))

	return blocks
}
