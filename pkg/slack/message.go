package slack

import (
	"fmt"
	"strings"

	goslack "github.com/slack-go/slack"

	"github.com/tarsy-labs/checklist-rag/pkg/checklist"
)

const maxBlockTextLength = 2900

var priorityEmoji = map[checklist.Priority]string{
	checklist.PriorityHigh:   ":red_circle:",
	checklist.PriorityMedium: ":large_yellow_circle:",
	checklist.PriorityLow:    ":white_circle:",
}

func checklistURL(alertID, dashboardURL string) string {
	if dashboardURL == "" {
		return ""
	}
	return fmt.Sprintf("%s/checklists/%s", dashboardURL, alertID)
}

// BuildChecklistMessage renders a generated checklist as Block Kit blocks: a
// header with the alert summary, one line per step prefixed by its priority
// emoji, and an optional "View in Dashboard" button.
func BuildChecklistMessage(c checklist.Checklist, dashboardURL string) []goslack.Block {
	header := fmt.Sprintf(":clipboard: *Remediation checklist for `%s`*\n%s", c.AlertID, c.Summary)
	blocks := []goslack.Block{
		goslack.NewSectionBlock(
			goslack.NewTextBlockObject(goslack.MarkdownType, header, false, false),
			nil, nil,
		),
	}

	var lines []string
	for _, step := range c.Steps {
		emoji := priorityEmoji[step.Priority]
		if emoji == "" {
			emoji = ":white_circle:"
		}
		lines = append(lines, fmt.Sprintf("%s *%d.* %s", emoji, step.Order, step.Instruction))
	}
	if len(lines) > 0 {
		blocks = append(blocks, goslack.NewSectionBlock(
			goslack.NewTextBlockObject(goslack.MarkdownType, truncateForSlack(strings.Join(lines, "\n")), false, false),
			nil, nil,
		))
	}

	if url := checklistURL(c.AlertID, dashboardURL); url != "" {
		btn := goslack.NewButtonBlockElement("", "", goslack.NewTextBlockObject(goslack.PlainTextType, "View in Dashboard", false, false))
		btn.URL = url
		blocks = append(blocks, goslack.NewActionBlock("", btn))
	}

	return blocks
}

func truncateForSlack(text string) string {
	if len(text) <= maxBlockTextLength {
		return text
	}
	return text[:maxBlockTextLength] + "\n\n_... (truncated — view full checklist in dashboard)_"
}
