package slack

import (
	"regexp"
	"strings"

	goslack "github.com/slack-go/slack"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// normalizeText lowercases s and collapses runs of whitespace to a single
// space, so fingerprint matching is tolerant of Slack's text reformatting.
func normalizeText(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(strings.ToLower(s), " "))
}

// collectMessageText concatenates a message's own text with every
// attachment's text/fallback, in the order Slack returns them, so a
// fingerprint embedded in an attachment is still found.
func collectMessageText(msg goslack.Message) string {
	parts := make([]string, 0, 1+2*len(msg.Attachments))
	if msg.Text != "" {
		parts = append(parts, msg.Text)
	}
	for _, att := range msg.Attachments {
		if att.Text != "" {
			parts = append(parts, att.Text)
		}
		if att.Fallback != "" {
			parts = append(parts, att.Fallback)
		}
	}
	return strings.Join(parts, " ")
}
