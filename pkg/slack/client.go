// Package slack provides a Slack API client and notification service.
package slack

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	goslack "github.com/slack-go/slack"
)

const (
	defaultFingerprintLookback = 24 * time.Hour
	defaultFingerprintPageSize = 200
	defaultFingerprintMaxPages = 5
)

// Client is a thin wrapper around the slack-go SDK, scoped to one channel.
type Client struct {
	api       *goslack.Client
	channelID string
	logger    *slog.Logger

	fingerprintLookback time.Duration
	fingerprintPageSize int
	fingerprintMaxPages int
}

// ClientOption customizes a Client beyond its required token/channel.
type ClientOption func(*Client)

// WithFingerprintSearchWindow overrides how far back and how many messages
// FindMessageByFingerprint scans before giving up.
func WithFingerprintSearchWindow(lookback time.Duration, pageSize, maxPages int) ClientOption {
	return func(c *Client) {
		if lookback > 0 {
			c.fingerprintLookback = lookback
		}
		if pageSize > 0 {
			c.fingerprintPageSize = pageSize
		}
		if maxPages > 0 {
			c.fingerprintMaxPages = maxPages
		}
	}
}

func newClient(api *goslack.Client, channelID string, opts ...ClientOption) *Client {
	c := &Client{
		api:                 api,
		channelID:           channelID,
		logger:              slog.Default().With("component", "slack-client"),
		fingerprintLookback: defaultFingerprintLookback,
		fingerprintPageSize: defaultFingerprintPageSize,
		fingerprintMaxPages: defaultFingerprintMaxPages,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewClient creates a new Slack API client for channelID.
func NewClient(token, channelID string, opts ...ClientOption) *Client {
	return newClient(goslack.New(token), channelID, opts...)
}

// NewClientWithAPIURL creates a Slack API client that targets a custom API
// URL — used in tests to point the SDK at an httptest.Server.
func NewClientWithAPIURL(token, channelID, apiURL string, opts ...ClientOption) *Client {
	return newClient(goslack.New(token, goslack.OptionAPIURL(apiURL)), channelID, opts...)
}

// PostMessage sends blocks to the configured channel. If threadTS is
// non-empty, the message is posted as a threaded reply.
func (c *Client) PostMessage(ctx context.Context, blocks []goslack.Block, threadTS string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := []goslack.MsgOption{goslack.MsgOptionBlocks(blocks...)}
	if threadTS != "" {
		opts = append(opts, goslack.MsgOptionTS(threadTS))
	}

	if _, _, err := c.api.PostMessageContext(ctx, c.channelID, opts...); err != nil {
		return fmt.Errorf("chat.postMessage failed: %w", err)
	}
	return nil
}

// FindMessageByFingerprint searches recent channel history for a message
// whose text contains fingerprint (case/whitespace-insensitive), within the
// client's configured lookback window and page budget. Returns the message
// timestamp for threading, or empty string if no match is found.
func (c *Client) FindMessageByFingerprint(ctx context.Context, fingerprint string) (string, error) {
	normalizedFingerprint := normalizeText(fingerprint)
	if normalizedFingerprint == "" {
		return "", nil
	}

	params := &goslack.GetConversationHistoryParameters{
		ChannelID: c.channelID,
		Oldest:    fmt.Sprintf("%d", time.Now().Add(-c.fingerprintLookback).Unix()),
		Limit:     c.fingerprintPageSize,
	}

	for page := 0; page < c.fingerprintMaxPages; page++ {
		history, err := c.api.GetConversationHistoryContext(ctx, params)
		if err != nil {
			return "", fmt.Errorf("conversations.history failed: %w", err)
		}

		if ts, ok := matchFingerprint(history.Messages, normalizedFingerprint); ok {
			return ts, nil
		}

		if !history.HasMore || history.ResponseMetaData.NextCursor == "" {
			break
		}
		params.Cursor = history.ResponseMetaData.NextCursor
	}

	return "", nil
}

func matchFingerprint(messages []goslack.Message, normalizedFingerprint string) (string, bool) {
	for _, msg := range messages {
		if strings.Contains(normalizeText(collectMessageText(msg)), normalizedFingerprint) {
			return msg.Timestamp, true
		}
	}
	return "", false
}
