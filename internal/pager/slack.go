package pager

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
)

// SlackPager posts callouts to a Slack channel.
type SlackPager struct {
	api     *slack.Client
	channel string
}

// NewSlack creates a Slack pager for the given bot token and channel.
func NewSlack(botToken, channel string) (*SlackPager, error) {
	if botToken == "" {
		return nil, fmt.Errorf("slack: bot_token is required")
	}
	if channel == "" {
		return nil, fmt.Errorf("slack: channel is required")
	}
	return &SlackPager{api: slack.New(botToken), channel: channel}, nil
}

func (p *SlackPager) Name() string { return "slack" }

func (p *SlackPager) Page(ctx context.Context, c Callout) error {
	_, _, err := p.api.PostMessageContext(ctx, p.channel, slack.MsgOptionText(c.Message(), false))
	if err != nil {
		return fmt.Errorf("slack: post message: %w", err)
	}
	return nil
}
