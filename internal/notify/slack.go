package notify

import (
	"bytes"
	"context"
	"fmt"

	"github.com/slack-go/slack"
)

// Notifier posts to the operations channel.
type Notifier interface {
	PostMessage(ctx context.Context, text string) error
	UploadReport(ctx context.Context, content []byte, filename, title, comment string) error
}

// SlackAPI is the slice of the Slack client the notifier needs.
type SlackAPI interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
	UploadFileV2Context(ctx context.Context, params slack.UploadFileV2Parameters) (*slack.FileSummary, error)
}

type slackNotifier struct {
	client  SlackAPI
	channel string
}

func NewSlackNotifier(client SlackAPI, channel string) Notifier {
	return &slackNotifier{
		client:  client,
		channel: channel,
	}
}

func (n *slackNotifier) PostMessage(ctx context.Context, text string) error {
	_, _, err := n.client.PostMessageContext(ctx, n.channel, slack.MsgOptionText(text, false))
	if err != nil {
		return fmt.Errorf("failed to post message: %w", err)
	}
	return nil
}

func (n *slackNotifier) UploadReport(ctx context.Context, content []byte, filename, title, comment string) error {
	_, err := n.client.UploadFileV2Context(ctx, slack.UploadFileV2Parameters{
		Reader:         bytes.NewReader(content),
		FileSize:       len(content),
		Filename:       filename,
		Title:          title,
		InitialComment: comment,
		Channel:        n.channel,
	})
	if err != nil {
		return fmt.Errorf("failed to upload report: %w", err)
	}
	return nil
}
