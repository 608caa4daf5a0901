// Package messenger implements the outbound transport contract on top of the
// Slack Web API, classifying send failures for the retry policy.
package messenger

import (
	"context"
	"errors"
	"net"

	"github.com/slack-go/slack"

	"github.com/planfact/planfact-bot/internal/domain/contract"
)

// slackAPI is the slice of slack.Client the messenger needs. Narrowed for
// tests.
type slackAPI interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

type slackMessenger struct {
	client slackAPI
}

// New wraps a Slack client as a Messenger.
func New(client *slack.Client) contract.Messenger {
	return &slackMessenger{client: client}
}

func (m *slackMessenger) SendMessage(ctx context.Context, recipientID, text string) error {
	_, _, err := m.client.PostMessageContext(
		ctx,
		recipientID,
		slack.MsgOptionText(text, false),
		slack.MsgOptionAsUser(false),
	)
	if err != nil {
		return classify(err)
	}
	return nil
}

// permanentAPIErrors are Slack API responses meaning the recipient can never
// be reached: retrying would change nothing.
var permanentAPIErrors = map[string]bool{
	"channel_not_found": true,
	"user_not_found":    true,
	"user_disabled":     true,
	"account_inactive":  true,
	"is_archived":       true,
	"not_in_channel":    true,
	"access_denied":     true,
	"message_blocked":   true,
}

// classify tags transport failures. Errors that fit no category are returned
// as-is so the caller re-raises them instead of retrying.
func classify(err error) error {
	var rateLimited *slack.RateLimitedError
	if errors.As(err, &rateLimited) {
		return &contract.SendFailure{
			Kind:       contract.SendFailureRateLimited,
			RetryAfter: rateLimited.RetryAfter,
			Err:        err,
		}
	}

	if permanentAPIErrors[err.Error()] {
		return &contract.SendFailure{Kind: contract.SendFailurePermanent, Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return &contract.SendFailure{Kind: contract.SendFailureTransient, Err: err}
	}

	return err
}
