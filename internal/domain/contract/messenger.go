package contract

import (
	"context"
	"time"
)

//go:generate mockgen -source=messenger.go -destination=../../../mocks/messenger_mock.go -package=mocks

// Messenger is the outbound messaging transport. The real implementation
// talks to the Slack API; tests use a mock.
type Messenger interface {
	// SendMessage delivers text to one recipient. Failures are classified
	// via SendFailure so the retry policy can decide what to do.
	SendMessage(ctx context.Context, recipientID, text string) error
}

// SendFailureKind classifies a transport failure for the retry policy.
type SendFailureKind int

const (
	// SendFailureTransient is a network-level failure worth retrying with
	// exponential backoff.
	SendFailureTransient SendFailureKind = iota
	// SendFailureRateLimited means the server asked us to slow down and told
	// us how long to wait.
	SendFailureRateLimited
	// SendFailurePermanent means the recipient is unreachable (blocked the
	// bot, deactivated account). Never retried.
	SendFailurePermanent
)

func (k SendFailureKind) String() string {
	switch k {
	case SendFailureRateLimited:
		return "rate_limited"
	case SendFailurePermanent:
		return "permanent"
	default:
		return "transient"
	}
}

// SendFailure is a classified transport error.
type SendFailure struct {
	Kind SendFailureKind
	// RetryAfter is the server-specified delay for rate-limited failures.
	RetryAfter time.Duration
	Err        error
}

func (f *SendFailure) Error() string {
	return f.Kind.String() + " send failure: " + f.Err.Error()
}

func (f *SendFailure) Unwrap() error {
	return f.Err
}
