package contract

import (
	"context"
	"time"
)

//go:generate mockgen -source=service.go -destination=../../../mocks/service_mock.go -package=mocks

// ProfitService is the reporting workflow: prompt dispatch, reply recording
// and admin digests.
type ProfitService interface {
	// DispatchDailyPrompts sends the planned-profit prompt to every
	// registered user. Returns (sent, total).
	DispatchDailyPrompts(ctx context.Context) (int, int, error)
	// DispatchFactRequests sends the end-of-month actual-profit prompt to
	// every registered user. Returns (sent, total).
	DispatchFactRequests(ctx context.Context) (int, int, error)
	// SendDailyDigest sends the planned-amount summary for date to the admin.
	SendDailyDigest(ctx context.Context, date time.Time) error
	// SendMonthlyReport sends the plan-vs-fact report for month to the admin.
	SendMonthlyReport(ctx context.Context, month time.Time) error
	// HandleReply records a user-submitted amount and returns the text to
	// answer the user with.
	HandleReply(ctx context.Context, slackUserID, text, repliedTo string) string
}
