package service

import (
	"context"
	"time"

	"github.com/planfact/planfact-bot/internal/domain"
)

// SendDailyDigest sends the planned-amount summary for date to the admin.
func (s *profitService) SendDailyDigest(ctx context.Context, date time.Time) error {
	summary, err := s.dm.Report().GetTodaySummary(date)
	if err != nil {
		return domain.WrapError(domain.KindStorage, err, "failed to load daily summary")
	}

	text := formatDailySummary(summary)

	err = withRetry(ctx, s.logger, s.retry, "daily_digest", func(ctx context.Context) error {
		return s.messenger.SendMessage(ctx, s.adminID, text)
	})
	if err != nil {
		return err
	}

	s.logger.Info("daily digest sent", "admin", s.adminID, "rows", len(summary), "date", date.Format("2006-01-02"))
	return nil
}

// SendMonthlyReport sends the plan-vs-fact report for month to the admin.
// The scheduler calls it on the 1st for the month just closed.
func (s *profitService) SendMonthlyReport(ctx context.Context, month time.Time) error {
	deltas, err := s.dm.Fact().GetMonthlyDelta(month)
	if err != nil {
		return domain.WrapError(domain.KindStorage, err, "failed to load monthly delta")
	}

	text := formatMonthlyReport(deltas, month)

	err = withRetry(ctx, s.logger, s.retry, "monthly_report", func(ctx context.Context) error {
		return s.messenger.SendMessage(ctx, s.adminID, text)
	})
	if err != nil {
		return err
	}

	s.logger.Info("monthly report sent", "admin", s.adminID, "rows", len(deltas), "month", month.Format("2006-01"))
	return nil
}
