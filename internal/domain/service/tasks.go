package service

import (
	"context"
	"time"

	"github.com/planfact/planfact-bot/internal/domain"
	"github.com/planfact/planfact-bot/internal/timeutil"
)

// registerTasks wires the four recurring jobs. Daily jobs fire every day at a
// fixed wall-clock time; monthly jobs fire on the last or first calendar day
// of the month, which is why every task computes its own next fire time.
func registerTasks(sched *Scheduler, profit *profitService, opts Options) {
	loc := opts.Location

	sched.Register(&Task{
		Name: domain.TaskDailyPrompt,
		Next: func(now time.Time) time.Time {
			return nextDailyAt(now, opts.DailyPromptHour, opts.DailyPromptMinute, loc)
		},
		Run: func(ctx context.Context) error {
			_, _, err := profit.DispatchDailyPrompts(ctx)
			return err
		},
	})

	sched.Register(&Task{
		Name: domain.TaskDailyDigest,
		Next: func(now time.Time) time.Time {
			return nextDailyAt(now, opts.DailyDigestHour, opts.DailyDigestMinute, loc)
		},
		Run: func(ctx context.Context) error {
			return profit.SendDailyDigest(ctx, timeutil.DateOnly(profit.now(), loc))
		},
	})

	sched.Register(&Task{
		Name: domain.TaskFactRequest,
		Next: func(now time.Time) time.Time {
			return timeutil.NextLastDayOfMonth(now, opts.FactRequestHour, opts.FactRequestMinute, loc)
		},
		Run: func(ctx context.Context) error {
			_, _, err := profit.DispatchFactRequests(ctx)
			return err
		},
	})

	sched.Register(&Task{
		Name: domain.TaskMonthlyReport,
		Next: func(now time.Time) time.Time {
			return timeutil.NextFirstDayOfMonth(now, opts.MonthlyReportHour, opts.MonthlyReportMinute, loc)
		},
		Run: func(ctx context.Context) error {
			// Runs on the 1st, reporting the month that just closed.
			return profit.SendMonthlyReport(ctx, timeutil.PreviousMonth(profit.now(), loc))
		},
	})
}

// nextDailyAt returns today at hour:minute in loc, or tomorrow if that
// instant has passed.
func nextDailyAt(now time.Time, hour, minute int, loc *time.Location) time.Time {
	local := now.In(loc)
	target := time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, loc)
	if !target.After(now) {
		target = target.AddDate(0, 0, 1)
	}
	return target
}
