package service

import (
	"log/slog"
	"time"

	"github.com/planfact/planfact-bot/internal/domain/contract"
)

type Instance struct {
	Profit    *profitService
	Scheduler *Scheduler
}

// Options carries the process-wide settings the services need. Everything is
// passed in explicitly so tests can build and tear down instances freely.
type Options struct {
	AdminUserID string
	Location    *time.Location
	Retry       RetryPolicy
	Logger      *slog.Logger

	// Fire times, already parsed.
	DailyPromptHour, DailyPromptMinute     int
	DailyDigestHour, DailyDigestMinute     int
	FactRequestHour, FactRequestMinute     int
	MonthlyReportHour, MonthlyReportMinute int
}

// NewInstance wires the profit service and the recurring scheduler with its
// four tasks.
func NewInstance(dm contract.DataManager, msgr contract.Messenger, opts Options) *Instance {
	profit := newProfit(dm, msgr, opts)
	scheduler := newScheduler(opts.Logger.With("component", "scheduler"))
	registerTasks(scheduler, profit, opts)

	return &Instance{
		Profit:    profit,
		Scheduler: scheduler,
	}
}
