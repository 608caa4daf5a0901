package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/planfact/planfact-bot/internal/amount"
	"github.com/planfact/planfact-bot/internal/domain"
	"github.com/planfact/planfact-bot/internal/domain/contract"
	"github.com/planfact/planfact-bot/internal/domain/entity"
	"github.com/planfact/planfact-bot/internal/timeutil"
)

type profitService struct {
	dm        contract.DataManager
	messenger contract.Messenger
	logger    *slog.Logger
	loc       *time.Location
	adminID   string
	retry     RetryPolicy

	// now is the clock; tests pin it.
	now func() time.Time
}

func newProfit(dm contract.DataManager, msgr contract.Messenger, opts Options) *profitService {
	return &profitService{
		dm:        dm,
		messenger: msgr,
		logger:    opts.Logger.With("component", "profit"),
		loc:       opts.Location,
		adminID:   opts.AdminUserID,
		retry:     opts.Retry,
		now:       time.Now,
	}
}

// HandleReply records a user-submitted amount and returns the text to answer
// the user with. Every failure mode maps to a user-visible message; only the
// storage details go to the log.
func (s *profitService) HandleReply(ctx context.Context, slackUserID, text, repliedTo string) string {
	value, err := amount.Parse(text)
	if err != nil {
		s.logger.Info("rejected amount", "user", slackUserID, "error", err)
		return "❌ " + validationReason(err) + " Please send the amount again."
	}

	rec, err := s.dm.User().GetRecipientBySlackID(slackUserID)
	if err != nil {
		s.logger.Error("failed to resolve user", "user", slackUserID, "error", err)
		return msgTryLater
	}
	if rec == nil || len(rec.Geos) == 0 {
		return msgNotLinked
	}

	kind := s.routeReply(slackUserID, repliedTo)

	switch kind {
	case domain.PromptMonthly:
		return s.saveFact(ctx, rec, value)
	default:
		return s.saveReport(ctx, rec, value)
	}
}

// routeReply decides which prompt a reply answers. The latest pending-prompt
// row for the sender wins; without one, fall back to keyword matching on the
// prompt text the user replied to.
func (s *profitService) routeReply(slackUserID, repliedTo string) domain.PromptKind {
	pending, err := s.dm.Prompt().GetLatestByUser(slackUserID)
	if err != nil {
		s.logger.Warn("failed to load pending prompt", "user", slackUserID, "error", err)
	}
	if pending != nil {
		return domain.PromptKind(pending.Kind)
	}
	return matchPromptKind(repliedTo)
}

// saveReport records a planned amount for today. The amount goes to the
// user's first region; users covering several regions submit one total.
func (s *profitService) saveReport(ctx context.Context, rec *entity.Recipient, value int64) string {
	geo := rec.Geos[0]
	date := timeutil.DateOnly(s.now(), s.loc)

	err := s.dm.WithTransaction(ctx, func(dm contract.DataManager) error {
		if err := dm.Report().Create(&entity.Report{
			OfficeID:      rec.Office.ID,
			GeoID:         geo.ID,
			Date:          date,
			AmountPlanned: value,
		}); err != nil {
			return err
		}
		return dm.Prompt().DeleteByUser(rec.User.SlackUserID)
	})

	switch {
	case err == nil:
		s.logger.Info("saved planned amount",
			"office", rec.Office.ID, "geo", geo.ID, "date", date.Format("2006-01-02"), "amount", value)
		return confirmReport(rec, geo, value)
	case domain.IsKind(err, domain.KindDuplicateEntry):
		s.logger.Warn("duplicate report attempt",
			"office", rec.Office.ID, "geo", geo.ID, "date", date.Format("2006-01-02"))
		return msgDuplicateToday
	case domain.IsKind(err, domain.KindIntegrityViolation):
		return msgNotLinked
	default:
		s.logger.Error("failed to save planned amount", "user", rec.User.SlackUserID, "error", err)
		return msgTryLater
	}
}

// saveFact records the actual amount for the month being closed.
func (s *profitService) saveFact(ctx context.Context, rec *entity.Recipient, value int64) string {
	geo := rec.Geos[0]
	month := timeutil.CurrentMonth(s.now(), s.loc)

	err := s.dm.WithTransaction(ctx, func(dm contract.DataManager) error {
		if err := dm.Fact().Create(&entity.Fact{
			GeoID:      geo.ID,
			Month:      month,
			AmountFact: value,
		}); err != nil {
			return err
		}
		return dm.Prompt().DeleteByUser(rec.User.SlackUserID)
	})

	switch {
	case err == nil:
		s.logger.Info("saved fact amount",
			"geo", geo.ID, "month", month.Format("2006-01"), "amount", value)
		return confirmFact(rec, geo, month, value)
	case domain.IsKind(err, domain.KindDuplicateEntry):
		s.logger.Warn("duplicate fact attempt", "geo", geo.ID, "month", month.Format("2006-01"))
		return msgDuplicateMonth(month)
	case domain.IsKind(err, domain.KindIntegrityViolation):
		return msgNotLinked
	default:
		s.logger.Error("failed to save fact amount", "user", rec.User.SlackUserID, "error", err)
		return msgTryLater
	}
}

func validationReason(err error) string {
	var de *domain.Error
	if errors.As(err, &de) {
		return "Invalid amount: " + de.Msg + "."
	}
	return "Invalid amount."
}
