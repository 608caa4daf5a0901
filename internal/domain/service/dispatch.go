package service

import (
	"context"
	"errors"

	"github.com/planfact/planfact-bot/internal/domain"
	"github.com/planfact/planfact-bot/internal/domain/contract"
	"github.com/planfact/planfact-bot/internal/domain/entity"
	"github.com/planfact/planfact-bot/internal/timeutil"
)

// DispatchDailyPrompts sends the planned-profit prompt to every registered
// user. Returns (sent, total).
func (s *profitService) DispatchDailyPrompts(ctx context.Context) (int, int, error) {
	return s.dispatchToAll(ctx, domain.PromptDaily, buildDailyPrompt)
}

// DispatchFactRequests sends the end-of-month actual-profit prompt to every
// registered user. Returns (sent, total).
func (s *profitService) DispatchFactRequests(ctx context.Context) (int, int, error) {
	month := timeutil.CurrentMonth(s.now(), s.loc)
	return s.dispatchToAll(ctx, domain.PromptMonthly, func(rec *entity.Recipient) string {
		return buildFactPrompt(rec, month)
	})
}

// dispatchToAll runs one dispatch round: one prompt per recipient, sent
// sequentially to respect transport rate limits. A recipient whose send fails
// is logged and skipped; only an unclassified error aborts the round. Each
// delivered prompt leaves a pending-prompt row for reply correlation.
func (s *profitService) dispatchToAll(ctx context.Context, kind domain.PromptKind, build func(*entity.Recipient) string) (int, int, error) {
	recipients, err := s.dm.User().GetRecipients()
	if err != nil {
		return 0, 0, domain.WrapError(domain.KindStorage, err, "failed to load recipients")
	}

	if len(recipients) == 0 {
		s.logger.Warn("no recipients for dispatch round", "kind", string(kind))
		s.notifyAdmin(ctx, "⚠️ No registered users found for the "+string(kind)+" prompt round.")
		return 0, 0, nil
	}

	sent := 0
	for _, rec := range recipients {
		text := build(rec)

		err := withRetry(ctx, s.logger, s.retry, "send_prompt", func(ctx context.Context) error {
			return s.messenger.SendMessage(ctx, rec.User.SlackUserID, text)
		})
		if err != nil {
			var failure *contract.SendFailure
			if !errors.As(err, &failure) {
				// Unclassified errors are programming errors, not delivery
				// problems. Stop the round and surface them.
				return sent, len(recipients), err
			}
			s.logger.Error("failed to send prompt",
				"user", rec.User.SlackUserID, "kind", string(kind), "failure", failure.Kind.String(), "error", err)
			continue
		}

		if err := s.recordPendingPrompt(ctx, rec.User.SlackUserID, kind); err != nil {
			// Correlation is best-effort; the keyword fallback still routes
			// the reply.
			s.logger.Warn("failed to record pending prompt", "user", rec.User.SlackUserID, "error", err)
		}

		sent++
		s.logger.Info("prompt sent", "user", rec.User.SlackUserID, "kind", string(kind), "office", rec.Office.Name)
	}

	s.logger.Info("dispatch round finished", "kind", string(kind), "sent", sent, "total", len(recipients))
	return sent, len(recipients), nil
}

// recordPendingPrompt replaces any previous pending prompt for the user with
// the freshly sent one, so the latest prompt always wins reply routing.
func (s *profitService) recordPendingPrompt(ctx context.Context, slackUserID string, kind domain.PromptKind) error {
	return s.dm.WithTransaction(ctx, func(dm contract.DataManager) error {
		if err := dm.Prompt().DeleteByUser(slackUserID); err != nil {
			return err
		}
		return dm.Prompt().Create(&entity.PendingPrompt{
			SlackUserID: slackUserID,
			Kind:        string(kind),
		})
	})
}

// notifyAdmin sends a short operational message to the administrator, with
// the same retry policy as any other send.
func (s *profitService) notifyAdmin(ctx context.Context, text string) {
	if s.adminID == "" {
		return
	}
	err := withRetry(ctx, s.logger, s.retry, "notify_admin", func(ctx context.Context) error {
		return s.messenger.SendMessage(ctx, s.adminID, text)
	})
	if err != nil {
		s.logger.Error("failed to notify admin", "error", err)
	}
}
