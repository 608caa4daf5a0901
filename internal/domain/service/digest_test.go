package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/planfact/planfact-bot/internal/database"
	"github.com/planfact/planfact-bot/internal/domain"
	"github.com/planfact/planfact-bot/internal/domain/entity"
)

func TestSendDailyDigest(t *testing.T) {
	ctx := context.Background()

	s, msgr, _, db := newTestService(t, testNow)
	database.SeedOfficeWithGeo(t, db, "Kyiv Office", "North", "U1")

	_ = s.HandleReply(ctx, "U1", "15000", "")

	var got string
	msgr.EXPECT().SendMessage(gomock.Any(), "U0ADMIN", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, text string) error {
			got = text
			return nil
		})

	require.NoError(t, s.SendDailyDigest(ctx, testNow))
	assert.Contains(t, got, "Daily planned profit digest")
	assert.Contains(t, got, "Kyiv Office")
	assert.Contains(t, got, "15 000 ₴")
}

func TestSendMonthlyReport(t *testing.T) {
	ctx := context.Background()
	month := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)

	t.Run("includes plan and fact", func(t *testing.T) {
		s, msgr, dm, db := newTestService(t, testNow)
		database.SeedOfficeWithGeo(t, db, "Kyiv Office", "North", "U1")

		_ = s.HandleReply(ctx, "U1", "100000", "")
		require.NoError(t, dm.Prompt().Create(&entity.PendingPrompt{
			SlackUserID: "U1", Kind: string(domain.PromptMonthly),
		}))
		_ = s.HandleReply(ctx, "U1", "120000", "")

		var got string
		msgr.EXPECT().SendMessage(gomock.Any(), "U0ADMIN", gomock.Any()).
			DoAndReturn(func(_ context.Context, _, text string) error {
				got = text
				return nil
			})

		require.NoError(t, s.SendMonthlyReport(ctx, month))
		assert.Contains(t, got, "Monthly report for 2025-04")
		assert.Contains(t, got, "100 000 ₴")
		assert.Contains(t, got, "120 000 ₴")
		assert.Contains(t, got, "20 000 ₴")
	})

	t.Run("empty month is reported as such", func(t *testing.T) {
		s, msgr, _, _ := newTestService(t, testNow)

		var got string
		msgr.EXPECT().SendMessage(gomock.Any(), "U0ADMIN", gomock.Any()).
			DoAndReturn(func(_ context.Context, _, text string) error {
				got = text
				return nil
			})

		require.NoError(t, s.SendMonthlyReport(ctx, month))
		assert.Contains(t, got, "No data for 2025-04")
	})
}
