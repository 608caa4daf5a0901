package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/planfact/planfact-bot/internal/database"
	"github.com/planfact/planfact-bot/internal/domain"
	"github.com/planfact/planfact-bot/internal/domain/contract"
	"github.com/planfact/planfact-bot/internal/domain/entity"
)

var testNow = time.Date(2025, time.April, 15, 12, 0, 0, 0, time.UTC)

// seedThreeUsers creates one office with a geo and users Alice (U1), Bob (U2)
// and Carol (U3), in dispatch order.
func seedThreeUsers(t *testing.T, db *database.DB) {
	t.Helper()
	dm := database.NewInstance(db)

	office := &entity.Office{Name: "Kyiv Office"}
	require.NoError(t, dm.Office().Create(office))
	require.NoError(t, dm.Geo().Create(&entity.Geo{Name: "North", OfficeID: office.ID}))

	for _, u := range []struct{ id, name string }{
		{"U1", "Alice"},
		{"U2", "Bob"},
		{"U3", "Carol"},
	} {
		user := &entity.User{SlackUserID: u.id, Name: u.name, OfficeID: office.ID}
		require.NoError(t, dm.User().Create(user))
	}
}

func TestDispatchDailyPrompts(t *testing.T) {
	t.Run("one permanent failure does not stop the round", func(t *testing.T) {
		s, msgr, dm, db := newTestService(t, testNow)
		seedThreeUsers(t, db)

		blocked := &contract.SendFailure{Kind: contract.SendFailurePermanent, Err: errors.New("user_disabled")}
		msgr.EXPECT().SendMessage(gomock.Any(), "U1", gomock.Any()).Return(nil)
		msgr.EXPECT().SendMessage(gomock.Any(), "U2", gomock.Any()).Return(blocked)
		msgr.EXPECT().SendMessage(gomock.Any(), "U3", gomock.Any()).Return(nil)

		sent, total, err := s.DispatchDailyPrompts(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 2, sent)
		assert.Equal(t, 3, total)

		// Delivered prompts left correlation rows; the failed one did not.
		for id, want := range map[string]bool{"U1": true, "U2": false, "U3": true} {
			pending, err := dm.Prompt().GetLatestByUser(id)
			require.NoError(t, err)
			if want {
				require.NotNil(t, pending, "user %s", id)
				assert.Equal(t, string(domain.PromptDaily), pending.Kind)
			} else {
				assert.Nil(t, pending, "user %s", id)
			}
		}
	})

	t.Run("transient failure is retried and counted on success", func(t *testing.T) {
		s, msgr, _, db := newTestService(t, testNow)
		database.SeedOfficeWithGeo(t, db, "Kyiv Office", "North", "U1")

		flaky := &contract.SendFailure{Kind: contract.SendFailureTransient, Err: errors.New("timeout")}
		gomock.InOrder(
			msgr.EXPECT().SendMessage(gomock.Any(), "U1", gomock.Any()).Return(flaky),
			msgr.EXPECT().SendMessage(gomock.Any(), "U1", gomock.Any()).Return(nil),
		)

		sent, total, err := s.DispatchDailyPrompts(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 1, sent)
		assert.Equal(t, 1, total)
	})

	t.Run("unclassified error aborts the round", func(t *testing.T) {
		s, msgr, _, db := newTestService(t, testNow)
		seedThreeUsers(t, db)

		msgr.EXPECT().SendMessage(gomock.Any(), "U1", gomock.Any()).Return(errors.New("nil pointer in prompt builder"))

		sent, total, err := s.DispatchDailyPrompts(context.Background())

		require.Error(t, err)
		assert.Equal(t, 0, sent)
		assert.Equal(t, 3, total)
	})

	t.Run("empty recipient list notifies the admin", func(t *testing.T) {
		s, msgr, _, _ := newTestService(t, testNow)

		msgr.EXPECT().SendMessage(gomock.Any(), "U0ADMIN", gomock.Any()).Return(nil)

		sent, total, err := s.DispatchDailyPrompts(context.Background())

		require.NoError(t, err)
		assert.Zero(t, sent)
		assert.Zero(t, total)
	})

	t.Run("prompt text names office and region", func(t *testing.T) {
		s, msgr, _, db := newTestService(t, testNow)
		database.SeedOfficeWithGeo(t, db, "Kyiv Office", "North", "U1")

		var got string
		msgr.EXPECT().SendMessage(gomock.Any(), "U1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _, text string) error {
				got = text
				return nil
			})

		_, _, err := s.DispatchDailyPrompts(context.Background())

		require.NoError(t, err)
		assert.Contains(t, got, "planned profit")
		assert.Contains(t, got, "Kyiv Office")
		assert.Contains(t, got, "North")
	})
}

func TestDispatchFactRequests(t *testing.T) {
	s, msgr, dm, db := newTestService(t, testNow)
	database.SeedOfficeWithGeo(t, db, "Kyiv Office", "North", "U1")

	var got string
	msgr.EXPECT().SendMessage(gomock.Any(), "U1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, text string) error {
			got = text
			return nil
		})

	sent, total, err := s.DispatchFactRequests(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Equal(t, 1, total)
	assert.Contains(t, got, "actual profit")
	assert.Contains(t, got, "2025-04")

	pending, err := dm.Prompt().GetLatestByUser("U1")
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.Equal(t, string(domain.PromptMonthly), pending.Kind)
}

func TestDispatchReplacesPreviousPendingPrompt(t *testing.T) {
	s, msgr, dm, db := newTestService(t, testNow)
	database.SeedOfficeWithGeo(t, db, "Kyiv Office", "North", "U1")

	msgr.EXPECT().SendMessage(gomock.Any(), "U1", gomock.Any()).Return(nil).Times(2)

	_, _, err := s.DispatchFactRequests(context.Background())
	require.NoError(t, err)
	_, _, err = s.DispatchDailyPrompts(context.Background())
	require.NoError(t, err)

	pending, err := dm.Prompt().GetLatestByUser("U1")
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.Equal(t, string(domain.PromptDaily), pending.Kind)
}
