package service

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/planfact/planfact-bot/internal/database"
	"github.com/planfact/planfact-bot/internal/domain/contract"
	"github.com/planfact/planfact-bot/mocks"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:   2,
		BaseDelay:    time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		TotalTimeout: time.Second,
	}
}

// newTestService builds a profit service on a real in-memory store and a
// mocked transport, with the clock pinned.
func newTestService(t *testing.T, now time.Time) (*profitService, *mocks.MockMessenger, contract.DataManager, *database.DB) {
	t.Helper()

	ctrl := gomock.NewController(t)
	msgr := mocks.NewMockMessenger(ctrl)

	db := database.SetupTestDB(t)
	t.Cleanup(func() { require.NoError(t, db.Close()) })
	dm := database.NewInstance(db)

	s := newProfit(dm, msgr, Options{
		AdminUserID: "U0ADMIN",
		Location:    time.UTC,
		Retry:       testPolicy(),
		Logger:      discardLogger(),
	})
	s.now = func() time.Time { return now }

	return s, msgr, dm, db
}
