package test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/planfact/planfact-bot/internal/handlers"
	"github.com/planfact/planfact-bot/mocks"
)

const SigningSecret = "test-signing-secret"

type ServiceMocks struct {
	ProfitServiceMock *mocks.MockProfitService
	MessengerMock     *mocks.MockMessenger
}

func GetHandlerTest(t *testing.T) (m ServiceMocks, handler *handlers.SlackHandler, ctrl *gomock.Controller) {
	t.Helper()

	ctrl = gomock.NewController(t)
	m = ServiceMocks{
		ProfitServiceMock: mocks.NewMockProfitService(ctrl),
		MessengerMock:     mocks.NewMockMessenger(ctrl),
	}

	handler = handlers.New(m.ProfitServiceMock, m.MessengerMock, handlers.Config{
		SigningSecret: SigningSecret,
		AdminUserID:   "U0ADMIN",
		Location:      time.UTC,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return
}

// CreateSlashCommandRequest creates a properly signed Slack slash command request.
func CreateSlashCommandRequest(t *testing.T, command, text, userID string) *http.Request {
	t.Helper()

	form := url.Values{
		"token":        {"test-token"},
		"team_id":      {"T123456789"},
		"team_domain":  {"test-team"},
		"channel_id":   {"D123456789"},
		"channel_name": {"directmessage"},
		"user_id":      {userID},
		"user_name":    {"test-user"},
		"command":      {command},
		"text":         {text},
		"response_url": {"https://hooks.slack.com/commands/test"},
		"trigger_id":   {"test-trigger-id"},
	}

	body := form.Encode()

	req, err := http.NewRequest(http.MethodPost, "/slack/commands", strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	signRequest(req, body)

	return req
}

// CreateEventRequest creates a properly signed Events API callback request
// from a raw JSON payload.
func CreateEventRequest(t *testing.T, payload string) *http.Request {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, "/slack/events", strings.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	signRequest(req, payload)

	return req
}

func signRequest(req *http.Request, body string) {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	req.Header.Set("X-Slack-Request-Timestamp", timestamp)
	req.Header.Set("X-Slack-Signature", generateSlackSignature(SigningSecret, timestamp, body))
}

func generateSlackSignature(signingSecret, timestamp, body string) string {
	baseString := fmt.Sprintf("v0:%s:%s", timestamp, body)
	h := hmac.New(sha256.New, []byte(signingSecret))
	h.Write([]byte(baseString))
	return fmt.Sprintf("v0=%s", hex.EncodeToString(h.Sum(nil)))
}

func CreateTestRecorder() *httptest.ResponseRecorder {
	return httptest.NewRecorder()
}
