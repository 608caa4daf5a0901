package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"

	"github.com/planfact/planfact-bot/internal/domain/contract"
	"github.com/planfact/planfact-bot/internal/timeutil"
)

// Config carries the handler settings.
type Config struct {
	SigningSecret string
	AdminUserID   string
	Location      *time.Location
	Logger        *slog.Logger
}

// SlackHandler terminates the two inbound Slack surfaces: the Events API
// endpoint that receives user replies, and the slash command endpoint for
// help and on-demand admin reports.
type SlackHandler struct {
	service   contract.ProfitService
	messenger contract.Messenger
	cfg       Config
	logger    *slog.Logger

	now func() time.Time
}

func New(service contract.ProfitService, messenger contract.Messenger, cfg Config) *SlackHandler {
	return &SlackHandler{
		service:   service,
		messenger: messenger,
		cfg:       cfg,
		logger:    cfg.Logger.With("component", "handlers"),
		now:       time.Now,
	}
}

// HandleEvents receives Events API callbacks. A direct message to the bot is
// treated as a reply to the latest prompt sent to that user.
func (h *SlackHandler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	body, ok := h.verifiedBody(w, r)
	if !ok {
		return
	}

	event, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
	if err != nil {
		h.logger.Error("failed to parse event", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	switch event.Type {
	case slackevents.URLVerification:
		var challenge slackevents.ChallengeResponse
		if err := json.Unmarshal(body, &challenge); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		fmt.Fprint(w, challenge.Challenge)

	case slackevents.CallbackEvent:
		h.handleCallback(r, event.InnerEvent)
		w.WriteHeader(http.StatusOK)

	default:
		w.WriteHeader(http.StatusOK)
	}
}

func (h *SlackHandler) handleCallback(r *http.Request, inner slackevents.EventsAPIInnerEvent) {
	ev, ok := inner.Data.(*slackevents.MessageEvent)
	if !ok {
		return
	}
	// Only plain direct messages from humans count as replies.
	if ev.BotID != "" || ev.SubType != "" || ev.ChannelType != "im" {
		return
	}

	reply := h.service.HandleReply(r.Context(), ev.User, ev.Text, "")
	if err := h.messenger.SendMessage(r.Context(), ev.User, reply); err != nil {
		h.logger.Error("failed to answer reply", "user", ev.User, "error", err)
	}
}

// HandleSlashCommand serves the bot's slash command. Users get help; the admin
// can pull the daily digest and the monthly report on demand.
func (h *SlackHandler) HandleSlashCommand(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.verifiedBody(w, r); !ok {
		return
	}

	s, err := slack.SlashCommandParse(r)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	h.respond(w, h.handleCommand(r, &s))
}

func (h *SlackHandler) handleCommand(r *http.Request, s *slack.SlashCommand) *slack.Msg {
	fields := strings.Fields(s.Text)
	sub := ""
	if len(fields) > 0 {
		sub = strings.ToLower(fields[0])
	}

	switch sub {
	case "", "help":
		return h.helpResponse()
	case "digest":
		return h.handleDigest(r, s)
	case "report":
		return h.handleReport(r, s, fields[1:])
	default:
		return errorResponse(fmt.Sprintf("Unknown command %q. Try `%s help`.", sub, s.Command))
	}
}

func (h *SlackHandler) handleDigest(r *http.Request, s *slack.SlashCommand) *slack.Msg {
	if s.UserID != h.cfg.AdminUserID {
		return errorResponse("Only the administrator can request the digest.")
	}

	date := timeutil.DateOnly(h.now(), h.cfg.Location)
	if err := h.service.SendDailyDigest(r.Context(), date); err != nil {
		h.logger.Error("on-demand digest failed", "error", err)
		return errorResponse("Failed to build the digest. Please try again later.")
	}
	return ephemeral("📨 Digest for today sent to you in a direct message.")
}

func (h *SlackHandler) handleReport(r *http.Request, s *slack.SlashCommand, args []string) *slack.Msg {
	if s.UserID != h.cfg.AdminUserID {
		return errorResponse("Only the administrator can request the report.")
	}

	month := timeutil.PreviousMonth(h.now(), h.cfg.Location)
	if len(args) > 0 {
		parsed, err := time.ParseInLocation("2006-01", args[0], h.cfg.Location)
		if err != nil {
			return errorResponse(fmt.Sprintf("Invalid month %q, expected YYYY-MM.", args[0]))
		}
		month = parsed
	}

	if err := h.service.SendMonthlyReport(r.Context(), month); err != nil {
		h.logger.Error("on-demand report failed", "month", month.Format("2006-01"), "error", err)
		return errorResponse("Failed to build the report. Please try again later.")
	}
	return ephemeral(fmt.Sprintf("📨 Report for %s sent to you in a direct message.", month.Format("2006-01")))
}

func (h *SlackHandler) helpResponse() *slack.Msg {
	return ephemeral("*Profit reporting bot*\n\n" +
		"Reply to the bot's direct messages with an amount to submit your numbers.\n\n" +
		"Commands:\n" +
		"• `help` — this message\n" +
		"• `digest` — today's planned-profit digest (admin)\n" +
		"• `report [YYYY-MM]` — plan vs fact report, previous month by default (admin)")
}

// verifiedBody reads the body and checks the Slack signature. On failure the
// response is already written and the caller must bail out.
func (h *SlackHandler) verifiedBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return nil, false
	}
	r.Body = io.NopCloser(strings.NewReader(string(body)))

	verifier, err := slack.NewSecretsVerifier(r.Header, h.cfg.SigningSecret)
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return nil, false
	}
	if _, err := verifier.Write(body); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return nil, false
	}
	if err := verifier.Ensure(); err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return nil, false
	}

	return body, true
}

func (h *SlackHandler) respond(w http.ResponseWriter, msg *slack.Msg) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func ephemeral(text string) *slack.Msg {
	return &slack.Msg{
		ResponseType: slack.ResponseTypeEphemeral,
		Text:         text,
	}
}

func errorResponse(message string) *slack.Msg {
	return &slack.Msg{
		ResponseType: slack.ResponseTypeEphemeral,
		Text:         "❌ " + message,
	}
}
