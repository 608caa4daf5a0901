package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/planfact/planfact-bot/internal/domain"
	"github.com/planfact/planfact-bot/internal/domain/entity"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		value int64
		want  string
	}{
		{0, "0 ₴"},
		{950, "950 ₴"},
		{1000, "1 000 ₴"},
		{1234567, "1 234 567 ₴"},
		{-25000, "-25 000 ₴"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatAmount(tt.value))
	}
}

func TestMatchPromptKind(t *testing.T) {
	tests := []struct {
		repliedTo string
		want      domain.PromptKind
	}{
		{"Please reply with the actual profit for the closing month.", domain.PromptMonthly},
		{"Monthly actual profit request", domain.PromptMonthly},
		{"Please reply with the planned profit for today:", domain.PromptDaily},
		{"", domain.PromptDaily},
		{"hello there", domain.PromptDaily},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, matchPromptKind(tt.repliedTo), "replied to %q", tt.repliedTo)
	}
}

func TestFormatDailySummary(t *testing.T) {
	t.Run("empty day", func(t *testing.T) {
		got := formatDailySummary(nil)
		assert.Contains(t, got, "No planned profit submitted today")
	})

	t.Run("rows and total", func(t *testing.T) {
		got := formatDailySummary([]*entity.SummaryRow{
			{OfficeName: "Kyiv Office", GeoName: "North", TotalPlanned: 15000},
			{OfficeName: "Lviv Office", GeoName: "West", TotalPlanned: 7500},
		})

		assert.Contains(t, got, "| Kyiv Office | North | 15 000 ₴ |")
		assert.Contains(t, got, "| Lviv Office | West | 7 500 ₴ |")
		assert.Contains(t, got, "*Total: 22 500 ₴*")
	})
}

func TestFormatMonthlyReport(t *testing.T) {
	month := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)

	t.Run("empty month", func(t *testing.T) {
		got := formatMonthlyReport(nil, month)
		assert.Contains(t, got, "No data for 2025-04")
	})

	t.Run("rows with totals and deltas", func(t *testing.T) {
		got := formatMonthlyReport([]*entity.DeltaRow{
			{OfficeName: "Kyiv Office", GeoName: "North", TotalPlanned: 100000, AmountFact: 120000},
			{OfficeName: "Lviv Office", GeoName: "West", TotalPlanned: 50000, AmountFact: 40000},
		}, month)

		assert.Contains(t, got, "Monthly report for 2025-04")
		assert.Contains(t, got, "| Kyiv Office | North | 100 000 ₴ | 120 000 ₴ | 20 000 ₴ |")
		assert.Contains(t, got, "| Lviv Office | West | 50 000 ₴ | 40 000 ₴ | -10 000 ₴ |")
		assert.Contains(t, got, "*Planned: 150 000 ₴ | Actual: 160 000 ₴ | Delta: 10 000 ₴*")
	})
}

func TestBuildPrompts(t *testing.T) {
	rec := &entity.Recipient{
		User:   &entity.User{SlackUserID: "U1", Name: "Alice"},
		Office: &entity.Office{Name: "Kyiv Office"},
		Geos: []*entity.Geo{
			{Name: "North"},
			{Name: "South"},
		},
	}
	month := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)

	daily := buildDailyPrompt(rec)
	assert.Contains(t, daily, "Kyiv Office")
	assert.Contains(t, daily, "North, South")
	assert.Contains(t, daily, "planned profit")

	fact := buildFactPrompt(rec, month)
	assert.Contains(t, fact, "actual profit")
	assert.Contains(t, fact, "2025-04")
	assert.Contains(t, fact, "combined total")
}
