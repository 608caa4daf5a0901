package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/planfact/planfact-bot/internal/domain"
	"github.com/planfact/planfact-bot/internal/domain/entity"
)

const (
	msgTryLater       = "❌ Something went wrong while saving. Please try again later."
	msgNotLinked      = "❌ Your account is not linked to an office or region. Ask the administrator to register you."
	msgDuplicateToday = "⚠️ Already submitted today! Duplicate entries are not allowed."
)

func msgDuplicateMonth(month time.Time) string {
	return fmt.Sprintf("⚠️ The actual profit for %s is already submitted! Duplicate entries are not allowed.", month.Format("2006-01"))
}

func buildDailyPrompt(rec *entity.Recipient) string {
	return fmt.Sprintf(
		"📅 *Daily planned profit request*\n\nOffice: %s\nRegion: %s\n\nPlease reply with the planned profit for today:",
		rec.Office.Name,
		geoNames(rec),
	)
}

func buildFactPrompt(rec *entity.Recipient, month time.Time) string {
	return fmt.Sprintf(
		"📅 *Monthly actual profit request*\n\nOffice: %s\nRegions: %s\nMonth: %s\n\n"+
			"Please reply with the actual profit for the closing month.\n"+
			"ℹ️ _If you cover several regions, reply with the combined total._",
		rec.Office.Name,
		geoNames(rec),
		month.Format("2006-01"),
	)
}

func confirmReport(rec *entity.Recipient, geo *entity.Geo, value int64) string {
	return fmt.Sprintf(
		"✅ *Saved!*\n\nOffice: %s\nRegion: %s\nAmount: %s",
		rec.Office.Name, geo.Name, formatAmount(value),
	)
}

func confirmFact(rec *entity.Recipient, geo *entity.Geo, month time.Time, value int64) string {
	msg := fmt.Sprintf(
		"✅ *Actual profit saved!*\n\nOffice: %s\nRegion: %s\nMonth: %s\nAmount: %s",
		rec.Office.Name, geo.Name, month.Format("2006-01"), formatAmount(value),
	)
	if len(rec.Geos) > 1 {
		msg += fmt.Sprintf("\nℹ️ _The total was recorded under region %s._", geo.Name)
	}
	return msg
}

func geoNames(rec *entity.Recipient) string {
	names := make([]string, 0, len(rec.Geos))
	for _, geo := range rec.Geos {
		names = append(names, geo.Name)
	}
	return strings.Join(names, ", ")
}

// matchPromptKind is the fallback reply router: keyword matching on the
// prompt text the user replied to. Monthly keywords are checked first; an
// unrecognized prompt defaults to the daily handler.
func matchPromptKind(repliedTo string) domain.PromptKind {
	lower := strings.ToLower(repliedTo)
	if strings.Contains(lower, "actual profit") || strings.Contains(lower, "monthly") {
		return domain.PromptMonthly
	}
	return domain.PromptDaily
}

func formatDailySummary(summary []*entity.SummaryRow) string {
	if len(summary) == 0 {
		return "📊 *No planned profit submitted today*"
	}

	var b strings.Builder
	b.WriteString("📊 *Daily planned profit digest*\n\n")
	b.WriteString("| Office | Region | Planned |\n")
	b.WriteString("|--------|--------|---------|\n")

	var total int64
	for _, row := range summary {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", row.OfficeName, row.GeoName, formatAmount(row.TotalPlanned))
		total += row.TotalPlanned
	}

	fmt.Fprintf(&b, "\n*Total: %s*", formatAmount(total))
	return b.String()
}

func formatMonthlyReport(deltas []*entity.DeltaRow, month time.Time) string {
	if len(deltas) == 0 {
		return fmt.Sprintf("📊 *No data for %s*", month.Format("2006-01"))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 *Monthly report for %s*\n\n", month.Format("2006-01"))
	b.WriteString("| Office | Region | Planned | Actual | Delta |\n")
	b.WriteString("|--------|--------|---------|--------|-------|\n")

	var planned, actual int64
	for _, row := range deltas {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			row.OfficeName, row.GeoName,
			formatAmount(row.TotalPlanned), formatAmount(row.AmountFact), formatAmount(row.Delta()))
		planned += row.TotalPlanned
		actual += row.AmountFact
	}

	fmt.Fprintf(&b, "\n*Planned: %s | Actual: %s | Delta: %s*",
		formatAmount(planned), formatAmount(actual), formatAmount(actual-planned))
	return b.String()
}

// formatAmount renders a whole amount with thin thousands grouping: 1 234 567.
func formatAmount(value int64) string {
	negative := value < 0
	if negative {
		value = -value
	}

	digits := fmt.Sprintf("%d", value)
	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	b.WriteString(" ₴")
	return b.String()
}
