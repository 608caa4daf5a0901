package database

import (
	"fmt"
	"time"

	"github.com/planfact/planfact-bot/internal/domain/contract"
	"github.com/planfact/planfact-bot/internal/domain/entity"
)

// dateLayout is the storage format for report dates and fact months. Dates
// are normalized before insert so string comparison orders correctly.
const dateLayout = "2006-01-02"

type reportRepo struct {
	db dbConn
}

func newReportRepo(db dbConn) contract.ReportRepo {
	return &reportRepo{db: db}
}

func (r *reportRepo) Create(report *entity.Report) error {
	query := `
		INSERT INTO reports (office_id, geo_id, report_date, amount_planned)
		VALUES (?, ?, ?, ?)
	`

	dateStr := report.Date.Format(dateLayout)
	result, err := r.db.Exec(query,
		report.OfficeID,
		report.GeoID,
		dateStr,
		report.AmountPlanned,
	)
	if err != nil {
		return classifyErr(err, fmt.Sprintf("report for geo %d on %s already exists", report.GeoID, dateStr))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	report.ID = id
	return nil
}

// GetTodaySummary returns the planned totals per (office, geo) for one day.
func (r *reportRepo) GetTodaySummary(date time.Time) ([]*entity.SummaryRow, error) {
	query := `
		SELECT o.name, g.name, SUM(r.amount_planned)
		FROM reports r
		JOIN geos g ON g.id = r.geo_id
		JOIN offices o ON o.id = r.office_id
		WHERE r.report_date = ?
		GROUP BY o.id, g.id
		ORDER BY o.name, g.name
	`

	rows, err := r.db.Query(query, date.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to get today summary: %w", err)
	}
	defer rows.Close()

	var summary []*entity.SummaryRow
	for rows.Next() {
		row := &entity.SummaryRow{}
		err := rows.Scan(&row.OfficeName, &row.GeoName, &row.TotalPlanned)
		if err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}
		summary = append(summary, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate summary rows: %w", err)
	}

	return summary, nil
}
