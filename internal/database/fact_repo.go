package database

import (
	"fmt"
	"time"

	"github.com/planfact/planfact-bot/internal/domain/contract"
	"github.com/planfact/planfact-bot/internal/domain/entity"
)

type factRepo struct {
	db dbConn
}

func newFactRepo(db dbConn) contract.FactRepo {
	return &factRepo{db: db}
}

func (r *factRepo) Create(fact *entity.Fact) error {
	query := `
		INSERT INTO facts (geo_id, month, amount_fact)
		VALUES (?, ?, ?)
	`

	// Month keys are always the first day of the month. Raw month strings
	// caused inconsistent comparisons in an earlier revision.
	monthStr := firstOfMonth(fact.Month).Format(dateLayout)
	result, err := r.db.Exec(query, fact.GeoID, monthStr, fact.AmountFact)
	if err != nil {
		return classifyErr(err, fmt.Sprintf("fact for geo %d in %s already exists", fact.GeoID, monthStr))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	fact.ID = id
	return nil
}

// GetMonthlyDelta returns, per geo with data in month, the planned total for
// that month alongside the recorded fact. Geos with a fact but no reports and
// geos with reports but no fact both appear, with zero for the missing side.
func (r *factRepo) GetMonthlyDelta(month time.Time) ([]*entity.DeltaRow, error) {
	monthStart := firstOfMonth(month)
	nextMonth := monthStart.AddDate(0, 1, 0)

	query := `
		SELECT o.name, g.name,
			COALESCE((
				SELECT SUM(r.amount_planned)
				FROM reports r
				WHERE r.geo_id = g.id AND r.report_date >= ? AND r.report_date < ?
			), 0),
			COALESCE((
				SELECT f.amount_fact
				FROM facts f
				WHERE f.geo_id = g.id AND f.month = ?
			), 0)
		FROM geos g
		JOIN offices o ON o.id = g.office_id
		WHERE EXISTS (
			SELECT 1 FROM reports r
			WHERE r.geo_id = g.id AND r.report_date >= ? AND r.report_date < ?
		) OR EXISTS (
			SELECT 1 FROM facts f
			WHERE f.geo_id = g.id AND f.month = ?
		)
		ORDER BY o.name, g.name
	`

	start := monthStart.Format(dateLayout)
	end := nextMonth.Format(dateLayout)
	monthKey := monthStart.Format(dateLayout)

	rows, err := r.db.Query(query, start, end, monthKey, start, end, monthKey)
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly delta: %w", err)
	}
	defer rows.Close()

	var deltas []*entity.DeltaRow
	for rows.Next() {
		row := &entity.DeltaRow{}
		err := rows.Scan(&row.OfficeName, &row.GeoName, &row.TotalPlanned, &row.AmountFact)
		if err != nil {
			return nil, fmt.Errorf("failed to scan delta row: %w", err)
		}
		deltas = append(deltas, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate delta rows: %w", err)
	}

	return deltas, nil
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
