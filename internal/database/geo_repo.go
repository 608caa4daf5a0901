package database

import (
	"fmt"

	"github.com/planfact/planfact-bot/internal/domain/contract"
	"github.com/planfact/planfact-bot/internal/domain/entity"
)

type geoRepo struct {
	db dbConn
}

func newGeoRepo(db dbConn) contract.GeoRepo {
	return &geoRepo{db: db}
}

func (r *geoRepo) Create(geo *entity.Geo) error {
	query := `
		INSERT INTO geos (name, office_id)
		VALUES (?, ?)
	`

	result, err := r.db.Exec(query, geo.Name, geo.OfficeID)
	if err != nil {
		return classifyErr(err, fmt.Sprintf("geo %q already exists in office %d", geo.Name, geo.OfficeID))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	geo.ID = id
	return nil
}

func (r *geoRepo) GetByOffice(officeID int64) ([]*entity.Geo, error) {
	query := `
		SELECT id, name, office_id
		FROM geos
		WHERE office_id = ?
		ORDER BY name ASC
	`

	rows, err := r.db.Query(query, officeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get geos: %w", err)
	}
	defer rows.Close()

	var geos []*entity.Geo
	for rows.Next() {
		geo := &entity.Geo{}
		err := rows.Scan(&geo.ID, &geo.Name, &geo.OfficeID)
		if err != nil {
			return nil, fmt.Errorf("failed to scan geo: %w", err)
		}
		geos = append(geos, geo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate geos: %w", err)
	}

	return geos, nil
}
