package database

import (
	"database/sql"
	"fmt"

	"github.com/planfact/planfact-bot/internal/domain/contract"
	"github.com/planfact/planfact-bot/internal/domain/entity"
)

type officeRepo struct {
	db dbConn
}

func newOfficeRepo(db dbConn) contract.OfficeRepo {
	return &officeRepo{db: db}
}

func (r *officeRepo) Create(office *entity.Office) error {
	query := `
		INSERT INTO offices (name)
		VALUES (?)
	`

	result, err := r.db.Exec(query, office.Name)
	if err != nil {
		return classifyErr(err, fmt.Sprintf("office %q already exists", office.Name))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	office.ID = id
	return nil
}

func (r *officeRepo) GetByID(id int64) (*entity.Office, error) {
	office := &entity.Office{}
	query := `
		SELECT id, name, created_at
		FROM offices
		WHERE id = ?
	`

	err := r.db.QueryRow(query, id).Scan(
		&office.ID,
		&office.Name,
		&office.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get office: %w", err)
	}

	return office, nil
}

func (r *officeRepo) GetByName(name string) (*entity.Office, error) {
	office := &entity.Office{}
	query := `
		SELECT id, name, created_at
		FROM offices
		WHERE name = ?
	`

	err := r.db.QueryRow(query, name).Scan(
		&office.ID,
		&office.Name,
		&office.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get office: %w", err)
	}

	return office, nil
}
