package database

import (
	"database/sql"
	"fmt"

	"github.com/planfact/planfact-bot/internal/domain/contract"
	"github.com/planfact/planfact-bot/internal/domain/entity"
)

type userRepo struct {
	db dbConn
}

func newUserRepo(db dbConn) contract.UserRepo {
	return &userRepo{db: db}
}

func (r *userRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (slack_user_id, name, office_id)
		VALUES (?, ?, ?)
	`

	result, err := r.db.Exec(query, user.SlackUserID, user.Name, user.OfficeID)
	if err != nil {
		return classifyErr(err, fmt.Sprintf("user %s already registered", user.SlackUserID))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	user.ID = id
	return nil
}

func (r *userRepo) GetBySlackID(slackUserID string) (*entity.User, error) {
	user := &entity.User{}
	query := `
		SELECT id, slack_user_id, name, office_id, created_at
		FROM users
		WHERE slack_user_id = ?
	`

	err := r.db.QueryRow(query, slackUserID).Scan(
		&user.ID,
		&user.SlackUserID,
		&user.Name,
		&user.OfficeID,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// GetRecipients returns every user joined with their office and all geos of
// that office. Membership is derived through the shared office; there is no
// direct user-geo table.
func (r *userRepo) GetRecipients() ([]*entity.Recipient, error) {
	query := `
		SELECT u.id, u.slack_user_id, u.name, u.office_id, u.created_at,
			o.id, o.name, o.created_at
		FROM users u
		JOIN offices o ON o.id = u.office_id
		ORDER BY o.name, u.name
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipients: %w", err)
	}
	defer rows.Close()

	var recipients []*entity.Recipient
	for rows.Next() {
		user := &entity.User{}
		office := &entity.Office{}
		err := rows.Scan(
			&user.ID,
			&user.SlackUserID,
			&user.Name,
			&user.OfficeID,
			&user.CreatedAt,
			&office.ID,
			&office.Name,
			&office.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipient: %w", err)
		}
		recipients = append(recipients, &entity.Recipient{User: user, Office: office})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recipients: %w", err)
	}

	for _, rec := range recipients {
		geos, err := r.geosByOffice(rec.Office.ID)
		if err != nil {
			return nil, err
		}
		rec.Geos = geos
	}

	return recipients, nil
}

func (r *userRepo) GetRecipientBySlackID(slackUserID string) (*entity.Recipient, error) {
	user := &entity.User{}
	office := &entity.Office{}
	query := `
		SELECT u.id, u.slack_user_id, u.name, u.office_id, u.created_at,
			o.id, o.name, o.created_at
		FROM users u
		JOIN offices o ON o.id = u.office_id
		WHERE u.slack_user_id = ?
	`

	err := r.db.QueryRow(query, slackUserID).Scan(
		&user.ID,
		&user.SlackUserID,
		&user.Name,
		&user.OfficeID,
		&user.CreatedAt,
		&office.ID,
		&office.Name,
		&office.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recipient: %w", err)
	}

	geos, err := r.geosByOffice(office.ID)
	if err != nil {
		return nil, err
	}

	return &entity.Recipient{User: user, Office: office, Geos: geos}, nil
}

func (r *userRepo) geosByOffice(officeID int64) ([]*entity.Geo, error) {
	query := `
		SELECT id, name, office_id
		FROM geos
		WHERE office_id = ?
		ORDER BY name ASC
	`

	rows, err := r.db.Query(query, officeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get geos for office: %w", err)
	}
	defer rows.Close()

	var geos []*entity.Geo
	for rows.Next() {
		geo := &entity.Geo{}
		if err := rows.Scan(&geo.ID, &geo.Name, &geo.OfficeID); err != nil {
			return nil, fmt.Errorf("failed to scan geo: %w", err)
		}
		geos = append(geos, geo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate geos: %w", err)
	}

	return geos, nil
}
