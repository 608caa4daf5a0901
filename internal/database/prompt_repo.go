package database

import (
	"database/sql"
	"fmt"

	"github.com/planfact/planfact-bot/internal/domain/contract"
	"github.com/planfact/planfact-bot/internal/domain/entity"
)

type promptRepo struct {
	db dbConn
}

func newPromptRepo(db dbConn) contract.PromptRepo {
	return &promptRepo{db: db}
}

func (r *promptRepo) Create(prompt *entity.PendingPrompt) error {
	query := `
		INSERT INTO pending_prompts (slack_user_id, kind)
		VALUES (?, ?)
	`

	result, err := r.db.Exec(query, prompt.SlackUserID, prompt.Kind)
	if err != nil {
		return fmt.Errorf("failed to create pending prompt: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	prompt.ID = id
	return nil
}

func (r *promptRepo) GetLatestByUser(slackUserID string) (*entity.PendingPrompt, error) {
	prompt := &entity.PendingPrompt{}
	query := `
		SELECT id, slack_user_id, kind, sent_at
		FROM pending_prompts
		WHERE slack_user_id = ?
		ORDER BY sent_at DESC, id DESC
		LIMIT 1
	`

	err := r.db.QueryRow(query, slackUserID).Scan(
		&prompt.ID,
		&prompt.SlackUserID,
		&prompt.Kind,
		&prompt.SentAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pending prompt: %w", err)
	}

	return prompt, nil
}

func (r *promptRepo) DeleteByUser(slackUserID string) error {
	query := `DELETE FROM pending_prompts WHERE slack_user_id = ?`

	_, err := r.db.Exec(query, slackUserID)
	if err != nil {
		return fmt.Errorf("failed to delete pending prompts: %w", err)
	}

	return nil
}
