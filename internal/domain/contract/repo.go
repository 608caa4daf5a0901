package contract

import (
	"context"
	"time"

	"github.com/planfact/planfact-bot/internal/domain/entity"
)

// DataManager aggregates all repository interfaces
type DataManager interface {
	WithTransaction(ctx context.Context, fn func(dm DataManager) error) error
	Office() OfficeRepo
	Geo() GeoRepo
	User() UserRepo
	Report() ReportRepo
	Fact() FactRepo
	Prompt() PromptRepo
}

// OfficeRepo defines the contract for office repository
type OfficeRepo interface {
	Create(office *entity.Office) error
	GetByID(id int64) (*entity.Office, error)
	GetByName(name string) (*entity.Office, error)
}

// GeoRepo defines the contract for geo repository
type GeoRepo interface {
	Create(geo *entity.Geo) error
	GetByOffice(officeID int64) ([]*entity.Geo, error)
}

// UserRepo defines the contract for user repository
type UserRepo interface {
	Create(user *entity.User) error
	GetBySlackID(slackUserID string) (*entity.User, error)
	GetRecipients() ([]*entity.Recipient, error)
	GetRecipientBySlackID(slackUserID string) (*entity.Recipient, error)
}

// ReportRepo defines the contract for daily report repository
type ReportRepo interface {
	Create(report *entity.Report) error
	GetTodaySummary(date time.Time) ([]*entity.SummaryRow, error)
}

// FactRepo defines the contract for monthly fact repository
type FactRepo interface {
	Create(fact *entity.Fact) error
	GetMonthlyDelta(month time.Time) ([]*entity.DeltaRow, error)
}

// PromptRepo defines the contract for pending prompt correlation rows
type PromptRepo interface {
	Create(prompt *entity.PendingPrompt) error
	GetLatestByUser(slackUserID string) (*entity.PendingPrompt, error)
	DeleteByUser(slackUserID string) error
}
