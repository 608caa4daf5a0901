package database

import (
	"context"
	"fmt"

	"github.com/planfact/planfact-bot/internal/domain/contract"
)

// instance implements DataManager interface
type instance struct {
	db         *DB
	officeRepo contract.OfficeRepo
	geoRepo    contract.GeoRepo
	userRepo   contract.UserRepo
	reportRepo contract.ReportRepo
	factRepo   contract.FactRepo
	promptRepo contract.PromptRepo
}

// NewInstance creates a new database instance with all repositories
func NewInstance(db *DB) contract.DataManager {
	i := &instance{db: db}
	i.repoInstances()
	return i
}

// repoInstances initializes all repositories
func (i *instance) repoInstances() {
	i.officeRepo = newOfficeRepo(i.db.conn)
	i.geoRepo = newGeoRepo(i.db.conn)
	i.userRepo = newUserRepo(i.db.conn)
	i.reportRepo = newReportRepo(i.db.conn)
	i.factRepo = newFactRepo(i.db.conn)
	i.promptRepo = newPromptRepo(i.db.conn)
}

// repoInstancesWithConn creates repository instances with custom dbConn
func repoInstancesWithConn(db dbConn) *instance {
	return &instance{
		officeRepo: newOfficeRepo(db),
		geoRepo:    newGeoRepo(db),
		userRepo:   newUserRepo(db),
		reportRepo: newReportRepo(db),
		factRepo:   newFactRepo(db),
		promptRepo: newPromptRepo(db),
	}
}

// Office returns the office repository
func (i *instance) Office() contract.OfficeRepo {
	return i.officeRepo
}

// Geo returns the geo repository
func (i *instance) Geo() contract.GeoRepo {
	return i.geoRepo
}

// User returns the user repository
func (i *instance) User() contract.UserRepo {
	return i.userRepo
}

// Report returns the daily report repository
func (i *instance) Report() contract.ReportRepo {
	return i.reportRepo
}

// Fact returns the monthly fact repository
func (i *instance) Fact() contract.FactRepo {
	return i.factRepo
}

// Prompt returns the pending prompt repository
func (i *instance) Prompt() contract.PromptRepo {
	return i.promptRepo
}

// WithTransaction executes a function within a database transaction
func (i *instance) WithTransaction(ctx context.Context, fn func(dm contract.DataManager) error) error {
	tx, err := i.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	txInstance := repoInstancesWithConn(tx)
	err = fn(txInstance)
	if err != nil {
		rbErr := tx.Rollback()
		if rbErr != nil {
			return fmt.Errorf("error rolling back transaction: %v, original error: %w", rbErr, err)
		}
		return err
	}

	return tx.Commit()
}
