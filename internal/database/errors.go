package database

import (
	"errors"

	"github.com/mattn/go-sqlite3"

	"github.com/planfact/planfact-bot/internal/domain"
)

// classifyErr maps a driver error to a tagged domain error so callers branch
// on kind instead of on sqlite3 internals. uniqueMsg describes the conflicting
// (region, period) pair for duplicate violations.
func classifyErr(err error, uniqueMsg string) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return domain.WrapError(domain.KindDuplicateEntry, err, "%s", uniqueMsg)
		case sqlite3.ErrConstraintForeignKey:
			return domain.WrapError(domain.KindIntegrityViolation, err, "referenced office or geo does not exist")
		}
	}
	return domain.WrapError(domain.KindStorage, err, "unexpected storage failure")
}
