// Package library implements the prompt library's write rules and queries on
// top of the gorm content store: content-hash deduplication, referential
// checks, append-at-end collection ordering and paginated listing.
package library

import (
	"context"
	"errors"

	"prompt-library/internal/apperr"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Messages shared by several operations.
const (
	msgMissingFields  = "missing required fields"
	msgToolNotFound   = "tool not found"
	msgPromptNotFound = "prompt not found"
	msgUserNotFound   = "user not found"
)

type Library struct {
	conn *gorm.DB
}

func New(conn *gorm.DB) *Library {
	return &Library{conn: conn}
}

func (l *Library) inTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return l.conn.WithContext(ctx).Transaction(fn)
}

// storeError classifies an error returned by the store. Errors already
// classified pass through; unique-index violations become conflicts when
// conflictMsg is set; everything else is internal.
func storeError(err error, internalMsg, conflictMsg string) error {
	if err == nil {
		return nil
	}
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}
	if conflictMsg != "" && errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Conflict(conflictMsg)
	}
	return apperr.Internal(internalMsg, err)
}

func exists(tx *gorm.DB, model any, query string, args ...any) (bool, error) {
	var count int64
	if err := tx.Model(model).Where(query, args...).Limit(1).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// lockForUpdate adds FOR UPDATE where the dialect supports it.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
