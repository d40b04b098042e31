package library

import (
	"context"

	"prompt-library/internal/apperr"
	"prompt-library/internal/db"

	"gorm.io/gorm"
)

// UserInput describes a user record imported from the identity provider. An
// empty ID lets the store assign one.
type UserInput struct {
	ID       string
	Name     *string
	Username *string
	Image    *string
}

// EnsureUser creates the user unless one with the same ID already exists, in
// which case the stored record is returned unchanged.
func (l *Library) EnsureUser(ctx context.Context, in UserInput) (*db.User, error) {
	user := db.User{ID: in.ID, Name: in.Name, Username: in.Username, Image: in.Image}
	err := l.inTx(ctx, func(tx *gorm.DB) error {
		if in.ID != "" {
			var existing db.User
			err := tx.First(&existing, "id = ?", in.ID).Error
			if err == nil {
				user = existing
				return nil
			}
			if !isNotFound(err) {
				return err
			}
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		return nil, apperr.Internal("failed to save user", err)
	}
	return &user, nil
}
