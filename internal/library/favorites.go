package library

import (
	"context"

	"prompt-library/internal/apperr"
	"prompt-library/internal/db"

	"gorm.io/gorm"
)

const msgFavoriteExists = "prompt is already in favorites"

func (l *Library) ListFavorites(ctx context.Context, userID string, page Page) (PageResult[db.Favorite], error) {
	if userID == "" {
		return PageResult[db.Favorite]{}, apperr.Validation("missing user id")
	}
	filter := func(tx *gorm.DB) *gorm.DB {
		return tx.Where("favorites.user_id = ?", userID)
	}
	result, err := listPage[db.Favorite](ctx, l.conn, page, filter, func(tx *gorm.DB) *gorm.DB {
		return tx.Preload("Prompt.Tool.Category").Order("favorites.created_at DESC").Order("favorites.id DESC")
	})
	if err != nil {
		return result, apperr.Internal("failed to load favorites", err)
	}
	return result, nil
}

func (l *Library) CreateFavorite(ctx context.Context, userID, promptID string) (*db.Favorite, error) {
	if userID == "" || promptID == "" {
		return nil, apperr.Validation(msgMissingFields)
	}
	favorite := db.Favorite{UserID: userID, PromptID: promptID}
	err := l.inTx(ctx, func(tx *gorm.DB) error {
		found, err := exists(tx, &db.User{}, "id = ?", userID)
		if err != nil {
			return err
		}
		if !found {
			return apperr.NotFound(msgUserNotFound)
		}
		found, err = exists(tx, &db.Prompt{}, "id = ?", promptID)
		if err != nil {
			return err
		}
		if !found {
			return apperr.NotFound(msgPromptNotFound)
		}
		duplicate, err := exists(tx, &db.Favorite{}, "user_id = ? AND prompt_id = ?", userID, promptID)
		if err != nil {
			return err
		}
		if duplicate {
			return apperr.Conflict(msgFavoriteExists)
		}
		if err := tx.Create(&favorite).Error; err != nil {
			return err
		}
		return tx.Preload("Prompt.Tool").First(&favorite, "id = ?", favorite.ID).Error
	})
	if err != nil {
		return nil, storeError(err, "failed to add favorite", msgFavoriteExists)
	}
	return &favorite, nil
}

func (l *Library) DeleteFavorite(ctx context.Context, userID, promptID string) error {
	if userID == "" || promptID == "" {
		return apperr.Validation("missing required parameters")
	}
	result := l.conn.WithContext(ctx).
		Where("user_id = ? AND prompt_id = ?", userID, promptID).
		Delete(&db.Favorite{})
	if result.Error != nil {
		return apperr.Internal("failed to remove favorite", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("favorite not found")
	}
	return nil
}
