package library

import (
	"context"

	"prompt-library/internal/apperr"
	"prompt-library/internal/db"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	msgCollectionNotFound = "collection not found"
	msgItemExists         = "prompt is already in the collection"
	itemCountSelect       = "collections.*, (SELECT COUNT(*) FROM collection_items WHERE collection_items.collection_id = collections.id) AS item_count"
)

type CollectionInput struct {
	Name        string
	Description *string
	IsPublic    bool
	UserID      string
}

type CollectionPatch struct {
	Name        Optional[string]
	Description Optional[string]
	IsPublic    Optional[bool]
}

// CollectionFilter narrows collection listings. A nil IsPublic matches both.
type CollectionFilter struct {
	UserID   string
	IsPublic *bool
	Search   string
}

func (f CollectionFilter) apply(tx *gorm.DB) *gorm.DB {
	if f.UserID != "" {
		tx = tx.Where("collections.user_id = ?", f.UserID)
	}
	if f.IsPublic != nil {
		tx = tx.Where("collections.is_public = ?", *f.IsPublic)
	}
	if f.Search != "" {
		pattern := likePattern(f.Search)
		tx = tx.Where(`(LOWER(collections.name) LIKE ? ESCAPE '\' OR LOWER(collections.description) LIKE ? ESCAPE '\')`, pattern, pattern)
	}
	return tx
}

func (l *Library) ListCollections(ctx context.Context, filter CollectionFilter, page Page) (PageResult[db.Collection], error) {
	result, err := listPage[db.Collection](ctx, l.conn, page, filter.apply, func(tx *gorm.DB) *gorm.DB {
		return tx.Select(itemCountSelect).Preload("User").Order("collections.updated_at DESC").Order("collections.id DESC")
	})
	if err != nil {
		return result, apperr.Internal("failed to load collections", err)
	}
	return result, nil
}

func (l *Library) CreateCollection(ctx context.Context, in CollectionInput) (*db.Collection, error) {
	if in.Name == "" || in.UserID == "" {
		return nil, apperr.Validation(msgMissingFields)
	}
	collection := db.Collection{
		Name:        in.Name,
		Description: in.Description,
		IsPublic:    in.IsPublic,
		UserID:      in.UserID,
	}
	err := l.inTx(ctx, func(tx *gorm.DB) error {
		found, err := exists(tx, &db.User{}, "id = ?", in.UserID)
		if err != nil {
			return err
		}
		if !found {
			return apperr.NotFound(msgUserNotFound)
		}
		if err := tx.Create(&collection).Error; err != nil {
			return err
		}
		return tx.Preload("User").First(&collection, "id = ?", collection.ID).Error
	})
	if err != nil {
		return nil, storeError(err, "failed to create collection", "")
	}
	return &collection, nil
}

// GetCollection returns the collection with its owner and all of its items in
// display order. The collection and its items are loaded concurrently.
func (l *Library) GetCollection(ctx context.Context, id string) (*db.Collection, error) {
	var (
		collection db.Collection
		items      []db.CollectionItem
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := l.conn.WithContext(gctx).Preload("User").First(&collection, "id = ?", id).Error
		if isNotFound(err) {
			return apperr.NotFound(msgCollectionNotFound)
		}
		return err
	})
	g.Go(func() error {
		return l.conn.WithContext(gctx).
			Preload("Prompt.Tool").
			Where("collection_id = ?", id).
			Order("sort_order ASC").Order("created_at ASC").
			Find(&items).Error
	})
	if err := g.Wait(); err != nil {
		return nil, storeError(err, "failed to load collection", "")
	}
	if items == nil {
		items = []db.CollectionItem{}
	}
	collection.Items = items
	collection.ItemCount = int64(len(items))
	return &collection, nil
}

func (l *Library) UpdateCollection(ctx context.Context, id string, patch CollectionPatch) (*db.Collection, error) {
	updates := map[string]any{}
	if patch.Name.Set {
		if patch.Name.Null || patch.Name.Value == "" {
			return nil, apperr.Validation("name cannot be empty")
		}
		updates["name"] = patch.Name.Value
	}
	if patch.Description.Set {
		updates["description"] = patch.Description.Ptr()
	}
	if patch.IsPublic.Set {
		if patch.IsPublic.Null {
			return nil, apperr.Validation("isPublic cannot be null")
		}
		updates["is_public"] = patch.IsPublic.Value
	}
	var collection db.Collection
	err := l.inTx(ctx, func(tx *gorm.DB) error {
		if err := tx.First(&collection, "id = ?", id).Error; err != nil {
			if isNotFound(err) {
				return apperr.NotFound(msgCollectionNotFound)
			}
			return err
		}
		if len(updates) > 0 {
			if err := tx.Model(&collection).Updates(updates).Error; err != nil {
				return err
			}
		}
		collection = db.Collection{}
		return tx.Select(itemCountSelect).Preload("User").First(&collection, "collections.id = ?", id).Error
	})
	if err != nil {
		return nil, storeError(err, "failed to update collection", "")
	}
	return &collection, nil
}

// DeleteCollection removes the collection and its items.
func (l *Library) DeleteCollection(ctx context.Context, id string) error {
	err := l.inTx(ctx, func(tx *gorm.DB) error {
		found, err := exists(tx, &db.Collection{}, "id = ?", id)
		if err != nil {
			return err
		}
		if !found {
			return apperr.NotFound(msgCollectionNotFound)
		}
		if err := tx.Where("collection_id = ?", id).Delete(&db.CollectionItem{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&db.Collection{}).Error
	})
	return storeError(err, "failed to delete collection", "")
}

type ItemInput struct {
	PromptID string
	Note     *string
	Order    *int
}

// AddCollectionItem appends a prompt to a collection. Without an explicit
// order the item goes after the current maximum, or at 0 in an empty
// collection.
func (l *Library) AddCollectionItem(ctx context.Context, collectionID string, in ItemInput) (*db.CollectionItem, error) {
	if in.PromptID == "" {
		return nil, apperr.Validation("missing prompt id")
	}
	item := db.CollectionItem{
		CollectionID: collectionID,
		PromptID:     in.PromptID,
		Note:         in.Note,
	}
	err := l.inTx(ctx, func(tx *gorm.DB) error {
		var collection db.Collection
		if err := lockForUpdate(tx).First(&collection, "id = ?", collectionID).Error; err != nil {
			if isNotFound(err) {
				return apperr.NotFound(msgCollectionNotFound)
			}
			return err
		}
		found, err := exists(tx, &db.Prompt{}, "id = ?", in.PromptID)
		if err != nil {
			return err
		}
		if !found {
			return apperr.NotFound(msgPromptNotFound)
		}
		duplicate, err := exists(tx, &db.CollectionItem{}, "collection_id = ? AND prompt_id = ?", collectionID, in.PromptID)
		if err != nil {
			return err
		}
		if duplicate {
			return apperr.Conflict(msgItemExists)
		}
		if in.Order != nil {
			item.Order = *in.Order
		} else {
			next, err := nextItemOrder(tx, collectionID)
			if err != nil {
				return err
			}
			item.Order = next
		}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		return tx.Preload("Prompt.Tool").First(&item, "id = ?", item.ID).Error
	})
	if err != nil {
		return nil, storeError(err, "failed to add item to collection", msgItemExists)
	}
	return &item, nil
}

func nextItemOrder(tx *gorm.DB, collectionID string) (int, error) {
	var next int
	err := tx.Model(&db.CollectionItem{}).
		Select("COALESCE(MAX(sort_order), -1) + 1").
		Where("collection_id = ?", collectionID).
		Row().Scan(&next)
	return next, err
}

func (l *Library) ListCollectionItems(ctx context.Context, collectionID string, page Page) (PageResult[db.CollectionItem], error) {
	filter := func(tx *gorm.DB) *gorm.DB {
		return tx.Where("collection_items.collection_id = ?", collectionID)
	}
	result, err := listPage[db.CollectionItem](ctx, l.conn, page, filter, func(tx *gorm.DB) *gorm.DB {
		return tx.Preload("Prompt.Tool").Order("collection_items.sort_order ASC").Order("collection_items.created_at ASC")
	})
	if err != nil {
		return result, apperr.Internal("failed to load collection items", err)
	}
	return result, nil
}
