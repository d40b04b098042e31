package library

import (
	"context"
	"slices"

	"prompt-library/internal/apperr"
	"prompt-library/internal/db"

	"gorm.io/gorm"
)

const promptCountSelect = "tools.*, (SELECT COUNT(*) FROM prompts WHERE prompts.tool_id = tools.id) AS prompt_count"

type ToolInput struct {
	Name        string
	Slug        string
	Description *string
	CategoryID  string
	Website     *string
	Logo        *string
	GithubURL   *string
	Features    []string
	Tags        []string
	Status      string
}

// ToolFilter narrows tool listings. An empty Status means ACTIVE.
type ToolFilter struct {
	CategoryID string
	Search     string
	Status     string
}

func (f ToolFilter) apply(tx *gorm.DB) *gorm.DB {
	status := f.Status
	if status == "" {
		status = db.ToolStatusActive
	}
	tx = tx.Where("tools.status = ?", status)
	if f.CategoryID != "" {
		tx = tx.Where("tools.category_id = ?", f.CategoryID)
	}
	if f.Search != "" {
		pattern := likePattern(f.Search)
		tx = tx.Where(`(LOWER(tools.name) LIKE ? ESCAPE '\' OR LOWER(tools.description) LIKE ? ESCAPE '\')`, pattern, pattern)
	}
	return tx
}

func (l *Library) ListTools(ctx context.Context, filter ToolFilter, page Page) (PageResult[db.Tool], error) {
	result, err := listPage[db.Tool](ctx, l.conn, page, filter.apply, func(tx *gorm.DB) *gorm.DB {
		return tx.Select(promptCountSelect).Preload("Category").Order("tools.name ASC").Order("tools.id ASC")
	})
	if err != nil {
		return result, apperr.Internal("failed to load tools", err)
	}
	return result, nil
}

func (l *Library) CreateTool(ctx context.Context, in ToolInput) (*db.Tool, error) {
	if in.Name == "" || in.Slug == "" || in.CategoryID == "" {
		return nil, apperr.Validation(msgMissingFields)
	}
	status := in.Status
	if status == "" {
		status = db.ToolStatusActive
	}
	if !slices.Contains(db.ToolStatuses, status) {
		return nil, apperr.Validation("invalid tool status")
	}
	tool := db.Tool{
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
		CategoryID:  in.CategoryID,
		Website:     in.Website,
		Logo:        in.Logo,
		GithubURL:   in.GithubURL,
		Features:    nonNilStrings(in.Features),
		Tags:        nonNilStrings(in.Tags),
		Status:      status,
	}
	err := l.inTx(ctx, func(tx *gorm.DB) error {
		taken, err := exists(tx, &db.Tool{}, "slug = ?", in.Slug)
		if err != nil {
			return err
		}
		if taken {
			return apperr.Conflict("slug already exists")
		}
		found, err := exists(tx, &db.Category{}, "id = ?", in.CategoryID)
		if err != nil {
			return err
		}
		if !found {
			return apperr.NotFound("category not found")
		}
		if err := tx.Create(&tool).Error; err != nil {
			return err
		}
		return tx.Preload("Category").First(&tool, "id = ?", tool.ID).Error
	})
	if err != nil {
		return nil, storeError(err, "failed to create tool", "slug already exists")
	}
	return &tool, nil
}

// GetTool returns the tool with the given slug, its category and its prompts
// newest first.
func (l *Library) GetTool(ctx context.Context, slug string) (*db.Tool, error) {
	var tool db.Tool
	err := l.conn.WithContext(ctx).
		Preload("Category").
		Preload("Prompts", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("prompts.created_at DESC").Order("prompts.id DESC")
		}).
		First(&tool, "slug = ?", slug).Error
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound(msgToolNotFound)
		}
		return nil, apperr.Internal("failed to load tool", err)
	}
	tool.PromptCount = int64(len(tool.Prompts))
	return &tool, nil
}

type CategoryInput struct {
	Name        string
	Slug        string
	Description *string
	Icon        *string
	Order       int
}

func (l *Library) CreateCategory(ctx context.Context, in CategoryInput) (*db.Category, error) {
	if in.Name == "" || in.Slug == "" {
		return nil, apperr.Validation(msgMissingFields)
	}
	category := db.Category{
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
		Icon:        in.Icon,
		Order:       in.Order,
	}
	err := l.inTx(ctx, func(tx *gorm.DB) error {
		taken, err := exists(tx, &db.Category{}, "slug = ?", in.Slug)
		if err != nil {
			return err
		}
		if taken {
			return apperr.Conflict("slug already exists")
		}
		return tx.Create(&category).Error
	})
	if err != nil {
		return nil, storeError(err, "failed to create category", "slug already exists")
	}
	return &category, nil
}

// CategoryBySlug returns the category with the given slug.
func (l *Library) CategoryBySlug(ctx context.Context, slug string) (*db.Category, error) {
	var category db.Category
	if err := l.conn.WithContext(ctx).First(&category, "slug = ?", slug).Error; err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("category not found")
		}
		return nil, apperr.Internal("failed to load category", err)
	}
	return &category, nil
}

func (l *Library) ListCategories(ctx context.Context) ([]db.Category, error) {
	categories := []db.Category{}
	err := l.conn.WithContext(ctx).Order("sort_order ASC").Order("name ASC").Find(&categories).Error
	if err != nil {
		return nil, apperr.Internal("failed to load categories", err)
	}
	return categories, nil
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
