package library

import (
	"bytes"
	"context"
	"encoding/json"
	"slices"
	"time"

	"prompt-library/internal/apperr"
	"prompt-library/internal/db"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const msgDuplicateContent = "a prompt with the same content already exists"

type PromptInput struct {
	ToolID     string
	Version    string
	Type       string
	Content    string
	Metadata   json.RawMessage
	Language   string
	Source     *string
	SourceURL  *string
	IsOfficial bool
	VerifiedAt *time.Time
}

// PromptPatch carries the fields of a partial prompt update. Fields that are
// not Set are left untouched.
type PromptPatch struct {
	Version    Optional[string]
	Type       Optional[string]
	Content    Optional[string]
	Metadata   Optional[json.RawMessage]
	Language   Optional[string]
	Source     Optional[string]
	SourceURL  Optional[string]
	IsOfficial Optional[bool]
	VerifiedAt Optional[time.Time]
}

type PromptFilter struct {
	ToolID string
	Type   string
	Search string
}

func (f PromptFilter) apply(tx *gorm.DB) *gorm.DB {
	if f.ToolID != "" {
		tx = tx.Where("prompts.tool_id = ?", f.ToolID)
	}
	if f.Type != "" {
		tx = tx.Where("prompts.type = ?", f.Type)
	}
	if f.Search != "" {
		pattern := likePattern(f.Search)
		tx = tx.Where(`(LOWER(prompts.content) LIKE ? ESCAPE '\' OR prompts.tool_id IN (SELECT tools.id FROM tools WHERE LOWER(tools.name) LIKE ? ESCAPE '\'))`, pattern, pattern)
	}
	return tx
}

func (l *Library) ListPrompts(ctx context.Context, filter PromptFilter, page Page) (PageResult[db.Prompt], error) {
	result, err := listPage[db.Prompt](ctx, l.conn, page, filter.apply, func(tx *gorm.DB) *gorm.DB {
		return tx.Preload("Tool.Category").Order("prompts.created_at DESC").Order("prompts.id DESC")
	})
	if err != nil {
		return result, apperr.Internal("failed to load prompts", err)
	}
	return result, nil
}

func (l *Library) CreatePrompt(ctx context.Context, in PromptInput) (*db.Prompt, error) {
	if in.ToolID == "" || in.Content == "" || in.Version == "" {
		return nil, apperr.Validation(msgMissingFields)
	}
	promptType := in.Type
	if promptType == "" {
		promptType = db.PromptTypeSystem
	}
	if !slices.Contains(db.PromptTypes, promptType) {
		return nil, apperr.Validation("invalid prompt type")
	}
	language := in.Language
	if language == "" {
		language = "en"
	}
	metadata, err := metadataColumn(in.Metadata)
	if err != nil {
		return nil, err
	}
	prompt := db.Prompt{
		ToolID:     in.ToolID,
		Version:    in.Version,
		Type:       promptType,
		Content:    in.Content,
		Metadata:   metadata,
		Language:   language,
		Hash:       ComputeHash(in.Content),
		Source:     in.Source,
		SourceURL:  in.SourceURL,
		IsOfficial: in.IsOfficial,
		VerifiedAt: in.VerifiedAt,
	}
	err = l.inTx(ctx, func(tx *gorm.DB) error {
		duplicate, err := exists(tx, &db.Prompt{}, "hash = ?", prompt.Hash)
		if err != nil {
			return err
		}
		if duplicate {
			return apperr.Conflict(msgDuplicateContent)
		}
		found, err := exists(tx, &db.Tool{}, "id = ?", in.ToolID)
		if err != nil {
			return err
		}
		if !found {
			return apperr.NotFound(msgToolNotFound)
		}
		if err := tx.Create(&prompt).Error; err != nil {
			return err
		}
		return tx.Preload("Tool").First(&prompt, "id = ?", prompt.ID).Error
	})
	if err != nil {
		return nil, storeError(err, "failed to create prompt", msgDuplicateContent)
	}
	return &prompt, nil
}

// GetPrompt returns the prompt with its tool and the tool's category, counting
// the read in viewCount.
func (l *Library) GetPrompt(ctx context.Context, id string) (*db.Prompt, error) {
	prompt, err := l.bumpCounter(ctx, id, "view_count")
	if err != nil {
		return nil, storeError(err, "failed to load prompt", "")
	}
	return prompt, nil
}

// RecordDownload counts a download of the prompt and returns it.
func (l *Library) RecordDownload(ctx context.Context, id string) (*db.Prompt, error) {
	prompt, err := l.bumpCounter(ctx, id, "download_count")
	if err != nil {
		return nil, storeError(err, "failed to record download", "")
	}
	return prompt, nil
}

func (l *Library) bumpCounter(ctx context.Context, id, column string) (*db.Prompt, error) {
	var prompt db.Prompt
	err := l.inTx(ctx, func(tx *gorm.DB) error {
		result := tx.Model(&db.Prompt{}).Where("id = ?", id).UpdateColumn(column, gorm.Expr(column+" + ?", 1))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperr.NotFound(msgPromptNotFound)
		}
		return tx.Preload("Tool.Category").First(&prompt, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &prompt, nil
}

func (l *Library) UpdatePrompt(ctx context.Context, id string, patch PromptPatch) (*db.Prompt, error) {
	updates, err := patch.updates()
	if err != nil {
		return nil, err
	}
	var prompt db.Prompt
	err = l.inTx(ctx, func(tx *gorm.DB) error {
		if err := tx.First(&prompt, "id = ?", id).Error; err != nil {
			if isNotFound(err) {
				return apperr.NotFound(msgPromptNotFound)
			}
			return err
		}
		if hash, ok := updates["hash"]; ok {
			duplicate, err := exists(tx, &db.Prompt{}, "hash = ? AND id <> ?", hash, id)
			if err != nil {
				return err
			}
			if duplicate {
				return apperr.Conflict(msgDuplicateContent)
			}
		}
		if len(updates) > 0 {
			if err := tx.Model(&prompt).Updates(updates).Error; err != nil {
				return err
			}
		}
		// Reload into a fresh value; scanning NULL does not clear a set field.
		prompt = db.Prompt{}
		return tx.Preload("Tool").First(&prompt, "id = ?", id).Error
	})
	if err != nil {
		return nil, storeError(err, "failed to update prompt", msgDuplicateContent)
	}
	return &prompt, nil
}

func (p PromptPatch) updates() (map[string]any, error) {
	updates := map[string]any{}
	if p.Version.Set {
		if p.Version.Null || p.Version.Value == "" {
			return nil, apperr.Validation("version cannot be empty")
		}
		updates["version"] = p.Version.Value
	}
	if p.Type.Set {
		if p.Type.Null || !slices.Contains(db.PromptTypes, p.Type.Value) {
			return nil, apperr.Validation("invalid prompt type")
		}
		updates["type"] = p.Type.Value
	}
	if p.Language.Set {
		if p.Language.Null || p.Language.Value == "" {
			return nil, apperr.Validation("language cannot be empty")
		}
		updates["language"] = p.Language.Value
	}
	if p.Source.Set {
		updates["source"] = p.Source.Ptr()
	}
	if p.SourceURL.Set {
		updates["source_url"] = p.SourceURL.Ptr()
	}
	if p.IsOfficial.Set {
		if p.IsOfficial.Null {
			return nil, apperr.Validation("isOfficial cannot be null")
		}
		updates["is_official"] = p.IsOfficial.Value
	}
	if p.VerifiedAt.Set {
		updates["verified_at"] = p.VerifiedAt.Ptr()
	}
	if p.Metadata.Set {
		metadata, err := metadataColumn(p.Metadata.Value)
		if err != nil {
			return nil, err
		}
		updates["metadata"] = metadata
	}
	if p.Content.Set {
		if p.Content.Null || p.Content.Value == "" {
			return nil, apperr.Validation("content cannot be empty")
		}
		updates["content"] = p.Content.Value
		updates["hash"] = ComputeHash(p.Content.Value)
	}
	return updates, nil
}

// metadataColumn validates free-form prompt metadata. Absent and null
// metadata map to SQL NULL; anything other than a JSON object is rejected.
func metadataColumn(raw json.RawMessage) (datatypes.JSON, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] != '{' || !json.Valid(trimmed) {
		return nil, apperr.Validation("metadata must be a JSON object")
	}
	return datatypes.JSON(trimmed), nil
}

func (l *Library) DeletePrompt(ctx context.Context, id string) error {
	err := l.inTx(ctx, func(tx *gorm.DB) error {
		found, err := exists(tx, &db.Prompt{}, "id = ?", id)
		if err != nil {
			return err
		}
		if !found {
			return apperr.NotFound(msgPromptNotFound)
		}
		if err := tx.Where("prompt_id = ?", id).Delete(&db.CollectionItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("prompt_id = ?", id).Delete(&db.Favorite{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&db.Prompt{}).Error
	})
	return storeError(err, "failed to delete prompt", "")
}
