package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Tool lifecycle states.
const (
	ToolStatusActive     = "ACTIVE"
	ToolStatusDeprecated = "DEPRECATED"
	ToolStatusArchived   = "ARCHIVED"
)

// Prompt kinds.
const (
	PromptTypeSystem         = "SYSTEM"
	PromptTypeAgent          = "AGENT"
	PromptTypeToolDefinition = "TOOL_DEFINITION"
	PromptTypeMemory         = "MEMORY"
	PromptTypePlanning       = "PLANNING"
	PromptTypeOther          = "OTHER"
	PromptTypeBusiness       = "BUSINESS"
)

var (
	ToolStatuses = []string{ToolStatusActive, ToolStatusDeprecated, ToolStatusArchived}
	PromptTypes  = []string{
		PromptTypeSystem,
		PromptTypeAgent,
		PromptTypeToolDefinition,
		PromptTypeMemory,
		PromptTypePlanning,
		PromptTypeOther,
		PromptTypeBusiness,
	}
)

func assignID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      *string   `gorm:"size:128" json:"name"`
	Username  *string   `gorm:"size:64;index" json:"username"`
	Image     *string   `gorm:"type:text" json:"image"`
	CreatedAt time.Time `gorm:"not null" json:"-"`
	UpdatedAt time.Time `gorm:"not null" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	assignID(&u.ID)
	return nil
}

type Category struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"size:128;not null" json:"name"`
	Slug        string    `gorm:"size:128;uniqueIndex;not null" json:"slug"`
	Description *string   `gorm:"type:text" json:"description"`
	Icon        *string   `gorm:"size:64" json:"icon"`
	Order       int       `gorm:"column:sort_order;not null;default:0" json:"order"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null" json:"updatedAt"`
	Tools       []Tool    `json:"tools,omitempty"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	assignID(&c.ID)
	return nil
}

type Tool struct {
	ID          string                      `gorm:"primaryKey;size:36" json:"id"`
	Name        string                      `gorm:"size:128;not null;index" json:"name"`
	Slug        string                      `gorm:"size:128;uniqueIndex;not null" json:"slug"`
	Description *string                     `gorm:"type:text" json:"description"`
	CategoryID  string                      `gorm:"size:36;index;not null" json:"categoryId"`
	Category    *Category                   `json:"category,omitempty"`
	Website     *string                     `gorm:"type:text" json:"website"`
	Logo        *string                     `gorm:"type:text" json:"logo"`
	GithubURL   *string                     `gorm:"column:github_url;type:text" json:"githubUrl"`
	Features    datatypes.JSONSlice[string] `gorm:"not null" json:"features"`
	Tags        datatypes.JSONSlice[string] `gorm:"not null" json:"tags"`
	Status      string                      `gorm:"size:16;not null;default:ACTIVE;index" json:"status"`
	CreatedAt   time.Time                   `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time                   `gorm:"not null" json:"updatedAt"`
	Prompts     []Prompt                    `json:"prompts,omitempty"`
	PromptCount int64                       `gorm:"->;-:migration" json:"promptCount"`
}

func (t *Tool) BeforeCreate(tx *gorm.DB) error {
	assignID(&t.ID)
	return nil
}

type Prompt struct {
	ID            string         `gorm:"primaryKey;size:36" json:"id"`
	ToolID        string         `gorm:"size:36;index;not null" json:"toolId"`
	Tool          *Tool          `json:"tool,omitempty"`
	Version       string         `gorm:"size:64;not null" json:"version"`
	Type          string         `gorm:"size:32;not null;default:SYSTEM;index" json:"type"`
	Content       string         `gorm:"type:text;not null" json:"content"`
	Metadata      datatypes.JSON `json:"metadata"`
	Language      string         `gorm:"size:16;not null;default:en" json:"language"`
	Hash          string         `gorm:"size:64;uniqueIndex;not null" json:"hash"`
	Source        *string        `gorm:"type:text" json:"source"`
	SourceURL     *string        `gorm:"column:source_url;type:text" json:"sourceUrl"`
	IsOfficial    bool           `gorm:"not null;default:false" json:"isOfficial"`
	ViewCount     int64          `gorm:"not null;default:0" json:"viewCount"`
	DownloadCount int64          `gorm:"not null;default:0" json:"downloadCount"`
	VerifiedAt    *time.Time     `json:"verifiedAt"`
	CreatedAt     time.Time      `gorm:"not null;index" json:"createdAt"`
	UpdatedAt     time.Time      `gorm:"not null" json:"updatedAt"`
}

func (p *Prompt) BeforeCreate(tx *gorm.DB) error {
	assignID(&p.ID)
	return nil
}

type Collection struct {
	ID          string           `gorm:"primaryKey;size:36" json:"id"`
	Name        string           `gorm:"size:255;not null" json:"name"`
	Description *string          `gorm:"type:text" json:"description"`
	IsPublic    bool             `gorm:"not null;default:false;index" json:"isPublic"`
	UserID      string           `gorm:"size:36;index;not null" json:"userId"`
	User        *User            `json:"user,omitempty"`
	CreatedAt   time.Time        `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time        `gorm:"not null;index" json:"updatedAt"`
	Items       []CollectionItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
	ItemCount   int64            `gorm:"->;-:migration" json:"itemCount"`
}

func (c *Collection) BeforeCreate(tx *gorm.DB) error {
	assignID(&c.ID)
	return nil
}

type CollectionItem struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	CollectionID string    `gorm:"size:36;not null;uniqueIndex:idx_collection_items_collection_prompt" json:"collectionId"`
	PromptID     string    `gorm:"size:36;not null;index;uniqueIndex:idx_collection_items_collection_prompt" json:"promptId"`
	Prompt       *Prompt   `json:"prompt,omitempty"`
	Note         *string   `gorm:"type:text" json:"note"`
	Order        int       `gorm:"column:sort_order;not null;default:0" json:"order"`
	CreatedAt    time.Time `gorm:"not null" json:"createdAt"`
}

func (i *CollectionItem) BeforeCreate(tx *gorm.DB) error {
	assignID(&i.ID)
	return nil
}

type Favorite struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:36;not null;uniqueIndex:idx_favorites_user_prompt" json:"userId"`
	PromptID  string    `gorm:"size:36;not null;index;uniqueIndex:idx_favorites_user_prompt" json:"promptId"`
	Prompt    *Prompt   `json:"prompt,omitempty"`
	CreatedAt time.Time `gorm:"not null;index" json:"createdAt"`
}

func (f *Favorite) BeforeCreate(tx *gorm.DB) error {
	assignID(&f.ID)
	return nil
}
