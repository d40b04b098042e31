package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"prompt-library/internal/apperr"
	"prompt-library/internal/library"

	"gopkg.in/yaml.v3"
)

type seedFile struct {
	Categories []seedCategory `yaml:"categories"`
	Tools      []seedTool     `yaml:"tools"`
	Prompts    []seedPrompt   `yaml:"prompts"`
	Users      []seedUser     `yaml:"users"`
}

type seedCategory struct {
	Name        string  `yaml:"name"`
	Slug        string  `yaml:"slug"`
	Description *string `yaml:"description"`
	Icon        *string `yaml:"icon"`
	Order       int     `yaml:"order"`
}

type seedTool struct {
	Name        string   `yaml:"name"`
	Slug        string   `yaml:"slug"`
	Category    string   `yaml:"category"`
	Description *string  `yaml:"description"`
	Website     *string  `yaml:"website"`
	Logo        *string  `yaml:"logo"`
	GithubURL   *string  `yaml:"githubUrl"`
	Features    []string `yaml:"features"`
	Tags        []string `yaml:"tags"`
	Status      string   `yaml:"status"`
}

// seedPrompt carries either inline content or a file path relative to the
// seed file.
type seedPrompt struct {
	Tool       string         `yaml:"tool"`
	Version    string         `yaml:"version"`
	Type       string         `yaml:"type"`
	Content    string         `yaml:"content"`
	File       string         `yaml:"file"`
	Language   string         `yaml:"language"`
	Source     *string        `yaml:"source"`
	SourceURL  *string        `yaml:"sourceUrl"`
	IsOfficial bool           `yaml:"isOfficial"`
	Metadata   map[string]any `yaml:"metadata"`
}

type seedUser struct {
	ID       string  `yaml:"id"`
	Name     *string `yaml:"name"`
	Username *string `yaml:"username"`
	Image    *string `yaml:"image"`
}

type summary struct {
	Created int
	Skipped int
}

func readSeed(path string) (seedFile, error) {
	var seed seedFile
	data, err := os.ReadFile(path)
	if err != nil {
		return seed, err
	}
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return seed, fmt.Errorf("parse %s: %w", path, err)
	}
	return seed, nil
}

// applySeed writes the seed through the library. Rows that already exist
// (slug or content hash conflicts) are counted as skipped, so a second run
// changes nothing.
func applySeed(ctx context.Context, lib *library.Library, seed seedFile, baseDir string) (summary, error) {
	var sum summary

	categoryIDs := make(map[string]string, len(seed.Categories))
	for _, entry := range seed.Categories {
		category, err := lib.CreateCategory(ctx, library.CategoryInput{
			Name:        entry.Name,
			Slug:        entry.Slug,
			Description: entry.Description,
			Icon:        entry.Icon,
			Order:       entry.Order,
		})
		if apperr.Is(err, apperr.KindConflict) {
			sum.Skipped++
			category, err = lib.CategoryBySlug(ctx, entry.Slug)
		} else if err == nil {
			sum.Created++
		}
		if err != nil {
			return sum, fmt.Errorf("category %s: %w", entry.Slug, err)
		}
		categoryIDs[entry.Slug] = category.ID
	}

	toolIDs := make(map[string]string, len(seed.Tools))
	for _, entry := range seed.Tools {
		categoryID, err := lookupCategory(ctx, lib, categoryIDs, entry.Category)
		if err != nil {
			return sum, fmt.Errorf("tool %s: %w", entry.Slug, err)
		}
		tool, err := lib.CreateTool(ctx, library.ToolInput{
			Name:        entry.Name,
			Slug:        entry.Slug,
			Description: entry.Description,
			CategoryID:  categoryID,
			Website:     entry.Website,
			Logo:        entry.Logo,
			GithubURL:   entry.GithubURL,
			Features:    entry.Features,
			Tags:        entry.Tags,
			Status:      entry.Status,
		})
		if apperr.Is(err, apperr.KindConflict) {
			sum.Skipped++
			tool, err = lib.GetTool(ctx, entry.Slug)
		} else if err == nil {
			sum.Created++
		}
		if err != nil {
			return sum, fmt.Errorf("tool %s: %w", entry.Slug, err)
		}
		toolIDs[entry.Slug] = tool.ID
	}

	for i, entry := range seed.Prompts {
		toolID, ok := toolIDs[entry.Tool]
		if !ok {
			tool, err := lib.GetTool(ctx, entry.Tool)
			if err != nil {
				return sum, fmt.Errorf("prompt %d: tool %s: %w", i, entry.Tool, err)
			}
			toolID = tool.ID
			toolIDs[entry.Tool] = toolID
		}
		content, err := promptContent(entry, baseDir)
		if err != nil {
			return sum, fmt.Errorf("prompt %d: %w", i, err)
		}
		var metadata json.RawMessage
		if entry.Metadata != nil {
			if metadata, err = json.Marshal(entry.Metadata); err != nil {
				return sum, fmt.Errorf("prompt %d metadata: %w", i, err)
			}
		}
		_, err = lib.CreatePrompt(ctx, library.PromptInput{
			ToolID:     toolID,
			Version:    entry.Version,
			Type:       entry.Type,
			Content:    content,
			Metadata:   metadata,
			Language:   entry.Language,
			Source:     entry.Source,
			SourceURL:  entry.SourceURL,
			IsOfficial: entry.IsOfficial,
		})
		switch {
		case apperr.Is(err, apperr.KindConflict):
			sum.Skipped++
		case err != nil:
			return sum, fmt.Errorf("prompt %d: %w", i, err)
		default:
			sum.Created++
		}
	}

	for _, entry := range seed.Users {
		if _, err := lib.EnsureUser(ctx, library.UserInput{
			ID:       entry.ID,
			Name:     entry.Name,
			Username: entry.Username,
			Image:    entry.Image,
		}); err != nil {
			return sum, fmt.Errorf("user %s: %w", entry.ID, err)
		}
	}
	return sum, nil
}

func lookupCategory(ctx context.Context, lib *library.Library, known map[string]string, slug string) (string, error) {
	if id, ok := known[slug]; ok {
		return id, nil
	}
	category, err := lib.CategoryBySlug(ctx, slug)
	if err != nil {
		return "", err
	}
	known[slug] = category.ID
	return category.ID, nil
}

func promptContent(entry seedPrompt, baseDir string) (string, error) {
	if entry.File == "" {
		return entry.Content, nil
	}
	path := entry.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
