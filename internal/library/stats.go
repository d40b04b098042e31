package library

import (
	"context"

	"prompt-library/internal/apperr"
	"prompt-library/internal/db"

	"golang.org/x/sync/errgroup"
)

type Stats struct {
	Tools       int64 `json:"tools"`
	Prompts     int64 `json:"prompts"`
	Categories  int64 `json:"categories"`
	Collections int64 `json:"collections"`
}

// Stats counts the library's main tables. Only active tools and public
// collections are counted, matching what browsing shows.
func (l *Library) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return l.conn.WithContext(gctx).Model(&db.Tool{}).Where("status = ?", db.ToolStatusActive).Count(&stats.Tools).Error
	})
	g.Go(func() error {
		return l.conn.WithContext(gctx).Model(&db.Prompt{}).Count(&stats.Prompts).Error
	})
	g.Go(func() error {
		return l.conn.WithContext(gctx).Model(&db.Category{}).Count(&stats.Categories).Error
	})
	g.Go(func() error {
		return l.conn.WithContext(gctx).Model(&db.Collection{}).Where("is_public = ?", true).Count(&stats.Collections).Error
	})
	if err := g.Wait(); err != nil {
		return Stats{}, apperr.Internal("failed to load stats", err)
	}
	return stats, nil
}
