package library

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Page selects a window of a list. Number is 1-based.
type Page struct {
	Number int
	Limit  int
}

func (p Page) normalized() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Limit < 1 {
		p.Limit = 1
	}
	return p
}

func (p Page) Offset() int {
	p = p.normalized()
	return (p.Number - 1) * p.Limit
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

func NewPagination(page Page, total int64) Pagination {
	page = page.normalized()
	return Pagination{
		Page:  page.Number,
		Limit: page.Limit,
		Total: total,
		Pages: int((total + int64(page.Limit) - 1) / int64(page.Limit)),
	}
}

type PageResult[T any] struct {
	Items      []T
	Pagination Pagination
}

// listPage runs the page query and the count query concurrently. Both start
// from filter applied to a fresh statement, so they always agree on the
// predicate; shape only adds selects, ordering and preloads to the page query.
func listPage[T any](ctx context.Context, conn *gorm.DB, page Page, filter, shape func(*gorm.DB) *gorm.DB) (PageResult[T], error) {
	page = page.normalized()
	var (
		items []T
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		query := conn.WithContext(gctx).Model(new(T)).Scopes(filter, shape)
		return query.Limit(page.Limit).Offset(page.Offset()).Find(&items).Error
	})
	g.Go(func() error {
		return conn.WithContext(gctx).Model(new(T)).Scopes(filter).Count(&total).Error
	})
	if err := g.Wait(); err != nil {
		return PageResult[T]{}, err
	}
	if items == nil {
		items = []T{}
	}
	return PageResult[T]{Items: items, Pagination: NewPagination(page, total)}, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a case-insensitive substring pattern for use with
// LOWER(column) LIKE ? ESCAPE '\'.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}
