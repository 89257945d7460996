// Package paging provides a generic cursor-following reader over
// paginated provider feeds. The cursor name and location vary per feed,
// so callers bind a fetch function that returns each page together with
// the next cursor; iteration ends when the cursor is empty.
package paging

import (
	"context"

	"github.com/agentstation/tenantmap/pkg/constants"
	"github.com/agentstation/tenantmap/pkg/errors"
)

// Page is one raw page of a feed plus the continuation cursor extracted
// from it. An empty Next terminates iteration.
type Page[T any] struct {
	Items []T
	Next  string
}

// FetchFunc fetches the page identified by cursor. The first call
// receives the pager's initial cursor. Implementations own transport and
// auth; on failure they return a typed error and the pager performs no
// retries of its own.
type FetchFunc[T any] func(ctx context.Context, cursor string) (Page[T], error)

// Pager lazily follows a feed's continuation cursors. It is finite and
// non-restartable: once exhausted it stays exhausted.
type Pager[T any] struct {
	fetch    FetchFunc[T]
	cursor   string
	maxPages int
	pages    int
	done     bool
}

// Option configures a Pager.
type Option func(*config)

type config struct {
	maxPages int
}

// WithMaxPages overrides the page ceiling. The ceiling defends against
// continuation cursors that never terminate.
func WithMaxPages(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxPages = n
		}
	}
}

// New creates a pager starting at the given cursor (typically the feed's
// initial URL).
func New[T any](initialCursor string, fetch FetchFunc[T], opts ...Option) *Pager[T] {
	cfg := config{maxPages: constants.MaxPages}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Pager[T]{
		fetch:    fetch,
		cursor:   initialCursor,
		maxPages: cfg.maxPages,
	}
}

// More reports whether another page is available.
func (p *Pager[T]) More() bool {
	return !p.done
}

// Next fetches the next page. A fetch failure marks the pager exhausted
// and returns the fetch error unchanged; exceeding the page ceiling
// returns ErrPageLimit.
func (p *Pager[T]) Next(ctx context.Context) (Page[T], error) {
	if p.done {
		return Page[T]{}, errors.NewValidationError("pager", nil, "pager is exhausted")
	}

	if err := ctx.Err(); err != nil {
		p.done = true
		return Page[T]{}, errors.ErrCanceled
	}

	if p.pages >= p.maxPages {
		p.done = true
		return Page[T]{}, errors.ErrPageLimit
	}

	page, err := p.fetch(ctx, p.cursor)
	if err != nil {
		p.done = true
		return Page[T]{}, err
	}

	p.pages++
	p.cursor = page.Next
	if p.cursor == "" {
		p.done = true
	}
	return page, nil
}

// Items drains the pager and returns all items across pages.
func (p *Pager[T]) Items(ctx context.Context) ([]T, error) {
	var items []T
	for p.More() {
		page, err := p.Next(ctx)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
	}
	return items, nil
}

// Collect is a convenience wrapper that builds a pager and drains it in
// one call.
func Collect[T any](ctx context.Context, initialCursor string, fetch FetchFunc[T], opts ...Option) ([]T, error) {
	return New(initialCursor, fetch, opts...).Items(ctx)
}
