// Package pagination turns a single-page fetch into a lazy sequence of
// decoded items.
//
// Sequences are pull-driven: the next page is fetched only after the
// consumer has taken every item of the previous one, and nothing is fetched
// once the consumer stops. Each page gets its own entity table.
package pagination

import (
	"context"
	"iter"

	"github.com/custodia-labs/tgcore/internal/core/domain"
	"github.com/custodia-labs/tgcore/internal/decoders"
	"github.com/custodia-labs/tgcore/internal/entities"
)

// Page is one fetched page of raw list items.
type Page struct {
	// Items are the raw list elements in server order.
	Items []domain.RawVariant

	// NextCursor continues the listing. Empty means there is no more data.
	NextCursor string

	// Entities are the page's auxiliary collections.
	Entities domain.Entities
}

// FetchFunc fetches one page starting at cursor. The empty cursor is the
// first page. Errors are passed to the consumer unchanged.
type FetchFunc func(ctx context.Context, cursor string, pageSize int) (Page, error)

type options struct {
	cursor string
	onPage func(Page)
}

// Option configures a pagination run.
type Option func(*options)

// WithCursor starts the run at cursor instead of the first page.
func WithCursor(cursor string) Option {
	return func(o *options) {
		o.cursor = cursor
	}
}

// WithPageHook calls fn with every fetched page before its items are decoded.
func WithPageHook(fn func(Page)) Option {
	return func(o *options) {
		o.onPage = fn
	}
}

// Paginate returns a lazy sequence of the decoded items of every page.
//
// Items dropped by the decoder's unsupported policy are skipped and do not
// count against the budget. An item that fails to decode is yielded as
// (zero, err) and the run continues if the consumer keeps pulling. A fetch
// error is yielded once and ends the sequence. The run stops after an empty
// page, an empty next cursor or as soon as the budget of yielded items is
// spent.
//
// Every range over the returned sequence is a fresh run from the initial
// cursor.
func Paginate[T any](ctx context.Context, fetch FetchFunc, decode decoders.ElementFunc[T], budget Budget, opts ...Option) iter.Seq2[T, error] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	return func(yield func(T, error) bool) {
		var zero T
		remaining := budget.Total()
		pageSize := budget.Size()
		cursor := o.cursor

		for {
			if err := ctx.Err(); err != nil {
				yield(zero, err)
				return
			}

			page, err := fetch(ctx, cursor, pageSize)
			if err != nil {
				yield(zero, err)
				return
			}
			if o.onPage != nil {
				o.onPage(page)
			}
			if len(page.Items) == 0 {
				return
			}

			table := entities.Build(page.Entities)
			for _, raw := range page.Items {
				item, keep, err := decode(raw, table)
				if err != nil {
					if !yield(zero, err) {
						return
					}
					continue
				}
				if !keep {
					continue
				}
				if !yield(item, nil) {
					return
				}
				remaining--
				if remaining == 0 {
					return
				}
			}

			if page.NextCursor == "" {
				return
			}
			cursor = page.NextCursor
		}
	}
}

// Collect drains a sequence into a slice. It stops at the first error and
// returns the items collected before it.
func Collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	var out []T
	for item, err := range seq {
		if err != nil {
			return out, err
		}
		out = append(out, item)
	}
	return out, nil
}
