// Package remote implements the client for the content space's delivery API:
// query-based list operations over locales, entries, assets, and content
// types, plus the error taxonomy used by the pipeline to decide fatality.
package remote

import (
	"context"
	"net/url"
	"strconv"

	"github.com/jonesrussell/spacesync/internal/domain"
)

// Query carries the filter parameters supported by every list operation.
type Query struct {
	Skip  int
	Limit int
	// Order is a sort key, e.g. "sys.createdAt". A stable sort key is
	// required so concurrent remote inserts cannot shift items across page
	// boundaries mid-fetch.
	Order string
	// Locale selects the locale of returned field values; "*" requests all
	// locales at once.
	Locale string
	// Include is the server-side link resolution depth. nil leaves the
	// parameter unset; a pointer to 0 disables resolution explicitly.
	Include *int
}

// IncludeDepth returns a pointer suitable for Query.Include.
func IncludeDepth(n int) *int {
	return &n
}

// Values encodes the query as URL parameters.
func (q Query) Values() url.Values {
	v := url.Values{}
	v.Set("skip", strconv.Itoa(q.Skip))
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Order != "" {
		v.Set("order", q.Order)
	}
	if q.Locale != "" {
		v.Set("locale", q.Locale)
	}
	if q.Include != nil {
		v.Set("include", strconv.Itoa(*q.Include))
	}
	return v
}

// Page is one page of a list response. Total is the remote's count for the
// whole collection; it is approximate above the remote's response-size cap,
// so callers choose per-collection termination rules.
type Page[T any] struct {
	Total int
	Skip  int
	Limit int
	Items []T
}

// Client exposes the remote list operations consumed by the pipeline.
type Client interface {
	ListLocales(ctx context.Context) ([]domain.Locale, error)
	ListEntries(ctx context.Context, q Query) (*Page[*domain.Entry], error)
	ListAssets(ctx context.Context, q Query) (*Page[*domain.Asset], error)
	ListContentTypes(ctx context.Context, q Query) (*Page[*domain.ContentType], error)
}
