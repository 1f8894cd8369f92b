// Package space orchestrates the space-level fetches: the one-shot locale
// bootstrap and the full entries/assets fetch that bypasses the remote's
// incremental sync endpoint.
package space

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonesrussell/spacesync/internal/domain"
	"github.com/jonesrussell/spacesync/internal/logger"
	"github.com/jonesrussell/spacesync/internal/normalize"
	"github.com/jonesrussell/spacesync/internal/pager"
	"github.com/jonesrussell/spacesync/internal/remote"
	"github.com/jonesrussell/spacesync/internal/resolve"
)

// Page sizes for the two accumulation loops. The remote's sync endpoint
// enforces an undocumented maximum response size that a single page of large
// entries can exceed, with no way to shrink its pages; these caller-chosen
// sizes are the reliability trade for always doing a full fetch.
const (
	EntryPageSize = 50
	AssetPageSize = 100
)

// localeAll requests every locale's field values in one response.
const localeAll = "*"

// LocaleFilter selects which locales the bootstrap returns. nil keeps all.
type LocaleFilter func(domain.Locale) bool

// BootstrapResult is the locale configuration of the space.
type BootstrapResult struct {
	// Locales is the configured locale list after filtering.
	Locales []domain.Locale
	// DefaultLocale is computed from the unfiltered list: a filtered-out
	// default locale still remains the fallback consumers resolve against.
	DefaultLocale string
}

// Fetcher retrieves the whole space through the remote client.
type Fetcher struct {
	client remote.Client
	logger logger.Logger
}

// NewFetcher creates a Fetcher.
func NewFetcher(client remote.Client, log logger.Logger) *Fetcher {
	return &Fetcher{client: client, logger: log}
}

// Bootstrap fetches the space's locales once and determines the default
// locale. The remote guarantees exactly one default.
func (f *Fetcher) Bootstrap(ctx context.Context, filter LocaleFilter) (*BootstrapResult, error) {
	locales, err := f.client.ListLocales(ctx)
	if err != nil {
		return nil, fmt.Errorf("list locales: %w", err)
	}

	defaultLocale := ""
	for _, l := range locales {
		if l.Default {
			defaultLocale = l.Code
			break
		}
	}
	if defaultLocale == "" {
		return nil, errors.New("remote returned no default locale")
	}

	filtered := locales
	if filter != nil {
		filtered = make([]domain.Locale, 0, len(locales))
		for _, l := range locales {
			if filter(l) {
				filtered = append(filtered, l)
			}
		}
	}

	f.logger.Info("Bootstrapped space locales",
		logger.String("default_locale", defaultLocale),
		logger.Int("locale_count", len(locales)),
		logger.Int("filtered_count", len(filtered)),
	)

	return &BootstrapResult{Locales: filtered, DefaultLocale: defaultLocale}, nil
}

// FetchAll retrieves every entry and every asset in the space, normalizes
// their identifiers, and resolves cross-references. The two accumulation
// loops share no state and run concurrently; the resolver starts only after
// both have completed. Identifiers are normalized before resolution because
// resolution installs shared record pointers that a later copy would break.
func (f *Fetcher) FetchAll(ctx context.Context) (*domain.SyncSnapshot, error) {
	start := time.Now()

	var (
		wg         sync.WaitGroup
		entries    []*domain.Entry
		assets     []*domain.Asset
		entriesErr error
		assetsErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		entries, entriesErr = fetchUntilEmpty(ctx, f.client.ListEntries, EntryPageSize)
	}()
	go func() {
		defer wg.Done()
		assets, assetsErr = fetchUntilEmpty(ctx, f.client.ListAssets, AssetPageSize)
	}()
	wg.Wait()

	if entriesErr != nil {
		return nil, fmt.Errorf("fetch entries: %w", entriesErr)
	}
	if assetsErr != nil {
		return nil, fmt.Errorf("fetch assets: %w", assetsErr)
	}

	normalizedEntries := make([]*domain.Entry, len(entries))
	for i, e := range entries {
		normalizedEntries[i] = normalize.Entry(e)
	}
	normalizedAssets := make([]*domain.Asset, len(assets))
	for i, a := range assets {
		normalizedAssets[i] = normalize.Asset(a)
	}

	resolve.Resolve(normalizedEntries, normalizedAssets)

	f.logger.Info("Fetched full space",
		logger.Int("entry_count", len(normalizedEntries)),
		logger.Int("asset_count", len(normalizedAssets)),
		logger.Duration("duration", time.Since(start)),
	)

	return &domain.SyncSnapshot{
		Entries:        normalizedEntries,
		Assets:         normalizedAssets,
		DeletedEntries: []*domain.DeletedEntry{},
		DeletedAssets:  []*domain.DeletedAsset{},
	}, nil
}

// fetchUntilEmpty pages through a collection with link resolution disabled
// and all locales requested, stopping on the first empty page. The remote's
// per-request size cap makes its reported total unreliable for these calls,
// so termination cannot use the total comparison the generic pager applies.
func fetchUntilEmpty[T any](ctx context.Context, list pager.ListFunc[T], pageSize int) ([]T, error) {
	var all []T
	for skip := 0; ; skip += pageSize {
		page, err := list(ctx, remote.Query{
			Skip:    skip,
			Limit:   pageSize,
			Order:   pager.OrderCreatedAt,
			Locale:  localeAll,
			Include: remote.IncludeDepth(0),
		})
		if err != nil {
			return nil, err
		}
		if len(page.Items) == 0 {
			return all, nil
		}
		all = append(all, page.Items...)
	}
}
