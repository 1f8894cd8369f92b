package pipeline_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/spacesync/internal/config"
	"github.com/jonesrussell/spacesync/internal/domain"
	"github.com/jonesrussell/spacesync/internal/logger"
	"github.com/jonesrussell/spacesync/internal/pipeline"
	"github.com/jonesrussell/spacesync/internal/remote"
)

// fakeClient serves canned collections through the remote client contract.
type fakeClient struct {
	mu sync.Mutex

	locales    []domain.Locale
	localesErr error

	entries []*domain.Entry
	assets  []*domain.Asset

	contentTypes    []*domain.ContentType
	contentTypesErr error

	entryCalls int
	assetCalls int
	typeCalls  int
}

func (f *fakeClient) ListLocales(_ context.Context) ([]domain.Locale, error) {
	if f.localesErr != nil {
		return nil, f.localesErr
	}
	return f.locales, nil
}

func pageOf[T any](items []T, q remote.Query) *remote.Page[T] {
	end := min(q.Skip+q.Limit, len(items))
	var page []T
	if q.Skip < len(items) {
		page = items[q.Skip:end]
	}
	return &remote.Page[T]{Total: len(items), Skip: q.Skip, Limit: q.Limit, Items: page}
}

func (f *fakeClient) ListEntries(_ context.Context, q remote.Query) (*remote.Page[*domain.Entry], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entryCalls++
	return pageOf(f.entries, q), nil
}

func (f *fakeClient) ListAssets(_ context.Context, q remote.Query) (*remote.Page[*domain.Asset], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.assetCalls++
	return pageOf(f.assets, q), nil
}

func (f *fakeClient) ListContentTypes(_ context.Context, q remote.Query) (*remote.Page[*domain.ContentType], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.typeCalls++
	if f.contentTypesErr != nil {
		return nil, f.contentTypesErr
	}
	return pageOf(f.contentTypes, q), nil
}

// spyReporter records every call for assertions.
type spyReporter struct {
	progress    []string
	diagnostics []string
	fatalErrs   []error
}

func (s *spyReporter) Progress(msg string, _ ...logger.Field) {
	s.progress = append(s.progress, msg)
}

func (s *spyReporter) FatalError(diagnostic string, err error) {
	s.diagnostics = append(s.diagnostics, diagnostic)
	s.fatalErrs = append(s.fatalErrs, err)
}

func testConfig() *config.Config {
	return &config.Config{
		Space: config.SpaceConfig{
			ID:                  "space123",
			AccessToken:         "token-abcdef",
			Host:                config.DefaultHost,
			Environment:         "master",
			ContentTypePageSize: config.DefaultContentTypePageSize,
		},
	}
}

func linkValue(kind, id string) any {
	return domain.Link{Kind: kind, ID: id}.PlaceholderValue()
}

func fullSpaceClient() *fakeClient {
	return &fakeClient{
		locales: []domain.Locale{
			{Code: "en-US", Name: "English", Default: true},
			{Code: "fr", Name: "French"},
		},
		entries: []*domain.Entry{
			{
				Sys: domain.Sys{ID: "with-asset", Type: domain.KindEntry},
				Fields: map[string]map[string]any{
					"image": {"en-US": linkValue(domain.KindAsset, "asset-1")},
				},
			},
			{
				Sys: domain.Sys{ID: "broken-link", Type: domain.KindEntry},
				Fields: map[string]map[string]any{
					"image": {"en-US": linkValue(domain.KindAsset, "missing")},
				},
			},
			{
				Sys: domain.Sys{ID: "no-links", Type: domain.KindEntry},
				Fields: map[string]map[string]any{
					"title": {"en-US": "plain", "fr": "simple"},
				},
			},
		},
		assets: []*domain.Asset{
			{Sys: domain.Sys{ID: "asset-1", Type: domain.KindAsset}},
		},
		contentTypes: []*domain.ContentType{
			{Sys: domain.Sys{ID: "post", Type: domain.KindContentType}, Name: "Post"},
		},
	}
}

func TestRunEndToEnd(t *testing.T) {
	client := fullSpaceClient()
	reporter := &spyReporter{}
	p := pipeline.New(client, testConfig(), reporter, logger.NewNopLogger())

	result, err := p.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, pipeline.StateDone, p.State())
	assert.Equal(t, "en-US", result.DefaultLocale)
	assert.Len(t, result.Locales, 2)
	assert.Len(t, result.ContentTypeItems, 1)

	snapshot := result.CurrentSyncData
	require.Len(t, snapshot.Entries, 3)
	require.Len(t, snapshot.Assets, 1)
	assert.Empty(t, snapshot.DeletedEntries)
	assert.Empty(t, snapshot.DeletedAssets)

	byRemoteID := make(map[string]*domain.Entry, len(snapshot.Entries))
	for _, e := range snapshot.Entries {
		byRemoteID[e.Sys.RemoteID] = e
	}

	// Entry-to-asset link is resolved to the fetched asset record.
	resolved, ok := byRemoteID["with-asset"].Fields["image"]["en-US"].(*domain.Asset)
	require.True(t, ok)
	assert.Same(t, snapshot.Assets[0], resolved)

	// The broken link stays an unresolved placeholder.
	link, ok := domain.AsLink(byRemoteID["broken-link"].Fields["image"]["en-US"])
	require.True(t, ok)
	assert.Equal(t, "missing", link.ID)

	// Content types were normalized.
	assert.Equal(t, "post", result.ContentTypeItems[0].Sys.RemoteID)
	assert.NotEqual(t, "post", result.ContentTypeItems[0].Sys.ID)

	assert.Empty(t, reporter.diagnostics)
}

func TestRunFatalOnBootstrapAuthorizationError(t *testing.T) {
	client := fullSpaceClient()
	client.localesErr = remote.ClassifyStatus(401, "https://example.test/locales")
	reporter := &spyReporter{}
	p := pipeline.New(client, testConfig(), reporter, logger.NewNopLogger())

	result, err := p.Run(context.Background())
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, pipeline.StateFailed, p.State())
	assert.True(t, remote.IsAuthorization(err))

	// The diagnostic names exactly the settings at fault.
	require.Len(t, reporter.diagnostics, 1)
	assert.Contains(t, reporter.diagnostics[0], "access_token")
	assert.Contains(t, reporter.diagnostics[0], "environment")

	// The full-space fetch never started.
	assert.Zero(t, client.entryCalls)
	assert.Zero(t, client.assetCalls)
}

func TestRunDegradesOnContentTypeFetchFailure(t *testing.T) {
	client := fullSpaceClient()
	client.contentTypesErr = remote.ClassifyStatus(500, "https://example.test/content_types")
	reporter := &spyReporter{}
	p := pipeline.New(client, testConfig(), reporter, logger.NewNopLogger())

	result, err := p.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, pipeline.StateDone, p.State())
	assert.Empty(t, result.ContentTypeItems)
	assert.Len(t, result.CurrentSyncData.Entries, 3)
	assert.Empty(t, reporter.diagnostics, "degraded failure must not abort the run")
}

func TestPolicyFor(t *testing.T) {
	assert.Equal(t, pipeline.PolicyFatal, pipeline.PolicyFor(pipeline.StateBootstrap))
	assert.Equal(t, pipeline.PolicyFatal, pipeline.PolicyFor(pipeline.StateFetchSpace))
	assert.Equal(t, pipeline.PolicyDegraded, pipeline.PolicyFor(pipeline.StateFetchContentTypes))
}
