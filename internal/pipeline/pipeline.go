// Package pipeline sequences one full sync run: locale bootstrap, full-space
// fetch, content-type fetch, normalization, and result assembly. It owns
// error classification handoff and the fatal-abort decision; it never
// retries — the burden of retry sits with the invoker, which re-runs the
// whole pipeline.
package pipeline

import (
	"context"

	"github.com/jonesrussell/spacesync/internal/config"
	"github.com/jonesrussell/spacesync/internal/domain"
	"github.com/jonesrussell/spacesync/internal/logger"
	"github.com/jonesrussell/spacesync/internal/normalize"
	"github.com/jonesrussell/spacesync/internal/pager"
	"github.com/jonesrussell/spacesync/internal/remote"
	"github.com/jonesrussell/spacesync/internal/space"
)

// State names one position of the run state machine.
type State string

const (
	StateBootstrap         State = "BOOTSTRAP"
	StateFetchSpace        State = "FETCH_SPACE"
	StateFetchContentTypes State = "FETCH_CONTENT_TYPES"
	StateNormalize         State = "NORMALIZE"
	StateAssemble          State = "ASSEMBLE"
	StateDone              State = "DONE"
	StateFailed            State = "FAILED"
)

// FailurePolicy decides what a remote failure in a step does to the run.
type FailurePolicy int

const (
	// PolicyFatal aborts the whole run.
	PolicyFatal FailurePolicy = iota
	// PolicyDegraded logs the failure and continues with an empty result for
	// the step.
	PolicyDegraded
)

// PolicyFor returns the failure policy of a state. The content-type fetch is
// the only degraded step: a run without schema descriptors is still usable,
// while a run without locales or records is not. NORMALIZE and ASSEMBLE are
// pure transforms and cannot fail.
func PolicyFor(s State) FailurePolicy {
	if s == StateFetchContentTypes {
		return PolicyDegraded
	}
	return PolicyFatal
}

// Pipeline runs the fetch pipeline for one configured space.
type Pipeline struct {
	fetcher      *space.Fetcher
	client       remote.Client
	reporter     Reporter
	logger       logger.Logger
	settings     map[string]string
	localeFilter space.LocaleFilter
	typePageSize int
	state        State
}

// New creates a Pipeline over the given remote client.
func New(client remote.Client, cfg *config.Config, reporter Reporter, log logger.Logger) *Pipeline {
	return &Pipeline{
		fetcher:      space.NewFetcher(client, log),
		client:       client,
		reporter:     reporter,
		logger:       log,
		settings:     cfg.Raw(),
		localeFilter: cfg.Space.LocaleFilterFunc(),
		typePageSize: cfg.Space.ContentTypePageSize,
		state:        StateBootstrap,
	}
}

// State returns the pipeline's current state.
func (p *Pipeline) State() State {
	return p.state
}

// Run executes the pipeline once. On a fatal failure the reporter receives
// the diagnostic, no Result is produced, and the classified error is
// returned.
func (p *Pipeline) Run(ctx context.Context) (*domain.Result, error) {
	p.state = StateBootstrap
	p.reporter.Progress("Bootstrapping space locales")
	boot, err := p.fetcher.Bootstrap(ctx, p.localeFilter)
	if err != nil {
		return nil, p.fail(err)
	}

	p.state = StateFetchSpace
	p.reporter.Progress("Fetching all entries and assets")
	snapshot, err := p.fetcher.FetchAll(ctx)
	if err != nil {
		return nil, p.fail(err)
	}

	p.state = StateFetchContentTypes
	p.reporter.Progress("Fetching content types")
	contentTypes, err := pager.CollectAll(ctx, p.client.ListContentTypes, p.typePageSize)
	if err != nil {
		if PolicyFor(p.state) == PolicyFatal {
			return nil, p.fail(err)
		}
		p.logger.Error("Content type fetch failed; continuing with an empty content type set",
			logger.Error(err),
		)
		contentTypes = nil
	}

	// Entries and assets were normalized during the space fetch, before link
	// resolution installed shared record pointers.
	p.state = StateNormalize
	normalizedTypes := make([]*domain.ContentType, 0, len(contentTypes))
	for _, ct := range contentTypes {
		normalizedTypes = append(normalizedTypes, normalize.ContentType(ct))
	}

	p.state = StateAssemble
	result := &domain.Result{
		CurrentSyncData:  snapshot,
		ContentTypeItems: normalizedTypes,
		DefaultLocale:    boot.DefaultLocale,
		Locales:          boot.Locales,
	}

	p.state = StateDone
	p.reporter.Progress("Sync complete")
	return result, nil
}

// fail moves the pipeline to FAILED, emits the diagnostic through the
// reporter, and hands the classified error back untouched.
func (p *Pipeline) fail(err error) error {
	p.state = StateFailed
	p.reporter.FatalError(Diagnose(err, p.settings), err)
	return err
}
