// Package common provides shared utilities for command implementations.
package common

import (
	"fmt"

	"github.com/jonesrussell/spacesync/internal/config"
	"github.com/jonesrussell/spacesync/internal/logger"
	"github.com/jonesrussell/spacesync/internal/remote"
)

// CommandDeps holds common dependencies for all commands.
// Use this instead of context.Value for type-safe dependency injection.
type CommandDeps struct {
	Logger logger.Logger
	Config *config.Config
}

// Validate ensures all required dependencies are present.
func (d CommandDeps) Validate() error {
	if d.Logger == nil {
		return ErrLoggerRequired
	}
	if d.Config == nil {
		return ErrConfigRequired
	}
	return nil
}

// NewCommandDeps creates CommandDeps by loading config and creating logger.
// This consolidates the common initialization code from Execute().
func NewCommandDeps() (CommandDeps, error) {
	cfg, err := config.Load()
	if err != nil {
		return CommandDeps{}, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.NewLogger(cfg.Debug)
	if err != nil {
		return CommandDeps{}, fmt.Errorf("create logger: %w", err)
	}

	deps := CommandDeps{
		Logger: log,
		Config: cfg,
	}

	if validateErr := deps.Validate(); validateErr != nil {
		return CommandDeps{}, fmt.Errorf("validate deps: %w", validateErr)
	}

	return deps, nil
}

// NewRemoteClient builds the remote client for the configured space.
func (d CommandDeps) NewRemoteClient() (remote.Client, error) {
	client, err := remote.NewHTTPClient(remote.Options{
		SpaceID:     d.Config.Space.ID,
		AccessToken: d.Config.Space.AccessToken,
		Host:        d.Config.Space.Host,
		Environment: d.Config.Space.Environment,
		Timeout:     d.Config.Space.RequestTimeout,
	}, d.Logger)
	if err != nil {
		return nil, fmt.Errorf("create remote client: %w", err)
	}
	return client, nil
}
