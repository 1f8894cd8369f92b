package pipeline

import "github.com/jonesrussell/spacesync/internal/logger"

// Reporter receives run progress and, on a fatal failure, the multi-line
// diagnostic. A FatalError call always means the run is over.
type Reporter interface {
	Progress(msg string, fields ...logger.Field)
	FatalError(diagnostic string, err error)
}

type logReporter struct {
	logger logger.Logger
}

// NewLogReporter returns a Reporter that writes through the given logger.
func NewLogReporter(log logger.Logger) Reporter {
	return &logReporter{logger: log}
}

func (r *logReporter) Progress(msg string, fields ...logger.Field) {
	r.logger.Info(msg, fields...)
}

func (r *logReporter) FatalError(diagnostic string, err error) {
	r.logger.Error(diagnostic, logger.Error(err))
}
