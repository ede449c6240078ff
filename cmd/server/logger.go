package main

import (
	"github.com/septivank/hydro-telemetry-service/internal/config"
	"github.com/septivank/hydro-telemetry-service/internal/logging"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.NewLogger(cfg.ServiceName, cfg.IsDevelopment())
}

// reportConfigIssues logs every override that was replaced by its default
func reportConfigIssues(cfg *config.Config, logger *zap.Logger) {
	for _, issue := range multierr.Errors(cfg.Issues) {
		logger.Warn("configuration issue", zap.Error(issue))
	}
}
