package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds the process logger for the given environment.
// Local and development environments get the human-readable console
// encoder; everything else gets production JSON output.
func New(env string) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	switch env {
	case "local", "development":
		logger, err = zap.NewDevelopment()
	default:
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}
