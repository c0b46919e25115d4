// Package loader applies a generated SQL script to a live destination
// database. It is a convenience collaborator around the core pipeline:
// the pipeline itself never requires a database connection.
package loader

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/courseatlas/atlas-engine/pkg/apperrors"
	"github.com/courseatlas/atlas-engine/pkg/logging"
)

// Result summarizes a script application.
type Result struct {
	Executed int
	Failed   int
}

// Loader executes the statements of a SQL script against a destination.
type Loader interface {
	// Apply runs every statement in the script. Statement-level
	// failures are logged and skipped; only connection-level failures
	// return an error.
	Apply(ctx context.Context, script io.Reader) (Result, error)
	Close()
}

// New returns a loader for the named dialect. The DSN is never logged
// unsanitized.
func New(ctx context.Context, dialect, dsn string, logger *zap.Logger) (Loader, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(
		zap.String("dialect", dialect),
		zap.String("dsn", logging.SanitizeConnectionString(dsn)))

	switch dialect {
	case "postgres":
		return newPostgresLoader(ctx, dsn, logger)
	case "sqlserver":
		return newSQLServerLoader(dsn, logger)
	default:
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownDialect, dialect)
	}
}

// applyStatements runs every executable statement through exec,
// counting successes and skip-logging failures. Errors pass through the
// sanitizer before logging: driver errors can echo DSN fragments.
func applyStatements(ctx context.Context, logger *zap.Logger, statements []string, exec func(context.Context, string) error) Result {
	var res Result
	for _, stmt := range statements {
		if !executable(stmt) {
			continue
		}
		if err := exec(ctx, stmt); err != nil {
			res.Failed++
			logger.Warn("statement failed",
				zap.String("statement", truncateStatement(stmt)),
				zap.String("error", logging.SanitizeError(err)))
			continue
		}
		res.Executed++
	}

	logger.Info("script applied",
		zap.Int("executed", res.Executed),
		zap.Int("failed", res.Failed))
	return res
}

// SplitStatements splits a script into executable statements. A
// statement ends at the first line whose trimmed form ends with a
// semicolon; comment lines accumulate into the following statement,
// which SQL tolerates. A trailing fragment without a terminator is kept
// so its failure surfaces instead of being silently dropped. Line-based
// splitting cannot see string literals: a multi-line literal whose
// embedded line ends with a semicolon splits mid-statement.
func SplitStatements(script io.Reader) ([]string, error) {
	var (
		statements []string
		current    strings.Builder
	)

	scanner := bufio.NewScanner(script)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		current.WriteString(line)
		current.WriteString("\n")
		if strings.HasSuffix(strings.TrimSpace(line), ";") {
			statements = append(statements, current.String())
			current.Reset()
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}

	if strings.TrimSpace(current.String()) != "" {
		statements = append(statements, current.String())
	}
	return statements, nil
}

// executable reports whether a statement contains anything beyond
// comments and whitespace.
func executable(statement string) bool {
	for _, line := range strings.Split(statement, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		return true
	}
	return false
}

func truncateStatement(s string) string {
	const max = 120
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
