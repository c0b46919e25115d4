package loader

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	_ "github.com/microsoft/go-mssqldb" // register the sqlserver driver
	"go.uber.org/zap"
)

type sqlServerLoader struct {
	db     *sql.DB
	logger *zap.Logger
}

func newSQLServerLoader(dsn string, logger *zap.Logger) (*sqlServerLoader, error) {
	db, err := sql.Open("sqlserver", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlserver connection: %w", err)
	}
	return &sqlServerLoader{db: db, logger: logger}, nil
}

func (l *sqlServerLoader) Apply(ctx context.Context, script io.Reader) (Result, error) {
	if err := l.db.PingContext(ctx); err != nil {
		return Result{}, fmt.Errorf("ping sqlserver: %w", err)
	}

	statements, err := SplitStatements(script)
	if err != nil {
		return Result{}, err
	}

	res := applyStatements(ctx, l.logger, statements, func(ctx context.Context, stmt string) error {
		_, err := l.db.ExecContext(ctx, stmt)
		return err
	})
	return res, nil
}

func (l *sqlServerLoader) Close() {
	_ = l.db.Close()
}
