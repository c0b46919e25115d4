package loader

import (
	"context"
	"fmt"
	"io"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type postgresLoader struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func newPostgresLoader(ctx context.Context, dsn string, logger *zap.Logger) (*postgresLoader, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &postgresLoader{pool: pool, logger: logger}, nil
}

func (l *postgresLoader) Apply(ctx context.Context, script io.Reader) (Result, error) {
	statements, err := SplitStatements(script)
	if err != nil {
		return Result{}, err
	}

	res := applyStatements(ctx, l.logger, statements, func(ctx context.Context, stmt string) error {
		_, err := l.pool.Exec(ctx, stmt)
		return err
	})
	return res, nil
}

func (l *postgresLoader) Close() {
	l.pool.Close()
}
