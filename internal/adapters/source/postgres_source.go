package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mikey/markerscan/internal/core"
	"go.uber.org/zap"
)

// pgUndefinedTable is SQLSTATE undefined_table
const pgUndefinedTable = "42P01"

// PostgresSource reads messages from a PostgreSQL database
type PostgresSource struct {
	pool   *pgxpool.Pool
	table  string
	logger *zap.Logger
}

// NewPostgresSource connects to dsn. An unreachable server is reported
// as core.ErrSourceUnavailable.
func NewPostgresSource(ctx context.Context, dsn, table string, logger *zap.Logger) (*PostgresSource, error) {
	if err := validateTable(table); err != nil {
		return nil, err
	}

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres DSN: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create postgres pool: %v", core.ErrSourceUnavailable, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: failed to connect to postgres: %v", core.ErrSourceUnavailable, err)
	}

	return &PostgresSource{
		pool:   pool,
		table:  table,
		logger: logger,
	}, nil
}

// Fetch returns up to q.Limit messages, newest first
func (s *PostgresSource) Fetch(ctx context.Context, q core.Query) ([]core.Message, error) {
	query, args := buildQuery(s.table, "timestamp::text", q, dollar)
	s.logger.Debug("Querying postgres messages", zap.String("query", query), zap.Int("args", len(args)))

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		if undefinedTable(err) {
			return nil, fmt.Errorf("%w: %v", core.ErrSourceUnavailable, err)
		}
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}

	msgs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (core.Message, error) {
		var (
			content           *string
			timestamp, author *string
		)
		if err := row.Scan(&content, &timestamp, &author); err != nil {
			return core.Message{}, err
		}
		msg := core.Message{Timestamp: timestamp, Author: author}
		if content != nil {
			msg.Content = *content
		}
		return msg, nil
	})
	if err != nil {
		if undefinedTable(err) {
			return nil, fmt.Errorf("%w: %v", core.ErrSourceUnavailable, err)
		}
		return nil, fmt.Errorf("failed to read message rows: %w", err)
	}

	// content <> '' is enforced by the query; this guards odd collations
	kept := msgs[:0]
	for _, m := range msgs {
		if m.Content != "" {
			kept = append(kept, m)
		}
	}
	return kept, nil
}

// undefinedTable reports whether err means the message table does not exist
func undefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUndefinedTable
}

// Close closes the connection pool
func (s *PostgresSource) Close() error {
	s.pool.Close()
	return nil
}
