package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/mikey/markerscan/internal/core"
	"go.uber.org/zap"
)

// mysqlNoSuchTable is ER_NO_SUCH_TABLE
const mysqlNoSuchTable = 1146

// MySQLSource reads messages from a MySQL database
type MySQLSource struct {
	db     *sql.DB
	table  string
	logger *zap.Logger
}

// NewMySQLSource connects to dsn. An unreachable server is reported as
// core.ErrSourceUnavailable.
func NewMySQLSource(ctx context.Context, dsn, table string, logger *zap.Logger) (*MySQLSource, error) {
	if err := validateTable(table); err != nil {
		return nil, err
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL database: %w", err)
	}

	// Test the connection
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: failed to connect to MySQL database: %v", core.ErrSourceUnavailable, err)
	}

	return &MySQLSource{
		db:     db,
		table:  table,
		logger: logger,
	}, nil
}

// Fetch returns up to q.Limit messages, newest first
func (s *MySQLSource) Fetch(ctx context.Context, q core.Query) ([]core.Message, error) {
	query, args := buildQuery(s.table, "CAST(timestamp AS CHAR)", q, questionMark)
	s.logger.Debug("Querying MySQL messages", zap.String("query", query), zap.Int("args", len(args)))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		if noSuchTable(err) {
			return nil, fmt.Errorf("%w: %v", core.ErrSourceUnavailable, err)
		}
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	return scanMessages(rows)
}

// noSuchTable reports whether err means the message table does not exist
func noSuchTable(err error) bool {
	var merr *mysql.MySQLError
	return errors.As(err, &merr) && merr.Number == mysqlNoSuchTable
}

// Close closes the database connection
func (s *MySQLSource) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close MySQL database: %w", err)
	}
	return nil
}
