package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-sqlite3"
	"github.com/mikey/markerscan/internal/core"
	"go.uber.org/zap"
)

// SQLiteSource reads messages from a SQLite database
type SQLiteSource struct {
	db     *sql.DB
	table  string
	logger *zap.Logger
}

// NewSQLiteSource opens the database at dbPath read-only. A missing file
// is reported as core.ErrSourceUnavailable.
func NewSQLiteSource(dbPath, table string, logger *zap.Logger) (*SQLiteSource, error) {
	if err := validateTable(table); err != nil {
		return nil, err
	}
	if _, err := os.Stat(dbPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: SQLite database not found: %s", core.ErrSourceUnavailable, dbPath)
		}
		return nil, fmt.Errorf("failed to stat SQLite database: %w", err)
	}

	dsn, err := sqliteDSN(dbPath)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", core.ErrSourceUnavailable, err)
	}

	return &SQLiteSource{
		db:     db,
		table:  table,
		logger: logger,
	}, nil
}

// Fetch returns up to q.Limit messages, newest first
func (s *SQLiteSource) Fetch(ctx context.Context, q core.Query) ([]core.Message, error) {
	query, args := buildQuery(s.table, "timestamp", q, questionMark)
	s.logger.Debug("Querying SQLite messages", zap.String("query", query), zap.Int("args", len(args)))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		if missingTable(err) {
			return nil, fmt.Errorf("%w: %v", core.ErrSourceUnavailable, err)
		}
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	return scanMessages(rows)
}

// sqliteDSN renders a read-only URI for path, escaping characters that
// would otherwise be read as URI query or fragment delimiters
func sqliteDSN(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve SQLite path: %w", err)
	}
	u := &url.URL{Scheme: "file", Path: filepath.ToSlash(abs), RawQuery: "mode=ro"}
	return u.String(), nil
}

// missingTable reports whether err means the message table does not exist
func missingTable(err error) bool {
	var serr sqlite3.Error
	return errors.As(err, &serr) && serr.Code == sqlite3.ErrError &&
		strings.Contains(serr.Error(), "no such table")
}

// Close closes the database connection
func (s *SQLiteSource) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close SQLite database: %w", err)
	}
	return nil
}
