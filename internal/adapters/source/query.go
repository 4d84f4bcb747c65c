// Package source implements the message stores markerscan reads from.
package source

import (
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/mikey/markerscan/internal/authors"
	"github.com/mikey/markerscan/internal/core"
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// placeholderFunc renders the n-th (1-based) bind parameter
type placeholderFunc func(n int) string

func questionMark(int) string { return "?" }

func dollar(n int) string { return fmt.Sprintf("$%d", n) }

// validateTable rejects table names that are not plain identifiers
func validateTable(table string) error {
	if !identifier.MatchString(table) {
		return fmt.Errorf("invalid message table name: %q", table)
	}
	return nil
}

// buildQuery renders the message fetch for q. timestampExpr lets a
// dialect cast its timestamp column to text.
func buildQuery(table, timestampExpr string, q core.Query, ph placeholderFunc) (string, []any) {
	var (
		b    strings.Builder
		args []any
	)
	next := func(v any) string {
		args = append(args, v)
		return ph(len(args))
	}

	fmt.Fprintf(&b, "SELECT content, %s, author FROM %s WHERE content IS NOT NULL AND content <> ''", timestampExpr, table)
	if q.Since != "" {
		fmt.Fprintf(&b, " AND timestamp >= %s", next(q.Since))
	}
	if names := authors.Normalize(q.Authors); len(names) > 0 {
		marks := make([]string, len(names))
		for i, n := range names {
			marks[i] = next(n)
		}
		fmt.Fprintf(&b, " AND author IN (%s)", strings.Join(marks, ","))
	}
	b.WriteString(" ORDER BY timestamp DESC")
	if q.Limit > 0 {
		fmt.Fprintf(&b, " LIMIT %s", next(q.Limit))
	}
	return b.String(), args
}

// scanMessages drains rows into messages, skipping empty content
func scanMessages(rows *sql.Rows) ([]core.Message, error) {
	defer rows.Close()

	var msgs []core.Message
	for rows.Next() {
		var content, timestamp, author sql.NullString
		if err := rows.Scan(&content, &timestamp, &author); err != nil {
			return nil, fmt.Errorf("failed to scan message row: %w", err)
		}
		if !content.Valid || content.String == "" {
			continue
		}
		msgs = append(msgs, core.Message{
			Content:   content.String,
			Timestamp: nullable(timestamp),
			Author:    nullable(author),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read message rows: %w", err)
	}
	return msgs, nil
}

func nullable(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
