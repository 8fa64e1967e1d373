package source

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	"github.com/JonMunkholm/promomod/internal/core"
	"github.com/jackc/pgx/v5"
	_ "modernc.org/sqlite"
)

func init() {
	Register("sqlite", openSQLite)
	Register("sqlite3", openSQLite)
}

// sqliteSource reads the lookup tables from a SQLite file.
type sqliteSource struct {
	db *sql.DB
}

func openSQLite(ctx context.Context, u *url.URL, _ Options) (Reader, error) {
	path := LocalPath(u)
	if _, err := statSource(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	return &sqliteSource{db: db}, nil
}

func (s *sqliteSource) Records(ctx context.Context, def core.TableDefinition) ([][]string, error) {
	// SQLite accepts the same double-quoted identifiers as PostgreSQL.
	query := "SELECT * FROM " + pgx.Identifier{def.Key}.Sanitize()

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		if strings.Contains(err.Error(), "no such table") {
			return nil, sheetNotFound(def.Key)
		}
		return nil, fmt.Errorf("query %s: %w", def.Key, err)
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns %s: %w", def.Key, err)
	}

	records := [][]string{header}
	cells := make([]sql.NullString, len(header))
	dest := make([]any, len(header))
	for i := range cells {
		dest[i] = &cells[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", def.Key, err)
		}
		rec := make([]string, len(cells))
		for i, c := range cells {
			if c.Valid {
				rec[i] = c.String
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", def.Key, err)
	}
	return records, nil
}

func (s *sqliteSource) Close() error {
	return s.db.Close()
}
