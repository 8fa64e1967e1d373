package source

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/JonMunkholm/promomod/internal/core"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// undefinedTable is the PostgreSQL SQLSTATE for a missing relation.
const undefinedTable = "42P01"

func init() {
	Register("postgres", openPostgres)
	Register("postgresql", openPostgres)
}

// pgSource reads each lookup table with SELECT * from a table named after
// the table key. Columns use the snake_case spelling.
type pgSource struct {
	pool *pgxpool.Pool
}

func openPostgres(ctx context.Context, u *url.URL, opts Options) (Reader, error) {
	poolConfig, err := pgxpool.ParseConfig(u.String())
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	if opts.Database.MaxConns > 0 {
		poolConfig.MaxConns = int32(opts.Database.MaxConns)
	}
	poolConfig.MinConns = int32(opts.Database.MinConns)
	if opts.Database.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = opts.Database.MaxConnLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &pgSource{pool: pool}, nil
}

func (s *pgSource) Records(ctx context.Context, def core.TableDefinition) ([][]string, error) {
	query := "SELECT * FROM " + pgx.Identifier{def.Key}.Sanitize()

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, pgTableError(def, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	header := make([]string, len(fields))
	for i, fd := range fields {
		header[i] = fd.Name
	}

	records := [][]string{header}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", def.Key, err)
		}
		rec := make([]string, len(values))
		for i, v := range values {
			rec[i] = formatValue(v)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, pgTableError(def, err)
	}
	return records, nil
}

func pgTableError(def core.TableDefinition, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == undefinedTable {
		return sheetNotFound(def.Key)
	}
	return fmt.Errorf("query %s: %w", def.Key, err)
}

func (s *pgSource) Close() error {
	s.pool.Close()
	return nil
}

// formatValue renders a database value as a cell string. NULL is empty.
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	default:
		return fmt.Sprint(x)
	}
}
