package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/JonMunkholm/promomod/internal/core"
)

func init() {
	Register("csv", openCSVDir)
}

// csvDir reads <sheet>.csv files from a directory.
type csvDir struct {
	dir string
}

func openCSVDir(_ context.Context, u *url.URL, _ Options) (Reader, error) {
	dir := LocalPath(u)
	info, err := statSource(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("csv source %s is not a directory", dir)
	}
	return &csvDir{dir: dir}, nil
}

func (d *csvDir) Records(_ context.Context, def core.TableDefinition) ([][]string, error) {
	path := filepath.Join(d.dir, def.Sheet+".csv")
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, sheetNotFound(def.Sheet)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return records, nil
}

func (d *csvDir) Close() error { return nil }
