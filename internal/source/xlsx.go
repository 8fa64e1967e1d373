package source

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/JonMunkholm/promomod/internal/core"
	"github.com/xuri/excelize/v2"
)

func init() {
	Register("file", openXLSXFile)
}

// workbook reads sheets from an opened excelize file. Sheet names are
// matched case-insensitively.
type workbook struct {
	f      *excelize.File
	sheets map[string]string
}

func newWorkbook(f *excelize.File) *workbook {
	wb := &workbook{f: f, sheets: make(map[string]string)}
	for _, name := range f.GetSheetList() {
		wb.sheets[strings.ToLower(strings.TrimSpace(name))] = name
	}
	return wb
}

func openXLSXFile(_ context.Context, u *url.URL, _ Options) (Reader, error) {
	path := LocalPath(u)
	info, err := statSource(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory, use csv://", ErrUnsupportedScheme, path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	return newWorkbook(f), nil
}

// openXLSXReader parses a workbook from a stream, as fetched from S3.
func openXLSXReader(r io.Reader) (Reader, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	return newWorkbook(f), nil
}

func (wb *workbook) Records(_ context.Context, def core.TableDefinition) ([][]string, error) {
	name, ok := wb.sheets[strings.ToLower(def.Sheet)]
	if !ok {
		return nil, sheetNotFound(def.Sheet)
	}
	rows, err := wb.f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", name, err)
	}
	return rows, nil
}

func (wb *workbook) Close() error {
	return wb.f.Close()
}
