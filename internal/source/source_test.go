package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JonMunkholm/promomod/internal/core"
	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"
)

// fixtureSheets is a minimal consistent data set keyed by sheet name.
var fixtureSheets = map[string][][]string{
	"promocion": {
		{"Plataforma", "Pais/Area", "Area/programa", "Promocion", "Expats/No"},
		{"Meta", "pais", "Senior", "REF", ""},
		{"Google", "pais", "España", "expat10", "Expats"},
	},
	"modalidad": {
		{"Plataforma", "Area/programa", "particularidad", "Columna1", "Modalidad", "Zona Meta"},
		{"Meta", "Engineering", "Awareness", "Senior", "PROG", "LATAM"},
		{"Google", "Marketing", "Si", "", "remarketing", ""},
	},
	"areas_paises": {
		{"Plataforma", "Area/programa", "particularidad"},
		{"LinkedIn", "pais", "España"},
	},
}

func writeCSVDir(t *testing.T, sheets map[string][][]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, rows := range sheets {
		var b strings.Builder
		for _, r := range rows {
			b.WriteString(strings.Join(r, ","))
			b.WriteByte('\n')
		}
		if err := os.WriteFile(filepath.Join(dir, name+".csv"), []byte(b.String()), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func writeWorkbook(t *testing.T, sheets map[string][][]string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	first := true
	for name, rows := range sheets {
		if first {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				t.Fatal(err)
			}
			first = false
		} else if _, err := f.NewSheet(name); err != nil {
			t.Fatal(err)
		}
		for i, r := range rows {
			row := make([]any, len(r))
			for j, v := range r {
				row[j] = v
			}
			if err := f.SetSheetRow(name, fmt.Sprintf("A%d", i+1), &row); err != nil {
				t.Fatal(err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "equivalencias.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeSQLite(t *testing.T, sheets map[string][][]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tables.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	for name, rows := range sheets {
		cols := make([]string, len(rows[0]))
		marks := make([]string, len(rows[0]))
		for i, h := range rows[0] {
			cols[i] = fmt.Sprintf("%q TEXT", h)
			marks[i] = "?"
		}
		if _, err := db.Exec(fmt.Sprintf("CREATE TABLE %q (%s)", name, strings.Join(cols, ", "))); err != nil {
			t.Fatal(err)
		}
		for _, r := range rows[1:] {
			args := make([]any, len(r))
			for i, v := range r {
				if v != "" {
					args[i] = v
				}
			}
			if _, err := db.Exec(fmt.Sprintf("INSERT INTO %q VALUES (%s)", name, strings.Join(marks, ", ")), args...); err != nil {
				t.Fatal(err)
			}
		}
	}
	return path
}

func assertFixtureLoaded(t *testing.T, store *core.Store) {
	t.Helper()

	if len(store.Warnings()) != 0 {
		t.Errorf("unexpected warnings: %s", core.FormatWarnings(store.Warnings()))
	}
	if got := store.Promotions().Len(); got != 2 {
		t.Errorf("promotions = %d rows, want 2", got)
	}

	out := core.NewEngine(store, 0).Resolve(core.Selection{
		core.FieldPlatform:         "Meta",
		core.FieldScope:            "Pais",
		core.FieldRegion:           "Senior",
		core.FieldMetaArea:         "Engineering",
		core.FieldMetaCampaignType: "Awareness",
		core.FieldMetaZone:         "LATAM",
		core.FieldMetaZoneArea:     "Senior",
	})
	if out.Code.String != "REFPROG" {
		t.Errorf("code = %q (notice %q), want REFPROG", out.Code.String, out.Notice)
	}
}

func TestLoad_Workbook(t *testing.T) {
	path := writeWorkbook(t, fixtureSheets)

	store, err := Load(context.Background(), path, Options{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	assertFixtureLoaded(t, store)
}

func TestLoad_CSVDirectory(t *testing.T) {
	dir := writeCSVDir(t, fixtureSheets)

	for _, raw := range []string{dir, "csv://" + filepath.ToSlash(dir)} {
		store, err := Load(context.Background(), raw, Options{})
		if err != nil {
			t.Fatalf("Load(%q) error = %v", raw, err)
		}
		assertFixtureLoaded(t, store)
	}
}

func TestLoad_SQLite(t *testing.T) {
	path := writeSQLite(t, fixtureSheets)

	store, err := Load(context.Background(), "sqlite://"+filepath.ToSlash(path), Options{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	assertFixtureLoaded(t, store)
}

func TestLoad_MissingSource(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.xlsx")

	_, err := Load(context.Background(), missing, Options{})
	if !errors.Is(err, core.ErrSourceNotFound) {
		t.Fatalf("Load() error = %v, want ErrSourceNotFound", err)
	}
	if got := core.MapError(err).Code; got != "SRC001" {
		t.Errorf("MapError code = %q, want SRC001", got)
	}
}

func TestLoad_MissingSheet(t *testing.T) {
	sheets := map[string][][]string{
		"promocion": fixtureSheets["promocion"],
		"modalidad": fixtureSheets["modalidad"],
	}
	dir := writeCSVDir(t, sheets)

	_, err := Load(context.Background(), dir, Options{})
	if !errors.Is(err, core.ErrSheetNotFound) {
		t.Fatalf("Load() error = %v, want ErrSheetNotFound", err)
	}
	if !strings.Contains(err.Error(), "areas_paises") {
		t.Errorf("error should name the sheet: %v", err)
	}
}

func TestLoad_MissingColumnIsWarning(t *testing.T) {
	sheets := map[string][][]string{
		"promocion": {
			{"Plataforma", "Pais/Area", "Area/programa", "Promocion"},
			{"Meta", "pais", "Senior", "REF"},
		},
		"modalidad": {
			{"Plataforma", "Area/programa", "particularidad", "Columna1", "Modalidad"},
			{"Meta", "Engineering", "Awareness", "Senior", "PROG"},
		},
		"areas_paises": fixtureSheets["areas_paises"],
	}
	dir := writeCSVDir(t, sheets)

	store, err := Load(context.Background(), dir, Options{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	var got []string
	for _, w := range store.Warnings() {
		got = append(got, w.String())
	}
	want := []string{"modalidad.Zona Meta", "promocion.Expats/No"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("warnings mismatch (-want +got):\n%s", diff)
	}

	out := core.NewEngine(store, 0).Resolve(core.Selection{core.FieldPlatform: "Meta"})
	if out.Halted != core.FieldMetaZone {
		t.Errorf("halted = %q, want meta_zone", out.Halted)
	}
}

func TestLoad_UnsupportedScheme(t *testing.T) {
	_, err := Load(context.Background(), "ftp://example.com/book.xlsx", Options{})
	if !errors.Is(err, ErrUnsupportedScheme) {
		t.Fatalf("Load() error = %v, want ErrUnsupportedScheme", err)
	}
}

func TestParse(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		raw        string
		wantScheme string
		wantLocal  bool
	}{
		{"data/equivalencias_promo_modalidad.xlsx", "file", true},
		{dir, "csv", true},
		{"CSV://tables", "csv", true},
		{"postgres://u:p@localhost/promo", "postgres", false},
		{"s3://bucket/book.xlsx", "s3", false},
		{"sqlite://tables.db", "sqlite", true},
	}

	for _, tt := range tests {
		u, err := Parse(tt.raw)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.raw, err)
			continue
		}
		if u.Scheme != tt.wantScheme {
			t.Errorf("Parse(%q) scheme = %q, want %q", tt.raw, u.Scheme, tt.wantScheme)
		}
		if IsLocal(u) != tt.wantLocal {
			t.Errorf("IsLocal(%q) = %v, want %v", tt.raw, IsLocal(u), tt.wantLocal)
		}
	}

	if _, err := Parse("  "); !errors.Is(err, ErrUnsupportedScheme) {
		t.Errorf("Parse(blank) error = %v", err)
	}
}

func TestLocalPath(t *testing.T) {
	u, _ := Parse("csv://data/tables")
	if got, want := LocalPath(u), filepath.FromSlash("data/tables"); got != want {
		t.Errorf("LocalPath() = %q, want %q", got, want)
	}
}

func TestSchemes(t *testing.T) {
	want := []string{"csv", "file", "postgres", "postgresql", "s3", "sqlite", "sqlite3"}
	if diff := cmp.Diff(want, Schemes()); diff != "" {
		t.Errorf("Schemes() mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"x", "x"},
		{[]byte("b"), "b"},
		{int64(10), "10"},
	}
	for _, tt := range tests {
		if got := formatValue(tt.in); got != tt.want {
			t.Errorf("formatValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
