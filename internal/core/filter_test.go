package core

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDistinctValues(t *testing.T) {
	tbl := promotionTable(
		[]string{"Google", "pais", "Spain", "b", ""},
		[]string{"Google", "pais", "Chile", "a", ""},
		[]string{"Google", "pais", "Spain", "c", ""},
		[]string{"Google", "area", "Europe", "a", ""},
		[]string{"Meta", "pais", "", "z", ""},
		[]string{"", "pais", "Peru", "y", ""},
	)

	tests := []struct {
		name   string
		target Column
		cs     []Constraint
		want   []string
	}{
		{
			name:   "no constraints returns every distinct non-null value",
			target: ColAreaOrProgram,
			want:   []string{"Chile", "Europe", "Peru", "Spain"},
		},
		{
			name:   "single constraint",
			target: ColPromotion,
			cs:     []Constraint{Eq(ColCountryOrArea, "area")},
			want:   []string{"a"},
		},
		{
			name:   "conjunction",
			target: ColPromotion,
			cs:     []Constraint{Eq(ColPlatform, "Google"), Eq(ColAreaOrProgram, "Spain")},
			want:   []string{"b", "c"},
		},
		{
			name:   "null constraint cell never matches",
			target: ColPromotion,
			cs:     []Constraint{Eq(ColPlatform, "")},
			want:   []string{},
		},
		{
			name:   "no match is empty not nil",
			target: ColPromotion,
			cs:     []Constraint{Eq(ColPlatform, "TikTok")},
			want:   []string{},
		},
		{
			name:   "constraint on absent column matches nothing",
			target: ColPromotion,
			cs:     []Constraint{Eq(ColMetaZone, "LATAM")},
			want:   []string{},
		},
		{
			name:   "absent target column",
			target: ColModality,
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistinctValues(tbl, tt.target, tt.cs...)
			if got == nil {
				t.Fatal("DistinctValues returned nil")
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("DistinctValues() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDistinctValues_SortedUniqueNoNull(t *testing.T) {
	s := fixtureStore()
	for _, tbl := range []*Table{s.Promotions(), s.Modalities(), s.AreaCountries()} {
		for _, col := range tbl.Columns() {
			got := DistinctValues(tbl, col)
			if !sort.StringsAreSorted(got) {
				t.Errorf("%s.%s not sorted: %v", tbl.Key(), col, got)
			}
			seen := map[string]bool{}
			for _, v := range got {
				if v == "" {
					t.Errorf("%s.%s contains an empty value", tbl.Key(), col)
				}
				if seen[v] {
					t.Errorf("%s.%s contains duplicate %q", tbl.Key(), col, v)
				}
				seen[v] = true
			}
		}
	}
}

func TestDistinctValues_ConstraintOrderIrrelevant(t *testing.T) {
	tbl := fixtureStore().Modalities()
	a := DistinctValues(tbl, ColModality, Eq(ColPlatform, "Meta"), Eq(ColParticularity, "Awareness"))
	b := DistinctValues(tbl, ColModality, Eq(ColParticularity, "Awareness"), Eq(ColPlatform, "Meta"))
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("constraint order changed result (-a +b):\n%s", diff)
	}
}

func TestScopeValue_Lowercases(t *testing.T) {
	tbl := areaCountryTable(
		[]string{"LinkedIn", "pais", "España"},
		[]string{"LinkedIn", "Pais", "Wrong"},
	)
	got := DistinctValues(tbl, ColParticularity,
		Eq(ColPlatform, "LinkedIn"),
		Eq(ColAreaOrProgram, ScopeValue("Pais")),
	)
	if diff := cmp.Diff([]string{"España"}, got); diff != "" {
		t.Errorf("lowercased scope mismatch (-want +got):\n%s", diff)
	}
}

func TestLookup(t *testing.T) {
	tbl := modalityTable(
		[]string{"Google", "Marketing", "Si", "", "first", ""},
		[]string{"Google", "Marketing", "Si", "", "second", ""},
		[]string{"Google", "Sales", "Si", "", "", ""},
	)

	t.Run("first match wins", func(t *testing.T) {
		got, ok := Lookup(tbl, ColModality, Eq(ColAreaOrProgram, "Marketing"))
		if !ok || got != "first" {
			t.Errorf("Lookup() = %q, %v; want %q, true", got, ok, "first")
		}
	})

	t.Run("no match is absent", func(t *testing.T) {
		if got, ok := Lookup(tbl, ColModality, Eq(ColAreaOrProgram, "HR")); ok {
			t.Errorf("Lookup() = %q, want absent", got)
		}
	})

	t.Run("null target is absent", func(t *testing.T) {
		if got, ok := Lookup(tbl, ColModality, Eq(ColAreaOrProgram, "Sales")); ok {
			t.Errorf("Lookup() = %q, want absent", got)
		}
	})

	t.Run("absent target column", func(t *testing.T) {
		if _, ok := Lookup(tbl, ColPromotion); ok {
			t.Error("Lookup() on absent column should be absent")
		}
	})
}

func TestFirst(t *testing.T) {
	if _, ok := First(nil); ok {
		t.Error("First(nil) should report false")
	}
	if v, ok := First([]string{"A5", "B10"}); !ok || v != "A5" {
		t.Errorf("First() = %q, %v", v, ok)
	}
}
