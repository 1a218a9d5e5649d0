package grid

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"
)

func keysOf(rows []*Row) []RowKey {
	out := make([]RowKey, len(rows))
	for i, r := range rows {
		out[i] = r.Key()
	}
	return out
}

func keys(ks ...int64) []RowKey {
	out := make([]RowKey, len(ks))
	for i, k := range ks {
		out[i] = k
	}
	return out
}

func newNameStore(t *testing.T, names ...string) *Store {
	t.Helper()
	recs := make([]Record, len(names))
	for i, n := range names {
		recs[i] = Record{"name": n, "age": float64(i)}
	}
	s, err := New(recs, Options{
		Columns:    []Column{{Name: "name", Editor: "text", Sortable: true}, {Name: "age", Sortable: true}},
		RowHeaders: []string{RowNumColumn, CheckboxColumn},
	})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestNew(t *testing.T) {
	t.Run("unknown key column", func(t *testing.T) {
		_, err := New(nil, Options{Columns: []Column{{Name: "a"}}, KeyColumnName: "b"})
		if !errors.Is(err, ErrUnknownColumn) {
			t.Errorf("got %v", err)
		}
	})

	t.Run("identity", func(t *testing.T) {
		s := newNameStore(t, "a", "b", "c")
		rows := s.RawData()
		if got := keysOf(rows); !slices.Equal(got, keys(0, 1, 2)) {
			t.Fatalf("keys %v", got)
		}
		token := strings.TrimSuffix(rows[0].UniqueKey(), "-0")
		for i, r := range rows {
			if r.SortKey() != i {
				t.Errorf("row %d sortKey %d", i, r.SortKey())
			}
			if r.UniqueKey() != fmt.Sprintf("%s-%d", token, i) {
				t.Errorf("row %d uniqueKey %q", i, r.UniqueKey())
			}
			a := r.Attributes()
			if a.RowNum != i+1 || a.Checked || a.Disabled || a.CheckDisabled {
				t.Errorf("row %d attributes %+v", i, a)
			}
		}
	})

	t.Run("key column", func(t *testing.T) {
		s, err := New([]Record{{"id": "x"}, {"id": "y"}, {"id": "x"}}, Options{
			Columns:       []Column{{Name: "id"}},
			KeyColumnName: "id",
		})
		if err != nil {
			t.Fatal(err)
		}
		got := keysOf(s.RawData())
		if got[0] != "x" || got[1] != "y" || got[2] != int64(0) {
			t.Errorf("keys %v", got)
		}
	})

	t.Run("explicit row keys do not collide", func(t *testing.T) {
		s, err := New([]Record{{"rowKey": 1}, {}, {}}, Options{Columns: []Column{{Name: "a"}}})
		if err != nil {
			t.Fatal(err)
		}
		got := keysOf(s.RawData())
		if got[0] != int64(1) || got[2] != int64(2) || got[1] == int64(1) || got[1] == int64(2) {
			t.Errorf("keys %v", got)
		}
	})

	t.Run("attributes", func(t *testing.T) {
		s, err := New([]Record{
			{"a": 1, "_attributes": map[string]any{"disabled": true}},
			{"a": 2, "_attributes": map[string]any{"disabled": true, "checkDisabled": false}},
			{"a": 3, "_attributes": map[string]any{"className": map[string]any{"row": []any{"x"}}}},
			{"a": 4, "_attributes": AttributeOptions{Checked: new(bool)}},
		}, Options{Columns: []Column{{Name: "a"}}})
		if err != nil {
			t.Fatal(err)
		}
		rows := s.RawData()
		if a := rows[0].Attributes(); !a.Disabled || !a.CheckDisabled {
			t.Errorf("checkDisabled inherits disabled: %+v", a)
		}
		if a := rows[1].Attributes(); !a.Disabled || a.CheckDisabled {
			t.Errorf("explicit checkDisabled wins: %+v", a)
		}
		a := rows[2].Attributes()
		if !slices.Equal(a.ClassName.Row, []string{"x"}) || a.ClassName.Column == nil {
			t.Errorf("partial className: %+v", a.ClassName)
		}
	})

	t.Run("store disabled", func(t *testing.T) {
		s, err := New([]Record{{"a": 1}}, Options{Columns: []Column{{Name: "a"}}, Disabled: true})
		if err != nil {
			t.Fatal(err)
		}
		if a := s.RawData()[0].Attributes(); !a.Disabled || !a.CheckDisabled {
			t.Errorf("attributes %+v", a)
		}
	})

	t.Run("input is not modified", func(t *testing.T) {
		rec := Record{"name": "a"}
		if _, err := New([]Record{rec}, Options{Columns: []Column{{Name: "name"}, {Name: "age"}}}); err != nil {
			t.Fatal(err)
		}
		if len(rec) != 1 {
			t.Errorf("record modified: %v", rec)
		}
	})

	t.Run("default value", func(t *testing.T) {
		s, err := New([]Record{{}}, Options{Columns: []Column{{Name: "a", DefaultValue: "d"}}})
		if err != nil {
			t.Fatal(err)
		}
		if got := s.RawData()[0].Value("a"); got != "d" {
			t.Errorf("got %v", got)
		}
	})
}

func TestSort(t *testing.T) {
	t.Run("unsort restores origin order", func(t *testing.T) {
		s := newNameStore(t, "c", "a", "b")
		s.Sort("name", true, false)
		if got := keysOf(s.Rows()); !slices.Equal(got, keys(1, 2, 0)) {
			t.Fatalf("sorted %v", got)
		}
		if r, _ := s.Row(1); r.Attributes().RowNum != 1 {
			t.Errorf("row numbers follow display order, got %d", r.Attributes().RowNum)
		}
		s.Sort("name", false, false)
		if got := keysOf(s.Rows()); !slices.Equal(got, keys(0, 2, 1)) {
			t.Fatalf("descending %v", got)
		}
		s.Unsort("")
		if got := keysOf(s.Rows()); !slices.Equal(got, keys(0, 1, 2)) {
			t.Errorf("unsorted %v", got)
		}
		for i, r := range s.RawData() {
			if r.SortKey() != i || r.Attributes().RowNum != i+1 {
				t.Errorf("row %d: sortKey %d rowNum %d", i, r.SortKey(), r.Attributes().RowNum)
			}
		}
		if s.SortState().Sorted() {
			t.Error("sort state should be back to origin order")
		}
	})

	t.Run("multi sort", func(t *testing.T) {
		s, err := New([]Record{
			{"g": "b", "n": 1}, {"g": "a", "n": 2}, {"g": "b", "n": 0}, {"g": "a", "n": 1},
		}, Options{Columns: []Column{{Name: "g", Sortable: true}, {Name: "n", Sortable: true}}})
		if err != nil {
			t.Fatal(err)
		}
		s.Sort("g", true, false)
		s.Sort("n", false, true)
		if got := keysOf(s.Rows()); !slices.Equal(got, keys(1, 3, 0, 2)) {
			t.Errorf("got %v", got)
		}
		st := s.SortState()
		if len(st.Columns) != 2 || st.Columns[0].ColumnName != "g" || st.Columns[1].ColumnName != "n" {
			t.Errorf("state %+v", st)
		}
		s.Sort("n", true, false)
		if st := s.SortState(); len(st.Columns) != 1 || st.Columns[0].ColumnName != "n" {
			t.Errorf("single sort replaces: %+v", st)
		}
	})

	t.Run("toggle cycle", func(t *testing.T) {
		for _, tt := range []struct {
			typ  SortingType
			want []bool
		}{
			{SortingAsc, []bool{true, false}},
			{SortingDesc, []bool{false, true}},
		} {
			t.Run(string(tt.typ), func(t *testing.T) {
				s, err := New([]Record{{"a": 1}}, Options{Columns: []Column{{Name: "a", Sortable: true, SortingType: tt.typ}}})
				if err != nil {
					t.Fatal(err)
				}
				for _, asc := range tt.want {
					s.ToggleSort("a", false)
					st := s.SortState()
					if !st.Sorted() || st.Columns[0].Ascending != asc {
						t.Fatalf("state %+v, want ascending %v", st, asc)
					}
				}
				s.ToggleSort("a", false)
				if s.SortState().Sorted() {
					t.Errorf("third toggle unsorts: %+v", s.SortState())
				}
			})
		}
	})

	t.Run("not sortable", func(t *testing.T) {
		s, err := New([]Record{{"a": 2}, {"a": 1}}, Options{Columns: []Column{{Name: "a"}, {Name: "b", Sortable: true, Hidden: true}}})
		if err != nil {
			t.Fatal(err)
		}
		s.Sort("a", true, false)
		s.Sort("b", true, false)
		s.Sort("missing", true, false)
		if s.SortState().Sorted() {
			t.Error("unsortable columns are ignored")
		}
	})

	t.Run("hiding a sorted column unsorts it", func(t *testing.T) {
		s := newNameStore(t, "b", "a")
		s.Sort("name", true, false)
		s.SetColumnHidden("name", true)
		if s.SortState().Sorted() {
			t.Error("still sorted")
		}
		if got := keysOf(s.Rows()); !slices.Equal(got, keys(0, 1)) {
			t.Errorf("got %v", got)
		}
	})

	t.Run("server sort keeps order", func(t *testing.T) {
		s, err := New([]Record{{"a": 2}, {"a": 1}}, Options{Columns: []Column{{Name: "a", Sortable: true}}, ServerSort: true})
		if err != nil {
			t.Fatal(err)
		}
		s.Sort("a", true, false)
		if !s.SortState().Sorted() || s.SortState().UseClient {
			t.Errorf("state %+v", s.SortState())
		}
		if got := keysOf(s.Rows()); !slices.Equal(got, keys(0, 1)) {
			t.Errorf("got %v", got)
		}
	})
}

func TestFilter(t *testing.T) {
	t.Run("and semantics", func(t *testing.T) {
		s := newNameStore(t, "Kim", "Lee", "Lee")
		s.SetFilter(OpFilter("name", false, FilterState{Code: FilterOpEquals, Value: "Lee"}))
		if got := keysOf(s.FilteredRawData()); !slices.Equal(got, keys(1, 2)) {
			t.Fatalf("filtered %v", got)
		}
		if got := s.FilteredIndex(); !slices.Equal(got, []int{1, 2}) {
			t.Errorf("index %v", got)
		}
		if got := s.FilteredViewData(); len(got) != 2 || got[0].Key() != int64(1) {
			t.Errorf("view data %v", got)
		}
		s.SetFilter(Filter{ColumnName: "age", Condition: Condition(FilterOpGreaterThan, "1")})
		if got := keysOf(s.FilteredRawData()); !slices.Equal(got, keys(2)) {
			t.Errorf("two filters %v", got)
		}
		s.Unfilter("")
		if got := len(s.FilteredRawData()); got != 3 {
			t.Errorf("unfiltered %d rows", got)
		}
	})

	t.Run("relation target", func(t *testing.T) {
		s := newCityStore(t)
		s.SetFilter(OpFilter("city", false, FilterState{Code: FilterOpEquals, Value: "Seoul"}))
		if got := len(s.FilteredRawData()); got != 1 {
			t.Fatalf("before any cell read: %d rows", got)
		}
		v, _ := s.ViewRow(0)
		if v.Realized() {
			t.Error("filtering realized the view row")
		}
		if c := v.Cell("city"); c.FormattedValue != "Seoul" {
			t.Fatalf("city %+v", c)
		}
		if got := len(s.FilteredRawData()); got != 1 {
			t.Errorf("after a cell read: %d rows", got)
		}
		// The city is blanked once the country no longer offers it.
		s.SetValue(0, "country", "us")
		if got := len(s.FilteredRawData()); got != 0 {
			t.Errorf("blanked city: %d rows", got)
		}
		s.SetFilter(OpFilter("city", false, FilterState{Code: FilterOpIsEmpty}))
		if got := len(s.FilteredRawData()); got != 1 {
			t.Errorf("empty city: %d rows", got)
		}
	})

	t.Run("replaces filter of column", func(t *testing.T) {
		s := newNameStore(t, "Kim", "Lee")
		s.SetFilter(OpFilter("name", false, FilterState{Code: FilterOpEquals, Value: "Lee"}))
		s.SetFilter(OpFilter("name", false, FilterState{Code: FilterOpEquals, Value: "Kim"}))
		if len(s.Filters()) != 1 {
			t.Fatalf("filters %d", len(s.Filters()))
		}
		if got := keysOf(s.FilteredRawData()); !slices.Equal(got, keys(0)) {
			t.Errorf("got %v", got)
		}
	})

	t.Run("formatted value", func(t *testing.T) {
		s, err := New([]Record{{"n": "a"}, {"n": "b"}}, Options{Columns: []Column{{
			Name:      "n",
			Formatter: FuncFormatter(func(p FormatterProps) any { return strings.ToUpper(displayString(p.Value)) }),
		}}})
		if err != nil {
			t.Fatal(err)
		}
		s.SetFilter(Filter{ColumnName: "n", Condition: func(v string) bool { return v == "B" }})
		if got := keysOf(s.FilteredRawData()); !slices.Equal(got, keys(1)) {
			t.Errorf("got %v", got)
		}
	})

	t.Run("follows values", func(t *testing.T) {
		s := newNameStore(t, "Kim", "Lee")
		s.SetFilter(OpFilter("name", false, FilterState{Code: FilterOpEquals, Value: "Lee"}))
		s.SetValue(0, "name", "Lee")
		if got := len(s.FilteredRawData()); got != 2 {
			t.Errorf("got %d rows", got)
		}
	})

	t.Run("operators", func(t *testing.T) {
		tests := []struct {
			op    FilterOp
			value string
			in    string
			want  bool
		}{
			{FilterOpContains, "EE", "Lee", true},
			{FilterOpNotContains, "x", "Lee", true},
			{FilterOpStartsWith, "le", "Lee", true},
			{FilterOpEndsWith, "e", "Kim", false},
			{FilterOpGreaterEqual, "10", "9", false},
			{FilterOpLessThan, "10", "9", true},
			{FilterOpNotEquals, "a", "a", false},
			{FilterOpIsEmpty, "", "", true},
			{FilterOpIsNotEmpty, "", "", false},
		}
		for _, tt := range tests {
			if got := Condition(tt.op, tt.value)(tt.in); got != tt.want {
				t.Errorf("%s %q on %q = %v", tt.op, tt.value, tt.in, got)
			}
		}
		or := Or(Condition(FilterOpEquals, "a"), Condition(FilterOpEquals, "b"))
		if !or("b") || or("c") {
			t.Error("or")
		}
		if _, err := ParseFilterOp("nope"); !errors.Is(err, ErrUnknownFilterOp) {
			t.Errorf("got %v", err)
		}
	})
}

func TestPagination(t *testing.T) {
	names := make([]string, 45)
	for i := range names {
		names[i] = fmt.Sprintf("n%02d", i)
	}
	newStore := func(t *testing.T, typ PageType) *Store {
		recs := make([]Record, len(names))
		for i, n := range names {
			recs[i] = Record{"name": n}
		}
		s, err := New(recs, Options{
			Columns:     []Column{{Name: "name"}},
			PageOptions: &PageOptions{UseClient: true, PerPage: 20, Type: typ},
		})
		if err != nil {
			t.Fatal(err)
		}
		return s
	}

	t.Run("window", func(t *testing.T) {
		s := newStore(t, PagePagination)
		for _, tt := range []struct{ page, start, end int }{
			{1, 0, 20}, {2, 20, 40}, {3, 40, 45}, {10, 40, 45}, {0, 0, 20},
		} {
			s.SetPage(tt.page)
			if start, end := s.PageRowRange(); start != tt.start || end != tt.end {
				t.Errorf("page %d: [%d,%d), want [%d,%d)", tt.page, start, end, tt.start, tt.end)
			}
		}
		if got := s.PageOptions().TotalCount; got != 45 {
			t.Errorf("total %d", got)
		}
		s.SetPage(3)
		if got := len(s.PageRows()); got != 5 {
			t.Errorf("page rows %d", got)
		}
	})

	t.Run("filter returns to first page", func(t *testing.T) {
		s := newStore(t, PagePagination)
		s.SetPage(2)
		s.SetFilter(OpFilter("name", false, FilterState{Code: FilterOpStartsWith, Value: "n1"}))
		if po := s.PageOptions(); po.Page != 1 || po.TotalCount != 10 {
			t.Errorf("page options %+v", po)
		}
	})

	t.Run("removal clamps page", func(t *testing.T) {
		s := newStore(t, PagePagination)
		s.SetPage(3)
		for i := 40; i < 45; i++ {
			s.RemoveRow(i)
		}
		if po := s.PageOptions(); po.Page != 2 {
			t.Errorf("page %d", po.Page)
		}
	})

	t.Run("scroll filters loaded rows only", func(t *testing.T) {
		s := newStore(t, PageScroll)
		s.SetFilter(OpFilter("name", false, FilterState{Code: FilterOpIsNotEmpty}))
		if got := len(s.FilteredRawData()); got != 20 {
			t.Fatalf("filtered %d rows, want the 20 loaded", got)
		}
		s.SetPage(2)
		if got := len(s.FilteredRawData()); got != 40 {
			t.Errorf("filtered %d rows", got)
		}
		if start, end := s.PageRowRange(); start != 0 || end != 40 {
			t.Errorf("range [%d,%d)", start, end)
		}
	})

	t.Run("no client paging", func(t *testing.T) {
		s := newNameStore(t, "a", "b")
		s.SetPage(5)
		if start, end := s.PageRowRange(); start != 0 || end != 2 {
			t.Errorf("range [%d,%d)", start, end)
		}
	})
}

func TestMutations(t *testing.T) {
	t.Run("append empty", func(t *testing.T) {
		s := newNameStore(t, "a", "b")
		s.AppendRow(nil, AppendOptions{})
		r, ok := s.Row(2)
		if !ok {
			t.Fatalf("keys %v", keysOf(s.RawData()))
		}
		if r.Value("name") != "" || r.Value("age") != "" {
			t.Errorf("data %v", r.Data())
		}
		if r.SortKey() != 2 || r.Attributes().RowNum != 3 {
			t.Errorf("sortKey %d rowNum %d", r.SortKey(), r.Attributes().RowNum)
		}
	})

	t.Run("append to empty store", func(t *testing.T) {
		s, err := New(nil, Options{Columns: []Column{{Name: "a"}}})
		if err != nil {
			t.Fatal(err)
		}
		s.AppendRow(Record{"a": 1}, AppendOptions{})
		if got := keysOf(s.RawData()); !slices.Equal(got, keys(0)) {
			t.Errorf("keys %v", got)
		}
	})

	t.Run("append at with focus", func(t *testing.T) {
		s := newNameStore(t, "a", "b")
		at := 1
		s.AppendRow(Record{"name": "x"}, AppendOptions{At: &at, Focus: true})
		if got := keysOf(s.RawData()); !slices.Equal(got, keys(0, 2, 1)) {
			t.Fatalf("keys %v", got)
		}
		for i, r := range s.RawData() {
			if r.SortKey() != i {
				t.Errorf("row %v sortKey %d", r.Key(), r.SortKey())
			}
		}
		f, ok := s.FocusedCell()
		if !ok || f.RowKey != int64(2) || f.ColumnName != "name" || f.Value != "x" {
			t.Errorf("focus %+v, %v", f, ok)
		}
	})

	t.Run("prepend", func(t *testing.T) {
		s := newNameStore(t, "a")
		s.PrependRow(Record{"name": "z"}, false)
		if got := keysOf(s.Rows()); !slices.Equal(got, keys(1, 0)) {
			t.Errorf("keys %v", got)
		}
		if r, _ := s.Row(1); r.Attributes().RowNum != 1 {
			t.Errorf("rowNum %d", r.Attributes().RowNum)
		}
	})

	t.Run("append while sorted", func(t *testing.T) {
		s := newNameStore(t, "b", "d")
		s.Sort("name", true, false)
		s.AppendRow(Record{"name": "c"}, AppendOptions{})
		if got := keysOf(s.Rows()); !slices.Equal(got, keys(0, 2, 1)) {
			t.Errorf("keys %v", got)
		}
		if r, _ := s.Row(2); r.Attributes().RowNum != 2 {
			t.Errorf("rowNum %d", r.Attributes().RowNum)
		}
	})

	t.Run("set row", func(t *testing.T) {
		s := newNameStore(t, "b", "a")
		s.Sort("name", true, false)
		s.SetRow(1, Record{"name": "c", "age": 9})
		if got := keysOf(s.Rows()); !slices.Equal(got, keys(0, 1)) {
			t.Errorf("keys %v", got)
		}
		if !s.SortState().Sorted() {
			t.Error("sort state kept")
		}
		r, _ := s.Row(1)
		if r.Value("name") != "c" || r.Value("age") != 9 {
			t.Errorf("data %v", r.Data())
		}
		s.SetRow(99, Record{"name": "x"})
		if s.RowCount() != 2 {
			t.Error("missing key is a no-op")
		}
	})

	t.Run("remove focused row", func(t *testing.T) {
		s := newNameStore(t, "a", "b")
		if !s.Focus(1, "name") {
			t.Fatal("focus failed")
		}
		s.RemoveRow(0)
		if _, ok := s.FocusedCell(); !ok {
			t.Error("focus on another row is kept")
		}
		s.RemoveRow(1)
		if _, ok := s.FocusedCell(); ok {
			t.Error("focus cleared with its row")
		}
		s.RemoveRow(42)
		if s.RowCount() != 0 {
			t.Errorf("rows %d", s.RowCount())
		}
	})

	t.Run("remove updates row numbers", func(t *testing.T) {
		s := newNameStore(t, "a", "b", "c")
		s.RemoveRow(0)
		for i, r := range s.Rows() {
			if r.Attributes().RowNum != i+1 {
				t.Errorf("row %v rowNum %d", r.Key(), r.Attributes().RowNum)
			}
		}
	})

	t.Run("move", func(t *testing.T) {
		s := newNameStore(t, "a", "b", "c")
		s.MoveRow(0, 2)
		if got := keysOf(s.Rows()); !slices.Equal(got, keys(1, 2, 0)) {
			t.Fatalf("keys %v", got)
		}
		s.Sort("name", true, false)
		s.MoveRow(0, 0)
		s.Unsort("")
		if got := keysOf(s.Rows()); !slices.Equal(got, keys(1, 2, 0)) {
			t.Errorf("move while sorted is a no-op: %v", got)
		}
	})

	t.Run("check", func(t *testing.T) {
		s := newNameStore(t, "a", "b", "c")
		s.Check(1)
		if got := keysOf(s.CheckedRows()); !slices.Equal(got, keys(1)) {
			t.Errorf("checked %v", got)
		}
		s.DisableRow(2, true)
		s.CheckAll()
		if got := keysOf(s.CheckedRows()); !slices.Equal(got, keys(0, 1)) {
			t.Errorf("checkAll skips checkDisabled rows: %v", got)
		}
		s.RemoveCheckedRows()
		if got := keysOf(s.RawData()); !slices.Equal(got, keys(2)) {
			t.Errorf("remaining %v", got)
		}
		s.SetValue(2, CheckboxColumn, true)
		if r, _ := s.Row(2); !r.Attributes().Checked {
			t.Error("setting the checkbox column checks the row")
		}
		s.UncheckAll()
		if r, _ := s.Row(2); !r.Attributes().Checked {
			t.Error("uncheckAll skips checkDisabled rows")
		}
	})

	t.Run("find", func(t *testing.T) {
		s := newNameStore(t, "a", "b", "a")
		if got := keysOf(s.FindRows(map[string]any{"name": "a"})); !slices.Equal(got, keys(0, 2)) {
			t.Errorf("got %v", got)
		}
		if got := keysOf(s.FindRows(map[string]any{"name": "a", "age": 2})); !slices.Equal(got, keys(2)) {
			t.Errorf("got %v", got)
		}
		got := s.FindRowsFunc(func(r *Row) bool { return r.Value("name") == "b" })
		if len(got) != 1 || got[0].Key() != int64(1) {
			t.Errorf("got %v", keysOf(got))
		}
		if r, ok := s.RowAt(1); !ok || r.Key() != int64(1) || s.IndexOfRow(2) != 2 {
			t.Error("display position lookups")
		}
	})

	t.Run("reset data", func(t *testing.T) {
		recs := []Record{{"name": "a"}, {"name": "b"}}
		s, err := New(recs, Options{Columns: []Column{{Name: "name", Sortable: true}}})
		if err != nil {
			t.Fatal(err)
		}
		before := s.RawData()
		s.Sort("name", false, false)
		s.SetFilter(OpFilter("name", false, FilterState{Code: FilterOpEquals, Value: "a"}))
		s.Focus(0, "name")
		s.ResetData(recs)
		after := s.RawData()
		for i := range after {
			if before[i].UniqueKey() == after[i].UniqueKey() {
				t.Errorf("row %d kept its unique key", i)
			}
			if before[i].Key() != after[i].Key() || before[i].Value("name") != after[i].Value("name") {
				t.Errorf("row %d content changed", i)
			}
		}
		if s.SortState().Sorted() || len(s.Filters()) != 0 {
			t.Error("sort and filters are cleared")
		}
		if _, ok := s.FocusedCell(); ok {
			t.Error("focus is cleared")
		}
		s.Clear()
		if s.RowCount() != 0 {
			t.Errorf("rows %d", s.RowCount())
		}
	})

	t.Run("unique keys", func(t *testing.T) {
		s := newNameStore(t, "a", "b", "c")
		at := 0
		s.AppendRow(nil, AppendOptions{At: &at})
		s.RemoveRow(1)
		s.AppendRow(Record{"rowKey": 0}, AppendOptions{})
		s.PrependRow(nil, false)
		s.AppendRows([]Record{{"name": "x"}, {"name": "y"}})
		seen := map[RowKey]bool{}
		for _, r := range s.RawData() {
			if seen[r.Key()] {
				t.Fatalf("duplicate key %v in %v", r.Key(), keysOf(s.RawData()))
			}
			seen[r.Key()] = true
		}
		if len(seen) != 7 {
			t.Errorf("rows %d", len(seen))
		}
	})
}
