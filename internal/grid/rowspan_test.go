package grid

import "testing"

func TestRowSpanMap(t *testing.T) {
	main := rowSpanMap(int64(0), map[string]int{"a": 3, "b": 1}, nil)
	if got := main["a"]; got != (RowSpan{MainRow: true, MainRowKey: int64(0), Count: 3, SpanCount: 3}) {
		t.Errorf("main = %+v", got)
	}
	if _, ok := main["b"]; ok {
		t.Error("width 1 spans are not created")
	}
	sub1 := rowSpanMap(int64(1), nil, main)
	if got := sub1["a"]; got != (RowSpan{MainRowKey: int64(0), Count: -1, SpanCount: 3}) {
		t.Errorf("sub1 = %+v", got)
	}
	sub2 := rowSpanMap(int64(2), nil, sub1)
	if got := sub2["a"]; got.Count != -2 || got.SpanCount != 3 {
		t.Errorf("sub2 = %+v", got)
	}
	if after := rowSpanMap(int64(3), nil, sub2); len(after) != 0 {
		t.Errorf("span should end, got %+v", after)
	}
	declared := rowSpanMap(int64(2), map[string]int{"a": 2}, sub1)
	if !declared["a"].MainRow {
		t.Error("declared span wins over an inherited one")
	}
}

func newSpanStore(t *testing.T) *Store {
	t.Helper()
	s, err := New([]Record{
		{"name": "a", fieldAttributes: map[string]any{"rowSpan": map[string]any{"name": float64(3)}}},
		{"name": "a"},
		{"name": "a"},
		{"name": "b"},
	}, Options{Columns: []Column{{Name: "name"}}})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestStoreRowSpans(t *testing.T) {
	t.Run("chain", func(t *testing.T) {
		s := newSpanStore(t)
		for key, want := range map[int]int{1: -1, 2: -2} {
			span, ok := s.RowSpan(key, "name")
			if !ok || span.MainRowKey != int64(0) || span.Count != want || span.SpanCount != 3 {
				t.Errorf("row %d: %+v, %v", key, span, ok)
			}
		}
		if _, ok := s.RowSpan(3, "name"); ok {
			t.Error("row 3 is outside the span")
		}
	})

	t.Run("remove main row", func(t *testing.T) {
		s := newSpanStore(t)
		s.RemoveRow(0)
		span, ok := s.RowSpan(1, "name")
		if !ok || !span.MainRow || span.SpanCount != 2 {
			t.Fatalf("new main row: %+v, %v", span, ok)
		}
		span, ok = s.RowSpan(2, "name")
		if !ok || span.MainRowKey != int64(1) || span.Count != -1 {
			t.Errorf("sub row: %+v, %v", span, ok)
		}
	})

	t.Run("remove sub row", func(t *testing.T) {
		s := newSpanStore(t)
		s.RemoveRow(1)
		span, _ := s.RowSpan(0, "name")
		if span.SpanCount != 2 {
			t.Errorf("main row: %+v", span)
		}
		if _, ok := s.RowSpan(3, "name"); ok {
			t.Error("row 3 must stay outside the span")
		}
	})

	t.Run("insert inside span", func(t *testing.T) {
		s := newSpanStore(t)
		at := 1
		s.AppendRow(Record{"name": "a"}, AppendOptions{At: &at})
		span, _ := s.RowSpan(0, "name")
		if span.SpanCount != 4 {
			t.Errorf("main row: %+v", span)
		}
		span, ok := s.RowSpan(2, "name")
		if !ok || span.Count != -3 {
			t.Errorf("last sub row: %+v, %v", span, ok)
		}
	})

	t.Run("disabled while sorted", func(t *testing.T) {
		s := newSpanStore(t)
		s.Sort(SortKeyColumn, false, false)
		if _, ok := s.RowSpan(1, "name"); ok {
			t.Error("spans only apply in origin order")
		}
	})
}
