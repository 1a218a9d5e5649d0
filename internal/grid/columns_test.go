package grid

import (
	"errors"
	"slices"
	"testing"
)

func TestNewColumnMap(t *testing.T) {
	t.Run("row headers first", func(t *testing.T) {
		cm, err := NewColumnMap([]Column{{Name: "name"}}, RowNumColumn, CheckboxColumn)
		if err != nil {
			t.Fatal(err)
		}
		var names []string
		for _, c := range cm.Columns() {
			names = append(names, c.Name)
		}
		if want := []string{RowNumColumn, CheckboxColumn, "name"}; !slices.Equal(names, want) {
			t.Errorf("got %v, want %v", names, want)
		}
		if len(cm.DataColumns()) != 1 {
			t.Errorf("expected 1 data column, got %d", len(cm.DataColumns()))
		}
	})

	t.Run("errors", func(t *testing.T) {
		tests := []struct {
			name    string
			columns []Column
			want    error
		}{
			{"duplicate", []Column{{Name: "a"}, {Name: "a"}}, ErrDuplicateColumn},
			{"reserved", []Column{{Name: RowNumColumn}}, ErrReservedColumn},
			{"sort key", []Column{{Name: SortKeyColumn}}, ErrReservedColumn},
			{"unknown target", []Column{{Name: "a", Relations: map[string]Relation{"b": {}}}}, ErrUnknownColumn},
			{"self cycle", []Column{{Name: "a", Relations: map[string]Relation{"a": {}}}}, ErrRelationCycle},
			{"cycle", []Column{
				{Name: "a", Relations: map[string]Relation{"b": {}}},
				{Name: "b", Relations: map[string]Relation{"a": {}}},
			}, ErrRelationCycle},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := NewColumnMap(tt.columns)
				if !errors.Is(err, tt.want) {
					t.Errorf("got %v, want %v", err, tt.want)
				}
			})
		}
	})

	t.Run("empty name", func(t *testing.T) {
		if _, err := NewColumnMap([]Column{{}}); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("relation order", func(t *testing.T) {
		cm, err := NewColumnMap([]Column{
			{Name: "c"},
			{Name: "b", Relations: map[string]Relation{"c": {}}},
			{Name: "a", Relations: map[string]Relation{"b": {}}},
		})
		if err != nil {
			t.Fatal(err)
		}
		if got := cm.RelationSources(); !slices.Equal(got, []string{"a", "b"}) {
			t.Errorf("got %v", got)
		}
		if !cm.IsRelated("b") || !cm.IsRelated("c") || cm.IsRelated("a") {
			t.Error("unexpected related flags")
		}
		if got := cm.RelationTargets("a"); !slices.Equal(got, []string{"b"}) {
			t.Errorf("got %v", got)
		}
	})
}

func TestColumnsFromType(t *testing.T) {
	type person struct {
		Name  string   `json:"name" jsonschema:"title=Full name"`
		Age   float64  `json:"age,omitempty"`
		Admin bool     `json:"admin,omitempty"`
		Count *int     `json:"count,omitempty"`
		Notes []string `json:"notes,omitempty"`
	}
	cols, err := ColumnsFromType[person]()
	if err != nil {
		t.Fatal(err)
	}
	if len(cols) != 5 {
		t.Fatalf("expected 5 columns, got %d", len(cols))
	}
	if cols[0].Name != "name" || cols[0].Header != "Full name" {
		t.Errorf("unexpected first column %+v", cols[0])
	}
	if cols[0].Validation == nil || !cols[0].Validation.Required {
		t.Error("name should be required")
	}
	if cols[1].Validation == nil || cols[1].Validation.DataType != DataTypeNumber || cols[1].Validation.Required {
		t.Errorf("unexpected age validation %+v", cols[1].Validation)
	}
	if cols[2].Editor != "checkbox" || cols[2].Validation != nil {
		t.Errorf("unexpected admin column %+v", cols[2])
	}
	if cols[3].Name != "count" || cols[3].Validation == nil || cols[3].Validation.DataType != DataTypeNumber {
		t.Errorf("unexpected count column %+v", cols[3])
	}
	if cols[4].Sortable || cols[4].Editor != "" {
		t.Errorf("unexpected notes column %+v", cols[4])
	}
	if _, err := ColumnsFromType[int](); err == nil {
		t.Error("expected error for non-struct")
	}
}

func TestRecordsFromValues(t *testing.T) {
	type item struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	recs, err := RecordsFromValues([]item{{1, "a"}, {2, "b"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 || recs[1]["name"] != "b" || recs[1]["id"] != float64(2) {
		t.Errorf("unexpected records %v", recs)
	}
}
