// Provides sort state transitions and the composite row comparator.

package grid

import (
	"cmp"
	"slices"
)

// SortedColumn is one entry of the sort state.
type SortedColumn struct {
	ColumnName string `json:"columnName"`
	Ascending  bool   `json:"ascending"`
}

// SortState is the active sort. With no column sorted it holds a single
// ascending SortKeyColumn entry, the origin order.
type SortState struct {
	UseClient bool           `json:"useClient"`
	Columns   []SortedColumn `json:"columns"`
}

// Sorted reports whether a column other than the origin order is active.
func (s SortState) Sorted() bool {
	return len(s.Columns) > 0 && s.Columns[0].ColumnName != SortKeyColumn
}

// inOriginOrder reports whether rows are shown in ascending origin order.
func (s SortState) inOriginOrder() bool {
	return len(s.Columns) == 1 && s.Columns[0].ColumnName == SortKeyColumn && s.Columns[0].Ascending
}

// Index returns the position of a column in the sort state or -1.
func (s SortState) Index(name string) int {
	return slices.IndexFunc(s.Columns, func(c SortedColumn) bool { return c.ColumnName == name })
}

func initialSortState(useClient bool) SortState {
	return SortState{UseClient: useClient, Columns: []SortedColumn{{ColumnName: SortKeyColumn, Ascending: true}}}
}

func sortStateEqual(a, b SortState) bool {
	return a.UseClient == b.UseClient && slices.Equal(a.Columns, b.Columns)
}

// withSort returns the state after sorting name in the given direction.
// Without multiple the column replaces the current sort; with it the column
// is updated in place or ranked after the active columns.
func (s SortState) withSort(name string, ascending, multiple bool) SortState {
	entry := SortedColumn{ColumnName: name, Ascending: ascending}
	if name == SortKeyColumn || !multiple || !s.Sorted() {
		s.Columns = []SortedColumn{entry}
		return s
	}
	cols := slices.Clone(s.Columns)
	if i := s.Index(name); i >= 0 {
		cols[i] = entry
	} else {
		cols = append(cols, entry)
	}
	s.Columns = cols
	return s
}

// withoutSort returns the state after removing name, or every column when
// name is empty. It falls back to the origin order.
func (s SortState) withoutSort(name string) SortState {
	cols := slices.DeleteFunc(slices.Clone(s.Columns), func(c SortedColumn) bool {
		return name == "" || c.ColumnName == name
	})
	if len(cols) == 0 {
		return initialSortState(s.UseClient)
	}
	s.Columns = cols
	return s
}

// toggled returns the next state of the sort button cycle for col and
// whether the column must be unsorted instead.
//
// An inactive column sorts in its default direction. An active column flips
// direction, and with cancelable, flipping back to the default unsorts it.
func (s SortState) toggled(col *Column, multiple, cancelable bool) (next SortState, unsort bool) {
	def := col.DefaultAscending()
	i := s.Index(col.Name)
	if i < 0 {
		return s.withSort(col.Name, def, multiple), false
	}
	asc := !s.Columns[i].Ascending
	if cancelable && asc == def {
		return s, true
	}
	return s.withSort(col.Name, asc, multiple), false
}

// sortRows returns rows ordered by the sort state. rows is in origin order
// and is not modified. Ties keep origin order.
func sortRows(rows []*Row, st SortState) []*Row {
	if !st.Sorted() {
		if len(st.Columns) == 1 && !st.Columns[0].Ascending {
			out := slices.Clone(rows)
			slices.Reverse(out)
			return out
		}
		return rows
	}
	out := slices.Clone(rows)
	slices.SortStableFunc(out, func(a, b *Row) int {
		for _, c := range st.Columns {
			var r int
			if c.ColumnName == SortKeyColumn {
				r = cmp.Compare(a.sortKey, b.sortKey)
			} else {
				r = compareValues(a.Value(c.ColumnName), b.Value(c.ColumnName))
			}
			if r != 0 {
				if !c.Ascending {
					return -r
				}
				return r
			}
		}
		return 0
	})
	return out
}

// sortable reports whether a column can be sorted by the client.
func (s *Store) sortable(name string) (*Column, bool) {
	if name == SortKeyColumn {
		return nil, !s.TreeMode()
	}
	c, ok := s.columns.Column(name)
	if !ok || !c.Sortable || s.hidden.Peek()[name] || s.TreeMode() {
		s.log.Debug("column not sortable", "column", name)
		return nil, false
	}
	return c, true
}

// Sort sorts by a column. With multiple the column is added to the active
// sort instead of replacing it. Columns that are not sortable are ignored.
func (s *Store) Sort(column string, ascending, multiple bool) {
	if _, ok := s.sortable(column); !ok {
		return
	}
	s.g.Batch(func() {
		s.sortState.Set(s.sortState.Peek().withSort(column, ascending, multiple))
		s.renumber()
	})
}

// ToggleSort advances a column through the sort button cycle: unsorted,
// default direction, opposite direction, unsorted.
func (s *Store) ToggleSort(column string, multiple bool) {
	c, ok := s.sortable(column)
	if !ok || c == nil {
		return
	}
	s.g.Batch(func() {
		next, unsort := s.sortState.Peek().toggled(c, multiple, true)
		if unsort {
			next = s.sortState.Peek().withoutSort(column)
		}
		s.sortState.Set(next)
		s.renumber()
	})
}

// Unsort removes a column from the sort, or every column when column is
// empty. Without any sorted column the rows return to origin order.
func (s *Store) Unsort(column string) {
	s.g.Batch(func() {
		s.sortState.Set(s.sortState.Peek().withoutSort(column))
		s.renumber()
	})
}
