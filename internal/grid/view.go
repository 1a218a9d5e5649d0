// Provides the derived sorted, filtered and paged views of a store.

package grid

import "github.com/maruel/gridstore/internal/reactive"

// initViews creates the view memos. They recompute on the next read after
// one of their inputs changed.
func (s *Store) initViews() {
	s.keyIndex = reactive.NewMemo(s.g, func() map[RowKey]int {
		rows := s.data.Get()
		m := make(map[RowKey]int, len(rows))
		for i, r := range rows {
			m[r.key] = i
		}
		return m
	})
	s.sorted = reactive.NewMemo(s.g, func() []*Row {
		rows := s.data.Get()
		st := s.sortState.Get()
		if !st.UseClient || s.TreeMode() {
			return rows
		}
		return sortRows(rows, st)
	})
	s.filtered = reactive.NewMemo(s.g, s.computeFiltered)
	s.filteredIndex = reactive.NewMemo(s.g, func() []int {
		idx := s.keyIndex.Get()
		rows := s.filtered.Get()
		out := make([]int, len(rows))
		for i, r := range rows {
			out[i] = idx[r.key]
		}
		return out
	})
	s.filteredView = reactive.NewMemo(s.g, func() []*ViewRow {
		rows := s.filtered.Get()
		out := make([]*ViewRow, len(rows))
		for i, r := range rows {
			out[i] = r.view
		}
		return out
	})
	s.pageRange = reactive.NewMemo(s.g, func() [2]int {
		return pageRowRange(s.page.Get(), len(s.filtered.Get()))
	})
}

// computeFiltered applies every filter to the sorted rows. In scroll mode
// only the loaded pages are filtered; rows that were not loaded yet never
// match.
func (s *Store) computeFiltered() []*Row {
	rows := s.sorted.Get()
	filters := s.filters.Get()
	if len(filters) == 0 {
		return rows
	}
	if po := s.page.Get(); po.UseClient && po.Type == PageScroll {
		rows = rows[:min(po.Page*po.PerPage, len(rows))]
	}
	out := make([]*Row, 0, len(rows))
	for _, r := range rows {
		if s.matchesFilters(r, filters) {
			out = append(out, r)
		}
	}
	return out
}

func (s *Store) matchesFilters(r *Row, filters []Filter) bool {
	for i := range filters {
		f := &filters[i]
		col, ok := s.columns.Column(f.ColumnName)
		if !ok {
			continue
		}
		if !f.matches(s.derivedCell(r, col).FormattedValue) {
			return false
		}
	}
	return true
}

// pageRowRange returns the [start, end) window of the filtered rows shown
// by po.
func pageRowRange(po PageOptions, n int) [2]int {
	if !po.UseClient {
		return [2]int{0, n}
	}
	if po.Type == PageScroll {
		return [2]int{0, min(po.Page*po.PerPage, n)}
	}
	start := min((po.Page-1)*po.PerPage, n)
	end := min(po.Page*po.PerPage, n)
	return [2]int{start, end}
}

// FilteredRawData returns the rows passing every filter, in display order.
func (s *Store) FilteredRawData() []*Row {
	return append([]*Row(nil), s.filtered.Get()...)
}

// FilteredIndex returns, for each filtered row, its position in origin
// order.
func (s *Store) FilteredIndex() []int {
	return append([]int(nil), s.filteredIndex.Get()...)
}

// FilteredViewData returns the view rows of the filtered rows.
func (s *Store) FilteredViewData() []*ViewRow {
	return append([]*ViewRow(nil), s.filteredView.Get()...)
}

// PageRowRange returns the [start, end) window of FilteredViewData shown
// on the current page.
func (s *Store) PageRowRange() (start, end int) {
	r := s.pageRange.Get()
	return r[0], r[1]
}

// PageRows returns the view rows of the current page.
func (s *Store) PageRows() []*ViewRow {
	start, end := s.PageRowRange()
	return append([]*ViewRow(nil), s.filteredView.Get()[start:end]...)
}
