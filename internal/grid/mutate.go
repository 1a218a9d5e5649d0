// Provides the row mutation operations of a store.

package grid

import (
	"maps"
	"slices"
)

// AppendOptions configures AppendRow.
type AppendOptions struct {
	// At is the origin-order index to insert at. Nil appends at the end.
	At *int
	// Focus focuses the first visible column of the new row.
	Focus bool
	// ParentKey, in tree mode, appends the row as the last child of a row.
	ParentKey any
}

// peekRow looks a row up without subscribing the running computation.
func (s *Store) peekRow(key any) (r *Row, ok bool) {
	s.g.Untracked(func() { r, ok = s.Row(key) })
	return r, ok
}

func (s *Store) peekIndex(key RowKey) (i int, ok bool) {
	s.g.Untracked(func() { i, ok = s.keyIndex.Get()[key] })
	return i, ok
}

func (s *Store) rowsByKey() map[RowKey]*Row {
	rows := s.data.Peek()
	m := make(map[RowKey]*Row, len(rows))
	for _, r := range rows {
		m[r.key] = r
	}
	return m
}

// renumber assigns row numbers in display order.
func (s *Store) renumber() {
	var rows []*Row
	s.g.Untracked(func() { rows = s.sorted.Get() })
	for i, r := range rows {
		if r.peekAttrs().RowNum != i+1 {
			r.updateAttrs(func(a *Attributes) { a.RowNum = i + 1 })
		}
	}
}

// commit publishes a new origin-order row list.
func (s *Store) commit(rows []*Row) {
	if !s.TreeMode() {
		rebuildRowSpans(rows)
	}
	s.data.Set(rows)
	s.renumber()
	s.clampPage()
}

// ResetData replaces every row. Rows are recreated with new unique keys;
// the sort, filters and focus are cleared.
func (s *Store) ResetData(records []Record) {
	s.g.Batch(func() {
		for _, r := range s.data.Peek() {
			r.view.release()
		}
		s.filters.Set(nil)
		s.sortState.Set(initialSortState(!s.opts.ServerSort))
		s.focus.Set(focusState{})
		if po := s.page.Peek(); po.UseClient {
			po.Page = 1
			s.page.Set(po)
		}
		s.data.Set(s.ingest(records))
	})
}

// Clear removes every row.
func (s *Store) Clear() {
	s.ResetData(nil)
}

// AppendRow inserts a row built from rec. A nil rec creates a blank row.
func (s *Store) AppendRow(rec Record, opts AppendOptions) {
	if rec == nil {
		rec = s.emptyRecord()
	}
	s.insertRecords([]Record{rec}, opts)
}

// PrependRow inserts a row at the start of the origin order.
func (s *Store) PrependRow(rec Record, focus bool) {
	at := 0
	if rec == nil {
		rec = s.emptyRecord()
	}
	s.insertRecords([]Record{rec}, AppendOptions{At: &at, Focus: focus})
}

// AppendRows appends several rows at the end.
func (s *Store) AppendRows(recs []Record) {
	if len(recs) == 0 {
		return
	}
	s.insertRecords(recs, AppendOptions{})
}

func (s *Store) insertRecords(recs []Record, opts AppendOptions) {
	s.g.Batch(func() {
		rows := s.data.Peek()
		at := len(rows)
		if opts.At != nil {
			at = max(0, min(*opts.At, len(rows)))
		}
		var parent *Row
		if s.TreeMode() && opts.ParentKey != nil {
			p, ok := s.peekRow(opts.ParentKey)
			if !ok {
				s.log.Debug("append to unknown parent", "parent", opts.ParentKey)
				return
			}
			parent = p
			i, _ := s.peekIndex(p.key)
			var desc []*Row
			s.g.Untracked(func() { desc = s.Descendants(p.key) })
			at = i + 1 + len(desc)
		}
		newRows := s.buildRows(recs, at, rows)
		if parent != nil {
			t := *parent.tree
			t.Leaf = false
			t.ChildKeys = slices.Clone(t.ChildKeys)
			for _, r := range newRows {
				if r.tree.ParentKey == nil {
					r.tree.ParentKey = parent.key
					t.ChildKeys = append(t.ChildKeys, r.key)
				}
				r.tree.Depth += parent.tree.Depth + 1
			}
			parent.tree = &t
		}
		if !s.TreeMode() {
			attachRowSpans(rows, at, s.rowsByKey())
		}
		next := slices.Insert(slices.Clone(rows), at, newRows...)
		if at < len(rows) {
			for i, r := range next {
				r.sortKey = i
			}
		}
		s.commit(next)
		if s.opts.EagerViewRows {
			for _, r := range newRows {
				r.view.realize()
			}
		}
		if opts.Focus && len(newRows) > 0 {
			s.focusFirstColumn(newRows[0].key)
		}
	})
}

// buildRows creates the rows of recs to be inserted at index at of rows.
func (s *Store) buildRows(recs []Record, at int, rows []*Row) []*Row {
	var flat []flatRecord
	if s.TreeMode() {
		flat = flattenTree(recs)
	} else {
		flat = make([]flatRecord, len(recs))
		for i, rec := range recs {
			flat[i] = flatRecord{rec: rec, parent: -1}
		}
	}
	existing := s.rowsByKey()
	sortKey := at
	if at == len(rows) && at > 0 {
		sortKey = rows[at-1].sortKey + 1
	}
	out := make([]*Row, len(flat))
	for i, f := range flat {
		k := s.candidateKey(f.rec)
		if _, dup := existing[k]; k == nil || dup {
			if k != nil {
				s.log.Warn("row key reassigned", "key", k)
			}
			k = s.generateKey()
		}
		s.bumpNextKey(k)
		existing[k] = nil
		out[i] = s.newRow(f.rec, k, sortKey+i, at+i+1)
	}
	if s.TreeMode() {
		linkTree(out, flat)
	}
	return out
}

// SetRow replaces the values and attributes of a row, keeping its key and
// position. Unknown keys are ignored.
func (s *Store) SetRow(key any, rec Record) {
	r, ok := s.peekRow(key)
	if !ok {
		return
	}
	if rec == nil {
		rec = s.emptyRecord()
	}
	s.g.Batch(func() {
		for _, c := range s.columns.DataColumns() {
			v, ok := rec[c.Name]
			if !ok || v == nil {
				v = c.DefaultValue
			}
			r.setValue(s.g, c.Name, v)
		}
		for k, v := range rec {
			if _, ok := s.columns.Column(k); ok || isReservedField(k) {
				continue
			}
			r.setValue(s.g, k, v)
		}
		if a, ok := rec[fieldAttributes]; ok {
			prev := r.peekAttrs()
			next := newAttributes(attributeOptionsFrom(a), prev.RowNum, s.opts.Disabled)
			if s.TreeMode() {
				next.RowSpan = nil
			}
			r.attrs.Set(next)
			if !s.TreeMode() {
				rebuildRowSpans(s.data.Peek())
			}
		}
		if p, ok := rec[fieldDisabledPriority]; ok {
			r.priority.Set(disabledPriorityFrom(p))
		}
		s.renumber()
	})
}

// SetValue sets one cell. Setting CheckboxColumn checks or unchecks the
// row. Unknown keys are ignored.
func (s *Store) SetValue(key any, column string, value any) {
	r, ok := s.peekRow(key)
	if !ok {
		return
	}
	switch column {
	case RowNumColumn:
		return
	case CheckboxColumn:
		b, _ := value.(bool)
		s.setChecked(r, b)
		return
	}
	s.g.Batch(func() {
		r.setValue(s.g, column, value)
		s.renumber()
	})
}

// RemoveRow removes a row, and its descendants in tree mode. Unknown keys
// are ignored.
func (s *Store) RemoveRow(key any) {
	r, ok := s.peekRow(key)
	if !ok {
		return
	}
	s.removeRows([]*Row{r})
}

// RemoveCheckedRows removes every checked row.
func (s *Store) RemoveCheckedRows() {
	var checked []*Row
	for _, r := range s.data.Peek() {
		if r.peekAttrs().Checked {
			checked = append(checked, r)
		}
	}
	s.removeRows(checked)
}

func (s *Store) removeRows(targets []*Row) {
	if len(targets) == 0 {
		return
	}
	s.g.Batch(func() {
		removed := map[RowKey]bool{}
		for _, r := range targets {
			removed[r.key] = true
			if s.TreeMode() {
				var desc []*Row
				s.g.Untracked(func() { desc = s.Descendants(r.key) })
				for _, d := range desc {
					removed[d.key] = true
				}
				s.detachFromParent(r)
			}
		}
		rows := slices.Clone(s.data.Peek())
		if !s.TreeMode() {
			byKey := s.rowsByKey()
			// Detach one row at a time so each sees the spans left by the
			// previous removal.
			for i := 0; i < len(rows); {
				if !removed[rows[i].key] {
					i++
					continue
				}
				detachRowSpans(rows, i, byKey)
				rows[i].view.release()
				delete(byKey, rows[i].key)
				rows = slices.Delete(rows, i, i+1)
				rebuildRowSpans(rows)
			}
		} else {
			rows = slices.DeleteFunc(rows, func(r *Row) bool {
				if removed[r.key] {
					r.view.release()
					return true
				}
				return false
			})
		}
		if f := s.focus.Peek(); f.set && removed[f.key] {
			s.focus.Set(focusState{})
		}
		s.commit(rows)
	})
}

// MoveRow moves a row to an origin-order index. It is ignored while the rows
// are sorted or filtered, and in tree mode.
func (s *Store) MoveRow(key any, index int) {
	r, ok := s.peekRow(key)
	if !ok || s.TreeMode() || !s.sortState.Peek().inOriginOrder() || len(s.filters.Peek()) > 0 {
		return
	}
	i, _ := s.peekIndex(r.key)
	rows := slices.Clone(s.data.Peek())
	index = max(0, min(index, len(rows)-1))
	if i == index {
		return
	}
	s.g.Batch(func() {
		byKey := s.rowsByKey()
		detachRowSpans(rows, i, byKey)
		rows = slices.Delete(rows, i, i+1)
		rebuildRowSpans(rows)
		attachRowSpans(rows, index, byKey)
		rows = slices.Insert(rows, index, r)
		for j, x := range rows {
			x.sortKey = j
		}
		// The moved row keeps no span of its own old group.
		r.updateAttrs(func(a *Attributes) { a.RowSpan = nil })
		s.commit(rows)
	})
}

// Check checks a row.
func (s *Store) Check(key any) {
	if r, ok := s.peekRow(key); ok {
		s.setChecked(r, true)
	}
}

// Uncheck unchecks a row.
func (s *Store) Uncheck(key any) {
	if r, ok := s.peekRow(key); ok {
		s.setChecked(r, false)
	}
}

// CheckAll checks every filtered row whose checkbox is enabled.
func (s *Store) CheckAll() {
	s.setCheckedAll(true)
}

// UncheckAll unchecks every filtered row whose checkbox is enabled.
func (s *Store) UncheckAll() {
	s.setCheckedAll(false)
}

func (s *Store) setCheckedAll(checked bool) {
	var rows []*Row
	s.g.Untracked(func() { rows = s.filtered.Get() })
	s.g.Batch(func() {
		for _, r := range rows {
			if !r.peekAttrs().CheckDisabled {
				s.setChecked(r, checked)
			}
		}
	})
}

func (s *Store) setChecked(r *Row, checked bool) {
	r.updateAttrs(func(a *Attributes) { a.Checked = checked })
}

// DisableRow disables a row's cells and, with withCheckbox, its checkbox.
func (s *Store) DisableRow(key any, withCheckbox bool) {
	s.setRowDisabled(key, true, withCheckbox)
}

// EnableRow enables a row's cells and, with withCheckbox, its checkbox.
func (s *Store) EnableRow(key any, withCheckbox bool) {
	s.setRowDisabled(key, false, withCheckbox)
}

func (s *Store) setRowDisabled(key any, disabled, withCheckbox bool) {
	r, ok := s.peekRow(key)
	if !ok {
		return
	}
	r.updateAttrs(func(a *Attributes) {
		a.Disabled = disabled
		if withCheckbox {
			a.CheckDisabled = disabled
		}
	})
}

// SetDisabledPriority sets which disabled flag governs a cell. An empty
// priority removes the override.
func (s *Store) SetDisabledPriority(key any, column string, p DisabledPriority) {
	r, ok := s.peekRow(key)
	if !ok {
		return
	}
	m := maps.Clone(r.priority.Peek())
	if m == nil {
		m = map[string]DisabledPriority{}
	}
	if p == PriorityColumn || p == PriorityRow {
		m[column] = p
	} else {
		delete(m, column)
	}
	r.priority.Set(m)
}

// AddRowClassName adds a class name to a row.
func (s *Store) AddRowClassName(key any, name string) {
	if r, ok := s.peekRow(key); ok {
		r.updateAttrs(func(a *Attributes) {
			if !slices.Contains(a.ClassName.Row, name) {
				a.ClassName.Row = append(a.ClassName.Row, name)
			}
		})
	}
}

// RemoveRowClassName removes a class name from a row.
func (s *Store) RemoveRowClassName(key any, name string) {
	if r, ok := s.peekRow(key); ok {
		r.updateAttrs(func(a *Attributes) {
			a.ClassName.Row = slices.DeleteFunc(a.ClassName.Row, func(x string) bool { return x == name })
		})
	}
}

// AddCellClassName adds a class name to one cell.
func (s *Store) AddCellClassName(key any, column, name string) {
	if r, ok := s.peekRow(key); ok {
		r.updateAttrs(func(a *Attributes) {
			if !slices.Contains(a.ClassName.Column[column], name) {
				a.ClassName.Column[column] = append(a.ClassName.Column[column], name)
			}
		})
	}
}

// RemoveCellClassName removes a class name from one cell.
func (s *Store) RemoveCellClassName(key any, column, name string) {
	if r, ok := s.peekRow(key); ok {
		r.updateAttrs(func(a *Attributes) {
			a.ClassName.Column[column] = slices.DeleteFunc(a.ClassName.Column[column], func(x string) bool { return x == name })
			if len(a.ClassName.Column[column]) == 0 {
				delete(a.ClassName.Column, column)
			}
		})
	}
}

// SetColumnHidden hides or shows a column. Hiding a column unsorts it and
// blurs a cell focused in it.
func (s *Store) SetColumnHidden(column string, hidden bool) {
	if _, ok := s.columns.Column(column); !ok {
		return
	}
	s.g.Batch(func() {
		m := maps.Clone(s.hidden.Peek())
		if hidden {
			m[column] = true
		} else {
			delete(m, column)
		}
		s.hidden.Set(m)
		if !hidden {
			return
		}
		if s.sortState.Peek().Index(column) >= 0 {
			s.sortState.Set(s.sortState.Peek().withoutSort(column))
			s.renumber()
		}
		if f := s.focus.Peek(); f.set && f.column == column {
			s.focus.Set(focusState{})
		}
	})
}
