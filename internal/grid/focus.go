package grid

// focusState is the focused cell.
type focusState struct {
	key    RowKey
	column string
	set    bool
}

// FocusedCell identifies the focused cell and its current value.
type FocusedCell struct {
	RowKey     RowKey
	ColumnName string
	Value      any
}

// Focus focuses a cell. It returns false, leaving focus unchanged, when the
// row does not exist or the column is unknown or hidden.
func (s *Store) Focus(key any, column string) bool {
	r, ok := s.peekRow(key)
	if !ok {
		return false
	}
	if _, ok := s.columns.Column(column); !ok || s.hidden.Peek()[column] {
		return false
	}
	s.focus.Set(focusState{key: r.key, column: column, set: true})
	return true
}

// Blur clears the focus.
func (s *Store) Blur() {
	s.focus.Set(focusState{})
}

// FocusedCell returns the focused cell. ok is false when nothing is
// focused.
func (s *Store) FocusedCell() (FocusedCell, bool) {
	f := s.focus.Get()
	if !f.set {
		return FocusedCell{}, false
	}
	r, ok := s.Row(f.key)
	if !ok {
		return FocusedCell{}, false
	}
	return FocusedCell{RowKey: f.key, ColumnName: f.column, Value: r.Value(f.column)}, true
}

// focusFirstColumn focuses the first visible data column of a row.
func (s *Store) focusFirstColumn(key RowKey) {
	hidden := s.hidden.Peek()
	for _, c := range s.columns.DataColumns() {
		if !hidden[c.Name] {
			s.focus.Set(focusState{key: key, column: c.Name, set: true})
			return
		}
	}
}
