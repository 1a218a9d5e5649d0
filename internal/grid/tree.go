// Flattens hierarchical records and links the resulting rows.

package grid

import "slices"

// flatRecord is a record placed in depth-first order.
type flatRecord struct {
	rec      Record
	parent   int
	depth    int
	leaf     bool
	children []int
}

// flattenTree lists records depth-first, parents before their children.
func flattenTree(records []Record) []flatRecord {
	var out []flatRecord
	var walk func(recs []Record, parent, depth int)
	walk = func(recs []Record, parent, depth int) {
		for _, rec := range recs {
			i := len(out)
			children, hasChildren := childRecords(rec[fieldChildren])
			out = append(out, flatRecord{rec: rec, parent: parent, depth: depth, leaf: !hasChildren})
			if parent >= 0 {
				out[parent].children = append(out[parent].children, i)
			}
			walk(children, i, depth+1)
		}
	}
	walk(records, -1, 0)
	return out
}

// childRecords decodes a "_children" field.
func childRecords(v any) ([]Record, bool) {
	switch x := v.(type) {
	case nil:
		return nil, false
	case []Record:
		return x, true
	case []map[string]any:
		out := make([]Record, len(x))
		for i, m := range x {
			out[i] = m
		}
		return out, true
	case []any:
		out := make([]Record, 0, len(x))
		for _, m := range x {
			switch m := m.(type) {
			case map[string]any:
				out = append(out, m)
			case Record:
				out = append(out, m)
			}
		}
		return out, true
	}
	return nil, true
}

// linkTree sets the tree links of rows built from flat.
func linkTree(rows []*Row, flat []flatRecord) {
	for i, f := range flat {
		t := &TreeInfo{Depth: f.depth, Leaf: f.leaf}
		if f.parent >= 0 {
			t.ParentKey = rows[f.parent].key
		}
		for _, c := range f.children {
			t.ChildKeys = append(t.ChildKeys, rows[c].key)
		}
		rows[i].tree = t
	}
}

// Children returns the direct children of a row in tree mode.
func (s *Store) Children(key any) []*Row {
	r, ok := s.Row(key)
	if !ok || r.tree == nil {
		return nil
	}
	out := make([]*Row, 0, len(r.tree.ChildKeys))
	for _, k := range r.tree.ChildKeys {
		if c, ok := s.Row(k); ok {
			out = append(out, c)
		}
	}
	return out
}

// Parent returns the parent of a row in tree mode.
func (s *Store) Parent(key any) (*Row, bool) {
	r, ok := s.Row(key)
	if !ok || r.tree == nil || r.tree.ParentKey == nil {
		return nil, false
	}
	return s.Row(r.tree.ParentKey)
}

// Descendants returns every descendant of a row, depth-first.
func (s *Store) Descendants(key any) []*Row {
	var out []*Row
	for _, c := range s.Children(key) {
		out = append(out, c)
		out = append(out, s.Descendants(c.key)...)
	}
	return out
}

// detachFromParent removes key from its parent's children.
func (s *Store) detachFromParent(r *Row) {
	if r.tree == nil || r.tree.ParentKey == nil {
		return
	}
	p, ok := s.Row(r.tree.ParentKey)
	if !ok || p.tree == nil {
		return
	}
	t := *p.tree
	t.ChildKeys = slices.DeleteFunc(slices.Clone(t.ChildKeys), func(k RowKey) bool { return k == r.key })
	p.tree = &t
}
