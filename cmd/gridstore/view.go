package main

import (
	"fmt"
	"strings"

	"github.com/maruel/gridstore/internal/grid"
)

// view is the sort, filters and page requested on the command line. It is
// reapplied after every data reset.
type view struct {
	sorts   []grid.SortedColumn
	filters []grid.Filter
	page    int
}

// parseView parses -filter and -sort flags. Several filters on one column
// must all match.
func parseView(filters, sorts []string, page int) (*view, error) {
	v := &view{page: page}
	for _, s := range sorts {
		name, dir, _ := strings.Cut(s, ":")
		if name == "" {
			return nil, fmt.Errorf("invalid -sort %q", s)
		}
		switch dir {
		case "", "asc":
			v.sorts = append(v.sorts, grid.SortedColumn{ColumnName: name, Ascending: true})
		case "desc":
			v.sorts = append(v.sorts, grid.SortedColumn{ColumnName: name})
		default:
			return nil, fmt.Errorf("invalid -sort %q: direction must be asc or desc", s)
		}
	}
	var order []string
	states := map[string][]grid.FilterState{}
	for _, f := range filters {
		parts := strings.SplitN(f, ":", 3)
		if len(parts) < 2 || parts[0] == "" {
			return nil, fmt.Errorf("invalid -filter %q: want column:op:value", f)
		}
		op, err := grid.ParseFilterOp(parts[1])
		if err != nil {
			return nil, fmt.Errorf("invalid -filter %q: %w", f, err)
		}
		st := grid.FilterState{Code: op}
		if len(parts) == 3 {
			st.Value = parts[2]
		}
		if _, ok := states[parts[0]]; !ok {
			order = append(order, parts[0])
		}
		states[parts[0]] = append(states[parts[0]], st)
	}
	for _, col := range order {
		v.filters = append(v.filters, grid.OpFilter(col, false, states[col]...))
	}
	return v, nil
}

// apply sets the sort, the filters and then the page, since filtering
// returns to the first page.
func (v *view) apply(s *grid.Store) {
	s.Graph().Batch(func() {
		for i, c := range v.sorts {
			s.Sort(c.ColumnName, c.Ascending, i > 0)
		}
		for _, f := range v.filters {
			s.SetFilter(f)
		}
		s.SetPage(v.page)
	})
}
