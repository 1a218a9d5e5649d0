// Provides filter conditions over formatted cell values.

package grid

import (
	"fmt"
	"slices"
	"strings"
)

// ConditionFunc reports whether a formatted value passes a filter.
type ConditionFunc func(formatted string) bool

// Filter restricts the rows to those whose formatted value in ColumnName
// satisfies Condition.
type Filter struct {
	ColumnName string
	Condition  ConditionFunc
	// State describes the condition for display. Optional.
	State []FilterState
}

// FilterState describes one operator condition.
type FilterState struct {
	Code  FilterOp
	Value string
}

// FilterOp is a filter operator code.
type FilterOp string

// Filter operators.
const (
	FilterOpEquals       FilterOp = "eq"
	FilterOpNotEquals    FilterOp = "ne"
	FilterOpContains     FilterOp = "contain"
	FilterOpNotContains  FilterOp = "not_contain"
	FilterOpStartsWith   FilterOp = "start"
	FilterOpEndsWith     FilterOp = "end"
	FilterOpGreaterThan  FilterOp = "gt"
	FilterOpLessThan     FilterOp = "lt"
	FilterOpGreaterEqual FilterOp = "gte"
	FilterOpLessEqual    FilterOp = "lte"
	FilterOpIsEmpty      FilterOp = "empty"
	FilterOpIsNotEmpty   FilterOp = "not_empty"
)

// ParseFilterOp validates an operator code.
func ParseFilterOp(s string) (FilterOp, error) {
	op := FilterOp(s)
	switch op {
	case FilterOpEquals, FilterOpNotEquals, FilterOpContains, FilterOpNotContains,
		FilterOpStartsWith, FilterOpEndsWith, FilterOpGreaterThan, FilterOpLessThan,
		FilterOpGreaterEqual, FilterOpLessEqual, FilterOpIsEmpty, FilterOpIsNotEmpty:
		return op, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFilterOp, s)
}

// Condition returns the condition applying op with operand value.
//
// Comparisons are numeric when both sides convert to numbers, otherwise
// textual. Text matching is case-insensitive.
func Condition(op FilterOp, value string) ConditionFunc {
	switch op {
	case FilterOpIsEmpty:
		return func(s string) bool { return s == "" }
	case FilterOpIsNotEmpty:
		return func(s string) bool { return s != "" }
	case FilterOpEquals:
		return func(s string) bool { return compareFormatted(s, value) == 0 }
	case FilterOpNotEquals:
		return func(s string) bool { return compareFormatted(s, value) != 0 }
	case FilterOpGreaterThan:
		return func(s string) bool { return compareFormatted(s, value) > 0 }
	case FilterOpLessThan:
		return func(s string) bool { return compareFormatted(s, value) < 0 }
	case FilterOpGreaterEqual:
		return func(s string) bool { return compareFormatted(s, value) >= 0 }
	case FilterOpLessEqual:
		return func(s string) bool { return compareFormatted(s, value) <= 0 }
	case FilterOpContains:
		v := strings.ToLower(value)
		return func(s string) bool { return strings.Contains(strings.ToLower(s), v) }
	case FilterOpNotContains:
		v := strings.ToLower(value)
		return func(s string) bool { return !strings.Contains(strings.ToLower(s), v) }
	case FilterOpStartsWith:
		v := strings.ToLower(value)
		return func(s string) bool { return strings.HasPrefix(strings.ToLower(s), v) }
	case FilterOpEndsWith:
		v := strings.ToLower(value)
		return func(s string) bool { return strings.HasSuffix(strings.ToLower(s), v) }
	default:
		return func(string) bool { return false }
	}
}

// And returns a condition passing when every condition passes.
func And(conds ...ConditionFunc) ConditionFunc {
	return func(s string) bool {
		for _, c := range conds {
			if !c(s) {
				return false
			}
		}
		return true
	}
}

// Or returns a condition passing when at least one condition passes.
func Or(conds ...ConditionFunc) ConditionFunc {
	return func(s string) bool {
		for _, c := range conds {
			if c(s) {
				return true
			}
		}
		return false
	}
}

// OpFilter returns a filter on column built from operator states, combined
// with AND unless or is set.
func OpFilter(column string, or bool, states ...FilterState) Filter {
	conds := make([]ConditionFunc, len(states))
	for i, st := range states {
		conds[i] = Condition(st.Code, st.Value)
	}
	c := And(conds...)
	if or {
		c = Or(conds...)
	}
	return Filter{ColumnName: column, Condition: c, State: states}
}

func compareFormatted(a, b string) int {
	na, okA := convertToNumber(a)
	nb, okB := convertToNumber(b)
	if okA && okB {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		}
		return 0
	}
	return strings.Compare(a, b)
}

// matches runs the condition, treating a panic as a rejection.
func (f *Filter) matches(formatted string) (ok bool) {
	if f.Condition == nil {
		return true
	}
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return f.Condition(formatted)
}

// SetFilter sets the filter of a column, replacing any previous one, and
// returns to the first page.
func (s *Store) SetFilter(f Filter) {
	if _, ok := s.columns.Column(f.ColumnName); !ok || IsRowHeader(f.ColumnName) {
		s.log.Debug("filter on unknown column", "column", f.ColumnName)
		return
	}
	s.g.Batch(func() {
		filters := slices.DeleteFunc(slices.Clone(s.filters.Peek()), func(x Filter) bool {
			return x.ColumnName == f.ColumnName
		})
		s.filters.Set(append(filters, f))
		s.resetPage()
	})
}

// Unfilter removes the filter of a column, or every filter when column is
// empty.
func (s *Store) Unfilter(column string) {
	s.g.Batch(func() {
		filters := slices.DeleteFunc(slices.Clone(s.filters.Peek()), func(x Filter) bool {
			return column == "" || x.ColumnName == column
		})
		if len(filters) == 0 {
			filters = nil
		}
		s.filters.Set(filters)
		s.resetPage()
	})
}
