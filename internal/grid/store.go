package grid

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/maruel/gridstore/internal/reactive"
)

// PageType is the client paging mode.
type PageType string

const (
	// PagePagination shows one page at a time.
	PagePagination PageType = "pagination"
	// PageScroll shows every loaded page; pages load as the user scrolls.
	PageScroll PageType = "scroll"
)

// DefaultPerPage is used when PageOptions.PerPage is not set.
const DefaultPerPage = 20

// PageOptions defines the visible window over the filtered rows.
type PageOptions struct {
	UseClient  bool     `json:"useClient" yaml:"useClient" toml:"useClient"`
	Page       int      `json:"page,omitempty" yaml:"page,omitempty" toml:"page,omitempty"`
	PerPage    int      `json:"perPage,omitempty" yaml:"perPage,omitempty" toml:"perPage,omitempty"`
	Type       PageType `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty" jsonschema:"enum=pagination,enum=scroll"`
	TotalCount int      `json:"totalCount,omitempty" yaml:"totalCount,omitempty" toml:"totalCount,omitempty"`
}

func (p PageOptions) normalized() PageOptions {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.Type == "" {
		p.Type = PagePagination
	}
	return p
}

// Options configures a Store.
type Options struct {
	Columns []Column
	// RowHeaders lists RowNumColumn and/or CheckboxColumn.
	RowHeaders []string
	// KeyColumnName names the column whose values become row keys.
	KeyColumnName string
	// TreeColumnName enables tree mode: records may nest "_children".
	TreeColumnName string
	// PageOptions enables paging. Nil shows every row.
	PageOptions *PageOptions
	// ServerSort tracks the sort state without reordering rows.
	ServerSort bool
	// Disabled is the default disabled attribute of every row.
	Disabled bool
	// EagerViewRows realizes every view row at ingestion.
	EagerViewRows bool
	// Graph is the reactive graph to register on. Nil creates one.
	Graph *reactive.Graph
	// Logger receives diagnostics. Nil uses slog.Default().
	Logger *slog.Logger
}

// Store is the reactive data engine of a grid.
//
// A Store is not safe for concurrent use.
type Store struct {
	g       *reactive.Graph
	log     *slog.Logger
	columns *ColumnMap
	opts    Options

	// batch is the identity token of the current data set.
	batch   string
	nextKey int64

	// data holds the rows in origin order.
	data      *reactive.Value[[]*Row]
	sortState *reactive.Value[SortState]
	filters   *reactive.Value[[]Filter]
	page      *reactive.Value[PageOptions]
	hidden    *reactive.Value[map[string]bool]
	focus     *reactive.Value[focusState]

	keyIndex      *reactive.Memo[map[RowKey]int]
	sorted        *reactive.Memo[[]*Row]
	filtered      *reactive.Memo[[]*Row]
	filteredIndex *reactive.Memo[[]int]
	filteredView  *reactive.Memo[[]*ViewRow]
	pageRange     *reactive.Memo[[2]int]
}

// New validates opts and ingests records.
func New(records []Record, opts Options) (*Store, error) {
	cm, err := NewColumnMap(opts.Columns, opts.RowHeaders...)
	if err != nil {
		return nil, err
	}
	for _, name := range []string{opts.KeyColumnName, opts.TreeColumnName} {
		if name == "" {
			continue
		}
		if c, ok := cm.Column(name); !ok || IsRowHeader(c.Name) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
		}
	}
	s := &Store{g: opts.Graph, log: opts.Logger, columns: cm, opts: opts}
	if s.log == nil {
		s.log = slog.Default()
	}
	if s.g == nil {
		s.g = reactive.NewGraph()
		s.g.SetLogger(s.log)
	}
	var po PageOptions
	if opts.PageOptions != nil {
		po = opts.PageOptions.normalized()
	}
	hidden := map[string]bool{}
	for _, c := range cm.DataColumns() {
		if c.Hidden {
			hidden[c.Name] = true
		}
	}
	s.data = reactive.NewValue[[]*Row](s.g, nil)
	s.sortState = reactive.NewValueFunc(s.g, initialSortState(!opts.ServerSort), sortStateEqual)
	s.filters = reactive.NewValue[[]Filter](s.g, nil)
	s.page = reactive.NewComparableValue(s.g, po)
	s.hidden = reactive.NewValueFunc(s.g, hidden, maps.Equal[map[string]bool, map[string]bool])
	s.focus = reactive.NewComparableValue(s.g, focusState{})
	s.initViews()
	s.g.Batch(func() {
		s.data.Set(s.ingest(records))
	})
	return s, nil
}

// Graph returns the graph the store registers on.
func (s *Store) Graph() *reactive.Graph { return s.g }

// Columns returns the column configuration.
func (s *Store) Columns() *ColumnMap { return s.columns }

// VisibleColumns returns the columns that are not hidden, row headers first.
func (s *Store) VisibleColumns() []*Column {
	hidden := s.hidden.Get()
	return slices.DeleteFunc(slices.Clone(s.columns.Columns()), func(c *Column) bool {
		return hidden[c.Name]
	})
}

// IsHidden reports whether a column is hidden.
func (s *Store) IsHidden(name string) bool {
	return s.hidden.Get()[name]
}

// TreeMode reports whether the store holds hierarchical data.
func (s *Store) TreeMode() bool {
	return s.opts.TreeColumnName != ""
}

// Row returns the row with the given key.
func (s *Store) Row(key any) (*Row, bool) {
	i, ok := s.keyIndex.Get()[normalizeKey(key)]
	if !ok {
		return nil, false
	}
	return s.data.Get()[i], true
}

// ViewRow returns the view row of the row with the given key.
func (s *Store) ViewRow(key any) (*ViewRow, bool) {
	r, ok := s.Row(key)
	if !ok {
		return nil, false
	}
	return r.view, true
}

// RowAt returns the row at a display position, after sorting and
// filtering.
func (s *Store) RowAt(i int) (*Row, bool) {
	rows := s.filtered.Get()
	if i < 0 || i >= len(rows) {
		return nil, false
	}
	return rows[i], true
}

// IndexOfRow returns the display position of a row or -1.
func (s *Store) IndexOfRow(key any) int {
	k := normalizeKey(key)
	return slices.IndexFunc(s.filtered.Get(), func(r *Row) bool { return r.key == k })
}

// Rows returns every row in display order, ignoring filters.
func (s *Store) Rows() []*Row {
	return slices.Clone(s.sorted.Get())
}

// RawData returns every row in origin order.
func (s *Store) RawData() []*Row {
	return slices.Clone(s.data.Get())
}

// RowCount returns the number of rows, ignoring filters.
func (s *Store) RowCount() int {
	return len(s.data.Get())
}

// FindRows returns the rows whose values equal every entry of match, in
// display order.
func (s *Store) FindRows(match map[string]any) []*Row {
	return s.FindRowsFunc(func(r *Row) bool {
		for k, v := range match {
			if !valuesEqual(r.Value(k), v) {
				return false
			}
		}
		return true
	})
}

// FindRowsFunc returns the rows for which pred returns true, in display
// order.
func (s *Store) FindRowsFunc(pred func(r *Row) bool) []*Row {
	var out []*Row
	for _, r := range s.sorted.Get() {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// CheckedRows returns the checked rows in display order.
func (s *Store) CheckedRows() []*Row {
	return s.FindRowsFunc(func(r *Row) bool { return r.attrs.Get().Checked })
}

// SortState returns a copy of the sort state.
func (s *Store) SortState() SortState {
	st := s.sortState.Get()
	st.Columns = slices.Clone(st.Columns)
	return st
}

// Filters returns the active filters.
func (s *Store) Filters() []Filter {
	return slices.Clone(s.filters.Get())
}

// PageOptions returns the paging state. With client paging TotalCount is
// the number of filtered rows.
func (s *Store) PageOptions() PageOptions {
	po := s.page.Get()
	if po.UseClient {
		po.TotalCount = len(s.filtered.Get())
	}
	return po
}

// RowSpan returns a row's span descriptor for a column. Spans only apply
// while rows are shown in origin order.
func (s *Store) RowSpan(key any, column string) (RowSpan, bool) {
	if !s.sortState.Get().inOriginOrder() || len(s.filters.Get()) > 0 {
		return RowSpan{}, false
	}
	r, ok := s.Row(key)
	if !ok {
		return RowSpan{}, false
	}
	span, ok := r.spans.Get()[column]
	return span, ok
}

// InvalidRow lists the invalid cells of one row.
type InvalidRow struct {
	RowKey RowKey
	Errors map[string][]ValidationType
}

// Validate returns the rows holding at least one invalid cell, in display
// order.
func (s *Store) Validate() []InvalidRow {
	var out []InvalidRow
	for _, r := range s.sorted.Get() {
		var errs map[string][]ValidationType
		for _, col := range s.columns.DataColumns() {
			if c := r.view.Cell(col.Name); c.Invalid() {
				if errs == nil {
					errs = map[string][]ValidationType{}
				}
				errs[col.Name] = c.InvalidStates
			}
		}
		if errs != nil {
			out = append(out, InvalidRow{RowKey: r.key, Errors: errs})
		}
	}
	return out
}
