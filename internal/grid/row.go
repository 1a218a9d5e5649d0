package grid

import (
	"maps"
	"reflect"
	"slices"

	"github.com/maruel/gridstore/internal/reactive"
)

// RowKey identifies a row. Keys are normalized: whole numbers are int64,
// strings stay strings.
type RowKey any

// Record is one input record. Besides column values it may carry the
// reserved fields "rowKey", "sortKey", "_attributes", "_disabledPriority"
// and, in tree mode, "_children". Records are never modified by the store.
type Record map[string]any

// Reserved record fields.
const (
	fieldRowKey           = "rowKey"
	fieldSortKey          = "sortKey"
	fieldAttributes       = "_attributes"
	fieldDisabledPriority = "_disabledPriority"
	fieldChildren         = "_children"
)

func isReservedField(name string) bool {
	switch name {
	case fieldRowKey, fieldSortKey, fieldAttributes, fieldDisabledPriority, fieldChildren:
		return true
	}
	return false
}

// DisabledPriority selects which disabled flag governs one cell.
type DisabledPriority string

const (
	// PriorityColumn makes the column's disabled flag win.
	PriorityColumn DisabledPriority = "COLUMN"
	// PriorityRow makes the row's disabled flag win.
	PriorityRow DisabledPriority = "ROW"
)

// RowSpan describes a row's membership in a merged cell group for one column.
type RowSpan struct {
	MainRow    bool
	MainRowKey RowKey
	// Count is the span width on the main row and the negative distance from
	// the main row on sub rows.
	Count     int
	SpanCount int
}

// TreeInfo links a row into the hierarchy in tree mode.
type TreeInfo struct {
	ParentKey RowKey
	ChildKeys []RowKey
	Depth     int
	// Leaf is set when the record had no "_children" field.
	Leaf bool
}

// Row is one record with stable identity.
//
// Reads through the accessors are tracked by the store's graph, so a
// computation or memo reading a row re-runs when the row changes.
type Row struct {
	key       RowKey
	sortKey   int
	uniqueKey string
	values    map[string]*reactive.Value[any]
	// names keeps the record's field order: data columns first, then extra fields.
	names     []string
	attrs     *reactive.Value[Attributes]
	priority  *reactive.Value[map[string]DisabledPriority]
	listItems map[string]*reactive.Value[[]ListItem]
	spans     *reactive.Value[map[string]RowSpan]
	tree      *TreeInfo
	view      *ViewRow
}

func newRow(g *reactive.Graph, key RowKey, sortKey int, uniqueKey string, data map[string]any, names []string, attrs Attributes, priority map[string]DisabledPriority, related []string) *Row {
	r := &Row{
		key:       key,
		sortKey:   sortKey,
		uniqueKey: uniqueKey,
		values:    make(map[string]*reactive.Value[any], len(names)),
		names:     names,
		attrs:     reactive.NewValueFunc(g, attrs, attributesEqual),
		priority:  reactive.NewValueFunc(g, priority, maps.Equal[map[string]DisabledPriority, map[string]DisabledPriority]),
		listItems: map[string]*reactive.Value[[]ListItem]{},
		spans:     reactive.NewValueFunc(g, map[string]RowSpan{}, maps.Equal[map[string]RowSpan, map[string]RowSpan]),
	}
	for _, name := range names {
		r.values[name] = reactive.NewValueFunc(g, data[name], valuesEqual)
	}
	for _, name := range related {
		r.listItems[name] = reactive.NewValueFunc[[]ListItem](g, nil, listItemsEqual)
	}
	return r
}

// Key returns the row key.
func (r *Row) Key() RowKey { return r.key }

// SortKey returns the origin-order position of the row.
func (r *Row) SortKey() int { return r.sortKey }

// UniqueKey returns the row's identity token, renewed by every data reset.
func (r *Row) UniqueKey() string { return r.uniqueKey }

// Value returns the raw value of a column. Reserved row header columns
// return the row number and the checked state.
func (r *Row) Value(name string) any {
	switch name {
	case RowNumColumn:
		return r.attrs.Get().RowNum
	case CheckboxColumn:
		return r.attrs.Get().Checked
	}
	if v, ok := r.values[name]; ok {
		return v.Get()
	}
	return nil
}

// Data returns a copy of the row's values keyed by field name.
func (r *Row) Data() map[string]any {
	out := make(map[string]any, len(r.names))
	for _, name := range r.names {
		out[name] = r.values[name].Get()
	}
	return out
}

// Record returns the row as a record, including its key and attributes.
func (r *Row) Record() Record {
	rec := Record(r.Data())
	rec[fieldRowKey] = r.key
	rec[fieldSortKey] = r.sortKey
	rec[fieldAttributes] = r.Attributes()
	if p := r.priority.Get(); len(p) > 0 {
		rec[fieldDisabledPriority] = maps.Clone(p)
	}
	return rec
}

// Attributes returns a copy of the row's attributes.
func (r *Row) Attributes() Attributes {
	return r.attrs.Get().clone()
}

// DisabledPriority returns the priority set for a column, if any.
func (r *Row) DisabledPriority(name string) (DisabledPriority, bool) {
	p, ok := r.priority.Get()[name]
	return p, ok
}

// RelationListItems returns the choices a relation currently allows for a
// target column. ok is false until a relation produced a list.
func (r *Row) RelationListItems(name string) (items []ListItem, ok bool) {
	v, ok := r.listItems[name]
	if !ok {
		return nil, false
	}
	items = v.Get()
	return items, items != nil
}

// RowSpanMap returns a copy of the row's span descriptors.
func (r *Row) RowSpanMap() map[string]RowSpan {
	return maps.Clone(r.spans.Get())
}

// TreeInfo returns the row's hierarchy links, nil outside tree mode.
func (r *Row) TreeInfo() *TreeInfo {
	if r.tree == nil {
		return nil
	}
	t := *r.tree
	t.ChildKeys = slices.Clone(t.ChildKeys)
	return &t
}

// View returns the row's view row.
func (r *Row) View() *ViewRow {
	return r.view
}

func (r *Row) peekValue(name string) any {
	if v, ok := r.values[name]; ok {
		return v.Peek()
	}
	return nil
}

func (r *Row) peekAttrs() Attributes {
	return r.attrs.Peek()
}

// updateAttrs applies fn to a copy of the attributes.
func (r *Row) updateAttrs(fn func(a *Attributes)) {
	a := r.attrs.Peek().clone()
	fn(&a)
	r.attrs.Set(a)
}

// setValue stores a value, adding the field when it is new.
func (r *Row) setValue(g *reactive.Graph, name string, v any) {
	if x, ok := r.values[name]; ok {
		x.Set(v)
		return
	}
	r.values[name] = reactive.NewValueFunc(g, v, valuesEqual)
	r.names = append(r.names, name)
}

func (r *Row) setRelationListItems(g *reactive.Graph, name string, items []ListItem) {
	v, ok := r.listItems[name]
	if !ok {
		r.listItems[name] = reactive.NewValueFunc(g, items, listItemsEqual)
		return
	}
	v.Set(items)
}

func listItemsEqual(a, b []ListItem) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return slices.EqualFunc(a, b, func(x, y ListItem) bool {
		return x.Text == y.Text && valuesEqual(x.Value, y.Value)
	})
}

func attributesEqual(a, b Attributes) bool {
	return reflect.DeepEqual(a, b)
}
