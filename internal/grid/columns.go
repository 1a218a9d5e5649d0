// Handles column definitions, relation graph validation and ordering.

package grid

import (
	"fmt"
	"slices"
)

// Reserved column names.
const (
	// RowNumColumn is the row header column showing the row number.
	RowNumColumn = "_number"
	// CheckboxColumn is the row header column showing the checked state.
	CheckboxColumn = "_checked"
	// SortKeyColumn names the implicit origin-order sort.
	SortKeyColumn = "sortKey"
)

// SortingType is the first direction applied when a column's sort is toggled.
type SortingType string

const (
	// SortingAsc toggles to ascending first.
	SortingAsc SortingType = "asc"
	// SortingDesc toggles to descending first.
	SortingDesc SortingType = "desc"
)

// ListItem is one choice of a select-like column.
type ListItem struct {
	Text  string `json:"text" yaml:"text" toml:"text"`
	Value any    `json:"value" yaml:"value" toml:"value"`
}

// Column configures one data column.
type Column struct {
	Name   string
	Header string
	// Editor names the editor type. An empty editor makes the column read-only.
	Editor string
	// ListItems are the editor choices, used by the listItemText formatter
	// when no relation supplies a list.
	ListItems    []ListItem
	Formatter    Formatter
	EscapeHTML   bool
	DefaultValue any
	Validation   *Validation
	Disabled     bool
	ClassName    string
	Hidden       bool
	Sortable     bool
	SortingType  SortingType
	// Relations maps a target column name to the callbacks deriving the
	// target's state from this column's cell.
	Relations map[string]Relation
}

// DefaultAscending reports the direction of the first toggle.
func (c *Column) DefaultAscending() bool {
	return c.SortingType != SortingDesc
}

// IsRowHeader reports whether name is a reserved row header column.
func IsRowHeader(name string) bool {
	return name == RowNumColumn || name == CheckboxColumn
}

// ColumnMap is the validated, immutable column configuration of a store.
type ColumnMap struct {
	all    []*Column
	data   []*Column
	byName map[string]*Column
	// related holds every column that is the target of at least one relation.
	related map[string]bool
	// sources lists relation source columns, each after every source it depends on.
	sources []string
	targets map[string][]string
}

// NewColumnMap validates columns and returns the map.
//
// rowHeaders may contain RowNumColumn and CheckboxColumn; they are placed
// before the data columns.
func NewColumnMap(columns []Column, rowHeaders ...string) (*ColumnMap, error) {
	cm := &ColumnMap{
		byName:  make(map[string]*Column, len(columns)+len(rowHeaders)),
		related: map[string]bool{},
		targets: map[string][]string{},
	}
	for _, h := range rowHeaders {
		if !IsRowHeader(h) {
			return nil, fmt.Errorf("%w: row header %q", ErrUnknownColumn, h)
		}
		if _, ok := cm.byName[h]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, h)
		}
		c := &Column{Name: h}
		if h == CheckboxColumn {
			c.Editor = "checkbox"
		}
		cm.all = append(cm.all, c)
		cm.byName[h] = c
	}
	for i := range columns {
		c := columns[i]
		switch {
		case c.Name == "":
			return nil, fmt.Errorf("column %d: %w", i, errColumnNameRequired)
		case IsRowHeader(c.Name) || c.Name == SortKeyColumn:
			return nil, fmt.Errorf("%w: %q", ErrReservedColumn, c.Name)
		}
		if _, ok := cm.byName[c.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, c.Name)
		}
		cm.all = append(cm.all, &c)
		cm.data = append(cm.data, &c)
		cm.byName[c.Name] = &c
	}
	for _, c := range cm.data {
		if len(c.Relations) == 0 {
			continue
		}
		names := make([]string, 0, len(c.Relations))
		for target := range c.Relations {
			if _, ok := cm.byName[target]; !ok || IsRowHeader(target) {
				return nil, fmt.Errorf("%w: relation %q -> %q", ErrUnknownColumn, c.Name, target)
			}
			names = append(names, target)
			cm.related[target] = true
		}
		slices.Sort(names)
		cm.targets[c.Name] = names
	}
	if err := cm.orderSources(); err != nil {
		return nil, err
	}
	return cm, nil
}

// orderSources sorts relation sources topologically and rejects cycles.
func (cm *ColumnMap) orderSources() error {
	const (
		unvisited = iota
		visiting
		done
	)
	state := map[string]int{}
	var visit func(name string, path []string) error
	visit = func(name string, path []string) error {
		switch state[name] {
		case visiting:
			return fmt.Errorf("%w: %v", ErrRelationCycle, append(path, name))
		case done:
			return nil
		}
		state[name] = visiting
		// A source must run after every source that writes into it.
		for _, c := range cm.data {
			if slices.Contains(cm.targets[c.Name], name) {
				if err := visit(c.Name, append(path, name)); err != nil {
					return err
				}
			}
		}
		state[name] = done
		if len(cm.targets[name]) > 0 {
			cm.sources = append(cm.sources, name)
		}
		return nil
	}
	for _, c := range cm.data {
		if err := visit(c.Name, nil); err != nil {
			return err
		}
	}
	return nil
}

// Column returns the column with the given name.
func (cm *ColumnMap) Column(name string) (*Column, bool) {
	c, ok := cm.byName[name]
	return c, ok
}

// Columns returns every column, row headers first.
func (cm *ColumnMap) Columns() []*Column {
	return cm.all
}

// DataColumns returns the non-reserved columns in declaration order.
func (cm *ColumnMap) DataColumns() []*Column {
	return cm.data
}

// IsRelated reports whether name is the target of a relation. Related cells
// are derived by their source's relation computation instead of their own.
func (cm *ColumnMap) IsRelated(name string) bool {
	return cm.related[name]
}

// RelationSources returns relation source columns in evaluation order.
func (cm *ColumnMap) RelationSources() []string {
	return cm.sources
}

// RelationTargets returns the sorted target names of source.
func (cm *ColumnMap) RelationTargets(source string) []string {
	return cm.targets[source]
}
