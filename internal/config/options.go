package config

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/maruel/gridstore/internal/grid"
)

// wildcard is the relation key matching any source value.
const wildcard = "*"

// Options compiles the file into grid options. Declarative relations become
// callbacks looking the source value up in their maps.
func (f *File) Options() (grid.Options, error) {
	opts := grid.Options{
		RowHeaders:     f.RowHeaders,
		KeyColumnName:  f.KeyColumn,
		TreeColumnName: f.TreeColumn,
		ServerSort:     f.ServerSort,
		Disabled:       f.Disabled,
	}
	if f.PageOptions != nil {
		po := *f.PageOptions
		opts.PageOptions = &po
	}
	opts.Columns = make([]grid.Column, 0, len(f.Columns))
	for i := range f.Columns {
		c, err := f.Columns[i].compile()
		if err != nil {
			return grid.Options{}, err
		}
		opts.Columns = append(opts.Columns, c)
	}
	return opts, nil
}

func (c *Column) compile() (grid.Column, error) {
	out := grid.Column{
		Name:         c.Name,
		Header:       c.Header,
		Editor:       c.Editor,
		ListItems:    listItems(c.ListItems),
		EscapeHTML:   c.EscapeHTML,
		DefaultValue: c.DefaultValue,
		ClassName:    c.ClassName,
		Disabled:     c.Disabled,
		Hidden:       c.Hidden,
		Sortable:     c.Sortable,
		SortingType:  grid.SortingType(c.SortingType),
	}
	if out.Header == "" {
		out.Header = c.Name
	}
	switch c.Formatter {
	case "":
	case grid.FormatterListItemText:
		out.Formatter = grid.BuiltinFormatter(c.Formatter)
	default:
		out.Formatter = grid.LiteralFormatter(c.Formatter)
	}
	if v := c.Validation; v != nil {
		rules := &grid.Validation{Required: v.Required, DataType: grid.DataType(v.DataType), Min: v.Min, Max: v.Max}
		if v.RegExp != "" {
			re, err := regexp.Compile(v.RegExp)
			if err != nil {
				return grid.Column{}, fmt.Errorf("%w: column %q: %w", ErrInvalid, c.Name, err)
			}
			rules.RegExp = re
		}
		out.Validation = rules
	}
	if len(c.Relations) != 0 {
		out.Relations = make(map[string]grid.Relation, len(c.Relations))
		for target, r := range c.Relations {
			out.Relations[target] = r.compile()
		}
	}
	return out, nil
}

func (r Relation) compile() grid.Relation {
	var out grid.Relation
	if r.Editable != nil {
		out.Editable = boolLookup(r.Editable)
	}
	if r.Disabled != nil {
		out.Disabled = boolLookup(r.Disabled)
	}
	if r.ListItems != nil {
		m := make(map[string][]grid.ListItem, len(r.ListItems))
		for k, items := range r.ListItems {
			m[k] = listItems(items)
			if m[k] == nil {
				m[k] = []grid.ListItem{}
			}
		}
		out.ListItems = func(p grid.RelationParams) []grid.ListItem {
			items, ok := m[valueKey(p.Value)]
			if !ok {
				items = m[wildcard]
			}
			return items
		}
	}
	return out
}

func boolLookup(m map[string]bool) grid.BoolRelationFunc {
	return func(p grid.RelationParams) (bool, bool) {
		if v, ok := m[valueKey(p.Value)]; ok {
			return v, true
		}
		v, ok := m[wildcard]
		return v, ok
	}
}

func listItems(items []ListItem) []grid.ListItem {
	if items == nil {
		return nil
	}
	out := make([]grid.ListItem, len(items))
	for i, it := range items {
		out[i] = grid.ListItem{Text: it.Text, Value: it.Value}
	}
	return out
}

// valueKey returns the text a source value is looked up by.
func valueKey(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	}
	return fmt.Sprint(v)
}
