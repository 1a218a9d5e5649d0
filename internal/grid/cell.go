package grid

import (
	"log/slog"
	"slices"
	"strings"
)

// CellRenderData is the derived render state of one cell.
type CellRenderData struct {
	Value          any
	FormattedValue string
	Editable       bool
	Disabled       bool
	ClassName      string
	InvalidStates  []ValidationType
}

// Equal reports whether two render states are the same.
func (c CellRenderData) Equal(o CellRenderData) bool {
	return valuesEqual(c.Value, o.Value) &&
		c.FormattedValue == o.FormattedValue &&
		c.Editable == o.Editable &&
		c.Disabled == o.Disabled &&
		c.ClassName == o.ClassName &&
		slices.Equal(c.InvalidStates, o.InvalidStates)
}

// Invalid reports whether at least one validation rule failed.
func (c CellRenderData) Invalid() bool {
	return len(c.InvalidStates) > 0
}

// cellRelation is the relation outcome applied to a target cell.
type cellRelation struct {
	matched bool
	items   []ListItem
}

// deriveCell computes the render state of one cell. rel is nil for cells
// not governed by a relation.
func deriveCell(log *slog.Logger, row *Row, col *Column, rel *cellRelation) CellRenderData {
	attrs := row.attrs.Get()
	value := row.Value(col.Name)
	var items []ListItem
	if rel != nil {
		items = rel.items
		if !rel.matched {
			value = ""
		}
	}
	rowDisabled := attrs.Disabled
	if col.Name == CheckboxColumn {
		rowDisabled = attrs.CheckDisabled
	}
	cell := CellRenderData{
		Value:    value,
		Editable: col.Editor != "",
		Disabled: cellDisabled(col.Disabled, rowDisabled, row.priority.Get()[col.Name]),
	}
	if IsRowHeader(col.Name) {
		cell.FormattedValue = displayString(value)
	} else {
		cell.FormattedValue = formatValue(log, FormatterProps{Row: row, Column: col, Value: value}, items)
		cell.ClassName = cellClassName(attrs.ClassName, col)
		cell.InvalidStates = validate(log, value, row, col.Name, col.Validation)
	}
	return cell
}

// relatedCell derives target from the relation declared on source, given the
// source cell. items is nil when the relation has no list callback.
func (s *Store) relatedCell(row *Row, source string, src CellRenderData, target string) (out CellRenderData, items []ListItem) {
	srcCol, _ := s.columns.Column(source)
	col, _ := s.columns.Column(target)
	p := RelationParams{Value: src.Value, Editable: src.Editable, Disabled: src.Disabled, Row: row}
	res := resolveRelation(s.log, srcCol.Relations[target], p, target, row.Value(target))
	out = deriveCell(s.log, row, col, &cellRelation{matched: res.matched, items: res.items})
	if !res.editable {
		out.Editable = false
	}
	if res.disabled {
		out.Disabled = true
	}
	return out, res.items
}

// derivedCell computes the cell a realized view row shows for col, without
// registering anything. The reads are tracked by the running computation.
func (s *Store) derivedCell(row *Row, col *Column) CellRenderData {
	cm := s.columns
	if !cm.IsRelated(col.Name) {
		return deriveCell(s.log, row, col, nil)
	}
	cells := map[string]CellRenderData{}
	for _, source := range cm.RelationSources() {
		src, ok := cells[source]
		if !ok {
			c, _ := cm.Column(source)
			src = deriveCell(s.log, row, c, nil)
		}
		for _, target := range cm.RelationTargets(source) {
			cells[target], _ = s.relatedCell(row, source, src, target)
		}
	}
	return cells[col.Name]
}

// cellDisabled resolves the disabled state of a cell. Without a priority
// either flag disables the cell.
func cellDisabled(column, row bool, p DisabledPriority) bool {
	switch p {
	case PriorityColumn:
		return column
	case PriorityRow:
		return row
	default:
		return column || row
	}
}

func cellClassName(c ClassName, col *Column) string {
	names := slices.Concat(c.Row, c.Column[col.Name])
	if col.ClassName != "" {
		names = append(names, col.ClassName)
	}
	return strings.Join(names, " ")
}
