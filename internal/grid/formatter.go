package grid

import (
	"html"
	"log/slog"
	"strings"
)

// FormatterListItemText is the built-in formatter showing a select value's
// list item text instead of the value itself.
const FormatterListItemText = "listItemText"

// FormatterProps is passed to formatter functions.
type FormatterProps struct {
	Row    *Row
	Column *Column
	Value  any
}

// FormatterFunc computes the displayed value of a cell.
type FormatterFunc func(p FormatterProps) any

// Formatter selects how a cell value is displayed.
//
// The zero Formatter displays the raw value.
type Formatter struct {
	builtin string
	fn      FormatterFunc
	literal string
	hasText bool
}

// BuiltinFormatter returns a formatter using a named built-in. Unknown names
// fall back to the raw value.
func BuiltinFormatter(name string) Formatter {
	return Formatter{builtin: name}
}

// FuncFormatter returns a formatter calling fn.
func FuncFormatter(fn FormatterFunc) Formatter {
	return Formatter{fn: fn}
}

// LiteralFormatter returns a formatter displaying text for every cell.
func LiteralFormatter(text string) Formatter {
	return Formatter{literal: text, hasText: true}
}

// IsZero reports whether f displays the raw value.
func (f Formatter) IsZero() bool {
	return f.builtin == "" && f.fn == nil && !f.hasText
}

// formatValue resolves a cell's displayed text: named built-in, then
// function, then literal, then the raw value. relationItems, when non-nil,
// replace the column's own list items.
func formatValue(log *slog.Logger, p FormatterProps, relationItems []ListItem) string {
	f := p.Column.Formatter
	var v any
	switch {
	case f.builtin == FormatterListItemText:
		v = listItemText(p, relationItems)
	case f.builtin != "" && f.fn == nil && !f.hasText:
		log.Debug("unknown formatter", "column", p.Column.Name, "formatter", f.builtin)
		v = p.Value
	case f.fn != nil:
		v = callFormatter(log, f.fn, p)
	case f.hasText:
		v = f.literal
	default:
		v = p.Value
	}
	s := displayString(v)
	if s != "" && p.Column.EscapeHTML {
		return html.EscapeString(s)
	}
	return s
}

func callFormatter(log *slog.Logger, fn FormatterFunc, p FormatterProps) (v any) {
	defer func() {
		if r := recover(); r != nil {
			log.Debug("formatter panicked", "column", p.Column.Name, "panic", r)
			v = p.Value
		}
	}()
	return fn(p)
}

// listItemText maps a value to its list item text. Checkbox editors store
// several comma separated values.
func listItemText(p FormatterProps, relationItems []ListItem) string {
	items := p.Column.ListItems
	if relationItems != nil {
		items = relationItems
	}
	if p.Column.Editor == "checkbox" {
		var texts []string
		for _, part := range strings.Split(displayString(p.Value), ",") {
			if t := itemText(items, part); t != "" {
				texts = append(texts, t)
			}
		}
		return strings.Join(texts, ",")
	}
	return itemText(items, p.Value)
}

func itemText(items []ListItem, value any) string {
	want := displayString(value)
	for _, item := range items {
		if displayString(item.Value) == want {
			return item.Text
		}
	}
	return ""
}

// containsItemValue reports whether one of items holds value.
func containsItemValue(items []ListItem, value any) bool {
	for _, item := range items {
		if valuesEqual(item.Value, value) {
			return true
		}
	}
	return false
}
