package grid

import (
	"maps"
	"slices"
)

// ClassName holds the CSS class names attached to a row and to its cells.
type ClassName struct {
	Row    []string            `json:"row"`
	Column map[string][]string `json:"column"`
}

// Attributes is the normalized attribute bag of a row.
type Attributes struct {
	RowNum        int       `json:"rowNum"`
	Checked       bool      `json:"checked"`
	Disabled      bool      `json:"disabled"`
	CheckDisabled bool      `json:"checkDisabled"`
	ClassName     ClassName `json:"className"`
	// RowSpan declares merged cell widths per column on a main row.
	RowSpan map[string]int `json:"rowSpan,omitempty"`
}

func (a Attributes) clone() Attributes {
	a.ClassName.Row = slices.Clone(a.ClassName.Row)
	col := make(map[string][]string, len(a.ClassName.Column))
	for k, v := range a.ClassName.Column {
		col[k] = slices.Clone(v)
	}
	a.ClassName.Column = col
	a.RowSpan = maps.Clone(a.RowSpan)
	return a
}

// AttributeOptions are caller supplied attributes. Nil fields keep the
// computed defaults.
type AttributeOptions struct {
	Checked       *bool             `json:"checked,omitempty"`
	Disabled      *bool             `json:"disabled,omitempty"`
	CheckDisabled *bool             `json:"checkDisabled,omitempty"`
	ClassName     *ClassNameOptions `json:"className,omitempty"`
	RowSpan       map[string]int    `json:"rowSpan,omitempty"`
}

// ClassNameOptions are caller supplied class names. A missing bucket
// defaults to empty.
type ClassNameOptions struct {
	Row    []string            `json:"row,omitempty"`
	Column map[string][]string `json:"column,omitempty"`
}

// newAttributes merges opts over the defaults of a row at rowNum.
//
// CheckDisabled inherits Disabled unless set explicitly, and both inherit
// the store-wide disabled flag.
func newAttributes(opts AttributeOptions, rowNum int, disabled bool) Attributes {
	a := Attributes{
		RowNum:        rowNum,
		Disabled:      disabled,
		CheckDisabled: disabled,
		ClassName:     ClassName{Row: []string{}, Column: map[string][]string{}},
	}
	if opts.Checked != nil {
		a.Checked = *opts.Checked
	}
	if opts.Disabled != nil {
		a.Disabled = *opts.Disabled
		a.CheckDisabled = *opts.Disabled
	}
	if opts.CheckDisabled != nil {
		a.CheckDisabled = *opts.CheckDisabled
	}
	if c := opts.ClassName; c != nil {
		if c.Row != nil {
			a.ClassName.Row = slices.Clone(c.Row)
		}
		for k, v := range c.Column {
			a.ClassName.Column[k] = slices.Clone(v)
		}
	}
	for k, w := range opts.RowSpan {
		if w > 1 {
			if a.RowSpan == nil {
				a.RowSpan = map[string]int{}
			}
			a.RowSpan[k] = w
		}
	}
	return a
}

// attributeOptionsFrom reads the "_attributes" field of a record. It accepts
// AttributeOptions, *AttributeOptions, Attributes and the decoded JSON form.
func attributeOptionsFrom(v any) AttributeOptions {
	switch x := v.(type) {
	case AttributeOptions:
		return x
	case *AttributeOptions:
		if x != nil {
			return *x
		}
	case Attributes:
		return AttributeOptions{
			Checked:       &x.Checked,
			Disabled:      &x.Disabled,
			CheckDisabled: &x.CheckDisabled,
			ClassName:     &ClassNameOptions{Row: x.ClassName.Row, Column: x.ClassName.Column},
			RowSpan:       x.RowSpan,
		}
	case map[string]any:
		return attributeOptionsFromMap(x)
	case Record:
		return attributeOptionsFromMap(x)
	}
	return AttributeOptions{}
}

func attributeOptionsFromMap(m map[string]any) AttributeOptions {
	var o AttributeOptions
	o.Checked = boolField(m, "checked")
	o.Disabled = boolField(m, "disabled")
	o.CheckDisabled = boolField(m, "checkDisabled")
	if c, ok := m["className"].(map[string]any); ok {
		o.ClassName = &ClassNameOptions{Row: stringList(c["row"])}
		if col, ok := c["column"].(map[string]any); ok {
			o.ClassName.Column = make(map[string][]string, len(col))
			for k, v := range col {
				o.ClassName.Column[k] = stringList(v)
			}
		}
	}
	switch spans := m["rowSpan"].(type) {
	case map[string]int:
		o.RowSpan = maps.Clone(spans)
	case map[string]any:
		o.RowSpan = make(map[string]int, len(spans))
		for k, v := range spans {
			if n, ok := toFloat(v); ok {
				o.RowSpan[k] = int(n)
			}
		}
	}
	return o
}

// disabledPriorityFrom reads the "_disabledPriority" field of a record.
func disabledPriorityFrom(v any) map[string]DisabledPriority {
	out := map[string]DisabledPriority{}
	switch x := v.(type) {
	case map[string]DisabledPriority:
		maps.Copy(out, x)
	case map[string]string:
		for k, p := range x {
			out[k] = DisabledPriority(p)
		}
	case map[string]any:
		for k, p := range x {
			if s, ok := p.(string); ok {
				out[k] = DisabledPriority(s)
			}
		}
	}
	for k, p := range out {
		if p != PriorityColumn && p != PriorityRow {
			delete(out, k)
		}
	}
	return out
}

func boolField(m map[string]any, name string) *bool {
	b, ok := m[name].(bool)
	if !ok {
		return nil
	}
	return &b
}

func stringList(v any) []string {
	switch x := v.(type) {
	case []string:
		return slices.Clone(x)
	case []any:
		out := make([]string, 0, len(x))
		for _, s := range x {
			if s, ok := s.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return []string{x}
	}
	return nil
}
