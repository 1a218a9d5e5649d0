// Package render prints the current page of a grid store.
//
// It only reads the store's derived state: visible columns, the page window
// and each cell's render data.
package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/maruel/gridstore/internal/grid"
)

// Format selects the output encoding.
type Format string

const (
	// Table draws a bordered terminal table. Invalid cells are highlighted
	// and disabled cells are dimmed when the writer supports color.
	Table Format = "table"
	// Plain writes tab separated values with a header line.
	Plain Format = "plain"
	// JSON writes the page as a JSON document.
	JSON Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case Table, Plain, JSON:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q", s)
}

// Page is the rendered view of the current page.
type Page struct {
	Columns    []string            `json:"columns"`
	Headers    []string            `json:"headers"`
	Rows       []Row               `json:"rows"`
	Page       int                 `json:"page,omitempty"`
	LastPage   int                 `json:"lastPage,omitempty"`
	TotalCount int                 `json:"totalCount"`
	Sort       []grid.SortedColumn `json:"sort,omitempty"`
}

// Row is one rendered row.
type Row struct {
	Key      grid.RowKey                      `json:"rowKey"`
	Cells    []string                         `json:"cells"`
	Invalid  map[string][]grid.ValidationType `json:"invalid,omitempty"`
	Disabled []string                         `json:"disabled,omitempty"`

	disabled []bool
}

// Snapshot collects the current page of s.
func Snapshot(s *grid.Store) *Page {
	cols := s.VisibleColumns()
	p := &Page{Columns: make([]string, len(cols)), Headers: make([]string, len(cols))}
	for i, c := range cols {
		p.Columns[i] = c.Name
		p.Headers[i] = header(c)
	}
	po := s.PageOptions()
	p.TotalCount = po.TotalCount
	if po.UseClient {
		p.Page = po.Page
		p.LastPage = max(1, (po.TotalCount+po.PerPage-1)/po.PerPage)
	} else {
		p.TotalCount = len(s.FilteredRawData())
	}
	if st := s.SortState(); st.Sorted() {
		p.Sort = st.Columns
	}
	for _, v := range s.PageRows() {
		r := Row{Key: v.Key(), Cells: make([]string, len(cols)), disabled: make([]bool, len(cols))}
		for i, c := range cols {
			cell := v.Cell(c.Name)
			r.Cells[i] = cellText(c.Name, cell)
			if cell.Invalid() {
				if r.Invalid == nil {
					r.Invalid = map[string][]grid.ValidationType{}
				}
				r.Invalid[c.Name] = cell.InvalidStates
			}
			if cell.Disabled {
				r.disabled[i] = true
				r.Disabled = append(r.Disabled, c.Name)
			}
		}
		p.Rows = append(p.Rows, r)
	}
	return p
}

func header(c *grid.Column) string {
	switch c.Name {
	case grid.RowNumColumn:
		return "#"
	case grid.CheckboxColumn:
		return "✓"
	}
	if c.Header != "" {
		return c.Header
	}
	return c.Name
}

func cellText(name string, c grid.CellRenderData) string {
	if name == grid.CheckboxColumn {
		if c.Value == true {
			return "[x]"
		}
		return "[ ]"
	}
	return c.FormattedValue
}

// Write renders the current page of s to w.
func Write(w io.Writer, s *grid.Store, format Format) error {
	p := Snapshot(s)
	switch format {
	case Table:
		_, err := io.WriteString(w, p.Table(lipgloss.NewRenderer(w)))
		return err
	case Plain:
		return p.WritePlain(w)
	case JSON:
		e := json.NewEncoder(w)
		e.SetIndent("", "  ")
		return e.Encode(p)
	}
	return fmt.Errorf("unknown format %q", format)
}

// WritePlain writes tab separated values.
func (p *Page) WritePlain(w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	if err := cw.Write(p.Headers); err != nil {
		return err
	}
	for _, r := range p.Rows {
		if err := cw.Write(r.Cells); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Table draws the page as a bordered table followed by a status line.
func (p *Page) Table(re *lipgloss.Renderer) string {
	headerStyle := re.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := re.NewStyle().Padding(0, 1)
	invalidStyle := cellStyle.Foreground(lipgloss.Color("9"))
	disabledStyle := cellStyle.Faint(true)
	borderStyle := re.NewStyle().Foreground(lipgloss.Color("8"))

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row < 0 || row >= len(p.Rows) {
				return cellStyle
			}
			r := &p.Rows[row]
			if _, ok := r.Invalid[p.Columns[col]]; ok {
				return invalidStyle
			}
			if col < len(r.disabled) && r.disabled[col] {
				return disabledStyle
			}
			return cellStyle
		}).
		Headers(p.Headers...)
	for _, r := range p.Rows {
		t.Row(r.Cells...)
	}
	return t.String() + "\n" + re.NewStyle().Faint(true).Render(p.status()) + "\n"
}

func (p *Page) status() string {
	s := fmt.Sprintf("%d rows", p.TotalCount)
	if p.Page > 0 {
		s = fmt.Sprintf("page %d/%d, %s", p.Page, p.LastPage, s)
	}
	for i, c := range p.Sort {
		dir := "asc"
		if !c.Ascending {
			dir = "desc"
		}
		if i == 0 {
			s += ", sorted by "
		} else {
			s += ", "
		}
		s += c.ColumnName + " " + dir
	}
	return s
}
