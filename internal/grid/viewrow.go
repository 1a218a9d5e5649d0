package grid

import "github.com/maruel/gridstore/internal/reactive"

// ViewRow holds the derived render state of one row's cells.
//
// A view row starts unrealized. The first read registers its computations
// on the graph; from then on the cells follow every change to the row.
type ViewRow struct {
	s     *Store
	row   *Row
	state viewState
}

// viewState is either unrealizedView or *realizedView.
type viewState interface {
	isViewState()
}

type unrealizedView struct{}

type realizedView struct {
	cells map[string]*reactive.Value[CellRenderData]
	comps []*reactive.Computation
}

// releasedView marks a view row whose row left the store.
type releasedView struct{}

func (unrealizedView) isViewState() {}
func (*realizedView) isViewState()  {}
func (releasedView) isViewState()   {}

func newViewRow(s *Store, row *Row) *ViewRow {
	return &ViewRow{s: s, row: row, state: unrealizedView{}}
}

// Key returns the key of the underlying row.
func (v *ViewRow) Key() RowKey { return v.row.key }

// Row returns the underlying row.
func (v *ViewRow) Row() *Row { return v.row }

// Realized reports whether the cells are being computed.
func (v *ViewRow) Realized() bool {
	_, ok := v.state.(*realizedView)
	return ok
}

// Cell returns the render state of a column, realizing the view row if
// needed. Unknown columns return the zero value.
func (v *ViewRow) Cell(name string) CellRenderData {
	rv := v.realize()
	if rv == nil {
		return v.snapshot(name)
	}
	c, ok := rv.cells[name]
	if !ok {
		return CellRenderData{}
	}
	return c.Get()
}

// Cells returns the render state of every column.
func (v *ViewRow) Cells() map[string]CellRenderData {
	out := map[string]CellRenderData{}
	for _, col := range v.s.columns.Columns() {
		out[col.Name] = v.Cell(col.Name)
	}
	return out
}

// realize upgrades an unrealized view row. It returns nil once released.
func (v *ViewRow) realize() *realizedView {
	switch st := v.state.(type) {
	case *realizedView:
		return st
	case releasedView:
		return nil
	}
	rv := &realizedView{cells: map[string]*reactive.Value[CellRenderData]{}}
	v.state = rv
	cm := v.s.columns
	for _, col := range cm.Columns() {
		rv.cells[col.Name] = reactive.NewValueFunc(v.s.g, CellRenderData{}, CellRenderData.Equal)
	}
	v.s.g.Batch(func() {
		for _, col := range cm.Columns() {
			if cm.IsRelated(col.Name) {
				continue
			}
			cell := rv.cells[col.Name]
			rv.comps = append(rv.comps, v.s.g.Observe(func() {
				cell.Set(deriveCell(v.s.log, v.row, col, nil))
			}))
		}
		// Relation sources are ordered so that a source that is itself a
		// target observes its cell after the upstream relation wrote it.
		for _, name := range cm.RelationSources() {
			rv.comps = append(rv.comps, v.s.g.Observe(func() {
				v.applyRelations(rv, name)
			}))
		}
	})
	return rv
}

// applyRelations evaluates every relation declared on source and writes the
// target cells.
func (v *ViewRow) applyRelations(rv *realizedView, source string) {
	src := rv.cells[source].Get()
	for _, target := range v.s.columns.RelationTargets(source) {
		out, items := v.s.relatedCell(v.row, source, src, target)
		if items != nil {
			v.row.setRelationListItems(v.s.g, target, items)
		}
		rv.cells[target].Set(out)
	}
}

// snapshot derives a cell without registering anything. Used after release.
func (v *ViewRow) snapshot(name string) CellRenderData {
	col, ok := v.s.columns.Column(name)
	if !ok {
		return CellRenderData{}
	}
	var out CellRenderData
	v.s.g.Untracked(func() {
		out = deriveCell(v.s.log, v.row, col, nil)
	})
	return out
}

// release stops the view row's computations.
func (v *ViewRow) release() {
	if rv, ok := v.state.(*realizedView); ok {
		for _, c := range rv.comps {
			c.Stop()
		}
	}
	v.state = releasedView{}
}
