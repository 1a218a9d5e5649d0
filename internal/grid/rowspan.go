package grid

// rowSpanMap computes the span descriptors of a row from its own declared
// widths and the descriptors of the previous row in origin order.
//
// Declared spans make the row a main row. A previous entry with remaining
// extent continues into this row as a sub entry one step further from its
// main row. Declared spans win.
func rowSpanMap(key RowKey, declared map[string]int, prev map[string]RowSpan) map[string]RowSpan {
	out := map[string]RowSpan{}
	for name, span := range prev {
		if span.SpanCount > 1-span.Count {
			count := -1
			if span.Count < 0 {
				count = span.Count - 1
			}
			out[name] = RowSpan{MainRowKey: span.MainRowKey, Count: count, SpanCount: span.SpanCount}
		}
	}
	for name, width := range declared {
		if width > 1 {
			out[name] = RowSpan{MainRow: true, MainRowKey: key, Count: width, SpanCount: width}
		}
	}
	return out
}

// rebuildRowSpans recomputes every row's span chain in a single forward pass.
func rebuildRowSpans(rows []*Row) {
	var prev map[string]RowSpan
	for _, r := range rows {
		m := rowSpanMap(r.key, r.peekAttrs().RowSpan, prev)
		r.spans.Set(m)
		prev = m
	}
}

// hasRowSpans reports whether any row declares a span.
func hasRowSpans(rows []*Row) bool {
	for _, r := range rows {
		if len(r.peekAttrs().RowSpan) > 0 {
			return true
		}
	}
	return false
}

// detachRowSpans updates declarations before rows[i] is removed: a removed
// main row hands its span, one row shorter, to the next row, and a removed
// sub row shrinks its main row's span.
func detachRowSpans(rows []*Row, i int, byKey map[RowKey]*Row) {
	r := rows[i]
	for name, span := range r.spans.Peek() {
		if span.MainRow {
			if i+1 < len(rows) && span.SpanCount > 2 {
				next := rows[i+1]
				next.updateAttrs(func(a *Attributes) {
					if a.RowSpan == nil {
						a.RowSpan = map[string]int{}
					}
					a.RowSpan[name] = span.SpanCount - 1
				})
			}
			continue
		}
		if main, ok := byKey[span.MainRowKey]; ok {
			resizeDeclaredSpan(main, name, span.SpanCount-1)
		}
	}
}

// attachRowSpans updates declarations before a row is inserted at index i:
// inserting in the middle of a span grows the span so the new row joins it.
func attachRowSpans(rows []*Row, i int, byKey map[RowKey]*Row) {
	if i <= 0 || i >= len(rows) {
		return
	}
	for name, span := range rows[i].spans.Peek() {
		if span.MainRow {
			continue
		}
		if main, ok := byKey[span.MainRowKey]; ok {
			resizeDeclaredSpan(main, name, span.SpanCount+1)
		}
	}
}

func resizeDeclaredSpan(main *Row, name string, width int) {
	main.updateAttrs(func(a *Attributes) {
		if width > 1 {
			if a.RowSpan == nil {
				a.RowSpan = map[string]int{}
			}
			a.RowSpan[name] = width
		} else {
			delete(a.RowSpan, name)
		}
	})
}
