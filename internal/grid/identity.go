// Assigns row identity and builds rows from records.

package grid

import (
	"fmt"
	"math"
	"slices"

	"github.com/maruel/ksid"
)

// newBatchToken returns the identity token of a new data set.
func newBatchToken() string {
	return ksid.NewID().String()
}

// candidateKey returns the key a record asks for, or nil.
func (s *Store) candidateKey(rec Record) RowKey {
	if s.opts.KeyColumnName != "" {
		return normalizeKey(rec[s.opts.KeyColumnName])
	}
	return normalizeKey(rec[fieldRowKey])
}

// bumpNextKey makes sure generated keys stay above k.
func (s *Store) bumpNextKey(k RowKey) {
	if n, ok := k.(int64); ok && n >= s.nextKey && n < math.MaxInt64 {
		s.nextKey = n + 1
	}
}

// ingest builds the rows of a full data set in origin order, under a new
// batch token.
func (s *Store) ingest(records []Record) []*Row {
	s.batch = newBatchToken()
	s.nextKey = 0
	var flat []flatRecord
	if s.TreeMode() {
		flat = flattenTree(records)
	} else {
		flat = make([]flatRecord, len(records))
		for i, rec := range records {
			flat[i] = flatRecord{rec: rec, parent: -1}
		}
	}
	// Keys are resolved in two passes so a generated key never collides with
	// a key requested further down.
	keys := make([]RowKey, len(flat))
	for i, f := range flat {
		k := s.candidateKey(f.rec)
		if k == nil && s.opts.KeyColumnName == "" {
			k = int64(i)
		}
		keys[i] = k
		s.bumpNextKey(k)
	}
	used := make(map[RowKey]bool, len(flat))
	rows := make([]*Row, len(flat))
	for i, f := range flat {
		k := keys[i]
		if k == nil || used[k] {
			gen := s.generateKey()
			s.log.Warn("row key reassigned", "index", i, "key", k, "assigned", gen)
			k = gen
		}
		used[k] = true
		sortKey := i
		if n, ok := toFloat(f.rec[fieldSortKey]); ok {
			sortKey = int(n)
		}
		rows[i] = s.newRow(f.rec, k, sortKey, i+1)
	}
	if s.TreeMode() {
		linkTree(rows, flat)
	} else {
		slices.SortStableFunc(rows, func(a, b *Row) int { return a.sortKey - b.sortKey })
		for i, r := range rows {
			r.updateAttrs(func(a *Attributes) { a.RowNum = i + 1 })
		}
		rebuildRowSpans(rows)
	}
	if s.opts.EagerViewRows {
		for _, r := range rows {
			r.view.realize()
		}
	}
	return rows
}

func (s *Store) generateKey() RowKey {
	k := s.nextKey
	s.nextKey++
	return k
}

// newRow builds one row. Data columns missing from rec get their default
// value.
func (s *Store) newRow(rec Record, key RowKey, sortKey, rowNum int) *Row {
	data := make(map[string]any, len(rec))
	names := make([]string, 0, len(s.columns.DataColumns()))
	for _, c := range s.columns.DataColumns() {
		v, ok := rec[c.Name]
		if !ok || v == nil {
			v = c.DefaultValue
		}
		data[c.Name] = v
		names = append(names, c.Name)
	}
	var extra []string
	for k, v := range rec {
		if _, ok := data[k]; ok || isReservedField(k) || IsRowHeader(k) {
			continue
		}
		data[k] = v
		extra = append(extra, k)
	}
	slices.Sort(extra)
	names = append(names, extra...)
	var related []string
	for _, c := range s.columns.DataColumns() {
		if s.columns.IsRelated(c.Name) {
			related = append(related, c.Name)
		}
	}
	attrs := newAttributes(attributeOptionsFrom(rec[fieldAttributes]), rowNum, s.opts.Disabled)
	if s.TreeMode() {
		attrs.RowSpan = nil
	}
	uniqueKey := fmt.Sprintf("%s-%v", s.batch, key)
	r := newRow(s.g, key, sortKey, uniqueKey, data, names, attrs, disabledPriorityFrom(rec[fieldDisabledPriority]), related)
	r.view = newViewRow(s, r)
	return r
}

// emptyRecord returns the record of a blank row: every data column holds
// its default value or "".
func (s *Store) emptyRecord() Record {
	rec := Record{}
	for _, c := range s.columns.DataColumns() {
		if c.DefaultValue != nil {
			rec[c.Name] = c.DefaultValue
		} else {
			rec[c.Name] = ""
		}
	}
	return rec
}
