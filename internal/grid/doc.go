// Package grid implements a reactive tabular data engine.
//
// # Overview
//
// A [Store] ingests records into rows with stable identity ([Row]), derives
// per-cell render state ([CellRenderData]) for every row and column, and
// exposes filtered, sorted and paginated views over the rows without ever
// reordering or copying the underlying data.
//
// # Derivation
//
// Each realized [ViewRow] registers one computation per plain column and one
// per relation source column on the store's [reactive.Graph]. Relation
// computations are registered after the cells they read, in the topological
// order of the relation graph, so a relation always observes its source cell
// after it settled.
//
// # Laziness
//
// Row fields are tracked values from ingestion on. View rows are created
// unrealized, with no computations, and upgrade to computed cells on their
// first read unless [Options.EagerViewRows] is set. Filters derive the cells
// they need directly, so they never realize a view row.
//
// # Errors
//
// Configuration errors are returned by [NewColumnMap] and [New]. Mutation and
// query methods never fail: unknown row keys are ignored, and misbehaving
// formatter, relation or validator callbacks degrade to their defaults.
package grid
