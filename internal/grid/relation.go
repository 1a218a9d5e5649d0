package grid

import "log/slog"

// RelationParams is the source cell state passed to relation callbacks.
type RelationParams struct {
	Value    any
	Editable bool
	Disabled bool
	Row      *Row
}

// BoolRelationFunc derives a flag of the target cell. ok false means no
// opinion.
type BoolRelationFunc func(p RelationParams) (v bool, ok bool)

// ListItemsRelationFunc derives the choices of the target cell. A nil slice
// means no opinion.
type ListItemsRelationFunc func(p RelationParams) []ListItem

// Relation derives a target column's state from the source column it is
// declared on. Nil callbacks have no opinion.
type Relation struct {
	Editable  BoolRelationFunc
	Disabled  BoolRelationFunc
	ListItems ListItemsRelationFunc
}

// relationResult is the outcome of evaluating one relation.
type relationResult struct {
	editable bool
	disabled bool
	// items is nil when the relation has no list callback.
	items   []ListItem
	matched bool
}

// resolveRelation evaluates rel against the source cell and checks the
// target's current value against the produced choices.
func resolveRelation(log *slog.Logger, rel Relation, p RelationParams, target string, targetValue any) relationResult {
	res := relationResult{editable: true, matched: true}
	if rel.Editable != nil {
		if v, ok := callBoolRelation(log, rel.Editable, p, target); ok {
			res.editable = v
		}
	}
	if rel.Disabled != nil {
		if v, ok := callBoolRelation(log, rel.Disabled, p, target); ok {
			res.disabled = v
		}
	}
	if rel.ListItems != nil {
		res.items = callListItemsRelation(log, rel.ListItems, p, target)
		if res.items == nil {
			res.items = []ListItem{}
		}
		res.matched = containsItemValue(res.items, targetValue)
	}
	return res
}

func callBoolRelation(log *slog.Logger, fn BoolRelationFunc, p RelationParams, target string) (v, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Debug("relation callback panicked", "target", target, "panic", r)
			v, ok = false, false
		}
	}()
	return fn(p)
}

func callListItemsRelation(log *slog.Logger, fn ListItemsRelationFunc, p RelationParams, target string) (items []ListItem) {
	defer func() {
		if r := recover(); r != nil {
			log.Debug("relation callback panicked", "target", target, "panic", r)
			items = nil
		}
	}()
	return fn(p)
}
