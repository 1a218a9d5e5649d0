package grid

import "errors"

var (
	// ErrUnknownColumn is returned when a relation targets a column that does not exist.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrDuplicateColumn is returned when two columns share a name.
	ErrDuplicateColumn = errors.New("duplicate column")
	// ErrRelationCycle is returned when relations reference each other in a loop.
	ErrRelationCycle = errors.New("relation cycle")
	// ErrReservedColumn is returned when a data column uses a reserved name.
	ErrReservedColumn = errors.New("reserved column name")
	// ErrUnknownFilterOp is returned when parsing an unknown filter operator.
	ErrUnknownFilterOp = errors.New("unknown filter operator")

	errColumnNameRequired = errors.New("column name is required")
)
