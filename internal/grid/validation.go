package grid

import (
	"log/slog"
	"regexp"
)

// ValidationType tags one violated validation rule.
type ValidationType string

const (
	// ValidationRequired means a required value is blank.
	ValidationRequired ValidationType = "REQUIRED"
	// ValidationValidatorFn means the custom validator rejected the value.
	ValidationValidatorFn ValidationType = "VALIDATOR_FN"
	// ValidationTypeString means a string column holds a non-string.
	ValidationTypeString ValidationType = "TYPE_STRING"
	// ValidationRegExp means a string value does not match the pattern.
	ValidationRegExp ValidationType = "REGEXP"
	// ValidationTypeNumber means a number column holds a value that does not convert.
	ValidationTypeNumber ValidationType = "TYPE_NUMBER"
	// ValidationMin means a number is below the minimum.
	ValidationMin ValidationType = "MIN"
	// ValidationMax means a number is above the maximum.
	ValidationMax ValidationType = "MAX"
)

// DataType restricts the kind of value a column holds.
type DataType string

const (
	// DataTypeString requires Go string values.
	DataTypeString DataType = "string"
	// DataTypeNumber requires values that convert to a number.
	DataTypeNumber DataType = "number"
)

// ValidatorFunc is a custom validation predicate. row holds the record's
// column values without any engine bookkeeping.
type ValidatorFunc func(value any, row map[string]any, columnName string) bool

// Validation is the rule set of a column.
type Validation struct {
	Required    bool
	DataType    DataType
	Min         *float64
	Max         *float64
	RegExp      *regexp.Regexp
	ValidatorFn ValidatorFunc
}

// Validate returns the rules value violates, in rule order. A nil rule set
// accepts everything. row may be nil when no custom validator needs it.
func Validate(value any, row *Row, columnName string, v *Validation) []ValidationType {
	return validate(slog.Default(), value, row, columnName, v)
}

func validate(log *slog.Logger, value any, row *Row, columnName string, v *Validation) []ValidationType {
	var states []ValidationType
	if v == nil {
		return states
	}
	if v.Required && isBlank(value) {
		states = append(states, ValidationRequired)
	}
	if v.ValidatorFn != nil {
		var data map[string]any
		if row != nil {
			data = row.Data()
		}
		if !callValidator(log, v.ValidatorFn, value, data, columnName) {
			states = append(states, ValidationValidatorFn)
		}
	}
	s, isString := value.(string)
	if v.DataType == DataTypeString && !isString {
		states = append(states, ValidationTypeString)
	}
	if v.RegExp != nil && isString && !v.RegExp.MatchString(s) {
		states = append(states, ValidationRegExp)
	}
	n, isNumber := convertToNumber(value)
	if v.DataType == DataTypeNumber && !isNumber {
		states = append(states, ValidationTypeNumber)
	}
	if v.Min != nil && isNumber && n < *v.Min {
		states = append(states, ValidationMin)
	}
	if v.Max != nil && isNumber && n > *v.Max {
		states = append(states, ValidationMax)
	}
	return states
}

// callValidator treats a panicking validator as a rejection.
func callValidator(log *slog.Logger, fn ValidatorFunc, value any, row map[string]any, columnName string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Debug("validator panicked", "column", columnName, "panic", r)
			ok = false
		}
	}()
	return fn(value, row, columnName)
}
