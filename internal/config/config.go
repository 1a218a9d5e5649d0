// Parses grid configuration files.

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/maruel/gridstore/internal/grid"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnsupportedFormat is returned for configuration files whose
	// extension is not .yaml, .yml, .toml or .json.
	ErrUnsupportedFormat = errors.New("unsupported configuration format")
	// ErrInvalid is returned when a configuration file is well formed but
	// describes an impossible grid.
	ErrInvalid = errors.New("invalid configuration")
)

// Format is a configuration file encoding.
type Format string

const (
	YAML Format = "yaml"
	TOML Format = "toml"
	JSON Format = "json"
)

// FormatOf returns the format matching a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	case ".json":
		return JSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// File describes a grid.
type File struct {
	KeyColumn   string            `json:"keyColumn,omitempty" yaml:"keyColumn,omitempty" toml:"keyColumn,omitempty" jsonschema:"description=Column whose values become row keys"`
	TreeColumn  string            `json:"treeColumn,omitempty" yaml:"treeColumn,omitempty" toml:"treeColumn,omitempty" jsonschema:"description=Enables tree mode; records nest _children"`
	RowHeaders  []string          `json:"rowHeaders,omitempty" yaml:"rowHeaders,omitempty" toml:"rowHeaders,omitempty" jsonschema:"enum=_number,enum=_checked"`
	Disabled    bool              `json:"disabled,omitempty" yaml:"disabled,omitempty" toml:"disabled,omitempty"`
	ServerSort  bool              `json:"serverSort,omitempty" yaml:"serverSort,omitempty" toml:"serverSort,omitempty"`
	PageOptions *grid.PageOptions `json:"pageOptions,omitempty" yaml:"pageOptions,omitempty" toml:"pageOptions,omitempty"`
	Columns     []Column          `json:"columns" yaml:"columns" toml:"columns"`
}

// Column describes one data column.
type Column struct {
	Name         string              `json:"name" yaml:"name" toml:"name"`
	Header       string              `json:"header,omitempty" yaml:"header,omitempty" toml:"header,omitempty"`
	Editor       string              `json:"editor,omitempty" yaml:"editor,omitempty" toml:"editor,omitempty" jsonschema:"example=text,example=select,example=checkbox"`
	ListItems    []ListItem          `json:"listItems,omitempty" yaml:"listItems,omitempty" toml:"listItems,omitempty"`
	Formatter    string              `json:"formatter,omitempty" yaml:"formatter,omitempty" toml:"formatter,omitempty" jsonschema:"description=listItemText or a literal text shown in every cell"`
	EscapeHTML   bool                `json:"escapeHTML,omitempty" yaml:"escapeHTML,omitempty" toml:"escapeHTML,omitempty"`
	DefaultValue any                 `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty" toml:"defaultValue,omitempty"`
	ClassName    string              `json:"className,omitempty" yaml:"className,omitempty" toml:"className,omitempty"`
	Disabled     bool                `json:"disabled,omitempty" yaml:"disabled,omitempty" toml:"disabled,omitempty"`
	Hidden       bool                `json:"hidden,omitempty" yaml:"hidden,omitempty" toml:"hidden,omitempty"`
	Sortable     bool                `json:"sortable,omitempty" yaml:"sortable,omitempty" toml:"sortable,omitempty"`
	SortingType  string              `json:"sortingType,omitempty" yaml:"sortingType,omitempty" toml:"sortingType,omitempty" jsonschema:"enum=asc,enum=desc"`
	Validation   *Validation         `json:"validation,omitempty" yaml:"validation,omitempty" toml:"validation,omitempty"`
	Relations    map[string]Relation `json:"relations,omitempty" yaml:"relations,omitempty" toml:"relations,omitempty" jsonschema:"description=Relations keyed by target column"`
}

// ListItem is one choice of a select, radio or checkbox editor.
type ListItem struct {
	Text  string `json:"text" yaml:"text" toml:"text"`
	Value any    `json:"value" yaml:"value" toml:"value"`
}

// Validation lists the rules checked on every cell of a column.
type Validation struct {
	Required bool     `json:"required,omitempty" yaml:"required,omitempty" toml:"required,omitempty"`
	DataType string   `json:"dataType,omitempty" yaml:"dataType,omitempty" toml:"dataType,omitempty" jsonschema:"enum=string,enum=number"`
	Min      *float64 `json:"min,omitempty" yaml:"min,omitempty" toml:"min,omitempty"`
	Max      *float64 `json:"max,omitempty" yaml:"max,omitempty" toml:"max,omitempty"`
	RegExp   string   `json:"regExp,omitempty" yaml:"regExp,omitempty" toml:"regExp,omitempty"`
}

// Relation is a declarative relation: each map is keyed by the text of the
// source value. The key "*" matches any value without its own entry.
type Relation struct {
	Editable  map[string]bool       `json:"editable,omitempty" yaml:"editable,omitempty" toml:"editable,omitempty"`
	Disabled  map[string]bool       `json:"disabled,omitempty" yaml:"disabled,omitempty" toml:"disabled,omitempty"`
	ListItems map[string][]ListItem `json:"listItems,omitempty" yaml:"listItems,omitempty" toml:"listItems,omitempty"`
}

// Load reads and parses a configuration file. The format follows the
// extension.
//
// The path is provided by the CLI user, so file inclusion is expected.
func Load(path string) (*File, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path) //nolint:gosec // User-specified configuration path
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}
	return Parse(data, format)
}

// Parse parses a configuration from bytes.
func Parse(data []byte, format Format) (*File, error) {
	var f File
	switch format {
	case YAML:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse configuration: %w", err)
		}
	case TOML:
		if _, err := toml.Decode(string(data), &f); err != nil {
			return nil, fmt.Errorf("failed to parse configuration: %w", err)
		}
	case JSON:
		d := json.NewDecoder(bytes.NewReader(data))
		d.DisallowUnknownFields()
		d.UseNumber()
		if err := d.Decode(&f); err != nil {
			return nil, fmt.Errorf("failed to parse configuration: %w", err)
		}
		f.normalizeNumbers()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks the fields that cannot be checked by the grid itself.
func (f *File) Validate() error {
	for i := range f.Columns {
		c := &f.Columns[i]
		if c.Name == "" {
			return fmt.Errorf("%w: column %d: name is required", ErrInvalid, i)
		}
		switch grid.SortingType(c.SortingType) {
		case "", grid.SortingAsc, grid.SortingDesc:
		default:
			return fmt.Errorf("%w: column %q: unknown sortingType %q", ErrInvalid, c.Name, c.SortingType)
		}
		if v := c.Validation; v != nil {
			switch grid.DataType(v.DataType) {
			case "", grid.DataTypeString, grid.DataTypeNumber:
			default:
				return fmt.Errorf("%w: column %q: unknown dataType %q", ErrInvalid, c.Name, v.DataType)
			}
			if v.RegExp != "" {
				if _, err := regexp.Compile(v.RegExp); err != nil {
					return fmt.Errorf("%w: column %q: %w", ErrInvalid, c.Name, err)
				}
			}
		}
	}
	for _, h := range f.RowHeaders {
		if !grid.IsRowHeader(h) {
			return fmt.Errorf("%w: unknown row header %q", ErrInvalid, h)
		}
	}
	return nil
}

// normalizeNumbers converts the json.Number values left by UseNumber into
// int64 when whole and float64 otherwise, like the YAML and TOML decoders.
func (f *File) normalizeNumbers() {
	for i := range f.Columns {
		c := &f.Columns[i]
		c.DefaultValue = normalizeNumber(c.DefaultValue)
		normalizeItems(c.ListItems)
		for _, r := range c.Relations {
			for _, items := range r.ListItems {
				normalizeItems(items)
			}
		}
	}
}

func normalizeItems(items []ListItem) {
	for i := range items {
		items[i].Value = normalizeNumber(items[i].Value)
	}
}

func normalizeNumber(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}
