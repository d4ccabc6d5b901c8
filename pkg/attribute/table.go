package attribute

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Table is an ordered, immutable set of descriptors indexed by code and by
// logical name.
type Table struct {
	order  []Descriptor
	byCode map[string]int
	byName map[string]int
}

// NewTable builds a table, rejecting duplicate codes or names.
func NewTable(descriptors []Descriptor) (*Table, error) {
	t := &Table{
		order:  make([]Descriptor, 0, len(descriptors)),
		byCode: make(map[string]int, len(descriptors)),
		byName: make(map[string]int, len(descriptors)),
	}

	for _, d := range descriptors {
		if d.Code == "" || d.Name == "" {
			return nil, fmt.Errorf("%w: %+v", ErrEmptyField, d)
		}
		if _, ok := t.byCode[d.Code]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCode, d.Code)
		}
		if _, ok := t.byName[d.Name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, d.Name)
		}
		t.byCode[d.Code] = len(t.order)
		t.byName[d.Name] = len(t.order)
		t.order = append(t.order, d)
	}

	return t, nil
}

// tableFile is the YAML layout accepted by LoadTable.
type tableFile struct {
	Attributes []Descriptor `yaml:"attributes"`
}

// LoadTable reads a table from YAML:
//
//	attributes:
//	  - code: pwr
//	    name: power
//	    role: control
//	    options:
//	      - {code: "1", value: true}
//	      - {code: "0", value: false}
func LoadTable(r io.Reader) (*Table, error) {
	var f tableFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode attribute table: %w", err)
	}
	return NewTable(f.Attributes)
}

// Lookup returns the descriptor for an attribute code.
func (t *Table) Lookup(code string) (Descriptor, bool) {
	i, ok := t.byCode[code]
	if !ok {
		return Descriptor{}, false
	}
	return t.order[i], true
}

// ByName returns the descriptor for a logical name.
func (t *Table) ByName(name string) (Descriptor, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Descriptor{}, false
	}
	return t.order[i], true
}

// Controls returns the controllable descriptors in table order.
func (t *Table) Controls() []Descriptor {
	var out []Descriptor
	for _, d := range t.order {
		if d.Controllable() {
			out = append(out, d)
		}
	}
	return out
}

// Len returns the number of descriptors.
func (t *Table) Len() int {
	return len(t.order)
}

// Decode renames reported attribute codes to logical names and maps option
// codes to their values. Codes missing from the table, and option codes
// missing from an attribute's option table, pass through unchanged.
// The input map is not modified.
func (t *Table) Decode(reported map[string]any) map[string]any {
	out := make(map[string]any, len(reported))
	for code, raw := range reported {
		d, ok := t.Lookup(code)
		if !ok {
			out[code] = raw
			continue
		}
		if v, ok := d.ValueFor(raw); ok {
			out[d.Name] = v
		} else {
			out[d.Name] = raw
		}
	}
	return out
}
