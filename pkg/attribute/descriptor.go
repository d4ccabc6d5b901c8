// Package attribute holds the attribute descriptor table that maps the
// device's compact attribute codes to logical names, roles and enumerated
// option values.
//
// The table is data supplied by the host integration. DefaultTable carries
// the values known for the air purifier family; LoadTable reads a replacement
// from YAML.
package attribute

import (
	"fmt"
	"strconv"
)

// Option is one entry of an enumerated attribute: the code the device uses
// on the wire and the value it stands for.
type Option struct {
	Code  string `yaml:"code"`
	Value any    `yaml:"value"`
}

// Descriptor describes a single attribute code.
type Descriptor struct {
	Code    string   `yaml:"code"`
	Name    string   `yaml:"name"`
	Role    Role     `yaml:"role"`
	Options []Option `yaml:"options,omitempty"`
}

// Controllable reports whether commands may set this attribute.
func (d Descriptor) Controllable() bool {
	return d.Role == RoleControl
}

// Enumerated reports whether the attribute has an option table.
func (d Descriptor) Enumerated() bool {
	return len(d.Options) > 0
}

// CodeFor returns the option code whose value loosely equals v.
// Equality follows the device's own coercion rules: booleans compare as 1/0,
// numeric strings compare as numbers, everything else compares as text.
func (d Descriptor) CodeFor(v any) (string, bool) {
	for _, opt := range d.Options {
		if LooseEqual(opt.Value, v) {
			return opt.Code, true
		}
	}
	return "", false
}

// ValueFor returns the value for a raw reported code. The reported value is
// matched against option codes by its text form, so the number 49408 matches
// the code "49408".
func (d Descriptor) ValueFor(raw any) (any, bool) {
	key := keyString(raw)
	for _, opt := range d.Options {
		if opt.Code == key {
			return opt.Value, true
		}
	}
	return nil, false
}

// LegalValues lists the option values in table order.
func (d Descriptor) LegalValues() []any {
	values := make([]any, len(d.Options))
	for i, opt := range d.Options {
		values[i] = opt.Value
	}
	return values
}

// LooseEqual compares two primitive values the way the device firmware's
// scripting layer does for option lookup. Two strings compare as text;
// otherwise numeric operands are coerced.
func LooseEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	sa, aStr := a.(string)
	sb, bStr := b.(string)
	if aStr && bStr {
		return sa == sb
	}

	na, aNum := toNumber(a)
	nb, bNum := toNumber(b)
	if aNum && bNum {
		return na == nb
	}

	_, aBool := a.(bool)
	_, bBool := b.(bool)
	if aBool || bBool {
		// A boolean against a non-numeric string never matches.
		return false
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

// toNumber coerces booleans, numeric kinds and numeric strings to float64.
func toNumber(v any) (float64, bool) {
	switch x := v.(type) {
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// keyString renders a reported value the way it would appear as an option
// code.
func keyString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	default:
		return fmt.Sprint(v)
	}
}
