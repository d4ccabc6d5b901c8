package attribute

import (
	"fmt"
	"strings"
)

// Role tags what an attribute is used for.
type Role int

const (
	// RoleTelemetry is a read-only measurement (humidity, pm25, ...).
	RoleTelemetry Role = iota
	// RoleControl is a setting that commands may change.
	RoleControl
	// RoleDevice is device information (name, firmware, uptime, ...).
	RoleDevice
	// RoleFilter is filter type or remaining lifetime.
	RoleFilter
)

// String returns the string representation of the role.
func (r Role) String() string {
	switch r {
	case RoleTelemetry:
		return "telemetry"
	case RoleControl:
		return "control"
	case RoleDevice:
		return "device"
	case RoleFilter:
		return "filter"
	default:
		return "unknown"
	}
}

// ParseRole parses the string form of a role.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "telemetry":
		return RoleTelemetry, nil
	case "control":
		return RoleControl, nil
	case "device":
		return RoleDevice, nil
	case "filter":
		return RoleFilter, nil
	default:
		return RoleTelemetry, fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(text []byte) error {
	v, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}
