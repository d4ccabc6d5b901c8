package attribute

import "errors"

// Attribute table errors.
var (
	// ErrInvalidRole is returned for an unknown role name.
	ErrInvalidRole = errors.New("attribute: invalid role")

	// ErrDuplicateCode is returned when a table lists a code twice.
	ErrDuplicateCode = errors.New("attribute: duplicate attribute code")

	// ErrDuplicateName is returned when two codes share a logical name.
	ErrDuplicateName = errors.New("attribute: duplicate logical name")

	// ErrEmptyField is returned when a descriptor lacks a code or name.
	ErrEmptyField = errors.New("attribute: descriptor requires code and name")
)
