package command

import (
	"encoding/json"
	"fmt"
)

// InvalidOptionError reports a value outside an enumerated attribute's domain.
type InvalidOptionError struct {
	// Name is the logical setting name.
	Name string
	// Value is the rejected value.
	Value any
	// Legal lists every accepted value.
	Legal []any
}

func (e *InvalidOptionError) Error() string {
	legal, err := json.Marshal(e.Legal)
	if err != nil {
		legal = []byte(fmt.Sprint(e.Legal))
	}
	return fmt.Sprintf("command: invalid option for %s: %v, supported only: %s", e.Name, e.Value, legal)
}
