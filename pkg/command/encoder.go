// Package command turns caller settings, keyed by logical name, into the
// device's desired-state document keyed by attribute code.
package command

import (
	"github.com/backkem/airpurifier/pkg/attribute"
)

// Fixed metadata carried by every desired-state document.
const (
	MetaCommandType = "CommandType"
	MetaDeviceID    = "DeviceId"
	MetaEnduserID   = "EnduserId"

	// CommandTypeApp identifies commands issued by an application client.
	CommandTypeApp = "app"
)

// Settings maps logical setting names (e.g. "power", "fanSpeed") to target
// values. It is consumed once per command.
type Settings map[string]any

// Payload maps attribute codes to encoded values.
type Payload map[string]any

// Document is the control request body before encryption.
type Document struct {
	State DesiredState `json:"state"`
}

// DesiredState wraps the desired attribute values.
type DesiredState struct {
	Desired Payload `json:"desired"`
}

// Encoder validates and encodes settings against an attribute table.
type Encoder struct {
	table *attribute.Table
}

// NewEncoder creates an encoder. A nil table selects attribute.DefaultTable.
func NewEncoder(table *attribute.Table) *Encoder {
	if table == nil {
		table = attribute.DefaultTable()
	}
	return &Encoder{table: table}
}

// Build encodes settings into an attribute-code payload.
//
// Only controllable attributes are considered. Enumerated values are reverse
// looked up in the option table and rejected with *InvalidOptionError when
// no option matches; other values pass through unchanged. Names that match no
// controllable attribute are ignored.
func (e *Encoder) Build(settings Settings) (Payload, error) {
	payload := make(Payload)
	for _, d := range e.table.Controls() {
		value, ok := settings[d.Name]
		if !ok {
			continue
		}

		if !d.Enumerated() {
			payload[d.Code] = value
			continue
		}

		code, ok := d.CodeFor(value)
		if !ok {
			return nil, &InvalidOptionError{
				Name:  d.Name,
				Value: value,
				Legal: d.LegalValues(),
			}
		}
		payload[d.Code] = code
	}
	return payload, nil
}

// Document builds the full control document: the encoded payload plus the
// fixed command metadata.
func (e *Encoder) Document(settings Settings) (*Document, error) {
	payload, err := e.Build(settings)
	if err != nil {
		return nil, err
	}

	desired := Payload{
		MetaCommandType: CommandTypeApp,
		MetaDeviceID:    "",
		MetaEnduserID:   "",
	}
	for code, v := range payload {
		desired[code] = v
	}
	return &Document{State: DesiredState{Desired: desired}}, nil
}
