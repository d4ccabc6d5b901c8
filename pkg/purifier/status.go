package purifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/backkem/airpurifier/pkg/message"
)

// Status is one decoded status notification.
type Status struct {
	// Reported is the reported state keyed by attribute code.
	Reported map[string]any

	// Values is Reported renamed to logical names with option codes decoded.
	Values map[string]any
}

// Ack is a device acknowledgement to a control request.
type Ack struct {
	// Raw is the response body as received.
	Raw []byte

	// Body is the parsed document, nil when the body could not be parsed.
	Body map[string]any
}

const statusSchemaDoc = `{
	"type": "object",
	"properties": {
		"state": {
			"type": "object",
			"properties": {
				"reported": {
					"type": "object",
					"additionalProperties": {
						"type": ["string", "number", "boolean", "null"]
					}
				}
			}
		}
	}
}`

var statusSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader([]byte(statusSchemaDoc)))
	if err != nil {
		return nil, err
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("status.json", doc); err != nil {
		return nil, err
	}
	return c.Compile("status.json")
})

// parseStatus parses a decrypted status document and returns its reported
// state. ok is false when the document carries no reported state.
func parseStatus(plaintext []byte) (reported map[string]any, ok bool, err error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(plaintext))
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrParse, err)
	}

	schema, err := statusSchema()
	if err != nil {
		return nil, false, fmt.Errorf("compile status schema: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrParse, err)
	}

	// Decode again with the standard decoder so numbers are float64.
	var status struct {
		State struct {
			Reported map[string]any `json:"reported"`
		} `json:"state"`
	}
	if err := json.Unmarshal(plaintext, &status); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if status.State.Reported == nil {
		return nil, false, nil
	}
	return status.State.Reported, true, nil
}

// parseAck parses a control acknowledgement. Devices answer either in
// cleartext JSON or with an envelope.
func parseAck(secret, raw []byte) (*Ack, error) {
	ack := &Ack{Raw: raw}

	body := bytes.TrimSpace(raw)
	if len(body) > 0 && body[0] != '{' {
		plaintext, err := message.Open(secret, body)
		if err != nil {
			return ack, fmt.Errorf("%w: acknowledgement: %w", ErrParse, err)
		}
		body = plaintext
	}

	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		return ack, fmt.Errorf("%w: acknowledgement: %v", ErrParse, err)
	}
	ack.Body = doc
	return ack, nil
}
