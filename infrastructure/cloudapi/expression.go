package cloudapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"ee-export/domain/export"
)

// ErrInvalidExpression is returned when an element looks like an encoded
// expression but its result node is missing
var ErrInvalidExpression = errors.New("invalid expression graph")

// constantNodeKey is the value-node id used when wrapping constants
const constantNodeKey = "0"

// ExpressionEncoder implements export.ExpressionEncoder for elements that are
// either already-encoded expression graphs or plain constants
type ExpressionEncoder struct{}

// NewExpressionEncoder creates an ExpressionEncoder
func NewExpressionEncoder() *ExpressionEncoder {
	return &ExpressionEncoder{}
}

// Encode returns the wire encoding of element. A mapping (or JSON text) with
// "result" and "values" is treated as an encoded graph; anything else becomes
// a single constant node.
func (e *ExpressionEncoder) Encode(element any) (json.RawMessage, error) {
	if s, ok := element.(string); ok {
		var decoded map[string]any
		dec := json.NewDecoder(bytes.NewReader([]byte(s)))
		dec.UseNumber()
		if err := dec.Decode(&decoded); err == nil && isGraph(decoded) {
			element = decoded
		}
	}

	if m, ok := element.(map[string]any); ok && isGraph(m) {
		if err := validateGraph(m); err != nil {
			return nil, err
		}
		return json.Marshal(m)
	}

	return json.Marshal(map[string]any{
		"result": constantNodeKey,
		"values": map[string]any{
			constantNodeKey: map[string]any{"constantValue": element},
		},
	})
}

func isGraph(m map[string]any) bool {
	_, hasResult := m["result"]
	_, hasValues := m["values"]
	return hasResult && hasValues
}

func validateGraph(m map[string]any) error {
	result, ok := m["result"].(string)
	if !ok {
		return fmt.Errorf("%w: result must be a string", ErrInvalidExpression)
	}
	values, ok := m["values"].(map[string]any)
	if !ok {
		return fmt.Errorf("%w: values must be a mapping", ErrInvalidExpression)
	}
	if _, ok := values[result]; !ok {
		return fmt.Errorf("%w: result node %q not found", ErrInvalidExpression, result)
	}
	return nil
}

var _ export.ExpressionEncoder = (*ExpressionEncoder)(nil)
