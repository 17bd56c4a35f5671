package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// PyramidingPolicyUnspecified is used when no default policy is given
const PyramidingPolicyUnspecified = "PYRAMIDING_POLICY_UNSPECIFIED"

// defaultPolicyKey holds the default policy inside a per-band policy mapping
const defaultPolicyKey = ".default"

// ParsePyramidingPolicy splits a legacy pyramidingPolicy value into the default
// policy and the per-band overrides. The value may be a policy name, a JSON
// encoded name or mapping, or a mapping. Overrides is nil when empty.
func ParsePyramidingPolicy(v Value) (string, map[string]string, error) {
	if !v.Truthy() {
		return PyramidingPolicyUnspecified, nil, nil
	}

	raw := v.Raw()
	if s, ok := raw.(string); ok {
		var decoded any
		if err := decodeJSON(s, &decoded); err == nil {
			raw = decoded
		}
	}

	switch x := raw.(type) {
	case string:
		return x, nil, nil
	case map[string]any:
		def := PyramidingPolicyUnspecified
		overrides := make(map[string]string, len(x))
		for band, policy := range x {
			name, ok := policy.(string)
			if !ok {
				return "", nil, fmt.Errorf("%w: band %q has policy %v", ErrInvalidPyramidingPolicy, band, policy)
			}
			if band == defaultPolicyKey {
				if name != "" {
					def = name
				}
				continue
			}
			overrides[band] = name
		}
		if len(overrides) == 0 {
			overrides = nil
		}
		return def, overrides, nil
	}
	return "", nil, fmt.Errorf("%w: %v", ErrInvalidPyramidingPolicy, raw)
}

// ParseTensorDepths reads a band-to-depth mapping, or a flat array of depths,
// given directly or as a JSON string
func ParseTensorDepths(v Value) (map[string]int, error) {
	if v.IsNull() {
		return nil, nil
	}

	raw := v.Raw()
	if s, ok := raw.(string); ok {
		var decoded any
		if err := decodeJSON(s, &decoded); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTensorDepths, err)
		}
		raw = decoded
	}

	var m map[string]any
	switch x := raw.(type) {
	case map[string]any:
		m = x
	case []any:
		// Legacy flat arrays are keyed by position.
		m = make(map[string]any, len(x))
		for i, depth := range x {
			m[strconv.Itoa(i)] = depth
		}
	default:
		return nil, fmt.Errorf("%w: got %T", ErrInvalidTensorDepths, raw)
	}

	depths := make(map[string]int, len(m))
	for band, depth := range m {
		f, ok := toFloat(depth)
		if !ok || f != math.Trunc(f) {
			return nil, fmt.Errorf("%w: band %q has depth %v", ErrInvalidTensorDepths, band, depth)
		}
		depths[band] = int(f)
	}
	return depths, nil
}

// ParseSelectors accepts a comma-separated string or a list and returns a list
func ParseSelectors(v Value) []string {
	if !v.Truthy() {
		return nil
	}
	switch x := v.Raw().(type) {
	case string:
		return strings.Split(x, ",")
	case []string:
		return append([]string(nil), x...)
	case []any:
		selectors := make([]string, len(x))
		for i, s := range x {
			if s != nil {
				selectors[i] = stringify(s)
			}
		}
		return selectors
	}
	return []string{stringify(v.Raw())}
}

func decodeJSON(s string, out any) error {
	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("unexpected data after JSON value")
	}
	return nil
}
