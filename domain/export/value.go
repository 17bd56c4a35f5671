package export

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Value is a single loosely typed legacy parameter value.
// The zero Value is absent; absent and null are indistinguishable.
type Value struct {
	v any
}

// ValueOf wraps a decoded JSON or YAML value
func ValueOf(v any) Value {
	return Value{v: v}
}

// IsNull reports whether the value is absent or null
func (v Value) IsNull() bool {
	return v.v == nil
}

// Raw returns the underlying decoded value
func (v Value) Raw() any {
	return v.v
}

// Truthy follows the legacy truthiness rules: null, false, 0, NaN and "" are false.
func (v Value) Truthy() bool {
	switch x := v.v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	}
	if f, ok := toFloat(v.v); ok {
		return f != 0 && !math.IsNaN(f)
	}
	return true
}

// Or returns v when it is truthy, otherwise other
func (v Value) Or(other Value) Value {
	if v.Truthy() {
		return v
	}
	return other
}

// Text renders the value the way legacy task configs stringify it, or nil when null.
func (v Value) Text() *string {
	if v.IsNull() {
		return nil
	}
	s := stringify(v.v)
	return &s
}

// Number coerces the value to a float, or nil when null.
func (v Value) Number() (*float64, error) {
	if v.IsNull() {
		return nil, nil
	}
	f, ok := toFloat(v.v)
	if !ok {
		if s, isStr := v.v.(string); isStr {
			parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
			}
			f, ok = parsed, true
		}
	}
	if !ok || math.IsNaN(f) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidNumber, v.v)
	}
	return &f, nil
}

// Int coerces the value to an int32-range integer, or nil when null.
// Fractional and out of range values are rejected.
func (v Value) Int() (*int, error) {
	f, err := v.Number()
	if err != nil || f == nil {
		return nil, err
	}
	if *f != math.Trunc(*f) || math.IsInf(*f, 0) {
		return nil, fmt.Errorf("%w: %v is not an integer", ErrInvalidNumber, v.v)
	}
	if *f < math.MinInt32 || *f > math.MaxInt32 {
		return nil, fmt.Errorf("%w: %v is out of range", ErrInvalidNumber, v.v)
	}
	i := int(*f)
	return &i, nil
}

// toFloat converts the numeric types produced by encoding/json and yaml.v3
func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return formatJSONNumber(x)
	case bool:
		return strconv.FormatBool(x)
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			if e != nil {
				parts[i] = stringify(e)
			}
		}
		return strings.Join(parts, ",")
	}
	if f, ok := toFloat(v); ok {
		return formatNumber(f)
	}
	return fmt.Sprint(v)
}

// formatJSONNumber keeps integer literals exact and expands exponent or
// fractional literals to plain decimals.
func formatJSONNumber(n json.Number) string {
	s := n.String()
	if isIntegerLiteral(s) {
		return s
	}
	f, _, err := big.ParseFloat(s, 10, 256, big.ToNearestEven)
	if err != nil {
		return s
	}
	if f.IsInt() {
		i, _ := f.Int(nil)
		return i.String()
	}
	if v, err := n.Float64(); err == nil {
		return formatNumber(v)
	}
	return s
}

func isIntegerLiteral(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// formatNumber keeps integral values free of exponents so int64 fields survive transport
func formatNumber(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	if math.IsInf(f, 1) {
		return "Infinity"
	}
	if math.IsInf(f, -1) {
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
