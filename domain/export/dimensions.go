package export

import (
	"fmt"
	"strings"
)

// ParseGridDimensions accepts "HxW", "H,W", [H, W], [S], S or {height, width}.
// A null value yields nil so callers can leave the dimensions unset.
func ParseGridDimensions(v Value) (*GridDimensions, error) {
	if v.IsNull() {
		return nil, nil
	}

	raw := v.Raw()
	if s, ok := raw.(string); ok {
		switch {
		case strings.Contains(s, "x"):
			raw = splitDimensions(s, "x")
		case strings.Contains(s, ","):
			raw = splitDimensions(s, ",")
		default:
			return nil, fmt.Errorf("%w: %q", ErrInvalidDimensions, s)
		}
	}

	if items, ok := asSlice(raw); ok {
		switch len(items) {
		case 2:
			return newGrid(items[0], items[1])
		case 1:
			return newGrid(items[0], items[0])
		default:
			return nil, fmt.Errorf("%w: %v", ErrInvalidDimensions, raw)
		}
	}

	if _, ok := toFloat(raw); ok {
		return newGrid(raw, raw)
	}

	if m, ok := raw.(map[string]any); ok && m["height"] != nil && m["width"] != nil {
		return newGrid(m["height"], m["width"])
	}

	return nil, fmt.Errorf("%w: %v", ErrInvalidDimensions, raw)
}

func splitDimensions(s, sep string) []any {
	parts := strings.Split(s, sep)
	items := make([]any, len(parts))
	for i, p := range parts {
		items[i] = strings.TrimSpace(p)
	}
	return items
}

func asSlice(raw any) ([]any, bool) {
	switch x := raw.(type) {
	case []any:
		return x, true
	case []int:
		items := make([]any, len(x))
		for i, n := range x {
			items[i] = n
		}
		return items, true
	case []float64:
		items := make([]any, len(x))
		for i, n := range x {
			items[i] = n
		}
		return items, true
	}
	return nil, false
}

func newGrid(height, width any) (*GridDimensions, error) {
	h, err := gridSide(height)
	if err != nil {
		return nil, err
	}
	w, err := gridSide(width)
	if err != nil {
		return nil, err
	}
	return &GridDimensions{Height: h, Width: w}, nil
}

func gridSide(raw any) (int, error) {
	n, err := ValueOf(raw).Int()
	if err != nil || n == nil {
		return 0, fmt.Errorf("%w: side %v", ErrInvalidDimensions, raw)
	}
	if *n < 0 {
		return 0, fmt.Errorf("%w: negative side %d", ErrInvalidDimensions, *n)
	}
	return *n, nil
}

// NewZoomSubset returns nil when neither bound is set; min defaults to 0.
func NewZoomSubset(min, max *int) *ZoomSubset {
	if min == nil && max == nil {
		return nil
	}
	zero := 0
	subset := &ZoomSubset{Min: &zero, Max: max}
	if min != nil {
		subset.Min = min
	}
	return subset
}
