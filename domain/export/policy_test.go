package export

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParsePyramidingPolicy(t *testing.T) {
	tests := []struct {
		name          string
		input         any
		wantDefault   string
		wantOverrides map[string]string
		wantErr       bool
	}{
		{name: "absent", input: nil, wantDefault: PyramidingPolicyUnspecified},
		{name: "empty string", input: "", wantDefault: PyramidingPolicyUnspecified},
		{name: "bare policy name", input: "MEAN", wantDefault: "MEAN"},
		{name: "json encoded name", input: `"MODE"`, wantDefault: "MODE"},
		{
			name:          "json encoded mapping",
			input:         `{".default": "MEAN", "b1": "MIN"}`,
			wantDefault:   "MEAN",
			wantOverrides: map[string]string{"b1": "MIN"},
		},
		{
			name:          "mapping without default",
			input:         map[string]any{"b1": "MAX"},
			wantDefault:   PyramidingPolicyUnspecified,
			wantOverrides: map[string]string{"b1": "MAX"},
		},
		{
			name:        "mapping with only default",
			input:       map[string]any{".default": "SAMPLE"},
			wantDefault: "SAMPLE",
		},
		{
			name:        "empty default is ignored",
			input:       map[string]any{".default": ""},
			wantDefault: PyramidingPolicyUnspecified,
		},
		{name: "non-string band policy", input: map[string]any{"b1": 3}, wantErr: true},
		{name: "json number", input: "5", wantErr: true},
		{name: "list", input: []any{"MEAN"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, overrides, err := ParsePyramidingPolicy(ValueOf(tt.input))
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPyramidingPolicy) {
					t.Errorf("ParsePyramidingPolicy() error = %v, want ErrInvalidPyramidingPolicy", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePyramidingPolicy() unexpected error: %v", err)
			}
			if def != tt.wantDefault {
				t.Errorf("default = %q, want %q", def, tt.wantDefault)
			}
			if diff := cmp.Diff(tt.wantOverrides, overrides); diff != "" {
				t.Errorf("overrides mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseSelectors(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  []string
	}{
		{name: "absent", input: nil, want: nil},
		{name: "empty string", input: "", want: nil},
		{name: "comma separated", input: "a,b,c", want: []string{"a", "b", "c"}},
		{name: "single", input: "a", want: []string{"a"}},
		{name: "list", input: []any{"a", "b"}, want: []string{"a", "b"}},
		{name: "typed list", input: []string{"a", "b"}, want: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSelectors(ValueOf(tt.input))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseSelectors() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseTensorDepths(t *testing.T) {
	got, err := ParseTensorDepths(ValueOf(map[string]any{"B1": 1, "B2": 3.0}))
	if err != nil {
		t.Fatalf("ParseTensorDepths() unexpected error: %v", err)
	}
	if diff := cmp.Diff(map[string]int{"B1": 1, "B2": 3}, got); diff != "" {
		t.Errorf("ParseTensorDepths() mismatch (-want +got):\n%s", diff)
	}

	got, err = ParseTensorDepths(ValueOf(nil))
	if err != nil || got != nil {
		t.Errorf("ParseTensorDepths(nil) = %v, %v; want nil, nil", got, err)
	}

	if _, err := ParseTensorDepths(ValueOf(map[string]any{"B1": 1.5})); !errors.Is(err, ErrInvalidTensorDepths) {
		t.Errorf("ParseTensorDepths() error = %v, want ErrInvalidTensorDepths", err)
	}
}

func TestParseTensorDepths_FlatArray(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  map[string]int
	}{
		{name: "array", value: []any{1.0, 2.0}, want: map[string]int{"0": 1, "1": 2}},
		{name: "json array", value: `[3, 4, 5]`, want: map[string]int{"0": 3, "1": 4, "2": 5}},
		{name: "empty array", value: []any{}, want: map[string]int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTensorDepths(ValueOf(tt.value))
			if err != nil {
				t.Fatalf("ParseTensorDepths() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseTensorDepths() mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if _, err := ParseTensorDepths(ValueOf([]any{1, "x"})); !errors.Is(err, ErrInvalidTensorDepths) {
		t.Errorf("ParseTensorDepths() error = %v, want ErrInvalidTensorDepths", err)
	}
}
