package export

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewLegacyParams_UnknownKeys(t *testing.T) {
	p := NewLegacyParams(map[string]any{
		"element":   "img",
		"region":    "polygon",
		"crs":       "EPSG:4326",
		"assetId":   "users/me/a",
		"formatOps": nil,
	})

	if diff := cmp.Diff([]string{"crs", "formatOps", "region"}, p.Unknown); diff != "" {
		t.Errorf("Unknown mismatch (-want +got):\n%s", diff)
	}
	if got := p.AssetID.Text(); got == nil || *got != "users/me/a" {
		t.Errorf("AssetID = %v, want users/me/a", got)
	}
}

func TestParseLegacyParamsJSON(t *testing.T) {
	p, err := ParseLegacyParamsJSON([]byte(`{"element": {"result": "0"}, "maxPixels": 10000000000000, "writePublicTiles": null}`))
	if err != nil {
		t.Fatalf("ParseLegacyParamsJSON() unexpected error: %v", err)
	}

	if got := p.MaxPixels.Text(); got == nil || *got != "10000000000000" {
		t.Errorf("MaxPixels = %v, want 10000000000000", got)
	}
	if !p.WritePublicTiles.IsNull() {
		t.Error("explicit null should read as absent")
	}
	if p.Element.IsNull() {
		t.Error("Element should be set")
	}

	if _, err := ParseLegacyParamsJSON([]byte(`[1, 2]`)); err == nil {
		t.Error("ParseLegacyParamsJSON() expected error for a non-object document")
	}
}

func TestLegacyParams_WithID(t *testing.T) {
	p := NewLegacyParams(map[string]any{"element": "img", "extra": 1})
	withID := p.WithID("abc")

	if !p.ID.IsNull() {
		t.Error("WithID mutated the receiver")
	}
	if got := withID.ID.Text(); got == nil || *got != "abc" {
		t.Errorf("ID = %v, want abc", got)
	}
	withID.Unknown[0] = "changed"
	if p.Unknown[0] != "extra" {
		t.Error("WithID shares the Unknown slice with the receiver")
	}
}

func TestGuessDestination(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]any
		want   Destination
	}{
		{name: "empty", params: map[string]any{}, want: DestinationDrive},
		{name: "drive folder only", params: map[string]any{"driveFolder": "f"}, want: DestinationDrive},
		{name: "bucket", params: map[string]any{"outputBucket": "b"}, want: DestinationGCS},
		{name: "prefix", params: map[string]any{"outputPrefix": "p"}, want: DestinationGCS},
		{name: "bucket wins over asset", params: map[string]any{"outputBucket": "b", "assetId": "a"}, want: DestinationGCS},
		{name: "asset", params: map[string]any{"assetId": "a"}, want: DestinationAsset},
		{name: "null bucket", params: map[string]any{"outputBucket": nil, "assetId": "a"}, want: DestinationAsset},
		{name: "empty bucket string is present", params: map[string]any{"outputBucket": ""}, want: DestinationGCS},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GuessDestination(NewLegacyParams(tt.params)); got != tt.want {
				t.Errorf("GuessDestination() = %s, want %s", got, tt.want)
			}
		})
	}

	if got := GuessDestination(nil); got != DestinationDrive {
		t.Errorf("GuessDestination(nil) = %s, want DRIVE", got)
	}
}

func TestDestination_String(t *testing.T) {
	for d, want := range map[Destination]string{
		DestinationDrive: "DRIVE",
		DestinationGCS:   "GOOGLE_CLOUD_STORAGE",
		DestinationAsset: "ASSET",
		Destination(9):   "Destination(9)",
	} {
		if got := d.String(); got != want {
			t.Errorf("Destination(%d).String() = %q, want %q", int(d), got, want)
		}
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		input   string
		want    Kind
		wantErr bool
	}{
		{input: "image", want: KindImage},
		{input: "VideoMap", want: KindVideoMap},
		{input: "EXPORT_IMAGE", want: KindImage},
		{input: "EXPORT_FEATURES", want: KindTable},
		{input: "export_video", want: KindVideo},
		{input: "EXPORT_TILES", want: KindMap},
		{input: "EXPORT_VIDEO_MAP", want: KindVideoMap},
		{input: "EXPORT_CLASSIFIER", want: KindClassifier},
		{input: "thumbnail", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseKind(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownKind) {
					t.Errorf("ParseKind(%q) error = %v, want ErrUnknownKind", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseKind(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValue_Truthy(t *testing.T) {
	tests := []struct {
		input any
		want  bool
	}{
		{nil, false},
		{false, false},
		{true, true},
		{0, false},
		{0.0, false},
		{math.NaN(), false},
		{json.Number("0"), false},
		{json.Number("2"), true},
		{"", false},
		{"0", true},
		{[]any{}, true},
		{map[string]any{}, true},
	}

	for _, tt := range tests {
		if got := ValueOf(tt.input).Truthy(); got != tt.want {
			t.Errorf("ValueOf(%#v).Truthy() = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestValue_Text(t *testing.T) {
	tests := []struct {
		input any
		want  *string
	}{
		{nil, nil},
		{"abc", ptr("abc")},
		{12, ptr("12")},
		{1e13, ptr("10000000000000")},
		{0.25, ptr("0.25")},
		{json.Number("123456789012345678"), ptr("123456789012345678")},
		{true, ptr("true")},
		{[]any{"a", 1}, ptr("a,1")},
	}

	for _, tt := range tests {
		got := ValueOf(tt.input).Text()
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("ValueOf(%#v).Text() mismatch (-want +got):\n%s", tt.input, diff)
		}
	}
}

func TestValue_Numbers(t *testing.T) {
	if n, err := ValueOf(nil).Number(); n != nil || err != nil {
		t.Errorf("Number() of null = %v, %v; want nil, nil", n, err)
	}
	if n, err := ValueOf(" 2.5 ").Number(); err != nil || *n != 2.5 {
		t.Errorf("Number() of numeric string = %v, %v; want 2.5", n, err)
	}
	if _, err := ValueOf("abc").Number(); !errors.Is(err, ErrInvalidNumber) {
		t.Errorf("Number() of abc error = %v, want ErrInvalidNumber", err)
	}
	if _, err := ValueOf([]any{1}).Number(); !errors.Is(err, ErrInvalidNumber) {
		t.Errorf("Number() of array error = %v, want ErrInvalidNumber", err)
	}
	if n, err := ValueOf(json.Number("42")).Int(); err != nil || *n != 42 {
		t.Errorf("Int() of 42 = %v, %v; want 42", n, err)
	}
	if _, err := ValueOf(2.5).Int(); !errors.Is(err, ErrInvalidNumber) {
		t.Errorf("Int() of 2.5 error = %v, want ErrInvalidNumber", err)
	}
	for _, v := range []any{1e20, json.Number("1e20"), 2147483648.0, -2147483649.0} {
		if _, err := ValueOf(v).Int(); !errors.Is(err, ErrInvalidNumber) {
			t.Errorf("Int() of %v error = %v, want ErrInvalidNumber", v, err)
		}
	}
	if n, err := ValueOf(2147483647.0).Int(); err != nil || *n != 2147483647 {
		t.Errorf("Int() of max int32 = %v, %v; want 2147483647", n, err)
	}
}

func TestValue_TextJSONNumbers(t *testing.T) {
	tests := []struct {
		in   json.Number
		want string
	}{
		{"1e13", "10000000000000"},
		{"1.5e9", "1500000000"},
		{"1E+3", "1000"},
		{"123", "123"},
		{"-42", "-42"},
		{"9007199254740993", "9007199254740993"},
		{"0.5", "0.5"},
		{"2.50", "2.5"},
		{"1e-3", "0.001"},
	}

	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			got := ValueOf(tt.in).Text()
			if got == nil || *got != tt.want {
				t.Errorf("Text() = %v, want %q", got, tt.want)
			}
		})
	}
}

func TestValue_Or(t *testing.T) {
	got := ValueOf(0).Or(ValueOf(256))
	if got.Raw() != 256 {
		t.Errorf("Or() = %v, want 256", got.Raw())
	}
	got = ValueOf(512).Or(ValueOf(256))
	if got.Raw() != 512 {
		t.Errorf("Or() = %v, want 512", got.Raw())
	}
}
