package taskfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "task.json", `{
  "type": "EXPORT_IMAGE",
  "element": "USGS/SRTMGL1_003",
  "maxPixels": 10000000000000,
  "fileDimensions": [256, 512],
  "region": "ignored"
}`)

	params, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if got := params.MaxPixels.Text(); got == nil || *got != "10000000000000" {
		t.Errorf("MaxPixels = %v, want 10000000000000", got)
	}
	if got := params.Type.Text(); got == nil || *got != "EXPORT_IMAGE" {
		t.Errorf("Type = %v, want EXPORT_IMAGE", got)
	}
	if len(params.Unknown) != 1 || params.Unknown[0] != "region" {
		t.Errorf("Unknown = %v, want [region]", params.Unknown)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "task.yaml", `
element: USGS/SRTMGL1_003
outputBucket: forest-cover
tfrecordTensorDepths:
  B4: 1
  B8: 2
selectors: [a, b]
`)

	params, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	depths, ok := params.TFRecordTensorDepths.Raw().(map[string]any)
	if !ok || len(depths) != 2 {
		t.Errorf("TFRecordTensorDepths = %#v, want a two entry mapping", params.TFRecordTensorDepths.Raw())
	}
	if params.OutputBucket.IsNull() {
		t.Error("OutputBucket should be set")
	}
}

func TestLoad_Stdin(t *testing.T) {
	params, err := Load(Stdin, strings.NewReader(`{"element": 1, "assetId": "users/me/a"}`))
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if params.AssetID.IsNull() {
		t.Error("AssetID should be set")
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name        string
		path        func(t *testing.T) string
		errContains string
	}{
		{
			name:        "missing file",
			path:        func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.json") },
			errContains: "failed to read task file",
		},
		{
			name:        "invalid json",
			path:        func(t *testing.T) string { return writeFile(t, "bad.json", `{"element": `) },
			errContains: "failed to parse task file",
		},
		{
			name:        "invalid yaml",
			path:        func(t *testing.T) string { return writeFile(t, "bad.yml", "element: [") },
			errContains: "failed to parse task file",
		},
		{
			name:        "empty yaml",
			path:        func(t *testing.T) string { return writeFile(t, "empty.yaml", "") },
			errContains: "document is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path(t), nil)
			if err == nil {
				t.Fatal("Load() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("Load() error = %v, want error containing %q", err, tt.errContains)
			}
		})
	}
}
