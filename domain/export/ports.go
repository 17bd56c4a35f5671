package export

import (
	"context"
	"encoding/json"
)

// ExpressionEncoder serializes an element into the wire-level expression encoding.
// Failures propagate unchanged.
type ExpressionEncoder interface {
	Encode(element any) (json.RawMessage, error)
}

// AssetNamer maps a legacy asset id to a fully-qualified asset resource name
type AssetNamer interface {
	AssetName(assetID string) string
}

// FormatMapper maps legacy format strings to Cloud API format enums.
// An empty format selects the default for the export type.
type FormatMapper interface {
	ImageFileFormat(format string) (string, error)
	TableFileFormat(format string) (string, error)
}

// Operation is a submitted long-running export
type Operation struct {
	Name string
	Done bool
}

// Submitter starts an export in a cloud project
// This is a port implemented by the Earth Engine API adapter
type Submitter interface {
	Submit(ctx context.Context, project string, req Request) (*Operation, error)
}

// BucketChecker reports whether a Cloud Storage bucket exists and is visible
type BucketChecker interface {
	BucketExists(ctx context.Context, bucket string) (bool, error)
}

// FolderFinder reports whether a Drive folder with the given name exists
type FolderFinder interface {
	FolderExists(ctx context.Context, name string) (bool, error)
}
