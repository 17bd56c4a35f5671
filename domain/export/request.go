package export

import "encoding/json"

// Request is one of the six export request records.
// Field names and nesting follow the batch API wire schema; absent values encode as null.
type Request interface {
	Kind() Kind
}

// ExportImageRequest exports an image to files or an asset
type ExportImageRequest struct {
	Expression         json.RawMessage          `json:"expression"`
	Description        *string                  `json:"description"`
	FileExportOptions  *ImageFileExportOptions  `json:"fileExportOptions"`
	AssetExportOptions *ImageAssetExportOptions `json:"assetExportOptions"`
	MaxPixels          *string                  `json:"maxPixels"`
	RequestID          *string                  `json:"requestId"`
}

// ExportTableRequest exports a feature collection to files or a table asset
type ExportTableRequest struct {
	Expression         json.RawMessage          `json:"expression"`
	Description        *string                  `json:"description"`
	FileExportOptions  *TableFileExportOptions  `json:"fileExportOptions"`
	AssetExportOptions *TableAssetExportOptions `json:"assetExportOptions"`
	Selectors          []string                 `json:"selectors"`
	MaxErrorMeters     *float64                 `json:"maxErrorMeters"`
	RequestID          *string                  `json:"requestId"`
	MaxVertices        *int                     `json:"maxVertices"`
}

// ExportVideoRequest exports an image collection as a video file
type ExportVideoRequest struct {
	Expression        json.RawMessage         `json:"expression"`
	Description       *string                 `json:"description"`
	VideoOptions      *VideoOptions           `json:"videoOptions"`
	FileExportOptions *VideoFileExportOptions `json:"fileExportOptions"`
	RequestID         *string                 `json:"requestId"`
}

// ExportMapRequest exports map tiles to Cloud Storage
type ExportMapRequest struct {
	Expression        json.RawMessage         `json:"expression"`
	Description       *string                 `json:"description"`
	TileOptions       *TileOptions            `json:"tileOptions"`
	TileExportOptions *ImageFileExportOptions `json:"tileExportOptions"`
	RequestID         *string                 `json:"requestId"`
}

// ExportVideoMapRequest exports video map tiles to Cloud Storage
type ExportVideoMapRequest struct {
	Expression        json.RawMessage         `json:"expression"`
	Description       *string                 `json:"description"`
	VideoOptions      *VideoOptions           `json:"videoOptions"`
	TileOptions       *TileOptions            `json:"tileOptions"`
	TileExportOptions *VideoFileExportOptions `json:"tileExportOptions"`
	RequestID         *string                 `json:"requestId"`
	Version           *string                 `json:"version"`
}

// ExportClassifierRequest exports a trained classifier as an asset
type ExportClassifierRequest struct {
	Expression         json.RawMessage               `json:"expression"`
	Description        *string                       `json:"description"`
	RequestID          *string                       `json:"requestId"`
	AssetExportOptions *ClassifierAssetExportOptions `json:"assetExportOptions"`
}

// Kind returns KindImage
func (*ExportImageRequest) Kind() Kind {
	return KindImage
}

// Kind returns KindTable
func (*ExportTableRequest) Kind() Kind {
	return KindTable
}

// Kind returns KindVideo
func (*ExportVideoRequest) Kind() Kind {
	return KindVideo
}

// Kind returns KindMap
func (*ExportMapRequest) Kind() Kind {
	return KindMap
}

// Kind returns KindVideoMap
func (*ExportVideoMapRequest) Kind() Kind {
	return KindVideoMap
}

// Kind returns KindClassifier
func (*ExportClassifierRequest) Kind() Kind {
	return KindClassifier
}

// ImageFileExportOptions describes an image written as files
type ImageFileExportOptions struct {
	GcsDestination   *GcsDestination             `json:"gcsDestination"`
	DriveDestination *DriveDestination           `json:"driveDestination"`
	GeoTiffOptions   *GeoTiffImageExportOptions  `json:"geoTiffOptions"`
	TfRecordOptions  *TfRecordImageExportOptions `json:"tfRecordOptions"`
	FileFormat       string                      `json:"fileFormat"`
}

// ImageAssetExportOptions describes an image written as an asset
type ImageAssetExportOptions struct {
	EarthEngineDestination    *EarthEngineDestination `json:"earthEngineDestination"`
	PyramidingPolicy          string                  `json:"pyramidingPolicy"`
	PyramidingPolicyOverrides map[string]string       `json:"pyramidingPolicyOverrides"`
	TileSize                  *int                    `json:"tileSize"`
}

// TableFileExportOptions describes a table written as files
type TableFileExportOptions struct {
	GcsDestination   *GcsDestination   `json:"gcsDestination"`
	DriveDestination *DriveDestination `json:"driveDestination"`
	FileFormat       string            `json:"fileFormat"`
}

// TableAssetExportOptions describes a table written as an asset
type TableAssetExportOptions struct {
	EarthEngineDestination *EarthEngineDestination `json:"earthEngineDestination"`
}

// ClassifierAssetExportOptions describes a classifier written as an asset
type ClassifierAssetExportOptions struct {
	EarthEngineDestination *EarthEngineDestination `json:"earthEngineDestination"`
}

// VideoFileExportOptions describes a video written as files
type VideoFileExportOptions struct {
	GcsDestination   *GcsDestination   `json:"gcsDestination"`
	DriveDestination *DriveDestination `json:"driveDestination"`
	FileFormat       string            `json:"fileFormat"`
}

// GeoTiffImageExportOptions holds GEO_TIFF specific settings
type GeoTiffImageExportOptions struct {
	CloudOptimized bool            `json:"cloudOptimized"`
	SkipEmptyFiles bool            `json:"skipEmptyFiles"`
	TileDimensions *GridDimensions `json:"tileDimensions"`
	TileSize       *int            `json:"tileSize"`
}

// TfRecordImageExportOptions holds TF_RECORD_IMAGE specific settings
type TfRecordImageExportOptions struct {
	Compress         bool            `json:"compress"`
	MaxSizeBytes     *string         `json:"maxSizeBytes"`
	SequenceData     bool            `json:"sequenceData"`
	CollapseBands    bool            `json:"collapseBands"`
	MaxMaskedRatio   *float64        `json:"maxMaskedRatio"`
	DefaultValue     *float64        `json:"defaultValue"`
	TileDimensions   *GridDimensions `json:"tileDimensions"`
	MarginDimensions *GridDimensions `json:"marginDimensions"`
	TensorDepths     map[string]int  `json:"tensorDepths"`
}

// VideoOptions holds video encoding settings
type VideoOptions struct {
	FramesPerSecond   *float64 `json:"framesPerSecond"`
	MaxFrames         *int     `json:"maxFrames"`
	MaxPixelsPerFrame *string  `json:"maxPixelsPerFrame"`
}

// TileOptions holds map tiling settings
type TileOptions struct {
	MaxZoom        *int            `json:"maxZoom"`
	Scale          *float64        `json:"scale"`
	MinZoom        *int            `json:"minZoom"`
	SkipEmptyTiles bool            `json:"skipEmptyTiles"`
	MapsAPIKey     *string         `json:"mapsApiKey"`
	TileDimensions *GridDimensions `json:"tileDimensions"`
	Stride         *int            `json:"stride"`
	ZoomSubset     *ZoomSubset     `json:"zoomSubset"`
}

// GridDimensions is a tile, patch or kernel size
type GridDimensions struct {
	Height int `json:"height"`
	Width  int `json:"width"`
}

// ZoomSubset is an inclusive zoom range restricting tiled output
type ZoomSubset struct {
	Min *int `json:"min"`
	Max *int `json:"max"`
}

// Permissions is the object ACL applied to Cloud Storage output
type Permissions string

const (
	PermissionsPublic           Permissions = "PUBLIC"
	PermissionsDefaultObjectACL Permissions = "DEFAULT_OBJECT_ACL"
)

// GcsDestination is a Cloud Storage output location
type GcsDestination struct {
	Bucket         *string      `json:"bucket"`
	FilenamePrefix *string      `json:"filenamePrefix"`
	BucketCorsURIs []string     `json:"bucketCorsUris"`
	Permissions    *Permissions `json:"permissions"`
}

// DriveDestination is a Drive output location
type DriveDestination struct {
	Folder         *string `json:"folder"`
	FilenamePrefix *string `json:"filenamePrefix"`
}

// EarthEngineDestination is a named asset
type EarthEngineDestination struct {
	Name string `json:"name"`
}
