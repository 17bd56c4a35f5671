package export

import (
	"bytes"
	"encoding/json"
	"sort"
)

// LegacyParams is the typed form of a legacy export task parameter bag.
// Each field corresponds to one recognized legacy key.
type LegacyParams struct {
	Type        Value
	Element     Value
	Description Value
	ID          Value

	AssetID             Value
	OutputBucket        Value
	OutputPrefix        Value
	BucketCorsURIs      Value
	WritePublicTiles    Value
	DriveFolder         Value
	DriveFileNamePrefix Value

	FileFormat Value
	MaxPixels  Value
	ShardSize  Value

	FileDimensions     Value
	TiffFileDimensions Value
	TiffShardSize      Value
	TiffCloudOptimized Value
	TiffSkipEmptyFiles Value
	SkipEmptyTiles     Value

	TFRecordCompressed      Value
	TFRecordMaxFileSize     Value
	TFRecordSequenceData    Value
	TFRecordCollapseBands   Value
	TFRecordMaskedThreshold Value
	TFRecordDefaultValue    Value
	TFRecordPatchDimensions Value
	TFRecordKernelSize      Value
	TFRecordTensorDepths    Value

	PyramidingPolicy Value

	Selectors      Value
	MaxErrorMeters Value
	MaxVertices    Value

	FramesPerSecond Value
	MaxFrames       Value

	MaxZoom                  Value
	MinZoom                  Value
	Scale                    Value
	MapsAPIKey               Value
	TileDimensions           Value
	Stride                   Value
	MinTimeMachineZoomSubset Value
	MaxTimeMachineZoomSubset Value
	Version                  Value

	// Unknown lists keys that were present in the source bag but not recognized.
	Unknown []string
}

var legacyKeys = map[string]func(*LegacyParams) *Value{
	"type":                     func(p *LegacyParams) *Value { return &p.Type },
	"element":                  func(p *LegacyParams) *Value { return &p.Element },
	"description":              func(p *LegacyParams) *Value { return &p.Description },
	"id":                       func(p *LegacyParams) *Value { return &p.ID },
	"assetId":                  func(p *LegacyParams) *Value { return &p.AssetID },
	"outputBucket":             func(p *LegacyParams) *Value { return &p.OutputBucket },
	"outputPrefix":             func(p *LegacyParams) *Value { return &p.OutputPrefix },
	"bucketCorsUris":           func(p *LegacyParams) *Value { return &p.BucketCorsURIs },
	"writePublicTiles":         func(p *LegacyParams) *Value { return &p.WritePublicTiles },
	"driveFolder":              func(p *LegacyParams) *Value { return &p.DriveFolder },
	"driveFileNamePrefix":      func(p *LegacyParams) *Value { return &p.DriveFileNamePrefix },
	"fileFormat":               func(p *LegacyParams) *Value { return &p.FileFormat },
	"maxPixels":                func(p *LegacyParams) *Value { return &p.MaxPixels },
	"shardSize":                func(p *LegacyParams) *Value { return &p.ShardSize },
	"fileDimensions":           func(p *LegacyParams) *Value { return &p.FileDimensions },
	"tiffFileDimensions":       func(p *LegacyParams) *Value { return &p.TiffFileDimensions },
	"tiffShardSize":            func(p *LegacyParams) *Value { return &p.TiffShardSize },
	"tiffCloudOptimized":       func(p *LegacyParams) *Value { return &p.TiffCloudOptimized },
	"tiffSkipEmptyFiles":       func(p *LegacyParams) *Value { return &p.TiffSkipEmptyFiles },
	"skipEmptyTiles":           func(p *LegacyParams) *Value { return &p.SkipEmptyTiles },
	"tfrecordCompressed":       func(p *LegacyParams) *Value { return &p.TFRecordCompressed },
	"tfrecordMaxFileSize":      func(p *LegacyParams) *Value { return &p.TFRecordMaxFileSize },
	"tfrecordSequenceData":     func(p *LegacyParams) *Value { return &p.TFRecordSequenceData },
	"tfrecordCollapseBands":    func(p *LegacyParams) *Value { return &p.TFRecordCollapseBands },
	"tfrecordMaskedThreshold":  func(p *LegacyParams) *Value { return &p.TFRecordMaskedThreshold },
	"tfrecordDefaultValue":     func(p *LegacyParams) *Value { return &p.TFRecordDefaultValue },
	"tfrecordPatchDimensions":  func(p *LegacyParams) *Value { return &p.TFRecordPatchDimensions },
	"tfrecordKernelSize":       func(p *LegacyParams) *Value { return &p.TFRecordKernelSize },
	"tfrecordTensorDepths":     func(p *LegacyParams) *Value { return &p.TFRecordTensorDepths },
	"pyramidingPolicy":         func(p *LegacyParams) *Value { return &p.PyramidingPolicy },
	"selectors":                func(p *LegacyParams) *Value { return &p.Selectors },
	"maxErrorMeters":           func(p *LegacyParams) *Value { return &p.MaxErrorMeters },
	"maxVertices":              func(p *LegacyParams) *Value { return &p.MaxVertices },
	"framesPerSecond":          func(p *LegacyParams) *Value { return &p.FramesPerSecond },
	"maxFrames":                func(p *LegacyParams) *Value { return &p.MaxFrames },
	"maxZoom":                  func(p *LegacyParams) *Value { return &p.MaxZoom },
	"minZoom":                  func(p *LegacyParams) *Value { return &p.MinZoom },
	"scale":                    func(p *LegacyParams) *Value { return &p.Scale },
	"mapsApiKey":               func(p *LegacyParams) *Value { return &p.MapsAPIKey },
	"tileDimensions":           func(p *LegacyParams) *Value { return &p.TileDimensions },
	"stride":                   func(p *LegacyParams) *Value { return &p.Stride },
	"minTimeMachineZoomSubset": func(p *LegacyParams) *Value { return &p.MinTimeMachineZoomSubset },
	"maxTimeMachineZoomSubset": func(p *LegacyParams) *Value { return &p.MaxTimeMachineZoomSubset },
	"version":                  func(p *LegacyParams) *Value { return &p.Version },
}

// NewLegacyParams maps a decoded parameter bag onto LegacyParams.
// Unrecognized keys are collected in Unknown rather than dropped silently.
func NewLegacyParams(bag map[string]any) *LegacyParams {
	p := &LegacyParams{}
	for key, raw := range bag {
		field, ok := legacyKeys[key]
		if !ok {
			p.Unknown = append(p.Unknown, key)
			continue
		}
		*field(p) = ValueOf(raw)
	}
	sort.Strings(p.Unknown)
	return p
}

// ParseLegacyParamsJSON decodes a JSON object, keeping numbers in their original text form
func ParseLegacyParamsJSON(data []byte) (*LegacyParams, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var bag map[string]any
	if err := dec.Decode(&bag); err != nil {
		return nil, err
	}
	return NewLegacyParams(bag), nil
}

// WithID returns a copy of the params with the request id replaced
func (p *LegacyParams) WithID(id string) *LegacyParams {
	clone := *p
	clone.Unknown = append([]string(nil), p.Unknown...)
	clone.ID = ValueOf(id)
	return &clone
}
