package export

import "fmt"

// Cloud API image file formats that carry format-specific options
const (
	FormatGeoTIFF       = "GEO_TIFF"
	FormatTFRecordImage = "TF_RECORD_IMAGE"
	FormatMP4           = "MP4"
)

func (c *Converter) imageFileExportOptions(p *LegacyParams, dest Destination) (*ImageFileExportOptions, error) {
	format, err := c.formats.ImageFileFormat(optionalString(p.FileFormat))
	if err != nil {
		return nil, err
	}

	result := &ImageFileExportOptions{FileFormat: format}
	switch format {
	case FormatGeoTIFF:
		result.GeoTiffOptions, err = geoTiffOptions(p)
	case FormatTFRecordImage:
		result.TfRecordOptions, err = tfRecordOptions(p)
	}
	if err != nil {
		return nil, err
	}

	if dest == DestinationGCS {
		result.GcsDestination = gcsDestination(p)
	} else {
		result.DriveDestination = driveDestination(p)
	}
	return result, nil
}

func (c *Converter) tableFileExportOptions(p *LegacyParams, dest Destination) (*TableFileExportOptions, error) {
	format, err := c.formats.TableFileFormat(optionalString(p.FileFormat))
	if err != nil {
		return nil, err
	}

	result := &TableFileExportOptions{FileFormat: format}
	if dest == DestinationGCS {
		result.GcsDestination = gcsDestination(p)
	} else {
		result.DriveDestination = driveDestination(p)
	}
	return result, nil
}

func (c *Converter) imageAssetExportOptions(p *LegacyParams) (*ImageAssetExportOptions, error) {
	policy, overrides, err := ParsePyramidingPolicy(p.PyramidingPolicy)
	if err != nil {
		return nil, err
	}
	tileSize, err := p.ShardSize.Int()
	if err != nil {
		return nil, fmt.Errorf("shardSize: %w", err)
	}

	return &ImageAssetExportOptions{
		EarthEngineDestination:    c.earthEngineDestination(p),
		PyramidingPolicy:          policy,
		PyramidingPolicyOverrides: overrides,
		TileSize:                  tileSize,
	}, nil
}

func (c *Converter) earthEngineDestination(p *LegacyParams) *EarthEngineDestination {
	return &EarthEngineDestination{Name: c.assets.AssetName(optionalString(p.AssetID))}
}

func geoTiffOptions(p *LegacyParams) (*GeoTiffImageExportOptions, error) {
	if p.FileDimensions.Truthy() && p.TiffFileDimensions.Truthy() {
		return nil, fmt.Errorf(`%w: cannot set both "fileDimensions" and "tiffFileDimensions"`, ErrConflictingOptions)
	}

	dims, err := ParseGridDimensions(p.FileDimensions.Or(p.TiffFileDimensions))
	if err != nil {
		return nil, err
	}
	tileSize, err := p.TiffShardSize.Or(p.ShardSize).Int()
	if err != nil {
		return nil, fmt.Errorf("shardSize: %w", err)
	}

	return &GeoTiffImageExportOptions{
		CloudOptimized: p.TiffCloudOptimized.Truthy(),
		// skipEmptyTiles is the historical name of tiffSkipEmptyFiles
		SkipEmptyFiles: p.SkipEmptyTiles.Truthy() || p.TiffSkipEmptyFiles.Truthy(),
		TileDimensions: dims,
		TileSize:       tileSize,
	}, nil
}

func tfRecordOptions(p *LegacyParams) (*TfRecordImageExportOptions, error) {
	maskedRatio, err := p.TFRecordMaskedThreshold.Number()
	if err != nil {
		return nil, fmt.Errorf("tfrecordMaskedThreshold: %w", err)
	}
	defaultValue, err := p.TFRecordDefaultValue.Number()
	if err != nil {
		return nil, fmt.Errorf("tfrecordDefaultValue: %w", err)
	}
	patch, err := ParseGridDimensions(p.TFRecordPatchDimensions)
	if err != nil {
		return nil, fmt.Errorf("tfrecordPatchDimensions: %w", err)
	}
	kernel, err := ParseGridDimensions(p.TFRecordKernelSize)
	if err != nil {
		return nil, fmt.Errorf("tfrecordKernelSize: %w", err)
	}
	depths, err := ParseTensorDepths(p.TFRecordTensorDepths)
	if err != nil {
		return nil, err
	}

	return &TfRecordImageExportOptions{
		Compress:         p.TFRecordCompressed.Truthy(),
		MaxSizeBytes:     p.TFRecordMaxFileSize.Text(),
		SequenceData:     p.TFRecordSequenceData.Truthy(),
		CollapseBands:    p.TFRecordCollapseBands.Truthy(),
		MaxMaskedRatio:   maskedRatio,
		DefaultValue:     defaultValue,
		TileDimensions:   patch,
		MarginDimensions: kernel,
		TensorDepths:     depths,
	}, nil
}

func videoFileExportOptions(p *LegacyParams, dest Destination) *VideoFileExportOptions {
	result := &VideoFileExportOptions{FileFormat: FormatMP4}
	if dest == DestinationGCS {
		result.GcsDestination = gcsDestination(p)
	} else {
		result.DriveDestination = driveDestination(p)
	}
	return result
}

// videoOptions builds encoding options; video map exports have no per-frame pixel limit.
func videoOptions(p *LegacyParams, withMaxPixels bool) (*VideoOptions, error) {
	fps, err := p.FramesPerSecond.Number()
	if err != nil {
		return nil, fmt.Errorf("framesPerSecond: %w", err)
	}
	maxFrames, err := p.MaxFrames.Int()
	if err != nil {
		return nil, fmt.Errorf("maxFrames: %w", err)
	}

	opts := &VideoOptions{
		FramesPerSecond: fps,
		MaxFrames:       maxFrames,
	}
	if withMaxPixels {
		opts.MaxPixelsPerFrame = p.MaxPixels.Text()
	}
	return opts, nil
}

func tileOptions(p *LegacyParams) (*TileOptions, error) {
	var maxZoom, minZoom, stride, zoomMin, zoomMax *int
	fields := []struct {
		key string
		v   Value
		out **int
	}{
		{"maxZoom", p.MaxZoom, &maxZoom},
		{"minZoom", p.MinZoom, &minZoom},
		{"stride", p.Stride, &stride},
		{"minTimeMachineZoomSubset", p.MinTimeMachineZoomSubset, &zoomMin},
		{"maxTimeMachineZoomSubset", p.MaxTimeMachineZoomSubset, &zoomMax},
	}
	for _, f := range fields {
		n, err := f.v.Int()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.key, err)
		}
		*f.out = n
	}

	scale, err := p.Scale.Number()
	if err != nil {
		return nil, fmt.Errorf("scale: %w", err)
	}
	dims, err := ParseGridDimensions(p.TileDimensions)
	if err != nil {
		return nil, fmt.Errorf("tileDimensions: %w", err)
	}

	return &TileOptions{
		MaxZoom:        maxZoom,
		Scale:          scale,
		MinZoom:        minZoom,
		SkipEmptyTiles: p.SkipEmptyTiles.Truthy(),
		MapsAPIKey:     p.MapsAPIKey.Text(),
		TileDimensions: dims,
		Stride:         stride,
		ZoomSubset:     NewZoomSubset(zoomMin, zoomMax),
	}, nil
}

func gcsDestination(p *LegacyParams) *GcsDestination {
	var permissions *Permissions
	if !p.WritePublicTiles.IsNull() {
		acl := PermissionsDefaultObjectACL
		if p.WritePublicTiles.Truthy() {
			acl = PermissionsPublic
		}
		permissions = &acl
	}

	var cors []string
	if p.BucketCorsURIs.Truthy() {
		cors = stringList(p.BucketCorsURIs.Raw())
	}

	return &GcsDestination{
		Bucket:         p.OutputBucket.Text(),
		FilenamePrefix: p.OutputPrefix.Text(),
		BucketCorsURIs: cors,
		Permissions:    permissions,
	}
}

func driveDestination(p *LegacyParams) *DriveDestination {
	return &DriveDestination{
		Folder:         p.DriveFolder.Text(),
		FilenamePrefix: p.DriveFileNamePrefix.Text(),
	}
}

func optionalString(v Value) string {
	if s := v.Text(); s != nil {
		return *s
	}
	return ""
}

func stringList(raw any) []string {
	switch x := raw.(type) {
	case []string:
		return append([]string(nil), x...)
	case []any:
		out := make([]string, 0, len(x))
		for _, e := range x {
			if e != nil {
				out = append(out, stringify(e))
			}
		}
		return out
	}
	return []string{stringify(raw)}
}
