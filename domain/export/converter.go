package export

import (
	"encoding/json"
	"fmt"
)

// Converter turns legacy export task parameters into export requests.
// It holds no state besides its collaborators and is safe for concurrent use.
type Converter struct {
	encoder ExpressionEncoder
	assets  AssetNamer
	formats FormatMapper
}

// NewConverter creates a Converter
func NewConverter(encoder ExpressionEncoder, assets AssetNamer, formats FormatMapper) *Converter {
	return &Converter{
		encoder: encoder,
		assets:  assets,
		formats: formats,
	}
}

// Convert builds the request for the given kind
func (c *Converter) Convert(kind Kind, p *LegacyParams) (Request, error) {
	switch kind {
	case KindImage:
		return c.ImageRequest(p)
	case KindTable:
		return c.TableRequest(p)
	case KindVideo:
		return c.VideoRequest(p)
	case KindMap:
		return c.MapRequest(p)
	case KindVideoMap:
		return c.VideoMapRequest(p)
	case KindClassifier:
		return c.ClassifierRequest(p)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// expression checks for the element and encodes it
func (c *Converter) expression(p *LegacyParams) (json.RawMessage, error) {
	if p == nil || p.Element.IsNull() {
		return nil, ErrMissingElement
	}
	return c.encoder.Encode(p.Element.Raw())
}

// ImageRequest converts params into an ExportImageRequest
func (c *Converter) ImageRequest(p *LegacyParams) (*ExportImageRequest, error) {
	expr, err := c.expression(p)
	if err != nil {
		return nil, err
	}

	req := &ExportImageRequest{
		Expression:  expr,
		Description: p.Description.Text(),
		MaxPixels:   p.MaxPixels.Text(),
		RequestID:   p.ID.Text(),
	}

	switch dest := GuessDestination(p); dest {
	case DestinationGCS, DestinationDrive:
		req.FileExportOptions, err = c.imageFileExportOptions(p, dest)
	case DestinationAsset:
		req.AssetExportOptions, err = c.imageAssetExportOptions(p)
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedDestination, dest)
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

// TableRequest converts params into an ExportTableRequest
func (c *Converter) TableRequest(p *LegacyParams) (*ExportTableRequest, error) {
	expr, err := c.expression(p)
	if err != nil {
		return nil, err
	}

	maxErrorMeters, err := p.MaxErrorMeters.Number()
	if err != nil {
		return nil, fmt.Errorf("maxErrorMeters: %w", err)
	}
	maxVertices, err := p.MaxVertices.Int()
	if err != nil {
		return nil, fmt.Errorf("maxVertices: %w", err)
	}

	req := &ExportTableRequest{
		Expression:     expr,
		Description:    p.Description.Text(),
		Selectors:      ParseSelectors(p.Selectors),
		MaxErrorMeters: maxErrorMeters,
		RequestID:      p.ID.Text(),
		MaxVertices:    maxVertices,
	}

	switch dest := GuessDestination(p); dest {
	case DestinationGCS, DestinationDrive:
		req.FileExportOptions, err = c.tableFileExportOptions(p, dest)
	case DestinationAsset:
		req.AssetExportOptions = &TableAssetExportOptions{
			EarthEngineDestination: c.earthEngineDestination(p),
		}
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedDestination, dest)
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

// VideoRequest converts params into an ExportVideoRequest.
// Videos have no asset export, so only Cloud Storage and Drive are accepted.
func (c *Converter) VideoRequest(p *LegacyParams) (*ExportVideoRequest, error) {
	expr, err := c.expression(p)
	if err != nil {
		return nil, err
	}

	dest := GuessDestination(p)
	if dest != DestinationGCS && dest != DestinationDrive {
		return nil, fmt.Errorf("%w: %s for video export", ErrUnsupportedDestination, dest)
	}

	video, err := videoOptions(p, true)
	if err != nil {
		return nil, err
	}

	return &ExportVideoRequest{
		Expression:        expr,
		Description:       p.Description.Text(),
		VideoOptions:      video,
		FileExportOptions: videoFileExportOptions(p, dest),
		RequestID:         p.ID.Text(),
	}, nil
}

// MapRequest converts params into an ExportMapRequest. Tiles always go to Cloud Storage.
func (c *Converter) MapRequest(p *LegacyParams) (*ExportMapRequest, error) {
	expr, err := c.expression(p)
	if err != nil {
		return nil, err
	}

	tiles, err := tileOptions(p)
	if err != nil {
		return nil, err
	}
	fileOptions, err := c.imageFileExportOptions(p, DestinationGCS)
	if err != nil {
		return nil, err
	}

	return &ExportMapRequest{
		Expression:        expr,
		Description:       p.Description.Text(),
		TileOptions:       tiles,
		TileExportOptions: fileOptions,
		RequestID:         p.ID.Text(),
	}, nil
}

// VideoMapRequest converts params into an ExportVideoMapRequest. Tiles always go to Cloud Storage.
func (c *Converter) VideoMapRequest(p *LegacyParams) (*ExportVideoMapRequest, error) {
	expr, err := c.expression(p)
	if err != nil {
		return nil, err
	}

	video, err := videoOptions(p, false)
	if err != nil {
		return nil, err
	}
	tiles, err := tileOptions(p)
	if err != nil {
		return nil, err
	}

	return &ExportVideoMapRequest{
		Expression:        expr,
		Description:       p.Description.Text(),
		VideoOptions:      video,
		TileOptions:       tiles,
		TileExportOptions: videoFileExportOptions(p, DestinationGCS),
		RequestID:         p.ID.Text(),
		Version:           p.Version.Text(),
	}, nil
}

// ClassifierRequest converts params into an ExportClassifierRequest. Only asset export exists.
func (c *Converter) ClassifierRequest(p *LegacyParams) (*ExportClassifierRequest, error) {
	expr, err := c.expression(p)
	if err != nil {
		return nil, err
	}

	if dest := GuessDestination(p); dest != DestinationAsset {
		return nil, fmt.Errorf("%w: %s for classifier export", ErrUnsupportedDestination, dest)
	}

	return &ExportClassifierRequest{
		Expression:  expr,
		Description: p.Description.Text(),
		RequestID:   p.ID.Text(),
		AssetExportOptions: &ClassifierAssetExportOptions{
			EarthEngineDestination: c.earthEngineDestination(p),
		},
	}, nil
}
