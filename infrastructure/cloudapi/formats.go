package cloudapi

import (
	"fmt"
	"strings"

	"ee-export/domain/export"
)

// Default formats when a task does not name one
const (
	DefaultImageFileFormat = "AUTO_JPEG_PNG"
	DefaultTableFileFormat = "CSV"
)

var imageFormatAliases = map[string]string{
	"JPG":                     "JPEG",
	"AUTO":                    "AUTO_JPEG_PNG",
	"TIF":                     "GEO_TIFF",
	"TIFF":                    "GEO_TIFF",
	"GEOTIF":                  "GEO_TIFF",
	"GEOTIFF":                 "GEO_TIFF",
	"TF_RECORD":               "TF_RECORD_IMAGE",
	"TFRECORD":                "TF_RECORD_IMAGE",
	"NUMPY":                   "NPY",
	"ZIPPED_TIF":              "ZIPPED_GEO_TIFF",
	"ZIPPED_TIFF":             "ZIPPED_GEO_TIFF",
	"ZIPPED_GEOTIFF":          "ZIPPED_GEO_TIFF",
	"ZIPPED_TIF_PER_BAND":     "ZIPPED_GEO_TIFF_PER_BAND",
	"ZIPPED_TIFF_PER_BAND":    "ZIPPED_GEO_TIFF_PER_BAND",
	"ZIPPED_GEOTIFF_PER_BAND": "ZIPPED_GEO_TIFF_PER_BAND",
}

var imageFormats = map[string]bool{
	"JPEG":                     true,
	"PNG":                      true,
	"AUTO_JPEG_PNG":            true,
	"NPY":                      true,
	"GEO_TIFF":                 true,
	"TF_RECORD_IMAGE":          true,
	"ZIPPED_GEO_TIFF":          true,
	"ZIPPED_GEO_TIFF_PER_BAND": true,
}

var tableFormatAliases = map[string]string{
	"TF_RECORD": "TF_RECORD_TABLE",
	"TFRECORD":  "TF_RECORD_TABLE",
	"JSON":      "GEO_JSON",
	"GEOJSON":   "GEO_JSON",
}

var tableFormats = map[string]bool{
	"CSV":             true,
	"GEO_JSON":        true,
	"KML":             true,
	"KMZ":             true,
	"SHP":             true,
	"TF_RECORD_TABLE": true,
	"PARQUET":         true,
}

// FormatMapper implements export.FormatMapper
type FormatMapper struct{}

// NewFormatMapper creates a FormatMapper
func NewFormatMapper() *FormatMapper {
	return &FormatMapper{}
}

// ImageFileFormat maps a legacy image format name to its Cloud API enum
func (f *FormatMapper) ImageFileFormat(format string) (string, error) {
	return resolveFormat(format, DefaultImageFileFormat, imageFormatAliases, imageFormats)
}

// TableFileFormat maps a legacy table format name to its Cloud API enum
func (f *FormatMapper) TableFileFormat(format string) (string, error) {
	return resolveFormat(format, DefaultTableFileFormat, tableFormatAliases, tableFormats)
}

func resolveFormat(format, def string, aliases map[string]string, known map[string]bool) (string, error) {
	upper := strings.ToUpper(strings.TrimSpace(format))
	if upper == "" {
		return def, nil
	}
	if alias, ok := aliases[upper]; ok {
		return alias, nil
	}
	if known[upper] {
		return upper, nil
	}
	return "", fmt.Errorf("%w: %q", export.ErrUnknownFileFormat, format)
}

var _ export.FormatMapper = (*FormatMapper)(nil)
