package export

import (
	"fmt"
	"strings"
)

// Destination is where exported output is written
type Destination int

const (
	DestinationDrive Destination = iota
	DestinationGCS
	DestinationAsset
)

// String returns the legacy wire name of the destination
func (d Destination) String() string {
	switch d {
	case DestinationDrive:
		return "DRIVE"
	case DestinationGCS:
		return "GOOGLE_CLOUD_STORAGE"
	case DestinationAsset:
		return "ASSET"
	}
	return fmt.Sprintf("Destination(%d)", int(d))
}

// GuessDestination infers the destination from which legacy keys are set.
// Cloud Storage wins over asset, and Drive is the default.
func GuessDestination(p *LegacyParams) Destination {
	if p == nil {
		return DestinationDrive
	}
	if !p.OutputBucket.IsNull() || !p.OutputPrefix.IsNull() {
		return DestinationGCS
	}
	if !p.AssetID.IsNull() {
		return DestinationAsset
	}
	return DestinationDrive
}

// Kind selects the export request shape
type Kind string

const (
	KindImage      Kind = "image"
	KindTable      Kind = "table"
	KindVideo      Kind = "video"
	KindMap        Kind = "map"
	KindVideoMap   Kind = "videomap"
	KindClassifier Kind = "classifier"
)

// legacyTaskTypes maps legacy task "type" values to kinds
var legacyTaskTypes = map[string]Kind{
	"EXPORT_IMAGE":      KindImage,
	"EXPORT_FEATURES":   KindTable,
	"EXPORT_VIDEO":      KindVideo,
	"EXPORT_TILES":      KindMap,
	"EXPORT_VIDEO_MAP":  KindVideoMap,
	"EXPORT_CLASSIFIER": KindClassifier,
}

// ParseKind accepts either a kind name or a legacy task type
func ParseKind(s string) (Kind, error) {
	s = strings.TrimSpace(s)
	if k, ok := legacyTaskTypes[strings.ToUpper(s)]; ok {
		return k, nil
	}
	switch k := Kind(strings.ToLower(s)); k {
	case KindImage, KindTable, KindVideo, KindMap, KindVideoMap, KindClassifier:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}
