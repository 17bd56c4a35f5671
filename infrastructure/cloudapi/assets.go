package cloudapi

import (
	"regexp"

	"ee-export/domain/export"
)

const (
	legacyAssetRoot = "projects/earthengine-legacy/assets/"
	publicAssetRoot = "projects/earthengine-public/assets/"
)

// cloudAssetNameRegex matches names that are already fully qualified
var cloudAssetNameRegex = regexp.MustCompile(`^projects/((?:\w+(?:[\w\-]+\.[\w\-]+)*?\.\w+:)?[a-z][a-z0-9\-]{4,28}[a-z0-9])/assets/.*$`)

// legacyAssetIDRegex matches user and project rooted legacy ids
var legacyAssetIDRegex = regexp.MustCompile(`^(users|projects)/.*`)

// AssetNamer implements export.AssetNamer
type AssetNamer struct{}

// NewAssetNamer creates an AssetNamer
func NewAssetNamer() *AssetNamer {
	return &AssetNamer{}
}

// AssetName maps a legacy asset id to a Cloud API asset name
func (a *AssetNamer) AssetName(assetID string) string {
	switch {
	case cloudAssetNameRegex.MatchString(assetID):
		return assetID
	case legacyAssetIDRegex.MatchString(assetID):
		return legacyAssetRoot + assetID
	default:
		return publicAssetRoot + assetID
	}
}

var _ export.AssetNamer = (*AssetNamer)(nil)
