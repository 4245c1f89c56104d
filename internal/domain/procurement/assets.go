package procurement

import (
	"fmt"
	"strings"

	"github.com/crestline/kitforge/internal/domain/project"
	"github.com/google/uuid"
)

const assetBaseURL = "https://assets.kitforge.dev"

// buildProductionAssets generates the fixed three-asset manifest for a
// project entering production: vector artwork, a mockup render, and the
// manufacturing spec sheet.
func buildProductionAssets(title string) []project.ProductionAsset {
	slug := slugify(title)
	specs := []struct {
		assetType project.AssetType
		suffix    string
	}{
		{project.AssetVector, "artwork.svg"},
		{project.AssetMockup, "mockup.png"},
		{project.AssetSpecSheet, "spec-sheet.pdf"},
	}

	assets := make([]project.ProductionAsset, 0, len(specs))
	for _, spec := range specs {
		assets = append(assets, project.ProductionAsset{
			ID:          uuid.NewString(),
			Type:        spec.assetType,
			FileName:    fmt.Sprintf("%s-%s", slug, spec.suffix),
			DownloadURL: fmt.Sprintf("%s/%s/%s", assetBaseURL, slug, spec.suffix),
		})
	}
	return assets
}

// slugify lowercases the title and collapses runs of non-alphanumeric
// characters into single hyphens.
func slugify(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
