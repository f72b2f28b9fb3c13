package output

import (
	"encoding/json"

	"github.com/folio-blog/folio/internal/folio/config"
)

// GenerateManifest generates a PWA manifest.json.
func GenerateManifest(cfg *config.Config) string {
	manifest := map[string]interface{}{
		"name":             cfg.Site.Name,
		"short_name":       cfg.Site.Name,
		"description":      cfg.Site.Description,
		"lang":             cfg.Site.Language,
		"start_url":        "/",
		"display":          "standalone",
		"background_color": "#FFFFFF",
		"theme_color":      "#F05138",
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}
