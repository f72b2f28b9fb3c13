// Package loader reads posts and pages from the content directory.
package loader

import (
	"github.com/folio-blog/folio/internal/folio/config"
	"github.com/folio-blog/folio/internal/folio/content"
	"github.com/folio-blog/folio/internal/folio/markdown"
)

// Site is everything read from the content directory.
type Site struct {
	Posts []*content.Post // newest first
	Pages []*content.Page // by slug
}

// Loader is the interface for loading site content.
type Loader interface {
	Load() (*Site, error)
}

// New creates the markdown loader for cfg.
func New(cfg *config.Config, conv *markdown.Converter) Loader {
	return &MarkdownLoader{
		Dir:           cfg.Paths.Content,
		IncludeDrafts: cfg.Output.IncludeDrafts,
		Converter:     conv,
	}
}
