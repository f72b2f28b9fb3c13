// Package render executes the site templates. Every page context carries the
// navigation bar and footer rendered for that page, so the entry for the page
// being viewed shows as plain text instead of a link.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path"

	"github.com/folio-blog/folio/internal/folio/changelog"
	"github.com/folio-blog/folio/internal/folio/config"
	"github.com/folio-blog/folio/internal/folio/content"
	"github.com/folio-blog/folio/internal/folio/nav"
	"github.com/folio-blog/folio/internal/folio/taxonomy"
)

//go:embed theme/*
var theme embed.FS

// Template names.
const (
	HomepageTemplate      = "homepage.html"
	PostListTemplate      = "post_list.html"
	PostTemplate          = "post.html"
	HubTemplate           = "hub.html"
	TaxonomyIndexTemplate = "taxonomy_index.html"
	PageTemplate          = "page.html"
	ChangelogTemplate     = "changelog.html"
	NotFoundTemplate      = "404.html"
	stylesTemplate        = "_styles.css"
)

// Engine is the template rendering engine.
type Engine struct {
	tmpl  *template.Template
	cfg   *config.Config
	menus nav.Menus
}

// Base holds the fields every page template uses.
type Base struct {
	Site         config.SiteConfig
	Title        string
	Description  string
	URL          string
	CanonicalURL string
	Nav          template.HTML
	Footer       template.HTML
	JsonLD       template.HTML
	Breadcrumbs  []Breadcrumb
	OG           OGMeta
	FeedURL      string
}

// HomepageContext is the template context for the homepage.
type HomepageContext struct {
	Base
	Recent     []*content.Post
	Categories taxonomy.Taxonomy
	PostCount  int
}

// PostListContext is the template context for the paginated post archive.
type PostListContext struct {
	Base
	Posts      []*content.Post
	Pagination taxonomy.PaginationInfo
}

// PostContext is the template context for a single post.
type PostContext struct {
	Base
	Post  *content.Post
	Newer *content.Post
	Older *content.Post
}

// HubPageContext is the template context for category and tag hub pages.
type HubPageContext struct {
	Base
	Taxonomy   taxonomy.Taxonomy
	Entry      taxonomy.Entry
	Posts      []*content.Post
	Pagination taxonomy.PaginationInfo
}

// TaxonomyIndexContext is the template context for taxonomy index pages.
type TaxonomyIndexContext struct {
	Base
	Taxonomy   taxonomy.Taxonomy
	Entries    []taxonomy.Entry
	TopEntries []taxonomy.Entry
}

// StaticPageContext is the template context for standalone pages.
type StaticPageContext struct {
	Base
	Page *content.Page
}

// ChangelogContext is the template context for the changelog page.
type ChangelogContext struct {
	Base
	Releases []changelog.Release
}

// NotFoundContext is the template context for the 404 page.
type NotFoundContext struct {
	Base
}

// Breadcrumb is a single breadcrumb entry.
type Breadcrumb struct {
	Name string
	URL  string
}

// OGMeta holds Open Graph and Twitter Card metadata for a page.
type OGMeta struct {
	Title       string
	Description string
	URL         string
	ImageURL    string
	Type        string // "website" for list pages, "article" for posts
	SiteName    string
}

// NameCount is a generic name+count pair used for share images.
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// NewEngine parses the built-in theme and then any templates in
// cfg.Paths.Templates, which replace built-in ones of the same name.
func NewEngine(cfg *config.Config) (*Engine, error) {
	tmpl := template.New("").Funcs(BuildFuncMap())

	builtin, err := fs.Sub(theme, "theme")
	if err != nil {
		return nil, fmt.Errorf("opening built-in theme: %w", err)
	}
	if err := parseDir(tmpl, builtin); err != nil {
		return nil, fmt.Errorf("built-in theme: %w", err)
	}

	if dir := cfg.Paths.Templates; dir != "" {
		if _, err := os.Stat(dir); err != nil {
			return nil, fmt.Errorf("reading template dir %s: %w", dir, err)
		}
		if err := parseDir(tmpl, os.DirFS(dir)); err != nil {
			return nil, err
		}
	}

	return &Engine{tmpl: tmpl, cfg: cfg, menus: cfg.Menus()}, nil
}

func parseDir(tmpl *template.Template, fsys fs.FS) error {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading templates: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := path.Ext(name)
		if ext != ".html" && ext != ".css" {
			continue
		}

		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", name, err)
		}

		if _, err := tmpl.New(name).Parse(string(data)); err != nil {
			return fmt.Errorf("parsing template %s: %w", name, err)
		}
	}
	return nil
}

// NewBase fills the shared fields for the page at urlPath. current is the
// page whose navigation entries render as plain text; nil marks none.
func (e *Engine) NewBase(current *nav.Page, title, description, urlPath string) Base {
	site := e.cfg.Site
	if description == "" {
		description = site.Description
	}
	pageTitle := title
	if pageTitle == "" {
		pageTitle = site.Name
	}

	return Base{
		Site:         site,
		Title:        pageTitle,
		Description:  description,
		URL:          urlPath,
		CanonicalURL: site.BaseURL + urlPath,
		Nav:          e.menus.Navbar(current),
		Footer:       e.menus.Footer(current),
		OG: OGMeta{
			Title:       pageTitle,
			Description: description,
			URL:         site.BaseURL + urlPath,
			Type:        "website",
			SiteName:    site.Name,
		},
		FeedURL: e.feedURL(),
	}
}

func (e *Engine) feedURL() string {
	if !e.cfg.RSS.Enabled {
		return ""
	}
	return "/" + e.cfg.RSS.MainFeed
}

// RenderHomepage renders the homepage.
func (e *Engine) RenderHomepage(ctx HomepageContext) (string, error) {
	return e.render(HomepageTemplate, ctx)
}

// RenderPostList renders one page of the post archive.
func (e *Engine) RenderPostList(ctx PostListContext) (string, error) {
	return e.render(PostListTemplate, ctx)
}

// RenderPost renders a post page.
func (e *Engine) RenderPost(ctx PostContext) (string, error) {
	return e.render(PostTemplate, ctx)
}

// RenderHub renders a taxonomy hub page.
func (e *Engine) RenderHub(ctx HubPageContext) (string, error) {
	return e.render(HubTemplate, ctx)
}

// RenderTaxonomyIndex renders a taxonomy index page.
func (e *Engine) RenderTaxonomyIndex(ctx TaxonomyIndexContext) (string, error) {
	return e.render(TaxonomyIndexTemplate, ctx)
}

// RenderStatic renders a standalone page.
func (e *Engine) RenderStatic(ctx StaticPageContext) (string, error) {
	return e.render(PageTemplate, ctx)
}

// RenderChangelog renders the changelog page.
func (e *Engine) RenderChangelog(ctx ChangelogContext) (string, error) {
	return e.render(ChangelogTemplate, ctx)
}

// RenderNotFound renders the 404 page.
func (e *Engine) RenderNotFound(ctx NotFoundContext) (string, error) {
	return e.render(NotFoundTemplate, ctx)
}

func (e *Engine) render(name string, data interface{}) (string, error) {
	t := e.tmpl.Lookup(name)
	if t == nil {
		return "", fmt.Errorf("template %q not found", name)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template %q: %w", name, err)
	}

	return buf.String(), nil
}

// RenderCSS returns the stylesheet, or "" when the theme has none.
func (e *Engine) RenderCSS() (string, error) {
	t := e.tmpl.Lookup(stylesTemplate)
	if t == nil {
		return "", nil
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, nil); err != nil {
		return "", err
	}
	return buf.String(), nil
}
