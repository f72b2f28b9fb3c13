package render

import (
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-blog/folio/internal/folio/category"
	"github.com/folio-blog/folio/internal/folio/changelog"
	"github.com/folio-blog/folio/internal/folio/config"
	"github.com/folio-blog/folio/internal/folio/content"
	"github.com/folio-blog/folio/internal/folio/markdown"
	"github.com/folio-blog/folio/internal/folio/nav"
	"github.com/folio-blog/folio/internal/folio/taxonomy"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Site.Name = "Folio"
	cfg.Site.BaseURL = "https://example.dev"
	cfg.Site.Language = "en"
	cfg.Site.Copyright = "© 2026 Sam Doe"
	cfg.Navigation.Main = nav.DefaultMain()
	cfg.Navigation.Footer = nav.DefaultFooter()
	cfg.RSS.Enabled = true
	cfg.RSS.MainFeed = "feed.xml"
	return cfg
}

func newTestEngine(t *testing.T, cfg *config.Config) *Engine {
	t.Helper()
	e, err := NewEngine(cfg)
	require.NoError(t, err)
	return e
}

func testPost() *content.Post {
	return &content.Post{
		Slug:     "actors",
		Title:    "Actors <in> Practice",
		Summary:  "Isolation.",
		Date:     time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		Category: category.SwiftConcurrency,
		Tags:     []string{"Sendable"},
		Body:     "Actors serialize access.",
		HTML:     template.HTML("<p>Actors serialize access.</p>"),
	}
}

func TestRenderStatic_CurrentEntryIsPlainText(t *testing.T) {
	e := newTestEngine(t, testConfig())
	pg := &content.Page{Slug: "about", Title: "About", HTML: "<p>Hi.</p>"}

	out, err := e.RenderStatic(StaticPageContext{
		Base: e.NewBase(pg.NavPage(), pg.Title, "", pg.URL()),
		Page: pg,
	})
	require.NoError(t, err)

	assert.Contains(t, out, `<li><strong>About</strong></li>`)
	assert.NotContains(t, out, `<a href="/about/">About</a>`)
	assert.Contains(t, out, `<li><a href="/">Home</a></li>`)
	assert.Contains(t, out, `<p class="copyright">© 2026 Sam Doe</p>`)
	assert.Contains(t, out, `<link rel="canonical" href="https://example.dev/about/">`)
	assert.Contains(t, out, "<title>About | Folio</title>")
}

func TestRenderHomepage(t *testing.T) {
	e := newTestEngine(t, testConfig())
	posts := []*content.Post{testPost()}

	out, err := e.RenderHomepage(HomepageContext{
		Base:       e.NewBase(&nav.Home, "", "", "/"),
		Recent:     posts,
		Categories: taxonomy.ByCategory(posts),
		PostCount:  1,
	})
	require.NoError(t, err)

	assert.Contains(t, out, `<li><strong>Home</strong></li>`)
	assert.Contains(t, out, `<a href="/posts/actors/">Actors &lt;in&gt; Practice</a>`)
	assert.Contains(t, out, `<a href="/categories/swift-concurrency/">Swift Concurrency</a> (1)`)
	assert.Contains(t, out, `href="/feed.xml"`)
	assert.Contains(t, out, "<title>Folio</title>")
}

func TestRenderPost(t *testing.T) {
	e := newTestEngine(t, testConfig())
	p := testPost()
	older := &content.Post{Slug: "tasks", Title: "Tasks"}

	out, err := e.RenderPost(PostContext{
		Base:  e.NewBase(p.NavPage(), p.Title, p.Summary, p.URL()),
		Post:  p,
		Older: older,
	})
	require.NoError(t, err)

	// A post is not in the menu, so every entry stays a link.
	assert.NotContains(t, out, "<strong>")
	assert.Contains(t, out, "<p>Actors serialize access.</p>")
	assert.Contains(t, out, "January 5, 2026")
	assert.Contains(t, out, "1 min read")
	assert.Contains(t, out, `<a href="/tags/sendable/">#Sendable</a>`)
	assert.Contains(t, out, `<a rel="prev" href="/posts/tasks/">`)
}

func TestRenderNotFound_NoCurrentEntry(t *testing.T) {
	e := newTestEngine(t, testConfig())

	out, err := e.RenderNotFound(NotFoundContext{Base: e.NewBase(nil, "Not found", "", "/404.html")})
	require.NoError(t, err)

	assert.NotContains(t, out, "<strong>")
	for _, p := range append(nav.DefaultMain(), nav.DefaultFooter()...) {
		assert.Contains(t, out, `<a href="`+p.Path+`">`+p.Title+`</a>`)
	}
}

func TestRenderPostList_Pagination(t *testing.T) {
	e := newTestEngine(t, testConfig())

	out, err := e.RenderPostList(PostListContext{
		Base:       e.NewBase(&nav.Posts, "Posts", "", "/posts/"),
		Posts:      []*content.Post{testPost()},
		Pagination: taxonomy.ComputePagination(12, 1, 10, "/posts/"),
	})
	require.NoError(t, err)

	assert.Contains(t, out, `<li><strong>Posts</strong></li>`)
	assert.Contains(t, out, `<a rel="next" href="/posts/page/2/">Older</a>`)
}

func TestRenderChangelog(t *testing.T) {
	e := newTestEngine(t, testConfig())

	releases, err := changelog.Parse([]byte("## [1.0.0] - 2026-01-01\n### Added\n- Launch\n- [Feed](/feed.xml)\n"), markdown.New())
	require.NoError(t, err)

	out, err := e.RenderChangelog(ChangelogContext{
		Base:     e.NewBase(&nav.Page{Path: "/changelog/", Title: "Changelog"}, "Changelog", "", "/changelog/"),
		Releases: releases,
	})
	require.NoError(t, err)
	assert.Contains(t, out, "<h3>Added</h3>")
	assert.Contains(t, out, "<li>Launch</li>")
	assert.Contains(t, out, `href="/feed.xml"`)
	assert.NotContains(t, out, "&lt;a")
}

func TestRenderHubAndIndex(t *testing.T) {
	e := newTestEngine(t, testConfig())
	tax := taxonomy.ByTag([]*content.Post{testPost()})
	entry := tax.Entries[0]

	out, err := e.RenderHub(HubPageContext{
		Base:       e.NewBase(nil, entry.Name, "", entry.URL(tax.Name)),
		Taxonomy:   tax,
		Entry:      entry,
		Posts:      entry.Posts,
		Pagination: taxonomy.ComputePagination(len(entry.Posts), 1, 10, entry.URL(tax.Name)),
	})
	require.NoError(t, err)
	assert.Contains(t, out, "<h1>Sendable</h1>")

	out, err = e.RenderTaxonomyIndex(TaxonomyIndexContext{
		Base:     e.NewBase(nil, tax.Label, "", tax.URL()),
		Taxonomy: tax,
		Entries:  tax.Entries,
	})
	require.NoError(t, err)
	assert.Contains(t, out, `<a href="/tags/sendable/">Sendable</a> (1)`)
}

func TestNewEngine_TemplateOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "404.html"), []byte(`custom {{.Nav}}`), 0o600))

	cfg := testConfig()
	cfg.Paths.Templates = dir
	e := newTestEngine(t, cfg)

	out, err := e.RenderNotFound(NotFoundContext{Base: e.NewBase(nil, "", "", "/404.html")})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `custom <nav class="site-nav">`))

	// Built-in templates not overridden are still available.
	_, err = e.RenderStatic(StaticPageContext{Base: e.NewBase(nil, "", "", "/x/"), Page: &content.Page{}})
	require.NoError(t, err)
}

func TestNewEngine_MissingTemplateDir(t *testing.T) {
	cfg := testConfig()
	cfg.Paths.Templates = filepath.Join(t.TempDir(), "missing")
	_, err := NewEngine(cfg)
	require.Error(t, err)
}

func TestRenderCSS(t *testing.T) {
	css, err := newTestEngine(t, testConfig()).RenderCSS()
	require.NoError(t, err)
	assert.Contains(t, css, "ul.nav")
}

func TestShareSVGs(t *testing.T) {
	svg := GeneratePostShareSVG("Folio", "Actors & Tasks", "Swift Concurrency", "January 5, 2026", []string{"actors"})
	assert.True(t, strings.HasPrefix(svg, "<svg "))
	assert.Contains(t, svg, "Actors &amp; Tasks")
	assert.Contains(t, svg, "#actors")

	svg = GenerateHomepageShareSVG("Folio", "Notes", []NameCount{{Name: "Xcode", Count: 3}}, 1)
	assert.Contains(t, svg, "1 post<")

	svg = GenerateHubShareSVG("Folio", "Xcode", "Category", 2, nil)
	assert.Contains(t, svg, "Category · 2 posts")
}

func TestFuncs(t *testing.T) {
	assert.Equal(t, "1,234,567", formatNumber(1234567))
	assert.Equal(t, "", formatDate(time.Time{}))
	assert.Equal(t, 1, readingTime(""))
	assert.Equal(t, 2, readingTime(strings.Repeat("word ", 201)))
	assert.Equal(t, "héll…", truncate("héllo world", 5))
}

func TestFuncMapInTemplate(t *testing.T) {
	tmpl := template.Must(template.New("t").Funcs(BuildFuncMap()).Parse(
		`{{formatNumber .N}}|{{formatDate .D}}|{{isoDate .D}}|{{rfc3339 .D}}|` +
			`{{categoryLabel .C}}|{{readingTime .Body}}|{{tagURL .Tag}}`))

	var out strings.Builder
	require.NoError(t, tmpl.Execute(&out, map[string]any{
		"N":    12345,
		"D":    time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		"C":    category.SwiftUI,
		"Body": "short",
		"Tag":  "Result Builders",
	}))

	assert.Equal(t, "12,345|March 1, 2026|2026-03-01|2026-03-01T09:30:00Z|SwiftUI|1|/tags/result-builders/", out.String())
}
