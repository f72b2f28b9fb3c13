// Package build runs the site generation pipeline: load content, group it,
// render every page and write the machine-readable outputs.
package build

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/folio-blog/folio/internal/folio/changelog"
	"github.com/folio-blog/folio/internal/folio/config"
	"github.com/folio-blog/folio/internal/folio/loader"
	"github.com/folio-blog/folio/internal/folio/markdown"
	"github.com/folio-blog/folio/internal/folio/output"
	"github.com/folio-blog/folio/internal/folio/render"
	"github.com/folio-blog/folio/internal/folio/schema"
	"github.com/folio-blog/folio/internal/folio/taxonomy"
)

// maxConcurrentPages bounds the page render pool.
const maxConcurrentPages = 32

// Builder orchestrates the entire static site generation pipeline.
type Builder struct {
	cfg     *config.Config
	metrics *Metrics
}

// Option configures a Builder.
type Option func(*Builder)

// WithMetrics records build results in m.
func WithMetrics(m *Metrics) Option {
	return func(b *Builder) { b.metrics = m }
}

// NewBuilder creates a new builder.
func NewBuilder(cfg *config.Config, opts ...Option) *Builder {
	b := &Builder{cfg: cfg}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Report summarizes a finished build.
type Report struct {
	Posts       int
	Pages       int
	Categories  int
	Tags        int
	Written     int64
	PageErrors  int64
	SitemapURLs int
	Feeds       int
	Duration    time.Duration
}

// run is the state shared by one Build call.
type run struct {
	*Builder
	outDir    string
	site      *loader.Site
	releases  []changelog.Release
	tax       []taxonomy.Taxonomy
	engine    *render.Engine
	schemaGen *schema.Generator
	sitemap   *sitemapCollector
	written   int64
	pageErrs  int64
}

// Build runs the complete build pipeline. Errors rendering a single page are
// logged and counted in the report; anything else aborts the build.
func (b *Builder) Build(ctx context.Context) (*Report, error) {
	start := time.Now()
	report, err := b.build(ctx)
	if b.metrics != nil {
		b.metrics.observe(report, err, time.Since(start))
	}
	return report, err
}

func (b *Builder) build(ctx context.Context) (*Report, error) {
	start := time.Now()
	log.Info().Str("site", b.cfg.Site.Name).Msg("building site")

	r := &run{Builder: b, outDir: b.cfg.Paths.Output}

	// 1. Load content
	log.Debug().Str("dir", b.cfg.Paths.Content).Msg("loading content")
	conv := markdown.New()
	site, err := loader.New(b.cfg, conv).Load()
	if err != nil {
		return nil, fmt.Errorf("loading content: %w", err)
	}
	r.site = site
	log.Info().Int("posts", len(site.Posts)).Int("pages", len(site.Pages)).Msg("loaded content")

	r.releases, err = changelog.Load(b.cfg.Paths.Changelog, conv)
	if err != nil {
		return nil, fmt.Errorf("loading changelog: %w", err)
	}

	// 2. Build taxonomies
	r.tax = taxonomy.BuildAll(site.Posts)
	for _, t := range r.tax {
		log.Debug().Str("taxonomy", t.Name).Int("entries", len(t.Entries)).Msg("built taxonomy")
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 3. Prepare output directory
	if b.cfg.Output.CleanBuild {
		if err := b.clean(); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(r.outDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	// 4. Templates
	r.engine, err = render.NewEngine(b.cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing render engine: %w", err)
	}
	css, err := r.engine.RenderCSS()
	if err != nil {
		return nil, fmt.Errorf("rendering CSS: %w", err)
	}
	if css != "" {
		if err := r.writeFile("styles.css", []byte(css)); err != nil {
			return nil, err
		}
	}

	r.schemaGen = schema.NewGenerator(b.cfg.Site)
	r.sitemap = newSitemapCollector(b.cfg)

	// 5. Render pages
	if err := r.renderAll(ctx); err != nil {
		return nil, err
	}

	// 6. Machine-readable outputs
	sitemapFiles, feeds, err := r.writeOutputs()
	if err != nil {
		return nil, err
	}

	// 7. Static assets
	if b.cfg.Paths.Static != "" {
		if err := copyDir(b.cfg.Paths.Static, r.outDir); err != nil {
			return nil, fmt.Errorf("copying static assets: %w", err)
		}
	}

	report := &Report{
		Posts:       len(site.Posts),
		Pages:       len(site.Pages),
		Categories:  len(r.tax[0].Entries),
		Tags:        len(r.tax[1].Entries),
		Written:     atomic.LoadInt64(&r.written),
		PageErrors:  atomic.LoadInt64(&r.pageErrs),
		SitemapURLs: r.sitemap.len(),
		Feeds:       len(feeds),
		Duration:    time.Since(start),
	}

	log.Info().
		Int("posts", report.Posts).
		Int("pages", report.Pages).
		Int64("files", report.Written).
		Int64("page_errors", report.PageErrors).
		Int("sitemap_urls", report.SitemapURLs).
		Int("sitemap_files", len(sitemapFiles)).
		Str("output", r.outDir).
		Dur("duration", report.Duration.Round(time.Millisecond)).
		Msg("build complete")

	return report, nil
}

// clean removes the output directory, refusing paths that would take the
// sources with them.
func (b *Builder) clean() error {
	out, err := filepath.Abs(b.cfg.Paths.Output)
	if err != nil {
		return err
	}
	for _, protected := range []string{b.cfg.ConfigDir, b.cfg.Paths.Content, b.cfg.Paths.Templates, b.cfg.Paths.Static} {
		if protected == "" {
			continue
		}
		p, err := filepath.Abs(protected)
		if err != nil {
			return err
		}
		if p == out || isWithin(p, out) {
			return fmt.Errorf("refusing to clean output dir %s: it contains %s", out, p)
		}
	}
	if out == filepath.Dir(out) {
		return fmt.Errorf("refusing to clean output dir %s", out)
	}

	log.Debug().Str("dir", out).Msg("cleaning output dir")
	if err := os.RemoveAll(out); err != nil {
		return fmt.Errorf("cleaning output dir: %w", err)
	}
	return nil
}

// isWithin reports whether path is inside dir.
func isWithin(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// pageJob renders and writes one page.
type pageJob struct {
	name string
	run  func() error
}

// renderAll renders every page through a bounded pool. A failing page is
// counted and logged; the build continues.
func (r *run) renderAll(ctx context.Context) error {
	jobs := r.pageJobs()
	log.Info().Int("pages", len(jobs)).Msg("rendering pages")

	if err := r.runJobs(ctx, jobs); err != nil {
		return err
	}

	if n := atomic.LoadInt64(&r.pageErrs); n > 0 {
		log.Warn().Int64("count", n).Msg("some pages had errors")
	}
	return nil
}

// runJobs runs jobs at most maxConcurrentPages at a time. On cancellation it
// stops starting jobs and waits for the running ones.
func (r *run) runJobs(ctx context.Context, jobs []pageJob) error {
	var wg sync.WaitGroup
	sem := make(chan struct{}, maxConcurrentPages)

	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return err
		}

		select {
		case sem <- struct{}{}: // acquire
		case <-ctx.Done():
			wg.Wait()
			return ctx.Err()
		}

		wg.Add(1)
		go func(job pageJob) {
			defer wg.Done()
			defer func() { <-sem }() // release

			if err := job.run(); err != nil {
				atomic.AddInt64(&r.pageErrs, 1)
				log.Warn().Err(err).Str("page", job.name).Msg("failed to render page")
			}
		}(job)
	}
	wg.Wait()

	return ctx.Err()
}

func (r *run) writeOutputs() ([]output.SitemapFile, []output.RSSFeed, error) {
	cfg := r.cfg
	categories := r.tax[0]

	sitemapFiles, err := output.GenerateSitemapFiles(r.sitemap.entries(), cfg.Site.BaseURL, cfg.Sitemap.MaxURLsPerFile)
	if err != nil {
		return nil, nil, err
	}
	for _, sf := range sitemapFiles {
		if err := r.writeFile(sf.Filename, sf.Content); err != nil {
			return nil, nil, err
		}
	}

	feeds := output.GenerateRSSFeeds(r.site.Posts, cfg, categories)
	for _, feed := range feeds {
		if err := r.writeFile(feed.RelativePath, []byte(feed.Content)); err != nil {
			return nil, nil, err
		}
	}

	if err := r.writeFile("robots.txt", []byte(output.GenerateRobotsTxt(cfg))); err != nil {
		return nil, nil, err
	}

	if cfg.LlmsTxt.Enabled {
		llms := output.GenerateLlmsTxt(cfg, categories, r.site.Pages)
		if err := r.writeFile("llms.txt", []byte(llms)); err != nil {
			return nil, nil, err
		}
	}

	if err := r.writeFile("manifest.json", []byte(output.GenerateManifest(cfg))); err != nil {
		return nil, nil, err
	}

	index, err := output.GenerateSearchIndex(r.site.Posts)
	if err != nil {
		return nil, nil, fmt.Errorf("generating search index: %w", err)
	}
	if err := r.writeFile("search-index.json", index); err != nil {
		return nil, nil, err
	}

	if cfg.Site.CNAME != "" {
		if err := r.writeFile("CNAME", []byte(cfg.Site.CNAME+"\n")); err != nil {
			return nil, nil, err
		}
	}

	return sitemapFiles, feeds, nil
}
