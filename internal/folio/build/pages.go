package build

import (
	"fmt"
	"html/template"
	"time"

	"github.com/folio-blog/folio/internal/folio/content"
	"github.com/folio-blog/folio/internal/folio/nav"
	"github.com/folio-blog/folio/internal/folio/render"
	"github.com/folio-blog/folio/internal/folio/schema"
	"github.com/folio-blog/folio/internal/folio/taxonomy"
)

const (
	recentPosts = 5
	topTags     = 6
	notFoundURL = "/404.html"
)

var changelogPage = nav.Page{Path: "/changelog/", Title: "Changelog"}

// pageJobs lists every page of the site.
func (r *run) pageJobs() []pageJob {
	var jobs []pageJob

	jobs = append(jobs, pageJob{name: "/", run: r.renderHomepage})

	perPage := r.cfg.Pagination.PostsPerPage
	for page := 1; page <= taxonomy.TotalPages(len(r.site.Posts), perPage); page++ {
		page := page
		jobs = append(jobs, pageJob{
			name: taxonomy.ListPageURL(nav.Posts.Path, page),
			run:  func() error { return r.renderPostList(page) },
		})
	}

	for i, p := range r.site.Posts {
		i, p := i, p
		jobs = append(jobs, pageJob{name: p.URL(), run: func() error { return r.renderPost(i) }})
	}

	for _, pg := range r.site.Pages {
		pg := pg
		jobs = append(jobs, pageJob{name: pg.URL(), run: func() error { return r.renderStatic(pg) }})
	}

	for _, tax := range r.tax {
		tax := tax
		jobs = append(jobs, pageJob{name: tax.URL(), run: func() error { return r.renderTaxonomyIndex(tax) }})
		for _, entry := range tax.Entries {
			entry := entry
			jobs = append(jobs, pageJob{
				name: entry.URL(tax.Name),
				run:  func() error { return r.renderHub(tax, entry) },
			})
		}
	}

	if len(r.releases) > 0 {
		jobs = append(jobs, pageJob{name: changelogPage.Path, run: r.renderChangelog})
	}

	jobs = append(jobs, pageJob{name: notFoundURL, run: r.renderNotFound})

	return jobs
}

// latest is the newest modification time across posts, used as lastmod for
// list pages.
func (r *run) latest(posts []*content.Post) time.Time {
	var t time.Time
	for _, p := range posts {
		if m := p.LastModified(); m.After(t) {
			t = m
		}
	}
	return t
}

func (r *run) breadcrumbs(crumbs ...render.Breadcrumb) ([]render.Breadcrumb, map[string]interface{}) {
	all := append([]render.Breadcrumb{{Name: "Home", URL: "/"}}, crumbs...)
	items := make([]schema.BreadcrumbItem, len(all))
	for i, c := range all {
		items[i] = schema.BreadcrumbItem{Name: c.Name, URL: c.URL}
	}
	return all, r.schemaGen.GenerateBreadcrumbSchema(items)
}

func (r *run) renderHomepage() error {
	posts := r.site.Posts
	recent := posts
	if len(recent) > recentPosts {
		recent = recent[:recentPosts]
	}
	categories := r.tax[0]

	var stats []render.NameCount
	for _, e := range categories.Entries {
		stats = append(stats, render.NameCount{Name: e.Name, Count: len(e.Posts)})
	}
	image := r.writeShareSVG("home.svg", render.GenerateHomepageShareSVG(
		r.cfg.Site.Name, r.cfg.Site.Description, stats, len(posts)))

	base := r.engine.NewBase(&nav.Page{Path: "/", Title: nav.Home.Title}, "", "", "/")
	base.OG.ImageURL = image
	base.JsonLD = toTemplateHTML(schema.MarshalSchemas(
		r.schemaGen.GenerateWebSiteSchema(image),
		r.schemaGen.GenerateItemListSchema("Recent posts", r.cfg.Site.Description, schema.PostItems(recent)),
	))

	html, err := r.engine.RenderHomepage(render.HomepageContext{
		Base:       base,
		Recent:     recent,
		Categories: categories,
		PostCount:  len(posts),
	})
	if err != nil {
		return err
	}
	r.sitemap.add("/", "homepage", r.latest(posts))
	return r.writePage("/", html)
}

func (r *run) renderPostList(page int) error {
	posts := r.site.Posts
	pagination := taxonomy.ComputePagination(len(posts), page, r.cfg.Pagination.PostsPerPage, nav.Posts.Path)
	pagePosts := posts[pagination.StartIndex:pagination.EndIndex]
	url := taxonomy.ListPageURL(nav.Posts.Path, page)

	title := nav.Posts.Title
	if page > 1 {
		title = fmt.Sprintf("%s (page %d)", nav.Posts.Title, page)
	}

	crumbs, crumbSchema := r.breadcrumbs(render.Breadcrumb{Name: nav.Posts.Title})
	base := r.engine.NewBase(&nav.Page{Path: url, Title: title}, title, "", url)
	base.Breadcrumbs = crumbs
	base.JsonLD = toTemplateHTML(schema.MarshalSchemas(
		r.schemaGen.GenerateCollectionPageSchema(title, r.cfg.Site.Description, url, schema.PostItems(pagePosts), ""),
		crumbSchema,
	))

	html, err := r.engine.RenderPostList(render.PostListContext{
		Base:       base,
		Posts:      pagePosts,
		Pagination: pagination,
	})
	if err != nil {
		return err
	}
	r.sitemap.add(url, "list", r.latest(pagePosts))
	return r.writePage(url, html)
}

func (r *run) renderPost(i int) error {
	p := r.site.Posts[i]
	newer, older := content.Adjacent(r.site.Posts, i)

	image := r.writeShareSVG("post-"+p.Slug+".svg", render.GeneratePostShareSVG(
		r.cfg.Site.Name, p.Title, p.Category.Label(), p.Date.Format("January 2, 2006"), p.Tags))

	crumbs, crumbSchema := r.breadcrumbs(
		render.Breadcrumb{Name: p.Category.Label(), URL: taxonomy.HubPageURL(taxonomy.Categories, p.Category.Slug(), 1)},
		render.Breadcrumb{Name: p.Title},
	)
	base := r.engine.NewBase(p.NavPage(), p.Title, p.Summary, p.URL())
	base.Breadcrumbs = crumbs
	base.OG.Type = "article"
	base.OG.ImageURL = image
	base.JsonLD = toTemplateHTML(schema.MarshalSchemas(
		r.schemaGen.GenerateBlogPostingSchema(p, image),
		crumbSchema,
	))

	html, err := r.engine.RenderPost(render.PostContext{
		Base:  base,
		Post:  p,
		Newer: newer,
		Older: older,
	})
	if err != nil {
		return err
	}
	r.sitemap.add(p.URL(), "post", p.LastModified())
	return r.writePage(p.URL(), html)
}

func (r *run) renderStatic(pg *content.Page) error {
	crumbs, crumbSchema := r.breadcrumbs(render.Breadcrumb{Name: pg.Title})
	base := r.engine.NewBase(pg.NavPage(), pg.Title, pg.Description, pg.URL())
	base.Breadcrumbs = crumbs
	base.JsonLD = toTemplateHTML(schema.MarshalSchemas(
		r.schemaGen.GenerateWebPageSchema(pg),
		crumbSchema,
	))

	html, err := r.engine.RenderStatic(render.StaticPageContext{Base: base, Page: pg})
	if err != nil {
		return err
	}
	r.sitemap.add(pg.URL(), "page", time.Time{})
	return r.writePage(pg.URL(), html)
}

func (r *run) renderTaxonomyIndex(tax taxonomy.Taxonomy) error {
	url := tax.URL()
	var items []schema.ItemListEntry
	for _, e := range tax.Entries {
		items = append(items, schema.ItemListEntry{Name: e.Name, URL: e.URL(tax.Name)})
	}

	crumbs, crumbSchema := r.breadcrumbs(render.Breadcrumb{Name: tax.Label})
	base := r.engine.NewBase(&nav.Page{Path: url, Title: tax.Label}, tax.Label, "", url)
	base.Breadcrumbs = crumbs
	base.JsonLD = toTemplateHTML(schema.MarshalSchemas(
		r.schemaGen.GenerateCollectionPageSchema(tax.Label, "", url, items, ""),
		crumbSchema,
	))

	html, err := r.engine.RenderTaxonomyIndex(render.TaxonomyIndexContext{
		Base:       base,
		Taxonomy:   tax,
		Entries:    tax.Entries,
		TopEntries: taxonomy.TopEntries(tax.Entries, topTags),
	})
	if err != nil {
		return err
	}
	r.sitemap.add(url, "list", time.Time{})
	return r.writePage(url, html)
}

// renderHub writes every page of one category or tag hub.
func (r *run) renderHub(tax taxonomy.Taxonomy, entry taxonomy.Entry) error {
	kind := "tag"
	if tax.Name == taxonomy.Categories {
		kind = "category"
	}

	image := r.writeShareSVG(fmt.Sprintf("%s-%s.svg", tax.Name, entry.Slug), render.GenerateHubShareSVG(
		r.cfg.Site.Name, entry.Name, tax.LabelSingular, len(entry.Posts), tagCounts(entry.Posts, topTags)))

	description := fmt.Sprintf("Posts about %s on %s.", entry.Name, r.cfg.Site.Name)
	base := entry.URL(tax.Name)
	perPage := r.cfg.Pagination.PostsPerPage

	for page := 1; page <= taxonomy.TotalPages(len(entry.Posts), perPage); page++ {
		pagination := taxonomy.ComputePagination(len(entry.Posts), page, perPage, base)
		pagePosts := entry.Posts[pagination.StartIndex:pagination.EndIndex]
		url := taxonomy.HubPageURL(tax.Name, entry.Slug, page)

		crumbs, crumbSchema := r.breadcrumbs(
			render.Breadcrumb{Name: tax.Label, URL: tax.URL()},
			render.Breadcrumb{Name: entry.Name},
		)
		b := r.engine.NewBase(&nav.Page{Path: url, Title: entry.Name}, entry.Name, description, url)
		b.Breadcrumbs = crumbs
		b.OG.ImageURL = image
		b.JsonLD = toTemplateHTML(schema.MarshalSchemas(
			r.schemaGen.GenerateCollectionPageSchema(entry.Name, description, url, schema.PostItems(pagePosts), image),
			crumbSchema,
		))

		html, err := r.engine.RenderHub(render.HubPageContext{
			Base:       b,
			Taxonomy:   tax,
			Entry:      entry,
			Posts:      pagePosts,
			Pagination: pagination,
		})
		if err != nil {
			return fmt.Errorf("page %d: %w", page, err)
		}
		r.sitemap.add(url, kind, r.latest(pagePosts))
		if err := r.writePage(url, html); err != nil {
			return err
		}
	}
	return nil
}

func (r *run) renderChangelog() error {
	crumbs, crumbSchema := r.breadcrumbs(render.Breadcrumb{Name: changelogPage.Title})
	page := changelogPage
	base := r.engine.NewBase(&page, changelogPage.Title, "What changed on "+r.cfg.Site.Name, changelogPage.Path)
	base.Breadcrumbs = crumbs
	base.JsonLD = toTemplateHTML(schema.MarshalSchemas(crumbSchema))

	html, err := r.engine.RenderChangelog(render.ChangelogContext{Base: base, Releases: r.releases})
	if err != nil {
		return err
	}
	var lastmod time.Time
	for _, rel := range r.releases {
		if rel.Date.After(lastmod) {
			lastmod = rel.Date
		}
	}
	r.sitemap.add(changelogPage.Path, "page", lastmod)
	return r.writePage(changelogPage.Path, html)
}

// renderNotFound writes 404.html. It has no current page, so every
// navigation entry is a link.
func (r *run) renderNotFound() error {
	base := r.engine.NewBase(nil, "Page not found", "", notFoundURL)
	html, err := r.engine.RenderNotFound(render.NotFoundContext{Base: base})
	if err != nil {
		return err
	}
	return r.writePage(notFoundURL, html)
}

// tagCounts returns the n most used tags across posts.
func tagCounts(posts []*content.Post, n int) []render.NameCount {
	tags := taxonomy.TopEntries(taxonomy.ByTag(posts).Entries, n)
	out := make([]render.NameCount, len(tags))
	for i, t := range tags {
		out[i] = render.NameCount{Name: t.Name, Count: len(t.Posts)}
	}
	return out
}

func toTemplateHTML(s string) template.HTML {
	return template.HTML(s) //nolint:gosec // JSON-LD from json.Marshal
}
