// Package content holds the posts and static pages that make up the site.
package content

import (
	"html/template"
	"sort"
	"time"

	"github.com/folio-blog/folio/internal/folio/category"
	"github.com/folio-blog/folio/internal/folio/nav"
)

// Post is a dated long-form blog post.
type Post struct {
	Slug       string
	Title      string
	Summary    string
	Date       time.Time
	Updated    time.Time
	Category   category.Category
	Tags       []string
	Draft      bool
	SourceFile string
	Body       string        // raw markdown body (minus front matter)
	HTML       template.HTML // rendered, sanitized body
}

// URL is the site-relative permalink.
func (p *Post) URL() string {
	return "/posts/" + p.Slug + "/"
}

// NavPage is the page context used when rendering this post.
func (p *Post) NavPage() *nav.Page {
	return &nav.Page{Path: p.URL(), Title: p.Title}
}

// LastModified returns Updated when set, otherwise Date.
func (p *Post) LastModified() time.Time {
	if !p.Updated.IsZero() {
		return p.Updated
	}
	return p.Date
}

// TagSlugs returns the slugs of the post's tags in declaration order.
func (p *Post) TagSlugs() []string {
	out := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		if s := ToSlug(t); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Page is an undated standalone page such as About or Privacy.
type Page struct {
	Slug        string
	Title       string
	Description string
	SourceFile  string
	Body        string
	HTML        template.HTML
}

// URL is the site-relative permalink. A page with slug "index" is not
// allowed; the homepage is generated.
func (p *Page) URL() string {
	return "/" + p.Slug + "/"
}

// NavPage is the page context used when rendering this page.
func (p *Page) NavPage() *nav.Page {
	return &nav.Page{Path: p.URL(), Title: p.Title}
}

// SortByDate orders posts newest first; equal dates fall back to slug order
// so output is stable across builds.
func SortByDate(posts []*Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].Date.Equal(posts[j].Date) {
			return posts[i].Date.After(posts[j].Date)
		}
		return posts[i].Slug < posts[j].Slug
	})
}

// Adjacent returns the neighbours of posts[i] in a newest-first list:
// newer is the post published after it, older the one before.
func Adjacent(posts []*Post, i int) (newer, older *Post) {
	if i > 0 {
		newer = posts[i-1]
	}
	if i+1 < len(posts) {
		older = posts[i+1]
	}
	return newer, older
}
