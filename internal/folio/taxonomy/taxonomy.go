// Package taxonomy groups posts by category and tag and paginates the
// resulting hub pages.
package taxonomy

import (
	"fmt"
	"sort"

	"github.com/folio-blog/folio/internal/folio/category"
	"github.com/folio-blog/folio/internal/folio/content"
)

// Taxonomy names, also used as the first URL segment.
const (
	Categories = "categories"
	Tags       = "tags"
)

// Entry represents a single taxonomy value and its posts, newest first.
type Entry struct {
	Name     string
	Slug     string
	Category category.Category // set for category entries only
	Posts    []*content.Post
}

// URL is the first hub page of the entry.
func (e Entry) URL(taxonomyName string) string {
	return HubPageURL(taxonomyName, e.Slug, 1)
}

// Taxonomy holds all entries for a single taxonomy type.
type Taxonomy struct {
	Name          string
	Label         string
	LabelSingular string
	Entries       []Entry
}

// URL is the taxonomy index page.
func (t *Taxonomy) URL() string {
	return "/" + t.Name + "/"
}

// PaginationInfo holds pagination state for list and hub pages.
type PaginationInfo struct {
	CurrentPage int
	TotalPages  int
	TotalItems  int
	StartIndex  int
	EndIndex    int
	PrevURL     string
	NextURL     string
	PageURLs    []PageURL
}

// PageURL represents a single page link in pagination.
type PageURL struct {
	Number int
	URL    string
}

// BuildAll constructs the category and tag taxonomies. posts must already be
// sorted newest first.
func BuildAll(posts []*content.Post) []Taxonomy {
	return []Taxonomy{ByCategory(posts), ByTag(posts)}
}

// ByCategory groups posts per category. Entries follow category.All() order
// and categories without posts are omitted.
func ByCategory(posts []*content.Post) Taxonomy {
	groups := make(map[category.Category][]*content.Post)
	for _, p := range posts {
		groups[p.Category] = append(groups[p.Category], p)
	}

	var entries []Entry
	for _, c := range category.All() {
		if len(groups[c]) == 0 {
			continue
		}
		entries = append(entries, Entry{
			Name:     c.Label(),
			Slug:     c.Slug(),
			Category: c,
			Posts:    groups[c],
		})
	}

	return Taxonomy{
		Name:          Categories,
		Label:         "Categories",
		LabelSingular: "Category",
		Entries:       entries,
	}
}

// ByTag groups posts per tag slug, sorted alphabetically. The entry name is
// the first spelling seen.
func ByTag(posts []*content.Post) Taxonomy {
	groups := make(map[string]*Entry)

	for _, p := range posts {
		seen := make(map[string]bool)
		for _, tag := range p.Tags {
			slug := content.ToSlug(tag)
			if slug == "" || seen[slug] {
				continue
			}
			seen[slug] = true
			if _, ok := groups[slug]; !ok {
				groups[slug] = &Entry{Name: tag, Slug: slug}
			}
			groups[slug].Posts = append(groups[slug].Posts, p)
		}
	}

	entries := make([]Entry, 0, len(groups))
	for _, entry := range groups {
		entries = append(entries, *entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Slug < entries[j].Slug
	})

	return Taxonomy{
		Name:          Tags,
		Label:         "Tags",
		LabelSingular: "Tag",
		Entries:       entries,
	}
}

// FindEntry returns the entry with the given slug, or nil.
func (t *Taxonomy) FindEntry(slug string) *Entry {
	for i := range t.Entries {
		if t.Entries[i].Slug == slug {
			return &t.Entries[i]
		}
	}
	return nil
}

// TotalPages is the number of list pages needed for total items.
func TotalPages(total, perPage int) int {
	if perPage < 1 {
		perPage = 1
	}
	n := (total + perPage - 1) / perPage
	if n == 0 {
		n = 1
	}
	return n
}

// ComputePagination calculates pagination for page (1-based) of a list whose
// first page lives at base.
func ComputePagination(total, page, perPage int, base string) PaginationInfo {
	if perPage < 1 {
		perPage = 1
	}
	totalPages := TotalPages(total, perPage)

	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	info := PaginationInfo{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  total,
		StartIndex:  start,
		EndIndex:    end,
	}

	for p := 1; p <= totalPages; p++ {
		info.PageURLs = append(info.PageURLs, PageURL{
			Number: p,
			URL:    ListPageURL(base, p),
		})
	}

	if page > 1 {
		info.PrevURL = ListPageURL(base, page-1)
	}
	if page < totalPages {
		info.NextURL = ListPageURL(base, page+1)
	}

	return info
}

// ListPageURL returns the URL of page n of a list rooted at base ("/posts/").
func ListPageURL(base string, page int) string {
	if page <= 1 {
		return base
	}
	return fmt.Sprintf("%spage/%d/", base, page)
}

// HubPageURL returns the URL path for a hub page.
func HubPageURL(taxonomyName, entrySlug string, page int) string {
	return ListPageURL(fmt.Sprintf("/%s/%s/", taxonomyName, entrySlug), page)
}

// TopEntries returns the top N entries sorted by post count (descending).
// Ties keep their original order.
func TopEntries(entries []Entry, n int) []Entry {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].Posts) > len(sorted[j].Posts)
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}
