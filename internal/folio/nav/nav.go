// Package nav renders the site navigation fragments: the navigation bar and
// the footer links. An entry whose path matches the page being rendered is
// emitted as plain emphasized text instead of a hyperlink.
package nav

import (
	"bytes"
	"html/template"
)

// Page is a navigable destination. Path is the identity key used for
// current-page comparisons and is also the href.
type Page struct {
	Path  string `yaml:"path" validate:"required"`
	Title string `yaml:"title" validate:"required"`
}

// Entry is a view model for one rendered list item.
type Entry struct {
	Title   string
	Href    string // empty when Current
	Current bool
}

// IsCurrent reports whether p is the page being rendered. A nil current
// page matches nothing.
func IsCurrent(p Page, current *Page) bool {
	return current != nil && current.Path == p.Path
}

// Entries resolves pages into entries in input order. Pages are not sorted,
// deduplicated or validated; two pages sharing the current path are both
// marked current.
func Entries(pages []Page, current *Page) []Entry {
	entries := make([]Entry, 0, len(pages))
	for _, p := range pages {
		if IsCurrent(p, current) {
			entries = append(entries, Entry{Title: p.Title, Current: true})
			continue
		}
		entries = append(entries, Entry{Title: p.Title, Href: p.Path})
	}
	return entries
}

var listTmpl = template.Must(template.New("nav").Parse(
	`<ul class="{{.Class}}">` +
		`{{range .Entries}}<li>{{if .Current}}<strong>{{.Title}}</strong>{{else}}<a href="{{.Href}}">{{.Title}}</a>{{end}}</li>{{end}}` +
		`</ul>`))

// Render renders pages as an HTML list with class "nav".
func Render(pages []Page, current *Page) template.HTML {
	return renderList("nav", pages, current)
}

func renderList(class string, pages []Page, current *Page) template.HTML {
	var buf bytes.Buffer
	data := struct {
		Class   string
		Entries []Entry
	}{class, Entries(pages, current)}
	// Execution only fails on writer errors, which bytes.Buffer never returns.
	_ = listTmpl.Execute(&buf, data)
	return template.HTML(buf.String()) //nolint:gosec // produced by html/template
}
