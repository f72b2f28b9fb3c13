package nav

import (
	"bytes"
	"html/template"
)

// Named site-wide pages.
var (
	Home     = Page{Path: "/", Title: "Home"}
	Posts    = Page{Path: "/posts/", Title: "Posts"}
	Projects = Page{Path: "/projects/", Title: "Projects"}
	About    = Page{Path: "/about/", Title: "About"}
	Privacy  = Page{Path: "/privacy/", Title: "Privacy"}
	Support  = Page{Path: "/support/", Title: "Support"}
)

// DefaultMain is the navigation bar used when the config does not set one.
func DefaultMain() []Page {
	return []Page{Home, Posts, Projects, About}
}

// DefaultFooter is the footer link list used when the config does not set one.
func DefaultFooter() []Page {
	return []Page{Privacy, Support}
}

// Menus holds the two link lists rendered on every page.
type Menus struct {
	Main      []Page
	Links     []Page // footer links
	Copyright string
}

// Navbar renders the site navigation bar.
func (m Menus) Navbar(current *Page) template.HTML {
	var buf bytes.Buffer
	buf.WriteString(`<nav class="site-nav">`)
	buf.WriteString(string(Render(m.Main, current)))
	buf.WriteString(`</nav>`)
	return template.HTML(buf.String()) //nolint:gosec // built from escaped fragments
}

var copyrightTmpl = template.Must(template.New("copyright").Parse(
	`{{if .}}<p class="copyright">{{.}}</p>{{end}}`))

// Footer renders the footer links followed by the copyright line, which is
// emitted verbatim (escaped, never interpreted).
func (m Menus) Footer(current *Page) template.HTML {
	var buf bytes.Buffer
	buf.WriteString(`<footer class="site-footer">`)
	buf.WriteString(string(renderList("footer-links", m.Links, current)))
	_ = copyrightTmpl.Execute(&buf, m.Copyright)
	buf.WriteString(`</footer>`)
	return template.HTML(buf.String()) //nolint:gosec // built from escaped fragments
}
