package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMenus_Navbar(t *testing.T) {
	m := Menus{Main: DefaultMain()}

	out := string(m.Navbar(&Projects))

	assert.Equal(t, `<nav class="site-nav"><ul class="nav">`+
		`<li><a href="/">Home</a></li>`+
		`<li><a href="/posts/">Posts</a></li>`+
		`<li><strong>Projects</strong></li>`+
		`<li><a href="/about/">About</a></li>`+
		`</ul></nav>`, out)
}

func TestMenus_Footer(t *testing.T) {
	m := Menus{Links: DefaultFooter(), Copyright: "© 2026 Jane Appleseed"}

	out := string(m.Footer(&Privacy))

	assert.Equal(t, `<footer class="site-footer"><ul class="footer-links">`+
		`<li><strong>Privacy</strong></li>`+
		`<li><a href="/support/">Support</a></li>`+
		`</ul><p class="copyright">© 2026 Jane Appleseed</p></footer>`, out)
}

func TestMenus_FooterWithoutPageContext(t *testing.T) {
	m := Menus{Links: DefaultFooter(), Copyright: "<b>me</b>"}

	out := string(m.Footer(nil))

	assert.NotContains(t, out, "<strong>")
	assert.Contains(t, out, `<a href="/privacy/">Privacy</a>`)
	assert.Contains(t, out, "&lt;b&gt;me&lt;/b&gt;")
}

func TestMenus_FooterNoCopyright(t *testing.T) {
	out := string(Menus{}.Footer(nil))
	assert.Equal(t, `<footer class="site-footer"><ul class="footer-links"></ul></footer>`, out)
}

func TestIsCurrent(t *testing.T) {
	assert.False(t, IsCurrent(Home, nil))
	assert.True(t, IsCurrent(Home, &Page{Path: "/"}))
	assert.False(t, IsCurrent(Home, &About))
}
