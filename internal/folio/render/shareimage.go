package render

import (
	"fmt"
	"html"
	"strings"
	"unicode/utf8"
)

const (
	shareWidth  = 1200
	shareHeight = 630
	maxBars     = 6
	maxPillTags = 3
)

// Swift-flavoured palette.
const (
	colorBackground = "#111114"
	colorText       = "#f5f5f7"
	colorMuted      = "#a1a1a6"
	colorSwift      = "#F05138"
	colorAmber      = "#FDB42F"
)

var barColors = []string{colorSwift, colorAmber, "#4A7B9B", "#7C5BB0", "#3D8B6E", "#B94A4A"}

const sansFont = "system-ui,sans-serif"

// canvas accumulates SVG elements for one share image.
type canvas struct {
	sb strings.Builder
}

type textStyle struct {
	size   int
	weight int
	fill   string
	font   string
	extra  string
}

func (c *canvas) text(x, y int, st textStyle, s string) {
	font := st.font
	if font == "" {
		font = sansFont
	}
	weight := ""
	if st.weight > 0 {
		weight = fmt.Sprintf(` font-weight="%d"`, st.weight)
	}
	fmt.Fprintf(&c.sb, `  <text x="%d" y="%d"%s font-family="%s" font-size="%d"%s fill="%s">%s</text>`+"\n",
		x, y, st.extra, font, st.size, weight, st.fill, html.EscapeString(s))
}

func (c *canvas) rect(x, y, w, h, radius int, fill string, opacity float64) {
	fmt.Fprintf(&c.sb, `  <rect x="%d" y="%d" width="%d" height="%d" rx="%d" fill="%s" opacity="%.2g"/>`+"\n",
		x, y, w, h, radius, fill, opacity)
}

// pill draws a rounded label at x and returns its width.
func (c *canvas) pill(x, y int, label, color string) int {
	w := utf8.RuneCountInString(label)*10 + 24
	c.rect(x, y, w, 32, 16, color, 0.2)
	c.text(x+12, y+21, textStyle{size: 14, weight: 600, fill: color}, label)
	return w
}

// bars draws up to maxBars horizontal bars scaled to the largest count.
func (c *canvas) bars(items []NameCount, x, y, maxW, barH, gap int) {
	if len(items) > maxBars {
		items = items[:maxBars]
	}
	top := 1
	for _, it := range items {
		top = max(top, it.Count)
	}
	for i, it := range items {
		w := max(it.Count*maxW/top, 4)
		by := y + i*(barH+gap)
		c.rect(x, by, w, barH, 4, barColors[i%len(barColors)], 0.85)
		c.text(x, by-4, textStyle{size: 14, fill: colorText}, truncate(it.Name, 30))
		c.text(x+w+8, by+barH-4, textStyle{size: 13, fill: colorMuted}, fmt.Sprint(it.Count))
	}
}

// svg wraps the body in the frame shared by every share image: background,
// site name, headline and a gradient bar along the bottom.
func (c *canvas) svg(siteName, headline string) string {
	var out strings.Builder
	fmt.Fprintf(&out, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %[1]d %[2]d">`+"\n",
		shareWidth, shareHeight)
	fmt.Fprintf(&out, `  <defs><linearGradient id="accent" x1="0" y1="0" x2="1" y2="0"><stop offset="0" stop-color="%s"/><stop offset="1" stop-color="%s"/></linearGradient></defs>`+"\n",
		colorSwift, colorAmber)
	fmt.Fprintf(&out, `  <rect width="%d" height="%d" fill="%s"/>`+"\n", shareWidth, shareHeight, colorBackground)

	frame := &canvas{}
	frame.text(60, 56, textStyle{size: 18, weight: 600, fill: colorMuted}, siteName)
	frame.text(60, 110, textStyle{size: 36, weight: 700, fill: colorText}, truncate(headline, 60))
	out.WriteString(frame.sb.String())
	out.WriteString(c.sb.String())

	fmt.Fprintf(&out, `  <rect x="0" y="%d" width="%d" height="8" fill="url(#accent)"/>`+"\n", shareHeight-8, shareWidth)
	out.WriteString("</svg>")
	return out.String()
}

// GenerateHomepageShareSVG generates the homepage share image: site
// description, post count and posts per category.
func GenerateHomepageShareSVG(siteName, description string, catStats []NameCount, totalPosts int) string {
	c := &canvas{}
	c.text(60, 160, textStyle{size: 18, fill: colorMuted}, truncate(description, 80))
	c.text(60, 200, textStyle{size: 22, weight: 600, fill: colorSwift}, postCount(totalPosts))
	c.bars(catStats, 60, 250, 900, 28, 14)
	return c.svg(siteName, siteName)
}

// GeneratePostShareSVG generates the share image for a post: category and
// tag pills under the title, with the date in the corner.
func GeneratePostShareSVG(siteName, title, categoryLabel, date string, tags []string) string {
	c := &canvas{}

	x := 60
	if categoryLabel != "" {
		x += c.pill(x, 170, categoryLabel, colorSwift) + 12
	}
	for i, tag := range tags {
		if i == maxPillTags {
			break
		}
		x += c.pill(x, 170, "#"+tag, colorAmber) + 12
	}

	if date != "" {
		c.text(60, 560, textStyle{size: 18, fill: colorMuted}, date)
	}
	c.text(600, 380, textStyle{
		size: 48, weight: 700, fill: colorText, font: "Georgia,serif",
		extra: ` text-anchor="middle" opacity="0.15"`,
	}, truncate(title, 40))

	return c.svg(siteName, truncate(title, 55))
}

// GenerateHubShareSVG generates the share image for a category or tag hub,
// with bars for the most used tags in it.
func GenerateHubShareSVG(siteName, entryName, taxLabel string, count int, topTags []NameCount) string {
	c := &canvas{}
	c.text(60, 160, textStyle{size: 18, fill: colorMuted}, taxLabel+" · "+postCount(count))
	c.bars(topTags, 60, 220, 900, 32, 16)
	return c.svg(siteName, entryName)
}

func postCount(n int) string {
	if n == 1 {
		return "1 post"
	}
	return fmt.Sprintf("%d posts", n)
}
