// Package output generates the machine-readable files that sit next to the
// rendered pages: sitemaps, feeds, robots.txt, manifest.json and llms.txt.
package output

import (
	"encoding/xml"
	"fmt"
	"slices"
	"strings"
)

const (
	sitemapNS      = "http://www.sitemaps.org/schemas/sitemap/0.9"
	sitemapMaxURLs = 50000
)

// SitemapEntry is one <url> element.
type SitemapEntry struct {
	Loc        string `xml:"loc"`
	Lastmod    string `xml:"lastmod,omitempty"`
	Priority   string `xml:"priority,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
}

// SitemapFile is a sitemap document and the name it is written under.
type SitemapFile struct {
	Filename string
	Content  []byte
}

type urlSet struct {
	XMLName xml.Name       `xml:"urlset"`
	XMLNS   string         `xml:"xmlns,attr"`
	URLs    []SitemapEntry `xml:"url"`
}

type sitemapIndex struct {
	XMLName  xml.Name     `xml:"sitemapindex"`
	XMLNS    string       `xml:"xmlns,attr"`
	Sitemaps []sitemapRef `xml:"sitemap"`
}

type sitemapRef struct {
	Loc     string `xml:"loc"`
	Lastmod string `xml:"lastmod,omitempty"`
}

// NewSitemapEntry creates a sitemap entry for a site-relative path. Paths
// keep their trailing slash so loc matches the canonical URL.
func NewSitemapEntry(baseURL, path, lastmod, priority, changefreq string) SitemapEntry {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return SitemapEntry{
		Loc:        strings.TrimRight(baseURL, "/") + path,
		Lastmod:    lastmod,
		Priority:   priority,
		ChangeFreq: changefreq,
	}
}

// GenerateSitemapFiles returns sitemap.xml holding every entry, or, past
// maxPerFile entries, sitemap.xml as an index over sitemap-N.xml parts.
func GenerateSitemapFiles(entries []SitemapEntry, baseURL string, maxPerFile int) ([]SitemapFile, error) {
	if maxPerFile <= 0 {
		maxPerFile = sitemapMaxURLs
	}

	if len(entries) <= maxPerFile {
		data, err := marshalXML(urlSet{XMLNS: sitemapNS, URLs: entries})
		if err != nil {
			return nil, err
		}
		return []SitemapFile{{Filename: "sitemap.xml", Content: data}}, nil
	}

	index := sitemapIndex{XMLNS: sitemapNS}
	files := []SitemapFile{{Filename: "sitemap.xml"}}
	lastmod := latestLastmod(entries)

	n := 0
	for part := range slices.Chunk(entries, maxPerFile) {
		n++
		name := fmt.Sprintf("sitemap-%d.xml", n)
		data, err := marshalXML(urlSet{XMLNS: sitemapNS, URLs: part})
		if err != nil {
			return nil, err
		}
		files = append(files, SitemapFile{Filename: name, Content: data})
		index.Sitemaps = append(index.Sitemaps, sitemapRef{
			Loc:     strings.TrimRight(baseURL, "/") + "/" + name,
			Lastmod: lastmod,
		})
	}

	data, err := marshalXML(index)
	if err != nil {
		return nil, err
	}
	files[0].Content = data
	return files, nil
}

func marshalXML(v interface{}) ([]byte, error) {
	data, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding sitemap: %w", err)
	}
	return append([]byte(xml.Header), data...), nil
}

// latestLastmod returns the greatest lastmod. Dates are YYYY-MM-DD so
// string order is date order.
func latestLastmod(entries []SitemapEntry) string {
	latest := ""
	for _, e := range entries {
		latest = max(latest, e.Lastmod)
	}
	return latest
}
