package build

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/folio-blog/folio/internal/folio/config"
	"github.com/folio-blog/folio/internal/folio/output"
)

// writeFile writes data to rel inside the output directory.
func (r *run) writeFile(rel string, data []byte) error {
	path := filepath.Join(r.outDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating dir for %s: %w", rel, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // public site output
		return fmt.Errorf("writing %s: %w", rel, err)
	}
	atomic.AddInt64(&r.written, 1)
	return nil
}

// writePage writes rendered HTML for a site URL such as "/posts/x/".
func (r *run) writePage(url, html string) error {
	return r.writeFile(urlToFile(url), []byte(html))
}

// urlToFile maps "/a/b/" to "a/b/index.html" and "/404.html" to "404.html".
func urlToFile(url string) string {
	rel := strings.TrimPrefix(url, "/")
	if rel == "" || strings.HasSuffix(rel, "/") {
		rel += "index.html"
	}
	return rel
}

// writeShareSVG writes a share image and returns its absolute URL, or "" when
// share images are disabled or the write failed.
func (r *run) writeShareSVG(filename, svg string) string {
	if !r.cfg.Output.ShareImages {
		return ""
	}
	if err := r.writeFile("images/share/"+filename, []byte(svg)); err != nil {
		log.Warn().Err(err).Str("image", filename).Msg("failed to write share image")
		return ""
	}
	return shareImageURL(r.cfg.Site.BaseURL, filename)
}

// shareImageURL returns the full URL for a share image.
func shareImageURL(baseURL, filename string) string {
	return fmt.Sprintf("%s/images/share/%s", baseURL, filename)
}

// sitemapCollector gathers sitemap entries from concurrent page jobs.
type sitemapCollector struct {
	cfg *config.Config
	mu  sync.Mutex
	all []output.SitemapEntry
}

func newSitemapCollector(cfg *config.Config) *sitemapCollector {
	return &sitemapCollector{cfg: cfg}
}

// add records path with the priority and change frequency configured for kind.
func (s *sitemapCollector) add(path, kind string, lastmod time.Time) {
	var mod string
	if !lastmod.IsZero() {
		mod = lastmod.Format("2006-01-02")
	}
	entry := output.NewSitemapEntry(s.cfg.Site.BaseURL, path, mod,
		s.cfg.Sitemap.Priorities[kind], s.cfg.Sitemap.ChangeFreqs[kind])

	s.mu.Lock()
	defer s.mu.Unlock()
	s.all = append(s.all, entry)
}

// entries returns the collected entries sorted by location, so the sitemap
// does not depend on render order.
func (s *sitemapCollector) entries() []output.SitemapEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]output.SitemapEntry, len(s.all))
	copy(out, s.all)
	sort.Slice(out, func(i, j int) bool { return out[i].Loc < out[j].Loc })
	return out
}

func (s *sitemapCollector) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.all)
}

// copyDir copies files from src to dst directory.
func copyDir(src, dst string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := os.MkdirAll(dstPath, 0o755); err != nil {
				return err
			}
			if err := copyDir(srcPath, dstPath); err != nil {
				return err
			}
			continue
		}

		data, err := os.ReadFile(srcPath)
		if err != nil {
			return err
		}
		if err := os.WriteFile(dstPath, data, 0o644); err != nil { //nolint:gosec // public site output
			return err
		}
	}
	return nil
}
