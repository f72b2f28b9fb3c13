// Package config loads and validates the folio site configuration.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/folio-blog/folio/internal/folio/nav"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Overrides are values supplied on the command line or through the
// environment. Empty fields leave the file value untouched.
type Overrides struct {
	OutputDir string
	BaseURL   string
	LogLevel  string
	Drafts    bool
}

// Load reads and parses a YAML config file, applies defaults, and validates.
func Load(path string) (*Config, error) {
	return LoadWithOverrides(path, Overrides{})
}

// LoadWithOverrides is Load with command line overrides applied before
// validation.
func LoadWithOverrides(path string, o Overrides) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}

	cfg.ConfigDir = filepath.Dir(path)
	if err := applyOverrides(&cfg, o); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	// Resolve relative paths against config directory
	resolvePaths(&cfg)

	return &cfg, nil
}

// applyOverrides sets override values on cfg. The output directory comes
// from the command line, so it is relative to the working directory rather
// than to the config file.
func applyOverrides(cfg *Config, o Overrides) error {
	if o.OutputDir != "" {
		out, err := filepath.Abs(o.OutputDir)
		if err != nil {
			return errors.Wrapf(err, "resolving output dir %s", o.OutputDir)
		}
		cfg.Paths.Output = out
	}
	if o.BaseURL != "" {
		cfg.Site.BaseURL = o.BaseURL
	}
	if o.LogLevel != "" {
		cfg.Log.LogLevel = o.LogLevel
	}
	if o.Drafts {
		cfg.Output.IncludeDrafts = true
	}
	return nil
}

func applyDefaults(cfg *Config) {
	cfg.Site.BaseURL = strings.TrimRight(cfg.Site.BaseURL, "/")
	if cfg.Site.Language == "" {
		cfg.Site.Language = "en"
	}
	if cfg.Paths.Content == "" {
		cfg.Paths.Content = "content"
	}
	if cfg.Paths.Output == "" {
		cfg.Paths.Output = "public"
	}
	if cfg.Pagination.PostsPerPage == 0 {
		cfg.Pagination.PostsPerPage = 10
	}
	if cfg.Sitemap.MaxURLsPerFile == 0 {
		cfg.Sitemap.MaxURLsPerFile = 50000
	}
	if cfg.RSS.MainFeed == "" {
		cfg.RSS.MainFeed = "feed.xml"
	}
	if cfg.RSS.MaxItems == 0 {
		cfg.RSS.MaxItems = 20
	}
	if len(cfg.Navigation.Main) == 0 {
		cfg.Navigation.Main = nav.DefaultMain()
	}
	if len(cfg.Navigation.Footer) == 0 {
		cfg.Navigation.Footer = nav.DefaultFooter()
	}

	if cfg.Sitemap.Priorities == nil {
		cfg.Sitemap.Priorities = map[string]string{
			"homepage": "1.0",
			"post":     "0.8",
			"page":     "0.6",
			"category": "0.6",
			"tag":      "0.4",
			"list":     "0.5",
		}
	}
	if cfg.Sitemap.ChangeFreqs == nil {
		cfg.Sitemap.ChangeFreqs = map[string]string{
			"homepage": "daily",
			"post":     "monthly",
			"page":     "yearly",
			"category": "weekly",
			"tag":      "weekly",
			"list":     "weekly",
		}
	}

	if cfg.Log.AppName == "" {
		cfg.Log.AppName = "folio"
	}
	if cfg.Log.LogLevel == "" {
		cfg.Log.LogLevel = "info"
	}
	if !cfg.Log.Console.Enabled && !cfg.Log.File.Enabled {
		cfg.Log.Console.Enabled = true
	}
}

var validate = func() func(cfg *Config) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	return func(cfg *Config) error {
		if err := v.Struct(cfg); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) && len(verrs) > 0 {
				return errors.Wrapf(ErrInvalidConfig, "%s: failed %q", verrs[0].Namespace(), verrs[0].Tag())
			}
			return errors.Wrapf(ErrInvalidConfig, "%v", err)
		}
		return nil
	}
}()

func resolvePaths(cfg *Config) {
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(cfg.ConfigDir, p)
	}

	cfg.Paths.Content = resolve(cfg.Paths.Content)
	cfg.Paths.Templates = resolve(cfg.Paths.Templates)
	cfg.Paths.Output = resolve(cfg.Paths.Output)
	cfg.Paths.Static = resolve(cfg.Paths.Static)
	cfg.Paths.Changelog = resolve(cfg.Paths.Changelog)
	if cfg.Log.File.Enabled {
		cfg.Log.File.Path = resolve(cfg.Log.File.Path)
	}
}
