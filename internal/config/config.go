// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config turns the flat key-value inputs of a robotsgen invocation
// (flags, INPUT_* environment variables, optional YAML file) into a validated
// Config value.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/net/idna"
)

// ErrInvalid marks every configuration problem. Callers map it to the
// configuration exit code.
var ErrInvalid = errors.New("invalid configuration")

// Input keys. They double as flag names and, upper-cased with an INPUT_
// prefix, as the environment variables GitHub Actions sets for action inputs.
const (
	KeySiteURL        = "site-url"
	KeyPublicDir      = "public-dir"
	KeyOutputDir      = "output-dir"
	KeyFilename       = "filename"
	KeyUserAgent      = "user-agent"
	KeyDisallow       = "disallow"
	KeyAllow          = "allow"
	KeyCrawlDelay     = "crawl-delay"
	KeySitemaps       = "sitemaps"
	KeyComments       = "comments"
	KeyStrict         = "strict"
	KeyDebug          = "debug"
	KeyUpload         = "upload"
	KeyArtifactName   = "artifact-name"
	KeyRetentionDays  = "artifact-retention-days"
	KeyMaxSizeKB      = "max-size-kb"
	KeyRequireSitemap = "require-sitemap"
	KeyStateDir       = "state-dir"
	KeyConfigFile     = "config"
)

// Defaults applied when an input is absent.
const (
	DefaultPublicDir     = "dist"
	DefaultFilename      = "robots.txt"
	DefaultUserAgent     = "*"
	DefaultArtifactName  = "robots-txt"
	DefaultRetentionDays = 7
	DefaultMaxSizeKB     = 500
	DefaultStateDir      = ".robotsgen/run"
)

var siteURLPattern = regexp.MustCompile(`(?i)^https?://`)

// Config is the validated, immutable input of one invocation.
type Config struct {
	SiteURL        string
	PublicDir      string
	OutputDir      string
	Filename       string
	UserAgent      string
	Disallow       []string
	Allow          []string
	CrawlDelay     string
	Sitemaps       []string
	Comments       bool
	Strict         bool
	Debug          bool
	Upload         bool
	ArtifactName   string
	RetentionDays  int
	MaxSizeKB      int
	RequireSitemap bool
	StateDir       string
	// ConfigFile is the YAML file the values were read from, if any. The
	// humans and security commands read their document blocks from it.
	ConfigFile string
}

// OutputPath is the file the generated robots.txt is written to.
func (c *Config) OutputPath() string {
	return filepath.Join(c.OutputDir, c.Filename)
}

// RequirePublicDir fails when the public directory does not exist.
func (c *Config) RequirePublicDir() error {
	info, err := os.Stat(c.PublicDir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: public directory %q does not exist", ErrInvalid, c.PublicDir)
		}
		return fmt.Errorf("%w: public directory %q: %v", ErrInvalid, c.PublicDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: public directory %q is not a directory", ErrInvalid, c.PublicDir)
	}
	return nil
}

// Load reads and validates the configuration. The site URL is required.
func Load(v *viper.Viper) (*Config, error) {
	return load(v, true)
}

// LoadOptional is Load for commands that work on existing files, where the
// site URL only enables extra checks.
func LoadOptional(v *viper.Viper) (*Config, error) {
	return load(v, false)
}

func load(v *viper.Viper, requireSite bool) (*Config, error) {
	SetDefaults(v)
	if path := v.GetString(KeyConfigFile); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrInvalid, path, err)
		}
	}

	cfg := &Config{
		PublicDir:      stringOr(v, KeyPublicDir, DefaultPublicDir),
		Filename:       stringOr(v, KeyFilename, DefaultFilename),
		UserAgent:      stringOr(v, KeyUserAgent, DefaultUserAgent),
		Disallow:       normalizePaths(List(v.Get(KeyDisallow))),
		Allow:          normalizePaths(List(v.Get(KeyAllow))),
		CrawlDelay:     strings.TrimSpace(v.GetString(KeyCrawlDelay)),
		Sitemaps:       List(v.Get(KeySitemaps)),
		Comments:       v.GetBool(KeyComments),
		Strict:         v.GetBool(KeyStrict),
		Debug:          v.GetBool(KeyDebug),
		Upload:         v.GetBool(KeyUpload),
		ArtifactName:   stringOr(v, KeyArtifactName, DefaultArtifactName),
		RetentionDays:  v.GetInt(KeyRetentionDays),
		MaxSizeKB:      v.GetInt(KeyMaxSizeKB),
		RequireSitemap: v.GetBool(KeyRequireSitemap),
		StateDir:       stringOr(v, KeyStateDir, DefaultStateDir),
		ConfigFile:     v.GetString(KeyConfigFile),
	}
	cfg.OutputDir = stringOr(v, KeyOutputDir, cfg.PublicDir)

	site := strings.TrimSpace(v.GetString(KeySiteURL))
	switch {
	case site != "":
		normalized, err := NormalizeSiteURL(site)
		if err != nil {
			return nil, err
		}
		cfg.SiteURL = normalized
	case requireSite:
		return nil, fmt.Errorf("%w: %s is required", ErrInvalid, KeySiteURL)
	}

	if strings.ContainsAny(cfg.Filename, `/\`) || cfg.Filename == "." || cfg.Filename == ".." {
		return nil, fmt.Errorf("%w: %s must be a plain file name, got %q", ErrInvalid, KeyFilename, cfg.Filename)
	}
	if cfg.RetentionDays < 1 || cfg.RetentionDays > 90 {
		return nil, fmt.Errorf("%w: %s must be between 1 and 90, got %d", ErrInvalid, KeyRetentionDays, cfg.RetentionDays)
	}
	if cfg.MaxSizeKB <= 0 {
		return nil, fmt.Errorf("%w: %s must be positive, got %d", ErrInvalid, KeyMaxSizeKB, cfg.MaxSizeKB)
	}

	return cfg, nil
}

// NormalizeSiteURL validates an absolute http(s) site URL and returns it with
// an ASCII host and without a trailing slash.
func NormalizeSiteURL(raw string) (string, error) {
	if !siteURLPattern.MatchString(raw) {
		return "", fmt.Errorf("%w: %s must start with http:// or https://, got %q", ErrInvalid, KeySiteURL, raw)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalid, KeySiteURL, err)
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("%w: %s has no host: %q", ErrInvalid, KeySiteURL, raw)
	}

	host, err := idna.Lookup.ToASCII(u.Hostname())
	if err != nil {
		return "", fmt.Errorf("%w: %s host %q: %v", ErrInvalid, KeySiteURL, u.Hostname(), err)
	}
	if port := u.Port(); port != "" {
		host += ":" + port
	}
	u.Host = host
	u.Scheme = strings.ToLower(u.Scheme)

	return strings.TrimSuffix(u.String(), "/"), nil
}

// List flattens a list-valued input. Strings are split on commas and
// newlines; YAML sequences are taken element by element. Blank entries are
// dropped and order is preserved.
func List(value any) []string {
	var raw []string
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		raw = splitList(v)
	case []string:
		for _, s := range v {
			raw = append(raw, splitList(s)...)
		}
	case []any:
		for _, item := range v {
			raw = append(raw, splitList(fmt.Sprint(item))...)
		}
	default:
		raw = splitList(fmt.Sprint(v))
	}
	return raw
}

func splitList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// NormalizePath forces a leading slash on an Allow/Disallow path.
func NormalizePath(p string) string {
	p = strings.TrimSpace(p)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

func normalizePaths(paths []string) []string {
	if len(paths) == 0 {
		return nil
	}
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = NormalizePath(p)
	}
	return out
}

func stringOr(v *viper.Viper, key, fallback string) string {
	if s := strings.TrimSpace(v.GetString(key)); s != "" {
		return s
	}
	return fallback
}
