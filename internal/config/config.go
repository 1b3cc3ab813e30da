package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values. The crawl-related values lean
// conservative: the rule wiki is a small community-run site and a
// snapshot run has no deadline.
const (
	// DefaultBaseHost is the wiki host to mirror, without scheme.
	DefaultBaseHost = "ulisses-regelwiki.de"

	// DefaultNamespace is the tag prefixed to every document identifier
	// in rewritten links. "id:kampf" is stable across runs while the
	// wiki's own URL layout is not.
	DefaultNamespace = "id:"

	// DefaultOutputDir is where the mirrored corpus is written.
	DefaultOutputDir = "wiki"

	// DefaultIndexID is the well-known identifier of the synthetic root
	// document listing all entry points.
	DefaultIndexID = "index"

	// DefaultTitleSuffix is the site-name suffix the wiki appends to
	// every page title. It is stripped from document titles verbatim.
	DefaultTitleSuffix = " - Ulisses Regelwiki"

	// DefaultTimeout is the per-request connection timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultCrawlDelay is the politeness delay between page fetches.
	DefaultCrawlDelay = 500 * time.Millisecond

	// DefaultMaxPages caps the number of pages mirrored in one run.
	// The reachable rule corpus is a few thousand pages; the cap exists
	// to stop a runaway frontier, not to trim a healthy crawl.
	DefaultMaxPages = 10000

	// DefaultUserAgent identifies the mirror in HTTP requests.
	DefaultUserAgent = "dsa-wiki-crawler/2.0 (+https://github.com/n1ru4l/dsa-wiki-crawler)"

	// DefaultMaxBodySize limits how much of a response body is read.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// AppName is the application name used for XDG directory paths.
	AppName = "dsa-wiki-crawler"
)

// DefaultEntryPoints returns the seed pages of the rule wiki, in the
// order they appear in the root index. Site-relative paths.
func DefaultEntryPoints() []string {
	return []string{
		"grundregeln.html",
		"kampfregeln.html",
		"magie.html",
		"goetterwirken.html",
	}
}

// Config holds all options for one mirror run. It is populated from CLI
// flags and the optional config file, then passed down by dependency
// injection; there is no global configuration state.
type Config struct {
	// BaseHost is the wiki host, without scheme.
	BaseHost string

	// EntryPoints are the seed pages, as site-relative paths, processed
	// unconditionally and in this order at crawl start.
	EntryPoints []string

	// Namespace is the identifier prefix used in rewritten links.
	Namespace string

	// OutputDir is the directory the document corpus is written to.
	OutputDir string

	// IndexID is the identifier (and filename) of the root document.
	IndexID string

	// TitleSuffix is stripped from the end of raw page titles.
	TitleSuffix string

	// Timeout is the connection timeout for each HTTP request.
	Timeout time.Duration

	// CrawlDelay is the politeness delay between page fetches.
	CrawlDelay time.Duration

	// MaxPages caps the total number of pages processed in one run.
	MaxPages int

	// UserAgent is sent with every HTTP request.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	MaxBodySize int64

	// Verbose enables debug-level log output.
	Verbose bool

	// MarkdownReport renders the end-of-run summary as markdown instead
	// of plain terminal text.
	MarkdownReport bool

	// JSONReport renders the end-of-run summary as JSON instead of
	// plain terminal text.
	JSONReport bool

	// ReportFile, when set, writes the summary to this path instead of
	// stdout.
	ReportFile string

	// ConfigFilePath is an explicit config file path; empty means search
	// the usual locations.
	ConfigFilePath string

	// DBDir is the directory holding the run database. Defaults to the
	// XDG data directory.
	DBDir string

	// SkipVerify disables the post-run link integrity check.
	SkipVerify bool
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		BaseHost:    DefaultBaseHost,
		EntryPoints: DefaultEntryPoints(),
		Namespace:   DefaultNamespace,
		OutputDir:   DefaultOutputDir,
		IndexID:     DefaultIndexID,
		TitleSuffix: DefaultTitleSuffix,
		Timeout:     DefaultTimeout,
		CrawlDelay:  DefaultCrawlDelay,
		MaxPages:    DefaultMaxPages,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
		DBDir:       XDGDataDir(),
	}
}

// BaseURL returns the scheme-qualified base URL of the wiki.
func (c *Config) BaseURL() string {
	return "https://" + c.BaseHost + "/"
}

// XDGDataDir returns the XDG data directory for the mirror, the default
// home of the run database.
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Validate checks the configuration and returns the first problem found.
// Called once after flag and file parsing, before the crawl starts.
func (c *Config) Validate() error {
	if c.BaseHost == "" {
		return ErrNoBaseHost
	}
	if len(c.EntryPoints) == 0 {
		return ErrNoEntryPoints
	}
	if c.Namespace == "" {
		return ErrNoNamespace
	}
	if c.OutputDir == "" {
		return ErrNoOutputDir
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.CrawlDelay < 0 {
		return ErrInvalidCrawlDelay
	}
	if c.MaxPages <= 0 {
		return ErrInvalidMaxPages
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	return nil
}
