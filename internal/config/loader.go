package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".dsawiki"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the YAML configuration file. Every field is optional; unset
// fields keep their defaults.
type File struct {
	BaseHost    string   `yaml:"baseHost,omitempty"`
	EntryPoints []string `yaml:"entryPoints,omitempty"`
	Namespace   string   `yaml:"namespace,omitempty"`
	OutputDir   string   `yaml:"outputDir,omitempty"`
	TitleSuffix string   `yaml:"titleSuffix,omitempty"`
	// CrawlDelayMS is the politeness delay in milliseconds. YAML has no
	// duration type, so the file speaks in integers.
	CrawlDelayMS int    `yaml:"crawlDelayMs,omitempty"`
	MaxPages     int    `yaml:"maxPages,omitempty"`
	UserAgent    string `yaml:"userAgent,omitempty"`
}

// LoadConfigFile loads mirror settings from a YAML file.
// If the file does not exist it returns ErrConfigNotFound; callers decide
// whether that is fatal based on whether the path was explicit.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Apply overlays the file's set fields onto the config.
func (f *File) Apply(c *Config) {
	if f.BaseHost != "" {
		c.BaseHost = f.BaseHost
	}
	if len(f.EntryPoints) > 0 {
		c.EntryPoints = f.EntryPoints
	}
	if f.Namespace != "" {
		c.Namespace = f.Namespace
	}
	if f.OutputDir != "" {
		c.OutputDir = f.OutputDir
	}
	if f.TitleSuffix != "" {
		c.TitleSuffix = f.TitleSuffix
	}
	if f.CrawlDelayMS > 0 {
		c.CrawlDelay = time.Duration(f.CrawlDelayMS) * time.Millisecond
	}
	if f.MaxPages > 0 {
		c.MaxPages = f.MaxPages
	}
	if f.UserAgent != "" {
		c.UserAgent = f.UserAgent
	}
}

// FindConfigFile searches for the configuration file:
// an explicit path wins, then the current directory, then the home
// directory. Returns "" when nothing is found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
