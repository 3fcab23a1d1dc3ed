package config

import (
	"log/slog"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/gobwas/glob"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	domainerr "ylwblog/internal/domain/errors"
	"ylwblog/internal/domain/site"
)

type Config struct {
	Site  SiteConfig  `yaml:"site"`
	Posts PostsConfig `yaml:"posts"`
	Build BuildConfig `yaml:"build"`
	Watch WatchConfig `yaml:"watch"`
	Log   LogConfig   `yaml:"log"`
}

type SiteConfig struct {
	Title       string     `yaml:"title"`
	Description string     `yaml:"description"`
	Language    string     `yaml:"language"`
	Theme       site.Theme `yaml:"theme"`
}

// PostsConfig drives the post loader. Patterns are slash-separated and
// relative to ContentRoot.
type PostsConfig struct {
	ContentRoot   string   `yaml:"content_root"`
	Include       []string `yaml:"include"`
	Exclude       []string `yaml:"exclude"`
	IncludeDrafts bool     `yaml:"include_drafts"`
	Excerpt       bool     `yaml:"excerpt"`
	ExcerptLength int      `yaml:"excerpt_length"`
	Workers       int      `yaml:"workers"`
}

type BuildConfig struct {
	DataFile  string `yaml:"data_file"`
	SiteFile  string `yaml:"site_file"`
	IndexPath string `yaml:"index_path"`
}

type WatchConfig struct {
	Patterns    []string      `yaml:"patterns"`
	Debounce    time.Duration `yaml:"debounce"`
	MetricsAddr string        `yaml:"metrics_addr"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func Default() Config {
	return Config{
		Site: SiteConfig{
			Title:    "ylw-blog",
			Language: "en-US",
			Theme: site.Theme{
				Nav: []site.NavItem{
					{Text: "posts", Link: "/posts"},
				},
				CodeTheme: site.CodeTheme{
					Light: "vitesse-light",
					Dark:  "vitesse-dark",
				},
				LastUpdated: true,
				CleanURLs:   true,
			},
		},
		Posts: PostsConfig{
			ContentRoot:   "docs",
			Include:       []string{"posts/*.md"},
			Exclude:       []string{"posts/index.md"},
			ExcerptLength: 160,
		},
		Build: BuildConfig{
			DataFile:  ".ylwblog/posts.json",
			SiteFile:  ".ylwblog/site.json",
			IndexPath: ".ylwblog/index.db",
		},
		Watch: WatchConfig{
			Patterns: []string{"posts/*.md"},
			Debounce: 200 * time.Millisecond,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func (c Config) Validate() error {
	var ve domainerr.ValidationError

	if strings.TrimSpace(c.Site.Title) == "" {
		ve.Add("site.title", "must not be empty")
	}
	for i, item := range c.Site.Theme.Nav {
		if strings.TrimSpace(item.Link) == "" {
			ve.Add("site.theme.nav["+strconv.Itoa(i)+"].link", "must not be empty")
		}
	}

	if strings.TrimSpace(c.Posts.ContentRoot) == "" {
		ve.Add("posts.content_root", "must not be empty")
	}
	if len(c.Posts.Include) == 0 {
		ve.Add("posts.include", "must list at least one pattern")
	}
	validatePatterns(&ve, "posts.include", c.Posts.Include)
	validatePatterns(&ve, "posts.exclude", c.Posts.Exclude)
	if c.Posts.ExcerptLength < 0 {
		ve.Add("posts.excerpt_length", "must not be negative")
	}
	if c.Posts.Workers < 0 {
		ve.Add("posts.workers", "must not be negative")
	}

	if strings.TrimSpace(c.Build.DataFile) == "" {
		ve.Add("build.data_file", "must not be empty")
	}
	if strings.TrimSpace(c.Build.SiteFile) == "" {
		ve.Add("build.site_file", "must not be empty")
	}
	if strings.TrimSpace(c.Build.IndexPath) == "" {
		ve.Add("build.index_path", "must not be empty")
	}

	validatePatterns(&ve, "watch.patterns", c.Watch.Patterns)
	if c.Watch.Debounce < 0 {
		ve.Add("watch.debounce", "must not be negative")
	}

	if _, ok := ParseLevel(c.Log.Level); !ok {
		ve.Add("log.level", "must be one of debug, info, warn, error")
	}

	if ve.HasAny() {
		return ve
	}
	return nil
}

func validatePatterns(ve *domainerr.ValidationError, field string, patterns []string) {
	for _, p := range patterns {
		if strings.TrimSpace(p) == "" {
			ve.Add(field, "pattern must not be empty")
			continue
		}
		if path.IsAbs(p) {
			ve.Add(field, "pattern must be relative to content_root: "+p)
			continue
		}
		if _, err := glob.Compile(p, '/'); err != nil {
			ve.Add(field, "bad pattern "+p+": "+err.Error())
		}
	}
}

// ParseLevel maps a config/flag level name onto slog.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, true
	case "debug":
		return slog.LevelDebug, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// Env keys that override the file.
const (
	EnvContentRoot = "YLWBLOG_CONTENT_ROOT"
	EnvDataFile    = "YLWBLOG_DATA_FILE"
	EnvSiteFile    = "YLWBLOG_SITE_FILE"
	EnvIndexPath   = "YLWBLOG_INDEX"
	EnvLogLevel    = "YLWBLOG_LOG_LEVEL"
)

// ApplyEnv loads an optional .env file next to the working directory and
// lets YLWBLOG_* variables win over whatever the YAML said.
func (c *Config) ApplyEnv(dotenv string) error {
	if dotenv != "" {
		if err := godotenv.Load(dotenv); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvContentRoot)); v != "" {
		c.Posts.ContentRoot = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDataFile)); v != "" {
		c.Build.DataFile = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvSiteFile)); v != "" {
		c.Build.SiteFile = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvIndexPath)); v != "" {
		c.Build.IndexPath = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.Log.Level = v
	}
	return nil
}

func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	// fields present in the file override Default, the rest stay as they are
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func LoadOrDefault(path string) (Config, error) {
	cfg, err := Load(path)
	if err != nil && os.IsNotExist(err) {
		cfg = Default()
		return cfg, cfg.Validate()
	}
	return cfg, err
}
