package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/blockgrid/pkg/errors"
	"github.com/matzehuels/blockgrid/pkg/pipeline"
)

// Cache backends selectable in the config file.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendMongo = "mongo"
	backendNone  = "none"
)

// defaultServerAddr is the listen address of "serve" when none is configured.
const defaultServerAddr = ":8080"

// utf8BOM is stripped from the start of config files.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Config is the TOML config file.
//
//	[render]
//	format = "svg"
//	fontpath = ["/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf"]
//	antialias = true
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "12h"
//
//	[server]
//	addr = ":8080"
type Config struct {
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// RenderConfig holds defaults for the render flags.
type RenderConfig struct {
	Format     string   `toml:"format"`
	Font       string   `toml:"font"`
	FontPath   []string `toml:"fontpath"`
	Antialias  bool     `toml:"antialias"`
	NoDoctype  bool     `toml:"nodoctype"`
	CellWidth  int      `toml:"cell_width"`
	CellHeight int      `toml:"cell_height"`
	SpanWidth  int      `toml:"span_width"`
	SpanHeight int      `toml:"span_height"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend       string        `toml:"backend"`
	Dir           string        `toml:"dir"`
	RedisAddr     string        `toml:"redis_addr"`
	RedisPassword string        `toml:"redis_password"`
	RedisDB       int           `toml:"redis_db"`
	MongoURI      string        `toml:"mongo_uri"`
	MongoDatabase string        `toml:"mongo_database"`
	TTL           time.Duration `toml:"ttl"`
	// Namespace prefixes every cache key so several deployments can share
	// one Redis or MongoDB instance.
	Namespace string `toml:"namespace"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

func defaultConfig() *Config {
	return &Config{
		Cache:  CacheConfig{Backend: backendFile},
		Server: ServerConfig{Addr: defaultServerAddr},
	}
}

// loadConfig reads the config file at path. An empty path means the default
// location, where a missing file yields the defaults. An explicit path must
// name an existing regular file.
func loadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return defaultConfig(), nil
		}
		path = filepath.Join(dir, configFileName)
	}

	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err) && !explicit:
		return defaultConfig(), nil
	case os.IsNotExist(err):
		return nil, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
	case err != nil:
		return nil, fmt.Errorf("stat config %s: %w", path, err)
	case info.IsDir():
		return nil, errors.New(errors.ErrCodeInvalidPath, "config path is a directory: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := parseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// parseConfig decodes and validates config data. A leading UTF-8 BOM is
// ignored and unknown keys are rejected.
func parseConfig(data []byte) (*Config, error) {
	cfg := defaultConfig()
	md, err := toml.Decode(string(bytes.TrimPrefix(data, utf8BOM)), cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown config keys: %s", strings.Join(keys, ", "))
	}

	switch cfg.Cache.Backend {
	case "":
		cfg.Cache.Backend = backendFile
	case backendFile, backendRedis, backendMongo, backendNone:
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"unknown cache backend: %q (must be one of: file, redis, mongo, none)", cfg.Cache.Backend)
	}
	if cfg.Render.Format != "" {
		cfg.Render.Format = pipeline.NormalizeFormat(cfg.Render.Format)
		if err := pipeline.ValidateFormat(cfg.Render.Format); err != nil {
			return nil, err
		}
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = defaultServerAddr
	}
	return cfg, nil
}

// resolveFont picks the font passed to the renderer. An explicit font (flag
// first, then the config's font key) is used as is unless it names a file
// path that does not exist. Otherwise the first existing fontpath entry wins.
// Configured fontpaths of which none exists are an error.
func resolveFont(flag string, cfg RenderConfig) (string, error) {
	for _, font := range []string{flag, cfg.Font} {
		if font == "" {
			continue
		}
		if looksLikePath(font) && !fileExists(font) {
			return "", errors.New(errors.ErrCodeFileNotFound, "font file not found: %s", font)
		}
		return font, nil
	}

	for _, path := range cfg.FontPath {
		if fileExists(path) {
			return path, nil
		}
	}
	if len(cfg.FontPath) > 0 {
		return "", errors.New(errors.ErrCodeFileNotFound, "none of the configured fontpath entries exist: %s",
			strings.Join(cfg.FontPath, ", "))
	}
	return "", nil
}

// looksLikePath reports whether a font value names a file rather than a
// font family.
func looksLikePath(font string) bool {
	if strings.ContainsAny(font, `/\`) {
		return true
	}
	switch strings.ToLower(filepath.Ext(font)) {
	case ".ttf", ".otf", ".ttc", ".woff", ".woff2":
		return true
	}
	return false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
