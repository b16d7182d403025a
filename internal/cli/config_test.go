package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/blockgrid/pkg/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestParseConfig(t *testing.T) {
	data := "\xEF\xBB\xBF" + `
[render]
format = "PNG"
antialias = true
cell_width = 96

[cache]
backend = "redis"
redis_addr = "localhost:6379"
ttl = "12h"
namespace = "staging"

[server]
addr = ":9090"
`
	cfg, err := parseConfig([]byte(data))
	if err != nil {
		t.Fatalf("parseConfig() error: %v", err)
	}

	if cfg.Render.Format != "png" || !cfg.Render.Antialias || cfg.Render.CellWidth != 96 {
		t.Errorf("Render = %+v", cfg.Render)
	}
	if cfg.Cache.Backend != backendRedis || cfg.Cache.RedisAddr != "localhost:6379" {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Cache.Namespace != "staging" {
		t.Errorf("Cache.Namespace = %q, want staging", cfg.Cache.Namespace)
	}
	if cfg.Cache.TTL != 12*time.Hour {
		t.Errorf("Cache.TTL = %v, want 12h", cfg.Cache.TTL)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Server.Addr = %q, want :9090", cfg.Server.Addr)
	}
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := parseConfig(nil)
	if err != nil {
		t.Fatalf("parseConfig() error: %v", err)
	}
	if cfg.Cache.Backend != backendFile {
		t.Errorf("Cache.Backend = %q, want %q", cfg.Cache.Backend, backendFile)
	}
	if cfg.Server.Addr != defaultServerAddr {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, defaultServerAddr)
	}
}

func TestParseConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		code errors.Code
	}{
		{"syntax", "[render\n", errors.ErrCodeInvalidInput},
		{"unknown key", "[render]\nshape = \"box\"\n", errors.ErrCodeInvalidInput},
		{"unknown backend", "[cache]\nbackend = \"memcached\"\n", errors.ErrCodeInvalidInput},
		{"unknown format", "[render]\nformat = \"gif\"\n", errors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseConfig([]byte(tt.data))
			if !errors.Is(err, tt.code) {
				t.Errorf("parseConfig() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.toml", "[cache]\nbackend = \"none\"\n")

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Cache.Backend != backendNone {
		t.Errorf("Cache.Backend = %q, want none", cfg.Cache.Backend)
	}

	if _, err := loadConfig(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("loadConfig(missing) error = %v, want FILE_NOT_FOUND", err)
	}
	if _, err := loadConfig(dir); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("loadConfig(dir) error = %v, want INVALID_PATH", err)
	}
}

func TestLoadConfigDefaultLocation(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Cache.Backend != backendFile {
		t.Errorf("Cache.Backend = %q, want file", cfg.Cache.Backend)
	}
}

func TestResolveFont(t *testing.T) {
	dir := t.TempDir()
	font := writeFile(t, dir, "Sans.ttf", "")
	missing := filepath.Join(dir, "Missing.ttf")

	tests := []struct {
		name    string
		flag    string
		cfg     RenderConfig
		want    string
		wantErr bool
	}{
		{"none", "", RenderConfig{}, "", false},
		{"family", "Helvetica", RenderConfig{}, "Helvetica", false},
		{"flag wins", "Helvetica", RenderConfig{Font: "Courier"}, "Helvetica", false},
		{"config font", "", RenderConfig{Font: "Courier"}, "Courier", false},
		{"existing path", font, RenderConfig{}, font, false},
		{"missing path", missing, RenderConfig{}, "", true},
		{"missing extension only", "Missing.ttf", RenderConfig{}, "", true},
		{"fontpath", "", RenderConfig{FontPath: []string{missing, font}}, font, false},
		{"fontpath none exist", "", RenderConfig{FontPath: []string{missing}}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveFont(tt.flag, tt.cfg)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeFileNotFound) {
					t.Errorf("resolveFont() error = %v, want FILE_NOT_FOUND", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveFont() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveFont() = %q, want %q", got, tt.want)
			}
		})
	}
}
