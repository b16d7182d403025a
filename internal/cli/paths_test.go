package cli

import (
	"path/filepath"
	"testing"
)

func TestXDGDirs(t *testing.T) {
	home := t.TempDir()

	tests := []struct {
		name   string
		dir    func() (string, error)
		env    string
		envVal string
		want   string
	}{
		{"cache default", cacheDir, "XDG_CACHE_HOME", "", filepath.Join(home, ".cache", appName)},
		{"cache xdg", cacheDir, "XDG_CACHE_HOME", "/tmp/xdg-cache", filepath.Join("/tmp/xdg-cache", appName)},
		{"config default", configDir, "XDG_CONFIG_HOME", "", filepath.Join(home, ".config", appName)},
		{"config xdg", configDir, "XDG_CONFIG_HOME", "/tmp/xdg-config", filepath.Join("/tmp/xdg-config", appName)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HOME", home)
			t.Setenv(tt.env, tt.envVal)

			got, err := tt.dir()
			if err != nil {
				t.Fatalf("error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
