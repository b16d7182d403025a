package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/blockgrid/pkg/errors"
	"github.com/matzehuels/blockgrid/pkg/graph"
)

const chainStmts = `{"statements": [
  {"edge": {"ids": ["A", "B", "C"]}},
  {"subgraph": {"id": "tail", "statements": [{"node": {"id": "B"}}, {"node": {"id": "C"}}]}}
]}`

// runCLI executes the root command with caching disabled via a temp config.
func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	cfg := writeFile(t, t.TempDir(), "config.toml", "[cache]\nbackend = \"none\"\n")

	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs(append([]string{"--config", cfg}, args...))
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestLayoutCommand(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "chain.json", chainStmts)

	if err := runCLI(t, "layout", input); err != nil {
		t.Fatalf("layout error: %v", err)
	}

	l, err := graph.ReadLayoutFile(filepath.Join(dir, "chain.layout.json"))
	if err != nil {
		t.Fatalf("ReadLayoutFile() error: %v", err)
	}
	if len(l.Nodes) != 4 || l.Columns != 3 || l.Rows != 1 {
		t.Errorf("layout = %d nodes, %dx%d; want 4 nodes, 3x1", len(l.Nodes), l.Columns, l.Rows)
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "chain.json", chainStmts)
	base := filepath.Join(dir, "out")

	if err := runCLI(t, "render", input, "-T", "DOT,json", "-o", base); err != nil {
		t.Fatalf("render error: %v", err)
	}

	dot, err := os.ReadFile(base + ".dot")
	if err != nil {
		t.Fatalf("read dot: %v", err)
	}
	if !strings.HasPrefix(string(dot), "digraph G {") {
		t.Errorf("dot output = %q", dot)
	}
	if _, err := graph.ReadLayoutFile(base + ".json"); err != nil {
		t.Errorf("json output invalid: %v", err)
	}
}

func TestVisualizeCommand(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "chain.json", chainStmts)
	if err := runCLI(t, "layout", input); err != nil {
		t.Fatalf("layout error: %v", err)
	}

	output := filepath.Join(dir, "chain.gv")
	if err := runCLI(t, "visualize", filepath.Join(dir, "chain.layout.json"), "-T", "dot", "-o", output); err != nil {
		t.Fatalf("visualize error: %v", err)
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("visualize did not write %s: %v", output, err)
	}
}

func TestRenderCommandErrors(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "chain.json", chainStmts)
	bad := writeFile(t, dir, "bad.json", `{"statements": [{"node": {"id": "A", "attrs": [{"name": "shape", "value": "box"}]}}]}`)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"unknown format", []string{"render", input, "-T", "gif"}, errors.ErrCodeInvalidFormat},
		{"nodoctype with png", []string{"render", input, "-T", "png", "--nodoctype"}, errors.ErrCodeUnsupported},
		{"missing font", []string{"render", input, "-f", filepath.Join(dir, "nope.ttf")}, errors.ErrCodeFileNotFound},
		{"missing input", []string{"render", filepath.Join(dir, "nope.json")}, errors.ErrCodeFileNotFound},
		{"unknown attribute", []string{"render", bad, "-T", "dot"}, errors.ErrCodeUnknownAttribute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runCLI(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestMissingConfigFile(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.toml"), "cache", "path"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	if err := root.Execute(); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Execute() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestCachePathCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "config.toml", "[cache]\ndir = \""+filepath.ToSlash(dir)+"/cache\"\n")

	var out strings.Builder
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs([]string{"--config", cfg, "cache", "path"})
	root.SetOut(&out)

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != filepath.ToSlash(dir)+"/cache" {
		t.Errorf("cache path = %q, want %q", got, filepath.ToSlash(dir)+"/cache")
	}
}
