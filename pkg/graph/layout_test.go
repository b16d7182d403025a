package graph

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/blockgrid/pkg/builder"
	"github.com/matzehuels/blockgrid/pkg/diagram"
	"github.com/matzehuels/blockgrid/pkg/errors"
	"github.com/matzehuels/blockgrid/pkg/stmt"
)

func sampleDiagram(t *testing.T) *diagram.Diagram {
	t.Helper()
	d, err := builder.Build([]stmt.Stmt{
		stmt.Node{ID: "web", Attrs: []stmt.Attr{{Name: "style", Value: "dashed"}}},
		stmt.Edge{IDs: []string{"web", "api", "db"}, Attrs: []stmt.Attr{{Name: "color", Value: "red"}}},
		stmt.Edge{IDs: []string{"db", "web"}},
		stmt.SubGraph{ID: "backend", Stmts: []stmt.Stmt{stmt.Node{ID: "api"}, stmt.Node{ID: "db"}}},
		stmt.DefAttrs{Attrs: []stmt.Attr{{Name: "rankdir", Value: "sideways"}}},
	})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return d
}

func TestFromDiagram(t *testing.T) {
	d := sampleDiagram(t)
	l := FromDiagram(d)

	if l.Orientation != "TB" {
		t.Errorf("Orientation = %q, want TB", l.Orientation)
	}
	if len(l.Nodes) != d.NodeCount() || len(l.Edges) != d.EdgeCount() {
		t.Fatalf("got %d nodes / %d edges, want %d / %d", len(l.Nodes), len(l.Edges), d.NodeCount(), d.EdgeCount())
	}
	for i, n := range d.Nodes() {
		if l.Nodes[i].ID != n.ID {
			t.Errorf("Nodes[%d] = %q, want %q (registry order)", i, l.Nodes[i].ID, n.ID)
		}
	}

	var grp *Node
	for i := range l.Nodes {
		if l.Nodes[i].IsGroup() {
			grp = &l.Nodes[i]
		}
	}
	if grp == nil || grp.ID != "group:backend" {
		t.Fatalf("group node missing, got %+v", l.Nodes)
	}
	if !reflect.DeepEqual(grp.Members, []string{"api", "db"}) {
		t.Errorf("Members = %v, want [api db]", grp.Members)
	}
	if len(l.Warnings) != 1 || l.Warnings[0].Code != string(diagram.WarnUnknownRankDir) {
		t.Errorf("Warnings = %v, want one UNKNOWN_RANKDIR", l.Warnings)
	}
	if l.Columns != 3 || l.Rows != 1 {
		t.Errorf("extent = %dx%d, want 3x1", l.Columns, l.Rows)
	}
}

func TestRoundTrip(t *testing.T) {
	d := sampleDiagram(t)
	data, err := MarshalLayout(FromDiagram(d))
	if err != nil {
		t.Fatalf("MarshalLayout() error: %v", err)
	}

	l, err := UnmarshalLayout(data)
	if err != nil {
		t.Fatalf("UnmarshalLayout() error: %v", err)
	}
	back, err := ToDiagram(l)
	if err != nil {
		t.Fatalf("ToDiagram() error: %v", err)
	}

	if !reflect.DeepEqual(FromDiagram(back), FromDiagram(d)) {
		t.Error("Diagram → Layout → Diagram should preserve every field")
	}
	if back.Order("db") != d.Order("db") {
		t.Errorf("Order(db) = %d, want %d", back.Order("db"), d.Order("db"))
	}
}

func TestUnmarshalLayoutInvalid(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"bad orientation", `{"orientation": "BT", "nodes": []}`},
		{"duplicate node", `{"nodes": [{"id": "A", "width": 1, "height": 1}, {"id": "A", "width": 1, "height": 1}]}`},
		{"zero width", `{"nodes": [{"id": "A", "width": 0, "height": 1}]}`},
		{"negative column", `{"nodes": [{"id": "A", "column": -1, "width": 1, "height": 1}]}`},
		{"unknown kind", `{"nodes": [{"id": "A", "kind": "cluster", "width": 1, "height": 1}]}`},
		{"owner not a group", `{"nodes": [{"id": "A", "width": 1, "height": 1}, {"id": "B", "group": "A", "width": 1, "height": 1}]}`},
		{"unknown member", `{"nodes": [{"id": "g", "kind": "group", "members": ["X"], "width": 1, "height": 1}]}`},
		{"dangling edge", `{"nodes": [{"id": "A", "width": 1, "height": 1}], "edges": [{"from": "A", "to": "B"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalLayout([]byte(tt.json))
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("UnmarshalLayout() error = %v, want INVALID_INPUT", err)
			}
		})
	}

	if _, err := UnmarshalLayout([]byte("{")); err == nil {
		t.Error("UnmarshalLayout() should reject malformed JSON")
	}
}

func TestLayoutFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "diagram.layout.json")
	l := FromDiagram(sampleDiagram(t))

	if err := WriteLayoutFile(l, path); err != nil {
		t.Fatalf("WriteLayoutFile() error: %v", err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), `"kind": "group"`) {
		t.Errorf("layout file should be indented JSON with group kind, got:\n%s", data)
	}

	got, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile() error: %v", err)
	}
	if !reflect.DeepEqual(got, l) {
		t.Error("ReadLayoutFile() should return what was written")
	}

	_, err = ReadLayoutFile(filepath.Join(dir, "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ReadLayoutFile(missing) error = %v, want FILE_NOT_FOUND", err)
	}
}
