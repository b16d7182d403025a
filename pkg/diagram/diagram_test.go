package diagram

import (
	"reflect"
	"testing"
)

func TestAddNode(t *testing.T) {
	d := New()
	n, created := d.AddNode("A")
	if !created {
		t.Fatal("AddNode() should create a new node")
	}
	if n.Width != 1 || n.Height != 1 {
		t.Errorf("AddNode() size = %dx%d, want 1x1", n.Width, n.Height)
	}

	again, created := d.AddNode("A")
	if created {
		t.Error("AddNode() should not recreate an existing node")
	}
	if again != n {
		t.Error("AddNode() should return the existing node")
	}
	if d.NodeCount() != 1 {
		t.Errorf("NodeCount() = %d, want 1", d.NodeCount())
	}
}

func TestOrder(t *testing.T) {
	d := New()
	d.AddNode("A")
	d.AddNode("B")
	d.AddGroup("group:g")
	d.AddNode("C")

	for id, want := range map[string]int{"A": 0, "B": 1, "group:g": 2, "C": 3, "missing": -1} {
		if got := d.Order(id); got != want {
			t.Errorf("Order(%q) = %d, want %d", id, got, want)
		}
	}

	d.RemoveNode("B")
	if got := d.Order("C"); got != 2 {
		t.Errorf("Order(C) after RemoveNode = %d, want 2", got)
	}
	if _, ok := d.Node("B"); ok {
		t.Error("Node(B) should be gone after RemoveNode")
	}
	d.RemoveNode("missing")
	if d.NodeCount() != 3 {
		t.Errorf("NodeCount() = %d, want 3", d.NodeCount())
	}
}

func TestRemoveNodeDropsIncidentEdges(t *testing.T) {
	d := New()
	for _, id := range []string{"A", "B", "C"} {
		d.AddNode(id)
	}
	d.AddEdge("A", "B")
	d.AddEdge("B", "C")
	d.AddEdge("A", "C")

	d.RemoveNode("B")

	if d.EdgeCount() != 1 {
		t.Fatalf("EdgeCount() = %d, want 1", d.EdgeCount())
	}
	if _, ok := d.Edge("A", "C"); !ok {
		t.Error("edge A->C should survive")
	}
	for _, k := range [][2]string{{"A", "B"}, {"B", "C"}} {
		if _, ok := d.Edge(k[0], k[1]); ok {
			t.Errorf("edge %s->%s should be gone", k[0], k[1])
		}
	}
}

func TestRemoveEdge(t *testing.T) {
	d := New()
	for _, id := range []string{"A", "B", "C"} {
		d.AddNode(id)
	}
	d.AddEdge("A", "B")
	d.AddEdge("B", "C")
	d.AddEdge("C", "A")

	d.RemoveEdge("A", "B")
	d.RemoveEdge("A", "B")
	d.RemoveEdge("X", "Y")

	e, ok := d.Edge("C", "A")
	if !ok || e.From != "C" || e.To != "A" {
		t.Fatalf("Edge(C, A) = %v, %v after re-indexing", e, ok)
	}
	if got := d.Edges(); len(got) != 2 || got[0].From != "B" || got[1].From != "C" {
		t.Errorf("Edges() = %v, want [B->C C->A]", got)
	}
}

func TestAddEdge(t *testing.T) {
	d := New()
	d.AddNode("A")
	d.AddNode("B")

	e, created := d.AddEdge("A", "B")
	if !created || e.From != "A" || e.To != "B" {
		t.Fatalf("AddEdge() = %+v, %v", e, created)
	}
	if _, created := d.AddEdge("A", "B"); created {
		t.Error("AddEdge() should not duplicate an edge")
	}
	if _, created := d.AddEdge("B", "A"); !created {
		t.Error("AddEdge() reverse pair is a distinct edge")
	}
	if d.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", d.EdgeCount())
	}
	if _, ok := d.Edge("A", "C"); ok {
		t.Error("Edge(A, C) should not exist")
	}
}

func TestNodesReturnsCopy(t *testing.T) {
	d := New()
	d.AddNode("A")
	nodes := d.Nodes()
	nodes[0] = &Node{ID: "X"}
	if n, _ := d.Node("A"); n.ID != "A" {
		t.Error("Nodes() should return a copy of the slice")
	}
}

func TestGroups(t *testing.T) {
	d := New()
	d.AddNode("A")
	g, _ := d.AddGroup("group:g")
	if !g.IsGroup() || g.Drawable() {
		t.Error("AddGroup() should create a non-drawable group")
	}

	groups := d.Groups()
	if len(groups) != 1 || groups[0].ID != "group:g" {
		t.Errorf("Groups() = %v, want [group:g]", groups)
	}
}

func TestUnit(t *testing.T) {
	d := New()
	d.AddGroup("group:outer")
	inner, _ := d.AddGroup("group:inner")
	inner.Group = "group:outer"
	a, _ := d.AddNode("A")
	a.Group = "group:inner"
	d.AddNode("B")

	tests := map[string]string{
		"A":           "group:outer",
		"group:inner": "group:outer",
		"group:outer": "group:outer",
		"B":           "B",
	}
	for id, want := range tests {
		if got := d.Unit(id); got != want {
			t.Errorf("Unit(%q) = %q, want %q", id, got, want)
		}
	}
}

func TestDisplayLabel(t *testing.T) {
	n := &Node{ID: "A"}
	if got := n.DisplayLabel(); got != "A" {
		t.Errorf("DisplayLabel() = %q, want A", got)
	}
	n.Label = "web"
	if got := n.DisplayLabel(); got != "web" {
		t.Errorf("DisplayLabel() = %q, want web", got)
	}
	g := &Node{ID: "group:g", Members: &Members{}}
	if got := g.DisplayLabel(); got != "" {
		t.Errorf("group DisplayLabel() = %q, want empty", got)
	}
}

func TestApplyDefaults(t *testing.T) {
	d := New()
	a, _ := d.AddNode("A")
	b, _ := d.AddNode("B")
	b.Label, b.Color = "bee", "red"
	g, _ := d.AddGroup("group:g")
	e1, _ := d.AddEdge("A", "B")
	e2, _ := d.AddEdge("B", "A")
	e2.Dir = DirBoth

	d.ApplyDefaults()

	if a.Label != "A" || a.Color != DefaultNodeColor {
		t.Errorf("A = %q/%q, want A/%s", a.Label, a.Color, DefaultNodeColor)
	}
	if b.Label != "bee" || b.Color != "red" {
		t.Errorf("B = %q/%q, want explicit values kept", b.Label, b.Color)
	}
	if g.Label != "" || g.Color != DefaultGroupColor {
		t.Errorf("group = %q/%q, want empty label and %s", g.Label, g.Color, DefaultGroupColor)
	}
	if e1.Dir != DirForward || e2.Dir != DirBoth {
		t.Errorf("edge dirs = %s/%s, want forward/both", e1.Dir, e2.Dir)
	}
}

func TestExtentAndTranspose(t *testing.T) {
	d := New()
	a, _ := d.AddNode("A")
	b, _ := d.AddNode("B")
	a.Width = 2
	b.Column, b.Row, b.Height = 2, 1, 3

	cols, rows := d.Extent()
	if cols != 3 || rows != 4 {
		t.Errorf("Extent() = %d,%d, want 3,4", cols, rows)
	}

	d.Transpose()
	if got := []int{b.Column, b.Row, b.Width, b.Height}; !reflect.DeepEqual(got, []int{1, 2, 3, 1}) {
		t.Errorf("transposed B = %v, want [1 2 3 1]", got)
	}
	cols, rows = d.Extent()
	if cols != 4 || rows != 3 {
		t.Errorf("transposed Extent() = %d,%d, want 4,3", cols, rows)
	}

	d.Transpose()
	if got := []int{b.Column, b.Row, b.Width, b.Height}; !reflect.DeepEqual(got, []int{2, 1, 1, 3}) {
		t.Errorf("double transpose B = %v, want original", got)
	}
}
