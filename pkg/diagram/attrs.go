package diagram

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/blockgrid/pkg/errors"
	"github.com/matzehuels/blockgrid/pkg/stmt"
)

// =============================================================================
// Attribute Keys
// =============================================================================

// NodeAttr is a recognized node attribute.
type NodeAttr int

const (
	NodeLabel NodeAttr = iota
	NodeColor
	NodeStyle
	NodeNumbered
	NodeBackground
	NodeWidth
	NodeHeight
)

// EdgeAttr is a recognized edge attribute.
type EdgeAttr int

const (
	EdgeDir EdgeAttr = iota
	EdgeColor
	EdgeStyle
	EdgeNoWeight
)

// DiagramAttr is a recognized diagram-level attribute.
type DiagramAttr int

const (
	DiagramRankDir DiagramAttr = iota
	DiagramColor
)

var nodeAttrs = map[string]NodeAttr{
	"label":      NodeLabel,
	"color":      NodeColor,
	"style":      NodeStyle,
	"numbered":   NodeNumbered,
	"background": NodeBackground,
	"width":      NodeWidth,
	"height":     NodeHeight,
}

var edgeAttrs = map[string]EdgeAttr{
	"dir":      EdgeDir,
	"color":    EdgeColor,
	"style":    EdgeStyle,
	"noweight": EdgeNoWeight,
}

var diagramAttrs = map[string]DiagramAttr{
	"rankdir": DiagramRankDir,
	"color":   DiagramColor,
}

// ParseNodeAttr resolves a node attribute name. Unknown names are fatal.
func ParseNodeAttr(id, name string) (NodeAttr, error) {
	if a, ok := nodeAttrs[name]; ok {
		return a, nil
	}
	return 0, errors.New(errors.ErrCodeUnknownAttribute, "unknown node attribute: %s.%s", id, name)
}

// ParseEdgeAttr resolves an edge attribute name. Unknown names are fatal.
func ParseEdgeAttr(name string) (EdgeAttr, error) {
	if a, ok := edgeAttrs[name]; ok {
		return a, nil
	}
	return 0, errors.New(errors.ErrCodeUnknownAttribute, "unknown edge attribute: %s", name)
}

// ParseDiagramAttr resolves a diagram attribute name. Unknown names are fatal.
func ParseDiagramAttr(name string) (DiagramAttr, error) {
	if a, ok := diagramAttrs[name]; ok {
		return a, nil
	}
	return 0, errors.New(errors.ErrCodeUnknownAttribute, "unknown diagram attribute: %s", name)
}

// =============================================================================
// Overlay
// =============================================================================

// Overlay applies statement attributes to diagram entities. Invalid values
// are reported through Warn and leave the previous value in place.
type Overlay struct {
	// FileExists checks background image paths. Defaults to a regular-file
	// check on the local filesystem.
	FileExists func(path string) bool
	// Warn receives non-fatal problems. May be nil.
	Warn func(Warning)
}

func (o Overlay) warn(code WarningCode, scope, format string, args ...any) {
	if o.Warn == nil {
		return
	}
	o.Warn(Warning{Code: code, Scope: scope, Message: fmt.Sprintf(format, args...)})
}

func (o Overlay) fileExists(path string) bool {
	if o.FileExists != nil {
		return o.FileExists(path)
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Node overlays attrs onto n. It stops at the first unknown attribute name.
func (o Overlay) Node(n *Node, attrs []stmt.Attr) error {
	for _, attr := range attrs {
		key, err := ParseNodeAttr(n.ID, attr.Name)
		if err != nil {
			return err
		}
		value := attr.Value

		switch key {
		case NodeLabel:
			n.Label = value
		case NodeColor:
			n.Color = value
		case NodeStyle:
			if style, ok := parseStyle(value); ok {
				n.Style = style
			} else {
				o.warn(WarnUnknownStyle, n.ID, "unknown node style: %s", strings.ToLower(value))
			}
		case NodeNumbered:
			n.Numbered = value
		case NodeBackground:
			if o.fileExists(value) {
				n.Background = value
			} else {
				o.warn(WarnMissingBackground, n.ID, "background image not found: %s", value)
			}
		case NodeWidth:
			if size, ok := parseSize(value); ok {
				n.Width = size
			} else {
				o.warn(WarnInvalidSize, n.ID, "invalid node width: %s", value)
			}
		case NodeHeight:
			if size, ok := parseSize(value); ok {
				n.Height = size
			} else {
				o.warn(WarnInvalidSize, n.ID, "invalid node height: %s", value)
			}
		}
	}
	return nil
}

// Edge overlays attrs onto e. It stops at the first unknown attribute name.
func (o Overlay) Edge(e *Edge, attrs []stmt.Attr) error {
	scope := e.From + "->" + e.To
	for _, attr := range attrs {
		key, err := ParseEdgeAttr(attr.Name)
		if err != nil {
			return err
		}
		value := attr.Value

		switch key {
		case EdgeDir:
			if dir, ok := parseDir(value); ok {
				e.Dir = dir
			} else {
				o.warn(WarnUnknownDir, scope, "unknown edge dir: %s", strings.ToLower(value))
			}
		case EdgeColor:
			e.Color = value
		case EdgeStyle:
			if style, ok := parseStyle(value); ok {
				e.Style = style
			} else {
				o.warn(WarnUnknownStyle, scope, "unknown edge style: %s", strings.ToLower(value))
			}
		case EdgeNoWeight:
			e.NoWeight = !strings.EqualFold(value, "none")
		}
	}
	return nil
}

// Diagram overlays diagram-level attrs onto d. Whether a color is meaningful
// depends on the caller's scope, so it is stored unconditionally.
func (o Overlay) Diagram(d *Diagram, attrs []stmt.Attr) error {
	for _, attr := range attrs {
		key, err := ParseDiagramAttr(attr.Name)
		if err != nil {
			return err
		}

		switch key {
		case DiagramRankDir:
			if strings.EqualFold(attr.Value, string(LeftToRight)) {
				d.Orientation = LeftToRight
			} else {
				o.warn(WarnUnknownRankDir, "diagram", "unknown rankdir: %s", attr.Value)
			}
		case DiagramColor:
			d.Color = attr.Value
		}
	}
	return nil
}

func parseStyle(value string) (Style, bool) {
	switch s := Style(strings.ToLower(value)); s {
	case StyleSolid, StyleDotted, StyleDashed:
		return s, true
	}
	return StyleUnset, false
}

func parseDir(value string) (Direction, bool) {
	switch d := Direction(strings.ToLower(value)); d {
	case DirForward, DirBack, DirBoth, DirNone:
		return d, true
	}
	return DirUnset, false
}

func parseSize(value string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// =============================================================================
// Folding
// =============================================================================

// MergeFrom copies a nested layout result onto n. Geometry is copied
// unconditionally; presentation attributes only when set on src.
func (n *Node) MergeFrom(src *Node) {
	n.Column, n.Row = src.Column, src.Row
	n.Width, n.Height = src.Width, src.Height

	if src.Label != "" {
		n.Label = src.Label
	}
	if src.Color != "" {
		n.Color = src.Color
	}
	if src.Style != StyleUnset {
		n.Style = src.Style
	}
	if src.Numbered != "" {
		n.Numbered = src.Numbered
	}
	if src.Background != "" {
		n.Background = src.Background
	}
}

// MergeFrom copies the attributes set on src onto e.
func (e *Edge) MergeFrom(src *Edge) {
	if src.Dir != DirUnset {
		e.Dir = src.Dir
	}
	if src.Color != "" {
		e.Color = src.Color
	}
	if src.Style != StyleUnset {
		e.Style = src.Style
	}
	if src.NoWeight {
		e.NoWeight = true
	}
}
