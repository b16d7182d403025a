package stmt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/blockgrid/pkg/errors"
)

// Format identifies a statement document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// utf8BOM is tolerated at the start of a document.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// =============================================================================
// Wire Types
// =============================================================================

type document struct {
	Statements []wireStmt `json:"statements" toml:"statements"`
}

type wireStmt struct {
	Node     *wireNode     `json:"node,omitempty" toml:"node,omitempty"`
	Edge     *wireEdge     `json:"edge,omitempty" toml:"edge,omitempty"`
	SubGraph *wireSubGraph `json:"subgraph,omitempty" toml:"subgraph,omitempty"`
	Diagram  *wireDiagram  `json:"diagram,omitempty" toml:"diagram,omitempty"`
}

type wireAttr struct {
	Name  string `json:"name" toml:"name"`
	Value string `json:"value" toml:"value"`
}

type wireNode struct {
	ID    string     `json:"id" toml:"id"`
	Attrs []wireAttr `json:"attrs,omitempty" toml:"attrs,omitempty"`
}

type wireEdge struct {
	IDs   []string   `json:"ids" toml:"ids"`
	Attrs []wireAttr `json:"attrs,omitempty" toml:"attrs,omitempty"`
}

type wireSubGraph struct {
	ID         string     `json:"id,omitempty" toml:"id,omitempty"`
	Statements []wireStmt `json:"statements" toml:"statements"`
}

type wireDiagram struct {
	Attrs []wireAttr `json:"attrs" toml:"attrs"`
}

// =============================================================================
// Decoding
// =============================================================================

// FormatFromPath picks a document format from a file extension.
// Anything other than .toml is treated as JSON.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatJSON
}

// ReadFile reads and decodes a statement document, choosing the format
// from the file extension.
func ReadFile(path string) ([]Stmt, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data, FormatFromPath(path))
}

// Decode reads all of r and decodes it in the given format.
func Decode(r io.Reader, format Format) ([]Stmt, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read statements: %w", err)
	}
	return Unmarshal(data, format)
}

// Unmarshal decodes a statement document. Unknown fields and malformed
// statement shapes are rejected with an INVALID_INPUT error.
func Unmarshal(data []byte, format Format) ([]Stmt, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	var doc document
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode JSON statements")
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &doc)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode TOML statements")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "unknown TOML key: %s", undecoded[0])
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown statement format: %q", format)
	}

	return fromWire(doc.Statements, "statements")
}

func fromWire(in []wireStmt, path string) ([]Stmt, error) {
	out := make([]Stmt, 0, len(in))
	for i, w := range in {
		where := fmt.Sprintf("%s[%d]", path, i)
		s, err := w.toStmt(where)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (w wireStmt) toStmt(where string) (Stmt, error) {
	kinds := 0
	for _, set := range []bool{w.Node != nil, w.Edge != nil, w.SubGraph != nil, w.Diagram != nil} {
		if set {
			kinds++
		}
	}
	if kinds != 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"%s: statement must hold exactly one of node, edge, subgraph, diagram (got %d)", where, kinds)
	}

	switch {
	case w.Node != nil:
		if err := errors.ValidateIdentifier(w.Node.ID); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "%s: node id", where)
		}
		return Node{ID: w.Node.ID, Attrs: attrsFromWire(w.Node.Attrs)}, nil

	case w.Edge != nil:
		if len(w.Edge.IDs) < 2 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "%s: edge needs at least two ids", where)
		}
		for _, id := range w.Edge.IDs {
			if err := errors.ValidateIdentifier(id); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "%s: edge id", where)
			}
		}
		return Edge{IDs: append([]string(nil), w.Edge.IDs...), Attrs: attrsFromWire(w.Edge.Attrs)}, nil

	case w.SubGraph != nil:
		inner, err := fromWire(w.SubGraph.Statements, where+".subgraph.statements")
		if err != nil {
			return nil, err
		}
		return SubGraph{ID: w.SubGraph.ID, Stmts: inner}, nil

	default:
		return DefAttrs{Attrs: attrsFromWire(w.Diagram.Attrs)}, nil
	}
}

func attrsFromWire(in []wireAttr) []Attr {
	if len(in) == 0 {
		return nil
	}
	out := make([]Attr, len(in))
	for i, a := range in {
		out[i] = Attr{Name: a.Name, Value: a.Value}
	}
	return out
}

// =============================================================================
// Encoding
// =============================================================================

// Marshal encodes a statement list as a JSON document. The output is
// deterministic and is used to derive cache keys.
func Marshal(stmts []Stmt) ([]byte, error) {
	doc := document{Statements: toWire(stmts)}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode statements: %w", err)
	}
	return data, nil
}

func toWire(stmts []Stmt) []wireStmt {
	out := make([]wireStmt, 0, len(stmts))
	for _, s := range stmts {
		switch s := s.(type) {
		case Node:
			out = append(out, wireStmt{Node: &wireNode{ID: s.ID, Attrs: attrsToWire(s.Attrs)}})
		case Edge:
			out = append(out, wireStmt{Edge: &wireEdge{IDs: s.IDs, Attrs: attrsToWire(s.Attrs)}})
		case SubGraph:
			out = append(out, wireStmt{SubGraph: &wireSubGraph{ID: s.ID, Statements: toWire(s.Stmts)}})
		case DefAttrs:
			out = append(out, wireStmt{Diagram: &wireDiagram{Attrs: attrsToWire(s.Attrs)}})
		}
	}
	return out
}

func attrsToWire(in []Attr) []wireAttr {
	if len(in) == 0 {
		return nil
	}
	out := make([]wireAttr, len(in))
	for i, a := range in {
		out[i] = wireAttr{Name: a.Name, Value: a.Value}
	}
	return out
}
