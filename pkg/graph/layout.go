package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/blockgrid/pkg/diagram"
	"github.com/matzehuels/blockgrid/pkg/errors"
)

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout and validates it.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if err := ValidateLayout(l); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// WriteLayout writes a Layout as JSON to an io.Writer.
func WriteLayout(l Layout, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Layout{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}

// ValidateLayout checks the structural invariants of a layout: unique node
// IDs, edges and members referring to known nodes, owners that are groups,
// positive sizes and non-negative coordinates.
func ValidateLayout(l Layout) error {
	switch diagram.Orientation(l.Orientation) {
	case "", diagram.TopToBottom, diagram.LeftToRight:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown orientation: %q", l.Orientation)
	}

	kinds := make(map[string]string, len(l.Nodes))
	for _, n := range l.Nodes {
		if err := errors.ValidateIdentifier(n.ID); err != nil {
			return err
		}
		if _, dup := kinds[n.ID]; dup {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate node %q", n.ID)
		}
		if n.Kind != KindNode && n.Kind != KindGroup {
			return errors.New(errors.ErrCodeInvalidInput, "node %q has unknown kind %q", n.ID, n.Kind)
		}
		if n.Width <= 0 || n.Height <= 0 || n.Column < 0 || n.Row < 0 {
			return errors.New(errors.ErrCodeInvalidInput, "node %q has invalid geometry", n.ID)
		}
		kinds[n.ID] = n.Kind
	}

	for _, n := range l.Nodes {
		if n.Group != "" && kinds[n.Group] != KindGroup {
			return errors.New(errors.ErrCodeInvalidInput, "node %q is owned by %q, which is not a group", n.ID, n.Group)
		}
		for _, m := range n.Members {
			if _, ok := kinds[m]; !ok {
				return errors.New(errors.ErrCodeInvalidInput, "group %q lists unknown member %q", n.ID, m)
			}
		}
	}

	for _, e := range l.Edges {
		_, okFrom := kinds[e.From]
		_, okTo := kinds[e.To]
		if !okFrom || !okTo {
			return errors.New(errors.ErrCodeInvalidInput, "edge %s->%s refers to an unknown node", e.From, e.To)
		}
	}
	return nil
}
