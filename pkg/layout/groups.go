package layout

import "github.com/matzehuels/blockgrid/pkg/diagram"

// TranslateGroups moves group members from group-relative to diagram
// coordinates. Only outermost groups are applied; their member lists already
// include the members of nested groups, which were translated by the nested
// pass that laid them out.
func TranslateGroups(d *diagram.Diagram) {
	for _, grp := range d.Groups() {
		if grp.Group != "" {
			continue
		}
		for _, id := range grp.Members.Nodes {
			if m, ok := d.Node(id); ok {
				m.Column += grp.Column
				m.Row += grp.Row
			}
		}
	}
}

// GroupSize returns the grid size of a group holding the given members:
// one past the largest member column and row.
func GroupSize(members []*diagram.Node) (width, height int) {
	if len(members) == 0 {
		return 1, 1
	}
	for _, m := range members {
		width = max(width, m.Column+1)
		height = max(height, m.Row+1)
	}
	return width, height
}
