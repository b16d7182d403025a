package builder

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/blockgrid/pkg/diagram"
	"github.com/matzehuels/blockgrid/pkg/layout"
	"github.com/matzehuels/blockgrid/pkg/stmt"
)

// Build registers stmts into a new diagram, composes its groups and lays it
// out. On a fatal error no diagram is returned.
func Build(stmts []stmt.Stmt, opts ...Option) (*diagram.Diagram, error) {
	cfg := newConfig(opts)
	state := &buildState{cfg: cfg}

	d, err := state.run(stmts, false)
	if err != nil {
		return nil, err
	}

	if d.Color != "" {
		state.warn(diagram.Warning{
			Code:    diagram.WarnIgnoredColor,
			Scope:   "diagram",
			Message: "diagram color was ignored: " + d.Color,
		})
		d.Color = ""
	}

	d.ApplyDefaults()
	d.Warnings = state.warnings
	return d, nil
}

// buildState is shared by the top-level pass and every nested pass.
type buildState struct {
	cfg      *config
	anon     int
	warnings []diagram.Warning
}

func (s *buildState) warn(w diagram.Warning) {
	s.warnings = append(s.warnings, w)
	s.cfg.logger.Warn(w.Message, "code", string(w.Code), "scope", w.Scope)
}

func (s *buildState) logger() *log.Logger { return s.cfg.logger }

// pass builds one statement list into one diagram.
type pass struct {
	state   *buildState
	d       *diagram.Diagram
	overlay diagram.Overlay
	nested  bool

	groups     []*pendingGroup
	groupIndex map[string]int
}

// pendingGroup is a subgraph waiting for its nested pass.
type pendingGroup struct {
	node  *diagram.Node
	stmts []stmt.Stmt
	ids   []string // node statements declared directly inside
}

func (s *buildState) run(stmts []stmt.Stmt, nested bool) (*diagram.Diagram, error) {
	p := &pass{
		state:      s,
		d:          diagram.New(),
		nested:     nested,
		groupIndex: make(map[string]int),
	}
	p.overlay = diagram.Overlay{FileExists: s.cfg.fileExists, Warn: s.warn}

	if err := p.register(stmts); err != nil {
		return nil, err
	}
	for _, g := range p.groups {
		if err := p.compose(g); err != nil {
			return nil, err
		}
	}
	if err := layout.Layout(p.d); err != nil {
		return nil, err
	}

	s.logger().Debug("laid out diagram",
		"nested", nested,
		"nodes", p.d.NodeCount(),
		"edges", p.d.EdgeCount())
	return p.d, nil
}

// register creates every entity referenced by stmts in declaration order and
// queues subgraphs for composition.
func (p *pass) register(stmts []stmt.Stmt) error {
	for _, st := range stmts {
		switch st := st.(type) {
		case stmt.Node:
			n, err := p.getOrCreateNode(st.ID)
			if err != nil {
				return err
			}
			if err := p.overlay.Node(n, st.Attrs); err != nil {
				return err
			}

		case stmt.Edge:
			for _, pair := range st.Pairs() {
				e, err := p.getOrCreateEdge(pair[0], pair[1])
				if err != nil {
					return err
				}
				if err := p.overlay.Edge(e, st.Attrs); err != nil {
					return err
				}
			}

		case stmt.SubGraph:
			g, err := p.getOrCreateGroup(st.ID)
			if err != nil {
				return err
			}
			p.queue(g, st)

		case stmt.DefAttrs:
			if err := p.overlay.Diagram(p.d, st.Attrs); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *pass) queue(g *diagram.Node, sg stmt.SubGraph) {
	if i, ok := p.groupIndex[g.ID]; ok {
		pg := p.groups[i]
		pg.stmts = append(pg.stmts, sg.Stmts...)
		pg.ids = append(pg.ids, sg.NodeIDs()...)
		return
	}
	p.groupIndex[g.ID] = len(p.groups)
	p.groups = append(p.groups, &pendingGroup{
		node:  g,
		stmts: append([]stmt.Stmt(nil), sg.Stmts...),
		ids:   sg.NodeIDs(),
	})
}
