package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/blockgrid/pkg/graph"
	"github.com/matzehuels/blockgrid/pkg/pipeline"
	"github.com/matzehuels/blockgrid/pkg/stmt"
)

// Terminal cell metrics for the grid preview.
const (
	previewCellWidth  = 12
	previewCellHeight = 3
)

var (
	gridStyle       = lipgloss.NewStyle().Foreground(colorBright)
	gridHeaderStyle = lipgloss.NewStyle().Foreground(colorMuted).Bold(true)
	gridSelected    = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	gridNormal      = lipgloss.NewStyle().Foreground(colorMuted)
)

// viewCommand creates the view command for previewing a layout in the terminal.
func (c *CLI) viewCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "view [stmts.json|stmts.toml|layout.json]",
		Short: "Preview a layout in the terminal",
		Long: `Preview a layout in the terminal.

The view command draws the grid as text boxes and lists every block with its
position and size. Inputs ending in .layout.json are shown as-is; anything
else is built from statements first.

Keys: up/down (or k/j) select a block, q quits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := c.loadPreview(cmd.Context(), args[0], noCache)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(NewGridModel(l), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}

// loadPreview reads a layout file or builds one from statements.
func (c *CLI) loadPreview(ctx context.Context, input string, noCache bool) (graph.Layout, error) {
	if strings.HasSuffix(strings.ToLower(input), ".layout.json") {
		return graph.ReadLayoutFile(input)
	}

	stmts, err := stmt.ReadFile(input)
	if err != nil {
		return graph.Layout{}, fmt.Errorf("load statements %s: %w", input, err)
	}
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return graph.Layout{}, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	return runner.Build(ctx, stmts, pipeline.Options{Logger: loggerFromContext(ctx)})
}

// =============================================================================
// GridModel - Interactive layout preview
// =============================================================================

// GridModel is the bubbletea model for the layout preview.
type GridModel struct {
	Layout graph.Layout
	Cursor int
	grid   string
}

// NewGridModel creates a preview model. The grid is drawn once up front.
func NewGridModel(l graph.Layout) GridModel {
	return GridModel{
		Layout: l,
		grid:   strings.Join(renderGrid(l, previewCellWidth, previewCellHeight), "\n"),
	}
}

func (m GridModel) Init() tea.Cmd {
	return nil
}

func (m GridModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Layout.Nodes)-1 {
				m.Cursor++
			}
		}
	}
	return m, nil
}

func (m GridModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Layout %dx%d (%s)", m.Layout.Columns, m.Layout.Rows, m.Layout.Orientation)))
	b.WriteString("\n\n")
	b.WriteString(gridStyle.Render(m.grid))
	b.WriteString("\n\n")

	rows := make([][]string, len(m.Layout.Nodes))
	for i, n := range m.Layout.Nodes {
		kind := "node"
		if n.IsGroup() {
			kind = "group"
		}
		rows[i] = []string{n.ID, kind, strconv.Itoa(n.Column), strconv.Itoa(n.Row),
			fmt.Sprintf("%dx%d", n.Width, n.Height), n.Group}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorFaint)).
		Headers("ID", "Kind", "Col", "Row", "Size", "Group").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return gridHeaderStyle
			case row == m.Cursor:
				return gridSelected
			}
			return gridNormal
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ select  q quit"))
	for _, w := range m.Layout.Warnings {
		b.WriteString("\n")
		b.WriteString(StyleWarning.Render(statusIcons[statusWarning].icon + " " + w.Message))
	}
	return b.String()
}

// renderGrid draws the layout as text. Every grid cell is cellW characters
// wide and cellH lines tall. Groups are filled with dots, then blocks are
// drawn on top as boxes labeled with their display text. Trailing spaces are
// trimmed from each line.
func renderGrid(l graph.Layout, cellW, cellH int) []string {
	cellW, cellH = max(cellW, 3), max(cellH, 3)
	width, height := l.Columns*cellW, l.Rows*cellH

	canvas := make([][]rune, height)
	for y := range canvas {
		canvas[y] = []rune(strings.Repeat(" ", width))
	}
	set := func(x, y int, r rune) {
		if y >= 0 && y < height && x >= 0 && x < width {
			canvas[y][x] = r
		}
	}

	for _, n := range l.Nodes {
		if !n.IsGroup() {
			continue
		}
		for y := n.Row * cellH; y < (n.Row+n.Height)*cellH; y++ {
			for x := n.Column * cellW; x < (n.Column+n.Width)*cellW; x++ {
				set(x, y, '.')
			}
		}
	}

	for _, n := range l.Nodes {
		if n.IsGroup() {
			continue
		}
		x0, y0 := n.Column*cellW, n.Row*cellH
		x1, y1 := (n.Column+n.Width)*cellW-1, (n.Row+n.Height)*cellH-1
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				switch {
				case (x == x0 || x == x1) && (y == y0 || y == y1):
					set(x, y, '+')
				case y == y0 || y == y1:
					set(x, y, '-')
				case x == x0 || x == x1:
					set(x, y, '|')
				default:
					set(x, y, ' ')
				}
			}
		}

		label := n.Label
		if label == "" {
			label = n.ID
		}
		runes := []rune(label)
		if room := x1 - x0 - 1; len(runes) > room {
			runes = runes[:room]
		}
		for i, r := range runes {
			set(x0+1+i, (y0+y1)/2, r)
		}
	}

	lines := make([]string, height)
	for y, row := range canvas {
		lines[y] = strings.TrimRight(string(row), " ")
	}
	return lines
}
