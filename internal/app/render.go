package app

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/mindweave/mindweave/internal/geom"
	"github.com/mindweave/mindweave/internal/scene"
)

const statusBarHeight = 1

var (
	nodeStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Foreground(lipgloss.Color("7"))

	selectedNodeStyle = nodeStyle.
				BorderForeground(lipgloss.Color("12")).
				Foreground(lipgloss.Color("15")).
				Bold(true)

	hoveredNodeStyle = nodeStyle.
				BorderForeground(lipgloss.Color("14"))

	edgeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1a1a2e")).
			Foreground(lipgloss.Color("#a0a0b0"))

	helpStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Padding(1, 2)
)

func notificationStyle(notifType string) lipgloss.Style {
	base := lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#ffffff"))
	switch notifType {
	case "error":
		return base.Background(lipgloss.Color("#cc0000"))
	case "warning":
		return base.Background(lipgloss.Color("#b8860b"))
	case "success":
		return base.Background(lipgloss.Color("#2e8b57"))
	default:
		return base.Background(lipgloss.Color("#1a1a2e"))
	}
}

// View implements tea.Model.
func (m *Model) View() tea.View {
	var view tea.View
	if m.Width <= 0 || m.Height <= 0 {
		view.SetContent("")
		return view
	}

	canvasHeight := m.Height - statusBarHeight
	canvas := lipgloss.NewCanvas()
	snap := scene.Capture(m.Doc)

	canvas.AddLayers(lipgloss.NewLayer(m.renderEdges(snap, canvasHeight)).X(0).Y(0).Z(0).ID("edges"))

	for _, layer := range m.renderNodes(snap, canvasHeight) {
		canvas.AddLayers(layer)
	}

	canvas.AddLayers(lipgloss.NewLayer(m.renderStatusBar(snap)).
		X(0).Y(canvasHeight).Z(1000).ID("status"))

	for i, n := range m.Notifications {
		content := notificationStyle(n.Type).Render(n.Message)
		x := max(m.Width-lipgloss.Width(content)-1, 0)
		canvas.AddLayers(lipgloss.NewLayer(content).X(x).Y(1 + i*2).Z(2000 + i).ID(n.ID))
	}

	if m.ShowHelp {
		help := m.renderHelp()
		x := max((m.Width-lipgloss.Width(help))/2, 0)
		y := max((canvasHeight-lipgloss.Height(help))/2, 0)
		canvas.AddLayers(lipgloss.NewLayer(help).X(x).Y(y).Z(3000).ID("help"))
	}

	view.SetContent(lipgloss.Sprint(canvas.Render()))
	view.AltScreen = true
	view.MouseMode = tea.MouseModeAllMotion
	return view
}

// renderNodes builds one layer per visible node, positioned and sized
// through the viewport transform. Snapshot z-order carries straight into
// layer z-order, so hit testing and compositing always agree.
func (m *Model) renderNodes(snap scene.Snapshot, canvasHeight int) []*lipgloss.Layer {
	view := m.Engine.View()
	layers := make([]*lipgloss.Layer, 0, len(snap.Nodes))

	for _, n := range snap.Nodes {
		if !n.Visible {
			continue
		}
		minPt := view.CanvasToScreen(n.Bounds.Min)
		size := n.Bounds.Size().MulScalar(view.Zoom())
		w := int(size.X)
		h := int(size.Y)
		x := int(minPt.X)
		y := int(minPt.Y)

		// Cull nodes entirely off screen.
		if x+w < 0 || x > m.Width || y+h < 0 || y > canvasHeight {
			continue
		}

		style := nodeStyle
		if n.Selected {
			style = selectedNodeStyle
		} else if n.Hovered {
			style = hoveredNodeStyle
		}

		var content string
		if w < 4 || h < 3 {
			// Too small for a border at this zoom; draw a marker.
			content = style.UnsetBorderStyle().Render("▪")
		} else {
			content = style.Width(w - 2).Height(h - 2).Render(fitLabel(n.Label, w-2))
		}
		layers = append(layers, lipgloss.NewLayer(content).X(x).Y(y).Z(n.Z).ID(n.ID))
	}
	return layers
}

// fitLabel truncates a label to the given display width without splitting
// multibyte runes or halving double-width characters.
func fitLabel(label string, width int) string {
	return runewidth.Truncate(label, width, "")
}

// renderEdges draws every visible edge into a rune grid spanning the canvas
// area. Nodes composite above it, so edges disappear behind node bodies.
func (m *Model) renderEdges(snap scene.Snapshot, canvasHeight int) string {
	grid := make([][]rune, canvasHeight)
	for y := range grid {
		row := make([]rune, m.Width)
		for x := range row {
			row[x] = ' '
		}
		grid[y] = row
	}

	view := m.Engine.View()
	for _, e := range snap.Edges {
		if !e.Visible || len(e.Path) < 2 {
			continue
		}
		for i := 0; i < len(e.Path)-1; i++ {
			a := view.CanvasToScreen(e.Path[i])
			b := view.CanvasToScreen(e.Path[i+1])
			plotSegment(grid, a, b)
		}
	}

	var sb strings.Builder
	for y, row := range grid {
		if y > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(row))
	}
	return edgeStyle.Render(sb.String())
}

// plotSegment samples the segment densely enough to hit every cell it
// crosses.
func plotSegment(grid [][]rune, a, b geom.Vector2) {
	steps := int(a.Sub(b).Length()) * 2
	if steps < 1 {
		steps = 1
	}
	for s := 0; s <= steps; s++ {
		p := a.Lerp(b, float32(s)/float32(steps))
		x := int(p.X)
		y := int(p.Y)
		if y < 0 || y >= len(grid) || x < 0 || x >= len(grid[y]) {
			continue
		}
		grid[y][x] = '·'
	}
}

func (m *Model) renderStatusBar(snap scene.Snapshot) string {
	zoom := int(m.Engine.View().Zoom()*100 + 0.5)
	left := fmt.Sprintf(" mindweave │ zoom %d%% │ layout %s │ nodes %d",
		zoom, m.ActiveLayoutID(), len(snap.Nodes))
	right := fmt.Sprintf("cpu %2.0f%% │ ? help ", m.cpuPercent)

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return statusStyle.Width(m.Width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m *Model) renderHelp() string {
	lines := []string{
		"mindweave keys",
		"",
		"  mouse drag    move node / pan canvas",
		"  double click  zoom to node / zoom in",
		"  wheel         zoom at cursor",
		"  shift+click   extend selection",
		"",
		"  f             zoom to fit",
		"  n             new node (linked to selection)",
		"  x             delete selected",
		"  u / U         undo / redo",
		"  l             apply layout",
		"  tab           next layout",
		"  + / - / 0     zoom in / out / reset",
		"  esc           cancel, clear selection",
		"  q             quit",
	}
	return helpStyle.Render(strings.Join(lines, "\n"))
}
