package app

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/mindweave/mindweave/internal/config"
	"github.com/mindweave/mindweave/internal/geom"
	"github.com/mindweave/mindweave/internal/gesture"
	"github.com/mindweave/mindweave/internal/scene"
)

// TickerMsg represents a periodic tick event driving animations and
// gesture deadlines.
type TickerMsg time.Time

// layoutResultMsg carries the outcome of an async layout computation back
// onto the UI thread.
type layoutResultMsg struct {
	layoutID  string
	positions map[string]geom.Vector2
	err       error
}

// TickCmd creates a command that generates tick messages at 60 FPS.
// This drives animations and time-based gesture transitions.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second/config.NormalFPS, func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

// SlowTickCmd creates a command that generates tick messages at 30 FPS.
// Used during drags to improve input responsiveness.
func SlowTickCmd() tea.Cmd {
	return tea.Tick(time.Second/config.InteractionFPS, func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

// IdleTickCmd creates a command that generates tick messages at 10 FPS.
// Used when nothing is animating to reduce CPU.
func IdleTickCmd() tea.Cmd {
	return tea.Tick(time.Second/config.IdleFPS, func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return TickCmd()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickerMsg:
		return m.handleTick(time.Time(msg))

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tea.MouseClickMsg:
		return m.handleMouseClick(msg)

	case tea.MouseMotionMsg:
		return m.handleMouseMotion(msg)

	case tea.MouseReleaseMsg:
		return m.handleMouseRelease(msg)

	case tea.MouseWheelMsg:
		return m.handleMouseWheel(msg)

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Engine.SetViewportSize(geom.V2(float32(msg.Width), float32(msg.Height-1)))
		return m, nil

	case tea.BlurMsg:
		// Terminal lost focus: abandon everything in flight.
		m.Engine.CancelInteractions()
		m.leftDown = false
		return m, nil

	case layoutResultMsg:
		if msg.err != nil {
			m.ShowNotification("Layout failed: "+msg.err.Error(), "error", config.NotificationDuration)
			return m, nil
		}
		m.Engine.ApplyPositions(msg.positions, config.AnimationsEnabled)
		m.ShowNotification("Applied "+msg.layoutID+" layout", "success", config.NotificationDuration)
		return m, nil
	}
	return m, nil
}

func (m *Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	animating := m.Engine.Tick(now)
	m.expireNotifications(now)
	m.sampleCPU(now)

	switch {
	case m.Engine.Interacting():
		return m, SlowTickCmd()
	case animating || m.leftDown || len(m.Notifications) > 0:
		return m, TickCmd()
	default:
		return m, IdleTickCmd()
	}
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if m.ShowHelp {
		switch msg.String() {
		case "?", "esc", "q":
			m.ShowHelp = false
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "?":
		m.ShowHelp = true
	case "f":
		m.Engine.ZoomToFitContent(config.AnimationsEnabled)
	case "n":
		m.AddNodeAtCenter()
	case "x":
		m.DeleteSelected()
	case "u":
		if !m.Doc.Undo() {
			m.ShowNotification("Nothing to undo", "info", config.NotificationDuration)
		}
	case "U", "ctrl+r":
		if !m.Doc.Redo() {
			m.ShowNotification("Nothing to redo", "info", config.NotificationDuration)
		}
	case "l":
		return m, m.applyLayoutCmd()
	case "tab":
		m.CycleLayout()
		m.ShowNotification("Layout: "+m.ActiveLayoutID(), "info", config.NotificationDuration)
	case "+", "=":
		m.zoomAtCenter(config.WheelZoomFactor)
	case "-":
		m.zoomAtCenter(1 / config.WheelZoomFactor)
	case "0":
		m.Engine.View().ZoomToPoint(m.viewCenter(), 1, config.AnimationsEnabled)
	case "esc":
		m.Engine.CancelInteractions()
		m.Doc.ClearSelection()
	}
	return m, nil
}

func (m *Model) handleMouseClick(msg tea.MouseClickMsg) (tea.Model, tea.Cmd) {
	mouse := msg.Mouse()
	pos := geom.V2(float32(mouse.X), float32(mouse.Y))

	if mouse.Button == tea.MouseLeft {
		m.leftDown = true
		m.Engine.PointerDown(0, gesture.Mouse, pos, teaMods(mouse.Mod), time.Now())
		return m, TickCmd()
	}
	return m, nil
}

func (m *Model) handleMouseMotion(msg tea.MouseMotionMsg) (tea.Model, tea.Cmd) {
	mouse := msg.Mouse()
	pos := geom.V2(float32(mouse.X), float32(mouse.Y))

	if m.leftDown {
		m.Engine.PointerMove(0, pos, time.Now())
	} else {
		m.Engine.Hover(pos, teaMods(mouse.Mod), time.Now())
	}
	return m, nil
}

func (m *Model) handleMouseRelease(msg tea.MouseReleaseMsg) (tea.Model, tea.Cmd) {
	mouse := msg.Mouse()
	pos := geom.V2(float32(mouse.X), float32(mouse.Y))

	if mouse.Button == tea.MouseLeft {
		m.leftDown = false
		m.Engine.PointerUp(0, pos, teaMods(mouse.Mod), time.Now())
	}
	return m, nil
}

func (m *Model) handleMouseWheel(msg tea.MouseWheelMsg) (tea.Model, tea.Cmd) {
	mouse := msg.Mouse()
	pos := geom.V2(float32(mouse.X), float32(mouse.Y))

	switch msg.Button {
	case tea.MouseWheelUp:
		m.Engine.Wheel(pos, 1, time.Now())
	case tea.MouseWheelDown:
		m.Engine.Wheel(pos, -1, time.Now())
	}
	return m, nil
}

// applyLayoutCmd runs the active layout off the UI thread against a
// snapshot; the result comes back as a layoutResultMsg.
func (m *Model) applyLayoutCmd() tea.Cmd {
	id := m.ActiveLayoutID()
	if id == "" {
		return nil
	}
	snap := scene.Capture(m.Doc)
	registry := m.Engine.Registry()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		positions, err := registry.RequestApply(ctx, id, snap)
		return layoutResultMsg{layoutID: id, positions: positions, err: err}
	}
}

func (m *Model) viewCenter() geom.Vector2 {
	return geom.V2(float32(m.Width)/2, float32(m.Height)/2)
}

func (m *Model) zoomAtCenter(factor float32) {
	view := m.Engine.View()
	view.ZoomToPoint(m.viewCenter(), view.Zoom()*factor, config.AnimationsEnabled)
}

// teaMods converts bubbletea modifier flags to gesture modifiers.
func teaMods(mod tea.KeyMod) gesture.Modifiers {
	var out gesture.Modifiers
	if mod&tea.ModShift != 0 {
		out |= gesture.ModShift
	}
	if mod&tea.ModCtrl != 0 {
		out |= gesture.ModCtrl
	}
	if mod&tea.ModAlt != 0 {
		out |= gesture.ModAlt
	}
	if mod&tea.ModMeta != 0 {
		out |= gesture.ModMeta
	}
	return out
}
