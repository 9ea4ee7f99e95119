// Package app provides the terminal mindmap editor: a bubbletea model that
// hosts the canvas engine, feeds it pointer and key input, and renders the
// graph through the viewport transform.
package app

import (
	"fmt"
	"time"

	log "charm.land/log/v2"
	"github.com/google/uuid"

	"github.com/mindweave/mindweave/internal/config"
	"github.com/mindweave/mindweave/internal/engine"
	"github.com/mindweave/mindweave/internal/geom"
	"github.com/mindweave/mindweave/internal/layout"
	"github.com/mindweave/mindweave/internal/scene"
)

// Notification represents a temporary notification message.
type Notification struct {
	ID        string
	Message   string
	Type      string // "info", "success", "warning", "error"
	StartTime time.Time
	Duration  time.Duration
}

// LogMessage represents a log entry with timestamp and level.
type LogMessage struct {
	Time    time.Time
	Level   string // INFO, WARN, ERROR
	Message string
}

// Model is the top-level bubbletea model.
type Model struct {
	Engine *engine.Engine
	Doc    *scene.MemDocument

	logger  *log.Logger
	userCfg *config.UserConfig

	Width  int
	Height int

	layoutIDs    []string
	activeLayout int

	ShowHelp      bool
	Notifications []Notification
	LogMessages   []LogMessage

	cpuPercent    float64
	lastCPUSample time.Time

	leftDown bool
}

// New creates the editor model with a small starter document.
func New(userCfg *config.UserConfig, logger *log.Logger) *Model {
	if userCfg == nil {
		userCfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = log.Default()
	}

	doc := scene.NewMemDocument()
	m := &Model{
		Doc:     doc,
		logger:  logger,
		userCfg: userCfg,
	}

	m.Engine = engine.New(doc,
		engine.WithLogger(logger),
		engine.WithGestureConfig(userCfg.GestureSettings()),
		engine.WithZoomBounds(float32(userCfg.Viewport.MinZoom), float32(userCfg.Viewport.MaxZoom)),
		engine.WithAnimationDuration(userCfg.AnimationDuration()),
		engine.WithFitPadding(float32(userCfg.Viewport.FitPadding)),
		engine.WithLongPressHandler(m.onLongPress),
	)
	layout.RegisterBuiltins(m.Engine.Registry())
	m.layoutIDs = m.Engine.Registry().LayoutIDs()

	m.seedDocument()
	return m
}

// seedDocument populates the starter graph shown on first launch.
func (m *Model) seedDocument() {
	size := geom.V2(config.DefaultNodeWidth, config.DefaultNodeHeight)
	root := m.Doc.AddNode("mindweave", geom.V2(0, 0), size)
	ideas := m.Doc.AddNode("ideas", geom.V2(-30, -10), size)
	tasks := m.Doc.AddNode("tasks", geom.V2(30, -10), size)
	notes := m.Doc.AddNode("notes", geom.V2(0, 12), size)
	m.Doc.AddEdge(root, ideas)
	m.Doc.AddEdge(root, tasks)
	m.Doc.AddEdge(root, notes)
}

// ActiveLayoutID returns the id of the currently selected layout.
func (m *Model) ActiveLayoutID() string {
	if len(m.layoutIDs) == 0 {
		return ""
	}
	return m.layoutIDs[m.activeLayout]
}

// CycleLayout selects the next registered layout.
func (m *Model) CycleLayout() {
	if len(m.layoutIDs) == 0 {
		return
	}
	m.activeLayout = (m.activeLayout + 1) % len(m.layoutIDs)
}

// onLongPress surfaces a long press as a notification; a real host would
// open a context menu here.
func (m *Model) onLongPress(nodeID string, pos geom.Vector2) {
	if nodeID == "" {
		m.ShowNotification("Long press on canvas", "info", config.NotificationDuration)
		return
	}
	if n, ok := scene.Capture(m.Doc).NodeByID(nodeID); ok {
		m.ShowNotification(fmt.Sprintf("Node: %s", n.Label), "info", config.NotificationDuration)
	}
}

// AddNodeAtCenter creates a node at the center of the current view and
// connects it to the first selected node, if any.
func (m *Model) AddNodeAtCenter() {
	center := m.Engine.View().ScreenToCanvas(geom.V2(float32(m.Width)/2, float32(m.Height)/2))
	size := geom.V2(config.DefaultNodeWidth, config.DefaultNodeHeight)

	id := m.Doc.AddNode(fmt.Sprintf("node %d", len(m.Doc.Nodes())+1), center, size)
	if selected := m.Doc.SelectedIDs(); len(selected) > 0 {
		m.Doc.AddEdge(selected[0], id)
	}
	m.Doc.SelectNode(id, false)
	m.LogInfo("Node created: %s", id[:8])
}

// DeleteSelected removes every selected node and its edges.
func (m *Model) DeleteSelected() {
	selected := m.Doc.SelectedIDs()
	for _, id := range selected {
		m.Doc.RemoveNode(id)
	}
	if len(selected) > 0 {
		m.ShowNotification(fmt.Sprintf("Deleted %d node(s)", len(selected)), "info", config.NotificationDuration)
	}
}

// Log adds a new log message to the log buffer.
func (m *Model) Log(level, format string, args ...any) {
	m.LogMessages = append(m.LogMessages, LogMessage{
		Time:    time.Now(),
		Level:   level,
		Message: fmt.Sprintf(format, args...),
	})
	if len(m.LogMessages) > config.MaxLogMessages {
		m.LogMessages = m.LogMessages[len(m.LogMessages)-config.MaxLogMessages:]
	}
}

// LogInfo logs an informational message.
func (m *Model) LogInfo(format string, args ...any) {
	m.Log("INFO", format, args...)
}

// LogError logs an error message.
func (m *Model) LogError(format string, args ...any) {
	m.Log("ERROR", format, args...)
}

// ShowNotification displays a temporary notification.
func (m *Model) ShowNotification(message, notifType string, duration time.Duration) {
	m.Notifications = append(m.Notifications, Notification{
		ID:        uuid.New().String(),
		Message:   message,
		Type:      notifType,
		StartTime: time.Now(),
		Duration:  duration,
	})
	if notifType == "error" {
		m.LogError("%s", message)
	} else {
		m.LogInfo("%s", message)
	}
}

// expireNotifications drops notifications past their duration.
func (m *Model) expireNotifications(now time.Time) {
	kept := m.Notifications[:0]
	for _, n := range m.Notifications {
		if now.Sub(n.StartTime) < n.Duration {
			kept = append(kept, n)
		}
	}
	m.Notifications = kept
}
