package sandbox

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	logPanelWidth = 340
	logMaxEntries = 80
	logLineHeight = 11
)

// EventKind categorizes a log line for the coloured indicator dot.
type EventKind int

const (
	EventEdit EventKind = iota
	EventConflict
	EventRemote
	EventError
)

var eventDotColors = map[EventKind]color.RGBA{
	EventEdit:     {R: 90, G: 160, B: 220, A: 255},
	EventConflict: {R: 230, G: 170, B: 60, A: 255},
	EventRemote:   {R: 110, G: 200, B: 110, A: 255},
	EventError:    {R: 220, G: 80, B: 80, A: 255},
}

// EventEntry is a single line in the event log.
type EventEntry struct {
	Tick    int
	Kind    EventKind
	Message string
}

// EventLog is a ring buffer of sandbox events rendered in the side panel.
// It is also the log sink the graph engine reports to, and tests query it
// through Recent and Has.
type EventLog struct {
	entries []EventEntry
	head    int
	count   int
}

// NewEventLog creates an event log with a fixed capacity.
func NewEventLog() *EventLog {
	return &EventLog{entries: make([]EventEntry, logMaxEntries)}
}

// Add appends an entry.
func (el *EventLog) Add(tick int, kind EventKind, msg string) {
	el.entries[el.head] = EventEntry{Tick: tick, Kind: kind, Message: msg}
	el.head = (el.head + 1) % logMaxEntries
	if el.count < logMaxEntries {
		el.count++
	}
}

// Addf formats and appends an entry.
func (el *EventLog) Addf(tick int, kind EventKind, format string, args ...any) {
	el.Add(tick, kind, fmt.Sprintf(format, args...))
}

// Recent returns entries in chronological order, oldest first.
func (el *EventLog) Recent() []EventEntry {
	out := make([]EventEntry, el.count)
	for i := 0; i < el.count; i++ {
		idx := (el.head - el.count + i + logMaxEntries) % logMaxEntries
		out[i] = el.entries[idx]
	}
	return out
}

// Has reports whether any entry's message contains the given substring.
func (el *EventLog) Has(substr string) bool {
	for _, e := range el.Recent() {
		if strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

// Count returns how many entries match the given kind.
func (el *EventLog) Count(kind EventKind) int {
	n := 0
	for _, e := range el.Recent() {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Draw renders the event panel on the right side of the screen.
func (el *EventLog) Draw(screen *ebiten.Image, panelX, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), float32(panelH), color.RGBA{R: 12, G: 13, B: 16, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 55, G: 60, B: 75, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), 16, color.RGBA{R: 22, G: 25, B: 32, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "EVENT LOG", panelX+8, 2)
	vector.StrokeLine(screen, float32(panelX), 16, float32(panelX+logPanelWidth), 16, 1.0, color.RGBA{R: 55, G: 70, B: 90, A: 200}, false)

	entries := el.Recent()
	maxVisible := (panelH - 24) / logLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	y := 20
	for i, e := range entries {
		if i >= len(entries)-3 {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(logPanelWidth-4), float32(logLineHeight), color.RGBA{R: 26, G: 30, B: 38, A: 160}, false)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+3), 3, 5, eventDotColors[e.Kind], false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%5d %s", e.Tick, e.Message), panelX+12, y)
		y += logLineHeight
	}
}
