package sandbox

import (
	"fmt"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pipeyard/pipeyard/internal/wire"
)

// borderWidth is the pixel gap between the window edge and the canvas.
const borderWidth = 24

// pickRadiusPx is the on-screen hit radius for clicking a node.
const pickRadiusPx = 14.0

// genModes are the generation mode tags cycled with Tab and sent with G.
var genModes = []string{"ring", "grid", "random"}

// App is the sandbox application: it owns the graph store, the remote layout
// client, and the event log, and runs the Ebiten update/draw loop. All graph
// mutation happens inside Update; remote results are drained there too, so
// the whole engine stays on one logical thread.
type App struct {
	cfg    Config
	store  *Store
	remote *RemoteClient
	log    *EventLog

	width   int // window width (canvas + border + log panel)
	height  int
	canvasW int
	canvasH int

	tf      Transform
	tfGen   uint64
	tfValid bool

	prevKeys      map[ebiten.Key]bool
	prevMouseLeft bool

	genMode int
	showHUD bool
	tick    int

	canvas *ebiten.Image

	// now is the clock feeding the position animator. Swapped in tests.
	now func() time.Time
}

// New creates the sandbox app from config and wires the store to the remote
// resolver client.
func New(cfg Config) *App {
	a := &App{
		cfg:      cfg,
		store:    NewStore(),
		remote:   NewRemoteClient(cfg.ResolverURL),
		log:      NewEventLog(),
		width:    cfg.WindowWidth,
		height:   cfg.WindowHeight,
		prevKeys: make(map[ebiten.Key]bool),
		showHUD:  true,
		now:      time.Now,
	}
	a.canvasW = a.width - 2*borderWidth - logPanelWidth
	a.canvasH = a.height - 2*borderWidth
	a.store.SetResolver(a.remote)
	a.log.Add(0, EventRemote, "resolver: "+cfg.ResolverURL)
	return a
}

// newHeadless builds an app with no remote client and a fixed canvas size,
// for tests that drive the interaction controller directly.
func newHeadless(canvasW, canvasH int) *App {
	a := &App{
		cfg:      DefaultConfig(),
		store:    NewStore(),
		log:      NewEventLog(),
		canvasW:  canvasW,
		canvasH:  canvasH,
		prevKeys: make(map[ebiten.Key]bool),
		now:      time.Now,
	}
	return a
}

// Store exposes the graph aggregate to external collaborators (and tests).
func (a *App) Store() *Store { return a.store }

// Log exposes the event log sink.
func (a *App) Log() *EventLog { return a.log }

func (a *App) Update() error {
	a.tick++
	a.handleInput()
	a.drainRemote()
	a.store.AdvanceAnimations(a.now())
	a.refreshTransform()
	return nil
}

func (a *App) Layout(_, _ int) (int, int) {
	return a.width, a.height
}

// refreshTransform recomputes the world→screen mapping when the graph
// changed since the last frame. Skipping quiet frames is an optimization,
// not a correctness requirement; the render step itself always runs.
func (a *App) refreshTransform() {
	gen := a.store.Generation()
	if a.tfValid && gen == a.tfGen {
		return
	}
	a.tf = fitTransform(a.store.ContentBounds(), a.canvasW, a.canvasH)
	a.tfGen = gen
	a.tfValid = true
}

// handleInput processes pointer and keyboard events, edge-triggered.
func (a *App) handleInput() {
	a.refreshTransform()

	// Hover tracking: rendering feedback only, no state-machine effect.
	mx, my := ebiten.CursorPosition()
	wx, wy := a.tf.ToWorld(float64(mx-borderWidth), float64(my-borderWidth))
	onCanvas := mx >= borderWidth && mx < borderWidth+a.canvasW &&
		my >= borderWidth && my < borderWidth+a.canvasH
	if onCanvas {
		a.store.SetHover(a.nodeAt(wx, wy))
	} else {
		a.store.SetHover(nil)
	}

	// Left click, edge-triggered.
	mouseLeft := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if mouseLeft && !a.prevMouseLeft && onCanvas {
		a.clickAt(wx, wy)
	}
	a.prevMouseLeft = mouseLeft

	currentKeys := map[ebiten.Key]bool{}
	pressed := func(k ebiten.Key) bool {
		currentKeys[k] = ebiten.IsKeyPressed(k)
		return currentKeys[k] && !a.prevKeys[k]
	}

	// R: reset the graph.
	if pressed(ebiten.KeyR) {
		a.store.Clear()
		a.log.Add(a.tick, EventEdit, "graph reset")
	}

	// Tab: cycle the generation mode tag.
	if pressed(ebiten.KeyTab) {
		a.genMode = (a.genMode + 1) % len(genModes)
	}

	// G: request a generated graph from the service.
	if pressed(ebiten.KeyG) && a.remote != nil {
		mode := genModes[a.genMode]
		a.remote.GenerateAsync(mode)
		a.log.Addf(a.tick, EventRemote, "generate %q requested", mode)
	}

	// C: copy the graph snapshot JSON to the clipboard.
	if pressed(ebiten.KeyC) {
		if err := a.store.CopySnapshot(); err != nil {
			a.log.Addf(a.tick, EventError, "snapshot copy failed: %v", err)
		} else {
			a.log.Add(a.tick, EventEdit, "snapshot copied to clipboard")
		}
	}

	// H: toggle the HUD key legend.
	if pressed(ebiten.KeyH) {
		a.showHUD = !a.showHUD
	}

	a.prevKeys = currentKeys
}

// nodeAt returns the node nearest to the world position within the pick
// radius, or nil. Squared distances avoid the sqrt per candidate.
func (a *App) nodeAt(wx, wy float64) *Node {
	r := a.tf.PickRadius(pickRadiusPx)
	best2 := r * r
	var hit *Node
	for _, n := range a.store.Nodes() {
		dx := n.X - wx
		dy := n.Y - wy
		d2 := dx*dx + dy*dy
		if d2 <= best2 {
			best2 = d2
			hit = n
		}
	}
	return hit
}

// clickAt applies one pointer click at a world position:
//
//	empty canvas, nothing selected  → place a node
//	empty canvas, selection pending → clear selection
//	node, nothing selected          → select it
//	the selected node               → deselect
//	another node                    → attempt a pipe, then clear selection
func (a *App) clickAt(wx, wy float64) {
	hit := a.nodeAt(wx, wy)
	sel := a.store.Selected()

	switch {
	case hit == nil && sel == nil:
		n := a.store.AddNode(wx, wy)
		a.log.Addf(a.tick, EventEdit, "node %d placed at (%.0f, %.0f)", n.ID, wx, wy)
	case hit == nil:
		a.store.SetSelected(nil)
	case sel == nil:
		a.store.SetSelected(hit)
	case hit == sel:
		a.store.SetSelected(nil)
	default:
		a.connect(sel.ID, hit.ID)
		a.store.SetSelected(nil)
	}
}

// connect attempts a pipe between two nodes. Rejected edits (self-loop,
// duplicate pair) are silent no-ops; conflict removals are logged.
func (a *App) connect(from, to int) {
	e, removed, ok := a.store.AddEdge(from, to)
	if !ok {
		return
	}
	a.log.Addf(a.tick, EventEdit, "pipe %d connects %d-%d", e.ID, from, to)
	for _, id := range removed {
		a.log.Addf(a.tick, EventConflict, "pipe %d removed: crossed by pipe %d", id, e.ID)
	}
}

// drainRemote applies every queued remote outcome on the tick thread.
func (a *App) drainRemote() {
	if a.remote == nil {
		return
	}
	for {
		o, ok := a.remote.Poll()
		if !ok {
			return
		}
		a.applyOutcome(o)
	}
}

func (a *App) applyOutcome(o RemoteOutcome) {
	switch {
	case o.Err != "":
		a.log.Add(a.tick, EventError, o.Err)
	case o.Graph != nil:
		skipped := a.store.LoadGraph(*o.Graph)
		msg := fmt.Sprintf("generated %q loaded: %d nodes, %d pipes",
			o.Graph.Mode, a.store.NodeCount(), a.store.EdgeCount())
		if skipped > 0 {
			msg += fmt.Sprintf(" (%d edge entries skipped)", skipped)
		}
		a.log.Add(a.tick, EventRemote, msg)
	default:
		a.applyMovements(o.Movements)
	}
}

// applyMovements starts tweens for the resolver's corrective placements.
// Refused movements are reported with their reasons; movements referencing a
// node id that no longer exists are dropped silently — the response simply
// outlived the graph it was computed for.
func (a *App) applyMovements(ms []wire.Movement) {
	now := a.now()
	for _, m := range ms {
		if m.Moved != nil && !*m.Moved {
			a.log.Add(a.tick, EventRemote, refusedLine(m))
			continue
		}
		if !m.Applies() {
			continue
		}
		n, ok := a.store.Node(m.NodeID)
		if !ok {
			continue
		}
		n.MoveTo(m.X, m.Y, a.cfg.MoveDuration(), now)
	}
}

// refusedLine renders a moved=false movement as a log line. The pipeOverlap
// tag gets friendly wording; every other reason passes through verbatim.
func refusedLine(m wire.Movement) string {
	reasons := m.Reasons()
	parts := make([]string, 0, len(reasons))
	for _, r := range reasons {
		if r == wire.LimitPipeOverlap {
			parts = append(parts, "would overlap an existing pipe")
		} else {
			parts = append(parts, r)
		}
	}
	if len(parts) == 0 {
		return fmt.Sprintf("node %d not moved", m.NodeID)
	}
	return fmt.Sprintf("node %d not moved: %s", m.NodeID, strings.Join(parts, ", "))
}
