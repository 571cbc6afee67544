package sandbox

import (
	"math"
	"time"

	"github.com/pipeyard/pipeyard/internal/wire"
)

// Default world bounds, used until a generated graph supplies its own.
const (
	defaultWorldW = 1200.0
	defaultWorldH = 800.0
)

// Rect is a world-space rectangle: min corner plus extent.
type Rect struct {
	MinX float64
	MinY float64
	W    float64
	H    float64
}

// defaultBounds returns the fixed world rectangle the sandbox starts with.
func defaultBounds() Rect {
	return Rect{MinX: 0, MinY: 0, W: defaultWorldW, H: defaultWorldH}
}

// Node is a junction in the pipe graph. Position is mutated only by direct
// placement and by the tween methods in tween.go.
type Node struct {
	ID int
	X  float64
	Y  float64

	// Edges holds the ids of pipes incident to this node. The store keeps it
	// in sync on every pipe add/remove.
	Edges map[int]struct{}

	// Tween state. Invariant: when animating is false, (X,Y) == (targetX,targetY).
	startX, startY   float64
	targetX, targetY float64
	moveStart        time.Time
	moveDuration     time.Duration
	animating        bool
}

// Edge is an undirected pipe between two distinct nodes. Warp is the
// resolver-owned payload, carried through unchanged.
type Edge struct {
	ID   int
	From int
	To   int
	Warp []byte
}

// Resolver receives the full graph snapshot after every successful pipe
// insertion. The store fires it and moves on; results come back through
// whatever queue the implementation drains elsewhere.
type Resolver interface {
	ResolveAsync(req wire.ResolveRequest)
}

// Store owns the node and pipe collections, id allocation, adjacency
// bookkeeping, selection, and the world bounds. One instance lives for the
// duration of the sandbox view; all mutation happens on the tick thread.
type Store struct {
	nodes    []*Node
	nodeByID map[int]*Node
	edges    []*Edge
	edgeByID map[int]*Edge

	nextNodeID int
	nextEdgeID int

	selected *Node
	hover    *Node

	bounds Rect

	// generation increments on every structural or positional change; the
	// coordinate transform uses it to skip recomputation on quiet frames.
	generation uint64

	resolver Resolver
}

// NewStore creates an empty store with default world bounds.
func NewStore() *Store {
	s := &Store{}
	s.reset()
	return s
}

// SetResolver attaches the remote layout client notified on pipe insertion.
// A nil resolver disables the remote exchange (headless tests run this way).
func (s *Store) SetResolver(r Resolver) {
	s.resolver = r
}

func (s *Store) reset() {
	s.nodes = nil
	s.nodeByID = make(map[int]*Node)
	s.edges = nil
	s.edgeByID = make(map[int]*Edge)
	s.nextNodeID = 1
	s.nextEdgeID = 1
	s.selected = nil
	s.hover = nil
	s.bounds = defaultBounds()
	s.generation++
}

// Clear resets all collections, counters, selection, and world bounds to
// their initial state.
func (s *Store) Clear() {
	s.reset()
}

// Node looks up a node by id. Every by-id reference goes through here so a
// stale id (from a late resolver response) degrades to (nil, false) instead
// of a dereference.
func (s *Store) Node(id int) (*Node, bool) {
	n, ok := s.nodeByID[id]
	return n, ok
}

// Edge looks up a pipe by id.
func (s *Store) Edge(id int) (*Edge, bool) {
	e, ok := s.edgeByID[id]
	return e, ok
}

// Nodes returns the nodes in insertion order, for rendering.
func (s *Store) Nodes() []*Node { return s.nodes }

// Edges returns the pipes in insertion order, for rendering.
func (s *Store) Edges() []*Edge { return s.edges }

// NodeCount returns the number of nodes.
func (s *Store) NodeCount() int { return len(s.nodes) }

// EdgeCount returns the number of pipes.
func (s *Store) EdgeCount() int { return len(s.edges) }

// Bounds returns the current world bounds rectangle.
func (s *Store) Bounds() Rect { return s.bounds }

// Generation returns the change counter used for transform dirty-tracking.
func (s *Store) Generation() uint64 { return s.generation }

// Selected returns the node pending as the source of a connect gesture.
func (s *Store) Selected() *Node { return s.selected }

// SetSelected updates the pending connect source. Pass nil to clear.
func (s *Store) SetSelected(n *Node) { s.selected = n }

// Hover returns the node currently under the pointer, for rendering feedback.
func (s *Store) Hover() *Node { return s.hover }

// SetHover updates the hovered node. Pass nil to clear.
func (s *Store) SetHover(n *Node) { s.hover = n }

// AddNode places a new idle node at the given world position and returns it.
func (s *Store) AddNode(x, y float64) *Node {
	n := &Node{
		ID:    s.nextNodeID,
		Edges: make(map[int]struct{}),
	}
	s.nextNodeID++
	n.place(x, y)
	s.insertNode(n)
	s.generation++
	return n
}

func (s *Store) insertNode(n *Node) {
	s.nodes = append(s.nodes, n)
	s.nodeByID[n.ID] = n
}

// Connected reports whether a pipe already exists between the unordered pair.
func (s *Store) Connected(a, b int) bool {
	na, ok := s.Node(a)
	if !ok {
		return false
	}
	for id := range na.Edges {
		e := s.edgeByID[id]
		if e.From == b || e.To == b {
			return true
		}
	}
	return false
}

// AddEdge inserts a pipe between two distinct, unconnected nodes. It returns
// the new pipe, the ids of existing pipes removed because they crossed it,
// and whether anything was inserted. Self-loops, unknown endpoints, and
// duplicate pairs are benign no-ops. On success the attached resolver is
// notified with the post-removal graph snapshot.
func (s *Store) AddEdge(from, to int) (*Edge, []int, bool) {
	if from == to {
		return nil, nil, false
	}
	a, okA := s.Node(from)
	b, okB := s.Node(to)
	if !okA || !okB {
		return nil, nil, false
	}
	if s.Connected(from, to) {
		return nil, nil, false
	}

	e := &Edge{ID: s.nextEdgeID, From: from, To: to}
	s.nextEdgeID++
	s.edges = append(s.edges, e)
	s.edgeByID[e.ID] = e
	a.Edges[e.ID] = struct{}{}
	b.Edges[e.ID] = struct{}{}

	removed := s.crossingEdges(e)
	for _, id := range removed {
		s.RemoveEdge(id)
	}
	s.generation++

	if s.resolver != nil {
		s.resolver.ResolveAsync(s.ResolveSnapshot(e.ID))
	}
	return e, removed, true
}

// RemoveEdge removes a pipe and detaches it from both endpoints. Removing an
// unknown id is a no-op.
func (s *Store) RemoveEdge(id int) {
	e, ok := s.edgeByID[id]
	if !ok {
		return
	}
	delete(s.edgeByID, id)
	for i, other := range s.edges {
		if other.ID == id {
			s.edges = append(s.edges[:i], s.edges[i+1:]...)
			break
		}
	}
	if n, ok := s.Node(e.From); ok {
		delete(n.Edges, id)
	}
	if n, ok := s.Node(e.To); ok {
		delete(n.Edges, id)
	}
	s.generation++
}

// LoadGraph clears the store and installs a generated graph verbatim,
// honoring supplied ids and advancing both allocators past the maximum seen.
// The crossing scan is deliberately not run: a generated graph is trusted
// input, even when it contains crossings a local edit could not create.
// It returns the number of edge entries skipped for missing or unresolvable
// endpoints.
func (s *Store) LoadGraph(g wire.GraphPayload) int {
	s.reset()

	if g.Screen != nil && g.Screen.Width > 0 && g.Screen.Height > 0 {
		s.bounds = Rect{MinX: g.Screen.MinX, MinY: g.Screen.MinY, W: g.Screen.Width, H: g.Screen.Height}
	}

	for _, gn := range g.Nodes {
		id := s.nextNodeID
		if gn.ID != nil && !math.IsNaN(*gn.ID) && !math.IsInf(*gn.ID, 0) {
			id = int(*gn.ID)
		}
		if id >= s.nextNodeID {
			s.nextNodeID = id + 1
		}
		if _, exists := s.nodeByID[id]; exists {
			continue
		}
		n := &Node{ID: id, Edges: make(map[int]struct{})}
		n.place(gn.X, gn.Y)
		s.insertNode(n)
	}

	skipped := 0
	for _, ge := range g.Edges {
		from, to, ok := ge.Endpoints()
		if !ok || from == to {
			skipped++
			continue
		}
		a, okA := s.Node(from)
		b, okB := s.Node(to)
		if !okA || !okB {
			skipped++
			continue
		}
		id := s.nextEdgeID
		if ge.ID != nil && !math.IsNaN(*ge.ID) && !math.IsInf(*ge.ID, 0) {
			id = int(*ge.ID)
		}
		if id >= s.nextEdgeID {
			s.nextEdgeID = id + 1
		}
		if _, exists := s.edgeByID[id]; exists {
			skipped++
			continue
		}
		e := &Edge{ID: id, From: from, To: to, Warp: ge.WarpSegments}
		s.edges = append(s.edges, e)
		s.edgeByID[id] = e
		a.Edges[id] = struct{}{}
		b.Edges[id] = struct{}{}
	}

	s.generation++
	return skipped
}

// ResolveSnapshot builds the wire-format graph snapshot sent to the resolver
// after the pipe with newEdgeID was inserted.
func (s *Store) ResolveSnapshot(newEdgeID int) wire.ResolveRequest {
	req := wire.ResolveRequest{
		Nodes:     make([]wire.Node, 0, len(s.nodes)),
		Edges:     make([]wire.Edge, 0, len(s.edges)),
		NewEdgeID: newEdgeID,
	}
	for _, n := range s.nodes {
		req.Nodes = append(req.Nodes, wire.Node{ID: n.ID, X: n.X, Y: n.Y})
	}
	for _, e := range s.edges {
		req.Edges = append(req.Edges, wire.Edge{
			ID:           e.ID,
			SourceID:     e.From,
			TargetID:     e.To,
			WarpSegments: e.Warp,
		})
	}
	return req
}

// ContentBounds returns the union of the world bounds rectangle and the
// bounding box of all current node positions. This rectangle seeds the
// coordinate transform.
func (s *Store) ContentBounds() Rect {
	minX := s.bounds.MinX
	minY := s.bounds.MinY
	maxX := s.bounds.MinX + s.bounds.W
	maxY := s.bounds.MinY + s.bounds.H
	for _, n := range s.nodes {
		minX = math.Min(minX, n.X)
		minY = math.Min(minY, n.Y)
		maxX = math.Max(maxX, n.X)
		maxY = math.Max(maxY, n.Y)
	}
	return Rect{MinX: minX, MinY: minY, W: maxX - minX, H: maxY - minY}
}
