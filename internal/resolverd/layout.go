package resolverd

import (
	"math"

	"github.com/pipeyard/pipeyard/internal/wire"
)

// blockFraction scales the clearance radius when checking whether a pushed
// node would land on another pipe. Smaller than 1 so a node can sit between
// two pipes that are themselves just over one clearance apart.
const blockFraction = 0.5

// Movements computes corrective placements for the graph in req: every node
// that is neither endpoint of the newly inserted pipe and sits within
// clearance of its segment is pushed perpendicularly out to the clearance
// distance. When the pushed position would land on another pipe, the
// movement is reported as refused with the pipeOverlap limit tag.
func Movements(req wire.ResolveRequest, clearance float64) []wire.Movement {
	var newEdge *wire.Edge
	for i := range req.Edges {
		if req.Edges[i].ID == req.NewEdgeID {
			newEdge = &req.Edges[i]
			break
		}
	}
	if newEdge == nil {
		return nil
	}

	nodeByID := make(map[int]wire.Node, len(req.Nodes))
	for _, n := range req.Nodes {
		nodeByID[n.ID] = n
	}
	a, okA := nodeByID[newEdge.SourceID]
	b, okB := nodeByID[newEdge.TargetID]
	if !okA || !okB {
		return nil
	}

	var out []wire.Movement
	for _, n := range req.Nodes {
		if n.ID == newEdge.SourceID || n.ID == newEdge.TargetID {
			continue
		}
		cx, cy := closestOnSegment(n.X, n.Y, a.X, a.Y, b.X, b.Y)
		dx := n.X - cx
		dy := n.Y - cy
		d := math.Hypot(dx, dy)
		if d >= clearance {
			continue
		}

		// Push direction: away from the closest point. A node sitting dead
		// on the segment gets the segment's left normal.
		var ux, uy float64
		if d > 1e-9 {
			ux, uy = dx/d, dy/d
		} else {
			sx, sy := b.X-a.X, b.Y-a.Y
			sl := math.Hypot(sx, sy)
			if sl < 1e-9 {
				continue
			}
			ux, uy = -sy/sl, sx/sl
		}
		tx := cx + ux*clearance
		ty := cy + uy*clearance

		m := wire.Movement{NodeID: n.ID, X: tx, Y: ty}
		if overlapsOtherPipe(tx, ty, n.ID, newEdge.ID, req, nodeByID, clearance*blockFraction) {
			refused := false
			m.Moved = &refused
			m.LimitReasons = []string{wire.LimitPipeOverlap}
		}
		out = append(out, m)
	}
	return out
}

// overlapsOtherPipe reports whether (x,y) lies within limit of any pipe other
// than the new one, excluding pipes incident to the moving node itself.
func overlapsOtherPipe(x, y float64, nodeID, newEdgeID int, req wire.ResolveRequest, nodes map[int]wire.Node, limit float64) bool {
	for _, e := range req.Edges {
		if e.ID == newEdgeID || e.SourceID == nodeID || e.TargetID == nodeID {
			continue
		}
		p, okP := nodes[e.SourceID]
		q, okQ := nodes[e.TargetID]
		if !okP || !okQ {
			continue
		}
		cx, cy := closestOnSegment(x, y, p.X, p.Y, q.X, q.Y)
		if math.Hypot(x-cx, y-cy) < limit {
			return true
		}
	}
	return false
}

// closestOnSegment returns the point on segment AB nearest to (px,py).
func closestOnSegment(px, py, ax, ay, bx, by float64) (float64, float64) {
	dx := bx - ax
	dy := by - ay
	len2 := dx*dx + dy*dy
	if len2 < 1e-18 {
		return ax, ay
	}
	t := ((px-ax)*dx + (py-ay)*dy) / len2
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return ax + t*dx, ay + t*dy
}
