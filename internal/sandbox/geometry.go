package sandbox

import "math"

// orientEps is the tolerance under which a cross product counts as collinear.
const orientEps = 1e-9

// Orientation classes returned by orientation.
const (
	orientCollinear = 0
	orientCW        = 1
	orientCCW       = 2
)

// orientation classifies the ordered triplet p→q→r by the sign of the cross
// product (q-p)×(r-q): collinear, clockwise, or counter-clockwise.
func orientation(px, py, qx, qy, rx, ry float64) int {
	cross := (qy-py)*(rx-qx) - (qx-px)*(ry-qy)
	if math.Abs(cross) < orientEps {
		return orientCollinear
	}
	if cross > 0 {
		return orientCW
	}
	return orientCCW
}

// onSegment reports whether the collinear point (qx,qy) lies within the
// bounding box of the segment (px,py)-(rx,ry), with tolerance.
func onSegment(px, py, qx, qy, rx, ry float64) bool {
	return qx <= math.Max(px, rx)+orientEps && qx >= math.Min(px, rx)-orientEps &&
		qy <= math.Max(py, ry)+orientEps && qy >= math.Min(py, ry)-orientEps
}

// segmentsIntersect reports whether segment AB intersects segment CD as
// straight lines in world space, including the degenerate collinear cases.
func segmentsIntersect(ax, ay, bx, by, cx, cy, dx, dy float64) bool {
	o1 := orientation(ax, ay, bx, by, cx, cy)
	o2 := orientation(ax, ay, bx, by, dx, dy)
	o3 := orientation(cx, cy, dx, dy, ax, ay)
	o4 := orientation(cx, cy, dx, dy, bx, by)

	if o1 != o2 && o3 != o4 {
		return true
	}

	// Collinear fallbacks: an endpoint of one segment lying on the other.
	if o1 == orientCollinear && onSegment(ax, ay, cx, cy, bx, by) {
		return true
	}
	if o2 == orientCollinear && onSegment(ax, ay, dx, dy, bx, by) {
		return true
	}
	if o3 == orientCollinear && onSegment(cx, cy, ax, ay, dx, dy) {
		return true
	}
	if o4 == orientCollinear && onSegment(cx, cy, bx, by, dx, dy) {
		return true
	}
	return false
}

// crossingEdges returns the ids of existing pipes whose segments cross the
// newly inserted pipe. Pipes sharing an endpoint with the new pipe are exempt:
// two pipes radiating from the same node are not a crossing. The scan is
// one-directional — it never re-validates pre-existing pipes against each
// other, so a bulk-loaded graph may contain crossings a local edit could not
// have created.
func (s *Store) crossingEdges(newEdge *Edge) []int {
	a, okA := s.Node(newEdge.From)
	b, okB := s.Node(newEdge.To)
	if !okA || !okB {
		return nil
	}

	var removed []int
	for _, e := range s.edges {
		if e.ID == newEdge.ID {
			continue
		}
		if e.From == newEdge.From || e.From == newEdge.To ||
			e.To == newEdge.From || e.To == newEdge.To {
			continue
		}
		c, okC := s.Node(e.From)
		d, okD := s.Node(e.To)
		if !okC || !okD {
			continue
		}
		if segmentsIntersect(a.X, a.Y, b.X, b.Y, c.X, c.Y, d.X, d.Y) {
			removed = append(removed, e.ID)
		}
	}
	return removed
}
