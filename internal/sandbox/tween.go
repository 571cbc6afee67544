package sandbox

import (
	"math"
	"time"
)

// moveEps is the world-space distance under which a new target is applied
// instantly instead of starting a near-zero-duration tween.
const moveEps = 1e-3

// place sets the node's position and target together, leaving it idle.
func (n *Node) place(x, y float64) {
	n.X, n.Y = x, y
	n.startX, n.startY = x, y
	n.targetX, n.targetY = x, y
	n.animating = false
}

// Animating reports whether a move is in flight.
func (n *Node) Animating() bool { return n.animating }

// Target returns the position the node is headed to. Equal to the current
// position when idle.
func (n *Node) Target() (x, y float64) { return n.targetX, n.targetY }

// MoveTo starts an eased move toward (x,y). A target within moveEps of the
// current target is applied instantly with no tween. A new target arriving
// mid-flight restarts the move from the current position with a fresh clock;
// there is no queue of pending moves.
func (n *Node) MoveTo(x, y float64, d time.Duration, now time.Time) {
	if math.Hypot(x-n.targetX, y-n.targetY) < moveEps {
		n.place(x, y)
		return
	}
	n.startX, n.startY = n.X, n.Y
	n.targetX, n.targetY = x, y
	n.moveStart = now
	n.moveDuration = d
	n.animating = true
}

// Advance steps the in-flight move at the given time and reports whether the
// position changed. Past the end of the duration the position snaps exactly
// to the target and the node goes idle.
func (n *Node) Advance(now time.Time) bool {
	if !n.animating {
		return false
	}
	t := 1.0
	if n.moveDuration > 0 {
		t = float64(now.Sub(n.moveStart)) / float64(n.moveDuration)
	}
	if t >= 1 {
		n.X, n.Y = n.targetX, n.targetY
		n.startX, n.startY = n.targetX, n.targetY
		n.animating = false
		return true
	}
	if t < 0 {
		t = 0
	}
	e := easeInOut(t)
	n.X = n.startX + (n.targetX-n.startX)*e
	n.Y = n.startY + (n.targetY-n.startY)*e
	return true
}

// easeInOut is the symmetric quadratic curve: accelerate below t=0.5,
// decelerate above.
func easeInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	u := -2*t + 2
	return 1 - u*u/2
}

// AdvanceAnimations steps every in-flight node move and reports whether any
// position changed this tick.
func (s *Store) AdvanceAnimations(now time.Time) bool {
	moved := false
	for _, n := range s.nodes {
		if n.Advance(now) {
			moved = true
		}
	}
	if moved {
		s.generation++
	}
	return moved
}
