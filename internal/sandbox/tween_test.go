package sandbox

import (
	"math"
	"testing"
	"time"
)

func TestMoveTo_WithinEpsilonAppliesInstantly(t *testing.T) {
	s := NewStore()
	n := s.AddNode(100, 100)
	now := time.Now()

	n.MoveTo(100+moveEps/2, 100, time.Second, now)
	if n.Animating() {
		t.Fatal("sub-epsilon move must not start a tween")
	}
	if n.X != 100+moveEps/2 {
		t.Fatalf("position not applied instantly: %f", n.X)
	}
	tx, ty := n.Target()
	if n.X != tx || n.Y != ty {
		t.Fatal("idle node must sit exactly on its target")
	}
}

func TestMoveTo_BeyondEpsilonAnimates(t *testing.T) {
	s := NewStore()
	n := s.AddNode(0, 0)
	start := time.Now()

	n.MoveTo(100, 0, time.Second, start)
	if !n.Animating() {
		t.Fatal("expected tween to start")
	}
	if n.X != 0 {
		t.Fatal("position must not jump on tween start")
	}

	// Distance to target shrinks monotonically as time advances.
	prev := 100.0
	for _, frac := range []float64{0.25, 0.5, 0.75} {
		n.Advance(start.Add(time.Duration(frac * float64(time.Second))))
		d := math.Abs(100 - n.X)
		if d >= prev {
			t.Fatalf("distance did not shrink at t=%.2f: %f >= %f", frac, d, prev)
		}
		prev = d
	}

	n.Advance(start.Add(time.Second))
	if n.Animating() {
		t.Fatal("tween must finish at t=1")
	}
	if n.X != 100 || n.Y != 0 {
		t.Fatalf("terminal position must snap exactly to target, got (%f, %f)", n.X, n.Y)
	}
}

func TestMoveTo_RetargetMidFlight(t *testing.T) {
	s := NewStore()
	n := s.AddNode(0, 0)
	start := time.Now()

	n.MoveTo(100, 0, time.Second, start)
	n.Advance(start.Add(500 * time.Millisecond))
	midX := n.X

	// New target overwrites the move: start becomes the current position,
	// the clock resets, nothing is queued.
	retarget := start.Add(500 * time.Millisecond)
	n.MoveTo(0, 100, time.Second, retarget)
	if !n.Animating() {
		t.Fatal("retarget must keep animating")
	}
	if n.X != midX {
		t.Fatal("retarget must not teleport the node")
	}

	n.Advance(retarget.Add(time.Second))
	if n.X != 0 || n.Y != 100 {
		t.Fatalf("expected to land on the new target, got (%f, %f)", n.X, n.Y)
	}
}

func TestEaseInOut_Shape(t *testing.T) {
	if easeInOut(0) != 0 || easeInOut(1) != 1 {
		t.Fatal("ease must be pinned at both ends")
	}
	if easeInOut(0.5) != 0.5 {
		t.Fatalf("symmetric ease must pass through (0.5, 0.5), got %f", easeInOut(0.5))
	}
	// Slow start, fast middle.
	if easeInOut(0.25) >= 0.25 {
		t.Fatal("ease-in must lag linear before the midpoint")
	}
	if easeInOut(0.75) <= 0.75 {
		t.Fatal("ease-out must lead linear after the midpoint")
	}
}

func TestAdvanceAnimations_BumpsGeneration(t *testing.T) {
	s := NewStore()
	n := s.AddNode(0, 0)
	start := time.Now()

	gen := s.Generation()
	if s.AdvanceAnimations(start) {
		t.Fatal("idle store must report no movement")
	}
	if s.Generation() != gen {
		t.Fatal("idle tick must not bump the generation")
	}

	n.MoveTo(50, 50, time.Second, start)
	if !s.AdvanceAnimations(start.Add(100 * time.Millisecond)) {
		t.Fatal("in-flight move must report movement")
	}
	if s.Generation() == gen {
		t.Fatal("movement must bump the generation")
	}
}
