package resolverd

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/pipeyard/pipeyard/internal/wire"
)

// Generated graph world bounds, matching the sandbox's default rectangle.
const (
	genWorldW = 1200.0
	genWorldH = 800.0
	genInset  = 80.0
)

// Generate builds a complete replacement graph for the given mode tag.
// Supported modes: ring, grid, random. Node and edge ids are assigned
// densely from 1.
func Generate(mode string, seed int64) (wire.GraphPayload, error) {
	var p wire.GraphPayload
	switch mode {
	case "ring":
		p = generateRing(10)
	case "grid":
		p = generateGrid(4, 5)
	case "random":
		p = generateRandom(12, rand.New(rand.NewSource(seed)))
	default:
		return wire.GraphPayload{}, fmt.Errorf("unknown mode %q", mode)
	}
	p.Mode = mode
	p.Screen = &wire.Screen{MinX: 0, MinY: 0, Width: genWorldW, Height: genWorldH}
	return p, nil
}

func generateRing(n int) wire.GraphPayload {
	var p wire.GraphPayload
	cx, cy := genWorldW/2, genWorldH/2
	r := math.Min(genWorldW, genWorldH)/2 - genInset
	for i := 0; i < n; i++ {
		ang := 2 * math.Pi * float64(i) / float64(n)
		p.Nodes = append(p.Nodes, genNode(i+1, cx+r*math.Cos(ang), cy+r*math.Sin(ang)))
	}
	for i := 0; i < n; i++ {
		p.Edges = append(p.Edges, genEdge(i+1, i+1, (i+1)%n+1))
	}
	return p
}

func generateGrid(rows, cols int) wire.GraphPayload {
	var p wire.GraphPayload
	stepX := (genWorldW - 2*genInset) / float64(cols-1)
	stepY := (genWorldH - 2*genInset) / float64(rows-1)
	id := func(r, c int) int { return r*cols + c + 1 }
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			p.Nodes = append(p.Nodes, genNode(id(r, c),
				genInset+float64(c)*stepX, genInset+float64(r)*stepY))
		}
	}
	eid := 1
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c+1 < cols {
				p.Edges = append(p.Edges, genEdge(eid, id(r, c), id(r, c+1)))
				eid++
			}
			if r+1 < rows {
				p.Edges = append(p.Edges, genEdge(eid, id(r, c), id(r+1, c)))
				eid++
			}
		}
	}
	return p
}

// generateRandom scatters nodes and chains each to its nearest not-yet-linked
// neighbour, which keeps the layout connected without long crossing spans.
func generateRandom(n int, rng *rand.Rand) wire.GraphPayload {
	var p wire.GraphPayload
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := 0; i < n; i++ {
		xs[i] = genInset + rng.Float64()*(genWorldW-2*genInset)
		ys[i] = genInset + rng.Float64()*(genWorldH-2*genInset)
		p.Nodes = append(p.Nodes, genNode(i+1, xs[i], ys[i]))
	}
	linked := make([]bool, n)
	linked[0] = true
	eid := 1
	for count := 1; count < n; count++ {
		bestFrom, bestTo := -1, -1
		bestD := math.MaxFloat64
		for i := 0; i < n; i++ {
			if !linked[i] {
				continue
			}
			for j := 0; j < n; j++ {
				if linked[j] {
					continue
				}
				d := math.Hypot(xs[i]-xs[j], ys[i]-ys[j])
				if d < bestD {
					bestD = d
					bestFrom, bestTo = i, j
				}
			}
		}
		linked[bestTo] = true
		p.Edges = append(p.Edges, genEdge(eid, bestFrom+1, bestTo+1))
		eid++
	}
	return p
}

func genNode(id int, x, y float64) wire.GenNode {
	f := float64(id)
	return wire.GenNode{ID: &f, X: x, Y: y}
}

func genEdge(id, from, to int) wire.GenEdge {
	f := float64(id)
	s := float64(from)
	t := float64(to)
	return wire.GenEdge{ID: &f, SourceID: &s, TargetID: &t}
}
