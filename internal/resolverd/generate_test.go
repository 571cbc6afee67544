package resolverd

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Ring(t *testing.T) {
	p, err := Generate("ring", 1)
	require.NoError(t, err)
	assert.Equal(t, "ring", p.Mode)
	require.Len(t, p.Nodes, 10)
	require.Len(t, p.Edges, 10)

	// Every node sits on the same circle around the world centre.
	cx, cy := genWorldW/2, genWorldH/2
	r := math.Min(genWorldW, genWorldH)/2 - genInset
	for _, n := range p.Nodes {
		assert.InDelta(t, r, math.Hypot(n.X-cx, n.Y-cy), 1e-9)
	}

	// The edges close the cycle: node i links to i+1, the last wraps to 1.
	for i, e := range p.Edges {
		from, to, ok := e.Endpoints()
		require.True(t, ok)
		assert.Equal(t, i+1, from)
		assert.Equal(t, (i+1)%10+1, to)
	}
}

func TestGenerate_Grid(t *testing.T) {
	p, err := Generate("grid", 1)
	require.NoError(t, err)
	require.Len(t, p.Nodes, 20) // 4 rows x 5 cols

	// A lattice has rows*(cols-1) + (rows-1)*cols links.
	assert.Len(t, p.Edges, 4*4+3*5)

	// Node ids are dense from 1.
	seen := map[int]bool{}
	for _, n := range p.Nodes {
		require.NotNil(t, n.ID)
		seen[int(*n.ID)] = true
	}
	for id := 1; id <= 20; id++ {
		assert.True(t, seen[id], "missing node id %d", id)
	}
}

func TestGenerate_RandomIsSeededAndConnected(t *testing.T) {
	p1, err := Generate("random", 42)
	require.NoError(t, err)
	p2, err := Generate("random", 42)
	require.NoError(t, err)
	require.Len(t, p1.Nodes, 12)
	require.Len(t, p1.Edges, 11)

	// Same seed, same layout.
	for i := range p1.Nodes {
		assert.Equal(t, p1.Nodes[i].X, p2.Nodes[i].X)
		assert.Equal(t, p1.Nodes[i].Y, p2.Nodes[i].Y)
	}

	// A spanning chain of n-1 links reaches every node.
	reached := map[int]bool{1: true}
	for range p1.Edges {
		for _, e := range p1.Edges {
			from, to, ok := e.Endpoints()
			require.True(t, ok)
			if reached[from] {
				reached[to] = true
			}
			if reached[to] {
				reached[from] = true
			}
		}
	}
	assert.Len(t, reached, 12)

	// All positions stay inside the inset world rectangle.
	for _, n := range p1.Nodes {
		assert.GreaterOrEqual(t, n.X, genInset)
		assert.LessOrEqual(t, n.X, genWorldW-genInset)
		assert.GreaterOrEqual(t, n.Y, genInset)
		assert.LessOrEqual(t, n.Y, genWorldH-genInset)
	}
}

func TestGenerate_SetsScreenBounds(t *testing.T) {
	for _, mode := range []string{"ring", "grid", "random"} {
		p, err := Generate(mode, 1)
		require.NoError(t, err, mode)
		require.NotNil(t, p.Screen, mode)
		assert.Equal(t, genWorldW, p.Screen.Width)
		assert.Equal(t, genWorldH, p.Screen.Height)
	}
}

func TestGenerate_UnknownMode(t *testing.T) {
	_, err := Generate("spiral", 1)
	assert.ErrorContains(t, err, "spiral")
}
