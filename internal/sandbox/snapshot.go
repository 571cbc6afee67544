package sandbox

import (
	"encoding/json"

	"github.com/atotto/clipboard"
	"github.com/pipeyard/pipeyard/internal/wire"
)

// SnapshotJSON serializes the current graph in the generate wire format, so
// a pasted snapshot can be fed back through LoadGraph or the resolver.
func (s *Store) SnapshotJSON() ([]byte, error) {
	payload := wire.GraphPayload{
		Nodes: make([]wire.GenNode, 0, len(s.nodes)),
		Edges: make([]wire.GenEdge, 0, len(s.edges)),
		Screen: &wire.Screen{
			MinX:   s.bounds.MinX,
			MinY:   s.bounds.MinY,
			Width:  s.bounds.W,
			Height: s.bounds.H,
		},
	}
	for _, n := range s.nodes {
		id := float64(n.ID)
		payload.Nodes = append(payload.Nodes, wire.GenNode{ID: &id, X: n.X, Y: n.Y})
	}
	for _, e := range s.edges {
		id := float64(e.ID)
		from := float64(e.From)
		to := float64(e.To)
		payload.Edges = append(payload.Edges, wire.GenEdge{
			ID:           &id,
			SourceID:     &from,
			TargetID:     &to,
			WarpSegments: e.Warp,
		})
	}
	return json.MarshalIndent(payload, "", "  ")
}

// CopySnapshot places the graph snapshot JSON on the system clipboard.
func (s *Store) CopySnapshot() error {
	data, err := s.SnapshotJSON()
	if err != nil {
		return err
	}
	return clipboard.WriteAll(string(data))
}
