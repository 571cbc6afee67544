// Package wire defines the JSON contract between the sandbox client and the
// layout resolver service. Both sides marshal with these types so the opaque
// per-pipe payload (warpSegments) round-trips byte-for-byte.
package wire

import (
	"encoding/json"
	"math"
)

// LimitPipeOverlap is the one limit-reason tag the client interprets: the
// resolver wanted to move a node but the corrected position would overlap an
// existing pipe. Every other reason string is passed through verbatim.
const LimitPipeOverlap = "pipeOverlap"

// Node is a node as it appears on the wire: id plus world-space position.
type Node struct {
	ID int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Edge is a pipe as it appears on the wire. WarpSegments belongs to the
// resolver; the client stores and returns it without looking inside.
type Edge struct {
	ID           int             `json:"id"`
	SourceID     int             `json:"sourceId"`
	TargetID     int             `json:"targetId"`
	WarpSegments json.RawMessage `json:"warpSegments,omitempty"`
}

// ResolveRequest is the POST /resolve body: the full graph plus the id of the
// pipe that was just inserted.
type ResolveRequest struct {
	Nodes     []Node `json:"nodes"`
	Edges     []Edge `json:"edges"`
	NewEdgeID int    `json:"newEdgeId"`
}

// Movement is one corrective placement in a resolve response. Moved defaults
// to true when absent. LimitReason is a legacy singular alias some resolver
// builds emit; Reasons() merges both forms.
type Movement struct {
	NodeID       int      `json:"nodeId"`
	X            float64  `json:"x"`
	Y            float64  `json:"y"`
	Moved        *bool    `json:"moved,omitempty"`
	LimitReasons []string `json:"limitReasons,omitempty"`
	LimitReason  string   `json:"limitReason,omitempty"`
}

// Applies reports whether the movement should be animated in: not explicitly
// refused, and with finite target coordinates.
func (m Movement) Applies() bool {
	if m.Moved != nil && !*m.Moved {
		return false
	}
	return finite(m.X) && finite(m.Y)
}

// Reasons returns all limit reasons, merging the plural and singular fields.
func (m Movement) Reasons() []string {
	if m.LimitReason == "" {
		return m.LimitReasons
	}
	out := make([]string, 0, len(m.LimitReasons)+1)
	out = append(out, m.LimitReasons...)
	return append(out, m.LimitReason)
}

// ResolveResponse is the POST /resolve response body.
type ResolveResponse struct {
	Movements []Movement `json:"movements"`
}

// GenerateRequest is the POST /generate body: a generation mode tag.
type GenerateRequest struct {
	Mode string `json:"mode"`
}

// Screen is an optional world-bounds override shipped with a generated graph.
type Screen struct {
	MinX   float64 `json:"minX"`
	MinY   float64 `json:"minY"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// GenNode is a node entry in a generated graph. The id is optional; absent
// ids are allocated by the receiving store.
type GenNode struct {
	ID *float64 `json:"id,omitempty"`
	X  float64  `json:"x"`
	Y  float64  `json:"y"`
}

// GenEdge is an edge entry in a generated graph. Endpoint ids accept both the
// sourceId/targetId and the short source/target spellings.
type GenEdge struct {
	ID           *float64        `json:"id,omitempty"`
	SourceID     *float64        `json:"sourceId,omitempty"`
	Source       *float64        `json:"source,omitempty"`
	TargetID     *float64        `json:"targetId,omitempty"`
	Target       *float64        `json:"target,omitempty"`
	WarpSegments json.RawMessage `json:"warpSegments,omitempty"`
}

// Endpoints decodes the edge's endpoint node ids. ok is false when either id
// is missing or non-finite; such entries are skipped by the loader.
func (e GenEdge) Endpoints() (from, to int, ok bool) {
	f, okF := pickID(e.SourceID, e.Source)
	t, okT := pickID(e.TargetID, e.Target)
	if !okF || !okT {
		return 0, 0, false
	}
	return f, t, true
}

// GraphPayload is the POST /generate response body: a complete replacement
// graph plus optional world bounds and the echoed mode tag.
type GraphPayload struct {
	Nodes  []GenNode `json:"nodes"`
	Edges  []GenEdge `json:"edges"`
	Screen *Screen   `json:"screen,omitempty"`
	Mode   string    `json:"mode,omitempty"`
}

func pickID(primary, alias *float64) (int, bool) {
	v := primary
	if v == nil {
		v = alias
	}
	if v == nil || !finite(*v) {
		return 0, false
	}
	return int(*v), true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
