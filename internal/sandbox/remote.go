package sandbox

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pipeyard/pipeyard/internal/wire"
)

// RemoteOutcome is one completed resolve or generate exchange, delivered to
// the tick thread through the client's result queue. Exactly one of the three
// fields is meaningful: Movements for a resolve, Graph for a generate, or a
// non-empty Err line when the exchange failed and nothing is to be applied.
type RemoteOutcome struct {
	Movements []wire.Movement
	Graph     *wire.GraphPayload
	Err       string
}

// RemoteClient talks to the external layout resolver/generator service.
// Requests are fire-and-forget: each runs on its own goroutine and posts its
// outcome to a single-consumer queue drained once per tick, so all graph
// mutation stays on the tick thread. In-flight requests are never cancelled
// by later edits; a late response is applied best-effort by id.
type RemoteClient struct {
	base    string
	httpc   *http.Client
	results chan RemoteOutcome
}

// NewRemoteClient creates a client for the service at the given base URL.
func NewRemoteClient(base string) *RemoteClient {
	return &RemoteClient{
		base:    strings.TrimRight(base, "/"),
		httpc:   &http.Client{Timeout: 10 * time.Second},
		results: make(chan RemoteOutcome, 16),
	}
}

// ResolveAsync sends the graph snapshot for corrective placement. It returns
// immediately; the outcome arrives via Poll.
func (c *RemoteClient) ResolveAsync(req wire.ResolveRequest) {
	go func() {
		var resp wire.ResolveResponse
		if err := c.post("/resolve", req, &resp); err != nil {
			c.results <- RemoteOutcome{Err: fmt.Sprintf("resolve failed: %v", err)}
			return
		}
		c.results <- RemoteOutcome{Movements: resp.Movements}
	}()
}

// GenerateAsync requests a freshly generated graph for the given mode tag.
// It returns immediately; the outcome arrives via Poll.
func (c *RemoteClient) GenerateAsync(mode string) {
	go func() {
		var resp wire.GraphPayload
		if err := c.post("/generate", wire.GenerateRequest{Mode: mode}, &resp); err != nil {
			c.results <- RemoteOutcome{Err: fmt.Sprintf("generate %q failed: %v", mode, err)}
			return
		}
		c.results <- RemoteOutcome{Graph: &resp}
	}()
}

// Poll removes one queued outcome without blocking. ok is false when the
// queue is empty. The tick loop calls this until drained.
func (c *RemoteClient) Poll() (RemoteOutcome, bool) {
	select {
	case o := <-c.results:
		return o, true
	default:
		return RemoteOutcome{}, false
	}
}

func (c *RemoteClient) post(path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	resp, err := c.httpc.Post(c.base+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
