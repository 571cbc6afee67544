package resolverd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pipeyard/pipeyard/internal/wire"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s := NewServer(&Config{Addr: ":0", Clearance: 60, Seed: 7}, zap.NewNop())
	srv := httptest.NewServer(s.Router())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(buf))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestServer_Health(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
}

func TestServer_Resolve(t *testing.T) {
	srv := newTestServer(t)
	resp := postJSON(t, srv.URL+"/resolve", wire.ResolveRequest{
		Nodes: []wire.Node{
			{ID: 1, X: 0, Y: 0},
			{ID: 2, X: 100, Y: 0},
			{ID: 3, X: 50, Y: 10},
		},
		Edges:     []wire.Edge{{ID: 1, SourceID: 1, TargetID: 2}},
		NewEdgeID: 1,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body wire.ResolveResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Movements, 1)
	assert.Equal(t, 3, body.Movements[0].NodeID)
}

func TestServer_ResolveMalformedBody(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Post(srv.URL+"/resolve", "application/json",
		strings.NewReader("{not json"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_Generate(t *testing.T) {
	srv := newTestServer(t)
	resp := postJSON(t, srv.URL+"/generate", wire.GenerateRequest{Mode: "grid"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body wire.GraphPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "grid", body.Mode)
	assert.Len(t, body.Nodes, 20)
	require.NotNil(t, body.Screen)
}

func TestServer_GenerateUnknownMode(t *testing.T) {
	srv := newTestServer(t)
	resp := postJSON(t, srv.URL+"/generate", wire.GenerateRequest{Mode: "spiral"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body["error"], "spiral")
}
