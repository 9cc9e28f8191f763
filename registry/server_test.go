package registry

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestServeHTTP(t *testing.T) {
	srv := httptest.NewServer(ServeHTTP(newTestRegistry(t)))
	defer srv.Close()

	resp := post(t, srv.URL, `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"quicksort","arguments":{"numbers":[3,1,2]}}}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var mcpResp MCPResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&mcpResp))
	require.Nil(t, mcpResp.Error)
	assert.Equal(t, []any{1.0, 2.0, 3.0}, mcpResp.Result)
}

func TestServeHTTP_MethodNotAllowed(t *testing.T) {
	srv := httptest.NewServer(ServeHTTP(newTestRegistry(t)))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestServeHTTP_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(ServeHTTP(newTestRegistry(t)))
	defer srv.Close()

	resp := post(t, srv.URL, `{not json`)
	var mcpResp MCPResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&mcpResp))
	require.NotNil(t, mcpResp.Error)
	assert.Equal(t, ErrCodeParseError, mcpResp.Error.Code)
}

func TestServeHTTP_RateLimited(t *testing.T) {
	limiter := rate.NewLimiter(rate.Limit(0.001), 1)
	srv := httptest.NewServer(ServeHTTP(newTestRegistry(t), WithRateLimiter(limiter)))
	defer srv.Close()

	ping := `{"jsonrpc":"2.0","id":1,"method":"ping"}`
	assert.Equal(t, http.StatusOK, post(t, srv.URL, ping).StatusCode)

	resp := post(t, srv.URL, ping)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "1", resp.Header.Get("Retry-After"))
}

func TestServeSSE(t *testing.T) {
	srv := httptest.NewServer(ServeSSE(newTestRegistry(t)))
	defer srv.Close()

	resp := post(t, srv.URL, `{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"add","arguments":{"a":1,"b":2}}}`)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "event: message", lines[0])

	var mcpResp MCPResponse
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(lines[1], "data: ")), &mcpResp))
	require.Nil(t, mcpResp.Error)
	assert.Equal(t, 3.0, mcpResp.Result)
}

func TestServeSSE_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(ServeSSE(newTestRegistry(t)))
	defer srv.Close()

	body, err := io.ReadAll(post(t, srv.URL, `nope`).Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "event: error\n"))
}

func TestServeStream(t *testing.T) {
	in := strings.NewReader(strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"ping"}`,
		``,
		`garbage`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"binarysearch","arguments":{"target":3,"numbers":[5,3,8,1]}}}`,
	}, "\n"))
	var out bytes.Buffer

	require.NoError(t, ServeStream(context.Background(), newTestRegistry(t), in, &out))

	var responses []MCPResponse
	sc := bufio.NewScanner(&out)
	for sc.Scan() {
		var resp MCPResponse
		require.NoError(t, json.Unmarshal(sc.Bytes(), &resp))
		responses = append(responses, resp)
	}
	require.Len(t, responses, 3)
	assert.Nil(t, responses[0].Error)
	require.NotNil(t, responses[1].Error)
	assert.Equal(t, ErrCodeParseError, responses[1].Error.Code)
	assert.Equal(t, 1.0, responses[2].Result)
}

func TestServeStream_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	in := strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"ping"}` + "\n")
	err := ServeStream(ctx, newTestRegistry(t), in, io.Discard)
	assert.ErrorIs(t, err, context.Canceled)
}
