package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

type apiResponse struct {
	status int
	body   any
}

// ApiMock is an HTTP server that replays canned JSON responses per method and
// path and records what it received.
type ApiMock struct {
	mu        sync.Mutex
	server    *httptest.Server
	responses map[string]apiResponse
	requests  map[string][]map[string]any
	headers   map[string][]http.Header
}

// NewApiServer creates a stopped mock server.
func NewApiServer() *ApiMock {
	return &ApiMock{
		responses: map[string]apiResponse{},
		requests:  map[string][]map[string]any{},
		headers:   map[string][]http.Header{},
	}
}

// Start starts serving.
func (a *ApiMock) Start() {
	a.server = httptest.NewServer(http.HandlerFunc(a.handle))
}

// Close stops the server.
func (a *ApiMock) Close() {
	if a.server != nil {
		a.server.Close()
	}
}

// GetUrl returns the server base URL.
func (a *ApiMock) GetUrl() string {
	return a.server.URL
}

// SetResponse sets the status and JSON body returned for method and path.
func (a *ApiMock) SetResponse(method, path string, status int, body any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.responses[method+path] = apiResponse{status: status, body: body}
}

// GetRequestBody returns the decoded body of the index-th request to method and path.
func (a *ApiMock) GetRequestBody(method, path string, index int) map[string]any {
	a.mu.Lock()
	defer a.mu.Unlock()
	requests := a.requests[method+path]
	if index < 0 || index >= len(requests) {
		return nil
	}
	return requests[index]
}

// GetRequestHeaders returns the headers of the index-th request to method and path.
func (a *ApiMock) GetRequestHeaders(method, path string, index int) http.Header {
	a.mu.Lock()
	defer a.mu.Unlock()
	headers := a.headers[method+path]
	if index < 0 || index >= len(headers) {
		return nil
	}
	return headers[index]
}

// RequestCount returns how many requests method and path received.
func (a *ApiMock) RequestCount(method, path string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.requests[method+path])
}

func (a *ApiMock) handle(w http.ResponseWriter, r *http.Request) {
	key := r.Method + r.URL.Path

	body, _ := io.ReadAll(r.Body)
	var request map[string]any
	_ = json.Unmarshal(body, &request)
	if request == nil {
		request = map[string]any{}
	}

	a.mu.Lock()
	a.requests[key] = append(a.requests[key], request)
	a.headers[key] = append(a.headers[key], r.Header.Clone())
	resp, ok := a.responses[key]
	a.mu.Unlock()

	if !ok {
		resp = apiResponse{status: http.StatusNotFound, body: map[string]any{"message": "not found"}}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	_ = json.NewEncoder(w).Encode(resp.body)
}
