// Package httputil provides HTTP client abstractions for testability.
package httputil

import (
	"bytes"
	"io"
	"net/http"
	"sync"
)

// Client abstracts the outbound HTTP operations the dashboard performs.
// Use http.DefaultClient via NewStandardClient for production; MockClient
// for testing.
type Client interface {
	// Do sends an HTTP request and returns an HTTP response.
	Do(req *http.Request) (*http.Response, error)
}

// StandardClient wraps *http.Client to implement Client.
type StandardClient struct {
	*http.Client
}

// NewStandardClient creates a StandardClient wrapping the given http.Client.
// A nil argument falls back to http.DefaultClient.
func NewStandardClient(c *http.Client) *StandardClient {
	if c == nil {
		c = http.DefaultClient
	}
	return &StandardClient{Client: c}
}

// Do sends an HTTP request.
func (c *StandardClient) Do(req *http.Request) (*http.Response, error) {
	return c.Client.Do(req)
}

// MockClient records requests and replays canned responses in order.
type MockClient struct {
	mu          sync.Mutex
	DoFunc      func(req *http.Request) (*http.Response, error)
	Requests    []*http.Request
	responses   []*mockResponse
	responseIdx int
}

type mockResponse struct {
	statusCode int
	body       string
	err        error
}

// NewMockClient creates a new mock HTTP client with no queued responses.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// AddResponse queues a response to be returned by a subsequent request.
func (m *MockClient) AddResponse(statusCode int, body string) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, &mockResponse{statusCode: statusCode, body: body})
	return m
}

// AddError queues a transport-level error.
func (m *MockClient) AddError(err error) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, &mockResponse{err: err})
	return m
}

// Do records the request and returns the next queued response. With no
// responses queued it returns an empty 200.
func (m *MockClient) Do(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Requests = append(m.Requests, req)

	if m.DoFunc != nil {
		return m.DoFunc(req)
	}

	if m.responseIdx < len(m.responses) {
		resp := m.responses[m.responseIdx]
		m.responseIdx++
		if resp.err != nil {
			return nil, resp.err
		}
		return &http.Response{
			StatusCode: resp.statusCode,
			Body:       io.NopCloser(bytes.NewBufferString(resp.body)),
			Header:     make(http.Header),
			Request:    req,
		}, nil
	}

	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewBufferString("")),
		Header:     make(http.Header),
		Request:    req,
	}, nil
}

// RequestCount returns the number of recorded requests.
func (m *MockClient) RequestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests)
}

// LastRequest returns the most recently recorded request, or nil.
func (m *MockClient) LastRequest() *http.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Requests) == 0 {
		return nil
	}
	return m.Requests[len(m.Requests)-1]
}
