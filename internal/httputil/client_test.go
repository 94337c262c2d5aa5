package httputil

import (
	"errors"
	"io"
	"net/http"
	"testing"
)

func TestMockClientReplaysQueuedResponses(t *testing.T) {
	mock := NewMockClient().
		AddResponse(http.StatusOK, `{"ok": true}`).
		AddResponse(http.StatusNotFound, `{"error": "missing"}`)

	req, _ := http.NewRequest(http.MethodGet, "http://example/a", nil)
	resp, err := mock.Do(req)
	if err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("first status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != `{"ok": true}` {
		t.Errorf("first body = %q", body)
	}

	resp, err = mock.Do(req)
	if err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("second status = %d, want 404", resp.StatusCode)
	}
}

func TestMockClientQueuedError(t *testing.T) {
	wantErr := errors.New("connection reset")
	mock := NewMockClient().AddError(wantErr)

	req, _ := http.NewRequest(http.MethodGet, "http://example/", nil)
	if _, err := mock.Do(req); !errors.Is(err, wantErr) {
		t.Errorf("Do() error = %v, want %v", err, wantErr)
	}
}

func TestMockClientRecordsRequests(t *testing.T) {
	mock := NewMockClient()

	for _, path := range []string{"/one", "/two"} {
		req, _ := http.NewRequest(http.MethodGet, "http://example"+path, nil)
		if _, err := mock.Do(req); err != nil {
			t.Fatalf("Do() error: %v", err)
		}
	}

	if mock.RequestCount() != 2 {
		t.Errorf("RequestCount() = %d, want 2", mock.RequestCount())
	}
	if got := mock.LastRequest().URL.Path; got != "/two" {
		t.Errorf("LastRequest().URL.Path = %q, want /two", got)
	}
}

func TestMockClientDefaultsToEmptyOK(t *testing.T) {
	mock := NewMockClient()
	req, _ := http.NewRequest(http.MethodGet, "http://example/", nil)
	resp, err := mock.Do(req)
	if err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestMockClientDoFuncOverrides(t *testing.T) {
	mock := NewMockClient()
	mock.DoFunc = func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("custom")
	}

	req, _ := http.NewRequest(http.MethodGet, "http://example/", nil)
	if _, err := mock.Do(req); err == nil || err.Error() != "custom" {
		t.Errorf("Do() error = %v, want custom", err)
	}
	if mock.RequestCount() != 1 {
		t.Errorf("request not recorded before DoFunc dispatch")
	}
}

func TestNewStandardClientNilFallback(t *testing.T) {
	c := NewStandardClient(nil)
	if c.Client != http.DefaultClient {
		t.Error("nil argument should fall back to http.DefaultClient")
	}
}
