package httphandler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	// Packages
	schema "github.com/mutablelogic/go-toolbridge/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TOOL LIST TESTS

func TestToolList_OK(t *testing.T) {
	mux := serveMux(newBridge(t, "http://localhost"))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/tool", nil)
	mux.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp schema.ListToolResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 2 {
		t.Fatalf("expected count=2, got %d", resp.Count)
	}
	if len(resp.Body) != 2 {
		t.Fatalf("expected 2 tools, got %d", len(resp.Body))
	}
	// Sorted by name
	if resp.Body[0].Name != "create_employee" {
		t.Fatalf("expected first tool=create_employee, got %q", resp.Body[0].Name)
	}
	if resp.Body[1].Result != schema.TypeInteger {
		t.Fatalf("expected sum_numbers result=integer, got %q", resp.Body[1].Result)
	}
}

func TestToolList_WithPagination(t *testing.T) {
	mux := serveMux(newBridge(t, "http://localhost"))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/tool?limit=1&offset=1", nil)
	mux.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp schema.ListToolResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 2 {
		t.Fatalf("expected count=2, got %d", resp.Count)
	}
	if len(resp.Body) != 1 {
		t.Fatalf("expected 1 tool in page, got %d", len(resp.Body))
	}
	if resp.Body[0].Name != "sum_numbers" {
		t.Fatalf("expected sum_numbers, got %q", resp.Body[0].Name)
	}
}

func TestToolList_OffsetBeyondEnd(t *testing.T) {
	mux := serveMux(newBridge(t, "http://localhost"))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/tool?offset=10", nil)
	mux.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp schema.ListToolResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Body) != 0 {
		t.Fatalf("expected empty page, got %d", len(resp.Body))
	}
}

func TestToolList_LargeValues(t *testing.T) {
	mux := serveMux(newBridge(t, "http://localhost"))

	tests := []struct {
		query string
		names []string
	}{
		{"limit=18446744073709551615", []string{"create_employee", "sum_numbers"}},
		{"offset=1&limit=9223372036854775807", []string{"sum_numbers"}},
		{"offset=18446744073709551615&limit=1", []string{}},
		{"offset=9223372036854775808", []string{}},
	}
	for _, test := range tests {
		t.Run(test.query, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/tool?"+test.query, nil)
			mux.ServeHTTP(w, r)

			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
			}
			var resp schema.ListToolResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatal(err)
			}
			if len(resp.Body) != len(test.names) {
				t.Fatalf("expected %d tools, got %d", len(test.names), len(resp.Body))
			}
			for i, name := range test.names {
				if resp.Body[i].Name != name {
					t.Fatalf("expected %q at %d, got %q", name, i, resp.Body[i].Name)
				}
			}
		})
	}
}

///////////////////////////////////////////////////////////////////////////////
// TOOL GET TESTS

func TestToolGet_OK(t *testing.T) {
	mux := serveMux(newBridge(t, "http://localhost"))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/tool/create_employee", nil)
	mux.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp schema.ToolMeta
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Name != "create_employee" {
		t.Fatalf("expected create_employee, got %q", resp.Name)
	}
	if resp.Encoding != schema.EncodingJSON {
		t.Fatalf("expected json encoding, got %q", resp.Encoding)
	}
	if resp.InputSchema == nil || len(resp.InputSchema.Required) != 1 {
		t.Fatalf("expected one required parameter, got %v", resp.InputSchema)
	}
}

func TestToolGet_NotFound(t *testing.T) {
	mux := serveMux(newBridge(t, "http://localhost"))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/tool/multiply_numbers", nil)
	mux.ServeHTTP(w, r)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

///////////////////////////////////////////////////////////////////////////////
// TOOL CALL TESTS

func call(t *testing.T, handler http.Handler, name, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/tool/"+name, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	handler.ServeHTTP(w, r)
	return w
}

func TestToolCall_OK(t *testing.T) {
	remote := newRemote(t)
	mux := serveMux(newBridge(t, remote.URL))

	w := call(t, mux, "sum_numbers", `{"number1":1,"number2":2}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp schema.CallToolResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Tool != "sum_numbers" {
		t.Fatalf("expected tool=sum_numbers, got %q", resp.Tool)
	}
	if resp.Result != float64(3) {
		t.Fatalf("expected result=3, got %v", resp.Result)
	}

	w = call(t, mux, "create_employee", `{"employee_name":"Alice"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Result != "EMP-001" {
		t.Fatalf("expected result=EMP-001, got %v", resp.Result)
	}
}

func TestToolCall_Errors(t *testing.T) {
	remote := newRemote(t)
	mux := serveMux(newBridge(t, remote.URL))

	tests := []struct {
		name   string
		tool   string
		body   string
		status int
	}{
		{"missing parameter", "create_employee", `{"nif":1}`, http.StatusBadRequest},
		{"invalid parameter", "sum_numbers", `{"number1":"one","number2":2}`, http.StatusBadRequest},
		{"unknown tool", "multiply_numbers", `{}`, http.StatusNotFound},
		{"remote error", "sum_numbers", `{"number1":6,"number2":7}`, http.StatusBadGateway},
		{"response format", "sum_numbers", `{"number1":90,"number2":9}`, http.StatusBadGateway},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			w := call(t, mux, test.tool, test.body)
			if w.Code != test.status {
				t.Fatalf("expected %d, got %d: %s", test.status, w.Code, w.Body.String())
			}
		})
	}

	// Only the remote error and response format cases reach the remote
	if n := remote.calls.Load(); n != 2 {
		t.Fatalf("expected 2 remote calls, got %d", n)
	}
}

func TestToolCall_Unreachable(t *testing.T) {
	remote := newRemote(t)
	url := remote.URL
	remote.Close()
	mux := serveMux(newBridge(t, url))

	w := call(t, mux, "sum_numbers", `{"number1":1,"number2":2}`)
	if w.Code != http.StatusGatewayTimeout {
		t.Fatalf("expected 504, got %d", w.Code)
	}
}
