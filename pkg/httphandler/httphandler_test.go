package httphandler_test

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	// Packages
	bridge "github.com/mutablelogic/go-toolbridge/pkg/bridge"
	httphandler "github.com/mutablelogic/go-toolbridge/pkg/httphandler"
	outsystems "github.com/mutablelogic/go-toolbridge/pkg/outsystems"
)

///////////////////////////////////////////////////////////////////////////////
// STUB REMOTE

type remote struct {
	*httptest.Server
	calls atomic.Int32
}

// newRemote returns a stub REST module. A sum of 13 fails with HTTP 500
// and a sum of 99 returns a non-numeric body.
func newRemote(t *testing.T) *remote {
	t.Helper()
	r := new(remote)
	mux := http.NewServeMux()
	mux.HandleFunc("POST /SumNumbers", func(w http.ResponseWriter, req *http.Request) {
		r.calls.Add(1)
		a, _ := strconv.Atoi(req.URL.Query().Get("Number1"))
		b, _ := strconv.Atoi(req.URL.Query().Get("Number2"))
		switch a + b {
		case 13:
			http.Error(w, "boom", http.StatusInternalServerError)
		case 99:
			fmt.Fprint(w, "abc")
		default:
			fmt.Fprint(w, a+b)
		}
	})
	mux.HandleFunc("POST /EmployeeCreate", func(w http.ResponseWriter, req *http.Request) {
		r.calls.Add(1)
		fmt.Fprint(w, "EMP-001")
	})
	r.Server = httptest.NewServer(mux)
	t.Cleanup(r.Close)
	return r
}

///////////////////////////////////////////////////////////////////////////////
// HELPERS

func newBridge(t *testing.T, endpoint string) *bridge.Bridge {
	t.Helper()
	tools, err := outsystems.NewTools(endpoint)
	if err != nil {
		t.Fatal(err)
	}
	b, err := bridge.New(tools)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func serveMux(b *bridge.Bridge) http.Handler {
	return httphandler.NewRouter("test", b, nil, slog.New(slog.DiscardHandler))
}

///////////////////////////////////////////////////////////////////////////////
// HEALTH TESTS

func TestHealth_OK(t *testing.T) {
	mux := serveMux(newBridge(t, "http://localhost"))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	mux.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestHealth_MethodNotAllowed(t *testing.T) {
	mux := serveMux(newBridge(t, "http://localhost"))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodDelete, "/health", nil)
	mux.ServeHTTP(w, r)

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", w.Code)
	}
}
