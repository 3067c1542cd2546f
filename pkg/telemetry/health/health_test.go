package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/SichangHe/parse-rpsl-policy/pkg/store"
)

func TestNew(t *testing.T) {
	if c := New(0); c.checkTimeout != 5*time.Second {
		t.Errorf("default timeout = %v, want 5s", c.checkTimeout)
	}
	if c := New(time.Second); c.checkTimeout != time.Second {
		t.Errorf("timeout = %v, want 1s", c.checkTimeout)
	}
}

func TestRegisterCheck(t *testing.T) {
	c := New(time.Second)
	c.RegisterCheck("store", func(context.Context) error { return nil })
	c.RegisterCheck("import", func(context.Context) error { return nil })
	c.RegisterCheck("store", func(context.Context) error { return errors.New("replaced") })

	names := c.ListChecks()
	sort.Strings(names)
	if len(names) != 2 || names[0] != "import" || names[1] != "store" {
		t.Errorf("ListChecks() = %v", names)
	}

	status := c.CheckReadiness(context.Background())
	if status.Checks["store"].Message != "replaced" {
		t.Errorf("store check = %+v, want the replacement", status.Checks["store"])
	}
}

func TestCheckReadiness(t *testing.T) {
	tests := []struct {
		name   string
		checks map[string]CheckFunc
		want   string
	}{
		{"no checks", nil, StatusReady},
		{"all healthy", map[string]CheckFunc{
			"a": func(context.Context) error { return nil },
			"b": func(context.Context) error { return nil },
		}, StatusReady},
		{"one failing", map[string]CheckFunc{
			"a": func(context.Context) error { return nil },
			"b": func(context.Context) error { return errors.New("down") },
		}, StatusDegraded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(time.Second)
			for name, check := range tt.checks {
				c.RegisterCheck(name, check)
			}
			status := c.CheckReadiness(context.Background())
			if status.Status != tt.want {
				t.Errorf("Status = %q, want %q", status.Status, tt.want)
			}
			if len(status.Checks) != len(tt.checks) {
				t.Errorf("len(Checks) = %d, want %d", len(status.Checks), len(tt.checks))
			}
		})
	}
}

func TestCheckReadiness_Timeout(t *testing.T) {
	c := New(20 * time.Millisecond)
	c.RegisterCheck("slow", func(ctx context.Context) error {
		<-ctx.Done()
		time.Sleep(10 * time.Millisecond)
		return nil
	})

	status := c.CheckReadiness(context.Background())
	r := status.Checks["slow"]
	if r.Status != StatusUnhealthy || r.Message != ErrCheckTimeout.Error() {
		t.Errorf("slow check = %+v, want timeout", r)
	}
}

// lockedStore fails every listing.
type lockedStore struct {
	store.Store
}

func (lockedStore) ListRuns(context.Context, int) ([]*store.Run, error) {
	return nil, errors.New("database is locked")
}

func TestStoreCheck(t *testing.T) {
	if err := StoreCheck(store.NewMemoryStore())(context.Background()); err != nil {
		t.Errorf("StoreCheck() = %v", err)
	}
	if err := StoreCheck(lockedStore{})(context.Background()); err == nil {
		t.Error("StoreCheck() on a locked store = nil, want error")
	}
}

func TestHandlers(t *testing.T) {
	c := New(time.Second)
	failing := errors.New("no dumps found")
	c.RegisterCheck("import", func(context.Context) error { return failing })

	mux := http.NewServeMux()
	Mount(mux, c, "1.2.0", "abc123")
	server := httptest.NewServer(mux)
	defer server.Close()

	tests := []struct {
		method string
		path   string
		code   int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodHead, "/health", http.StatusOK},
		{http.MethodGet, "/ready", http.StatusServiceUnavailable},
		{http.MethodGet, "/version", http.StatusOK},
		{http.MethodPost, "/health", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		req, _ := http.NewRequest(tt.method, server.URL+tt.path, nil)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("%s %s failed: %v", tt.method, tt.path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != tt.code {
			t.Errorf("%s %s = %d, want %d", tt.method, tt.path, resp.StatusCode, tt.code)
		}
	}

	resp, err := http.Get(server.URL + "/ready")
	if err != nil {
		t.Fatalf("GET /ready failed: %v", err)
	}
	defer resp.Body.Close()
	var status HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatalf("decode /ready: %v", err)
	}
	if status.Status != StatusDegraded || status.Checks["import"].Message != "no dumps found" {
		t.Errorf("/ready = %+v", status)
	}

	resp, err = http.Get(server.URL + "/version")
	if err != nil {
		t.Fatalf("GET /version failed: %v", err)
	}
	defer resp.Body.Close()
	var info VersionInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		t.Fatalf("decode /version: %v", err)
	}
	if info.Version != "1.2.0" || info.Commit != "abc123" || info.GoVersion == "" {
		t.Errorf("/version = %+v", info)
	}
}
