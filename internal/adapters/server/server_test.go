package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hylla/lanes/internal/adapters/metrics"
	"github.com/hylla/lanes/internal/adapters/server/common"
	"github.com/hylla/lanes/internal/app"
	"github.com/hylla/lanes/internal/domain"
)

// newBoardDeps wires a fresh store into server dependencies.
func newBoardDeps(t *testing.T) (Dependencies, *app.Store) {
	t.Helper()
	store := app.NewStore(nil, nil)
	collector := metrics.NewCollector()
	store.Subscribe(collector.Observe)
	adapter := common.NewAppServiceAdapter(app.NewService(store, nil))
	return Dependencies{Board: adapter, Activity: adapter, Metrics: collector.Handler()}, store
}

// TestNewHandlerRoutes verifies health, API, and metrics mounts share one mux.
func TestNewHandlerRoutes(t *testing.T) {
	deps, store := newBoardDeps(t)
	handler, cfg, err := NewHandler(Config{}, deps)
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	if cfg.HTTPBind != defaultBindAddress || cfg.APIEndpoint != "/api/v1" || cfg.MetricsEndpoint != "/metrics" {
		t.Fatalf("normalized config = %#v", cfg)
	}

	health := httptest.NewRecorder()
	handler.ServeHTTP(health, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if health.Code != http.StatusOK || !strings.Contains(health.Body.String(), `"ok"`) {
		t.Fatalf("healthz = %d %q", health.Code, health.Body.String())
	}

	create := httptest.NewRecorder()
	body := `{"title":"Ship","description":"ship the board","people":1}`
	handler.ServeHTTP(create, httptest.NewRequest(http.MethodPost, "/api/v1/items", strings.NewReader(body)))
	if create.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %q", create.Code, create.Body.String())
	}
	var item domain.Item
	if err := json.NewDecoder(create.Body).Decode(&item); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got := store.Snapshot(); len(got) != 1 || got[0].ID != item.ID {
		t.Fatalf("store snapshot = %#v, want created item", got)
	}

	move := httptest.NewRecorder()
	handler.ServeHTTP(move, httptest.NewRequest(http.MethodPost, "/api/v1/items/"+item.ID+"/move", strings.NewReader(`{"lane":"finished"}`)))
	if move.Code != http.StatusOK {
		t.Fatalf("move status = %d, body %q", move.Code, move.Body.String())
	}
	if got, _ := store.Get(item.ID); got.Lane != domain.LaneFinished {
		t.Fatalf("lane = %q, want finished", got.Lane)
	}

	invalid := httptest.NewRecorder()
	handler.ServeHTTP(invalid, httptest.NewRequest(http.MethodPost, "/api/v1/items", strings.NewReader(`{"title":"S","description":"ship the board","people":1}`)))
	if invalid.Code != http.StatusBadRequest {
		t.Fatalf("invalid create status = %d, want %d", invalid.Code, http.StatusBadRequest)
	}

	scrape := httptest.NewRecorder()
	handler.ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(scrape.Body.String(), `lanes_items{lane="finished"} 1`) {
		t.Fatalf("metrics body missing finished gauge:\n%s", scrape.Body.String())
	}
}

// TestNewHandlerWithoutMetrics verifies the metrics endpoint is optional.
func TestNewHandlerWithoutMetrics(t *testing.T) {
	deps, _ := newBoardDeps(t)
	deps.Metrics = nil
	handler, _, err := NewHandler(Config{}, deps)
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("metrics status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

// TestNewHandlerRequiresBoard verifies the board dependency is enforced.
func TestNewHandlerRequiresBoard(t *testing.T) {
	if _, _, err := NewHandler(Config{}, Dependencies{}); err == nil {
		t.Fatal("NewHandler() error = nil, want board dependency error")
	}
}

// TestNormalizeConfig verifies defaults and endpoint collision checks.
func TestNormalizeConfig(t *testing.T) {
	cases := []struct {
		name    string
		in      Config
		wantErr bool
		want    Config
	}{
		{
			name: "defaults",
			in:   Config{},
			want: Config{
				HTTPBind:        defaultBindAddress,
				APIEndpoint:     "/api/v1",
				MCPEndpoint:     "/mcp",
				MetricsEndpoint: "/metrics",
				ServerName:      "lanes",
				ServerVersion:   "dev",
			},
		},
		{
			name: "trimmed endpoints",
			in:   Config{HTTPBind: " :9000 ", APIEndpoint: "api/", MCPEndpoint: "//agents//", MetricsEndpoint: "/", ServerVersion: " v1 "},
			want: Config{
				HTTPBind:        ":9000",
				APIEndpoint:     "/api",
				MCPEndpoint:     "/agents",
				MetricsEndpoint: "/metrics",
				ServerName:      "lanes",
				ServerVersion:   "v1",
			},
		},
		{name: "api equals mcp", in: Config{APIEndpoint: "/x", MCPEndpoint: "x"}, wantErr: true},
		{name: "metrics equals api", in: Config{APIEndpoint: "/metrics"}, wantErr: true},
		{name: "health collision", in: Config{MetricsEndpoint: "/healthz"}, wantErr: true},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeConfig(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("normalizeConfig() error = nil, want collision error")
				}
				return
			}
			if err != nil {
				t.Fatalf("normalizeConfig() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("normalizeConfig() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

// TestRunStopsOnContextCancel verifies graceful shutdown once ctx is canceled.
func TestRunStopsOnContextCancel(t *testing.T) {
	deps, _ := newBoardDeps(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Run(ctx, Config{HTTPBind: "127.0.0.1:0"}, deps); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
}
