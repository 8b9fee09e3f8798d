package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func findCounter(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if matchLabels(m, labels) {
				return m.GetCounter().GetValue()
			}
		}
	}
	t.Fatalf("metric %s%v not found", name, labels)
	return 0
}

func matchLabels(m *dto.Metric, want map[string]string) bool {
	got := make(map[string]string)
	for _, lp := range m.GetLabel() {
		got[lp.GetName()] = lp.GetValue()
	}
	for k, v := range want {
		if got[k] != v {
			return false
		}
	}
	return true
}

func TestCollector_CheckInRecorded(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.CheckInRecorded(true)
	c.CheckInRecorded(true)
	c.CheckInRecorded(false)

	if v := findCounter(t, reg, "habithero_checkins_recorded_total", map[string]string{"result": "created"}); v != 2 {
		t.Errorf("created = %v, want 2", v)
	}
	if v := findCounter(t, reg, "habithero_checkins_recorded_total", map[string]string{"result": "updated"}); v != 1 {
		t.Errorf("updated = %v, want 1", v)
	}
}

func TestCollector_ObserveRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.ObserveRequest("GET", "/api/v1/habits/:id", 404, 15*time.Millisecond)
	c.ObserveRequest("GET", "/api/v1/habits/:id", 200, 5*time.Millisecond)

	labels := map[string]string{"method": "GET", "route": "/api/v1/habits/:id", "status": "4xx"}
	if v := findCounter(t, reg, "habithero_http_requests_total", labels); v != 1 {
		t.Errorf("4xx requests = %v, want 1", v)
	}
}

func TestCollector_AIMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.SuggestionServed("fallback")
	c.ProviderFailure("gemini")

	if v := findCounter(t, reg, "habithero_ai_suggestions_served_total", map[string]string{"source": "fallback"}); v != 1 {
		t.Errorf("fallback = %v, want 1", v)
	}
	if v := findCounter(t, reg, "habithero_ai_provider_failures_total", map[string]string{"provider": "gemini"}); v != 1 {
		t.Errorf("failures = %v, want 1", v)
	}
}

func TestHandler_ServesMetrics(t *testing.T) {
	reg := NewRegistry()
	c := NewCollector(reg)
	c.CheckInRecorded(true)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "habithero_checkins_recorded_total") {
		t.Error("response should contain habithero_checkins_recorded_total")
	}
	if !strings.Contains(string(body), "go_goroutines") {
		t.Error("response should contain runtime metrics")
	}
}
