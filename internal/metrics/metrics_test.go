package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// TestNewCollector_RegistersMetrics はCollectorの生成とレジストリ登録を検証する。
func TestNewCollector_RegistersMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	if c == nil {
		t.Fatal("expected non-nil Collector")
	}

	// 二重登録はpanicする
	defer func() {
		if recover() == nil {
			t.Error("registering twice should panic")
		}
	}()
	NewCollector(reg)
}

// TestCollector_RecordAndGather は記録したメトリクスがGatherで取得できることを検証する。
func TestCollector_RecordAndGather(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordFetchSuccess()
	c.RecordFetchSuccess()
	c.RecordFetchFailure("RATE_LIMITED")
	c.RecordFetchLatency(150 * time.Millisecond)
	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(404)
	c.RecordRequestLatency(10 * time.Millisecond)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather returned error: %v", err)
	}

	found := make(map[string]bool)
	for _, f := range families {
		found[f.GetName()] = true
	}

	for _, name := range []string{
		"gitcrm_github_fetch_success_total",
		"gitcrm_github_fetch_fail_total",
		"gitcrm_github_fetch_latency_seconds",
		"gitcrm_http_status_total",
		"gitcrm_http_request_latency_seconds",
	} {
		if !found[name] {
			t.Errorf("metric %s should be present", name)
		}
	}
}

// TestHandler_ServesMetrics はPrometheusスクレイプ用ハンドラーがテキスト形式で
// メトリクスを返すことを検証する。
func TestHandler_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordFetchSuccess()

	handler := Handler(reg)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "gitcrm_github_fetch_success_total") {
		t.Error("response should contain gitcrm_github_fetch_success_total")
	}
}
