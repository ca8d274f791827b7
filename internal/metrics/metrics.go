// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector はPrometheusメトリクスを収集する実装。
// GitHub API呼び出しの成否・レイテンシと、HTTPレスポンスの
// ステータス分布・レイテンシを記録する。
type Collector struct {
	fetchSuccess   prometheus.Counter
	fetchFail      *prometheus.CounterVec
	fetchLatency   prometheus.Histogram
	httpStatus     *prometheus.CounterVec
	requestLatency prometheus.Histogram
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		fetchSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gitcrm_github_fetch_success_total",
			Help: "GitHub APIフェッチ成功の合計数",
		}),
		fetchFail: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gitcrm_github_fetch_fail_total",
			Help: "GitHub APIフェッチ失敗のエラーコード別合計数",
		}, []string{"code"}),
		fetchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gitcrm_github_fetch_latency_seconds",
			Help:    "GitHub APIフェッチのレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gitcrm_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gitcrm_http_request_latency_seconds",
			Help:    "HTTPリクエスト処理のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.fetchSuccess,
		c.fetchFail,
		c.fetchLatency,
		c.httpStatus,
		c.requestLatency,
	)

	return c
}

// RecordFetchSuccess はGitHub APIフェッチ成功を記録する。
func (c *Collector) RecordFetchSuccess() {
	c.fetchSuccess.Inc()
}

// RecordFetchFailure はGitHub APIフェッチ失敗をエラーコード付きで記録する。
func (c *Collector) RecordFetchFailure(code string) {
	c.fetchFail.WithLabelValues(code).Inc()
}

// RecordFetchLatency はGitHub APIフェッチのレイテンシを記録する。
func (c *Collector) RecordFetchLatency(d time.Duration) {
	c.fetchLatency.Observe(d.Seconds())
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestLatency はHTTPリクエスト処理のレイテンシを記録する。
func (c *Collector) RecordRequestLatency(d time.Duration) {
	c.requestLatency.Observe(d.Seconds())
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
