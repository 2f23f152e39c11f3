package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "campus_mall"

// Metrics 业务与 HTTP 指标，持有独立注册表
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	logins       *prometheus.CounterVec
	cartAdds     *prometheus.CounterVec
	checkouts    *prometheus.CounterVec
	checkoutRows prometheus.Counter
	tasks        *prometheus.CounterVec
}

// New 创建指标集合并注册到新的注册表
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_attempts_total",
			Help:      "Login attempts by source and result.",
		}, []string{"source", "result"}),
		cartAdds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_add_total",
			Help:      "Add-to-cart calls by result.",
		}, []string{"result"}),
		checkouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_total",
			Help:      "Checkout runs by result.",
		}, []string{"result"}),
		checkoutRows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_lines_total",
			Help:      "Cart lines converted into order lines.",
		}),
		tasks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "worker_tasks_total",
			Help:      "Background tasks handled by type and result.",
		}, []string{"type", "result"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.logins,
		m.cartAdds,
		m.checkouts,
		m.checkoutRows,
		m.tasks,
	)
	return m
}

// Registry 返回注册表
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler 暴露 Prometheus 文本格式
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveHTTP 记录一次 HTTP 请求
func (m *Metrics) ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// ObserveLogin 记录登录结果
func (m *Metrics) ObserveLogin(source string, success bool) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(source, resultLabel(success)).Inc()
}

// ObserveCartAdd 记录加入购物车结果
func (m *Metrics) ObserveCartAdd(success bool) {
	if m == nil {
		return
	}
	m.cartAdds.WithLabelValues(resultLabel(success)).Inc()
}

// ObserveCheckout 记录结算结果与转换的明细行数
func (m *Metrics) ObserveCheckout(success bool, lines int) {
	if m == nil {
		return
	}
	m.checkouts.WithLabelValues(resultLabel(success)).Inc()
	if success && lines > 0 {
		m.checkoutRows.Add(float64(lines))
	}
}

// ObserveTask 记录后台任务处理结果
func (m *Metrics) ObserveTask(taskType string, success bool) {
	if m == nil {
		return
	}
	m.tasks.WithLabelValues(taskType, resultLabel(success)).Inc()
}

func resultLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
