// Package metrics 基于 OpenTelemetry 的指标采集，通过 Prometheus 格式暴露。
package metrics

import (
	"context"
	"net/http"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Metrics 进程级指标
type Metrics struct {
	HTTPRequests metric.Int64Counter
	HTTPDuration metric.Float64Histogram
	CacheHits    metric.Int64Counter
	CacheMisses  metric.Int64Counter

	provider *sdkmetric.MeterProvider
	handler  http.Handler
}

// Setup 创建指标与 /metrics 处理器，每次调用使用独立的 registry
func Setup(serviceName string) (*Metrics, error) {
	registry := promclient.NewRegistry()
	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		return nil, err
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	meter := provider.Meter(serviceName)

	m := &Metrics{
		provider: provider,
		handler:  promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}

	m.HTTPRequests, err = meter.Int64Counter(
		"newsdesk_http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	m.HTTPDuration, err = meter.Float64Histogram(
		"newsdesk_http_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	m.CacheHits, err = meter.Int64Counter(
		"newsdesk_cache_hits_total",
		metric.WithDescription("Total number of cache hits"),
	)
	if err != nil {
		return nil, err
	}

	m.CacheMisses, err = meter.Int64Counter(
		"newsdesk_cache_misses_total",
		metric.WithDescription("Total number of cache misses"),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

// Handler Prometheus 抓取入口
func (m *Metrics) Handler() http.Handler {
	if m == nil || m.handler == nil {
		return http.NotFoundHandler()
	}
	return m.handler
}

// RecordHTTPRequest 记录一次 HTTP 请求
func (m *Metrics) RecordHTTPRequest(ctx context.Context, service, method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labels := metric.WithAttributes(
		attribute.String("service", service),
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.Int("status", status),
	)
	m.HTTPRequests.Add(ctx, 1, labels)
	m.HTTPDuration.Record(ctx, duration.Seconds(), labels)
}

// RecordCacheHit 缓存命中
func (m *Metrics) RecordCacheHit(ctx context.Context, key string) {
	if m == nil {
		return
	}
	m.CacheHits.Add(ctx, 1, metric.WithAttributes(attribute.String("key", key)))
}

// RecordCacheMiss 缓存未命中
func (m *Metrics) RecordCacheMiss(ctx context.Context, key string) {
	if m == nil {
		return
	}
	m.CacheMisses.Add(ctx, 1, metric.WithAttributes(attribute.String("key", key)))
}

// Shutdown 释放 MeterProvider
func (m *Metrics) Shutdown(ctx context.Context) error {
	if m == nil || m.provider == nil {
		return nil
	}
	return m.provider.Shutdown(ctx)
}
