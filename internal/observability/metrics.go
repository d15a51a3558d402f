package observability

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/repeat-backend/internal/platform/envutil"
	"github.com/yungbote/repeat-backend/internal/platform/logger"
)

type Metrics struct {
	apiRequests *CounterVec
	apiLatency  *HistogramVec
	apiInflight *Gauge
	apiReqTotal *Counter
	apiReqError *Counter

	reviews        *CounterVec
	reviewQuality  *CounterVec
	reviewInterval *HistogramVec
	entityCreated  *CounterVec
	entityDeleted  *CounterVec

	sseClients *Gauge

	dbStats   *GaugeVec
	redisUp   *Gauge
	redisPing *Gauge
}

var (
	initOnce sync.Once
	instance *Metrics
)

// Current returns the process metrics, or nil when disabled. Every method is nil-safe.
func Current() *Metrics {
	return instance
}

func scrapeInterval() time.Duration {
	d := envutil.Seconds("METRICS_SCRAPE_INTERVAL_SECONDS", 10*time.Second)
	if d <= 0 {
		return 10 * time.Second
	}
	return d
}

// Init builds the process metrics once. Disabled metrics return nil.
func Init(log *logger.Logger, enabled bool) *Metrics {
	if !enabled {
		return nil
	}
	initOnce.Do(func() {
		instance = newMetrics()
		if log != nil {
			log.Info("metrics enabled")
		}
	})
	return instance
}

func newMetrics() *Metrics {
	return &Metrics{
		apiRequests: NewCounterVec("repeat_api_requests_total", "Total API requests by method/route/status.", []string{"method", "route", "status"}),
		apiLatency: NewHistogramVec(
			"repeat_api_request_duration_seconds",
			"API request latency in seconds by method/route/status.",
			[]string{"method", "route", "status"},
			[]float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		),
		apiInflight: NewGauge("repeat_api_inflight_requests", "In-flight API requests."),
		apiReqTotal: NewCounter("repeat_api_requests_total_all", "Total API requests (all)."),
		apiReqError: NewCounter("repeat_api_requests_error_total", "API requests answered with a 5xx status."),

		reviews:       NewCounterVec("repeat_reviews_total", "Reviews recorded by outcome.", []string{"outcome"}),
		reviewQuality: NewCounterVec("repeat_review_quality_total", "Reviews recorded by quality grade.", []string{"quality"}),
		reviewInterval: NewHistogramVec(
			"repeat_review_interval_days",
			"Interval in days assigned by a review, by outcome.",
			[]string{"outcome"},
			[]float64{0, 1, 6, 15, 30, 90, 180, 365, 1000, 36500},
		),
		entityCreated: NewCounterVec("repeat_entities_created_total", "Decks and cards created.", []string{"kind"}),
		entityDeleted: NewCounterVec("repeat_entities_deleted_total", "Decks and cards deleted.", []string{"kind"}),

		sseClients: NewGauge("repeat_sse_clients", "Connected event stream clients."),

		dbStats:   NewGaugeVec("repeat_db_pool", "database/sql pool statistics.", []string{"driver", "stat"}),
		redisUp:   NewGauge("repeat_redis_up", "1 when the last Redis ping succeeded."),
		redisPing: NewGauge("repeat_redis_ping_seconds", "Latency of the last Redis ping."),
	}
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, r *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

type promWriter interface {
	WritePrometheus(w io.Writer) error
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	for _, c := range []promWriter{
		m.apiRequests,
		m.apiLatency,
		m.apiInflight,
		m.apiReqTotal,
		m.apiReqError,
		m.reviews,
		m.reviewQuality,
		m.reviewInterval,
		m.entityCreated,
		m.entityDeleted,
		m.sseClients,
		m.dbStats,
		m.redisUp,
		m.redisPing,
	} {
		if err := c.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	if status == "" {
		status = "0"
	}
	m.apiRequests.Inc(method, route, status)
	m.apiLatency.Observe(dur.Seconds(), method, route, status)
	m.apiReqTotal.Inc()
	if isServerErrorStatus(status) {
		m.apiReqError.Inc()
	}
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

// ObserveReview records one committed review. outcome is "passed" or "failed".
func (m *Metrics) ObserveReview(quality int, outcome string, intervalDays int) {
	if m == nil {
		return
	}
	m.reviews.Inc(outcome)
	m.reviewQuality.Inc(strconv.Itoa(quality))
	m.reviewInterval.Observe(float64(intervalDays), outcome)
}

func (m *Metrics) IncCreated(kind string) {
	if m == nil {
		return
	}
	m.entityCreated.Inc(kind)
}

func (m *Metrics) IncDeleted(kind string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.entityDeleted.Add(float64(n), kind)
}

func (m *Metrics) SSEClientConnected() {
	if m == nil {
		return
	}
	m.sseClients.Inc()
}

func (m *Metrics) SSEClientDisconnected() {
	if m == nil {
		return
	}
	m.sseClients.Dec()
}

// StartDBCollector samples the connection pool on every scrape interval.
func (m *Metrics) StartDBCollector(ctx context.Context, log *logger.Logger, db *gorm.DB, driver string) {
	if m == nil || db == nil {
		return
	}
	interval := scrapeInterval()
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.sampleDB(log, db, driver)
			}
		}
	}()
}

func (m *Metrics) sampleDB(log *logger.Logger, db *gorm.DB, driver string) {
	sqlDB, err := db.DB()
	if err != nil {
		if log != nil {
			log.Warn("metrics: db stats unavailable", "error", err)
		}
		return
	}
	stats := sqlDB.Stats()
	m.dbStats.Set(float64(stats.OpenConnections), driver, "open_connections")
	m.dbStats.Set(float64(stats.InUse), driver, "in_use")
	m.dbStats.Set(float64(stats.Idle), driver, "idle")
	m.dbStats.Set(float64(stats.WaitCount), driver, "wait_count")
	m.dbStats.Set(stats.WaitDuration.Seconds(), driver, "wait_duration_seconds")
	m.dbStats.Set(float64(stats.MaxOpenConnections), driver, "max_open_connections")
}

// StartRedisCollector pings rdb on every scrape interval. rdb is not closed.
func (m *Metrics) StartRedisCollector(ctx context.Context, log *logger.Logger, rdb *redis.Client) {
	if m == nil || rdb == nil {
		return
	}
	interval := scrapeInterval()
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				start := time.Now()
				if err := rdb.Ping(ctx).Err(); err != nil {
					m.redisUp.Set(0)
					if log != nil {
						log.Warn("metrics: redis ping failed", "error", err)
					}
					continue
				}
				m.redisUp.Set(1)
				m.redisPing.Set(time.Since(start).Seconds())
			}
		}
	}()
}
