package metrics

import (
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "userhub"

// Prom is a Recorder backed by Prometheus collectors.
type Prom struct {
	usersCreated    prometheus.Counter
	usersFetched    prometheus.Counter
	usersListed     prometheus.Counter
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	dbQueryDuration *prometheus.HistogramVec
	dbErrorsTotal   *prometheus.CounterVec
}

// NewProm creates a Prometheus-backed Recorder and registers its collectors.
func NewProm(reg prometheus.Registerer) *Prom {
	p := &Prom{
		usersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "users_created_total",
			Help:      "Total users created.",
		}),
		usersFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "users_fetched_total",
			Help:      "Total single-user lookups served.",
		}),
		usersListed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "users_listed_total",
			Help:      "Total user list requests served.",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "user_cache_hits_total",
			Help:      "Total user cache hits.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "user_cache_misses_total",
			Help:      "Total user cache misses.",
		}),
		dbQueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "db",
				Name:      "query_duration_seconds",
				Help:      "DB operation latency (logical op, not raw SQL).",
				Buckets:   []float64{0.005, 0.01, 0.02, 0.05, 0.1, 0.2, 0.35, 0.5, 1, 2, 5},
			},
			[]string{"op", "status"},
		),
		dbErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "db",
				Name:      "errors_total",
				Help:      "DB errors by logical op and class.",
			},
			[]string{"op", "class"},
		),
	}

	reg.MustRegister(
		p.usersCreated,
		p.usersFetched,
		p.usersListed,
		p.cacheHits,
		p.cacheMisses,
		p.dbQueryDuration,
		p.dbErrorsTotal,
	)

	return p
}

func (p *Prom) IncUserCreated()   { p.usersCreated.Inc() }
func (p *Prom) IncUserFetched()   { p.usersFetched.Inc() }
func (p *Prom) IncUserListed()    { p.usersListed.Inc() }
func (p *Prom) IncUserCacheHit()  { p.cacheHits.Inc() }
func (p *Prom) IncUserCacheMiss() { p.cacheMisses.Inc() }

// ObserveDBQuery records the latency and outcome of a logical DB operation.
func (p *Prom) ObserveDBQuery(op string, duration time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
		p.dbErrorsTotal.WithLabelValues(op, classifyDBError(err)).Inc()
	}
	p.dbQueryDuration.WithLabelValues(op, status).Observe(duration.Seconds())
}

func classifyDBError(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return "unique_violation"
		case "40001":
			return "serialization_failure"
		case "40P01":
			return "deadlock"
		case "57014":
			return "query_canceled"
		default:
			return "pg_" + pgErr.Code
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline"):
		return "timeout"
	case strings.Contains(msg, "connection"):
		return "connection"
	default:
		return "unknown"
	}
}
