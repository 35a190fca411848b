package metrics

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// poolStatsCollector exports pgxpool statistics on scrape.
type poolStatsCollector struct {
	stat func() *pgxpool.Stat

	totalConns    *prometheus.Desc
	idleConns     *prometheus.Desc
	acquiredConns *prometheus.Desc
	maxConns      *prometheus.Desc
	acquires      *prometheus.Desc
	emptyAcquires *prometheus.Desc
}

// NewPoolStatsCollector creates a Prometheus collector for connection pool stats.
func NewPoolStatsCollector(pool *pgxpool.Pool) prometheus.Collector {
	return &poolStatsCollector{
		stat: pool.Stat,
		totalConns: prometheus.NewDesc(
			namespace+"_db_pool_total_conns",
			"Total connections currently in the pool.",
			nil, nil,
		),
		idleConns: prometheus.NewDesc(
			namespace+"_db_pool_idle_conns",
			"Idle connections currently in the pool.",
			nil, nil,
		),
		acquiredConns: prometheus.NewDesc(
			namespace+"_db_pool_acquired_conns",
			"Connections currently checked out of the pool.",
			nil, nil,
		),
		maxConns: prometheus.NewDesc(
			namespace+"_db_pool_max_conns",
			"Configured maximum pool size.",
			nil, nil,
		),
		acquires: prometheus.NewDesc(
			namespace+"_db_pool_acquires_total",
			"Cumulative successful pool acquires.",
			nil, nil,
		),
		emptyAcquires: prometheus.NewDesc(
			namespace+"_db_pool_empty_acquires_total",
			"Cumulative acquires that had to wait for a free connection.",
			nil, nil,
		),
	}
}

func (c *poolStatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.totalConns
	ch <- c.idleConns
	ch <- c.acquiredConns
	ch <- c.maxConns
	ch <- c.acquires
	ch <- c.emptyAcquires
}

func (c *poolStatsCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.stat()
	ch <- prometheus.MustNewConstMetric(c.totalConns, prometheus.GaugeValue, float64(s.TotalConns()))
	ch <- prometheus.MustNewConstMetric(c.idleConns, prometheus.GaugeValue, float64(s.IdleConns()))
	ch <- prometheus.MustNewConstMetric(c.acquiredConns, prometheus.GaugeValue, float64(s.AcquiredConns()))
	ch <- prometheus.MustNewConstMetric(c.maxConns, prometheus.GaugeValue, float64(s.MaxConns()))
	ch <- prometheus.MustNewConstMetric(c.acquires, prometheus.CounterValue, float64(s.AcquireCount()))
	ch <- prometheus.MustNewConstMetric(c.emptyAcquires, prometheus.CounterValue, float64(s.EmptyAcquireCount()))
}
