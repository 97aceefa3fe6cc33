// Package metrics exposes Prometheus instrumentation for the service.
package metrics

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"linkboard/internal/db"
)

var (
	submissionsDesc = prometheus.NewDesc(
		"linkboard_submissions",
		"Current number of submissions by status",
		[]string{"status"},
		nil,
	)

	moderationActions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "linkboard_moderation_actions_total",
			Help: "Total submissions changed by moderation action",
		},
		[]string{"action"},
	)
)

// StatusCollector is a custom Prometheus collector that reads submission
// status counts from the database on each scrape, so the gauge always
// reflects the committed state rather than a cached snapshot.
type StatusCollector struct {
	db *db.DB
}

// Describe sends the metric descriptor to the channel.
func (c *StatusCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- submissionsDesc
}

// Collect queries the database for status counts and emits them as gauges.
func (c *StatusCollector) Collect(ch chan<- prometheus.Metric) {
	counts, err := c.db.CountByStatus(context.Background())
	if err != nil {
		slog.Error("failed to collect submission status metrics", "error", err)
		return
	}
	for status, count := range counts {
		ch <- prometheus.MustNewConstMetric(
			submissionsDesc,
			prometheus.GaugeValue,
			float64(count),
			status,
		)
	}
}

var initOnce sync.Once

// Init registers the collectors. Must be called once at startup.
func Init(database *db.DB) {
	initOnce.Do(func() {
		prometheus.MustRegister(&StatusCollector{db: database})
		prometheus.MustRegister(moderationActions)
	})
}

// RecordModerationAction counts rows changed by a moderation action.
func RecordModerationAction(action string, changed int64) {
	if changed <= 0 {
		return
	}
	moderationActions.WithLabelValues(action).Add(float64(changed))
}
