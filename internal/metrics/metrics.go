package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// API metrics
	APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fittrack_api_requests_total",
			Help: "Total number of HTTP requests by method and status",
		},
		[]string{"method", "status"},
	)

	APIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fittrack_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	// Achievement metrics
	AchievementEvaluations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fittrack_achievement_evaluations_total",
			Help: "Total number of achievement evaluations by result",
		},
		[]string{"result"},
	)

	AchievementsGranted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fittrack_achievements_granted_total",
			Help: "Total number of achievements granted by achievement name",
		},
		[]string{"achievement"},
	)

	// Reminder metrics
	RemindersSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fittrack_reminders_sent_total",
			Help: "Total number of reminder deliveries by kind and result",
		},
		[]string{"kind", "result"},
	)

	RemindersScheduled = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "fittrack_reminders_scheduled",
			Help: "Number of reminder jobs currently scheduled",
		},
	)
)

func init() {
	prometheus.MustRegister(APIRequestsTotal)
	prometheus.MustRegister(APIRequestDuration)
	prometheus.MustRegister(AchievementEvaluations)
	prometheus.MustRegister(AchievementsGranted)
	prometheus.MustRegister(RemindersSent)
	prometheus.MustRegister(RemindersScheduled)
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Result maps an error to the "result" label value.
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// ObserveRequest records a finished HTTP request.
func ObserveRequest(method string, status int, d time.Duration) {
	APIRequestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method).Observe(d.Seconds())
}
