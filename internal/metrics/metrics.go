// Package metrics holds the Prometheus collectors exported at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// QuizzesStarted counts new quizzes by category
	QuizzesStarted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sluchapp_quizzes_started_total",
			Help: "Total number of quizzes started",
		},
		[]string{"category"},
	)

	// QuizzesCompleted counts finalized quizzes by category
	QuizzesCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sluchapp_quizzes_completed_total",
			Help: "Total number of quizzes finalized",
		},
		[]string{"category"},
	)

	// AnswersRecorded counts answers; correct: true/false
	AnswersRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sluchapp_answers_total",
			Help: "Total number of answers recorded",
		},
		[]string{"correct"},
	)

	// QuizAccuracy observes the accuracy of finalized quizzes
	QuizAccuracy = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sluchapp_quiz_accuracy_ratio",
			Help:    "Accuracy of finalized quizzes",
			Buckets: prometheus.LinearBuckets(0, 0.2, 6),
		},
	)

	// ResultsSaved counts result saves; status: success/failure
	ResultsSaved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sluchapp_results_saved_total",
			Help: "Total number of quiz result saves",
		},
		[]string{"status"},
	)

	// ResultEmails counts summary emails; status: sent/failed
	ResultEmails = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sluchapp_result_emails_total",
			Help: "Total number of result summary emails",
		},
		[]string{"status"},
	)

	// HTTPRequests counts served requests by method and status code
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sluchapp_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "code"},
	)

	// HTTPDuration observes request latency
	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sluchapp_http_request_duration_seconds",
			Help:    "Time spent serving HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

// RegisterActiveQuizzes exports the number of in-memory quizzes. Call it once.
func RegisterActiveQuizzes(count func() int) {
	promauto.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "sluchapp_active_quizzes",
			Help: "Current number of quizzes held in memory",
		},
		func() float64 { return float64(count()) },
	)
}

// Status maps an error to the success/failure label
func Status(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
