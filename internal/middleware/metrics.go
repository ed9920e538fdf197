package middleware

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"
)

// Metrics stores in-process counters for the two request kinds. They track
// independent loading states, so each kind counts separately.
type Metrics struct {
	RequestsTotal  uint64
	RequestsFailed uint64
	AnalysesTotal  uint64
	ChatTurnsTotal uint64
	UpstreamErrors uint64
	StartTime      time.Time
}

var globalMetrics = &Metrics{
	StartTime: time.Now(),
}

func IncrementRequests() { atomic.AddUint64(&globalMetrics.RequestsTotal, 1) }

func IncrementFailed() { atomic.AddUint64(&globalMetrics.RequestsFailed, 1) }

func IncrementAnalyses() { atomic.AddUint64(&globalMetrics.AnalysesTotal, 1) }

func IncrementChatTurns() { atomic.AddUint64(&globalMetrics.ChatTurnsTotal, 1) }

func IncrementUpstreamErrors() { atomic.AddUint64(&globalMetrics.UpstreamErrors, 1) }

// CountRequests tracks request totals and failures around the handler.
func CountRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		IncrementRequests()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		if wrapped.statusCode >= 500 {
			IncrementFailed()
		}
	})
}

// MetricsHandler serves the counters as JSON.
func MetricsHandler(w http.ResponseWriter, r *http.Request) {
	snapshot := map[string]any{
		"requests_total":   atomic.LoadUint64(&globalMetrics.RequestsTotal),
		"requests_failed":  atomic.LoadUint64(&globalMetrics.RequestsFailed),
		"analyses_total":   atomic.LoadUint64(&globalMetrics.AnalysesTotal),
		"chat_turns_total": atomic.LoadUint64(&globalMetrics.ChatTurnsTotal),
		"upstream_errors":  atomic.LoadUint64(&globalMetrics.UpstreamErrors),
		"uptime_seconds":   int64(time.Since(globalMetrics.StartTime).Seconds()),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snapshot)
}
