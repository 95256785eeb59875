package analytics

import (
	"sort"
	"sync"

	"github.com/eleven-am/sketch-backend/internal/concept"
)

const (
	// DefaultWindowSize bounds the rolling accuracy and latency windows.
	DefaultWindowSize = 100
	trendWindow       = 20
	topN              = 10
)

// ConceptCount pairs a detected concept with how often it appeared.
type ConceptCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Report is a point-in-time snapshot of the aggregator.
type Report struct {
	TotalRequests     int            `json:"total_requests"`
	ErrorCount        int            `json:"error_count"`
	SuccessRate       float64        `json:"success_rate"`
	AvgConfidence     float64        `json:"avg_confidence"`
	AvgResponseTimeMs float64        `json:"avg_response_time_ms"`
	PopularObjects    []ConceptCount `json:"popular_objects"`
	PopularColors     []ConceptCount `json:"popular_colors"`
	AccuracyTrend     []float64      `json:"accuracy_trend"`
	ResponseTimeTrend []float64      `json:"response_time_trend"`
}

// Aggregator keeps rolling pipeline statistics in memory. All methods are
// safe for concurrent use.
type Aggregator struct {
	mu sync.Mutex

	windowSize    int
	totalRequests int
	successCount  int
	errorCount    int

	confidences   []float64
	responseTimes []float64

	objectCounts map[string]int
	objectOrder  []string
	colorCounts  map[string]int
	colorOrder   []string
}

func NewAggregator(windowSize int) *Aggregator {
	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}
	return &Aggregator{
		windowSize:   windowSize,
		objectCounts: make(map[string]int),
		colorCounts:  make(map[string]int),
	}
}

// Record folds one pipeline run into the rolling statistics. Failed
// runs count toward totals and latency but not toward confidence or
// concept popularity.
func (a *Aggregator) Record(bag concept.Bag, confidence float64, responseTimeMs float64, success bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.totalRequests++
	a.responseTimes = appendBounded(a.responseTimes, responseTimeMs, a.windowSize)

	if !success {
		a.errorCount++
		return
	}

	a.successCount++
	a.confidences = appendBounded(a.confidences, confidence, a.windowSize)

	for _, obj := range bag.Objects {
		if _, seen := a.objectCounts[obj]; !seen {
			a.objectOrder = append(a.objectOrder, obj)
		}
		a.objectCounts[obj]++
	}
	for _, color := range bag.Colors {
		if _, seen := a.colorCounts[color]; !seen {
			a.colorOrder = append(a.colorOrder, color)
		}
		a.colorCounts[color]++
	}
}

// Snapshot returns the current report. Popularity lists are ranked by
// count; ties keep first-seen order.
func (a *Aggregator) Snapshot() Report {
	a.mu.Lock()
	defer a.mu.Unlock()

	report := Report{
		TotalRequests:     a.totalRequests,
		ErrorCount:        a.errorCount,
		AvgConfidence:     mean(a.confidences),
		AvgResponseTimeMs: mean(a.responseTimes),
		PopularObjects:    rank(a.objectCounts, a.objectOrder, topN),
		PopularColors:     rank(a.colorCounts, a.colorOrder, topN),
		AccuracyTrend:     tail(a.confidences, trendWindow),
		ResponseTimeTrend: tail(a.responseTimes, trendWindow),
	}
	if a.totalRequests > 0 {
		report.SuccessRate = float64(a.successCount) / float64(a.totalRequests)
	}
	return report
}

func appendBounded(window []float64, v float64, max int) []float64 {
	window = append(window, v)
	if len(window) > max {
		window = window[len(window)-max:]
	}
	return window
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func tail(values []float64, n int) []float64 {
	if len(values) > n {
		values = values[len(values)-n:]
	}
	out := make([]float64, len(values))
	copy(out, values)
	return out
}

func rank(counts map[string]int, order []string, limit int) []ConceptCount {
	ranked := make([]ConceptCount, 0, len(order))
	for _, name := range order {
		ranked = append(ranked, ConceptCount{Name: name, Count: counts[name]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
