package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	generationStartedTotal   atomic.Uint64
	generationCompletedTotal atomic.Uint64
	generationFailedTotal    atomic.Uint64
	experimentsCreatedTotal  atomic.Uint64
	experimentsDecidedTotal  atomic.Uint64
	deliveriesSentTotal      atomic.Uint64
	deliveriesFailedTotal    atomic.Uint64
	generationJobsReceived   atomic.Uint64
	generationJobsCompleted  atomic.Uint64
	generationJobsFailed     atomic.Uint64
	generationJobsDropped    atomic.Uint64

	generationDuration = newHistogram([]float64{250, 500, 1000, 2000, 5000, 10000, 30000, 60000, 120000})
)

// IncGenerationStarted increments the started counter.
func IncGenerationStarted() {
	generationStartedTotal.Add(1)
}

// IncGenerationCompleted increments the completed counter.
func IncGenerationCompleted() {
	generationCompletedTotal.Add(1)
}

// IncGenerationFailed increments the failed counter.
func IncGenerationFailed() {
	generationFailedTotal.Add(1)
}

// IncExperimentsCreated increments the experiments-created counter.
func IncExperimentsCreated() {
	experimentsCreatedTotal.Add(1)
}

// IncExperimentsDecided increments the experiments-with-winner counter.
func IncExperimentsDecided() {
	experimentsDecidedTotal.Add(1)
}

// IncDeliverySent increments the deliveries-sent counter.
func IncDeliverySent() {
	deliveriesSentTotal.Add(1)
}

// IncDeliveryFailed increments the deliveries-failed counter.
func IncDeliveryFailed() {
	deliveriesFailedTotal.Add(1)
}

// IncGenerationJobsReceived increments the queue-jobs-received counter.
func IncGenerationJobsReceived() {
	generationJobsReceived.Add(1)
}

// IncGenerationJobsCompleted increments the queue-jobs-completed counter.
func IncGenerationJobsCompleted() {
	generationJobsCompleted.Add(1)
}

// IncGenerationJobsFailed increments the queue-jobs-failed counter.
func IncGenerationJobsFailed() {
	generationJobsFailed.Add(1)
}

// IncGenerationJobsDropped increments the counter of queue jobs deleted as
// unrecoverable (empty, undecodable, or missing a brief id).
func IncGenerationJobsDropped() {
	generationJobsDropped.Add(1)
}

// ObserveGenerationDurationMs records a generation duration in milliseconds.
func ObserveGenerationDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	generationDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "generation_started_total", "Total generations started", generationStartedTotal.Load())
	writeCounter(&buf, "generation_completed_total", "Total generations completed", generationCompletedTotal.Load())
	writeCounter(&buf, "generation_failed_total", "Total generations failed", generationFailedTotal.Load())
	writeCounter(&buf, "experiments_created_total", "Total experiments created", experimentsCreatedTotal.Load())
	writeCounter(&buf, "experiments_decided_total", "Total experiments with a winner selected", experimentsDecidedTotal.Load())
	writeCounter(&buf, "deliveries_sent_total", "Total content deliveries sent", deliveriesSentTotal.Load())
	writeCounter(&buf, "deliveries_failed_total", "Total content deliveries failed", deliveriesFailedTotal.Load())
	writeCounter(&buf, "generation_jobs_received_total", "Total generation jobs received from the queue", generationJobsReceived.Load())
	writeCounter(&buf, "generation_jobs_completed_total", "Total generation jobs completed", generationJobsCompleted.Load())
	writeCounter(&buf, "generation_jobs_failed_total", "Total generation jobs failed", generationJobsFailed.Load())
	writeCounter(&buf, "generation_jobs_dropped_total", "Total generation jobs deleted as unrecoverable", generationJobsDropped.Load())
	writeHistogram(&buf, "generation_duration_ms", "Generation duration in milliseconds", generationDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
