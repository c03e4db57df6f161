// Package metrics exports decode tallies as Prometheus metrics.
package metrics

import (
	"errors"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"firestige.xyz/framedump/internal/core"
)

// Collector holds the metrics of one run. It is safe for concurrent use.
type Collector struct {
	registry *prometheus.Registry

	mu       sync.Mutex
	observed map[string]struct{}

	// FramesTotal counts decoded frames by source and tally category
	FramesTotal *prometheus.CounterVec

	// CaptureBytes is the size of each capture file
	CaptureBytes *prometheus.GaugeVec

	// DecodeIncompleteTotal counts captures whose walk stopped early
	DecodeIncompleteTotal *prometheus.CounterVec
}

// NewCollector registers the framedump metrics on a private registry.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		observed: make(map[string]struct{}),
		FramesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "framedump_frames_total",
				Help: "Total number of decoded frames by category",
			},
			[]string{"source", "category"},
		),
		CaptureBytes: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "framedump_capture_bytes",
				Help: "Size of the capture file in bytes",
			},
			[]string{"source"},
		),
		DecodeIncompleteTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "framedump_decode_incomplete_total",
				Help: "Number of captures whose decoding stopped before the end of the buffer",
			},
			[]string{"source", "reason"},
		),
	}
}

// Observe records the outcome of decoding one capture. A source already
// observed is skipped, so a path named twice on the command line is counted
// once.
func (c *Collector) Observe(source string, size int, res *core.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.observed[source]; ok {
		return
	}
	c.observed[source] = struct{}{}

	c.CaptureBytes.WithLabelValues(source).Set(float64(size))
	for _, cat := range core.Categories() {
		c.FramesTotal.WithLabelValues(source, cat.String()).Add(float64(res.Tally.Get(cat)))
	}
	if !res.Complete {
		c.DecodeIncompleteTotal.WithLabelValues(source, Reason(res.Err)).Inc()
	}
}

// Reason maps a decode error to a low-cardinality label value.
func Reason(err error) string {
	switch {
	case errors.Is(err, core.ErrTruncated):
		return "truncated"
	case errors.Is(err, core.ErrMalformedLength):
		return "malformed_length"
	default:
		return "other"
	}
}

// Gatherer exposes the registry, mainly for tests.
func (c *Collector) Gatherer() prometheus.Gatherer {
	return c.registry
}

// WriteTextfile writes every metric in the node exporter textfile format.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile %s: %w", path, err)
	}
	return nil
}
