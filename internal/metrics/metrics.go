// Package metrics records decoder activity as Prometheus metrics.
//
// A Collector owns a private registry so that several collectors (one per
// test, say) never clash on registration. It satisfies both the byte-source
// observer and the fits.Observer interface.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "fits"

// Collector holds the decoder metrics.
type Collector struct {
	registry *prometheus.Registry

	bytesLoaded   *prometheus.CounterVec
	filesLoaded   *prometheus.CounterVec
	unitsScanned  prometheus.Counter
	layers        *prometheus.CounterVec
	layerDuration prometheus.Histogram
}

// NewCollector creates and registers the metrics.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		bytesLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_loaded_total",
			Help:      "Bytes loaded from byte sources, after decompression.",
		}, []string{"scheme"}),
		filesLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_loaded_total",
			Help:      "Files loaded from byte sources.",
		}, []string{"scheme"}),
		unitsScanned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "units_scanned_total",
			Help:      "Header/data units discovered while walking files.",
		}),
		layers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "layer_statistics_total",
			Help:      "Layer statistics computations by result.",
		}, []string{"result"}),
		layerDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "layer_statistics_seconds",
			Help:      "Time spent decoding and summarising one layer.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
	}

	c.registry.MustRegister(c.bytesLoaded, c.filesLoaded, c.unitsScanned, c.layers, c.layerDuration)
	return c
}

// BytesLoaded records one completed load.
func (c *Collector) BytesLoaded(scheme string, n int) {
	c.filesLoaded.WithLabelValues(scheme).Inc()
	c.bytesLoaded.WithLabelValues(scheme).Add(float64(n))
}

// UnitsScanned records units found in one file.
func (c *Collector) UnitsScanned(n int) {
	c.unitsScanned.Add(float64(n))
}

// LayerComputed records one statistics computation.
func (c *Collector) LayerComputed(_ int, d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.layers.WithLabelValues(result).Inc()
	c.layerDuration.Observe(d.Seconds())
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// WriteTextfile writes the metrics in text exposition format to path,
// suitable for the node_exporter textfile collector.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}
