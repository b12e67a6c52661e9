package ringbuffer

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector exports the size and counters of a queue to Prometheus.
// Values are read at scrape time, so the queue itself never calls into
// Prometheus.
type Collector struct {
	src Observable

	size        *prometheus.Desc
	capacity    *prometheus.Desc
	utilization *prometheus.Desc
	pushed      *prometheus.Desc
	popped      *prometheus.Desc
	pushFull    *prometheus.Desc
	popEmpty    *prometheus.Desc
	moved       *prometheus.Desc
}

// NewCollector creates a collector for src. component is attached to every
// metric as a constant label, so several queues can share a registry.
func NewCollector(component string, src Observable) *Collector {
	labels := prometheus.Labels{"component": component}
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName("ringbuffer", "queue", name), help, nil, labels)
	}

	return &Collector{
		src:         src,
		size:        desc("size", "Current number of elements in the queue"),
		capacity:    desc("capacity", "Fixed queue capacity"),
		utilization: desc("utilization", "Queue utilization (0.0 to 1.0)"),
		pushed:      desc("pushed_total", "Total number of elements stored"),
		popped:      desc("popped_total", "Total number of elements removed"),
		pushFull:    desc("push_full_total", "Total number of push calls that rejected elements because the queue was full"),
		popEmpty:    desc("pop_empty_total", "Total number of pop calls on an empty queue"),
		moved:       desc("moved_total", "Total number of elements moved to another queue"),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.size
	ch <- c.capacity
	ch <- c.utilization
	ch <- c.pushed
	ch <- c.popped
	ch <- c.pushFull
	ch <- c.popEmpty
	ch <- c.moved
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	size := float64(c.src.Size())
	capacity := float64(c.src.Capacity())
	st := c.src.Stats()

	var utilization float64
	if capacity > 0 {
		utilization = size / capacity
	}

	ch <- prometheus.MustNewConstMetric(c.size, prometheus.GaugeValue, size)
	ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, capacity)
	ch <- prometheus.MustNewConstMetric(c.utilization, prometheus.GaugeValue, utilization)
	ch <- prometheus.MustNewConstMetric(c.pushed, prometheus.CounterValue, float64(st.Pushed))
	ch <- prometheus.MustNewConstMetric(c.popped, prometheus.CounterValue, float64(st.Popped))
	ch <- prometheus.MustNewConstMetric(c.pushFull, prometheus.CounterValue, float64(st.PushFailedQIsFull))
	ch <- prometheus.MustNewConstMetric(c.popEmpty, prometheus.CounterValue, float64(st.PopFailedQIsEmpty))
	ch <- prometheus.MustNewConstMetric(c.moved, prometheus.CounterValue, float64(st.Moved))
}
