package quality

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "screenshare"

// Collector exports the metrics of every monitor it is attached to. Series
// are labelled by monitor name and removed when the monitor stops.
type Collector struct {
	bandwidth   *prometheus.GaugeVec
	rtt         *prometheus.GaugeVec
	loss        *prometheus.GaugeVec
	labels      *prometheus.CounterVec
	statsErrors *prometheus.CounterVec
}

// NewCollector creates a Collector and registers it on reg. A nil reg
// leaves the collector unregistered.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		bandwidth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "quality",
			Name:      "bandwidth_kibibytes",
			Help:      "Video bytes received plus sent at the last sample, in KiB",
		}, []string{"monitor"}),
		rtt: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "quality",
			Name:      "round_trip_time_milliseconds",
			Help:      "Remote reported video round trip time at the last sample",
		}, []string{"monitor"}),
		loss: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "quality",
			Name:      "packet_loss_rate",
			Help:      "Smoothed video packet loss rate at the last sample",
		}, []string{"monitor"}),
		labels: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "quality",
			Name:      "labels_total",
			Help:      "Number of samples classified per quality label",
		}, []string{"monitor", "label"}),
		statsErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "quality",
			Name:      "stats_errors_total",
			Help:      "Number of failed statistics requests",
		}, []string{"monitor"}),
	}

	if reg != nil {
		for _, collector := range []prometheus.Collector{c.bandwidth, c.rtt, c.loss, c.labels, c.statsErrors} {
			if err := reg.Register(collector); err != nil {
				return nil, err
			}
		}
	}
	return c, nil
}

func (c *Collector) observe(monitor string, m Metrics, l Label) {
	c.bandwidth.WithLabelValues(monitor).Set(m.Bandwidth)
	c.rtt.WithLabelValues(monitor).Set(m.RTT)
	c.loss.WithLabelValues(monitor).Set(m.PacketLossRate)
	c.labels.WithLabelValues(monitor, string(l)).Inc()
}

func (c *Collector) statsError(monitor string) {
	c.statsErrors.WithLabelValues(monitor).Inc()
}

func (c *Collector) forget(monitor string) {
	c.bandwidth.DeleteLabelValues(monitor)
	c.rtt.DeleteLabelValues(monitor)
	c.loss.DeleteLabelValues(monitor)
	c.statsErrors.DeleteLabelValues(monitor)
	for _, l := range Labels() {
		c.labels.DeleteLabelValues(monitor, string(l))
	}
}
