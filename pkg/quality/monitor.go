package quality

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pion/screenshare/internal/logging"
	"github.com/pion/webrtc/v4"
)

// DefaultInterval is how often a monitor samples when no interval is given.
const DefaultInterval = 3 * time.Second

// ErrInvalidState is returned when starting a monitor that is not idle.
var ErrInvalidState = errors.New("quality: invalid monitor state")

var logger = logging.NewLogger("quality")

// State is the lifecycle state of a Monitor.
type State int

const (
	StateIdle State = iota
	StateMonitoring
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateMonitoring:
		return "monitoring"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Observer receives the label of every successful sample. Calls are never
// concurrent. An observer must not call Stop on its own monitor synchronously.
type Observer func(Label)

// Option configures a Monitor.
type Option func(*Monitor)

// WithInterval sets the sampling interval. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(m *Monitor) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithScheduler replaces the wall clock ticker.
func WithScheduler(s Scheduler) Option {
	return func(m *Monitor) {
		m.scheduler = s
	}
}

// WithMetrics exports every sample to c.
func WithMetrics(c *Collector) Option {
	return func(m *Monitor) {
		m.collector = c
	}
}

// WithName names the monitor in logs and metrics. Defaults to a random UUID.
func WithName(name string) Option {
	return func(m *Monitor) {
		m.name = name
	}
}

// Monitor samples one StatsSource on a fixed interval and reports a Label
// per sample. Samples are not serialized: when a request outlasts the
// interval the next one starts anyway, so labels may arrive out of order.
// A stopped Monitor cannot be restarted.
type Monitor struct {
	name      string
	interval  time.Duration
	scheduler Scheduler
	collector *Collector

	// deliverMu is held across the state check and the observer call of a
	// sample, and by Stop, so no label is delivered once Stop returns.
	deliverMu sync.Mutex

	mu       sync.Mutex
	state    State
	source   StatsSource
	observer Observer
	ticker   Ticker
	done     chan struct{}
}

// NewMonitor creates an idle Monitor for source.
func NewMonitor(source StatsSource, opts ...Option) *Monitor {
	m := &Monitor{
		interval:  DefaultInterval,
		scheduler: wallClock{},
		source:    source,
	}
	for _, o := range opts {
		o(m)
	}
	if m.name == "" {
		m.name = uuid.NewString()
	}
	return m
}

// Watch starts monitoring pc right away.
func Watch(pc *webrtc.PeerConnection, observer Observer, opts ...Option) (*Monitor, error) {
	m := NewMonitor(FromPeerConnection(pc), opts...)
	if err := m.Start(observer); err != nil {
		return nil, err
	}
	return m, nil
}

// Name returns the name of the monitor.
func (m *Monitor) Name() string {
	return m.name
}

// State returns the current lifecycle state.
func (m *Monitor) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Start begins sampling. observer may be nil, in which case samples only
// reach the logs and the collector.
func (m *Monitor) Start(observer Observer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateIdle {
		return fmt.Errorf("%w: cannot start a %s monitor", ErrInvalidState, m.state)
	}

	m.observer = observer
	m.ticker = m.scheduler.NewTicker(m.interval)
	m.done = make(chan struct{})
	m.state = StateMonitoring

	go m.run(m.ticker, m.done)
	logger.Debugf("monitor %s: sampling every %v", m.name, m.interval)
	return nil
}

// Stop cancels future samples and releases the source. A sample already in
// flight is discarded when it completes, and Stop waits for a label being
// delivered. Stop is a no-op unless the monitor is running.
func (m *Monitor) Stop() {
	m.deliverMu.Lock()
	defer m.deliverMu.Unlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateMonitoring {
		return
	}

	m.ticker.Stop()
	close(m.done)
	m.ticker = nil
	m.source = nil
	m.observer = nil
	m.state = StateStopped

	if m.collector != nil {
		m.collector.forget(m.name)
	}
	logger.Debugf("monitor %s: stopped", m.name)
}

func (m *Monitor) run(t Ticker, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case <-t.C():
			go m.sample()
		}
	}
}

func (m *Monitor) sample() {
	m.mu.Lock()
	source := m.source
	m.mu.Unlock()
	if source == nil {
		return
	}

	report, err := source.Stats(context.Background())
	if err != nil {
		logger.Warnf("monitor %s: failed to get stats: %v", m.name, err)
		m.mu.Lock()
		if m.state == StateMonitoring && m.collector != nil {
			m.collector.statsError(m.name)
		}
		m.mu.Unlock()
		return
	}

	metrics := Reduce(report).Metrics()
	label := Classify(metrics)

	m.deliverMu.Lock()
	defer m.deliverMu.Unlock()

	m.mu.Lock()
	if m.state != StateMonitoring {
		m.mu.Unlock()
		logger.Tracef("monitor %s: dropping sample taken before stop", m.name)
		return
	}
	observer := m.observer
	if m.collector != nil {
		m.collector.observe(m.name, metrics, label)
	}
	m.mu.Unlock()

	logger.Tracef("monitor %s: %s (bandwidth=%.1fKiB rtt=%.1fms loss=%.4f)",
		m.name, label, metrics.Bandwidth, metrics.RTT, metrics.PacketLossRate)
	if observer != nil {
		observer(label)
	}
}
