package quality

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pion/webrtc/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type manualTicker struct {
	c       chan time.Time
	mu      sync.Mutex
	stopped bool
}

func (t *manualTicker) C() <-chan time.Time {
	return t.c
}

func (t *manualTicker) Stop() {
	t.mu.Lock()
	t.stopped = true
	t.mu.Unlock()
}

func (t *manualTicker) isStopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

// fire delivers one tick, reporting false if nobody received it.
func (t *manualTicker) fire() bool {
	select {
	case t.c <- time.Now():
		return true
	case <-time.After(100 * time.Millisecond):
		return false
	}
}

type manualScheduler struct {
	interval time.Duration
	ticker   *manualTicker
}

func (s *manualScheduler) NewTicker(d time.Duration) Ticker {
	s.interval = d
	s.ticker = &manualTicker{c: make(chan time.Time)}
	return s.ticker
}

func excellentReport() webrtc.StatsReport {
	return webrtc.StatsReport{
		"in":  webrtc.InboundRTPStreamStats{Kind: "video", BytesReceived: 1 << 20},
		"out": webrtc.OutboundRTPStreamStats{Kind: "video", BytesSent: 1 << 20},
		"rr":  webrtc.RemoteInboundRTPStreamStats{Kind: "video", RoundTripTime: 0.02},
	}
}

func staticSource(report webrtc.StatsReport) StatsSource {
	return StatsSourceFunc(func(context.Context) (webrtc.StatsReport, error) {
		return report, nil
	})
}

func collect(labels chan<- Label) Observer {
	return func(l Label) {
		select {
		case labels <- l:
		default:
		}
	}
}

func receive(t *testing.T, labels <-chan Label) Label {
	t.Helper()
	select {
	case l := <-labels:
		return l
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a label")
		return ""
	}
}

func assertNoLabel(t *testing.T, labels <-chan Label) {
	t.Helper()
	select {
	case l := <-labels:
		t.Fatalf("unexpected label %s", l)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMonitorDefaults(t *testing.T) {
	sched := &manualScheduler{}
	m := NewMonitor(staticSource(excellentReport()), WithScheduler(sched))
	assert.Equal(t, StateIdle, m.State())
	assert.NotEmpty(t, m.Name())

	require.NoError(t, m.Start(nil))
	defer m.Stop()
	assert.Equal(t, DefaultInterval, sched.interval)
	assert.Equal(t, 3*time.Second, sched.interval)
}

func TestMonitorTicks(t *testing.T) {
	sched := &manualScheduler{}
	labels := make(chan Label, 8)
	m := NewMonitor(staticSource(excellentReport()),
		WithScheduler(sched), WithInterval(time.Minute))
	require.NoError(t, m.Start(collect(labels)))
	assert.Equal(t, StateMonitoring, m.State())
	assert.Equal(t, time.Minute, sched.interval)

	assertNoLabel(t, labels)
	for i := 0; i < 3; i++ {
		require.True(t, sched.ticker.fire())
		assert.Equal(t, Excellent, receive(t, labels))
	}
	assertNoLabel(t, labels)

	m.Stop()
	assert.True(t, sched.ticker.isStopped())
	assert.Equal(t, StateStopped, m.State())
}

func TestMonitorStatsErrors(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)

	sched := &manualScheduler{}
	labels := make(chan Label, 8)
	calls := make(chan struct{}, 8)
	source := StatsSourceFunc(func(context.Context) (webrtc.StatsReport, error) {
		defer func() { calls <- struct{}{} }()
		return nil, errors.New("boom")
	})
	m := NewMonitor(source, WithScheduler(sched), WithMetrics(c), WithName("errors"))
	require.NoError(t, m.Start(collect(labels)))
	defer m.Stop()

	require.True(t, sched.ticker.fire())
	require.True(t, sched.ticker.fire())
	<-calls
	<-calls
	assertNoLabel(t, labels)

	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(c.statsErrors.WithLabelValues("errors")) == 2
	}, time.Second, 5*time.Millisecond)
}

func TestMonitorDiscardAfterStop(t *testing.T) {
	sched := &manualScheduler{}
	entered := make(chan struct{})
	release := make(chan struct{})
	source := StatsSourceFunc(func(context.Context) (webrtc.StatsReport, error) {
		close(entered)
		<-release
		return excellentReport(), nil
	})

	labels := make(chan Label, 1)
	m := NewMonitor(source, WithScheduler(sched))
	require.NoError(t, m.Start(collect(labels)))

	require.True(t, sched.ticker.fire())
	<-entered
	m.Stop()
	close(release)

	assertNoLabel(t, labels)
	assert.Equal(t, StateStopped, m.State())
}

func TestMonitorStopWaitsForDelivery(t *testing.T) {
	sched := &manualScheduler{}
	entered := make(chan struct{})
	release := make(chan struct{})
	m := NewMonitor(staticSource(excellentReport()), WithScheduler(sched))
	require.NoError(t, m.Start(func(Label) {
		close(entered)
		<-release
	}))

	require.True(t, sched.ticker.fire())
	<-entered

	stopped := make(chan struct{})
	go func() {
		m.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("Stop returned while a label was being delivered")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Timeout")
	}
	assert.Equal(t, StateStopped, m.State())
}

func TestMonitorNoLabelAfterStop(t *testing.T) {
	late := make(chan Label, 1)

	for i := 0; i < 200; i++ {
		sched := &manualScheduler{}
		var stopped atomic.Bool
		m := NewMonitor(staticSource(excellentReport()), WithScheduler(sched))
		require.NoError(t, m.Start(func(l Label) {
			if stopped.Load() {
				select {
				case late <- l:
				default:
				}
			}
		}))

		require.True(t, sched.ticker.fire())
		m.Stop()
		stopped.Store(true)
	}

	assertNoLabel(t, late)
}

func TestMonitorOverlappingSamples(t *testing.T) {
	sched := &manualScheduler{}
	var mu sync.Mutex
	calls := 0
	release := make(chan struct{})
	source := StatsSourceFunc(func(context.Context) (webrtc.StatsReport, error) {
		mu.Lock()
		calls++
		first := calls == 1
		mu.Unlock()
		if first {
			<-release
		}
		return excellentReport(), nil
	})

	labels := make(chan Label, 2)
	m := NewMonitor(source, WithScheduler(sched))
	require.NoError(t, m.Start(collect(labels)))
	defer m.Stop()

	// The second tick is sampled while the first is still pending.
	require.True(t, sched.ticker.fire())
	require.True(t, sched.ticker.fire())
	assert.Equal(t, Excellent, receive(t, labels))

	close(release)
	assert.Equal(t, Excellent, receive(t, labels))
}

func TestMonitorLifecycle(t *testing.T) {
	m := NewMonitor(staticSource(excellentReport()), WithScheduler(&manualScheduler{}))

	// Stopping an idle monitor does nothing.
	m.Stop()
	assert.Equal(t, StateIdle, m.State())

	require.NoError(t, m.Start(nil))
	assert.ErrorIs(t, m.Start(nil), ErrInvalidState)

	m.Stop()
	m.Stop()
	assert.Equal(t, StateStopped, m.State())
	assert.ErrorIs(t, m.Start(nil), ErrInvalidState)
}

func TestMonitorCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)

	sched := &manualScheduler{}
	labels := make(chan Label, 1)
	m := NewMonitor(staticSource(excellentReport()),
		WithScheduler(sched), WithMetrics(c), WithName("pc0"))
	require.NoError(t, m.Start(collect(labels)))

	require.True(t, sched.ticker.fire())
	receive(t, labels)

	assert.Equal(t, 2048.0, testutil.ToFloat64(c.bandwidth.WithLabelValues("pc0")))
	assert.InDelta(t, 20.0, testutil.ToFloat64(c.rtt.WithLabelValues("pc0")), 1e-9)
	assert.Equal(t, 0.0, testutil.ToFloat64(c.loss.WithLabelValues("pc0")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.labels.WithLabelValues("pc0", "excellent")))

	m.Stop()
	assert.Equal(t, 0, testutil.CollectAndCount(c.bandwidth))
	assert.Equal(t, 0, testutil.CollectAndCount(c.labels))
}

func TestNewCollectorDuplicate(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewCollector(reg)
	require.NoError(t, err)

	_, err = NewCollector(reg)
	assert.Error(t, err)

	c, err := NewCollector(nil)
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestMonitorWallClock(t *testing.T) {
	labels := make(chan Label, 16)
	m := NewMonitor(staticSource(webrtc.StatsReport{}), WithInterval(10*time.Millisecond))
	require.NoError(t, m.Start(collect(labels)))
	defer m.Stop()

	assert.Equal(t, Poor, receive(t, labels))
	assert.Equal(t, Poor, receive(t, labels))
}
