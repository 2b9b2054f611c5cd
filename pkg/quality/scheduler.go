package quality

import "time"

// Ticker delivers ticks until stopped.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Scheduler creates tickers. The default uses the wall clock; tests can
// provide one they fire by hand.
type Scheduler interface {
	NewTicker(d time.Duration) Ticker
}

type wallClock struct{}

func (wallClock) NewTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

type timeTicker struct {
	t *time.Ticker
}

func (t timeTicker) C() <-chan time.Time {
	return t.t.C
}

func (t timeTicker) Stop() {
	t.t.Stop()
}
