package session

import (
	"math/rand/v2"
	"sync"
	"time"

	ws "github.com/osintlab/deepscope/internal/websocket"
)

// Notifier pushes controller events toward the UI. The websocket hub
// implements it; tests swap in a recorder.
type Notifier interface {
	Publish(eventType string, data any)
}

// Progress is the payload of every progress event.
type Progress struct {
	Value float64 `json:"value"`
}

// Estimator animates a purely cosmetic progress value while the primary call
// is outstanding. The value carries no correctness meaning: it climbs by
// random increments toward a ceiling below 100, jumps to 100 on settlement,
// holds briefly so completion is perceptible, then resets to 0. It never
// decreases in between.
type Estimator struct {
	tick     time.Duration
	ceiling  float64
	hold     time.Duration
	notifier Notifier

	mu    sync.Mutex
	value float64
	gen   int           // invalidates stale resets and tickers
	stop  chan struct{} // non-nil exactly while ticking
}

func NewEstimator(tick time.Duration, ceiling float64, hold time.Duration, notifier Notifier) *Estimator {
	return &Estimator{
		tick:     tick,
		ceiling:  ceiling,
		hold:     hold,
		notifier: notifier,
	}
}

// Start resets the value and begins ticking. A previous run, including a
// pending post-hold reset, is abandoned.
func (e *Estimator) Start() {
	e.mu.Lock()
	if e.stop != nil {
		close(e.stop)
	}
	e.gen++
	e.value = 0
	stop := make(chan struct{})
	e.stop = stop
	e.mu.Unlock()

	e.publish(0)
	go e.run(stop)
}

// Finish stops ticking, forces the value to 100 and schedules the reset to 0
// after the hold period. Calling it twice is harmless.
func (e *Estimator) Finish() {
	e.mu.Lock()
	if e.stop != nil {
		close(e.stop)
		e.stop = nil
	}
	e.value = 100
	gen := e.gen
	e.mu.Unlock()

	e.publish(100)

	time.AfterFunc(e.hold, func() {
		e.mu.Lock()
		if e.gen != gen {
			// A newer submission took over during the hold.
			e.mu.Unlock()
			return
		}
		e.value = 0
		e.mu.Unlock()
		e.publish(0)
	})
}

// Value returns the current progress value.
func (e *Estimator) Value() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.value
}

func (e *Estimator) run(stop chan struct{}) {
	ticker := time.NewTicker(e.tick)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			e.advance()
		}
	}
}

// advance eats a random slice of the remaining gap, so the value approaches
// the ceiling asymptotically without ever reaching it.
func (e *Estimator) advance() {
	e.mu.Lock()
	if gap := e.ceiling - e.value; gap > 0 {
		e.value += gap * (0.05 + 0.20*rand.Float64())
	}
	value := e.value
	e.mu.Unlock()

	e.publish(value)
}

func (e *Estimator) publish(value float64) {
	if e.notifier != nil {
		e.notifier.Publish(ws.EventProgress, Progress{Value: value})
	}
}
