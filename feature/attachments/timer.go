package attachments

import (
	"sync"
	"sync/atomic"
	"time"

	"artifact-host/core/mre"

	"go.uber.org/zap"
)

// DefaultInterval is the resync period used when none is configured.
const DefaultInterval = 5 * time.Second

// TimerStats reports resync timer activity.
type TimerStats struct {
	Interval     string `json:"interval"`
	Sweeps       uint64 `json:"sweeps"`
	Coalesced    uint64 `json:"coalesced"`
	PendingJoins int    `json:"pending_joins"`
}

// ResyncTimer invokes a resync callback on a fixed interval.
// A tick that arrives while the previous callback is still running is dropped.
type ResyncTimer struct {
	interval time.Duration
	callback func()
	logger   *zap.Logger

	running   atomic.Bool
	sweeps    atomic.Uint64
	coalesced atomic.Uint64

	mu      sync.Mutex
	pending map[mre.UserID]struct{}

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewResyncTimer creates the timer and starts ticking immediately.
// An interval <= 0 creates a manual timer driven only by Tick.
func NewResyncTimer(interval time.Duration, callback func(), logger *zap.Logger) *ResyncTimer {
	t := &ResyncTimer{
		interval: interval,
		callback: callback,
		logger:   logger,
		pending:  make(map[mre.UserID]struct{}),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	if interval > 0 {
		go t.run()
	} else {
		close(t.done)
	}
	return t
}

func (t *ResyncTimer) run() {
	defer close(t.done)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-t.stop:
			return
		case <-ticker.C:
			t.Tick()
		}
	}
}

// Tick runs the callback synchronously. It returns false when a sweep was
// already in progress and this tick was coalesced into it.
func (t *ResyncTimer) Tick() bool {
	if !t.running.CompareAndSwap(false, true) {
		t.coalesced.Add(1)
		return false
	}
	defer t.running.Store(false)

	t.mu.Lock()
	joins := len(t.pending)
	t.pending = make(map[mre.UserID]struct{})
	t.mu.Unlock()

	t.callback()
	n := t.sweeps.Add(1)
	if joins > 0 {
		t.logger.Debug("Resync sweep after joins", zap.Int("joins", joins), zap.Uint64("sweep", n))
	}
	return true
}

// UserJoined tells the timer the session topology changed. Every tick already
// sweeps all users, so this only records the join until the next sweep.
func (t *ResyncTimer) UserJoined(user mre.UserID) {
	t.mu.Lock()
	t.pending[user] = struct{}{}
	t.mu.Unlock()
}

// Stats returns a snapshot of timer activity.
func (t *ResyncTimer) Stats() TimerStats {
	t.mu.Lock()
	pending := len(t.pending)
	t.mu.Unlock()
	return TimerStats{
		Interval:     t.interval.String(),
		Sweeps:       t.sweeps.Load(),
		Coalesced:    t.coalesced.Load(),
		PendingJoins: pending,
	}
}

// Stop halts the ticker and waits for the loop to exit. It is safe to call twice.
func (t *ResyncTimer) Stop() {
	t.stopOnce.Do(func() { close(t.stop) })
	<-t.done
}
