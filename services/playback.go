package services

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"housing-dashboard/models"
	"housing-dashboard/utils"
)

// Timer is a pending scheduled call.
type Timer interface {
	Stop() bool
}

// Scheduler arms one-shot timers. The production implementation wraps
// time.AfterFunc; tests substitute a manual one.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type clockScheduler struct{}

func (clockScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// ClockScheduler returns a Scheduler backed by the wall clock.
func ClockScheduler() Scheduler { return clockScheduler{} }

// Playback cycles through a sorted list of years on a fixed interval.
// It is either paused (initial) or running. Each tick hands the year under
// the cursor to onTick, then advances the cursor, wrapping after the last
// year. The next tick is armed only once the current one has returned.
type Playback struct {
	years     []int
	interval  time.Duration
	scheduler Scheduler
	onTick    func(year int)
	logger    *utils.Logger

	// running is written under mu and may be read without it, so that
	// onTick can observe it while a tick holds the lock.
	running atomic.Bool

	mu     sync.Mutex
	cursor int
	gen    uint64
	timer  Timer
}

// NewPlayback creates a paused Playback over years. years must already be
// sorted ascending; the slice is not copied and must not be modified.
func NewPlayback(years []int, interval time.Duration, scheduler Scheduler, onTick func(year int), logger *utils.Logger) *Playback {
	if scheduler == nil {
		scheduler = ClockScheduler()
	}
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	return &Playback{
		years:     years,
		interval:  interval,
		scheduler: scheduler,
		onTick:    onTick,
		logger:    logger,
	}
}

// Start switches to running, performs one tick immediately and arms the
// timer for the next. It fails with ErrInvalidTransition when already
// running and with ErrEmptyDomain when there are no years, in which case
// playback stays paused.
func (p *Playback) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.startLocked()
}

// Pause switches to paused and cancels the pending timer. Once Pause
// returns no further tick runs, even if the timer had already fired and
// its callback is waiting for the lock.
func (p *Playback) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pauseLocked()
}

// Toggle pauses a running playback and starts a paused one.
func (p *Playback) Toggle() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running.Load() {
		return p.pauseLocked()
	}
	return p.startLocked()
}

// Running reports whether playback is running.
func (p *Playback) Running() bool {
	return p.running.Load()
}

// State returns a copy of the playback state.
func (p *Playback) State() models.PlaybackState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return models.PlaybackState{Running: p.running.Load(), Cursor: p.cursor}
}

func (p *Playback) fire(gen uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running.Load() || gen != p.gen {
		return
	}
	p.tickLocked()
}

func (p *Playback) startLocked() error {
	if p.running.Load() {
		return fmt.Errorf("start: %w", ErrInvalidTransition)
	}
	if len(p.years) == 0 {
		return fmt.Errorf("start: %w", ErrEmptyDomain)
	}

	p.running.Store(true)
	p.gen++
	p.logger.Debug("[playback] Started at year %d, interval %v", p.years[p.cursor], p.interval)
	p.tickLocked()
	return nil
}

func (p *Playback) pauseLocked() error {
	if !p.running.Load() {
		return fmt.Errorf("pause: %w", ErrInvalidTransition)
	}

	p.running.Store(false)
	p.gen++
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.logger.Debug("[playback] Paused, next year index %d", p.cursor)
	return nil
}

func (p *Playback) tickLocked() {
	year := p.years[p.cursor]
	if p.onTick != nil {
		p.onTick(year)
	}
	utils.PlaybackTicksTotal.Inc()
	p.cursor = (p.cursor + 1) % len(p.years)

	gen := p.gen
	p.timer = p.scheduler.AfterFunc(p.interval, func() { p.fire(gen) })
}
