package services

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func newTestPlayback(years []int) (*Playback, *manualScheduler, *[]int) {
	sched := &manualScheduler{}
	visited := &[]int{}
	p := NewPlayback(years, 1500*time.Millisecond, sched, func(y int) {
		*visited = append(*visited, y)
	}, newTestLogger())
	return p, sched, visited
}

func TestPlaybackCyclesYears(t *testing.T) {
	p, sched, visited := newTestPlayback([]int{2006, 2007, 2008})

	if err := p.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	sched.fire()
	sched.fire()
	if want := []int{2006, 2007, 2008}; !reflect.DeepEqual(*visited, want) {
		t.Fatalf("after three ticks: got %v, want %v", *visited, want)
	}

	sched.fire()
	if got := (*visited)[3]; got != 2006 {
		t.Errorf("fourth tick: got %d, want 2006", got)
	}
	if st := p.State(); st.Cursor != 1 || !st.Running {
		t.Errorf("state: got %+v, want running at cursor 1", st)
	}
}

func TestPlaybackStartTicksImmediatelyAndArms(t *testing.T) {
	p, sched, visited := newTestPlayback([]int{2006, 2007})

	if err := p.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if len(*visited) != 1 {
		t.Errorf("ticks after Start: got %d, want 1", len(*visited))
	}
	if sched.pending() == nil || sched.pending().d != 1500*time.Millisecond {
		t.Errorf("expected a timer armed with the configured interval")
	}
}

func TestPlaybackPauseBeforeTimerFires(t *testing.T) {
	p, sched, visited := newTestPlayback([]int{2006, 2007, 2008})

	_ = p.Start()
	afterStart := p.State()
	if err := p.Pause(); err != nil {
		t.Fatalf("Pause: %v", err)
	}

	// The stopped timer's callback runs anyway, as if it raced with Pause.
	sched.fire()

	if len(*visited) != 1 {
		t.Errorf("ticks: got %d, want exactly 1", len(*visited))
	}
	st := p.State()
	if st.Running || st.Cursor != afterStart.Cursor {
		t.Errorf("state after pause: got %+v, want paused at cursor %d", st, afterStart.Cursor)
	}
	if !sched.pending().stopped {
		t.Errorf("pending timer was not stopped")
	}
}

func TestPlaybackResumeContinuesFromCursor(t *testing.T) {
	p, sched, visited := newTestPlayback([]int{2006, 2007, 2008})

	_ = p.Start()
	sched.fire()
	_ = p.Pause()
	_ = p.Start()

	if want := []int{2006, 2007, 2008}; !reflect.DeepEqual(*visited, want) {
		t.Errorf("got %v, want %v", *visited, want)
	}
}

func TestPlaybackStaleTimerAfterRestart(t *testing.T) {
	p, sched, visited := newTestPlayback([]int{2006, 2007, 2008})

	_ = p.Start()
	stale := sched.pending()
	_ = p.Pause()
	_ = p.Start()

	stale.fired = true
	stale.f()

	if want := []int{2006, 2007}; !reflect.DeepEqual(*visited, want) {
		t.Errorf("stale timer ticked: got %v, want %v", *visited, want)
	}
}

func TestPlaybackInvalidTransitions(t *testing.T) {
	p, _, _ := newTestPlayback([]int{2006})

	if err := p.Pause(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Pause while paused: got %v, want ErrInvalidTransition", err)
	}
	_ = p.Start()
	if err := p.Start(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Start while running: got %v, want ErrInvalidTransition", err)
	}
}

func TestPlaybackEmptyYears(t *testing.T) {
	p, sched, visited := newTestPlayback(nil)

	if err := p.Start(); !errors.Is(err, ErrEmptyDomain) {
		t.Errorf("Start with no years: got %v, want ErrEmptyDomain", err)
	}
	if p.Running() {
		t.Errorf("playback should remain paused")
	}
	if sched.pending() != nil || len(*visited) != 0 {
		t.Errorf("no tick or timer expected")
	}
}

func TestPlaybackToggle(t *testing.T) {
	p, _, visited := newTestPlayback([]int{2006, 2007})

	if err := p.Toggle(); err != nil || !p.Running() {
		t.Fatalf("first Toggle should start: err=%v running=%v", err, p.Running())
	}
	if err := p.Toggle(); err != nil || p.Running() {
		t.Fatalf("second Toggle should pause: err=%v running=%v", err, p.Running())
	}
	if len(*visited) != 1 {
		t.Errorf("ticks: got %d, want 1", len(*visited))
	}
}

func TestPlaybackWithClockScheduler(t *testing.T) {
	ticks := make(chan int, 16)
	p := NewPlayback([]int{1, 2}, 5*time.Millisecond, nil, func(y int) { ticks <- y }, nil)

	if err := p.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	for i := 0; i < 3; i++ {
		select {
		case <-ticks:
		case <-time.After(2 * time.Second):
			t.Fatalf("tick %d did not arrive", i)
		}
	}
	if err := p.Pause(); err != nil {
		t.Fatalf("Pause: %v", err)
	}

	for len(ticks) > 0 {
		<-ticks
	}
	time.Sleep(30 * time.Millisecond)
	if n := len(ticks); n != 0 {
		t.Errorf("ticks after Pause returned: got %d, want 0", n)
	}
}
