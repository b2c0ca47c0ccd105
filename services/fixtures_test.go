package services

import (
	"time"

	"housing-dashboard/models"
	"housing-dashboard/utils"
)

func newTestLogger() *utils.Logger { return utils.NewNopLogger() }

// scenarioRecords is the three-sale dataset used throughout the tests.
func scenarioRecords() []*models.Record {
	return []*models.Record{
		{Category: "A", SaleDate: "1.6.2008", Year: 2008, Condition: 5, LivingArea: 1000, Price: 100000},
		{Category: "A", SaleDate: "1.6.2009", Year: 2009, Condition: 5, LivingArea: 1600, Price: 200000},
		{Category: "B", SaleDate: "1.6.2008", Year: 2008, Condition: 7, LivingArea: 1500, Price: 150000},
	}
}

func sampleRecords() []*models.Record {
	return []*models.Record{
		{Category: "NAmes", Year: 2007, Condition: 5, LivingArea: 1200, Price: 130000},
		{Category: "CollgCr", Year: 2006, Condition: 6, LivingArea: 1700, Price: 208500},
		{Category: "NAmes", Year: 2008, Condition: 5, LivingArea: 1100, Price: 118000},
		{Category: "OldTown", Year: 2006, Condition: 4, LivingArea: 900, Price: 85000},
		{Category: "CollgCr", Year: 2008, Condition: 7, LivingArea: 2000, Price: 250000},
		{Category: "NAmes", Year: 2006, Condition: 6, LivingArea: 1300, Price: 142000},
		{Category: "OldTown", Year: 2007, Condition: 5, LivingArea: 1000, Price: 99000},
	}
}

// manualScheduler records armed timers; tests fire them explicitly.
type manualScheduler struct {
	timers []*manualTimer
}

type manualTimer struct {
	f       func()
	d       time.Duration
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	wasActive := !t.stopped && !t.fired
	t.stopped = true
	return wasActive
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &manualTimer{f: f, d: d}
	s.timers = append(s.timers, t)
	return t
}

// pending returns the most recently armed timer, or nil.
func (s *manualScheduler) pending() *manualTimer {
	if len(s.timers) == 0 {
		return nil
	}
	return s.timers[len(s.timers)-1]
}

// fire runs the most recently armed timer as the clock would, even if it
// was stopped: a stopped timer's callback may already be in flight.
func (s *manualScheduler) fire() {
	t := s.pending()
	if t == nil {
		return
	}
	t.fired = true
	t.f()
}
