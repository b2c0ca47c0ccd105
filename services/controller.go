package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"housing-dashboard/models"
	"housing-dashboard/utils"
)

// DefaultPlaybackInterval is the pause between playback ticks.
const DefaultPlaybackInterval = 2 * time.Second

// Renderer draws a snapshot. Render is called with the controller lock
// held and must not call back into the Controller.
type Renderer interface {
	Render(snap models.Snapshot)
}

// RenderFunc adapts a plain function to Renderer.
type RenderFunc func(snap models.Snapshot)

func (f RenderFunc) Render(snap models.Snapshot) { f(snap) }

// MultiRenderer fans one snapshot out to several renderers in order.
type MultiRenderer []Renderer

func (m MultiRenderer) Render(snap models.Snapshot) {
	for _, r := range m {
		r.Render(snap)
	}
}

// Option configures a Controller.
type Option func(*Controller)

// WithInterval sets the playback interval.
func WithInterval(d time.Duration) Option {
	return func(c *Controller) { c.interval = d }
}

// WithScheduler replaces the wall-clock playback scheduler.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.scheduler = s }
}

// WithLogger sets the controller logger.
func WithLogger(l *utils.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// Controller owns the record collection, its domain, the filter state and
// the year playback. Every filter mutation recomputes the subset and its
// aggregates from the full collection and renders the result once.
type Controller struct {
	records   []*models.Record
	domain    *models.Domain
	renderer  Renderer
	interval  time.Duration
	scheduler Scheduler
	logger    *utils.Logger
	playback  *Playback

	mu     sync.Mutex
	filter models.FilterState
}

// NewController extracts the domain of records and resets the filter state
// to it. Nothing is rendered until the first mutation or Refresh.
func NewController(records []*models.Record, renderer Renderer, opts ...Option) (*Controller, error) {
	domain, err := ExtractDomain(records)
	if err != nil {
		return nil, fmt.Errorf("controller: %w", err)
	}

	c := &Controller{
		records:   records,
		domain:    domain,
		renderer:  renderer,
		interval:  DefaultPlaybackInterval,
		scheduler: ClockScheduler(),
		logger:    utils.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.renderer == nil {
		c.renderer = RenderFunc(func(models.Snapshot) {})
	}

	c.filter.Reset(domain)
	c.playback = NewPlayback(domain.Years, c.interval, c.scheduler, c.playYear, c.logger)

	c.logger.Info("[controller] Loaded %d records: %d neighborhoods, years %v, price %.0f-%.0f",
		len(records), len(domain.Categories), domain.Years,
		domain.PriceBounds.Min, domain.PriceBounds.Max)
	return c, nil
}

// Domain returns the domain derived at construction. It must not be modified.
func (c *Controller) Domain() *models.Domain { return c.domain }

// Records returns the full collection. It must not be modified.
func (c *Controller) Records() []*models.Record { return c.records }

// Filter returns a copy of the current filter state.
func (c *Controller) Filter() models.FilterState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

func (c *Controller) SetCategory(v string) {
	c.mutate(func(f *models.FilterState) { f.SetCategory(v) })
}

func (c *Controller) SetYear(v int) {
	c.mutate(func(f *models.FilterState) { f.SetYear(v) })
}

func (c *Controller) SetCondition(v int) {
	c.mutate(func(f *models.FilterState) { f.SetCondition(v) })
}

func (c *Controller) SetPriceMin(v float64) {
	c.mutate(func(f *models.FilterState) { f.SetPriceMin(v) })
}

func (c *Controller) SetPriceMax(v float64) {
	c.mutate(func(f *models.FilterState) { f.SetPriceMax(v) })
}

// Reset clears every filter back to the domain defaults.
func (c *Controller) Reset() {
	c.mutate(func(f *models.FilterState) { f.Reset(c.domain) })
}

// Apply replaces the whole filter state, re-establishing the price
// invariant, and renders once.
func (c *Controller) Apply(state models.FilterState) {
	c.mutate(func(f *models.FilterState) {
		f.Category = state.Category
		f.Year = state.Year
		f.Condition = state.Condition
		f.PriceMin = state.PriceMin
		f.PriceMax = state.PriceMin
		f.SetPriceMax(state.PriceMax)
	})
}

// Refresh renders the current state without changing it.
func (c *Controller) Refresh() {
	c.mutate(func(*models.FilterState) {})
}

// Snapshot computes the current subset and aggregates without rendering.
func (c *Controller) Snapshot() models.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Start begins year playback. See Playback.Start.
func (c *Controller) Start() error { return c.playback.Start() }

// Pause stops year playback. See Playback.Pause.
func (c *Controller) Pause() error { return c.playback.Pause() }

// Toggle flips year playback between running and paused.
func (c *Controller) Toggle() error { return c.playback.Toggle() }

// Playing reports whether year playback is running.
func (c *Controller) Playing() bool { return c.playback.Running() }

// PlaybackState returns a copy of the playback position.
func (c *Controller) PlaybackState() models.PlaybackState { return c.playback.State() }

// Close stops playback if it is running. Closing a paused controller is a
// no-op.
func (c *Controller) Close() {
	if err := c.playback.Pause(); err != nil && !errors.Is(err, ErrInvalidTransition) {
		c.logger.Warn("[controller] Stopping playback: %v", err)
	}
}

func (c *Controller) playYear(year int) {
	c.logger.Debug("[controller] Playback year %d", year)
	c.mutate(func(f *models.FilterState) { f.SetYear(year) })
}

func (c *Controller) mutate(fn func(f *models.FilterState)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := time.Now()
	fn(&c.filter)
	snap := c.snapshotLocked()
	c.renderer.Render(snap)

	utils.RendersTotal.Inc()
	utils.SubsetSize.Set(float64(len(snap.Subset)))
	utils.RenderDuration.Observe(time.Since(start).Seconds())
}

func (c *Controller) snapshotLocked() models.Snapshot {
	subset := FilterRecords(c.records, c.filter)
	return models.Snapshot{
		Filter:  c.filter,
		Subset:  subset,
		Groups:  GroupByCategory(subset),
		Trend:   MeanByYear(subset),
		Playing: c.playback.Running(),
	}
}
