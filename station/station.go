// Package station runs the update cycle: fetch, compare, render, persist.
package station

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/BeatGlow/weather-display"
	"github.com/BeatGlow/weather-display/battery"
	"github.com/BeatGlow/weather-display/change"
	"github.com/BeatGlow/weather-display/freshness"
	"github.com/BeatGlow/weather-display/layout"
	"github.com/BeatGlow/weather-display/pixel"
	"github.com/BeatGlow/weather-display/store"
	"github.com/BeatGlow/weather-display/weather"
)

// Fetcher acquires a candidate snapshot. On failure it returns an invalid snapshot and an error.
type Fetcher interface {
	Fetch(ctx context.Context) (weather.Snapshot, error)
}

// Config wires a Station.
type Config struct {
	Fetcher    Fetcher
	Battery    battery.Reader
	Store      store.Store
	Compositor *layout.Compositor
	Panel      display.Panel

	// Framebuffer is the shared frame the compositor draws into.
	Framebuffer *pixel.Gray4Image

	Detector  change.Detector
	Freshness freshness.Calculator

	// Hours is the precipitation series length.
	Hours int

	Metrics *Metrics
	Log     logrus.FieldLogger

	// Now returns the wall clock; defaults to time.Now.
	Now func() time.Time
}

// DisplayState is what the station shows besides the weather.
type DisplayState struct {
	Battery    int    `json:"battery"`
	AgeMinutes int    `json:"age_minutes"`
	AgeLabel   string `json:"age_label"`
	Failures   int    `json:"failures"`
}

// Result describes one cycle.
type Result struct {
	ID         string
	Reason     change.Reason
	AgeCrossed bool
	Refreshed  bool
	Snapshot   weather.Snapshot // the snapshot shown
	Display    DisplayState
	FetchErr   error
}

// Station runs update cycles. Cycles never overlap.
type Station struct {
	config Config
	log    logrus.FieldLogger
	mu     sync.Mutex
}

// New validates config and returns a Station.
func New(config Config) (*Station, error) {
	switch {
	case config.Fetcher == nil:
		return nil, errors.New("station: no fetcher")
	case config.Store == nil:
		return nil, errors.New("station: no store")
	case config.Compositor == nil:
		return nil, errors.New("station: no compositor")
	case config.Panel == nil:
		return nil, errors.New("station: no panel")
	case config.Framebuffer == nil:
		return nil, display.ErrAllocation
	}
	if config.Battery == nil {
		config.Battery = battery.Fixed(100)
	}
	if config.Hours <= 0 {
		config.Hours = weather.DefaultHours
	}
	if config.Freshness.Threshold <= 0 {
		config.Freshness.Threshold = freshness.DefaultThreshold
	}
	if config.Metrics == nil {
		config.Metrics, _ = NewMetrics(nil)
	}
	if config.Log == nil {
		config.Log = logrus.StandardLogger()
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	return &Station{config: config, log: config.Log}, nil
}

// Cycle runs one update. Fetch and battery failures degrade the cycle but are not returned;
// the returned error reports render, transfer or persistence failures.
func (s *Station) Cycle(ctx context.Context) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		c   = s.config
		id  = uuid.NewString()
		log = s.log.WithField("cycle", id)
		res = Result{ID: id}
	)

	state, err := c.Store.Load(ctx)
	if errors.Is(err, store.ErrCorrupt) {
		log.WithError(err).Warn("discarding stored state")
		state, err = store.Initial(c.Hours), nil
	}
	if err != nil {
		c.Metrics.Cycles.WithLabelValues(OutcomeError).Inc()
		return res, fmt.Errorf("station: load state: %w", err)
	}

	candidate, fetchErr := c.Fetcher.Fetch(ctx)
	if fetchErr != nil || !candidate.Valid {
		if fetchErr == nil {
			fetchErr = errors.New("station: fetch returned invalid snapshot")
		}
		candidate = weather.NewSnapshot(c.Hours)
		state.Failures++
		c.Metrics.FetchFailures.Inc()
		log.WithError(fetchErr).WithField("failures", state.Failures).Warn("weather unavailable")
	} else {
		state.Failures = 0
		state.LastGood = candidate.Clone()
	}
	res.FetchErr = fetchErr

	percent, err := c.Battery.Percent()
	if err != nil {
		percent = state.Battery
		if percent < 0 {
			percent = 0
		}
		log.WithError(err).Warn("battery unavailable")
	}

	shown := candidate
	if !shown.Valid {
		shown = state.LastGood
	}
	if !shown.Valid {
		shown = weather.NewSnapshot(c.Hours)
	}

	now := c.Now()
	age, label := c.Freshness.Age(shown.Updated, now)

	res.Reason = c.Detector.Detect(state.Previous, candidate, state.Battery, percent)
	res.AgeCrossed = change.AgeVisibilityChanged(state.AgeMinutes, age, c.Freshness.Threshold)
	res.Snapshot = shown
	res.Display = DisplayState{
		Battery:    percent,
		AgeMinutes: age,
		AgeLabel:   label,
		Failures:   state.Failures,
	}

	log = log.WithFields(logrus.Fields{
		"reason":  res.Reason,
		"age":     age,
		"battery": percent,
	})

	var renderErr error
	if !state.Rendered || res.Reason.Refresh() || res.AgeCrossed {
		renderErr = s.render(shown, res.Display, now)
		res.Refreshed = renderErr == nil
		state.Rendered = renderErr == nil
		if renderErr != nil {
			log.WithError(renderErr).Error("refresh failed")
		} else {
			log.WithField("crossed", res.AgeCrossed).Info("display refreshed")
		}
	} else {
		log.Debug("display unchanged")
	}

	state.Previous = candidate
	state.Battery = percent
	state.AgeMinutes = age
	state.UpdatedAt = now
	saveErr := c.Store.Save(ctx, state)
	if saveErr != nil {
		log.WithError(saveErr).Error("saving state failed")
		saveErr = fmt.Errorf("station: save state: %w", saveErr)
	}

	c.Metrics.Battery.Set(float64(percent))
	c.Metrics.DataAge.Set(float64(age))
	switch {
	case renderErr != nil || saveErr != nil:
		c.Metrics.Cycles.WithLabelValues(OutcomeError).Inc()
	case res.Refreshed:
		c.Metrics.Cycles.WithLabelValues(OutcomeRefreshed).Inc()
	default:
		c.Metrics.Cycles.WithLabelValues(OutcomeUnchanged).Inc()
	}
	return res, errors.Join(renderErr, saveErr)
}

func (s *Station) render(shown weather.Snapshot, ds DisplayState, now time.Time) error {
	var (
		c     = s.config
		start = time.Now()
	)
	defer func() {
		c.Metrics.RenderSeconds.Observe(time.Since(start).Seconds())
	}()

	c.Compositor.Render(c.Framebuffer, layout.View{
		Snapshot:  shown,
		AgeLabel:  ds.AgeLabel,
		Battery:   ds.Battery,
		Failures:  ds.Failures,
		StartHour: startHour(shown, now),
	})
	return display.Refresh(c.Panel, c.Framebuffer)
}

// startHour is the local hour of the first precipitation value: the hour the data was issued,
// or the current hour when the timestamp is unknown.
func startHour(s weather.Snapshot, now time.Time) int {
	if t, ok := freshness.Parse(s.Updated); ok {
		return t.Hour()
	}
	return now.Hour()
}
