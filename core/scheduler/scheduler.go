// ABOUTME: Dual-timer fetch scheduler with a staggered rotation queue
// ABOUTME: Decides when a feed is due; actually fetching is the dispatch callback's job

package scheduler

import (
	"context"
	"sync"
	"time"

	"aggregator-core/core/domain"
	"aggregator-core/core/interfaces"
)

// Default timings, overridable for tests through Config.
const (
	DefaultStartupDelay       = 7 * time.Second
	DefaultFirstRotationDelay = 500 * time.Millisecond
	DefaultRotationDelay      = 2 * time.Second
	DefaultCustomTick         = time.Minute
)

// FetchFunc dispatches one feed's fetch cycle. The scheduler never waits for
// it to finish; fetches for different feeds may be in flight concurrently.
type FetchFunc func(id domain.ID)

// Config controls the scheduler's timers.
type Config struct {
	// UpdateInterval is the global update interval. Zero disables the
	// global timer; feeds with a custom interval are unaffected.
	UpdateInterval time.Duration

	// UpdateOnStartup forces a quick first global run regardless of how
	// recently the last one happened.
	UpdateOnStartup bool

	// StartupDelay postpones the quick first global run.
	StartupDelay time.Duration

	// FirstRotationDelay is the pause between enqueuing to an empty queue
	// and the first rotation.
	FirstRotationDelay time.Duration

	// RotationDelay is the pause between queue rotations.
	RotationDelay time.Duration

	// CustomTick is the period of the per-feed custom interval check.
	CustomTick time.Duration
}

func (c *Config) applyDefaults() {
	if c.StartupDelay == 0 {
		c.StartupDelay = DefaultStartupDelay
	}
	if c.FirstRotationDelay == 0 {
		c.FirstRotationDelay = DefaultFirstRotationDelay
	}
	if c.RotationDelay == 0 {
		c.RotationDelay = DefaultRotationDelay
	}
	if c.CustomTick == 0 {
		c.CustomTick = DefaultCustomTick
	}
}

// Scheduler runs the global and custom update timers and drains the fetch
// queue at a fixed pace.
type Scheduler struct {
	mu          sync.Mutex
	cfg         Config
	store       interfaces.StoreGateway
	state       interfaces.SchedulerState
	logger      interfaces.Logger
	fetch       FetchFunc
	queue       []domain.ID
	globalTimer *time.Timer
	rotateTimer *time.Timer
	done        chan struct{}
	running     bool
}

// New creates a scheduler. Nothing starts ticking until Start.
func New(cfg Config, store interfaces.StoreGateway, state interfaces.SchedulerState, logger interfaces.Logger, fetch FetchFunc) *Scheduler {
	cfg.applyDefaults()
	return &Scheduler{
		cfg:    cfg,
		store:  store,
		state:  state,
		logger: logger,
		fetch:  fetch,
	}
}

// Start arms the custom ticker and applies the startup policy for the global
// timer: fire soon if an update is overdue (or forced), otherwise wait out
// the remaining interval.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.done = make(chan struct{})

	go s.customLoop()

	if s.cfg.UpdateInterval <= 0 {
		return
	}

	last, err := s.state.LastGlobalUpdate()
	if err != nil {
		s.logger.Error("read last global update", map[string]interface{}{
			"error": err.Error(),
		})
	}
	elapsed := time.Since(last)
	if s.cfg.UpdateOnStartup || last.IsZero() || elapsed > s.cfg.UpdateInterval {
		s.globalTimer = time.AfterFunc(s.cfg.StartupDelay, s.updateAllFeeds)
	} else {
		s.globalTimer = time.AfterFunc(s.cfg.UpdateInterval-elapsed, s.updateAllFeeds)
	}
}

// Stop halts the timers. In-flight fetches run to completion; there is no
// cancellation.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	close(s.done)
	if s.globalTimer != nil {
		s.globalTimer.Stop()
		s.globalTimer = nil
	}
	if s.rotateTimer != nil {
		s.rotateTimer.Stop()
		s.rotateTimer = nil
	}
	s.queue = nil
}

// SetUpdateInterval re-arms a running global timer at the new interval;
// zero stops it.
func (s *Scheduler) SetUpdateInterval(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.UpdateInterval = d
	if d <= 0 {
		if s.globalTimer != nil {
			s.globalTimer.Stop()
			s.globalTimer = nil
		}
		return
	}
	if s.globalTimer != nil {
		s.globalTimer.Reset(d)
	} else if s.running {
		s.globalTimer = time.AfterFunc(d, s.updateAllFeeds)
	}
}

// EnqueueFeed appends a feed to the rotation queue. Enqueuing to an empty
// queue schedules the first rotation; duplicates are not filtered.
func (s *Scheduler) EnqueueFeed(id domain.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	if len(s.queue) == 0 {
		s.rotateTimer = time.AfterFunc(s.cfg.FirstRotationDelay, s.rotateQueue)
	}
	s.queue = append(s.queue, id)
}

// updateAllFeeds is the global timer's action: enqueue every feed the
// custom timer is not responsible for, stamp the run and re-arm.
func (s *Scheduler) updateAllFeeds() {
	ctx := context.Background()
	ids, err := s.store.FeedIDs(ctx)
	if err != nil {
		s.logger.Error("list feeds for global update", map[string]interface{}{
			"error": err.Error(),
		})
	}
	for _, id := range ids {
		minutes, err := s.store.FeedInterval(ctx, id)
		if err != nil {
			s.logger.Warn("read feed interval", map[string]interface{}{
				"feed_id": int64(id),
				"error":   err.Error(),
			})
			continue
		}
		// Feeds with a custom interval are handled by the custom timer.
		if minutes != 0 {
			continue
		}
		s.EnqueueFeed(id)
	}

	if err := s.state.SetLastGlobalUpdate(time.Now()); err != nil {
		s.logger.Error("persist last global update", map[string]interface{}{
			"error": err.Error(),
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running && s.cfg.UpdateInterval > 0 {
		s.globalTimer = time.AfterFunc(s.cfg.UpdateInterval, s.updateAllFeeds)
	}
}

// customLoop runs the fixed-period check for feeds with their own interval.
func (s *Scheduler) customLoop() {
	ticker := time.NewTicker(s.cfg.CustomTick)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.handleCustomUpdates()
		}
	}
}

func (s *Scheduler) handleCustomUpdates() {
	ctx := context.Background()
	now := time.Now()

	ids, err := s.store.FeedIDs(ctx)
	if err != nil {
		s.logger.Error("list feeds for custom update", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	for _, id := range ids {
		minutes, err := s.store.FeedInterval(ctx, id)
		if err != nil {
			s.logger.Warn("read feed interval", map[string]interface{}{
				"feed_id": int64(id),
				"error":   err.Error(),
			})
			continue
		}
		// The global timer owns feeds without a custom interval.
		if minutes == 0 {
			continue
		}

		last, err := s.state.LastFeedUpdate(id)
		if err != nil {
			s.logger.Warn("read last feed update", map[string]interface{}{
				"feed_id": int64(id),
				"error":   err.Error(),
			})
			continue
		}
		if last.IsZero() || now.Sub(last) >= time.Duration(minutes)*time.Minute {
			s.EnqueueFeed(id)
			if err := s.state.SetLastFeedUpdate(id, time.Now()); err != nil {
				s.logger.Error("persist last feed update", map[string]interface{}{
					"feed_id": int64(id),
					"error":   err.Error(),
				})
			}
		}
	}
}

// rotateQueue pops the front feed, dispatches its fetch and, if work
// remains, schedules the next rotation. It never waits for the dispatched
// fetch to complete.
func (s *Scheduler) rotateQueue() {
	s.mu.Lock()
	if len(s.queue) == 0 {
		s.mu.Unlock()
		return
	}
	id := s.queue[0]
	s.queue = s.queue[1:]
	if len(s.queue) > 0 {
		s.rotateTimer = time.AfterFunc(s.cfg.RotationDelay, s.rotateQueue)
	}
	s.mu.Unlock()

	go s.fetch(id)
}
