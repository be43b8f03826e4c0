package expiry

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const DefaultInterval = 500 * time.Millisecond

type Options struct {
	// Interval between sweeps. Defaults to DefaultInterval.
	Interval time.Duration
	// OnExpire is called once per expired key, without the scheduler lock held.
	OnExpire func(key string)
	Log      *slog.Logger
	Metrics  Metrics
	// Now overrides the clock, mainly for tests.
	Now func() time.Time
}

type Scheduler struct {
	interval time.Duration
	onExpire func(key string)
	log      *slog.Logger
	metrics  Metrics
	now      func() time.Time

	mu        sync.Mutex
	deadlines map[string]time.Time

	ctx       context.Context
	cancel    context.CancelFunc
	startOnce sync.Once
	wg        sync.WaitGroup
}

func New(opts Options) *Scheduler {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.OnExpire == nil {
		opts.OnExpire = func(string) {}
	}
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = NopMetrics()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		interval:  opts.Interval,
		onExpire:  opts.OnExpire,
		log:       opts.Log.With(slog.String("component", "expiry")),
		metrics:   opts.Metrics,
		now:       opts.Now,
		deadlines: make(map[string]time.Time),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start launches the sweep goroutine. Calling Start more than once, or after
// Stop, has no effect.
func (s *Scheduler) Start() {
	s.startOnce.Do(func() {
		if s.ctx.Err() != nil {
			return
		}
		s.wg.Add(1)
		go s.run()
		s.log.Debug("sweep started", slog.Duration("interval", s.interval))
	})
}

// Stop wakes the sweep goroutine and waits for it to exit. Stop is safe to
// call multiple times; a stopped scheduler cannot be restarted.
func (s *Scheduler) Stop() {
	// Blocks until a concurrent Start has finished its wg.Add, and keeps any
	// later Start from launching the goroutine.
	s.startOnce.Do(func() {})
	s.cancel()
	s.wg.Wait()
}

// Set registers key to expire ttl from now, replacing any previous deadline.
// Callers must pass a positive ttl.
func (s *Scheduler) Set(key string, ttl time.Duration) {
	s.SetDeadline(key, s.now().Add(ttl))
}

// SetDeadline registers an absolute deadline for key, replacing any previous one.
func (s *Scheduler) SetDeadline(key string, deadline time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deadlines[key] = deadline
}

// Remove forgets the deadline for key. Absent keys are ignored.
func (s *Scheduler) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.deadlines, key)
}

// Clear forgets all deadlines.
func (s *Scheduler) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.deadlines)
}

func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.deadlines)
}

// RemainingSeconds returns the whole seconds left until key expires, 0 if the
// deadline has passed but not been swept yet, or -1 if key has no deadline.
func (s *Scheduler) RemainingSeconds(key string) int64 {
	d, ok := s.remaining(key)
	if !ok {
		return -1
	}
	return int64(d / time.Second)
}

// RemainingMillis is RemainingSeconds in milliseconds.
func (s *Scheduler) RemainingMillis(key string) int64 {
	d, ok := s.remaining(key)
	if !ok {
		return -1
	}
	return int64(d / time.Millisecond)
}

func (s *Scheduler) remaining(key string) (time.Duration, bool) {
	s.mu.Lock()
	deadline, ok := s.deadlines[key]
	s.mu.Unlock()
	if !ok {
		return 0, false
	}
	return max(0, deadline.Sub(s.now())), true
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			s.log.Debug("sweep stopped")
			return
		case <-ticker.C:
			// select picks randomly when both are ready; stop wins
			if s.ctx.Err() != nil {
				s.log.Debug("sweep stopped")
				return
			}
			s.sweep()
		}
	}
}

// sweep removes every expired deadline and notifies OnExpire for each of
// them once the lock is released. It returns the expired keys.
func (s *Scheduler) sweep() []string {
	defer s.metrics.SweepDuration().ObserveDuration()

	now := s.now()

	s.mu.Lock()
	var expired []string
	for key, deadline := range s.deadlines {
		if !now.Before(deadline) {
			expired = append(expired, key)
			delete(s.deadlines, key)
		}
	}
	tracked := len(s.deadlines)
	s.mu.Unlock()

	s.metrics.SweepExpired(len(expired))
	s.metrics.Tracked(tracked)

	if len(expired) > 0 {
		s.log.Debug("sweep found expired keys",
			slog.Int("expired", len(expired)),
			slog.Int("tracked", tracked),
		)
	}

	for _, key := range expired {
		s.notify(key)
	}
	return expired
}

func (s *Scheduler) notify(key string) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("expire callback panicked", slog.String("key", key), slog.Any("recovered", r))
		}
	}()
	s.onExpire(key)
}
