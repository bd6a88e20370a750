// Package historian tails the game action feed. It batches records for a sink and
// reports games that have gone quiet for longer than the inactivity threshold.
package historian

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jason-s-yu/uno/internal/cache"
)

// Source yields action records. Pop returns (nil, nil) when nothing arrived within timeout.
type Source interface {
	Pop(ctx context.Context, timeout time.Duration) (*cache.GameActionRecord, error)
}

// Sink receives each flushed batch.
type Sink func(ctx context.Context, batch []cache.GameActionRecord) error

// Options tunes batching and inactivity tracking.
type Options struct {
	BatchSize     int
	FlushDelay    time.Duration
	PopTimeout    time.Duration
	Inactivity    time.Duration // 0 disables inactivity tracking
	CheckInterval time.Duration
}

// DefaultOptions mirrors the HISTORIAN_* defaults.
func DefaultOptions() Options {
	return Options{
		BatchSize:     20,
		FlushDelay:    500 * time.Millisecond,
		PopTimeout:    3 * time.Second,
		Inactivity:    10 * time.Minute,
		CheckInterval: time.Minute,
	}
}

// Service captures game actions from a Source.
type Service struct {
	source   Source
	sink     Sink
	opts     Options
	logger   *logrus.Logger
	now      func() time.Time
	inactive func(gameID uuid.UUID)

	batchMu sync.Mutex
	batch   []cache.GameActionRecord

	activityMu   sync.Mutex
	lastActivity map[uuid.UUID]time.Time
}

// NewService builds a historian. onInactive may be nil.
func NewService(source Source, sink Sink, opts Options, logger *logrus.Logger, onInactive func(uuid.UUID)) *Service {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 1
	}
	if logger == nil {
		logger = logrus.New()
	}
	if onInactive == nil {
		onInactive = func(uuid.UUID) {}
	}
	return &Service{
		source:       source,
		sink:         sink,
		opts:         opts,
		logger:       logger,
		now:          time.Now,
		inactive:     onInactive,
		batch:        make([]cache.GameActionRecord, 0, opts.BatchSize),
		lastActivity: make(map[uuid.UUID]time.Time),
	}
}

// Run reads until ctx is cancelled, then flushes what is left.
func (s *Service) Run(ctx context.Context) {
	var wg sync.WaitGroup
	if s.opts.FlushDelay > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.flushLoop(ctx)
		}()
	}
	if s.opts.Inactivity > 0 && s.opts.CheckInterval > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.inactivityLoop(ctx)
		}()
	}

	s.logger.Info("historian started")
	s.readLoop(ctx)
	wg.Wait()
	s.Flush(context.Background())
	s.logger.Info("historian shutting down")
}

func (s *Service) readLoop(ctx context.Context) {
	for ctx.Err() == nil {
		rec, err := s.source.Pop(ctx, s.opts.PopTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			s.logger.Warnf("historian read: %v", err)
			continue
		}
		if rec == nil {
			continue
		}
		s.Record(ctx, *rec)
	}
}

// Record adds one action to the batch, flushing when the batch is full.
func (s *Service) Record(ctx context.Context, rec cache.GameActionRecord) {
	s.activityMu.Lock()
	if rec.ActionType == "game_end" || rec.ActionType == "game_deleted" {
		delete(s.lastActivity, rec.GameID)
	} else {
		s.lastActivity[rec.GameID] = s.now()
	}
	s.activityMu.Unlock()

	s.batchMu.Lock()
	s.batch = append(s.batch, rec)
	full := len(s.batch) >= s.opts.BatchSize
	s.batchMu.Unlock()
	if full {
		s.Flush(ctx)
	}
}

// Flush hands the pending batch to the sink. A failed batch is logged and dropped.
func (s *Service) Flush(ctx context.Context) {
	s.batchMu.Lock()
	if len(s.batch) == 0 {
		s.batchMu.Unlock()
		return
	}
	batch := make([]cache.GameActionRecord, len(s.batch))
	copy(batch, s.batch)
	s.batch = s.batch[:0]
	s.batchMu.Unlock()

	if err := s.sink(ctx, batch); err != nil {
		s.logger.Errorf("historian flush of %d actions failed: %v", len(batch), err)
		return
	}
	s.logger.Debugf("flushed %d actions", len(batch))
}

func (s *Service) flushLoop(ctx context.Context) {
	ticker := time.NewTicker(s.opts.FlushDelay)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Flush(ctx)
		}
	}
}

func (s *Service) inactivityLoop(ctx context.Context) {
	ticker := time.NewTicker(s.opts.CheckInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.CheckInactive()
		}
	}
}

// CheckInactive reports and forgets every game idle past the threshold.
func (s *Service) CheckInactive() []uuid.UUID {
	now := s.now()
	var idle []uuid.UUID
	s.activityMu.Lock()
	for id, last := range s.lastActivity {
		if now.Sub(last) > s.opts.Inactivity {
			idle = append(idle, id)
			delete(s.lastActivity, id)
		}
	}
	s.activityMu.Unlock()

	for _, id := range idle {
		s.logger.WithField("game_id", id).Info("game inactive")
		s.inactive(id)
	}
	return idle
}

// Tracked reports how many games currently have recorded activity.
func (s *Service) Tracked() int {
	s.activityMu.Lock()
	defer s.activityMu.Unlock()
	return len(s.lastActivity)
}
