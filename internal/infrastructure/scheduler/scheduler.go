package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/retail/backend/internal/domain/report"
	"github.com/retail/backend/internal/domain/shared"
	"github.com/retail/backend/internal/infrastructure/cache"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// JobStatus is the outcome of the most recent snapshot run
type JobStatus string

const (
	JobStatusPending JobStatus = "PENDING"
	JobStatusRunning JobStatus = "RUNNING"
	JobStatusSuccess JobStatus = "SUCCESS"
	JobStatusFailed  JobStatus = "FAILED"
)

// StockReporter generates the stock report that gets snapshotted
type StockReporter interface {
	GenerateStockReport(ctx context.Context, threshold int) (*report.Envelope[report.StockReport], error)
}

// Config holds snapshot scheduling settings
type Config struct {
	// Cron is a standard five-field expression, e.g. "0 2 * * *".
	Cron       string
	Threshold  int
	TTL        time.Duration
	JobTimeout time.Duration
}

// RunInfo describes the last snapshot run
type RunInfo struct {
	Status      JobStatus
	StartedAt   time.Time
	CompletedAt time.Time
	Error       string
}

// SnapshotScheduler periodically stores a precomputed stock report so that
// readers can fetch it without aggregating the catalog.
type SnapshotScheduler struct {
	cron     *cron.Cron
	reporter StockReporter
	store    cache.SnapshotStore
	cfg      Config
	clock    shared.Clock
	logger   *zap.Logger

	mu      sync.Mutex
	running bool
	last    RunInfo
}

// NewSnapshotScheduler validates the cron expression and registers the job.
// Nothing runs until Start.
func NewSnapshotScheduler(cfg Config, reporter StockReporter, store cache.SnapshotStore, clock shared.Clock, logger *zap.Logger) (*SnapshotScheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clock == nil {
		clock = shared.SystemClock
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = 5 * time.Minute
	}

	s := &SnapshotScheduler{
		cron:     cron.New(cron.WithLocation(time.UTC)),
		reporter: reporter,
		store:    store,
		cfg:      cfg,
		clock:    clock,
		logger:   logger.Named("scheduler"),
		last:     RunInfo{Status: JobStatusPending},
	}
	// SkipIfStillRunning keeps a slow run from overlapping the next tick
	job := cron.NewChain(cron.SkipIfStillRunning(cron.DiscardLogger)).Then(cron.FuncJob(s.tick))
	if _, err := s.cron.AddJob(cfg.Cron, job); err != nil {
		return nil, fmt.Errorf("invalid snapshot cron %q: %w", cfg.Cron, err)
	}
	return s, nil
}

// Start begins scheduling in the background
func (s *SnapshotScheduler) Start() {
	s.logger.Info("Starting stock snapshot scheduler", zap.String("cron", s.cfg.Cron))
	s.cron.Start()
}

// Stop prevents new runs and waits for a running one until ctx is done.
func (s *SnapshotScheduler) Stop(ctx context.Context) error {
	s.logger.Info("Stopping stock snapshot scheduler")
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// LastRun returns information about the most recent run
func (s *SnapshotScheduler) LastRun() RunInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func (s *SnapshotScheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.JobTimeout)
	defer cancel()
	if err := s.RunOnce(ctx); err != nil {
		s.logger.Error("Stock snapshot failed", zap.Error(err))
	}
}

// RunOnce generates and stores one snapshot. Concurrent calls are rejected.
func (s *SnapshotScheduler) RunOnce(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("stock snapshot already running")
	}
	s.running = true
	s.last = RunInfo{Status: JobStatusRunning, StartedAt: s.clock.Now()}
	s.mu.Unlock()

	err := s.snapshot(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.last.CompletedAt = s.clock.Now()
	if err != nil {
		s.last.Status = JobStatusFailed
		s.last.Error = err.Error()
		return err
	}
	s.last.Status = JobStatusSuccess
	s.logger.Info("Stock snapshot stored",
		zap.Duration("duration", s.last.CompletedAt.Sub(s.last.StartedAt)),
	)
	return nil
}

func (s *SnapshotScheduler) snapshot(ctx context.Context) error {
	env, err := s.reporter.GenerateStockReport(ctx, s.cfg.Threshold)
	if err != nil {
		return fmt.Errorf("generate stock report: %w", err)
	}
	if err := s.store.SaveStock(ctx, *env, s.cfg.TTL); err != nil {
		return fmt.Errorf("store stock snapshot: %w", err)
	}
	return nil
}
