package loader

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/iktorin-vi/customer-retention-analysis/internal/config"
	"github.com/iktorin-vi/customer-retention-analysis/internal/domain"
	"github.com/iktorin-vi/customer-retention-analysis/internal/repository"
)

const stageBufferSize = 256

// Loader orchestrates the reader, parser stage, and batch writer over one
// input file
type Loader struct {
	cfg        config.Loader
	repository repository.TransactionRepository
	log        *zap.Logger
}

// New creates a new loader
func New(cfg config.Loader, repo repository.TransactionRepository, log *zap.Logger) *Loader {
	return &Loader{
		cfg:        cfg,
		repository: repo,
		log:        log,
	}
}

// Run executes the three-stage pipeline for the given CSV file and
// returns the run counters. Any stage error aborts the whole run.
func (l *Loader) Run(ctx context.Context, path string) (Snapshot, error) {
	stats := NewStats()

	l.log.Info("Load run starting",
		zap.String("run_id", stats.RunID),
		zap.String("path", path))

	reader := NewReader(stats, l.log)
	parserStage := NewParserStage(NewCSVRowParser(l.cfg.CancelPrefix), stats, l.log)
	writer := NewBatchWriter(l.repository, BatchWriterConfig{
		MaxBatchSize: l.cfg.BatchSize,
		FlushTimeout: time.Duration(l.cfg.FlushTimeoutSec) * time.Second,
	}, stats, l.log)

	records := make(chan []string, stageBufferSize)
	transactions := make(chan *domain.Transaction, stageBufferSize)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return reader.Start(gctx, path, records)
	})

	g.Go(func() error {
		parserStage.Start(gctx, records, transactions)
		return nil
	})

	g.Go(func() error {
		return writer.Start(gctx, transactions)
	})

	err := g.Wait()
	snapshot := stats.Snapshot()

	if err != nil {
		l.log.Error("Load run failed",
			zap.String("run_id", stats.RunID),
			zap.Error(err))
		return snapshot, err
	}

	l.log.Info("Load run complete",
		zap.String("run_id", snapshot.RunID),
		zap.Int64("rows_read", snapshot.RowsRead),
		zap.Int64("inserted", snapshot.Inserted),
		zap.Int64("skipped_missing_customer", snapshot.SkippedMissingCustomer),
		zap.Int64("skipped_cancelled", snapshot.SkippedCancelled),
		zap.Int64("skipped_malformed", snapshot.SkippedMalformed),
		zap.Duration("duration", snapshot.Duration))

	return snapshot, nil
}
