package loader

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/iktorin-vi/customer-retention-analysis/internal/domain"
	"github.com/iktorin-vi/customer-retention-analysis/internal/repository"
)

// BatchWriterConfig configures the batch writer
type BatchWriterConfig struct {
	MaxBatchSize int
	FlushTimeout time.Duration
}

// BatchWriter batches transactions and writes them to the repository.
// Any insert failure is fatal to the load run: the source is a static
// file, so the fix is to rerun after correcting the input or the store.
type BatchWriter struct {
	repository repository.TransactionRepository
	config     BatchWriterConfig
	stats      *Stats
	log        *zap.Logger
}

// NewBatchWriter creates a new batch writer
func NewBatchWriter(repo repository.TransactionRepository, config BatchWriterConfig, stats *Stats, log *zap.Logger) *BatchWriter {
	return &BatchWriter{
		repository: repo,
		config:     config,
		stats:      stats,
		log:        log,
	}
}

// Start consumes transactions, batching on size or flush timeout, with a
// final flush when the input channel closes
func (w *BatchWriter) Start(ctx context.Context, in <-chan *domain.Transaction) error {
	ticker := time.NewTicker(w.config.FlushTimeout)
	defer ticker.Stop()

	batch := make([]*domain.Transaction, 0, w.config.MaxBatchSize)

	for {
		select {
		case <-ctx.Done():
			w.log.Info("Batch writer shutting down")
			return ctx.Err()

		case tx, ok := <-in:
			if !ok {
				if len(batch) > 0 {
					w.log.Info("Flushing final batch", zap.Int("transaction_count", len(batch)))
					if err := w.flush(ctx, batch); err != nil {
						return err
					}
				}
				return nil
			}

			batch = append(batch, tx)

			if len(batch) >= w.config.MaxBatchSize {
				if err := w.flush(ctx, batch); err != nil {
					return err
				}
				batch = make([]*domain.Transaction, 0, w.config.MaxBatchSize)
				ticker.Reset(w.config.FlushTimeout)
			}

		case <-ticker.C:
			if len(batch) > 0 {
				w.log.Info("Batch timeout reached", zap.Int("transaction_count", len(batch)))
				if err := w.flush(ctx, batch); err != nil {
					return err
				}
				batch = make([]*domain.Transaction, 0, w.config.MaxBatchSize)
			}
		}
	}
}

func (w *BatchWriter) flush(ctx context.Context, batch []*domain.Transaction) error {
	insertedCount, err := w.repository.InsertBatch(ctx, batch)
	if err != nil {
		w.log.Error("Failed to insert batch",
			zap.Error(err),
			zap.Int("transaction_count", len(batch)))
		return fmt.Errorf("failed to insert batch: %w", err)
	}

	if insertedCount != len(batch) {
		return fmt.Errorf("partial batch insert: %d of %d", insertedCount, len(batch))
	}

	w.stats.inserted.Add(int64(insertedCount))
	w.log.Debug("Inserted batch", zap.Int("count", insertedCount))
	return nil
}
