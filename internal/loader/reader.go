package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
)

// Reader streams raw CSV records into the pipeline
type Reader struct {
	stats *Stats
	log   *zap.Logger
}

// NewReader creates a new CSV reader stage
func NewReader(stats *Stats, log *zap.Logger) *Reader {
	return &Reader{
		stats: stats,
		log:   log,
	}
}

// Start opens the file and sends records to the output channel until EOF
// or cancellation. The header row is skipped. Field-count validation is
// left to the parser stage, so ragged rows are counted there rather than
// aborting the read.
func (r *Reader) Start(ctx context.Context, path string, out chan<- []string) error {
	defer close(out)

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			r.log.Error("Failed to close input file", zap.Error(err))
		}
	}()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = false

	// Header
	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("input file is empty")
		}
		return fmt.Errorf("failed to read header: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			r.log.Info("Reader shutting down")
			return ctx.Err()
		default:
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			// Quoting errors on a single line; count and keep reading.
			r.stats.skippedMalformed.Add(1)
			r.log.Warn("Skipping unreadable CSV line", zap.Error(err))
			continue
		}

		r.stats.rowsRead.Add(1)

		select {
		case <-ctx.Done():
			r.log.Info("Reader shutting down while sending records")
			return ctx.Err()
		case out <- record:
		}
	}
}
