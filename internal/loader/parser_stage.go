package loader

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/iktorin-vi/customer-retention-analysis/internal/domain"
)

// ParserStage converts raw CSV records into transactions, applying the
// filter rules and keeping per-reason skip counts
type ParserStage struct {
	parser RowParser
	stats  *Stats
	log    *zap.Logger
}

// NewParserStage creates a new parser stage
func NewParserStage(parser RowParser, stats *Stats, log *zap.Logger) *ParserStage {
	return &ParserStage{
		parser: parser,
		stats:  stats,
		log:    log,
	}
}

// Start begins parsing records and outputs transactions
func (p *ParserStage) Start(ctx context.Context, in <-chan []string, out chan<- *domain.Transaction) {
	defer close(out)

	for {
		select {
		case <-ctx.Done():
			p.log.Info("Parser stage shutting down")
			return
		case record, ok := <-in:
			if !ok {
				p.log.Info("Parser stage input channel closed")
				return
			}

			tx, err := p.parser.Parse(record)
			if err != nil {
				p.countSkip(err)
				continue
			}

			select {
			case <-ctx.Done():
				return
			case out <- tx:
			}
		}
	}
}

// countSkip classifies a rejected row. Missing customers and cancelled
// invoices are expected in the source data and stay quiet; anything
// malformed is worth a warning.
func (p *ParserStage) countSkip(err error) {
	switch {
	case errors.Is(err, ErrMissingCustomer):
		p.stats.skippedMissingCustomer.Add(1)
	case errors.Is(err, ErrCancelledInvoice):
		p.stats.skippedCancelled.Add(1)
	default:
		p.stats.skippedMalformed.Add(1)
		p.log.Warn("Skipping malformed row", zap.Error(err))
	}
}
