package loader

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/iktorin-vi/customer-retention-analysis/internal/config"
	"github.com/iktorin-vi/customer-retention-analysis/internal/domain"
)

const testCSV = `InvoiceNo,StockCode,Description,Quantity,InvoiceDate,UnitPrice,CustomerID,Country
536365,85123A,WHITE HANGING HEART T-LIGHT HOLDER,6,12/1/2010 8:26,2.55,17850,United Kingdom
536365,71053,WHITE METAL LANTERN,6,12/1/2010 8:26,3.39,17850,United Kingdom
C536379,D,Discount,-1,12/1/2010 9:41,27.50,14527,United Kingdom
536414,22139,RETROSPOT TEA SET,56,12/1/2010 11:52,2.10,,United Kingdom
536367,84879,ASSORTED COLOUR BIRD ORNAMENT,not-a-number,12/1/2010 8:34,1.69,13047,United Kingdom
536368,22960,JAM MAKING SET WITH JARS,6,12/1/2010 8:34,4.25,13047,United Kingdom
`

func writeTestCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transactions.csv")
	err := os.WriteFile(path, []byte(content), 0o644)
	assert.NoError(t, err)
	return path
}

func testLoaderConfig() config.Loader {
	return config.Loader{
		BatchSize:       2,
		FlushTimeoutSec: 1,
		CancelPrefix:    "C",
	}
}

func TestLoader_Run_FiltersAndCounts(t *testing.T) {
	mockRepo := new(MockTransactionRepository)

	var mu sync.Mutex
	var inserted []*domain.Transaction

	collect := func(args mock.Arguments) {
		mu.Lock()
		defer mu.Unlock()
		inserted = append(inserted, args.Get(1).([]*domain.Transaction)...)
	}

	// Three valid rows with batch size 2: one full batch, one final flush.
	mockRepo.On("InsertBatch", mock.Anything, mock.MatchedBy(func(transactions []*domain.Transaction) bool {
		return len(transactions) == 2
	})).Run(collect).Return(2, nil)
	mockRepo.On("InsertBatch", mock.Anything, mock.MatchedBy(func(transactions []*domain.Transaction) bool {
		return len(transactions) == 1
	})).Run(collect).Return(1, nil)

	l := New(testLoaderConfig(), mockRepo, zap.NewNop())

	snapshot, err := l.Run(context.Background(), writeTestCSV(t, testCSV))

	assert.NoError(t, err)
	assert.Equal(t, int64(6), snapshot.RowsRead)
	assert.Equal(t, int64(3), snapshot.Inserted)
	assert.Equal(t, int64(1), snapshot.SkippedMissingCustomer)
	assert.Equal(t, int64(1), snapshot.SkippedCancelled)
	assert.Equal(t, int64(1), snapshot.SkippedMalformed)
	assert.NotEmpty(t, snapshot.RunID)

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, inserted, 3)
	invoices := make([]string, 0, len(inserted))
	for _, tx := range inserted {
		invoices = append(invoices, tx.InvoiceNo)
	}
	assert.ElementsMatch(t, []string{"536365", "536365", "536368"}, invoices)
}

func TestLoader_Run_MissingFile(t *testing.T) {
	mockRepo := new(MockTransactionRepository)

	l := New(testLoaderConfig(), mockRepo, zap.NewNop())

	_, err := l.Run(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open input file")
	mockRepo.AssertNotCalled(t, "InsertBatch", mock.Anything, mock.Anything)
}

func TestLoader_Run_EmptyFile(t *testing.T) {
	mockRepo := new(MockTransactionRepository)

	l := New(testLoaderConfig(), mockRepo, zap.NewNop())

	_, err := l.Run(context.Background(), writeTestCSV(t, ""))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestLoader_Run_HeaderOnly(t *testing.T) {
	mockRepo := new(MockTransactionRepository)

	l := New(testLoaderConfig(), mockRepo, zap.NewNop())

	header := strings.SplitN(testCSV, "\n", 2)[0] + "\n"
	snapshot, err := l.Run(context.Background(), writeTestCSV(t, header))

	assert.NoError(t, err)
	assert.Equal(t, int64(0), snapshot.RowsRead)
	assert.Equal(t, int64(0), snapshot.Inserted)
	mockRepo.AssertNotCalled(t, "InsertBatch", mock.Anything, mock.Anything)
}

func TestLoader_Run_InsertErrorAbortsRun(t *testing.T) {
	mockRepo := new(MockTransactionRepository)
	mockRepo.On("InsertBatch", mock.Anything, mock.Anything).Return(0, assert.AnError)

	l := New(testLoaderConfig(), mockRepo, zap.NewNop())

	_, err := l.Run(context.Background(), writeTestCSV(t, testCSV))

	assert.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}
