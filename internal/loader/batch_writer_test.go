package loader

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/iktorin-vi/customer-retention-analysis/internal/domain"
	"github.com/iktorin-vi/customer-retention-analysis/internal/repository"
)

// MockTransactionRepository is a mock implementation of repository.TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) InsertBatch(ctx context.Context, transactions []*domain.Transaction) (int, error) {
	args := m.Called(ctx, transactions)
	return args.Int(0), args.Error(1)
}

func (m *MockTransactionRepository) InitSchema(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTransactionRepository) BuildCohorts(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTransactionRepository) TruncateTransactions(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTransactionRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTransactionRepository) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTransactionRepository) RetentionMatrix(ctx context.Context, query repository.RetentionQuery) ([]repository.RetentionCell, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.RetentionCell), args.Error(1)
}

func (m *MockTransactionRepository) RepeatPurchaseRate(ctx context.Context) (*repository.RepeatPurchaseResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.RepeatPurchaseResult), args.Error(1)
}

func (m *MockTransactionRepository) TimeToSecondPurchase(ctx context.Context) (*repository.PurchaseTimingResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PurchaseTimingResult), args.Error(1)
}

func (m *MockTransactionRepository) ChurnRate(ctx context.Context, thresholdDays int) (*repository.ChurnResult, error) {
	args := m.Called(ctx, thresholdDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.ChurnResult), args.Error(1)
}

func (m *MockTransactionRepository) OneTimeBuyerShare(ctx context.Context) ([]repository.CohortBuyerSplit, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.CohortBuyerSplit), args.Error(1)
}

func (m *MockTransactionRepository) CohortRevenue(ctx context.Context) ([]repository.CohortRevenueRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.CohortRevenueRow), args.Error(1)
}

func testTransaction(invoiceNo string) *domain.Transaction {
	return &domain.Transaction{
		InvoiceNo:   invoiceNo,
		StockCode:   "85123A",
		Quantity:    1,
		InvoiceDate: time.Date(2010, 12, 1, 8, 26, 0, 0, time.UTC),
		UnitPrice:   2.55,
		CustomerID:  "17850",
		Country:     "United Kingdom",
	}
}

func TestBatchWriter_Start_BatchSizeThreshold(t *testing.T) {
	mockRepo := new(MockTransactionRepository)
	stats := NewStats()

	writer := NewBatchWriter(mockRepo, BatchWriterConfig{
		MaxBatchSize: 3,
		FlushTimeout: 10 * time.Second,
	}, stats, zap.NewNop())

	mockRepo.On("InsertBatch", mock.Anything, mock.MatchedBy(func(transactions []*domain.Transaction) bool {
		return len(transactions) == 3
	})).Return(3, nil)

	in := make(chan *domain.Transaction, 5)
	in <- testTransaction("1")
	in <- testTransaction("2")
	in <- testTransaction("3")
	close(in)

	err := writer.Start(context.Background(), in)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), stats.Snapshot().Inserted)
	mockRepo.AssertExpectations(t)
}

func TestBatchWriter_Start_FinalFlushOnClose(t *testing.T) {
	mockRepo := new(MockTransactionRepository)
	stats := NewStats()

	writer := NewBatchWriter(mockRepo, BatchWriterConfig{
		MaxBatchSize: 10,
		FlushTimeout: 10 * time.Second,
	}, stats, zap.NewNop())

	mockRepo.On("InsertBatch", mock.Anything, mock.MatchedBy(func(transactions []*domain.Transaction) bool {
		return len(transactions) == 2
	})).Return(2, nil)

	in := make(chan *domain.Transaction, 5)
	in <- testTransaction("1")
	in <- testTransaction("2")
	close(in)

	err := writer.Start(context.Background(), in)

	assert.NoError(t, err)
	assert.Equal(t, int64(2), stats.Snapshot().Inserted)
	mockRepo.AssertExpectations(t)
}

func TestBatchWriter_Start_TimeoutFlush(t *testing.T) {
	mockRepo := new(MockTransactionRepository)
	stats := NewStats()

	writer := NewBatchWriter(mockRepo, BatchWriterConfig{
		MaxBatchSize: 10,
		FlushTimeout: 50 * time.Millisecond,
	}, stats, zap.NewNop())

	mockRepo.On("InsertBatch", mock.Anything, mock.MatchedBy(func(transactions []*domain.Transaction) bool {
		return len(transactions) == 2
	})).Return(2, nil)

	in := make(chan *domain.Transaction, 5)

	done := make(chan error, 1)
	go func() {
		done <- writer.Start(context.Background(), in)
	}()

	in <- testTransaction("1")
	in <- testTransaction("2")

	// Wait past the flush timeout, then close to end the run
	time.Sleep(150 * time.Millisecond)
	close(in)

	assert.NoError(t, <-done)
	assert.Equal(t, int64(2), stats.Snapshot().Inserted)
	mockRepo.AssertExpectations(t)
}

func TestBatchWriter_Start_InsertErrorIsFatal(t *testing.T) {
	mockRepo := new(MockTransactionRepository)
	stats := NewStats()

	writer := NewBatchWriter(mockRepo, BatchWriterConfig{
		MaxBatchSize: 2,
		FlushTimeout: 10 * time.Second,
	}, stats, zap.NewNop())

	insertErr := errors.New("connection lost")
	mockRepo.On("InsertBatch", mock.Anything, mock.Anything).Return(0, insertErr)

	in := make(chan *domain.Transaction, 5)
	in <- testTransaction("1")
	in <- testTransaction("2")
	close(in)

	err := writer.Start(context.Background(), in)

	assert.Error(t, err)
	assert.ErrorIs(t, err, insertErr)
	assert.Equal(t, int64(0), stats.Snapshot().Inserted)
}

func TestBatchWriter_Start_PartialInsertIsFatal(t *testing.T) {
	mockRepo := new(MockTransactionRepository)
	stats := NewStats()

	writer := NewBatchWriter(mockRepo, BatchWriterConfig{
		MaxBatchSize: 2,
		FlushTimeout: 10 * time.Second,
	}, stats, zap.NewNop())

	mockRepo.On("InsertBatch", mock.Anything, mock.Anything).Return(1, nil)

	in := make(chan *domain.Transaction, 5)
	in <- testTransaction("1")
	in <- testTransaction("2")
	close(in)

	err := writer.Start(context.Background(), in)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "partial batch insert")
}

func TestBatchWriter_Start_ContextCancelled(t *testing.T) {
	mockRepo := new(MockTransactionRepository)
	stats := NewStats()

	writer := NewBatchWriter(mockRepo, BatchWriterConfig{
		MaxBatchSize: 10,
		FlushTimeout: 10 * time.Second,
	}, stats, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	in := make(chan *domain.Transaction)

	err := writer.Start(ctx, in)

	assert.ErrorIs(t, err, context.Canceled)
	mockRepo.AssertNotCalled(t, "InsertBatch", mock.Anything, mock.Anything)
}
