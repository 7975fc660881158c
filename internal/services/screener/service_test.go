package screener

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketscope/niss/internal/common"
	"github.com/marketscope/niss/internal/interfaces"
	"github.com/marketscope/niss/internal/models"
	"github.com/marketscope/niss/internal/niss"
)

// --- Mocks ---

type mockGateway struct {
	mu        sync.Mutex
	snapshots map[string]*models.StockSnapshot
	news      map[string][]models.NewsItem
	failing   map[string]bool
	ctxCalls  int
}

func newMockGateway() *mockGateway {
	return &mockGateway{
		snapshots: make(map[string]*models.StockSnapshot),
		news:      make(map[string][]models.NewsItem),
		failing:   make(map[string]bool),
	}
}

func (m *mockGateway) addSymbol(symbol string, price, changePct float64) {
	m.snapshots[symbol] = &models.StockSnapshot{
		Symbol:    symbol,
		Price:     price,
		ChangePct: changePct,
	}
}

func (m *mockGateway) GetSnapshot(_ context.Context, symbol string) (*models.StockSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing[symbol] {
		return nil, fmt.Errorf("gateway unavailable for %s", symbol)
	}
	snapshot, ok := m.snapshots[symbol]
	if !ok {
		return nil, fmt.Errorf("unknown symbol %s", symbol)
	}
	return snapshot, nil
}

func (m *mockGateway) GetNews(_ context.Context, symbol string, _ int) ([]models.NewsItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.news[symbol], nil
}

func (m *mockGateway) GetTechnicals(_ context.Context, _ string) (*models.TechnicalIndicators, error) {
	return nil, fmt.Errorf("technicals unavailable")
}

func (m *mockGateway) GetOptions(_ context.Context, _ string) (*models.OptionsMetrics, error) {
	return nil, fmt.Errorf("options unavailable")
}

func (m *mockGateway) GetMarketContext(_ context.Context) (*models.MarketContext, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ctxCalls++
	return &models.MarketContext{SPYChange: 0.5}, nil
}

type mockScreenStore struct {
	mu    sync.Mutex
	saved []*models.ScreenRecord
}

func (m *mockScreenStore) SaveScreen(_ context.Context, record *models.ScreenRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append(m.saved, record)
	return nil
}

func (m *mockScreenStore) GetScreen(_ context.Context, _ string) (*models.ScreenRecord, error) {
	return nil, fmt.Errorf("not found")
}

func (m *mockScreenStore) ListScreens(_ context.Context) ([]*models.ScreenRecord, error) {
	return nil, nil
}

func (m *mockScreenStore) DeleteScreen(_ context.Context, _ string) error {
	return nil
}

type mockStorage struct {
	screens mockScreenStore
}

func (m *mockStorage) ScreenStore() interfaces.ScreenStore { return &m.screens }
func (m *mockStorage) Close() error                        { return nil }

func newTestService(gateway *mockGateway, storage *mockStorage, opts ...Option) *Service {
	return NewService(gateway, storage, niss.NewEngine(), common.NewSilentLogger(), opts...)
}

// --- Tests ---

func TestScoreSymbol(t *testing.T) {
	gateway := newMockGateway()
	gateway.addSymbol("AAPL", 187.5, 1.2)
	storage := &mockStorage{}

	svc := newTestService(gateway, storage)
	result, setup, err := svc.ScoreSymbol(context.Background(), "AAPL")
	require.NoError(t, err)
	require.NotNil(t, result)
	require.NotNil(t, setup)

	assert.Equal(t, "AAPL", result.Metadata.Symbol)
	assert.False(t, result.IsError())
	assert.Equal(t, 187.5, setup.EntryPrice)
}

func TestScoreSymbol_FetchFailure(t *testing.T) {
	gateway := newMockGateway()
	gateway.failing["BAD"] = true
	storage := &mockStorage{}

	svc := newTestService(gateway, storage)
	_, _, err := svc.ScoreSymbol(context.Background(), "BAD")
	assert.Error(t, err)
}

func TestScreenSymbols_RanksByScoreDescending(t *testing.T) {
	gateway := newMockGateway()
	// Different changePercent values produce different priceAction scores
	gateway.addSymbol("UP", 100, 4)
	gateway.addSymbol("FLAT", 100, 0)
	gateway.addSymbol("DOWN", 100, -4)
	storage := &mockStorage{}

	svc := newTestService(gateway, storage)
	record, err := svc.ScreenSymbols(context.Background(), []string{"DOWN", "FLAT", "UP"}, interfaces.ScreenOptions{})
	require.NoError(t, err)

	require.Len(t, record.Entries, 3)
	assert.Equal(t, "UP", record.Entries[0].Symbol)
	assert.Equal(t, "FLAT", record.Entries[1].Symbol)
	assert.Equal(t, "DOWN", record.Entries[2].Symbol)
	assert.Equal(t, 0, record.Skipped)
	assert.Positive(t, record.Duration)
}

func TestScreenSymbols_FailuresRankLast(t *testing.T) {
	gateway := newMockGateway()
	gateway.addSymbol("OK", 100, 1)
	gateway.failing["BAD"] = true
	storage := &mockStorage{}

	svc := newTestService(gateway, storage)
	record, err := svc.ScreenSymbols(context.Background(), []string{"BAD", "OK"}, interfaces.ScreenOptions{})
	require.NoError(t, err)

	require.Len(t, record.Entries, 2)
	assert.Equal(t, "OK", record.Entries[0].Symbol)
	assert.Equal(t, "BAD", record.Entries[1].Symbol)
	assert.NotEmpty(t, record.Entries[1].Error)
	assert.Equal(t, 1, record.Skipped)
}

func TestScreenSymbols_LimitAndMinScore(t *testing.T) {
	gateway := newMockGateway()
	for i, symbol := range []string{"A", "B", "C", "D"} {
		gateway.addSymbol(symbol, 100, float64(i))
	}
	storage := &mockStorage{}

	svc := newTestService(gateway, storage)
	record, err := svc.ScreenSymbols(context.Background(), []string{"A", "B", "C", "D"},
		interfaces.ScreenOptions{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, record.Entries, 2)

	strict, err := svc.ScreenSymbols(context.Background(), []string{"A", "B", "C", "D"},
		interfaces.ScreenOptions{MinScore: 99})
	require.NoError(t, err)
	assert.Empty(t, strict.Entries)
	assert.Equal(t, 0, strict.Skipped)
}

func TestScreenSymbols_FetchesMarketContextOnce(t *testing.T) {
	gateway := newMockGateway()
	gateway.addSymbol("A", 100, 0)
	gateway.addSymbol("B", 100, 0)
	gateway.addSymbol("C", 100, 0)
	storage := &mockStorage{}

	svc := newTestService(gateway, storage, WithWorkers(2))
	_, err := svc.ScreenSymbols(context.Background(), []string{"A", "B", "C"}, interfaces.ScreenOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, gateway.ctxCalls)
}

func TestScreenSymbols_PersistsRun(t *testing.T) {
	gateway := newMockGateway()
	gateway.addSymbol("AAPL", 187.5, 1.2)
	storage := &mockStorage{}

	svc := newTestService(gateway, storage)
	record, err := svc.ScreenSymbols(context.Background(), []string{"AAPL"}, interfaces.ScreenOptions{})
	require.NoError(t, err)

	require.Len(t, storage.screens.saved, 1)
	assert.Equal(t, record, storage.screens.saved[0])
	assert.Equal(t, []string{"AAPL"}, record.Symbols)
	assert.False(t, record.CreatedAt.IsZero())
}

func TestScreenSymbols_EmptyInput(t *testing.T) {
	svc := newTestService(newMockGateway(), &mockStorage{})
	_, err := svc.ScreenSymbols(context.Background(), nil, interfaces.ScreenOptions{})
	assert.Error(t, err)
}
