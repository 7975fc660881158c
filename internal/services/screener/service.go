// Package screener scores symbols through the NISS engine and ranks
// batch screening runs.
package screener

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/marketscope/niss/internal/common"
	"github.com/marketscope/niss/internal/interfaces"
	"github.com/marketscope/niss/internal/models"
	"github.com/marketscope/niss/internal/niss"
)

const (
	defaultWorkers   = 4
	defaultNewsLimit = 20
)

// Service implements ScreenerService
type Service struct {
	gateway   interfaces.MarketDataGateway
	storage   interfaces.StorageManager
	engine    *niss.Engine
	logger    *common.Logger
	workers   int
	newsLimit int
}

// Compile-time interface check
var _ interfaces.ScreenerService = (*Service)(nil)

// Option configures the service
type Option func(*Service)

// WithWorkers sets the per-run scoring concurrency
func WithWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithNewsLimit sets the default per-symbol news fetch size
func WithNewsLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.newsLimit = n
		}
	}
}

// NewService creates a new screener service
func NewService(gateway interfaces.MarketDataGateway, storage interfaces.StorageManager, engine *niss.Engine, logger *common.Logger, opts ...Option) *Service {
	s := &Service{
		gateway:   gateway,
		storage:   storage,
		engine:    engine,
		logger:    logger,
		workers:   defaultWorkers,
		newsLimit: defaultNewsLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScoreSymbol fetches market data for one symbol and produces a full
// scored result with its trade setup.
func (s *Service) ScoreSymbol(ctx context.Context, symbol string) (*models.NISSResult, *models.TradeSetup, error) {
	market, err := s.gateway.GetMarketContext(ctx)
	if err != nil {
		// Regime data is optional; scoring proceeds without the adjustment
		s.logger.Warn().Err(err).Msg("Market context unavailable")
		market = nil
	}

	entry := s.scoreOne(ctx, symbol, market, s.newsLimit)
	if entry.Error != "" {
		return nil, nil, fmt.Errorf("failed to score %s: %s", symbol, entry.Error)
	}
	return entry.Result, entry.Setup, nil
}

// scoreOne runs the full per-symbol pipeline: fetch, score, setup, signal.
// A snapshot failure produces an entry with Error set; the optional inputs
// degrade to neutral components when unavailable.
func (s *Service) scoreOne(ctx context.Context, symbol string, market *models.MarketContext, newsLimit int) models.ScreenEntry {
	entry := models.ScreenEntry{Symbol: symbol}

	snapshot, err := s.gateway.GetSnapshot(ctx, symbol)
	if err != nil {
		s.logger.Warn().Str("symbol", symbol).Err(err).Msg("Snapshot fetch failed")
		entry.Error = err.Error()
		return entry
	}

	news, err := s.gateway.GetNews(ctx, symbol, newsLimit)
	if err != nil {
		s.logger.Warn().Str("symbol", symbol).Err(err).Msg("News fetch failed")
		news = nil
	}
	technicals, err := s.gateway.GetTechnicals(ctx, symbol)
	if err != nil {
		s.logger.Warn().Str("symbol", symbol).Err(err).Msg("Technicals fetch failed")
		technicals = nil
	}
	options, err := s.gateway.GetOptions(ctx, symbol)
	if err != nil {
		s.logger.Warn().Str("symbol", symbol).Err(err).Msg("Options fetch failed")
		options = nil
	}

	result := s.engine.Score(snapshot, news, technicals, options, market)
	entry.Result = result
	entry.Setup = niss.GenerateTradeSetup(snapshot.Price, result)

	signal := niss.DetermineSignal(result.Score, snapshot.ChangePct)
	entry.Signal = &signal

	return entry
}

// ScreenSymbols scores a batch of symbols concurrently, ranks them by
// score, and persists the run.
func (s *Service) ScreenSymbols(ctx context.Context, symbols []string, opts interfaces.ScreenOptions) (*models.ScreenRecord, error) {
	if len(symbols) == 0 {
		return nil, fmt.Errorf("no symbols to screen")
	}

	start := time.Now()
	newsLimit := s.newsLimit
	if opts.NewsLimit > 0 {
		newsLimit = opts.NewsLimit
	}

	// Regime snapshot is fetched once and shared across the run
	market, err := s.gateway.GetMarketContext(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Market context unavailable for screen run")
		market = nil
	}

	entries := make([]models.ScreenEntry, len(symbols))
	sem := make(chan struct{}, s.workers)
	var wg sync.WaitGroup

	for i, symbol := range symbols {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			entries[i] = models.ScreenEntry{Symbol: symbol, Error: ctx.Err().Error()}
			continue
		}
		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()
			defer func() { <-sem }()
			entries[i] = s.scoreOne(ctx, symbol, market, newsLimit)
		}(i, symbol)
	}
	wg.Wait()

	record := rankEntries(entries, opts)
	record.Symbols = symbols
	record.Duration = time.Since(start)
	record.CreatedAt = time.Now()

	if err := s.storage.ScreenStore().SaveScreen(ctx, record); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to persist screen run")
	}

	s.logger.Info().
		Int("symbols", len(symbols)).
		Int("ranked", len(record.Entries)-record.Skipped).
		Int("skipped", record.Skipped).
		Dur("duration", record.Duration).
		Msg("Screen run complete")

	return record, nil
}

// rankEntries sorts scoreable entries by score descending and appends the
// skipped ones (fetch failures and validation errors) at the end.
func rankEntries(entries []models.ScreenEntry, opts interfaces.ScreenOptions) *models.ScreenRecord {
	ranked := make([]models.ScreenEntry, 0, len(entries))
	skipped := make([]models.ScreenEntry, 0)

	for _, e := range entries {
		if e.Error != "" || e.Result == nil || e.Result.IsError() {
			skipped = append(skipped, e)
			continue
		}
		if opts.MinScore != 0 && e.Result.Score < opts.MinScore {
			continue
		}
		ranked = append(ranked, e)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Result.Score > ranked[j].Result.Score
	})

	if opts.Limit > 0 && len(ranked) > opts.Limit {
		ranked = ranked[:opts.Limit]
	}

	return &models.ScreenRecord{
		Entries: append(ranked, skipped...),
		Skipped: len(skipped),
	}
}
