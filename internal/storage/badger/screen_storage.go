package badger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/timshannon/badgerhold/v4"

	"github.com/marketscope/niss/internal/common"
	"github.com/marketscope/niss/internal/interfaces"
	"github.com/marketscope/niss/internal/models"
)

const maxScreenRecords = 50

type screenStorage struct {
	store  *Store
	logger *common.Logger
}

var _ interfaces.ScreenStore = (*screenStorage)(nil)

func newScreenStorage(store *Store, logger *common.Logger) *screenStorage {
	return &screenStorage{store: store, logger: logger}
}

func (s *screenStorage) SaveScreen(_ context.Context, record *models.ScreenRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	if err := s.store.db.Upsert(record.ID, record); err != nil {
		return fmt.Errorf("failed to save screen record: %w", err)
	}
	s.logger.Debug().Str("id", record.ID).Int("symbols", len(record.Symbols)).Msg("Screen record saved")

	// Prune oldest records if over max limit
	s.pruneOldRecords()

	return nil
}

func (s *screenStorage) pruneOldRecords() {
	var records []models.ScreenRecord
	if err := s.store.db.Find(&records, nil); err != nil || len(records) <= maxScreenRecords {
		return
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	for _, old := range records[maxScreenRecords:] {
		s.store.db.Delete(old.ID, models.ScreenRecord{})
	}
	s.logger.Debug().Int("pruned", len(records)-maxScreenRecords).Msg("Pruned old screen records")
}

func (s *screenStorage) GetScreen(_ context.Context, id string) (*models.ScreenRecord, error) {
	var record models.ScreenRecord
	err := s.store.db.Get(id, &record)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("screen record '%s' not found", id)
		}
		return nil, fmt.Errorf("failed to get screen record '%s': %w", id, err)
	}
	return &record, nil
}

func (s *screenStorage) ListScreens(_ context.Context) ([]*models.ScreenRecord, error) {
	var records []models.ScreenRecord
	if err := s.store.db.Find(&records, nil); err != nil {
		return nil, fmt.Errorf("failed to list screen records: %w", err)
	}

	// Most recent first
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	result := make([]*models.ScreenRecord, len(records))
	for i := range records {
		result[i] = &records[i]
	}
	return result, nil
}

func (s *screenStorage) DeleteScreen(_ context.Context, id string) error {
	err := s.store.db.Delete(id, models.ScreenRecord{})
	if err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete screen record '%s': %w", id, err)
	}
	s.logger.Debug().Str("id", id).Msg("Screen record deleted")
	return nil
}
