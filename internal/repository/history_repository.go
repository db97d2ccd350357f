package repository

import (
	"context"

	"gorm.io/gorm"

	"meetbook/internal/model"
)

// HistoryRepository defines audit-trail persistence operations.
// History is a write-only trail; rows are never updated or deleted.
type HistoryRepository interface {
	Create(ctx context.Context, entry *model.History) error
	CreateBatch(ctx context.Context, entries []model.History) error
	List(ctx context.Context) ([]model.History, error)
}

type historyRepository struct {
	db *gorm.DB
}

// NewHistoryRepository builds a GORM-backed repository.
func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) Create(ctx context.Context, entry *model.History) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// CreateBatch inserts multiple history entries in a single statement.
func (r *historyRepository) CreateBatch(ctx context.Context, entries []model.History) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(entries, 100).Error
}

func (r *historyRepository) List(ctx context.Context) ([]model.History, error) {
	var entries []model.History
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
