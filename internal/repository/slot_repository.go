package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"meetbook/internal/model"
)

// SlotRepository defines slot persistence operations.
type SlotRepository interface {
	Create(ctx context.Context, slot *model.Slot) error
	Update(ctx context.Context, slot *model.Slot) error
	FindByID(ctx context.Context, id uint) (*model.Slot, error)
	// FindByIDWithRelations loads the slot together with its owning user
	// and associated meetings.
	FindByIDWithRelations(ctx context.Context, id uint) (*model.Slot, error)
	List(ctx context.Context) ([]model.Slot, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Slot, error)
	// FindActiveSlotsForUser returns the user's active slots, excluding
	// excludeID when non-zero (used when updating a slot so it does not
	// conflict with itself).
	//
	// Note: the caller's check-then-insert sequence around this query is
	// not transactional; two concurrent creations for the same user can
	// both pass the conflict check and both commit.
	FindActiveSlotsForUser(ctx context.Context, userID, excludeID uint) ([]model.Slot, error)
	// ListByDateWindow returns the user's slots whose start date falls in
	// [from, to).
	ListByDateWindow(ctx context.Context, userID uint, from, to time.Time) ([]model.Slot, error)
}

type slotRepository struct {
	db *gorm.DB
}

// NewSlotRepository builds a GORM-backed repository.
func NewSlotRepository(db *gorm.DB) SlotRepository {
	return &slotRepository{db: db}
}

func (r *slotRepository) Create(ctx context.Context, slot *model.Slot) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *slotRepository) Update(ctx context.Context, slot *model.Slot) error {
	return r.db.WithContext(ctx).Save(slot).Error
}

func (r *slotRepository) FindByID(ctx context.Context, id uint) (*model.Slot, error) {
	var slot model.Slot
	if err := r.db.WithContext(ctx).First(&slot, id).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *slotRepository) FindByIDWithRelations(ctx context.Context, id uint) (*model.Slot, error) {
	var slot model.Slot
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Meetings").
		First(&slot, id).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *slotRepository) List(ctx context.Context) ([]model.Slot, error) {
	var slots []model.Slot
	if err := r.db.WithContext(ctx).Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *slotRepository) ListByUser(ctx context.Context, userID uint) ([]model.Slot, error) {
	var slots []model.Slot
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *slotRepository) FindActiveSlotsForUser(ctx context.Context, userID, excludeID uint) ([]model.Slot, error) {
	q := r.db.WithContext(ctx).Where("user_id = ? AND active = ?", userID, true)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var slots []model.Slot
	if err := q.Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *slotRepository) ListByDateWindow(ctx context.Context, userID uint, from, to time.Time) ([]model.Slot, error) {
	var slots []model.Slot
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND start_date >= ? AND start_date < ?", userID, from, to).
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}
