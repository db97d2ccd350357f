package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"meetbook/internal/model"
)

// MeetingRepository defines meeting persistence operations.
type MeetingRepository interface {
	Create(ctx context.Context, meeting *model.Meeting) error
	Update(ctx context.Context, meeting *model.Meeting) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Meeting, error)
	FindByIDWithHost(ctx context.Context, id uint) (*model.Meeting, error)
	// FindByTuple looks up a meeting with the exact same
	// (description, date, slotID, hostID) as an existing one. Used for
	// duplicate detection on creation.
	FindByTuple(ctx context.Context, description string, date time.Time, slotID, hostID uint) (*model.Meeting, error)
	List(ctx context.Context) ([]model.Meeting, error)
	ListByHost(ctx context.Context, hostID uint) ([]model.Meeting, error)
	ListBySlot(ctx context.Context, slotID uint) ([]model.Meeting, error)
	// ListByDateWindow returns the host's meetings dated in [from, to).
	ListByDateWindow(ctx context.Context, hostID uint, from, to time.Time) ([]model.Meeting, error)

	AttachGuest(ctx context.Context, meetingID, guestID uint) error
	DeleteGuests(ctx context.Context, meetingID uint) error
}

type meetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository builds a GORM-backed repository.
func NewMeetingRepository(db *gorm.DB) MeetingRepository {
	return &meetingRepository{db: db}
}

func (r *meetingRepository) Create(ctx context.Context, meeting *model.Meeting) error {
	return r.db.WithContext(ctx).Create(meeting).Error
}

func (r *meetingRepository) Update(ctx context.Context, meeting *model.Meeting) error {
	return r.db.WithContext(ctx).Save(meeting).Error
}

func (r *meetingRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Meeting{}, id).Error
}

func (r *meetingRepository) FindByID(ctx context.Context, id uint) (*model.Meeting, error) {
	var meeting model.Meeting
	err := r.db.WithContext(ctx).
		Preload("Guests").
		First(&meeting, id).Error
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

func (r *meetingRepository) FindByIDWithHost(ctx context.Context, id uint) (*model.Meeting, error) {
	var meeting model.Meeting
	err := r.db.WithContext(ctx).
		Preload("Host").
		First(&meeting, id).Error
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

func (r *meetingRepository) FindByTuple(ctx context.Context, description string, date time.Time, slotID, hostID uint) (*model.Meeting, error) {
	var meeting model.Meeting
	err := r.db.WithContext(ctx).
		Where("description = ? AND date = ? AND slot_id = ? AND host_id = ?", description, date, slotID, hostID).
		First(&meeting).Error
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

func (r *meetingRepository) List(ctx context.Context) ([]model.Meeting, error) {
	var meetings []model.Meeting
	if err := r.db.WithContext(ctx).Preload("Guests").Find(&meetings).Error; err != nil {
		return nil, err
	}
	return meetings, nil
}

func (r *meetingRepository) ListByHost(ctx context.Context, hostID uint) ([]model.Meeting, error) {
	var meetings []model.Meeting
	err := r.db.WithContext(ctx).
		Where("host_id = ?", hostID).
		Preload("Guests").
		Preload("Slot").
		Find(&meetings).Error
	if err != nil {
		return nil, err
	}
	return meetings, nil
}

func (r *meetingRepository) ListBySlot(ctx context.Context, slotID uint) ([]model.Meeting, error) {
	var meetings []model.Meeting
	err := r.db.WithContext(ctx).
		Where("slot_id = ?", slotID).
		Preload("Slot").
		Preload("Host").
		Find(&meetings).Error
	if err != nil {
		return nil, err
	}
	return meetings, nil
}

func (r *meetingRepository) ListByDateWindow(ctx context.Context, hostID uint, from, to time.Time) ([]model.Meeting, error) {
	var meetings []model.Meeting
	err := r.db.WithContext(ctx).
		Where("host_id = ? AND date >= ? AND date < ?", hostID, from, to).
		Preload("Slot").
		Preload("Guests").
		Find(&meetings).Error
	if err != nil {
		return nil, err
	}
	return meetings, nil
}

func (r *meetingRepository) AttachGuest(ctx context.Context, meetingID, guestID uint) error {
	return r.db.WithContext(ctx).Create(&model.MeetingGuest{
		MeetingID: meetingID,
		GuestID:   guestID,
	}).Error
}

func (r *meetingRepository) DeleteGuests(ctx context.Context, meetingID uint) error {
	return r.db.WithContext(ctx).Where("meeting_id = ?", meetingID).Delete(&model.MeetingGuest{}).Error
}
