package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	apperrors "meetbook/internal/errors"
	"meetbook/internal/model"
	"meetbook/internal/repository"
)

// ProposedSlot carries the fields the conflict check needs.
type ProposedSlot struct {
	UserID    uint
	StartTime time.Time
	EndTime   time.Time
	StartDate time.Time
	EndDate   time.Time
}

// SlotInput is the payload for creating or updating a slot. The caller
// guarantees StartTime < EndTime and StartDate <= EndDate.
type SlotInput struct {
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	StartDate   time.Time
	EndDate     time.Time
	UserID      uint
	Active      bool
}

// SlotService handles slot lifecycle operations gated by the conflict check.
type SlotService interface {
	CreateSlot(ctx context.Context, input SlotInput) (*model.Slot, error)
	UpdateSlot(ctx context.Context, id uint, input SlotInput) (*model.Slot, error)
	GetSlot(ctx context.Context, id uint) (*model.Slot, error)
	ListSlots(ctx context.Context) ([]model.Slot, error)
	ListSlotsByUser(ctx context.Context, userID uint) ([]model.Slot, error)
	// SlotsForWeek groups the user's slots over the 7 days starting at
	// start, keyed by YYYY-MM-DD.
	SlotsForWeek(ctx context.Context, userID uint, start time.Time) (map[string][]model.Slot, error)
	DeactivateSlot(ctx context.Context, id uint) (*model.Slot, error)
	// HasConflict reports whether the proposed slot overlaps any active
	// slot of the same user, excluding excludeID when non-zero.
	HasConflict(ctx context.Context, proposed ProposedSlot, excludeID uint) (bool, error)
}

type slotService struct {
	slotRepo repository.SlotRepository
	userRepo repository.UserRepository
	recorder HistoryRecorder
	log      *logrus.Entry
}

// NewSlotService builds a SlotService.
func NewSlotService(slotRepo repository.SlotRepository, userRepo repository.UserRepository, recorder HistoryRecorder, log *logrus.Logger) SlotService {
	return &slotService{
		slotRepo: slotRepo,
		userRepo: userRepo,
		recorder: recorder,
		log:      log.WithField("component", "slots"),
	}
}

// overlapsEither is the conflict predicate: open-interval overlap in the
// time-of-day dimension OR in the calendar-date dimension. The OR means two
// active slots on entirely different dates still conflict when their
// times-of-day overlap. That is a product decision carried over from the
// existing behavior, not a bug.
func overlapsEither(existing model.Slot, proposed ProposedSlot) bool {
	timeOverlap := existing.StartTime.Before(proposed.EndTime) && existing.EndTime.After(proposed.StartTime)
	dateOverlap := existing.StartDate.Before(proposed.EndDate) && existing.EndDate.After(proposed.StartDate)
	return timeOverlap || dateOverlap
}

func (s *slotService) HasConflict(ctx context.Context, proposed ProposedSlot, excludeID uint) (bool, error) {
	existing, err := s.slotRepo.FindActiveSlotsForUser(ctx, proposed.UserID, excludeID)
	if err != nil {
		return false, fmt.Errorf("query active slots: %w", err)
	}
	for _, slot := range existing {
		if overlapsEither(slot, proposed) {
			return true, nil
		}
	}
	return false, nil
}

func (s *slotService) CreateSlot(ctx context.Context, input SlotInput) (*model.Slot, error) {
	proposed := ProposedSlot{
		UserID:    input.UserID,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	}
	conflict, err := s.HasConflict(ctx, proposed, 0)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, apperrors.ErrSlotConflict
	}

	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	slot := &model.Slot{
		Title:       input.Title,
		Description: input.Description,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		UserID:      input.UserID,
		Active:      true,
	}
	if err := s.slotRepo.Create(ctx, slot); err != nil {
		return nil, fmt.Errorf("create slot: %w", err)
	}

	s.recorder.Record("Create", "Slot", fmt.Sprintf("User %s creates a new slot.", user.Name))
	return slot, nil
}

func (s *slotService) UpdateSlot(ctx context.Context, id uint, input SlotInput) (*model.Slot, error) {
	slot, err := s.slotRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrSlotNotFound
		}
		return nil, fmt.Errorf("find slot: %w", err)
	}

	proposed := ProposedSlot{
		UserID:    input.UserID,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	}
	// The slot being updated is excluded so it never conflicts with itself.
	conflict, err := s.HasConflict(ctx, proposed, id)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, apperrors.ErrSlotConflict
	}

	slot.Title = input.Title
	slot.Description = input.Description
	slot.StartTime = input.StartTime
	slot.EndTime = input.EndTime
	slot.StartDate = input.StartDate
	slot.EndDate = input.EndDate
	slot.UserID = input.UserID
	slot.Active = input.Active

	if err := s.slotRepo.Update(ctx, slot); err != nil {
		return nil, fmt.Errorf("update slot: %w", err)
	}

	s.recorder.Record("Update", "Slot", fmt.Sprintf("Slot %d updated.", slot.ID))
	return slot, nil
}

func (s *slotService) GetSlot(ctx context.Context, id uint) (*model.Slot, error) {
	slot, err := s.slotRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrSlotNotFound
		}
		return nil, err
	}
	return slot, nil
}

func (s *slotService) ListSlots(ctx context.Context) ([]model.Slot, error) {
	return s.slotRepo.List(ctx)
}

func (s *slotService) ListSlotsByUser(ctx context.Context, userID uint) ([]model.Slot, error) {
	return s.slotRepo.ListByUser(ctx, userID)
}

func (s *slotService) SlotsForWeek(ctx context.Context, userID uint, start time.Time) (map[string][]model.Slot, error) {
	from := start.Truncate(24 * time.Hour)
	to := from.AddDate(0, 0, 7)

	slots, err := s.slotRepo.ListByDateWindow(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list slots by window: %w", err)
	}

	grouped := make(map[string][]model.Slot, 7)
	for i := 0; i < 7; i++ {
		day := from.AddDate(0, 0, i).Format("2006-01-02")
		grouped[day] = []model.Slot{}
	}
	for _, slot := range slots {
		day := slot.StartDate.Format("2006-01-02")
		grouped[day] = append(grouped[day], slot)
	}
	return grouped, nil
}

func (s *slotService) DeactivateSlot(ctx context.Context, id uint) (*model.Slot, error) {
	slot, err := s.slotRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrSlotNotFound
		}
		return nil, err
	}

	slot.Active = false
	if err := s.slotRepo.Update(ctx, slot); err != nil {
		return nil, fmt.Errorf("deactivate slot: %w", err)
	}

	s.recorder.Record("Delete", "Slot", fmt.Sprintf("Slot %d deactivated.", slot.ID))
	return slot, nil
}
