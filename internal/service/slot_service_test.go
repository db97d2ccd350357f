package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "meetbook/internal/errors"
	"meetbook/internal/model"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	assert.NoError(t, err)
	return parsed
}

func TestSlotOverlap(t *testing.T) {
	day := func(value string) time.Time {
		parsed, _ := time.Parse("2006-01-02", value)
		return parsed
	}
	clock := func(value string) time.Time {
		parsed, _ := time.Parse("15:04", value)
		return parsed
	}

	existing := model.Slot{
		StartTime: clock("09:00"),
		EndTime:   clock("11:00"),
		StartDate: day("2026-03-02"),
		EndDate:   day("2026-03-06"),
	}

	tests := []struct {
		name     string
		proposed ProposedSlot
		conflict bool
	}{
		{
			name: "identical window conflicts",
			proposed: ProposedSlot{
				StartTime: clock("09:00"), EndTime: clock("11:00"),
				StartDate: day("2026-03-02"), EndDate: day("2026-03-06"),
			},
			conflict: true,
		},
		{
			name: "partial time overlap on overlapping dates conflicts",
			proposed: ProposedSlot{
				StartTime: clock("10:00"), EndTime: clock("12:00"),
				StartDate: day("2026-03-04"), EndDate: day("2026-03-08"),
			},
			conflict: true,
		},
		{
			name: "disjoint times and disjoint dates do not conflict",
			proposed: ProposedSlot{
				StartTime: clock("12:00"), EndTime: clock("14:00"),
				StartDate: day("2026-03-10"), EndDate: day("2026-03-12"),
			},
			conflict: false,
		},
		{
			name: "touching time boundaries do not conflict",
			proposed: ProposedSlot{
				StartTime: clock("11:00"), EndTime: clock("13:00"),
				StartDate: day("2026-03-10"), EndDate: day("2026-03-12"),
			},
			conflict: false,
		},
		{
			name: "touching date boundaries do not conflict",
			proposed: ProposedSlot{
				StartTime: clock("12:00"), EndTime: clock("14:00"),
				StartDate: day("2026-03-06"), EndDate: day("2026-03-09"),
			},
			conflict: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.conflict, overlapsEither(existing, tt.proposed))
		})
	}
}

// Two slots on completely disjoint date ranges still conflict when their
// times of day overlap. This is intentional behavior.
func TestSlotOverlap_TimeOverlapDisjointDates(t *testing.T) {
	existing := model.Slot{
		StartTime: mustTime(t, "2026-03-02T09:00:00Z"),
		EndTime:   mustTime(t, "2026-03-02T11:00:00Z"),
		StartDate: mustTime(t, "2026-03-02T00:00:00Z"),
		EndDate:   mustTime(t, "2026-03-06T00:00:00Z"),
	}
	proposed := ProposedSlot{
		StartTime: mustTime(t, "2026-03-02T10:00:00Z"),
		EndTime:   mustTime(t, "2026-03-02T12:00:00Z"),
		StartDate: mustTime(t, "2026-04-01T00:00:00Z"),
		EndDate:   mustTime(t, "2026-04-05T00:00:00Z"),
	}

	assert.True(t, overlapsEither(existing, proposed))
}

func TestSlotService_CreateSlot(t *testing.T) {
	input := SlotInput{
		Title:     "Morning consultations",
		StartTime: mustTime(t, "2026-03-02T09:00:00Z"),
		EndTime:   mustTime(t, "2026-03-02T11:00:00Z"),
		StartDate: mustTime(t, "2026-03-02T00:00:00Z"),
		EndDate:   mustTime(t, "2026-03-06T00:00:00Z"),
		UserID:    7,
	}

	t.Run("first slot for a user succeeds", func(t *testing.T) {
		slotRepo := new(MockSlotRepository)
		userRepo := new(MockUserRepository)
		recorder := &stubRecorder{}

		slotRepo.On("FindActiveSlotsForUser", mock.Anything, uint(7), uint(0)).Return([]model.Slot{}, nil)
		userRepo.On("FindByID", mock.Anything, uint(7)).Return(&model.User{ID: 7, Name: "Alice"}, nil)
		slotRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Slot")).Return(nil)

		service := NewSlotService(slotRepo, userRepo, recorder, testLogger())
		slot, err := service.CreateSlot(context.Background(), input)

		assert.NoError(t, err)
		assert.NotNil(t, slot)
		assert.True(t, slot.Active)
		assert.Equal(t, []string{"Create Slot"}, recorder.entries)
		slotRepo.AssertExpectations(t)
		userRepo.AssertExpectations(t)
	})

	t.Run("conflicting slot is rejected without a write", func(t *testing.T) {
		slotRepo := new(MockSlotRepository)
		userRepo := new(MockUserRepository)
		recorder := &stubRecorder{}

		existing := model.Slot{
			ID:        3,
			StartTime: input.StartTime,
			EndTime:   input.EndTime,
			StartDate: input.StartDate,
			EndDate:   input.EndDate,
		}
		slotRepo.On("FindActiveSlotsForUser", mock.Anything, uint(7), uint(0)).Return([]model.Slot{existing}, nil)

		service := NewSlotService(slotRepo, userRepo, recorder, testLogger())
		slot, err := service.CreateSlot(context.Background(), input)

		assert.ErrorIs(t, err, apperrors.ErrSlotConflict)
		assert.Nil(t, slot)
		assert.Empty(t, recorder.entries)
		slotRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestSlotService_HasConflict_Idempotent(t *testing.T) {
	slotRepo := new(MockSlotRepository)
	userRepo := new(MockUserRepository)

	existing := model.Slot{
		ID:        3,
		StartTime: mustTime(t, "2026-03-02T09:00:00Z"),
		EndTime:   mustTime(t, "2026-03-02T11:00:00Z"),
		StartDate: mustTime(t, "2026-03-02T00:00:00Z"),
		EndDate:   mustTime(t, "2026-03-06T00:00:00Z"),
	}
	slotRepo.On("FindActiveSlotsForUser", mock.Anything, uint(7), uint(0)).Return([]model.Slot{existing}, nil)

	proposed := ProposedSlot{
		UserID:    7,
		StartTime: mustTime(t, "2026-03-02T10:00:00Z"),
		EndTime:   mustTime(t, "2026-03-02T12:00:00Z"),
		StartDate: mustTime(t, "2026-03-04T00:00:00Z"),
		EndDate:   mustTime(t, "2026-03-08T00:00:00Z"),
	}

	service := NewSlotService(slotRepo, userRepo, &stubRecorder{}, testLogger())

	first, err := service.HasConflict(context.Background(), proposed, 0)
	assert.NoError(t, err)
	second, err := service.HasConflict(context.Background(), proposed, 0)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
	assert.True(t, first)
}

func TestSlotService_UpdateSlot_ExcludesSelf(t *testing.T) {
	slotRepo := new(MockSlotRepository)
	userRepo := new(MockUserRepository)
	recorder := &stubRecorder{}

	current := &model.Slot{
		ID:        5,
		Title:     "Old title",
		StartTime: mustTime(t, "2026-03-02T09:00:00Z"),
		EndTime:   mustTime(t, "2026-03-02T11:00:00Z"),
		StartDate: mustTime(t, "2026-03-02T00:00:00Z"),
		EndDate:   mustTime(t, "2026-03-06T00:00:00Z"),
		UserID:    7,
		Active:    true,
	}

	slotRepo.On("FindByID", mock.Anything, uint(5)).Return(current, nil)
	// The conflict query must exclude the slot being updated.
	slotRepo.On("FindActiveSlotsForUser", mock.Anything, uint(7), uint(5)).Return([]model.Slot{}, nil)
	slotRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Slot")).Return(nil)

	service := NewSlotService(slotRepo, userRepo, recorder, testLogger())
	updated, err := service.UpdateSlot(context.Background(), 5, SlotInput{
		Title:     "New title",
		StartTime: current.StartTime,
		EndTime:   current.EndTime,
		StartDate: current.StartDate,
		EndDate:   current.EndDate,
		UserID:    7,
		Active:    true,
	})

	assert.NoError(t, err)
	assert.Equal(t, "New title", updated.Title)
	slotRepo.AssertExpectations(t)
}

func TestSlotService_SlotsForWeek_SeedsEmptyDays(t *testing.T) {
	slotRepo := new(MockSlotRepository)
	userRepo := new(MockUserRepository)
	recorder := &stubRecorder{}

	start := mustTime(t, "2026-03-02T00:00:00Z")
	slot := model.Slot{ID: 1, UserID: 7, StartDate: mustTime(t, "2026-03-04T00:00:00Z")}
	slotRepo.On("ListByDateWindow", mock.Anything, uint(7), start, start.AddDate(0, 0, 7)).
		Return([]model.Slot{slot}, nil)

	service := NewSlotService(slotRepo, userRepo, recorder, testLogger())
	grouped, err := service.SlotsForWeek(context.Background(), 7, start)

	assert.NoError(t, err)
	assert.Len(t, grouped, 7)
	assert.Empty(t, grouped["2026-03-02"])
	assert.Len(t, grouped["2026-03-04"], 1)
	slotRepo.AssertExpectations(t)
}

func TestSlotService_DeactivateSlot(t *testing.T) {
	slotRepo := new(MockSlotRepository)
	userRepo := new(MockUserRepository)
	recorder := &stubRecorder{}

	slotRepo.On("FindByID", mock.Anything, uint(9)).Return(&model.Slot{ID: 9, Active: true}, nil)
	slotRepo.On("Update", mock.Anything, mock.MatchedBy(func(s *model.Slot) bool {
		return s.ID == 9 && !s.Active
	})).Return(nil)

	service := NewSlotService(slotRepo, userRepo, recorder, testLogger())
	slot, err := service.DeactivateSlot(context.Background(), 9)

	assert.NoError(t, err)
	assert.False(t, slot.Active)
	assert.Equal(t, []string{"Delete Slot"}, recorder.entries)
	slotRepo.AssertExpectations(t)
}
