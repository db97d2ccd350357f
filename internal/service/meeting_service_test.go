package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "meetbook/internal/errors"
	"meetbook/internal/model"
)

func TestMeetingService_CreateMeeting(t *testing.T) {
	input := MeetingInput{
		Description: "Cardiology follow-up",
		Date:        mustTime(t, "2026-03-04T00:00:00Z"),
		SlotID:      2,
		HostID:      7,
		GuestIDs:    []uint{11, 12},
	}

	t.Run("successful creation attaches guests and notifies the host", func(t *testing.T) {
		meetingRepo := new(MockMeetingRepository)
		userRepo := new(MockUserRepository)
		notifier := &stubNotifier{}
		mail := new(MockMailer)
		recorder := &stubRecorder{}

		meetingRepo.On("FindByTuple", mock.Anything, input.Description, input.Date, uint(2), uint(7)).
			Return(nil, gorm.ErrRecordNotFound)
		userRepo.On("FindByID", mock.Anything, uint(7)).
			Return(&model.User{ID: 7, Name: "Alice", Email: "alice@example.com"}, nil)
		meetingRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Meeting")).Return(nil)
		meetingRepo.On("AttachGuest", mock.Anything, mock.Anything, uint(11)).Return(nil)
		meetingRepo.On("AttachGuest", mock.Anything, mock.Anything, uint(12)).Return(nil)
		mail.On("Send", []string{"alice@example.com"}, mock.Anything, mock.Anything).Return(nil)

		service := NewMeetingService(meetingRepo, userRepo, notifier, mail, recorder, testLogger())
		meeting, err := service.CreateMeeting(context.Background(), input)

		assert.NoError(t, err)
		assert.NotNil(t, meeting)
		assert.Equal(t, model.MeetingStatusPending, meeting.Status)
		assert.Equal(t, []uint{uint(7)}, notifier.userIDs)
		assert.Equal(t, []string{"Create Meeting"}, recorder.entries)
		meetingRepo.AssertExpectations(t)
		mail.AssertExpectations(t)
	})

	t.Run("exact duplicate tuple is rejected", func(t *testing.T) {
		meetingRepo := new(MockMeetingRepository)
		userRepo := new(MockUserRepository)
		notifier := &stubNotifier{}
		mail := new(MockMailer)
		recorder := &stubRecorder{}

		meetingRepo.On("FindByTuple", mock.Anything, input.Description, input.Date, uint(2), uint(7)).
			Return(&model.Meeting{ID: 40}, nil)

		service := NewMeetingService(meetingRepo, userRepo, notifier, mail, recorder, testLogger())
		meeting, err := service.CreateMeeting(context.Background(), input)

		assert.ErrorIs(t, err, apperrors.ErrMeetingExists)
		assert.Nil(t, meeting)
		assert.Empty(t, notifier.userIDs)
		meetingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("guest attach failure does not fail the meeting", func(t *testing.T) {
		meetingRepo := new(MockMeetingRepository)
		userRepo := new(MockUserRepository)
		notifier := &stubNotifier{}
		mail := new(MockMailer)
		recorder := &stubRecorder{}

		meetingRepo.On("FindByTuple", mock.Anything, input.Description, input.Date, uint(2), uint(7)).
			Return(nil, gorm.ErrRecordNotFound)
		userRepo.On("FindByID", mock.Anything, uint(7)).
			Return(&model.User{ID: 7, Name: "Alice", Email: "alice@example.com"}, nil)
		meetingRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Meeting")).Return(nil)
		meetingRepo.On("AttachGuest", mock.Anything, mock.Anything, uint(11)).Return(errors.New("fk violation"))
		meetingRepo.On("AttachGuest", mock.Anything, mock.Anything, uint(12)).Return(nil)
		mail.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))

		service := NewMeetingService(meetingRepo, userRepo, notifier, mail, recorder, testLogger())
		meeting, err := service.CreateMeeting(context.Background(), input)

		assert.NoError(t, err)
		assert.NotNil(t, meeting)
		meetingRepo.AssertExpectations(t)
	})

	t.Run("unknown host returns not found", func(t *testing.T) {
		meetingRepo := new(MockMeetingRepository)
		userRepo := new(MockUserRepository)
		notifier := &stubNotifier{}
		mail := new(MockMailer)
		recorder := &stubRecorder{}

		meetingRepo.On("FindByTuple", mock.Anything, input.Description, input.Date, uint(2), uint(7)).
			Return(nil, gorm.ErrRecordNotFound)
		userRepo.On("FindByID", mock.Anything, uint(7)).Return(nil, gorm.ErrRecordNotFound)

		service := NewMeetingService(meetingRepo, userRepo, notifier, mail, recorder, testLogger())
		meeting, err := service.CreateMeeting(context.Background(), input)

		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
		assert.Nil(t, meeting)
	})
}

func TestMeetingService_ChangeStatus(t *testing.T) {
	t.Run("out of range status is rejected", func(t *testing.T) {
		meetingRepo := new(MockMeetingRepository)
		service := NewMeetingService(meetingRepo, new(MockUserRepository), &stubNotifier{}, new(MockMailer), &stubRecorder{}, testLogger())

		meeting, err := service.ChangeStatus(context.Background(), 1, model.MeetingStatus(5))

		assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)
		assert.Nil(t, meeting)
		meetingRepo.AssertNotCalled(t, "FindByIDWithHost", mock.Anything, mock.Anything)
	})

	t.Run("completed may move back to pending", func(t *testing.T) {
		meetingRepo := new(MockMeetingRepository)
		recorder := &stubRecorder{}

		meetingRepo.On("FindByIDWithHost", mock.Anything, uint(1)).Return(&model.Meeting{
			ID:     1,
			Status: model.MeetingStatusCompleted,
			Host:   model.User{ID: 7, Name: "Alice"},
		}, nil)
		meetingRepo.On("Update", mock.Anything, mock.MatchedBy(func(m *model.Meeting) bool {
			return m.Status == model.MeetingStatusPending
		})).Return(nil)

		service := NewMeetingService(meetingRepo, new(MockUserRepository), &stubNotifier{}, new(MockMailer), recorder, testLogger())
		meeting, err := service.ChangeStatus(context.Background(), 1, model.MeetingStatusPending)

		assert.NoError(t, err)
		assert.Equal(t, model.MeetingStatusPending, meeting.Status)
		meetingRepo.AssertExpectations(t)
	})
}

func TestMeetingService_DeleteMeeting_RemovesGuestLinksFirst(t *testing.T) {
	meetingRepo := new(MockMeetingRepository)
	recorder := &stubRecorder{}

	var guestsDeleted bool
	meetingRepo.On("FindByIDWithHost", mock.Anything, uint(4)).Return(&model.Meeting{
		ID:   4,
		Host: model.User{ID: 7, Name: "Alice"},
	}, nil)
	meetingRepo.On("DeleteGuests", mock.Anything, uint(4)).Run(func(args mock.Arguments) {
		guestsDeleted = true
	}).Return(nil)
	meetingRepo.On("Delete", mock.Anything, uint(4)).Run(func(args mock.Arguments) {
		assert.True(t, guestsDeleted, "guest links must be removed before the meeting")
	}).Return(nil)

	service := NewMeetingService(meetingRepo, new(MockUserRepository), &stubNotifier{}, new(MockMailer), recorder, testLogger())
	err := service.DeleteMeeting(context.Background(), 4)

	assert.NoError(t, err)
	assert.Equal(t, []string{"Delete Meeting"}, recorder.entries)
	meetingRepo.AssertExpectations(t)
}

func TestMeetingService_MeetingsForWeek_SeedsEmptyDays(t *testing.T) {
	meetingRepo := new(MockMeetingRepository)

	start := mustTime(t, "2026-03-02T00:00:00Z")
	meeting := model.Meeting{ID: 1, HostID: 7, Date: mustTime(t, "2026-03-05T00:00:00Z")}
	meetingRepo.On("ListByDateWindow", mock.Anything, uint(7), start, start.AddDate(0, 0, 7)).
		Return([]model.Meeting{meeting}, nil)

	service := NewMeetingService(meetingRepo, new(MockUserRepository), &stubNotifier{}, new(MockMailer), &stubRecorder{}, testLogger())
	grouped, err := service.MeetingsForWeek(context.Background(), 7, start)

	assert.NoError(t, err)
	assert.Len(t, grouped, 7)
	assert.Empty(t, grouped["2026-03-02"])
	assert.Len(t, grouped["2026-03-05"], 1)
	meetingRepo.AssertExpectations(t)
}
