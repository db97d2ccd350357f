package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	apperrors "meetbook/internal/errors"
	"meetbook/internal/mailer"
	"meetbook/internal/model"
	"meetbook/internal/repository"
)

// MeetingInput is the payload for creating a meeting.
type MeetingInput struct {
	Description string
	Date        time.Time
	SlotID      uint
	HostID      uint
	GuestIDs    []uint
}

// MeetingService handles meeting lifecycle operations.
type MeetingService interface {
	CreateMeeting(ctx context.Context, input MeetingInput) (*model.Meeting, error)
	GetMeeting(ctx context.Context, id uint) (*model.Meeting, error)
	ListMeetings(ctx context.Context) ([]model.Meeting, error)
	ListMeetingsByHost(ctx context.Context, hostID uint) ([]model.Meeting, error)
	ListMeetingsBySlot(ctx context.Context, slotID uint) ([]model.Meeting, error)
	// MeetingsForWeek groups the host's meetings over the 7 days starting
	// at start, keyed by YYYY-MM-DD.
	MeetingsForWeek(ctx context.Context, hostID uint, start time.Time) (map[string][]model.Meeting, error)
	ChangeStatus(ctx context.Context, meetingID uint, status model.MeetingStatus) (*model.Meeting, error)
	DeleteMeeting(ctx context.Context, id uint) error
}

type meetingService struct {
	meetingRepo   repository.MeetingRepository
	userRepo      repository.UserRepository
	notifications NotificationService
	mail          mailer.Mailer
	recorder      HistoryRecorder
	log           *logrus.Entry
}

// NewMeetingService builds a MeetingService.
func NewMeetingService(
	meetingRepo repository.MeetingRepository,
	userRepo repository.UserRepository,
	notifications NotificationService,
	mail mailer.Mailer,
	recorder HistoryRecorder,
	log *logrus.Logger,
) MeetingService {
	return &meetingService{
		meetingRepo:   meetingRepo,
		userRepo:      userRepo,
		notifications: notifications,
		mail:          mail,
		recorder:      recorder,
		log:           log.WithField("component", "meetings"),
	}
}

// CreateMeeting rejects an exact (description, date, slotID, hostID)
// duplicate, writes the meeting, attaches guests concurrently, then notifies
// the host. Guest attachment is not transactional with the meeting write:
// a partial failure leaves the attached guests in place and is only logged.
// Email and notification are likewise best-effort.
func (s *meetingService) CreateMeeting(ctx context.Context, input MeetingInput) (*model.Meeting, error) {
	existing, err := s.meetingRepo.FindByTuple(ctx, input.Description, input.Date, input.SlotID, input.HostID)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check duplicate meeting: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrMeetingExists
	}

	host, err := s.userRepo.FindByID(ctx, input.HostID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find host: %w", err)
	}

	meeting := &model.Meeting{
		Description: input.Description,
		Date:        input.Date,
		SlotID:      input.SlotID,
		HostID:      input.HostID,
		Status:      model.MeetingStatusPending,
	}
	if err := s.meetingRepo.Create(ctx, meeting); err != nil {
		return nil, fmt.Errorf("create meeting: %w", err)
	}

	// Guests are attached with independent concurrent writes; order among
	// guests is irrelevant.
	var wg sync.WaitGroup
	for _, guestID := range input.GuestIDs {
		wg.Add(1)
		go func(guestID uint) {
			defer wg.Done()
			if err := s.meetingRepo.AttachGuest(ctx, meeting.ID, guestID); err != nil {
				s.log.WithError(err).WithFields(logrus.Fields{
					"meeting_id": meeting.ID,
					"guest_id":   guestID,
				}).Warn("guest attach failed")
			}
		}(guestID)
	}
	wg.Wait()

	s.notifyHost(ctx, host, meeting)
	s.recorder.Record("Create", "Meeting", fmt.Sprintf("User %s creates a new meeting.", host.Name))

	return meeting, nil
}

// notifyHost sends the booking mail and writes the notification row. The
// meeting is already committed; neither failure rolls it back.
func (s *meetingService) notifyHost(ctx context.Context, host *model.User, meeting *model.Meeting) {
	subject := "New meeting booked"
	body := fmt.Sprintf("A new meeting has been booked for %s: %s",
		meeting.Date.Format("2006-01-02"), meeting.Description)

	if err := s.mail.Send([]string{host.Email}, subject, body); err != nil {
		s.log.WithError(err).WithField("meeting_id", meeting.ID).Warn("host email failed")
	}
	s.notifications.Notify(ctx, host.ID, subject, body)
}

func (s *meetingService) GetMeeting(ctx context.Context, id uint) (*model.Meeting, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrMeetingNotFound
		}
		return nil, err
	}
	return meeting, nil
}

func (s *meetingService) ListMeetings(ctx context.Context) ([]model.Meeting, error) {
	return s.meetingRepo.List(ctx)
}

func (s *meetingService) ListMeetingsByHost(ctx context.Context, hostID uint) ([]model.Meeting, error) {
	return s.meetingRepo.ListByHost(ctx, hostID)
}

func (s *meetingService) ListMeetingsBySlot(ctx context.Context, slotID uint) ([]model.Meeting, error) {
	return s.meetingRepo.ListBySlot(ctx, slotID)
}

func (s *meetingService) MeetingsForWeek(ctx context.Context, hostID uint, start time.Time) (map[string][]model.Meeting, error) {
	from := start.Truncate(24 * time.Hour)
	to := from.AddDate(0, 0, 7)

	meetings, err := s.meetingRepo.ListByDateWindow(ctx, hostID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list meetings by window: %w", err)
	}

	grouped := make(map[string][]model.Meeting, 7)
	for i := 0; i < 7; i++ {
		day := from.AddDate(0, 0, i).Format("2006-01-02")
		grouped[day] = []model.Meeting{}
	}
	for _, meeting := range meetings {
		day := meeting.Date.Format("2006-01-02")
		grouped[day] = append(grouped[day], meeting)
	}
	return grouped, nil
}

// ChangeStatus writes the new status directly. Any state may transition to
// any other; there is no forward-only ordering.
func (s *meetingService) ChangeStatus(ctx context.Context, meetingID uint, status model.MeetingStatus) (*model.Meeting, error) {
	if !status.Valid() {
		return nil, apperrors.ErrInvalidStatus
	}

	meeting, err := s.meetingRepo.FindByIDWithHost(ctx, meetingID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("find meeting: %w", err)
	}

	meeting.Status = status
	if err := s.meetingRepo.Update(ctx, meeting); err != nil {
		return nil, fmt.Errorf("update meeting status: %w", err)
	}

	s.recorder.Record("Update", "Meeting", fmt.Sprintf("User %s updates meeting status.", meeting.Host.Name))
	return meeting, nil
}

// DeleteMeeting removes the guest links first, then the meeting itself.
func (s *meetingService) DeleteMeeting(ctx context.Context, id uint) error {
	meeting, err := s.meetingRepo.FindByIDWithHost(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrMeetingNotFound
		}
		return fmt.Errorf("find meeting: %w", err)
	}

	if err := s.meetingRepo.DeleteGuests(ctx, id); err != nil {
		return fmt.Errorf("delete meeting guests: %w", err)
	}
	if err := s.meetingRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete meeting: %w", err)
	}

	s.recorder.Record("Delete", "Meeting", fmt.Sprintf("User %s deletes a meeting.", meeting.Host.Name))
	return nil
}
