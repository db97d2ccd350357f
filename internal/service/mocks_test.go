package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"meetbook/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) ListWithActiveSlots(ctx context.Context, excludeID uint) ([]model.User, error) {
	args := m.Called(ctx, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

// MockSlotRepository is a mock implementation of SlotRepository.
type MockSlotRepository struct {
	mock.Mock
}

func (m *MockSlotRepository) Create(ctx context.Context, slot *model.Slot) error {
	args := m.Called(ctx, slot)
	return args.Error(0)
}

func (m *MockSlotRepository) Update(ctx context.Context, slot *model.Slot) error {
	args := m.Called(ctx, slot)
	return args.Error(0)
}

func (m *MockSlotRepository) FindByID(ctx context.Context, id uint) (*model.Slot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Slot), args.Error(1)
}

func (m *MockSlotRepository) FindByIDWithRelations(ctx context.Context, id uint) (*model.Slot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Slot), args.Error(1)
}

func (m *MockSlotRepository) List(ctx context.Context) ([]model.Slot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Slot), args.Error(1)
}

func (m *MockSlotRepository) ListByUser(ctx context.Context, userID uint) ([]model.Slot, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Slot), args.Error(1)
}

func (m *MockSlotRepository) FindActiveSlotsForUser(ctx context.Context, userID, excludeID uint) ([]model.Slot, error) {
	args := m.Called(ctx, userID, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Slot), args.Error(1)
}

func (m *MockSlotRepository) ListByDateWindow(ctx context.Context, userID uint, from, to time.Time) ([]model.Slot, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Slot), args.Error(1)
}

// MockMeetingRepository is a mock implementation of MeetingRepository.
type MockMeetingRepository struct {
	mock.Mock
}

func (m *MockMeetingRepository) Create(ctx context.Context, meeting *model.Meeting) error {
	args := m.Called(ctx, meeting)
	return args.Error(0)
}

func (m *MockMeetingRepository) Update(ctx context.Context, meeting *model.Meeting) error {
	args := m.Called(ctx, meeting)
	return args.Error(0)
}

func (m *MockMeetingRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMeetingRepository) FindByID(ctx context.Context, id uint) (*model.Meeting, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Meeting), args.Error(1)
}

func (m *MockMeetingRepository) FindByIDWithHost(ctx context.Context, id uint) (*model.Meeting, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Meeting), args.Error(1)
}

func (m *MockMeetingRepository) FindByTuple(ctx context.Context, description string, date time.Time, slotID, hostID uint) (*model.Meeting, error) {
	args := m.Called(ctx, description, date, slotID, hostID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Meeting), args.Error(1)
}

func (m *MockMeetingRepository) List(ctx context.Context) ([]model.Meeting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Meeting), args.Error(1)
}

func (m *MockMeetingRepository) ListByHost(ctx context.Context, hostID uint) ([]model.Meeting, error) {
	args := m.Called(ctx, hostID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Meeting), args.Error(1)
}

func (m *MockMeetingRepository) ListBySlot(ctx context.Context, slotID uint) ([]model.Meeting, error) {
	args := m.Called(ctx, slotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Meeting), args.Error(1)
}

func (m *MockMeetingRepository) ListByDateWindow(ctx context.Context, hostID uint, from, to time.Time) ([]model.Meeting, error) {
	args := m.Called(ctx, hostID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Meeting), args.Error(1)
}

func (m *MockMeetingRepository) AttachGuest(ctx context.Context, meetingID, guestID uint) error {
	args := m.Called(ctx, meetingID, guestID)
	return args.Error(0)
}

func (m *MockMeetingRepository) DeleteGuests(ctx context.Context, meetingID uint) error {
	args := m.Called(ctx, meetingID)
	return args.Error(0)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uint, email string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, email, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uint, string, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(uint), args.String(1), args.Error(2)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

// MockRanker is a mock implementation of ai.Ranker.
type MockRanker struct {
	mock.Mock
}

func (m *MockRanker) Rank(ctx context.Context, prompt string, maxTokens int) (json.RawMessage, error) {
	args := m.Called(ctx, prompt, maxTokens)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

// MockMailer is a mock implementation of mailer.Mailer.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(to []string, subject, body string) error {
	args := m.Called(to, subject, body)
	return args.Error(0)
}

// stubRecorder captures audit records without asserting on them.
type stubRecorder struct {
	mu      sync.Mutex
	entries []string
}

func (r *stubRecorder) Record(operation, entityType, details string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, operation+" "+entityType)
}

// stubNotifier captures notifications without asserting on them.
type stubNotifier struct {
	mu      sync.Mutex
	userIDs []uint
}

func (n *stubNotifier) Notify(ctx context.Context, userID uint, title, description string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.userIDs = append(n.userIDs, userID)
}

func (n *stubNotifier) ListByUser(ctx context.Context, userID uint) ([]model.Notification, error) {
	return nil, nil
}
