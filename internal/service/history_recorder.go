package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"meetbook/internal/model"
	"meetbook/internal/repository"
)

// HistoryRecorder appends audit records. Recording is best-effort: failures
// are logged and swallowed, never surfaced to the caller.
type HistoryRecorder interface {
	Record(operation, entityType, details string)
}

// HistoryService is the recorder plus the operator-facing listing.
type HistoryService interface {
	HistoryRecorder
	List(ctx context.Context) ([]model.History, error)
}

type historyService struct {
	repo repository.HistoryRepository
	log  *logrus.Entry
	// Channel for async history writes
	entries chan model.History
}

// NewHistoryService builds a HistoryService and starts its async write
// worker. Entries are batched and flushed periodically.
func NewHistoryService(repo repository.HistoryRepository, log *logrus.Logger) HistoryService {
	s := &historyService{
		repo:    repo,
		log:     log.WithField("component", "history"),
		entries: make(chan model.History, 100),
	}

	go s.worker(context.Background())

	return s
}

// worker drains the entry channel, flushing batches of 10 or whatever has
// accumulated each second.
func (s *historyService) worker(ctx context.Context) {
	batch := make([]model.History, 0, 10)
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := s.repo.CreateBatch(ctx, batch); err != nil {
			s.log.WithError(err).Warn("history batch write failed")
		}
		batch = batch[:0]
	}

	for {
		select {
		case entry, ok := <-s.entries:
			if !ok {
				flush()
				return
			}
			batch = append(batch, entry)
			if len(batch) >= 10 {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-ctx.Done():
			return
		}
	}
}

// Record enqueues an audit entry without blocking. When the channel is full
// the entry is written synchronously as a fallback; a write failure is logged
// and dropped.
func (s *historyService) Record(operation, entityType, details string) {
	entry := model.History{
		Operation:  operation,
		EntityType: entityType,
		Details:    details,
	}

	select {
	case s.entries <- entry:
	default:
		if err := s.repo.Create(context.Background(), &entry); err != nil {
			s.log.WithError(err).Warn("history write failed")
		}
	}
}

func (s *historyService) List(ctx context.Context) ([]model.History, error) {
	return s.repo.List(ctx)
}
