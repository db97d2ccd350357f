package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"meetbook/internal/ai"
	apperrors "meetbook/internal/errors"
	"meetbook/internal/repository"
)

// Token budgets per ranking variant.
const (
	hostRelevanceMaxTokens = 200
	guestMatchMaxTokens    = 500
)

// emptyRanking is returned without a model call when there is nothing to rank.
var emptyRanking = json.RawMessage("[]")

// RankingService runs the two LLM ranking pipelines: structured context →
// prompt → model call → extracted JSON array, returned verbatim.
type RankingService interface {
	// RankMeetingsForSlot scores the slot's meetings against the hosting
	// user's profession.
	RankMeetingsForSlot(ctx context.Context, slotID uint) (json.RawMessage, error)
	// RankSlotsForGuest orders every active slot of every other user by
	// relevance to the guest's free-text requirement.
	RankSlotsForGuest(ctx context.Context, guestID uint, requirement string) (json.RawMessage, error)
}

type rankingService struct {
	slotRepo repository.SlotRepository
	userRepo repository.UserRepository
	ranker   ai.Ranker
	log      *logrus.Entry
}

// NewRankingService builds a RankingService.
func NewRankingService(slotRepo repository.SlotRepository, userRepo repository.UserRepository, ranker ai.Ranker, log *logrus.Logger) RankingService {
	return &rankingService{
		slotRepo: slotRepo,
		userRepo: userRepo,
		ranker:   ranker,
		log:      log.WithField("component", "ranking"),
	}
}

func (s *rankingService) RankMeetingsForSlot(ctx context.Context, slotID uint) (json.RawMessage, error) {
	slot, err := s.slotRepo.FindByIDWithRelations(ctx, slotID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrSlotNotFound
		}
		return nil, fmt.Errorf("find slot: %w", err)
	}

	if len(slot.Meetings) == 0 {
		return emptyRanking, nil
	}

	candidates := make([]ai.MeetingCandidate, 0, len(slot.Meetings))
	for _, meeting := range slot.Meetings {
		candidates = append(candidates, ai.MeetingCandidate{
			ID:          meeting.ID,
			Description: meeting.Description,
		})
	}

	prompt := ai.BuildHostRelevancePrompt(slot.User.Profession, candidates)
	return s.ranker.Rank(ctx, prompt, hostRelevanceMaxTokens)
}

func (s *rankingService) RankSlotsForGuest(ctx context.Context, guestID uint, requirement string) (json.RawMessage, error) {
	users, err := s.userRepo.ListWithActiveSlots(ctx, guestID)
	if err != nil {
		return nil, fmt.Errorf("list users with active slots: %w", err)
	}
	if len(users) == 0 {
		return nil, apperrors.ErrNoEligibleHosts
	}

	hosts := make([]ai.HostCandidate, 0, len(users))
	total := 0
	for _, user := range users {
		host := ai.HostCandidate{
			ID:         user.ID,
			Name:       user.Name,
			Profession: user.Profession,
			Slots:      make([]ai.SlotCandidate, 0, len(user.Slots)),
		}
		for _, slot := range user.Slots {
			host.Slots = append(host.Slots, ai.SlotCandidate{
				ID:          slot.ID,
				Title:       slot.Title,
				Description: slot.Description,
				StartTime:   slot.StartTime,
				EndTime:     slot.EndTime,
			})
			total++
		}
		hosts = append(hosts, host)
	}
	if total == 0 {
		return emptyRanking, nil
	}

	prompt := ai.BuildGuestMatchPrompt(requirement, hosts)
	return s.ranker.Rank(ctx, prompt, guestMatchMaxTokens)
}
