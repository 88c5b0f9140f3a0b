package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"quorum/contexts/crowd-labeling/campaign-service/domain/entities"
	domainerrors "quorum/contexts/crowd-labeling/campaign-service/domain/errors"
)

// Store is the in-memory repository used by tests and local wiring. It also
// satisfies the Clock and IDGenerator ports.
type Store struct {
	mu sync.RWMutex

	campaigns map[string]entities.Campaign
	answers   map[string]entities.Answer
	actionLog []entities.ActionLog
}

func NewStore(seed []entities.Campaign) *Store {
	campaigns := make(map[string]entities.Campaign, len(seed))
	for _, campaign := range seed {
		campaigns[campaign.CampaignID] = campaign
	}
	return &Store{
		campaigns: campaigns,
		answers:   make(map[string]entities.Answer),
	}
}

func (s *Store) SaveCampaign(_ context.Context, campaign entities.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.campaigns[strings.TrimSpace(campaign.CampaignID)] = campaign
	return nil
}

func (s *Store) GetCampaign(_ context.Context, campaignID string) (entities.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	campaign, ok := s.campaigns[strings.TrimSpace(campaignID)]
	if !ok {
		return entities.Campaign{}, domainerrors.ErrCampaignNotFound
	}
	return campaign, nil
}

func (s *Store) ListCampaigns(_ context.Context) ([]entities.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Campaign, 0, len(s.campaigns))
	for _, campaign := range s.campaigns {
		items = append(items, campaign)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) DeleteCampaign(_ context.Context, campaignID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	campaignID = strings.TrimSpace(campaignID)
	if _, ok := s.campaigns[campaignID]; !ok {
		return domainerrors.ErrCampaignNotFound
	}
	delete(s.campaigns, campaignID)
	for answerID, answer := range s.answers {
		if answer.CampaignID == campaignID {
			delete(s.answers, answerID)
		}
	}
	return nil
}

func (s *Store) MarkJobGenerated(_ context.Context, campaignID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	campaign, ok := s.campaigns[strings.TrimSpace(campaignID)]
	if !ok {
		return domainerrors.ErrCampaignNotFound
	}
	campaign.JobGenerated = true
	s.campaigns[campaign.CampaignID] = campaign
	return nil
}

func (s *Store) AnswerExists(_ context.Context, answer entities.Answer) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findAnswer(answer), nil
}

func (s *Store) SaveAnswer(_ context.Context, answer entities.Answer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Mirror of the unique-index backstop in postgres: a concurrent duplicate
	// insert is a benign no-op, never a double count.
	if s.findAnswer(answer) {
		return nil
	}
	s.answers[strings.TrimSpace(answer.AnswerID)] = answer
	return nil
}

func (s *Store) ListAnswersByCampaign(_ context.Context, campaignID string) ([]entities.Answer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Answer, 0)
	for _, answer := range s.answers {
		if answer.CampaignID == strings.TrimSpace(campaignID) {
			items = append(items, answer)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) CountAnswersByCampaign(_ context.Context, campaignID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, answer := range s.answers {
		if answer.CampaignID == strings.TrimSpace(campaignID) {
			count++
		}
	}
	return count, nil
}

func (s *Store) AppendActionLog(_ context.Context, entry entities.ActionLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actionLog = append(s.actionLog, entry)
	return nil
}

// ActionLogEntries exposes the appended log for test assertions.
func (s *Store) ActionLogEntries() []entities.ActionLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.ActionLog(nil), s.actionLog...)
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) findAnswer(answer entities.Answer) bool {
	for _, existing := range s.answers {
		if existing.HITID == answer.HITID &&
			existing.WorkerID == answer.WorkerID &&
			existing.CampaignID == answer.CampaignID &&
			existing.TermID == answer.TermID &&
			existing.OptionID == answer.OptionID {
			return true
		}
	}
	return false
}
