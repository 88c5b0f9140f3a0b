package commands

import (
	"context"
	"errors"
	"strings"
	"testing"

	"quorum/contexts/crowd-labeling/campaign-service/adapters/memory"
	"quorum/contexts/crowd-labeling/campaign-service/domain/entities"
	domainerrors "quorum/contexts/crowd-labeling/campaign-service/domain/errors"
)

func createTestCampaign(t *testing.T, store *memory.Store) entities.Campaign {
	t.Helper()
	campaign, err := newCreateUseCase(store).Execute(context.Background(), validCreateCommand())
	if err != nil {
		t.Fatalf("seed campaign failed: %v", err)
	}
	return campaign
}

func TestGenerateJobSubmitsPartitionedQuizzes(t *testing.T) {
	store := memory.NewStore(nil)
	marketplace := memory.NewMarketplace()
	campaign := createTestCampaign(t, store)

	uc := GenerateJobUseCase{
		Campaigns:   store,
		Marketplace: marketplace,
		Clock:       store,
		IDGen:       store,
	}
	result, err := uc.Execute(context.Background(), campaign.CampaignID)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	// 3 terms at 2 per quiz is 2 HITs.
	if result.QuizCount != 2 || len(result.HITIDs) != 2 {
		t.Fatalf("expected 2 quizzes, got %d (%v)", result.QuizCount, result.HITIDs)
	}
	quizzes := marketplace.SubmittedQuizzes()
	if len(quizzes) != 2 {
		t.Fatalf("expected 2 submitted quizzes, got %d", len(quizzes))
	}
	if len(quizzes[0].Questions) != 2 || len(quizzes[1].Questions) != 1 {
		t.Fatalf("expected 2+1 question split, got %d+%d", len(quizzes[0].Questions), len(quizzes[1].Questions))
	}
	if quizzes[0].MaxAssignments != campaign.TimesPerTerm {
		t.Fatalf("expected max assignments %d, got %d", campaign.TimesPerTerm, quizzes[0].MaxAssignments)
	}
	if !quizzes[0].Reward.Equal(campaign.RewardPerQuiz) {
		t.Fatalf("expected reward %s, got %s", campaign.RewardPerQuiz, quizzes[0].Reward)
	}

	first := quizzes[0].Questions[0]
	campaignID, termID, err := entities.DecodeQuestionToken(first.Token)
	if err != nil {
		t.Fatalf("submitted token must decode: %v", err)
	}
	if campaignID != campaign.CampaignID || termID != campaign.Terms[0].TermID {
		t.Fatalf("token round trip mismatch: %s / %s", campaignID, termID)
	}
	if !strings.Contains(first.Text, campaign.Terms[0].Text) {
		t.Fatalf("question text must embed the term, got %q", first.Text)
	}
	if len(first.Choices) != len(campaign.Options) {
		t.Fatalf("expected %d choices, got %d", len(campaign.Options), len(first.Choices))
	}

	stored, _ := store.GetCampaign(context.Background(), campaign.CampaignID)
	if !stored.JobGenerated {
		t.Fatalf("campaign must be locked after generation")
	}
}

func TestGenerateJobRejectsSecondGeneration(t *testing.T) {
	store := memory.NewStore(nil)
	marketplace := memory.NewMarketplace()
	campaign := createTestCampaign(t, store)

	uc := GenerateJobUseCase{Campaigns: store, Marketplace: marketplace, Clock: store, IDGen: store}
	if _, err := uc.Execute(context.Background(), campaign.CampaignID); err != nil {
		t.Fatalf("first generate failed: %v", err)
	}
	if _, err := uc.Execute(context.Background(), campaign.CampaignID); !errors.Is(err, domainerrors.ErrJobAlreadyGenerated) {
		t.Fatalf("expected ErrJobAlreadyGenerated, got %v", err)
	}
	if got := len(marketplace.SubmittedQuizzes()); got != 2 {
		t.Fatalf("second attempt must not resubmit quizzes, got %d", got)
	}
}

func TestGenerateJobUnknownCampaign(t *testing.T) {
	store := memory.NewStore(nil)
	uc := GenerateJobUseCase{Campaigns: store, Marketplace: memory.NewMarketplace(), Clock: store, IDGen: store}
	if _, err := uc.Execute(context.Background(), "ghost"); !errors.Is(err, domainerrors.ErrCampaignNotFound) {
		t.Fatalf("expected ErrCampaignNotFound, got %v", err)
	}
}

func TestGenerateJobMarketplaceOutageLeavesCampaignUnlocked(t *testing.T) {
	store := memory.NewStore(nil)
	marketplace := memory.NewMarketplace()
	campaign := createTestCampaign(t, store)
	marketplace.SetUnavailable(true)

	uc := GenerateJobUseCase{Campaigns: store, Marketplace: marketplace, Clock: store, IDGen: store}
	if _, err := uc.Execute(context.Background(), campaign.CampaignID); !errors.Is(err, domainerrors.ErrMarketplaceUnavailable) {
		t.Fatalf("expected ErrMarketplaceUnavailable, got %v", err)
	}

	stored, _ := store.GetCampaign(context.Background(), campaign.CampaignID)
	if stored.JobGenerated {
		t.Fatalf("failed generation must leave the flag unset for retry")
	}

	// Retry succeeds once the marketplace recovers.
	marketplace.SetUnavailable(false)
	if _, err := uc.Execute(context.Background(), campaign.CampaignID); err != nil {
		t.Fatalf("retry after recovery failed: %v", err)
	}
}

func TestGenerateJobWritesActionLog(t *testing.T) {
	store := memory.NewStore(nil)
	marketplace := memory.NewMarketplace()
	campaign := createTestCampaign(t, store)

	uc := GenerateJobUseCase{Campaigns: store, Marketplace: marketplace, Clock: store, IDGen: store}
	if _, err := uc.Execute(context.Background(), campaign.CampaignID); err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	entries := store.ActionLogEntries()
	generated := 0
	for _, entry := range entries {
		if entry.Source == "job_generator" {
			generated++
		}
	}
	if generated != 2 {
		t.Fatalf("expected one log entry per quiz, got %d", generated)
	}
}
