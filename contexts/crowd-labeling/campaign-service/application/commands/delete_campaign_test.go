package commands

import (
	"context"
	"errors"
	"testing"

	"quorum/contexts/crowd-labeling/campaign-service/adapters/memory"
	"quorum/contexts/crowd-labeling/campaign-service/domain/entities"
	domainerrors "quorum/contexts/crowd-labeling/campaign-service/domain/errors"
)

func TestDeleteCampaignCascadesAnswers(t *testing.T) {
	store := memory.NewStore(nil)
	campaign := createTestCampaign(t, store)
	err := store.SaveAnswer(context.Background(), entities.Answer{
		AnswerID:   "ans-1",
		HITID:      "hit-1",
		WorkerID:   "worker-1",
		CampaignID: campaign.CampaignID,
		TermID:     campaign.Terms[0].TermID,
		OptionID:   campaign.Options[0].OptionID,
	})
	if err != nil {
		t.Fatalf("seed answer failed: %v", err)
	}

	uc := DeleteCampaignUseCase{Campaigns: store, Clock: store, IDGen: store}
	if err := uc.Execute(context.Background(), campaign.CampaignID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := store.GetCampaign(context.Background(), campaign.CampaignID); !errors.Is(err, domainerrors.ErrCampaignNotFound) {
		t.Fatalf("expected campaign gone, got %v", err)
	}
	count, _ := store.CountAnswersByCampaign(context.Background(), campaign.CampaignID)
	if count != 0 {
		t.Fatalf("expected answers cascaded, got %d", count)
	}

	logged := false
	for _, entry := range store.ActionLogEntries() {
		if entry.Source == "campaign" {
			logged = true
		}
	}
	if !logged {
		t.Fatalf("deletion must append to the action log")
	}
}

func TestDeleteCampaignUnknown(t *testing.T) {
	store := memory.NewStore(nil)
	uc := DeleteCampaignUseCase{Campaigns: store, Clock: store, IDGen: store}
	if err := uc.Execute(context.Background(), "ghost"); !errors.Is(err, domainerrors.ErrCampaignNotFound) {
		t.Fatalf("expected ErrCampaignNotFound, got %v", err)
	}
}
