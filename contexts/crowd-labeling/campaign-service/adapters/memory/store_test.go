package memory

import (
	"context"
	"fmt"
	"testing"

	"quorum/contexts/crowd-labeling/campaign-service/domain/entities"
	"quorum/contexts/crowd-labeling/campaign-service/ports"
)

func TestSaveAnswerDuplicateIsNoOp(t *testing.T) {
	store := NewStore(nil)
	answer := entities.Answer{
		AnswerID:   "ans-1",
		HITID:      "hit-1",
		WorkerID:   "worker-1",
		CampaignID: "camp-1",
		TermID:     "term-1",
		OptionID:   "opt-1",
	}
	if err := store.SaveAnswer(context.Background(), answer); err != nil {
		t.Fatalf("first save failed: %v", err)
	}

	// Same identity tuple, different surrogate id: the duplicate must be
	// swallowed, mirroring the unique-index behavior in postgres.
	answer.AnswerID = "ans-2"
	if err := store.SaveAnswer(context.Background(), answer); err != nil {
		t.Fatalf("duplicate save failed: %v", err)
	}

	count, _ := store.CountAnswersByCampaign(context.Background(), "camp-1")
	if count != 1 {
		t.Fatalf("expected 1 answer, got %d", count)
	}

	exists, _ := store.AnswerExists(context.Background(), answer)
	if !exists {
		t.Fatalf("identity tuple must report existing")
	}
}

func TestMarketplacePageSizeBound(t *testing.T) {
	marketplace := NewMarketplace()
	for i := 0; i < 5; i++ {
		marketplace.QueueAssignment(ports.Assignment{
			HITID:        "hit-1",
			AssignmentID: fmt.Sprintf("asg-%d", i),
			WorkerID:     fmt.Sprintf("worker-%d", i),
		})
	}

	page, err := marketplace.ReviewableAssignments(context.Background(), 3)
	if err != nil {
		t.Fatalf("poll failed: %v", err)
	}
	if len(page) != 3 {
		t.Fatalf("expected page of 3, got %d", len(page))
	}
}
