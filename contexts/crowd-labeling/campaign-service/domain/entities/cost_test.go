package entities

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestEstimateCostExample(t *testing.T) {
	// 10 terms asked 3 times each is 30 paid question slots; at 5 per quiz
	// that is 6 quizzes, and 6 x 0.05 must come out exactly 0.30.
	cost := EstimateCost(10, 3, 5, decimal.NewFromFloat(0.05))
	if cost.StringFixed(2) != "0.30" {
		t.Fatalf("expected 0.30, got %s", cost.StringFixed(2))
	}
}

func TestEstimateCostRoundsQuizCountUp(t *testing.T) {
	// 7 * 2 = 14 slots at 5 per quiz needs 3 quizzes.
	cost := EstimateCost(7, 2, 5, decimal.NewFromFloat(0.10))
	if cost.StringFixed(2) != "0.30" {
		t.Fatalf("expected 0.30 for a partial final quiz, got %s", cost.StringFixed(2))
	}
}

func TestEstimateCostAvoidsFloatDrift(t *testing.T) {
	// 0.1 * 3 in binary floats is 0.30000000000000004.
	cost := EstimateCost(3, 1, 1, decimal.NewFromFloat(0.10))
	if !cost.Equal(decimal.NewFromFloat(0.30)) {
		t.Fatalf("expected exact 0.30, got %s", cost.String())
	}
}

func TestEstimateCostDegenerateInputs(t *testing.T) {
	if cost := EstimateCost(0, 3, 5, decimal.NewFromFloat(0.05)); !cost.IsZero() {
		t.Fatalf("expected zero cost for zero terms, got %s", cost.String())
	}
	if cost := EstimateCost(10, 0, 5, decimal.NewFromFloat(0.05)); !cost.IsZero() {
		t.Fatalf("expected zero cost for zero repetitions, got %s", cost.String())
	}
	if cost := EstimateCost(10, 3, 0, decimal.NewFromFloat(0.05)); !cost.IsZero() {
		t.Fatalf("expected zero cost for zero quiz size, got %s", cost.String())
	}
}

func TestCampaignEstimatedCost(t *testing.T) {
	campaign := Campaign{
		Terms:         makeTerms(10),
		TimesPerTerm:  3,
		TermsPerQuiz:  5,
		RewardPerQuiz: decimal.NewFromFloat(0.05),
	}
	if got := campaign.EstimatedCost().StringFixed(2); got != "0.30" {
		t.Fatalf("expected 0.30, got %s", got)
	}
}
