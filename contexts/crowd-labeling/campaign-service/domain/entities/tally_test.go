package entities

import "testing"

func tallyFixture() (Term, []Option) {
	term := Term{TermID: "term-1", Text: "tofu"}
	options := []Option{
		{OptionID: "opt-yes", Text: "yes", Position: 0},
		{OptionID: "opt-no", Text: "no", Position: 1},
	}
	return term, options
}

func answersFor(term Term, optionID string, n int) []Answer {
	answers := make([]Answer, 0, n)
	for i := 0; i < n; i++ {
		answers = append(answers, Answer{
			TermID:   term.TermID,
			OptionID: optionID,
		})
	}
	return answers
}

func TestTallyTermChoosesMajorityAboveThreshold(t *testing.T) {
	term, options := tallyFixture()
	answers := append(answersFor(term, "opt-yes", 4), answersFor(term, "opt-no", 1)...)

	result := TallyTerm(term, options, answers, 5, 75)
	if result.Inconclusive {
		t.Fatalf("expected conclusive result, got inconclusive: %+v", result)
	}
	if result.Chosen.OptionID != "opt-yes" {
		t.Fatalf("expected opt-yes chosen, got %s", result.Chosen.OptionID)
	}
	if result.Chosen.Percentage != 80 {
		t.Fatalf("expected 80%%, got %d", result.Chosen.Percentage)
	}
	if result.Items[1].Percentage != 20 {
		t.Fatalf("expected losing option at 20%%, got %d", result.Items[1].Percentage)
	}
}

func TestTallyTermExactlyAtThresholdIsInconclusive(t *testing.T) {
	term, options := tallyFixture()
	// 3 of 4 answers is exactly 75%; the winner must strictly exceed the
	// threshold, so this stays inconclusive.
	answers := append(answersFor(term, "opt-yes", 3), answersFor(term, "opt-no", 1)...)

	result := TallyTerm(term, options, answers, 4, 75)
	if !result.Inconclusive {
		t.Fatalf("expected inconclusive at exact threshold, got %+v", result.Chosen)
	}
	if result.Chosen.OptionText != InconclusiveLabel {
		t.Fatalf("expected %q sentinel, got %q", InconclusiveLabel, result.Chosen.OptionText)
	}
}

func TestTallyTermOnePercentOverThresholdWins(t *testing.T) {
	term, options := tallyFixture()
	answers := answersFor(term, "opt-yes", 19)

	result := TallyTerm(term, options, answers, 25, 75)
	if result.Inconclusive {
		t.Fatalf("expected 76%% to clear a 75 threshold")
	}
	if result.Chosen.Percentage != 76 {
		t.Fatalf("expected 76%%, got %d", result.Chosen.Percentage)
	}
}

func TestTallyTermPercentageCanExceedHundred(t *testing.T) {
	term, options := tallyFixture()
	// The marketplace can deliver more answers than requested; percentages
	// are computed against the configured times-per-term and never clamped.
	answers := answersFor(term, "opt-yes", 6)

	result := TallyTerm(term, options, answers, 4, 75)
	if result.Chosen.Percentage != 150 {
		t.Fatalf("expected unclamped 150%%, got %d", result.Chosen.Percentage)
	}
	if result.Inconclusive {
		t.Fatalf("expected conclusive result at 150%%")
	}
}

func TestTallyTermPercentageFloors(t *testing.T) {
	term, options := tallyFixture()
	answers := answersFor(term, "opt-yes", 2)

	result := TallyTerm(term, options, answers, 3, 50)
	// 2/3 is 66.67; integer tally floors to 66.
	if result.Items[0].Percentage != 66 {
		t.Fatalf("expected floored 66%%, got %d", result.Items[0].Percentage)
	}
}

func TestTallyTermTieResolvesToEarlierOption(t *testing.T) {
	term, options := tallyFixture()
	answers := append(answersFor(term, "opt-yes", 2), answersFor(term, "opt-no", 2)...)

	result := TallyTerm(term, options, answers, 2, 50)
	if result.Inconclusive {
		t.Fatalf("expected a winner at 100%% vs 100%%")
	}
	if result.Chosen.OptionID != "opt-yes" {
		t.Fatalf("tie must resolve to the earlier option, got %s", result.Chosen.OptionID)
	}
}

func TestTallyTermIgnoresOtherTermsAnswers(t *testing.T) {
	term, options := tallyFixture()
	answers := append(answersFor(term, "opt-yes", 2), Answer{TermID: "term-other", OptionID: "opt-yes"})

	result := TallyTerm(term, options, answers, 2, 50)
	if result.Items[0].TimesSelected != 2 {
		t.Fatalf("expected 2 selections for this term, got %d", result.Items[0].TimesSelected)
	}
}

func TestTallyTermPanicsOnZeroTimesPerTerm(t *testing.T) {
	term, options := tallyFixture()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for timesPerTerm == 0")
		}
	}()
	TallyTerm(term, options, nil, 0, 75)
}
