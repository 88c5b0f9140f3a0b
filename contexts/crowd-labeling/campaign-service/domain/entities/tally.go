package entities

// InconclusiveLabel marks a term for which no option cleared the consensus
// threshold. It is a sentinel, never a real option.
const InconclusiveLabel = "inconclusive"

// ResultItem is the per-(term, option) tally. Percentage is computed against
// the campaign's configured times-per-term, not the observed answer total, so
// it can exceed 100 when the marketplace delivers more answers than requested
// and the percentages for one term need not sum to 100. It is intentionally
// never clamped.
type ResultItem struct {
	OptionID      string
	OptionText    string
	TimesSelected int
	Percentage    int
}

// CampaignResult is the consensus outcome for one term.
type CampaignResult struct {
	TermID       string
	Term         string
	Items        []ResultItem
	Chosen       ResultItem
	Inconclusive bool
}

// InconclusiveItem is the sentinel chosen result for terms without consensus.
func InconclusiveItem() ResultItem {
	return ResultItem{OptionText: InconclusiveLabel}
}

// TallyTerm computes the vote breakdown and consensus decision for a single
// term. The winner is selected by a fold over the options in campaign option
// order: an option becomes the champion only when its percentage is strictly
// greater than the current champion's AND strictly greater than the threshold,
// so ties resolve to the earliest option and a percentage exactly at the
// threshold never wins.
//
// The function is pure. timesPerTerm == 0 is a contract violation prevented by
// campaign-creation validation and panics rather than producing a bogus tally.
func TallyTerm(term Term, options []Option, answers []Answer, timesPerTerm int, threshold int) CampaignResult {
	if timesPerTerm <= 0 {
		panic("tally: timesPerTerm must be positive")
	}

	items := make([]ResultItem, 0, len(options))
	for _, option := range options {
		selected := 0
		for _, answer := range answers {
			if answer.TermID == term.TermID && answer.OptionID == option.OptionID {
				selected++
			}
		}
		items = append(items, ResultItem{
			OptionID:      option.OptionID,
			OptionText:    option.Text,
			TimesSelected: selected,
			Percentage:    selected * 100 / timesPerTerm,
		})
	}

	chosen := InconclusiveItem()
	conclusive := false
	for _, item := range items {
		if item.Percentage > chosen.Percentage && item.Percentage > threshold {
			chosen = item
			conclusive = true
		}
	}

	return CampaignResult{
		TermID:       term.TermID,
		Term:         term.Text,
		Items:        items,
		Chosen:       chosen,
		Inconclusive: !conclusive,
	}
}
