package queries

import (
	"context"
	"strings"

	"quorum/contexts/crowd-labeling/campaign-service/domain/entities"
	"quorum/contexts/crowd-labeling/campaign-service/ports"
)

// ReportRow is one exportable line of a campaign report. Percentages follow
// the campaign's option order, identical across every row, so a columnar
// export (CSV and the like) lines up without further sorting.
type ReportRow struct {
	TermID      string
	Term        string
	Chosen      string
	Percentages []int
}

// Report is the derived, presentation-ready view of a campaign's results.
type Report struct {
	CampaignID    string
	Title         string
	OptionColumns []string
	Rows          []ReportRow
}

// ResultsUseCase summarizes ingested answers into per-term consensus
// decisions. Threshold is injected explicitly so one engine instance can
// serve differently configured deployments; it is never read from ambient
// state at tally time.
type ResultsUseCase struct {
	Campaigns ports.CampaignRepository
	Threshold int
}

// CampaignResults tallies every term of the campaign in term order.
func (uc ResultsUseCase) CampaignResults(ctx context.Context, campaignID string) ([]entities.CampaignResult, error) {
	campaign, err := uc.Campaigns.GetCampaign(ctx, strings.TrimSpace(campaignID))
	if err != nil {
		return nil, err
	}
	answers, err := uc.Campaigns.ListAnswersByCampaign(ctx, campaign.CampaignID)
	if err != nil {
		return nil, err
	}

	results := make([]entities.CampaignResult, 0, len(campaign.Terms))
	for _, term := range campaign.Terms {
		results = append(results, entities.TallyTerm(term, campaign.Options, answers, campaign.TimesPerTerm, uc.Threshold))
	}
	return results, nil
}

// CampaignReport flattens the tallies into the stable-ordered export shape.
func (uc ResultsUseCase) CampaignReport(ctx context.Context, campaignID string) (Report, error) {
	campaign, err := uc.Campaigns.GetCampaign(ctx, strings.TrimSpace(campaignID))
	if err != nil {
		return Report{}, err
	}
	results, err := uc.CampaignResults(ctx, campaign.CampaignID)
	if err != nil {
		return Report{}, err
	}

	report := Report{
		CampaignID:    campaign.CampaignID,
		Title:         campaign.Title,
		OptionColumns: make([]string, 0, len(campaign.Options)),
		Rows:          make([]ReportRow, 0, len(results)),
	}
	for _, option := range campaign.Options {
		report.OptionColumns = append(report.OptionColumns, option.Text)
	}
	for _, result := range results {
		row := ReportRow{
			TermID:      result.TermID,
			Term:        result.Term,
			Chosen:      result.Chosen.OptionText,
			Percentages: make([]int, 0, len(result.Items)),
		}
		for _, item := range result.Items {
			row.Percentages = append(row.Percentages, item.Percentage)
		}
		report.Rows = append(report.Rows, row)
	}
	return report, nil
}
