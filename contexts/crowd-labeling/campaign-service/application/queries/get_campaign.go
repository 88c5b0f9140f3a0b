package queries

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"quorum/contexts/crowd-labeling/campaign-service/domain/entities"
	"quorum/contexts/crowd-labeling/campaign-service/ports"
)

// CampaignSummary is the list-view projection of a campaign.
type CampaignSummary struct {
	Campaign      entities.Campaign
	AnswerCount   int
	EstimatedCost decimal.Decimal
	// PendingJob marks a campaign whose marketplace job is out but has not
	// produced a single ingested answer yet.
	PendingJob bool
}

type CampaignQueries struct {
	Campaigns ports.CampaignRepository
}

func (uc CampaignQueries) Get(ctx context.Context, campaignID string) (entities.Campaign, error) {
	return uc.Campaigns.GetCampaign(ctx, strings.TrimSpace(campaignID))
}

func (uc CampaignQueries) List(ctx context.Context) ([]CampaignSummary, error) {
	campaigns, err := uc.Campaigns.ListCampaigns(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]CampaignSummary, 0, len(campaigns))
	for _, campaign := range campaigns {
		count, err := uc.Campaigns.CountAnswersByCampaign(ctx, campaign.CampaignID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, CampaignSummary{
			Campaign:      campaign,
			AnswerCount:   count,
			EstimatedCost: campaign.EstimatedCost(),
			PendingJob:    campaign.JobGenerated && count == 0,
		})
	}
	return summaries, nil
}
