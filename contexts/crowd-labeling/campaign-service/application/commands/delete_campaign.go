package commands

import (
	"context"
	"log/slog"
	"strings"

	application "quorum/contexts/crowd-labeling/campaign-service/application"
	"quorum/contexts/crowd-labeling/campaign-service/domain/entities"
	"quorum/contexts/crowd-labeling/campaign-service/ports"
)

// DeleteCampaignUseCase removes a campaign and its owned options, terms, and
// answers. Campaigns are never edited after job generation; a wrong campaign
// is deleted and recreated in its place.
type DeleteCampaignUseCase struct {
	Campaigns ports.CampaignRepository
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func (uc DeleteCampaignUseCase) Execute(ctx context.Context, campaignID string) error {
	logger := application.ResolveLogger(uc.Logger)
	campaignID = strings.TrimSpace(campaignID)

	campaign, err := uc.Campaigns.GetCampaign(ctx, campaignID)
	if err != nil {
		return err
	}
	if err := uc.Campaigns.DeleteCampaign(ctx, campaignID); err != nil {
		return err
	}

	logID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	if err := uc.Campaigns.AppendActionLog(ctx, entities.ActionLog{
		LogID:    logID,
		Source:   "campaign",
		Message:  "deleted campaign " + campaignID + " (" + campaign.Title + ")",
		LoggedAt: uc.Clock.Now().UTC(),
	}); err != nil {
		return err
	}

	logger.Info("campaign deleted",
		"event", "campaign_deleted",
		"module", "crowd-labeling/campaign-service",
		"layer", "application",
		"campaign_id", campaignID,
		"title", campaign.Title,
	)
	return nil
}
