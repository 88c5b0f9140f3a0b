package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	application "quorum/contexts/crowd-labeling/campaign-service/application"
	"quorum/contexts/crowd-labeling/campaign-service/domain/entities"
	domainerrors "quorum/contexts/crowd-labeling/campaign-service/domain/errors"
	"quorum/contexts/crowd-labeling/campaign-service/ports"
)

// GenerateJobUseCase partitions a campaign's terms into quiz batches and
// submits each batch to the crowd marketplace. Generation is a one-way door:
// once the job_generated flag flips, the campaign configuration is immutable
// and a second generation attempt is rejected.
type GenerateJobUseCase struct {
	Campaigns   ports.CampaignRepository
	Marketplace ports.MarketplaceGateway
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Logger      *slog.Logger
}

type GenerateJobResult struct {
	CampaignID    string
	HITIDs        []string
	QuizCount     int
	EstimatedCost decimal.Decimal
}

func (uc GenerateJobUseCase) Execute(ctx context.Context, campaignID string) (GenerateJobResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	campaignID = strings.TrimSpace(campaignID)

	campaign, err := uc.Campaigns.GetCampaign(ctx, campaignID)
	if err != nil {
		return GenerateJobResult{}, err
	}
	if campaign.JobGenerated {
		return GenerateJobResult{}, domainerrors.ErrJobAlreadyGenerated
	}

	batches := entities.PartitionTerms(campaign.Terms, campaign.TermsPerQuiz)
	result := GenerateJobResult{
		CampaignID:    campaign.CampaignID,
		QuizCount:     len(batches),
		EstimatedCost: campaign.EstimatedCost(),
	}

	choices := make([]ports.QuizChoice, 0, len(campaign.Options))
	for _, option := range campaign.Options {
		choices = append(choices, ports.QuizChoice{
			Value: entities.EncodeOptionValue(option.OptionID, option.Text),
			Text:  option.Text,
		})
	}

	for _, batch := range batches {
		questions := make([]ports.QuizQuestion, 0, len(batch))
		for _, term := range batch {
			questions = append(questions, ports.QuizQuestion{
				Token:   entities.EncodeQuestionToken(campaign.CampaignID, term.TermID, term.Text),
				Text:    campaign.QuestionFor(term),
				Choices: choices,
			})
		}
		hitID, err := uc.Marketplace.CreateQuiz(ctx, ports.QuizRequest{
			CampaignID:     campaign.CampaignID,
			Title:          campaign.Title,
			MaxAssignments: campaign.TimesPerTerm,
			Reward:         campaign.RewardPerQuiz,
			Questions:      questions,
		})
		if err != nil {
			// Quiz creation is retryable as a whole: already-created quizzes
			// stay live and the flag is still unset, so a retry re-submits
			// deterministic batches.
			logger.Error("quiz submission failed",
				"event", "campaign_generate_quiz_failed",
				"module", "crowd-labeling/campaign-service",
				"layer", "application",
				"campaign_id", campaign.CampaignID,
				"error", err.Error(),
			)
			return GenerateJobResult{}, err
		}
		result.HITIDs = append(result.HITIDs, hitID)

		logID, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return GenerateJobResult{}, err
		}
		if err := uc.Campaigns.AppendActionLog(ctx, entities.ActionLog{
			LogID:    logID,
			Source:   "job_generator",
			Message:  fmt.Sprintf("created quiz %s with %d questions for campaign %s", hitID, len(questions), campaign.CampaignID),
			LoggedAt: uc.Clock.Now().UTC(),
		}); err != nil {
			return GenerateJobResult{}, err
		}
	}

	if err := uc.Campaigns.MarkJobGenerated(ctx, campaign.CampaignID, uc.Clock.Now().UTC()); err != nil {
		return GenerateJobResult{}, err
	}

	logger.Info("marketplace job generated",
		"event", "campaign_job_generated",
		"module", "crowd-labeling/campaign-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
		"quizzes", result.QuizCount,
		"estimated_cost", result.EstimatedCost.StringFixed(2),
	)
	return result, nil
}
