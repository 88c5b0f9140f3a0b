package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	application "quorum/contexts/crowd-labeling/campaign-service/application"
	"quorum/contexts/crowd-labeling/campaign-service/application/commands"
	"quorum/contexts/crowd-labeling/campaign-service/application/queries"
	"quorum/contexts/crowd-labeling/campaign-service/domain/entities"
	domainerrors "quorum/contexts/crowd-labeling/campaign-service/domain/errors"
	httptransport "quorum/contexts/crowd-labeling/campaign-service/transport/http"
)

type Handler struct {
	CreateCampaign commands.CreateCampaignUseCase
	DeleteCampaign commands.DeleteCampaignUseCase
	GenerateJob    commands.GenerateJobUseCase
	Ingest         commands.IngestUseCase
	Campaigns      queries.CampaignQueries
	Results        queries.ResultsUseCase
	Logger         *slog.Logger
}

func (h Handler) CreateCampaignHandler(
	ctx context.Context,
	req httptransport.CreateCampaignRequest,
) (httptransport.CreateCampaignResponse, error) {
	reward, err := parseReward(req.RewardPerQuiz)
	if err != nil {
		return httptransport.CreateCampaignResponse{}, err
	}
	campaign, err := h.CreateCampaign.Execute(ctx, commands.CreateCampaignCommand{
		Title:         req.Title,
		Question:      req.Question,
		Options:       append([]string(nil), req.Options...),
		Terms:         append([]string(nil), req.Terms...),
		TermsPerQuiz:  req.TermsPerQuiz,
		RewardPerQuiz: reward,
		TimesPerTerm:  req.TimesPerTerm,
	})
	if err != nil {
		return httptransport.CreateCampaignResponse{}, err
	}
	return httptransport.CreateCampaignResponse{
		Campaign:      mapCampaign(campaign),
		EstimatedCost: campaign.EstimatedCost().StringFixed(2),
	}, nil
}

func (h Handler) ListCampaignsHandler(ctx context.Context) (httptransport.ListCampaignsResponse, error) {
	items, err := h.Campaigns.List(ctx)
	if err != nil {
		return httptransport.ListCampaignsResponse{}, err
	}
	result := make([]httptransport.CampaignSummaryDTO, 0, len(items))
	for _, item := range items {
		result = append(result, httptransport.CampaignSummaryDTO{
			CampaignID:    item.Campaign.CampaignID,
			Title:         item.Campaign.Title,
			Question:      item.Campaign.Question,
			OptionCount:   len(item.Campaign.Options),
			TermCount:     len(item.Campaign.Terms),
			TermsPerQuiz:  item.Campaign.TermsPerQuiz,
			RewardPerQuiz: item.Campaign.RewardPerQuiz.StringFixed(2),
			TimesPerTerm:  item.Campaign.TimesPerTerm,
			AnswerCount:   item.AnswerCount,
			EstimatedCost: item.EstimatedCost.StringFixed(2),
			JobGenerated:  item.Campaign.JobGenerated,
			PendingJob:    item.PendingJob,
			CreatedAt:     item.Campaign.CreatedAt.Format(time.RFC3339),
		})
	}
	return httptransport.ListCampaignsResponse{Items: result}, nil
}

func (h Handler) GetCampaignHandler(ctx context.Context, campaignID string) (httptransport.GetCampaignResponse, error) {
	campaign, err := h.Campaigns.Get(ctx, campaignID)
	if err != nil {
		return httptransport.GetCampaignResponse{}, err
	}
	results, err := h.Results.CampaignResults(ctx, campaign.CampaignID)
	if err != nil {
		return httptransport.GetCampaignResponse{}, err
	}
	mapped := make([]httptransport.TermResultDTO, 0, len(results))
	for _, result := range results {
		mapped = append(mapped, mapTermResult(result))
	}
	return httptransport.GetCampaignResponse{
		Campaign: mapCampaign(campaign),
		Results:  mapped,
	}, nil
}

func (h Handler) DeleteCampaignHandler(ctx context.Context, campaignID string) error {
	return h.DeleteCampaign.Execute(ctx, campaignID)
}

func (h Handler) GenerateJobHandler(ctx context.Context, campaignID string) (httptransport.GenerateJobResponse, error) {
	result, err := h.GenerateJob.Execute(ctx, campaignID)
	if err != nil {
		return httptransport.GenerateJobResponse{}, err
	}
	logger := application.ResolveLogger(h.Logger)
	logger.Info("marketplace job generated",
		"event", "marketplace_job_generated",
		"module", "crowd-labeling/campaign-service",
		"layer", "transport",
		"campaign_id", result.CampaignID,
		"quiz_count", result.QuizCount,
	)
	return httptransport.GenerateJobResponse{
		CampaignID:    result.CampaignID,
		HITIDs:        append([]string(nil), result.HITIDs...),
		QuizCount:     result.QuizCount,
		EstimatedCost: result.EstimatedCost.StringFixed(2),
	}, nil
}

func (h Handler) IngestHandler(ctx context.Context) (httptransport.IngestResponse, error) {
	result, err := h.Ingest.Execute(ctx)
	if err != nil {
		return httptransport.IngestResponse{}, err
	}
	return httptransport.IngestResponse{
		Assignments:      result.Assignments,
		Applied:          result.Applied,
		Duplicates:       result.Duplicates,
		Malformed:        result.Malformed,
		Approved:         result.Approved,
		ApprovalFailures: result.ApprovalFailures,
		DisabledHITs:     result.DisabledHITs,
		ResultsReturned:  result.ResultsReturned,
	}, nil
}

func (h Handler) ReportHandler(ctx context.Context, campaignID string) (httptransport.ReportResponse, error) {
	report, err := h.Results.CampaignReport(ctx, campaignID)
	if err != nil {
		return httptransport.ReportResponse{}, err
	}
	rows := make([]httptransport.ReportRowDTO, 0, len(report.Rows))
	for _, row := range report.Rows {
		rows = append(rows, httptransport.ReportRowDTO{
			TermID:      row.TermID,
			Term:        row.Term,
			Chosen:      row.Chosen,
			Percentages: append([]int(nil), row.Percentages...),
		})
	}
	return httptransport.ReportResponse{
		CampaignID:    report.CampaignID,
		Title:         report.Title,
		OptionColumns: append([]string(nil), report.OptionColumns...),
		Rows:          rows,
	}, nil
}

func mapCampaign(item entities.Campaign) httptransport.CampaignDTO {
	options := make([]httptransport.OptionDTO, 0, len(item.Options))
	for _, option := range item.Options {
		options = append(options, httptransport.OptionDTO{
			OptionID: option.OptionID,
			Text:     option.Text,
			Position: option.Position,
		})
	}
	terms := make([]httptransport.TermDTO, 0, len(item.Terms))
	for _, term := range item.Terms {
		terms = append(terms, httptransport.TermDTO{
			TermID:   term.TermID,
			Text:     term.Text,
			Position: term.Position,
		})
	}
	return httptransport.CampaignDTO{
		CampaignID:    item.CampaignID,
		Title:         item.Title,
		Question:      item.Question,
		Options:       options,
		Terms:         terms,
		TermsPerQuiz:  item.TermsPerQuiz,
		RewardPerQuiz: item.RewardPerQuiz.StringFixed(2),
		TimesPerTerm:  item.TimesPerTerm,
		JobGenerated:  item.JobGenerated,
		CreatedAt:     item.CreatedAt.Format(time.RFC3339),
	}
}

func mapTermResult(result entities.CampaignResult) httptransport.TermResultDTO {
	items := make([]httptransport.ResultItemDTO, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, httptransport.ResultItemDTO{
			OptionID:      item.OptionID,
			OptionText:    item.OptionText,
			TimesSelected: item.TimesSelected,
			Percentage:    item.Percentage,
		})
	}
	return httptransport.TermResultDTO{
		TermID:       result.TermID,
		Term:         result.Term,
		Chosen:       result.Chosen.OptionText,
		Inconclusive: result.Inconclusive,
		Items:        items,
	}
}

func parseReward(raw string) (decimal.Decimal, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return decimal.Decimal{}, domainerrors.ValidationError{
			Field:  "reward_per_quiz",
			Reason: "is required",
		}
	}
	reward, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, domainerrors.ValidationError{
			Field:  "reward_per_quiz",
			Reason: "must be a decimal amount",
		}
	}
	return reward, nil
}
