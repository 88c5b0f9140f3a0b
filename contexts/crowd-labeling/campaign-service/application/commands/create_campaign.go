package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	application "quorum/contexts/crowd-labeling/campaign-service/application"
	"quorum/contexts/crowd-labeling/campaign-service/domain/entities"
	domainerrors "quorum/contexts/crowd-labeling/campaign-service/domain/errors"
	"quorum/contexts/crowd-labeling/campaign-service/ports"
)

// Reward bounds are fixed-point with two decimal places.
var (
	minReward = decimal.NewFromFloat(0.01)
	maxReward = decimal.NewFromFloat(5.00)
)

// CreateCampaignCommand is the write-model input for campaign creation. All
// range rules live here so that partitioning and tallying never have to
// re-validate configuration.
type CreateCampaignCommand struct {
	Title        string   `validate:"required,max=80"`
	Question     string   `validate:"required,max=500,contains=[term]"`
	Options      []string `validate:"required,min=1,dive,required"`
	Terms        []string `validate:"required,min=1,dive,required"`
	TermsPerQuiz int      `validate:"required,min=1,max=50"`
	TimesPerTerm int      `validate:"required,min=1,max=50"`

	// RewardPerQuiz is range-checked manually; the validator cannot compare
	// decimals.
	RewardPerQuiz decimal.Decimal `validate:"-"`
}

type CreateCampaignUseCase struct {
	Campaigns ports.CampaignRepository
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Validate  *validator.Validate
	Logger    *slog.Logger
}

func (uc CreateCampaignUseCase) Execute(ctx context.Context, cmd CreateCampaignCommand) (entities.Campaign, error) {
	logger := application.ResolveLogger(uc.Logger)

	if err := uc.validateCommand(cmd); err != nil {
		logger.Warn("campaign create validation failed",
			"event", "campaign_create_validation_failed",
			"module", "crowd-labeling/campaign-service",
			"layer", "application",
			"title", strings.TrimSpace(cmd.Title),
			"error", err.Error(),
		)
		return entities.Campaign{}, err
	}

	campaignID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Campaign{}, err
	}
	now := uc.Clock.Now().UTC()

	campaign := entities.Campaign{
		CampaignID:    campaignID,
		Title:         strings.TrimSpace(cmd.Title),
		Question:      strings.TrimSpace(cmd.Question),
		TermsPerQuiz:  cmd.TermsPerQuiz,
		RewardPerQuiz: cmd.RewardPerQuiz,
		TimesPerTerm:  cmd.TimesPerTerm,
		CreatedAt:     now,
	}
	for position, text := range normalizeLines(cmd.Options) {
		optionID, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return entities.Campaign{}, err
		}
		campaign.Options = append(campaign.Options, entities.Option{
			OptionID:   optionID,
			CampaignID: campaignID,
			Text:       text,
			Position:   position,
		})
	}
	for position, text := range normalizeLines(cmd.Terms) {
		termID, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return entities.Campaign{}, err
		}
		campaign.Terms = append(campaign.Terms, entities.Term{
			TermID:     termID,
			CampaignID: campaignID,
			Text:       text,
			Position:   position,
		})
	}

	if err := uc.Campaigns.SaveCampaign(ctx, campaign); err != nil {
		return entities.Campaign{}, err
	}

	logger.Info("campaign created",
		"event", "campaign_created",
		"module", "crowd-labeling/campaign-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
		"title", campaign.Title,
		"options", len(campaign.Options),
		"terms", len(campaign.Terms),
		"estimated_cost", campaign.EstimatedCost().StringFixed(2),
	)
	return campaign, nil
}

func (uc CreateCampaignUseCase) validateCommand(cmd CreateCampaignCommand) error {
	if err := uc.Validate.Struct(cmd); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
			first := fieldErrors[0]
			return domainerrors.ValidationError{
				Field:  fieldName(first.Field()),
				Reason: validationReason(first),
			}
		}
		return err
	}
	if len(normalizeLines(cmd.Options)) == 0 {
		return domainerrors.ValidationError{Field: "options", Reason: "at least one non-empty option is required"}
	}
	if len(normalizeLines(cmd.Terms)) == 0 {
		return domainerrors.ValidationError{Field: "terms", Reason: "at least one non-empty term is required"}
	}
	if cmd.RewardPerQuiz.LessThan(minReward) || cmd.RewardPerQuiz.GreaterThan(maxReward) {
		return domainerrors.ValidationError{
			Field:  "reward_per_quiz",
			Reason: "reward must be between 0.01 and 5.00",
		}
	}
	return nil
}

// normalizeLines trims entries and drops empty ones while preserving order.
func normalizeLines(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value != "" {
			out = append(out, value)
		}
	}
	return out
}

func fieldName(structField string) string {
	// Dive validations report element fields like "Terms[1]"; the operator
	// message names the whole field.
	if i := strings.IndexByte(structField, '['); i >= 0 {
		structField = structField[:i]
	}
	switch structField {
	case "Title":
		return "title"
	case "Question":
		return "question"
	case "Options":
		return "options"
	case "Terms":
		return "terms"
	case "TermsPerQuiz":
		return "terms_per_quiz"
	case "TimesPerTerm":
		return "times_per_term"
	default:
		return strings.ToLower(structField)
	}
}

func validationReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "value is required"
	case "min":
		return "value is below the allowed minimum of " + fe.Param()
	case "max":
		return "value is above the allowed maximum of " + fe.Param()
	case "contains":
		return "value must contain " + fe.Param()
	default:
		return "value failed the " + fe.Tag() + " rule"
	}
}
