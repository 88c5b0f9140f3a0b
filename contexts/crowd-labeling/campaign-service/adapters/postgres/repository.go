package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"quorum/contexts/crowd-labeling/campaign-service/domain/entities"
	domainerrors "quorum/contexts/crowd-labeling/campaign-service/domain/errors"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) SaveCampaign(ctx context.Context, campaign entities.Campaign) error {
	row := campaignModelFromEntity(campaign)
	optionRows := make([]optionModel, 0, len(campaign.Options))
	for _, option := range campaign.Options {
		optionRows = append(optionRows, optionModelFromEntity(option))
	}
	termRows := make([]termModel, 0, len(campaign.Terms))
	for _, term := range campaign.Terms {
		termRows = append(termRows, termModelFromEntity(term))
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		if len(optionRows) > 0 {
			if err := tx.Create(&optionRows).Error; err != nil {
				return err
			}
		}
		if len(termRows) > 0 {
			if err := tx.Create(&termRows).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return r.logError("campaign_repo_save_campaign_failed", err,
			"campaign_id", strings.TrimSpace(campaign.CampaignID),
		)
	}
	return nil
}

func (r *Repository) GetCampaign(ctx context.Context, campaignID string) (entities.Campaign, error) {
	var row campaignModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(campaignID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Campaign{}, domainerrors.ErrCampaignNotFound
		}
		return entities.Campaign{}, r.logError("campaign_repo_get_campaign_failed", err,
			"campaign_id", strings.TrimSpace(campaignID),
		)
	}
	return r.loadChildren(ctx, row)
}

func (r *Repository) ListCampaigns(ctx context.Context) ([]entities.Campaign, error) {
	var rows []campaignModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("campaign_repo_list_campaigns_failed", err)
	}
	items := make([]entities.Campaign, 0, len(rows))
	for _, row := range rows {
		campaign, err := r.loadChildren(ctx, row)
		if err != nil {
			return nil, err
		}
		items = append(items, campaign)
	}
	return items, nil
}

func (r *Repository) DeleteCampaign(ctx context.Context, campaignID string) error {
	campaignID = strings.TrimSpace(campaignID)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("campaign_id = ?", campaignID).Delete(&answerModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("campaign_id = ?", campaignID).Delete(&termModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("campaign_id = ?", campaignID).Delete(&optionModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", campaignID).Delete(&campaignModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrCampaignNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrCampaignNotFound) {
			return err
		}
		return r.logError("campaign_repo_delete_campaign_failed", err, "campaign_id", campaignID)
	}
	return nil
}

func (r *Repository) MarkJobGenerated(ctx context.Context, campaignID string, _ time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&campaignModel{}).
		Where("id = ?", strings.TrimSpace(campaignID)).
		Update("job_generated", true)
	if result.Error != nil {
		return r.logError("campaign_repo_mark_job_generated_failed", result.Error,
			"campaign_id", strings.TrimSpace(campaignID),
		)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCampaignNotFound
	}
	return nil
}

func (r *Repository) AnswerExists(ctx context.Context, answer entities.Answer) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&answerModel{}).
		Where("hit_id = ?", strings.TrimSpace(answer.HITID)).
		Where("worker_id = ?", strings.TrimSpace(answer.WorkerID)).
		Where("campaign_id = ?", strings.TrimSpace(answer.CampaignID)).
		Where("term_id = ?", strings.TrimSpace(answer.TermID)).
		Where("option_id = ?", strings.TrimSpace(answer.OptionID)).
		Count(&count).
		Error
	if err != nil {
		return false, r.logError("campaign_repo_answer_exists_failed", err,
			"hit_id", strings.TrimSpace(answer.HITID),
			"worker_id", strings.TrimSpace(answer.WorkerID),
		)
	}
	return count > 0, nil
}

func (r *Repository) SaveAnswer(ctx context.Context, answer entities.Answer) error {
	row := answerModelFromEntity(answer)
	// The unique index over the answer identity tuple makes concurrent
	// duplicate ingestion a benign no-op rather than a double count.
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "hit_id"},
			{Name: "worker_id"},
			{Name: "campaign_id"},
			{Name: "term_id"},
			{Name: "option_id"},
		},
		DoNothing: true,
	}).Create(&row)
	if create.Error != nil {
		if isUniqueViolation(create.Error) {
			return nil
		}
		return r.logError("campaign_repo_save_answer_failed", create.Error,
			"answer_id", strings.TrimSpace(answer.AnswerID),
			"campaign_id", strings.TrimSpace(answer.CampaignID),
		)
	}
	return nil
}

func (r *Repository) ListAnswersByCampaign(ctx context.Context, campaignID string) ([]entities.Answer, error) {
	var rows []answerModel
	if err := r.db.WithContext(ctx).
		Where("campaign_id = ?", strings.TrimSpace(campaignID)).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("campaign_repo_list_answers_failed", err,
			"campaign_id", strings.TrimSpace(campaignID),
		)
	}
	items := make([]entities.Answer, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) CountAnswersByCampaign(ctx context.Context, campaignID string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&answerModel{}).
		Where("campaign_id = ?", strings.TrimSpace(campaignID)).
		Count(&count).
		Error
	if err != nil {
		return 0, r.logError("campaign_repo_count_answers_failed", err,
			"campaign_id", strings.TrimSpace(campaignID),
		)
	}
	return int(count), nil
}

func (r *Repository) AppendActionLog(ctx context.Context, entry entities.ActionLog) error {
	row := actionLogModel{
		ID:       strings.TrimSpace(entry.LogID),
		Source:   strings.TrimSpace(entry.Source),
		Message:  entry.Message,
		LoggedAt: entry.LoggedAt.UTC(),
	}
	if row.LoggedAt.IsZero() {
		row.LoggedAt = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("campaign_repo_append_action_log_failed", err,
			"log_source", row.Source,
		)
	}
	return nil
}

func (r *Repository) loadChildren(ctx context.Context, row campaignModel) (entities.Campaign, error) {
	var optionRows []optionModel
	if err := r.db.WithContext(ctx).
		Where("campaign_id = ?", row.ID).
		Order("position ASC").
		Find(&optionRows).Error; err != nil {
		return entities.Campaign{}, r.logError("campaign_repo_load_options_failed", err, "campaign_id", row.ID)
	}
	var termRows []termModel
	if err := r.db.WithContext(ctx).
		Where("campaign_id = ?", row.ID).
		Order("position ASC").
		Find(&termRows).Error; err != nil {
		return entities.Campaign{}, r.logError("campaign_repo_load_terms_failed", err, "campaign_id", row.ID)
	}

	campaign := row.toEntity()
	for _, optionRow := range optionRows {
		campaign.Options = append(campaign.Options, optionRow.toEntity())
	}
	for _, termRow := range termRows {
		campaign.Terms = append(campaign.Terms, termRow.toEntity())
	}
	return campaign, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "crowd-labeling/campaign-service",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("campaign repository operation failed", fields...)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type campaignModel struct {
	ID            string          `gorm:"column:id;primaryKey"`
	Title         string          `gorm:"column:title"`
	Question      string          `gorm:"column:question"`
	TermsPerQuiz  int             `gorm:"column:terms_per_quiz"`
	RewardPerQuiz decimal.Decimal `gorm:"column:reward_per_quiz;type:numeric(10,2)"`
	TimesPerTerm  int             `gorm:"column:times_per_term"`
	JobGenerated  bool            `gorm:"column:job_generated"`
	CreatedAt     time.Time       `gorm:"column:created_at"`
}

func (campaignModel) TableName() string {
	return "campaigns"
}

func campaignModelFromEntity(campaign entities.Campaign) campaignModel {
	row := campaignModel{
		ID:            strings.TrimSpace(campaign.CampaignID),
		Title:         strings.TrimSpace(campaign.Title),
		Question:      strings.TrimSpace(campaign.Question),
		TermsPerQuiz:  campaign.TermsPerQuiz,
		RewardPerQuiz: campaign.RewardPerQuiz,
		TimesPerTerm:  campaign.TimesPerTerm,
		JobGenerated:  campaign.JobGenerated,
		CreatedAt:     campaign.CreatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return row
}

func (m campaignModel) toEntity() entities.Campaign {
	return entities.Campaign{
		CampaignID:    m.ID,
		Title:         m.Title,
		Question:      m.Question,
		TermsPerQuiz:  m.TermsPerQuiz,
		RewardPerQuiz: m.RewardPerQuiz,
		TimesPerTerm:  m.TimesPerTerm,
		JobGenerated:  m.JobGenerated,
		CreatedAt:     m.CreatedAt.UTC(),
	}
}

type optionModel struct {
	ID         string `gorm:"column:id;primaryKey"`
	CampaignID string `gorm:"column:campaign_id;index"`
	Text       string `gorm:"column:option_text"`
	Position   int    `gorm:"column:position"`
}

func (optionModel) TableName() string {
	return "campaign_options"
}

func optionModelFromEntity(option entities.Option) optionModel {
	return optionModel{
		ID:         strings.TrimSpace(option.OptionID),
		CampaignID: strings.TrimSpace(option.CampaignID),
		Text:       strings.TrimSpace(option.Text),
		Position:   option.Position,
	}
}

func (m optionModel) toEntity() entities.Option {
	return entities.Option{
		OptionID:   m.ID,
		CampaignID: m.CampaignID,
		Text:       m.Text,
		Position:   m.Position,
	}
}

type termModel struct {
	ID         string `gorm:"column:id;primaryKey"`
	CampaignID string `gorm:"column:campaign_id;index"`
	Text       string `gorm:"column:term_text"`
	Position   int    `gorm:"column:position"`
}

func (termModel) TableName() string {
	return "campaign_terms"
}

func termModelFromEntity(term entities.Term) termModel {
	return termModel{
		ID:         strings.TrimSpace(term.TermID),
		CampaignID: strings.TrimSpace(term.CampaignID),
		Text:       strings.TrimSpace(term.Text),
		Position:   term.Position,
	}
}

func (m termModel) toEntity() entities.Term {
	return entities.Term{
		TermID:     m.ID,
		CampaignID: m.CampaignID,
		Text:       m.Text,
		Position:   m.Position,
	}
}

type answerModel struct {
	ID         string    `gorm:"column:id;primaryKey"`
	HITID      string    `gorm:"column:hit_id;uniqueIndex:uq_answer_identity"`
	WorkerID   string    `gorm:"column:worker_id;uniqueIndex:uq_answer_identity"`
	CampaignID string    `gorm:"column:campaign_id;uniqueIndex:uq_answer_identity"`
	TermID     string    `gorm:"column:term_id;uniqueIndex:uq_answer_identity"`
	OptionID   string    `gorm:"column:option_id;uniqueIndex:uq_answer_identity"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (answerModel) TableName() string {
	return "campaign_answers"
}

func answerModelFromEntity(answer entities.Answer) answerModel {
	row := answerModel{
		ID:         strings.TrimSpace(answer.AnswerID),
		HITID:      strings.TrimSpace(answer.HITID),
		WorkerID:   strings.TrimSpace(answer.WorkerID),
		CampaignID: strings.TrimSpace(answer.CampaignID),
		TermID:     strings.TrimSpace(answer.TermID),
		OptionID:   strings.TrimSpace(answer.OptionID),
		CreatedAt:  answer.CreatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return row
}

func (m answerModel) toEntity() entities.Answer {
	return entities.Answer{
		AnswerID:   m.ID,
		HITID:      m.HITID,
		WorkerID:   m.WorkerID,
		CampaignID: m.CampaignID,
		TermID:     m.TermID,
		OptionID:   m.OptionID,
		CreatedAt:  m.CreatedAt.UTC(),
	}
}

type actionLogModel struct {
	ID       string    `gorm:"column:id;primaryKey"`
	Source   string    `gorm:"column:log_source"`
	Message  string    `gorm:"column:log_message"`
	LoggedAt time.Time `gorm:"column:logged_at"`
}

func (actionLogModel) TableName() string {
	return "action_log"
}
