package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"quorum/contexts/crowd-labeling/campaign-service/domain/entities"
)

type CampaignRepository interface {
	// SaveCampaign persists the campaign together with its owned options and
	// terms in one unit.
	SaveCampaign(ctx context.Context, campaign entities.Campaign) error
	// GetCampaign loads the campaign with options and terms in position order.
	GetCampaign(ctx context.Context, campaignID string) (entities.Campaign, error)
	ListCampaigns(ctx context.Context) ([]entities.Campaign, error)
	// DeleteCampaign cascades to options, terms, and answers.
	DeleteCampaign(ctx context.Context, campaignID string) error
	// MarkJobGenerated flips the one-way job_generated flag; it is never reset.
	MarkJobGenerated(ctx context.Context, campaignID string, at time.Time) error

	// AnswerExists reports whether an answer with the same
	// (hit, worker, campaign, term, option) tuple is already stored.
	AnswerExists(ctx context.Context, answer entities.Answer) (bool, error)
	// SaveAnswer is append-only; concurrent duplicate inserts are benign no-ops.
	SaveAnswer(ctx context.Context, answer entities.Answer) error
	ListAnswersByCampaign(ctx context.Context, campaignID string) ([]entities.Answer, error)
	CountAnswersByCampaign(ctx context.Context, campaignID string) (int, error)

	AppendActionLog(ctx context.Context, entry entities.ActionLog) error
}

// QuizChoice is one selectable answer in a marketplace question.
type QuizChoice struct {
	Value string
	Text  string
}

// QuizQuestion carries the codec token, the substituted question text, and
// the option list for one term.
type QuizQuestion struct {
	Token   string
	Text    string
	Choices []QuizChoice
}

// QuizRequest is one bounded batch of questions submitted to the marketplace
// as a single unit of work.
type QuizRequest struct {
	CampaignID     string
	Title          string
	MaxAssignments int
	Reward         decimal.Decimal
	Questions      []QuizQuestion
}

// RawAnswer is a single (token, value) pair from a returned assignment.
type RawAnswer struct {
	Token string
	Value string
}

// Assignment is one worker's completed pass over a quiz.
type Assignment struct {
	HITID        string
	AssignmentID string
	WorkerID     string
	Answers      []RawAnswer
}

// MarketplaceGateway is the interface to the external crowd-labor
// marketplace. The engine treats it purely as a source of raw answer records
// and a sink for approve/disable commands; connection and HIT lifecycle
// mechanics live behind this port.
type MarketplaceGateway interface {
	CreateQuiz(ctx context.Context, req QuizRequest) (hitID string, err error)
	ReviewableAssignments(ctx context.Context, pageSize int) ([]Assignment, error)
	ApproveAssignment(ctx context.Context, assignmentID string) error
	DisableHIT(ctx context.Context, hitID string) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
