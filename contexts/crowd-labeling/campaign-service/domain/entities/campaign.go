package entities

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TermPlaceholder is the substitution marker inside a campaign question
// template, e.g. "Would a vegetarian eat [term]?".
const TermPlaceholder = "[term]"

type Campaign struct {
	CampaignID    string
	Title         string
	Question      string
	Options       []Option
	Terms         []Term
	TermsPerQuiz  int
	RewardPerQuiz decimal.Decimal
	TimesPerTerm  int
	JobGenerated  bool
	CreatedAt     time.Time
}

// Locked reports whether the campaign's configuration is frozen. Once the
// marketplace job has been generated the campaign is never edited again, only
// deleted and recreated.
func (c Campaign) Locked() bool {
	return c.JobGenerated
}

// QuestionFor substitutes the term text into the question template.
func (c Campaign) QuestionFor(term Term) string {
	return strings.ReplaceAll(c.Question, TermPlaceholder, term.Text)
}

// EstimatedCost is the expected total spend for the campaign as configured.
func (c Campaign) EstimatedCost() decimal.Decimal {
	return EstimateCost(len(c.Terms), c.TimesPerTerm, c.TermsPerQuiz, c.RewardPerQuiz)
}

// Option is a selectable answer choice owned by exactly one campaign.
type Option struct {
	OptionID   string
	CampaignID string
	Text       string
	Position   int
}

// Term is a subject to be categorized, owned by exactly one campaign.
type Term struct {
	TermID     string
	CampaignID string
	Text       string
	Position   int
}

// Answer is one worker's choice of option for one term. Answers are created
// only by ingestion, never updated, and deleted only by campaign cascade.
type Answer struct {
	AnswerID   string
	HITID      string
	WorkerID   string
	CampaignID string
	TermID     string
	OptionID   string
	CreatedAt  time.Time
}

// ActionLog is an append-only operational audit entry. There is no read path
// beyond append.
type ActionLog struct {
	LogID    string
	Source   string
	Message  string
	LoggedAt time.Time
}
