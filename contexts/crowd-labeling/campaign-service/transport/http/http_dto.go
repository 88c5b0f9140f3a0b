package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateCampaignRequest struct {
	Title         string   `json:"title"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	Terms         []string `json:"terms"`
	TermsPerQuiz  int      `json:"terms_per_quiz"`
	RewardPerQuiz string   `json:"reward_per_quiz"`
	TimesPerTerm  int      `json:"times_per_term"`
}

type OptionDTO struct {
	OptionID string `json:"option_id"`
	Text     string `json:"text"`
	Position int    `json:"position"`
}

type TermDTO struct {
	TermID   string `json:"term_id"`
	Text     string `json:"text"`
	Position int    `json:"position"`
}

type CampaignDTO struct {
	CampaignID    string      `json:"campaign_id"`
	Title         string      `json:"title"`
	Question      string      `json:"question"`
	Options       []OptionDTO `json:"options"`
	Terms         []TermDTO   `json:"terms"`
	TermsPerQuiz  int         `json:"terms_per_quiz"`
	RewardPerQuiz string      `json:"reward_per_quiz"`
	TimesPerTerm  int         `json:"times_per_term"`
	JobGenerated  bool        `json:"job_generated"`
	CreatedAt     string      `json:"created_at"`
}

type CreateCampaignResponse struct {
	Campaign      CampaignDTO `json:"campaign"`
	EstimatedCost string      `json:"estimated_cost"`
}

type CampaignSummaryDTO struct {
	CampaignID    string `json:"campaign_id"`
	Title         string `json:"title"`
	Question      string `json:"question"`
	OptionCount   int    `json:"option_count"`
	TermCount     int    `json:"term_count"`
	TermsPerQuiz  int    `json:"terms_per_quiz"`
	RewardPerQuiz string `json:"reward_per_quiz"`
	TimesPerTerm  int    `json:"times_per_term"`
	AnswerCount   int    `json:"answer_count"`
	EstimatedCost string `json:"estimated_cost"`
	JobGenerated  bool   `json:"job_generated"`
	PendingJob    bool   `json:"pending_job"`
	CreatedAt     string `json:"created_at"`
}

type ListCampaignsResponse struct {
	Items []CampaignSummaryDTO `json:"items"`
}

type ResultItemDTO struct {
	OptionID      string `json:"option_id,omitempty"`
	OptionText    string `json:"option_text"`
	TimesSelected int    `json:"times_selected"`
	Percentage    int    `json:"percentage"`
}

type TermResultDTO struct {
	TermID       string          `json:"term_id"`
	Term         string          `json:"term"`
	Chosen       string          `json:"chosen"`
	Inconclusive bool            `json:"inconclusive"`
	Items        []ResultItemDTO `json:"items"`
}

type GetCampaignResponse struct {
	Campaign CampaignDTO     `json:"campaign"`
	Results  []TermResultDTO `json:"results"`
}

type GenerateJobResponse struct {
	CampaignID    string   `json:"campaign_id"`
	HITIDs        []string `json:"hit_ids"`
	QuizCount     int      `json:"quiz_count"`
	EstimatedCost string   `json:"estimated_cost"`
}

type IngestResponse struct {
	Assignments      int  `json:"assignments"`
	Applied          int  `json:"applied"`
	Duplicates       int  `json:"duplicates"`
	Malformed        int  `json:"malformed"`
	Approved         int  `json:"approved"`
	ApprovalFailures int  `json:"approval_failures"`
	DisabledHITs     int  `json:"disabled_hits"`
	ResultsReturned  bool `json:"results_returned"`
}

type ReportRowDTO struct {
	TermID      string `json:"term_id"`
	Term        string `json:"term"`
	Chosen      string `json:"chosen"`
	Percentages []int  `json:"percentages"`
}

type ReportResponse struct {
	CampaignID    string         `json:"campaign_id"`
	Title         string         `json:"title"`
	OptionColumns []string       `json:"option_columns"`
	Rows          []ReportRowDTO `json:"rows"`
}
