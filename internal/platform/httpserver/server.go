package httpserver

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	campaignservice "quorum/contexts/crowd-labeling/campaign-service"
	domainerrors "quorum/contexts/crowd-labeling/campaign-service/domain/errors"
	campaignhttp "quorum/contexts/crowd-labeling/campaign-service/transport/http"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "quorum/internal/platform/httpserver/docs"
)

type Server struct {
	mux       *http.ServeMux
	logger    *slog.Logger
	addr      string
	campaigns campaignservice.Module
}

func New(campaigns campaignservice.Module, logger *slog.Logger, addr string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:       http.NewServeMux(),
		logger:    logger,
		addr:      addr,
		campaigns: campaigns,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the routing mux for in-process tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /v1/campaigns", s.handleCreateCampaign)
	s.mux.HandleFunc("GET /v1/campaigns", s.handleListCampaigns)
	s.mux.HandleFunc("GET /v1/campaigns/{campaign_id}", s.handleGetCampaign)
	s.mux.HandleFunc("DELETE /v1/campaigns/{campaign_id}", s.handleDeleteCampaign)
	s.mux.HandleFunc("GET /v1/campaigns/{campaign_id}/report", s.handleCampaignReport)
	s.mux.HandleFunc("POST /v1/campaigns/{campaign_id}/generate", s.handleGenerateJob)
	s.mux.HandleFunc("POST /v1/ingest", s.handleIngest)
}

func (s *Server) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req campaignhttp.CreateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCampaignError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.campaigns.Handler.CreateCampaignHandler(r.Context(), req)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	resp, err := s.campaigns.Handler.ListCampaignsHandler(r.Context())
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	campaignID := r.PathValue("campaign_id")
	resp, err := s.campaigns.Handler.GetCampaignHandler(r.Context(), campaignID)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	campaignID := r.PathValue("campaign_id")
	if err := s.campaigns.Handler.DeleteCampaignHandler(r.Context(), campaignID); err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCampaignReport(w http.ResponseWriter, r *http.Request) {
	campaignID := r.PathValue("campaign_id")
	resp, err := s.campaigns.Handler.ReportHandler(r.Context(), campaignID)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	if r.URL.Query().Get("format") == "csv" {
		writeReportCSV(w, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGenerateJob(w http.ResponseWriter, r *http.Request) {
	campaignID := r.PathValue("campaign_id")
	resp, err := s.campaigns.Handler.GenerateJobHandler(r.Context(), campaignID)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	resp, err := s.campaigns.Handler.IngestHandler(r.Context())
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeReportCSV(w http.ResponseWriter, report campaignhttp.ReportResponse) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.CampaignID+"-report.csv"))
	w.WriteHeader(http.StatusOK)

	writer := csv.NewWriter(w)
	header := append([]string{"term", "chosen"}, report.OptionColumns...)
	_ = writer.Write(header)
	for _, row := range report.Rows {
		record := []string{row.Term, row.Chosen}
		for _, percentage := range row.Percentages {
			record = append(record, strconv.Itoa(percentage))
		}
		_ = writer.Write(record)
	}
	writer.Flush()
}

func writeCampaignDomainError(w http.ResponseWriter, err error) {
	var validation domainerrors.ValidationError
	switch {
	case errors.As(err, &validation):
		writeCampaignError(w, http.StatusUnprocessableEntity, "invalid_"+validation.Field, validation.Error())
	case errors.Is(err, domainerrors.ErrCampaignNotFound):
		writeCampaignError(w, http.StatusNotFound, "campaign_not_found", err.Error())
	case errors.Is(err, domainerrors.ErrJobAlreadyGenerated):
		writeCampaignError(w, http.StatusConflict, "job_already_generated", err.Error())
	case errors.Is(err, domainerrors.ErrCampaignLocked):
		writeCampaignError(w, http.StatusConflict, "campaign_locked", err.Error())
	case errors.Is(err, domainerrors.ErrAnswerDuplicate):
		writeCampaignError(w, http.StatusConflict, "answer_duplicate", err.Error())
	case errors.Is(err, domainerrors.ErrMalformedIdentifier):
		writeCampaignError(w, http.StatusBadRequest, "malformed_identifier", err.Error())
	case errors.Is(err, domainerrors.ErrMarketplaceUnavailable):
		writeCampaignError(w, http.StatusServiceUnavailable, "marketplace_unavailable", err.Error())
	default:
		writeCampaignError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeCampaignError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, campaignhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
