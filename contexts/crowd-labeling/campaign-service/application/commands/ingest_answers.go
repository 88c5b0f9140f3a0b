package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	application "quorum/contexts/crowd-labeling/campaign-service/application"
	"quorum/contexts/crowd-labeling/campaign-service/domain/entities"
	domainerrors "quorum/contexts/crowd-labeling/campaign-service/domain/errors"
	"quorum/contexts/crowd-labeling/campaign-service/ports"
)

// IngestUseCase pulls reviewable assignments from the marketplace, records
// each answer exactly once, then approves the assignments and disables the
// fully-processed HITs. Every write is per-record and idempotent, so the whole
// cycle is safe to re-run after a timeout whose outcome is unknown; at worst a
// repeat produces duplicate no-ops.
type IngestUseCase struct {
	Campaigns   ports.CampaignRepository
	Marketplace ports.MarketplaceGateway
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	PageSize    int
	Logger      *slog.Logger
}

type IngestResult struct {
	Assignments      int
	Applied          int
	Duplicates       int
	Malformed        int
	Approved         int
	ApprovalFailures int
	DisabledHITs     int
	// ResultsReturned is false when the marketplace had nothing reviewable;
	// the operator should wait and poll again.
	ResultsReturned bool
}

func (uc IngestUseCase) Execute(ctx context.Context) (IngestResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	pageSize := uc.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}

	assignments, err := uc.Marketplace.ReviewableAssignments(ctx, pageSize)
	if err != nil {
		// Marketplace outages are retryable; no partial state needs cleanup
		// because nothing was written yet.
		return IngestResult{}, err
	}

	result := IngestResult{Assignments: len(assignments)}
	// Campaigns are looked up once per run; a decoded id that resolves to no
	// campaign is treated like a malformed record and skipped.
	known := make(map[string]bool)

	for _, assignment := range assignments {
		for _, raw := range assignment.Answers {
			campaignID, termID, err := entities.DecodeQuestionToken(raw.Token)
			if err == nil {
				var optionID string
				optionID, err = entities.DecodeOptionValue(raw.Value)
				if err == nil {
					err = uc.applyAnswer(ctx, &result, entities.Answer{
						HITID:      assignment.HITID,
						WorkerID:   assignment.WorkerID,
						CampaignID: campaignID,
						TermID:     termID,
						OptionID:   optionID,
					}, known)
				}
			}
			if errors.Is(err, domainerrors.ErrMalformedIdentifier) || errors.Is(err, domainerrors.ErrCampaignNotFound) {
				result.Malformed++
				logger.Warn("skipping undecodable answer record",
					"event", "ingest_answer_skipped",
					"module", "crowd-labeling/campaign-service",
					"layer", "application",
					"hit_id", assignment.HITID,
					"worker_id", assignment.WorkerID,
					"error", err.Error(),
				)
				continue
			}
			if err != nil {
				return IngestResult{}, err
			}
		}
	}

	if err := uc.reviewAssignments(ctx, assignments, &result); err != nil {
		return IngestResult{}, err
	}

	result.ResultsReturned = result.Applied > 0 || result.Duplicates > 0
	logger.Info("ingestion cycle finished",
		"event", "ingest_cycle_finished",
		"module", "crowd-labeling/campaign-service",
		"layer", "application",
		"assignments", result.Assignments,
		"applied", result.Applied,
		"duplicates", result.Duplicates,
		"malformed", result.Malformed,
		"approved", result.Approved,
		"approval_failures", result.ApprovalFailures,
	)
	return result, nil
}

// applyAnswer performs the per-record duplicate check and insert. The check
// runs record by record, never batched, so a failure mid-run leaves every
// already-applied record correctly deduplicated on retry.
func (uc IngestUseCase) applyAnswer(
	ctx context.Context,
	result *IngestResult,
	answer entities.Answer,
	known map[string]bool,
) error {
	if exists, checked := known[answer.CampaignID]; checked {
		if !exists {
			return domainerrors.ErrCampaignNotFound
		}
	} else {
		_, err := uc.Campaigns.GetCampaign(ctx, answer.CampaignID)
		if errors.Is(err, domainerrors.ErrCampaignNotFound) {
			known[answer.CampaignID] = false
			return err
		}
		if err != nil {
			return err
		}
		known[answer.CampaignID] = true
	}

	duplicate, err := uc.Campaigns.AnswerExists(ctx, answer)
	if err != nil {
		return err
	}
	if duplicate {
		result.Duplicates++
		return nil
	}

	answer.AnswerID, err = uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	answer.CreatedAt = uc.Clock.Now().UTC()
	if err := uc.Campaigns.SaveAnswer(ctx, answer); err != nil {
		return err
	}
	result.Applied++

	logID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	return uc.Campaigns.AppendActionLog(ctx, entities.ActionLog{
		LogID:    logID,
		Source:   "ingestion",
		Message:  fmt.Sprintf("recorded answer from worker %s on hit %s for campaign %s term %s", answer.WorkerID, answer.HITID, answer.CampaignID, answer.TermID),
		LoggedAt: answer.CreatedAt,
	})
}

// reviewAssignments approves each ingested assignment and disables each HIT
// once. Approval failures are isolated per assignment: they are logged to the
// activity log and never block the remaining approvals in the batch.
func (uc IngestUseCase) reviewAssignments(
	ctx context.Context,
	assignments []ports.Assignment,
	result *IngestResult,
) error {
	logger := application.ResolveLogger(uc.Logger)
	disabled := make(map[string]bool)

	for _, assignment := range assignments {
		if err := uc.Marketplace.ApproveAssignment(ctx, assignment.AssignmentID); err != nil {
			result.ApprovalFailures++
			logger.Warn("assignment approval failed",
				"event", "ingest_approval_failed",
				"module", "crowd-labeling/campaign-service",
				"layer", "application",
				"assignment_id", assignment.AssignmentID,
				"hit_id", assignment.HITID,
				"error", err.Error(),
			)
			if logErr := uc.appendLog(ctx, "approval", fmt.Sprintf("failed to approve assignment %s on hit %s: %v", assignment.AssignmentID, assignment.HITID, err)); logErr != nil {
				return logErr
			}
			continue
		}
		result.Approved++
		if err := uc.appendLog(ctx, "approval", fmt.Sprintf("approved assignment %s on hit %s", assignment.AssignmentID, assignment.HITID)); err != nil {
			return err
		}
	}

	for _, assignment := range assignments {
		if disabled[assignment.HITID] {
			continue
		}
		disabled[assignment.HITID] = true
		if err := uc.Marketplace.DisableHIT(ctx, assignment.HITID); err != nil {
			logger.Warn("hit disable failed",
				"event", "ingest_disable_hit_failed",
				"module", "crowd-labeling/campaign-service",
				"layer", "application",
				"hit_id", assignment.HITID,
				"error", err.Error(),
			)
			continue
		}
		result.DisabledHITs++
	}
	return nil
}

func (uc IngestUseCase) appendLog(ctx context.Context, source, message string) error {
	logID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	return uc.Campaigns.AppendActionLog(ctx, entities.ActionLog{
		LogID:    logID,
		Source:   source,
		Message:  message,
		LoggedAt: uc.Clock.Now().UTC(),
	})
}
