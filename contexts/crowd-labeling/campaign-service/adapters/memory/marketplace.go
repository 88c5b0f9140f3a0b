package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	domainerrors "quorum/contexts/crowd-labeling/campaign-service/domain/errors"
	"quorum/contexts/crowd-labeling/campaign-service/ports"
)

// Marketplace is an in-process stand-in for the external crowd-labor
// marketplace. Tests queue canned assignments and inject failures; local
// wiring uses it when no real gateway is configured.
type Marketplace struct {
	mu sync.Mutex

	hitSeq      int
	quizzes     []ports.QuizRequest
	reviewable  []ports.Assignment
	approved    map[string]bool
	disabled    map[string]bool
	unavailable bool
	failApprove map[string]bool
}

func NewMarketplace() *Marketplace {
	return &Marketplace{
		approved:    make(map[string]bool),
		disabled:    make(map[string]bool),
		failApprove: make(map[string]bool),
	}
}

// SetUnavailable makes every gateway call fail with
// ErrMarketplaceUnavailable until reset.
func (m *Marketplace) SetUnavailable(down bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unavailable = down
}

// FailApproval makes ApproveAssignment fail for one assignment id.
func (m *Marketplace) FailApproval(assignmentID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failApprove[strings.TrimSpace(assignmentID)] = true
}

// QueueAssignment stages a completed assignment for the next reviewable poll.
func (m *Marketplace) QueueAssignment(assignment ports.Assignment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reviewable = append(m.reviewable, assignment)
}

// SubmittedQuizzes exposes everything submitted so far for test assertions.
func (m *Marketplace) SubmittedQuizzes() []ports.QuizRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ports.QuizRequest(nil), m.quizzes...)
}

func (m *Marketplace) Approved(assignmentID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.approved[strings.TrimSpace(assignmentID)]
}

func (m *Marketplace) Disabled(hitID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.disabled[strings.TrimSpace(hitID)]
}

func (m *Marketplace) CreateQuiz(_ context.Context, req ports.QuizRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.unavailable {
		return "", domainerrors.ErrMarketplaceUnavailable
	}
	m.hitSeq++
	m.quizzes = append(m.quizzes, req)
	return fmt.Sprintf("hit-%d", m.hitSeq), nil
}

func (m *Marketplace) ReviewableAssignments(_ context.Context, pageSize int) ([]ports.Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.unavailable {
		return nil, domainerrors.ErrMarketplaceUnavailable
	}
	if pageSize <= 0 || pageSize > len(m.reviewable) {
		pageSize = len(m.reviewable)
	}
	return append([]ports.Assignment(nil), m.reviewable[:pageSize]...), nil
}

func (m *Marketplace) ApproveAssignment(_ context.Context, assignmentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.unavailable {
		return domainerrors.ErrMarketplaceUnavailable
	}
	assignmentID = strings.TrimSpace(assignmentID)
	if m.failApprove[assignmentID] {
		return fmt.Errorf("approve assignment %s: rejected by marketplace", assignmentID)
	}
	m.approved[assignmentID] = true
	return nil
}

func (m *Marketplace) DisableHIT(_ context.Context, hitID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.unavailable {
		return domainerrors.ErrMarketplaceUnavailable
	}
	m.disabled[strings.TrimSpace(hitID)] = true

	kept := m.reviewable[:0]
	for _, assignment := range m.reviewable {
		if assignment.HITID != strings.TrimSpace(hitID) {
			kept = append(kept, assignment)
		}
	}
	m.reviewable = kept
	return nil
}
