package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmoralesf/brand-guardian/internal/core/domain"
	"github.com/dmoralesf/brand-guardian/internal/core/ports"
)

const inboxLimit = 50

// GovernanceUseCase drives the content approval lifecycle. Decisions are
// append-only; the item's status reflects the most recent one.
type GovernanceUseCase struct {
	contents  ports.ContentRepository
	approvals ports.ApprovalRepository
}

func NewGovernanceUseCase(contents ports.ContentRepository, approvals ports.ApprovalRepository) *GovernanceUseCase {
	return &GovernanceUseCase{contents: contents, approvals: approvals}
}

func (uc *GovernanceUseCase) Approve(ctx context.Context, contentID, comment string, profile domain.Profile) (*domain.ContentItem, error) {
	return uc.decide(ctx, contentID, comment, profile, domain.DecisionApproved, domain.ContentStatusApproved)
}

func (uc *GovernanceUseCase) Reject(ctx context.Context, contentID, comment string, profile domain.Profile) (*domain.ContentItem, error) {
	return uc.decide(ctx, contentID, comment, profile, domain.DecisionRejected, domain.ContentStatusRejected)
}

func (uc *GovernanceUseCase) decide(ctx context.Context, contentID, comment string, profile domain.Profile, decision domain.Decision, status domain.ContentStatus) (*domain.ContentItem, error) {
	if profile.Role != domain.RoleApprover {
		return nil, domain.WrapError(domain.ErrForbidden, "governance decision", fmt.Errorf("role %q cannot decide", profile.Role))
	}

	// Update status first: it guards against recording history for an
	// item that does not exist.
	if err := uc.contents.UpdateStatus(ctx, contentID, status); err != nil {
		return nil, fmt.Errorf("update content status: %w", err)
	}

	record := &domain.ApprovalRecord{
		ID:        uuid.NewString(),
		ContentID: contentID,
		Role:      profile.Role,
		Decision:  decision,
		Comment:   comment,
		CreatedBy: profile.ID,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.approvals.InsertApproval(ctx, record); err != nil {
		return nil, fmt.Errorf("record decision: %w", err)
	}

	item, err := uc.contents.GetContent(ctx, contentID)
	if err != nil {
		return nil, fmt.Errorf("reload content item: %w", err)
	}
	return item, nil
}

// Inbox projects the caller's work queue: creators see their own items in
// any status, approvers see everything still pending. Newest first.
func (uc *GovernanceUseCase) Inbox(ctx context.Context, profile domain.Profile) ([]domain.ContentItem, error) {
	var (
		items []domain.ContentItem
		err   error
	)
	if profile.Role == domain.RoleApprover {
		items, err = uc.contents.ListPending(ctx, inboxLimit)
	} else {
		items, err = uc.contents.ListByCreator(ctx, profile.ID, inboxLimit)
	}
	if err != nil {
		return nil, fmt.Errorf("load inbox: %w", err)
	}
	if items == nil {
		items = []domain.ContentItem{}
	}
	return items, nil
}
