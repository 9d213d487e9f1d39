package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/dmoralesf/brand-guardian/internal/core/domain"
)

type govContentsFake struct {
	item          *domain.ContentItem
	statusUpdated domain.ContentStatus
	updateErr     error
	pending       []domain.ContentItem
	mine          []domain.ContentItem
	creatorArg    string
}

func (f *govContentsFake) InsertContent(context.Context, *domain.ContentItem) error {
	return errors.New("not implemented")
}
func (f *govContentsFake) GetContent(context.Context, string) (*domain.ContentItem, error) {
	if f.item == nil {
		return nil, domain.WrapError(domain.ErrNotFound, "get content", errors.New("no row"))
	}
	return f.item, nil
}
func (f *govContentsFake) UpdateStatus(_ context.Context, _ string, status domain.ContentStatus) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.statusUpdated = status
	if f.item != nil {
		f.item.Status = status
	}
	return nil
}
func (f *govContentsFake) ListByCreator(_ context.Context, creatorID string, _ int) ([]domain.ContentItem, error) {
	f.creatorArg = creatorID
	return f.mine, nil
}
func (f *govContentsFake) ListPending(context.Context, int) ([]domain.ContentItem, error) {
	return f.pending, nil
}

type govApprovalsFake struct {
	inserted []domain.ApprovalRecord
	err      error
}

func (f *govApprovalsFake) InsertApproval(_ context.Context, record *domain.ApprovalRecord) error {
	if f.err != nil {
		return f.err
	}
	f.inserted = append(f.inserted, *record)
	return nil
}
func (f *govApprovalsFake) ListByContent(context.Context, string) ([]domain.ApprovalRecord, error) {
	return nil, errors.New("not implemented")
}

func approver() domain.Profile {
	return domain.Profile{ID: "approver-1", Role: domain.RoleApprover}
}

func TestApproveSuccess(t *testing.T) {
	contents := &govContentsFake{item: &domain.ContentItem{ID: "content-1", Status: domain.ContentStatusPending}}
	approvals := &govApprovalsFake{}
	uc := NewGovernanceUseCase(contents, approvals)

	item, err := uc.Approve(context.Background(), "content-1", "looks good", approver())
	if err != nil {
		t.Fatalf("Approve() error = %v", err)
	}
	if item.Status != domain.ContentStatusApproved {
		t.Fatalf("expected APPROVED, got %s", item.Status)
	}
	if contents.statusUpdated != domain.ContentStatusApproved {
		t.Fatalf("status not updated")
	}
	if len(approvals.inserted) != 1 {
		t.Fatalf("expected one approval record, got %d", len(approvals.inserted))
	}
	record := approvals.inserted[0]
	if record.Decision != domain.DecisionApproved || record.ContentID != "content-1" {
		t.Fatalf("unexpected record %+v", record)
	}
	if record.Comment != "looks good" || record.CreatedBy != "approver-1" {
		t.Fatalf("unexpected record %+v", record)
	}
}

func TestRejectSuccess(t *testing.T) {
	contents := &govContentsFake{item: &domain.ContentItem{ID: "content-1", Status: domain.ContentStatusPending}}
	approvals := &govApprovalsFake{}
	uc := NewGovernanceUseCase(contents, approvals)

	item, err := uc.Reject(context.Background(), "content-1", "off brand", approver())
	if err != nil {
		t.Fatalf("Reject() error = %v", err)
	}
	if item.Status != domain.ContentStatusRejected {
		t.Fatalf("expected REJECTED, got %s", item.Status)
	}
	if approvals.inserted[0].Decision != domain.DecisionRejected {
		t.Fatalf("unexpected decision %s", approvals.inserted[0].Decision)
	}
}

func TestDecideCreatorForbidden(t *testing.T) {
	contents := &govContentsFake{item: &domain.ContentItem{ID: "content-1"}}
	approvals := &govApprovalsFake{}
	uc := NewGovernanceUseCase(contents, approvals)

	_, err := uc.Approve(context.Background(), "content-1", "", domain.Profile{ID: "creator-1", Role: domain.RoleCreator})
	if !domain.IsKind(err, domain.ErrForbidden) {
		t.Fatalf("creator decisions must be ErrForbidden, got %v", err)
	}
	if contents.statusUpdated != "" || len(approvals.inserted) != 0 {
		t.Fatalf("forbidden decision must not touch storage")
	}
}

func TestDecideMissingContentLeavesNoHistory(t *testing.T) {
	contents := &govContentsFake{updateErr: domain.WrapError(domain.ErrNotFound, "update status", errors.New("no row"))}
	approvals := &govApprovalsFake{}
	uc := NewGovernanceUseCase(contents, approvals)

	_, err := uc.Approve(context.Background(), "ghost", "", approver())
	if !domain.IsKind(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(approvals.inserted) != 0 {
		t.Fatalf("no approval record may exist for a missing item")
	}
}

func TestRedecidingAppendsHistory(t *testing.T) {
	contents := &govContentsFake{item: &domain.ContentItem{ID: "content-1", Status: domain.ContentStatusApproved}}
	approvals := &govApprovalsFake{}
	uc := NewGovernanceUseCase(contents, approvals)

	item, err := uc.Reject(context.Background(), "content-1", "changed my mind", approver())
	if err != nil {
		t.Fatalf("Reject() after approve error = %v", err)
	}
	if item.Status != domain.ContentStatusRejected {
		t.Fatalf("expected REJECTED after re-decision, got %s", item.Status)
	}
	if len(approvals.inserted) != 1 {
		t.Fatalf("each decision appends exactly one record")
	}
}

func TestInboxByRole(t *testing.T) {
	pending := []domain.ContentItem{{ID: "p1"}, {ID: "p2"}}
	mine := []domain.ContentItem{{ID: "m1"}}
	contents := &govContentsFake{pending: pending, mine: mine}
	uc := NewGovernanceUseCase(contents, &govApprovalsFake{})

	items, err := uc.Inbox(context.Background(), approver())
	if err != nil {
		t.Fatalf("Inbox() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("approver inbox must be all pending, got %d", len(items))
	}

	items, err = uc.Inbox(context.Background(), domain.Profile{ID: "creator-1", Role: domain.RoleCreator})
	if err != nil {
		t.Fatalf("Inbox() error = %v", err)
	}
	if len(items) != 1 || items[0].ID != "m1" {
		t.Fatalf("creator inbox must be own items, got %+v", items)
	}
	if contents.creatorArg != "creator-1" {
		t.Fatalf("creator inbox scoped to %s, want creator-1", contents.creatorArg)
	}
}

func TestInboxNeverNil(t *testing.T) {
	uc := NewGovernanceUseCase(&govContentsFake{}, &govApprovalsFake{})
	items, err := uc.Inbox(context.Background(), approver())
	if err != nil {
		t.Fatalf("Inbox() error = %v", err)
	}
	if items == nil {
		t.Fatalf("inbox must be empty slice, not nil")
	}
}
