package domain

import "time"

type Role string

const (
	RoleCreator  Role = "creator"
	RoleApprover Role = "approver"
)

// Profile is the caller identity supplied by the auth collaborator. The
// core only consumes the role value.
type Profile struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Role  Role   `json:"role"`
}

type Decision string

const (
	DecisionApproved Decision = "APPROVED"
	DecisionRejected Decision = "REJECTED"
)

// ApprovalRecord is an immutable, append-only governance entry. A content
// item may accumulate several if it is re-reviewed.
type ApprovalRecord struct {
	ID        string    `json:"id"`
	ContentID string    `json:"content_item_id"`
	Role      Role      `json:"role"`
	Decision  Decision  `json:"decision"`
	Comment   string    `json:"comment,omitempty"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}
