package domain

import "time"

type ContentType string

const (
	ContentTypeProductDescription ContentType = "product_description"
	ContentTypeVideoScript        ContentType = "video_script"
	ContentTypeImagePrompt        ContentType = "image_prompt"
)

func (t ContentType) Valid() bool {
	switch t {
	case ContentTypeProductDescription, ContentTypeVideoScript, ContentTypeImagePrompt:
		return true
	}
	return false
}

type ContentStatus string

const (
	ContentStatusPending  ContentStatus = "PENDING"
	ContentStatusApproved ContentStatus = "APPROVED"
	ContentStatusRejected ContentStatus = "REJECTED"
)

// ContentItem is a generated piece awaiting governance. The retrieved
// chunk set that produced it is stored alongside for auditability. Created
// PENDING; only the governance flow mutates status.
type ContentItem struct {
	ID        string           `json:"id"`
	BrandID   string           `json:"brand_id"`
	ManualID  string           `json:"brand_manual_id"`
	Type      ContentType      `json:"type"`
	Brief     string           `json:"input_brief"`
	Output    string           `json:"output_text"`
	Chunks    []RetrievedChunk `json:"rag_chunks"`
	Status    ContentStatus    `json:"status"`
	CreatedBy string           `json:"created_by"`
	CreatedAt time.Time        `json:"created_at"`
}
