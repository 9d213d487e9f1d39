package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmoralesf/brand-guardian/internal/core/domain"
	"github.com/dmoralesf/brand-guardian/internal/core/ports"
)

const (
	// Fixed retrieval queries for visual compliance rules. The content
	// flow asks for a broader slice of the manual (clear space, checklist).
	brandRuleQuery   = "visual guidelines logo rules colors typography image style"
	contentRuleQuery = "logo rules size clear space colors typography image style visual guidelines approval checklist"

	brandAuditRetrieveK   = 12
	contentAuditRetrieveK = 10
	auditKeepK            = 6

	signedURLTTL = time.Hour
)

type AuditImageUseCase struct {
	manuals  ports.ManualRepository
	contents ports.ContentRepository
	reports  ports.AuditRepository
	storage  ports.ObjectStorage
	embedder ports.Embedder
	index    ports.ChunkIndex
	judge    ports.VisionJudge
	tracer   ports.Tracer
}

func NewAuditImageUseCase(
	manuals ports.ManualRepository,
	contents ports.ContentRepository,
	reports ports.AuditRepository,
	storage ports.ObjectStorage,
	embedder ports.Embedder,
	index ports.ChunkIndex,
	judge ports.VisionJudge,
	tracer ports.Tracer,
) *AuditImageUseCase {
	return &AuditImageUseCase{
		manuals:  manuals,
		contents: contents,
		reports:  reports,
		storage:  storage,
		embedder: embedder,
		index:    index,
		judge:    judge,
		tracer:   tracer,
	}
}

// AuditBrandImage audits an uploaded image against the brand's latest
// manual.
func (uc *AuditImageUseCase) AuditBrandImage(ctx context.Context, brandID, filename, mimeType string, image []byte, profile domain.Profile) (*domain.AuditReport, error) {
	span := uc.tracer.Trace("audit.multimodal.by_brand", map[string]any{
		"brand_id": brandID,
		"filename": filename,
		"role":     string(profile.Role),
	})
	defer span.End()

	manual, err := uc.manuals.GetLatestManual(ctx, brandID)
	if err != nil {
		return nil, fmt.Errorf("fetch latest manual: %w", err)
	}

	report, err := uc.runAudit(ctx, auditSubject{brandID: brandID, manualID: manual.ID, ruleQuery: brandRuleQuery, retrieveK: brandAuditRetrieveK}, filename, mimeType, image, profile, span)
	if err != nil {
		return nil, err
	}
	return report, nil
}

// AuditContentImage audits an image attached to a content item against
// the manual that produced the item.
func (uc *AuditImageUseCase) AuditContentImage(ctx context.Context, contentID, filename, mimeType string, image []byte, profile domain.Profile) (*domain.AuditReport, error) {
	span := uc.tracer.Trace("audit.multimodal.by_content", map[string]any{
		"content_id": contentID,
		"filename":   filename,
		"role":       string(profile.Role),
	})
	defer span.End()

	item, err := uc.contents.GetContent(ctx, contentID)
	if err != nil {
		return nil, fmt.Errorf("fetch content item: %w", err)
	}

	report, err := uc.runAudit(ctx, auditSubject{contentID: contentID, brandID: item.BrandID, manualID: item.ManualID, ruleQuery: contentRuleQuery, retrieveK: contentAuditRetrieveK}, filename, mimeType, image, profile, span)
	if err != nil {
		return nil, err
	}
	return report, nil
}

type auditSubject struct {
	brandID   string
	contentID string
	manualID  string
	ruleQuery string
	retrieveK int
}

func (s auditSubject) storagePrefix() string {
	if s.contentID != "" {
		return s.contentID
	}
	return "brand_" + s.brandID
}

// runAudit is the shared audit pipeline: upload, retrieve rules, rerank,
// judge, apply the deterministic verdict policy, persist.
func (uc *AuditImageUseCase) runAudit(ctx context.Context, subject auditSubject, filename, mimeType string, image []byte, profile domain.Profile, span ports.Span) (*domain.AuditReport, error) {
	if len(image) == 0 {
		return nil, domain.WrapError(domain.ErrValidation, "audit image", fmt.Errorf("image is empty"))
	}
	if filename == "" {
		filename = "image.jpg"
	}

	path := fmt.Sprintf("%s/%s/%d_%s",
		subject.storagePrefix(), profile.ID, time.Now().UTC().Unix(), strings.ReplaceAll(filename, " ", "_"))
	if err := uc.storage.Upload(ctx, path, image, mimeType); err != nil {
		return nil, fmt.Errorf("upload audit image: %w", err)
	}
	signedURL, err := uc.storage.SignedURL(path, signedURLTTL)
	if err != nil {
		return nil, fmt.Errorf("sign image url: %w", err)
	}

	queryVector, err := uc.embedder.EmbedQuery(ctx, subject.ruleQuery)
	if err != nil {
		return nil, fmt.Errorf("embed rule query: %w", err)
	}
	candidates, err := uc.index.Search(ctx, subject.manualID, queryVector, subject.retrieveK)
	if err != nil {
		return nil, fmt.Errorf("retrieve rule chunks: %w", err)
	}

	reranked := RerankChunks(candidates, domain.ContentTypeImagePrompt, auditKeepK)
	rulesText := buildRulesText(reranked)
	span.Update(map[string]any{
		"manual_id":  subject.manualID,
		"rule_count": len(reranked),
		"image_path": path,
	})

	judgment, err := uc.judge.Judge(ctx, image, mimeType, rulesText)
	if err != nil {
		return nil, fmt.Errorf("judge image: %w", err)
	}
	verdict := ApplyVerdictPolicy(judgment)

	report := &domain.AuditReport{
		ID:                  uuid.NewString(),
		BrandID:             subject.brandID,
		ContentID:           subject.contentID,
		ManualID:            subject.manualID,
		ImagePath:           path,
		ImageURL:            signedURL,
		Verdict:             verdict,
		ValidatedRulesCount: judgment.ValidatedRulesCount,
		ValidatedRules:      judgment.ValidatedRules,
		Violations:          judgment.Violations,
		Notes:               judgment.Notes,
		Raw:                 judgment.Raw,
		CreatedBy:           profile.ID,
		CreatedAt:           time.Now().UTC(),
	}
	if report.ValidatedRules == nil {
		report.ValidatedRules = []string{}
	}
	if report.Violations == nil {
		report.Violations = []domain.Violation{}
	}
	if report.Notes == nil {
		report.Notes = []string{}
	}

	if err := uc.reports.InsertReport(ctx, report); err != nil {
		return nil, fmt.Errorf("persist audit report: %w", err)
	}

	span.Update(map[string]any{"verdict": string(verdict)})
	return report, nil
}

// ListByBrand returns the brand's most recent audit reports.
func (uc *AuditImageUseCase) ListByBrand(ctx context.Context, brandID string, limit int) ([]domain.AuditReport, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	reports, err := uc.reports.ListByBrand(ctx, brandID, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit reports: %w", err)
	}
	if reports == nil {
		reports = []domain.AuditReport{}
	}
	return reports, nil
}

func buildRulesText(chunks []domain.RetrievedChunk) string {
	blocks := make([]string, 0, len(chunks))
	for _, c := range chunks {
		blocks = append(blocks, fmt.Sprintf("[%s] %s", c.Section, c.Text))
	}
	return strings.Join(blocks, "\n\n")
}
