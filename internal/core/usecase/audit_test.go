package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmoralesf/brand-guardian/internal/core/domain"
)

type auditReportsFake struct {
	inserted *domain.AuditReport
	err      error
}

func (f *auditReportsFake) InsertReport(_ context.Context, report *domain.AuditReport) error {
	if f.err != nil {
		return f.err
	}
	copyReport := *report
	f.inserted = &copyReport
	return nil
}
func (f *auditReportsFake) ListByBrand(context.Context, string, int) ([]domain.AuditReport, error) {
	return nil, errors.New("not implemented")
}

type auditStorageFake struct {
	uploadedPath string
	uploadedMime string
	uploadErr    error
}

func (f *auditStorageFake) Upload(_ context.Context, path string, _ []byte, contentType string) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.uploadedPath = path
	f.uploadedMime = contentType
	return nil
}
func (f *auditStorageFake) Open(context.Context, string) ([]byte, string, error) {
	return nil, "", errors.New("not implemented")
}
func (f *auditStorageFake) SignedURL(path string, _ time.Duration) (string, error) {
	return "https://files.local/" + path + "?sig=abc", nil
}

type auditJudgeFake struct {
	rulesText string
	judgment  domain.AuditJudgment
	err       error
}

func (f *auditJudgeFake) Judge(_ context.Context, _ []byte, _ string, rulesText string) (domain.AuditJudgment, error) {
	if f.err != nil {
		return domain.AuditJudgment{}, f.err
	}
	f.rulesText = rulesText
	return f.judgment, nil
}

func visualChunks() []domain.RetrievedChunk {
	return []domain.RetrievedChunk{
		{Section: "visual.logo_rules", Text: "never stretch the logo", Similarity: 0.9},
		{Section: "visual.colors", Text: "#FFAA00 only", Similarity: 0.8},
		{Section: "visual.typography", Text: "Inter only", Similarity: 0.7},
	}
}

func newAuditUC(manuals *genManualsFake, contents *genContentsFake, reports *auditReportsFake, storage *auditStorageFake, embedder *genEmbedderFake, index *genIndexFake, judge *auditJudgeFake) *AuditImageUseCase {
	return NewAuditImageUseCase(manuals, contents, reports, storage, embedder, index, judge, tracerFake{})
}

func TestAuditBrandImageCheck(t *testing.T) {
	manuals := &genManualsFake{latest: &domain.ManualRecord{ID: "manual-1", BrandID: "brand-1"}}
	storage := &auditStorageFake{}
	embedder := &genEmbedderFake{}
	index := &genIndexFake{results: visualChunks()}
	judge := &auditJudgeFake{judgment: domain.AuditJudgment{
		Verdict:             "CHECK",
		ValidatedRulesCount: 3,
		ValidatedRules:      []string{"logo", "colors", "typography"},
	}}
	reports := &auditReportsFake{}
	uc := newAuditUC(manuals, &genContentsFake{}, reports, storage, embedder, index, judge)

	report, err := uc.AuditBrandImage(context.Background(), "brand-1", "banner.png", "image/png", []byte{1, 2, 3}, domain.Profile{ID: "user-1", Role: domain.RoleCreator})
	if err != nil {
		t.Fatalf("AuditBrandImage() error = %v", err)
	}

	if report.Verdict != domain.VerdictCheck {
		t.Fatalf("expected CHECK, got %s", report.Verdict)
	}
	if report.BrandID != "brand-1" || report.ManualID != "manual-1" {
		t.Fatalf("wrong linkage: %+v", report)
	}
	if len(embedder.queries) != 1 || embedder.queries[0] != brandRuleQuery {
		t.Fatalf("expected fixed brand rule query, got %v", embedder.queries)
	}
	if index.searchManualID != "manual-1" || index.searchLimit != brandAuditRetrieveK {
		t.Fatalf("search scope/limit wrong: %s/%d", index.searchManualID, index.searchLimit)
	}
	if !strings.Contains(judge.rulesText, "[visual.logo_rules] never stretch the logo") {
		t.Fatalf("rules text missing chunk:\n%s", judge.rulesText)
	}
	if !strings.Contains(storage.uploadedPath, "brand_brand-1/user-1/") {
		t.Fatalf("unexpected storage path %s", storage.uploadedPath)
	}
	if !strings.HasSuffix(storage.uploadedPath, "_banner.png") {
		t.Fatalf("filename not preserved in path %s", storage.uploadedPath)
	}
	if reports.inserted == nil {
		t.Fatalf("report must be persisted")
	}
	if !strings.HasPrefix(report.ImageURL, "https://files.local/") {
		t.Fatalf("expected signed url, got %s", report.ImageURL)
	}
}

func TestAuditBrandImageViolationsOverrideVerdict(t *testing.T) {
	manuals := &genManualsFake{latest: &domain.ManualRecord{ID: "manual-1"}}
	judge := &auditJudgeFake{judgment: domain.AuditJudgment{
		Verdict:             "CHECK",
		ValidatedRulesCount: 5,
		Violations:          []domain.Violation{{Rule: "logo", Evidence: "stretched", Fix: "use original ratio"}},
	}}
	uc := newAuditUC(manuals, &genContentsFake{}, &auditReportsFake{}, &auditStorageFake{}, &genEmbedderFake{}, &genIndexFake{results: visualChunks()}, judge)

	report, err := uc.AuditBrandImage(context.Background(), "brand-1", "x.jpg", "image/jpeg", []byte{1}, domain.Profile{ID: "u"})
	if err != nil {
		t.Fatalf("AuditBrandImage() error = %v", err)
	}
	if report.Verdict != domain.VerdictFail {
		t.Fatalf("violations must force FAIL regardless of model verdict, got %s", report.Verdict)
	}
}

func TestAuditContentImageUsesItemManual(t *testing.T) {
	contents := &genContentsFake{byID: &domain.ContentItem{ID: "content-1", BrandID: "brand-1", ManualID: "manual-7"}}
	embedder := &genEmbedderFake{}
	index := &genIndexFake{results: visualChunks()}
	judge := &auditJudgeFake{judgment: domain.AuditJudgment{ValidatedRulesCount: 2}}
	reports := &auditReportsFake{}
	uc := newAuditUC(&genManualsFake{}, contents, reports, &auditStorageFake{}, embedder, index, judge)

	report, err := uc.AuditContentImage(context.Background(), "content-1", "still.jpg", "image/jpeg", []byte{1}, domain.Profile{ID: "user-1"})
	if err != nil {
		t.Fatalf("AuditContentImage() error = %v", err)
	}
	if report.ContentID != "content-1" || report.ManualID != "manual-7" {
		t.Fatalf("wrong linkage: %+v", report)
	}
	if index.searchManualID != "manual-7" || index.searchLimit != contentAuditRetrieveK {
		t.Fatalf("search scope/limit wrong: %s/%d", index.searchManualID, index.searchLimit)
	}
	if embedder.queries[0] != contentRuleQuery {
		t.Fatalf("expected content rule query, got %q", embedder.queries[0])
	}
	if report.Verdict != domain.VerdictCheck {
		t.Fatalf("expected CHECK, got %s", report.Verdict)
	}
}

func TestAuditEmptyImage(t *testing.T) {
	manuals := &genManualsFake{latest: &domain.ManualRecord{ID: "manual-1"}}
	uc := newAuditUC(manuals, &genContentsFake{}, &auditReportsFake{}, &auditStorageFake{}, &genEmbedderFake{}, &genIndexFake{}, &auditJudgeFake{})

	_, err := uc.AuditBrandImage(context.Background(), "brand-1", "x.png", "image/png", nil, domain.Profile{ID: "u"})
	if !domain.IsKind(err, domain.ErrValidation) {
		t.Fatalf("empty image must be ErrValidation, got %v", err)
	}
}

func TestAuditNoManual(t *testing.T) {
	manuals := &genManualsFake{err: domain.WrapError(domain.ErrNoManual, "get latest manual", errors.New("no rows"))}
	uc := newAuditUC(manuals, &genContentsFake{}, &auditReportsFake{}, &auditStorageFake{}, &genEmbedderFake{}, &genIndexFake{}, &auditJudgeFake{})

	_, err := uc.AuditBrandImage(context.Background(), "brand-1", "x.png", "image/png", []byte{1}, domain.Profile{ID: "u"})
	if !domain.IsKind(err, domain.ErrNoManual) {
		t.Fatalf("expected ErrNoManual, got %v", err)
	}
}

func TestAuditNormalizesNilLists(t *testing.T) {
	manuals := &genManualsFake{latest: &domain.ManualRecord{ID: "manual-1"}}
	judge := &auditJudgeFake{judgment: domain.AuditJudgment{ValidatedRulesCount: 2}}
	reports := &auditReportsFake{}
	uc := newAuditUC(manuals, &genContentsFake{}, reports, &auditStorageFake{}, &genEmbedderFake{}, &genIndexFake{results: visualChunks()}, judge)

	report, err := uc.AuditBrandImage(context.Background(), "brand-1", "x.png", "image/png", []byte{1}, domain.Profile{ID: "u"})
	if err != nil {
		t.Fatalf("AuditBrandImage() error = %v", err)
	}
	if report.ValidatedRules == nil || report.Violations == nil || report.Notes == nil {
		t.Fatalf("report lists must never be nil: %+v", report)
	}
}
