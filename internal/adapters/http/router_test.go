package httpadapter

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmoralesf/brand-guardian/internal/core/domain"
	"github.com/dmoralesf/brand-guardian/internal/core/ports"
)

type brandServiceFake struct {
	brand *domain.Brand
	err   error
}

func (f brandServiceFake) CreateBrand(context.Context, string, string, domain.Profile) (*domain.Brand, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.brand, nil
}
func (f brandServiceFake) GetBrand(context.Context, string) (*domain.Brand, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.brand, nil
}
func (f brandServiceFake) ListBrands(context.Context) ([]domain.Brand, error) {
	return []domain.Brand{}, nil
}
func (f brandServiceFake) SetVisualRules(context.Context, string, domain.VisualRules) (*domain.VisualRules, error) {
	return &domain.VisualRules{}, nil
}
func (f brandServiceFake) GetVisualRules(context.Context, string) (*domain.VisualRules, error) {
	return &domain.VisualRules{}, nil
}

type manualBuilderFake struct {
	record *domain.ManualRecord
	err    error
}

func (f manualBuilderFake) CreateManual(context.Context, string, ports.ManualRequest) (*domain.ManualRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.record, nil
}
func (f manualBuilderFake) GetManual(context.Context, string) (*domain.ManualRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.record, nil
}
func (f manualBuilderFake) GetLatestManual(context.Context, string) (*domain.ManualRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.record, nil
}

type contentGeneratorFake struct {
	item *domain.ContentItem
	err  error
}

func (f contentGeneratorFake) Generate(context.Context, ports.GenerateRequest, domain.Profile) (*domain.ContentItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.item, nil
}
func (f contentGeneratorFake) GetContent(context.Context, string) (*domain.ContentItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.item, nil
}

type governanceFake struct {
	item *domain.ContentItem
	err  error
}

func (f governanceFake) Approve(context.Context, string, string, domain.Profile) (*domain.ContentItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.item, nil
}
func (f governanceFake) Reject(context.Context, string, string, domain.Profile) (*domain.ContentItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.item, nil
}
func (f governanceFake) Inbox(context.Context, domain.Profile) ([]domain.ContentItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []domain.ContentItem{}, nil
}

type auditorFake struct {
	report   *domain.AuditReport
	err      error
	mimeType string
}

func (f *auditorFake) AuditBrandImage(_ context.Context, _, _, mimeType string, _ []byte, _ domain.Profile) (*domain.AuditReport, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mimeType = mimeType
	return f.report, nil
}
func (f *auditorFake) AuditContentImage(context.Context, string, string, string, []byte, domain.Profile) (*domain.AuditReport, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.report, nil
}
func (f *auditorFake) ListByBrand(context.Context, string, int) ([]domain.AuditReport, error) {
	return []domain.AuditReport{}, nil
}

type profilesFake struct {
	profiles map[string]domain.Profile
}

func (f profilesFake) ProfileByToken(_ context.Context, token string) (*domain.Profile, error) {
	profile, ok := f.profiles[token]
	if !ok {
		return nil, domain.WrapError(domain.ErrForbidden, "resolve token", errors.New("unknown token"))
	}
	return &profile, nil
}

type storageFake struct {
	data        []byte
	contentType string
	err         error
}

func (f storageFake) Upload(context.Context, string, []byte, string) error { return f.err }
func (f storageFake) Open(context.Context, string) ([]byte, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	return f.data, f.contentType, nil
}
func (f storageFake) SignedURL(string, time.Duration) (string, error) { return "", f.err }

type verifierFake struct{ ok bool }

func (f verifierFake) VerifySignature(string, int64, string) bool { return f.ok }

type routerFakes struct {
	brands     brandServiceFake
	manuals    manualBuilderFake
	generator  contentGeneratorFake
	governance governanceFake
	auditor    *auditorFake
	storage    storageFake
	verifier   verifierFake
}

func newTestHandler(f routerFakes) http.Handler {
	if f.auditor == nil {
		f.auditor = &auditorFake{}
	}
	profiles := profilesFake{profiles: map[string]domain.Profile{
		"creator-token":  {ID: "creator-1", Role: domain.RoleCreator},
		"approver-token": {ID: "approver-1", Role: domain.RoleApprover},
	}}
	return NewRouter(
		f.brands,
		f.manuals,
		f.generator,
		f.governance,
		f.auditor,
		profiles,
		f.storage,
		f.verifier,
		TrafficConfig{},
	).Handler()
}

func TestHealthzEndpoint(t *testing.T) {
	handler := newTestHandler(routerFakes{})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
}

func TestAPIRequiresBearerToken(t *testing.T) {
	handler := newTestHandler(routerFakes{})

	req := httptest.NewRequest(http.MethodGet, "/v1/inbox", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	if res.Code != http.StatusUnauthorized {
		t.Fatalf("missing token expected 401, got %d", res.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/inbox", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	res = httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	if res.Code != http.StatusUnauthorized {
		t.Fatalf("unknown token expected 401, got %d", res.Code)
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	handler := newTestHandler(routerFakes{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "req-42")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if got := res.Header().Get(requestIDHeader); got != "req-42" {
		t.Fatalf("expected request id echoed, got %q", got)
	}
}
