package httpadapter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmoralesf/brand-guardian/internal/core/domain"
)

func TestGenerateContentSuccess(t *testing.T) {
	item := &domain.ContentItem{
		ID:     "content-1",
		Status: domain.ContentStatusPending,
		Output: "A warm, honest lamp.",
	}
	handler := newTestHandler(routerFakes{generator: contentGeneratorFake{item: item}})

	res := postJSON(t, handler, "/v1/content/generate", "creator-token", map[string]string{
		"brand_id": "b1", "type": "product_description", "brief": "desk lamp launch",
	})
	if res.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", res.Code, res.Body.String())
	}

	var resp map[string]any
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["id"] != "content-1" || resp["status"] != "PENDING" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestApproveContentSuccess(t *testing.T) {
	item := &domain.ContentItem{ID: "content-1", Status: domain.ContentStatusApproved}
	handler := newTestHandler(routerFakes{governance: governanceFake{item: item}})

	res := postJSON(t, handler, "/v1/content/content-1/approve", "approver-token", map[string]string{
		"comment": "on brand",
	})
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}

	var resp map[string]any
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["status"] != "APPROVED" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestBrandAuditUploadSuccess(t *testing.T) {
	auditor := &auditorFake{report: &domain.AuditReport{ID: "audit-1", Verdict: domain.VerdictCheck}}
	handler := newTestHandler(routerFakes{auditor: auditor})

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", "banner.png")
	if err != nil {
		t.Fatalf("CreateFormFile() error = %v", err)
	}
	if _, err := part.Write([]byte{0x89, 'P', 'N', 'G'}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/brands/b1/audits", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer creator-token")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", res.Code, res.Body.String())
	}
}

func TestBrandAuditMissingImageField(t *testing.T) {
	handler := newTestHandler(routerFakes{})

	req := httptest.NewRequest(http.MethodPost, "/v1/brands/b1/audits", bytes.NewBufferString("nope"))
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("Authorization", "Bearer creator-token")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestServeFileVerifiesSignature(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()
	path := fmt.Sprintf("/v1/files/b1/u1/123_x.png?exp=%d&sig=abc", exp)

	handler := newTestHandler(routerFakes{
		storage:  storageFake{data: []byte("png-bytes"), contentType: "image/png"},
		verifier: verifierFake{ok: true},
	})
	req := httptest.NewRequest(http.MethodGet, path, nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	if res.Code != http.StatusOK {
		t.Fatalf("valid signature expected 200, got %d", res.Code)
	}
	if res.Header().Get("Content-Type") != "image/png" {
		t.Fatalf("unexpected content type %q", res.Header().Get("Content-Type"))
	}

	handler = newTestHandler(routerFakes{verifier: verifierFake{ok: false}})
	req = httptest.NewRequest(http.MethodGet, path, nil)
	res = httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	if res.Code != http.StatusForbidden {
		t.Fatalf("bad signature expected 403, got %d", res.Code)
	}
}

func TestServeFileRejectsExpiredLink(t *testing.T) {
	exp := time.Now().Add(-time.Minute).Unix()
	path := fmt.Sprintf("/v1/files/b1/u1/123_x.png?exp=%d&sig=abc", exp)

	handler := newTestHandler(routerFakes{verifier: verifierFake{ok: true}})
	req := httptest.NewRequest(http.MethodGet, path, nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	if res.Code != http.StatusForbidden {
		t.Fatalf("expired link expected 403, got %d", res.Code)
	}
}
