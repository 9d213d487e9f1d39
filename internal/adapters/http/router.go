package httpadapter

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dmoralesf/brand-guardian/internal/core/ports"
	"github.com/dmoralesf/brand-guardian/internal/observability/metrics"
)

// TrafficConfig tunes the request gates in front of the handlers.
type TrafficConfig struct {
	RateLimitRPS   float64
	RateLimitBurst int
	MaxInFlight    int
	QueueTimeout   time.Duration
}

type Router struct {
	brandUC      ports.BrandService
	manualUC     ports.ManualBuilder
	generateUC   ports.ContentGenerator
	governanceUC ports.GovernanceService
	auditUC      ports.ImageAuditor
	profiles     ports.ProfileRepository
	storage      ports.ObjectStorage
	verifier     SignatureVerifier
	traffic      TrafficConfig

	metrics *metrics.HTTPServerMetrics
	service string
}

// SignatureVerifier validates the query signature of a signed file URL.
type SignatureVerifier interface {
	VerifySignature(path string, expires int64, signature string) bool
}

func NewRouter(
	brandUC ports.BrandService,
	manualUC ports.ManualBuilder,
	generateUC ports.ContentGenerator,
	governanceUC ports.GovernanceService,
	auditUC ports.ImageAuditor,
	profiles ports.ProfileRepository,
	storage ports.ObjectStorage,
	verifier SignatureVerifier,
	traffic TrafficConfig,
) *Router {
	return &Router{
		brandUC:      brandUC,
		manualUC:     manualUC,
		generateUC:   generateUC,
		governanceUC: governanceUC,
		auditUC:      auditUC,
		profiles:     profiles,
		storage:      storage,
		verifier:     verifier,
		traffic:      traffic,
	}
}

// WithMetrics attaches the Prometheus collectors. When set, Handler also
// mounts the /metrics scrape endpoint.
func (rt *Router) WithMetrics(m *metrics.HTTPServerMetrics, service string) *Router {
	rt.metrics = m
	rt.service = service
	return rt
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", rt.healthz)
	if rt.metrics != nil {
		mux.Handle("GET /metrics", rt.metrics.Handler())
	}
	// Signed file links carry their own auth, the bearer gate is skipped.
	mux.HandleFunc("GET /v1/files/{path...}", rt.serveFile)

	api := http.NewServeMux()
	api.HandleFunc("POST /v1/brands", rt.createBrand)
	api.HandleFunc("GET /v1/brands", rt.listBrands)
	api.HandleFunc("GET /v1/brands/{id}", rt.getBrand)
	api.HandleFunc("PUT /v1/brands/{id}/visual-rules", rt.setVisualRules)
	api.HandleFunc("GET /v1/brands/{id}/visual-rules", rt.getVisualRules)
	api.HandleFunc("POST /v1/brands/{id}/manual", rt.createManual)
	api.HandleFunc("GET /v1/brands/{id}/manual", rt.getLatestManual)
	api.HandleFunc("GET /v1/manuals/{id}", rt.getManual)
	api.HandleFunc("POST /v1/content/generate", rt.generateContent)
	api.HandleFunc("GET /v1/content/{id}", rt.getContent)
	api.HandleFunc("POST /v1/content/{id}/approve", rt.approveContent)
	api.HandleFunc("POST /v1/content/{id}/reject", rt.rejectContent)
	api.HandleFunc("POST /v1/content/{id}/audits", rt.auditContentImage)
	api.HandleFunc("GET /v1/inbox", rt.inbox)
	api.HandleFunc("POST /v1/brands/{id}/audits", rt.auditBrandImage)
	api.HandleFunc("GET /v1/brands/{id}/audits", rt.listAudits)
	mux.Handle("/v1/", rt.authMiddleware(api))

	var handler http.Handler = mux
	handler = backpressureMiddleware(handler, rt.traffic.MaxInFlight, rt.traffic.QueueTimeout)
	handler = rateLimitMiddleware(handler, rt.traffic.RateLimitRPS, rt.traffic.RateLimitBurst)
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(rt.service, handler)
	}
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) recordGeneration(contentType, status string, chunks int, start time.Time) {
	if rt.metrics == nil {
		return
	}
	rt.metrics.RecordGeneration(rt.service, contentType, status, chunks, time.Since(start))
}

func (rt *Router) recordAudit(subject, verdict string, start time.Time) {
	if rt.metrics == nil {
		return
	}
	rt.metrics.RecordAudit(rt.service, subject, verdict, time.Since(start))
}

func (rt *Router) recordDecision(decision string) {
	if rt.metrics == nil {
		return
	}
	rt.metrics.RecordGovernanceDecision(rt.service, decision)
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}

func decodeJSON(r *http.Request, dst any) bool {
	return json.NewDecoder(r.Body).Decode(dst) == nil
}
