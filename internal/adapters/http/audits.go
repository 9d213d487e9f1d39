package httpadapter

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/dmoralesf/brand-guardian/internal/core/domain"
)

const maxImageBytes = 15 << 20

func (rt *Router) auditBrandImage(w http.ResponseWriter, r *http.Request) {
	rt.runImageAudit(w, r, "brand", func(args auditArgs) (*domain.AuditReport, error) {
		return rt.auditUC.AuditBrandImage(r.Context(), r.PathValue("id"), args.filename, args.mimeType, args.image, args.profile)
	})
}

func (rt *Router) auditContentImage(w http.ResponseWriter, r *http.Request) {
	rt.runImageAudit(w, r, "content", func(args auditArgs) (*domain.AuditReport, error) {
		return rt.auditUC.AuditContentImage(r.Context(), r.PathValue("id"), args.filename, args.mimeType, args.image, args.profile)
	})
}

type auditArgs struct {
	filename string
	mimeType string
	image    []byte
	profile  domain.Profile
}

func (rt *Router) runImageAudit(w http.ResponseWriter, r *http.Request, subject string, run func(auditArgs) (*domain.AuditReport, error)) {
	profile, _ := profileFromContext(r.Context())

	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart form with field 'image' is required"})
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'image' is required"})
		return
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "failed to read image"})
		return
	}
	if len(image) > maxImageBytes {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "image exceeds size limit"})
		return
	}

	start := time.Now()
	report, err := run(auditArgs{
		filename: header.Filename,
		mimeType: header.Header.Get("Content-Type"),
		image:    image,
		profile:  profile,
	})
	if err != nil {
		rt.recordAudit(subject, "error", start)
		writeError(w, err)
		return
	}
	rt.recordAudit(subject, string(report.Verdict), start)
	writeJSON(w, http.StatusCreated, report)
}

func (rt *Router) listAudits(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	reports, err := rt.auditUC.ListByBrand(r.Context(), r.PathValue("id"), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"audits": reports})
}
