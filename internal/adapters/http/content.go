package httpadapter

import (
	"net/http"
	"time"

	"github.com/dmoralesf/brand-guardian/internal/core/ports"
)

func (rt *Router) generateContent(w http.ResponseWriter, r *http.Request) {
	profile, _ := profileFromContext(r.Context())

	var req ports.GenerateRequest
	if !decodeJSON(r, &req) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	start := time.Now()
	item, err := rt.generateUC.Generate(r.Context(), req, profile)
	if err != nil {
		rt.recordGeneration(string(req.Type), "error", 0, start)
		writeError(w, err)
		return
	}
	rt.recordGeneration(string(req.Type), "success", len(item.Chunks), start)
	writeJSON(w, http.StatusCreated, item)
}

func (rt *Router) getContent(w http.ResponseWriter, r *http.Request) {
	item, err := rt.generateUC.GetContent(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}
