package httpadapter

import (
	"net/http"

	"github.com/dmoralesf/brand-guardian/internal/core/ports"
)

func (rt *Router) createManual(w http.ResponseWriter, r *http.Request) {
	var req ports.ManualRequest
	if !decodeJSON(r, &req) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	record, err := rt.manualUC.CreateManual(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeError(w, err)
		return
	}
	// Chunk indexing happens asynchronously in the worker; the manual is
	// returned before it becomes retrievable.
	writeJSON(w, http.StatusAccepted, record)
}

func (rt *Router) getLatestManual(w http.ResponseWriter, r *http.Request) {
	record, err := rt.manualUC.GetLatestManual(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (rt *Router) getManual(w http.ResponseWriter, r *http.Request) {
	record, err := rt.manualUC.GetManual(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}
