package httpadapter

import "net/http"

type decisionRequest struct {
	Comment string `json:"comment"`
}

func (rt *Router) approveContent(w http.ResponseWriter, r *http.Request) {
	profile, _ := profileFromContext(r.Context())

	var req decisionRequest
	// A decision without a comment is allowed, so an empty body is fine.
	_ = decodeJSON(r, &req)

	item, err := rt.governanceUC.Approve(r.Context(), r.PathValue("id"), req.Comment, profile)
	if err != nil {
		writeError(w, err)
		return
	}
	rt.recordDecision("approve")
	writeJSON(w, http.StatusOK, item)
}

func (rt *Router) rejectContent(w http.ResponseWriter, r *http.Request) {
	profile, _ := profileFromContext(r.Context())

	var req decisionRequest
	_ = decodeJSON(r, &req)

	item, err := rt.governanceUC.Reject(r.Context(), r.PathValue("id"), req.Comment, profile)
	if err != nil {
		writeError(w, err)
		return
	}
	rt.recordDecision("reject")
	writeJSON(w, http.StatusOK, item)
}

func (rt *Router) inbox(w http.ResponseWriter, r *http.Request) {
	profile, _ := profileFromContext(r.Context())

	items, err := rt.governanceUC.Inbox(r.Context(), profile)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}
