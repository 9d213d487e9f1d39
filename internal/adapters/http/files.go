package httpadapter

import (
	"net/http"
	"strconv"
	"time"
)

// serveFile streams a stored audit image. Access is granted by the HMAC
// signature embedded in the URL at signing time, not by a bearer token, so
// links can be shared with reviewers without credentials.
func (rt *Router) serveFile(w http.ResponseWriter, r *http.Request) {
	path := r.PathValue("path")
	if path == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "file path is required"})
		return
	}

	expires, err := strconv.ParseInt(r.URL.Query().Get("exp"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "invalid signature"})
		return
	}
	signature := r.URL.Query().Get("sig")
	if !rt.verifier.VerifySignature(path, expires, signature) {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "invalid signature"})
		return
	}
	if time.Now().UTC().Unix() > expires {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "link expired"})
		return
	}

	data, contentType, err := rt.storage.Open(r.Context(), path)
	if err != nil {
		writeError(w, err)
		return
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "private, max-age=60")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
