package httpadapter

import (
	"net/http"

	"github.com/dmoralesf/brand-guardian/internal/core/domain"
)

func (rt *Router) createBrand(w http.ResponseWriter, r *http.Request) {
	profile, _ := profileFromContext(r.Context())

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if !decodeJSON(r, &req) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	brand, err := rt.brandUC.CreateBrand(r.Context(), req.Name, req.Description, profile)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, brand)
}

func (rt *Router) listBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := rt.brandUC.ListBrands(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"brands": brands})
}

func (rt *Router) getBrand(w http.ResponseWriter, r *http.Request) {
	brand, err := rt.brandUC.GetBrand(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, brand)
}

func (rt *Router) setVisualRules(w http.ResponseWriter, r *http.Request) {
	var rules domain.VisualRules
	if !decodeJSON(r, &rules) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	saved, err := rt.brandUC.SetVisualRules(r.Context(), r.PathValue("id"), rules)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (rt *Router) getVisualRules(w http.ResponseWriter, r *http.Request) {
	rules, err := rt.brandUC.GetVisualRules(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rules)
}
