package httpadapter

import (
	"net/http"

	"github.com/dmoralesf/brand-guardian/internal/core/domain"
)

func mapErrorToHTTPStatus(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrValidation):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrForbidden):
		return http.StatusForbidden
	case domain.IsKind(err, domain.ErrNotFound):
		return http.StatusNotFound
	case domain.IsKind(err, domain.ErrNoManual):
		return http.StatusConflict
	case domain.IsKind(err, domain.ErrInsufficientContext):
		return http.StatusUnprocessableEntity
	case domain.IsKind(err, domain.ErrMissingCredential):
		return http.StatusBadGateway
	case domain.IsKind(err, domain.ErrParse), domain.IsKind(err, domain.ErrProvider):
		return http.StatusBadGateway
	case domain.IsKind(err, domain.ErrTemporary):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
