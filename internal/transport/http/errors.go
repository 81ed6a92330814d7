package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cwrk-planet/activity-service/internal/domain"
	"github.com/cwrk-planet/activity-service/pkg/httputil"
)

const (
	detailNotFound      = "Activity not found"
	detailAlreadySigned = "Student is already signed up for this activity"
	detailNotSigned     = "Student is not signed up for this activity"
	detailFull          = "Activity is full"
	detailEmailRequired = "email is required"
	detailInternal      = "Internal server error"
)

func toHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrActivityNotFound):
		return http.StatusNotFound, detailNotFound
	case errors.Is(err, domain.ErrAlreadySignedUp):
		return http.StatusBadRequest, detailAlreadySigned
	case errors.Is(err, domain.ErrNotSignedUp):
		return http.StatusBadRequest, detailNotSigned
	case errors.Is(err, domain.ErrActivityFull):
		return http.StatusBadRequest, detailFull
	case errors.Is(err, domain.ErrEmailRequired):
		return http.StatusBadRequest, detailEmailRequired
	default:
		return http.StatusInternalServerError, detailInternal
	}
}

func writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, detail := toHTTP(err)
	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), op, slog.Any("err", err))
	}
	httputil.Detail(w, status, detail)
}
