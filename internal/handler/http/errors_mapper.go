package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-study-keeper/internal/service"
	"github.com/MKhiriev/go-study-keeper/internal/store"
	"github.com/MKhiriev/go-study-keeper/models"
)

var errorStatusMap = map[error]int{
	service.ErrCycleInProgress:  http.StatusConflict,
	service.ErrRetryExhausted:   http.StatusConflict,
	service.ErrNotCancellable:   http.StatusConflict,
	service.ErrNotManualPending: http.StatusConflict,
	service.ErrUnknownDecision:  http.StatusBadRequest,

	models.ErrInvalidPayload:    http.StatusBadRequest,
	models.ErrIllegalTransition: http.StatusConflict,

	store.ErrItemNotSaved:     http.StatusInternalServerError,
	store.ErrItemNotFound:     http.StatusNotFound,
	store.ErrItemStateChanged: http.StatusConflict,
	store.ErrVectorNotFound:   http.StatusNotFound,
	store.ErrConflictNotFound: http.StatusNotFound,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
