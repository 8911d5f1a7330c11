package dto

import (
	"net/http"

	"github.com/smartsupplypro/inventory/internal/domain/shared"
)

// General error codes for failures that never reach the domain
const (
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeInternal   = "INTERNAL_ERROR"
)

// kindHTTPStatus maps domain error kinds to HTTP status codes. Concurrency
// conflicts share 409 with uniqueness conflicts; clients retry on the code.
var kindHTTPStatus = map[shared.ErrorKind]int{
	shared.KindValidation:  http.StatusBadRequest,
	shared.KindNotFound:    http.StatusNotFound,
	shared.KindConflict:    http.StatusConflict,
	shared.KindConcurrency: http.StatusConflict,
	shared.KindSystem:      http.StatusInternalServerError,
}

// StatusForKind returns the HTTP status code for a domain error kind.
// Unknown kinds map to 500.
func StatusForKind(kind shared.ErrorKind) int {
	if status, ok := kindHTTPStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}
