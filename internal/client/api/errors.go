package api

import (
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/plantkeeper/internal/common"
)

// Error is a non-2xx response from the server.
type Error struct {
	Status  int
	Message string
	Field   string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// Is matches the shared sentinels so callers can use errors.Is on both
// sides of the wire.
func (e *Error) Is(target error) bool {
	switch e.Status {
	case http.StatusBadRequest:
		return target == common.ErrorValidation
	case http.StatusUnauthorized:
		if e.Message == common.ErrInvalidCredentials.Error() {
			return target == common.ErrInvalidCredentials
		}
		return target == common.ErrorUnauthorized
	case http.StatusNotFound:
		return target == common.ErrorNotFound
	case http.StatusConflict:
		if e.Message == common.ErrAlreadyLinked.Error() {
			return target == common.ErrAlreadyLinked
		}
		return target == common.ErrUserAlreadyExists
	case http.StatusInternalServerError:
		return target == common.ErrorInternal
	}
	return false
}
