//
//
package api

import (
	"errors"
	"net/http"

	"github.com/wake/snikket-web-portal/internal/command"
)

// Request-level failures detected before routing.
var (
	ErrInvalidJSON = errors.New("invalid JSON")
	ErrNotFound    = errors.New("not found")
)

// Fixed error messages of the HTTP contract.
const (
	MsgMethodNotAllowed    = "Method Not Allowed"
	MsgInvalidJSON         = "Invalid JSON"
	MsgNotFound            = "Not Found"
	MsgInvalidMucDomain    = "Invalid muc_domain"
	MsgInvalidRoomOrUser   = "Invalid room or user"
	MsgInvalidAffiliation  = "Invalid room, user, or affiliation"
	MsgProsodyError        = "prosody error"
	MsgInternalServerError = "Internal Server Error"
)

// ToAPIError converts an error to an HTTP status code and JSON body.
func ToAPIError(err error) (int, any) {
	if err == nil {
		return http.StatusOK, nil
	}

	var shellErr *command.ShellError
	if errors.As(err, &shellErr) {
		return http.StatusInternalServerError, ShellErrorResponse(shellErr.Result.Stderr)
	}

	switch {
	case errors.Is(err, ErrInvalidJSON):
		return http.StatusBadRequest, ErrorBody(MsgInvalidJSON)
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, ErrorBody(MsgNotFound)
	case errors.Is(err, command.ErrInvalidMucDomain):
		return http.StatusBadRequest, ErrorBody(MsgInvalidMucDomain)
	case errors.Is(err, command.ErrInvalidRoomOrUser):
		return http.StatusBadRequest, ErrorBody(MsgInvalidRoomOrUser)
	case errors.Is(err, command.ErrInvalidAffiliationRequest):
		return http.StatusBadRequest, ErrorBody(MsgInvalidAffiliation)
	}

	return http.StatusInternalServerError, ErrorBody(MsgInternalServerError)
}
