//
//
package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// CorrelationHeader carries the per-request correlation id.
const CorrelationHeader = "X-Correlation-ID"

// OKResponse is the body of a successful shell invocation.
type OKResponse struct {
	OK     bool   `json:"ok"`
	Stdout string `json:"stdout"`
}

// ErrorResponse is the body of every failed request. Stderr is only
// present for shell failures.
type ErrorResponse struct {
	Error  string  `json:"error"`
	Stderr *string `json:"stderr,omitempty"`
}

// ErrorBody creates an error body without stderr.
func ErrorBody(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}

// ShellErrorResponse creates the 500 body for a failed shell invocation.
func ShellErrorResponse(stderr string) ErrorResponse {
	return ErrorResponse{Error: MsgProsodyError, Stderr: &stderr}
}

// WriteSuccess writes 200 with the captured stdout.
func WriteSuccess(w http.ResponseWriter, stdout string) error {
	return WriteJSON(w, http.StatusOK, OKResponse{OK: true, Stdout: stdout})
}

// WriteError writes a status code with an error body.
func WriteError(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSON(w, statusCode, ErrorBody(message))
}

// WriteErr maps err through ToAPIError and writes the result.
func WriteErr(w http.ResponseWriter, err error) error {
	status, body := ToAPIError(err)
	return WriteJSON(w, status, body)
}

// WriteJSON writes body as JSON. Shell text is written without HTML
// escaping. The returned error reports a failed body write; the status
// line has already been sent by then.
func WriteJSON(w http.ResponseWriter, statusCode int, body any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(body)
}

// respond reports a failed body write through the server logger.
func (s *Server) respond(r *http.Request, err error) {
	if err != nil {
		s.logger.Warn("failed to write response body",
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}
}
