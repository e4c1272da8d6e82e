package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"
	goahttp "goa.design/goa/v3/http"

	"aisolutions/internal/domain"
	apperrors "aisolutions/pkg/errors"
)

// ErrorBody is the uniform error response
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// MessageBody is the response of operations that only confirm
type MessageBody struct {
	Message string `json:"message"`
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	enc := goahttp.ResponseEncoder(r.Context(), w)
	w.WriteHeader(status)
	if err := enc.Encode(v); err != nil {
		s.log.Warn("failed to encode response", zap.Error(err))
	}
}

// writeError maps err to its status and writes the error body. Internal
// failures are logged with a stack; the client sees only the message.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := apperrors.CodeOf(err)
	status := apperrors.HTTPStatus(code)

	message := "An unexpected error occurred"
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}

	if status >= http.StatusInternalServerError {
		s.log.Error("internal error",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
			zap.Stack("stack"))
	}

	s.writeJSON(w, r, status, ErrorBody{Error: http.StatusText(status), Message: message})
}

// decodeBody reads the JSON object body into dst
func decodeBody(r *http.Request, dst any) error {
	var raw json.RawMessage
	if err := goahttp.RequestDecoder(r).Decode(&raw); err != nil {
		return apperrors.Invalid(domain.ErrNoData.Error())
	}
	if err := domain.DecodeFields(raw, dst); err != nil {
		return apperrors.Invalid(err.Error())
	}
	return nil
}

// pathID parses the {id} segment. Anything that is not a positive integer
// names no record.
func (s *Server) pathID(r *http.Request) (uint, error) {
	raw := s.mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 63)
	if err != nil || id == 0 {
		return 0, apperrors.NotFound("The requested URL was not found on the server")
	}
	return uint(id), nil
}
