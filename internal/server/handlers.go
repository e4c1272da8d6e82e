package server

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"aisolutions/internal/services"
	apperrors "aisolutions/pkg/errors"
)

func (s *Server) root(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, MessageBody{Message: s.cfg.App.Name + " is running."})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	res, ok := s.svc.Health.Check(r.Context())
	status := http.StatusOK
	if !ok {
		status = http.StatusServiceUnavailable
	}
	s.writeJSON(w, r, status, res)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var p services.LoginPayload
	if err := decodeBody(r, &p); err != nil {
		s.writeError(w, r, apperrors.Invalid(services.ErrCredentialsRequired.Error()))
		return
	}
	res, err := s.svc.Auth.Login(r.Context(), &p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, res)
}

func (s *Server) exportInquiries(w http.ResponseWriter, r *http.Request) {
	// buffered so a failure part way through still gets an error response
	var buf bytes.Buffer
	if err := s.svc.Inquiries.ExportCSV(r.Context(), &buf); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+services.ExportFilename(time.Now())+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// handleCreate decodes a submission, stores it and confirms with 201.
func handleCreate[T, F any](s *Server, create func(context.Context, *F) (*T, error), message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var f F
		if err := decodeBody(r, &f); err != nil {
			s.writeError(w, r, err)
			return
		}
		if _, err := create(r.Context(), &f); err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, r, http.StatusCreated, MessageBody{Message: message})
	}
}

func handleList[T any](s *Server, list func(context.Context) ([]T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recs, err := list(r.Context())
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, r, http.StatusOK, recs)
	}
}

// handleUpdate applies a partial body to the record named by {id} and
// returns the full record.
func handleUpdate[T, F any](s *Server, update func(context.Context, uint, *F) (*T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := s.pathID(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		var f F
		if err := decodeBody(r, &f); err != nil {
			s.writeError(w, r, err)
			return
		}
		rec, err := update(r.Context(), id, &f)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.logAdminChange(r, id)
		s.writeJSON(w, r, http.StatusOK, rec)
	}
}

func handleDelete(s *Server, del func(context.Context, uint) (string, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := s.pathID(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		message, err := del(r.Context(), id)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.logAdminChange(r, id)
		s.writeJSON(w, r, http.StatusOK, MessageBody{Message: message})
	}
}

// logAdminChange attributes a successful update or delete to the admin
// whose token the guard accepted.
func (s *Server) logAdminChange(r *http.Request, id uint) {
	claims, ok := services.ClaimsFromContext(r.Context())
	if !ok {
		return
	}
	s.log.Info("admin change",
		zap.String("admin", claims.Username),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Uint("id", id))
}
