package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/aretw0/incorporate/pkg/domain"
	"github.com/aretw0/incorporate/pkg/leads"
	"github.com/aretw0/incorporate/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// getCatalog handles GET /catalog.
func (s *Server) getCatalog(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, s.conv.Catalog().Definition())
}

// getQuestion handles GET /catalog/questions/{questionID}.
func (s *Server) getQuestion(w http.ResponseWriter, r *http.Request) {
	q, err := s.conv.Catalog().Question(chi.URLParam(r, "questionID"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	render.JSON(w, r, q)
}

// listSessions handles GET /sessions.
func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.sessions.List(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	render.JSON(w, r, map[string][]string{"sessions": ids})
}

// createSession handles POST /sessions. The body is optional.
func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if r.ContentLength != 0 {
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			s.fail(w, r, http.StatusBadRequest, "invalid request body", "")
			return
		}
	}

	sess, err := s.conv.Start(r.Context(), req.ID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := s.sessions.Create(r.Context(), sess); err != nil {
		s.respondError(w, r, err)
		return
	}

	s.requestLogger(r).Info("session created", "session_id", sess.ID)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, s.view(sess))
}

// getSession handles GET /sessions/{sessionID}.
func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Load(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	render.JSON(w, r, s.view(sess))
}

// deleteSession handles DELETE /sessions/{sessionID}, abandoning the conversation.
func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if _, err := s.sessions.Load(r.Context(), id); err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := s.sessions.Delete(r.Context(), id); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// getProgress handles GET /sessions/{sessionID}/progress[?question_id=].
func (s *Server) getProgress(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Load(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	p := s.conv.CurrentProgress(sess)
	if qid := r.URL.Query().Get("question_id"); qid != "" {
		p = s.conv.Progress(sess, qid)
	}
	render.JSON(w, r, newProgressView(p))
}

// submitSingle handles POST /sessions/{sessionID}/answers.
func (s *Server) submitSingle(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.update(w, r, func(ctx context.Context, sess *domain.Session) (*domain.Session, error) {
		return s.conv.SubmitSingle(ctx, sess, req.QuestionID, req.OptionID)
	})
}

// toggleMulti handles POST /sessions/{sessionID}/toggles.
func (s *Server) toggleMulti(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.update(w, r, func(ctx context.Context, sess *domain.Session) (*domain.Session, error) {
		return s.conv.ToggleMulti(ctx, sess, req.QuestionID, req.OptionID)
	})
}

// submitMulti handles POST /sessions/{sessionID}/submissions.
func (s *Server) submitMulti(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.update(w, r, func(ctx context.Context, sess *domain.Session) (*domain.Session, error) {
		return s.conv.SubmitMulti(ctx, sess, req.QuestionID)
	})
}

// captureLead handles POST /sessions/{sessionID}/lead.
func (s *Server) captureLead(w http.ResponseWriter, r *http.Request) {
	if s.leads == nil {
		s.fail(w, r, http.StatusNotImplemented, "lead capture is not configured", "")
		return
	}

	var contact leads.Contact
	if !s.decode(w, r, &contact) {
		return
	}

	sess, err := s.sessions.Load(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	lead, err := s.leads.Capture(r.Context(), sess, contact)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, lead)
}

// update runs one engine event under the session lock and renders the result.
func (s *Server) update(w http.ResponseWriter, r *http.Request, event func(context.Context, *domain.Session) (*domain.Session, error)) {
	ctx := r.Context()
	next, err := s.sessions.Update(ctx, chi.URLParam(r, "sessionID"), func(sess *domain.Session) (*domain.Session, error) {
		return event(ctx, sess)
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	render.JSON(w, r, s.view(next))
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		s.requestLogger(r).Warn("invalid request body", "err", err)
		s.fail(w, r, http.StatusBadRequest, "invalid request body", "")
		return false
	}
	return true
}

// respondError maps engine, store and capture errors to status codes.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var rejected *domain.RejectedError
	var invalid *leads.ValidationError

	switch {
	case errors.As(err, &rejected):
		s.fail(w, r, http.StatusConflict, err.Error(), rejectionReason(rejected.Err))
	case errors.As(err, &invalid):
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, errorResponse{Error: err.Error(), Fields: invalid.Fields})
	case errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrUnknownQuestion):
		s.fail(w, r, http.StatusNotFound, err.Error(), "")
	case errors.Is(err, domain.ErrSessionCompleted),
		errors.Is(err, domain.ErrSessionNotCompleted),
		errors.Is(err, session.ErrSessionExists):
		s.fail(w, r, http.StatusConflict, err.Error(), "")
	case errors.Is(err, leads.ErrSinkFailed):
		s.requestLogger(r).Error("lead sink failed", "err", err)
		s.fail(w, r, http.StatusBadGateway, "lead submission failed", "")
	default:
		s.requestLogger(r).Error("request failed", "path", r.URL.Path, "err", err)
		s.fail(w, r, http.StatusInternalServerError, "internal error", "")
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, msg, reason string) {
	render.Status(r, status)
	render.JSON(w, r, errorResponse{Error: msg, Reason: reason})
}

func rejectionReason(err error) string {
	for _, known := range []struct {
		err    error
		reason string
	}{
		{domain.ErrStaleQuestion, "stale_question"},
		{domain.ErrSessionCompleted, "session_completed"},
		{domain.ErrUnknownOption, "unknown_option"},
		{domain.ErrNotMultiSelect, "not_multi_select"},
		{domain.ErrMultiSelectQuestion, "multi_select_question"},
		{domain.ErrEmptySelection, "empty_selection"},
	} {
		if errors.Is(err, known.err) {
			return known.reason
		}
	}
	return "rejected"
}
