package http

import (
	"github.com/aretw0/incorporate/pkg/domain"
	"github.com/aretw0/incorporate/pkg/leads"
)

type createSessionRequest struct {
	ID string `json:"id"`
}

type answerRequest struct {
	QuestionID string `json:"question_id"`
	OptionID   string `json:"option_id"`
}

type submitRequest struct {
	QuestionID string `json:"question_id"`
}

type errorResponse struct {
	Error  string             `json:"error"`
	Reason string             `json:"reason,omitempty"`
	Fields []leads.FieldError `json:"fields,omitempty"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

type progressView struct {
	Current int    `json:"current"`
	Total   int    `json:"total"`
	Label   string `json:"label,omitempty"`
}

func newProgressView(p domain.Progress) progressView {
	return progressView{Current: p.Current, Total: p.Total, Label: p.Label()}
}

// sessionView is the session snapshot plus what a client needs to render
// the next step.
type sessionView struct {
	Session  *domain.Session  `json:"session"`
	Current  *domain.Question `json:"current_question,omitempty"`
	Progress progressView     `json:"progress"`
}

func (s *Server) view(sess *domain.Session) sessionView {
	v := sessionView{
		Session:  sess,
		Progress: newProgressView(s.conv.CurrentProgress(sess)),
	}
	if sess.CurrentQuestionID != "" {
		if q, err := s.conv.Catalog().Question(sess.CurrentQuestionID); err == nil {
			v.Current = &q
		}
	}
	return v
}
