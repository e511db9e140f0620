package runtime

import "github.com/aretw0/incorporate/pkg/domain"

// Progress returns the "question N of M" indicator for questionID.
//
// Before a flow is selected, and for questions the session never reaches,
// it returns the zero Progress. Branch questions are numbered by the order
// they were consumed; sequence questions follow them.
func (e *Engine) Progress(s *domain.Session, questionID string) domain.Progress {
	if s == nil || !s.FlowSelected() {
		return domain.Progress{}
	}

	offset := s.Offset()
	total := len(s.Sequence) + offset

	for i, id := range s.BranchPath {
		if id == questionID {
			return domain.Progress{Current: i + 1, Total: total}
		}
	}
	if idx := s.IndexInSequence(questionID); idx >= 0 {
		return domain.Progress{Current: idx + 1 + offset, Total: total}
	}
	return domain.Progress{}
}

// CurrentProgress returns the indicator for the session's current question.
func (e *Engine) CurrentProgress(s *domain.Session) domain.Progress {
	if s == nil {
		return domain.Progress{}
	}
	return e.Progress(s, s.CurrentQuestionID)
}
