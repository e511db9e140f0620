package runtime

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/incorporate/pkg/domain"
	"github.com/aretw0/incorporate/pkg/flow"
)

// transition is a validated state change, computed before the session is
// copied so that a failure leaves nothing half applied.
type transition struct {
	apply  func(*domain.Session)
	events []*domain.SessionEvent
}

// planBranch resolves a branch answer into either the follow-up branch
// question or the first question of a terminal flow.
func (e *Engine) planBranch(s *domain.Session, questionID, optionID string) (*transition, error) {
	out, err := e.selector.Select(questionID, optionID)
	if err != nil {
		return nil, err
	}

	switch out.Kind {
	case flow.OutcomeFollowup:
		next := out.Next
		return &transition{
			apply: func(n *domain.Session) {
				n.BranchPath = append(n.BranchPath, questionID)
				n.CurrentQuestionID = next.ID
				n.Transcript = append(n.Transcript, domain.QuestionTurn(next))
			},
			events: []*domain.SessionEvent{{Type: domain.EventQuestion, QuestionID: next.ID}},
		}, nil

	case flow.OutcomeSequence:
		ids := make([]string, len(out.Questions))
		for i, q := range out.Questions {
			ids[i] = q.ID
		}
		first := out.Questions[0]
		return &transition{
			apply: func(n *domain.Session) {
				n.BranchPath = append(n.BranchPath, questionID)
				n.Flow = out.Flow
				n.Sequence = ids
				n.Position = 0
				n.Status = domain.StatusAwaitingSequence
				n.CurrentQuestionID = first.ID
				n.Transcript = append(n.Transcript, domain.QuestionTurn(first))
			},
			events: []*domain.SessionEvent{
				{Type: domain.EventFlowSelected, QuestionID: questionID, Flow: out.Flow},
				{Type: domain.EventQuestion, QuestionID: first.ID, Flow: out.Flow},
			},
		}, nil
	}
	return nil, fmt.Errorf("%w: unexpected outcome %q", domain.ErrCatalogIntegrity, out.Kind)
}

// planAdvance moves past the current sequence question, completing the
// session after the last one.
func (e *Engine) planAdvance(s *domain.Session) (*transition, error) {
	if !s.FlowSelected() || s.Status != domain.StatusAwaitingSequence {
		return nil, fmt.Errorf("%w: question %q answered before a flow was selected",
			domain.ErrCatalogIntegrity, s.CurrentQuestionID)
	}

	pos := s.Position + 1
	if pos < len(s.Sequence) {
		q, err := e.catalog.Question(s.Sequence[pos])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrCatalogIntegrity, err)
		}
		return &transition{
			apply: func(n *domain.Session) {
				n.Position = pos
				n.CurrentQuestionID = q.ID
				n.Transcript = append(n.Transcript, domain.QuestionTurn(q))
			},
			events: []*domain.SessionEvent{{Type: domain.EventQuestion, QuestionID: q.ID, Flow: s.Flow}},
		}, nil
	}

	services, err := e.catalog.Services(s.Flow)
	if err != nil {
		return nil, err
	}
	f := s.Flow
	return &transition{
		apply: func(n *domain.Session) {
			n.Position = len(n.Sequence)
			n.Status = domain.StatusCompleted
			n.CurrentQuestionID = ""
			n.Transcript = append(n.Transcript, domain.CompletionTurn(f, services))
		},
		events: []*domain.SessionEvent{{Type: domain.EventComplete, Flow: f}},
	}, nil
}

// commit applies t to the copied session and fires its events in order.
func (e *Engine) commit(ctx context.Context, next *domain.Session, t *transition) *domain.Session {
	t.apply(next)
	next.UpdatedAt = e.now()

	e.logger.Debug("transition",
		"session_id", next.ID,
		"status", next.Status,
		"flow", next.Flow.String(),
		"position", next.Position,
		"current", next.CurrentQuestionID,
	)

	for _, ev := range t.events {
		ev.SessionID = next.ID
		switch ev.Type {
		case domain.EventAnswer:
			e.emit(ctx, e.hooks.OnAnswer, ev)
		case domain.EventQuestion:
			e.emit(ctx, e.hooks.OnQuestion, ev)
		case domain.EventFlowSelected:
			e.emit(ctx, e.hooks.OnFlowSelected, ev)
		case domain.EventComplete:
			e.emit(ctx, e.hooks.OnComplete, ev)
		}
	}
	return next
}

// DisplayText renders an answer as the option texts it selects, joined in
// selection order.
func DisplayText(q domain.Question, a domain.Answer) (string, error) {
	values := a.Values()
	texts := make([]string, 0, len(values))
	for _, id := range values {
		o, ok := q.Option(id)
		if !ok {
			return "", fmt.Errorf("%w: question %q has no option %q", domain.ErrCatalogIntegrity, q.ID, id)
		}
		texts = append(texts, o.Text)
	}
	return strings.Join(texts, ", "), nil
}
