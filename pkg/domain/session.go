package domain

import (
	"slices"
	"time"
)

// Status is the state of the conversation state machine.
type Status string

const (
	// StatusAwaitingBranch: the current question is a branch question.
	StatusAwaitingBranch Status = "awaiting_branch"
	// StatusAwaitingSequence: the current question belongs to the active sequence.
	StatusAwaitingSequence Status = "awaiting_sequence"
	// StatusCompleted is terminal and irreversible for the session.
	StatusCompleted Status = "completed"
)

// Session is the snapshot of a single conversation.
//
// CurrentQuestionID is the single source of truth for which question is
// active; the Transcript is an observational log only.
type Session struct {
	ID     string `json:"id"`
	Status Status `json:"status"`

	// Flow is FlowUnset until a terminal sequence is chosen.
	Flow Flow `json:"flow"`

	// BranchPath lists the branch questions consumed before the flow was
	// selected, in the order they were answered.
	BranchPath []string `json:"branch_path,omitempty"`

	// Sequence holds the question ids of the active sequence, nil until a
	// flow is chosen.
	Sequence []string `json:"sequence,omitempty"`

	// Position is the zero-based index into Sequence. It only increases.
	Position int `json:"position"`

	CurrentQuestionID string      `json:"current_question_id,omitempty"`
	Answers           AnswerStore `json:"answers"`
	Transcript        Transcript  `json:"transcript"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession creates a session awaiting its first branch answer.
func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:         id,
		Status:     StatusAwaitingBranch,
		Flow:       FlowUnset,
		Answers:    make(AnswerStore),
		Transcript: Transcript{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Completed reports whether the session reached its terminal state.
func (s *Session) Completed() bool {
	return s.Status == StatusCompleted
}

// FlowSelected reports whether a terminal sequence is active.
func (s *Session) FlowSelected() bool {
	return s.Flow != FlowUnset && s.Sequence != nil
}

// Offset is the number of branch questions consumed before the active
// sequence, used to number sequence questions after the branch ones.
func (s *Session) Offset() int {
	return len(s.BranchPath)
}

// IndexInSequence returns the position of questionID in the active sequence, or -1.
func (s *Session) IndexInSequence(questionID string) int {
	return slices.Index(s.Sequence, questionID)
}

// Clone returns a deep copy safe to mutate independently.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	out.BranchPath = slices.Clone(s.BranchPath)
	out.Sequence = slices.Clone(s.Sequence)
	out.Answers = s.Answers.Clone()
	out.Transcript = s.Transcript.clone()
	return &out
}
