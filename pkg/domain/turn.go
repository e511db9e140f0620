package domain

// TurnKind tags the variant held by a Turn.
type TurnKind string

const (
	TurnGreeting   TurnKind = "greeting"
	TurnQuestion   TurnKind = "question"
	TurnAnswer     TurnKind = "answer"
	TurnCompletion TurnKind = "completion"
)

// Turn is one rendered unit of the transcript. Exactly one payload is set,
// according to Kind.
type Turn struct {
	Kind TurnKind `json:"kind"`

	// Question is set for TurnQuestion.
	Question *Question `json:"question,omitempty"`

	// Text is the greeting message or the answer display text.
	Text string `json:"text,omitempty"`

	// QuestionID links an answer turn to the question it answers.
	QuestionID string `json:"question_id,omitempty"`

	// Flow and Services are set for TurnCompletion.
	Flow     Flow      `json:"flow,omitempty"`
	Services []Service `json:"services,omitempty"`
}

// GreetingTurn builds the synthetic opening turn.
func GreetingTurn(text string) Turn {
	return Turn{Kind: TurnGreeting, Text: text}
}

// QuestionTurn builds a turn presenting q.
func QuestionTurn(q Question) Turn {
	c := q.Clone()
	return Turn{Kind: TurnQuestion, Question: &c}
}

// AnswerTurn builds a turn echoing the display text of an answer.
func AnswerTurn(questionID, text string) Turn {
	return Turn{Kind: TurnAnswer, QuestionID: questionID, Text: text}
}

// CompletionTurn builds the final turn carrying the service recommendation.
func CompletionTurn(flow Flow, services []Service) Turn {
	return Turn{Kind: TurnCompletion, Flow: flow, Services: append([]Service(nil), services...)}
}

// Transcript is the append-only log of turns of a session.
type Transcript []Turn

// Last returns the most recent turn.
func (t Transcript) Last() (Turn, bool) {
	if len(t) == 0 {
		return Turn{}, false
	}
	return t[len(t)-1], true
}

// Since returns the turns appended after the first n.
func (t Transcript) Since(n int) []Turn {
	if n < 0 {
		n = 0
	}
	if n >= len(t) {
		return nil
	}
	return t[n:]
}

func (t Transcript) clone() Transcript {
	if t == nil {
		return nil
	}
	out := make(Transcript, len(t))
	for i, turn := range t {
		if turn.Question != nil {
			q := turn.Question.Clone()
			turn.Question = &q
		}
		turn.Services = append([]Service(nil), turn.Services...)
		out[i] = turn
	}
	return out
}
