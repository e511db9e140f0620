package domain

import "time"

// Lead is the completed answer record plus contact details, as handed to a
// lead sink.
type Lead struct {
	ID           string      `json:"id"`
	SessionID    string      `json:"session_id"`
	Flow         Flow        `json:"flow"`
	ContactName  string      `json:"contact_name"`
	ContactEmail string      `json:"contact_email"`
	ContactPhone string      `json:"contact_phone"`
	Answers      AnswerStore `json:"answers"`
	CapturedAt   time.Time   `json:"captured_at"`
}

// Clone returns a deep copy of the lead.
func (l *Lead) Clone() *Lead {
	if l == nil {
		return nil
	}
	out := *l
	out.Answers = l.Answers.Clone()
	return &out
}
