package domain

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Answer is the recorded input for one question: either a single option id
// or an ordered, duplicate-free list of option ids (multi-select).
type Answer struct {
	values []string
	multi  bool
}

// SingleAnswer records a single-select choice.
func SingleAnswer(optionID string) Answer {
	return Answer{values: []string{optionID}}
}

// MultiAnswer records a multi-select choice. Duplicates are dropped,
// first occurrence wins.
func MultiAnswer(optionIDs ...string) Answer {
	a := Answer{multi: true, values: make([]string, 0, len(optionIDs))}
	for _, id := range optionIDs {
		if !slices.Contains(a.values, id) {
			a.values = append(a.values, id)
		}
	}
	return a
}

// IsMulti reports whether the answer belongs to a multi-select question.
func (a Answer) IsMulti() bool { return a.multi }

// Single returns the chosen option id of a single-select answer.
func (a Answer) Single() string {
	if a.multi || len(a.values) == 0 {
		return ""
	}
	return a.values[0]
}

// Values returns a copy of the selected option ids in selection order.
func (a Answer) Values() []string {
	return slices.Clone(a.values)
}

// Empty reports whether nothing is selected.
func (a Answer) Empty() bool { return len(a.values) == 0 }

// Contains reports whether optionID is part of the selection.
func (a Answer) Contains(optionID string) bool {
	return slices.Contains(a.values, optionID)
}

// Equal compares two answers by kind and ordered values.
func (a Answer) Equal(b Answer) bool {
	return a.multi == b.multi && slices.Equal(a.values, b.values)
}

// Toggle returns the selection after toggling optionID.
//
// Selecting SentinelAll replaces the selection with ["all"]; toggling it
// again while it is the whole selection clears it. Any other option first
// strips SentinelAll and then flips its own membership.
func (a Answer) Toggle(optionID string) Answer {
	current := a.values
	if !a.multi {
		current = nil
	}

	if optionID == SentinelAll {
		if len(current) == 1 && current[0] == SentinelAll {
			return Answer{multi: true, values: []string{}}
		}
		return Answer{multi: true, values: []string{SentinelAll}}
	}

	next := make([]string, 0, len(current)+1)
	found := false
	for _, id := range current {
		switch id {
		case SentinelAll:
			continue
		case optionID:
			found = true
			continue
		}
		next = append(next, id)
	}
	if !found {
		next = append(next, optionID)
	}
	return Answer{multi: true, values: next}
}

// Value returns the plain representation used by sinks: a string for
// single-select answers, a []string for multi-select ones.
func (a Answer) Value() any {
	if a.multi {
		return a.Values()
	}
	return a.Single()
}

func (a Answer) String() string {
	if a.multi {
		return fmt.Sprintf("%v", a.values)
	}
	return a.Single()
}

// MarshalJSON encodes single answers as a string and multi answers as an array.
func (a Answer) MarshalJSON() ([]byte, error) {
	if a.multi {
		if a.values == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(a.values)
	}
	return json.Marshal(a.Single())
}

// UnmarshalJSON accepts either a string or an array of strings.
func (a *Answer) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*a = SingleAnswer(single)
		return nil
	}
	var multi []string
	if err := json.Unmarshal(data, &multi); err != nil {
		return fmt.Errorf("answer must be a string or an array of strings: %w", err)
	}
	*a = MultiAnswer(multi...)
	return nil
}

// AnswerStore maps question ids to the recorded answers of one session.
type AnswerStore map[string]Answer

// Get returns the answer recorded for questionID.
func (s AnswerStore) Get(questionID string) (Answer, bool) {
	a, ok := s[questionID]
	return a, ok
}

// SetSingle records (or overwrites) a single-select answer.
func (s AnswerStore) SetSingle(questionID, optionID string) {
	s[questionID] = SingleAnswer(optionID)
}

// Toggle flips optionID in the multi-select answer for questionID and
// returns the result. An answer whose selection becomes empty is removed.
func (s AnswerStore) Toggle(questionID, optionID string) Answer {
	next := s[questionID].Toggle(optionID)
	if next.Empty() {
		delete(s, questionID)
		return next
	}
	s[questionID] = next
	return next
}

// Clone returns a deep copy of the store.
func (s AnswerStore) Clone() AnswerStore {
	out := make(AnswerStore, len(s))
	for k, v := range s {
		out[k] = Answer{multi: v.multi, values: slices.Clone(v.values)}
	}
	return out
}

// Values flattens the store into plain Go values (string or []string).
func (s AnswerStore) Values() map[string]any {
	out := make(map[string]any, len(s))
	for k, v := range s {
		out[k] = v.Value()
	}
	return out
}
