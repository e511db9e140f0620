package domain

import "fmt"

// Progress is the "question N of M" indicator. The zero value means no
// indicator should be rendered.
type Progress struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// Visible reports whether the indicator has anything to show.
func (p Progress) Visible() bool {
	return p.Total > 0 && p.Current > 0
}

// Label renders the indicator, or "" when not visible.
func (p Progress) Label() string {
	if !p.Visible() {
		return ""
	}
	return fmt.Sprintf("Question %d of %d", p.Current, p.Total)
}
