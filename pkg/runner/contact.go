package runner

import (
	"context"
	"errors"
	"slices"

	"github.com/aretw0/incorporate/pkg/leads"
)

// maxContactAttempts bounds how often PromptContact re-asks invalid fields.
const maxContactAttempts = 3

var contactPrompts = []struct {
	field  string
	prompt string
}{
	{"name", "Your name: "},
	{"email", "Email: "},
	{"phone", "Phone (international format, e.g. +971501234567): "},
}

// PromptContact asks for the visitor's contact details, re-asking only the
// fields that fail validation. The returned contact is normalized.
func (r *Runner) PromptContact(ctx context.Context) (leads.Contact, error) {
	var c leads.Contact
	pending := []string{"name", "email", "phone"}

	for attempt := 1; ; attempt++ {
		for _, p := range contactPrompts {
			if !slices.Contains(pending, p.field) {
				continue
			}
			line, err := r.readLine(ctx, p.prompt)
			if err != nil {
				return leads.Contact{}, err
			}
			switch p.field {
			case "name":
				c.Name = line
			case "email":
				c.Email = line
			case "phone":
				c.Phone = line
			}
		}

		c = c.Normalize()
		err := c.Validate()
		if err == nil {
			return c, nil
		}

		var invalid *leads.ValidationError
		if !errors.As(err, &invalid) || attempt >= maxContactAttempts {
			return leads.Contact{}, err
		}
		pending = pending[:0]
		for _, f := range invalid.Fields {
			r.printf("Please check your %s.\n", f.Field)
			pending = append(pending, f.Field)
		}
		r.Logger.Debug("contact rejected", "attempt", attempt, "err", err)
	}
}
