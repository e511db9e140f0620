package runner

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/incorporate/pkg/domain"
	"github.com/aretw0/incorporate/pkg/ports"
)

// printTurns writes turns in order, pausing after each answer that is
// followed by more output.
func (r *Runner) printTurns(ctx context.Context, conv ports.Conversation, sess *domain.Session, turns []domain.Turn) error {
	for i, turn := range turns {
		if i > 0 && turns[i-1].Kind == domain.TurnAnswer {
			if err := r.pause(ctx); err != nil {
				return err
			}
		}

		switch turn.Kind {
		case domain.TurnGreeting:
			r.printf("%s\n", turn.Text)
		case domain.TurnQuestion:
			r.printQuestion(conv.Progress(sess, turn.Question.ID), *turn.Question)
		case domain.TurnAnswer:
			if r.Headless {
				r.printf("> %s\n", turn.Text)
			}
		case domain.TurnCompletion:
			r.printContent(CompletionMarkdown(turn))
		}
	}
	return nil
}

func (r *Runner) printQuestion(p domain.Progress, q domain.Question) {
	r.printf("\n")
	if label := p.Label(); label != "" {
		r.printf("[%s]\n", label)
	}
	r.printf("%s\n", q.Text)
	if q.Subtext != "" {
		r.printf("%s\n", q.Subtext)
	}
	for i, o := range q.Options {
		r.printf("  %d) %s\n", i+1, o.Text)
	}
}

func (r *Runner) printSelection(q domain.Question, sess *domain.Session) {
	a, ok := sess.Answers.Get(q.ID)
	if !ok || a.Empty() {
		r.printf("Nothing selected.\n")
		return
	}
	texts := make([]string, 0, len(a.Values()))
	for _, id := range a.Values() {
		if o, ok := q.Option(id); ok {
			texts = append(texts, o.Text)
		}
	}
	r.printf("Selected: %s\n", strings.Join(texts, ", "))
}

func (r *Runner) printContent(md string) {
	if r.Renderer != nil {
		out, err := r.Renderer(md)
		if err == nil {
			r.printf("%s", out)
			return
		}
		r.Logger.Warn("render failed, printing raw content", "err", err)
	}
	r.printf("%s", md)
}

func (r *Runner) printf(format string, args ...any) {
	fmt.Fprintf(r.Output, format, args...)
}

// CompletionMarkdown renders the completion turn as a service list.
func CompletionMarkdown(turn domain.Turn) string {
	var b strings.Builder
	b.WriteString("\n## Thank you!\n\n")
	b.WriteString("Based on your answers, these services fit your needs:\n\n")
	for _, svc := range turn.Services {
		fmt.Fprintf(&b, "- **%s**", svc.Title)
		if svc.Description != "" {
			fmt.Fprintf(&b, ": %s", svc.Description)
		}
		b.WriteString("\n")
	}
	return b.String()
}
