package runner

import (
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/incorporate/pkg/ports"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithInput sets the line source. Defaults to os.Stdin.
func WithInput(in io.Reader) Option {
	return func(r *Runner) {
		r.Input = in
	}
}

// WithOutput sets the destination of rendered turns. Defaults to os.Stdout.
func WithOutput(out io.Writer) Option {
	return func(r *Runner) {
		r.Output = out
	}
}

// WithStore persists the session after every accepted event.
func WithStore(store ports.SessionStore) Option {
	return func(r *Runner) {
		r.Store = store
	}
}

// WithSessionID sets the ID used when the runner starts the session.
func WithSessionID(id string) Option {
	return func(r *Runner) {
		r.SessionID = id
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithRenderer configures the content renderer (e.g. Markdown).
func WithRenderer(renderer ContentRenderer) Option {
	return func(r *Runner) {
		r.Renderer = renderer
	}
}

// WithPacing sets the delay between an answer and the next question.
func WithPacing(d time.Duration) Option {
	return func(r *Runner) {
		r.Pacing = d
	}
}

// WithHeadless suppresses prompts and hints, for piped input.
func WithHeadless(headless bool) Option {
	return func(r *Runner) {
		r.Headless = headless
	}
}
