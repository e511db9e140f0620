package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/incorporate/internal/logging"
	"github.com/aretw0/incorporate/pkg/domain"
	"github.com/aretw0/incorporate/pkg/ports"
)

// ErrAbandoned is returned when the visitor quits or the input ends before completion.
var ErrAbandoned = errors.New("conversation abandoned")

// Commands understood at the prompt.
const (
	CommandDone = "done"
	CommandQuit = "quit"
)

// ContentRenderer transforms markdown before it is written, e.g. to ANSI.
type ContentRenderer func(string) (string, error)

// Runner handles the chat loop of one session using the provided IO.
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Renderer ContentRenderer
	Logger   *slog.Logger

	// Store is optional. If nil, sessions are ephemeral.
	Store     ports.SessionStore
	SessionID string

	Pacing   time.Duration
	Headless bool

	lines *bufio.Scanner
	sleep func(context.Context, time.Duration) error
}

// NewRunner creates a Runner on Stdin/Stdout.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Input:  os.Stdin,
		Output: os.Stdout,
		Logger: logging.NewNop(),
		sleep:  sleepContext,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run drives the conversation until it completes and returns the completed
// session. If initial is nil a new session is started. Turns already in
// initial are printed first, so resumed sessions show their history.
func (r *Runner) Run(ctx context.Context, conv ports.Conversation, initial *domain.Session) (*domain.Session, error) {
	sess := initial
	if sess == nil {
		var err error
		sess, err = conv.Start(ctx, r.SessionID)
		if err != nil {
			return nil, fmt.Errorf("failed to start session: %w", err)
		}
		if err := r.save(ctx, sess); err != nil {
			return nil, err
		}
	}

	printed := 0
	for {
		if err := r.printTurns(ctx, conv, sess, sess.Transcript.Since(printed)); err != nil {
			return nil, err
		}
		printed = len(sess.Transcript)

		if sess.Completed() {
			return sess, nil
		}

		q, err := conv.Catalog().Question(sess.CurrentQuestionID)
		if err != nil {
			return nil, err
		}

		line, err := r.readLine(ctx, r.prompt(sess, q))
		if err != nil {
			return nil, err
		}
		if strings.EqualFold(line, CommandQuit) {
			r.Logger.Info("conversation abandoned", "session_id", sess.ID, "question_id", q.ID)
			r.discard(ctx, sess.ID)
			return nil, ErrAbandoned
		}

		next, err := r.apply(ctx, conv, sess, q, line)
		if err != nil {
			var rejected *domain.RejectedError
			if errors.As(err, &rejected) || errors.Is(err, errUnrecognized) {
				r.printf("%s\n", describe(err))
				continue
			}
			return nil, err
		}
		if err := r.save(ctx, next); err != nil {
			return nil, err
		}
		sess = next
	}
}

var errUnrecognized = errors.New("unrecognized choice")

// apply turns one input line into an engine event.
func (r *Runner) apply(ctx context.Context, conv ports.Conversation, sess *domain.Session, q domain.Question, line string) (*domain.Session, error) {
	if q.MultiSelect && strings.EqualFold(line, CommandDone) {
		return conv.SubmitMulti(ctx, sess, q.ID)
	}

	optionID, ok := resolveOption(q, line)
	if !ok {
		return nil, fmt.Errorf("%w: %q", errUnrecognized, line)
	}
	if !q.MultiSelect {
		return conv.SubmitSingle(ctx, sess, q.ID, optionID)
	}

	next, err := conv.ToggleMulti(ctx, sess, q.ID, optionID)
	if err != nil {
		return nil, err
	}
	r.printSelection(q, next)
	return next, nil
}

// resolveOption accepts a 1-based option number, an option id or the option text.
func resolveOption(q domain.Question, input string) (string, bool) {
	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(q.Options) {
			return "", false
		}
		return q.Options[n-1].ID, true
	}
	for _, o := range q.Options {
		if strings.EqualFold(o.ID, input) || strings.EqualFold(o.Text, input) {
			return o.ID, true
		}
	}
	return "", false
}

func describe(err error) string {
	switch {
	case errors.Is(err, errUnrecognized):
		return "Please pick one of the listed options."
	case errors.Is(err, domain.ErrEmptySelection):
		return "Select at least one option before typing done."
	case errors.Is(err, domain.ErrMultiSelectQuestion):
		return "This question accepts several answers; type done when finished."
	}
	return fmt.Sprintf("That did not work: %v", err)
}

func (r *Runner) readLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if r.lines == nil {
		r.lines = bufio.NewScanner(r.Input)
	}
	for {
		if prompt != "" && !r.Headless {
			r.printf("%s", prompt)
		}
		if !r.lines.Scan() {
			if err := r.lines.Err(); err != nil {
				return "", fmt.Errorf("input error: %w", err)
			}
			return "", ErrAbandoned
		}

		clean, err := SanitizeInput(r.lines.Text())
		if err != nil {
			r.Logger.Warn("input rejected", "err", err)
			r.printf("Error: %v. Please try again.\n", err)
			continue
		}
		return clean, nil
	}
}

func (r *Runner) prompt(sess *domain.Session, q domain.Question) string {
	if q.MultiSelect {
		if a, ok := sess.Answers.Get(q.ID); ok && !a.Empty() {
			return "(toggle more or type done) > "
		}
		return "(choose one or more, then type done) > "
	}
	return "> "
}

func (r *Runner) save(ctx context.Context, sess *domain.Session) error {
	if r.Store == nil {
		return nil
	}
	if err := r.Store.Save(ctx, sess.ID, sess); err != nil {
		return fmt.Errorf("critical persistence error: %w", err)
	}
	r.Logger.Debug("session saved", "session_id", sess.ID, "question_id", sess.CurrentQuestionID)
	return nil
}

func (r *Runner) discard(ctx context.Context, id string) {
	if r.Store == nil {
		return
	}
	if err := r.Store.Delete(ctx, id); err != nil {
		r.Logger.Warn("failed to delete abandoned session", "session_id", id, "err", err)
	}
}

func (r *Runner) pause(ctx context.Context) error {
	if r.Pacing <= 0 {
		return nil
	}
	if r.sleep == nil {
		return sleepContext(ctx, r.Pacing)
	}
	return r.sleep(ctx, r.Pacing)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
