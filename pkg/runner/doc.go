/*
Package runner drives one incorporation conversation in a terminal.

The Runner prints every new transcript turn, numbers the options of the
current question and reads one line per event:

  - a number or an option id answers a single-select question;
  - on a multi-select question the same input toggles an option, and
    "done" submits the selection;
  - "quit" abandons the conversation.

A pacing delay separates an answer from the next question. No input is
read while it runs.

# Usage

	r := runner.NewRunner(
		runner.WithPacing(400*time.Millisecond),
		runner.WithRenderer(tui.NewRenderer()),
	)
	sess, err := r.Run(ctx, engine, nil)
	if errors.Is(err, runner.ErrAbandoned) {
		return nil
	}
	contact, err := r.PromptContact(ctx)
*/
package runner
