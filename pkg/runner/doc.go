/*
Package runner drives a form session from a stream of answers.

It is the bridge between a ports.SessionHost and a terminal or a pipe: each loop
iteration shows the current pass through an IOHandler, reads one answer and submits it
to the pending field. A rejected answer is shown and asked again. The loop ends when the
form is complete, the input is exhausted or the context is cancelled; in the last two
cases the session is left in the store so it can be resumed.

# Key Components

  - Runner: the loop.
  - IOHandler: decouples presentation (text, JSON lines) from the loop.
  - TextHandler: Markdown output with an optional renderer (glamour) and a prompt.
  - JSONHandler: one JSON response per line, answers read one per line.

# Usage

	r := runner.New(
		runner.WithInputHandler(runner.NewTextHandler(os.Stdin, os.Stdout)),
	)
	resp, err := r.Start(ctx, engine, "signup")
*/
package runner
