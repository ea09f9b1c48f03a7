package shell

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("shell: aborted")
	// ErrNotInteractive is returned when the shell is started without a
	// terminal attached.
	ErrNotInteractive = errors.New("shell: stdin is not a terminal")
)
