package console

import (
	"fmt"
	"io"
	"strings"
)

// CommandLineOutput prints replies to a writer, with an optional prefix like
// "ACE:" in front of each message.
type CommandLineOutput struct {
	prefix string
	w      io.Writer

	// Render post-processes the message before printing, e.g. markdown
	// rendering for TTYs. Nil leaves the message as is.
	Render func(message string) string
}

// NewCommandLineOutput creates an output writing to w.
func NewCommandLineOutput(prefix string, w io.Writer) *CommandLineOutput {
	return &CommandLineOutput{prefix: prefix, w: w}
}

// Broadcast prints the message, prefixed when a prefix is configured.
func (c *CommandLineOutput) Broadcast(message string) error {
	if c.Render != nil {
		message = c.Render(message)
	}

	var err error
	if promptEmpty(c.prefix) {
		_, err = fmt.Fprintln(c.w, message)
	} else {
		_, err = fmt.Fprintf(c.w, "%s %s\n", strings.TrimRight(c.prefix, " "), message)
	}
	return err
}
