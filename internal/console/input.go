// Package console holds the terminal-facing input and output sources of an
// assistant session: prompted line input, prefixed line output, and a
// text-to-speech output.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// CommandLineInput reads one line of user input at a time, showing a prompt
// when one is configured.
type CommandLineInput struct {
	prompt string
	reader *bufio.Reader
	out    io.Writer
}

// NewCommandLineInput creates an input reading from r and printing the
// prompt to w.
func NewCommandLineInput(prompt string, r io.Reader, w io.Writer) *CommandLineInput {
	return &CommandLineInput{
		prompt: prompt,
		reader: bufio.NewReader(r),
		out:    w,
	}
}

// Get reads the next line. It returns io.EOF when the input is exhausted.
func (c *CommandLineInput) Get(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if !promptEmpty(c.prompt) {
		fmt.Fprintf(c.out, "%s ", strings.TrimRight(c.prompt, " "))
	}

	line, err := c.reader.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

func promptEmpty(prompt string) bool {
	return strings.TrimSpace(prompt) == ""
}
