// Package input supplies token strings to the parse REPL: one line per
// parse, read either directly from a piped stream or through a
// readline-backed interactive prompt. Blank lines are never returned; a
// reader blocks until it has a line with content or its source ends.
package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// Reader is the common interface of DirectReader and InteractiveReader:
// blocking token-line reads plus resource teardown.
type Reader interface {
	ReadTokens() (string, error)
	Close() error
}

// DirectReader reads token lines from any io.Reader without line editing.
// Suitable for piped, non-interactive input. Create one with
// [NewDirectReader].
type DirectReader struct {
	buf *bufio.Reader
}

// NewDirectReader creates a DirectReader over r. Callers must Close it when
// done.
func NewDirectReader(r io.Reader) *DirectReader {
	return &DirectReader{buf: bufio.NewReader(r)}
}

// ReadTokens returns the next non-blank line of r, trimmed of surrounding
// whitespace. At end of input it returns io.EOF; a trailing line without a
// final newline is still returned before the EOF.
func (r *DirectReader) ReadTokens() (string, error) {
	for {
		line, err := r.buf.ReadString('\n')
		line = strings.TrimSpace(line)
		if line != "" {
			return line, nil
		}
		if err != nil {
			return "", err
		}
	}
}

// Close releases resources held by the DirectReader. It currently holds
// none, but callers should treat every Reader as needing teardown.
func (r *DirectReader) Close() error {
	return nil
}

// InteractiveReader reads token lines from stdin through a Go
// implementation of the GNU Readline library, giving the REPL line editing
// and history. Should only be used when connected to a TTY. Create one
// with [NewInteractiveReader].
type InteractiveReader struct {
	rl *readline.Instance
}

// NewInteractiveReader creates an InteractiveReader displaying the given
// prompt before each line. Callers must Close it when done to properly
// teardown readline resources.
func NewInteractiveReader(prompt string) (*InteractiveReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}

	return &InteractiveReader{rl: rl}, nil
}

// ReadTokens returns the next non-blank line typed at the prompt, trimmed
// of surrounding whitespace. At end of input the error is io.EOF.
func (r *InteractiveReader) ReadTokens() (string, error) {
	for {
		line, err := r.rl.Readline()
		line = strings.TrimSpace(line)
		if line != "" {
			return line, nil
		}
		if err != nil {
			return "", err
		}
	}
}

// Close tears down readline resources held by the InteractiveReader.
func (r *InteractiveReader) Close() error {
	return r.rl.Close()
}
