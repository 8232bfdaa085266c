package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrInterrupted is returned by Ask when the context is cancelled,
	// which main wires to SIGINT/SIGTERM.
	ErrInterrupted = errors.New("menu: interrupted")

	// ErrInputClosed is returned by Ask once the input reaches EOF. A
	// read failure is also reported through it, wrapped with the cause.
	ErrInputClosed = errors.New("menu: input closed")
)

// MaxLineSize is the longest answer Console accepts.
const MaxLineSize = 1 << 20

// Console reads answers one line at a time and writes prompts and
// reports to out.
//
// Lines are read on a separate goroutine so that a pending prompt can be
// abandoned as soon as ctx is cancelled; a blocking read on a terminal
// cannot be interrupted otherwise.
type Console struct {
	out   io.Writer
	lines chan string

	// err is set before lines is closed and read only after.
	err error
}

// NewConsole starts reading lines from in.
func NewConsole(in io.Reader, out io.Writer) *Console {
	c := &Console{
		out:   out,
		lines: make(chan string),
	}
	go c.read(in)
	return c
}

func (c *Console) read(in io.Reader) {
	defer close(c.lines)

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	for scanner.Scan() {
		c.lines <- strings.TrimSuffix(scanner.Text(), "\r")
	}
	c.err = scanner.Err()
}

// Out is where reports are written.
func (c *Console) Out() io.Writer {
	return c.out
}

// Ask prints prompt and waits for the next line. The line is returned
// as typed, without its line ending.
func (c *Console) Ask(ctx context.Context, prompt string) (string, error) {
	if ctx.Err() != nil {
		return "", ErrInterrupted
	}

	fmt.Fprint(c.out, prompt)

	select {
	case <-ctx.Done():
		return "", ErrInterrupted
	case line, ok := <-c.lines:
		if !ok {
			if c.err != nil {
				return "", fmt.Errorf("%w: %w", ErrInputClosed, c.err)
			}
			return "", ErrInputClosed
		}
		return line, nil
	}
}
