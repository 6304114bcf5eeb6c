package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter reads one answer per prompt. Both methods return io.EOF when
// input is exhausted.
type Prompter interface {
	Ask(prompt string) (string, error)
	// AskHidden reads without echo where the input supports it.
	AskHidden(prompt string) (string, error)
}

// LinePrompter reads newline-terminated answers from any reader.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter returns a prompter that writes prompts to out and reads
// answers from in. AskHidden behaves like Ask.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

// Ask implements Prompter.
func (p *LinePrompter) Ask(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// AskHidden implements Prompter.
func (p *LinePrompter) AskHidden(prompt string) (string, error) {
	return p.Ask(prompt)
}

// TermPrompter reads hidden answers from a terminal.
type TermPrompter struct {
	*LinePrompter
	fd int
}

// AskHidden implements Prompter. Lines already in the read buffer, such as
// pasted answers, are consumed before the terminal is read directly.
func (p *TermPrompter) AskHidden(prompt string) (string, error) {
	if p.in.Buffered() > 0 {
		return p.LinePrompter.AskHidden(prompt)
	}
	fmt.Fprint(p.out, prompt)
	b, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out) // newline after hidden input
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// NewPrompter returns a TermPrompter when in is a terminal, otherwise a
// LinePrompter.
func NewPrompter(in *os.File, out io.Writer) Prompter {
	lp := NewLinePrompter(in, out)
	fd := int(in.Fd())
	if term.IsTerminal(fd) {
		return &TermPrompter{LinePrompter: lp, fd: fd}
	}
	return lp
}
