// Package prompt reads answers to interactive questions from a pluggable source
// so the keep selection and the deletion confirmation can run against a
// terminal or a scripted list of answers.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrInputClosed is returned when the answer source is exhausted before a valid answer arrives
var ErrInputClosed = errors.New("input closed before an answer was given")

// Provider supplies one answer per question
type Provider interface {
	Ask(question string) (string, error)
}

// LineProvider writes each question to w and reads one line from r as the answer
type LineProvider struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewLineProvider creates a provider reading answers line by line
func NewLineProvider(r io.Reader, w io.Writer) *LineProvider {
	return &LineProvider{
		reader: bufio.NewReader(r),
		writer: w,
	}
}

// Ask prints question and returns the next line without its line ending
func (p *LineProvider) Ask(question string) (string, error) {
	fmt.Fprint(p.writer, question)

	line, err := p.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			// Last line without a trailing newline is still an answer
			return strings.TrimRight(line, "\r\n"), nil
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(p.writer)
			return "", ErrInputClosed
		}
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// AskIndex asks until the answer is an integer in [0, n). Invalid answers are
// reported on w and the question is asked again.
func AskIndex(p Provider, w io.Writer, question string, n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("no choices to pick from")
	}

	for {
		answer, err := p.Ask(question)
		if err != nil {
			return 0, err
		}

		index, err := strconv.Atoi(strings.TrimSpace(answer))
		if err != nil {
			fmt.Fprintf(w, "Invalid index %q: enter a number between 0 and %d\n", answer, n-1)
			continue
		}
		if index < 0 || index >= n {
			fmt.Fprintf(w, "Index %d out of range: enter a number between 0 and %d\n", index, n-1)
			continue
		}

		return index, nil
	}
}

// Confirm asks a yes/no question until the answer is y or n, in any case
func Confirm(p Provider, w io.Writer, question string) (bool, error) {
	for {
		answer, err := p.Ask(question)
		if err != nil {
			return false, err
		}

		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y":
			return true, nil
		case "n":
			return false, nil
		default:
			fmt.Fprintf(w, "Please answer y or n\n")
		}
	}
}
