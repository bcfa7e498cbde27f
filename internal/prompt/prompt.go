// Copyright Gabriele Ciccotelli, 2026. All rights reserved.

// Package prompt implements the interactive question loop of the CLI:
// print a question, read a line, re-ask until the answer validates.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Prompter asks questions on a terminal-like pair of streams. Reads and
// writes are line-oriented, so tests can drive it with plain buffers.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// New builds a Prompter reading answers from in and printing questions
// to out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// readLine returns the next trimmed input line. A closed input stream
// yields io.EOF so callers can abort cleanly.
func (p *Prompter) readLine() (string, error) {
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// Ask prints the question and returns the reply. An empty reply returns
// def.
func (p *Prompter) Ask(question, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", question, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", question)
	}
	answer, err := p.readLine()
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// AskValidated asks the question and keeps re-asking with the retry
// message until validate accepts the answer.
func (p *Prompter) AskValidated(question, retry string, validate func(string) error) (string, error) {
	fmt.Fprintf(p.out, "%s: ", question)
	for {
		answer, err := p.readLine()
		if err != nil {
			return "", err
		}
		if validate(answer) == nil {
			return answer, nil
		}
		fmt.Fprintf(p.out, "%s: ", retry)
	}
}

// AskYesNo asks a Y/N question and re-asks until it gets one.
func (p *Prompter) AskYesNo(question string) (bool, error) {
	fmt.Fprintf(p.out, "%s\nAnswer with 'Y' or 'N': ", question)
	for {
		answer, err := p.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToUpper(answer) {
		case "Y":
			return true, nil
		case "N":
			return false, nil
		}
		fmt.Fprint(p.out, "Answer correctly using 'Y' or 'N': ")
	}
}

// AskChoice prints a numbered menu and returns the zero-based index of
// the selected option. The answer may be the option number or the
// option text itself; anything else re-asks.
func (p *Prompter) AskChoice(question string, options []string) (int, error) {
	fmt.Fprintf(p.out, "%s\n", question)
	for i, opt := range options {
		fmt.Fprintf(p.out, "%d - %s\n", i+1, opt)
	}
	fmt.Fprint(p.out, "Answer by writing only the number of your choice: ")

	for {
		answer, err := p.readLine()
		if err != nil {
			return 0, err
		}
		if n, convErr := strconv.Atoi(answer); convErr == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		for i, opt := range options {
			if strings.EqualFold(answer, opt) {
				return i, nil
			}
		}
		fmt.Fprint(p.out, "Please, answer correctly indicating the number of your choice: ")
	}
}

// AskExistingPath asks for a path and re-asks until it names an existing
// file or directory.
func (p *Prompter) AskExistingPath(question string) (string, error) {
	return p.AskValidated(question,
		"The path entered does not correspond to any file or folder, please enter an existing path",
		func(s string) error {
			if s == "" {
				return fmt.Errorf("empty path")
			}
			_, err := os.Stat(s)
			return err
		})
}

// AskExistingDir asks for a path and re-asks until it names an existing
// directory.
func (p *Prompter) AskExistingDir(question string) (string, error) {
	return p.AskValidated(question,
		"Please, write an existing folder path",
		func(s string) error {
			info, err := os.Stat(s)
			if err != nil {
				return err
			}
			if !info.IsDir() {
				return fmt.Errorf("%s is not a directory", s)
			}
			return nil
		})
}
