// Package text holds source positions for errors in templates.
package text

import (
	"fmt"
	"strconv"
	"strings"
)

// Positioner represents a thing that knows its position in a text file or stream,
// typically an error.
type Positioner interface {
	Position() Position
}

// Position holds a source position in a text file or stream.
type Position struct {
	Filename     string // filename, if any
	LineNumber   int    // line number, starting at 1
	ColumnNumber int    // column number, starting at 1 (character count per line)
}

// IsValid returns true if line number is > 0.
func (pos Position) IsValid() bool {
	return pos.LineNumber > 0
}

func (pos Position) String() string {
	if pos.Filename == "" {
		pos.Filename = "<stream>"
	}
	if pos.ColumnNumber > 0 {
		return fmt.Sprintf("%s:%d:%d", pos.Filename, pos.LineNumber, pos.ColumnNumber)
	}
	return fmt.Sprintf("%s:%d", pos.Filename, pos.LineNumber)
}

// PositionError is an error at a position in a file.
type PositionError struct {
	Pos Position
	Err error
}

func (e *PositionError) Error() string {
	return e.Err.Error()
}

func (e *PositionError) Unwrap() error {
	return e.Err
}

// Position implements Positioner.
func (e *PositionError) Position() Position {
	return e.Pos
}

// WithPosition attaches pos to err. err is returned as is if it is nil or
// pos is not valid.
func WithPosition(err error, pos Position) error {
	if err == nil || !pos.IsValid() {
		return err
	}
	return &PositionError{Pos: pos, Err: err}
}

// ParseGoTemplatePosition extracts the position from a Go template error
// message, e.g. "template: index.html:3:12: executing ...".
func ParseGoTemplatePosition(name, msg string) Position {
	prefix := "template: " + name + ":"
	if !strings.HasPrefix(msg, prefix) {
		return Position{}
	}
	pos := Position{Filename: name}
	rest := msg[len(prefix):]
	pos.LineNumber, rest = leadingInt(rest)
	if strings.HasPrefix(rest, ":") {
		pos.ColumnNumber, _ = leadingInt(rest[1:])
	}
	return pos
}

func leadingInt(s string) (int, string) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	n, _ := strconv.Atoi(s[:i])
	return n, s[i:]
}
