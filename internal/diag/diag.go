// Package diag implements the single-fatal-diagnostic error model used
// throughout the front-end: every phase (lex, preprocess, parse) reports at
// most one diagnostic before aborting, in the form "file:line:col: message".
package diag

import (
	"fmt"
)

// Category classifies what went wrong, per the error taxonomy of spec §7.
// It does not affect formatting; it lets callers (tests, the CLI) branch on
// the kind of failure without string-matching the message.
type Category uint8

const (
	IO Category = iota
	Lex
	Directive
	Syntax
	Semantic
	Internal
)

func (c Category) String() string {
	switch c {
	case IO:
		return "io"
	case Lex:
		return "lex"
	case Directive:
		return "directive"
	case Syntax:
		return "syntax"
	case Semantic:
		return "semantic"
	case Internal:
		return "internal"
	default:
		return "unknown"
	}
}

// Loc is the file/line/column triple printed in every diagnostic. Lines and
// columns are both 1-based; tab width is deliberately 1 (see spec §9).
type Loc struct {
	File   string
	Line   int
	Column int
}

func (l Loc) String() string {
	file := l.File
	if file == "" {
		file = "<anonymous>"
	}
	return fmt.Sprintf("%s:%d:%d", file, l.Line, l.Column)
}

// Error is the one diagnostic a fatal run ever produces. It implements the
// standard error interface so phases can return it like any other error;
// cmd/pacc is the only place that renders it and chooses the process exit
// code.
type Error struct {
	Category Category
	Loc      Loc
	Message  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Loc, e.Message)
}

// Errorf builds a *Error the way the teacher's own fatal() macro does in
// original_source/include/util/util.h: a location, a formatted message, and
// nothing else — no accumulation, no recovery.
func Errorf(cat Category, loc Loc, format string, args ...interface{}) *Error {
	return &Error{Category: cat, Loc: loc, Message: fmt.Sprintf(format, args...)}
}
