package spylang

import (
	"errors"
	"fmt"
	"strings"
)

// DiagKind classifies a diagnostic.
type DiagKind int

const (
	// DiagIllegalChar reports a character the lexer does not recognize.
	DiagIllegalChar DiagKind = iota
	// DiagExpected reports a token the lexer or parser required but did not find.
	DiagExpected
	// DiagRuntime reports a failure during evaluation.
	DiagRuntime
	// DiagIncomplete marks a parse that failed only because the input ended.
	// The REPL uses it to ask for continuation lines; it is never user-facing.
	DiagIncomplete
)

// Error is the single diagnostic type for lexing, parsing, and evaluation.
// Line is 1-based, Col 0-based (rendered 1-based). Script and Src are stamped
// by the interpreter entry points when known, so a diagnostic escaping a
// launched program still points into the right file.
type Error struct {
	Kind   DiagKind
	Msg    string
	Line   int
	Col    int
	Script string
	Src    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %d:%d: %s", e.headline(), e.Line, e.Col+1, e.Msg)
}

// headline returns the themed header for the diagnostic kind.
func (e *Error) headline() string {
	switch e.Kind {
	case DiagIllegalChar:
		return "Agent Error: Unauthorized character detected in the operation. Mission compromised!"
	case DiagRuntime:
		return "Agent Error: Runtime breach! Unauthorized behavior detected in the system."
	default:
		return "Agent Error: Expected character not found in the operation. Mission compromised!"
	}
}

// IsIncomplete reports whether err is an incomplete-input diagnostic.
func IsIncomplete(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == DiagIncomplete
}

// FormatError renders a diagnostic as a themed header followed by a
// caret-annotated snippet of the source. name and src act as fallbacks
// when the error does not carry its own script attribution. Non-*Error
// values render via their Error method.
func FormatError(err error, name, src string) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Script != "" {
		name = e.Script
		src = e.Src
	}
	return prettyError(src, e.headline(), name, e.Line, e.Col+1, e.Msg)
}

// prettyError builds a snippet with at most one line of context before and
// after, numbered lines, and a caret under the 1-based column. Coordinates
// are clamped so malformed positions cannot break rendering.
func prettyError(src, header, name string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line > len(lines) {
		line = len(lines)
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteByte('\n')
	if name != "" {
		fmt.Fprintf(&b, "File %s, line %d, column %d: %s\n\n", name, line, col, msg)
	} else {
		fmt.Fprintf(&b, "Line %d, column %d: %s\n\n", line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
