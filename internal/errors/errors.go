// Package errors formats diagnostics raised by the parser, resolver, and
// interpreter into a single wire format:
//
//	[line N] Error<where>: <message>
//
// (The lexer's own Error type renders scan errors in the same format.)
// An additive Pretty method renders the same diagnostic with a
// source-line-plus-caret view for the optional --pretty display.
package errors

import (
	"fmt"
	"strings"

	"github.com/cwbudde/golox/internal/token"
)

// SourceError is a single diagnostic tied to a source position. Where
// distinguishes parse errors that name an offending lexeme (e.g. " at
// 'if'") from ones with no specific token (empty string).
type SourceError struct {
	Pos     token.Position
	Where   string
	Message string
}

// New creates a SourceError with no specific offending lexeme.
func New(pos token.Position, message string) *SourceError {
	return &SourceError{Pos: pos, Message: message}
}

// NewAt creates a SourceError that names the offending lexeme, producing
// "Error at 'X': message" instead of the bare "Error: message" form.
func NewAt(pos token.Position, lexeme, message string) *SourceError {
	where := " at '" + lexeme + "'"
	if lexeme == "" {
		where = " at end"
	}
	return &SourceError{Pos: pos, Where: where, Message: message}
}

// Error implements the error interface, producing the exact wire format:
// "[line N] Error<where>: <message>".
func (e *SourceError) Error() string {
	return fmt.Sprintf("[line %d] Error%s: %s", e.Pos.Line, e.Where, e.Message)
}

// Pretty renders the error with the offending source line and a caret
// pointing at its column, for the `--pretty` CLI output.
func (e *SourceError) Pretty(source string) string {
	var sb strings.Builder
	sb.WriteString(e.Error())
	sb.WriteString("\n")

	line := sourceLine(source, e.Pos.Line)
	if line == "" {
		return strings.TrimRight(sb.String(), "\n")
	}

	lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
	sb.WriteString(lineNumStr)
	sb.WriteString(line)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat(" ", len(lineNumStr)+e.Pos.Column-1))
	sb.WriteString("^")

	return sb.String()
}

func sourceLine(source string, lineNum int) string {
	if source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatAll joins multiple diagnostics one per line, in the order reported.
func FormatAll(errs []*SourceError) string {
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "\n")
}
