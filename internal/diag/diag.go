// Package diag defines the diagnostic record shared by the tokenizer,
// parser and linter stages, and the append-only list each stage returns
// alongside its artifact.
package diag

import (
	"fmt"
	"strings"

	multierror "github.com/hashicorp/go-multierror"

	"github.com/tek-lang/tek/internal/token"
)

// Level is the severity of a diagnostic.
type Level int

const (
	ERROR Level = iota
	WARNING
	INFO
)

func (l Level) String() string {
	switch l {
	case ERROR:
		return "ERROR"
	case WARNING:
		return "WARNING"
	case INFO:
		return "INFO"
	default:
		return "UNKNOWN"
	}
}

// Source identifies which pipeline stage raised a diagnostic.
type Source string

const (
	Tokenizer Source = "tokenizer"
	Parser    Source = "parser"
	Linter    Source = "linter"
)

// Info is an ordered annotation attached to a Diagnostic, pointing at a
// related span with its own message (e.g. "add a '(' after this class").
type Info struct {
	Message string
	Span    token.Span
}

// Diagnostic is one record in a pipeline stage's output.
type Diagnostic struct {
	Level   Level
	Source  Source
	Message string
	Span    token.Span
	Info    []Info
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: [%s] %s at %s", d.Level, d.Source, d.Message, d.Span)
}

// WithInfo returns a copy of d with the given info annotation appended.
func (d Diagnostic) WithInfo(message string, span token.Span) Diagnostic {
	d.Info = append(append([]Info{}, d.Info...), Info{Message: message, Span: span})
	return d
}

// List is an append-only diagnostic list. A run's final list is the
// concatenation of each stage's list in pipeline order.
type List []Diagnostic

// Error appends an ERROR-level diagnostic from the given source.
func (l List) Error(source Source, message string, span token.Span) List {
	return append(l, Diagnostic{Level: ERROR, Source: source, Message: message, Span: span})
}

// Warning appends a WARNING-level diagnostic from the given source.
func (l List) Warning(source Source, message string, span token.Span) List {
	return append(l, Diagnostic{Level: WARNING, Source: source, Message: message, Span: span})
}

// Info appends an INFO-level diagnostic from the given source.
func (l List) Info(source Source, message string, span token.Span) List {
	return append(l, Diagnostic{Level: INFO, Source: source, Message: message, Span: span})
}

// HasErrors reports whether any diagnostic in l is ERROR-level.
func (l List) HasErrors() bool {
	for _, d := range l {
		if d.Level == ERROR {
			return true
		}
	}
	return false
}

// Concat appends the diagnostics of other after l's own, preserving
// pipeline order.
func (l List) Concat(other List) List {
	return append(l, other...)
}

// AsError folds every ERROR-level diagnostic into a single error using
// hashicorp/go-multierror, for callers who want ordinary Go error-handling
// instead of inspecting the list. It returns nil if l has no ERROR-level
// diagnostics. This is additive sugar: no stage in this module consults it
// internally, since no diagnostic is treated as fatal at the library
// boundary.
func (l List) AsError() error {
	var merr *multierror.Error
	for _, d := range l {
		if d.Level != ERROR {
			continue
		}
		merr = multierror.Append(merr, fmt.Errorf("%s: %s (%s)", d.Source, d.Message, d.Span))
	}
	if merr == nil {
		return nil
	}
	return merr
}

// String renders the list one diagnostic per line, for debug/test output.
func (l List) String() string {
	var sb strings.Builder
	for _, d := range l {
		sb.WriteString(d.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
