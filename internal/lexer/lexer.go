// Package lexer implements the indentation-sensitive tokenizer: it turns
// source text into a token stream, synthesising virtual INDENT/OUTDENT/
// NEWLINE markers and recognising multi-word comparison operators.
package lexer

import (
	"strings"

	hclog "github.com/hashicorp/go-hclog"

	"github.com/tek-lang/tek/internal/diag"
	"github.com/tek-lang/tek/internal/token"
)

// Result is the tokenizer's artifact: the real token stream (never
// containing a COMMENT) and the comments captured out-of-band.
type Result struct {
	Tokens   []token.Token
	Comments []token.Token
}

// Option configures a Tokenize call.
type Option func(*options)

type options struct {
	log hclog.Logger
}

// WithLogger attaches a structured logger; each indent-depth change is
// traced at hclog.Trace. Tracing is purely for implementers debugging
// indentation bugs and never affects the returned artifact.
func WithLogger(l hclog.Logger) Option {
	return func(o *options) { o.log = l }
}

func resolveOptions(opts []Option) *options {
	o := &options{log: hclog.NewNullLogger()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Tokenize converts source text into a token stream. It never fails: on
// any lexical error it records a diagnostic and keeps scanning.
func Tokenize(source string, opts ...Option) (Result, diag.List) {
	o := resolveOptions(opts)
	t := &tokenizer{lines: splitLines(source), log: o.log}
	return t.run()
}

type tokenizer struct {
	lines []string
	log   hclog.Logger

	tokens   []token.Token
	comments []token.Token
	diags    diag.List

	prevLevel int
}

// splitLines splits source on \r?\n. A lone \r that is not followed by \n
// is treated as ordinary line content: this tokenizer's policy is to only
// ever break lines on \n, optionally preceded by \r.
func splitLines(source string) []string {
	raw := strings.Split(source, "\n")
	lines := make([]string, len(raw))
	for i, l := range raw {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

func (t *tokenizer) run() (Result, diag.List) {
	for i, line := range t.lines {
		t.scanLine(i, line)
	}
	t.emitTrailingOutdents()
	t.emitEOF()
	return Result{Tokens: t.tokens, Comments: t.comments}, t.diags
}

func (t *tokenizer) finalLine() int {
	return len(t.lines)
}

func (t *tokenizer) scanLine(lineIdx int, line string) {
	indentCols, mixed := leadingTabs(line)
	rest := line[indentCols:]

	if strings.TrimSpace(rest) == "" {
		// Blank or whitespace-only line: no tokens, no indent bookkeeping.
		return
	}

	if mixed {
		t.diags = t.diags.Error(diag.Tokenizer,
			"indentation must use tabs only",
			token.Span{
				Start: token.Position{Line: lineIdx, Column: 0},
				End:   token.Position{Line: lineIdx, Column: indentCols},
			})
	}

	if rest[0] == '#' {
		t.comments = append(t.comments, token.Token{
			Kind:   token.COMMENT,
			Lexeme: rest,
			Span: token.Span{
				Start: token.Position{Line: lineIdx, Column: indentCols},
				End:   token.Position{Line: lineIdx, Column: len(line)},
			},
		})
		return
	}

	t.applyIndent(lineIdx, indentCols)

	ls := &lineScanner{line: line, lineIdx: lineIdx, pos: indentCols}
	producedContent := false
	var lastEnd token.Position

	for {
		tok, comment, ok := ls.next()
		if !ok {
			break
		}
		if comment != nil {
			t.comments = append(t.comments, *comment)
			continue
		}
		if tok.Kind == token.ILLEGAL {
			t.diags = t.diags.Error(diag.Tokenizer, ls.lastError, tok.Span)
			continue
		}
		if bareGuard, isGuard := token.BareWordGuard[tok.Lexeme]; isGuard && tok.Kind == token.IDENTIFIER {
			d := diag.Diagnostic{Level: diag.ERROR, Source: diag.Tokenizer, Message: bareGuard, Span: tok.Span}
			// the multi-word-operator table already names the exact
			// operator this bare word belongs to; only fall back to a
			// fuzzy reserved-word match when it doesn't.
			if phrase, ok := token.BareWordOperator[tok.Lexeme]; ok {
				d = d.WithInfo("did you mean '"+phrase+"'?", tok.Span)
			} else if sug := token.SuggestKeyword(tok.Lexeme); sug != "" {
				d = d.WithInfo("did you mean '"+sug+"'?", tok.Span)
			}
			t.diags = append(t.diags, d)
			continue
		}
		t.tokens = append(t.tokens, tok)
		producedContent = true
		lastEnd = tok.Span.End
	}

	if producedContent {
		t.tokens = append(t.tokens, token.Token{
			Kind: token.NEWLINE,
			Span: token.Span{Start: lastEnd, End: lastEnd},
		})
	}
}

func (t *tokenizer) applyIndent(lineIdx, curr int) {
	prev := t.prevLevel
	switch {
	case curr > prev:
		t.log.Trace("indent", "line", lineIdx, "delta", curr-prev)
		span := token.Span{
			Start: token.Position{Line: lineIdx, Column: 0},
			End:   token.Position{Line: lineIdx, Column: curr - prev},
		}
		for i := 0; i < curr-prev; i++ {
			t.tokens = append(t.tokens, token.Token{Kind: token.INDENT, Span: span})
		}
	case curr < prev:
		t.log.Trace("outdent", "line", lineIdx, "delta", prev-curr)
		span := token.Span{
			Start: token.Position{Line: lineIdx, Column: 0},
			End:   token.Position{Line: lineIdx, Column: curr},
		}
		for i := 0; i < prev-curr; i++ {
			t.tokens = append(t.tokens, token.Token{Kind: token.OUTDENT, Span: span})
		}
	}
	t.prevLevel = curr
}

func (t *tokenizer) emitTrailingOutdents() {
	line := t.finalLine()
	span := token.Span{
		Start: token.Position{Line: line, Column: 0},
		End:   token.Position{Line: line, Column: 0},
	}
	for i := 0; i < t.prevLevel; i++ {
		t.tokens = append(t.tokens, token.Token{Kind: token.OUTDENT, Span: span})
	}
	t.prevLevel = 0
}

func (t *tokenizer) emitEOF() {
	line := t.finalLine()
	pos := token.Position{Line: line, Column: 0}
	t.tokens = append(t.tokens, token.Token{Kind: token.EOF, Span: token.Span{Start: pos, End: pos}})
}

// leadingTabs returns the length of the line's leading run of tab and space
// bytes and reports whether that run contains a space; mixed indentation is
// rejected by the caller.
func leadingTabs(line string) (cols int, mixed bool) {
	i := 0
	for i < len(line) && line[i] == '\t' {
		i++
	}
	cols = i
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		if line[i] == ' ' {
			mixed = true
		}
		i++
		cols++
	}
	return cols, mixed
}
