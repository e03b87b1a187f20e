// Package tek is the front-end for the Tek language: a tokenizer, a
// table-driven Pratt parser, and a rule-based linter, composed into a
// single Tokenize → Parse → Lint pipeline. There is deliberately no
// code generation or execution here — those are later-phase concerns.
package tek

import (
	"io"

	hclog "github.com/hashicorp/go-hclog"

	"github.com/tek-lang/tek/internal/ast"
	"github.com/tek-lang/tek/internal/diag"
	"github.com/tek-lang/tek/internal/lexer"
	"github.com/tek-lang/tek/internal/linter"
	"github.com/tek-lang/tek/internal/parser"
	"github.com/tek-lang/tek/internal/token"
)

// Program is the root of a parsed source file.
type Program = ast.Program

// Diagnostic is one record a pipeline stage reported; Diagnostics is the
// append-only list a stage returns alongside its artifact.
type Diagnostic = diag.Diagnostic
type Diagnostics = diag.List
type Level = diag.Level

const (
	ERROR   = diag.ERROR
	WARNING = diag.WARNING
	INFO    = diag.INFO
)

// TokenizeResult is the tokenizer's artifact: the real token stream plus
// the comments captured out-of-band.
type TokenizeResult = lexer.Result

// RuleConfig enables/disables individual linter rules or overrides their
// declared severity; see LoadRuleConfig.
type RuleConfig = linter.RuleConfig

// LoadRuleConfig parses a RuleConfig YAML document. Disabling
// declarations-in-class or invalid-control-statement is rejected — those
// two are load-bearing.
func LoadRuleConfig(r io.Reader) (RuleConfig, error) {
	return linter.LoadRuleConfig(r)
}

// Option configures a Frontend.
type Option func(*Frontend)

// WithLogger attaches a structured logger that every pipeline stage
// forwards its Trace and Debug records to. The default is a null logger.
func WithLogger(l hclog.Logger) Option {
	return func(f *Frontend) { f.log = l }
}

// WithRuleConfig sets the rule set Lint and Compile run. The default is
// the zero-value RuleConfig: every built-in rule enabled at its default
// severity.
func WithRuleConfig(cfg RuleConfig) Option {
	return func(f *Frontend) { f.rules = cfg }
}

// Frontend is a reusable, configured instance of the tokenize→parse→lint
// pipeline. The zero value returned by New() with no options behaves
// exactly like the package-level functions.
type Frontend struct {
	log   hclog.Logger
	rules RuleConfig
}

// New constructs a Frontend from the given options.
func New(opts ...Option) *Frontend {
	f := &Frontend{log: hclog.NewNullLogger()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Tokenize converts source text into a token stream. It never fails: a
// recoverable lexical error is recorded as a diagnostic and scanning
// continues.
func Tokenize(source string, opts ...Option) (TokenizeResult, Diagnostics) {
	return New(opts...).Tokenize(source)
}

// Tokenize is the method form of the package-level Tokenize, using f's
// configured logger.
func (f *Frontend) Tokenize(source string) (TokenizeResult, Diagnostics) {
	return lexer.Tokenize(source, lexer.WithLogger(f.log))
}

// Parse runs the Pratt parser over a token stream produced by Tokenize.
func Parse(tokens []token.Token, opts ...Option) (*Program, Diagnostics) {
	return New(opts...).Parse(tokens)
}

// Parse is the method form of the package-level Parse, using f's
// configured logger.
func (f *Frontend) Parse(tokens []token.Token) (*Program, Diagnostics) {
	return parser.Parse(tokens, parser.WithLogger(f.log))
}

// Lint walks prog with f's configured rule set and returns the combined
// diagnostics.
func Lint(prog *Program, opts ...Option) Diagnostics {
	return New(opts...).Lint(prog)
}

// Lint is the method form of the package-level Lint, using f's configured
// logger and rule set.
func (f *Frontend) Lint(prog *Program) Diagnostics {
	return linter.Lint(prog, f.rules, linter.WithLogger(f.log))
}

// CompileFrontEnd composes Tokenize, Parse, and Lint with the Frontend that
// New(opts...) builds; with no options that is the default configuration.
func CompileFrontEnd(source string, opts ...Option) (*Program, Diagnostics) {
	return New(opts...).Compile(source)
}

// Compile runs the full pipeline over source text, concatenating every
// stage's diagnostics in pipeline order.
func (f *Frontend) Compile(source string) (*Program, Diagnostics) {
	result, diags := f.Tokenize(source)
	prog, parseDiags := f.Parse(result.Tokens)
	diags = diags.Concat(parseDiags)
	diags = diags.Concat(f.Lint(prog))
	return prog, diags
}
