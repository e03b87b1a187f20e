// Package linter implements a rule-based walker: a depth-first traversal
// over an *ast.Program that dispatches onEnter/onLeave callbacks keyed by
// ast.SyntacticToken, in registration order. Rules are self-contained
// predicate-plus-report units, the same shape onflow/cadence's sema
// package and praetorian-inc/titus's pkg/rule package use for their own
// checks, adapted here to close over whatever ancestor state a given rule
// needs instead of sharing a single traversal-wide context object.
package linter

import (
	hclog "github.com/hashicorp/go-hclog"

	"github.com/tek-lang/tek/internal/ast"
	"github.com/tek-lang/tek/internal/diag"
	"github.com/tek-lang/tek/internal/token"
)

// ReportFunc records a diagnostic tagged diag.Linter at the given span.
type ReportFunc func(level diag.Level, message string, span token.Span)

// EnterFunc and LeaveFunc are the callbacks a Rule registers per node kind.
type EnterFunc func(node ast.Node, report ReportFunc)
type LeaveFunc func(node ast.Node, report ReportFunc)

// Rule is a self-contained lint check: it registers whatever onEnter/
// onLeave callbacks it needs against a Walker when asked to.
type Rule interface {
	ID() string
	Register(w *Walker)
}

// Option configures a Walker.
type Option func(*options)

type options struct {
	log hclog.Logger
}

// WithLogger attaches a logger the walker emits Trace records to as rules
// fire; the zero value is hclog.NewNullLogger().
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

// Walker drives the DFS traversal. It is stateless aside from callback
// registration order — any ancestor context a rule needs lives in that
// rule's own closure, pushed in its onEnter and popped in its onLeave.
type Walker struct {
	enter map[ast.SyntacticToken][]EnterFunc
	leave map[ast.SyntacticToken][]LeaveFunc
	log   hclog.Logger
}

// NewWalker builds an empty Walker. Rules attach themselves via Register.
func NewWalker(opts ...Option) *Walker {
	o := resolveOptions(opts)
	return &Walker{
		enter: map[ast.SyntacticToken][]EnterFunc{},
		leave: map[ast.SyntacticToken][]LeaveFunc{},
		log:   o.log,
	}
}

// OnEnter registers fn to run, in registration order, before a node's
// children are visited.
func (w *Walker) OnEnter(kind ast.SyntacticToken, fn EnterFunc) {
	w.enter[kind] = append(w.enter[kind], fn)
}

// OnLeave registers fn to run, in registration order, after a node's
// subtree has been fully visited.
func (w *Walker) OnLeave(kind ast.SyntacticToken, fn LeaveFunc) {
	w.leave[kind] = append(w.leave[kind], fn)
}

// Use registers every rule in rules against w, in order.
func (w *Walker) Use(rules ...Rule) {
	for _, r := range rules {
		w.log.Trace("registering lint rule", "rule", r.ID())
		r.Register(w)
	}
}

// Walk runs the traversal over prog and returns every diagnostic the
// registered rules reported, in the order they fired.
func (w *Walker) Walk(prog *ast.Program) diag.List {
	var diags diag.List
	report := func(level diag.Level, message string, span token.Span) {
		switch level {
		case diag.ERROR:
			diags = diags.Error(diag.Linter, message, span)
		case diag.WARNING:
			diags = diags.Warning(diag.Linter, message, span)
		default:
			diags = diags.Info(diag.Linter, message, span)
		}
		w.log.Trace("lint rule fired", "level", level.String(), "message", message)
	}

	var visit func(ast.Node)
	visit = func(n ast.Node) {
		kind := n.Kind()
		for _, fn := range w.enter[kind] {
			fn(n, report)
		}
		n.Walk(visit)
		for _, fn := range w.leave[kind] {
			fn(n, report)
		}
	}
	visit(prog)
	return diags
}

// Lint runs the built-in rule set cfg.Build() produces over prog and
// returns the combined diagnostics.
func Lint(prog *ast.Program, cfg RuleConfig, opts ...Option) diag.List {
	w := NewWalker(opts...)
	w.Use(cfg.Build()...)
	return w.Walk(prog)
}
