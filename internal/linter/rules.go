package linter

import (
	"github.com/tek-lang/tek/internal/ast"
	"github.com/tek-lang/tek/internal/diag"
)

// Rule IDs. declarationsInClassID and invalidControlStatementID are the two
// load-bearing rules; RuleConfig refuses to disable them (see config.go).
const (
	declarationsInClassID     = "declarations-in-class"
	invalidControlStatementID = "invalid-control-statement"
	duplicateDeclarationID    = "duplicate-declaration"
	unreachableAfterReturnID  = "unreachable-after-return"
	emptyBlockBodyID          = "empty-block-body"
	fallthroughMustBeLastID   = "fallthrough-must-be-last"
)

// ruleFunc adapts a plain registration closure to the Rule interface.
type ruleFunc struct {
	id       string
	register func(w *Walker)
}

func (r *ruleFunc) ID() string         { return r.id }
func (r *ruleFunc) Register(w *Walker) { r.register(w) }

func newRule(id string, level diag.Level, register func(w *Walker, level diag.Level)) Rule {
	return &ruleFunc{id: id, register: func(w *Walker) { register(w, level) }}
}

// DeclarationsInClass enforces that every entry of a ClassDecl's static and
// instance bodies is a declaration node.
func DeclarationsInClass(level diag.Level) Rule {
	return newRule(declarationsInClassID, level, func(w *Walker, level diag.Level) {
		check := func(body []ast.Statement, report ReportFunc) {
			for _, member := range body {
				if _, ok := member.(ast.Declaration); !ok {
					report(level, "You can only put declarations in a class body", member.Span())
				}
			}
		}
		w.OnEnter(ast.KindClassDecl, func(n ast.Node, report ReportFunc) {
			cls := n.(*ast.ClassDecl)
			check(cls.StaticBody, report)
			check(cls.InstanceBody, report)
		})
	})
}

// InvalidControlStatement maintains three ancestor counters (in-function,
// in-loop, in-switch — there is no separate in-case counter, since a case
// clause has no AST node of its own to key an onEnter/onLeave pair on, so
// in-switch stands for it) and flags control statements used outside their
// valid context.
func InvalidControlStatement(level diag.Level) Rule {
	return newRule(invalidControlStatementID, level, func(w *Walker, level diag.Level) {
		var inFunction, inLoop, inSwitch int

		enterCounter := func(counter *int) EnterFunc {
			return func(ast.Node, ReportFunc) { *counter++ }
		}
		leaveCounter := func(counter *int) LeaveFunc {
			return func(ast.Node, ReportFunc) { *counter-- }
		}

		w.OnEnter(ast.KindFunctionDecl, enterCounter(&inFunction))
		w.OnLeave(ast.KindFunctionDecl, leaveCounter(&inFunction))

		for _, kind := range []ast.SyntacticToken{ast.KindFor, ast.KindWhile, ast.KindRepeat} {
			w.OnEnter(kind, enterCounter(&inLoop))
			w.OnLeave(kind, leaveCounter(&inLoop))
		}

		w.OnEnter(ast.KindSwitch, enterCounter(&inSwitch))
		w.OnLeave(ast.KindSwitch, leaveCounter(&inSwitch))

		w.OnEnter(ast.KindReturn, func(n ast.Node, report ReportFunc) {
			if inFunction == 0 {
				report(level, "return is not valid outside a function", n.Span())
			}
		})
		w.OnEnter(ast.KindBreak, func(n ast.Node, report ReportFunc) {
			if inLoop == 0 && inSwitch == 0 {
				report(level, "break is not valid outside a loop or switch", n.Span())
			}
		})
		w.OnEnter(ast.KindContinue, func(n ast.Node, report ReportFunc) {
			if inLoop == 0 {
				report(level, "continue is not valid outside a loop", n.Span())
			}
		})
		w.OnEnter(ast.KindFallthrough, func(n ast.Node, report ReportFunc) {
			if inSwitch == 0 {
				report(level, "fallthrough is not valid outside a switch case", n.Span())
			}
		})
	})
}

// DuplicateDeclaration flags two declarations sharing a name within one
// ClassDecl body (static and instance checked independently) or one
// FunctionDecl parameter list.
func DuplicateDeclaration(level diag.Level) Rule {
	return newRule(duplicateDeclarationID, level, func(w *Walker, level diag.Level) {
		checkNames := func(names []string, spans []ast.Node, report ReportFunc) {
			seen := map[string]bool{}
			for i, name := range names {
				if seen[name] {
					report(level, "duplicate declaration of '"+name+"'", spans[i].Span())
					continue
				}
				seen[name] = true
			}
		}

		declName := func(s ast.Statement) (string, bool) {
			switch d := s.(type) {
			case *ast.VariableDecl:
				return d.Name, true
			case *ast.EmptyVariableDecl:
				return d.Name, true
			case *ast.FunctionDecl:
				return d.Name, true
			}
			return "", false
		}

		checkBody := func(body []ast.Statement, report ReportFunc) {
			var names []string
			var nodes []ast.Node
			for _, member := range body {
				if name, ok := declName(member); ok {
					names = append(names, name)
					nodes = append(nodes, member)
				}
			}
			checkNames(names, nodes, report)
		}

		w.OnEnter(ast.KindClassDecl, func(n ast.Node, report ReportFunc) {
			cls := n.(*ast.ClassDecl)
			checkBody(cls.StaticBody, report)
			checkBody(cls.InstanceBody, report)
		})

		w.OnEnter(ast.KindFunctionDecl, func(n ast.Node, report ReportFunc) {
			fn := n.(*ast.FunctionDecl)
			seen := map[string]bool{}
			for _, p := range fn.Params {
				if seen[p.Name] {
					report(level, "duplicate parameter '"+p.Name+"'", p.Sp)
					continue
				}
				seen[p.Name] = true
			}
		})
	})
}

// isTerminator reports whether s unconditionally ends control flow, per the
// unreachable-after-return contract.
func isTerminator(s ast.Statement) bool {
	switch s.(type) {
	case *ast.Return, *ast.Break, *ast.Continue, *ast.Throw, *ast.Fallthrough:
		return true
	}
	return false
}

func checkUnreachable(body []ast.Statement, level diag.Level, report ReportFunc) {
	for i, s := range body {
		if !isTerminator(s) {
			continue
		}
		for _, unreachable := range body[i+1:] {
			report(level, "unreachable code", unreachable.Span())
		}
		return
	}
}

// UnreachableAfterReturn flags any statement following an unconditional
// Return, Break, Continue, Throw, or Fallthrough in the same sequence.
func UnreachableAfterReturn(level diag.Level) Rule {
	return newRule(unreachableAfterReturnID, level, func(w *Walker, level diag.Level) {
		w.OnEnter(ast.KindProgram, func(n ast.Node, rep ReportFunc) {
			checkUnreachable(n.(*ast.Program).Body, level, rep)
		})
		w.OnEnter(ast.KindFunctionDecl, func(n ast.Node, rep ReportFunc) {
			checkUnreachable(n.(*ast.FunctionDecl).Body, level, rep)
		})
		w.OnEnter(ast.KindIf, func(n ast.Node, rep ReportFunc) {
			s := n.(*ast.If)
			checkUnreachable(s.Body, level, rep)
			checkUnreachable(s.Else, level, rep)
		})
		w.OnEnter(ast.KindFor, func(n ast.Node, rep ReportFunc) {
			checkUnreachable(n.(*ast.For).Body, level, rep)
		})
		w.OnEnter(ast.KindWhile, func(n ast.Node, rep ReportFunc) {
			checkUnreachable(n.(*ast.While).Body, level, rep)
		})
		w.OnEnter(ast.KindRepeat, func(n ast.Node, rep ReportFunc) {
			checkUnreachable(n.(*ast.Repeat).Body, level, rep)
		})
		w.OnEnter(ast.KindTry, func(n ast.Node, rep ReportFunc) {
			s := n.(*ast.Try)
			checkUnreachable(s.Body, level, rep)
			checkUnreachable(s.CatchBody, level, rep)
			checkUnreachable(s.FinallyBody, level, rep)
		})
		w.OnEnter(ast.KindSwitch, func(n ast.Node, rep ReportFunc) {
			s := n.(*ast.Switch)
			for _, c := range s.Cases {
				checkUnreachable(c.Body, level, rep)
			}
			checkUnreachable(s.Default, level, rep)
		})
	})
}

// EmptyBlockBody flags a FunctionDecl, If, For, While, or Repeat whose body
// has zero statements.
func EmptyBlockBody(level diag.Level) Rule {
	return newRule(emptyBlockBodyID, level, func(w *Walker, level diag.Level) {
		report := func(n ast.Node, rep ReportFunc) { rep(level, "empty body", n.Span()) }

		w.OnEnter(ast.KindFunctionDecl, func(n ast.Node, rep ReportFunc) {
			if len(n.(*ast.FunctionDecl).Body) == 0 {
				report(n, rep)
			}
		})
		w.OnEnter(ast.KindIf, func(n ast.Node, rep ReportFunc) {
			if len(n.(*ast.If).Body) == 0 {
				report(n, rep)
			}
		})
		w.OnEnter(ast.KindFor, func(n ast.Node, rep ReportFunc) {
			if len(n.(*ast.For).Body) == 0 {
				report(n, rep)
			}
		})
		w.OnEnter(ast.KindWhile, func(n ast.Node, rep ReportFunc) {
			if len(n.(*ast.While).Body) == 0 {
				report(n, rep)
			}
		})
		w.OnEnter(ast.KindRepeat, func(n ast.Node, rep ReportFunc) {
			if len(n.(*ast.Repeat).Body) == 0 {
				report(n, rep)
			}
		})
	})
}

// FallthroughMustBeLast flags a Fallthrough statement that isn't the final
// statement of the case or default body it appears in. This can't be
// expressed as a generic onEnter callback keyed on KindFallthrough alone,
// since a case clause has no node of its own to report "last statement of"
// relative to — the rule inspects each Switch's cases directly instead.
func FallthroughMustBeLast(level diag.Level) Rule {
	return newRule(fallthroughMustBeLastID, level, func(w *Walker, level diag.Level) {
		check := func(body []ast.Statement, report ReportFunc) {
			for i, s := range body {
				if _, ok := s.(*ast.Fallthrough); ok && i != len(body)-1 {
					report(level, "fallthrough must be the last statement in its case", s.Span())
				}
			}
		}
		w.OnEnter(ast.KindSwitch, func(n ast.Node, report ReportFunc) {
			sw := n.(*ast.Switch)
			for _, c := range sw.Cases {
				check(c.Body, report)
			}
			check(sw.Default, report)
		})
	})
}
