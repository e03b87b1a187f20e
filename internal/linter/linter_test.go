package linter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tek-lang/tek/internal/ast"
	"github.com/tek-lang/tek/internal/diag"
	"github.com/tek-lang/tek/internal/lexer"
	"github.com/tek-lang/tek/internal/parser"
	"github.com/tek-lang/tek/internal/token"
)

// mustParse loads the named .tek fixture from testdata and parses it,
// matching the corpus's habit (hashicorp/terraform's command package) of
// keeping fixtures next to the test that exercises them instead of
// inlining source as a string literal.
func mustParse(t *testing.T, fixture string) *ast.Program {
	t.Helper()
	src, err := os.ReadFile(filepath.Join("testdata", fixture))
	require.NoError(t, err)
	result, lexDiags := lexer.Tokenize(string(src))
	require.Empty(t, lexDiags)
	prog, parseDiags := parser.Parse(result.Tokens)
	require.Empty(t, parseDiags)
	return prog
}

func messages(diags diag.List) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.Message
	}
	return out
}

func TestDeclarationsInClassFlagsNonDeclarationMembers(t *testing.T) {
	prog := mustParse(t, "class_non_declaration_member.tek")

	w := NewWalker()
	w.Use(DeclarationsInClass(diag.ERROR))
	diags := w.Walk(prog)

	require.Len(t, diags, 1)
	require.Equal(t, diag.ERROR, diags[0].Level)
	require.Contains(t, diags[0].Message, "You can only put declarations in a class body")
}

func TestDeclarationsInClassAllowsDeclarations(t *testing.T) {
	prog := mustParse(t, "class_allows_declarations.tek")

	w := NewWalker()
	w.Use(DeclarationsInClass(diag.ERROR))
	diags := w.Walk(prog)

	require.Empty(t, diags)
}

func TestInvalidControlStatementFlagsReturnOutsideFunction(t *testing.T) {
	prog := mustParse(t, "return_outside_function.tek")

	w := NewWalker()
	w.Use(InvalidControlStatement(diag.ERROR))
	diags := w.Walk(prog)

	require.Len(t, diags, 1)
	require.Contains(t, diags[0].Message, "return is not valid outside a function")
}

func TestInvalidControlStatementAllowsReturnInsideFunction(t *testing.T) {
	prog := mustParse(t, "return_inside_function.tek")

	w := NewWalker()
	w.Use(InvalidControlStatement(diag.ERROR))
	diags := w.Walk(prog)

	require.Empty(t, diags)
}

func TestInvalidControlStatementFlagsBreakAndContinueOutsideLoop(t *testing.T) {
	prog := mustParse(t, "break_outside_loop.tek")
	w := NewWalker()
	w.Use(InvalidControlStatement(diag.ERROR))
	diags := w.Walk(prog)
	require.Len(t, diags, 1)
	require.Contains(t, diags[0].Message, "break is not valid")

	prog = mustParse(t, "continue_outside_loop.tek")
	w = NewWalker()
	w.Use(InvalidControlStatement(diag.ERROR))
	diags = w.Walk(prog)
	require.Len(t, diags, 1)
	require.Contains(t, diags[0].Message, "continue is not valid")
}

func TestInvalidControlStatementAllowsBreakInsideLoop(t *testing.T) {
	prog := mustParse(t, "break_inside_loop.tek")
	w := NewWalker()
	w.Use(InvalidControlStatement(diag.ERROR))
	diags := w.Walk(prog)
	require.Empty(t, diags)
}

func TestDuplicateDeclarationFlagsRepeatedFieldName(t *testing.T) {
	prog := mustParse(t, "duplicate_field.tek")

	w := NewWalker()
	w.Use(DuplicateDeclaration(diag.WARNING))
	diags := w.Walk(prog)

	require.Len(t, diags, 1)
	require.Equal(t, diag.WARNING, diags[0].Level)
	require.Contains(t, diags[0].Message, "duplicate declaration of 'x'")
}

func TestDuplicateDeclarationFlagsRepeatedParamName(t *testing.T) {
	prog := mustParse(t, "duplicate_param.tek")

	w := NewWalker()
	w.Use(DuplicateDeclaration(diag.WARNING))
	diags := w.Walk(prog)

	require.Len(t, diags, 1)
	require.Contains(t, diags[0].Message, "duplicate parameter 'a'")
}

func TestDuplicateDeclarationAllowsDistinctNamesAcrossBodies(t *testing.T) {
	prog := mustParse(t, "distinct_names_across_bodies.tek")

	w := NewWalker()
	w.Use(DuplicateDeclaration(diag.WARNING))
	diags := w.Walk(prog)

	require.Empty(t, diags)
}

func TestUnreachableAfterReturnFlagsFollowingStatement(t *testing.T) {
	prog := mustParse(t, "unreachable_after_return.tek")

	w := NewWalker()
	w.Use(UnreachableAfterReturn(diag.WARNING))
	diags := w.Walk(prog)

	require.Len(t, diags, 1)
	require.Contains(t, diags[0].Message, "unreachable code")
}

func TestUnreachableAfterReturnIgnoresSeparateBranches(t *testing.T) {
	prog := mustParse(t, "separate_branches_return.tek")

	w := NewWalker()
	w.Use(UnreachableAfterReturn(diag.WARNING))
	diags := w.Walk(prog)

	require.Empty(t, diags)
}

func TestEmptyBlockBodyFlagsZeroStatementFunction(t *testing.T) {
	fn := &ast.FunctionDecl{Name: "f", Sp: token.Span{}}
	prog := &ast.Program{Body: []ast.Statement{fn}}

	w := NewWalker()
	w.Use(EmptyBlockBody(diag.INFO))
	diags := w.Walk(prog)

	require.Len(t, diags, 1)
	require.Equal(t, diag.INFO, diags[0].Level)
	require.Contains(t, diags[0].Message, "empty body")
}

func TestEmptyBlockBodyAllowsNonEmptyBody(t *testing.T) {
	prog := mustParse(t, "return_inside_function.tek")

	w := NewWalker()
	w.Use(EmptyBlockBody(diag.INFO))
	diags := w.Walk(prog)

	require.Empty(t, diags)
}

func TestFallthroughMustBeLastFlagsMidCaseFallthrough(t *testing.T) {
	prog := mustParse(t, "fallthrough_mid_case.tek")

	w := NewWalker()
	w.Use(FallthroughMustBeLast(diag.ERROR))
	diags := w.Walk(prog)

	require.Len(t, diags, 1)
	require.Equal(t, diag.ERROR, diags[0].Level)
	require.Contains(t, diags[0].Message, "fallthrough must be the last statement")
}

func TestFallthroughMustBeLastAllowsTrailingFallthrough(t *testing.T) {
	prog := mustParse(t, "fallthrough_trailing.tek")

	w := NewWalker()
	w.Use(FallthroughMustBeLast(diag.ERROR))
	diags := w.Walk(prog)

	require.Empty(t, diags)
}

func TestLoadRuleConfigRejectsDisablingLockedRules(t *testing.T) {
	for _, id := range []string{declarationsInClassID, invalidControlStatementID} {
		yamlDoc := "rules:\n  " + id + ":\n    enabled: false\n"
		_, err := LoadRuleConfig(strings.NewReader(yamlDoc))
		require.Error(t, err)
	}
}

func TestLoadRuleConfigAllowsDisablingSupplementalRules(t *testing.T) {
	yamlDoc := "rules:\n  " + emptyBlockBodyID + ":\n    enabled: false\n"
	cfg, err := LoadRuleConfig(strings.NewReader(yamlDoc))
	require.NoError(t, err)

	rules := cfg.Build()
	for _, r := range rules {
		require.NotEqual(t, emptyBlockBodyID, r.ID())
	}
}

func TestLoadRuleConfigOverridesSeverity(t *testing.T) {
	yamlDoc := "rules:\n  " + duplicateDeclarationID + ":\n    level: ERROR\n"
	cfg, err := LoadRuleConfig(strings.NewReader(yamlDoc))
	require.NoError(t, err)

	prog := mustParse(t, "duplicate_field.tek")
	w := NewWalker()
	w.Use(cfg.Build()...)
	diags := w.Walk(prog)

	require.Len(t, diags, 1)
	require.Equal(t, diag.ERROR, diags[0].Level)
}

func TestLint(t *testing.T) {
	prog := mustParse(t, "return_outside_function.tek")
	cfg := RuleConfig{}
	diags := Lint(prog, cfg)
	require.NotEmpty(t, diags)
	require.Contains(t, messages(diags)[0], "return is not valid outside a function")
}
