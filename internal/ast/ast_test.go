package ast_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/tek-lang/tek/internal/ast"
	"github.com/tek-lang/tek/internal/lexer"
	"github.com/tek-lang/tek/internal/parser"
)

// parseStmt loads the named .tek fixture from testdata and returns its
// sole top-level statement, matching the corpus's habit (hashicorp/
// terraform's command package) of keeping fixtures next to the test that
// exercises them instead of inlining source as a string literal.
func parseStmt(t *testing.T, fixture string) ast.Statement {
	t.Helper()
	src, err := os.ReadFile(filepath.Join("testdata", fixture))
	require.NoError(t, err)
	result, lexDiags := lexer.Tokenize(string(src))
	require.Empty(t, lexDiags)
	prog, diags := parser.Parse(result.Tokens)
	require.Empty(t, diags)
	require.Len(t, prog.Body, 1)
	return prog.Body[0]
}

func TestBinaryWalkVisitsOperandsInOrder(t *testing.T) {
	stmt := parseStmt(t, "binary_operands.tek")
	decl := stmt.(*ast.VariableDecl)
	bin := decl.Value.(*ast.Binary)

	var kinds []ast.SyntacticToken
	bin.Walk(func(n ast.Node) { kinds = append(kinds, n.Kind()) })

	require.Equal(t, []ast.SyntacticToken{ast.KindLiteral, ast.KindLiteral}, kinds)
}

func TestFunctionDeclWalkVisitsParamTypesReturnTypeThenBody(t *testing.T) {
	stmt := parseStmt(t, "function_decl_param_types.tek")
	fn := stmt.(*ast.FunctionDecl)

	var kinds []ast.SyntacticToken
	fn.Walk(func(n ast.Node) { kinds = append(kinds, n.Kind()) })

	require.Equal(t, []ast.SyntacticToken{
		ast.KindType, // a's annotation
		ast.KindType, // b's annotation
		ast.KindType, // return type
		ast.KindReturn,
	}, kinds)
}

func TestNewGenericArgsFormANestedTypeTree(t *testing.T) {
	stmt := parseStmt(t, "nested_generic_args.tek")
	decl := stmt.(*ast.VariableDecl)
	newExpr := decl.Value.(*ast.New)
	require.Len(t, newExpr.GenericArgs, 1)

	got := newExpr.GenericArgs[0]
	want := &ast.Type{
		Parts: []string{"Map"},
		Args: []*ast.Type{
			{Parts: []string{"Int"}, Sp: got.Args[0].Sp},
			{Parts: []string{"String"}, Sp: got.Args[1].Sp},
		},
		Sp: got.Sp,
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("generic argument tree mismatch (-want +got):\n%s", diff)
	}
}

func TestClassDeclWalkVisitsExtendsThenStaticThenInstanceBody(t *testing.T) {
	stmt := parseStmt(t, "class_extends_and_body.tek")
	cls := stmt.(*ast.ClassDecl)

	var kinds []ast.SyntacticToken
	cls.Walk(func(n ast.Node) { kinds = append(kinds, n.Kind()) })

	require.Equal(t, []ast.SyntacticToken{
		ast.KindType,         // extends clause
		ast.KindFunctionDecl, // static member, declared after the instance one
		ast.KindVariableDecl, // instance member
	}, kinds)
}
