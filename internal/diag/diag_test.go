package diag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tek-lang/tek/internal/token"
)

func span(line int) token.Span {
	return token.Span{
		Start: token.Position{Line: line, Column: 0},
		End:   token.Position{Line: line, Column: 1},
	}
}

func TestListAsErrorReturnsNilForEmptyList(t *testing.T) {
	var l List
	require.NoError(t, l.AsError())

	l = l.Warning(Linter, "unused variable", span(0))
	l = l.Info(Parser, "did you mean 'in'?", span(1))
	require.NoError(t, l.AsError(), "no ERROR-level diagnostic should still yield nil")
}

func TestListAsErrorWrapsEachErrorDiagnostic(t *testing.T) {
	var l List
	l = l.Error(Tokenizer, "unterminated string literal", span(0))
	l = l.Warning(Linter, "unused variable", span(1))
	l = l.Error(Parser, "expected ')' to close call argument list", span(2))

	err := l.AsError()
	require.Error(t, err)
	require.Contains(t, err.Error(), "tokenizer: unterminated string literal")
	require.Contains(t, err.Error(), "parser: expected ')' to close call argument list")
	require.NotContains(t, err.Error(), "unused variable")
}

func TestListHasErrors(t *testing.T) {
	var l List
	require.False(t, l.HasErrors())

	l = l.Warning(Linter, "unused variable", span(0))
	require.False(t, l.HasErrors())

	l = l.Error(Parser, "expected expression", span(1))
	require.True(t, l.HasErrors())
}

func TestListConcatPreservesOrder(t *testing.T) {
	a := List{}.Error(Tokenizer, "first", span(0))
	b := List{}.Error(Parser, "second", span(1))

	got := a.Concat(b)
	require.Len(t, got, 2)
	require.Equal(t, "first", got[0].Message)
	require.Equal(t, "second", got[1].Message)
}

func TestLevelString(t *testing.T) {
	require.Equal(t, "ERROR", ERROR.String())
	require.Equal(t, "WARNING", WARNING.String())
	require.Equal(t, "INFO", INFO.String())
	require.Equal(t, "UNKNOWN", Level(99).String())
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{Level: ERROR, Source: Parser, Message: "expected identifier", Span: span(3)}
	require.Equal(t, "ERROR: [parser] expected identifier at "+d.Span.String(), d.String())
}

func TestDiagnosticWithInfoAppendsWithoutMutatingOriginal(t *testing.T) {
	base := Diagnostic{Level: ERROR, Source: Parser, Message: "expected expression", Span: span(0)}
	withInfo := base.WithInfo("did you mean 'in'?", span(1))

	require.Empty(t, base.Info)
	require.Len(t, withInfo.Info, 1)
	require.Equal(t, "did you mean 'in'?", withInfo.Info[0].Message)
}

func TestListString(t *testing.T) {
	l := List{}.Error(Tokenizer, "bad token", span(0))
	l = l.Warning(Linter, "unreachable code", span(1))

	out := l.String()
	require.Contains(t, out, "bad token")
	require.Contains(t, out, "unreachable code")
	require.Equal(t, 2, strings.Count(out, "\n"))
}
