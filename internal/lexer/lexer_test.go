package lexer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tek-lang/tek/internal/token"
)

// readFixture loads a .tek program from testdata, matching the corpus's
// habit (hashicorp/terraform's command package) of keeping fixtures next
// to the test that exercises them instead of inlining source as a string
// literal.
func readFixture(t *testing.T, name string) string {
	t.Helper()
	src, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(src)
}

func kinds(toks []token.Token) []token.LexicalToken {
	out := make([]token.LexicalToken, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenizeBasic(t *testing.T) {
	result, diags := Tokenize(readFixture(t, "basic.tek"))
	require.Empty(t, diags)

	require.Equal(t, []token.LexicalToken{
		token.FUNCTION, token.IDENTIFIER, token.LPAREN, token.IDENTIFIER,
		token.COMMA, token.IDENTIFIER, token.RPAREN, token.NEWLINE,
		token.INDENT,
		token.RETURN, token.IDENTIFIER, token.PLUS, token.IDENTIFIER, token.NEWLINE,
		token.OUTDENT,
		token.EOF,
	}, kinds(result.Tokens))
}

func TestTokenizeEmptyInput(t *testing.T) {
	result, diags := Tokenize(readFixture(t, "empty.tek"))
	require.Empty(t, diags)
	require.Equal(t, []token.LexicalToken{token.EOF}, kinds(result.Tokens))
}

func TestTokenizeIndentOutdentBalance(t *testing.T) {
	result, _ := Tokenize(readFixture(t, "indent_outdent_balance.tek"))

	var indents, outdents int
	for _, tok := range result.Tokens {
		switch tok.Kind {
		case token.INDENT:
			indents++
		case token.OUTDENT:
			outdents++
		}
	}
	require.Equal(t, indents, outdents)
	require.Equal(t, token.EOF, result.Tokens[len(result.Tokens)-1].Kind)
}

func TestTokenizeTrailingOutdentsOnUnindentedLastLine(t *testing.T) {
	result, _ := Tokenize(readFixture(t, "trailing_outdent_unindented_last_line.tek"))
	last := result.Tokens[len(result.Tokens)-1]
	secondLast := result.Tokens[len(result.Tokens)-2]
	require.Equal(t, token.EOF, last.Kind)
	require.Equal(t, token.OUTDENT, secondLast.Kind)
}

func TestTokenizeCommentIsolation(t *testing.T) {
	result, diags := Tokenize(readFixture(t, "comment_isolation.tek"))
	require.Empty(t, diags)

	for _, tok := range result.Tokens {
		require.NotEqual(t, token.COMMENT, tok.Kind)
	}
	require.Len(t, result.Comments, 2)
	require.Equal(t, "# a top comment", result.Comments[0].Lexeme)
	require.Equal(t, "# trailing", result.Comments[1].Lexeme)
}

func TestTokenizeMultiWordComparisonOperators(t *testing.T) {
	cases := []struct {
		name    string
		fixture string
		want    token.LexicalToken
		lex     string
	}{
		{"is not", "multiword_is_not.tek", token.IS_NOT, "is not"},
		{"is less than", "multiword_is_less_than.tek", token.IS_LESS_THAN, "is less than"},
		{"is greater than", "multiword_is_greater_than.tek", token.IS_GREATER_THAN, "is greater than"},
		{"bare is", "multiword_bare_is.tek", token.IS, "is"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, diags := Tokenize(readFixture(t, tc.fixture))
			require.Empty(t, diags)
			require.Equal(t, tc.want, result.Tokens[1].Kind)
			require.Equal(t, tc.lex, result.Tokens[1].Lexeme)
		})
	}
}

func TestTokenizeIsLessThanSpansAllThreeWords(t *testing.T) {
	result, diags := Tokenize(readFixture(t, "is_less_than_spans.tek"))
	require.Empty(t, diags)

	var tok token.Token
	for _, tk := range result.Tokens {
		if tk.Kind == token.IS_LESS_THAN {
			tok = tk
		}
	}
	require.Equal(t, "is less than", tok.Lexeme)
	require.Equal(t, 0, tok.Span.Start.Line)
	require.Equal(t, 0, tok.Span.End.Line)
}

func TestTokenizeBareWordGuard(t *testing.T) {
	cases := []struct {
		word    string
		fixture string
		want    string
	}{
		{"less", "bare_word_less.tek", "did you mean 'is less than'?"},
		{"greater", "bare_word_greater.tek", "did you mean 'is greater than'?"},
		{"than", "bare_word_than.tek", "did you mean 'is less than'?"},
	}
	for _, tc := range cases {
		t.Run(tc.word, func(t *testing.T) {
			_, diags := Tokenize(readFixture(t, tc.fixture))
			require.True(t, diags.HasErrors())
			require.Len(t, diags[0].Info, 1)
			require.Equal(t, tc.want, diags[0].Info[0].Message)
		})
	}
}

func TestTokenizeNumberLiteral(t *testing.T) {
	result, diags := Tokenize(readFixture(t, "number_literal.tek"))
	require.Empty(t, diags)
	var lit token.Token
	for _, tk := range result.Tokens {
		if tk.Kind == token.NUMBER {
			lit = tk
		}
	}
	require.Equal(t, "1_000.25", lit.Lexeme)
}

func TestTokenizeStringLiteral(t *testing.T) {
	result, diags := Tokenize(readFixture(t, "string_literal.tek"))
	require.Empty(t, diags)
	var lit token.Token
	for _, tk := range result.Tokens {
		if tk.Kind == token.STRING {
			lit = tk
		}
	}
	require.Equal(t, `'hi \'there\''`, lit.Lexeme)
}

func TestTokenizeUnterminatedString(t *testing.T) {
	_, diags := Tokenize(readFixture(t, "unterminated_string.tek"))
	require.True(t, diags.HasErrors())
}

func TestTokenizeMixedIndentationRejected(t *testing.T) {
	_, diags := Tokenize(readFixture(t, "mixed_indentation.tek"))
	require.True(t, diags.HasErrors())
}

func TestTokenizeUnexpectedCharacter(t *testing.T) {
	_, diags := Tokenize(readFixture(t, "unexpected_character.tek"))
	require.True(t, diags.HasErrors())
}
