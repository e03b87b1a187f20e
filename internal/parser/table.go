package parser

import (
	"github.com/tek-lang/tek/internal/ast"
	"github.com/tek-lang/tek/internal/token"
)

// Precedence levels form the ladder, low to high. The table maps a token
// kind to prefix/infix parse functions plus a binding precedence — a
// value, not a set of virtual methods — grounded on onflow/cadence's
// runtime/parser2 define()/leftBindingPowers registration pattern rather
// than the teacher's switch-based dispatch.
const (
	precLowest         = 0
	precAssignment     = 1  // OP1  =
	precOr             = 2  // OP2  or
	precAnd            = 3  // OP3  and
	precEquality       = 4  // OP4  == != is, is not
	precComparison     = 5  // OP5  < <= > >= is less than, is greater than
	precAdditive       = 6  // OP6  + -
	precMultiplicative = 7  // OP7  * / %
	precExponent       = 8  // OP8  **
	precUnary          = 9  // OP9  - not (prefix only)
	precInstanceOf     = 10 // OP10 instanceof
	precCall           = 11 // OP11 ( ) [ ] .
)

type prefixParseFn func(p *Parser) ast.Expression
type infixParseFn func(p *Parser, left ast.Expression, nextMinPrec int) ast.Expression

type tableEntry struct {
	prefix     prefixParseFn
	infix      infixParseFn
	precedence int
	rightAssoc bool
}

var precedenceTable map[token.LexicalToken]tableEntry

func init() {
	precedenceTable = map[token.LexicalToken]tableEntry{}

	registerPrefix(token.NUMBER, parseLiteral)
	registerPrefix(token.STRING, parseLiteral)
	registerPrefix(token.TRUE, parseLiteral)
	registerPrefix(token.FALSE, parseLiteral)
	registerPrefix(token.NULL, parseLiteral)
	registerPrefix(token.IDENTIFIER, parseIdentifier)
	registerPrefix(token.THIS, parseThis)
	registerPrefix(token.SUPER, parseSuper)
	registerPrefix(token.LPAREN, parseWrapped)
	registerPrefix(token.LBRACKET, parseArray)
	registerPrefix(token.LBRACE, parseObject)
	registerPrefix(token.NEW, parseNew)
	registerPrefix(token.ASYNC, parseAsync)
	registerPrefix(token.MINUS, parseUnary)
	registerPrefix(token.NOT, parseUnary)

	registerInfix(token.ASSIGN, precAssignment, true, parseAssign)

	registerInfix(token.OR, precOr, false, parseBinary)

	registerInfix(token.AND, precAnd, false, parseBinary)

	registerInfix(token.EQ, precEquality, false, parseBinary)
	registerInfix(token.NEQ, precEquality, false, parseBinary)
	registerInfix(token.IS, precEquality, false, parseBinary)
	registerInfix(token.IS_NOT, precEquality, false, parseBinary)

	registerInfix(token.LT, precComparison, false, parseBinary)
	registerInfix(token.LTE, precComparison, false, parseBinary)
	registerInfix(token.GT, precComparison, false, parseBinary)
	registerInfix(token.GTE, precComparison, false, parseBinary)
	registerInfix(token.IS_LESS_THAN, precComparison, false, parseBinary)
	registerInfix(token.IS_GREATER_THAN, precComparison, false, parseBinary)

	registerInfix(token.PLUS, precAdditive, false, parseBinary)
	registerInfix(token.MINUS, precAdditive, false, parseBinary)

	registerInfix(token.STAR, precMultiplicative, false, parseBinary)
	registerInfix(token.SLASH, precMultiplicative, false, parseBinary)
	registerInfix(token.PERCENT, precMultiplicative, false, parseBinary)

	registerInfix(token.STARSTAR, precExponent, true, parseBinary)

	registerInfix(token.INSTANCEOF, precInstanceOf, false, parseInstanceOf)

	registerInfix(token.LPAREN, precCall, false, parseCall)
	registerInfix(token.LBRACKET, precCall, false, parseIndex)
	registerInfix(token.DOT, precCall, false, parseMember)
}

func registerPrefix(kind token.LexicalToken, fn prefixParseFn) {
	e := precedenceTable[kind]
	e.prefix = fn
	precedenceTable[kind] = e
}

func registerInfix(kind token.LexicalToken, precedence int, rightAssoc bool, fn infixParseFn) {
	e := precedenceTable[kind]
	e.infix = fn
	e.precedence = precedence
	e.rightAssoc = rightAssoc
	precedenceTable[kind] = e
}
