// Package parser implements the Pratt-style precedence parser: it consumes
// a token stream ending in EOF and produces an AST Program, recovering
// locally from errors via panic-mode synchronisation.
package parser

import (
	hclog "github.com/hashicorp/go-hclog"

	"github.com/tek-lang/tek/internal/ast"
	"github.com/tek-lang/tek/internal/diag"
	"github.com/tek-lang/tek/internal/token"
)

// Option configures a Parse call.
type Option func(*options)

type options struct {
	log hclog.Logger
}

// WithLogger attaches a structured logger; each panic-mode resync is
// traced at hclog.Debug.
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

// Parser is a cursor over a token stream with an explicit precedence
// table; it allocates nothing beyond the AST it returns and its
// diagnostic list.
type Parser struct {
	toks  []token.Token
	pos   int
	diags diag.List
	log   hclog.Logger
}

// Parse consumes tokens (which must end in EOF) and returns the resulting
// Program along with any diagnostics. It never fails outright: a
// malformed construct is dropped and parsing resumes at the next
// statement boundary.
func Parse(toks []token.Token, opts ...Option) (*ast.Program, diag.List) {
	o := resolveOptions(opts)
	if len(toks) == 0 {
		toks = []token.Token{{Kind: token.EOF}}
	}
	p := &Parser{toks: toks, log: o.log}
	return p.parseProgram(), p.diags
}

// ---- cursor mechanics ----

func (p *Parser) cur() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) check(kind token.LexicalToken) bool {
	return p.cur().Kind == kind
}

func (p *Parser) advance() token.Token {
	tok := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) match(kind token.LexicalToken) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

// ignoreNewline skips any run of NEWLINEs at the cursor.
func (p *Parser) ignoreNewline() {
	for p.check(token.NEWLINE) {
		p.advance()
	}
}

// matchIgnoreNewline looks past a run of NEWLINEs; if the following token
// matches kind, it consumes both the newlines and the token and returns
// it. Otherwise the cursor is left untouched.
func (p *Parser) matchIgnoreNewline(kind token.LexicalToken) (token.Token, bool) {
	saved := p.pos
	p.ignoreNewline()
	if p.check(kind) {
		return p.advance(), true
	}
	p.pos = saved
	return token.Token{}, false
}

// expect consumes the current token if it matches kind; otherwise it
// records a diagnostic and leaves the cursor where it is (the caller is
// responsible for synchronising).
func (p *Parser) expect(kind token.LexicalToken, desc string) (token.Token, bool) {
	if p.check(kind) {
		return p.advance(), true
	}
	p.errorUnexpected(desc)
	return token.Token{}, false
}

func (p *Parser) errorUnexpected(desc string) {
	tok := p.cur()
	msg := desc + ", got " + describeToken(tok)
	d := diag.Diagnostic{Level: diag.ERROR, Source: diag.Parser, Message: msg, Span: tok.Span}
	if sug := token.SuggestKeyword(tok.Lexeme); sug != "" {
		d = d.WithInfo("did you mean '"+sug+"'?", tok.Span)
	}
	p.diags = append(p.diags, d)
}

func describeToken(tok token.Token) string {
	if tok.Kind == token.EOF {
		return "end of input"
	}
	return tok.Kind.String()
}

// errorAt records a diagnostic at a specific span with optional info
// annotations pointing at related prior spans.
func (p *Parser) errorAt(span token.Span, message string, infos ...diag.Info) {
	d := diag.Diagnostic{Level: diag.ERROR, Source: diag.Parser, Message: message, Span: span}
	d.Info = infos
	p.diags = append(p.diags, d)
}

// synchronize implements panic-mode recovery: it advances the cursor to
// the next NEWLINE, OUTDENT, or closing bracket, so statement parsing can
// resume at the next boundary. Partial nodes built during the failed
// statement are discarded by the caller.
func (p *Parser) synchronize() {
	p.log.Debug("parser: synchronizing", "at", p.cur().Kind.String())
	for {
		switch p.cur().Kind {
		case token.EOF, token.NEWLINE, token.OUTDENT,
			token.RPAREN, token.RBRACKET, token.RBRACE:
			return
		default:
			p.advance()
		}
	}
}

// endStatement consumes the NEWLINE terminating a single-line statement,
// tolerating EOF/OUTDENT (the last statement in a file or block needs
// neither). Anything else is a synchronisation point.
func (p *Parser) endStatement() {
	switch p.cur().Kind {
	case token.NEWLINE:
		p.advance()
	case token.EOF, token.OUTDENT:
		// nothing to consume
	default:
		p.errorUnexpected("expected end of statement")
		p.synchronize()
		p.ignoreNewline()
	}
}

// parseBody parses `INDENT statement+ OUTDENT`, tolerating a leading run
// of NEWLINEs before the INDENT (the statement-terminating NEWLINE
// precedes the indented block).
func (p *Parser) parseBody(ctxDesc string) []ast.Statement {
	p.ignoreNewline()
	if _, ok := p.expect(token.INDENT, "expected indented "+ctxDesc); !ok {
		p.synchronize()
		return nil
	}
	var body []ast.Statement
	p.ignoreNewline()
	for !p.check(token.OUTDENT) && !p.check(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			body = append(body, stmt)
		}
		p.ignoreNewline()
	}
	p.expect(token.OUTDENT, "expected end of "+ctxDesc)
	return body
}

func bodySpan(fallback token.Span, body []ast.Statement) token.Span {
	if len(body) == 0 {
		return fallback
	}
	return token.Join(fallback, body[0].Span(), body[len(body)-1].Span())
}

// ---- program / statements ----

func (p *Parser) parseProgram() *ast.Program {
	var body []ast.Statement
	p.ignoreNewline()
	for !p.check(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			body = append(body, stmt)
		}
		p.ignoreNewline()
	}
	prog := &ast.Program{Body: body}
	if len(body) > 0 {
		prog.Sp = token.Join(body[0].Span(), body[len(body)-1].Span())
	}
	return prog
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur().Kind {
	case token.VAR:
		return p.parseVariableDecl()
	case token.FUNCTION:
		return p.parseFunctionDecl()
	case token.CLASS:
		return p.parseClassDecl()
	case token.IMPORT:
		return p.parseImportDecl()
	case token.IF:
		return p.parseIf()
	case token.SWITCH:
		return p.parseSwitch()
	case token.FOR:
		return p.parseFor()
	case token.WHILE:
		return p.parseWhile()
	case token.REPEAT:
		return p.parseRepeat()
	case token.TRY:
		return p.parseTry()
	case token.THROW:
		return p.parseThrow()
	case token.RETURN:
		return p.parseReturn()
	case token.BREAK:
		tok := p.advance()
		node := &ast.Break{Sp: tok.Span}
		p.endStatement()
		return node
	case token.CONTINUE:
		tok := p.advance()
		node := &ast.Continue{Sp: tok.Span}
		p.endStatement()
		return node
	case token.FALLTHROUGH:
		tok := p.advance()
		node := &ast.Fallthrough{Sp: tok.Span}
		p.endStatement()
		return node
	default:
		return p.parseExpressionStmt()
	}
}

func (p *Parser) parseVariableDecl() ast.Statement {
	start := p.advance() // 'var'
	nameTok, ok := p.expect(token.IDENTIFIER, "expected identifier after 'var'")
	if !ok {
		p.synchronize()
		p.ignoreNewline()
		return nil
	}

	var typ *ast.Type
	if p.match(token.COLON) {
		typ = p.parseType()
	}

	var stmt ast.Statement
	if p.match(token.ASSIGN) {
		value := p.parseExpression()
		stmt = &ast.VariableDecl{
			Name:  nameTok.Lexeme,
			Type:  typ,
			Value: value,
			Sp:    token.Join(start.Span, nameTok.Span, spanOf(typ), value.Span()),
		}
	} else {
		stmt = &ast.EmptyVariableDecl{
			Name: nameTok.Lexeme,
			Type: typ,
			Sp:   token.Join(start.Span, nameTok.Span, spanOf(typ)),
		}
	}
	p.endStatement()
	return stmt
}

func spanOf(t *ast.Type) token.Span {
	if t == nil {
		return token.Span{}
	}
	return t.Sp
}

func (p *Parser) parseParams() []ast.Param {
	var params []ast.Param
	if p.check(token.RPAREN) {
		return params
	}
	for {
		nameTok, ok := p.expect(token.IDENTIFIER, "expected parameter name")
		if !ok {
			break
		}
		param := ast.Param{Name: nameTok.Lexeme, Sp: nameTok.Span}
		if p.match(token.COLON) {
			param.Type = p.parseType()
			param.Sp = token.Join(nameTok.Span, param.Type.Sp)
		}
		params = append(params, param)
		if !p.match(token.COMMA) {
			break
		}
	}
	return params
}

func (p *Parser) parseFunctionDecl() ast.Statement {
	start := p.advance() // 'function'
	nameTok, ok := p.expect(token.IDENTIFIER, "expected function name")
	if !ok {
		p.synchronize()
		p.ignoreNewline()
		return nil
	}
	if _, ok := p.expect(token.LPAREN, "expected '(' after function name"); !ok {
		p.synchronize()
		p.ignoreNewline()
		return nil
	}
	params := p.parseParams()
	p.expect(token.RPAREN, "expected ')' after parameter list")

	var retType *ast.Type
	if p.match(token.COLON) {
		retType = p.parseType()
	}

	body := p.parseBody("function body")
	return &ast.FunctionDecl{
		Name:       nameTok.Lexeme,
		Params:     params,
		ReturnType: retType,
		Body:       body,
		Sp:         bodySpan(token.Join(start.Span, nameTok.Span), body),
	}
}

func (p *Parser) parseClassDecl() ast.Statement {
	start := p.advance() // 'class'
	nameTok, ok := p.expect(token.IDENTIFIER, "expected class name")
	if !ok {
		p.synchronize()
		p.ignoreNewline()
		return nil
	}

	var extends *ast.Type
	if p.match(token.EXTENDS) {
		extends = p.parseType()
	}

	p.ignoreNewline()
	if _, ok := p.expect(token.INDENT, "expected indented class body"); !ok {
		p.errorAt(p.cur().Span, "expected indented block after class header",
			diag.Info{Message: "class declared here", Span: token.Join(start.Span, nameTok.Span)})
		p.synchronize()
		return &ast.ClassDecl{Name: nameTok.Lexeme, Extends: extends, Sp: token.Join(start.Span, nameTok.Span)}
	}

	var staticBody, instanceBody []ast.Statement
	p.ignoreNewline()
	for !p.check(token.OUTDENT) && !p.check(token.EOF) {
		isStatic := p.match(token.STATIC)
		member := p.parseStatement()
		if member != nil {
			if fd, ok := member.(*ast.FunctionDecl); ok && isStatic {
				fd.IsStatic = true
			}
			if isStatic {
				staticBody = append(staticBody, member)
			} else {
				instanceBody = append(instanceBody, member)
			}
		}
		p.ignoreNewline()
	}
	endTok, _ := p.expect(token.OUTDENT, "expected end of class body")

	return &ast.ClassDecl{
		Name:         nameTok.Lexeme,
		Extends:      extends,
		StaticBody:   staticBody,
		InstanceBody: instanceBody,
		Sp:           token.Join(start.Span, nameTok.Span, endTok.Span),
	}
}

func (p *Parser) parseImportDecl() ast.Statement {
	start := p.advance() // 'import'
	nameTok, ok := p.expect(token.IDENTIFIER, "expected import path")
	if !ok {
		p.synchronize()
		p.ignoreNewline()
		return nil
	}
	path := []string{nameTok.Lexeme}
	last := nameTok
	for p.match(token.DOT) {
		nameTok2, ok := p.expect(token.IDENTIFIER, "expected identifier after '.' in import path")
		if !ok {
			break
		}
		path = append(path, nameTok2.Lexeme)
		last = nameTok2
	}
	node := &ast.ImportDecl{Path: path, Sp: token.Join(start.Span, last.Span)}
	p.endStatement()
	return node
}

func (p *Parser) parseIf() ast.Statement {
	start := p.advance() // 'if'
	cond := p.parseExpression()
	body := p.parseBody("if body")
	node := &ast.If{Condition: cond, Body: body}

	if _, ok := p.matchIgnoreNewline(token.ELSE); ok {
		if p.check(token.IF) {
			nested := p.parseIf()
			node.Else = []ast.Statement{nested}
			node.Sp = token.Join(start.Span, bodySpan(cond.Span(), body), nested.Span())
			return node
		}
		elseBody := p.parseBody("else body")
		node.Else = elseBody
		allStmts := append(append([]ast.Statement{}, body...), elseBody...)
		node.Sp = bodySpan(token.Join(start.Span, cond.Span()), allStmts)
		return node
	}

	node.Sp = bodySpan(token.Join(start.Span, cond.Span()), body)
	return node
}

func (p *Parser) parseSwitch() ast.Statement {
	start := p.advance() // 'switch'
	discriminant := p.parseExpression()
	p.ignoreNewline()
	if _, ok := p.expect(token.INDENT, "expected indented switch body"); !ok {
		p.synchronize()
		return &ast.Switch{Discriminant: discriminant, Sp: token.Join(start.Span, discriminant.Span())}
	}

	var cases []ast.Case
	var defaultBody []ast.Statement
	p.ignoreNewline()
	for p.check(token.CASE) || p.check(token.DEFAULT) {
		if p.check(token.CASE) {
			caseTok := p.advance()
			val := p.parseExpression()
			body := p.parseBody("case body")
			cases = append(cases, ast.Case{Value: val, Body: body, Sp: bodySpan(token.Join(caseTok.Span, val.Span()), body)})
		} else {
			p.advance() // 'default'
			defaultBody = p.parseBody("default body")
		}
		p.ignoreNewline()
	}
	endTok, _ := p.expect(token.OUTDENT, "expected end of switch body")

	return &ast.Switch{
		Discriminant: discriminant,
		Cases:        cases,
		Default:      defaultBody,
		Sp:           token.Join(start.Span, discriminant.Span(), endTok.Span),
	}
}

func (p *Parser) parseFor() ast.Statement {
	start := p.advance() // 'for'
	nameTok, ok := p.expect(token.IDENTIFIER, "expected binding name after 'for'")
	if !ok {
		p.synchronize()
		p.ignoreNewline()
		return nil
	}
	p.expect(token.IN, "expected 'in' after for-loop binding")
	iterable := p.parseExpression()
	body := p.parseBody("for body")
	return &ast.For{
		Binding:  nameTok.Lexeme,
		Iterable: iterable,
		Body:     body,
		Sp:       bodySpan(token.Join(start.Span, nameTok.Span, iterable.Span()), body),
	}
}

func (p *Parser) parseWhile() ast.Statement {
	start := p.advance() // 'while'
	cond := p.parseExpression()
	body := p.parseBody("while body")
	return &ast.While{
		Condition: cond,
		Body:      body,
		Sp:        bodySpan(token.Join(start.Span, cond.Span()), body),
	}
}

func (p *Parser) parseRepeat() ast.Statement {
	start := p.advance() // 'repeat'
	cond := p.parseExpression()
	body := p.parseBody("repeat body")
	return &ast.Repeat{
		Condition: cond,
		Body:      body,
		Sp:        bodySpan(token.Join(start.Span, cond.Span()), body),
	}
}

func (p *Parser) parseTry() ast.Statement {
	start := p.advance() // 'try'
	body := p.parseBody("try body")

	p.ignoreNewline()
	p.expect(token.CATCH, "expected 'catch' after try body")
	nameTok, _ := p.expect(token.IDENTIFIER, "expected identifier after 'catch'")
	catchBody := p.parseBody("catch body")

	var finallyBody []ast.Statement
	if _, ok := p.matchIgnoreNewline(token.FINALLY); ok {
		finallyBody = p.parseBody("finally body")
	}

	allStmts := append(append(append([]ast.Statement{}, body...), catchBody...), finallyBody...)
	return &ast.Try{
		Body:        body,
		CatchName:   nameTok.Lexeme,
		CatchBody:   catchBody,
		FinallyBody: finallyBody,
		Sp:          bodySpan(start.Span, allStmts),
	}
}

func (p *Parser) parseThrow() ast.Statement {
	start := p.advance() // 'throw'
	value := p.parseExpression()
	node := &ast.Throw{Value: value, Sp: token.Join(start.Span, value.Span())}
	p.endStatement()
	return node
}

func (p *Parser) parseReturn() ast.Statement {
	start := p.advance() // 'return'
	node := &ast.Return{Sp: start.Span}
	if !p.isStatementEnd() {
		node.Value = p.parseExpression()
		node.Sp = token.Join(start.Span, node.Value.Span())
	}
	p.endStatement()
	return node
}

func (p *Parser) isStatementEnd() bool {
	switch p.cur().Kind {
	case token.NEWLINE, token.EOF, token.OUTDENT:
		return true
	default:
		return false
	}
}

func (p *Parser) parseExpressionStmt() ast.Statement {
	if p.isStatementEnd() {
		// A stray NEWLINE/OUTDENT/EOF reached statement position: report it
		// and consume one token so the enclosing loop always makes
		// progress (synchronize() is a no-op when cur is already a stop
		// token, which a bare `return` here would turn into a stall).
		p.errorUnexpected("expected statement")
		if !p.check(token.EOF) {
			p.advance()
		}
		p.ignoreNewline()
		return nil
	}
	expr := p.parseExpression()
	node := &ast.ExpressionStmt{Expression: expr, Sp: expr.Span()}
	p.endStatement()
	return node
}

// ---- expressions ----

// parseExpression parses a full expression starting at the lowest
// binding precedence with a registered infix form (assignment).
func (p *Parser) parseExpression() ast.Expression {
	return p.parsePrecedence(precAssignment)
}

func (p *Parser) parsePrecedence(minPrec int) ast.Expression {
	tok := p.cur()
	entry, ok := precedenceTable[tok.Kind]
	if !ok || entry.prefix == nil {
		p.errorUnexpected("expected expression")
		p.advance()
		return &ast.Literal{LiteralKind: ast.LitNull, Sp: tok.Span}
	}
	left := entry.prefix(p)

	for {
		tok = p.cur()
		entry, ok = precedenceTable[tok.Kind]
		if !ok || entry.infix == nil || entry.precedence < minPrec {
			break
		}
		nextMin := entry.precedence + 1
		if entry.rightAssoc {
			nextMin = entry.precedence
		}
		left = entry.infix(p, left, nextMin)
	}
	return left
}

func parseLiteral(p *Parser) ast.Expression {
	tok := p.advance()
	kind := ast.LitNumber
	switch tok.Kind {
	case token.STRING:
		kind = ast.LitString
	case token.TRUE, token.FALSE:
		kind = ast.LitBool
	case token.NULL:
		kind = ast.LitNull
	}
	return &ast.Literal{LiteralKind: kind, Lexeme: tok.Lexeme, Sp: tok.Span}
}

func parseIdentifier(p *Parser) ast.Expression {
	tok := p.advance()
	return &ast.Identifier{Name: tok.Lexeme, Sp: tok.Span}
}

func parseThis(p *Parser) ast.Expression {
	tok := p.advance()
	return &ast.This{Sp: tok.Span}
}

func parseSuper(p *Parser) ast.Expression {
	tok := p.advance()
	return &ast.Super{Sp: tok.Span}
}

func parseWrapped(p *Parser) ast.Expression {
	start := p.advance() // '('
	p.ignoreNewline()
	inner := p.parsePrecedence(precLowest + 1)
	p.ignoreNewline()
	endTok, _ := p.expect(token.RPAREN, "expected ')' to close parenthesised expression")
	return &ast.Wrapped{Inner: inner, Sp: token.Join(start.Span, endTok.Span)}
}

func parseArray(p *Parser) ast.Expression {
	start := p.advance() // '['
	var elements []ast.Expression
	p.ignoreNewline()
	if !p.check(token.RBRACKET) {
		for {
			elements = append(elements, p.parsePrecedence(precLowest+1))
			p.ignoreNewline()
			if !p.match(token.COMMA) {
				break
			}
			p.ignoreNewline()
		}
	}
	endTok, _ := p.expect(token.RBRACKET, "expected ']' to close array literal")
	return &ast.Array{Elements: elements, Sp: token.Join(start.Span, endTok.Span)}
}

func parseObject(p *Parser) ast.Expression {
	start := p.advance() // '{'
	var fields []ast.ObjectField
	p.ignoreNewline()
	if !p.check(token.RBRACE) {
		for {
			keyTok, ok := p.expect(token.IDENTIFIER, "expected field name in object literal")
			if !ok {
				break
			}
			p.expect(token.COLON, "expected ':' after object field name")
			value := p.parsePrecedence(precLowest + 1)
			fields = append(fields, ast.ObjectField{Key: keyTok.Lexeme, Value: value})
			p.ignoreNewline()
			if !p.match(token.COMMA) {
				break
			}
			p.ignoreNewline()
		}
	}
	endTok, _ := p.expect(token.RBRACE, "expected '}' to close object literal")
	return &ast.Object{Fields: fields, Sp: token.Join(start.Span, endTok.Span)}
}

// parseNewObject parses the call-precedence expression legal as new's
// target: an identifier or a chain of member expressions with identifier
// leaves.
func (p *Parser) parseNewObject() ast.Expression {
	nameTok, ok := p.expect(token.IDENTIFIER, "expected type name after 'new'")
	if !ok {
		return &ast.Identifier{Sp: p.cur().Span}
	}
	var expr ast.Expression = &ast.Identifier{Name: nameTok.Lexeme, Sp: nameTok.Span}
	for p.check(token.DOT) {
		p.advance()
		propTok, ok := p.expect(token.IDENTIFIER, "expected identifier after '.'")
		if !ok {
			break
		}
		expr = &ast.Member{Object: expr, Property: propTok.Lexeme, Sp: token.Join(expr.Span(), propTok.Span)}
	}
	return expr
}

func parseNew(p *Parser) ast.Expression {
	start := p.advance() // 'new'
	object := p.parseNewObject()

	var generics []*ast.Type
	if p.check(token.LT) {
		p.advance()
		for {
			generics = append(generics, p.parseType())
			if !p.match(token.COMMA) {
				break
			}
		}
		p.expect(token.GT, "expected '>' to close generic argument list")
	}

	if !p.check(token.LPAREN) {
		p.errorAt(p.cur().Span, "expected '(' after new expression's type",
			diag.Info{Message: "type named here", Span: object.Span()})
		return &ast.New{Object: object, GenericArgs: generics, Sp: token.Join(start.Span, object.Span())}
	}
	p.advance() // '('
	var params []ast.Expression
	p.ignoreNewline()
	if !p.check(token.RPAREN) {
		for {
			params = append(params, p.parsePrecedence(precLowest+1))
			p.ignoreNewline()
			if !p.match(token.COMMA) {
				break
			}
			p.ignoreNewline()
		}
	}
	endTok, _ := p.expect(token.RPAREN, "expected ')' to close new expression's argument list")

	return &ast.New{
		Object:      object,
		GenericArgs: generics,
		Params:      params,
		Sp:          token.Join(start.Span, object.Span(), endTok.Span),
	}
}

func parseAsync(p *Parser) ast.Expression {
	start := p.advance() // 'async'
	operand := p.parsePrecedence(precCall)
	return &ast.Async{Operand: operand, Sp: token.Join(start.Span, operand.Span())}
}

func parseUnary(p *Parser) ast.Expression {
	opTok := p.advance()
	operand := p.parsePrecedence(precUnary)
	return &ast.Unary{Operator: opTok.Kind, Operand: operand, Sp: token.Join(opTok.Span, operand.Span())}
}

func parseAssign(p *Parser, left ast.Expression, nextMinPrec int) ast.Expression {
	p.advance() // '='
	switch left.(type) {
	case *ast.Identifier, *ast.Member, *ast.Index:
		// legal assignment target
	default:
		p.errorAt(left.Span(), "invalid assignment target, expected identifier, member, or index expression")
	}
	value := p.parsePrecedence(nextMinPrec)
	return &ast.Assign{Left: left, Value: value, Sp: token.Join(left.Span(), value.Span())}
}

func parseBinary(p *Parser, left ast.Expression, nextMinPrec int) ast.Expression {
	opTok := p.advance()
	right := p.parsePrecedence(nextMinPrec)
	return &ast.Binary{Operator: opTok.Kind, Left: left, Right: right, Sp: token.Join(left.Span(), right.Span())}
}

func parseInstanceOf(p *Parser, left ast.Expression, _ int) ast.Expression {
	p.advance() // 'instanceof'
	typ := p.parseType()
	return &ast.InstanceOf{Object: left, Type: typ, Sp: token.Join(left.Span(), typ.Sp)}
}

func parseCall(p *Parser, left ast.Expression, _ int) ast.Expression {
	p.advance() // '('
	var params []ast.Expression
	p.ignoreNewline()
	if !p.check(token.RPAREN) {
		for {
			params = append(params, p.parsePrecedence(precLowest+1))
			p.ignoreNewline()
			if !p.match(token.COMMA) {
				break
			}
			p.ignoreNewline()
		}
	}
	endTok, _ := p.expect(token.RPAREN, "expected ')' to close call argument list")
	return &ast.Call{Callee: left, Params: params, Sp: token.Join(left.Span(), endTok.Span)}
}

func parseIndex(p *Parser, left ast.Expression, _ int) ast.Expression {
	p.advance() // '['
	idx := p.parsePrecedence(precLowest + 1)
	endTok, _ := p.expect(token.RBRACKET, "expected ']' to close index expression")
	return &ast.Index{Object: left, Index: idx, Sp: token.Join(left.Span(), endTok.Span)}
}

func parseMember(p *Parser, left ast.Expression, _ int) ast.Expression {
	p.advance() // '.'
	propTok, ok := p.expect(token.IDENTIFIER, "expected identifier after '.'")
	if !ok {
		return &ast.Member{Object: left, Sp: left.Span()}
	}
	return &ast.Member{Object: left, Property: propTok.Lexeme, Sp: token.Join(left.Span(), propTok.Span)}
}

// ---- types ----

// parseType parses the mini type grammar: IDENT ('.' IDENT)* ('<' TypeList '>')?
func (p *Parser) parseType() *ast.Type {
	nameTok, ok := p.expect(token.IDENTIFIER, "expected type name")
	if !ok {
		return &ast.Type{Sp: p.cur().Span}
	}
	parts := []string{nameTok.Lexeme}
	last := nameTok
	for p.check(token.DOT) {
		p.advance()
		partTok, ok := p.expect(token.IDENTIFIER, "expected identifier after '.' in type name")
		if !ok {
			break
		}
		parts = append(parts, partTok.Lexeme)
		last = partTok
	}

	typ := &ast.Type{Parts: parts, Sp: token.Join(nameTok.Span, last.Span)}
	if p.check(token.LT) {
		p.advance()
		for {
			typ.Args = append(typ.Args, p.parseType())
			if !p.match(token.COMMA) {
				break
			}
		}
		endTok, _ := p.expect(token.GT, "expected '>' to close generic type argument list")
		typ.Sp = token.Join(typ.Sp, endTok.Span)
	}
	return typ
}
