// ==============================================================================================
// FILE: parser/parser.go
// ==============================================================================================
// PACKAGE: parser
// PURPOSE: Recursive-descent parser with precedence climbing for expressions (C2). Converts a
//          token stream from the lexer into an *ast.Program. Declaration syntax is uniform —
//          every top-level entry has the shape `name = …` — and the parser distinguishes the
//          declaration kind by the first token of the right-hand side.
// ==============================================================================================

package parser

import (
	"strconv"
	"strings"

	"zen/ast"
	"zen/diag"
	"zen/lexer"
	"zen/token"
)

// Precedence constants determine how tightly an operator binds. Higher
// values bind more tightly.
const (
	_ int = iota
	LOWEST
	LOGIC_OR
	LOGIC_AND
	COMPARE
	RANGE
	SUM
	PRODUCT
	PREFIX
	CALL
)

var precedences = map[token.Type]int{
	token.OR:       LOGIC_OR,
	token.AND:      LOGIC_AND,
	token.EQ:       COMPARE,
	token.NOT_EQ:   COMPARE,
	token.LT:       COMPARE,
	token.GT:       COMPARE,
	token.LT_EQ:    COMPARE,
	token.GT_EQ:    COMPARE,
	token.RANGEEXC: RANGE,
	token.RANGEINC: RANGE,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.STAR:     PRODUCT,
	token.SLASH:    PRODUCT,
	token.LPAREN:   CALL,
	token.LBRACKET: CALL,
	token.DOT:      CALL,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser holds the state of one parse over a token stream.
type Parser struct {
	l   *lexer.Lexer
	bag *diag.Bag

	curToken  token.Token
	peekToken token.Token

	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn
}

// New builds a Parser reading from l, reporting syntax errors into bag.
func New(l *lexer.Lexer, bag *diag.Bag) *Parser {
	p := &Parser{l: l, bag: bag}

	p.prefixParseFns = map[token.Type]prefixParseFn{
		token.IDENT:    p.parseIdentifierOrStd,
		token.INT:      p.parseIntegerLiteral,
		token.FLOAT:    p.parseFloatLiteral,
		token.STRING:   p.parseStringLiteral,
		token.MINUS:    p.parseUnaryExpr,
		token.BANG:     p.parseUnaryExpr,
		token.AMP:      p.parseAddressOf,
		token.STAR:     p.parseDeref,
		token.LPAREN:   p.parseGroupedExpression,
		token.LBRACKET: p.parseArrayLiteral,
		token.COMPTIME: p.parseComptimeExpr,
		token.PIPE:     p.parseConditionalExpr,
		token.DOT:      p.parseEnumVariantExpr,
	}

	p.infixParseFns = map[token.Type]infixParseFn{
		token.PLUS:     p.parseBinaryExpr,
		token.MINUS:    p.parseBinaryExpr,
		token.STAR:     p.parseBinaryExpr,
		token.SLASH:    p.parseBinaryExpr,
		token.EQ:       p.parseBinaryExpr,
		token.NOT_EQ:   p.parseBinaryExpr,
		token.LT:       p.parseBinaryExpr,
		token.GT:       p.parseBinaryExpr,
		token.LT_EQ:    p.parseBinaryExpr,
		token.GT_EQ:    p.parseBinaryExpr,
		token.AND:      p.parseBinaryExpr,
		token.OR:       p.parseBinaryExpr,
		token.RANGEEXC: p.parseRangeExpr,
		token.RANGEINC: p.parseRangeExpr,
		token.LPAREN:   p.parseCallExpr,
		token.LBRACKET: p.parseIndexExpr,
		token.DOT:      p.parseFieldAccessExpr,
	}

	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curIs(t token.Type) bool  { return p.curToken.Type == t }
func (p *Parser) peekIs(t token.Type) bool { return p.peekToken.Type == t }

func (p *Parser) expectPeek(t token.Type) bool {
	if p.peekIs(t) {
		p.nextToken()
		return true
	}
	p.bag.Errorf(diag.KindParse, p.peekToken.Span,
		"expected next token to be %s, got %s instead", t, p.peekToken.Type)
	return false
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curToken.Type]; ok {
		return pr
	}
	return LOWEST
}

// skipToDeclBoundary advances past tokens until the next identifier sits
// directly before an ASSIGN, or EOF is reached — the recovery point after
// a malformed declaration.
func (p *Parser) skipToDeclBoundary() {
	for !p.curIs(token.EOF) {
		if p.curIs(token.IDENT) && p.peekIs(token.ASSIGN) {
			return
		}
		p.nextToken()
	}
}

// ParseProgram parses the full token stream into a Program. Errors are
// reported into the Parser's diag.Bag; a non-nil Program is still
// returned so a caller inspecting diagnostics can still walk what parsed.
func ParseProgram(l *lexer.Lexer, bag *diag.Bag) *ast.Program {
	p := New(l, bag)
	prog := &ast.Program{}
	for !p.curIs(token.EOF) {
		before := p.curToken
		d := p.parseDeclaration()
		if d != nil {
			prog.Declarations = append(prog.Declarations, d)
			p.nextToken()
		}
		if p.curToken == before {
			// parseDeclaration made no progress; avoid looping forever
			// on unrecognized input.
			p.nextToken()
		}
	}
	return prog
}

// parseDeclaration parses one `name = …` top-level entry, or an `extern`
// declaration (which doesn't follow the uniform shape since it has no
// body to distinguish by).
func (p *Parser) parseDeclaration() ast.Declaration {
	if p.curIs(token.EXTERN) {
		return p.parseExternFunctionDecl()
	}
	if !p.curIs(token.IDENT) {
		p.bag.Errorf(diag.KindParse, p.curToken.Span, "expected a declaration, got %s", p.curToken.Type)
		p.skipToDeclBoundary()
		return nil
	}

	name := p.curToken.Literal
	if strings.Contains(name, ".impl") {
		return p.parseImplDeclFromName(name)
	}
	if !p.peekIs(token.ASSIGN) {
		// Stray expression or impl-block name like `Point.impl`.
		if p.peekIs(token.DOT) {
			return p.parseImplDecl(name)
		}
		p.bag.Errorf(diag.KindParse, p.peekToken.Span, "expected '=' after declaration name, got %s", p.peekToken.Type)
		p.skipToDeclBoundary()
		return nil
	}

	p.nextToken() // consume IDENT
	p.nextToken() // consume ASSIGN

	switch {
	case p.curIs(token.LPAREN):
		return p.parseFunctionDecl(name)
	case p.curIs(token.BEHAVIOR):
		return p.parseBehaviorDecl(name)
	case p.curIs(token.COMPTIME):
		return p.parseComptimeDecl()
	case p.curIs(token.LBRACE):
		return p.parseStructDecl(name)
	case p.curIs(token.PIPE):
		return p.parseEnumDecl(name)
	default:
		p.bag.Errorf(diag.KindParse, p.curToken.Span, "unrecognized declaration form starting with %s", p.curToken.Type)
		p.skipToDeclBoundary()
		return nil
	}
}

func (p *Parser) parseImplDecl(typeName string) ast.Declaration {
	p.nextToken() // IDENT -> DOT
	if !p.expectPeek(token.IMPL) {
		p.bag.Errorf(diag.KindParse, p.curToken.Span, "expected 'impl' after '%s.'", typeName)
		p.skipToDeclBoundary()
		return nil
	}
	return p.finishImplDecl(typeName)
}

// parseImplDeclFromName handles the case where the lexer produced the
// whole "Point.impl" as one IDENT (permitted since '.' isn't an
// identifier-part rune, this path is defensive only).
func (p *Parser) parseImplDeclFromName(name string) ast.Declaration {
	typeName := strings.TrimSuffix(name, ".impl")
	return p.finishImplDecl(typeName)
}

func (p *Parser) finishImplDecl(typeName string) ast.Declaration {
	if !p.expectPeek(token.ASSIGN) {
		p.skipToDeclBoundary()
		return nil
	}
	decl := &ast.ImplDecl{TargetType: typeName}

	if p.peekIs(token.IDENT) {
		p.nextToken()
		decl.Behavior = p.curToken.Literal
	}

	if !p.expectPeek(token.LBRACE) {
		p.skipToDeclBoundary()
		return nil
	}
	p.nextToken()
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		if !p.curIs(token.IDENT) {
			p.nextToken()
			continue
		}
		methodName := p.curToken.Literal
		if !p.expectPeek(token.ASSIGN) || !p.expectPeek(token.LPAREN) {
			p.skipToDeclBoundary()
			break
		}
		fn := p.parseFunctionDecl(methodName)
		if fd, ok := fn.(*ast.FunctionDecl); ok {
			decl.Methods = append(decl.Methods, fd)
		}
		p.nextToken()
	}
	return decl
}

func (p *Parser) parseFunctionDecl(name string) ast.Declaration {
	fn := &ast.FunctionDecl{Name: name}
	fn.Params = p.parseParamList()
	if p.peekIs(token.LBRACE) {
		fn.ReturnType = &ast.VoidType{}
	} else {
		p.nextToken()
		fn.ReturnType = p.parseType()
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	fn.Body = p.parseBlockStatement()
	return fn
}

func (p *Parser) parseExternFunctionDecl() ast.Declaration {
	decl := &ast.ExternFunctionDecl{}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	decl.Name = p.curToken.Literal
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	for !p.curIs(token.RPAREN) {
		if p.curIs(token.DOT) && p.peekIs(token.DOT) {
			decl.Variadic = true
			p.nextToken()
			p.nextToken()
			if p.curIs(token.DOT) {
				p.nextToken()
			}
			continue
		}
		decl.ParamTypes = append(decl.ParamTypes, p.parseType())
		p.nextToken()
		if p.curIs(token.COMMA) {
			p.nextToken()
		}
	}
	if p.peekIs(token.ARROW) {
		p.nextToken()
		p.nextToken()
		decl.ReturnType = p.parseType()
	} else {
		decl.ReturnType = &ast.VoidType{}
	}
	return decl
}

func (p *Parser) parseStructDecl(name string) ast.Declaration {
	decl := &ast.StructDecl{Name: name}
	p.nextToken()
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		if !p.curIs(token.IDENT) {
			p.nextToken()
			continue
		}
		field := ast.Param{Name: p.curToken.Literal}
		if !p.expectPeek(token.COLON) {
			return decl
		}
		p.nextToken()
		field.Type = p.parseType()
		decl.Fields = append(decl.Fields, field)
		p.nextToken()
		if p.curIs(token.COMMA) {
			p.nextToken()
		}
	}
	return decl
}

func (p *Parser) parseEnumDecl(name string) ast.Declaration {
	decl := &ast.EnumDecl{Name: name}
	for p.curIs(token.PIPE) {
		p.nextToken()
		if !p.curIs(token.IDENT) {
			break
		}
		v := ast.EnumVariantDecl{Name: p.curToken.Literal}
		if p.peekIs(token.LPAREN) {
			p.nextToken()
			p.nextToken()
			v.Payload = p.parseType()
			if !p.expectPeek(token.RPAREN) {
				return decl
			}
		}
		decl.Variants = append(decl.Variants, v)
		if !p.peekIs(token.PIPE) {
			break
		}
		p.nextToken()
	}
	return decl
}

func (p *Parser) parseBehaviorDecl(name string) ast.Declaration {
	decl := &ast.BehaviorDecl{Name: name}
	if !p.expectPeek(token.LBRACE) {
		return decl
	}
	p.nextToken()
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		if !p.curIs(token.IDENT) {
			p.nextToken()
			continue
		}
		sig := ast.MethodSig{Name: p.curToken.Literal}
		if !p.expectPeek(token.LPAREN) {
			return decl
		}
		p.nextToken()
		for !p.curIs(token.RPAREN) {
			if p.curIs(token.IDENT) && p.curToken.Literal == "self" {
				sig.Params = append(sig.Params, &ast.GenericType{Name: "Self"})
			} else {
				sig.Params = append(sig.Params, p.parseType())
			}
			p.nextToken()
			if p.curIs(token.COMMA) {
				p.nextToken()
			}
		}
		if p.peekIs(token.ARROW) {
			p.nextToken()
			p.nextToken()
			sig.ReturnType = p.parseType()
		} else {
			sig.ReturnType = &ast.VoidType{}
		}
		decl.Methods = append(decl.Methods, sig)
		p.nextToken()
		if p.curIs(token.COMMA) {
			p.nextToken()
		}
	}
	return decl
}

func (p *Parser) parseComptimeDecl() ast.Declaration {
	decl := &ast.ComptimeDecl{}
	if !p.expectPeek(token.LBRACE) {
		return decl
	}
	decl.Body = p.parseBlockStatement()
	return decl
}

func (p *Parser) parseParamList() []ast.Param {
	var params []ast.Param
	if !p.curIs(token.LPAREN) {
		p.bag.Errorf(diag.KindParse, p.curToken.Span, "expected '(', got %s", p.curToken.Type)
		return params
	}
	p.nextToken()
	if p.curIs(token.RPAREN) {
		return params
	}
	for {
		param := ast.Param{Name: p.curToken.Literal}
		if !p.expectPeek(token.COLON) {
			return params
		}
		p.nextToken()
		param.Type = p.parseType()
		params = append(params, param)
		if !p.peekIs(token.COMMA) {
			break
		}
		p.nextToken()
		p.nextToken()
	}
	if !p.expectPeek(token.RPAREN) {
		return params
	}
	return params
}

// ----------------------------------------------------------------------------------------------
// TYPES
// ----------------------------------------------------------------------------------------------

var primitiveInts = map[string][2]int{
	"i8": {8, 1}, "i16": {16, 1}, "i32": {32, 1}, "i64": {64, 1},
	"u8": {8, 0}, "u16": {16, 0}, "u32": {32, 0}, "u64": {64, 0},
}

func (p *Parser) parseType() ast.Type {
	switch {
	case p.curIs(token.STAR):
		p.nextToken()
		return &ast.PointerType{Elem: p.parseType()}
	case p.curIs(token.LBRACKET):
		p.nextToken()
		if p.curIs(token.RBRACKET) {
			p.nextToken()
			return &ast.ArrayType{Elem: p.parseType()}
		}
		sizeLit := p.curToken.Literal
		size, _ := strconv.ParseInt(sizeLit, 0, 64)
		if !p.expectPeek(token.RBRACKET) {
			return &ast.VoidType{}
		}
		p.nextToken()
		return &ast.FixedArrayType{Elem: p.parseType(), Size: size}
	case p.curIs(token.IDENT):
		return p.parseNamedType()
	default:
		p.bag.Errorf(diag.KindParse, p.curToken.Span, "expected a type, got %s", p.curToken.Type)
		return &ast.VoidType{}
	}
}

func (p *Parser) parseNamedType() ast.Type {
	name := p.curToken.Literal
	switch name {
	case "bool":
		return &ast.BoolType{}
	case "string":
		return &ast.StringType{}
	case "void":
		return &ast.VoidType{}
	case "f32":
		return &ast.FloatType{Width: 32}
	case "f64":
		return &ast.FloatType{Width: 64}
	}
	if wd, ok := primitiveInts[name]; ok {
		return &ast.IntType{Width: wd[0], Signed: wd[1] == 1}
	}
	if name == "Result" && p.peekIs(token.LT) {
		p.nextToken()
		p.nextToken()
		ok := p.parseType()
		if !p.expectPeek(token.COMMA) {
			return &ast.VoidType{}
		}
		p.nextToken()
		errT := p.parseType()
		if !p.expectPeek(token.GT) {
			return &ast.VoidType{}
		}
		return &ast.ResultType{Ok: ok, Err: errT}
	}
	if name == "Option" && p.peekIs(token.LT) {
		p.nextToken()
		p.nextToken()
		elem := p.parseType()
		if !p.expectPeek(token.GT) {
			return &ast.VoidType{}
		}
		return &ast.OptionType{Elem: elem}
	}
	if p.peekIs(token.LT) {
		p.nextToken()
		p.nextToken()
		var args []ast.Type
		args = append(args, p.parseType())
		for p.peekIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			args = append(args, p.parseType())
		}
		if !p.expectPeek(token.GT) {
			return &ast.VoidType{}
		}
		return &ast.GenericType{Name: name, Args: args}
	}
	return &ast.StructType{Name: name}
}

// ----------------------------------------------------------------------------------------------
// STATEMENTS
// ----------------------------------------------------------------------------------------------

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	block := &ast.BlockStatement{}
	p.nextToken()
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.nextToken()
	}
	if p.curIs(token.EOF) {
		p.bag.Errorf(diag.KindParse, p.curToken.Span, "expected '}' to close block, got EOF")
	}
	return block
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.RETURN:
		return p.parseReturnStatement()
	case token.BREAK:
		return p.parseBreakStatement()
	case token.CONTINUE:
		return p.parseContinueStatement()
	case token.LOOP:
		return p.parseLoopStatement()
	case token.COMPTIME:
		return p.parseComptimeBlockStatement()
	case token.STAR:
		return p.parsePointerAssignStatement()
	case token.IDENT:
		switch p.peekToken.Type {
		case token.DECLINF:
			return p.parseVarDecl(ast.InferredImmutable)
		case token.DECLMUT:
			return p.parseVarDecl(ast.InferredMutable)
		case token.WALRUS2:
			return p.parseVarDecl(ast.ExplicitMutable)
		case token.COLON:
			return p.parseVarDecl(ast.ExplicitImmutable)
		case token.ASSIGN:
			return p.parseAssignStatement()
		}
		fallthrough
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnStatement{}
	if p.peekIs(token.RBRACE) || p.peekIs(token.EOF) {
		return stmt
	}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	return stmt
}

func (p *Parser) parseBreakStatement() ast.Statement {
	stmt := &ast.BreakStatement{}
	if p.peekIs(token.IDENT) {
		p.nextToken()
		stmt.Label = p.curToken.Literal
	}
	return stmt
}

func (p *Parser) parseContinueStatement() ast.Statement {
	stmt := &ast.ContinueStatement{}
	if p.peekIs(token.IDENT) {
		p.nextToken()
		stmt.Label = p.curToken.Literal
	}
	return stmt
}

func (p *Parser) parseComptimeBlockStatement() ast.Statement {
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	return &ast.ComptimeBlockStatement{Body: p.parseBlockStatement()}
}

func (p *Parser) parsePointerAssignStatement() ast.Statement {
	p.nextToken()
	target := p.parseExpression(PREFIX)
	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.nextToken()
	value := p.parseExpression(LOWEST)
	return &ast.PointerAssignStatement{Target: target, Value: value}
}

func (p *Parser) parseAssignStatement() ast.Statement {
	name := p.curToken.Literal
	p.nextToken() // IDENT -> ASSIGN
	p.nextToken()
	return &ast.AssignStatement{Name: name, Value: p.parseExpression(LOWEST)}
}

func (p *Parser) parseVarDecl(kind ast.DeclKind) ast.Statement {
	name := p.curToken.Literal
	stmt := &ast.VarDeclStatement{Name: name, Kind: kind}

	switch kind {
	case ast.InferredImmutable:
		p.nextToken() // IDENT -> :=
		p.nextToken()
	case ast.InferredMutable:
		p.nextToken() // IDENT -> ::=
		p.nextToken()
	case ast.ExplicitImmutable:
		p.nextToken() // IDENT -> :
		p.nextToken()
		stmt.DeclaredType = p.parseType()
		if !p.expectPeek(token.ASSIGN) {
			return stmt
		}
		p.nextToken()
	case ast.ExplicitMutable:
		p.nextToken() // IDENT -> ::
		p.nextToken()
		stmt.DeclaredType = p.parseType()
		if !p.expectPeek(token.ASSIGN) {
			return stmt
		}
		p.nextToken()
	}
	stmt.Init = p.parseExpression(LOWEST)
	return stmt
}

func (p *Parser) parseLoopStatement() ast.Statement {
	stmt := &ast.LoopStatement{}
	p.nextToken()
	if p.curIs(token.IDENT) && p.peekIs(token.COLON) {
		stmt.Label = p.curToken.Literal
		p.nextToken()
		p.nextToken()
	}

	switch {
	case p.curIs(token.LBRACE):
		stmt.Kind = ast.LoopInfinite
	case p.curIs(token.IDENT) && p.peekIs(token.IN):
		stmt.Kind = ast.LoopIterator
		stmt.BoundVar = p.curToken.Literal
		p.nextToken() // IDENT -> in
		p.nextToken()
		stmt.Iterable = p.parseExpression(LOWEST)
		p.nextToken()
	default:
		stmt.Kind = ast.LoopCondition
		stmt.Condition = p.parseExpression(LOWEST)
		p.nextToken()
	}

	if !p.curIs(token.LBRACE) {
		p.bag.Errorf(diag.KindParse, p.curToken.Span, "expected '{' to start loop body, got %s", p.curToken.Type)
		return stmt
	}
	stmt.Body = p.parseBlockStatement()
	return stmt
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	return &ast.ExpressionStatement{Expr: expr}
}

// ----------------------------------------------------------------------------------------------
// EXPRESSIONS
// ----------------------------------------------------------------------------------------------

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.bag.Errorf(diag.KindParse, p.curToken.Span, "no prefix parse function for %s", p.curToken.Type)
		return nil
	}
	left := prefix()

	for !p.peekIs(token.EOF) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIdentifierOrStd() ast.Expression {
	name := p.curToken.Literal
	if p.peekIs(token.LBRACE) && looksLikeStructLiteral(p) {
		return p.parseStructLiteral(name)
	}
	return &ast.Identifier{Name: name}
}

// looksLikeStructLiteral disambiguates `Name { field: expr }` from a
// block following a bare identifier (e.g. a loop body): only the former
// starts with an uppercase letter, matching the struct-naming convention
// the checker and irgen both assume elsewhere.
func looksLikeStructLiteral(p *Parser) bool {
	return p.curToken.Literal != "" && p.curToken.Literal[0] >= 'A' && p.curToken.Literal[0] <= 'Z'
}

// parseEnumVariantExpr parses a bare `.Variant` or `.Variant(payload)`
// construction expression. The enum name isn't known until the checker
// resolves the variant against the expected type, mirroring
// EnumVariantPattern's own EnumName convention.
func (p *Parser) parseEnumVariantExpr() ast.Expression {
	p.nextToken() // consume '.'
	expr := &ast.EnumVariantExpr{Variant: p.curToken.Literal}
	if p.peekIs(token.LPAREN) {
		p.nextToken()
		p.nextToken()
		expr.Payload = p.parseExpression(LOWEST)
		if !p.expectPeek(token.RPAREN) {
			return expr
		}
	}
	return expr
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	val, err := strconv.ParseInt(p.curToken.Literal, 0, 64)
	if err != nil {
		p.bag.Errorf(diag.KindParse, p.curToken.Span, "could not parse %q as integer", p.curToken.Literal)
		return nil
	}
	return &ast.IntegerLiteral{Value: val}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	val, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.bag.Errorf(diag.KindParse, p.curToken.Span, "could not parse %q as float", p.curToken.Literal)
		return nil
	}
	return &ast.FloatLiteral{Value: val}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	lit := p.curToken.Literal
	if strings.Contains(lit, "${") {
		return p.parseStringInterp(lit)
	}
	return &ast.StringLiteral{Value: lit}
}

// parseStringInterp splits a scanned string literal's raw text on
// "${...}" fragments. The lexer itself doesn't tokenize interpolation
// specially — it hands back one STRING token with the delimiters intact —
// so the split happens here, each embedded expression re-lexed standalone.
func (p *Parser) parseStringInterp(raw string) ast.Expression {
	interp := &ast.StringInterpExpr{}
	rest := raw
	for {
		start := strings.Index(rest, "${")
		if start < 0 {
			if rest != "" {
				interp.Parts = append(interp.Parts, ast.InterpPart{Literal: rest})
			}
			break
		}
		if start > 0 {
			interp.Parts = append(interp.Parts, ast.InterpPart{Literal: rest[:start]})
		}
		end := strings.Index(rest[start:], "}")
		if end < 0 {
			break
		}
		exprSrc := rest[start+2 : start+end]
		sub := New(lexer.New(exprSrc), p.bag)
		interp.Parts = append(interp.Parts, ast.InterpPart{Expr: sub.parseExpression(LOWEST)})
		rest = rest[start+end+1:]
	}
	return interp
}

func (p *Parser) parseUnaryExpr() ast.Expression {
	op := p.curToken.Literal
	p.nextToken()
	return &ast.UnaryExpr{Op: op, Operand: p.parseExpression(PREFIX)}
}

func (p *Parser) parseAddressOf() ast.Expression {
	p.nextToken()
	return &ast.AddressOfExpr{Operand: p.parseExpression(PREFIX)}
}

func (p *Parser) parseDeref() ast.Expression {
	p.nextToken()
	return &ast.DerefExpr{Operand: p.parseExpression(PREFIX)}
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return expr
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	return &ast.ArrayLiteralExpr{Elements: p.parseExpressionList(token.RBRACKET)}
}

func (p *Parser) parseExpressionList(end token.Type) []ast.Expression {
	var list []ast.Expression
	if p.peekIs(end) {
		p.nextToken()
		return list
	}
	p.nextToken()
	list = append(list, p.parseExpression(LOWEST))
	for p.peekIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		list = append(list, p.parseExpression(LOWEST))
	}
	if !p.expectPeek(end) {
		return nil
	}
	return list
}

func (p *Parser) parseComptimeExpr() ast.Expression {
	p.nextToken()
	return p.parseExpression(PREFIX)
}

func (p *Parser) parseStructLiteral(name string) ast.Expression {
	lit := &ast.StructLiteralExpr{TypeName: name}
	if !p.expectPeek(token.LBRACE) {
		return lit
	}
	if p.peekIs(token.RBRACE) {
		p.nextToken()
		return lit
	}
	p.nextToken()
	for {
		if !p.curIs(token.IDENT) {
			break
		}
		fieldName := p.curToken.Literal
		if !p.expectPeek(token.COLON) {
			break
		}
		p.nextToken()
		val := p.parseExpression(LOWEST)
		lit.Fields = append(lit.Fields, ast.StructFieldInit{Name: fieldName, Value: val})
		if !p.peekIs(token.COMMA) {
			break
		}
		p.nextToken()
		p.nextToken()
	}
	if !p.expectPeek(token.RBRACE) {
		return lit
	}
	return lit
}

func (p *Parser) parseBinaryExpr(left ast.Expression) ast.Expression {
	op := p.curToken.Literal
	prec := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(prec)
	return &ast.BinaryExpr{Op: op, Left: left, Right: right}
}

func (p *Parser) parseRangeExpr(left ast.Expression) ast.Expression {
	inclusive := p.curIs(token.RANGEINC)
	p.nextToken()
	right := p.parseExpression(RANGE)
	return &ast.RangeExpr{Start: left, End: right, Inclusive: inclusive}
}

func (p *Parser) parseCallExpr(callee ast.Expression) ast.Expression {
	return &ast.CallExpr{Callee: callee, Args: p.parseExpressionList(token.RPAREN)}
}

func (p *Parser) parseIndexExpr(left ast.Expression) ast.Expression {
	p.nextToken()
	idx := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return &ast.IndexExpr{Object: left, Index: idx}
}

func (p *Parser) parseFieldAccessExpr(left ast.Expression) ast.Expression {
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	return &ast.FieldAccessExpr{Object: left, Field: p.curToken.Literal}
}

// parseConditionalExpr parses the arms of a conditional starting at the
// first `|`: `| pat [guard] => body`, repeated. It never sets Scrutinee.
// A `-> bind` is read only after an enum-variant pattern, and a guard is
// recognized only when the token after the pattern is an identifier.
func (p *Parser) parseConditionalExpr() ast.Expression {
	cond := &ast.ConditionalExpr{}
	for p.curIs(token.PIPE) {
		p.nextToken()
		arm := &ast.MatchArm{Pattern: p.parsePattern()}
		if p.peekIs(token.FATARROW) {
			p.nextToken()
		} else if p.peekIs(token.IDENT) {
			// guard expression before '=>'
			p.nextToken()
			arm.Guard = p.parseExpression(LOWEST)
			if !p.expectPeek(token.FATARROW) {
				return cond
			}
		}
		p.nextToken()
		arm.Body = p.parseExpression(LOWEST)
		cond.Arms = append(cond.Arms, arm)
		if p.peekIs(token.PIPE) {
			p.nextToken()
		} else {
			break
		}
	}
	return cond
}

// ----------------------------------------------------------------------------------------------
// PATTERNS
// ----------------------------------------------------------------------------------------------

func (p *Parser) parsePattern() ast.Pattern {
	pat := p.parsePrimaryPattern()
	for p.peekIs(token.PIPE) {
		p.nextToken()
		p.nextToken()
		next := p.parsePrimaryPattern()
		if or, ok := pat.(*ast.OrPattern); ok {
			or.Alternatives = append(or.Alternatives, next)
		} else {
			pat = &ast.OrPattern{Alternatives: []ast.Pattern{pat, next}}
		}
	}
	return pat
}

func (p *Parser) parsePrimaryPattern() ast.Pattern {
	switch {
	case p.curIs(token.IDENT) && p.curToken.Literal == "_":
		return &ast.WildcardPattern{}
	case p.curIs(token.DOT):
		return p.parseEnumVariantPattern()
	case p.curIs(token.IDENT) && p.peekIs(token.LBRACE):
		return p.parseStructPattern()
	case p.curIs(token.IDENT):
		name := p.curToken.Literal
		if p.peekIs(token.RANGEEXC) || p.peekIs(token.RANGEINC) {
			return p.parseRangePattern(&ast.Identifier{Name: name})
		}
		return &ast.IdentPattern{Name: name}
	case p.curIs(token.INT), p.curIs(token.FLOAT), p.curIs(token.STRING):
		val := p.parseExpression(LOWEST)
		if p.peekIs(token.RANGEEXC) || p.peekIs(token.RANGEINC) {
			return p.parseRangePattern(val)
		}
		return &ast.LiteralPattern{Value: val}
	default:
		return &ast.WildcardPattern{}
	}
}

func (p *Parser) parseRangePattern(start ast.Expression) ast.Pattern {
	inclusive := p.peekIs(token.RANGEINC)
	p.nextToken()
	p.nextToken()
	end := p.parseExpression(RANGE)
	return &ast.RangePattern{Start: start, End: end, Inclusive: inclusive}
}

func (p *Parser) parseEnumVariantPattern() ast.Pattern {
	p.nextToken() // consume '.'
	pat := &ast.EnumVariantPattern{Variant: p.curToken.Literal}
	if p.peekIs(token.LPAREN) {
		p.nextToken()
		p.nextToken()
		pat.Inner = p.parsePattern()
		if !p.expectPeek(token.RPAREN) {
			return pat
		}
	}
	if p.peekIs(token.ARROW) {
		p.nextToken()
		p.nextToken()
		pat.Binding = p.curToken.Literal
	}
	return pat
}

func (p *Parser) parseStructPattern() ast.Pattern {
	pat := &ast.StructPattern{Name: p.curToken.Literal, Fields: map[string]ast.Pattern{}}
	if !p.expectPeek(token.LBRACE) {
		return pat
	}
	p.nextToken()
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		if !p.curIs(token.IDENT) {
			p.nextToken()
			continue
		}
		name := p.curToken.Literal
		if !p.expectPeek(token.COLON) {
			break
		}
		p.nextToken()
		pat.Fields[name] = p.parsePattern()
		p.nextToken()
		if p.curIs(token.COMMA) {
			p.nextToken()
		}
	}
	return pat
}
