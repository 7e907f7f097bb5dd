package lang

import (
	"context"
	"log/slog"
	"strconv"
)

// Parse builds a [Program] from a token sequence produced by [Lex].
// It fails with [ErrParse] at the first token the grammar cannot accept.
func Parse(ctx context.Context, toks []Token, opts ...Option) (*Program, error) {
	o := makeOptions(opts...)

	if len(toks) == 0 || toks[len(toks)-1].Kind != KindEOF {
		toks = append(toks, Token{Kind: KindEOF})
	}

	p := &parser{toks: toks, maxDepth: o.maxDepth}

	prog, err := p.parseProgram()
	if err != nil {
		return nil, err
	}

	o.logger.TraceContext(ctx, "parse complete",
		slog.Int("token_count", len(toks)),
		slog.Int("statement_count", len(prog.Statements)))

	return prog, nil
}

// parseSource lexes and parses src without consulting the cache.
func parseSource(ctx context.Context, src string, opts ...Option) (*Program, error) {
	toks, err := Lex(src)
	if err != nil {
		return nil, err
	}

	return Parse(ctx, toks, opts...)
}

// parser holds the parser state.
type parser struct {
	toks     []Token
	pos      int
	depth    int
	maxDepth int
}

func (p *parser) peek() Token { return p.toks[p.pos] }

func (p *parser) peekN(n int) Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}

	return p.toks[p.pos+n]
}

func (p *parser) at(kinds ...Kind) bool {
	k := p.peek().Kind
	for _, want := range kinds {
		if k == want {
			return true
		}
	}

	return false
}

func (p *parser) advance() Token {
	tok := p.toks[p.pos]
	if tok.Kind != KindEOF {
		p.pos++
	}

	return tok
}

// expect consumes a token of kind k or fails describing what was wanted.
func (p *parser) expect(k Kind, what string) (Token, error) {
	if p.peek().Kind != k {
		return Token{}, p.unexpected(what)
	}

	return p.advance(), nil
}

func (p *parser) unexpected(what string) *Error {
	tok := p.peek()

	return ErrParse.WithPosition(tok.Pos).
		Wrapf("expected %s, found %s", what, tok).
		With(slog.String("expected", what), slog.String("found", tok.String()))
}

// enter tracks nesting so pathological input cannot exhaust the stack.
func (p *parser) enter() error {
	p.depth++
	if p.depth > p.maxDepth {
		return ErrParse.WithPosition(p.peek().Pos).
			Wrapf("nesting exceeds maximum depth %d", p.maxDepth)
	}

	return nil
}

func (p *parser) leave() { p.depth-- }

func (p *parser) parseProgram() (*Program, error) {
	prog := &Program{Statements: make([]Stmt, 0)}

	for {
		for p.at(KindSemicolon) {
			p.advance()
		}

		if p.at(KindEOF) {
			return prog, nil
		}

		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}

		prog.Statements = append(prog.Statements, s)
	}
}

func (p *parser) parseStatement() (Stmt, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	switch p.peek().Kind {
	case KindLet:
		return p.parseLet()
	case KindIf:
		return p.parseIf()
	case KindWhile:
		return p.parseWhile()
	case KindFunction:
		return p.parseFunction()
	case KindPrint:
		return p.parsePrint()
	case KindLBrace:
		return p.parseBlock()
	case KindIdent:
		if p.peekN(1).Kind == KindAssign {
			return p.parseAssign()
		}
	}

	if !p.startsExpression() {
		return nil, p.unexpected("statement")
	}

	e, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	return &ExprStmt{Expr: e}, nil
}

func (p *parser) startsExpression() bool {
	return p.at(KindInt, KindFloat, KindString, KindTrue, KindFalse, KindNil,
		KindIdent, KindLParen, KindMinus, KindNot)
}

// parseLet parses: 'let' IDENT '=' expression.
func (p *parser) parseLet() (Stmt, error) {
	pos := p.advance().Pos

	name, err := p.expect(KindIdent, "variable name")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(KindAssign, `"="`); err != nil {
		return nil, err
	}

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	return &LetStmt{Name: name.Text, Value: value, Pos: pos}, nil
}

// parseAssign parses: IDENT '=' expression.
func (p *parser) parseAssign() (Stmt, error) {
	name := p.advance()
	p.advance() // '='

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	return &AssignStmt{Name: name.Text, Value: value, Pos: name.Pos}, nil
}

// parseIf parses: 'if' expression block ('else' (if | block))?.
func (p *parser) parseIf() (*IfStmt, error) {
	pos := p.advance().Pos

	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	s := &IfStmt{Cond: cond, Then: then, Pos: pos}

	if !p.at(KindElse) {
		return s, nil
	}

	p.advance()

	switch {
	case p.at(KindIf):
		if err := p.enter(); err != nil {
			return nil, err
		}
		defer p.leave()

		s.Else, err = p.parseIf()
	case p.at(KindLBrace):
		s.Else, err = p.parseBlock()
	default:
		return nil, p.unexpected(`"if" or "{" after "else"`)
	}

	if err != nil {
		return nil, err
	}

	return s, nil
}

// parseWhile parses: 'while' expression block.
func (p *parser) parseWhile() (Stmt, error) {
	pos := p.advance().Pos

	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &WhileStmt{Cond: cond, Body: body, Pos: pos}, nil
}

// parseFunction parses: 'function' IDENT '(' params ')' block.
func (p *parser) parseFunction() (Stmt, error) {
	pos := p.advance().Pos

	name, err := p.expect(KindIdent, "function name")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(KindLParen, `"("`); err != nil {
		return nil, err
	}

	params := make([]string, 0)
	seen := make(map[string]struct{})

	for !p.at(KindRParen) {
		if len(params) > 0 {
			if _, err := p.expect(KindComma, `"," or ")"`); err != nil {
				return nil, err
			}
		}

		param, err := p.expect(KindIdent, "parameter name")
		if err != nil {
			return nil, err
		}

		if _, dup := seen[param.Text]; dup {
			return nil, ErrParse.WithPosition(param.Pos).
				Wrapf("duplicate parameter %q in function %s", param.Text, name.Text).
				With(slog.String("function", name.Text))
		}

		seen[param.Text] = struct{}{}
		params = append(params, param.Text)
	}

	p.advance() // ')'

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &FunctionStmt{Name: name.Text, Params: params, Body: body, Pos: pos}, nil
}

// parsePrint parses: 'print' expression.
func (p *parser) parsePrint() (Stmt, error) {
	pos := p.advance().Pos

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	return &PrintStmt{Value: value, Pos: pos}, nil
}

// parseBlock parses: '{' statement* '}'.
func (p *parser) parseBlock() (*Block, error) {
	open, err := p.expect(KindLBrace, `"{"`)
	if err != nil {
		return nil, err
	}

	b := &Block{Statements: make([]Stmt, 0), Pos: open.Pos}

	for {
		for p.at(KindSemicolon) {
			p.advance()
		}

		if p.at(KindRBrace) {
			p.advance()

			return b, nil
		}

		if p.at(KindEOF) {
			return nil, p.unexpected(`"}"`)
		}

		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}

		b.Statements = append(b.Statements, s)
	}
}

func (p *parser) parseExpression() (Expr, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	return p.parseLogical()
}

// parseLogical parses left-associative && and ||, which share one level.
func (p *parser) parseLogical() (Expr, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}

	for p.at(KindAnd, KindOr) {
		op := p.advance()

		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}

		left = &LogicalExpr{Op: op.Kind, Left: left, Right: right, Pos: op.Pos}
	}

	return left, nil
}

// binaryLevel parses one left-associative precedence level.
func (p *parser) binaryLevel(next func() (Expr, error), ops ...Kind) (Expr, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}

	for p.at(ops...) {
		op := p.advance()

		right, err := next()
		if err != nil {
			return nil, err
		}

		left = &BinaryExpr{Op: op.Kind, Left: left, Right: right, Pos: op.Pos}
	}

	return left, nil
}

func (p *parser) parseComparison() (Expr, error) {
	return p.binaryLevel(p.parseAdditive,
		KindEq, KindNe, KindLt, KindLe, KindGt, KindGe)
}

func (p *parser) parseAdditive() (Expr, error) {
	return p.binaryLevel(p.parseMultiplicative, KindPlus, KindMinus)
}

func (p *parser) parseMultiplicative() (Expr, error) {
	return p.binaryLevel(p.parseExponent, KindStar, KindSlash, KindPercent)
}

// parseExponent parses right-associative ^: the right operand recurses into
// this same level, so 2^3^2 is 2^(3^2).
func (p *parser) parseExponent() (Expr, error) {
	base, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	if !p.at(KindCaret) {
		return base, nil
	}

	op := p.advance()

	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	exp, err := p.parseExponent()
	if err != nil {
		return nil, err
	}

	return &BinaryExpr{Op: op.Kind, Left: base, Right: exp, Pos: op.Pos}, nil
}

func (p *parser) parseUnary() (Expr, error) {
	if !p.at(KindMinus, KindNot) {
		return p.parseAtom()
	}

	op := p.advance()

	// A negated integer literal is folded so the most negative integer,
	// whose magnitude does not fit, can be written.
	if op.Kind == KindMinus && p.at(KindInt) {
		tok := p.advance()

		n, err := strconv.ParseInt("-"+tok.Text, 10, 64)
		if err != nil {
			return nil, rangeError(tok)
		}

		return &Literal{Value: Integer(n), Pos: op.Pos}, nil
	}

	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	return &UnaryExpr{Op: op.Kind, Operand: operand, Pos: op.Pos}, nil
}

func rangeError(tok Token) *Error {
	return ErrParse.WithPosition(tok.Pos).
		Wrapf("number %s out of range", tok.Text)
}

func (p *parser) parseAtom() (Expr, error) {
	tok := p.peek()

	switch tok.Kind {
	case KindInt:
		p.advance()

		n, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			return nil, rangeError(tok)
		}

		return &Literal{Value: Integer(n), Pos: tok.Pos}, nil

	case KindFloat:
		p.advance()

		f, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return nil, rangeError(tok)
		}

		return &Literal{Value: Float(f), Pos: tok.Pos}, nil

	case KindString:
		p.advance()

		return &Literal{Value: String(tok.Text), Pos: tok.Pos}, nil

	case KindTrue, KindFalse:
		p.advance()

		return &Literal{Value: Boolean(tok.Kind == KindTrue), Pos: tok.Pos}, nil

	case KindNil:
		p.advance()

		return &Literal{Value: Nil{}, Pos: tok.Pos}, nil

	case KindIdent:
		p.advance()

		id := &Identifier{Name: tok.Text, Pos: tok.Pos}

		if !p.at(KindLParen) {
			return id, nil
		}

		return p.parseCall(id)

	case KindLParen:
		p.advance()

		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(KindRParen, `")"`); err != nil {
			return nil, err
		}

		return e, nil
	}

	return nil, p.unexpected("expression")
}

// parseCall parses the argument list following a callee identifier.
func (p *parser) parseCall(callee *Identifier) (Expr, error) {
	p.advance() // '('

	args := make([]Expr, 0)

	for !p.at(KindRParen) {
		if len(args) > 0 {
			if _, err := p.expect(KindComma, `"," or ")"`); err != nil {
				return nil, err
			}
		}

		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		args = append(args, arg)
	}

	p.advance() // ')'

	return &CallExpr{Callee: callee, Args: args, Pos: callee.Pos}, nil
}
