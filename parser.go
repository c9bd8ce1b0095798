package spylang

import "fmt"

// Parse parses a complete SpyLang source string into a Program.
func Parse(src string) (*Program, error) {
	prog, err := parseProgram(src, false)
	if err != nil {
		return nil, err
	}
	return prog, nil
}

// ParseInteractive parses in REPL-friendly mode: a parse that fails only
// because the input ended produces *Error{Kind: DiagIncomplete}, so the
// caller can prompt for continuation lines.
func ParseInteractive(src string) (*Program, error) {
	prog, err := parseProgram(src, true)
	if err != nil {
		return nil, err
	}
	return prog, nil
}

func parseProgram(src string, interactive bool) (*Program, *Error) {
	toks, err := NewLexer(src).Scan()
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, interactive: interactive}
	return p.program()
}

type parser struct {
	toks        []Token
	i           int
	interactive bool
}

func (p *parser) peek() Token { return p.toks[p.i] }
func (p *parser) atEnd() bool { return p.toks[p.i].Type == EOF }
func (p *parser) advance() Token {
	t := p.toks[p.i]
	if !p.atEnd() {
		p.i++
	}
	return t
}

func (p *parser) peekN(n int) Token {
	idx := p.i + n
	if idx >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[idx]
}

func (p *parser) match(tt TokenType) bool {
	if p.peek().Type == tt {
		p.advance()
		return true
	}
	return false
}

// need consumes a token of the given type or fails with an expected-token
// diagnostic. At EOF in interactive mode the diagnostic is DiagIncomplete.
func (p *parser) need(tt TokenType, where string) (Token, *Error) {
	t := p.peek()
	if t.Type == tt {
		return p.advance(), nil
	}
	return Token{}, p.expected(fmt.Sprintf("%s %s, found %s", tt, where, describe(t)), t)
}

func (p *parser) expected(msg string, at Token) *Error {
	kind := DiagExpected
	if p.interactive && at.Type == EOF {
		kind = DiagIncomplete
	}
	return &Error{Kind: kind, Msg: msg, Line: at.Line, Col: at.Col}
}

func describe(t Token) string {
	if t.Type == EOF {
		return "end of input"
	}
	return fmt.Sprintf("'%s'", t.Lexeme)
}

func (p *parser) program() (*Program, *Error) {
	prog := &Program{}
	for {
		for p.match(SEMI) {
		}
		if p.atEnd() {
			return prog, nil
		}
		s, err := p.statement()
		if err != nil {
			return nil, err
		}
		prog.Stmts = append(prog.Stmts, s)
	}
}

func (p *parser) block() (*Block, *Error) {
	open, err := p.need(LCURLY, "to open a block")
	if err != nil {
		return nil, err
	}
	blk := &Block{At: tokenPos(open)}
	for {
		for p.match(SEMI) {
		}
		t := p.peek()
		if t.Type == RCURLY {
			p.advance()
			return blk, nil
		}
		if t.Type == EOF {
			return nil, p.expected(fmt.Sprintf("'}' to close the block opened at line %d, found end of input", open.Line), t)
		}
		s, serr := p.statement()
		if serr != nil {
			return nil, serr
		}
		blk.Stmts = append(blk.Stmts, s)
	}
}

func (p *parser) statement() (Stmt, *Error) {
	t := p.peek()
	switch t.Type {
	case ASSIGN:
		return p.assignStmt()
	case MISSION:
		return p.missionStmt()
	case CHECK:
		return p.checkStmt()
	case EACH:
		return p.eachStmt()
	case CHASE:
		return p.chaseStmt()
	case EXTRACT:
		return p.extractStmt()
	case ABORT:
		p.advance()
		return &AbortStmt{At: tokenPos(t)}, nil
	case PROCEED:
		p.advance()
		return &ProceedStmt{At: tokenPos(t)}, nil
	case FOLLOWUP:
		return nil, p.expected("'followup' without a matching 'check'", t)
	case OTHERWISE:
		return nil, p.expected("'otherwise' without a matching 'check'", t)
	}

	// Rebinding: IDENT '=' expr (but not IDENT '==').
	if t.Type == IDENT && p.peekN(1).Type == EQUALS {
		name := p.advance()
		p.advance() // '='
		v, err := p.expression()
		if err != nil {
			return nil, err
		}
		return &AssignStmt{At: tokenPos(name), Name: name.Lexeme, Value: v, Declare: false}, nil
	}

	x, err := p.expression()
	if err != nil {
		return nil, err
	}
	return &ExprStmt{At: x.Pos(), X: x}, nil
}

func (p *parser) assignStmt() (Stmt, *Error) {
	kw := p.advance() // 'assign'
	name, err := p.need(IDENT, "after 'assign'")
	if err != nil {
		return nil, err
	}
	if _, err := p.need(EQUALS, "after the variable name"); err != nil {
		return nil, err
	}
	v, err := p.expression()
	if err != nil {
		return nil, err
	}
	return &AssignStmt{At: tokenPos(kw), Name: name.Lexeme, Value: v, Declare: true}, nil
}

func (p *parser) missionStmt() (Stmt, *Error) {
	kw := p.advance() // 'mission'
	name, err := p.need(IDENT, "after 'mission'")
	if err != nil {
		return nil, err
	}
	if _, err := p.need(LROUND, "after the mission name"); err != nil {
		return nil, err
	}
	var params []string
	if p.peek().Type != RROUND {
		for {
			par, perr := p.need(IDENT, "in the parameter list")
			if perr != nil {
				return nil, perr
			}
			params = append(params, par.Lexeme)
			if !p.match(COMMA) {
				break
			}
		}
	}
	if _, err := p.need(RROUND, "to close the parameter list"); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &MissionStmt{At: tokenPos(kw), Name: name.Lexeme, Params: params, Body: body}, nil
}

func (p *parser) checkStmt() (Stmt, *Error) {
	kw := p.advance() // 'check'
	stmt := &IfStmt{At: tokenPos(kw)}

	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	stmt.Cases = append(stmt.Cases, IfCase{Cond: cond, Body: body})

	for p.peek().Type == FOLLOWUP {
		p.advance()
		c, cerr := p.expression()
		if cerr != nil {
			return nil, cerr
		}
		b, berr := p.block()
		if berr != nil {
			return nil, berr
		}
		stmt.Cases = append(stmt.Cases, IfCase{Cond: c, Body: b})
	}
	if p.peek().Type == OTHERWISE {
		p.advance()
		b, berr := p.block()
		if berr != nil {
			return nil, berr
		}
		stmt.Otherwise = b
	}
	return stmt, nil
}

func (p *parser) eachStmt() (Stmt, *Error) {
	kw := p.advance() // 'each'
	name, err := p.need(IDENT, "after 'each'")
	if err != nil {
		return nil, err
	}
	if _, err := p.need(IN, "after the loop variable"); err != nil {
		return nil, err
	}
	if _, err := p.need(LROUND, "before the range"); err != nil {
		return nil, err
	}
	start, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(RANGE, "between the range bounds"); err != nil {
		return nil, err
	}
	end, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(RROUND, "after the range"); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &EachStmt{At: tokenPos(kw), Var: name.Lexeme, Start: start, End: end, Body: body}, nil
}

func (p *parser) chaseStmt() (Stmt, *Error) {
	kw := p.advance() // 'chase'
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &ChaseStmt{At: tokenPos(kw), Cond: cond, Body: body}, nil
}

func (p *parser) extractStmt() (Stmt, *Error) {
	kw := p.advance() // 'extract'
	if !startsExpression(p.peek().Type) {
		return &ExtractStmt{At: tokenPos(kw)}, nil
	}
	v, err := p.expression()
	if err != nil {
		return nil, err
	}
	return &ExtractStmt{At: tokenPos(kw), Value: v}, nil
}

// startsExpression reports whether a token can begin an expression, which
// decides if a bare "extract" carries a value.
func startsExpression(tt TokenType) bool {
	switch tt {
	case IDENT, INT, FLOAT, STRING, BOOLEAN, NULL, LROUND, LSQUARE, MINUS, NOT:
		return true
	default:
		return false
	}
}

////////////////////////////////////////////////////////////////////////////////
// expressions, lowest precedence first
////////////////////////////////////////////////////////////////////////////////

func (p *parser) expression() (Expr, *Error) {
	return p.orExpr()
}

func (p *parser) orExpr() (Expr, *Error) {
	left, err := p.andExpr()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == OR {
		op := p.advance()
		right, rerr := p.andExpr()
		if rerr != nil {
			return nil, rerr
		}
		left = &BinaryExpr{At: tokenPos(op), Op: OR, L: left, R: right}
	}
	return left, nil
}

func (p *parser) andExpr() (Expr, *Error) {
	left, err := p.comparison()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == AND {
		op := p.advance()
		right, rerr := p.comparison()
		if rerr != nil {
			return nil, rerr
		}
		left = &BinaryExpr{At: tokenPos(op), Op: AND, L: left, R: right}
	}
	return left, nil
}

func (p *parser) comparison() (Expr, *Error) {
	left, err := p.additive()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().Type {
		case EQEQ, NOTEQ, LESS, LESSEQ, GREATER, GREATEREQ:
			op := p.advance()
			right, rerr := p.additive()
			if rerr != nil {
				return nil, rerr
			}
			left = &BinaryExpr{At: tokenPos(op), Op: op.Type, L: left, R: right}
		default:
			return left, nil
		}
	}
}

func (p *parser) additive() (Expr, *Error) {
	left, err := p.multiplicative()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().Type {
		case PLUS, MINUS:
			op := p.advance()
			right, rerr := p.multiplicative()
			if rerr != nil {
				return nil, rerr
			}
			left = &BinaryExpr{At: tokenPos(op), Op: op.Type, L: left, R: right}
		default:
			return left, nil
		}
	}
}

func (p *parser) multiplicative() (Expr, *Error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().Type {
		case MULT, DIV, MOD:
			op := p.advance()
			right, rerr := p.unary()
			if rerr != nil {
				return nil, rerr
			}
			left = &BinaryExpr{At: tokenPos(op), Op: op.Type, L: left, R: right}
		default:
			return left, nil
		}
	}
}

func (p *parser) unary() (Expr, *Error) {
	t := p.peek()
	if t.Type == MINUS || t.Type == NOT {
		p.advance()
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{At: tokenPos(t), Op: t.Type, X: x}, nil
	}
	return p.postfix()
}

func (p *parser) postfix() (Expr, *Error) {
	x, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().Type {
		case LROUND:
			open := p.advance()
			var args []Expr
			if p.peek().Type != RROUND {
				for {
					a, aerr := p.expression()
					if aerr != nil {
						return nil, aerr
					}
					args = append(args, a)
					if !p.match(COMMA) {
						break
					}
				}
			}
			if _, cerr := p.need(RROUND, "to close the argument list"); cerr != nil {
				return nil, cerr
			}
			x = &CallExpr{At: tokenPos(open), Callee: x, Args: args}
		case LSQUARE:
			open := p.advance()
			idx, ierr := p.expression()
			if ierr != nil {
				return nil, ierr
			}
			if _, cerr := p.need(RSQUARE, "to close the index"); cerr != nil {
				return nil, cerr
			}
			x = &IndexExpr{At: tokenPos(open), Recv: x, Index: idx}
		default:
			return x, nil
		}
	}
}

func (p *parser) primary() (Expr, *Error) {
	t := p.peek()
	switch t.Type {
	case INT:
		p.advance()
		return &IntLit{At: tokenPos(t), Value: t.Literal.(int64)}, nil
	case FLOAT:
		p.advance()
		return &FloatLit{At: tokenPos(t), Value: t.Literal.(float64)}, nil
	case STRING:
		p.advance()
		return &StrLit{At: tokenPos(t), Value: t.Literal.(string)}, nil
	case BOOLEAN:
		p.advance()
		return &BoolLit{At: tokenPos(t), Value: t.Literal.(bool)}, nil
	case NULL:
		p.advance()
		return &NullLit{At: tokenPos(t)}, nil
	case IDENT:
		p.advance()
		return &Ident{At: tokenPos(t), Name: t.Lexeme}, nil
	case LROUND:
		p.advance()
		x, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, cerr := p.need(RROUND, "to close the group"); cerr != nil {
			return nil, cerr
		}
		return x, nil
	case LSQUARE:
		open := p.advance()
		lit := &ListLit{At: tokenPos(open)}
		if p.peek().Type != RSQUARE {
			for {
				e, eerr := p.expression()
				if eerr != nil {
					return nil, eerr
				}
				lit.Elems = append(lit.Elems, e)
				if !p.match(COMMA) {
					break
				}
			}
		}
		if _, cerr := p.need(RSQUARE, "to close the list"); cerr != nil {
			return nil, cerr
		}
		return lit, nil
	}
	return nil, p.expected(fmt.Sprintf("an expression, found %s", describe(t)), t)
}
