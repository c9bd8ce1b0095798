package spylang

// evalStmts evaluates a statement list, yielding the value of the last
// statement, or a control signal the moment one fires.
func (ip *Interp) evalStmts(stmts []Stmt, env *Env) (Value, control, *Error) {
	last := Null
	for _, s := range stmts {
		v, ctrl, err := ip.evalStmt(s, env)
		if err != nil {
			return Null, ctrlNone, err
		}
		if ctrl.sig != sigNone {
			return Null, ctrl, nil
		}
		last = v
	}
	return last, ctrlNone, nil
}

func (ip *Interp) evalStmt(s Stmt, env *Env) (Value, control, *Error) {
	switch n := s.(type) {
	case *AssignStmt:
		v, err := ip.evalExpr(n.Value, env)
		if err != nil {
			return Null, ctrlNone, err
		}
		if n.Declare {
			env.Define(n.Name, v)
		} else if !env.Set(n.Name, v) {
			// no binding anywhere: create locally, never in the root
			env.Define(n.Name, v)
		}
		return v, ctrlNone, nil

	case *MissionStmt:
		fn := &Fun{Name: n.Name, Params: n.Params, Body: n.Body, Env: env}
		v := FunVal(fn)
		env.Define(n.Name, v)
		return v, ctrlNone, nil

	case *IfStmt:
		for _, c := range n.Cases {
			cond, err := ip.evalExpr(c.Cond, env)
			if err != nil {
				return Null, ctrlNone, err
			}
			if truthy(cond) {
				return ip.evalStmts(c.Body.Stmts, env)
			}
		}
		if n.Otherwise != nil {
			return ip.evalStmts(n.Otherwise.Stmts, env)
		}
		return Null, ctrlNone, nil

	case *EachStmt:
		start, err := ip.rangeBound(n.Start, env)
		if err != nil {
			return Null, ctrlNone, err
		}
		end, err := ip.rangeBound(n.End, env)
		if err != nil {
			return Null, ctrlNone, err
		}
		loopEnv := NewEnv(env)
		for i := start; i < end; i++ {
			loopEnv.Define(n.Var, Int(i))
			_, ctrl, err := ip.evalStmts(n.Body.Stmts, loopEnv)
			if err != nil {
				return Null, ctrlNone, err
			}
			if ctrl.sig == sigBreak {
				return Null, ctrlNone, nil
			}
			if ctrl.sig == sigReturn {
				return Null, ctrl, nil
			}
			// sigContinue falls through to the next iteration
		}
		return Null, ctrlNone, nil

	case *ChaseStmt:
		for {
			cond, err := ip.evalExpr(n.Cond, env)
			if err != nil {
				return Null, ctrlNone, err
			}
			if !truthy(cond) {
				return Null, ctrlNone, nil
			}
			_, ctrl, err := ip.evalStmts(n.Body.Stmts, env)
			if err != nil {
				return Null, ctrlNone, err
			}
			if ctrl.sig == sigBreak {
				return Null, ctrlNone, nil
			}
			if ctrl.sig == sigReturn {
				return Null, ctrl, nil
			}
		}

	case *ExtractStmt:
		v := Null
		if n.Value != nil {
			var err *Error
			v, err = ip.evalExpr(n.Value, env)
			if err != nil {
				return Null, ctrlNone, err
			}
		}
		return Null, control{sig: sigReturn, val: v, at: n.At}, nil

	case *AbortStmt:
		return Null, control{sig: sigBreak, at: n.At}, nil

	case *ProceedStmt:
		return Null, control{sig: sigContinue, at: n.At}, nil

	case *ExprStmt:
		v, err := ip.evalExpr(n.X, env)
		return v, ctrlNone, err

	default:
		return Null, ctrlNone, rtErr(s.Pos(), "unhandled statement")
	}
}

// rangeBound evaluates one bound of an each range; bounds must be Int.
func (ip *Interp) rangeBound(e Expr, env *Env) (int64, *Error) {
	v, err := ip.evalExpr(e, env)
	if err != nil {
		return 0, err
	}
	if v.Tag != VTInt {
		return 0, rtErr(e.Pos(), "each range bounds must be integers, got %s", tagName(v.Tag))
	}
	return v.asInt(), nil
}

func (ip *Interp) evalExpr(e Expr, env *Env) (Value, *Error) {
	switch n := e.(type) {
	case *IntLit:
		return Int(n.Value), nil
	case *FloatLit:
		return Float(n.Value), nil
	case *StrLit:
		return Str(n.Value), nil
	case *BoolLit:
		return Bool(n.Value), nil
	case *NullLit:
		return Null, nil

	case *Ident:
		v, ok := env.Get(n.Name)
		if !ok {
			return Null, rtErr(n.At, "undefined name '%s'", n.Name)
		}
		return v, nil

	case *ListLit:
		elems := make([]Value, 0, len(n.Elems))
		for _, el := range n.Elems {
			v, err := ip.evalExpr(el, env)
			if err != nil {
				return Null, err
			}
			elems = append(elems, v)
		}
		return List(elems), nil

	case *UnaryExpr:
		x, err := ip.evalExpr(n.X, env)
		if err != nil {
			return Null, err
		}
		return applyUnary(n.Op, x, n.At)

	case *BinaryExpr:
		if n.Op == AND || n.Op == OR {
			l, err := ip.evalExpr(n.L, env)
			if err != nil {
				return Null, err
			}
			if n.Op == AND && !truthy(l) {
				return Bool(false), nil
			}
			if n.Op == OR && truthy(l) {
				return Bool(true), nil
			}
			r, err := ip.evalExpr(n.R, env)
			if err != nil {
				return Null, err
			}
			return Bool(truthy(r)), nil
		}
		l, err := ip.evalExpr(n.L, env)
		if err != nil {
			return Null, err
		}
		r, err := ip.evalExpr(n.R, env)
		if err != nil {
			return Null, err
		}
		return applyBinary(n.Op, l, r, n.At)

	case *CallExpr:
		callee, err := ip.evalExpr(n.Callee, env)
		if err != nil {
			return Null, err
		}
		args := make([]Value, 0, len(n.Args))
		for _, a := range n.Args {
			v, aerr := ip.evalExpr(a, env)
			if aerr != nil {
				return Null, aerr
			}
			args = append(args, v)
		}
		return ip.callValue(callee, args, n.At)

	case *IndexExpr:
		recv, err := ip.evalExpr(n.Recv, env)
		if err != nil {
			return Null, err
		}
		idx, err := ip.evalExpr(n.Index, env)
		if err != nil {
			return Null, err
		}
		return indexValue(recv, idx, n.At)

	default:
		return Null, rtErr(e.Pos(), "unhandled expression")
	}
}

// callValue applies a mission value to already-evaluated arguments.
func (ip *Interp) callValue(callee Value, args []Value, pos Pos) (Value, *Error) {
	if callee.Tag != VTFun {
		return Null, rtErr(pos, "value of type %s is not callable", tagName(callee.Tag))
	}
	fn := callee.asFun()
	if len(args) != len(fn.Params) {
		return Null, rtErr(pos, "mission '%s' expects %d argument(s), got %d", fn.Name, len(fn.Params), len(args))
	}
	if fn.Native != nil {
		return fn.Native(ip, pos, args)
	}

	callEnv := NewEnv(fn.Env)
	for i, p := range fn.Params {
		callEnv.Define(p, args[i])
	}
	_, ctrl, err := ip.evalStmts(fn.Body.Stmts, callEnv)
	if err != nil {
		return Null, err
	}
	switch ctrl.sig {
	case sigReturn:
		return ctrl.val, nil
	case sigBreak:
		return Null, rtErr(ctrl.at, "'abort' outside a loop")
	case sigContinue:
		return Null, rtErr(ctrl.at, "'proceed' outside a loop")
	}
	// fell off the end of the body
	return Null, nil
}
