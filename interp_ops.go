package spylang

// applyUnary implements prefix '-' and 'not'.
func applyUnary(op TokenType, x Value, pos Pos) (Value, *Error) {
	switch op {
	case MINUS:
		switch x.Tag {
		case VTInt:
			return Int(-x.asInt()), nil
		case VTFloat:
			return Float(-x.asFloat()), nil
		}
		return Null, rtErr(pos, "cannot negate %s", tagName(x.Tag))
	case NOT:
		return Bool(!truthy(x)), nil
	}
	return Null, rtErr(pos, "unhandled unary operator")
}

// applyBinary implements the infix operators other than 'and'/'or', which
// short-circuit in the evaluator.
func applyBinary(op TokenType, l, r Value, pos Pos) (Value, *Error) {
	switch op {
	case PLUS:
		return addValues(l, r, pos)
	case MINUS, MULT:
		return arith(op, l, r, pos)
	case DIV:
		return divide(l, r, pos)
	case MOD:
		return modulo(l, r, pos)
	case EQEQ:
		return Bool(valuesEqual(l, r)), nil
	case NOTEQ:
		return Bool(!valuesEqual(l, r)), nil
	case LESS, LESSEQ, GREATER, GREATEREQ:
		return compare(op, l, r, pos)
	}
	return Null, rtErr(pos, "unhandled operator '%s'", opLexeme(op))
}

// addValues: '+' concatenates when either side is a string (the other side
// is stringified), concatenates lists when both sides are lists, and adds
// numbers otherwise. Int+Int stays Int; any Float widens.
func addValues(l, r Value, pos Pos) (Value, *Error) {
	if l.Tag == VTStr || r.Tag == VTStr {
		return Str(FormatValue(l) + FormatValue(r)), nil
	}
	if l.Tag == VTList && r.Tag == VTList {
		le, re := l.asList().Elems, r.asList().Elems
		out := make([]Value, 0, len(le)+len(re))
		out = append(out, le...)
		out = append(out, re...)
		return List(out), nil
	}
	if l.Tag == VTInt && r.Tag == VTInt {
		return Int(l.asInt() + r.asInt()), nil
	}
	if l.isNumeric() && r.isNumeric() {
		return Float(l.asFloat64() + r.asFloat64()), nil
	}
	return Null, rtErr(pos, "cannot apply '+' to %s and %s", tagName(l.Tag), tagName(r.Tag))
}

func arith(op TokenType, l, r Value, pos Pos) (Value, *Error) {
	if !l.isNumeric() || !r.isNumeric() {
		return Null, rtErr(pos, "cannot apply '%s' to %s and %s", opLexeme(op), tagName(l.Tag), tagName(r.Tag))
	}
	if l.Tag == VTInt && r.Tag == VTInt {
		a, b := l.asInt(), r.asInt()
		if op == MINUS {
			return Int(a - b), nil
		}
		return Int(a * b), nil
	}
	a, b := l.asFloat64(), r.asFloat64()
	if op == MINUS {
		return Float(a - b), nil
	}
	return Float(a * b), nil
}

// divide performs true division and always yields Float.
func divide(l, r Value, pos Pos) (Value, *Error) {
	if !l.isNumeric() || !r.isNumeric() {
		return Null, rtErr(pos, "cannot apply '/' to %s and %s", tagName(l.Tag), tagName(r.Tag))
	}
	b := r.asFloat64()
	if b == 0 {
		return Null, rtErr(pos, "division by zero")
	}
	return Float(l.asFloat64() / b), nil
}

// modulo is Int-only, with Go's truncated semantics.
func modulo(l, r Value, pos Pos) (Value, *Error) {
	if l.Tag != VTInt || r.Tag != VTInt {
		return Null, rtErr(pos, "'%%' requires integer operands, got %s and %s", tagName(l.Tag), tagName(r.Tag))
	}
	if r.asInt() == 0 {
		return Null, rtErr(pos, "modulo by zero")
	}
	return Int(l.asInt() % r.asInt()), nil
}

// compare orders two numbers or two strings.
func compare(op TokenType, l, r Value, pos Pos) (Value, *Error) {
	if l.isNumeric() && r.isNumeric() {
		a, b := l.asFloat64(), r.asFloat64()
		switch op {
		case LESS:
			return Bool(a < b), nil
		case LESSEQ:
			return Bool(a <= b), nil
		case GREATER:
			return Bool(a > b), nil
		default:
			return Bool(a >= b), nil
		}
	}
	if l.Tag == VTStr && r.Tag == VTStr {
		a, b := l.asStr(), r.asStr()
		switch op {
		case LESS:
			return Bool(a < b), nil
		case LESSEQ:
			return Bool(a <= b), nil
		case GREATER:
			return Bool(a > b), nil
		default:
			return Bool(a >= b), nil
		}
	}
	return Null, rtErr(pos, "cannot order %s and %s", tagName(l.Tag), tagName(r.Tag))
}

// indexValue subscripts a list (by element) or string (by character).
func indexValue(recv, idx Value, pos Pos) (Value, *Error) {
	if idx.Tag != VTInt {
		return Null, rtErr(pos, "index must be an integer, got %s", tagName(idx.Tag))
	}
	i := idx.asInt()
	switch recv.Tag {
	case VTList:
		elems := recv.asList().Elems
		if i < 0 || i >= int64(len(elems)) {
			return Null, rtErr(pos, "index %d out of range for length %d", i, len(elems))
		}
		return elems[i], nil
	case VTStr:
		runes := []rune(recv.asStr())
		if i < 0 || i >= int64(len(runes)) {
			return Null, rtErr(pos, "index %d out of range for length %d", i, len(runes))
		}
		return Str(string(runes[i])), nil
	}
	return Null, rtErr(pos, "value of type %s is not indexable", tagName(recv.Tag))
}
