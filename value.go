package spylang

import (
	"strconv"
	"strings"
)

// ValueTag identifies the runtime type of a Value.
type ValueTag int

const (
	VTNull ValueTag = iota
	VTBool
	VTInt
	VTFloat
	VTStr
	VTList
	VTFun
)

// Value is the tagged runtime value. Data holds bool, int64, float64,
// string, *ListObject, or *Fun according to Tag.
type Value struct {
	Tag  ValueTag
	Data interface{}
}

// ListObject is the mutable backing store of a list value. Lists are
// reference-semantic: two Values may share one ListObject.
type ListObject struct {
	Elems []Value
}

// NativeImpl is the Go implementation of a built-in mission. Arity is
// checked by the caller before invocation.
type NativeImpl func(ip *Interp, pos Pos, args []Value) (Value, *Error)

// Fun is a mission value, either user-defined (Body/Env set) or built-in
// (Native set).
type Fun struct {
	Name   string
	Params []string
	Body   *Block
	Env    *Env
	Native NativeImpl
}

// Null is the ghost value.
var Null = Value{Tag: VTNull}

func Bool(b bool) Value     { return Value{Tag: VTBool, Data: b} }
func Int(n int64) Value     { return Value{Tag: VTInt, Data: n} }
func Float(f float64) Value { return Value{Tag: VTFloat, Data: f} }
func Str(s string) Value    { return Value{Tag: VTStr, Data: s} }
func FunVal(f *Fun) Value   { return Value{Tag: VTFun, Data: f} }

// List wraps elems in a fresh ListObject.
func List(elems []Value) Value {
	return Value{Tag: VTList, Data: &ListObject{Elems: elems}}
}

func (v Value) asBool() bool        { return v.Data.(bool) }
func (v Value) asInt() int64        { return v.Data.(int64) }
func (v Value) asFloat() float64    { return v.Data.(float64) }
func (v Value) asStr() string       { return v.Data.(string) }
func (v Value) asList() *ListObject { return v.Data.(*ListObject) }
func (v Value) asFun() *Fun         { return v.Data.(*Fun) }
func (v Value) isNumeric() bool     { return v.Tag == VTInt || v.Tag == VTFloat }

// asFloat64 widens Int or Float to float64. Caller guarantees isNumeric.
func (v Value) asFloat64() float64 {
	if v.Tag == VTInt {
		return float64(v.asInt())
	}
	return v.asFloat()
}

// tagName is the type name used in runtime error messages.
func tagName(t ValueTag) string {
	switch t {
	case VTNull:
		return "null"
	case VTBool:
		return "bool"
	case VTInt:
		return "int"
	case VTFloat:
		return "float"
	case VTStr:
		return "string"
	case VTList:
		return "list"
	case VTFun:
		return "mission"
	default:
		return "unknown"
	}
}

// truthy implements SpyLang truthiness: Bool as-is, numbers nonzero,
// strings and lists nonempty, ghost false, missions true.
func truthy(v Value) bool {
	switch v.Tag {
	case VTNull:
		return false
	case VTBool:
		return v.asBool()
	case VTInt:
		return v.asInt() != 0
	case VTFloat:
		return v.asFloat() != 0
	case VTStr:
		return v.asStr() != ""
	case VTList:
		return len(v.asList().Elems) > 0
	case VTFun:
		return true
	default:
		return false
	}
}

// FormatValue renders a value for display and string concatenation.
// Strings appear bare at the top level but quoted inside lists.
func FormatValue(v Value) string {
	if v.Tag == VTStr {
		return v.asStr()
	}
	return formatNested(v)
}

func formatNested(v Value) string {
	switch v.Tag {
	case VTNull:
		return "ghost"
	case VTBool:
		if v.asBool() {
			return "true"
		}
		return "false"
	case VTInt:
		return strconv.FormatInt(v.asInt(), 10)
	case VTFloat:
		return strconv.FormatFloat(v.asFloat(), 'g', -1, 64)
	case VTStr:
		return strconv.Quote(v.asStr())
	case VTList:
		var b strings.Builder
		b.WriteByte('[')
		for i, e := range v.asList().Elems {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(formatNested(e))
		}
		b.WriteByte(']')
		return b.String()
	case VTFun:
		f := v.asFun()
		if f.Native != nil {
			return "<built-in mission " + f.Name + ">"
		}
		return "<mission " + f.Name + ">"
	default:
		return "unknown"
	}
}

// String implements fmt.Stringer with the nested (quoted-string) form.
func (v Value) String() string { return formatNested(v) }

// valuesEqual implements '=='. Int and Float compare numerically; other
// cross-tag pairs are unequal. Lists compare deeply, missions by identity.
func valuesEqual(a, b Value) bool {
	if a.isNumeric() && b.isNumeric() {
		return a.asFloat64() == b.asFloat64()
	}
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case VTNull:
		return true
	case VTBool:
		return a.asBool() == b.asBool()
	case VTStr:
		return a.asStr() == b.asStr()
	case VTList:
		la, lb := a.asList(), b.asList()
		if la == lb {
			return true
		}
		if len(la.Elems) != len(lb.Elems) {
			return false
		}
		for i := range la.Elems {
			if !valuesEqual(la.Elems[i], lb.Elems[i]) {
				return false
			}
		}
		return true
	case VTFun:
		return a.asFun() == b.asFun()
	default:
		return false
	}
}
