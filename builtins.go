package spylang

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// registerBuiltins installs the built-in table into ip's core env. The table
// is built per instance, so interpreters never share mutable state.
func registerBuiltins(ip *Interp) {
	ip.Core.Define("math_pi", Float(math.Pi))

	native := func(name string, params []string, impl NativeImpl) {
		ip.Core.Define(name, FunVal(&Fun{Name: name, Params: params, Env: ip.Core, Native: impl}))
	}

	native("transmit", []string{"value"}, biTransmit)
	native("transmit_ret", []string{"value"}, biTransmitRet)
	native("intel", []string{"prompt"}, biIntel)
	native("intel_int", []string{"prompt"}, biIntelInt)
	native("erase", nil, biErase)

	native("is_code", []string{"value"}, biIsCode)
	native("is_msg", []string{"value"}, biIsMsg)
	native("is_list", []string{"value"}, biIsList)
	native("is_mission", []string{"value"}, biIsMission)

	native("add_agent", []string{"list", "value"}, biAddAgent)
	native("withdraw", []string{"list"}, biWithdraw)
	native("expand", []string{"list", "other"}, biExpand)
	native("length", []string{"value"}, biLength)

	native("launch", []string{"path"}, biLaunch)
}

func biTransmit(ip *Interp, pos Pos, args []Value) (Value, *Error) {
	ip.Console.Write(FormatValue(args[0]) + "\n")
	return Null, nil
}

func biTransmitRet(ip *Interp, pos Pos, args []Value) (Value, *Error) {
	ip.Console.Write(FormatValue(args[0]) + "\n")
	return args[0], nil
}

func biIntel(ip *Interp, pos Pos, args []Value) (Value, *Error) {
	ip.Console.Write(FormatValue(args[0]))
	line, err := ip.Console.ReadLine()
	if err != nil {
		return Null, rtErr(pos, "intel: input unavailable")
	}
	return Str(line), nil
}

func biIntelInt(ip *Interp, pos Pos, args []Value) (Value, *Error) {
	ip.Console.Write(FormatValue(args[0]))
	line, err := ip.Console.ReadLine()
	if err != nil {
		return Null, rtErr(pos, "intel_int: input unavailable")
	}
	n, convErr := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
	if convErr != nil {
		return Null, rtErr(pos, "intel_int: %q is not an integer", line)
	}
	return Int(n), nil
}

func biErase(ip *Interp, pos Pos, args []Value) (Value, *Error) {
	ip.Console.Clear()
	return Null, nil
}

func biIsCode(ip *Interp, pos Pos, args []Value) (Value, *Error) {
	return Bool(args[0].isNumeric()), nil
}

func biIsMsg(ip *Interp, pos Pos, args []Value) (Value, *Error) {
	return Bool(args[0].Tag == VTStr), nil
}

func biIsList(ip *Interp, pos Pos, args []Value) (Value, *Error) {
	return Bool(args[0].Tag == VTList), nil
}

func biIsMission(ip *Interp, pos Pos, args []Value) (Value, *Error) {
	return Bool(args[0].Tag == VTFun), nil
}

func argList(name string, pos Pos, v Value) (*ListObject, *Error) {
	if v.Tag != VTList {
		return nil, rtErr(pos, "%s: expected a list, got %s", name, tagName(v.Tag))
	}
	return v.asList(), nil
}

func biAddAgent(ip *Interp, pos Pos, args []Value) (Value, *Error) {
	lst, err := argList("add_agent", pos, args[0])
	if err != nil {
		return Null, err
	}
	lst.Elems = append(lst.Elems, args[1])
	return Null, nil
}

func biWithdraw(ip *Interp, pos Pos, args []Value) (Value, *Error) {
	lst, err := argList("withdraw", pos, args[0])
	if err != nil {
		return Null, err
	}
	if len(lst.Elems) == 0 {
		return Null, rtErr(pos, "withdraw from an empty list")
	}
	last := lst.Elems[len(lst.Elems)-1]
	lst.Elems = lst.Elems[:len(lst.Elems)-1]
	return last, nil
}

func biExpand(ip *Interp, pos Pos, args []Value) (Value, *Error) {
	dst, err := argList("expand", pos, args[0])
	if err != nil {
		return Null, err
	}
	src, err := argList("expand", pos, args[1])
	if err != nil {
		return Null, err
	}
	dst.Elems = append(dst.Elems, src.Elems...)
	return Null, nil
}

func biLength(ip *Interp, pos Pos, args []Value) (Value, *Error) {
	switch args[0].Tag {
	case VTList:
		return Int(int64(len(args[0].asList().Elems))), nil
	case VTStr:
		return Int(int64(utf8.RuneCountInString(args[0].asStr()))), nil
	}
	return Null, rtErr(pos, "length: expected a list or string, got %s", tagName(args[0].Tag))
}

// biLaunch runs another script in a fresh top-level scope over this
// interpreter's core env. Errors escaping the nested program keep their
// attribution to the nested file.
func biLaunch(ip *Interp, pos Pos, args []Value) (Value, *Error) {
	if args[0].Tag != VTStr {
		return Null, rtErr(pos, "launch: expected a path string, got %s", tagName(args[0].Tag))
	}
	path := args[0].asStr()
	src, err := ip.Loader.ReadFile(path)
	if err != nil {
		return Null, rtErr(pos, "launch: cannot read %q: %v", path, err)
	}
	prog, perr := parseProgram(src, false)
	if perr != nil {
		return Null, stamp(perr, path, src)
	}
	v, rerr := ip.Run(prog, NewEnv(ip.Core))
	if rerr != nil {
		return Null, stamp(rerr, path, src)
	}
	return v, nil
}
