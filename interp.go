package spylang

import "fmt"

// Interp is a SpyLang interpreter instance. Core holds the built-in table;
// Globals is the persistent top-level scope used by the REPL. Instances are
// independent: each carries its own built-in table and scopes.
type Interp struct {
	Core    *Env
	Globals *Env
	Console Console
	Loader  FileLoader
}

// New creates an interpreter with its builtins registered into a fresh core
// env. A nil console or loader falls back to the process-standard one.
func New(con Console, loader FileLoader) *Interp {
	if con == nil {
		con = NewStdConsole()
	}
	if loader == nil {
		loader = DirLoader{}
	}
	ip := &Interp{
		Core:    NewEnv(nil),
		Console: con,
		Loader:  loader,
	}
	ip.Globals = NewEnv(ip.Core)
	registerBuiltins(ip)
	return ip
}

// signal is the control-flow outcome of a statement.
type signal int

const (
	sigNone signal = iota
	sigReturn
	sigBreak
	sigContinue
)

// control threads extract/abort/proceed out of nested statements. at keeps
// the origin position so an escaping signal can be reported precisely.
type control struct {
	sig signal
	val Value
	at  Pos
}

var ctrlNone = control{}

func rtErr(pos Pos, format string, args ...interface{}) *Error {
	return &Error{Kind: DiagRuntime, Msg: fmt.Sprintf(format, args...), Line: pos.Line, Col: pos.Col}
}

// ExecProgram parses and runs src in env, returning the value of the last
// statement. name attributes diagnostics to a script; errors already
// attributed (e.g. escaping a launched file) keep their own attribution.
func (ip *Interp) ExecProgram(name, src string, env *Env) (Value, error) {
	prog, perr := parseProgram(src, false)
	if perr != nil {
		return Null, stamp(perr, name, src)
	}
	v, err := ip.Run(prog, env)
	if err != nil {
		return Null, stamp(err, name, src)
	}
	return v, nil
}

// Run evaluates an already-parsed program in env.
func (ip *Interp) Run(prog *Program, env *Env) (Value, *Error) {
	v, ctrl, err := ip.evalStmts(prog.Stmts, env)
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
	return v, nil
}

// RunFile loads path through the FileLoader and executes it in a fresh
// top-level scope over the core env.
func (ip *Interp) RunFile(path string) (Value, error) {
	src, err := ip.Loader.ReadFile(path)
	if err != nil {
		return Null, err
	}
	return ip.ExecProgram(path, src, NewEnv(ip.Core))
}

func stamp(e *Error, name, src string) *Error {
	if e.Script == "" {
		e.Script = name
		e.Src = src
	}
	return e
}
