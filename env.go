package spylang

// Env is a chained lexical environment. The root env holds the built-in
// table; each program run and each mission call gets its own child.
type Env struct {
	parent *Env
	table  map[string]Value
}

// NewEnv creates an environment whose lookups fall through to parent.
func NewEnv(parent *Env) *Env {
	return &Env{parent: parent, table: make(map[string]Value)}
}

// Define binds name in this environment, shadowing any outer binding.
func (e *Env) Define(name string, v Value) {
	e.table[name] = v
}

// Set rebinds the nearest existing binding of name, walking outward.
// It reports false when no scope binds name.
func (e *Env) Set(name string, v Value) bool {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.table[name]; ok {
			env.table[name] = v
			return true
		}
	}
	return false
}

// Get resolves name, walking outward.
func (e *Env) Get(name string) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.table[name]; ok {
			return v, true
		}
	}
	return Null, false
}
