package spylang

import (
	"io"
	"strings"
	"testing"
)

// --- helpers ---------------------------------------------------------------

// testConsole is an in-memory Console with queued input lines.
type testConsole struct {
	out     strings.Builder
	in      []string
	cleared int
}

func (c *testConsole) Write(s string) { c.out.WriteString(s) }

func (c *testConsole) ReadLine() (string, error) {
	if len(c.in) == 0 {
		return "", io.EOF
	}
	line := c.in[0]
	c.in = c.in[1:]
	return line, nil
}

func (c *testConsole) Clear() {
	c.cleared++
	c.out.Reset()
}

// mapLoader serves launch targets from memory.
type mapLoader map[string]string

func (m mapLoader) ReadFile(path string) (string, error) {
	src, ok := m[path]
	if !ok {
		return "", io.ErrUnexpectedEOF
	}
	return src, nil
}

func testInterp() (*Interp, *testConsole) {
	con := &testConsole{}
	return New(con, mapLoader{}), con
}

func evalSrc(t *testing.T, src string) Value {
	t.Helper()
	ip, _ := testInterp()
	v, err := ip.ExecProgram("test.spy", src, NewEnv(ip.Core))
	if err != nil {
		t.Fatalf("eval error: %v\nsource:\n%s", err, src)
	}
	return v
}

func evalErr(t *testing.T, src string) *Error {
	t.Helper()
	ip, _ := testInterp()
	_, err := ip.ExecProgram("test.spy", src, NewEnv(ip.Core))
	if err == nil {
		t.Fatalf("want error, got none\nsource:\n%s", src)
	}
	e, ok := err.(*Error)
	if !ok {
		t.Fatalf("want *Error, got %T: %v", err, err)
	}
	return e
}

func wantInt(t *testing.T, v Value, n int64) {
	t.Helper()
	if v.Tag != VTInt || v.Data.(int64) != n {
		t.Fatalf("want int %d, got %#v", n, v)
	}
}

func wantFloat(t *testing.T, v Value, f float64) {
	t.Helper()
	if v.Tag != VTFloat || v.Data.(float64) != f {
		t.Fatalf("want float %g, got %#v", f, v)
	}
}

func wantStr(t *testing.T, v Value, s string) {
	t.Helper()
	if v.Tag != VTStr || v.Data.(string) != s {
		t.Fatalf("want str %q, got %#v", s, v)
	}
}

func wantBool(t *testing.T, v Value, b bool) {
	t.Helper()
	if v.Tag != VTBool || v.Data.(bool) != b {
		t.Fatalf("want bool %v, got %#v", b, v)
	}
}

func wantNull(t *testing.T, v Value) {
	t.Helper()
	if v.Tag != VTNull {
		t.Fatalf("want ghost, got %#v", v)
	}
}

func wantRuntimeErr(t *testing.T, e *Error, substr string) {
	t.Helper()
	if e.Kind != DiagRuntime {
		t.Fatalf("want runtime error, got kind %d: %s", e.Kind, e.Msg)
	}
	if !strings.Contains(e.Msg, substr) {
		t.Fatalf("want error containing %q, got %q", substr, e.Msg)
	}
}

// --- tests -----------------------------------------------------------------

func Test_Interp_Literals(t *testing.T) {
	wantInt(t, evalSrc(t, "42"), 42)
	wantFloat(t, evalSrc(t, "2.5"), 2.5)
	wantStr(t, evalSrc(t, `"hi"`), "hi")
	wantBool(t, evalSrc(t, "true"), true)
	wantBool(t, evalSrc(t, "false"), false)
	wantNull(t, evalSrc(t, "ghost"))
}

func Test_Interp_Arithmetic_And_Precedence(t *testing.T) {
	wantInt(t, evalSrc(t, "1 + 2 * 3"), 7)
	wantInt(t, evalSrc(t, "(1 + 2) * 3"), 9)
	wantFloat(t, evalSrc(t, "5 / 2"), 2.5)
	wantFloat(t, evalSrc(t, "10 / 5"), 2)
	wantInt(t, evalSrc(t, "7 % 4"), 3)
	wantInt(t, evalSrc(t, "-7 % 4"), -3)
	wantInt(t, evalSrc(t, "2 + 3 * 4 - 1"), 13)
	wantFloat(t, evalSrc(t, "1.5 + 1"), 2.5)
	wantInt(t, evalSrc(t, "-(3 + 4)"), -7)
}

func Test_Interp_Comparisons_And_Logic(t *testing.T) {
	wantBool(t, evalSrc(t, "3 < 4"), true)
	wantBool(t, evalSrc(t, "3.0 >= 3"), true)
	wantBool(t, evalSrc(t, `"abc" < "abd"`), true)
	wantBool(t, evalSrc(t, "1 == 1.0"), true)
	wantBool(t, evalSrc(t, `1 == "1"`), false)
	wantBool(t, evalSrc(t, "[1, 2] == [1, 2]"), true)
	wantBool(t, evalSrc(t, "[1, 2] != [1, 3]"), true)
	wantBool(t, evalSrc(t, "true and false"), false)
	wantBool(t, evalSrc(t, "true or false"), true)
	wantBool(t, evalSrc(t, "not 0"), true)
	wantBool(t, evalSrc(t, `1 < 2 and 2 < 3`), true)
	// short-circuit: the right side would be a runtime error
	wantBool(t, evalSrc(t, "false and (1 / 0)"), false)
	wantBool(t, evalSrc(t, "true or (1 / 0)"), true)
}

func Test_Interp_Truthiness(t *testing.T) {
	wantStr(t, evalSrc(t, `check 0 { "t" } otherwise { "f" }`), "f")
	wantStr(t, evalSrc(t, `check 0.0 { "t" } otherwise { "f" }`), "f")
	wantStr(t, evalSrc(t, `check "" { "t" } otherwise { "f" }`), "f")
	wantStr(t, evalSrc(t, `check [] { "t" } otherwise { "f" }`), "f")
	wantStr(t, evalSrc(t, `check ghost { "t" } otherwise { "f" }`), "f")
	wantStr(t, evalSrc(t, `check 7 { "t" } otherwise { "f" }`), "t")
	wantStr(t, evalSrc(t, `check "x" { "t" } otherwise { "f" }`), "t")
	wantStr(t, evalSrc(t, `check [0] { "t" } otherwise { "f" }`), "t")
}

func Test_Interp_Assign_And_Rebind(t *testing.T) {
	wantInt(t, evalSrc(t, "assign x = 1\nx = x + 1\nx"), 2)
	// a bare write with no existing binding creates a local one
	wantInt(t, evalSrc(t, "y = 3\ny"), 3)
	wantRuntimeErr(t, evalErr(t, "z + 1"), "undefined name 'z'")
	// the local created inside a mission does not leak out
	wantRuntimeErr(t, evalErr(t, "mission m() { w = 1 }\nm()\nw"), "undefined name 'w'")
}

func Test_Interp_StringOps(t *testing.T) {
	wantStr(t, evalSrc(t, `"agent " + "007"`), "agent 007")
	wantStr(t, evalSrc(t, `"n = " + 7`), "n = 7")
	wantStr(t, evalSrc(t, `7 + "!"`), "7!")
	wantStr(t, evalSrc(t, `"spy"[1]`), "p")
	wantInt(t, evalSrc(t, `length("agent")`), 5)
}

func Test_Interp_Lists(t *testing.T) {
	wantInt(t, evalSrc(t, "[10, 20, 30][1]"), 20)
	wantInt(t, evalSrc(t, "length([1, 2] + [3])"), 3)
	// lists are reference-semantic through bindings
	wantInt(t, evalSrc(t, `
assign a = [1]
assign b = a
add_agent(b, 2)
length(a)
`), 2)
	wantRuntimeErr(t, evalErr(t, "[1, 2][5]"), "out of range")
	wantRuntimeErr(t, evalErr(t, `[1][true]`), "index must be an integer")
	wantRuntimeErr(t, evalErr(t, "5[0]"), "not indexable")
}

func Test_Interp_CheckFollowupOtherwise(t *testing.T) {
	const def = `
mission grade(n) {
    check n >= 90 { extract "A" }
    followup n >= 80 { extract "B" }
    followup n >= 70 { extract "C" }
    otherwise { extract "F" }
}
`
	wantStr(t, evalSrc(t, def+"grade(95)"), "A")
	wantStr(t, evalSrc(t, def+"grade(85)"), "B")
	wantStr(t, evalSrc(t, def+"grade(75)"), "C")
	wantStr(t, evalSrc(t, def+"grade(10)"), "F")
}

func Test_Interp_EachRange_IsHalfOpen(t *testing.T) {
	wantInt(t, evalSrc(t, `
assign count = 0
each i in (1..10) {
    count = count + 1
}
count
`), 9)
	// empty and single-step ranges
	wantInt(t, evalSrc(t, `
assign count = 0
each i in (3..3) { count = count + 1 }
count
`), 0)
	wantInt(t, evalSrc(t, `
assign last = -1
each i in (0..5) { last = i }
last
`), 4)
	wantRuntimeErr(t, evalErr(t, "each i in (1.5..3) { 1 }"), "range bounds must be integers")
}

func Test_Interp_EachVar_DoesNotLeak(t *testing.T) {
	wantRuntimeErr(t, evalErr(t, `
each i in (0..3) { i }
i
`), "undefined name 'i'")
}

func Test_Interp_Chase(t *testing.T) {
	wantInt(t, evalSrc(t, `
assign n = 0
chase n < 5 {
    n = n + 1
}
n
`), 5)
}

func Test_Interp_AbortProceed_InnermostLoop(t *testing.T) {
	wantInt(t, evalSrc(t, `
assign total = 0
each i in (0..10) {
    check i == 3 { abort }
    total = total + 1
}
total
`), 3)
	wantInt(t, evalSrc(t, `
assign total = 0
each i in (0..10) {
    check i % 2 == 0 { proceed }
    total = total + 1
}
total
`), 5)
	// abort leaves only the inner loop
	wantInt(t, evalSrc(t, `
assign total = 0
each i in (0..3) {
    each j in (0..10) {
        check j == 1 { abort }
        total = total + 1
    }
}
total
`), 3)
	wantRuntimeErr(t, evalErr(t, "abort"), "'abort' outside a loop")
	wantRuntimeErr(t, evalErr(t, "proceed"), "'proceed' outside a loop")
	wantRuntimeErr(t, evalErr(t, "mission m() { abort }\nm()"), "'abort' outside a loop")
}

func Test_Interp_Missions(t *testing.T) {
	wantInt(t, evalSrc(t, `
mission fibonacci(n) {
    check n <= 1 { extract n }
    extract fibonacci(n - 1) + fibonacci(n - 2)
}
fibonacci(10)
`), 55)
	// bare extract and falling off the end both yield ghost
	wantNull(t, evalSrc(t, "mission m() { extract }\nm()"))
	wantNull(t, evalSrc(t, "mission m() { 1 + 1 }\nm()"))
	// extract escapes nested loops
	wantInt(t, evalSrc(t, `
mission firstOver(limit) {
    each i in (0..100) {
        check i * i > limit { extract i }
    }
}
firstOver(50)
`), 8)
}

func Test_Interp_Mission_Arity_And_Callability(t *testing.T) {
	wantRuntimeErr(t, evalErr(t, "mission m(a, b) { a }\nm(1)"), "expects 2 argument(s), got 1")
	wantRuntimeErr(t, evalErr(t, "5(1)"), "not callable")
}

func Test_Interp_Closures_CaptureByReference(t *testing.T) {
	wantInt(t, evalSrc(t, `
mission makeCounter() {
    assign n = 0
    mission bump() {
        n = n + 1
        extract n
    }
    extract bump
}
assign c = makeCounter()
c()
c()
c()
`), 3)
	// two counters are independent
	wantInt(t, evalSrc(t, `
mission makeCounter() {
    assign n = 0
    mission bump() {
        n = n + 1
        extract n
    }
    extract bump
}
assign a = makeCounter()
assign b = makeCounter()
a()
a()
b()
`), 1)
}

func Test_Interp_IsPrime(t *testing.T) {
	const def = `
mission is_prime(number) {
    check number <= 1 { extract false }
    each i in (2..number) {
        check number % i == 0 { extract false }
    }
    extract true
}
`
	wantBool(t, evalSrc(t, def+"is_prime(2)"), true)
	wantBool(t, evalSrc(t, def+"is_prime(17)"), true)
	wantBool(t, evalSrc(t, def+"is_prime(1)"), false)
	wantBool(t, evalSrc(t, def+"is_prime(21)"), false)
}

func Test_Interp_DivisionErrors(t *testing.T) {
	wantRuntimeErr(t, evalErr(t, "1 / 0"), "division by zero")
	wantRuntimeErr(t, evalErr(t, "1 / 0.0"), "division by zero")
	wantRuntimeErr(t, evalErr(t, "1 % 0"), "modulo by zero")
	wantRuntimeErr(t, evalErr(t, "1.5 % 2"), "integer operands")
}

func Test_Interp_TypeErrors(t *testing.T) {
	wantRuntimeErr(t, evalErr(t, "[1] - [2]"), "cannot apply '-'")
	wantRuntimeErr(t, evalErr(t, `true + false`), "cannot apply '+'")
	wantRuntimeErr(t, evalErr(t, `"a" < 1`), "cannot order")
	wantRuntimeErr(t, evalErr(t, "-ghost"), "cannot negate")
}

func Test_Interp_ErrorCarriesPosition(t *testing.T) {
	e := evalErr(t, "assign x = 1\n1 / 0")
	if e.Line != 2 {
		t.Fatalf("want error on line 2, got line %d", e.Line)
	}
}

func Test_Interp_InstancesAreIndependent(t *testing.T) {
	ip1, _ := testInterp()
	ip2, _ := testInterp()
	if _, err := ip1.ExecProgram("a.spy", "assign secret = 1", ip1.Globals); err != nil {
		t.Fatalf("eval: %v", err)
	}
	if _, err := ip2.ExecProgram("b.spy", "secret", ip2.Globals); err == nil {
		t.Fatalf("bindings leaked across interpreter instances")
	}
}

func Test_Interp_Repl_PersistsBindings(t *testing.T) {
	ip, _ := testInterp()
	if _, err := ip.ExecProgram("<repl>", "assign x = 40", ip.Globals); err != nil {
		t.Fatalf("eval: %v", err)
	}
	v, err := ip.ExecProgram("<repl>", "x + 2", ip.Globals)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	wantInt(t, v, 42)
}
