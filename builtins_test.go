package spylang

import (
	"strings"
	"testing"
)

func evalWith(t *testing.T, ip *Interp, src string) Value {
	t.Helper()
	v, err := ip.ExecProgram("test.spy", src, NewEnv(ip.Core))
	if err != nil {
		t.Fatalf("eval error: %v\nsource:\n%s", err, src)
	}
	return v
}

func Test_Builtin_Transmit(t *testing.T) {
	ip, con := testInterp()
	evalWith(t, ip, `
transmit("mission start")
transmit(007)
transmit([1, "two", ghost])
transmit(2.5)
`)
	want := "mission start\n7\n[1, \"two\", ghost]\n2.5\n"
	if con.out.String() != want {
		t.Fatalf("want output %q, got %q", want, con.out.String())
	}
}

func Test_Builtin_TransmitRet(t *testing.T) {
	ip, con := testInterp()
	v := evalWith(t, ip, `transmit_ret(41) + 1`)
	wantInt(t, v, 42)
	if con.out.String() != "41\n" {
		t.Fatalf("want echoed value, got %q", con.out.String())
	}
	// transmit itself yields ghost
	wantNull(t, evalWith(t, ip, `transmit("x")`))
}

func Test_Builtin_Intel(t *testing.T) {
	con := &testConsole{in: []string{"shadow", " 42 ", "not a number"}}
	ip := New(con, mapLoader{})

	wantStr(t, evalWith(t, ip, `intel("codename: ")`), "shadow")
	if !strings.HasPrefix(con.out.String(), "codename: ") {
		t.Fatalf("prompt not written: %q", con.out.String())
	}

	wantInt(t, evalWith(t, ip, `intel_int("count: ")`), 42)

	_, err := ip.ExecProgram("test.spy", `intel_int("count: ")`, NewEnv(ip.Core))
	if err == nil || !strings.Contains(err.Error(), "is not an integer") {
		t.Fatalf("want integer parse error, got %v", err)
	}

	// input exhausted
	_, err = ip.ExecProgram("test.spy", `intel("again: ")`, NewEnv(ip.Core))
	if err == nil || !strings.Contains(err.Error(), "input unavailable") {
		t.Fatalf("want input error, got %v", err)
	}
}

func Test_Builtin_Erase(t *testing.T) {
	ip, con := testInterp()
	evalWith(t, ip, `
transmit("secret")
erase()
`)
	if con.cleared != 1 {
		t.Fatalf("want 1 clear, got %d", con.cleared)
	}
	if con.out.String() != "" {
		t.Fatalf("display not wiped: %q", con.out.String())
	}
}

func Test_Builtin_TypePredicates(t *testing.T) {
	wantBool(t, evalSrc(t, "is_code(3)"), true)
	wantBool(t, evalSrc(t, "is_code(2.5)"), true)
	wantBool(t, evalSrc(t, `is_code("3")`), false)
	wantBool(t, evalSrc(t, `is_msg("hi")`), true)
	wantBool(t, evalSrc(t, "is_msg(3)"), false)
	wantBool(t, evalSrc(t, "is_list([])"), true)
	wantBool(t, evalSrc(t, `is_list("[]")`), false)
	wantBool(t, evalSrc(t, "is_mission(transmit)"), true)
	wantBool(t, evalSrc(t, "mission m() { }\nis_mission(m)"), true)
	wantBool(t, evalSrc(t, "is_mission(ghost)"), false)
}

func Test_Builtin_ListOps(t *testing.T) {
	wantInt(t, evalSrc(t, `
assign roster = [1, 2]
add_agent(roster, 3)
length(roster)
`), 3)
	wantInt(t, evalSrc(t, `
assign roster = [1, 2, 3]
withdraw(roster)
`), 3)
	wantInt(t, evalSrc(t, `
assign roster = [1, 2, 3]
withdraw(roster)
length(roster)
`), 2)
	wantInt(t, evalSrc(t, `
assign a = [1]
expand(a, [2, 3])
length(a)
`), 3)
	// expand mutates the first list only
	wantInt(t, evalSrc(t, `
assign a = [1]
assign b = [2, 3]
expand(a, b)
length(b)
`), 2)

	wantRuntimeErr(t, evalErr(t, "withdraw([])"), "empty list")
	wantRuntimeErr(t, evalErr(t, "add_agent(5, 1)"), "expected a list")
	wantRuntimeErr(t, evalErr(t, `expand([1], "no")`), "expected a list")
	wantRuntimeErr(t, evalErr(t, "length(5)"), "expected a list or string")
}

func Test_Builtin_MathPi(t *testing.T) {
	v := evalSrc(t, "math_pi")
	if v.Tag != VTFloat || v.Data.(float64) < 3.14 || v.Data.(float64) > 3.15 {
		t.Fatalf("want pi, got %#v", v)
	}
	wantBool(t, evalSrc(t, "math_pi > 3 and math_pi < 4"), true)
}

func Test_Builtin_Arity(t *testing.T) {
	wantRuntimeErr(t, evalErr(t, "transmit(1, 2)"), "expects 1 argument(s), got 2")
	wantRuntimeErr(t, evalErr(t, "erase(1)"), "expects 0 argument(s), got 1")
	wantRuntimeErr(t, evalErr(t, "add_agent([1])"), "expects 2 argument(s), got 1")
}

func Test_Builtin_Launch(t *testing.T) {
	con := &testConsole{}
	loader := mapLoader{
		"payload.spy": `
transmit("payload running")
assign result = 40 + 2
result
`,
		"broken.spy": "assign x = ",
		"boom.spy":   "1 / 0",
	}
	ip := New(con, loader)

	v := evalWith(t, ip, `launch("payload.spy")`)
	wantInt(t, v, 42)
	if con.out.String() != "payload running\n" {
		t.Fatalf("nested output missing: %q", con.out.String())
	}

	// the launched script does not see the caller's scope
	_, err := ip.ExecProgram("main.spy", `
assign hidden = 1
launch("payload.spy")
hidden
`, NewEnv(ip.Core))
	if err != nil {
		t.Fatalf("launch leaked scope the wrong way: %v", err)
	}
	loader["peek.spy"] = "hidden"
	_, err = ip.ExecProgram("main.spy", `
assign hidden = 1
launch("peek.spy")
`, NewEnv(ip.Core))
	if err == nil {
		t.Fatalf("launched script saw the caller's bindings")
	}

	// nested failures keep the nested file's attribution
	_, err = ip.ExecProgram("main.spy", `launch("boom.spy")`, NewEnv(ip.Core))
	if err == nil {
		t.Fatalf("want nested runtime error")
	}
	if e := err.(*Error); e.Script != "boom.spy" {
		t.Fatalf("want attribution to boom.spy, got %q", e.Script)
	}

	_, err = ip.ExecProgram("main.spy", `launch("broken.spy")`, NewEnv(ip.Core))
	if err == nil || err.(*Error).Script != "broken.spy" {
		t.Fatalf("want parse error attributed to broken.spy, got %v", err)
	}

	_, err = ip.ExecProgram("main.spy", `launch("missing.spy")`, NewEnv(ip.Core))
	if err == nil || !strings.Contains(err.Error(), "cannot read") {
		t.Fatalf("want read error, got %v", err)
	}
}

func Test_FormatError_Snippet(t *testing.T) {
	src := "assign x = 1\nassign y = x / 0\nx"
	ip, _ := testInterp()
	_, err := ip.ExecProgram("mission.spy", src, NewEnv(ip.Core))
	if err == nil {
		t.Fatalf("want division error")
	}
	out := FormatError(err, "", "")
	for _, want := range []string{
		"Agent Error: Runtime breach! Unauthorized behavior detected in the system.",
		"File mission.spy, line 2",
		"assign y = x / 0",
		"^",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("formatted error missing %q:\n%s", want, out)
		}
	}
}

func Test_FormatError_LexHeader(t *testing.T) {
	_, err := Parse("assign x = @")
	if err == nil {
		t.Fatalf("want lex error")
	}
	out := FormatError(err, "test.spy", "assign x = @")
	if !strings.Contains(out, "Unauthorized character detected") {
		t.Fatalf("want themed lex header, got:\n%s", out)
	}

	_, err = Parse("mission m( {")
	if err == nil {
		t.Fatalf("want parse error")
	}
	out = FormatError(err, "test.spy", "mission m( {")
	if !strings.Contains(out, "Expected character not found") {
		t.Fatalf("want themed parse header, got:\n%s", out)
	}
}
