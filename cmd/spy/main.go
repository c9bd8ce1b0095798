package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	spylang "github.com/SpyLangg/SpyLang"
)

const (
	appName     = "spy"
	historyFile = ".spylang_history"
	promptMain  = "SpyLang > "
	promptCont  = "      ... "
)

var banner = fmt.Sprintf("SpyLang %s REPL\nCtrl+C aborts the mission, Ctrl+D exits.", spylang.Version)

func red(s string) string { return "\x1b[31m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) < 2 {
		// the original shell drops straight into the REPL
		os.Exit(cmdRepl())
	}

	switch cmd := os.Args[1]; cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl())
	case "version":
		fmt.Println(spylang.Version)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`SpyLang %s

Usage:
  %s run <file.spy>    Run a script.
  %s repl              Start the REPL (also the default).
  %s version           Print the version.

`, spylang.Version, appName, appName, appName)
}

func cmdRun(args []string) int {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s run <file.spy>\n", appName)
		return 2
	}
	file := args[0]

	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, file, err)
		return 1
	}

	ip := spylang.New(nil, spylang.DirLoader{Base: filepath.Dir(file)})
	if _, err := ip.ExecProgram(filepath.Base(file), string(src), spylang.NewEnv(ip.Core)); err != nil {
		fmt.Fprintln(os.Stderr, red(spylang.FormatError(err, file, string(src))))
		return 1
	}
	return 0
}

func cmdRepl() int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		fmt.Println("\nMission aborted by user.")
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	ip := spylang.New(nil, spylang.DirLoader{})

	for {
		code, ok := readByParseProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			break
		}
		if strings.TrimSpace(code) == "" {
			continue
		}

		v, err := ip.ExecProgram("<repl>", code, ip.Globals)
		if err != nil {
			fmt.Fprintln(os.Stderr, red(spylang.FormatError(err, "<repl>", code)))
			continue
		}
		if v.Tag != spylang.VTNull {
			fmt.Println(spylang.FormatValue(v))
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}

	return 0
}

// readByParseProbe collects lines until the input parses, or fails with
// something other than an incomplete-input diagnostic.
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println("Mission aborted by user.")
			return "", true
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if _, perr := spylang.ParseInteractive(src); perr != nil && spylang.IsIncomplete(perr) {
			continue
		}
		return src, true
	}
}
