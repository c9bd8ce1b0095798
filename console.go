package spylang

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Console is the capability the I/O builtins (transmit, intel, erase) are
// parameterized over. Tests substitute an in-memory implementation.
type Console interface {
	// Write sends program output.
	Write(s string)
	// ReadLine blocks for one line of input, without the trailing newline.
	ReadLine() (string, error)
	// Clear wipes the display.
	Clear()
}

// FileLoader resolves and reads the source of a launched script.
type FileLoader interface {
	ReadFile(path string) (string, error)
}

// StdConsole is the process-standard Console: stdin, stdout, ANSI clear.
type StdConsole struct {
	in  *bufio.Reader
	out io.Writer
}

func NewStdConsole() *StdConsole {
	return &StdConsole{in: bufio.NewReader(os.Stdin), out: os.Stdout}
}

func (c *StdConsole) Write(s string) {
	fmt.Fprint(c.out, s)
}

func (c *StdConsole) ReadLine() (string, error) {
	line, err := c.in.ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if err == io.EOF && line != "" {
		// a final unterminated line still counts
		return line, nil
	}
	if err != nil {
		return "", err
	}
	return line, nil
}

func (c *StdConsole) Clear() {
	fmt.Fprint(c.out, "\x1b[2J\x1b[H")
}

// DirLoader reads files from the OS, resolving relative paths against Base
// so a launched script finds its neighbors regardless of the process cwd.
type DirLoader struct {
	Base string
}

func (d DirLoader) ReadFile(path string) (string, error) {
	if d.Base != "" && !filepath.IsAbs(path) {
		path = filepath.Join(d.Base, path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
