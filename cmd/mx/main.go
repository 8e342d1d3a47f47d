package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	mathexpr "github.com/CoderDayton/mathexpr"
)

const (
	appName     = "mx"
	historyFile = ".mathexpr_history"
	promptMain  = "==> "
	promptCont  = "... "
)

var banner = fmt.Sprintf("mathexpr %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.", mathexpr.Version)

func red(s string) string   { return "\x1b[31m" + s + "\x1b[0m" }
func green(s string) string { return "\x1b[32m" + s + "\x1b[0m" }
func blue(s string) string  { return "\x1b[94m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	switch cmd {
	case "eval":
		os.Exit(cmdEval(os.Args[2:]))
	case "cmp":
		os.Exit(cmdCmp(os.Args[2:]))
	case "fmt":
		os.Exit(cmdFmt(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "version":
		fmt.Println(mathexpr.Version)
		return
	case "-h", "--help", "help":
		usage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`mathexpr %s (built %s)

Usage:
  %s eval [-b name=value ...] <expr>   Evaluate an expression.
  %s cmp <expr> <expr>                 Test two expressions for equivalence.
  %s fmt [-c] <expr>                   Simplify and pretty-print (-c: canonical form).
  %s repl                              Start the REPL.
  %s version                           Print the compiled version

`, mathexpr.Version, mathexpr.BuildDate, appName, appName, appName, appName, appName)
}

// -----------------------------------------------------------------------------
// eval
// -----------------------------------------------------------------------------

type bindingFlags map[string]float64

func (b bindingFlags) String() string { return "" }

func (b bindingFlags) Set(s string) error {
	name, val, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return fmt.Errorf("want name=value, got %q", s)
	}
	v, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return fmt.Errorf("invalid value %q for %s", val, name)
	}
	b[name] = v
	return nil
}

func cmdEval(args []string) int {
	fs := flag.NewFlagSet("eval", flag.ContinueOnError)
	bindings := bindingFlags{}
	fs.Var(bindings, "b", "variable binding, name=value (repeatable)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s eval [-b name=value ...] <expr>\n", appName)
		return 2
	}
	src := fs.Arg(0)

	v, err := mathexpr.EvaluateExpression(src, bindings)
	if err != nil {
		fmt.Fprintln(os.Stderr, red(mathexpr.WrapErrorWithSource(err, src).Error()))
		return 1
	}
	fmt.Println(blue(strconv.FormatFloat(v, 'f', -1, 64)))

	// variable-free input is cross-checked against the independent oracle
	if len(bindings) == 0 {
		if ov, oerr := mathexpr.SafeEvaluate(src); oerr == nil && !withinOracle(v, ov) {
			fmt.Fprintln(os.Stderr, red(fmt.Sprintf("oracle disagrees: %v", ov)))
			return 1
		}
	}
	return 0
}

func withinOracle(a, b float64) bool {
	scale := 1.0
	if abs(a) > scale {
		scale = abs(a)
	}
	if abs(b) > scale {
		scale = abs(b)
	}
	return abs(a-b) <= 1e-6*scale
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// -----------------------------------------------------------------------------
// cmp
// -----------------------------------------------------------------------------

func cmdCmp(args []string) int {
	if len(args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s cmp <expr> <expr>\n", appName)
		return 2
	}
	if mathexpr.CompareExpressions(args[0], args[1]) {
		fmt.Println(green("equivalent"))
		return 0
	}
	fmt.Println(red("not equivalent"))
	return 1
}

// -----------------------------------------------------------------------------
// fmt
// -----------------------------------------------------------------------------

func cmdFmt(args []string) int {
	fs := flag.NewFlagSet("fmt", flag.ContinueOnError)
	canonical := fs.Bool("c", false, "print the fully parenthesized canonical form")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s fmt [-c] <expr>\n", appName)
		return 2
	}
	src := fs.Arg(0)

	ast, err := mathexpr.ParseExpression(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, red(mathexpr.WrapErrorWithSource(err, src).Error()))
		return 1
	}
	simplified := mathexpr.SimplifyAST(ast)
	if *canonical {
		fmt.Println(blue(mathexpr.CanonicalString(simplified)))
	} else {
		fmt.Println(blue(mathexpr.FormatAST(simplified)))
	}
	return 0
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func cmdRepl(_ []string) (ret int) {
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
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	bindings := map[string]float64{}

	for {
		code, ok := readByParseProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			break
		}

		trimmed := strings.TrimSpace(code)
		if strings.HasPrefix(trimmed, ":") {
			if !replCommand(trimmed, bindings) {
				return 0
			}
			continue
		}
		if trimmed == "" {
			continue
		}

		// name = expr defines a binding for later lines
		if name, rhs, isAssign := splitAssignment(trimmed); isAssign {
			v, err := mathexpr.EvaluateExpression(rhs, bindings)
			if err != nil {
				fmt.Fprintln(os.Stderr, red(mathexpr.WrapErrorWithSource(err, rhs).Error()))
				continue
			}
			bindings[name] = v
			fmt.Println(green(fmt.Sprintf("%s = %s", name, strconv.FormatFloat(v, 'f', -1, 64))))
			ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
			continue
		}

		v, err := mathexpr.EvaluateExpression(trimmed, bindings)
		if err != nil {
			// symbolic input still simplifies and prints
			if ast, perr := mathexpr.ParseExpression(trimmed); perr == nil {
				fmt.Println(blue(mathexpr.FormatAST(mathexpr.SimplifyAST(ast))))
				ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
				continue
			}
			fmt.Fprintln(os.Stderr, red(mathexpr.WrapErrorWithSource(err, trimmed).Error()))
			continue
		}
		fmt.Println(blue(strconv.FormatFloat(v, 'f', -1, 64)))
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}

	return 0
}

// replCommand handles ':' directives; returns false when the REPL should exit.
func replCommand(cmd string, bindings map[string]float64) bool {
	switch strings.ToLower(cmd) {
	case ":quit":
		return false
	case ":vars":
		if len(bindings) == 0 {
			fmt.Println("no bindings")
			return true
		}
		for name, v := range bindings {
			fmt.Printf("%s = %s\n", name, strconv.FormatFloat(v, 'f', -1, 64))
		}
		return true
	default:
		fmt.Printf("unknown command. Type :quit to exit.\n")
		return true
	}
}

// splitAssignment recognizes "name = expr" lines. A lone identifier on the
// left of the first '=' makes it an assignment; anything else is an
// expression.
func splitAssignment(line string) (name, rhs string, ok bool) {
	left, right, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	name = strings.TrimSpace(left)
	if name == "" {
		return "", "", false
	}
	for _, r := range name {
		if r >= '0' && r <= '9' || r == '.' || r == '(' || r == ')' ||
			strings.ContainsRune("+-*/%^", r) {
			return "", "", false
		}
	}
	return name, strings.TrimSpace(right), true
}

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
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		_, perr := mathexpr.ParseExpression(src)
		if perr == nil {
			return src, true
		}
		if mathexpr.IsIncomplete(perr) && strings.TrimSpace(src) != "" {
			continue
		}
		return src, true
	}
}
