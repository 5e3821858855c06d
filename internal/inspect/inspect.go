// Package inspect is an interactive line-edited session for walking a demo
// program stage by stage through Semantic -> IR Gen -> IR Verify, printing
// diagnostics and the resulting IR as each stage runs. It stands in for a
// REPL over real source files (no lexer/parser exists in this module;
// internal/demos supplies fixture ASTs instead).
package inspect

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/alir-lang/alirc/internal/ast"
	"github.com/alir-lang/alirc/internal/demos"
	"github.com/alir-lang/alirc/internal/diagcli"
	"github.com/alir-lang/alirc/internal/ir"
	"github.com/alir-lang/alirc/internal/irgen"
	"github.com/alir-lang/alirc/internal/irverify"
	"github.com/alir-lang/alirc/internal/sema"
)

var commands = []string{":help", ":quit", ":list", ":load", ":sema", ":irgen", ":verify", ":dump", ":clear"}

// Session holds the program currently loaded and the results of whichever
// pipeline stages have run against it so far.
type Session struct {
	name       string
	prog       *ast.Program
	semaResult *sema.Result
	module     *ir.Module
}

func historyPath() string {
	return filepath.Join(os.TempDir(), ".alirc_inspect_history")
}

// Run starts the interactive loop. liner reads lines and shows prompts on
// the process terminal, so in is not read; command output and diagnostics
// go to out.
func Run(in io.Reader, out io.Writer) {
	line := liner.NewLiner()
	defer line.Close()

	if f, err := os.Open(historyPath()); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}
	line.SetMultiLineMode(false)
	line.SetCompleter(func(partial string) (c []string) {
		for _, cmd := range commands {
			if strings.HasPrefix(cmd, partial) {
				c = append(c, cmd)
			}
		}
		return
	})

	fmt.Fprintln(out, "alirc inspect — step a demo program through Semantic -> IR Gen -> IR Verify")
	fmt.Fprintln(out, "Type :help for commands, :quit to exit")

	sess := &Session{}
	for {
		input, err := line.Prompt("alirc> ")
		if err == io.EOF {
			fmt.Fprintln(out, "goodbye")
			break
		}
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)
		sess.dispatch(input, out)
	}

	if f, err := os.Create(historyPath()); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
}

func (s *Session) dispatch(input string, out io.Writer) {
	parts := strings.Fields(input)
	switch parts[0] {
	case ":help":
		fmt.Fprintln(out, "  :list             list available demo programs")
		fmt.Fprintln(out, "  :load <name>      load a demo program")
		fmt.Fprintln(out, "  :sema             run the semantic analyzer on the loaded program")
		fmt.Fprintln(out, "  :irgen            lower the analyzed program to IR (runs :sema first if needed)")
		fmt.Fprintln(out, "  :verify           run the IR verifier over the generated module")
		fmt.Fprintln(out, "  :dump             print the current IR module")
		fmt.Fprintln(out, "  :clear            forget the loaded program and results")
		fmt.Fprintln(out, "  :quit             exit")
	case ":quit":
		os.Exit(0)
	case ":list":
		fmt.Fprintln(out, strings.Join(demos.Names(), ", "))
	case ":load":
		if len(parts) < 2 {
			fmt.Fprintln(out, "usage: :load <name>")
			return
		}
		prog, ok := demos.Load(parts[1])
		if !ok {
			fmt.Fprintf(out, "no such demo %q; try :list\n", parts[1])
			return
		}
		*s = Session{name: parts[1], prog: prog}
		fmt.Fprintf(out, "loaded %q\n", parts[1])
	case ":sema":
		s.runSema(out)
	case ":irgen":
		s.runIRGen(out)
	case ":verify":
		s.runVerify(out)
	case ":dump":
		if s.module == nil {
			fmt.Fprintln(out, "no IR module yet; run :irgen first")
			return
		}
		fmt.Fprint(out, s.module.String())
	case ":clear":
		*s = Session{}
	default:
		fmt.Fprintf(out, "unknown command %q; type :help\n", parts[0])
	}
}

func (s *Session) runSema(out io.Writer) {
	if s.prog == nil {
		fmt.Fprintln(out, "no program loaded; try :load <name>")
		return
	}
	sink := diagcli.New(out)
	result, errCount := sema.New(s.name, sink).Analyze(s.prog)
	s.semaResult = result
	fmt.Fprintf(out, "semantic analysis: %d error(s)\n", errCount)
}

func (s *Session) runIRGen(out io.Writer) {
	if s.semaResult == nil {
		s.runSema(out)
		if s.semaResult == nil {
			return
		}
	}
	sink := diagcli.New(out)
	g := irgen.New(sink, s.semaResult.Types)
	module, errCount := g.Generate(s.prog, s.semaResult)
	s.module = module
	fmt.Fprintf(out, "IR generation: %d error(s), %d function(s)\n", errCount, len(module.Functions))
}

func (s *Session) runVerify(out io.Writer) {
	if s.module == nil {
		s.runIRGen(out)
		if s.module == nil {
			return
		}
	}
	sink := diagcli.New(out)
	errCount := irverify.Verify(s.module, sink)
	fmt.Fprintf(out, "IR verification: %d error(s)\n", errCount)
}
