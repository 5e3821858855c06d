// Command alirc drives the Alir middle-end: Semantic Analyzer -> IR
// Generator -> IR Verifier, over the demo programs in internal/demos
// (there is no lexer/parser in this module — the AST is an input contract
// other tooling satisfies).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/alir-lang/alirc/internal/alirconfig"
	"github.com/alir-lang/alirc/internal/demos"
	"github.com/alir-lang/alirc/internal/diagcli"
	"github.com/alir-lang/alirc/internal/inspect"
	"github.com/alir-lang/alirc/internal/irgen"
	"github.com/alir-lang/alirc/internal/irverify"
	"github.com/alir-lang/alirc/internal/sema"
)

var (
	// Version is set by ldflags at build time.
	Version = "dev"

	bold  = color.New(color.Bold).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
)

func main() {
	var (
		versionFlag = flag.Bool("version", false, "print version information")
		configPath  = flag.String("config", "", "path to a YAML config file (defaults apply if unset)")
		dumpIR      = flag.Bool("dump-ir", false, "print the generated IR module after a successful check")
	)
	flag.Parse()

	if *versionFlag {
		fmt.Printf("alirc %s\n", bold(Version))
		return
	}

	if flag.NArg() == 0 {
		printHelp()
		return
	}

	cfg := alirconfig.Default()
	if *configPath != "" {
		loaded, err := alirconfig.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("error"), err)
			os.Exit(1)
		}
		cfg = loaded
	}

	switch cmd := flag.Arg(0); cmd {
	case "check":
		if flag.NArg() < 2 {
			fmt.Fprintln(os.Stderr, "usage: alirc check <demo-name>")
			os.Exit(1)
		}
		os.Exit(runCheck(flag.Arg(1), cfg, *dumpIR))

	case "list":
		for _, name := range demos.Names() {
			fmt.Println(name)
		}

	case "inspect":
		inspect.Run(os.Stdin, os.Stdout)

	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", red("error"), cmd)
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(bold("alirc - Alir middle-end driver"))
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Printf("  %s <name>   Run Semantic -> IR Gen -> IR Verify over a demo program\n", cyan("check"))
	fmt.Printf("  %s           List available demo programs\n", cyan("list"))
	fmt.Printf("  %s        Start an interactive session over demo programs\n", cyan("inspect"))
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  --config <path>   load settings from a YAML file (check uses warnings_as_errors)")
	fmt.Println("  --dump-ir         print the generated IR module on success")
	fmt.Println("  --version         print version information")
}

// runCheck runs the full pipeline over one demo program and returns the
// process exit code: 0 on a clean run, 1 if any stage reported an error.
func runCheck(name string, cfg alirconfig.Config, dumpIR bool) int {
	prog, ok := demos.Load(name)
	if !ok {
		fmt.Fprintf(os.Stderr, "%s: no such demo %q (try `alirc list`)\n", red("error"), name)
		return 1
	}

	sink := diagcli.New(os.Stdout)

	analyzer := sema.New(name, sink)
	result, semaErrs := analyzer.Analyze(prog)
	total := semaErrs
	if cfg.WarningsAsErrors {
		total += sink.Warnings
	}
	if total > 0 {
		fmt.Fprintf(os.Stderr, "%s: semantic analysis failed (%d error(s))\n", red("error"), total)
		return 1
	}

	gen := irgen.New(sink, result.Types)
	module, genErrs := gen.Generate(prog, result)
	if cfg.WarningsAsErrors {
		genErrs += sink.Warnings
	}
	if genErrs > 0 {
		fmt.Fprintf(os.Stderr, "%s: IR generation failed (%d error(s))\n", red("error"), genErrs)
		return 1
	}

	verifyErrs := irverify.Verify(module, sink)
	if cfg.WarningsAsErrors {
		verifyErrs += sink.Warnings
	}
	if verifyErrs > 0 {
		fmt.Fprintf(os.Stderr, "%s: IR verification failed (%d error(s))\n", red("error"), verifyErrs)
		return 1
	}

	if dumpIR {
		fmt.Print(module.String())
	}
	fmt.Printf("%s %s: no errors\n", green("✓"), name)
	return 0
}
