package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/teris-io/cli"

	"github.com/nois-lang/noisc/pkg/interp"
	"github.com/nois-lang/noisc/pkg/parse"
	"github.com/nois-lang/noisc/pkg/stdlib"
)

var Description = strings.ReplaceAll(`
noisc is the reference tool for Nois, a small expression-oriented functional
language. It parses source into a typed syntax tree and, for 'run' and
'repl', evaluates it directly with a tree-walking interpreter.
`, "\n", " ")

var Noisc = cli.New(Description).
	WithCommand(parseCmd).
	WithCommand(runCmd).
	WithCommand(replCmd)

var verboseOpt = cli.NewOption("verbose", "Logs debug_() output and internal trace information").
	WithType(cli.TypeBool)

var parseCmd = cli.NewCommand("parse", "Parses a source file and prints its syntax tree, or reports a syntax error").
	WithArg(cli.NewArg("input", "Path to a .nois source file").WithType(cli.TypeString)).
	WithOption(verboseOpt).
	WithAction(handleParse)

var runCmd = cli.NewCommand("run", "Parses and evaluates a source file").
	WithArg(cli.NewArg("input", "Path to a .nois source file").WithType(cli.TypeString)).
	WithArg(cli.NewArg("args", "Arguments exposed to the program through args()").
		AsOptional().WithType(cli.TypeString)).
	WithOption(verboseOpt).
	WithAction(handleRun)

var replCmd = cli.NewCommand("repl", "Starts an interactive read-eval-print loop").
	WithOption(verboseOpt).
	WithAction(handleRepl)

func setVerbosity(options map[string]string) {
	if _, on := options["verbose"]; on {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}
}

func handleParse(args []string, options map[string]string) int {
	setVerbosity(options)
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "ERROR: missing input file, use --help")
		return 1
	}
	source, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: unable to read input file: %s\n", err)
		return 1
	}
	prog, err := parse.NewParser().Parse(source)
	if err != nil {
		printError(err)
		return 1
	}
	fmt.Printf("%+v\n", prog)
	fmt.Printf("parsed %d top-level statement(s)\n", len(prog.Block.Statements))
	return 0
}

func handleRun(args []string, options map[string]string) int {
	setVerbosity(options)
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "ERROR: missing input file, use --help")
		return 1
	}
	source, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: unable to read input file: %s\n", err)
		return 1
	}
	prog, err := parse.NewParser().Parse(source)
	if err != nil {
		printError(err)
		return 1
	}
	ctx := interp.NewContext(string(source), stdlib.Global())
	ctx.RunArgs = args[1:]
	if _, err := interp.EvalProgram(ctx, prog); err != nil {
		printError(err)
		return 1
	}
	return 0
}

func handleRepl(args []string, options map[string]string) int {
	setVerbosity(options)
	rl, err := readline.New("nois> ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: unable to start readline: %s\n", err)
		return 1
	}
	defer rl.Close()

	ctx := interp.NewContext("", stdlib.Global())
	parser := parse.NewParser()
	for {
		line, err := rl.Readline()
		if err == io.EOF || err == readline.ErrInterrupt {
			return 0
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
			return 1
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		prog, err := parser.ParseString(line)
		if err != nil {
			printError(err)
			continue
		}
		ctx.Source = line
		v, err := interp.EvalProgram(ctx, prog)
		if err != nil {
			printError(err)
			continue
		}
		fmt.Println(v.Display())
	}
}

// printError reports a failure in red, matching the original interpreter's
// use of a colored crate for user-visible panics and errors.
func printError(err error) {
	color.New(color.FgRed).Fprintln(color.Error, err.Error())
}

func main() { os.Exit(Noisc.Run(os.Args, os.Stdout)) }
