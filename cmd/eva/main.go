// Command eva is the Eva interpreter CLI.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/thomasrohde/eva/pkg/config"
	"github.com/thomasrohde/eva/pkg/diagnostics"
	"github.com/thomasrohde/eva/pkg/evaluator"
	"github.com/thomasrohde/eva/pkg/formatter"
	"github.com/thomasrohde/eva/pkg/help"
	"github.com/thomasrohde/eva/pkg/runtime"
)

// Exit codes.
const (
	exitOK      = 0
	exitUsage   = 1
	exitInvalid = 2
	exitRuntime = 4
)

// streams are the process's standard files, swapped out in tests.
type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

func main() {
	os.Exit(run(os.Args, streams{in: os.Stdin, out: os.Stdout, err: os.Stderr}))
}

// run executes the CLI and returns the process exit code.
func run(args []string, s streams) int {
	err := newApp(s).Run(args)
	if err == nil {
		return exitOK
	}
	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	fmt.Fprintln(s.err, err)
	return exitUsage
}

func prettyFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "pretty",
		Usage: "print diagnostics as text with a source excerpt instead of JSON",
	}
}

func newApp(s streams) *cli.App {
	return &cli.App{
		Name:      "eva",
		Usage:     "run and inspect Eva programs",
		Version:   evaluator.DefaultVersion,
		Reader:    s.in,
		Writer:    s.out,
		ErrWriter: s.err,
		// Exit codes are returned from run, never by calling os.Exit mid-command.
		ExitErrHandler: func(*cli.Context, error) {},
		Action: func(c *cli.Context) error {
			if c.NArg() > 0 {
				fmt.Fprintf(s.err, "Unknown command: %s\n\n", c.Args().First())
			}
			fmt.Fprint(s.err, help.QUICKREF)
			return cli.Exit("", exitUsage)
		},
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "execute a program and print its final value",
				ArgsUsage: "FILE|-",
				Flags: []cli.Flag{
					prettyFlag(),
					&cli.BoolFlag{Name: "json", Usage: "print the final value as JSON, including null"},
					&cli.StringFlag{Name: "trace", Usage: "write trace events as JSON lines to `FILE`"},
					&cli.StringFlag{Name: "module-dir", Usage: "load imported modules from `DIR`"},
					&cli.StringFlag{Name: "return-mode", Usage: "eager or shallow"},
					&cli.IntFlag{Name: "max-environments", Usage: "fail with E_ALLOCATION past `N` environments (0 = unlimited)"},
				},
				Action: func(c *cli.Context) error { return cmdRun(c, s) },
			},
			{
				Name:      "check",
				Usage:     "parse and validate a program without running it",
				ArgsUsage: "FILE|-",
				Flags:     []cli.Flag{prettyFlag()},
				Action:    func(c *cli.Context) error { return cmdCheck(c, s) },
			},
			{
				Name:      "fmt",
				Usage:     "print a program in canonical form",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "write", Aliases: []string{"w"}, Usage: "rewrite the file in place"},
				},
				Action: func(c *cli.Context) error { return cmdFmt(c, s) },
			},
			{
				Name:      "ast",
				Usage:     "dump the syntax tree of a program",
				ArgsUsage: "FILE|-",
				Flags: []cli.Flag{
					prettyFlag(),
					&cli.BoolFlag{Name: "spans", Usage: "include source positions"},
				},
				Action: func(c *cli.Context) error { return cmdAST(c, s) },
			},
			{
				Name:  "repl",
				Usage: "start an interactive session",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "module-dir", Usage: "load imported modules from `DIR`"},
				},
				Action: func(c *cli.Context) error { return cmdRepl(c, s) },
			},
			{
				Name:      "trace",
				Usage:     "summarize a trace file written by run --trace",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "text", Usage: "print a human-readable summary instead of JSON"},
				},
				Action: func(c *cli.Context) error { return cmdTrace(c, s) },
			},
			{
				Name:   "config",
				Usage:  "print the effective configuration as YAML",
				Action: func(c *cli.Context) error { return cmdConfig(c, s) },
			},
			{
				Name:      "help",
				Usage:     "show the quick reference or a help topic",
				ArgsUsage: "[TOPIC]",
				Action:    func(c *cli.Context) error { return cmdHelp(c, s) },
			},
		},
	}
}

func cmdRun(c *cli.Context, s streams) error {
	pretty := c.Bool("pretty")
	source, filename, err := readSource(c, s, "run")
	if err != nil {
		return err
	}

	cfg, err := loadConfig(s, pretty)
	if err != nil {
		return err
	}
	opts := []runtime.Option{runtime.WithConfig(cfg), runtime.WithStdout(s.out)}
	if c.IsSet("module-dir") {
		opts = append(opts, runtime.WithModuleDir(c.String("module-dir")))
	}
	if c.IsSet("return-mode") {
		mode, err := evaluator.ParseReturnMode(c.String("return-mode"))
		if err != nil {
			fmt.Fprintln(s.err, err)
			return cli.Exit("", exitUsage)
		}
		opts = append(opts, runtime.WithReturnMode(mode))
	}
	if c.IsSet("max-environments") {
		opts = append(opts, runtime.WithMaxEnvironments(c.Int("max-environments")))
	}

	tracePath := cfg.Trace
	if c.IsSet("trace") {
		tracePath = c.String("trace")
	}
	if tracePath != "" {
		f, err := os.Create(tracePath)
		if err != nil {
			printDiag(s.err, diagnostics.MakeDiag(diagnostics.EIO, fmt.Sprintf("cannot write trace file: %s", tracePath), nil, ""), pretty)
			return cli.Exit("", exitUsage)
		}
		defer f.Close()
		enc := json.NewEncoder(f)
		enc.SetEscapeHTML(false)
		opts = append(opts,
			runtime.WithRunID(fmt.Sprintf("run-%d", time.Now().UnixNano())),
			runtime.WithTrace(func(e evaluator.TraceEvent) { _ = enc.Encode(e) }),
		)
	}

	result, err := runtime.New(opts...).Run(source, filename)
	if err != nil {
		return reportError(s.err, err, source, filename, pretty)
	}

	if c.Bool("json") {
		fmt.Fprintln(s.out, evaluator.ValueToJSONString(result.Value))
		return nil
	}
	if _, isNull := result.Value.(evaluator.Null); !isNull && result.Value != nil {
		fmt.Fprintln(s.out, evaluator.ToString(result.Value))
	}
	return nil
}

func cmdCheck(c *cli.Context, s streams) error {
	pretty := c.Bool("pretty")
	source, filename, err := readSource(c, s, "check")
	if err != nil {
		return err
	}
	if diags := runtime.New().Check(source, filename); len(diags) > 0 {
		printDiags(s.err, diags, source, filename, pretty)
		return cli.Exit("", exitInvalid)
	}
	if pretty {
		fmt.Fprintln(s.out, "No errors found.")
	} else {
		fmt.Fprintln(s.out, "[]")
	}
	return nil
}

func cmdFmt(c *cli.Context, s streams) error {
	file := c.Args().First()
	if file == "" {
		fmt.Fprintln(s.err, "usage: eva fmt FILE [--write]")
		return cli.Exit("", exitUsage)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		printDiag(s.err, diagnostics.MakeDiag(diagnostics.EIO, fmt.Sprintf("cannot read file: %s", file), nil, ""), false)
		return cli.Exit("", exitUsage)
	}
	source := string(data)

	formatted, err := runtime.New().Format(source, file)
	if err != nil {
		return reportError(s.err, err, source, file, false)
	}
	if formatter.HasComments(source) {
		fmt.Fprintln(s.err, "warning: comments are not preserved by the formatter")
	}

	if c.Bool("write") {
		if err := os.WriteFile(file, []byte(formatted), 0o644); err != nil {
			fmt.Fprintf(s.err, "error writing file: %s\n", err)
			return cli.Exit("", exitUsage)
		}
		return nil
	}
	fmt.Fprint(s.out, formatted)
	return nil
}

func cmdAST(c *cli.Context, s streams) error {
	pretty := c.Bool("pretty")
	source, filename, err := readSource(c, s, "ast")
	if err != nil {
		return err
	}
	dump, err := runtime.New().DumpAST(source, filename, c.Bool("spans"))
	if err != nil {
		return reportError(s.err, err, source, filename, pretty)
	}
	fmt.Fprintln(s.out, dump)
	return nil
}

func cmdConfig(c *cli.Context, s streams) error {
	cfg, err := loadConfig(s, false)
	if err != nil {
		return err
	}
	out, err := cfg.YAML()
	if err != nil {
		fmt.Fprintln(s.err, err)
		return cli.Exit("", exitUsage)
	}
	if cfg.Source != "" {
		fmt.Fprintf(s.out, "# from %s\n", cfg.Source)
	}
	fmt.Fprint(s.out, out)
	return nil
}

func cmdHelp(c *cli.Context, s streams) error {
	topic := c.Args().First()
	if topic == "" {
		fmt.Fprint(s.out, help.QUICKREF)
		return nil
	}
	_, content, err := help.MatchTopic(topic)
	if err != nil {
		fmt.Fprintf(s.err, "%s\nAvailable topics: %s\n", err, strings.Join(help.TopicList, ", "))
		return cli.Exit("", exitUsage)
	}
	fmt.Fprint(s.out, content)
	return nil
}

// readSource reads the FILE argument, or standard input when it is "-".
func readSource(c *cli.Context, s streams, cmd string) (string, string, error) {
	file := c.Args().First()
	if file == "" {
		fmt.Fprintf(s.err, "usage: eva %s [options] FILE|-\n", cmd)
		return "", "", cli.Exit("", exitUsage)
	}
	if file == "-" {
		data, err := io.ReadAll(s.in)
		if err != nil {
			fmt.Fprintf(s.err, "error reading stdin: %s\n", err)
			return "", "", cli.Exit("", exitUsage)
		}
		return string(data), "<stdin>", nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		printDiag(s.err, diagnostics.MakeDiag(diagnostics.EIO, fmt.Sprintf("cannot read file: %s", file), nil, ""), c.Bool("pretty"))
		return "", "", cli.Exit("", exitUsage)
	}
	return string(data), file, nil
}

func loadConfig(s streams, pretty bool) (*config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		printDiag(s.err, diagnostics.MakeDiag(diagnostics.EConfig, err.Error(), nil, "see: eva help config"), pretty)
		return nil, cli.Exit("", exitUsage)
	}
	return cfg, nil
}

// reportError prints err as diagnostics and picks the exit code for it.
func reportError(w io.Writer, err error, source, filename string, pretty bool) error {
	var diagErr *runtime.DiagnosticError
	if errors.As(err, &diagErr) {
		printDiags(w, diagErr.Diagnostics, source, filename, pretty)
		return cli.Exit("", exitInvalid)
	}
	var parseErr *evaluator.ParseError
	if errors.As(err, &parseErr) {
		printDiags(w, parseErr.Diagnostics, "", "", pretty)
		return cli.Exit("", exitInvalid)
	}
	var rtErr *evaluator.RuntimeError
	if errors.As(err, &rtErr) {
		printDiags(w, []diagnostics.Diagnostic{rtErr.Diagnostic()}, source, filename, pretty)
		return cli.Exit("", exitRuntime)
	}
	fmt.Fprintln(w, err.Error())
	return cli.Exit("", exitRuntime)
}

// printDiags writes diags as a JSON array, or as text when pretty. Pretty diagnostics
// located in filename get an excerpt of source under them.
func printDiags(w io.Writer, diags []diagnostics.Diagnostic, source, filename string, pretty bool) {
	if !pretty {
		fmt.Fprintln(w, diagnostics.FormatDiagnostics(diags, false))
		return
	}
	parts := make([]string, len(diags))
	for i, d := range diags {
		if source != "" && d.Span != nil && d.Span.File == filename {
			parts[i] = diagnostics.RenderSource(d, source)
		} else {
			parts[i] = diagnostics.FormatDiagnostic(d, true)
		}
	}
	fmt.Fprintln(w, strings.Join(parts, "\n\n"))
}

func printDiag(w io.Writer, d diagnostics.Diagnostic, pretty bool) {
	printDiags(w, []diagnostics.Diagnostic{d}, "", "", pretty)
}
