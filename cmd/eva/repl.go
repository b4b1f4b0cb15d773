package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/urfave/cli/v2"

	"github.com/thomasrohde/eva/pkg/diagnostics"
	"github.com/thomasrohde/eva/pkg/evaluator"
	"github.com/thomasrohde/eva/pkg/formatter"
	"github.com/thomasrohde/eva/pkg/help"
	"github.com/thomasrohde/eva/pkg/parser"
	"github.com/thomasrohde/eva/pkg/runtime"
)

const (
	promptMain = "eva> "
	promptCont = "...> "
)

const replHelp = `Enter statements to evaluate them. Input continues on the next line
until it forms complete statements.

  :help [TOPIC]   this text, or an "eva help" topic
  :globals        list global names
  :load FILE      evaluate a file in this session
  :reset          start over with a fresh global environment
  :quit           leave (also Ctrl+D)
`

func cmdRepl(c *cli.Context, s streams) error {
	cfg, err := loadConfig(s, false)
	if err != nil {
		return err
	}
	opts := []runtime.Option{runtime.WithConfig(cfg), runtime.WithStdout(s.out)}
	if c.IsSet("module-dir") {
		opts = append(opts, runtime.WithModuleDir(c.String("module-dir")))
	}

	r, err := newRepl(runtime.New(opts...), s.out, s.err)
	if err != nil {
		return reportError(s.err, err, "", "", true)
	}
	defer r.close()

	fmt.Fprintf(s.out, "Eva %s. Type :help for commands, :quit to exit.\n", evaluator.DefaultVersion)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	loadHistory(ln, cfg.HistoryFile)

	for {
		src, ok := readByParseProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Fprintln(s.out)
			break
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		if r.handle(src) {
			break
		}
	}

	saveHistory(ln, cfg.HistoryFile)
	return nil
}

// readByParseProbe reads lines until the buffer parses, or fails for a reason other
// than ending too early. It returns false on EOF.
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder
	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := ln.Prompt(p)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// Ctrl+C drops the pending input.
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		} else if strings.HasPrefix(strings.TrimSpace(line), ":") {
			return line, true
		}
		b.WriteString(line)

		src := b.String()
		if !needsMore(src) {
			return src, true
		}
	}
}

// needsMore reports whether src stops in the middle of a statement.
func needsMore(src string) bool {
	if strings.TrimSpace(src) == "" {
		return false
	}
	_, diags := parser.Parse(src, "<repl>")
	return diagnostics.IsIncomplete(diags)
}

func loadHistory(ln *liner.State, path string) {
	if path == "" {
		return
	}
	if f, err := os.Open(path); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
}

func saveHistory(ln *liner.State, path string) {
	if path == "" {
		return
	}
	if f, err := os.Create(path); err == nil {
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}
}

// repl evaluates input against a persistent session, independent of the terminal.
type repl struct {
	rt   *runtime.Runtime
	sess *runtime.Session
	out  io.Writer
	err  io.Writer
}

func newRepl(rt *runtime.Runtime, out, errOut io.Writer) (*repl, error) {
	sess, err := rt.NewSession()
	if err != nil {
		return nil, err
	}
	return &repl{rt: rt, sess: sess, out: out, err: errOut}, nil
}

func (r *repl) close() {
	r.sess.Close()
}

// handle runs one complete input and reports whether the REPL should exit.
func (r *repl) handle(input string) bool {
	if strings.HasPrefix(strings.TrimSpace(input), ":") {
		return r.command(input)
	}
	r.eval(input)
	return false
}

func (r *repl) eval(src string) {
	v, err := r.sess.Eval(src)
	if err != nil {
		_ = reportError(r.err, err, src, r.sess.Name(), true)
		return
	}
	if _, isNull := v.(evaluator.Null); isNull || v == nil {
		return
	}
	fmt.Fprintln(r.out, displayValue(v))
}

func (r *repl) command(line string) bool {
	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case ":quit", ":exit", ":q":
		return true

	case ":help":
		if len(fields) < 2 {
			fmt.Fprint(r.out, replHelp)
			return false
		}
		_, content, err := help.MatchTopic(fields[1])
		if err != nil {
			fmt.Fprintln(r.err, err)
			return false
		}
		fmt.Fprint(r.out, content)

	case ":globals":
		fmt.Fprintln(r.out, strings.Join(r.sess.Globals(), " "))

	case ":load":
		if len(fields) < 2 {
			fmt.Fprintln(r.err, "usage: :load FILE")
			return false
		}
		data, err := os.ReadFile(fields[1])
		if err != nil {
			fmt.Fprintf(r.err, "cannot read %s: %s\n", fields[1], err)
			return false
		}
		r.eval(string(data))

	case ":reset":
		sess, err := r.rt.NewSession()
		if err != nil {
			_ = reportError(r.err, err, "", "", true)
			return false
		}
		r.sess.Close()
		r.sess = sess
		fmt.Fprintln(r.out, "session reset.")

	default:
		fmt.Fprintf(r.err, "unknown command %s. Type :help for help.\n", fields[0])
	}
	return false
}

// displayValue shows strings quoted so they read apart from other values.
func displayValue(v evaluator.Value) string {
	if str, ok := v.(evaluator.String); ok {
		if lit, err := formatter.FormatValue(str); err == nil {
			return lit
		}
	}
	return evaluator.ToString(v)
}
