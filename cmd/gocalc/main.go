// Command gocalc is an interactive calculator for informal math text.
//
// Input runs through the same pipeline the library exposes: constants
// are expanded, the normalizer makes implicit multiplication and bare
// function application explicit, and the restricted evaluator reduces
// the result. Function calls like sin(...) are applied outside the core
// grammar, which never evaluates names.
//
// Usage:
//
//	gocalc                 interactive session
//	gocalc '2(3+1)^2'      evaluate the arguments and exit
//
// Flags:
//
//	-history path   history database location (default: per-user cache dir)
//	-no-history     disable persistent history
//	-debug          enable debug logging to stderr
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/acarlucci/gocalc"
	"github.com/acarlucci/gocalc/pkg/evaluator"
	"github.com/acarlucci/gocalc/pkg/functions"
	"github.com/acarlucci/gocalc/pkg/history"
)

const helpText = `commands:
/help           print this help
/history        show recorded evaluations
/clear          clear recorded evaluations
/mode deg|rad   set or show the angle mode
/quit           leave

memory:
m+  add last result to memory     m-  subtract last result
mr  recall memory                 mc  clear memory

operators: + - * / % ** ( )   ("^" is accepted and rewritten to "**")
constants: pi e`

func main() {
	historyPath := flag.String("history", "", "history database path (default: per-user cache directory)")
	noHistory := flag.Bool("no-history", false, "disable persistent history")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	s := &session{
		eval: evaluator.New(
			evaluator.WithDebug(*debug),
			evaluator.WithLogger(logger),
		),
		logger: logger,
		mode:   functions.Radians,
		out:    os.Stdout,
	}

	// One-shot mode: evaluate the arguments and exit.
	if flag.NArg() > 0 {
		result, _, err := s.evalLine(strings.Join(flag.Args(), " "))
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(gocalc.FormatNumber(result))
		return
	}

	if !*noHistory {
		path := *historyPath
		if path == "" {
			path = defaultHistoryPath()
		}
		if path != "" {
			st, err := history.Open(path)
			if err != nil {
				logger.Warn("history disabled", "error", err)
			} else {
				s.hist = st
				defer st.Close()
			}
		}
	}

	s.repl(os.Stdin)
}

func defaultHistoryPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	dir = filepath.Join(dir, "gocalc")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ""
	}
	return filepath.Join(dir, "history.db")
}

// session holds the state of one interactive run.
type session struct {
	eval   *evaluator.Evaluator
	hist   *history.Store // nil when history is disabled
	logger *slog.Logger
	mode   functions.AngleMode
	memory float64
	last   float64
	out    io.Writer
}

func (s *session) repl(in io.Reader) {
	fmt.Fprintf(s.out, "gocalc %s -- type /help for commands\n", gocalc.Version())
	scanner := bufio.NewScanner(in)
	fmt.Fprint(s.out, "> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" && !s.handle(line) {
			return
		}
		fmt.Fprint(s.out, "> ")
	}
}

// handle processes one input line. Returns false when the session ends.
func (s *session) handle(line string) bool {
	if strings.HasPrefix(line, "/") {
		return s.command(line)
	}

	switch strings.ToLower(line) {
	case "m+":
		s.memory += s.last
		fmt.Fprintf(s.out, "memory = %s\n", gocalc.FormatNumber(s.memory))
		return true
	case "m-":
		s.memory -= s.last
		fmt.Fprintf(s.out, "memory = %s\n", gocalc.FormatNumber(s.memory))
		return true
	case "mr":
		s.last = s.memory
		fmt.Fprintln(s.out, gocalc.FormatNumber(s.memory))
		return true
	case "mc":
		s.memory = 0
		fmt.Fprintln(s.out, "memory cleared")
		return true
	}

	s.evaluate(line)
	return true
}

func (s *session) command(line string) bool {
	parts := strings.SplitN(line[1:], " ", 2)
	switch parts[0] {
	case "quit", "exit":
		fmt.Fprintln(s.out, "bye")
		return false
	case "help":
		fmt.Fprintln(s.out, helpText)
		fmt.Fprintf(s.out, "functions: %s\n", strings.Join(functions.Names(), " "))
	case "history":
		s.showHistory()
	case "clear":
		s.clearHistory()
	case "mode":
		s.setMode(parts)
	default:
		fmt.Fprintf(s.out, "unknown command %q, try /help\n", parts[0])
	}
	return true
}

func (s *session) setMode(parts []string) {
	if len(parts) < 2 {
		fmt.Fprintf(s.out, "angle mode: %s\n", s.mode)
		return
	}
	switch strings.TrimSpace(parts[1]) {
	case "deg":
		s.mode = functions.Degrees
	case "rad":
		s.mode = functions.Radians
	default:
		fmt.Fprintln(s.out, "usage: /mode deg|rad")
		return
	}
	fmt.Fprintf(s.out, "angle mode: %s\n", s.mode)
}

func (s *session) evaluate(line string) {
	result, norm, err := s.evalLine(line)
	if err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
		return
	}
	s.last = result
	display := gocalc.FormatNumber(result)
	fmt.Fprintln(s.out, display)

	if s.hist != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.hist.Add(ctx, line, norm, display); err != nil {
			s.logger.Warn("failed to record history", "error", err)
		}
	}
}

// evalLine runs the full pipeline: constant expansion, normalization,
// then evaluation. The normalized form is returned for the history.
func (s *session) evalLine(line string) (float64, string, error) {
	norm := gocalc.Normalize(expandConstants(line))
	result, err := s.evalNormalized(norm)
	return result, norm, err
}

func (s *session) evalNormalized(norm string) (float64, error) {
	if result, handled, err := s.tryApply(norm); handled {
		return result, err
	}
	return s.eval.Evaluate(norm)
}

// tryApply recognizes a whole line of the shape name(inner) where name
// is a known function and the final ')' closes the '(' after the name.
// The inner expression is evaluated through the restricted core and the
// function applied to the result, so calls never enter the grammar.
// Embedded calls like "2*sin(1)" are not recognized and fall through to
// the core parser, which rejects them.
func (s *session) tryApply(norm string) (float64, bool, error) {
	trimmed := strings.TrimSpace(norm)
	open := strings.IndexByte(trimmed, '(')
	if open <= 0 || !strings.HasSuffix(trimmed, ")") {
		return 0, false, nil
	}
	name := trimmed[:open]
	if !functions.IsKnown(name) {
		return 0, false, nil
	}
	inner := strings.TrimSpace(trimmed[open+1 : len(trimmed)-1])
	if !balancedParens(inner) {
		return 0, false, nil
	}
	arg, err := s.evalNormalized(inner)
	if err != nil {
		return 0, true, err
	}
	result, err := functions.Apply(name, arg, s.mode)
	return result, true, err
}

// balancedParens reports whether every '(' in s closes inside s and no
// ')' closes one opened before s.
func balancedParens(s string) bool {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

func (s *session) showHistory() {
	if s.hist == nil {
		fmt.Fprintln(s.out, "history is disabled")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	entries, err := s.hist.List(ctx, 0)
	if err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
		return
	}
	if len(entries) == 0 {
		fmt.Fprintln(s.out, "history is empty")
		return
	}
	// List returns newest first; a transcript reads top to bottom.
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		fmt.Fprintf(s.out, "%s = %s\n", e.Input, e.Result)
	}
}

func (s *session) clearHistory() {
	if s.hist == nil {
		fmt.Fprintln(s.out, "history is disabled")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.hist.Clear(ctx); err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
		return
	}
	fmt.Fprintln(s.out, "history cleared")
}

// expandConstants replaces the standalone words pi and e with their
// parenthesized numeric values before normalization. The parentheses
// let "2pi" become "2*(3.14...)" through the ordinary adjacency rules
// instead of fusing into one number.
func expandConstants(text string) string {
	var out strings.Builder
	out.Grow(len(text) + 16)
	for i := 0; i < len(text); {
		c := text[i]
		if !isIdentStart(c) {
			out.WriteByte(c)
			i++
			continue
		}
		j := i + 1
		for j < len(text) && isIdentChar(text[j]) {
			j++
		}
		switch word := text[i:j]; word {
		case "pi":
			out.WriteString(piLiteral)
		case "e":
			out.WriteString(eLiteral)
		default:
			out.WriteString(word)
		}
		i = j
	}
	return out.String()
}

var (
	piLiteral = "(" + strconv.FormatFloat(math.Pi, 'g', -1, 64) + ")"
	eLiteral  = "(" + strconv.FormatFloat(math.E, 'g', -1, 64) + ")"
)

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
