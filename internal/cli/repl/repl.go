package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Executor runs one parsed line.
type Executor interface {
	Execute(args []string) error
	Prompt() string
}

// REPL represents the Read-Eval-Print Loop.
type REPL struct {
	exec      Executor
	input     io.Reader
	output    io.Writer
	completer *Completer
	history   *History
}

// Option configures a REPL.
type Option func(*REPL)

// WithIO replaces stdin and stdout.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(r *REPL) {
		r.input = in
		r.output = out
	}
}

// WithHistory sets the history store.
func WithHistory(h *History) Option {
	return func(r *REPL) {
		r.history = h
	}
}

// WithCompleter sets the completer used by "help".
func WithCompleter(c *Completer) Option {
	return func(r *REPL) {
		r.completer = c
	}
}

// New creates a new REPL instance.
func New(exec Executor, opts ...Option) *REPL {
	r := &REPL{
		exec:      exec,
		input:     os.Stdin,
		output:    os.Stdout,
		completer: NewCompleter(),
		history:   NewHistory(""),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run starts the REPL loop. It returns on EOF, "exit" or "quit", saving
// the history on the way out.
func (r *REPL) Run() (err error) {
	if loadErr := r.history.Load(); loadErr != nil {
		fmt.Fprintf(r.output, "warning: history not loaded: %v\n", loadErr)
	}
	defer func() {
		if saveErr := r.history.Save(); saveErr != nil && err == nil {
			err = saveErr
		}
	}()

	reader := bufio.NewReader(r.input)
	for {
		fmt.Fprint(r.output, r.exec.Prompt())

		line, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return readErr
		}

		line = strings.TrimSpace(line)
		if line == "" {
			if readErr != nil {
				fmt.Fprintln(r.output)
				return nil
			}
			continue
		}

		r.history.Add(line)

		switch line {
		case "exit", "quit":
			return nil
		case "help":
			fmt.Fprintln(r.output, strings.Join(r.completer.Complete(""), "\n"))
			continue
		}

		args, splitErr := Split(line)
		if splitErr != nil {
			fmt.Fprintf(r.output, "Error: %v\n", splitErr)
		} else if execErr := r.exec.Execute(args); execErr != nil {
			fmt.Fprintf(r.output, "Error: %v\n", execErr)
		}

		if readErr != nil {
			fmt.Fprintln(r.output)
			return nil
		}
	}
}

// Split breaks a line into arguments. Single and double quotes group
// words; a backslash escapes the next character outside single quotes.
func Split(line string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		inArg   bool
		quote   rune
		escaped bool
	)

	for _, c := range line {
		switch {
		case escaped:
			cur.WriteRune(c)
			escaped = false
		case c == '\\' && quote != '\'':
			escaped = true
			inArg = true
		case quote != 0:
			if c == quote {
				quote = 0
			} else {
				cur.WriteRune(c)
			}
		case c == '"' || c == '\'':
			quote = c
			inArg = true
		case c == ' ' || c == '\t':
			if inArg {
				args = append(args, cur.String())
				cur.Reset()
				inArg = false
			}
		default:
			cur.WriteRune(c)
			inArg = true
		}
	}

	if quote != 0 {
		return nil, fmt.Errorf("unterminated %c quote", quote)
	}
	if escaped {
		return nil, errors.New("trailing backslash")
	}
	if inArg {
		args = append(args, cur.String())
	}
	return args, nil
}
