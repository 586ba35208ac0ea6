// Package shell turns lines of text into namespace operations and writes the
// results to a display surface. It also replays script files line by line.
package shell

import (
	"errors"
	"strings"

	"vfsh/internal/logging"
	"vfsh/internal/namespace"

	sh "mvdan.cc/sh/v3/shell"
)

var (
	shellLogger = logging.GetLogger().WithPrefix("shell")
)

const (
	// DefaultPromptSuffix follows the cursor in the prompt
	DefaultPromptSuffix = "$ "

	introText = "Welcome to the VFS Shell prototype.\n"
	exitText  = "Exiting...\n"
)

// Surface receives everything the dispatcher shows to the user.
type Surface interface {
	Write(text string)
}

type options struct {
	promptSuffix string
	env          map[string]string
	echoInput    bool
}

// Option configures a Dispatcher.
type Option func(*options)

// WithPromptSuffix replaces the text printed after the cursor in the prompt.
func WithPromptSuffix(suffix string) Option {
	return func(o *options) {
		o.promptSuffix = suffix
	}
}

// WithEnv adds variables for $VAR expansion, taking precedence over the process environment.
func WithEnv(vars map[string]string) Option {
	return func(o *options) {
		o.env = vars
	}
}

// WithInputEcho controls whether Serve writes each line it reads back to the
// surface. Turn it off when the input is a terminal that already shows what
// was typed. Execute and Replay always echo.
func WithInputEcho(echo bool) Option {
	return func(o *options) {
		o.echoInput = echo
	}
}

// Dispatcher parses command lines and calls into a Namespace. It is used from
// one goroutine at a time, like the Namespace it drives.
type Dispatcher struct {
	ns        *namespace.Namespace
	out       Surface
	suffix    string
	echoInput bool
	lookup    func(string) string
	commands  map[string]command
}

// NewDispatcher creates a dispatcher writing to out.
func NewDispatcher(ns *namespace.Namespace, out Surface, opts ...Option) *Dispatcher {
	o := options{promptSuffix: DefaultPromptSuffix, echoInput: true}
	for _, opt := range opts {
		opt(&o)
	}

	return &Dispatcher{
		ns:        ns,
		out:       out,
		suffix:    o.promptSuffix,
		echoInput: o.echoInput,
		lookup:    lookupEnv(o.env),
		commands:  builtins(),
	}
}

// Prompt returns the prompt for the current cursor.
func (d *Dispatcher) Prompt() string {
	return d.ns.Cursor() + d.suffix
}

// Intro writes the greeting and the first prompt.
func (d *Dispatcher) Intro() {
	d.out.Write(introText)
	d.out.Write("Supported commands: " + strings.Join(Commands(), ", ") + "\n")
	d.out.Write(d.Prompt())
}

// Execute echoes line, runs it, writes the result, and writes the next prompt.
// Failures are shown on the surface rather than returned; the only error
// returned is ErrExit.
func (d *Dispatcher) Execute(line string) error {
	return d.execute(line, true)
}

func (d *Dispatcher) execute(line string, echo bool) error {
	if echo {
		d.out.Write(line + "\n")
	}

	output, err := d.dispatch(line)
	if errors.Is(err, ErrExit) {
		d.out.Write(exitText)
		return err
	}
	if err != nil {
		shellLogger.Debug("Command %q failed: %v", line, err)
		output = err.Error() + "\n"
	}
	d.out.Write(output)
	d.out.Write(d.Prompt())
	return nil
}

// Split expands $VAR references and splits line into shell words.
func (d *Dispatcher) Split(line string) ([]string, error) {
	if strings.TrimSpace(line) == "" {
		return nil, nil
	}
	words, err := sh.Fields(line, d.lookup)
	if err != nil {
		return nil, &Error{Detail: err.Error(), Err: ErrParse}
	}
	return words, nil
}

func (d *Dispatcher) dispatch(line string) (string, error) {
	words, err := d.Split(line)
	if err != nil {
		return "", err
	}
	if len(words) == 0 {
		return "", nil
	}

	name, args := words[0], words[1:]
	shellLogger.Debug("Dispatching %q with args %q", name, args)
	if name == "exit" {
		return "", ErrExit
	}

	cmd, ok := d.commands[name]
	if !ok {
		return "", &Error{Detail: name, Err: ErrUnknownCommand}
	}
	if cmd.required && len(args) == 0 {
		return "", &Error{Detail: cmd.usage, Err: ErrUsage}
	}

	var arg string
	if len(args) > 0 {
		arg = args[0]
	}
	return cmd.run(d.ns, arg)
}
