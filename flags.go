package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/peterbourgon/ff/v3"
	"go.abhg.dev/codefence/internal/flagvalue"
)

// _envPrefix is the prefix for environment variables
// that may be used in place of flags.
const _envPrefix = "CODEFENCE"

var (
	errHelp             = flag.ErrHelp
	errInvalidArguments = errors.New("invalid arguments")
)

// params holds all arguments for codefence.
type params struct {
	version bool
	help    Help
	config  string

	Debug flagvalue.FileSwitch

	OutputDir string
	Basename  string

	Embedded    bool
	Style       string
	LineNumbers bool
	CopyButton  bool
	Languages   []languageName

	Files []string
}

// cliParser parses the command line arguments for codefence.
type cliParser struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (cmd *cliParser) newFlagSet() (*params, *flag.FlagSet) {
	flag := flag.NewFlagSet("codefence", flag.ContinueOnError)
	// Errors are reported by Parse
	// so that config file and environment errors
	// are printed the same way.
	flag.SetOutput(io.Discard)
	flag.Usage = func() {}

	var p params

	// Filesystem:
	flag.StringVar(&p.OutputDir, "out", "_site", "")
	flag.StringVar(&p.Basename, "basename", "index.html", "")

	// HTML output:
	flag.BoolVar(&p.Embedded, "embed", false, "")
	flag.StringVar(&p.Style, "style", "plain", "")
	flag.BoolVar(&p.LineNumbers, "line-numbers", true, "")
	flag.BoolVar(&p.CopyButton, "copy-button", true, "")

	// Grammars:
	flag.Var(flagvalue.ListOf(&p.Languages), "lang", "")

	// Program-level:
	flag.StringVar(&p.config, "config", "", "")
	flag.Var(&p.Debug, "debug", "")
	flag.BoolVar(&p.version, "version", false, "")
	flag.Var(&p.help, "help", "")
	flag.Var(&p.help, "h", "")

	return &p, flag
}

func (cmd *cliParser) Parse(args []string) (*params, error) {
	p, flag := cmd.newFlagSet()
	err := ff.Parse(flag, args,
		ff.WithEnvVarPrefix(_envPrefix),
		ff.WithEnvVarSplit(","),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
	)
	if err != nil {
		fmt.Fprintln(cmd.Stderr, err)
		UsageHelp.Write(cmd.Stderr)
		return nil, errInvalidArguments
	}
	args = flag.Args()

	if p.version {
		fmt.Fprintln(cmd.Stdout, "codefence", _version)
		return nil, errHelp
	}

	if p.help == DefaultHelp && len(args) > 0 {
		// The user might have done "-h foo"
		// instead of "-h=foo".
		// If the argument is a known help topic,
		// take it.
		if _, ok := _helpTopics[Help(strings.ToLower(args[0]))]; ok {
			p.help = Help(strings.ToLower(args[0]))
		}
	}

	switch p.help {
	case NoHelp:
		// proceed as usual
	default:
		if err := p.help.Write(cmd.Stderr); err != nil {
			fmt.Fprintln(cmd.Stderr, err)
		}
		return nil, errHelp
	}

	if strings.ContainsRune(p.Basename, '/') || p.Basename == "" {
		fmt.Fprintf(cmd.Stderr, "Invalid basename %q: must be a file name.\n", p.Basename)
		return nil, errInvalidArguments
	}

	p.Files = args
	if len(p.Files) == 0 {
		fmt.Fprintln(cmd.Stderr, "Please provide at least one file.")
		UsageHelp.Write(cmd.Stderr)
		return nil, errInvalidArguments
	}

	return p, nil
}

// languageName is a grammar name passed to -lang.
type languageName string

var _ flag.Getter = (*languageName)(nil)

func (l *languageName) Get() any { return string(*l) }

func (l *languageName) String() string { return string(*l) }

func (l *languageName) Set(s string) error {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return errors.New("language name must not be empty")
	}
	*l = languageName(s)
	return nil
}
