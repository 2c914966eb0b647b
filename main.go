// codefence renders Markdown articles into HTML pages
// with syntax highlighted code blocks.
package main

import (
	"errors"
	"flag"
	"io"
	"log"
	"os"

	"go.abhg.dev/codefence/internal/article"
	"go.abhg.dev/codefence/internal/codeblock"
	"go.abhg.dev/codefence/internal/highlight"
	"go.abhg.dev/codefence/internal/html"
)

func main() {
	cmd := mainCmd{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	os.Exit(cmd.Run(os.Args[1:]))
}

// mainCmd is the actual entry point to the program.
type mainCmd struct {
	Stdout io.Writer // == os.Stdout
	Stderr io.Writer // == os.Stderr

	log *log.Logger
}

func (cmd *mainCmd) Run(args []string) (exitCode int) {
	cmd.log = log.New(cmd.Stderr, "", 0)

	opts, err := (&cliParser{
		Stdout: cmd.Stdout,
		Stderr: cmd.Stderr,
	}).Parse(args)
	if err != nil {
		// '$cmd -h' should exit with zero.
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		// No need to print anything.
		// Parse prints messages.
		return 1
	}

	if err := cmd.run(opts); err != nil {
		cmd.log.Printf("codefence: %v", err)
		return 1
	}
	return 0
}

func (cmd *mainCmd) run(opts *params) (err error) {
	debugw, closeDebug, err := opts.Debug.Create(cmd.Stderr)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, closeDebug())
	}()
	debugLog := log.New(debugw, "", 0)

	style, ok := highlight.Style(opts.Style)
	if !ok {
		cmd.log.Printf("Unknown style %q, using %q.", opts.Style, style.Name)
	}

	names := append([]string(nil), highlight.DefaultLanguages...)
	for _, lang := range opts.Languages {
		names = append(names, string(lang))
	}
	registry := highlight.NewRegistry(names...)
	if missing := registry.Missing(); len(missing) > 0 {
		debugLog.Printf("Grammars not available: %q", missing)
	}
	debugLog.Printf("Grammars: %q", registry.Languages())

	highlighter := html.Highlighter{
		Style:      style,
		UseClasses: !opts.Embedded,
		CopyButton: opts.CopyButton,
	}

	gen := Generator{
		Log:      cmd.log,
		DebugLog: debugLog,
		Parser: &article.Parser{
			Code: &html.CodeRenderer{
				Blocks: &codeblock.Renderer{
					Tokenizer:   registry,
					LineNumbers: opts.LineNumbers,
				},
				Highlighter: &highlighter,
			},
		},
		Renderer: &html.Renderer{
			Embedded:    opts.Embedded,
			Highlighter: &highlighter,
		},
		OutDir:   opts.OutputDir,
		Basename: opts.Basename,
	}

	return gen.Generate(opts.Files)
}
