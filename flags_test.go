package main

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.abhg.dev/codefence/internal/iotest"
)

func TestCLIParser(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc string
		give []string
		want params
	}{
		{
			desc: "minimal",
			give: []string{"post.md"},
			want: params{
				OutputDir:   "_site",
				Basename:    "index.html",
				Style:       "plain",
				LineNumbers: true,
				CopyButton:  true,
				Files:       []string{"post.md"},
			},
		},
		{
			desc: "many arguments",
			give: []string{
				"-debug=log.txt",
				"-out", "build/site",
				"-basename", "_index.html",
				"-embed",
				"-style", "monokai",
				"-line-numbers=false",
				"-copy-button=false",
				"-lang", "fsharp",
				"-lang=haskell",
				"a.md",
				"b.md",
			},
			want: params{
				Debug:     "log.txt",
				OutputDir: "build/site",
				Basename:  "_index.html",
				Embedded:  true,
				Style:     "monokai",
				Languages: []languageName{"fsharp", "haskell"},
				Files:     []string{"a.md", "b.md"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			got, err := (&cliParser{
				Stdout: iotest.Writer(t),
				Stderr: iotest.Writer(t),
			}).Parse(tt.give)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestCLIParser_configFile(t *testing.T) {
	t.Parallel()

	configFile := filepath.Join(t.TempDir(), "codefence.conf")
	require.NoError(t, os.WriteFile(configFile, []byte(
		"# site settings\n"+
			"out public\n"+
			"style monokai\n"+
			"line-numbers false\n"+
			"lang fsharp\n"+
			"lang haskell\n",
	), 0o644))

	got, err := (&cliParser{
		Stdout: iotest.Writer(t),
		Stderr: iotest.Writer(t),
	}).Parse([]string{"-config", configFile, "-style", "dracula", "post.md"})
	require.NoError(t, err)

	assert.Equal(t, "public", got.OutputDir)
	assert.Equal(t, "dracula", got.Style, "flags must win over the config file")
	assert.False(t, got.LineNumbers)
	assert.True(t, got.CopyButton)
	assert.Equal(t, []languageName{"fsharp", "haskell"}, got.Languages)
	assert.Equal(t, []string{"post.md"}, got.Files)
}

func TestCLIParser_environment(t *testing.T) {
	t.Setenv("CODEFENCE_OUT", "public")
	t.Setenv("CODEFENCE_STYLE", "monokai")
	t.Setenv("CODEFENCE_COPY_BUTTON", "false")
	t.Setenv("CODEFENCE_LANG", "fsharp,haskell")

	got, err := (&cliParser{
		Stdout: iotest.Writer(t),
		Stderr: iotest.Writer(t),
	}).Parse([]string{"-style=dracula", "post.md"})
	require.NoError(t, err)

	assert.Equal(t, "public", got.OutputDir)
	assert.Equal(t, "dracula", got.Style, "flags must win over the environment")
	assert.False(t, got.CopyButton)
	assert.True(t, got.LineNumbers)
	assert.Equal(t, []languageName{"fsharp", "haskell"}, got.Languages)
}

func TestCLIParser_helpTopic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc string
		give []string
		want string
	}{
		{
			desc: "default",
			give: []string{"-h"},
			want: "USAGE: codefence",
		},
		{
			desc: "topic with =",
			give: []string{"-help=highlight"},
			want: "{LINES}",
		},
		{
			desc: "topic as argument",
			give: []string{"-h", "frontmatter"},
			want: "dateModified",
		},
		{
			desc: "unknown topic",
			give: []string{"-help=nope"},
			want: `unknown help topic "nope"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			var stderr bytes.Buffer
			_, err := (&cliParser{
				Stdout: iotest.Writer(t),
				Stderr: &stderr,
			}).Parse(tt.give)
			assert.ErrorIs(t, err, flag.ErrHelp)
			assert.Contains(t, stderr.String(), tt.want)
		})
	}
}

func TestCLIParser_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc string
		give []string
		want string // expected messages
	}{
		{
			desc: "no files",
			want: "Please provide at least one file",
		},
		{
			desc: "unrecognized",
			give: []string{"-foo=bar", "post.md"},
			want: "flag provided but not defined: -foo",
		},
		{
			desc: "empty language",
			give: []string{"-lang=", "post.md"},
			want: "language name must not be empty",
		},
		{
			desc: "basename with directory",
			give: []string{"-basename", "a/index.html", "post.md"},
			want: `Invalid basename "a/index.html"`,
		},
		{
			desc: "missing config file",
			give: []string{"-config", "does-not-exist.conf", "post.md"},
			want: "does-not-exist.conf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			var stderr bytes.Buffer
			_, err := (&cliParser{
				Stdout: iotest.Writer(t),
				Stderr: &stderr,
			}).Parse(tt.give)
			require.ErrorIs(t, err, errInvalidArguments)
			assert.Contains(t, stderr.String(), tt.want)
		})
	}
}

func TestLanguageName(t *testing.T) {
	t.Parallel()

	fset := flag.NewFlagSet(t.Name(), flag.ContinueOnError)
	fset.SetOutput(iotest.Writer(t))

	var l languageName
	fset.Var(&l, "x", "")
	require.NoError(t, fset.Parse([]string{"-x", " fsharp "}))

	assert.Equal(t, "fsharp", l.String())
	assert.Equal(t, "fsharp", l.Get())
}
