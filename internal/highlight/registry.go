package highlight

import (
	"slices"
	"strings"

	chroma "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"golang.org/x/text/cases"
)

// DefaultLanguages is the set of grammars registered when none are specified.
// The shell session grammar is the default for command line snippets.
var DefaultLanguages = []string{
	"shell-session",
	"console",
	"bash",
	"shell",
	"sh",
	"csharp",
	"aspnet",
	"qsharp",
	"go",
	"js",
	"javascript",
	"jsx",
	"ts",
	"typescript",
	"tsx",
	"json",
	"yaml",
	"toml",
	"html",
	"css",
	"markdown",
	"python",
	"sql",
	"docker",
	"powershell",
}

// _grammarAliases maps language names that Chroma doesn't know
// to the closest grammar that it does.
var _grammarAliases = map[string]string{
	"aspnet": "csharp",
}

// Registry maps language identifiers to grammars.
//
// A Registry is immutable after construction,
// and safe for concurrent use.
type Registry struct {
	lexers  map[string]chroma.Lexer // keyed by folded name
	names   []string
	missing []string
}

// NewRegistry builds a registry with the given grammars.
// Names are matched case-insensitively.
//
// Names that don't match a known grammar are not registered.
// They're reported by [Registry.Missing].
func NewRegistry(names ...string) *Registry {
	r := Registry{lexers: make(map[string]chroma.Lexer, len(names))}
	for _, name := range names {
		name = strings.TrimSpace(name)
		key := foldName(name)
		if len(key) == 0 {
			continue
		}
		if _, ok := r.lexers[key]; ok {
			continue
		}

		l := lexers.Get(name)
		if l == nil {
			if alias, ok := _grammarAliases[key]; ok {
				l = lexers.Get(alias)
			}
		}
		if l == nil {
			r.missing = append(r.missing, name)
			continue
		}

		r.lexers[key] = chroma.Coalesce(l)
		r.names = append(r.names, name)
	}
	slices.Sort(r.names)
	return &r
}

func foldName(name string) string {
	// Casers carry state, so each call gets its own.
	return cases.Fold().String(name)
}

// Languages returns the registered language names in sorted order.
func (r *Registry) Languages() []string {
	return slices.Clone(r.names)
}

// Missing returns the names passed to [NewRegistry]
// that did not match a known grammar.
func (r *Registry) Missing() []string {
	return slices.Clone(r.missing)
}

// Has reports whether a grammar is registered for the given language.
func (r *Registry) Has(language string) bool {
	_, ok := r.lookup(language)
	return ok
}

func (r *Registry) lookup(language string) (chroma.Lexer, bool) {
	if r == nil || len(language) == 0 {
		return nil, false
	}
	l, ok := r.lexers[foldName(language)]
	return l, ok
}

// Tokenize splits src into lines of tokens
// using the grammar registered for language.
// The result always has one entry per newline-delimited line of src.
//
// If the language isn't registered or the grammar fails on src,
// Tokenize falls back to [Plain].
func (r *Registry) Tokenize(src, language string) (lines [][]Token) {
	lexer, ok := r.lookup(language)
	if !ok {
		return Plain(src)
	}

	defer func() {
		if recover() != nil {
			lines = Plain(src)
		}
	}()

	tokens, err := chroma.Tokenise(lexer, nil, src)
	if err != nil || !reproduces(tokens, src) {
		return Plain(src)
	}

	idx := NewTokenIndex(tokens)
	lines = make([][]Token, 0, Lines(src))
	forEachLine(src, func(start, end int) {
		lines = append(lines, idx.Slice(start, end))
	})
	return lines
}

// reproduces reports whether the token values concatenate back to src.
// Some grammars append a trailing newline to their input.
// That is permitted.
func reproduces(tokens []chroma.Token, src string) bool {
	var sb strings.Builder
	sb.Grow(len(src) + 1)
	for _, t := range tokens {
		sb.WriteString(t.Value)
	}

	rest, ok := strings.CutPrefix(sb.String(), src)
	return ok && (rest == "" || rest == "\n")
}
