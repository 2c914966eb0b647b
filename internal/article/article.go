// Package article turns Markdown documents with frontmatter into articles.
//
// Fenced code blocks inside the document
// are handed to a [CodeRenderer]
// with the same annotations the author wrote on the fence.
package article

import (
	"bytes"
	"strings"
	"sync"
	"time"

	"braces.dev/errtrace"
	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// WordsPerMinute is the reading speed used to estimate [Article.TimeToRead].
const WordsPerMinute = 200

// Meta is the frontmatter of an article.
type Meta struct {
	Title        string    `yaml:"title" toml:"title" json:"title"`
	Tags         []string  `yaml:"tags" toml:"tags" json:"tags"`
	Date         time.Time `yaml:"date" toml:"date" json:"date"`
	DateModified time.Time `yaml:"dateModified" toml:"dateModified" json:"dateModified"`
	Author       string    `yaml:"author" toml:"author" json:"author"`
	Private      bool      `yaml:"isPrivate" toml:"isPrivate" json:"isPrivate"`

	// Slug is the path of the article relative to the site root.
	Slug string `yaml:"slug" toml:"slug" json:"slug"`
}

// Article is a parsed and rendered article.
type Article struct {
	Meta

	// Body is the rendered HTML of the article.
	Body []byte

	// WordCount is the number of words in the article's prose.
	// Code blocks are not counted.
	WordCount int

	// TimeToRead is the estimated reading time in minutes.
	TimeToRead int
}

// Parser parses articles.
// A Parser is safe for concurrent use.
type Parser struct {
	// Code renders fenced code blocks.
	// If unset, Goldmark's default rendering is used.
	Code CodeRenderer

	once sync.Once
	md   goldmark.Markdown
}

func (p *Parser) init() {
	p.once.Do(func() {
		rendererOptions := []renderer.Option{
			gmhtml.WithUnsafe(),
		}
		if p.Code != nil {
			rendererOptions = append(rendererOptions,
				renderer.WithNodeRenderers(
					util.Prioritized(&fencedCodeRenderer{code: p.Code}, 100),
				))
		}

		p.md = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(rendererOptions...),
		)
	})
}

// Parse parses the given document.
// The document may start with YAML, TOML, or JSON frontmatter.
func (p *Parser) Parse(src []byte) (*Article, error) {
	p.init()

	var meta Meta
	body, err := frontmatter.Parse(bytes.NewReader(src), &meta)
	if err != nil {
		return nil, errtrace.Errorf("parse frontmatter: %w", err)
	}

	doc := p.md.Parser().Parse(text.NewReader(body))
	words, err := countWords(doc, body)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	var out bytes.Buffer
	if err := p.md.Renderer().Render(&out, body, doc); err != nil {
		return nil, errtrace.Errorf("render markdown: %w", err)
	}

	return &Article{
		Meta:       meta,
		Body:       out.Bytes(),
		WordCount:  words,
		TimeToRead: timeToRead(words),
	}, nil
}

func countWords(doc ast.Node, source []byte) (int, error) {
	var words int
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			words += len(strings.Fields(string(n.Segment.Value(source))))
		}
		return ast.WalkContinue, nil
	})
	return words, errtrace.Wrap(err)
}

func timeToRead(words int) int {
	return max(1, (words+WordsPerMinute-1)/WordsPerMinute)
}
