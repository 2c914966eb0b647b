package main

import (
	"io"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"

	"braces.dev/errtrace"
	"github.com/goliatone/go-slug"
	"go.abhg.dev/codefence/internal/article"
	"go.abhg.dev/codefence/internal/errdefer"
	"go.abhg.dev/codefence/internal/html"
)

// Parser parses a Markdown article with frontmatter.
type Parser interface {
	Parse([]byte) (*article.Article, error)
}

var _ Parser = (*article.Parser)(nil)

// Renderer renders an article to HTML.
type Renderer interface {
	WriteStatic(string) error
	RenderArticle(io.Writer, *html.ArticleInfo) error
}

var _ Renderer = (*html.Renderer)(nil)

// Generator generates HTML pages for user-specified Markdown files.
//
// In terms of code organization,
// Generator's purpose is to add a separation between main
// and the program's core logic to aid in testability.
type Generator struct {
	Log      *log.Logger
	DebugLog *log.Logger // optional
	Parser   Parser
	Renderer Renderer
	OutDir   string
	Basename string // defaults to index.html
}

// Generate renders each of the given files,
// and the static assets they reference.
func (g *Generator) Generate(files []string) error {
	if err := g.Renderer.WriteStatic(g.OutDir); err != nil {
		return errtrace.Wrap(err)
	}

	seen := make(map[string]string) // page path => file
	for _, file := range files {
		pagePath, err := g.renderFile(file)
		if err != nil {
			return errtrace.Errorf("%v: %w", file, err)
		}
		if prev, ok := seen[pagePath]; ok {
			g.Log.Printf("%v: overwrote %v: both use %q", file, prev, pagePath)
		}
		seen[pagePath] = file
	}
	return nil
}

func (g *Generator) renderFile(file string) (pagePath string, err error) {
	src, err := os.ReadFile(file)
	if err != nil {
		return "", errtrace.Wrap(err)
	}

	art, err := g.Parser.Parse(src)
	if err != nil {
		return "", errtrace.Wrap(err)
	}

	pagePath = articleSlug(file, art.Slug)
	g.Log.Printf("Rendering %v", pagePath)
	if g.DebugLog != nil {
		g.DebugLog.Printf("%v: %d words, %d min read", file, art.WordCount, art.TimeToRead)
	}

	dir := filepath.Join(g.OutDir, filepath.FromSlash(pagePath))
	if err := os.MkdirAll(dir, 0o1755); err != nil {
		return "", errtrace.Wrap(err)
	}

	basename := g.Basename
	if basename == "" {
		basename = "index.html"
	}
	f, err := os.Create(filepath.Join(dir, basename))
	if err != nil {
		return "", errtrace.Wrap(err)
	}
	defer errdefer.Close(&err, f)

	info := html.ArticleInfo{
		Article: art,
		Path:    pagePath,
	}
	if err := g.Renderer.RenderArticle(f, &info); err != nil {
		return "", errtrace.Errorf("render: %w", err)
	}
	return pagePath, nil
}

// articleSlug picks the output directory of an article
// relative to the output root.
// The frontmatter slug wins over the file name,
// and a slug of "/" places the article at the root.
// The result never escapes the output root.
func articleSlug(file, frontmatterSlug string) string {
	p := strings.TrimSpace(frontmatterSlug)
	if p == "" {
		p = fileSlug(file)
	}
	p = strings.TrimPrefix(path.Clean("/"+filepath.ToSlash(p)), "/")
	if p == "" {
		p = "."
	}
	return p
}

// fileSlug derives a URL-friendly slug from a file name.
// Names that can't be normalized are used as-is.
func fileSlug(file string) string {
	base := filepath.Base(file)
	candidate := strings.TrimSpace(strings.TrimSuffix(base, filepath.Ext(base)))
	if candidate == "" {
		return ""
	}
	normalized, err := slug.Normalize(candidate)
	if err != nil || normalized == "" {
		return candidate
	}
	return normalized
}
