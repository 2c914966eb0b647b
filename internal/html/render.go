// Package html renders articles and code blocks into HTML.
package html

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"time"

	"braces.dev/errtrace"
	"go.abhg.dev/codefence/internal/article"
	"go.abhg.dev/codefence/internal/relative"
)

const (
	_staticDir = "_"

	// DateFormat is the format of dates displayed on article pages.
	DateFormat = "2-Jan-2006"
)

var (
	//go:embed tmpl/*.html
	_tmplFS embed.FS

	//go:embed static/**
	_staticFS embed.FS

	// Trick borrowed from pkgsite:
	// Unusable function references at parse time,
	// and then Clone and replace at render time.
	// This way, template validity is still
	// verified at init.
	_articleTmpl = template.Must(
		template.New("article.html").
			Funcs((*render)(nil).FuncMap()).
			ParseFS(_tmplFS, "tmpl/article.html", "tmpl/layout.html"),
	)
)

// Renderer renders articles into HTML pages.
type Renderer struct {
	// Whether we're in embedded mode.
	// In this mode, output will only contain the article body
	// and will not generate complete, stylized HTML pages.
	Embedded bool

	// Highlighter renders code blocks into HTML.
	// Its stylesheet is appended to the static CSS.
	Highlighter *Highlighter
}

func (r *Renderer) templateName() string {
	if r.Embedded {
		return "Body"
	}
	return "Page"
}

// WriteStatic dumps the contents of static/ into the given directory.
//
// This is a no-op if the renderer is running in embedded mode.
func (r *Renderer) WriteStatic(dir string) error {
	if r.Embedded {
		return nil
	}

	dir = filepath.Join(dir, _staticDir)
	static, err := fs.Sub(_staticFS, "static")
	if err != nil {
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(fs.WalkDir(static, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || path == "." {
			return err
		}

		outPath := filepath.Join(dir, filepath.FromSlash(path))
		if d.IsDir() {
			return os.MkdirAll(outPath, 0o1755)
		}

		bs, err := fs.ReadFile(static, path)
		if err != nil {
			return err
		}

		// Syntax highlighting classes live in the same stylesheet.
		if path == "css/main.css" && r.Highlighter != nil {
			buff := bytes.NewBuffer(bs)
			buff.WriteString("\n")
			if err := r.Highlighter.WriteCSS(buff); err != nil {
				return err
			}
			bs = buff.Bytes()
		}

		return os.WriteFile(outPath, bs, 0o644)
	}))
}

// ArticleInfo specifies the article that should be rendered.
type ArticleInfo struct {
	*article.Article

	// Path to the article's directory from the root of the output.
	Path string
}

// RenderArticle renders a single article.
func (r *Renderer) RenderArticle(w io.Writer, info *ArticleInfo) error {
	render := render{Path: info.Path}
	return errtrace.Wrap(template.Must(_articleTmpl.Clone()).
		Funcs(render.FuncMap()).
		ExecuteTemplate(w, r.templateName(), info))
}

type render struct {
	Path string
}

func (r *render) FuncMap() template.FuncMap {
	return template.FuncMap{
		"static":     r.static,
		"body":       r.body,
		"formatDate": formatDate,
	}
}

func (r *render) static(p string) string {
	return relative.Path(r.Path, path.Join(_staticDir, p))
}

func (*render) body(bs []byte) template.HTML {
	return template.HTML(bs)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateFormat)
}
