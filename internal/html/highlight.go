package html

import (
	"bytes"
	"io"
	"strconv"
	"strings"
	"sync"

	chroma "github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"go.abhg.dev/codefence/internal/codeblock"
	"go.abhg.dev/codefence/internal/highlight"
)

// _attrEscaper escapes text for use inside a double-quoted attribute.
// Carriage returns are escaped too
// because HTML parsers drop them from raw text.
var _attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"'", "&#39;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&#34;",
	"\r", "&#13;",
)

var _textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\r", "&#13;",
)

// Highlighter turns [codeblock.Block]s into HTML.
type Highlighter struct {
	// Style used for syntax highlighting of code.
	// Defaults to [highlight.PlainStyle].
	Style *chroma.Style

	// UseClasses specifies whether the highlighter
	// uses inline 'style' attributes for highlighting,
	// or classes, assumign use of an appropriate style sheet.
	UseClasses bool

	// CopyButton adds a copy-to-clipboard button to each block.
	CopyButton bool

	once      sync.Once
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

func (h *Highlighter) init() {
	h.once.Do(func() {
		h.style = h.Style
		if h.style == nil {
			h.style = highlight.PlainStyle
		}
		h.formatter = chromahtml.New(
			chromahtml.PreventSurroundingPre(true),
			chromahtml.WithClasses(h.UseClasses),
			chromahtml.WithLineNumbers(true),
		)
	})
}

// WriteCSS writes the style classes for this highlighter to writer.
// If this highlighter is not using classes, WriteCSS is a no-op.
func (h *Highlighter) WriteCSS(w io.Writer) error {
	h.init()

	if !h.UseClasses {
		return nil
	}

	return h.formatter.WriteCSS(w, h.style)
}

// Highlight renders the given code block into HTML.
func (h *Highlighter) Highlight(block *codeblock.Block) string {
	h.init()

	if block == nil {
		return ""
	}

	r := blockRenderer{h: h}
	if len(block.Title) > 0 {
		r.WriteString(`<div class="code-title"><div>`)
		r.text(block.Title)
		r.WriteString(`</div></div>`)
	}

	r.WriteString(`<div class="code-highlight" data-language="`)
	r.attr(block.Language)
	r.WriteString(`">`)

	r.WriteString("<pre")
	r.styled(chroma.PreWrapper)
	r.WriteString(` data-linenumber="`)
	r.WriteString(strconv.FormatBool(block.LineNumbers))
	r.WriteString(`">`)

	if h.CopyButton {
		r.renderCopy(block.Copy)
	}

	r.WriteString(`<code class="language-`)
	r.attr(block.Language)
	r.WriteString(`">`)
	for _, line := range block.Lines {
		r.renderLine(line)
	}
	r.WriteString("</code></pre></div>")
	return r.String()
}

type blockRenderer struct {
	bytes.Buffer

	h *Highlighter
}

func (r *blockRenderer) attr(s string) {
	_attrEscaper.WriteString(r, s)
}

func (r *blockRenderer) text(s string) {
	_textEscaper.WriteString(r, s)
}

// styled writes the class or style attribute for the given token type,
// including the leading space.
// Other classes, if any, are placed before the token type's class.
func (r *blockRenderer) styled(tt chroma.TokenType, classes ...string) {
	if r.h.UseClasses {
		classes = append(classes, chroma.StandardTypes[tt])
		r.WriteString(` class="`)
		r.attr(strings.Join(classes, " "))
		r.WriteString(`"`)
		return
	}

	if len(classes) > 0 {
		r.WriteString(` class="`)
		r.attr(strings.Join(classes, " "))
		r.WriteString(`"`)
	}
	if css := r.css(tt); len(css) > 0 {
		r.WriteString(` style="`)
		r.attr(css)
		r.WriteString(`"`)
	}
}

func (r *blockRenderer) css(tt chroma.TokenType) string {
	entry := r.h.style.Get(tt)
	switch tt {
	case chroma.PreWrapper, chroma.Background:
		// The wrapper carries the background.
	default:
		entry = entry.Sub(r.h.style.Get(chroma.Background))
	}

	css := chromahtml.StyleEntryToCSS(entry)
	switch tt {
	case chroma.Line:
		css = strings.TrimSuffix("display: flex; "+css, "; ")
	case chroma.LineNumbers:
		css = strings.TrimSuffix("user-select: none; margin-right: 0.4em; "+css, "; ")
	}
	return css
}

func (r *blockRenderer) renderCopy(action codeblock.CopyAction) {
	r.WriteString(`<button class="copy-code" type="button" data-filename="`)
	r.attr(action.FileName)
	r.WriteString(`" data-content="`)
	r.attr(action.Content)
	r.WriteString(`">Copy</button>`)
}

func (r *blockRenderer) renderLine(line codeblock.Line) {
	r.WriteString("<span")
	switch {
	case line.Highlighted && r.h.UseClasses:
		r.styled(chroma.Line, chroma.StandardTypes[chroma.LineHighlight])
	case line.Highlighted:
		r.WriteString(` style="`)
		r.attr(r.css(chroma.Line) + "; " + r.css(chroma.LineHighlight))
		r.WriteString(`"`)
	default:
		r.styled(chroma.Line)
	}
	r.WriteString(">")

	if line.Number > 0 {
		r.WriteString("<span")
		r.styled(chroma.LineNumbers)
		r.WriteString(">")
		r.WriteString(strconv.Itoa(line.Number))
		r.WriteString("</span>")
	}

	r.WriteString("<span")
	r.styled(chroma.CodeLine)
	r.WriteString(">")
	for _, tok := range line.Tokens {
		r.renderToken(tok)
	}
	// Keep newlines so that the text content of <code>
	// reads like the original source.
	r.WriteString("\n</span></span>")
}

func (r *blockRenderer) renderToken(tok highlight.Token) {
	if len(tok.Text) == 0 {
		return
	}

	var open bool
	if r.h.UseClasses {
		if class := tok.Class(); len(class) > 0 {
			r.WriteString(`<span class="`)
			r.attr(class)
			r.WriteString(`">`)
			open = true
		}
	} else if css := r.css(tok.Type); len(css) > 0 {
		r.WriteString(`<span style="`)
		r.attr(css)
		r.WriteString(`">`)
		open = true
	}

	r.text(tok.Text)
	if open {
		r.WriteString("</span>")
	}
}
