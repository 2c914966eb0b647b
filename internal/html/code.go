package html

import (
	"go.abhg.dev/codefence/internal/article"
	"go.abhg.dev/codefence/internal/codeblock"
)

// CodeRenderer renders fenced code blocks found in articles into HTML.
type CodeRenderer struct {
	Blocks      *codeblock.Renderer
	Highlighter *Highlighter
}

var _ article.CodeRenderer = (*CodeRenderer)(nil)

// RenderCode renders a single fenced code block.
func (c *CodeRenderer) RenderCode(req *codeblock.Request) string {
	return c.Highlighter.Highlight(c.Blocks.Render(req))
}
