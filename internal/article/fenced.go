package article

import (
	"strings"

	"braces.dev/errtrace"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
	"go.abhg.dev/codefence/internal/codeblock"
	"go.abhg.dev/codefence/internal/fence"
)

// CodeRenderer renders a fenced code block into HTML.
type CodeRenderer interface {
	RenderCode(*codeblock.Request) string
}

// fencedCodeRenderer is a Goldmark renderer for fenced code blocks
// that delegates to a CodeRenderer.
type fencedCodeRenderer struct {
	code CodeRenderer
}

var _ renderer.NodeRenderer = (*fencedCodeRenderer)(nil)

func (r *fencedCodeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
}

func (r *fencedCodeRenderer) renderFencedCodeBlock(
	w util.BufWriter, source []byte, node ast.Node, entering bool,
) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	n := node.(*ast.FencedCodeBlock)
	_, err := w.WriteString(r.code.RenderCode(fencedRequest(n, source)))
	return ast.WalkSkipChildren, errtrace.Wrap(err)
}

// fencedRequest converts a fenced code block into a render request.
//
// The first word of the info string is the language and its parameters,
// e.g. "csharp:title=Program.cs".
// Everything after it is the meta string.
func fencedRequest(n *ast.FencedCodeBlock, source []byte) *codeblock.Request {
	var info string
	if n.Info != nil {
		info = strings.TrimSpace(string(n.Info.Segment.Value(source)))
	}

	lang, meta, _ := strings.Cut(info, " ")
	meta = strings.TrimSpace(meta)

	var className string
	if len(lang) > 0 {
		className = "language-" + lang
	}

	var code strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		code.Write(seg.Value(source))
	}

	noLineNumbers, _ := fence.MetaFlag(meta, "noLineNumbers")
	return &codeblock.Request{
		Code:          strings.TrimSuffix(code.String(), "\n"),
		ClassName:     className,
		Meta:          meta,
		NoLineNumbers: noLineNumbers,
	}
}
