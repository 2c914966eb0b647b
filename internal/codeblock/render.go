// Package codeblock assembles fenced code blocks into lines
// ready for display.
//
// A [Renderer] combines the block's annotations
// (language, title, highlighted lines)
// with the tokens produced by a [Tokenizer]
// into a [Block].
// Rendering never fails:
// malformed annotations turn into plain, unhighlighted output.
package codeblock

import (
	"go.abhg.dev/codefence/internal/fence"
	"go.abhg.dev/codefence/internal/highlight"
)

// NoLineNumbersLanguage is a language name that turns off line numbers
// for a block regardless of other settings.
const NoLineNumbersLanguage = "noLineNumbers"

// Request is a single fenced code block to render.
type Request struct {
	// Code is the contents of the block.
	Code string

	// ClassName holds the language and parameters of the block,
	// e.g. "language-csharp:title=Program.cs".
	ClassName string

	// Meta holds the rest of the block's info string,
	// e.g. "{2,4-6}".
	Meta string

	// NoLineNumbers suppresses line numbers for this block.
	NoLineNumbers bool
}

// Tokenizer splits source code into lines of tokens.
// It must return one entry per newline-delimited line of src.
type Tokenizer interface {
	Tokenize(src, language string) [][]highlight.Token
}

var _ Tokenizer = (*highlight.Registry)(nil)

// Renderer turns requests into blocks.
// A Renderer is safe for concurrent use.
type Renderer struct {
	// Tokenizer highlights the code.
	// If unset, all code is rendered as plain text.
	Tokenizer Tokenizer

	// LineNumbers enables line numbers.
	// Individual blocks may still opt out.
	LineNumbers bool
}

// Block is a rendered code block.
type Block struct {
	// Language of the block, or empty if unspecified.
	Language string

	// Title of the block, if any.
	Title string

	// LineNumbers reports whether lines in this block are numbered.
	LineNumbers bool

	// Lines of the block in source order.
	Lines []Line

	// Copy is the action to copy this block.
	Copy CopyAction
}

// Line is a single line of a rendered code block.
type Line struct {
	// Index is the 0-based position of this line in the block.
	Index int

	Tokens []highlight.Token

	// Highlighted marks lines that should be emphasized.
	Highlighted bool

	// Number is the 1-based line number to display,
	// or zero if the line isn't numbered.
	Number int
}

// CopyAction describes a copy-to-clipboard action.
type CopyAction struct {
	// Content is the original, unmodified code.
	Content string

	// FileName is the suggested name of a file
	// holding Content, if any.
	FileName string
}

// Render renders a single code block.
func (r *Renderer) Render(req *Request) *Block {
	if req == nil {
		req = new(Request)
	}

	params := fence.ParseClassName(req.ClassName)
	isHighlighted := fence.HighlightFunc(req.Meta)
	numbered := r.LineNumbers &&
		!req.NoLineNumbers &&
		params.Language != NoLineNumbersLanguage

	tokens := r.tokenize(req.Code, params.Language)
	lines := make([]Line, len(tokens))
	for i, toks := range tokens {
		line := Line{
			Index:       i,
			Tokens:      toks,
			Highlighted: isHighlighted(i),
		}
		if numbered {
			line.Number = i + 1
		}
		lines[i] = line
	}

	return &Block{
		Language:    params.Language,
		Title:       params.Title,
		LineNumbers: numbered,
		Lines:       lines,
		Copy: CopyAction{
			Content:  req.Code,
			FileName: params.Title,
		},
	}
}

func (r *Renderer) tokenize(src, language string) [][]highlight.Token {
	if r.Tokenizer == nil {
		return highlight.Plain(src)
	}

	lines := r.Tokenizer.Tokenize(src, language)
	if len(lines) != highlight.Lines(src) {
		// A tokenizer that merges or splits lines
		// can't be trusted with line numbers.
		return highlight.Plain(src)
	}
	return lines
}
