package highlight

import chroma "github.com/alecthomas/chroma/v2"

// Token is a run of text inside a single line of code
// that shares one syntax type.
// Token text never contains a newline.
type Token struct {
	Text string
	Type chroma.TokenType
}

// Class returns the CSS class Chroma uses for this token's type.
// Plain text has no class.
func (t Token) Class() string {
	return chroma.StandardTypes[t.Type]
}

// Lines reports the number of newline-delimited lines in src.
// An empty string is one empty line.
func Lines(src string) int {
	n := 1
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			n++
		}
	}
	return n
}

// Plain splits src into lines without highlighting it.
// Each line holds exactly one plain text token
// with the raw contents of that line.
func Plain(src string) [][]Token {
	lines := make([][]Token, 0, Lines(src))
	forEachLine(src, func(start, end int) {
		lines = append(lines, []Token{{Text: src[start:end], Type: chroma.Text}})
	})
	return lines
}

// forEachLine calls fn with the [start, end) offsets of each line in src,
// excluding the trailing newline.
func forEachLine(src string, fn func(start, end int)) {
	start := 0
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			fn(start, i)
			start = i + 1
		}
	}
	fn(start, len(src))
}
