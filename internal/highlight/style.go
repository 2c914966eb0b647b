package highlight

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
)

// PlainStyle is a minimal syntax highlighting style for Chroma.
// It leaves most text as-is, and fades comments ever so slightly.
var PlainStyle = chroma.MustNewStyle("plain", map[chroma.TokenType]string{
	chroma.Comment:       "#666666",
	chroma.PreWrapper:    "bg:#eeeeee",
	chroma.Background:    "bg:#eeeeee",
	chroma.LineHighlight: "bg:#dddddd",
	chroma.LineNumbers:   "#999999",
})

func init() {
	styles.Register(PlainStyle)
}

// Style looks up a registered Chroma style by name.
// It reports false and returns [PlainStyle] if there is no such style.
func Style(name string) (*chroma.Style, bool) {
	if name == "" || name == PlainStyle.Name {
		return PlainStyle, true
	}
	if sty, ok := styles.Registry[name]; ok {
		return sty, true
	}
	return PlainStyle, false
}
