package highlight

import (
	"sort"

	chroma "github.com/alecthomas/chroma/v2"
)

// TokenIndex is a searchable collection of tokens.
type TokenIndex struct {
	tokens []chroma.Token
	starts []int // start offset in src of tokens[i]
	ends   []int // end offset in src of tokens[i]
}

// NewTokenIndex builds a token index given the tokens of some source code.
// The concatenated values of tokens must reproduce the source.
func NewTokenIndex(tokens []chroma.Token) *TokenIndex {
	starts := make([]int, len(tokens))
	ends := make([]int, len(tokens))
	for i, t := range tokens {
		var start int
		if i > 0 {
			start = ends[i-1]
		}
		starts[i] = start
		ends[i] = start + len(t.Value)
	}

	return &TokenIndex{
		tokens: tokens,
		starts: starts,
		ends:   ends,
	}
}

// Slice returns the tokens covering the range [start, end) of the source.
// Tokens that straddle either boundary are clipped to it,
// keeping their type.
func (ts *TokenIndex) Slice(start, end int) []Token {
	// First token that ends past start.
	idx := sort.Search(len(ts.ends), func(i int) bool {
		return ts.ends[i] > start
	})

	var out []Token
	for ; idx < len(ts.tokens) && ts.starts[idx] < end; idx++ {
		tokStart := ts.starts[idx]
		lo := max(start, tokStart) - tokStart
		hi := min(end, ts.ends[idx]) - tokStart
		if lo >= hi {
			continue
		}

		tok := ts.tokens[idx]
		out = append(out, Token{
			Text: tok.Value[lo:hi],
			Type: tok.Type,
		})
	}
	return out
}
