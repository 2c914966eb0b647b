package fence

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var _rangesRe = regexp.MustCompile(`{([\d,-]+)}`)

// LineRange is a range of 1-based line numbers
// that should be highlighted.
type LineRange struct {
	// Start is the first line in the range.
	// It is negative if it could not be parsed.
	Start int

	// End is the last line in the range, inclusive.
	// If End is zero or negative, the range holds only Start.
	End int
}

// Contains reports whether the given 1-based line number
// is inside this range.
func (r LineRange) Contains(line int) bool {
	if line < 1 {
		return false
	}
	if r.End > 0 {
		return r.Start >= 0 && r.Start <= line && line <= r.End
	}
	return line == r.Start
}

// Ranges is an ordered list of line ranges.
type Ranges []LineRange

// Contains reports whether any range contains the 1-based line number.
func (rs Ranges) Contains(line int) bool {
	for _, r := range rs {
		if r.Contains(line) {
			return true
		}
	}
	return false
}

// ParseHighlightRanges extracts line ranges from the first
// "{N,N-M,...}" group in a code block's meta string.
//
// It returns nil if the meta string doesn't contain such a group.
// Numbers that cannot be parsed never match a line.
func ParseHighlightRanges(meta string) Ranges {
	m := _rangesRe.FindStringSubmatch(meta)
	if m == nil {
		return nil
	}

	elems := strings.Split(m[1], ",")
	ranges := make(Ranges, 0, len(elems))
	for _, elem := range elems {
		parts := strings.Split(elem, "-")
		r := LineRange{Start: parseLine(parts[0])}
		if len(parts) > 1 {
			r.End = parseLine(parts[1])
		}
		ranges = append(ranges, r)
	}
	return ranges
}

// parseLine parses the leading decimal digits of s.
// It returns -1 if s doesn't start with a digit.
func parseLine(s string) int {
	end := 0
	for end < len(s) && '0' <= s[end] && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return -1
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// Only digits are left so this can only be an overflow.
		return math.MaxInt
	}
	return n
}

// HighlightFunc builds a function reporting whether the line
// at the given 0-based index should be highlighted,
// based on the ranges in the meta string.
func HighlightFunc(meta string) func(index int) bool {
	ranges := ParseHighlightRanges(meta)
	if ranges == nil {
		return neverHighlight
	}

	return func(index int) bool {
		return ranges.Contains(index + 1)
	}
}

func neverHighlight(int) bool { return false }
