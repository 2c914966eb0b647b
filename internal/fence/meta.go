package fence

import (
	"strconv"
	"strings"
)

// MetaFlag looks up a boolean attribute in a meta string.
// Attributes are whitespace separated words,
// either "name" (true) or "name=value".
//
//	MetaFlag("{1,3} noLineNumbers", "noLineNumbers") // true, true
//
// The second result reports whether the attribute was present.
// Values that aren't valid booleans are treated as true.
func MetaFlag(meta, name string) (value, ok bool) {
	for _, word := range strings.Fields(meta) {
		key, raw, hasValue := strings.Cut(word, "=")
		if key != name {
			continue
		}
		if !hasValue {
			return true, true
		}

		raw = strings.Trim(raw, `"'`)
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return true, true
		}
		return v, true
	}
	return false, false
}
