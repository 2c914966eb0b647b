// Package relative turns /-separated paths relative to each other
// with string manipulation exclusively.
package relative

import (
	"path"
	"strings"
)

// Path returns a path to dst, relative to the directory src.
// Both paths are cleaned and treated as relative to the same root,
// so a leading "/" has no effect.
//
// Path never fails.
// If dst is src, the result is ".".
func Path(src, dst string) string {
	srcParts := split(src)
	dstParts := split(dst)

	common := 0
	for common < len(srcParts) && common < len(dstParts) &&
		srcParts[common] == dstParts[common] {
		common++
	}

	parts := make([]string, 0, len(srcParts)-common+len(dstParts)-common)
	for range srcParts[common:] {
		parts = append(parts, "..")
	}
	parts = append(parts, dstParts[common:]...)

	if len(parts) == 0 {
		return "."
	}
	return strings.Join(parts, "/")
}

func split(p string) []string {
	p = strings.Trim(path.Clean("/"+p), "/")
	if len(p) == 0 {
		return nil
	}
	return strings.Split(p, "/")
}
