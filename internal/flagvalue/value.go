// Package flagvalue provides flag.Value implementations
// for options that don't fit the flag package's built-in kinds:
// optional file destinations (-debug[=FILE])
// and repeatable values (-lang NAME -lang NAME).
package flagvalue

import "flag"

// Getter is a constraint satisfied by pointers to types
// which implement flag.Getter.
type Getter[T any] interface {
	*T
	flag.Getter
}
