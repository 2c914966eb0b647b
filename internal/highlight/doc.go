// Package highlight splits source code into lines of syntax tokens.
// It uses the Chroma library to do this work.
//
// Languages are resolved through a [Registry]
// built once at startup from a list of grammar names.
// Source in a language that isn't registered
// is split into plain text lines with a single token each.
package highlight
