// Package fence parses the annotations attached to a fenced code block.
//
// A fenced code block carries two strings besides its contents:
// a class name such as "language-csharp:title=Program.cs",
// and a meta string such as "{2,4-6}".
// Parsing is permissive: malformed annotations
// produce empty values instead of errors
// because they come from hand-written content.
package fence
