package fence

import "strings"

const _languagePrefix = "language-"

// Params holds the parameters encoded in a code block's class name.
type Params struct {
	// Language is the language identifier of the block.
	// It is empty if the class name didn't specify one.
	Language string

	// Title is the value of the "title" parameter, if any.
	Title string

	// Values holds all parameters found after the ':'.
	// A nil value means the parameter did not have an '='.
	Values map[string]*string
}

// ParseClassName parses a class name of the form,
//
//	language-LANG[:KEY=VALUE[&KEY=VALUE...]]
//
// ParseClassName never fails.
// Missing delimiters yield empty values.
func ParseClassName(className string) Params {
	lang, rawParams, _ := strings.Cut(className, ":")

	if idx := strings.LastIndex(lang, _languagePrefix); idx >= 0 {
		lang = lang[idx+len(_languagePrefix):]
	}
	lang, _, _ = strings.Cut(lang, "{")

	values := make(map[string]*string)
	for _, param := range strings.Split(rawParams, "&") {
		if len(param) == 0 {
			continue
		}

		// Only the text between the first and second '='
		// is the value. "a=b=c" yields a -> b.
		parts := strings.Split(param, "=")
		var value *string
		if len(parts) > 1 {
			value = &parts[1]
		}
		values[parts[0]] = value
	}

	var title string
	if v := values["title"]; v != nil {
		title = *v
	}

	return Params{
		Language: lang,
		Title:    title,
		Values:   values,
	}
}
