package split

import "strings"

// Compose builds the command string sent with RUN_COMMAND:
// an optional "split <orientation>;" followed by an optional
// "exec '<args>'". Arguments containing a space are wrapped in double
// quotes as-is, each argument is followed by a single space.
func Compose(o Orientation, command []string) string {
	var b strings.Builder

	if o != None {
		b.WriteString("split ")
		b.WriteString(o.String())
		b.WriteString(";")
	}

	if len(command) > 0 {
		b.WriteString("exec '")
		for _, arg := range command {
			b.WriteString(QuoteArg(arg))
			b.WriteString(" ")
		}
		b.WriteString("'")
	}

	return b.String()
}

// QuoteArg wraps arg in double quotes when it contains a space.
// Embedded quotes are not escaped.
func QuoteArg(arg string) string {
	if !strings.Contains(arg, " ") {
		return arg
	}
	return `"` + arg + `"`
}
