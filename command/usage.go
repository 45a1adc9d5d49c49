package command

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/kr/text"
)

// maxLineLength is the maximum width of any line.
const maxLineLength int = 72

// Usage renders a command's usage slug followed by its flag set.
func Usage(txt string, flags *flag.FlagSet) string {
	out := new(bytes.Buffer)

	out.WriteString(strings.TrimSpace(txt))
	out.WriteString("\n")
	out.WriteString("\n")

	if flags != nil {
		_, _ = fmt.Fprintf(out, "Command Options\n\n")
		flags.VisitAll(func(f *flag.Flag) {
			printFlag(out, f)
		})
	}

	return strings.TrimRight(out.String(), "\n")
}

// printFlag prints a single flag to the given writer.
func printFlag(w io.Writer, f *flag.Flag) {
	_, _ = fmt.Fprintf(w, "  -%s\n", f.Name)
	_, _ = fmt.Fprintf(w, "%s\n\n", wrapAtLength(f.Usage, 5))
}

// wrapAtLength wraps the given text at the maxLineLength, taking into account
// any provided left padding.
func wrapAtLength(s string, pad int) string {
	wrapped := text.Wrap(s, maxLineLength-pad)
	lines := strings.Split(wrapped, "\n")
	for i, line := range lines {
		lines[i] = strings.Repeat(" ", pad) + line
	}
	return strings.Join(lines, "\n")
}
