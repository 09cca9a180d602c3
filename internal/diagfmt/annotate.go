package diagfmt

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"skein/internal/parse"
)

// Annotate is the richer sibling of Pretty used by the CLI: it prefixes
// the message with path:line:col, numbers every window line in a
// gutter, and draws a ^~~~ underline beneath the offending segment.
// Underline placement is display-width aware so wide runes do not skew
// the carets.
func Annotate[T comparable, E any](err *parse.Error[T, E], in parse.Input[T], path string, opts PrettyOpts[T]) string {
	red := color.New(color.FgRed)
	bold := color.New(color.Bold)
	if opts.Color {
		red.EnableColor()
		bold.EnableColor()
	} else {
		red.DisableColor()
		bold.DisableColor()
	}

	before, within, after := in.Window(err.Span)
	start := err.Span.Start

	var b strings.Builder
	b.WriteString(bold.Sprintf("%s:%d:%d:", path, start.Line, start.Col))
	b.WriteString(" ")
	b.WriteString(red.Sprint("error:"))
	b.WriteString(" ")
	b.WriteString(messageBody(err, opts))
	b.WriteString("\n")

	lines := strings.Split(before+within+after, "\n")
	withinLines := strings.Split(within, "\n")

	gutter := len(fmt.Sprintf("%d", start.Line+uint32(len(lines))-1))
	for i, line := range lines {
		num := start.Line + uint32(i)
		fmt.Fprintf(&b, "%*d | %s\n", gutter, num, line)

		if i >= len(withinLines) {
			continue
		}
		// подчёркивание: на первой строке отступаем на ширину before
		pad := 0
		if i == 0 {
			pad = runewidth.StringWidth(before)
		}
		width := runewidth.StringWidth(withinLines[i])
		if width == 0 && i == 0 {
			width = 1 // point failure still gets a caret
		}
		if width == 0 {
			continue
		}
		marker := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(&b, "%s | %s%s\n", strings.Repeat(" ", gutter), strings.Repeat(" ", pad), red.Sprint(marker))
	}
	return strings.TrimRight(b.String(), "\n")
}
