package diagfmt

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"skein/internal/parse"
)

const contextIndent = "    "

// Pretty renders a parse failure against the original (unconsumed)
// input as a human-readable diagnostic:
//
//	Parse error: <message>
//
//	    <source window, every physical line indented>
//
// The message body depends on the failure shape: custom failures show
// the payload, structural failures phrase expected-vs-got with
// "Unexpected token X" / "Expected X, got Y" / "Expected one of ...,
// got Y" according to the size of the expected set, which is listed in
// insertion order. With opts.Color the prefix and the offending window
// segment are wrapped in ANSI red.
func Pretty[T comparable, E any](err *parse.Error[T, E], in parse.Input[T], opts PrettyOpts[T]) string {
	red := color.New(color.FgRed)
	if opts.Color {
		red.EnableColor()
	} else {
		red.DisableColor()
	}

	before, within, after := in.Window(err.Span)
	window := before + red.Sprint(within) + after

	var b strings.Builder
	b.WriteString(red.Sprint("Parse error:"))
	b.WriteString(" ")
	b.WriteString(messageBody(err, opts))
	b.WriteString("\n\n")

	lines := strings.Split(window, "\n")
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(contextIndent)
		b.WriteString(line)
	}
	return b.String()
}

func messageBody[T comparable, E any](err *parse.Error[T, E], opts PrettyOpts[T]) string {
	if err.Kind == parse.ErrCustom {
		return fmt.Sprintf("%+v", err.Payload)
	}

	got := renderPart(err.Got, opts)
	switch len(err.Expected) {
	case 0:
		return fmt.Sprintf("Unexpected token %s", got)
	case 1:
		return fmt.Sprintf("Expected %s, got %s", renderPart(err.Expected[0], opts), got)
	default:
		parts := make([]string, 0, len(err.Expected))
		for _, p := range err.Expected {
			parts = append(parts, renderPart(p, opts))
		}
		return fmt.Sprintf("Expected one of %s, got %s", strings.Join(parts, ", "), got)
	}
}

// renderPart renders a Token through the token-to-string function and a
// Msg verbatim.
func renderPart[T comparable](p parse.Part[T], opts PrettyOpts[T]) string {
	if p.Kind == parse.PartMsg {
		return p.Msg
	}
	return opts.tokenString(p.Token)
}
