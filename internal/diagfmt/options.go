package diagfmt

import (
	"fmt"
	"strconv"
)

// PrettyOpts configures failure rendering.
type PrettyOpts[T comparable] struct {
	// Color wraps the "Parse error:" prefix and the offending source
	// segment in ANSI red.
	Color bool
	// TokenString renders a concrete token inside the message body.
	// When nil, runes and strings are quoted and anything else goes
	// through fmt.
	TokenString func(T) string
}

func (o PrettyOpts[T]) tokenString(tok T) string {
	if o.TokenString != nil {
		return o.TokenString(tok)
	}
	switch v := any(tok).(type) {
	case rune:
		return strconv.Quote(string(v))
	case string:
		return strconv.Quote(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
