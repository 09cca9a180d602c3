package parse

// PartKind discriminates the two shapes an error part can take.
type PartKind uint8

const (
	// PartToken holds a concrete token value that was found or expected.
	PartToken PartKind = iota
	// PartMsg holds a human-readable label.
	PartMsg
)

// Part is one element of an error's got/expected description: either a
// concrete token or a free-form label. Parts compare by structural
// value, so they can live in deduplicated expected sets.
type Part[T comparable] struct {
	Kind  PartKind
	Token T
	Msg   string
}

// TokenPart wraps a concrete token value.
func TokenPart[T comparable](tok T) Part[T] {
	return Part[T]{Kind: PartToken, Token: tok}
}

// MsgPart wraps a human-readable label.
func MsgPart[T comparable](msg string) Part[T] {
	return Part[T]{Kind: PartMsg, Msg: msg}
}

// EndOfInput is the marker part reported when the stream has no more
// tokens to offer.
func EndOfInput[T comparable]() Part[T] {
	return MsgPart[T]("end of input")
}

// appendParts appends parts to set, preserving insertion order and
// dropping duplicates. Expected sets stay small, linear scan is fine.
func appendParts[T comparable](set []Part[T], parts ...Part[T]) []Part[T] {
	for _, p := range parts {
		seen := false
		for _, q := range set {
			if p == q {
				seen = true
				break
			}
		}
		if !seen {
			set = append(set, p)
		}
	}
	return set
}
