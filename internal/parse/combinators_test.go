package parse

import (
	"testing"
)

func TestOptional_SoftFailureRewinds(t *testing.T) {
	p := Optional(tok("a"))

	m, err := Run(p, tokensOf("b"), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Valid {
		t.Error("expected absent marker")
	}

	// позиция не сдвинулась: следующий парсер видит исходный токен
	q := Then(Optional(tok("a")), tok("b"))
	if _, err := Run(q, tokensOf("b"), 0); err != nil {
		t.Fatalf("rewind failed: %v", err)
	}
}

func TestOptional_Success(t *testing.T) {
	m, err := Run(Optional(tok("a")), tokensOf("a"), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !m.Valid || m.Value != "a" {
		t.Errorf("maybe = %+v", m)
	}
}

func TestOptional_CommittedFailurePropagates(t *testing.T) {
	// "ab" съедает 'a' и падает на 'c' — Optional не должен это прятать
	p := Optional(Then(tok("a"), tok("b")))
	_, err := Run(p, tokensOf("ac"), 0)
	if err == nil {
		t.Fatal("expected committed failure to propagate")
	}
	if !err.CommittedSince(tokensOf("ac").Base()) {
		t.Error("failure should be committed")
	}
	if err.Got != TokenPart("c") {
		t.Errorf("got = %+v", err.Got)
	}
}

func TestOptional_RestoresContext(t *testing.T) {
	attempt := Then(
		UpdateContext[string, int, string](func(int) int { return 99 }),
		tok("a"),
	)
	p := Then(Optional(attempt), Context[string, int, string]())

	ctx, err := Run(p, tokensOf("b"), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctx != 1 {
		t.Errorf("context = %d, want pre-attempt 1", ctx)
	}
}

func TestChoice_UnionsExpectedSets(t *testing.T) {
	p := Choice(tok("a"), tok("b"))
	_, err := Run(p, tokensOf("c"), 0)
	if err == nil {
		t.Fatal("expected failure")
	}
	if err.Span.Start.Offset != 0 || !err.Span.Empty() {
		t.Errorf("span = %v, want zero-width at start", err.Span)
	}
	if err.Got != TokenPart("c") {
		t.Errorf("got = %+v", err.Got)
	}
	want := []Part[string]{TokenPart("a"), TokenPart("b")}
	if len(err.Expected) != len(want) {
		t.Fatalf("expected = %v, want %v", err.Expected, want)
	}
	for i := range want {
		if err.Expected[i] != want[i] {
			t.Errorf("expected[%d] = %+v, want %+v", i, err.Expected[i], want[i])
		}
	}
}

func TestChoice_DeduplicatesExpected(t *testing.T) {
	p := Choice(tok("a"), tok("a"), tok("b"))
	_, err := Run(p, tokensOf("c"), 0)
	if err == nil {
		t.Fatal("expected failure")
	}
	if len(err.Expected) != 2 {
		t.Errorf("expected set = %v, want deduplicated pair", err.Expected)
	}
}

func TestChoice_FirstCommittedFailureWins(t *testing.T) {
	// первая ветка съедает 'a' и падает; вторая никогда не пробуется,
	// даже если бы она подошла
	p := Choice(
		Then(tok("a"), tok("x")),
		Then(tok("a"), tok("b")),
	)
	_, err := Run(p, tokensOf("ab"), 0)
	if err == nil {
		t.Fatal("expected failure")
	}
	if !err.CommittedSince(tokensOf("ab").Base()) {
		t.Error("failure should be committed")
	}
	if len(err.Expected) != 1 || err.Expected[0] != TokenPart("x") {
		t.Errorf("expected = %v, want only Token(x)", err.Expected)
	}
}

func TestChoice_SecondAlternativeFromOriginalState(t *testing.T) {
	p := Choice(tok("a"), tok("b"))
	v, err := Run(p, tokensOf("b"), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "b" {
		t.Errorf("value = %q", v)
	}
}

func TestChoice_CustomErrorAborts(t *testing.T) {
	p := Choice(
		Fail[string, string, int, string]("nope"),
		tok("a"),
	)
	_, err := Run(p, tokensOf("a"), 0)
	if err == nil {
		t.Fatal("expected custom failure to abort the choice")
	}
	if err.Kind != ErrCustom || err.Payload != "nope" {
		t.Errorf("err = %+v", err)
	}
}

func TestChoice_EndOfInputGot(t *testing.T) {
	p := Choice(tok("a"), tok("b"))
	_, err := Run(p, tokensOf(""), 0)
	if err == nil {
		t.Fatal("expected failure")
	}
	if err.Got != EndOfInput[string]() {
		t.Errorf("got = %+v, want end-of-input marker", err.Got)
	}
}

func TestLabel_ReplacesExpected(t *testing.T) {
	p := Label("digit pair", Choice(tok("a"), tok("b")))
	_, err := Run(p, tokensOf("c"), 0)
	if err == nil {
		t.Fatal("expected failure")
	}
	if len(err.Expected) != 1 || err.Expected[0] != MsgPart[string]("digit pair") {
		t.Errorf("expected = %v, want exactly {Msg(digit pair)}", err.Expected)
	}
	if err.Got != TokenPart("c") {
		t.Errorf("got = %+v", err.Got)
	}
}

func TestLabel_PassesThroughCommitted(t *testing.T) {
	p := Label("pair", Then(tok("a"), tok("b")))
	_, err := Run(p, tokensOf("ac"), 0)
	if err == nil {
		t.Fatal("expected failure")
	}
	if len(err.Expected) != 1 || err.Expected[0] != TokenPart("b") {
		t.Errorf("expected = %v, want untouched Token(b)", err.Expected)
	}
}

func TestLabel_PassesThroughCustom(t *testing.T) {
	p := Label("pair", Fail[string, string, int, string]("raw"))
	_, err := Run(p, tokensOf("a"), 0)
	if err == nil || err.Kind != ErrCustom || err.Payload != "raw" {
		t.Errorf("err = %+v, want untouched custom failure", err)
	}
}

func TestMany(t *testing.T) {
	p := Many(tok("5"))

	v, err := Run(p, tokensOf("555"), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(v) != 3 {
		t.Errorf("values = %v, want three fives", v)
	}

	v, err = Run(p, tokensOf("666"), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(v) != 0 {
		t.Errorf("values = %v, want empty", v)
	}

	// нулевое повторение не съедает вход
	q := Then(Many(tok("5")), tok("6"))
	if _, err := Run(q, tokensOf("6"), 0); err != nil {
		t.Fatalf("zero repetitions consumed input: %v", err)
	}
}

func TestMany_CommittedFailurePropagates(t *testing.T) {
	p := Many(Then(tok("a"), tok("b")))
	_, err := Run(p, tokensOf("abac"), 0)
	if err == nil {
		t.Fatal("expected committed failure from second iteration")
	}
	if err.Got != TokenPart("c") {
		t.Errorf("got = %+v", err.Got)
	}
}

func TestMany_LongInputDoesNotRecurse(t *testing.T) {
	// стек не должен зависеть от длины входа
	long := make([]byte, 100_000)
	for i := range long {
		long[i] = '5'
	}
	v, err := Run(Many(tok("5")), tokensOf(string(long)), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(v) != len(long) {
		t.Errorf("len = %d, want %d", len(v), len(long))
	}
}

func TestSome(t *testing.T) {
	p := Some(tok("5"))

	v, err := Run(p, tokensOf("55x"), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(v) != 2 {
		t.Errorf("values = %v", v)
	}

	_, err = Run(p, tokensOf("666"), 0)
	if err == nil {
		t.Fatal("expected failure")
	}
	if err.Span.Start.Offset != 0 {
		t.Errorf("failure offset = %d, want 0", err.Span.Start.Offset)
	}
	if err.Got != TokenPart("6") {
		t.Errorf("got = %+v", err.Got)
	}
	if len(err.Expected) != 1 || err.Expected[0] != TokenPart("5") {
		t.Errorf("expected = %v", err.Expected)
	}
}

func TestSep1(t *testing.T) {
	p := Sep1(tok("1"), tok(","))
	v, err := Run(p, tokensOf("1,1,1"), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(v) != 3 {
		t.Errorf("values = %v", v)
	}

	// одиночный элемент без разделителя
	v, err = Run(p, tokensOf("1"), 0)
	if err != nil || len(v) != 1 {
		t.Fatalf("single element: %v, %v", v, err)
	}
}

func TestSep_EmptyMatch(t *testing.T) {
	p := Sep(tok("1"), tok(","))
	v, err := Run(p, tokensOf("x"), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(v) != 0 {
		t.Errorf("values = %v, want empty sequence", v)
	}
}

func TestBetween(t *testing.T) {
	p := Between(tok("("), tok("5"), tok(")"))

	v, err := Run(p, tokensOf("(5)"), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "5" {
		t.Errorf("value = %q", v)
	}

	_, err = Run(p, tokensOf("5"), 0)
	if err == nil {
		t.Fatal("expected failure")
	}
	if err.Span.Start.Offset != 0 {
		t.Errorf("failure offset = %d, want 0", err.Span.Start.Offset)
	}
	if len(err.Expected) != 1 || err.Expected[0] != TokenPart("(") {
		t.Errorf("expected = %v, want {Token(()}", err.Expected)
	}
}
