package parser

import (
	"errors"
	"testing"
)

func TestTokenizeLine(t *testing.T) {
	stream := Tokenize("start: load !0x10")

	word, err := stream.NextWord()
	if err != nil {
		t.Fatalf("expected word, got error: %v", err)
	}
	if word != "start" {
		t.Errorf("expected word 'start', got %q", word)
	}

	if err := stream.NextSpecialSymbol(':'); err != nil {
		t.Fatalf("expected ':', got error: %v", err)
	}

	word, err = stream.NextWord()
	if err != nil {
		t.Fatalf("expected word, got error: %v", err)
	}
	if word != "load" {
		t.Errorf("expected word 'load', got %q", word)
	}

	if err := stream.NextSpecialSymbol('!'); err != nil {
		t.Fatalf("expected '!', got error: %v", err)
	}

	number, err := stream.NextNumber()
	if err != nil {
		t.Fatalf("expected number, got error: %v", err)
	}
	if number != 0x10 {
		t.Errorf("expected 0x10, got %d", number)
	}

	if err := stream.NextEndOfInput(); err != nil {
		t.Errorf("expected end of input, got error: %v", err)
	}
}

func TestTokenizeNumberBases(t *testing.T) {
	tests := []struct {
		input string
		value uint32
		kind  TokenKind
	}{
		{"0", 0, TokenNumber},
		{"42", 42, TokenNumber},
		{"0x2a", 42, TokenNumber},
		{"0b101", 5, TokenNumber},
		{"1_000", 1000, TokenNumber},
		{"65535", 65535, TokenNumber},
		{"65536", 65536, TokenLongNumber},
		{"0xffff_ffff", 0xFFFFFFFF, TokenLongNumber},
	}

	for _, tt := range tests {
		stream := Tokenize(tt.input)
		token, err := stream.Peek(1)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tt.input, err)
			continue
		}
		if token.Kind != tt.kind {
			t.Errorf("%q: expected kind %v, got %v", tt.input, tt.kind, token.Kind)
		}
		if token.Value != tt.value {
			t.Errorf("%q: expected value %d, got %d", tt.input, tt.value, token.Value)
		}
	}
}

func TestNextNumberRejectsLongNumber(t *testing.T) {
	stream := Tokenize("0x1_0000")

	_, err := stream.NextNumber()
	var unexpected *UnexpectedTokenError
	if !errors.As(err, &unexpected) {
		t.Fatalf("expected UnexpectedTokenError, got %v", err)
	}

	// the failed consumption must not advance the cursor
	value, err := stream.NextLongNumber()
	if err != nil {
		t.Fatalf("expected long number, got error: %v", err)
	}
	if value != 0x10000 {
		t.Errorf("expected 0x10000, got %d", value)
	}
}

func TestNextLongNumberAcceptsShortNumber(t *testing.T) {
	stream := Tokenize("7")
	value, err := stream.NextLongNumber()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != 7 {
		t.Errorf("expected 7, got %d", value)
	}
}

func TestPeekDoesNotAdvance(t *testing.T) {
	stream := Tokenize("word 42")

	for i := 0; i < 3; i++ {
		token, err := stream.Peek(1)
		if err != nil {
			t.Fatalf("peek failed: %v", err)
		}
		if token.Kind != TokenWord {
			t.Fatalf("expected word on peek %d, got %v", i, token)
		}
	}

	second, err := stream.Peek(2)
	if err != nil {
		t.Fatalf("peek(2) failed: %v", err)
	}
	if second.Kind != TokenNumber || second.Value != 42 {
		t.Errorf("expected number 42 at peek(2), got %v", second)
	}
}

func TestPeekPastEnd(t *testing.T) {
	stream := Tokenize("")
	if err := stream.NextEndOfInput(); err != nil {
		t.Fatalf("expected end of input: %v", err)
	}

	_, err := stream.Peek(1)
	var unexpected *UnexpectedTokenError
	if !errors.As(err, &unexpected) {
		t.Fatalf("expected UnexpectedTokenError past the end, got %v", err)
	}
}

func TestTokenizeSkipsWhitespace(t *testing.T) {
	stream := Tokenize("  a \t b  ")
	first, _ := stream.NextWord()
	second, _ := stream.NextWord()
	if first != "a" || second != "b" {
		t.Errorf("expected words a and b, got %q and %q", first, second)
	}
	if err := stream.NextEndOfInput(); err != nil {
		t.Errorf("expected end of input: %v", err)
	}
}

func TestTokenizeSpecialSymbols(t *testing.T) {
	stream := Tokenize("(x)")
	if err := stream.NextSpecialSymbol('('); err != nil {
		t.Fatalf("expected '(': %v", err)
	}
	if _, err := stream.NextWord(); err != nil {
		t.Fatalf("expected word: %v", err)
	}
	if err := stream.NextSpecialSymbol(')'); err != nil {
		t.Fatalf("expected ')': %v", err)
	}
}
