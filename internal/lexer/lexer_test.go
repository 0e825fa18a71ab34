package lexer

import (
	"testing"

	"github.com/cwbudde/golox/internal/token"
)

func TestNextTokenBasic(t *testing.T) {
	input := `var x = 5;
	x = x + 10;
	`

	tests := []struct {
		expectedLexeme string
		expectedType   token.Type
	}{
		{"var", token.VAR},
		{"x", token.IDENTIFIER},
		{"=", token.EQUAL},
		{"5", token.NUMBER},
		{";", token.SEMICOLON},
		{"x", token.IDENTIFIER},
		{"=", token.EQUAL},
		{"x", token.IDENTIFIER},
		{"+", token.PLUS},
		{"10", token.NUMBER},
		{";", token.SEMICOLON},
		{"", token.EOF},
	}

	toks, errs := New(input).ScanTokens()
	if len(errs) != 0 {
		t.Fatalf("unexpected scan errors: %v", errs)
	}
	if len(toks) != len(tests) {
		t.Fatalf("expected %d tokens, got %d: %v", len(tests), len(toks), toks)
	}

	for i, tt := range tests {
		tok := toks[i]
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%s, got=%s (lexeme=%q)",
				i, tt.expectedType, tok.Type, tok.Lexeme)
		}
		if tok.Lexeme != tt.expectedLexeme {
			t.Fatalf("tests[%d] - lexeme wrong. expected=%q, got=%q", i, tt.expectedLexeme, tok.Lexeme)
		}
	}
}

func TestKeywords(t *testing.T) {
	input := "and class else false fun for if nil or print return super this true var while"
	expected := []token.Type{
		token.AND, token.CLASS, token.ELSE, token.FALSE, token.FUN, token.FOR,
		token.IF, token.NIL, token.OR, token.PRINT, token.RETURN, token.SUPER,
		token.THIS, token.TRUE, token.VAR, token.WHILE, token.EOF,
	}

	toks, errs := New(input).ScanTokens()
	if len(errs) != 0 {
		t.Fatalf("unexpected scan errors: %v", errs)
	}
	for i, want := range expected {
		if toks[i].Type != want {
			t.Fatalf("token %d: expected %s, got %s", i, want, toks[i].Type)
		}
	}
}

func TestTwoCharOperators(t *testing.T) {
	input := "! != = == < <= > >="
	expected := []token.Type{
		token.BANG, token.BANG_EQUAL, token.EQUAL, token.EQUAL_EQUAL,
		token.LESS, token.LESS_EQUAL, token.GREATER, token.GREATER_EQUAL, token.EOF,
	}
	toks, _ := New(input).ScanTokens()
	for i, want := range expected {
		if toks[i].Type != want {
			t.Fatalf("token %d: expected %s, got %s", i, want, toks[i].Type)
		}
	}
}

func TestLineComment(t *testing.T) {
	input := "1 // this is a comment\n2"
	toks, _ := New(input).ScanTokens()
	if len(toks) != 3 { // NUMBER, NUMBER, EOF
		t.Fatalf("expected 3 tokens, got %d: %v", len(toks), toks)
	}
	if toks[1].Line != 2 {
		t.Fatalf("expected second number on line 2, got line %d", toks[1].Line)
	}
}

func TestStringLiteral(t *testing.T) {
	toks, errs := New(`"hello world"`).ScanTokens()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if toks[0].Type != token.STRING {
		t.Fatalf("expected STRING, got %s", toks[0].Type)
	}
	if toks[0].Literal != "hello world" {
		t.Fatalf("expected literal %q, got %q", "hello world", toks[0].Literal)
	}
}

func TestUnterminatedString(t *testing.T) {
	_, errs := New(`"hello`).ScanTokens()
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	if errs[0].Message != "Unterminated string." {
		t.Fatalf("unexpected message: %q", errs[0].Message)
	}
}

func TestMultilineString(t *testing.T) {
	toks, errs := New("\"a\nb\"").ScanTokens()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if toks[0].Literal != "a\nb" {
		t.Fatalf("unexpected literal: %q", toks[0].Literal)
	}
}

func TestNumberLexeme(t *testing.T) {
	cases := []string{"123", "123.45"}
	for _, c := range cases {
		toks, errs := New(c).ScanTokens()
		if len(errs) != 0 {
			t.Fatalf("unexpected errors for %q: %v", c, errs)
		}
		if toks[0].Type != token.NUMBER || toks[0].Lexeme != c {
			t.Fatalf("expected NUMBER %q, got %s %q", c, toks[0].Type, toks[0].Lexeme)
		}
	}
}

func TestDigitThenIdentifier(t *testing.T) {
	// "1abc" tokenizes as NUMBER "1" followed by IDENTIFIER "abc": the
	// scanner doesn't look ahead past a number for a following letter.
	toks, errs := New("1abc").ScanTokens()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if toks[0].Type != token.NUMBER || toks[0].Lexeme != "1" {
		t.Fatalf("expected NUMBER \"1\", got %s %q", toks[0].Type, toks[0].Lexeme)
	}
	if toks[1].Type != token.IDENTIFIER || toks[1].Lexeme != "abc" {
		t.Fatalf("expected IDENTIFIER \"abc\", got %s %q", toks[1].Type, toks[1].Lexeme)
	}
}

func TestUnexpectedCharacter(t *testing.T) {
	_, errs := New("@").ScanTokens()
	if len(errs) != 1 || errs[0].Message != "Unexpected character." {
		t.Fatalf("unexpected result: %v", errs)
	}
}

func TestPositionTracking(t *testing.T) {
	toks, _ := New("var\nx").ScanTokens()
	if toks[0].Line != 1 {
		t.Fatalf("expected 'var' on line 1, got %d", toks[0].Line)
	}
	if toks[1].Line != 2 {
		t.Fatalf("expected 'x' on line 2, got %d", toks[1].Line)
	}
}

// TestRoundTripTokens checks that concatenating lexemes in order (joined
// by a single space) re-scans to the same token kinds.
func TestRoundTripTokens(t *testing.T) {
	input := `class Greeter {
  greet(name) {
    print "hi " + name;
  }
}`
	toks, errs := New(input).ScanTokens()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	var rebuilt string
	for i, tok := range toks {
		if tok.Type == token.EOF {
			continue
		}
		if i > 0 {
			rebuilt += " "
		}
		// A STRING token's lexeme already includes its surrounding quotes.
		rebuilt += tok.Lexeme
	}

	reToks, reErrs := New(rebuilt).ScanTokens()
	if len(reErrs) != 0 {
		t.Fatalf("unexpected re-scan errors: %v", reErrs)
	}

	nonEOF := 0
	for _, tok := range toks {
		if tok.Type != token.EOF {
			nonEOF++
		}
	}
	if len(reToks)-1 != nonEOF {
		t.Fatalf("round-trip token count mismatch: original %d, rebuilt %d", nonEOF, len(reToks)-1)
	}
	for i := 0; i < nonEOF; i++ {
		if toks[i].Type != reToks[i].Type {
			t.Fatalf("round-trip kind mismatch at %d: %s vs %s", i, toks[i].Type, reToks[i].Type)
		}
	}
}
