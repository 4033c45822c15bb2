package token

import (
	"testing"
)

func TestCreateToken(t *testing.T) {
	tests := []struct {
		name      string
		tokenType TokenType
		want      Token
	}{
		{
			name:      "Create ASSIGN token",
			tokenType: ASSIGN,
			want:      Token{TokenType: ASSIGN, Lexeme: "="},
		},
		{
			name:      "Create MULT token",
			tokenType: MULT,
			want:      Token{TokenType: MULT, Lexeme: "*"},
		},
		{
			name:      "Create AND_AND token",
			tokenType: AND_AND,
			want:      Token{TokenType: AND_AND, Lexeme: "&&"},
		},
		{
			name:      "Create SHL_EQUAL token",
			tokenType: SHL_EQUAL,
			want:      Token{TokenType: SHL_EQUAL, Lexeme: "<<="},
		},
		{
			name:      "Create ARROW token",
			tokenType: ARROW,
			want:      Token{TokenType: ARROW, Lexeme: "->"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CreateToken(tt.tokenType, 1, 0)
			if got.TokenType != tt.want.TokenType || got.Lexeme != tt.want.Lexeme {
				t.Errorf("CreateToken() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCreateLiteralToken(t *testing.T) {
	got := CreateLiteralToken(IDENTIFIER, "myVar", "myVar", 1, 0)
	want := Token{TokenType: IDENTIFIER, Lexeme: "myVar", Literal: "myVar", Line: 1, Column: 0}
	if got != want {
		t.Errorf("CreateLiteralToken() = %v, want %v", got, want)
	}
}

func TestKeyWordsLookup(t *testing.T) {
	tests := map[string]TokenType{
		"fn":       FUNC,
		"struct":   STRUCT,
		"impl":     IMPL,
		"continue": CONTINUE,
		"print":    PRINT,
	}
	for word, want := range tests {
		if got, ok := KeyWords[word]; !ok || got != want {
			t.Errorf("KeyWords[%q] = %v, %v; want %v, true", word, got, ok, want)
		}
	}
}

func TestTokenString(t *testing.T) {
	tok := CreateLiteralToken(NUMBER, float64(42), "42", 1, 0)
	if got := tok.String(); got == "" {
		t.Errorf("Token.String() returned empty string")
	}
}
