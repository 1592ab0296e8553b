package token_test

import (
	"testing"

	"fluentkit/internal/source"
	"fluentkit/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestIsLiteral(t *testing.T) {
	for _, k := range []token.Kind{token.String, token.Number} {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	for _, k := range []token.Kind{token.Ident, token.Text, token.Minus, token.LBrace} {
		if tok(k).IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
}

func TestIsPunct(t *testing.T) {
	punct := []token.Kind{
		token.Minus, token.Equals, token.Dot, token.LBrace, token.RBrace,
		token.LBracket, token.RBracket, token.LParen, token.RParen,
		token.Star, token.Arrow, token.Comma, token.Colon, token.Dollar,
	}
	for _, k := range punct {
		if !tok(k).IsPunct() {
			t.Errorf("%v should be punctuation", k)
		}
	}
	for _, k := range []token.Kind{token.Ident, token.Text, token.CommentSign, token.EOF} {
		if tok(k).IsPunct() {
			t.Errorf("%v must NOT be punctuation", k)
		}
	}
}

func TestCommentLevel(t *testing.T) {
	tests := map[token.Kind]int{
		token.CommentSign:         1,
		token.GroupCommentSign:    2,
		token.ResourceCommentSign: 3,
		token.Ident:               0,
	}
	for k, want := range tests {
		if got := k.CommentLevel(); got != want {
			t.Errorf("%v.CommentLevel() = %d, want %d", k, got, want)
		}
		if k.IsCommentSign() != (want > 0) {
			t.Errorf("%v.IsCommentSign() mismatch", k)
		}
	}
}

func TestFlags(t *testing.T) {
	tk := token.Token{Kind: token.Text, Flags: token.FlagLineStart | token.FlagBlank}
	if !tk.Has(token.FlagLineStart) || !tk.Has(token.FlagBlank) {
		t.Fatalf("flags lost")
	}
	if tk.Has(token.FlagLineStart | token.FlagLineFeed) {
		t.Errorf("Has must require all bits")
	}
	if !tk.Adjacent() {
		t.Errorf("token without space flags should be adjacent")
	}
	tk.Flags |= token.FlagNewlineBefore
	if tk.Adjacent() {
		t.Errorf("newline before must break adjacency")
	}
}

func TestKindString(t *testing.T) {
	if token.Arrow.String() != "Arrow" || token.CommentText.String() != "CommentText" {
		t.Errorf("unexpected names: %s %s", token.Arrow, token.CommentText)
	}
	if token.Kind(200).String() != "Kind(?)" {
		t.Errorf("out of range kind should be marked")
	}
}
