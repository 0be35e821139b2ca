// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jtext_test

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/creachadair/jtext"
	"github.com/google/go-cmp/cmp"
)

func scanAll(t *testing.T, s *jtext.Scanner) []jtext.Token {
	t.Helper()
	var got []jtext.Token
	for {
		err := s.Next()
		if err == io.EOF {
			return got
		} else if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		got = append(got, s.Token())
	}
}

func TestScanner(t *testing.T) {
	tests := []struct {
		input string
		want  []jtext.Token
	}{
		// Empty inputs
		{"", nil},
		{"  ", nil},
		{"\n\n  \n", nil},
		{"\t  \r\n \t  \r\n", nil},

		// Constants
		{"true false null", []jtext.Token{jtext.True, jtext.False, jtext.Null}},

		// Punctuation
		{"{ [ ] } , :", []jtext.Token{
			jtext.LBrace, jtext.LSquare, jtext.RSquare, jtext.RBrace, jtext.Comma, jtext.Colon,
		}},

		// Strings
		{`"" "a b c" "a\nb\tc"`, []jtext.Token{jtext.String, jtext.String, jtext.String}},
		{`"\"\\\/\b\f\n\r\t"`, []jtext.Token{jtext.String}},
		{`"\u0000Ǽꪜ"`, []jtext.Token{jtext.String}},

		// Numbers
		{`0 -1 5139 2.3 5e+9 3.6E+4 -0.001E-100`, []jtext.Token{
			jtext.Integer, jtext.Integer, jtext.Integer,
			jtext.Number, jtext.Number, jtext.Number, jtext.Number,
		}},

		// Mixed types
		{`{true,"false":-15 null[]}`, []jtext.Token{
			jtext.LBrace, jtext.True, jtext.Comma, jtext.String, jtext.Colon,
			jtext.Integer, jtext.Null, jtext.LSquare, jtext.RSquare, jtext.RBrace,
		}},
		{`{"a": true, "b":[null, 1, 0.5]}`, []jtext.Token{
			jtext.LBrace,
			jtext.String, jtext.Colon, jtext.True, jtext.Comma,
			jtext.String, jtext.Colon,
			jtext.LSquare,
			jtext.Null, jtext.Comma, jtext.Integer, jtext.Comma, jtext.Number,
			jtext.RSquare,
			jtext.RBrace,
		}},
		{`"a",1,true
     false["b"]
     `, []jtext.Token{
			jtext.String, jtext.Comma, jtext.Integer, jtext.Comma, jtext.True,
			jtext.False, jtext.LSquare, jtext.String, jtext.RSquare,
		}},
	}

	for _, test := range tests {
		s := jtext.NewScanner(strings.NewReader(test.input))
		got := scanAll(t, s)
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestScanner_errors(t *testing.T) {
	tests := []struct {
		input string
		code  jtext.ErrorCode
	}{
		{`q`, jtext.ErrInvalidSyntax},
		{`tru`, jtext.ErrInvalidSyntax},
		{`falsy`, jtext.ErrInvalidSyntax},
		{`nul`, jtext.ErrInvalidSyntax},
		{`#`, jtext.ErrInvalidSyntax},

		{`"no closing quote`, jtext.ErrUnterminatedString},
		{`"stop\`, jtext.ErrUnterminatedString},
		{`"\u00`, jtext.ErrUnterminatedString},
		{`"\x"`, jtext.ErrInvalidEscape},
		{`"\u00q9"`, jtext.ErrInvalidEscape},

		{`-`, jtext.ErrUnexpectedEOF},
		{`-x`, jtext.ErrInvalidNumber},
		{`1.`, jtext.ErrInvalidNumber},
		{`1.e5`, jtext.ErrInvalidNumber},
		{`5e`, jtext.ErrUnexpectedEOF},
		{`5e+`, jtext.ErrInvalidNumber},
		{`5ex`, jtext.ErrInvalidNumber},
	}
	for _, test := range tests {
		t.Run("", func(t *testing.T) {
			s := jtext.NewScanner(strings.NewReader(test.input))
			var err error
			for err == nil {
				err = s.Next()
			}
			if err == io.EOF {
				t.Fatalf("Scan %#q: unexpected success", test.input)
			}
			pe, ok := err.(*jtext.ParserError)
			if !ok {
				t.Fatalf("Scan %#q: got error %v, want *ParserError", test.input, err)
			}
			if pe.Code != test.code {
				t.Errorf("Scan %#q: got code %v, want %v", test.input, pe.Code, test.code)
			}
		})
	}
}

func TestScanner_readError(t *testing.T) {
	errBroken := errors.New("pipe broke")

	// The reader delivers some valid tokens, then fails mid-stream. The
	// scanner must surface the transport error, not a syntax error.
	r := io.MultiReader(strings.NewReader(`[1, "ab`), iotest.ErrReader(errBroken))
	s := jtext.NewScanner(r)
	var err error
	for err == nil {
		err = s.Next()
	}
	if err == io.EOF {
		t.Fatal("Scan: unexpected success")
	}
	pe, ok := err.(*jtext.ParserError)
	if !ok {
		t.Fatalf("Scan: got error %v, want *ParserError", err)
	}
	if pe.Code != jtext.ErrReadFailed {
		t.Errorf("Scan: got code %v, want %v", pe.Code, jtext.ErrReadFailed)
	}
	if !errors.Is(err, errBroken) {
		t.Errorf("Scan: error %v does not wrap %v", err, errBroken)
	}
}

func TestScanner_strict(t *testing.T) {
	tests := []struct {
		input string
		code  jtext.ErrorCode
	}{
		{"\"ctrl \t here\"", jtext.ErrInvalidSyntax},
		{"\"newline \n\"", jtext.ErrInvalidSyntax},
		{`01`, jtext.ErrInvalidNumber},
		{`-007`, jtext.ErrInvalidNumber},
		{`00.1`, jtext.ErrInvalidNumber},
	}
	for _, test := range tests {
		// Lenient mode accepts the input.
		s := jtext.NewScanner(strings.NewReader(test.input))
		scanAll(t, s)

		// Strict mode rejects it.
		s = jtext.NewScanner(strings.NewReader(test.input))
		s.SetStrict(true)
		var err error
		for err == nil {
			err = s.Next()
		}
		pe, ok := err.(*jtext.ParserError)
		if !ok {
			t.Fatalf("Scan %#q: got error %v, want *ParserError", test.input, err)
		}
		if pe.Code != test.code {
			t.Errorf("Scan %#q: got code %v, want %v", test.input, pe.Code, test.code)
		}
	}
}

func TestScanner_text(t *testing.T) {
	mustScan := func(t *testing.T, input string, want jtext.Token) *jtext.Scanner {
		t.Helper()
		s := jtext.NewScanner(strings.NewReader(input))
		if err := s.Next(); err != nil {
			t.Fatalf("Next failed: %v", err)
		} else if s.Token() != want {
			t.Fatalf("Next token: got %v, want %v", s.Token(), want)
		}
		return s
	}

	t.Run("Integer", func(t *testing.T) {
		s := mustScan(t, `-15`, jtext.Integer)
		if got := string(s.Text()); got != "-15" {
			t.Errorf("Text: got %#q, want -15", got)
		}
	})
	t.Run("Number", func(t *testing.T) {
		s := mustScan(t, `3.25e-5`, jtext.Number)
		if got := string(s.Text()); got != "3.25e-5" {
			t.Errorf("Text: got %#q, want 3.25e-5", got)
		}
	})
	t.Run("Constants", func(t *testing.T) {
		mustScan(t, `true`, jtext.True)
		mustScan(t, `false`, jtext.False)
		mustScan(t, `null`, jtext.Null)
	})
	t.Run("String", func(t *testing.T) {
		const wantText = `"a\tb c\n"` // as written, with quotes
		const wantDec = "a\tb c\n"    // with escapes undone
		s := mustScan(t, wantText, jtext.String)
		text := string(s.Text())
		if text != wantText {
			t.Errorf("Text: got %#q, want %#q", text, wantText)
		}
		if u, err := jtext.Unquote(text); err != nil {
			t.Errorf("Unquote failed: %v", err)
		} else if got := string(u); got != wantDec {
			t.Errorf("Unquote: got %#q, want %#q", got, wantDec)
		}
	})
}

func TestScannerPos(t *testing.T) {
	type tokPos struct {
		Tok jtext.Token
		Pos jtext.LineCol
	}
	tests := []struct {
		input string
		want  []tokPos
	}{
		{"", nil},
		{"{ }", []tokPos{
			{jtext.LBrace, jtext.LineCol{Line: 0, Column: 1}},
			{jtext.RBrace, jtext.LineCol{Line: 0, Column: 3}},
		}},
		{"true\n false\n", []tokPos{
			{jtext.True, jtext.LineCol{Line: 0, Column: 4}},
			{jtext.False, jtext.LineCol{Line: 1, Column: 6}},
		}},
		{"[1,\n 2]", []tokPos{
			{jtext.LSquare, jtext.LineCol{Line: 0, Column: 1}},
			{jtext.Integer, jtext.LineCol{Line: 0, Column: 2}},
			{jtext.Comma, jtext.LineCol{Line: 0, Column: 3}},
			{jtext.Integer, jtext.LineCol{Line: 1, Column: 2}},
			{jtext.RSquare, jtext.LineCol{Line: 1, Column: 3}},
		}},
	}
	for _, tc := range tests {
		var got []tokPos
		s := jtext.NewScanner(strings.NewReader(tc.input))
		for {
			err := s.Next()
			if err == io.EOF {
				break
			} else if err != nil {
				t.Fatalf("Next failed: %v", err)
			}
			got = append(got, tokPos{s.Token(), s.Pos()})
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", tc.input, diff)
		}
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", `""`},
		{" ", `" "`},
		{"a\t\nb", `"a\t\nb"`},
		{"\x00\x01\x02", `"\u0000\u0001\u0002"`},
		{`a "b c\" d"`, `"a \"b c\\\" d\""`},
		{`\ufffd`, `"\\ufffd"`},
		{"\u2028 \u2029", `"\u2028 \u2029"`},
		{"\ufffd", "\"\ufffd\""}, // replacement rune passes through raw
		{"This is the end\v", `"This is the end\u000b"`},
		{"<\x1e>", `"<\u001e>"`},
	}
	for _, test := range tests {
		got := jtext.Quote(test.input)
		if got != test.want {
			t.Errorf("Input: %#q\nGot:  %#q\nWant: %#q", test.input, got, test.want)
		}
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		input string
		want  string
		fail  bool
	}{
		{``, ``, true},                        // missing quotes
		{`"missing quote`, ``, true},          // missing quotes
		{`missing quote"`, ``, true},          // missing quotes
		{`""`, ``, false},                     // ok
		{`"ok go"`, "ok go", false},           // ok
		{`"abc\ndef"`, "abc\ndef", false},     // C escapes
		{`"\tabc\n"`, "\tabc\n", false},       // C escapes
		{`"\b\f\n\r\t"`, "\b\f\n\r\t", false}, // C escapes
		{`"a \u0026 b"`, "a & b", false},      // short Unicode escape
		{`"\u"`, ``, true},                    // incomplete Unicode escape
		{`"\u00"`, ``, true},                  // incomplete Unicode escape
		{`"\u00x9"`, ``, true},                // invalid Unicode escape
		{`"a\"b"`, `a"b`, false},              // ok
		{`"a\\b\\cd"`, `a\b\cd`, false},       // ok

		// Surrogate pairs must be complete and properly ordered.
		{`"😃"`, "\U0001f603", false}, // smiling face
		{`"\ud83d"`, ``, true},       // unpaired high surrogate
		{`"\ud83d x"`, ``, true},     // unpaired high surrogate
		{`"\ud83d\u0041"`, ``, true}, // mismatched surrogate pair
		{`"\ude03"`, ``, true},       // lone low surrogate

		// Noncharacters are accepted.
		{`"﷐"`, "﷐", false},
		{`"￿"`, "￿", false},
	}

	for _, test := range tests {
		got, err := jtext.Unquote(test.input)
		if err != nil {
			if !test.fail {
				t.Errorf("Unquote(%#q): got %v, want no error", test.input, err)
			} else {
				t.Logf("Unquote(%#q): got expected error: %v", test.input, err)
			}
		} else if test.fail {
			t.Errorf("Unquote(%#q): got nil, want error", test.input)
		}
		if cmp := string(got); cmp != test.want {
			t.Errorf("Unquote(%#q): got %#q, want %#q", test.input, cmp, test.want)
		}
	}
}
