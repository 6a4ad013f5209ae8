package normalize

import (
	"testing"
)

func TestText_Table(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{name: "identity ascii", in: "Cannot log in", out: "Cannot log in"},
		{name: "trim", in: "  \t Cannot log in \n ", out: "Cannot log in"},
		{
			name: "drops invalid utf8",
			in:   string([]byte{0xff, 'f', 'o', 'o', 0x80, ' ', 'b', 'a', 'r'}),
			out:  "foo bar",
		},
		{name: "drops NUL and controls", in: "a\x00b\x07c\x1bd\x7fe", out: "abcde"},
		{name: "keeps line breaks and tabs", in: "line one\r\nline\ttwo", out: "line one\r\nline\ttwo"},
		{name: "drops C1 controls", in: "a\u0085b\u009fc", out: "abc"},
		{name: "removes zero widths", in: "da\u200bsh\u200dboard\ufeff", out: "dashboard"},
		{name: "composes to NFC", in: "cafe\u0301", out: "caf\u00e9"},
		{name: "keeps case and digits", in: "Export Q4 2024", out: "Export Q4 2024"},
		{name: "only junk", in: " \u200b\x00 ", out: ""},
		{name: "empty", in: "", out: ""},
		{name: "keeps non latin", in: "  Не работает 日本 ", out: "Не работает 日本"},
		{name: "drops bidi marks", in: "‮ticket‬", out: "ticket"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Text(tc.in)
			if got != tc.out {
				t.Fatalf("Text(%q) = %q, want %q", tc.in, got, tc.out)
			}
			if again := Text(got); again != got {
				t.Fatalf("Text not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestPtr(t *testing.T) {
	if Ptr(nil) != nil {
		t.Fatalf("nil should stay nil")
	}
	s := "  hi\u200b "
	got := Ptr(&s)
	if got == nil || *got != "hi" {
		t.Fatalf("Ptr = %v", got)
	}
	if s != "  hi\u200b " {
		t.Fatalf("input was modified")
	}
}
