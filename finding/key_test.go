package finding

import "testing"

func TestNormalizePath(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"src/Chat.ts", "src/chat"},
		{"src/chat.js", "src/chat"},
		{`src\Chat.tsx`, "src/chat"},
		{"SRC/CHAT.JSX", "src/chat"},
		{"src/util.go", "src/util.go"},
		{"chat", "chat"},
	}
	for _, tc := range cases {
		if got := NormalizePath(tc.in); got != tc.want {
			t.Fatalf("NormalizePath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestKeyIdentifiesRenamedExtensions(t *testing.T) {
	t.Parallel()

	a := KeyOf(Finding{RuleID: "AI001", File: "src/chat.js", Line: 10, Summary: "s"})
	b := KeyOf(Finding{RuleID: "AI001", File: `src\Chat.ts`, Line: 10, Summary: "s"})
	if a != b {
		t.Fatalf("keys differ for equivalent locations: %v vs %v", a, b)
	}
	if a.Hash() != b.Hash() {
		t.Fatalf("hashes differ for equal keys")
	}

	c := KeyOf(Finding{RuleID: "AI002", File: "src/chat.js", Line: 10, Summary: "s"})
	if a == c {
		t.Fatalf("keys collide across rule IDs")
	}
}

func TestParseSeverity(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want Severity
	}{
		{"low", Low},
		{"medium", Medium},
		{"HIGH", High},
		{"Critical", Critical},
		{"bogus", Low},
	}
	for _, tc := range cases {
		if got := ParseSeverity(tc.in); got != tc.want {
			t.Fatalf("ParseSeverity(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
