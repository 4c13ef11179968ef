package digest

import (
	"strings"
	"testing"
)

func TestParseRoundTrip(t *testing.T) {
	t.Parallel()

	raw := "xxh3:00112233445566778899aabbccddeeff"

	v, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if got := v.String(); got != raw {
		t.Fatalf("String() = %q, want %q", got, raw)
	}
}

func TestParseRejectsInvalidFormat(t *testing.T) {
	t.Parallel()

	invalid := []string{
		"xxh3",
		"xxh3:",
		"md5:abcd",
		"xxh3:not-hex",
		"xxh3:ab:cd",
		"sha256:abcd",
	}
	for _, raw := range invalid {
		if _, err := Parse(raw); err == nil {
			t.Fatalf("expected parse error for %q", raw)
		}
	}
}

func TestParseEmptyIsZero(t *testing.T) {
	t.Parallel()

	v, err := Parse("")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if !v.IsZero() {
		t.Fatalf("expected zero digest for empty input, got %#v", v)
	}
}

func TestOfIsStable(t *testing.T) {
	t.Parallel()

	a := Of([]byte("PK archive bytes"))
	b := Of([]byte("PK archive bytes"))
	c := Of([]byte("PK other bytes"))

	if !a.Equal(b) {
		t.Fatalf("digests of equal input differ: %s vs %s", a, b)
	}
	if a.Equal(c) {
		t.Fatalf("digests of different input match: %s", a)
	}
	if !strings.HasPrefix(a.String(), "xxh3:") || len(a.Sum) != 32 {
		t.Fatalf("unexpected digest format %q", a)
	}

	parsed, err := Parse(a.String())
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if !parsed.Equal(a) {
		t.Fatalf("parsed digest %s does not equal %s", parsed, a)
	}
}

func TestEqualIgnoresZeroAndAlgorithmMismatch(t *testing.T) {
	t.Parallel()

	if (Digest{}).Equal(Digest{}) {
		t.Fatal("zero digests should never match")
	}

	d := Of([]byte("same bytes"))
	other := Digest{Algorithm: "md5", Sum: d.Sum}
	if d.Equal(other) || other.Equal(d) {
		t.Fatal("digests of different algorithms should not match")
	}
}
