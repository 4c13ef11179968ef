package version

import (
	"fmt"
	"testing"
)

func TestParse(t *testing.T) {
	t.Parallel()

	v, err := Parse("v1.2.3")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if v.Major() != 1 || v.Minor() != 2 || v.Patch() != 3 {
		t.Fatalf("Parse parsed wrong value: %s", v)
	}
}

func TestParseRejectsInvalidFormat(t *testing.T) {
	t.Parallel()

	invalid := []string{
		"",
		"   ",
		"1.2.x",
		">=1.2.3",
		"1.2.3-beta",
		"1.2.3+build.7",
		"one.two.three",
	}

	for _, raw := range invalid {
		if _, err := Parse(raw); err == nil {
			t.Fatalf("expected parse error for %q", raw)
		}
	}
}

func TestEnsureCompatible(t *testing.T) {
	t.Parallel()

	current, err := Parse(Version)
	if err != nil {
		t.Fatalf("parse current version: %v", err)
	}

	if err := EnsureCompatible(""); err != nil {
		t.Fatalf("empty version should be accepted, got: %v", err)
	}
	if err := EnsureCompatible(current.String()); err != nil {
		t.Fatalf("current version should be compatible, got: %v", err)
	}

	newerPatch := fmt.Sprintf("%d.%d.%d", current.Major(), current.Minor(), current.Patch()+1)
	if err := EnsureCompatible(newerPatch); err == nil {
		t.Fatalf("expected incompatibility for newer version %q", newerPatch)
	}

	nextMajor := fmt.Sprintf("%d.0.0", current.Major()+1)
	if err := EnsureCompatible(nextMajor); err == nil {
		t.Fatalf("expected incompatibility for major mismatch %q", nextMajor)
	}
}
