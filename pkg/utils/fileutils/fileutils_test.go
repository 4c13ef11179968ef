package fileutils

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestReadLimited(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "export.zip")
	if err := os.WriteFile(path, []byte("0123456789"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	data, err := ReadLimited(path, 10)
	if err != nil {
		t.Fatalf("ReadLimited returned error: %v", err)
	}
	if string(data) != "0123456789" {
		t.Fatalf("ReadLimited = %q", data)
	}

	if _, err := ReadLimited(path, 9); !errors.Is(err, ErrExceedsLimit) {
		t.Fatalf("ReadLimited over the limit returned %v, want ErrExceedsLimit", err)
	}
}

func TestStatRegularRejectsDirectories(t *testing.T) {
	t.Parallel()

	if _, err := StatRegular(t.TempDir()); err == nil {
		t.Fatal("expected StatRegular to reject a directory")
	}
}

func TestAbsPathExpandsHome(t *testing.T) {
	t.Parallel()

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	got, err := AbsPath("~/exports/archive.zip")
	if err != nil {
		t.Fatalf("AbsPath returned error: %v", err)
	}
	if want := filepath.Join(home, "exports", "archive.zip"); got != want {
		t.Fatalf("AbsPath = %q, want %q", got, want)
	}

	if _, err := AbsPath("  "); err == nil {
		t.Fatal("expected AbsPath to reject an empty path")
	}
}

func TestRemovePathRefusesRoot(t *testing.T) {
	t.Parallel()

	if err := RemovePath(string(filepath.Separator)); err == nil {
		t.Fatal("expected RemovePath to refuse the filesystem root")
	}

	missing := filepath.Join(t.TempDir(), "missing")
	if err := RemovePath(missing); err != nil {
		t.Fatalf("RemovePath on a missing path returned error: %v", err)
	}
}
