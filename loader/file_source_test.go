package loader

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSourceReadWithinRoot(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "app.json"), []byte(`{"val":1}`), 0o644); err != nil {
		t.Fatal(err)
	}
	src := NewFileSource(dir)
	b, err := src.Read("app.json")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(b) != `{"val":1}` {
		t.Fatalf("unexpected contents: %s", b)
	}
	if !src.Exists("app.json") {
		t.Fatal("Exists should be true")
	}
}

func TestFileSourceRejectsParentTraversal(t *testing.T) {
	dir := t.TempDir()
	src := NewFileSource(dir)
	if _, err := src.Read("../etc/passwd"); !IsSandboxViolation(err) {
		t.Fatalf("expected SandboxViolation, got %v", err)
	}
}

func TestFileSourceRejectsSymlinkEscape(t *testing.T) {
	dir := t.TempDir()
	outside := t.TempDir()
	if err := os.WriteFile(filepath.Join(outside, "secret.json"), []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(outside, "secret.json"), filepath.Join(dir, "link.json")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	src := NewFileSource(dir)
	if _, err := src.Read("link.json"); !IsSandboxViolation(err) {
		t.Fatalf("expected SandboxViolation for symlink escape, got %v", err)
	}
}

func TestFileSourceMissingIsNotFound(t *testing.T) {
	dir := t.TempDir()
	src := NewFileSource(dir)
	if _, err := src.Read("missing.json"); !IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}
