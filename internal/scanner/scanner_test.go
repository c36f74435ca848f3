package scanner

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "users.feature"), `
@apiOperation:listUsers
Feature: user listing

  @apiOperation:createUser
  Scenario: create
`)
	writeFile(t, filepath.Join(root, "admin", "admin.feature"), "@apiOperation:listUsers\n")
	writeFile(t, filepath.Join(root, "notes.txt"), "@apiOperation:ignoredByExtension\n")

	mapping, err := New(root, "").Scan()
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if len(mapping) != 2 {
		t.Fatalf("Expected 2 operation IDs, got %d: %v", len(mapping), mapping)
	}
	if !reflect.DeepEqual(mapping["listUsers"], []string{"admin/admin.feature", "users.feature"}) {
		t.Errorf("Unexpected files for listUsers: %v", mapping["listUsers"])
	}
	if !reflect.DeepEqual(mapping["createUser"], []string{"users.feature"}) {
		t.Errorf("Unexpected files for createUser: %v", mapping["createUser"])
	}
}

func TestScan_DuplicateOccurrencesKept(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "dup.feature"), "@apiOperation:getX\n@apiOperation:getX\n")

	mapping, err := New(root, "").Scan()
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if got := mapping["getX"]; len(got) != 2 {
		t.Errorf("Expected duplicate occurrences kept, got %v", got)
	}
}

func TestScan_RelativeBase(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "test", "features")
	writeFile(t, filepath.Join(root, "x.feature"), "@apiOperation:getX\n")

	mapping, err := New(root, base).Scan()
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	want := []string{"test/features/x.feature"}
	if !reflect.DeepEqual(mapping["getX"], want) {
		t.Errorf("Expected paths relative to base %v, got %v", want, mapping["getX"])
	}
}

func TestScan_UnreadableFileSkipped(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "ok.feature"), "@apiOperation:getX\n")
	if err := os.Symlink(filepath.Join(root, "missing-target"), filepath.Join(root, "broken.feature")); err != nil {
		t.Skipf("Cannot create symlink: %v", err)
	}

	mapping, err := New(root, "").Scan()
	if err != nil {
		t.Fatalf("Scan should continue past unreadable files, got: %v", err)
	}
	if len(mapping["getX"]) != 1 {
		t.Errorf("Expected readable file still scanned, got %v", mapping)
	}
}

func TestScan_MissingRoot(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "absent"), "").Scan(); err == nil {
		t.Error("Expected error for missing features directory")
	}
}

func TestScan_IdentifierBoundary(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.feature"), "@apiOperation:get_user-extra @apiOperation: spaced\n")

	mapping, err := New(root, "").Scan()
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	// Word characters only: the identifier stops at '-', and a marker with no
	// identifier does not match.
	if _, ok := mapping["get_user"]; !ok {
		t.Errorf("Expected get_user in mapping, got %v", mapping)
	}
	if len(mapping) != 1 {
		t.Errorf("Expected a single identifier, got %v", mapping)
	}
}
