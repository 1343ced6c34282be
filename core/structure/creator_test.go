package structure

import (
	"os"
	"path/filepath"
	"testing"
)

func mustDir(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected directory %s: %v", path, err)
	}
	if !info.IsDir() {
		t.Fatalf("%s exists but is not a directory", path)
	}
}

func TestCreateBuildsTree(t *testing.T) {
	root := filepath.Join(t.TempDir(), "project")
	tmpl := Template{
		"Characters": {
			"Heroes": {"Meshes": {}},
		},
		"Audio": {},
	}

	creator := NewCreator(false)
	if err := creator.Create(root, tmpl); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	mustDir(t, filepath.Join(root, "Characters"))
	mustDir(t, filepath.Join(root, "Characters", "Heroes"))
	mustDir(t, filepath.Join(root, "Characters", "Heroes", "Meshes"))
	mustDir(t, filepath.Join(root, "Audio"))

	if got := len(creator.Created()); got != 4 {
		t.Errorf("Created() reported %d folders, want 4", got)
	}
}

func TestCreateIsIdempotent(t *testing.T) {
	root := filepath.Join(t.TempDir(), "project")
	tmpl := Template{"Characters": {"Heroes": {}}}

	if err := NewCreator(false).Create(root, tmpl); err != nil {
		t.Fatalf("first Create() failed: %v", err)
	}

	second := NewCreator(false)
	if err := second.Create(root, tmpl); err != nil {
		t.Fatalf("second Create() failed: %v", err)
	}

	if got := len(second.Created()); got != 0 {
		t.Errorf("second run created %d folders, want 0", got)
	}
}

func TestCreateFillsInMissingFolders(t *testing.T) {
	root := filepath.Join(t.TempDir(), "project")
	if err := os.MkdirAll(filepath.Join(root, "Characters"), 0755); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	tmpl := Template{"Characters": {"Heroes": {}}, "Audio": {}}
	creator := NewCreator(false)
	if err := creator.Create(root, tmpl); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	mustDir(t, filepath.Join(root, "Characters", "Heroes"))
	mustDir(t, filepath.Join(root, "Audio"))

	if got := len(creator.Created()); got != 2 {
		t.Errorf("Created() reported %d folders, want 2", got)
	}
}

func TestCreateRejectsInvalidTemplateBeforeWriting(t *testing.T) {
	root := filepath.Join(t.TempDir(), "project")
	tmpl := Template{
		"Characters": {},
		"bad":        {"..": {}},
	}

	if err := NewCreator(false).Create(root, tmpl); err == nil {
		t.Fatal("Create() succeeded with an invalid template")
	}

	if _, err := os.Stat(root); !os.IsNotExist(err) {
		t.Errorf("invalid template still created %s", root)
	}
}

func TestCreateDryRunTouchesNothing(t *testing.T) {
	root := filepath.Join(t.TempDir(), "project")
	tmpl := Template{"Characters": {"Heroes": {}}}

	creator := NewCreator(true)
	if err := creator.Create(root, tmpl); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	if _, err := os.Stat(root); !os.IsNotExist(err) {
		t.Errorf("dry run created %s", root)
	}

	if got := len(creator.Created()); got != 2 {
		t.Errorf("dry run planned %d folders, want 2", got)
	}
}

func TestCreateFailsOnFileCollision(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "Audio"), []byte("not a folder"), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	tmpl := Template{"Audio": {}}
	if err := NewCreator(false).Create(root, tmpl); err == nil {
		t.Fatal("Create() succeeded over an existing file")
	}
}
