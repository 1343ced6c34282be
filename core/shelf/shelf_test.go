package shelf

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/ewhitby/pipekit/core/config"
)

func testShelves(t *testing.T) config.Shelves {
	t.Helper()
	base := t.TempDir()
	cfg := config.Shelves{
		LocalDir:  filepath.Join(base, "local"),
		PresetDir: filepath.Join(base, "preset"),
		GlobalDir: filepath.Join(base, "global"),
		Order:     []string{"Shotgrid", "vm_Assets", "vm_Rigging", "Custom"},
	}
	for _, dir := range []string{cfg.LocalDir, cfg.PresetDir, cfg.GlobalDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("setup failed: %v", err)
		}
	}
	return cfg
}

func writeShelf(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, FileName(name)), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write shelf %s: %v", name, err)
	}
}

func TestShelfFileNaming(t *testing.T) {
	if !IsShelfFile("shelf_vm_Rigging.mel") {
		t.Error("shelf_vm_Rigging.mel should be a shelf file")
	}
	for _, name := range []string{"vm_Rigging.mel", "shelf_vm_Rigging.txt", "readme.md", "shelf_a b.mel"} {
		if IsShelfFile(name) {
			t.Errorf("%s should not be a shelf file", name)
		}
	}

	short, ok := ShortName("shelf_vm_Rigging.mel")
	if !ok || short != "vm_Rigging" {
		t.Errorf("ShortName() = %q, %v; want vm_Rigging, true", short, ok)
	}

	if got := FileName("vm_Rigging"); got != "shelf_vm_Rigging.mel" {
		t.Errorf("FileName() = %q, want shelf_vm_Rigging.mel", got)
	}
}

func TestSortByReference(t *testing.T) {
	reference := []string{"Shotgrid", "vm_Assets", "Custom"}
	shelves := []string{"Zebra", "Custom", "vm_Assets", "Alpha", "Shotgrid"}

	got := SortByReference(shelves, reference)
	want := []string{"Shotgrid", "vm_Assets", "Custom", "Zebra", "Alpha"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SortByReference() = %v, want %v", got, want)
	}
}

func TestDirForRejectsUnknownContext(t *testing.T) {
	cfg := testShelves(t)

	if _, err := DirFor(Context("depot"), cfg); err == nil {
		t.Error("DirFor(depot) succeeded, want error")
	}

	cfg.LocalDir = filepath.Join(cfg.LocalDir, "missing")
	if _, err := DirFor(Local, cfg); err == nil {
		t.Error("DirFor with a missing directory succeeded, want error")
	}
}

func TestListOrdersShelves(t *testing.T) {
	cfg := testShelves(t)
	writeShelf(t, cfg.LocalDir, "Custom", "// custom")
	writeShelf(t, cfg.LocalDir, "Shotgrid", "// shotgrid")
	writeShelf(t, cfg.LocalDir, "Extra", "// extra")
	if err := os.WriteFile(filepath.Join(cfg.LocalDir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	got, err := List(Local, cfg)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}

	want := []string{"Shotgrid", "Custom", "Extra"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
}

func TestPublishCopiesShelf(t *testing.T) {
	cfg := testShelves(t)
	writeShelf(t, cfg.LocalDir, "vm_Rigging", "// rigging tools v2")

	if err := Publish("vm_Rigging", cfg); err != nil {
		t.Fatalf("Publish() failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(cfg.GlobalDir, FileName("vm_Rigging")))
	if err != nil {
		t.Fatalf("published shelf missing: %v", err)
	}
	if string(data) != "// rigging tools v2" {
		t.Errorf("published content = %q", data)
	}
}

func TestPublishSkipsUnchangedShelf(t *testing.T) {
	cfg := testShelves(t)
	writeShelf(t, cfg.LocalDir, "vm_Rigging", "// same")
	writeShelf(t, cfg.GlobalDir, "vm_Rigging", "// same")

	if err := Publish("vm_Rigging", cfg); err != ErrUnchanged {
		t.Fatalf("Publish() = %v, want ErrUnchanged", err)
	}
}

func TestPublishMissingShelfFails(t *testing.T) {
	cfg := testShelves(t)

	if err := Publish("vm_Rigging", cfg); err == nil {
		t.Fatal("Publish() succeeded with no local shelf")
	}
}

func TestPublishWritesManifest(t *testing.T) {
	cfg := testShelves(t)
	writeShelf(t, cfg.LocalDir, "Custom", "// custom")

	if err := Publish("Custom", cfg); err != nil {
		t.Fatalf("Publish() failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(cfg.GlobalDir, "shelves.yaml"))
	if err != nil {
		t.Fatalf("manifest missing: %v", err)
	}
	if !strings.Contains(string(data), "Custom") || !strings.Contains(string(data), "shelf_Custom.mel") {
		t.Errorf("manifest does not mention the shelf: %s", data)
	}
}

func TestSyncPublishesOnlyChangedShelves(t *testing.T) {
	cfg := testShelves(t)
	writeShelf(t, cfg.LocalDir, "Shotgrid", "// new version")
	writeShelf(t, cfg.LocalDir, "Custom", "// unchanged")
	writeShelf(t, cfg.GlobalDir, "Custom", "// unchanged")

	result, err := Sync(cfg)
	if err != nil {
		t.Fatalf("Sync() failed: %v", err)
	}

	if !reflect.DeepEqual(result.Published, []string{"Shotgrid"}) {
		t.Errorf("Published = %v, want [Shotgrid]", result.Published)
	}
	if !reflect.DeepEqual(result.Skipped, []string{"Custom"}) {
		t.Errorf("Skipped = %v, want [Custom]", result.Skipped)
	}
}
