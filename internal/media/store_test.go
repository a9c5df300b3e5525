package media

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) (Store, string) {
	t.Helper()
	root := t.TempDir()
	store, err := NewDiskStore(root)
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}
	return store, root
}

func writeImage(t *testing.T, root string, propertyID, name string) string {
	t.Helper()
	dir := filepath.Join(root, "properties", propertyID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("jpeg-bytes"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestListBoardImages(t *testing.T) {
	store, root := newTestStore(t)
	writeImage(t, root, "10", "front.jpg")
	writeImage(t, root, "10", "kitchen.jpg")
	writeImage(t, root, "11", "balcony.jpg")

	files, err := store.ListBoardImages(context.Background(), 1, []uint{10, 11, 99})
	if err != nil {
		t.Fatalf("ListBoardImages: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("files = %d, want 3", len(files))
	}
	for _, f := range files {
		if f.Size == 0 {
			t.Errorf("file %s has zero size", f.Name)
		}
	}
}

func TestCopyAndRename(t *testing.T) {
	store, root := newTestStore(t)
	src := writeImage(t, root, "10", "front.jpg")

	copied, err := store.CopyAndRename(context.Background(), 1, []CopySpec{
		{SourcePath: src, TargetName: "rose-villa-front.jpg"},
		{SourcePath: src}, // no target name, store picks one
	})
	if err != nil {
		t.Fatalf("CopyAndRename: %v", err)
	}
	if len(copied) != 2 {
		t.Fatalf("copied = %d, want 2", len(copied))
	}
	if copied[0].Name != "rose-villa-front.jpg" {
		t.Errorf("name = %q", copied[0].Name)
	}
	if filepath.Ext(copied[1].Name) != ".jpg" {
		t.Errorf("generated name %q lost the extension", copied[1].Name)
	}

	for _, f := range copied {
		if _, err := os.Stat(filepath.Join(root, "boards", "1", f.Name)); err != nil {
			t.Errorf("copy %s not on disk: %v", f.Name, err)
		}
	}
}

func TestCopyRejectsOutsideRoot(t *testing.T) {
	store, _ := newTestStore(t)

	outside := filepath.Join(t.TempDir(), "secret.txt")
	if err := os.WriteFile(outside, []byte("x"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := store.CopyAndRename(context.Background(), 1, []CopySpec{{SourcePath: outside}}); err == nil {
		t.Error("copy from outside the media root accepted")
	}
}
