package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/mwantia/virtfs/archive"
	"github.com/mwantia/virtfs/archive/archivetest"
)

func openCatalog(t *testing.T) *Catalog {
	t.Helper()

	c, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { c.Close() })

	return c
}

func TestCatalog_StoreLoad(t *testing.T) {
	ctx := t.Context()
	c := openCatalog(t)

	path := archivetest.Write(t, filepath.Join(t.TempDir(), "test.zip"), archivetest.Game()...)
	idx, err := archive.ReadIndex(path)
	if err != nil {
		t.Fatalf("ReadIndex failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}

	if _, ok, err := c.Load(ctx, path, info); err != nil || ok {
		t.Fatalf("Expected miss before Store, got ok=%v err=%v", ok, err)
	}

	if err := c.Store(ctx, idx, info); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	loaded, ok, err := c.Load(ctx, path, info)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !ok {
		t.Fatal("Expected catalog hit")
	}

	if diff := cmp.Diff(idx.Headers(), loaded.Headers()); diff != "" {
		t.Errorf("Headers mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(idx.Dirs(), loaded.Dirs()); diff != "" {
		t.Errorf("Dirs mismatch (-want +got):\n%s", diff)
	}

	// The loaded index still reads payloads from the archive
	h, _ := loaded.Lookup("dir/1/test.txt")
	content, err := loaded.ReadFile(h)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(content) != "test line 1\ntest line 2" {
		t.Errorf("Unexpected content %q", content)
	}

	// Storing again replaces instead of duplicating
	if err := c.Store(ctx, idx, info); err != nil {
		t.Fatalf("Second Store failed: %v", err)
	}
	archives, err := c.Archives(ctx)
	if err != nil {
		t.Fatalf("Archives failed: %v", err)
	}
	if diff := cmp.Diff([]string{path}, archives); diff != "" {
		t.Errorf("Archives mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalog_StaleEntry(t *testing.T) {
	ctx := t.Context()
	c := openCatalog(t)

	path := archivetest.Write(t, filepath.Join(t.TempDir(), "test.zip"), archivetest.Game()...)
	idx, err := archive.ReadIndex(path)
	if err != nil {
		t.Fatalf("ReadIndex failed: %v", err)
	}
	info, _ := os.Stat(path)

	if err := c.Store(ctx, idx, info); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	later := info.ModTime().Add(time.Hour)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatalf("Chtimes failed: %v", err)
	}
	changed, _ := os.Stat(path)

	if _, ok, err := c.Load(ctx, path, changed); err != nil || ok {
		t.Errorf("Expected miss for modified archive, got ok=%v err=%v", ok, err)
	}

	if err := c.Forget(ctx, path); err != nil {
		t.Fatalf("Forget failed: %v", err)
	}
	if _, ok, _ := c.Load(ctx, path, info); ok {
		t.Error("Expected miss after Forget")
	}
}
