// Package archivetest builds ZIP fixtures for tests.
package archivetest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
)

// Entry is a single archive member. Names ending in '/' become directory records.
type Entry struct {
	Name    string
	Content string
	Store   bool
}

// Write creates a ZIP archive at path containing entries in order.
func Write(t testing.TB, path string, entries ...Entry) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create archive failed: %v", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for _, entry := range entries {
		method := zip.Deflate
		if entry.Store || strings.HasSuffix(entry.Name, "/") {
			method = zip.Store
		}

		fw, err := w.CreateHeader(&zip.FileHeader{
			Name:   entry.Name,
			Method: method,
		})
		if err != nil {
			t.Fatalf("CreateHeader %s failed: %v", entry.Name, err)
		}

		if strings.HasSuffix(entry.Name, "/") {
			continue
		}
		if _, err := fw.Write([]byte(entry.Content)); err != nil {
			t.Fatalf("Write %s failed: %v", entry.Name, err)
		}
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close archive failed: %v", err)
	}

	return path
}

// Game returns the entries of the reference archive used across tests.
func Game() []Entry {
	return []Entry{
		{Name: "dir/"},
		{Name: "dir/1/"},
		{Name: "dir/1/file1.txt", Content: "file1"},
		{Name: "dir/1/test.txt", Content: "test line 1\ntest line 2"},
		{Name: "dir/gpl/zzz.txt", Content: "zzz"},
		{Name: "dir/brimmedhat.png", Content: "png-bytes", Store: true},
		{Name: "dir/dye.png", Content: "dye"},
		{Name: "dir/hide.png", Content: "hide", Store: true},
		{Name: "test/units.xml", Content: "<units/>"},
		{Name: "units.xml", Content: "<units></units>"},
	}
}
