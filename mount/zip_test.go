package mount

import (
	stderrors "errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mwantia/virtfs/archive"
	"github.com/mwantia/virtfs/archive/archivetest"
	"github.com/mwantia/virtfs/data"
)

func newTestZipMount(t *testing.T) *ZipMount {
	t.Helper()

	path := archivetest.Write(t, filepath.Join(t.TempDir(), "test.zip"), archivetest.Game()...)

	idx, err := archive.ReadIndex(path)
	if err != nil {
		t.Fatalf("ReadIndex failed: %v", err)
	}

	return NewZipMount(path, idx, nil)
}

func TestZipMount_Lookup(t *testing.T) {
	zm := newTestZipMount(t)

	if zm.Type() != TypeZip {
		t.Errorf("Expected TypeZip, got %v", zm.Type())
	}

	tests := []struct {
		name  string
		exist bool
		dir   bool
	}{
		{"", true, true},
		{"dir", true, true},
		{"dir/gpl", true, true},
		{"dir/1/test.txt", true, false},
		{"units.xml", true, false},
		{"dir/missing.png", false, false},
	}

	for _, tt := range tests {
		if got := zm.Exists(tt.name); got != tt.exist {
			t.Errorf("Exists(%q) = %v, want %v", tt.name, got, tt.exist)
		}
		if got := zm.IsDirectory(tt.name); got != tt.dir {
			t.Errorf("IsDirectory(%q) = %v, want %v", tt.name, got, tt.dir)
		}
		if zm.IsSymbolicLink(tt.name) {
			t.Errorf("IsSymbolicLink(%q) = true", tt.name)
		}
	}

	realDir, ok := zm.RealDir("dir/dye.png")
	if !ok || realDir != zm.Root() {
		t.Errorf("RealDir(dir/dye.png) = %q, %v", realDir, ok)
	}

	info, err := zm.Stat("dir/1/test.txt")
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Size != int64(len("test line 1\ntest line 2")) {
		t.Errorf("Expected uncompressed size, got %d", info.Size)
	}

	info, err = zm.Stat("dir/gpl")
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if !info.IsDir() {
		t.Error("Expected dir/gpl to be a directory")
	}
}

func TestZipMount_Enumerate(t *testing.T) {
	zm := newTestZipMount(t)

	out := data.NewNameList()
	if err := zm.Enumerate("dir", out); err != nil {
		t.Fatalf("Enumerate failed: %v", err)
	}

	want := []string{"1", "gpl", "brimmedhat.png", "dye.png", "hide.png"}
	if diff := cmp.Diff(want, out.Names()); diff != "" {
		t.Errorf("Enumerate mismatch (-want +got):\n%s", diff)
	}
}

func TestZipMount_OpenRead(t *testing.T) {
	zm := newTestZipMount(t)

	s, err := zm.OpenRead("dir/1/test.txt")
	if err != nil {
		t.Fatalf("OpenRead failed: %v", err)
	}
	defer s.Close()

	got, err := io.ReadAll(s)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if string(got) != "test line 1\ntest line 2" {
		t.Errorf("Unexpected content %q", got)
	}

	if _, err := zm.OpenRead("dir"); !stderrors.Is(err, data.ErrIsDirectory) {
		t.Errorf("Expected ErrIsDirectory, got %v", err)
	}
	if _, err := zm.OpenRead("dir/missing.png"); !stderrors.Is(err, data.ErrNotExist) {
		t.Errorf("Expected ErrNotExist, got %v", err)
	}
}

func TestZipMount_ReadOnly(t *testing.T) {
	zm := newTestZipMount(t)

	if _, err := zm.OpenWrite("new.txt"); !stderrors.Is(err, data.ErrUnsupported) {
		t.Errorf("OpenWrite: expected ErrUnsupported, got %v", err)
	}
	if _, err := zm.OpenAppend("units.xml"); !stderrors.Is(err, data.ErrUnsupported) {
		t.Errorf("OpenAppend: expected ErrUnsupported, got %v", err)
	}
	if err := zm.Mkdir("new"); !stderrors.Is(err, data.ErrUnsupported) {
		t.Errorf("Mkdir: expected ErrUnsupported, got %v", err)
	}
	if err := zm.Remove("units.xml"); !stderrors.Is(err, data.ErrUnsupported) {
		t.Errorf("Remove: expected ErrUnsupported, got %v", err)
	}
}
