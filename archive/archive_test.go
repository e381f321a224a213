package archive

import (
	"bytes"
	"encoding/binary"
	stderrors "errors"
	"hash/crc32"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/zip"
	"github.com/mwantia/virtfs/archive/archivetest"
	"github.com/mwantia/virtfs/data"
)

func writeGame(t *testing.T) string {
	t.Helper()
	return archivetest.Write(t, filepath.Join(t.TempDir(), "test.zip"), archivetest.Game()...)
}

func TestReadIndex_Headers(t *testing.T) {
	path := writeGame(t)

	idx, err := ReadIndex(path)
	if err != nil {
		t.Fatalf("ReadIndex failed: %v", err)
	}

	if idx.Archive() != path {
		t.Errorf("Expected archive %q, got %q", path, idx.Archive())
	}
	if idx.Len() != len(archivetest.Game()) {
		t.Errorf("Expected %d records, got %d", len(archivetest.Game()), idx.Len())
	}

	// Offsets must agree with an independent reader
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("zip.OpenReader failed: %v", err)
	}
	defer zr.Close()

	for _, zf := range zr.File {
		if zf.FileInfo().IsDir() {
			continue
		}

		h, ok := idx.Lookup(zf.Name)
		if !ok {
			t.Errorf("Lookup(%q) failed", zf.Name)
			continue
		}

		want, err := zf.DataOffset()
		if err != nil {
			t.Fatalf("DataOffset failed: %v", err)
		}
		if h.DataOffset != want {
			t.Errorf("%s: DataOffset = %d, want %d", zf.Name, h.DataOffset, want)
		}
		if h.UncompressedSize != int64(zf.UncompressedSize64) {
			t.Errorf("%s: UncompressedSize = %d, want %d", zf.Name, h.UncompressedSize, zf.UncompressedSize64)
		}
		if h.CompressedSize != int64(zf.CompressedSize64) {
			t.Errorf("%s: CompressedSize = %d, want %d", zf.Name, h.CompressedSize, zf.CompressedSize64)
		}
	}
}

func TestIndex_Directories(t *testing.T) {
	idx, err := ReadIndex(writeGame(t))
	if err != nil {
		t.Fatalf("ReadIndex failed: %v", err)
	}

	for _, dir := range []string{"", "dir", "dir/1", "dir/gpl", "test"} {
		if !idx.IsDir(dir) {
			t.Errorf("Expected %q to be a directory", dir)
		}
		if !idx.Exists(dir) {
			t.Errorf("Expected %q to exist", dir)
		}
	}

	for _, name := range []string{"units.xml", "dir/hide.png", "dir/1/test.txt", "dir/g", "dir/1/test"} {
		if idx.IsDir(name) {
			t.Errorf("Expected %q not to be a directory", name)
		}
	}

	want := []string{"dir/", "dir/1/", "dir/gpl/", "test/"}
	if diff := cmp.Diff(want, idx.Dirs()); diff != "" {
		t.Errorf("Dirs() mismatch (-want +got):\n%s", diff)
	}
}

func TestIndex_Children(t *testing.T) {
	idx, err := ReadIndex(writeGame(t))
	if err != nil {
		t.Fatalf("ReadIndex failed: %v", err)
	}

	tests := map[string][]string{
		"":      {"dir", "test", "units.xml"},
		"dir":   {"1", "gpl", "brimmedhat.png", "dye.png", "hide.png"},
		"dir/1": {"file1.txt", "test.txt"},
		"none":  nil,
	}

	for dir, want := range tests {
		out := data.NewNameList()
		idx.Children(dir, out)

		got := out.Names()
		if len(want) == 0 && len(got) == 0 {
			continue
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Children(%q) mismatch (-want +got):\n%s", dir, diff)
		}
	}

	// Names already present are skipped
	out := data.NewNameList()
	out.Add("gpl")
	idx.Children("dir", out)
	if out.Len() != 5 {
		t.Errorf("Expected 5 unique names, got %v", out.Names())
	}
}

func TestIndex_ReadFile(t *testing.T) {
	idx, err := ReadIndex(writeGame(t))
	if err != nil {
		t.Fatalf("ReadIndex failed: %v", err)
	}

	for _, entry := range archivetest.Game() {
		h, ok := idx.Lookup(entry.Name)
		if !ok {
			continue
		}

		got, err := idx.ReadFile(h)
		if err != nil {
			t.Fatalf("ReadFile(%s) failed: %v", entry.Name, err)
		}
		if string(got) != entry.Content {
			t.Errorf("ReadFile(%s) = %q, want %q", entry.Name, got, entry.Content)
		}
	}
}

func TestIndex_DuplicateNames(t *testing.T) {
	path := archivetest.Write(t, filepath.Join(t.TempDir(), "dup.zip"),
		archivetest.Entry{Name: "a.txt", Content: "first"},
		archivetest.Entry{Name: "a.txt", Content: "second"})

	idx, err := ReadIndex(path)
	if err != nil {
		t.Fatalf("ReadIndex failed: %v", err)
	}
	if len(idx.Headers()) != 2 {
		t.Errorf("Expected both records in archive order, got %d", len(idx.Headers()))
	}

	h, ok := idx.Lookup("a.txt")
	if !ok {
		t.Fatal("Expected a.txt to exist")
	}
	got, err := idx.ReadFile(h)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(got) != "first" {
		t.Errorf("Expected the first record to win, got %q", got)
	}
}

func TestIndex_ReadFileChecksum(t *testing.T) {
	path := archivetest.Write(t, filepath.Join(t.TempDir(), "bad.zip"),
		archivetest.Entry{Name: "stored.txt", Content: "abcdef", Store: true})

	idx, err := ReadIndex(path)
	if err != nil {
		t.Fatalf("ReadIndex failed: %v", err)
	}
	h, _ := idx.Lookup("stored.txt")

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	raw[h.DataOffset] ^= 0xff
	if err := os.WriteFile(path, raw, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := idx.ReadFile(h); !stderrors.Is(err, data.ErrChecksum) {
		t.Errorf("Expected ErrChecksum, got %v", err)
	}
}

// localRecord writes a stored local file header followed by its payload.
func localRecord(buf *bytes.Buffer, name, content string, extra []byte) {
	hdr := make([]byte, localHeaderLength)
	binary.LittleEndian.PutUint32(hdr[0:], localHeaderSignature)
	binary.LittleEndian.PutUint16(hdr[4:], 20)
	binary.LittleEndian.PutUint16(hdr[8:], uint16(MethodStore))
	binary.LittleEndian.PutUint32(hdr[14:], crc32.ChecksumIEEE([]byte(content)))
	binary.LittleEndian.PutUint32(hdr[18:], uint32(len(content)))
	binary.LittleEndian.PutUint32(hdr[22:], uint32(len(content)))
	binary.LittleEndian.PutUint16(hdr[26:], uint16(len(name)))
	binary.LittleEndian.PutUint16(hdr[28:], uint16(len(extra)))

	buf.Write(hdr)
	buf.WriteString(name)
	buf.Write(extra)
	buf.WriteString(content)
}

func TestReadHeaders_LocalScan(t *testing.T) {
	var buf bytes.Buffer
	localRecord(&buf, "a.txt", "alpha", nil)
	localRecord(&buf, "sub\\b.txt", "beta!", []byte{1, 2, 3, 4})

	headers, err := ReadHeaders(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("ReadHeaders failed: %v", err)
	}
	if len(headers) != 2 {
		t.Fatalf("Expected 2 headers, got %d", len(headers))
	}

	if headers[0].DataOffset != localHeaderLength+5 {
		t.Errorf("Expected first payload at %d, got %d", localHeaderLength+5, headers[0].DataOffset)
	}
	second := int64(localHeaderLength+5+5) + localHeaderLength + 9 + 4
	if headers[1].DataOffset != second {
		t.Errorf("Expected second payload at %d, got %d", second, headers[1].DataOffset)
	}
	if headers[1].Name != "sub/b.txt" {
		t.Errorf("Expected canonical separator, got %q", headers[1].Name)
	}

	got, err := ReadPayload(bytes.NewReader(buf.Bytes()), &headers[1])
	if err != nil {
		t.Fatalf("ReadPayload failed: %v", err)
	}
	if string(got) != "beta!" {
		t.Errorf("Expected %q, got %q", "beta!", got)
	}

	idx := NewIndex("mem.zip", headers)
	if !idx.IsDir("sub") {
		t.Error("Expected synthesized directory 'sub'")
	}
}

func TestReadIndex_Corrupt(t *testing.T) {
	dir := t.TempDir()

	garbage := filepath.Join(dir, "garbage.zip")
	if err := os.WriteFile(garbage, []byte("this is not a zip archive at all"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := ReadIndex(garbage); !stderrors.Is(err, data.ErrArchiveCorrupt) {
		t.Errorf("Expected ErrArchiveCorrupt for garbage, got %v", err)
	}

	empty := filepath.Join(dir, "empty.zip")
	if err := os.WriteFile(empty, nil, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := ReadIndex(empty); !stderrors.Is(err, data.ErrArchiveCorrupt) {
		t.Errorf("Expected ErrArchiveCorrupt for empty file, got %v", err)
	}

	// Cutting the central directory leaves local headers with data descriptors only
	valid := writeGame(t)
	raw, err := os.ReadFile(valid)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	truncated := filepath.Join(dir, "truncated.zip")
	if err := os.WriteFile(truncated, raw[:len(raw)/2], 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := ReadIndex(truncated); !stderrors.Is(err, data.ErrArchiveCorrupt) {
		t.Errorf("Expected ErrArchiveCorrupt for truncated archive, got %v", err)
	}

	if _, err := ReadIndex(filepath.Join(dir, "missing.zip")); !stderrors.Is(err, data.ErrNotExist) {
		t.Errorf("Expected ErrNotExist for missing archive, got %v", err)
	}
}
