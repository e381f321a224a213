package data

import (
	"errors"
	"os"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"/", ""},
		{"test/test.txt", "test/test.txt"},
		{"/test//test.txt", "test/test.txt"},
		{"test\\dir\\file.xml", "test/dir/file.xml"},
		{"./dir/./1/", "dir/1"},
		{"dir///gpl//", "dir/gpl"},
	}

	for _, tt := range tests {
		got := Normalize(tt.input)
		if got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
		if again := Normalize(got); again != got {
			t.Errorf("Normalize not idempotent for %q: %q -> %q", tt.input, got, again)
		}
	}
}

func TestValidate(t *testing.T) {
	valid := []string{"", "test", "dir/1/test.txt", "..hidden", "a/b..c", "/abs/path"}
	for _, p := range valid {
		if err := Validate(p); err != nil {
			t.Errorf("Validate(%q) unexpected error: %v", p, err)
		}
	}

	invalid := []string{"..", "../x", "a/../b", "a\\..\\b", "a/..", "x\x00y"}
	for _, p := range invalid {
		if err := Validate(p); !errors.Is(err, ErrInvalidPath) {
			t.Errorf("Validate(%q) = %v, want ErrInvalidPath", p, err)
		}
	}
}

func TestNormalizeDir(t *testing.T) {
	sep := string(os.PathSeparator)

	tests := map[string]string{
		"dir1":          "dir1" + sep,
		"dir1/":         "dir1" + sep,
		"data//test":    "data" + sep + "test" + sep,
		"data\\test\\":  "data" + sep + "test" + sep,
		"/abs/data/dir": sep + "abs" + sep + "data" + sep + "dir" + sep,
		"./dir1":        "dir1" + sep,
		"dir1/./sub/.":  "dir1" + sep + "sub" + sep,
	}

	for input, want := range tests {
		if got := NormalizeDir(input); got != want {
			t.Errorf("NormalizeDir(%q) = %q, want %q", input, got, want)
		}
		if got := NormalizeDir(NormalizeDir(input)); got != want {
			t.Errorf("NormalizeDir not idempotent for %q", input)
		}
	}
}

func TestNormalizeArchive(t *testing.T) {
	sep := string(os.PathSeparator)

	if got := NormalizeArchive("data//test/test.zip"); got != "data"+sep+"test"+sep+"test.zip" {
		t.Errorf("NormalizeArchive = %q", got)
	}
	if !IsArchivePath("data/TEST.ZIP") {
		t.Error("Expected upper-case .ZIP to be an archive path")
	}
	if IsArchivePath("data/zip") {
		t.Error("Expected directory without suffix to not be an archive path")
	}
}

func TestJoin(t *testing.T) {
	if got := Join("", "a"); got != "a" {
		t.Errorf("Join root = %q", got)
	}
	if got := Join("dir", "1"); got != "dir/1" {
		t.Errorf("Join = %q", got)
	}
	if got := Join("dir", ""); got != "dir" {
		t.Errorf("Join empty name = %q", got)
	}
}

func TestNameList(t *testing.T) {
	nl := NewNameList()
	for _, name := range []string{"b", "a", "b", "c", "a"} {
		nl.Add(name)
	}

	got := nl.Names()
	want := []string{"b", "a", "c"}
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	var zero NameList
	if !zero.Add("x") || zero.Add("x") {
		t.Error("Expected zero NameList to be usable")
	}
}
