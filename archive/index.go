package archive

import (
	"strings"

	"github.com/mwantia/virtfs/data"
	"github.com/tidwall/btree"
)

// Index is the in-memory directory of a ZIP archive: every entry header in archive
// order plus the set of directories implied by slash-delimited entry names.
type Index struct {
	archive string
	headers []*Header

	// Lookup trees keyed by entry name; directory keys end with '/'.
	files *btree.Map[string, *Header]
	dirs  *btree.Map[string, struct{}]
}

// NewIndex builds an index for archive from already parsed headers.
func NewIndex(archive string, headers []Header) *Index {
	idx := &Index{
		archive: archive,
		headers: make([]*Header, 0, len(headers)),
		files:   btree.NewMap[string, *Header](0),
		dirs:    btree.NewMap[string, struct{}](0),
	}

	for i := range headers {
		h := headers[i]
		idx.add(&h)
	}

	return idx
}

func (idx *Index) add(h *Header) {
	idx.headers = append(idx.headers, h)

	if h.IsDir() {
		idx.dirs.Set(h.Name, struct{}{})
	} else if _, ok := idx.files.Get(h.Name); !ok {
		// First record of a name wins
		idx.files.Set(h.Name, h)
	}

	// Every proper prefix ending in a separator is a directory
	for i := 0; i < len(h.Name)-1; i++ {
		if h.Name[i] == '/' {
			idx.dirs.Set(h.Name[:i+1], struct{}{})
		}
	}
}

// Archive returns the path of the archive this index was read from.
func (idx *Index) Archive() string {
	return idx.archive
}

// Headers returns a copy of all entry headers in archive order.
func (idx *Index) Headers() []Header {
	headers := make([]Header, len(idx.headers))
	for i, h := range idx.headers {
		headers[i] = *h
	}

	return headers
}

// Len returns the number of entry records, including explicit directory records.
func (idx *Index) Len() int {
	return len(idx.headers)
}

// Lookup returns the file header for a normalized name.
func (idx *Index) Lookup(name string) (*Header, bool) {
	return idx.files.Get(name)
}

// IsDir reports whether name is an explicit or synthesized directory.
// The empty name is the archive root.
func (idx *Index) IsDir(name string) bool {
	if name == "" {
		return true
	}

	_, exists := idx.dirs.Get(name + "/")
	return exists
}

// Exists reports whether name is a file or a directory within the archive.
func (idx *Index) Exists(name string) bool {
	if _, exists := idx.files.Get(name); exists {
		return true
	}

	return idx.IsDir(name)
}

// Dirs returns every directory key in sorted order.
func (idx *Index) Dirs() []string {
	dirs := make([]string, 0, idx.dirs.Len())
	idx.dirs.Scan(func(key string, _ struct{}) bool {
		dirs = append(dirs, key)
		return true
	})

	return dirs
}

// Children adds the immediate child names of dir to out, skipping names already present.
func (idx *Index) Children(dir string, out *data.NameList) {
	prefix := ""
	if dir != "" {
		prefix = dir + "/"
	}

	collect := func(key string) bool {
		if !strings.HasPrefix(key, prefix) {
			return false
		}

		rest := key[len(prefix):]
		if rest == "" {
			return true
		}
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			rest = rest[:i]
		}

		out.Add(rest)
		return true
	}

	idx.dirs.Ascend(prefix, func(key string, _ struct{}) bool {
		return collect(key)
	})
	idx.files.Ascend(prefix, func(key string, _ *Header) bool {
		return collect(key)
	})
}
