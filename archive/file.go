package archive

import (
	"bytes"
	"hash/crc32"
	"io"
	"os"

	"github.com/klauspost/compress/flate"
	"github.com/mwantia/virtfs/data/errors"
)

// maxEntrySize bounds the buffer allocated for a single inflated entry.
const maxEntrySize = 1 << 30

// ReadFile reads the payload of h from the archive and returns it fully inflated.
// The archive is opened for the duration of the call only.
func (idx *Index) ReadFile(h *Header) ([]byte, error) {
	f, err := os.Open(idx.archive)
	if err != nil {
		return nil, errors.IOFailure("open", idx.archive, err)
	}
	defer f.Close()

	buf, err := ReadPayload(f, h)
	if err != nil {
		return nil, errors.ArchiveCorrupt(idx.archive+":"+h.Name, err)
	}

	if crc32.ChecksumIEEE(buf) != h.CRC32 {
		return nil, errors.Checksum(idx.archive, h.Name)
	}

	return buf, nil
}

// ReadPayload seeks to the entry payload in r, reads CompressedSize bytes and
// inflates them when required. The result always has UncompressedSize bytes.
func ReadPayload(r io.ReaderAt, h *Header) ([]byte, error) {
	if h.CompressedSize < 0 || h.UncompressedSize < 0 || h.UncompressedSize > maxEntrySize {
		return nil, errors.InvalidSize(h.Name, h.UncompressedSize)
	}

	compressed := make([]byte, h.CompressedSize)
	if err := readFull(r, compressed, h.DataOffset); err != nil {
		return nil, err
	}

	switch h.Method {
	case MethodStore:
		if h.CompressedSize != h.UncompressedSize {
			return nil, errors.InvalidSize(h.Name, h.CompressedSize)
		}
		return compressed, nil

	case MethodDeflate:
		fr := flate.NewReader(bytes.NewReader(compressed))
		defer fr.Close()

		buf := make([]byte, h.UncompressedSize)
		if _, err := io.ReadFull(fr, buf); err != nil {
			return nil, err
		}

		// The stream must end exactly at UncompressedSize
		var extra [1]byte
		if n, _ := fr.Read(extra[:]); n > 0 {
			return nil, errors.InvalidSize(h.Name, h.UncompressedSize)
		}

		return buf, nil

	default:
		return nil, errors.Unsupported("compression method "+h.Method.String(), h.Name)
	}
}
