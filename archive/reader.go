package archive

import (
	"encoding/binary"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/mwantia/virtfs/data/errors"
)

type endOfDirectory struct {
	entries uint16
	size    uint32
	offset  uint32
}

// ReadIndex parses the headers of the archive at path without reading any payload.
// A malformed archive yields an error matching data.ErrArchiveCorrupt and no index.
func ReadIndex(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.NotExist(path)
		}
		return nil, errors.IOFailure("open", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, errors.IOFailure("stat", path, err)
	}

	headers, err := ReadHeaders(f, info.Size())
	if err != nil {
		return nil, errors.ArchiveCorrupt(path, err)
	}

	return NewIndex(path, headers), nil
}

// ReadHeaders parses every entry header of the archive in r.
// The central directory is used when present, otherwise local headers are scanned
// sequentially from the start of the archive.
func ReadHeaders(r io.ReaderAt, size int64) ([]Header, error) {
	eocd, err := findEndOfDirectory(r, size)
	if err != nil {
		return nil, err
	}

	if eocd == nil {
		return scanLocalHeaders(r, size)
	}

	return readCentralDirectory(r, size, eocd)
}

func findEndOfDirectory(r io.ReaderAt, size int64) (*endOfDirectory, error) {
	if size < endOfDirectoryLength {
		return nil, nil
	}

	length := min(size, int64(endOfDirectoryLength+maxCommentLength))
	buf := make([]byte, length)
	if err := readFull(r, buf, size-length); err != nil {
		return nil, err
	}

	for i := len(buf) - endOfDirectoryLength; i >= 0; i-- {
		if binary.LittleEndian.Uint32(buf[i:]) != endOfDirectorySignature {
			continue
		}

		commentLength := int(binary.LittleEndian.Uint16(buf[i+20:]))
		if i+endOfDirectoryLength+commentLength > len(buf) {
			continue
		}

		eocd := &endOfDirectory{
			entries: binary.LittleEndian.Uint16(buf[i+10:]),
			size:    binary.LittleEndian.Uint32(buf[i+12:]),
			offset:  binary.LittleEndian.Uint32(buf[i+16:]),
		}

		if eocd.offset == zip64Marker || eocd.size == zip64Marker || eocd.entries == 0xffff {
			return nil, fmt.Errorf("zip64 archives are not supported")
		}
		if int64(eocd.offset)+int64(eocd.size) > size {
			return nil, fmt.Errorf("central directory exceeds archive size")
		}

		return eocd, nil
	}

	return nil, nil
}

func readCentralDirectory(r io.ReaderAt, size int64, eocd *endOfDirectory) ([]Header, error) {
	buf := make([]byte, eocd.size)
	if err := readFull(r, buf, int64(eocd.offset)); err != nil {
		return nil, err
	}

	headers := make([]Header, 0, eocd.entries)
	pos := 0
	for i := 0; i < int(eocd.entries); i++ {
		if pos+centralHeaderLength > len(buf) {
			return nil, fmt.Errorf("truncated central directory record %d", i)
		}

		rec := buf[pos:]
		if binary.LittleEndian.Uint32(rec) != centralHeaderSignature {
			return nil, fmt.Errorf("invalid central directory signature at record %d", i)
		}

		nameLength := int(binary.LittleEndian.Uint16(rec[28:]))
		extraLength := int(binary.LittleEndian.Uint16(rec[30:]))
		commentLength := int(binary.LittleEndian.Uint16(rec[32:]))
		next := centralHeaderLength + nameLength + extraLength + commentLength
		if pos+next > len(buf) {
			return nil, fmt.Errorf("truncated central directory record %d", i)
		}

		h := Header{
			Name:             cleanName(string(rec[centralHeaderLength : centralHeaderLength+nameLength])),
			Flags:            binary.LittleEndian.Uint16(rec[8:]),
			Method:           Method(binary.LittleEndian.Uint16(rec[10:])),
			ModifyTime:       dosTime(binary.LittleEndian.Uint16(rec[14:]), binary.LittleEndian.Uint16(rec[12:])),
			CRC32:            binary.LittleEndian.Uint32(rec[16:]),
			CompressedSize:   int64(binary.LittleEndian.Uint32(rec[20:])),
			UncompressedSize: int64(binary.LittleEndian.Uint32(rec[24:])),
		}

		offset := int64(binary.LittleEndian.Uint32(rec[42:]))
		dataOffset, err := readLocalHeader(r, size, offset, nil)
		if err != nil {
			return nil, fmt.Errorf("entry '%s': %w", h.Name, err)
		}
		h.DataOffset = dataOffset

		if h.DataOffset+h.CompressedSize > size {
			return nil, fmt.Errorf("entry '%s' exceeds archive size", h.Name)
		}

		headers = append(headers, h)
		pos += next
	}

	return headers, nil
}

// readLocalHeader parses the local header at offset and returns the absolute offset
// of the entry payload. When h is non-nil it is filled from the local header fields.
func readLocalHeader(r io.ReaderAt, size, offset int64, h *Header) (int64, error) {
	if offset+localHeaderLength > size {
		return 0, fmt.Errorf("local header at %d exceeds archive size", offset)
	}

	buf := make([]byte, localHeaderLength)
	if err := readFull(r, buf, offset); err != nil {
		return 0, err
	}

	if binary.LittleEndian.Uint32(buf) != localHeaderSignature {
		return 0, fmt.Errorf("invalid local header signature at %d", offset)
	}

	// signature(4) version(2) flags(2) method(2) time(2) date(2) crc(4)
	// compressed(4) uncompressed(4) name length(2) extra length(2)
	nameLength := int64(binary.LittleEndian.Uint16(buf[26:]))
	extraLength := int64(binary.LittleEndian.Uint16(buf[28:]))
	dataOffset := offset + localHeaderLength + nameLength + extraLength
	if dataOffset > size {
		return 0, fmt.Errorf("local header at %d exceeds archive size", offset)
	}

	if h != nil {
		name := make([]byte, nameLength)
		if err := readFull(r, name, offset+localHeaderLength); err != nil {
			return 0, err
		}

		h.Name = cleanName(string(name))
		h.Flags = binary.LittleEndian.Uint16(buf[6:])
		h.Method = Method(binary.LittleEndian.Uint16(buf[8:]))
		h.ModifyTime = dosTime(binary.LittleEndian.Uint16(buf[12:]), binary.LittleEndian.Uint16(buf[10:]))
		h.CRC32 = binary.LittleEndian.Uint32(buf[14:])
		h.CompressedSize = int64(binary.LittleEndian.Uint32(buf[18:]))
		h.UncompressedSize = int64(binary.LittleEndian.Uint32(buf[22:]))
		h.DataOffset = dataOffset
	}

	return dataOffset, nil
}

func scanLocalHeaders(r io.ReaderAt, size int64) ([]Header, error) {
	var headers []Header

	sig := make([]byte, 4)
	pos := int64(0)
	for pos+4 <= size {
		if err := readFull(r, sig, pos); err != nil {
			return nil, err
		}

		switch binary.LittleEndian.Uint32(sig) {
		case localHeaderSignature:
		case centralHeaderSignature, endOfDirectorySignature:
			return headers, nil
		default:
			if pos == 0 {
				return nil, fmt.Errorf("not a zip archive")
			}
			return nil, fmt.Errorf("unexpected record signature at %d", pos)
		}

		var h Header
		if _, err := readLocalHeader(r, size, pos, &h); err != nil {
			return nil, err
		}

		if h.Flags&flagDataDescriptor != 0 && h.CompressedSize == 0 {
			return nil, fmt.Errorf("entry '%s' uses a data descriptor without central directory", h.Name)
		}
		if h.DataOffset+h.CompressedSize > size {
			return nil, fmt.Errorf("entry '%s' exceeds archive size", h.Name)
		}

		headers = append(headers, h)
		pos = h.DataOffset + h.CompressedSize
	}

	if len(headers) == 0 {
		return nil, fmt.Errorf("not a zip archive")
	}

	return headers, nil
}

func readFull(r io.ReaderAt, buf []byte, offset int64) error {
	n, err := r.ReadAt(buf, offset)
	if n == len(buf) {
		return nil
	}
	if err == nil || err == io.EOF {
		err = io.ErrUnexpectedEOF
	}

	return fmt.Errorf("read at %d: %w", offset, err)
}
