package archive

import (
	"strings"
	"time"
)

// Method is the compression method of an archive entry.
type Method uint16

const (
	MethodStore   Method = 0
	MethodDeflate Method = 8
)

func (m Method) String() string {
	switch m {
	case MethodStore:
		return "store"
	case MethodDeflate:
		return "deflate"
	default:
		return "unknown"
	}
}

// Record signatures and fixed sizes of the ZIP format.
const (
	localHeaderSignature    = 0x04034b50
	centralHeaderSignature  = 0x02014b50
	endOfDirectorySignature = 0x06054b50
	localHeaderLength       = 30
	centralHeaderLength     = 46
	endOfDirectoryLength    = 22
	maxCommentLength        = 0xffff
	flagDataDescriptor      = 1 << 3
	zip64Marker             = 0xffffffff
)

// Header is the parsed metadata of one archive entry.
// It is immutable once the index has been built.
type Header struct {
	// Name always uses '/' as separator; directory records end with '/'.
	Name string `json:"name"`

	Method           Method    `json:"method"`
	Flags            uint16    `json:"flags"`
	CRC32            uint32    `json:"crc32"`
	CompressedSize   int64     `json:"compressed_size"`
	UncompressedSize int64     `json:"uncompressed_size"`
	ModifyTime       time.Time `json:"modify_time"`

	// DataOffset is the absolute offset of the entry payload within the archive.
	DataOffset int64 `json:"data_offset"`
}

// IsDir reports whether the record is an explicit directory entry.
func (h *Header) IsDir() bool {
	return strings.HasSuffix(h.Name, "/")
}

// dosTime converts MS-DOS date and time fields into a time.Time in UTC.
func dosTime(date, clock uint16) time.Time {
	return time.Date(
		int(date>>9)+1980,
		time.Month(date>>5&0xf),
		int(date&0x1f),
		int(clock>>11),
		int(clock>>5&0x3f),
		int(clock&0x1f)*2,
		0,
		time.UTC,
	)
}

// cleanName canonicalizes an entry name as stored in the archive.
func cleanName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = strings.TrimLeft(name, "/")
	for strings.Contains(name, "//") {
		name = strings.ReplaceAll(name, "//", "/")
	}

	return name
}
