package mount

import (
	"io"
	"os"

	"github.com/mwantia/virtfs/data"
	"github.com/mwantia/virtfs/data/errors"
)

// Streamer is an open file handle. Directory mounts return a stream over a
// native file, archive mounts one over a fully inflated memory buffer.
type Streamer interface {
	io.Reader
	io.Writer
	io.Seeker
	io.Closer

	// Tell returns the current offset.
	Tell() int64

	// Eof reports whether the offset reached the end of the stream.
	Eof() bool

	// Length returns the current size of the stream in bytes.
	Length() int64

	// Mode returns the access mode the stream was opened with.
	Mode() data.AccessMode
}

// FileStream is a Streamer backed by a native file.
type FileStream struct {
	file   *os.File
	mode   data.AccessMode
	closed bool
}

func NewFileStream(file *os.File, mode data.AccessMode) *FileStream {
	return &FileStream{
		file: file,
		mode: mode,
	}
}

func (fs *FileStream) Read(p []byte) (int, error) {
	if fs.closed {
		return 0, data.ErrClosed
	}
	if !fs.mode.CanRead() {
		return 0, errors.Permission("read", fs.file.Name())
	}

	return fs.file.Read(p)
}

func (fs *FileStream) Write(p []byte) (int, error) {
	if fs.closed {
		return 0, data.ErrClosed
	}
	if !fs.mode.CanWrite() {
		return 0, errors.Permission("write", fs.file.Name())
	}

	return fs.file.Write(p)
}

// Seek moves the offset. Positions before the start or past the end fail
// and leave the offset unchanged.
func (fs *FileStream) Seek(offset int64, whence int) (int64, error) {
	if fs.closed {
		return 0, data.ErrClosed
	}

	target, err := seekTarget(offset, whence, fs.Tell(), fs.Length())
	if err != nil {
		return fs.Tell(), err
	}

	return fs.file.Seek(target, io.SeekStart)
}

func (fs *FileStream) Tell() int64 {
	if fs.closed {
		return 0
	}

	pos, err := fs.file.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0
	}

	return pos
}

func (fs *FileStream) Eof() bool {
	return fs.Tell() >= fs.Length()
}

func (fs *FileStream) Length() int64 {
	if fs.closed {
		return 0
	}

	info, err := fs.file.Stat()
	if err != nil {
		return 0
	}

	return info.Size()
}

func (fs *FileStream) Mode() data.AccessMode {
	return fs.mode
}

func (fs *FileStream) Close() error {
	if fs.closed {
		return data.ErrClosed
	}

	fs.closed = true
	return fs.file.Close()
}

// MemoryStream is a read-only Streamer over an owned buffer.
type MemoryStream struct {
	buf    []byte
	cursor int64
	closed bool
}

func NewMemoryStream(buf []byte) *MemoryStream {
	return &MemoryStream{
		buf: buf,
	}
}

func (ms *MemoryStream) Read(p []byte) (int, error) {
	if ms.closed {
		return 0, data.ErrClosed
	}
	if ms.cursor >= int64(len(ms.buf)) {
		return 0, io.EOF
	}

	n := copy(p, ms.buf[ms.cursor:])
	ms.cursor += int64(n)

	return n, nil
}

func (ms *MemoryStream) Write(p []byte) (int, error) {
	if ms.closed {
		return 0, data.ErrClosed
	}

	return 0, data.ErrReadOnly
}

// Seek moves the cursor. The cursor never exceeds the buffer size; a failing
// seek leaves it unchanged.
func (ms *MemoryStream) Seek(offset int64, whence int) (int64, error) {
	if ms.closed {
		return 0, data.ErrClosed
	}

	target, err := seekTarget(offset, whence, ms.cursor, int64(len(ms.buf)))
	if err != nil {
		return ms.cursor, err
	}

	ms.cursor = target
	return target, nil
}

func (ms *MemoryStream) Tell() int64 {
	return ms.cursor
}

func (ms *MemoryStream) Eof() bool {
	return ms.cursor >= int64(len(ms.buf))
}

func (ms *MemoryStream) Length() int64 {
	return int64(len(ms.buf))
}

func (ms *MemoryStream) Mode() data.AccessMode {
	return data.AccessModeRead
}

func (ms *MemoryStream) Close() error {
	if ms.closed {
		return data.ErrClosed
	}

	ms.closed = true
	ms.buf = nil
	ms.cursor = 0

	return nil
}

func seekTarget(offset int64, whence int, current, size int64) (int64, error) {
	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = current + offset
	case io.SeekEnd:
		target = size + offset
	default:
		return 0, data.ErrInvalid
	}

	if target < 0 || target > size {
		return 0, data.ErrInvalid
	}

	return target, nil
}

// ReadElems reads count elements of elemSize bytes into p and returns the
// number of whole elements read. A short read at the end of the stream is not
// an error; io.EOF is only returned when nothing could be read.
func ReadElems(r io.Reader, p []byte, elemSize, count int) (int, error) {
	want, err := elemBytes(p, elemSize, count)
	if err != nil {
		return 0, err
	}

	n, err := io.ReadFull(r, p[:want])
	if err == io.ErrUnexpectedEOF || (err == io.EOF && want == 0) {
		err = nil
	}

	return n / elemSize, err
}

// WriteElems writes count elements of elemSize bytes from p and returns the
// number of whole elements written.
func WriteElems(w io.Writer, p []byte, elemSize, count int) (int, error) {
	want, err := elemBytes(p, elemSize, count)
	if err != nil {
		return 0, err
	}

	n, err := w.Write(p[:want])
	return n / elemSize, err
}

func elemBytes(p []byte, elemSize, count int) (int, error) {
	if elemSize <= 0 || count < 0 {
		return 0, data.ErrInvalid
	}

	if count > len(p)/elemSize {
		return 0, data.ErrInvalid
	}

	return elemSize * count, nil
}
