package virtfs

import (
	"github.com/mwantia/virtfs/mount"
)

// File is an open virtual file. It is owned by the caller, who must Close it.
type File struct {
	path   string
	stream mount.Streamer
}

func newFile(path string, stream mount.Streamer) *File {
	return &File{
		path:   path,
		stream: stream,
	}
}

// Name returns the normalized virtual path the file was opened with.
func (f *File) Name() string {
	return f.path
}

func (f *File) Read(p []byte) (int, error) {
	return f.stream.Read(p)
}

// ReadElems reads up to count elements of elemSize bytes into p and returns
// the number of complete elements read.
func (f *File) ReadElems(p []byte, elemSize, count int) (int, error) {
	return mount.ReadElems(f.stream, p, elemSize, count)
}

func (f *File) Write(p []byte) (int, error) {
	return f.stream.Write(p)
}

// WriteElems writes count elements of elemSize bytes from p and returns the
// number of complete elements written.
func (f *File) WriteElems(p []byte, elemSize, count int) (int, error) {
	return mount.WriteElems(f.stream, p, elemSize, count)
}

// Seek moves the offset. A target outside [0, FileLength] fails with ErrInvalid
// and leaves the offset unchanged.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	return f.stream.Seek(offset, whence)
}

func (f *File) Tell() int64 {
	return f.stream.Tell()
}

// Eof reports whether the offset reached the end of the file.
func (f *File) Eof() bool {
	return f.stream.Eof()
}

func (f *File) FileLength() int64 {
	return f.stream.Length()
}

func (f *File) Close() error {
	return f.stream.Close()
}
