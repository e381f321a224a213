package data

import "os"

// AccessMode represents how a stream was opened.
type AccessMode int

// Access mode constants. A stream is opened with exactly one of them.
const (
	AccessModeRead   AccessMode = 1 << iota // O_RDONLY: open for reading
	AccessModeWrite                         // O_WRONLY|O_CREATE|O_TRUNC
	AccessModeAppend                        // O_WRONLY|O_CREATE|O_APPEND
)

// CanRead checks if the mode allows reading.
func (m AccessMode) CanRead() bool {
	return m&AccessModeRead != 0
}

// CanWrite checks if the mode allows writing.
func (m AccessMode) CanWrite() bool {
	return m&(AccessModeWrite|AccessModeAppend) != 0
}

// Flags returns the os.OpenFile flags for the mode.
func (m AccessMode) Flags() int {
	switch {
	case m&AccessModeAppend != 0:
		return os.O_WRONLY | os.O_CREATE | os.O_APPEND
	case m&AccessModeWrite != 0:
		return os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	default:
		return os.O_RDONLY
	}
}

func (m AccessMode) String() string {
	switch {
	case m&AccessModeAppend != 0:
		return "append"
	case m&AccessModeWrite != 0:
		return "write"
	case m&AccessModeRead != 0:
		return "read"
	default:
		return "none"
	}
}
