package png

import (
	"errors"
	"fmt"
)

var (
	ErrBadSignature   = errors.New("Not a png file (bad signature)")
	ErrNonUtf8Payload = errors.New("Chunk data is not valid UTF-8 text")
	ErrTrailingBytes  = errors.New("Trailing bytes after the last chunk")
)

// TypeBytesError is returned when a chunk type contains a byte outside
// of the ASCII alphabetic range.
type TypeBytesError struct {
	Raw [4]byte
}

func (e *TypeBytesError) Error() string {
	return fmt.Sprintf("Invalid chunk type bytes %v (must be ASCII letters)", e.Raw)
}

// TypeStringError is returned when a chunk type string is not exactly
// 4 bytes long.
type TypeStringError struct {
	Value string
}

func (e *TypeStringError) Error() string {
	return fmt.Sprintf("Invalid chunk type string %q (must be exactly 4 characters)", e.Value)
}

// TruncatedError is returned when the input ends before the declared
// payload length plus the fixed chunk overhead.
type TruncatedError struct {
	Declared  int // payload bytes the length field promised
	Available int // bytes actually left after the length field
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("Truncated chunk: declared %d bytes of data, only %d bytes remain",
		e.Declared, e.Available)
}

// InvalidChunkTypeError is returned at parse time for a type code that
// is representable but not usable in a conforming stream (reserved bit
// set).
type InvalidChunkTypeError struct {
	Type ChunkType
}

func (e *InvalidChunkTypeError) Error() string {
	return fmt.Sprintf("Invalid chunk type %q", e.Type.String())
}

// CrcError is returned when the checksum stored in a chunk does not
// match the one computed over its type and data.
type CrcError struct {
	Expected uint32 // computed over type+data
	Found    uint32 // stored in the stream
}

func (e *CrcError) Error() string {
	return fmt.Sprintf("Invalid CRC %d, expected %d", e.Found, e.Expected)
}

// NotFoundError is returned by RemoveChunk when no chunk matches the
// requested type name.
type NotFoundError struct {
	Type string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("No chunk of type %q", e.Type)
}
