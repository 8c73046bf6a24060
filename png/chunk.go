package png

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"unicode/utf8"
)

const (
	lengthSize = 4
	typeSize   = 4
	crcSize    = 4

	// bytes of overhead around the data in the encoded form
	metadataSize = lengthSize + typeSize + crcSize
)

// Chunk is one length-prefixed, checksummed record of a png stream.
// It owns its data; the length and crc are always derived from the
// current type and data, never stored, so they cannot go stale.
type Chunk struct {
	typ  ChunkType
	data []byte
}

// NewChunk copies data into a fresh chunk. The type is not checked for
// stream validity here; that only happens when parsing foreign bytes.
func NewChunk(typ ChunkType, data []byte) *Chunk {
	owned := make([]byte, len(data))
	copy(owned, data)
	return &Chunk{typ, owned}
}

// ParseChunk decodes one chunk from the start of raw. Bytes past the
// chunk's encoded end are ignored, so the caller can keep walking a
// stream of back-to-back chunks.
func ParseChunk(raw []byte) (*Chunk, error) {
	if len(raw) < lengthSize {
		return nil, &TruncatedError{Declared: 0, Available: len(raw)}
	}
	length := int(binary.BigEndian.Uint32(raw[:lengthSize]))
	rest := raw[lengthSize:]
	if length+typeSize+crcSize > len(rest) {
		return nil, &TruncatedError{Declared: length, Available: len(rest)}
	}

	var code [4]byte
	copy(code[:], rest[:typeSize])
	typ, err := ChunkTypeFromBytes(code)
	if err != nil {
		return nil, err
	}
	if typ.IsValid() == false {
		return nil, &InvalidChunkTypeError{Type: typ}
	}

	chunk := NewChunk(typ, rest[typeSize:typeSize+length])
	found := binary.BigEndian.Uint32(rest[typeSize+length : typeSize+length+crcSize])
	if expected := chunk.Crc(); expected != found {
		return nil, &CrcError{Expected: expected, Found: found}
	}
	return chunk, nil
}

func (c *Chunk) Type() ChunkType {
	return c.typ
}

func (c *Chunk) Data() []byte {
	return c.data
}

func (c *Chunk) Length() int {
	return len(c.data)
}

// Crc computes the CRC-32 (ISO-HDLC, the variant png mandates) over
// the type bytes followed by the data.
func (c *Chunk) Crc() uint32 {
	code := c.typ.Bytes()
	crc := crc32.Update(0, crc32.IEEETable, code[:])
	return crc32.Update(crc, crc32.IEEETable, c.data)
}

// EncodedSize is the number of bytes Bytes will produce.
func (c *Chunk) EncodedSize() int {
	return metadataSize + len(c.data)
}

// Bytes serializes the chunk as [length][type][data][crc], big-endian,
// with a freshly computed crc.
func (c *Chunk) Bytes() []byte {
	var word [4]byte
	out := make([]byte, 0, c.EncodedSize())

	binary.BigEndian.PutUint32(word[:], uint32(len(c.data)))
	out = append(out, word[:]...)
	code := c.typ.Bytes()
	out = append(out, code[:]...)
	out = append(out, c.data...)
	binary.BigEndian.PutUint32(word[:], c.Crc())
	return append(out, word[:]...)
}

// DataAsString interprets the data as UTF-8 text, for chunks used as
// hidden message carriers.
func (c *Chunk) DataAsString() (string, error) {
	if utf8.Valid(c.data) == false {
		return "", ErrNonUtf8Payload
	}
	return string(c.data), nil
}

func (c *Chunk) String() string {
	return fmt.Sprintf("Chunk {\n  Length: %d\n  Type: %s\n  Data: %d bytes\n  Crc: %d\n}\n",
		c.Length(), c.typ.String(), len(c.data), c.Crc())
}
