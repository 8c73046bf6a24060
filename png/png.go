/*
 * Chunk-level png container. The image data itself is never touched:
 * every chunk's data is opaque bytes, which is exactly what makes the
 * format usable as a carrier for arbitrary extra records.
 */
package png

import (
	"bytes"
	"fmt"
	"strings"
)

// Signature is the fixed 8-byte magic every png file starts with.
var Signature = [8]byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}

// Png is an ordered chunk sequence. Order is meaningful: chunks are
// written back exactly in the order they are held. The zero value is
// an empty container. A Png is not safe for concurrent use; callers
// that share one must guard it themselves.
type Png struct {
	chunks []*Chunk
}

func FromChunks(chunks []*Chunk) *Png {
	p := &Png{}
	p.chunks = append(p.chunks, chunks...)
	return p
}

// ParsePng parses a whole file: signature first, then chunks
// back-to-back until the input is exhausted. The stream must end
// exactly on a chunk boundary.
func ParsePng(raw []byte) (*Png, error) {
	if len(raw) < len(Signature) || bytes.Equal(raw[:len(Signature)], Signature[:]) == false {
		return nil, ErrBadSignature
	}

	p := &Png{}
	offset := len(Signature)
	for offset < len(raw) {
		if len(raw)-offset < metadataSize {
			return nil, fmt.Errorf("%w: %d bytes at offset %d", ErrTrailingBytes, len(raw)-offset, offset)
		}
		chunk, err := ParseChunk(raw[offset:])
		if err != nil {
			return nil, fmt.Errorf("Chunk %d at offset %d: %w", len(p.chunks), offset, err)
		}
		p.chunks = append(p.chunks, chunk)
		offset += chunk.EncodedSize()
	}
	return p, nil
}

// Bytes serializes the container: signature, then every chunk in
// order. The container is left untouched and can be serialized any
// number of times.
func (p *Png) Bytes() []byte {
	size := len(Signature)
	for _, c := range p.chunks {
		size += c.EncodedSize()
	}
	out := make([]byte, 0, size)
	out = append(out, Signature[:]...)
	for _, c := range p.chunks {
		out = append(out, c.Bytes()...)
	}
	return out
}

// AppendChunk pushes a chunk to the end of the sequence. No ordering
// or uniqueness rules are enforced; a caller that cares about keeping
// IEND last has to place its chunks itself.
func (p *Png) AppendChunk(c *Chunk) {
	p.chunks = append(p.chunks, c)
}

// ChunkByType returns the first chunk whose type name equals name, or
// nil. A name that cannot even form a chunk type matches nothing.
func (p *Png) ChunkByType(name string) *Chunk {
	typ, err := ChunkTypeFromString(name)
	if err != nil {
		return nil
	}
	for _, c := range p.chunks {
		if c.Type() == typ {
			return c
		}
	}
	return nil
}

// RemoveChunk removes and returns the first chunk of the given type,
// keeping the order of the remaining chunks. At most one chunk is
// removed per call.
func (p *Png) RemoveChunk(name string) (*Chunk, error) {
	typ, err := ChunkTypeFromString(name)
	if err != nil {
		return nil, &NotFoundError{Type: name}
	}
	for i, c := range p.chunks {
		if c.Type() == typ {
			p.chunks = append(p.chunks[:i], p.chunks[i+1:]...)
			return c, nil
		}
	}
	return nil, &NotFoundError{Type: name}
}

// Chunks returns the chunk sequence in insertion order. The slice is
// the container's own; treat it as read-only.
func (p *Png) Chunks() []*Chunk {
	return p.chunks
}

func (p *Png) String() string {
	var sb strings.Builder
	for _, c := range p.chunks {
		sb.WriteString(c.String())
	}
	return sb.String()
}
