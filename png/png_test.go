package png

import (
	"bytes"
	"errors"
	"testing"
)

func mustChunk(t *testing.T, name, message string) *Chunk {
	t.Helper()
	typ, err := ChunkTypeFromString(name)
	if err != nil {
		t.Fatalf("Failed to build chunk type %q: %v", name, err)
	}
	return NewChunk(typ, []byte(message))
}

func testPng(t *testing.T) *Png {
	t.Helper()
	return FromChunks([]*Chunk{
		mustChunk(t, "FrSt", "I am the first chunk"),
		mustChunk(t, "miDl", "I am another chunk"),
		mustChunk(t, "LASt", "I am the last chunk"),
	})
}

func TestParsePng(t *testing.T) {
	raw := testPng(t).Bytes()
	p, err := ParsePng(raw)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if len(p.Chunks()) != 3 {
		t.Fatalf("Wrong chunk count: %d", len(p.Chunks()))
	}
	for i, name := range []string{"FrSt", "miDl", "LASt"} {
		if p.Chunks()[i].Type().String() != name {
			t.Errorf("Chunk %d out of order: %s", i, p.Chunks()[i].Type().String())
		}
	}
}

func TestParsePngSignatureOnly(t *testing.T) {
	p, err := ParsePng(Signature[:])
	if err != nil {
		t.Fatalf("A signature-only file is a valid empty container: %v", err)
	}
	if len(p.Chunks()) != 0 {
		t.Errorf("Expected no chunks, got %d", len(p.Chunks()))
	}
}

func TestParsePngBadSignature(t *testing.T) {
	raw := testPng(t).Bytes()
	raw[0] = 13
	if _, err := ParsePng(raw); errors.Is(err, ErrBadSignature) == false {
		t.Errorf("Expected ErrBadSignature, got %v", err)
	}
	if _, err := ParsePng(raw[:5]); errors.Is(err, ErrBadSignature) == false {
		t.Errorf("A file shorter than the signature must fail the same way, got %v", err)
	}
}

func TestParsePngTrailingGarbage(t *testing.T) {
	raw := append(testPng(t).Bytes(), 0xde, 0xad, 0xbe)
	if _, err := ParsePng(raw); errors.Is(err, ErrTrailingBytes) == false {
		t.Errorf("Expected ErrTrailingBytes, got %v", err)
	}
}

func TestParsePngCorruptedChunk(t *testing.T) {
	raw := testPng(t).Bytes()
	// flip one bit in the first chunk's crc
	raw[len(Signature)+8+20] ^= 0x01
	_, err := ParsePng(raw)
	var crcErr *CrcError
	if errors.As(err, &crcErr) == false {
		t.Errorf("Expected a wrapped CrcError, got %v", err)
	}
}

func TestPngRoundTrip(t *testing.T) {
	original := testPng(t).Bytes()
	p, err := ParsePng(original)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if bytes.Equal(p.Bytes(), original) == false {
		t.Error("Serialize/parse/serialize changed the byte stream")
	}
}

func TestAppendAndFind(t *testing.T) {
	p := testPng(t)
	p.AppendChunk(mustChunk(t, "TeSt", "Message"))

	chunk := p.ChunkByType("TeSt")
	if chunk == nil {
		t.Fatal("Appended chunk not found")
	}
	if string(chunk.Data()) != "Message" {
		t.Errorf("Payload changed: %q", chunk.Data())
	}
	if len(p.Chunks()) != 4 {
		t.Errorf("Wrong chunk count after append: %d", len(p.Chunks()))
	}
}

func TestChunkByTypeNoMatch(t *testing.T) {
	p := testPng(t)
	if p.ChunkByType("TeSt") != nil {
		t.Error("Found a chunk that was never added")
	}
	// a malformed name matches nothing instead of failing
	if p.ChunkByType("ab") != nil || p.ChunkByType("Ru1t") != nil {
		t.Error("A malformed type name must be treated as no match")
	}
}

func TestRemoveChunk(t *testing.T) {
	p := testPng(t)
	removed, err := p.RemoveChunk("miDl")
	if err != nil {
		t.Fatalf("Failed to remove: %v", err)
	}
	if removed.Type().String() != "miDl" {
		t.Errorf("Removed the wrong chunk: %s", removed.Type().String())
	}
	if len(p.Chunks()) != 2 {
		t.Fatalf("Wrong chunk count after remove: %d", len(p.Chunks()))
	}
	if p.Chunks()[0].Type().String() != "FrSt" || p.Chunks()[1].Type().String() != "LASt" {
		t.Error("Remove changed the order of the remaining chunks")
	}

	var notFound *NotFoundError
	if _, err := p.RemoveChunk("miDl"); errors.As(err, &notFound) == false {
		t.Errorf("Expected NotFoundError, got %v", err)
	}
}

func TestRemoveFirstOfDuplicates(t *testing.T) {
	p := FromChunks([]*Chunk{
		mustChunk(t, "TeSt", "first"),
		mustChunk(t, "TeSt", "second"),
	})
	if _, err := p.RemoveChunk("TeSt"); err != nil {
		t.Fatalf("Failed to remove: %v", err)
	}
	if len(p.Chunks()) != 1 || string(p.Chunks()[0].Data()) != "second" {
		t.Error("Remove must take the first match only")
	}
}

func TestEndToEndHello(t *testing.T) {
	p, err := ParsePng(Signature[:])
	if err != nil {
		t.Fatalf("Failed to parse empty container: %v", err)
	}
	typ, _ := ChunkTypeFromString("RuSt")
	p.AppendChunk(NewChunk(typ, []byte("hello")))

	reparsed, err := ParsePng(p.Bytes())
	if err != nil {
		t.Fatalf("Failed to reparse: %v", err)
	}
	chunk := reparsed.ChunkByType("RuSt")
	if chunk == nil {
		t.Fatal("Embedded chunk not found after round trip")
	}
	text, err := chunk.DataAsString()
	if err != nil {
		t.Fatalf("Failed to read message: %v", err)
	}
	if text != "hello" {
		t.Errorf("Message changed during round trip: %q", text)
	}
}

func TestSecretVectorInStream(t *testing.T) {
	raw := append([]byte{}, Signature[:]...)
	raw = append(raw, secretChunkBytes(secretCrc)...)
	p, err := ParsePng(raw)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	text, err := p.ChunkByType("RuSt").DataAsString()
	if err != nil || text != secretMessage {
		t.Errorf("Wrong message: %q, %v", text, err)
	}

	bad := append([]byte{}, Signature[:]...)
	bad = append(bad, secretChunkBytes(2882656333)...)
	var crcErr *CrcError
	if _, err := ParsePng(bad); errors.As(err, &crcErr) == false {
		t.Errorf("Expected CrcError, got %v", err)
	}
}
