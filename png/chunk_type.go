package png

// ChunkType is the 4-byte ASCII code naming a chunk's kind.
// The case of each byte doubles as a property bit: byte 0 is the
// ancillary bit, byte 1 the private bit, byte 2 the reserved bit and
// byte 3 the safe-to-copy bit. Uppercase means the bit is clear.
type ChunkType struct {
	code [4]byte
}

func ChunkTypeFromBytes(raw [4]byte) (ChunkType, error) {
	for _, b := range raw {
		if !isAsciiAlphabetic(b) {
			return ChunkType{}, &TypeBytesError{Raw: raw}
		}
	}
	return ChunkType{raw}, nil
}

func ChunkTypeFromString(s string) (ChunkType, error) {
	if len(s) != 4 {
		return ChunkType{}, &TypeStringError{Value: s}
	}
	var raw [4]byte
	copy(raw[:], s)
	return ChunkTypeFromBytes(raw)
}

func (t ChunkType) Bytes() [4]byte {
	return t.code
}

// String never fails: the constructors only admit ASCII letters, so
// the code is always printable text.
func (t ChunkType) String() string {
	return string(t.code[:])
}

// IsValid reports whether the type may appear in a conforming stream.
// The bytes are alphabetic by construction, so only the reserved bit
// can disqualify a constructed value.
func (t ChunkType) IsValid() bool {
	for _, b := range t.code {
		if !isAsciiAlphabetic(b) {
			return false
		}
	}
	return t.IsReservedBitValid()
}

func (t ChunkType) IsCritical() bool {
	return isAsciiUpper(t.code[0])
}

func (t ChunkType) IsPublic() bool {
	return isAsciiUpper(t.code[1])
}

func (t ChunkType) IsReservedBitValid() bool {
	return isAsciiUpper(t.code[2])
}

func (t ChunkType) IsSafeToCopy() bool {
	return isAsciiLower(t.code[3])
}

func isAsciiUpper(b byte) bool {
	return b >= 'A' && b <= 'Z'
}

func isAsciiLower(b byte) bool {
	return b >= 'a' && b <= 'z'
}

func isAsciiAlphabetic(b byte) bool {
	return isAsciiUpper(b) || isAsciiLower(b)
}
