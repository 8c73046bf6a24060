/*
 * Optional transforms applied to a message before it goes into a chunk
 * and after it comes back out. With no options set, bytes pass through
 * untouched, so plain embeds stay readable by any chunk tool.
 */
package payload

import (
	"fmt"

	"github.com/klauspost/compress/zstd"

	"pngstash/cryptography"
)

const (
	flagCompressed = uint8(1) << 0
	flagEncrypted  = uint8(1) << 1

	knownFlags = flagCompressed | flagEncrypted
)

type Options struct {
	Compress   bool
	Passphrase []byte
}

func (o Options) None() bool {
	return o.Compress == false && len(o.Passphrase) == 0
}

// Pack transforms data for embedding. When any option is set the
// result carries a leading flag byte describing the transforms that
// were actually applied; compression that does not shrink the data is
// skipped and its flag left clear.
func Pack(data []byte, opts Options) ([]byte, error) {
	if opts.None() {
		return data, nil
	}

	flags := uint8(0)
	out := data
	if opts.Compress {
		compressed, err := compress(out)
		if err != nil {
			return nil, err
		}
		if len(compressed) < len(out) {
			out = compressed
			flags |= flagCompressed
		}
	}
	if len(opts.Passphrase) > 0 {
		salt, err := cryptography.GenRandom(cryptography.SaltSize)
		if err != nil {
			return nil, err
		}
		key := cryptography.DeriveKey(opts.Passphrase, salt)
		ct, err := cryptography.Encrypt(out, key)
		if err != nil {
			return nil, err
		}
		out = append(salt, ct...)
		flags |= flagEncrypted
	}
	return append([]byte{flags}, out...), nil
}

// Unpack reverses Pack. The caller's options must cover whatever the
// flag byte says was applied; in particular an encrypted payload
// cannot be unpacked without a passphrase.
func Unpack(data []byte, opts Options) ([]byte, error) {
	if opts.None() {
		return data, nil
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("Packed payload is empty")
	}

	flags := data[0]
	out := data[1:]
	if flags&^knownFlags != 0 {
		return nil, fmt.Errorf("Unknown payload flags %#02x (not packed by this tool?)", flags)
	}

	if flags&flagEncrypted != 0 {
		if len(opts.Passphrase) == 0 {
			return nil, fmt.Errorf("Payload is encrypted but no passphrase was given")
		}
		if len(out) < cryptography.SaltSize {
			return nil, fmt.Errorf("Encrypted payload is too short")
		}
		key := cryptography.DeriveKey(opts.Passphrase, out[:cryptography.SaltSize])
		pt, err := cryptography.Decrypt(out[cryptography.SaltSize:], key)
		if err != nil {
			return nil, fmt.Errorf("Failed to decrypt payload (wrong passphrase?): %w", err)
		}
		out = pt
	}
	if flags&flagCompressed != 0 {
		decompressed, err := decompress(out)
		if err != nil {
			return nil, err
		}
		out = decompressed
	}
	return out, nil
}

func compress(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(
		nil,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
	)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil), nil
}

func decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("Failed to decompress payload: %w", err)
	}
	return out, nil
}
