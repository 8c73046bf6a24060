package cryptography

import (
	"crypto/rand"
	"fmt"
	"runtime"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	SymKeySize = chacha20poly1305.KeySize
	NonceSize  = chacha20poly1305.NonceSize
	SaltSize   = 16
)

// chacha20poly1305 encryption+authentication
func Encrypt(data, key []byte) ([]byte, error) {

	if len(data) == 0 {
		return nil, nil
	}
	if key == nil || len(key) != SymKeySize {
		return nil, fmt.Errorf("Invalid key")
	}

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	ct := aead.Seal(nil, nonce, data, nil)
	return append(nonce, ct...), nil
}

func Decrypt(data, key []byte) ([]byte, error) {

	if len(data) == 0 {
		return nil, nil
	}
	if key == nil || len(key) != SymKeySize {
		return nil, fmt.Errorf("Invalid key")
	}
	if len(data) < NonceSize {
		return nil, fmt.Errorf("Invalid length of data")
	}

	nonce := data[:NonceSize]
	data = data[NonceSize:]
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	return aead.Open(nil, nonce, data, nil)
}

// generate a random amount of bytes
func GenRandom(size uint) ([]byte, error) {
	if size == 0 {
		return nil, fmt.Errorf("Invalid size of random data")
	}
	data := make([]byte, size)
	if _, err := rand.Read(data); err != nil {
		return nil, err
	}
	return data, nil
}

// derive encryption key from password. used for payload encryption
func DeriveKey(password, saltBytes []byte) []byte {
	/*
	 * the draft RFC recommends time=3 and memory=32*1024 (32 MB) is a sensible number.
	 */
	threads := uint8(runtime.NumCPU())
	return argon2.IDKey(password, saltBytes, 3, 32*1024, threads, SymKeySize)
}
