// Package backup seals mnemonic entropy under a passphrase so a compact
// backup can be stored somewhere less trusted than paper.
package backup

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/Klingon-tech/seedkit/internal/log"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

// Sealed format constants.
const (
	SaltSize = 32
	// Sealed format: [salt(32)][memory(4)][iterations(4)][parallelism(1)][nonce(24)][ciphertext...]
	headerSize = SaltSize + 4 + 4 + 1

	// ArmorPrefix marks the text form of a sealed backup.
	ArmorPrefix = "seed1:"
)

// ErrDecrypt is returned when the passphrase is wrong or the data was altered.
var ErrDecrypt = errors.New("wrong passphrase or corrupted backup")

// Params holds Argon2id parameters.
type Params struct {
	Memory      uint32 // in KiB
	Iterations  uint32
	Parallelism uint8
}

// Argon2id parameter bounds. Open rejects headers outside them before
// deriving a key.
const (
	MaxMemory      = 1 << 22 // KiB, 4 GiB
	MaxIterations  = 64
	MaxParallelism = 64
)

// Validate checks p against the Argon2id bounds.
func (p Params) Validate() error {
	if p.Iterations == 0 || p.Iterations > MaxIterations {
		return fmt.Errorf("argon2 iterations %d out of range 1..%d", p.Iterations, MaxIterations)
	}
	if p.Parallelism == 0 || p.Parallelism > MaxParallelism {
		return fmt.Errorf("argon2 parallelism %d out of range 1..%d", p.Parallelism, MaxParallelism)
	}
	if p.Memory < 8*uint32(p.Parallelism) || p.Memory > MaxMemory {
		return fmt.Errorf("argon2 memory %d KiB out of range %d..%d", p.Memory, 8*uint32(p.Parallelism), MaxMemory)
	}
	return nil
}

// DefaultParams returns recommended Argon2id parameters.
func DefaultParams() Params {
	return Params{
		Memory:      64 * 1024, // 64 MB
		Iterations:  3,
		Parallelism: 4,
	}
}

// deriveKey uses Argon2id to derive a 32-byte key from passphrase and salt.
func deriveKey(passphrase, salt []byte, params Params) []byte {
	defer log.Benchmark("argon2id")()
	return argon2.IDKey(
		passphrase,
		salt,
		params.Iterations,
		params.Memory,
		params.Parallelism,
		chacha20poly1305.KeySize,
	)
}

// Seal encrypts data with passphrase using Argon2id + XChaCha20-Poly1305.
//
// Output format: salt(32) | memory(4) | iterations(4) | parallelism(1) | nonce(24) | ciphertext
func Seal(data, passphrase []byte, params Params) ([]byte, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}

	key := deriveKey(passphrase, salt, params)
	defer Wipe(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	// The header is authenticated so parameters cannot be swapped.
	out := make([]byte, 0, headerSize+len(nonce)+len(data)+aead.Overhead())
	out = append(out, salt...)
	out = binary.LittleEndian.AppendUint32(out, params.Memory)
	out = binary.LittleEndian.AppendUint32(out, params.Iterations)
	out = append(out, params.Parallelism)
	out = append(out, nonce...)
	header := append([]byte(nil), out[:headerSize]...)
	out = aead.Seal(out, nonce, data, header)

	log.Backup.Debug().
		Uint32("memory_kib", params.Memory).
		Uint32("iterations", params.Iterations).
		Int("bytes", len(out)).
		Msg("sealed backup")
	return out, nil
}

// Open decrypts data sealed by Seal.
func Open(sealed, passphrase []byte) ([]byte, error) {
	nonceSize := chacha20poly1305.NonceSizeX
	minSize := headerSize + nonceSize + chacha20poly1305.Overhead
	if len(sealed) < minSize {
		return nil, fmt.Errorf("sealed data too short: %d bytes, need at least %d", len(sealed), minSize)
	}

	salt := sealed[:SaltSize]
	params := Params{
		Memory:      binary.LittleEndian.Uint32(sealed[SaltSize:]),
		Iterations:  binary.LittleEndian.Uint32(sealed[SaltSize+4:]),
		Parallelism: sealed[SaltSize+8],
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("sealed header: %w", err)
	}

	nonce := sealed[headerSize : headerSize+nonceSize]
	ciphertext := sealed[headerSize+nonceSize:]

	key := deriveKey(passphrase, salt, params)
	defer Wipe(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, sealed[:headerSize])
	if err != nil {
		log.Backup.Warn().Msg("backup authentication failed")
		return nil, ErrDecrypt
	}
	return plaintext, nil
}

// Armor renders sealed bytes as copyable text.
func Armor(sealed []byte) string {
	return ArmorPrefix + hex.EncodeToString(sealed)
}

// Unarmor parses text produced by Armor. Whitespace is ignored and the
// prefix is optional.
func Unarmor(s string) ([]byte, error) {
	s = strings.Join(strings.Fields(s), "")
	s = strings.TrimPrefix(strings.ToLower(s), ArmorPrefix)
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode sealed backup: %w", err)
	}
	return b, nil
}

// Wipe zeroes b.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
