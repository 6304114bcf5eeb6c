package mnemonic

import "crypto/sha256"

// Entropy and checksum widths for 24-word mnemonics.
const (
	EntropyBits  = 256
	EntropySize  = EntropyBits / 8
	ChecksumBits = EntropyBits / 32
	MnemonicBits = EntropyBits + ChecksumBits

	// MnemonicWords is the number of words in a full mnemonic.
	MnemonicWords = MnemonicBits / BitsPerWord
)

// Checksum returns the first ChecksumBits of SHA-256(entropy). For 256-bit
// entropy that is exactly digest byte 0.
func Checksum(entropy [EntropySize]byte) byte {
	digest := sha256.Sum256(entropy[:])
	return digest[0] >> (8 - ChecksumBits)
}
