package backup

import (
	"fmt"

	"github.com/Klingon-tech/seedkit/pkg/mnemonic"
)

// SealMnemonic seals the entropy of a valid 24-word mnemonic and returns
// the armored text. The checksum word is recomputed on open, so only the
// 32 entropy bytes are stored.
func SealMnemonic(c *mnemonic.Codec, words []string, passphrase []byte, params Params) (string, error) {
	entropy, err := c.Entropy(words)
	if err != nil {
		return "", err
	}
	defer Wipe(entropy[:])

	sealed, err := Seal(entropy[:], passphrase, params)
	if err != nil {
		return "", fmt.Errorf("seal: %w", err)
	}
	return Armor(sealed), nil
}

// OpenMnemonic reverses SealMnemonic.
func OpenMnemonic(c *mnemonic.Codec, armored string, passphrase []byte) ([]string, error) {
	sealed, err := Unarmor(armored)
	if err != nil {
		return nil, err
	}
	plaintext, err := Open(sealed, passphrase)
	if err != nil {
		return nil, err
	}
	defer Wipe(plaintext)

	if len(plaintext) != mnemonic.EntropySize {
		return nil, fmt.Errorf("sealed payload is %d bytes, want %d", len(plaintext), mnemonic.EntropySize)
	}
	var entropy [mnemonic.EntropySize]byte
	copy(entropy[:], plaintext)
	words := c.FromEntropy(entropy)
	Wipe(entropy[:])
	return words, nil
}
