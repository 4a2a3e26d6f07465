package solana

import (
	"errors"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

// PubkeyLen is the size of a decoded Solana public key.
const PubkeyLen = 32

var ErrInvalidPubkey = errors.New("invalid solana pubkey")

// ParsePubkey decodes a base58 address into its 32 raw bytes.
func ParsePubkey(addr string) ([]byte, error) {
	if addr == "" {
		return nil, ErrInvalidPubkey
	}
	decoded, err := base58.Decode(addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPubkey, err)
	}
	if len(decoded) != PubkeyLen {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidPubkey, PubkeyLen, len(decoded))
	}
	return decoded, nil
}

// IsWallet reports whether addr is a valid pubkey that lies on the ed25519 curve.
// Program-derived addresses are off-curve and cannot sign, so they are not wallets.
func IsWallet(addr string) bool {
	key, err := ParsePubkey(addr)
	if err != nil {
		return false
	}
	_, err = new(edwards25519.Point).SetBytes(key)
	return err == nil
}
