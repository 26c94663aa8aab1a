package crypto

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"

	txerrors "github.com/kigichang/sawtk/core/errors"
)

const publicKeyHexLength = 66

func SHA256(input []byte) []byte {
	sum := sha256.Sum256(input)
	return sum[:]
}

// SHA256Hex hashes the UTF-8 bytes of input.
func SHA256Hex(input string) string {
	return BytesToHex(SHA256([]byte(input)))
}

func SHA512(input []byte) []byte {
	sum := sha512.Sum512(input)
	return sum[:]
}

// SHA512Hex hashes the UTF-8 bytes of input.
func SHA512Hex(input string) string {
	return SHA512BytesHex([]byte(input))
}

func SHA512BytesHex(input []byte) string {
	return BytesToHex(SHA512(input))
}

// BytesToHex returns the lower-case hex encoding of b.
func BytesToHex(b []byte) string {
	return hex.EncodeToString(b)
}

// HexToBytes decodes s, rejecting odd lengths and non-hex characters.
func HexToBytes(s string) ([]byte, error) {
	if err := checkHex(s); err != nil {
		return nil, err
	}
	return hex.DecodeString(s)
}

func IsHex(s string) bool {
	return checkHex(s) == nil
}

func checkHex(s string) error {
	if len(s)%2 != 0 {
		return fmt.Errorf("%w: odd hex string length %d", txerrors.ErrMalformedInput, len(s))
	}
	idx := 0
	for _, ch := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", ch) {
			return fmt.Errorf("%w: invalid hex character %q at %d", txerrors.ErrMalformedInput, ch, idx)
		}
		idx++
	}
	return nil
}

// IsPublicKey reports whether s looks like a hex encoded compressed key.
func IsPublicKey(s string) bool {
	return len(s) == publicKeyHexLength && IsHex(s)
}

// Nonce returns a random UUIDv4 string suitable for transaction headers.
func Nonce() string {
	return uuid.NewString()
}

func IsUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
