package crypto

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcutil/base58"

	txerrors "github.com/kigichang/sawtk/core/errors"
)

var (
	ErrWalletChecksum = errors.New("wallet: checksum mismatch")
	ErrWalletLength   = errors.New("wallet: invalid length")
	ErrWalletVersion  = errors.New("wallet: invalid version")
)

// NewWallet encodes a public key as base58check. The version byte is the
// first byte of the key itself, so compressed keys yield a leading 0x02 or
// 0x03 version.
func NewWallet(publicKey []byte) string {
	if len(publicKey) == 0 {
		return ""
	}
	return base58.CheckEncode(publicKey, publicKey[0])
}

// WalletFromHex encodes a hex public key.
func WalletFromHex(publicKey string) (string, error) {
	raw, err := HexToBytes(publicKey)
	if err != nil {
		return "", err
	}
	if len(raw) == 0 {
		return "", fmt.Errorf("%w: %v", txerrors.ErrMalformedInput, ErrWalletLength)
	}
	return NewWallet(raw), nil
}

// WalletToPublicKey decodes a wallet back into the hex public key and its
// version byte.
func WalletToPublicKey(wallet string) (string, byte, error) {
	payload, version, err := base58.CheckDecode(wallet)
	switch {
	case errors.Is(err, base58.ErrChecksum):
		return "", 0, fmt.Errorf("%w: %v", txerrors.ErrMalformedInput, ErrWalletChecksum)
	case err != nil:
		return "", 0, fmt.Errorf("%w: %v", txerrors.ErrMalformedInput, ErrWalletLength)
	}
	if len(payload) == 0 {
		return "", 0, fmt.Errorf("%w: %v", txerrors.ErrMalformedInput, ErrWalletLength)
	}
	if payload[0] != version {
		return "", 0, fmt.Errorf("%w: %v %d, must be %d", txerrors.ErrMalformedInput, ErrWalletVersion, payload[0], version)
	}
	return BytesToHex(payload), version, nil
}

func IsWallet(wallet string) bool {
	_, _, err := WalletToPublicKey(wallet)
	return err == nil
}
