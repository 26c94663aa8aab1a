package crypto

import (
	"fmt"
	"os"
	"strings"

	txerrors "github.com/kigichang/sawtk/core/errors"
)

// WriteKeyFiles stores the raw private and compressed public key bytes as
// <name>.priv and <name>.pub.
func WriteKeyFiles(name string, signer *Signer) (privPath, pubPath string, err error) {
	if signer == nil || signer.key == nil {
		return "", "", fmt.Errorf("%w: %v", txerrors.ErrSigning, errNoKey)
	}
	privPath = name + ".priv"
	pubPath = name + ".pub"
	if err := os.WriteFile(privPath, signer.key.Bytes(), 0o600); err != nil {
		return "", "", fmt.Errorf("couldn't write %s: %w", privPath, err)
	}
	if err := os.WriteFile(pubPath, signer.key.PubKey().Bytes(), 0o644); err != nil {
		return "", "", fmt.Errorf("couldn't write %s: %w", pubPath, err)
	}
	return privPath, pubPath, nil
}

// ReadPrivateKeyFile loads a signer from a file holding either the raw
// 32-byte key or its hex encoding.
func ReadPrivateKeyFile(path string) (*Signer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(data) == privateKeyLength {
		key, err := PrivateKeyFromBytes(data)
		if err != nil {
			return nil, err
		}
		return NewSigner(key)
	}
	return SignerFromHex(strings.TrimSpace(string(data)))
}
