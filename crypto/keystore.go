package crypto

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"

	txerrors "github.com/kigichang/sawtk/core/errors"
)

// scrypt cost parameters for new keystore files; tests lower them.
var (
	scryptN = keystore.StandardScryptN
	scryptP = keystore.StandardScryptP
)

// SaveToKeystore encrypts the signer's private key into a v3 keystore file
// at path. The parent directory is created with 0700 permissions and the file
// is replaced atomically.
func SaveToKeystore(path string, signer *Signer, passphrase string) error {
	if signer == nil || signer.key == nil {
		return fmt.Errorf("%w: %v", txerrors.ErrSigning, errNoKey)
	}
	if path == "" {
		return errors.New("crypto: empty keystore path")
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return err
	}
	pk := signer.key.PrivateKey
	keyJSON, err := keystore.EncryptKey(&keystore.Key{
		Id:         id,
		Address:    crypto.PubkeyToAddress(pk.PublicKey),
		PrivateKey: pk,
	}, passphrase, scryptN, scryptP)
	if err != nil {
		return fmt.Errorf("%w: encrypt key: %v", txerrors.ErrSigning, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".keystore-")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(keyJSON); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// LoadFromKeystore decrypts a v3 keystore file into a Signer.
func LoadFromKeystore(path, passphrase string) (*Signer, error) {
	if path == "" {
		return nil, errors.New("crypto: empty keystore path")
	}

	keyJSON, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	decrypted, err := keystore.DecryptKey(keyJSON, passphrase)
	if err != nil {
		return nil, fmt.Errorf("%w: decrypt keystore: %v", txerrors.ErrSigning, err)
	}
	return NewSigner(&PrivateKey{PrivateKey: decrypted.PrivateKey})
}
