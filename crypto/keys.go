package crypto

import (
	"crypto/ecdsa"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"

	txerrors "github.com/kigichang/sawtk/core/errors"
)

// Algorithm names the only signing scheme supported by the toolkit.
const Algorithm = "secp256k1"

const (
	privateKeyLength = 32
	signatureLength  = 64
)

// --- Key Management ---

type PrivateKey struct {
	*ecdsa.PrivateKey
}

type PublicKey struct {
	*ecdsa.PublicKey
}

func GeneratePrivateKey() (*PrivateKey, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("%w: generate key: %v", txerrors.ErrSigning, err)
	}
	return &PrivateKey{key}, nil
}

// PrivateKeyFromBytes imports a raw 32-byte scalar.
func PrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	if len(b) != privateKeyLength {
		return nil, fmt.Errorf("%w: private key must be %d bytes, got %d", txerrors.ErrSigning, privateKeyLength, len(b))
	}
	key, err := crypto.ToECDSA(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", txerrors.ErrSigning, err)
	}
	return &PrivateKey{key}, nil
}

// PrivateKeyFromHex imports a hex encoded 32-byte scalar.
func PrivateKeyFromHex(s string) (*PrivateKey, error) {
	raw, err := HexToBytes(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", txerrors.ErrSigning, err)
	}
	return PrivateKeyFromBytes(raw)
}

// Bytes returns the byte representation of the private key.
func (k *PrivateKey) Bytes() []byte {
	return crypto.FromECDSA(k.PrivateKey)
}

func (k *PrivateKey) Hex() string {
	return BytesToHex(k.Bytes())
}

func (k *PrivateKey) PubKey() *PublicKey {
	return &PublicKey{&k.PrivateKey.PublicKey}
}

// Bytes returns the 33-byte compressed encoding.
func (k *PublicKey) Bytes() []byte {
	return crypto.CompressPubkey(k.PublicKey)
}

func (k *PublicKey) Hex() string {
	return BytesToHex(k.Bytes())
}

// Wallet returns the human-readable wallet form of the key.
func (k *PublicKey) Wallet() string {
	return NewWallet(k.Bytes())
}

// --- Signer ---

var errNoKey = errors.New("no private key loaded")

// Signer binds a secp256k1 private key to the signing operations used when
// building transactions and batches. It holds no mutable state and is safe
// for concurrent use.
type Signer struct {
	key *PrivateKey
}

// NewSigner wraps an existing private key.
func NewSigner(key *PrivateKey) (*Signer, error) {
	if key == nil || key.PrivateKey == nil {
		return nil, fmt.Errorf("%w: %v", txerrors.ErrSigning, errNoKey)
	}
	return &Signer{key: key}, nil
}

// SignerFromHex imports a hex encoded private key.
func SignerFromHex(s string) (*Signer, error) {
	key, err := PrivateKeyFromHex(s)
	if err != nil {
		return nil, err
	}
	return &Signer{key: key}, nil
}

// GenerateSigner creates a signer around a fresh random key.
func GenerateSigner() (*Signer, error) {
	key, err := GeneratePrivateKey()
	if err != nil {
		return nil, err
	}
	return &Signer{key: key}, nil
}

func (s *Signer) PrivateKey() *PrivateKey {
	return s.key
}

// PublicKey returns the hex encoded compressed public key.
func (s *Signer) PublicKey() (string, error) {
	if s == nil || s.key == nil || s.key.PrivateKey == nil {
		return "", fmt.Errorf("%w: %v", txerrors.ErrSigning, errNoKey)
	}
	return s.key.PubKey().Hex(), nil
}

// Sign hashes message with SHA-256 and returns the hex encoded compact
// r||s signature.
func (s *Signer) Sign(message []byte) (string, error) {
	if s == nil || s.key == nil || s.key.PrivateKey == nil {
		return "", fmt.Errorf("%w: %v", txerrors.ErrSigning, errNoKey)
	}
	digest := SHA256(message)
	sig, err := crypto.Sign(digest, s.key.PrivateKey)
	if err != nil {
		return "", fmt.Errorf("%w: %v", txerrors.ErrSigning, err)
	}
	return BytesToHex(sig[:signatureLength]), nil
}

func (s *Signer) String() string {
	pub, err := s.PublicKey()
	if err != nil {
		return fmt.Sprintf("signer: %v", err)
	}
	return "signer: " + pub
}

// Verify reports whether signature is a valid compact signature of message
// under the hex encoded public key.
func Verify(publicKey, signature string, message []byte) bool {
	pub, err := HexToBytes(publicKey)
	if err != nil {
		return false
	}
	sig, err := HexToBytes(signature)
	if err != nil || len(sig) != signatureLength {
		return false
	}
	return crypto.VerifySignature(pub, SHA256(message), sig)
}
