package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/kigichang/sawtk/core/namespace"
	"github.com/kigichang/sawtk/crypto"
)

// ErrNoKey indicates that neither key_file nor keystore_path is configured.
var ErrNoKey = errors.New("config: no signing key configured")

// PassphraseFunc supplies the keystore passphrase when the configured
// environment variable is unset.
type PassphraseFunc func() (string, error)

// Signer loads the configured signing key. prompt may be nil when the
// keystore passphrase always comes from the environment.
func (cfg *Config) Signer(prompt PassphraseFunc) (*crypto.Signer, error) {
	switch {
	case cfg.KeyFile != "":
		return crypto.ReadPrivateKeyFile(cfg.KeyFile)
	case cfg.KeystorePath != "":
		passphrase, err := cfg.passphrase(prompt)
		if err != nil {
			return nil, err
		}
		return crypto.LoadFromKeystore(cfg.KeystorePath, passphrase)
	default:
		return nil, ErrNoKey
	}
}

func (cfg *Config) passphrase(prompt PassphraseFunc) (string, error) {
	if cfg.KeystorePassEnv != "" {
		if value, ok := os.LookupEnv(cfg.KeystorePassEnv); ok {
			return value, nil
		}
	}
	if prompt == nil {
		return "", fmt.Errorf("keystore passphrase not provided; set %s", cfg.KeystorePassEnv)
	}
	return prompt()
}

// Namespace returns the family's own namespace, or nil when no family is
// configured. The ledger's reserved families resolve to their fixed prefixes.
func (cfg *Config) Namespace() namespace.Namespace {
	if cfg.FamilyName == "" {
		return nil
	}
	return namespace.Ledger(cfg.FamilyName)
}

// Prefixes lists every prefix the family may touch: its own first, then the
// configured extras without duplicates.
func (cfg *Config) Prefixes() []string {
	out := make([]string, 0, len(cfg.Namespaces)+1)
	seen := make(map[string]struct{}, len(cfg.Namespaces)+1)
	add := func(prefix string) {
		if _, dup := seen[prefix]; dup {
			return
		}
		seen[prefix] = struct{}{}
		out = append(out, prefix)
	}
	if ns := cfg.Namespace(); ns != nil {
		add(ns.Prefix())
	}
	for _, prefix := range cfg.Namespaces {
		add(prefix)
	}
	return out
}
