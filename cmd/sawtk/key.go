package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/kigichang/sawtk/cmd/internal/passphrase"
	"github.com/kigichang/sawtk/crypto"
)

const defaultPassEnv = "SAWTK_KEYSTORE_PASS"

// newPassphraseSource is replaced in tests.
var newPassphraseSource = func(envVar string) func() (string, error) {
	return passphrase.NewSource(envVar).Get
}

func runKey(args []string, stdout, stderr io.Writer) error {
	if len(args) < 1 {
		return errors.New("key requires a subcommand: gen or load")
	}
	switch args[0] {
	case "gen":
		return runKeyGen(args[1:], stdout, stderr)
	case "load":
		return runKeyLoad(args[1:], stdout, stderr)
	default:
		return fmt.Errorf("unknown key subcommand %q", args[0])
	}
}

func runKeyGen(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("key gen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	name := fs.String("n", "", "Write <name>.priv and <name>.pub")
	keystorePath := fs.String("keystore", "", "Write an encrypted keystore file instead of raw key files")
	passEnv := fs.String("pass-env", defaultPassEnv, "Environment variable containing the keystore passphrase")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if (*name == "") == (*keystorePath == "") {
		return errors.New("exactly one of -n or --keystore is required")
	}

	signer, err := crypto.GenerateSigner()
	if err != nil {
		return err
	}

	if *keystorePath != "" {
		pass, err := newPassphraseSource(*passEnv)()
		if err != nil {
			return err
		}
		if err := crypto.SaveToKeystore(*keystorePath, signer, pass); err != nil {
			return fmt.Errorf("failed to write keystore: %w", err)
		}
		fmt.Fprintf(stdout, "keystore: %s\n", *keystorePath)
	} else {
		privPath, pubPath, err := crypto.WriteKeyFiles(strings.TrimSpace(*name), signer)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "private key file: %s\npublic key file: %s\n", privPath, pubPath)
	}
	return printKey(stdout, signer)
}

func runKeyLoad(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("key load", flag.ContinueOnError)
	fs.SetOutput(stderr)
	input := fs.String("i", "", "Private key file (raw bytes or hex)")
	keystorePath := fs.String("keystore", "", "Encrypted keystore file")
	passEnv := fs.String("pass-env", defaultPassEnv, "Environment variable containing the keystore passphrase")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if (*input == "") == (*keystorePath == "") {
		return errors.New("exactly one of -i or --keystore is required")
	}

	var (
		signer *crypto.Signer
		err    error
	)
	if *keystorePath != "" {
		pass, perr := newPassphraseSource(*passEnv)()
		if perr != nil {
			return perr
		}
		signer, err = crypto.LoadFromKeystore(*keystorePath, pass)
	} else {
		signer, err = crypto.ReadPrivateKeyFile(*input)
	}
	if err != nil {
		return err
	}
	return printKey(stdout, signer)
}

// printKey shows the public half only; private keys never leave their file.
func printKey(w io.Writer, signer *crypto.Signer) error {
	pub, err := signer.PublicKey()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "algorithm: %s\n", crypto.Algorithm)
	fmt.Fprintf(w, "public key: %s\n", pub)
	fmt.Fprintf(w, "wallet: %s\n", signer.PrivateKey().PubKey().Wallet())
	return nil
}
