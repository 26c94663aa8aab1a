package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/kigichang/sawtk/config"
	"github.com/kigichang/sawtk/core/types"
	"github.com/kigichang/sawtk/crypto"
	"github.com/kigichang/sawtk/observability/logging"
	"github.com/kigichang/sawtk/sdk/tx"
)

const (
	defaultConfig = "./sawtk.toml"
	logMaxSizeMB  = 10
	logMaxBackups = 3
)

func runBatch(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet(batchCommand, flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", defaultConfig, "Path to the TOML or YAML config file")
	payloadHex := fs.String("payload-hex", "", "Hex encoded transaction payload")
	inputs := fs.String("inputs", "", "Comma separated input addresses or prefixes (default: configured namespaces)")
	outputs := fs.String("outputs", "", "Comma separated output addresses or prefixes (default: configured namespaces)")
	deps := fs.String("deps", "", "Comma separated transaction IDs this transaction depends on")
	out := fs.String("out", "", "Write the raw batch list bytes to this file instead of hex to stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	logger := logging.Setup(cfg.Service, cfg.Environment,
		logging.WithWriter(stderr),
		logging.WithLevel(cfg.LogLevel),
		logging.WithFile(cfg.LogFile, logMaxSizeMB, logMaxBackups),
	)
	if cfg.FamilyName == "" {
		return errors.New("config does not name a transaction family (FamilyName)")
	}

	payload, err := crypto.HexToBytes(*payloadHex)
	if err != nil {
		return fmt.Errorf("payload: %w", err)
	}
	signer, err := cfg.Signer(newPassphraseSource(cfg.KeystorePassEnv))
	if err != nil {
		return err
	}

	ins, outs := splitList(*inputs), splitList(*outputs)
	if len(ins) == 0 {
		ins = cfg.Prefixes()
	}
	if len(outs) == 0 {
		outs = cfg.Prefixes()
	}

	raw, batchID, pub, err := buildBatchList(signer, tx.NewRawPayload(cfg.FamilyName, cfg.FamilyVersion, payload, ins, outs), splitList(*deps))
	if err != nil {
		return err
	}
	logger.Info("batch built",
		slog.String("family", cfg.FamilyName),
		slog.String("public_key", pub),
		slog.String("batch_id", batchID),
	)

	if *out != "" {
		if err := os.WriteFile(*out, raw, 0o644); err != nil {
			return fmt.Errorf("write batch list: %w", err)
		}
		return nil
	}
	fmt.Fprintln(stdout, crypto.BytesToHex(raw))
	return nil
}

// buildBatchList signs one transaction and wraps it in a batch signed by the
// same key. It returns the encoded list, the batch ID and the signing key.
func buildBatchList(signer *crypto.Signer, payload *tx.Payload, deps []string) ([]byte, string, string, error) {
	builder, err := tx.NewBuilder(signer)
	if err != nil {
		return nil, "", "", err
	}
	batcher, err := tx.NewBatcher(signer)
	if err != nil {
		return nil, "", "", err
	}
	batcherKey, err := batcher.PublicKey()
	if err != nil {
		return nil, "", "", err
	}
	txn, err := builder.Build(payload, batcherKey, deps)
	if err != nil {
		return nil, "", "", err
	}
	batch, err := batcher.Build([]*types.Transaction{txn})
	if err != nil {
		return nil, "", "", err
	}
	raw, err := tx.ToBatchList(batch).Marshal()
	if err != nil {
		return nil, "", "", err
	}
	return raw, batch.ID(), batcherKey, nil
}
