package tx

import (
	"fmt"
	"slices"

	txerrors "github.com/kigichang/sawtk/core/errors"
	"github.com/kigichang/sawtk/core/types"
	"github.com/kigichang/sawtk/crypto"
)

// VerifyTransaction checks the header signature and the payload digest.
func VerifyTransaction(t *types.Transaction) error {
	if t == nil {
		return fmt.Errorf("%w: nil transaction", txerrors.ErrMalformedInput)
	}
	header, err := t.DecodeHeader()
	if err != nil {
		return err
	}
	if !crypto.Verify(header.SignerPublicKey, t.HeaderSignature, t.Header) {
		return fmt.Errorf("%w: transaction %s: bad header signature", txerrors.ErrValidationFailed, short(t.HeaderSignature))
	}
	if got := crypto.SHA512BytesHex(t.Payload); got != header.PayloadSha512 {
		return fmt.Errorf("%w: transaction %s: payload digest mismatch", txerrors.ErrValidationFailed, short(t.HeaderSignature))
	}
	return nil
}

// VerifyBatch checks the batch signature, that the header lists the carried
// transactions in order, and every transaction with its batcher key.
func VerifyBatch(b *types.Batch) error {
	if b == nil {
		return fmt.Errorf("%w: nil batch", txerrors.ErrMalformedInput)
	}
	header, err := b.DecodeHeader()
	if err != nil {
		return err
	}
	if !crypto.Verify(header.SignerPublicKey, b.HeaderSignature, b.Header) {
		return fmt.Errorf("%w: batch %s: bad header signature", txerrors.ErrValidationFailed, short(b.HeaderSignature))
	}
	ids := make([]string, 0, len(b.Transactions))
	for _, t := range b.Transactions {
		if t == nil {
			return fmt.Errorf("%w: batch %s: nil transaction", txerrors.ErrMalformedInput, short(b.HeaderSignature))
		}
		ids = append(ids, t.ID())
	}
	if !slices.Equal(ids, header.TransactionIDs) {
		return fmt.Errorf("%w: batch %s: header does not match transactions", txerrors.ErrValidationFailed, short(b.HeaderSignature))
	}
	for _, t := range b.Transactions {
		if err := VerifyTransaction(t); err != nil {
			return err
		}
		txHeader, err := t.DecodeHeader()
		if err != nil {
			return err
		}
		if txHeader.BatcherPublicKey != header.SignerPublicKey {
			return fmt.Errorf("%w: transaction %s names batcher %s", txerrors.ErrValidationFailed, short(t.HeaderSignature), short(txHeader.BatcherPublicKey))
		}
	}
	return nil
}

func short(id string) string {
	if len(id) > 16 {
		return id[:16]
	}
	return id
}
