package tx

import (
	"errors"
	"fmt"

	txerrors "github.com/kigichang/sawtk/core/errors"
	"github.com/kigichang/sawtk/core/types"
	"github.com/kigichang/sawtk/crypto"
)

// ErrMissingSigner indicates that no signing key was supplied.
var ErrMissingSigner = errors.New("tx sdk: signer required")

// ErrMissingPayload indicates that no payload was supplied.
var ErrMissingPayload = errors.New("tx sdk: payload required")

// Builder signs transactions with one key.
type Builder struct {
	signer *crypto.Signer
}

func NewBuilder(signer *crypto.Signer) (*Builder, error) {
	if signer == nil {
		return nil, ErrMissingSigner
	}
	return &Builder{signer: signer}, nil
}

// PublicKey returns the hex public key that signs transaction headers.
func (b *Builder) PublicKey() (string, error) {
	return b.signer.PublicKey()
}

// Header builds the header Build would sign. An empty batcherPublicKey
// means the transaction signer also signs the batch.
func (b *Builder) Header(p *Payload, batcherPublicKey string, dependencies []string) (*types.TransactionHeader, error) {
	if p == nil {
		return nil, ErrMissingPayload
	}
	signerPublicKey, err := b.signer.PublicKey()
	if err != nil {
		return nil, err
	}
	if batcherPublicKey == "" {
		batcherPublicKey = signerPublicKey
	}
	return p.Header(batcherPublicKey, signerPublicKey, dependencies), nil
}

// Build serializes a fresh header, signs exactly those bytes and packages
// them with the raw payload. Nothing is returned on failure.
func (b *Builder) Build(p *Payload, batcherPublicKey string, dependencies []string) (*types.Transaction, error) {
	header, err := b.Header(p, batcherPublicKey, dependencies)
	if err != nil {
		return nil, err
	}
	headerBytes, err := header.Marshal()
	if err != nil {
		return nil, fmt.Errorf("marshal transaction header: %w", err)
	}
	signature, err := b.signer.Sign(headerBytes)
	if err != nil {
		return nil, fmt.Errorf("sign transaction header: %w", err)
	}
	return &types.Transaction{
		Header:          headerBytes,
		HeaderSignature: signature,
		Payload:         p.Bytes(),
	}, nil
}

// Batcher signs batch headers with one key.
type Batcher struct {
	signer *crypto.Signer
}

func NewBatcher(signer *crypto.Signer) (*Batcher, error) {
	if signer == nil {
		return nil, ErrMissingSigner
	}
	return &Batcher{signer: signer}, nil
}

// PublicKey returns the hex public key transactions must name as their
// batcher.
func (b *Batcher) PublicKey() (string, error) {
	return b.signer.PublicKey()
}

func (b *Batcher) String() string {
	pub, err := b.signer.PublicKey()
	if err != nil {
		return fmt.Sprintf("batcher: %v", err)
	}
	return "batcher: " + pub
}

// Build groups txs into a signed batch. The header lists transaction IDs in
// exactly the order given.
func (b *Batcher) Build(txs []*types.Transaction) (*types.Batch, error) {
	signerPublicKey, err := b.signer.PublicKey()
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(txs))
	for i, t := range txs {
		if t == nil || t.HeaderSignature == "" {
			return nil, fmt.Errorf("%w: transaction %d is not signed", txerrors.ErrMalformedInput, i)
		}
		ids = append(ids, t.ID())
	}
	header := &types.BatchHeader{
		SignerPublicKey: signerPublicKey,
		TransactionIDs:  ids,
	}
	headerBytes, err := header.Marshal()
	if err != nil {
		return nil, fmt.Errorf("marshal batch header: %w", err)
	}
	signature, err := b.signer.Sign(headerBytes)
	if err != nil {
		return nil, fmt.Errorf("sign batch header: %w", err)
	}
	return &types.Batch{
		Header:          headerBytes,
		HeaderSignature: signature,
		Transactions:    append([]*types.Transaction{}, txs...),
	}, nil
}

// ToBatchList aggregates batches for submission. It does not check that the
// batches are consistent with each other.
func ToBatchList(batches ...*types.Batch) *types.BatchList {
	return &types.BatchList{Batches: append([]*types.Batch{}, batches...)}
}

// TransactionIDs reads the transaction IDs back out of a batch header.
func TransactionIDs(batch *types.Batch) ([]string, error) {
	if batch == nil {
		return nil, fmt.Errorf("%w: nil batch", txerrors.ErrMalformedInput)
	}
	header, err := batch.DecodeHeader()
	if err != nil {
		return nil, err
	}
	return header.TransactionIDs, nil
}
