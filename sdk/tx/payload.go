// Package tx builds, signs and checks ledger transactions and batches on the
// client side. Nothing here talks to the network; callers submit the
// resulting BatchList bytes themselves.
package tx

import (
	"fmt"
	"slices"

	"google.golang.org/protobuf/proto"

	txerrors "github.com/kigichang/sawtk/core/errors"
	"github.com/kigichang/sawtk/core/types"
	"github.com/kigichang/sawtk/crypto"
)

// Payload is a serialized application message together with the family it
// targets and the addresses the transaction may read and write. Inputs and
// outputs are addresses or address prefixes computed by the caller.
type Payload struct {
	familyName    string
	familyVersion string
	bytes         []byte
	inputs        []string
	outputs       []string
}

// NewPayload serializes msg deterministically.
func NewPayload(familyName, familyVersion string, msg proto.Message, inputs, outputs []string) (*Payload, error) {
	if msg == nil {
		return nil, fmt.Errorf("%w: payload message required", txerrors.ErrSerialization)
	}
	raw, err := proto.MarshalOptions{Deterministic: true}.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("%w: encode %s: %v", txerrors.ErrSerialization, proto.MessageName(msg), err)
	}
	return NewRawPayload(familyName, familyVersion, raw, inputs, outputs), nil
}

// NewCommandPayload wraps msg in the command envelope understood by the
// processor package. A nil msg yields an envelope without a body.
func NewCommandPayload(familyName, familyVersion string, command int32, msg proto.Message, inputs, outputs []string) (*Payload, error) {
	envelope := &types.Request{Command: command}
	if msg != nil {
		body, err := proto.MarshalOptions{Deterministic: true}.Marshal(msg)
		if err != nil {
			return nil, fmt.Errorf("%w: encode %s: %v", txerrors.ErrSerialization, proto.MessageName(msg), err)
		}
		envelope.Payload = body
	}
	raw, err := envelope.Marshal()
	if err != nil {
		return nil, err
	}
	return NewRawPayload(familyName, familyVersion, raw, inputs, outputs), nil
}

// NewRawPayload uses already serialized bytes as the payload.
func NewRawPayload(familyName, familyVersion string, raw []byte, inputs, outputs []string) *Payload {
	return &Payload{
		familyName:    familyName,
		familyVersion: familyVersion,
		bytes:         slices.Clone(raw),
		inputs:        slices.Clone(inputs),
		outputs:       slices.Clone(outputs),
	}
}

func (p *Payload) FamilyName() string    { return p.familyName }
func (p *Payload) FamilyVersion() string { return p.familyVersion }
func (p *Payload) Bytes() []byte         { return slices.Clone(p.bytes) }
func (p *Payload) Inputs() []string      { return slices.Clone(p.inputs) }
func (p *Payload) Outputs() []string     { return slices.Clone(p.outputs) }

// SHA512 returns the hex digest recorded in transaction headers.
func (p *Payload) SHA512() string {
	return crypto.SHA512BytesHex(p.bytes)
}

// Header builds a fresh transaction header for the payload. Every call draws
// a new nonce, so two headers for the same payload never serialize equally.
func (p *Payload) Header(batcherPublicKey, signerPublicKey string, dependencies []string) *types.TransactionHeader {
	return &types.TransactionHeader{
		BatcherPublicKey: batcherPublicKey,
		Dependencies:     slices.Clone(dependencies),
		FamilyName:       p.familyName,
		FamilyVersion:    p.familyVersion,
		Inputs:           slices.Clone(p.inputs),
		Nonce:            crypto.Nonce(),
		Outputs:          slices.Clone(p.outputs),
		PayloadSha512:    p.SHA512(),
		SignerPublicKey:  signerPublicKey,
	}
}
