package types

import "google.golang.org/protobuf/encoding/protowire"

// ProcessRequest is what a ledger node hands a transaction processor for a
// single transaction: the decoded header, the raw payload and the header
// signature.
type ProcessRequest struct {
	Header    *TransactionHeader
	Payload   []byte
	Signature string
	ContextID string
}

func (r *ProcessRequest) Marshal() ([]byte, error) {
	e := &encoder{}
	if r.Header != nil {
		e.message(1, "header", r.Header)
	}
	e.bytes(2, r.Payload)
	e.string(3, "signature", r.Signature)
	e.string(4, "context_id", r.ContextID)
	return e.result()
}

func (r *ProcessRequest) Unmarshal(b []byte) error {
	d := newDecoder("ProcessRequest", b)
	for d.more() {
		num, typ, err := d.tag()
		if err != nil {
			return err
		}
		switch {
		case num == 1 && typ == protowire.BytesType:
			if r.Header == nil {
				r.Header = &TransactionHeader{}
			}
			err = d.message(r.Header)
		case num == 2 && typ == protowire.BytesType:
			r.Payload, err = d.bytes()
		case num == 3 && typ == protowire.BytesType:
			r.Signature, err = d.string("signature")
		case num == 4 && typ == protowire.BytesType:
			r.ContextID, err = d.string("context_id")
		default:
			err = d.skip(num, typ)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// SignerPublicKey returns the transaction signer, or "" without a header.
func (r *ProcessRequest) SignerPublicKey() string {
	if r == nil || r.Header == nil {
		return ""
	}
	return r.Header.SignerPublicKey
}

// BatcherPublicKey returns the batch signer, or "" without a header.
func (r *ProcessRequest) BatcherPublicKey() string {
	if r == nil || r.Header == nil {
		return ""
	}
	return r.Header.BatcherPublicKey
}

// Request is the application command envelope carried as a transaction
// payload: a command code plus the command's own encoded body. Commands
// without a body use the envelope itself as their request.
type Request struct {
	Command int32
	Payload []byte
}

func (r *Request) Marshal() ([]byte, error) {
	e := &encoder{}
	// int32 values are sign extended to 64 bits on the wire.
	e.varint(1, uint64(int64(r.Command)))
	e.bytes(2, r.Payload)
	return e.result()
}

func (r *Request) Unmarshal(b []byte) error {
	d := newDecoder("Request", b)
	for d.more() {
		num, typ, err := d.tag()
		if err != nil {
			return err
		}
		switch {
		case num == 1 && typ == protowire.VarintType:
			var v uint64
			if v, err = d.varint(); err == nil {
				r.Command = int32(v)
			}
		case num == 2 && typ == protowire.BytesType:
			r.Payload, err = d.bytes()
		default:
			err = d.skip(num, typ)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Validate accepts every envelope; commands needing checks register their
// own payload type.
func (r *Request) Validate() error {
	return nil
}
