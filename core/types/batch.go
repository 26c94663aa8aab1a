package types

import "google.golang.org/protobuf/encoding/protowire"

// BatchHeader lists the contained transaction IDs in submission order.
type BatchHeader struct {
	SignerPublicKey string
	TransactionIDs  []string
}

func (h *BatchHeader) Marshal() ([]byte, error) {
	e := &encoder{}
	e.string(1, "signer_public_key", h.SignerPublicKey)
	e.strings(2, "transaction_ids", h.TransactionIDs)
	return e.result()
}

func (h *BatchHeader) Unmarshal(b []byte) error {
	d := newDecoder("BatchHeader", b)
	for d.more() {
		num, typ, err := d.tag()
		if err != nil {
			return err
		}
		switch {
		case num == 1 && typ == protowire.BytesType:
			h.SignerPublicKey, err = d.string("signer_public_key")
		case num == 2 && typ == protowire.BytesType:
			var id string
			if id, err = d.string("transaction_ids"); err == nil {
				h.TransactionIDs = append(h.TransactionIDs, id)
			}
		default:
			err = d.skip(num, typ)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Batch is the atomic submission unit.
type Batch struct {
	Header          []byte
	HeaderSignature string
	Transactions    []*Transaction
	Trace           bool
}

func (b *Batch) Marshal() ([]byte, error) {
	e := &encoder{}
	e.bytes(1, b.Header)
	e.string(2, "header_signature", b.HeaderSignature)
	messages(e, 3, "transactions", b.Transactions)
	e.bool(4, b.Trace)
	return e.result()
}

func (b *Batch) Unmarshal(buf []byte) error {
	d := newDecoder("Batch", buf)
	for d.more() {
		num, typ, err := d.tag()
		if err != nil {
			return err
		}
		switch {
		case num == 1 && typ == protowire.BytesType:
			b.Header, err = d.bytes()
		case num == 2 && typ == protowire.BytesType:
			b.HeaderSignature, err = d.string("header_signature")
		case num == 3 && typ == protowire.BytesType:
			tx := &Transaction{}
			if err = d.message(tx); err == nil {
				b.Transactions = append(b.Transactions, tx)
			}
		case num == 4 && typ == protowire.VarintType:
			var v uint64
			if v, err = d.varint(); err == nil {
				b.Trace = protowire.DecodeBool(v)
			}
		default:
			err = d.skip(num, typ)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// ID returns the batch identifier.
func (b *Batch) ID() string {
	return b.HeaderSignature
}

// DecodeHeader parses the embedded header bytes.
func (b *Batch) DecodeHeader() (*BatchHeader, error) {
	h := &BatchHeader{}
	if err := h.Unmarshal(b.Header); err != nil {
		return nil, err
	}
	return h, nil
}

type BatchList struct {
	Batches []*Batch
}

func (l *BatchList) Marshal() ([]byte, error) {
	e := &encoder{}
	messages(e, 1, "batches", l.Batches)
	return e.result()
}

func (l *BatchList) Unmarshal(buf []byte) error {
	d := newDecoder("BatchList", buf)
	for d.more() {
		num, typ, err := d.tag()
		if err != nil {
			return err
		}
		if num == 1 && typ == protowire.BytesType {
			b := &Batch{}
			if err := d.message(b); err != nil {
				return err
			}
			l.Batches = append(l.Batches, b)
			continue
		}
		if err := d.skip(num, typ); err != nil {
			return err
		}
	}
	return nil
}
