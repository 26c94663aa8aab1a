package types

import "google.golang.org/protobuf/encoding/protowire"

// TransactionHeader is the signed part of a transaction. Field numbers
// follow the ledger's transaction.proto; number 8 is unused.
type TransactionHeader struct {
	BatcherPublicKey string
	Dependencies     []string
	FamilyName       string
	FamilyVersion    string
	Inputs           []string
	Nonce            string
	Outputs          []string
	PayloadSha512    string
	SignerPublicKey  string
}

func (h *TransactionHeader) Marshal() ([]byte, error) {
	e := &encoder{}
	e.string(1, "batcher_public_key", h.BatcherPublicKey)
	e.strings(2, "dependencies", h.Dependencies)
	e.string(3, "family_name", h.FamilyName)
	e.string(4, "family_version", h.FamilyVersion)
	e.strings(5, "inputs", h.Inputs)
	e.string(6, "nonce", h.Nonce)
	e.strings(7, "outputs", h.Outputs)
	e.string(9, "payload_sha512", h.PayloadSha512)
	e.string(10, "signer_public_key", h.SignerPublicKey)
	return e.result()
}

func (h *TransactionHeader) Unmarshal(b []byte) error {
	d := newDecoder("TransactionHeader", b)
	for d.more() {
		num, typ, err := d.tag()
		if err != nil {
			return err
		}
		if typ != protowire.BytesType {
			if err := d.skip(num, typ); err != nil {
				return err
			}
			continue
		}
		var v string
		switch num {
		case 1:
			v, err = d.string("batcher_public_key")
			h.BatcherPublicKey = v
		case 2:
			v, err = d.string("dependencies")
			h.Dependencies = append(h.Dependencies, v)
		case 3:
			v, err = d.string("family_name")
			h.FamilyName = v
		case 4:
			v, err = d.string("family_version")
			h.FamilyVersion = v
		case 5:
			v, err = d.string("inputs")
			h.Inputs = append(h.Inputs, v)
		case 6:
			v, err = d.string("nonce")
			h.Nonce = v
		case 7:
			v, err = d.string("outputs")
			h.Outputs = append(h.Outputs, v)
		case 9:
			v, err = d.string("payload_sha512")
			h.PayloadSha512 = v
		case 10:
			v, err = d.string("signer_public_key")
			h.SignerPublicKey = v
		default:
			err = d.skip(num, typ)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Transaction carries the serialized header, the signature over exactly
// those bytes and the raw payload. HeaderSignature doubles as the
// transaction ID.
type Transaction struct {
	Header          []byte
	HeaderSignature string
	Payload         []byte
}

func (tx *Transaction) Marshal() ([]byte, error) {
	e := &encoder{}
	e.bytes(1, tx.Header)
	e.string(2, "header_signature", tx.HeaderSignature)
	e.bytes(3, tx.Payload)
	return e.result()
}

func (tx *Transaction) Unmarshal(b []byte) error {
	d := newDecoder("Transaction", b)
	for d.more() {
		num, typ, err := d.tag()
		if err != nil {
			return err
		}
		switch {
		case num == 1 && typ == protowire.BytesType:
			tx.Header, err = d.bytes()
		case num == 2 && typ == protowire.BytesType:
			tx.HeaderSignature, err = d.string("header_signature")
		case num == 3 && typ == protowire.BytesType:
			tx.Payload, err = d.bytes()
		default:
			err = d.skip(num, typ)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// ID returns the transaction identifier.
func (tx *Transaction) ID() string {
	return tx.HeaderSignature
}

// DecodeHeader parses the embedded header bytes.
func (tx *Transaction) DecodeHeader() (*TransactionHeader, error) {
	h := &TransactionHeader{}
	if err := h.Unmarshal(tx.Header); err != nil {
		return nil, err
	}
	return h, nil
}

type TransactionList struct {
	Transactions []*Transaction
}

func (l *TransactionList) Marshal() ([]byte, error) {
	e := &encoder{}
	messages(e, 1, "transactions", l.Transactions)
	return e.result()
}

func (l *TransactionList) Unmarshal(b []byte) error {
	d := newDecoder("TransactionList", b)
	for d.more() {
		num, typ, err := d.tag()
		if err != nil {
			return err
		}
		if num == 1 && typ == protowire.BytesType {
			tx := &Transaction{}
			if err := d.message(tx); err != nil {
				return err
			}
			l.Transactions = append(l.Transactions, tx)
			continue
		}
		if err := d.skip(num, typ); err != nil {
			return err
		}
	}
	return nil
}
