package types

import (
	"fmt"
	"unicode/utf8"

	"google.golang.org/protobuf/encoding/protowire"

	txerrors "github.com/kigichang/sawtk/core/errors"
)

// Message is implemented by every ledger wire type. Marshal produces the
// canonical proto3 encoding (fields in number order, defaults omitted) so
// signatures over serialized headers match other implementations byte for
// byte. Unmarshal merges into the receiver: scalars are overwritten and
// repeated fields are appended.
type Message interface {
	Marshal() ([]byte, error)
	Unmarshal(b []byte) error
}

type encoder struct {
	buf []byte
	err error
}

func (e *encoder) string(num protowire.Number, field, v string) {
	if v == "" {
		return
	}
	e.stringAlways(num, field, v)
}

func (e *encoder) stringAlways(num protowire.Number, field, v string) {
	if e.err != nil {
		return
	}
	if !utf8.ValidString(v) {
		e.err = fmt.Errorf("%w: field %s contains invalid UTF-8", txerrors.ErrSerialization, field)
		return
	}
	e.buf = protowire.AppendTag(e.buf, num, protowire.BytesType)
	e.buf = protowire.AppendString(e.buf, v)
}

func (e *encoder) strings(num protowire.Number, field string, vs []string) {
	for _, v := range vs {
		e.stringAlways(num, field, v)
	}
}

func (e *encoder) bytes(num protowire.Number, v []byte) {
	if len(v) == 0 {
		return
	}
	e.buf = protowire.AppendTag(e.buf, num, protowire.BytesType)
	e.buf = protowire.AppendBytes(e.buf, v)
}

func (e *encoder) varint(num protowire.Number, v uint64) {
	if v == 0 {
		return
	}
	e.buf = protowire.AppendTag(e.buf, num, protowire.VarintType)
	e.buf = protowire.AppendVarint(e.buf, v)
}

func (e *encoder) bool(num protowire.Number, v bool) {
	if !v {
		return
	}
	e.varint(num, protowire.EncodeBool(v))
}

func (e *encoder) message(num protowire.Number, field string, m Message) {
	if e.err != nil {
		return
	}
	if m == nil {
		e.err = fmt.Errorf("%w: field %s holds a nil message", txerrors.ErrSerialization, field)
		return
	}
	b, err := m.Marshal()
	if err != nil {
		e.err = err
		return
	}
	e.buf = protowire.AppendTag(e.buf, num, protowire.BytesType)
	e.buf = protowire.AppendBytes(e.buf, b)
}

// messages encodes a repeated message field. A nil element fails the
// encoding.
func messages[M interface {
	*T
	Message
}, T any](e *encoder, num protowire.Number, field string, ms []M) {
	for _, m := range ms {
		if m == nil {
			e.message(num, field, nil)
			return
		}
		e.message(num, field, m)
	}
}

func (e *encoder) result() ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	if e.buf == nil {
		return []byte{}, nil
	}
	return e.buf, nil
}

// decoder walks the fields of a single encoded message.
type decoder struct {
	msg string
	buf []byte
}

func newDecoder(msg string, b []byte) *decoder {
	return &decoder{msg: msg, buf: b}
}

func (d *decoder) more() bool {
	return len(d.buf) > 0
}

func (d *decoder) fail(n int) error {
	return fmt.Errorf("%w: decode %s: %v", txerrors.ErrMalformedInput, d.msg, protowire.ParseError(n))
}

func (d *decoder) tag() (protowire.Number, protowire.Type, error) {
	num, typ, n := protowire.ConsumeTag(d.buf)
	if n < 0 {
		return 0, 0, d.fail(n)
	}
	d.buf = d.buf[n:]
	return num, typ, nil
}

func (d *decoder) bytes() ([]byte, error) {
	v, n := protowire.ConsumeBytes(d.buf)
	if n < 0 {
		return nil, d.fail(n)
	}
	d.buf = d.buf[n:]
	return append([]byte{}, v...), nil
}

func (d *decoder) string(field string) (string, error) {
	v, n := protowire.ConsumeBytes(d.buf)
	if n < 0 {
		return "", d.fail(n)
	}
	d.buf = d.buf[n:]
	if !utf8.Valid(v) {
		return "", fmt.Errorf("%w: decode %s: field %s contains invalid UTF-8", txerrors.ErrMalformedInput, d.msg, field)
	}
	return string(v), nil
}

func (d *decoder) varint() (uint64, error) {
	v, n := protowire.ConsumeVarint(d.buf)
	if n < 0 {
		return 0, d.fail(n)
	}
	d.buf = d.buf[n:]
	return v, nil
}

func (d *decoder) message(m Message) error {
	v, n := protowire.ConsumeBytes(d.buf)
	if n < 0 {
		return d.fail(n)
	}
	d.buf = d.buf[n:]
	return m.Unmarshal(v)
}

// skip discards a field this type does not know, or one that arrived with
// an unexpected wire type.
func (d *decoder) skip(num protowire.Number, typ protowire.Type) error {
	n := protowire.ConsumeFieldValue(num, typ, d.buf)
	if n < 0 {
		return d.fail(n)
	}
	d.buf = d.buf[n:]
	return nil
}
