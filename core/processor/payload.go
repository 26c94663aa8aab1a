package processor

import (
	"google.golang.org/protobuf/proto"

	txerrors "github.com/kigichang/sawtk/core/errors"
)

// Payload is the typed body of a command. Unmarshal merges the raw payload
// bytes into the receiver; Validate runs the command's own checks before
// the handler sees it.
type Payload interface {
	Unmarshal(b []byte) error
	Validate() error
}

// HandlerFunc applies one command. A returned error rejects the transaction;
// its message reaches the ledger unchanged.
type HandlerFunc func(ctx *Context, payload Payload) error

// Handle adapts a handler that expects a concrete payload type. A request
// with an empty payload carries the *types.Request envelope instead, which
// includes a message whose fields are all defaults; such requests are
// rejected as malformed unless P is *types.Request.
func Handle[P Payload](fn func(ctx *Context, payload P) error) HandlerFunc {
	return func(ctx *Context, payload Payload) error {
		typed, ok := payload.(P)
		if !ok {
			return txerrors.Invalid(txerrors.ErrMalformedInput, "command %d: unexpected payload type %T", ctx.Command, payload)
		}
		return fn(ctx, typed)
	}
}

// ProtoPayload adapts a generated protobuf message into a Payload.
type ProtoPayload[T proto.Message] struct {
	Message T
	check   func(T) error
}

// NewProtoPayload wraps msg; check may be nil when the message needs no
// validation.
func NewProtoPayload[T proto.Message](msg T, check func(T) error) *ProtoPayload[T] {
	return &ProtoPayload[T]{Message: msg, check: check}
}

// ProtoFactory returns a constructor suitable for Register.
func ProtoFactory[T proto.Message](newMessage func() T, check func(T) error) func() Payload {
	return func() Payload {
		return NewProtoPayload(newMessage(), check)
	}
}

func (p *ProtoPayload[T]) Unmarshal(b []byte) error {
	return proto.UnmarshalOptions{Merge: true}.Unmarshal(b, p.Message)
}

func (p *ProtoPayload[T]) Validate() error {
	if p.check == nil {
		return nil
	}
	return p.check(p.Message)
}
