// Package state wraps the ledger-provided key/value context with the bulk
// read, write, delete and event operations used by transaction handlers.
// Application values are protobuf messages; every failure is reported as an
// invalid transaction so the caller rejects the whole request.
package state

import (
	"google.golang.org/protobuf/proto"

	txerrors "github.com/kigichang/sawtk/core/errors"
	"github.com/kigichang/sawtk/core/types"
)

// Write pairs an address with the message to store there.
type Write struct {
	Address string
	Message proto.Message
}

func marshal(msg proto.Message) ([]byte, error) {
	b, err := proto.MarshalOptions{Deterministic: true}.Marshal(msg)
	if err != nil {
		return nil, txerrors.Invalid(txerrors.ErrSerialization, "encode %s: %v", proto.MessageName(msg), err)
	}
	return b, nil
}

// storeError classifies a Context failure. Rejections raised by a wrapping
// Context pass through untouched.
func storeError(op string, err error) error {
	if txerrors.IsInvalidTransaction(err) {
		return err
	}
	return txerrors.Invalid(txerrors.ErrStore, "%s: %v", op, err)
}

// Read fetches the given addresses in one call.
func Read(ctx Context, addresses ...string) (*States, error) {
	entries, err := ctx.GetState(addresses)
	if err != nil {
		return nil, storeError("get state", err)
	}
	return NewStates(entries), nil
}

// ReadMessage fetches a single address and decodes it into msg.
func ReadMessage(ctx Context, address string, msg proto.Message) error {
	states, err := Read(ctx, address)
	if err != nil {
		return err
	}
	return states.Decode(address, msg)
}

// WriteMessages serializes every message before issuing a single bulk
// upsert, so an encoding failure never reaches the store.
func WriteMessages(ctx Context, writes ...Write) error {
	entries := make([]Entry, 0, len(writes))
	for _, w := range writes {
		b, err := marshal(w.Message)
		if err != nil {
			return err
		}
		entries = append(entries, Entry{Address: w.Address, Data: b})
	}
	if _, err := ctx.SetState(entries); err != nil {
		return storeError("set state", err)
	}
	return nil
}

func WriteMessage(ctx Context, address string, msg proto.Message) error {
	return WriteMessages(ctx, Write{Address: address, Message: msg})
}

// Delete removes addresses and returns those that actually existed.
func Delete(ctx Context, addresses ...string) ([]string, error) {
	deleted, err := ctx.DeleteState(addresses)
	if err != nil {
		return nil, storeError("delete state", err)
	}
	return deleted, nil
}

// DeleteOne reports whether address existed.
func DeleteOne(ctx Context, address string) (bool, error) {
	deleted, err := Delete(ctx, address)
	if err != nil {
		return false, err
	}
	for _, d := range deleted {
		if d == address {
			return true, nil
		}
	}
	return false, nil
}

// Emit records an application event. The payload is serialized the same way
// as state values.
func Emit(ctx Context, eventType string, attributes []types.Attribute, msg proto.Message) error {
	var data []byte
	if msg != nil {
		b, err := marshal(msg)
		if err != nil {
			return err
		}
		data = b
	}
	if err := ctx.AddEvent(eventType, attributes, data); err != nil {
		return storeError("add event", err)
	}
	return nil
}
