package processor

import (
	"context"

	"google.golang.org/protobuf/proto"

	txerrors "github.com/kigichang/sawtk/core/errors"
	"github.com/kigichang/sawtk/core/namespace"
	"github.com/kigichang/sawtk/core/state"
	"github.com/kigichang/sawtk/core/types"
)

// Context is the capability handed to a handler for exactly one request. It
// exposes the request metadata and the state operations, restricted to the
// processor's namespaces. It must not be retained after the handler returns.
type Context struct {
	ctx      context.Context
	Command  int32
	Request  *types.ProcessRequest
	Envelope *types.Request
	store    state.Context
}

// Context returns the caller's context.Context.
func (c *Context) Context() context.Context {
	return c.ctx
}

func (c *Context) SignerPublicKey() string {
	return c.Request.SignerPublicKey()
}

func (c *Context) BatcherPublicKey() string {
	return c.Request.BatcherPublicKey()
}

// TransactionID returns the header signature of the transaction.
func (c *Context) TransactionID() string {
	if c.Request == nil {
		return ""
	}
	return c.Request.Signature
}

func (c *Context) Read(addresses ...string) (*state.States, error) {
	return state.Read(c.store, addresses...)
}

func (c *Context) ReadMessage(address string, msg proto.Message) error {
	return state.ReadMessage(c.store, address, msg)
}

func (c *Context) Write(writes ...state.Write) error {
	return state.WriteMessages(c.store, writes...)
}

func (c *Context) WriteMessage(address string, msg proto.Message) error {
	return state.WriteMessage(c.store, address, msg)
}

func (c *Context) Delete(addresses ...string) ([]string, error) {
	return state.Delete(c.store, addresses...)
}

func (c *Context) DeleteOne(address string) (bool, error) {
	return state.DeleteOne(c.store, address)
}

func (c *Context) Emit(eventType string, attributes []types.Attribute, msg proto.Message) error {
	return state.Emit(c.store, eventType, attributes, msg)
}

// scopedStore rejects any address outside the declared namespace prefixes
// before it reaches the ledger. An empty prefix list allows everything.
type scopedStore struct {
	prefixes []string
	next     state.Context
}

func (s scopedStore) check(addresses []string) error {
	if len(s.prefixes) == 0 {
		return nil
	}
	for _, address := range addresses {
		if !namespace.Contains(s.prefixes, address) {
			return txerrors.Invalid(txerrors.ErrValidationFailed, "address %s is outside namespaces %v", address, s.prefixes)
		}
	}
	return nil
}

func (s scopedStore) GetState(addresses []string) (map[string][]byte, error) {
	if err := s.check(addresses); err != nil {
		return nil, err
	}
	return s.next.GetState(addresses)
}

func (s scopedStore) SetState(entries []state.Entry) ([]string, error) {
	addresses := make([]string, 0, len(entries))
	for _, e := range entries {
		addresses = append(addresses, e.Address)
	}
	if err := s.check(addresses); err != nil {
		return nil, err
	}
	return s.next.SetState(entries)
}

func (s scopedStore) DeleteState(addresses []string) ([]string, error) {
	if err := s.check(addresses); err != nil {
		return nil, err
	}
	return s.next.DeleteState(addresses)
}

func (s scopedStore) AddEvent(eventType string, attributes []types.Attribute, data []byte) error {
	return s.next.AddEvent(eventType, attributes, data)
}
