package state

import "github.com/kigichang/sawtk/core/types"

// Entry is one address and its serialized value.
type Entry struct {
	Address string
	Data    []byte
}

// Context is the key/value view a ledger node provides for the duration of
// one transaction. Addresses absent from the store are omitted from
// GetState results rather than reported as errors.
type Context interface {
	GetState(addresses []string) (map[string][]byte, error)
	// SetState upserts all entries or none; it returns the addresses set.
	SetState(entries []Entry) ([]string, error)
	// DeleteState returns the addresses that existed and were removed.
	DeleteState(addresses []string) ([]string, error)
	AddEvent(eventType string, attributes []types.Attribute, data []byte) error
}
