package state

import (
	"sort"

	"google.golang.org/protobuf/proto"

	txerrors "github.com/kigichang/sawtk/core/errors"
)

// States is a read-only snapshot of the entries fetched for a request.
type States struct {
	data map[string][]byte
}

// NewStates wraps entries returned by a Context.
func NewStates(entries map[string][]byte) *States {
	if entries == nil {
		entries = map[string][]byte{}
	}
	return &States{data: entries}
}

func (s *States) Contains(address string) bool {
	_, ok := s.data[address]
	return ok
}

// Bytes returns the raw value stored at address.
func (s *States) Bytes(address string) ([]byte, bool) {
	b, ok := s.data[address]
	return b, ok
}

func (s *States) Len() int {
	return len(s.data)
}

// Addresses returns the fetched addresses in sorted order.
func (s *States) Addresses() []string {
	out := make([]string, 0, len(s.data))
	for address := range s.data {
		out = append(out, address)
	}
	sort.Strings(out)
	return out
}

// Decode merges the value at address into msg. A missing address fails with
// ErrNotFound, an unparsable value with ErrMalformedInput.
func (s *States) Decode(address string, msg proto.Message) error {
	b, ok := s.data[address]
	if !ok {
		return txerrors.Invalid(txerrors.ErrNotFound, "%s not found", address)
	}
	if err := (proto.UnmarshalOptions{Merge: true}).Unmarshal(b, msg); err != nil {
		return txerrors.Invalid(txerrors.ErrMalformedInput, "decode %s: %v", address, err)
	}
	return nil
}
