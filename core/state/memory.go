package state

import (
	"sort"
	"sync"

	"github.com/kigichang/sawtk/core/types"
)

// MemoryContext is an in-memory Context for tests and local dry runs of
// handlers. It keeps no data beyond the process lifetime. The Fail* hooks,
// when set, make the matching operation return that error without touching
// the data.
type MemoryContext struct {
	mu     sync.RWMutex
	data   map[string][]byte
	events []types.Event

	FailGet    error
	FailSet    error
	FailDelete error
	FailEvent  error
}

func NewMemoryContext() *MemoryContext {
	return &MemoryContext{
		data: make(map[string][]byte),
	}
}

func (m *MemoryContext) GetState(addresses []string) (map[string][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailGet != nil {
		return nil, m.FailGet
	}
	out := make(map[string][]byte, len(addresses))
	for _, address := range addresses {
		if v, ok := m.data[address]; ok {
			out[address] = append([]byte{}, v...)
		}
	}
	return out, nil
}

func (m *MemoryContext) SetState(entries []Entry) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSet != nil {
		return nil, m.FailSet
	}
	set := make([]string, 0, len(entries))
	for _, e := range entries {
		m.data[e.Address] = append([]byte{}, e.Data...)
		set = append(set, e.Address)
	}
	return set, nil
}

func (m *MemoryContext) DeleteState(addresses []string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailDelete != nil {
		return nil, m.FailDelete
	}
	deleted := make([]string, 0, len(addresses))
	for _, address := range addresses {
		if _, ok := m.data[address]; ok {
			delete(m.data, address)
			deleted = append(deleted, address)
		}
	}
	return deleted, nil
}

func (m *MemoryContext) AddEvent(eventType string, attributes []types.Attribute, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailEvent != nil {
		return m.FailEvent
	}
	m.events = append(m.events, types.Event{
		EventType:  eventType,
		Attributes: append([]types.Attribute{}, attributes...),
		Data:       append([]byte{}, data...),
	})
	return nil
}

// Get returns the raw value stored at address.
func (m *MemoryContext) Get(address string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[address]
	return v, ok
}

// Put stores a raw value, bypassing the failure hooks.
func (m *MemoryContext) Put(address string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[address] = append([]byte{}, data...)
}

// Addresses returns every stored address in sorted order.
func (m *MemoryContext) Addresses() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.data))
	for address := range m.data {
		out = append(out, address)
	}
	sort.Strings(out)
	return out
}

// Events returns a copy of the recorded events in emission order.
func (m *MemoryContext) Events() []types.Event {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]types.Event{}, m.events...)
}
