package namespace

import "fmt"

// Namespace is a named address domain. Implementations are immutable.
type Namespace interface {
	fmt.Stringer
	Name() string
	Prefix() string
	Policy() Policy
	MakeAddress(key string) string
}

type namespace struct {
	name   string
	prefix string
	policy Policy
}

func (ns namespace) Name() string   { return ns.name }
func (ns namespace) Prefix() string { return ns.prefix }
func (ns namespace) Policy() Policy { return ns.policy }

func (ns namespace) MakeAddress(key string) string {
	return ns.policy.Address(ns.prefix, key)
}

func (ns namespace) String() string {
	if ns.policy == Segmented {
		return fmt.Sprintf("ledger: %s, prefix: %s", ns.name, ns.prefix)
	}
	return fmt.Sprintf("name: %s, prefix: %s", ns.name, ns.prefix)
}

type reservedNamespace struct {
	name   string
	prefix string
}

// New returns a general namespace whose prefix is derived from name.
func New(name string) Namespace {
	return namespace{name: name, prefix: Prefix(name), policy: General}
}

// Ledger resolves one of the ledger's reserved families by name or prefix
// into a segmented namespace. Unknown families fall back to New.
func Ledger(nameOrPrefix string) Namespace {
	if ns, ok := reserved[nameOrPrefix]; ok {
		return namespace{name: ns.name, prefix: ns.prefix, policy: Segmented}
	}
	return New(nameOrPrefix)
}

// Prefixes returns the prefix of each namespace in order.
func Prefixes(namespaces ...Namespace) []string {
	out := make([]string, 0, len(namespaces))
	for _, ns := range namespaces {
		out = append(out, ns.Prefix())
	}
	return out
}

// Contains reports whether address falls under one of prefixes.
func Contains(prefixes []string, address string) bool {
	for _, prefix := range prefixes {
		if len(address) >= len(prefix) && address[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}
