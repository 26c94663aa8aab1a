// Package namespace derives ledger storage addresses from family names and
// application keys.
//
// Every address is a 6 hex character prefix followed by a 64 hex character
// body. Two body layouts exist: the General policy hashes the whole key with
// SHA-512, the Segmented policy used by the ledger's settings and identity
// families hashes up to four dot separated key parts with SHA-256.
package namespace

import (
	"fmt"
	"strings"

	"github.com/kigichang/sawtk/crypto"
)

const (
	PrefixLength  = 6
	BodyLength    = 64
	AddressLength = PrefixLength + BodyLength

	segmentCount  = 4
	segmentLength = BodyLength / segmentCount
)

// emptySegment pads segmented addresses for missing key parts: the first
// 16 hex characters of SHA-256("").
const emptySegment = "e3b0c44298fc1c14"

// Reserved families of the ledger. These values are fixed by the network and
// must never be derived locally.
const (
	SettingsName   = "settings"
	SettingsPrefix = "000000"
	IdentityName   = "identity"
	IdentityPrefix = "00001d"
)

// Policy selects how the body of an address is computed.
type Policy int

const (
	General Policy = iota
	Segmented
)

func (p Policy) String() string {
	switch p {
	case General:
		return "general"
	case Segmented:
		return "segmented"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// Address computes the address of key under prefix using the policy.
func (p Policy) Address(prefix, key string) string {
	if p == Segmented {
		return SegmentedAddress(prefix, key)
	}
	return GeneralAddress(prefix, key)
}

// Prefix derives the namespace prefix of name.
func Prefix(name string) string {
	return crypto.SHA512Hex(name)[:PrefixLength]
}

// GeneralAddress appends the first 64 hex characters of SHA-512(key).
func GeneralAddress(prefix, key string) string {
	var b strings.Builder
	b.Grow(len(prefix) + BodyLength)
	b.WriteString(prefix)
	b.WriteString(crypto.SHA512Hex(key)[:BodyLength])
	return b.String()
}

// SegmentedAddress splits key on "." into at most four parts, appends the
// first 16 hex characters of SHA-256 of each part and pads the remainder
// with the empty-string hash. The fourth part keeps any further dots.
func SegmentedAddress(prefix, key string) string {
	parts := strings.SplitN(key, ".", segmentCount)

	var b strings.Builder
	b.Grow(len(prefix) + BodyLength)
	b.WriteString(prefix)
	for _, part := range parts {
		b.WriteString(crypto.SHA256Hex(part)[:segmentLength])
	}
	for i := len(parts); i < segmentCount; i++ {
		b.WriteString(emptySegment)
	}
	return b.String()
}

// IsAddress reports whether s has the shape of a full address.
func IsAddress(s string) bool {
	return len(s) == AddressLength && crypto.IsHex(s)
}

// IsPrefix reports whether s has the shape of a namespace prefix.
func IsPrefix(s string) bool {
	return len(s) == PrefixLength && crypto.IsHex(s)
}

// reserved maps both the name and the prefix of each reserved family to its
// namespace. It is initialised once and never written.
var reserved = map[string]reservedNamespace{
	SettingsName:   {name: SettingsName, prefix: SettingsPrefix},
	SettingsPrefix: {name: SettingsName, prefix: SettingsPrefix},
	IdentityName:   {name: IdentityName, prefix: IdentityPrefix},
	IdentityPrefix: {name: IdentityName, prefix: IdentityPrefix},
}

// ResolveReserved returns the canonical name and prefix for a reserved
// family given either identifier. Other inputs are derived with Prefix and
// ok is false.
func ResolveReserved(nameOrPrefix string) (name, prefix string, ok bool) {
	if ns, found := reserved[nameOrPrefix]; found {
		return ns.name, ns.prefix, true
	}
	return nameOrPrefix, Prefix(nameOrPrefix), false
}

// LedgerAddress computes the address of key in a ledger family. Reserved
// families use the segmented layout; their prefix may be given in place of
// the name. Any other value is used verbatim as the prefix.
func LedgerAddress(nameOrPrefix, key string) string {
	if ns, found := reserved[nameOrPrefix]; found {
		return SegmentedAddress(ns.prefix, key)
	}
	return SegmentedAddress(nameOrPrefix, key)
}
