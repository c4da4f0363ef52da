package types

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

const (
	// ModuleName defines the module name
	ModuleName = "kvstore"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName
)

// Kind tags the type of a stored value. Each kind lives under its own key
// prefix so two kinds never alias the same slot.
type Kind byte

const (
	KindUint    Kind = 0x01
	KindInt     Kind = 0x02
	KindString  Kind = 0x03
	KindBool    Kind = 0x04
	KindBytes   Kind = 0x05
	KindAddress Kind = 0x06
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindUint:
		return "uint"
	case KindInt:
		return "int"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindBytes:
		return "bytes"
	case KindAddress:
		return "address"
	default:
		return "unknown"
	}
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k >= KindUint && k <= KindAddress
}

var (
	// WriterKey holds the current authorized writer
	WriterKey = []byte{0x00}

	// ValueKeyPrefix prefixes every typed value
	ValueKeyPrefix = []byte{0x10}
)

// Slot is the stable 32-byte digest of a domain tag plus its discriminators.
// Discriminators are length-prefixed so ("ab","c") and ("a","bc") differ.
func Slot(domain string, parts ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	var lenBuf [4]byte
	for _, p := range parts {
		binary.BigEndian.PutUint32(lenBuf[:], uint32(len(p)))
		h.Write(lenBuf[:])
		h.Write(p)
	}
	return h.Sum(nil)
}

// ValueKey returns the store key for a value of kind under domain.
func ValueKey(kind Kind, domain string, parts ...[]byte) []byte {
	slot := Slot(domain, parts...)
	key := make([]byte, 0, len(ValueKeyPrefix)+1+len(slot))
	key = append(key, ValueKeyPrefix...)
	key = append(key, byte(kind))
	return append(key, slot...)
}

// Uint64Part encodes n as a big-endian discriminator.
func Uint64Part(n uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, n)
	return bz
}

// Key addresses one value: a domain tag plus caller-supplied discriminators.
type Key struct {
	Domain string
	Parts  [][]byte
}

// NewKey builds a Key.
func NewKey(domain string, parts ...[]byte) Key {
	return Key{Domain: domain, Parts: parts}
}

// Bytes returns the store key for a value of kind addressed by k.
func (k Key) Bytes(kind Kind) []byte {
	return ValueKey(kind, k.Domain, k.Parts...)
}
