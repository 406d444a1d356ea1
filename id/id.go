// Package id defines prefix-qualified identity types for conductor
// entities. IDs are K-sortable (UUIDv7-based), globally unique, and
// URL-safe in the format "prefix_suffix".
//
// Job handles themselves are assigned by the remote scheduling service
// and are opaque; the IDs here identify conductor-side entities such as
// invocations and persisted link records, so log lines and link rows
// written by different components of one Execute call can be correlated.
package id

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Prefix identifies the entity type encoded in an ID.
type Prefix string

// Prefix constants for all conductor entity types.
const (
	// PrefixInvocation tags IDs for one Execute/Submit invocation.
	PrefixInvocation Prefix = "inv"
	// PrefixLink tags IDs for persisted console-link records.
	PrefixLink Prefix = "lnk"
)

// ID is a prefix-qualified, globally unique, sortable identifier in the
// format "prefix_suffix". The suffix is a UUIDv7 string.
type ID struct {
	prefix Prefix
	suffix uuid.UUID
	valid  bool
}

// Nil is the zero-value ID.
var Nil ID

// New generates a new globally unique ID with the given prefix.
// Generation falls back to a random UUIDv4 if the system clock is
// unusable for UUIDv7 (vanishingly rare).
func New(prefix Prefix) ID {
	u, err := uuid.NewV7()
	if err != nil {
		u = uuid.New()
	}
	return ID{prefix: prefix, suffix: u, valid: true}
}

// Parse parses an ID string (e.g. "inv_0192d5bd-6aa1-7cf0-baf3-6a2f2e6c2b41")
// into an ID. Returns an error if the string is not valid.
func Parse(s string) (ID, error) {
	prefix, rest, ok := strings.Cut(s, "_")
	if !ok || prefix == "" {
		return Nil, fmt.Errorf("id: parse %q: missing prefix", s)
	}

	u, err := uuid.Parse(rest)
	if err != nil {
		return Nil, fmt.Errorf("id: parse %q: %w", s, err)
	}

	return ID{prefix: Prefix(prefix), suffix: u, valid: true}, nil
}

// ParseWithPrefix parses an ID string and validates that its prefix
// matches the expected value.
func ParseWithPrefix(s string, expected Prefix) (ID, error) {
	parsed, err := Parse(s)
	if err != nil {
		return Nil, err
	}

	if parsed.prefix != expected {
		return Nil, fmt.Errorf("id: expected prefix %q, got %q", expected, parsed.prefix)
	}

	return parsed, nil
}

// MustParse is like Parse but panics on error. Use for hardcoded ID values.
func MustParse(s string) ID {
	parsed, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("id: must parse %q: %v", s, err))
	}

	return parsed
}

// String returns the full string representation (prefix_suffix).
// Returns an empty string for the Nil ID.
func (i ID) String() string {
	if !i.valid {
		return ""
	}
	return string(i.prefix) + "_" + i.suffix.String()
}

// Prefix returns the ID's prefix, or "" for the Nil ID.
func (i ID) Prefix() Prefix {
	if !i.valid {
		return ""
	}
	return i.prefix
}

// IsNil reports whether the ID is the zero value.
func (i ID) IsNil() bool { return !i.valid }

// MarshalText implements encoding.TextMarshaler.
func (i ID) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *ID) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*i = Nil
		return nil
	}

	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}

	*i = parsed
	return nil
}

// InvocationID identifies one Execute/Submit invocation (prefix: "inv").
type InvocationID = ID

// LinkID identifies a persisted console-link record (prefix: "lnk").
type LinkID = ID

// NewInvocationID generates a new unique invocation ID.
func NewInvocationID() ID { return New(PrefixInvocation) }

// NewLinkID generates a new unique link record ID.
func NewLinkID() ID { return New(PrefixLink) }

// ParseInvocationID parses a string and validates the "inv" prefix.
func ParseInvocationID(s string) (ID, error) { return ParseWithPrefix(s, PrefixInvocation) }

// ParseLinkID parses a string and validates the "lnk" prefix.
func ParseLinkID(s string) (ID, error) { return ParseWithPrefix(s, PrefixLink) }
