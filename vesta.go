// vesta.go: Typed configuration store with strict per-key validation
//
// Vesta is the shared configuration layer used by a database server and
// its supervisor daemon. A host declares the keys it understands, each
// with an expected value type, and populates them from configuration
// files, environment variables or command-line flags. Every write goes
// through the same validation gate: a value that does not match the
// declared type is rejected with a diagnostic and the previous value is
// left untouched.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package vesta

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agilira/go-errors"
)

// Error codes for programmatic error handling
const (
	ErrCodeInvalidKey        = "VESTA_INVALID_KEY"
	ErrCodeDuplicateKey      = "VESTA_DUPLICATE_KEY"
	ErrCodeUnknownKey        = "VESTA_UNKNOWN_KEY"
	ErrCodeInvalidValue      = "VESTA_INVALID_VALUE"
	ErrCodeInvalidFormat     = "VESTA_INVALID_FORMAT"
	ErrCodeInvalidSaltLength = "VESTA_INVALID_SALT_LENGTH"
	ErrCodeIOError           = "VESTA_IO_ERROR"
	ErrCodeAuditError        = "VESTA_AUDIT_ERROR"
)

// ValueType declares what a configuration entry accepts.
type ValueType int

const (
	// TypeInvalid marks an entry that has not been initialised with a
	// real type. Such an entry never accepts a value.
	TypeInvalid ValueType = iota

	// TypeInt accepts non-empty strings of ASCII decimal digits only
	// (no sign, no whitespace).
	TypeInt

	// TypeBool accepts true/yes/1 and false/no/0 and stores the
	// canonical forms "yes" and "no".
	TypeBool

	// TypeStr accepts any string.
	TypeStr

	// TypeMURI accepts MonetDB URIs, i.e. strings starting with
	// "mapi:monetdb://".
	TypeMURI

	// TypeOther accepts any string, like TypeStr, but signals that the
	// value is interpreted by some other subsystem.
	TypeOther
)

// MURIPrefix is the mandatory prefix of a MonetDB URI value.
const MURIPrefix = "mapi:monetdb://"

// String returns the type name for diagnostics and debugging.
func (vt ValueType) String() string {
	switch vt {
	case TypeInvalid:
		return "invalid"
	case TypeInt:
		return "int"
	case TypeBool:
		return "bool"
	case TypeStr:
		return "str"
	case TypeMURI:
		return "muri"
	case TypeOther:
		return "other"
	default:
		return "unknown"
	}
}

// Entry is a single typed key/value slot. The key and type are fixed at
// definition time; the value is absent until populated and can be unset
// again. A nil value pointer means absent, which is distinct from an
// empty string.
type Entry struct {
	key string
	typ ValueType
	val *string
}

// Key returns the entry's immutable key.
func (e *Entry) Key() string { return e.key }

// Type returns the entry's declared value type.
func (e *Entry) Type() ValueType { return e.typ }

// Value returns the stored value and whether one is present.
func (e *Entry) Value() (string, bool) {
	if e.val == nil {
		return "", false
	}
	return *e.val, true
}

// Set validates input against the entry's type and stores the canonical
// form on success. On failure the previous value is preserved and a
// coded diagnostic naming the key and the offending input is returned.
func (e *Entry) Set(input string) error {
	switch e.typ {
	case TypeInvalid:
		return errors.New(ErrCodeInvalidValue, fmt.Sprintf(
			"key '%s' is uninitialised (invalid value), internal error", e.key))
	case TypeInt:
		if !isDigits(input) {
			return errors.New(ErrCodeInvalidValue, fmt.Sprintf(
				"key '%s' requires an integer-type value, got: %s", e.key, input))
		}
	case TypeBool:
		canonical, ok := canonicalBool(input)
		if !ok {
			return errors.New(ErrCodeInvalidValue, fmt.Sprintf(
				"key '%s' requires a boolean-type value, got: %s", e.key, input))
		}
		input = canonical
	case TypeMURI:
		if !strings.HasPrefix(input, MURIPrefix) {
			return errors.New(ErrCodeInvalidValue, fmt.Sprintf(
				"key '%s' requires a %s URI value, got: %s", e.key, MURIPrefix, input))
		}
	case TypeStr, TypeOther:
		// anything goes
	}

	v := input
	e.val = &v
	return nil
}

// Unset removes the entry's value. Unsetting an absent value is a no-op
// and always succeeds, regardless of type.
func (e *Entry) Unset() {
	e.val = nil
}

// isDigits reports whether s is a non-empty run of ASCII decimal digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// canonicalBool maps accepted boolean spellings onto "yes"/"no".
// true/yes/false/no are case-insensitive; 1/0 are exact.
func canonicalBool(s string) (string, bool) {
	switch {
	case strings.EqualFold(s, "true"), strings.EqualFold(s, "yes"), s == "1":
		return "yes", true
	case strings.EqualFold(s, "false"), strings.EqualFold(s, "no"), s == "0":
		return "no", true
	}
	return "", false
}

// Store is an ordered collection of entries with unique keys. The host
// defines the full key set up front and then populates values from one
// or more sources. A Store is not safe for concurrent mutation; the
// host serialises access if it shares one.
type Store struct {
	entries []*Entry
	audit   *AuditLogger
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// WithAudit attaches an audit logger that records every value
// transition flowing through the store. A nil logger disables auditing,
// which is the default: the core itself never logs.
func (s *Store) WithAudit(logger *AuditLogger) *Store {
	s.audit = logger
	return s
}

// Define appends a new entry with the given key and type and no value.
// The key must be non-empty and unique within the store.
func (s *Store) Define(key string, typ ValueType) (*Entry, error) {
	if key == "" {
		return nil, errors.New(ErrCodeInvalidKey, "entry key must not be empty")
	}
	if s.Find(key) != nil {
		return nil, errors.New(ErrCodeDuplicateKey, fmt.Sprintf(
			"key '%s' is already defined", key))
	}
	e := &Entry{key: key, typ: typ}
	s.entries = append(s.entries, e)
	return e, nil
}

// Find returns the entry with the exactly matching key, or nil. The
// scan is linear in definition order and allocates nothing.
func (s *Store) Find(key string) *Entry {
	for _, e := range s.entries {
		if e.key == key {
			return e
		}
	}
	return nil
}

// Set stores a validated value for key. Unknown keys and validation
// failures are reported as coded errors; on failure the entry keeps its
// previous value.
func (s *Store) Set(key, value string) error {
	e := s.Find(key)
	if e == nil {
		return errors.New(ErrCodeUnknownKey, fmt.Sprintf("key '%s' is not defined", key))
	}
	return s.apply(e, value)
}

// Unset removes the value for key. Unknown keys are reported as coded
// errors.
func (s *Store) Unset(key string) error {
	e := s.Find(key)
	if e == nil {
		return errors.New(ErrCodeUnknownKey, fmt.Sprintf("key '%s' is not defined", key))
	}
	old, had := e.Value()
	e.Unset()
	if had {
		s.auditTransition("config_unset", e.key, old, nil)
	}
	return nil
}

// Reset unsets every entry. Keys and definition order are untouched, so
// the store can be repopulated afterwards.
func (s *Store) Reset() {
	for _, e := range s.entries {
		if old, had := e.Value(); had {
			e.Unset()
			s.auditTransition("config_unset", e.key, old, nil)
		}
	}
}

// Len returns the number of defined entries.
func (s *Store) Len() int { return len(s.entries) }

// Entries returns the entries in definition order. The slice is shared
// with the store; callers must not grow it.
func (s *Store) Entries() []*Entry { return s.entries }

// String returns the value for key, or "" when the key is unknown or
// has no value. The second return reports presence.
func (s *Store) String(key string) (string, bool) {
	e := s.Find(key)
	if e == nil {
		return "", false
	}
	return e.Value()
}

// Int returns the value for an int-typed key. Presence implies the
// stored form is all digits, so the conversion only fails on overflow.
func (s *Store) Int(key string) (int, bool) {
	v, ok := s.String(key)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Bool returns the value for a bool-typed key, mapping the canonical
// "yes"/"no" forms onto true/false.
func (s *Store) Bool(key string) (bool, bool) {
	v, ok := s.String(key)
	if !ok {
		return false, false
	}
	return v == "yes", true
}

// apply runs an entry's Set and records the transition on success.
func (s *Store) apply(e *Entry, value string) error {
	old, had := e.Value()
	if err := e.Set(value); err != nil {
		return err
	}
	stored, _ := e.Value()
	var oldVal interface{}
	if had {
		oldVal = old
	}
	s.auditTransition("config_set", e.key, oldVal, stored)
	return nil
}

// auditTransition forwards a value transition to the attached audit
// logger, if any.
func (s *Store) auditTransition(event, key string, oldVal, newVal interface{}) {
	if s.audit != nil {
		s.audit.Log(AuditInfo, event, key, oldVal, newVal)
	}
}
