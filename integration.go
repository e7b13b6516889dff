// integration.go: Flag and environment sources for the Vesta store
//
// Entries can be overridden from the command line through FlashFlags
// and from the process environment. Both sources go through Set, so the
// usual type validation applies. Unlike the advisory file loader these
// sources are explicit host input, so invalid values are reported
// instead of discarded.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package vesta

import (
	"fmt"
	"os"
	"strings"

	flashflags "github.com/agilira/flash-flags"
	"github.com/agilira/go-errors"
)

// BindFlags registers one command-line flag per entry on fs, typed to
// match: int entries get integer flags, bool entries get boolean flags,
// everything else a string flag. Current values (when present) become
// the flag defaults. Flag names are the entry keys with dots mapped to
// dashes.
func (s *Store) BindFlags(fs *flashflags.FlagSet) {
	for _, e := range s.entries {
		name := flagName(e.key)
		usage := fmt.Sprintf("value for configuration key '%s' (%s)", e.key, e.typ)
		switch e.typ {
		case TypeInt:
			def := 0
			if n, ok := s.Int(e.key); ok {
				def = n
			}
			fs.Int(name, def, usage)
		case TypeBool:
			def := false
			if b, ok := s.Bool(e.key); ok {
				def = b
			}
			fs.Bool(name, def, usage)
		default:
			def, _ := e.Value()
			fs.String(name, def, usage)
		}
	}
}

// ApplyFlags copies every flag the user actually set on the command
// line into the store. Defaults are left alone so lower-precedence
// sources keep their values. The first validation failure is returned.
func (s *Store) ApplyFlags(fs *flashflags.FlagSet) error {
	var firstErr error
	fs.VisitAll(func(f *flashflags.Flag) {
		if !f.Changed() || firstErr != nil {
			return
		}
		key := f.Name()
		if s.Find(key) == nil {
			key = flagKey(f.Name())
			if s.Find(key) == nil {
				return // flag belongs to the host, not to this store
			}
		}
		if err := s.Set(key, fmt.Sprintf("%v", f.Value())); err != nil {
			firstErr = errors.Wrap(err, ErrCodeInvalidValue, fmt.Sprintf(
				"flag --%s rejected", f.Name()))
		}
	})
	return firstErr
}

// LoadEnv overrides entries from environment variables. The variable
// for key k is PREFIX_K with dots and dashes mapped to underscores,
// upper-cased: prefix "vesta" and key "exit-on-error" read
// VESTA_EXIT_ON_ERROR. Invalid values are reported, not discarded.
func (s *Store) LoadEnv(prefix string) error {
	for _, e := range s.entries {
		envKey := EnvKey(prefix, e.key)
		value, ok := os.LookupEnv(envKey)
		if !ok {
			continue
		}
		if err := s.apply(e, value); err != nil {
			return errors.Wrap(err, ErrCodeInvalidValue, fmt.Sprintf(
				"environment variable %s rejected", envKey))
		}
	}
	return nil
}

// EnvKey returns the environment variable name for a configuration key
// under the given prefix.
func EnvKey(prefix, key string) string {
	k := strings.NewReplacer(".", "_", "-", "_").Replace(key)
	return strings.ToUpper(prefix + "_" + k)
}

// flagName maps a configuration key to a flag name ("log.file" becomes
// "log-file").
func flagName(key string) string {
	return strings.ReplaceAll(key, ".", "-")
}

// flagKey is the inverse of flagName.
func flagKey(name string) string {
	return strings.ReplaceAll(name, "-", ".")
}
