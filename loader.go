// loader.go: Advisory configuration loading for the Vesta store
//
// The native on-disk grammar is line-oriented "key=value" ASCII text,
// one entry per line, no whitespace around '=', no quoting, no escapes.
// The loader is advisory by design: malformed or unknown lines must
// never abort a host process, so validation failures are discarded and
// the affected entry keeps its previous value.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package vesta

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/agilira/go-errors"
)

// MaxLineLen is the maximum line payload the native grammar allows,
// excluding the newline terminator. Longer lines are consumed in
// MaxLineLen-sized chunks, none of which will normally match a key.
const MaxLineLen = 1023

// Load populates the store from a native-grammar text stream.
//
// For each non-empty line the first entry whose key is a prefix of the
// line followed by '=' receives the remainder through Set. Validation
// failures are silently discarded and lines matching no key are
// ignored. The only errors reported are stream read failures.
func (s *Store) Load(r io.Reader) error {
	br := bufio.NewReader(r)
	for {
		line, err := readLine(br)
		if line != "" {
			s.applyLine(line)
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, ErrCodeIOError, "failed to read configuration stream")
		}
	}
}

// LoadFile populates the store from path, dispatching on the detected
// file format: the native grammar goes through Load, structured formats
// are parsed into a map and applied through LoadMap. Unknown formats
// are treated as native, which matches the daemon's historical
// extension-less property files.
func (s *Store) LoadFile(path string) error {
	data, err := os.ReadFile(path) // #nosec G304 -- path is host-provided intentionally
	if err != nil {
		return errors.Wrap(err, ErrCodeIOError, fmt.Sprintf("unable to open '%s'", path)).
			WithContext("path", path)
	}

	switch DetectFormat(path) {
	case FormatJSON:
		m, err := parseJSON(data)
		if err != nil {
			return err
		}
		s.LoadMap(m)
	case FormatYAML:
		m, err := parseYAML(data)
		if err != nil {
			return err
		}
		s.LoadMap(m)
	default:
		return s.Load(strings.NewReader(string(data)))
	}
	return nil
}

// applyLine matches one payload line against the defined keys and
// applies the value to the first match. Errors from Set are dropped;
// the entry falls back to its previous value.
func (s *Store) applyLine(line string) {
	for _, e := range s.entries {
		k := e.key
		if len(line) > len(k) && line[len(k)] == '=' && line[:len(k)] == k {
			old, had := e.Value()
			// keep the transition observable even on the advisory path
			if err := e.Set(line[len(k)+1:]); err == nil && s.audit != nil {
				var oldVal interface{}
				if had {
					oldVal = old
				}
				v, _ := e.Value()
				s.audit.Log(AuditInfo, "config_load", e.key, oldVal, v)
			}
			return
		}
	}
}

// readLine reads at most MaxLineLen payload bytes or through the next
// newline, whichever comes first, and strips exactly one trailing
// newline byte. A line longer than MaxLineLen is returned in chunks.
func readLine(br *bufio.Reader) (string, error) {
	var b strings.Builder
	for b.Len() < MaxLineLen {
		c, err := br.ReadByte()
		if err != nil {
			return b.String(), err
		}
		if c == '\n' {
			return b.String(), nil
		}
		b.WriteByte(c)
	}
	return b.String(), nil
}
