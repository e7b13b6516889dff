// Utility functions for the Vesta CLI
//
// The CLI operates on native-grammar files without a compiled-in
// schema, so every key found in a file is defined as TypeOther: the CLI
// edits values, the owning daemon enforces types when it loads them.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/agilira/go-errors"
	"github.com/agilira/vesta"
)

// loadStore builds a store from a native-grammar file, defining one
// TypeOther entry per key found. A missing file yields an empty store
// so 'config set' can create it.
func (m *Manager) loadStore(path string) (*vesta.Store, error) {
	store := vesta.New().WithAudit(m.auditLogger)

	data, err := os.ReadFile(path) // #nosec G304 -- path is user-provided intentionally
	if err != nil {
		if os.IsNotExist(err) {
			return store, nil
		}
		return nil, errors.Wrap(err, vesta.ErrCodeIOError, fmt.Sprintf("unable to open '%s'", path))
	}

	// first pass: define the keys the file mentions
	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	for scanner.Scan() {
		line := scanner.Text()
		eq := strings.IndexByte(line, '=')
		if eq <= 0 {
			continue
		}
		key := line[:eq]
		if store.Find(key) == nil {
			if _, err := store.Define(key, vesta.TypeOther); err != nil {
				return nil, err
			}
		}
	}

	// second pass: populate through the loader
	if err := store.Load(strings.NewReader(string(data))); err != nil {
		return nil, err
	}
	return store, nil
}

// writeStore rewrites a native-grammar file from the store's populated
// entries, in definition order.
func (m *Manager) writeStore(path string, store *vesta.Store) error {
	var b strings.Builder
	for _, e := range store.Entries() {
		if v, ok := e.Value(); ok {
			fmt.Fprintf(&b, "%s=%s\n", e.Key(), v)
		}
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		return errors.Wrap(err, vesta.ErrCodeIOError, fmt.Sprintf("unable to write '%s'", path))
	}
	return nil
}
