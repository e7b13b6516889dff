// Command handlers for the Vesta CLI
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/agilira/go-errors"
	"github.com/agilira/orpheus/pkg/orpheus"
	"github.com/agilira/vesta"
)

// handleConfigGet prints the value stored for a key in a
// native-grammar configuration file.
func (m *Manager) handleConfigGet(ctx *orpheus.Context) error {
	filePath := ctx.GetArg(0)
	key := ctx.GetArg(1)

	if m.auditLogger != nil {
		m.auditLogger.Log(vesta.AuditInfo, "cli_config_get", key, nil, nil)
	}

	store, err := m.loadStore(filePath)
	if err != nil {
		return err
	}

	value, ok := store.String(key)
	if !ok {
		return errors.New(vesta.ErrCodeUnknownKey, fmt.Sprintf("key '%s' not found", key))
	}

	fmt.Println(value)
	return nil
}

// handleConfigSet stores a value for a key and rewrites the file.
func (m *Manager) handleConfigSet(ctx *orpheus.Context) error {
	filePath := ctx.GetArg(0)
	key := ctx.GetArg(1)
	value := ctx.GetArg(2)

	if m.auditLogger != nil {
		m.auditLogger.Log(vesta.AuditInfo, "cli_config_set", key, nil, value)
	}

	store, err := m.loadStore(filePath)
	if err != nil {
		return err
	}

	if store.Find(key) == nil {
		if _, err := store.Define(key, vesta.TypeOther); err != nil {
			return err
		}
	}
	if err := store.Set(key, value); err != nil {
		return err
	}

	if err := m.writeStore(filePath, store); err != nil {
		return err
	}

	fmt.Printf("Set %s = %s in %s\n", key, value, filePath)
	return nil
}

// handleConfigList prints all populated keys, optionally filtered by
// prefix.
func (m *Manager) handleConfigList(ctx *orpheus.Context) error {
	filePath := ctx.GetArg(0)
	prefix := ctx.GetFlagString("prefix")

	if m.auditLogger != nil {
		m.auditLogger.Log(vesta.AuditInfo, "cli_config_list", filePath, nil, nil)
	}

	store, err := m.loadStore(filePath)
	if err != nil {
		return err
	}

	var b bytes.Buffer
	for _, e := range store.Entries() {
		if prefix != "" && !strings.HasPrefix(e.Key(), prefix) {
			continue
		}
		if v, ok := e.Value(); ok {
			fmt.Fprintf(&b, "%s=%s\n", e.Key(), v)
		}
	}
	fmt.Print(b.String())
	return nil
}

// handleSecretPassphrase writes a fresh passphrase file.
func (m *Manager) handleSecretPassphrase(ctx *orpheus.Context) error {
	path := ctx.GetArg(0)

	if m.auditLogger != nil {
		m.auditLogger.Log(vesta.AuditSecurity, "cli_secret_passphrase", path, nil, nil)
	}

	if err := vesta.GeneratePassphraseFile(m.rng, path); err != nil {
		return err
	}

	fmt.Printf("Wrote %d-byte passphrase file to %s\n", vesta.PassphraseLen, path)
	return nil
}

// handleSecretSalt prints the printable prefix of a freshly generated
// salt buffer.
func (m *Manager) handleSecretSalt(ctx *orpheus.Context) error {
	length := ctx.GetFlagInt("length")

	salt, err := vesta.GenerateSalt(m.rng, length)
	if err != nil {
		return err
	}

	fmt.Println(strings.TrimRight(string(salt), "\x00"))
	return nil
}

// handleUUID prints a freshly generated UUID.
func (m *Manager) handleUUID(ctx *orpheus.Context) error {
	fmt.Println(vesta.GenerateUUID(m.rng))
	return nil
}
