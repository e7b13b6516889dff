// Package cli provides the command-line interface for Vesta
// configuration management.
//
// The CLI is built on the Orpheus framework and exposes git-style
// subcommands for inspecting and editing native-grammar configuration
// files, plus the secret utilities (passphrase files, salts, UUIDs)
// the supervisor daemon relies on.
//
// Architecture:
// - Manager: command routing and shared state
// - Handlers: individual command implementations
// - Utils: file-backed store helpers
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0
package cli

import (
	"math/rand"
	"time"

	"github.com/agilira/orpheus/pkg/orpheus"
	"github.com/agilira/vesta"
)

// Manager provides CLI operations over Vesta stores and secrets.
type Manager struct {
	app         *orpheus.App
	auditLogger *vesta.AuditLogger // Optional audit integration
	rng         *rand.Rand
}

// NewManager creates a CLI manager with all commands registered. The
// random source for the secret commands is seeded here; library callers
// that need reproducibility use the vesta package directly.
func NewManager() *Manager {
	app := orpheus.New("vesta").
		SetDescription("Typed configuration store and daemon utilities").
		SetVersion("1.0.0")

	manager := &Manager{
		app: app,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	manager.setupConfigCommands()
	manager.setupSecretCommands()

	return manager
}

// WithAudit enables audit logging for all CLI operations.
func (m *Manager) WithAudit(auditLogger *vesta.AuditLogger) *Manager {
	m.auditLogger = auditLogger
	return m
}

// Run executes the CLI application with the provided arguments.
func (m *Manager) Run(args []string) error {
	return m.app.Run(args)
}

// setupConfigCommands configures the 'config' command group for
// native-grammar configuration files.
func (m *Manager) setupConfigCommands() {
	configCmd := orpheus.NewCommand("config", "Configuration file operations")

	// config get <file> <key>
	configCmd.Subcommand("get", "Get configuration value", m.handleConfigGet)

	// config set <file> <key> <value>
	configCmd.Subcommand("set", "Set configuration value", m.handleConfigSet)

	// config list <file> [--prefix=]
	listCmd := configCmd.Subcommand("list", "List configuration keys", m.handleConfigList)
	listCmd.AddFlag("prefix", "p", "", "Key prefix filter")

	m.app.AddCommand(configCmd)
}

// setupSecretCommands configures the secret and identity utilities.
func (m *Manager) setupSecretCommands() {
	secretCmd := orpheus.NewCommand("secret", "Secret generation utilities")

	// secret passphrase <path>
	secretCmd.Subcommand("passphrase", "Write a fresh 48-byte passphrase file", m.handleSecretPassphrase)

	// secret salt [--length=48]
	saltCmd := secretCmd.Subcommand("salt", "Print a random salt prefix", m.handleSecretSalt)
	saltCmd.AddIntFlag("length", "l", 48, "Salt buffer length in bytes")

	m.app.AddCommand(secretCmd)

	// uuid
	uuidCmd := orpheus.NewCommand("uuid", "Print a freshly generated UUID")
	uuidCmd.SetHandler(m.handleUUID)
	m.app.AddCommand(uuidCmd)
}
