// Tests for the Vesta CLI manager and handlers
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agilira/vesta"
)

type testFixture struct {
	manager *Manager
	dir     string
}

func setupTest(t *testing.T) *testFixture {
	t.Helper()
	return &testFixture{
		manager: NewManager(),
		dir:     t.TempDir(),
	}
}

func TestNewManager(t *testing.T) {
	m := NewManager()
	if m == nil {
		t.Fatal("NewManager returned nil")
	}
	if m.app == nil {
		t.Error("manager has no application")
	}
	if m.rng == nil {
		t.Error("manager has no random source")
	}
}

func TestConfigSetCreatesFile(t *testing.T) {
	f := setupTest(t)
	path := filepath.Join(f.dir, "daemon.conf")

	err := f.manager.Run([]string{"config", "set", path, "port", "50000"})
	if err != nil {
		t.Fatalf("config set failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "port=50000\n" {
		t.Errorf("file content = %q, want port=50000 line", data)
	}
}

func TestConfigSetPreservesOtherKeys(t *testing.T) {
	f := setupTest(t)
	path := filepath.Join(f.dir, "daemon.conf")
	if err := os.WriteFile(path, []byte("port=50000\nlogfile=/tmp/l\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := f.manager.Run([]string{"config", "set", path, "port", "50001"}); err != nil {
		t.Fatalf("config set failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.Contains(content, "port=50001\n") {
		t.Errorf("updated key missing from %q", content)
	}
	if !strings.Contains(content, "logfile=/tmp/l\n") {
		t.Errorf("untouched key missing from %q", content)
	}
}

func TestConfigGetUnknownKey(t *testing.T) {
	f := setupTest(t)
	path := filepath.Join(f.dir, "daemon.conf")
	if err := os.WriteFile(path, []byte("port=50000\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	err := f.manager.Run([]string{"config", "get", path, "nonexistent"})
	if err == nil {
		t.Fatal("config get on an unknown key should fail")
	}
	if !strings.Contains(err.Error(), "nonexistent") {
		t.Errorf("diagnostic should name the key, got: %v", err)
	}
}

func TestConfigGetKnownKey(t *testing.T) {
	f := setupTest(t)
	path := filepath.Join(f.dir, "daemon.conf")
	if err := os.WriteFile(path, []byte("port=50000\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := f.manager.Run([]string{"config", "get", path, "port"}); err != nil {
		t.Errorf("config get failed: %v", err)
	}
}

func TestConfigList(t *testing.T) {
	f := setupTest(t)
	path := filepath.Join(f.dir, "daemon.conf")
	if err := os.WriteFile(path, []byte("port=50000\nlogfile=/tmp/l\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := f.manager.Run([]string{"config", "list", path}); err != nil {
		t.Errorf("config list failed: %v", err)
	}
}

func TestSecretPassphraseCommand(t *testing.T) {
	f := setupTest(t)
	path := filepath.Join(f.dir, ".secret")

	if err := f.manager.Run([]string{"secret", "passphrase", path}); err != nil {
		t.Fatalf("secret passphrase failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != vesta.PassphraseLen {
		t.Errorf("passphrase file is %d bytes, want %d", len(data), vesta.PassphraseLen)
	}
}

func TestUUIDCommand(t *testing.T) {
	f := setupTest(t)
	if err := f.manager.Run([]string{"uuid"}); err != nil {
		t.Errorf("uuid failed: %v", err)
	}
}

func TestLoadStoreMissingFile(t *testing.T) {
	f := setupTest(t)
	store, err := f.manager.loadStore(filepath.Join(f.dir, "absent.conf"))
	if err != nil {
		t.Fatalf("loadStore on a missing file should yield an empty store, got: %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("store has %d entries, want 0", store.Len())
	}
}

func TestLoadStoreDefinesFileKeys(t *testing.T) {
	f := setupTest(t)
	path := filepath.Join(f.dir, "daemon.conf")
	if err := os.WriteFile(path, []byte("port=50000\nexit=yes\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	store, err := f.manager.loadStore(path)
	if err != nil {
		t.Fatalf("loadStore failed: %v", err)
	}
	if store.Len() != 2 {
		t.Fatalf("store has %d entries, want 2", store.Len())
	}
	if v, _ := store.String("port"); v != "50000" {
		t.Errorf("port = %q, want 50000", v)
	}
	if v, _ := store.String("exit"); v != "yes" {
		t.Errorf("exit = %q, want yes", v)
	}
}

func TestWriteStoreSkipsAbsentValues(t *testing.T) {
	f := setupTest(t)
	path := filepath.Join(f.dir, "daemon.conf")

	store := vesta.New()
	if _, err := store.Define("port", vesta.TypeOther); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Define("logfile", vesta.TypeOther); err != nil {
		t.Fatal(err)
	}
	if err := store.Set("port", "50000"); err != nil {
		t.Fatal(err)
	}

	if err := f.manager.writeStore(path, store); err != nil {
		t.Fatalf("writeStore failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "port=50000\n" {
		t.Errorf("file content = %q, want only the populated key", data)
	}
}
