// vesta_test.go: Tests for the typed configuration store
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package vesta

import (
	"strings"
	"testing"
)

func mustDefine(t *testing.T, s *Store, key string, typ ValueType) *Entry {
	t.Helper()
	e, err := s.Define(key, typ)
	if err != nil {
		t.Fatalf("Define(%q, %v) failed: %v", key, typ, err)
	}
	return e
}

func TestBoolCoercion(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"true", "yes"},
		{"TRUE", "yes"},
		{"True", "yes"},
		{"yes", "yes"},
		{"YES", "yes"},
		{"1", "yes"},
		{"false", "no"},
		{"FALSE", "no"},
		{"no", "no"},
		{"NO", "no"},
		{"0", "no"},
	}

	for _, tt := range tests {
		s := New()
		e := mustDefine(t, s, "exit", TypeBool)
		if err := e.Set(tt.input); err != nil {
			t.Errorf("Set(%q) failed: %v", tt.input, err)
			continue
		}
		if v, ok := e.Value(); !ok || v != tt.want {
			t.Errorf("Set(%q): value = %q, %v; want %q", tt.input, v, ok, tt.want)
		}
	}
}

func TestBoolRejectsAndPreserves(t *testing.T) {
	s := New()
	e := mustDefine(t, s, "exit", TypeBool)

	if err := e.Set("TRUE"); err != nil {
		t.Fatalf("Set(TRUE) failed: %v", err)
	}
	err := e.Set("maybe")
	if err == nil {
		t.Fatal("Set(maybe) should fail for a bool entry")
	}
	if !strings.Contains(err.Error(), "exit") || !strings.Contains(err.Error(), "maybe") {
		t.Errorf("diagnostic should name key and input, got: %v", err)
	}
	if v, _ := e.Value(); v != "yes" {
		t.Errorf("value after failed Set = %q, want preserved %q", v, "yes")
	}
}

func TestIntValidation(t *testing.T) {
	s := New()
	e := mustDefine(t, s, "port", TypeInt)

	if err := e.Set("50000"); err != nil {
		t.Fatalf("Set(50000) failed: %v", err)
	}

	for _, bad := range []string{"80a", "", "-1", "+1", " 1", "1 ", "1.5", "0x10"} {
		if err := e.Set(bad); err == nil {
			t.Errorf("Set(%q) should fail for an int entry", bad)
		}
		if v, _ := e.Value(); v != "50000" {
			t.Errorf("value after failed Set(%q) = %q, want preserved %q", bad, v, "50000")
		}
	}

	if err := e.Set("0"); err != nil {
		t.Errorf("Set(0) failed: %v", err)
	}
}

func TestMURIValidation(t *testing.T) {
	s := New()
	e := mustDefine(t, s, "dburi", TypeMURI)

	if err := e.Set("mapi:monetdb://localhost:50000/demo"); err != nil {
		t.Fatalf("valid MURI rejected: %v", err)
	}
	for _, bad := range []string{"monetdb://localhost", "mapi:", "http://x", ""} {
		if err := e.Set(bad); err == nil {
			t.Errorf("Set(%q) should fail for a MURI entry", bad)
		}
	}
	if v, _ := e.Value(); v != "mapi:monetdb://localhost:50000/demo" {
		t.Errorf("MURI value not preserved after failures: %q", v)
	}
}

func TestStrAndOtherAcceptAnything(t *testing.T) {
	s := New()
	for _, typ := range []ValueType{TypeStr, TypeOther} {
		e := mustDefine(t, s, "k-"+typ.String(), typ)
		for _, v := range []string{"", "hello world", "1.5", "\ttab"} {
			if err := e.Set(v); err != nil {
				t.Errorf("%v entry rejected %q: %v", typ, v, err)
			}
			if got, ok := e.Value(); !ok || got != v {
				t.Errorf("%v entry stored %q, want %q", typ, got, v)
			}
		}
	}
}

func TestInvalidTypeNeverAcceptsValue(t *testing.T) {
	s := New()
	e := mustDefine(t, s, "broken", TypeInvalid)

	err := e.Set("anything")
	if err == nil {
		t.Fatal("TypeInvalid entry accepted a value")
	}
	if !strings.Contains(err.Error(), "broken") {
		t.Errorf("diagnostic should name the key, got: %v", err)
	}
	if _, ok := e.Value(); ok {
		t.Error("TypeInvalid entry should never hold a value")
	}
}

func TestUnset(t *testing.T) {
	s := New()
	e := mustDefine(t, s, "logfile", TypeStr)

	// unsetting an absent value is legal
	e.Unset()
	if _, ok := e.Value(); ok {
		t.Error("fresh entry should have no value")
	}

	if err := e.Set("/tmp/log"); err != nil {
		t.Fatal(err)
	}
	e.Unset()
	if _, ok := e.Value(); ok {
		t.Error("value should be absent after Unset")
	}
}

func TestDefineRejectsBadKeys(t *testing.T) {
	s := New()
	if _, err := s.Define("", TypeStr); err == nil {
		t.Error("empty key should be rejected")
	}
	mustDefine(t, s, "port", TypeInt)
	if _, err := s.Define("port", TypeStr); err == nil {
		t.Error("duplicate key should be rejected")
	}
}

func TestFind(t *testing.T) {
	s := New()
	mustDefine(t, s, "port", TypeInt)
	mustDefine(t, s, "logfile", TypeStr)

	if e := s.Find("port"); e == nil || e.Key() != "port" {
		t.Errorf("Find(port) = %v", e)
	}
	if e := s.Find("por"); e != nil {
		t.Error("Find must match exact keys only")
	}
	if e := s.Find("missing"); e != nil {
		t.Error("Find(missing) should return nil")
	}
}

func TestStoreSetUnknownKey(t *testing.T) {
	s := New()
	if err := s.Set("nope", "x"); err == nil {
		t.Error("Set on unknown key should fail")
	}
	if err := s.Unset("nope"); err == nil {
		t.Error("Unset on unknown key should fail")
	}
}

func TestReset(t *testing.T) {
	s := New()
	mustDefine(t, s, "port", TypeInt)
	mustDefine(t, s, "exit", TypeBool)
	mustDefine(t, s, "logfile", TypeStr)

	if err := s.Set("port", "50000"); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("exit", "yes"); err != nil {
		t.Fatal(err)
	}

	s.Reset()
	for _, e := range s.Entries() {
		if _, ok := e.Value(); ok {
			t.Errorf("entry %q still has a value after Reset", e.Key())
		}
	}
	if s.Len() != 3 {
		t.Errorf("Reset must not drop entries, Len = %d", s.Len())
	}

	// the store is reusable after Reset
	if err := s.Set("port", "50001"); err != nil {
		t.Errorf("Set after Reset failed: %v", err)
	}
}

func TestTypedGetters(t *testing.T) {
	s := New()
	mustDefine(t, s, "port", TypeInt)
	mustDefine(t, s, "exit", TypeBool)
	mustDefine(t, s, "logfile", TypeStr)

	if _, ok := s.Int("port"); ok {
		t.Error("Int on unpopulated key should report absence")
	}

	if err := s.Set("port", "50000"); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("exit", "TRUE"); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("logfile", "/tmp/l"); err != nil {
		t.Fatal(err)
	}

	if n, ok := s.Int("port"); !ok || n != 50000 {
		t.Errorf("Int(port) = %d, %v", n, ok)
	}
	if b, ok := s.Bool("exit"); !ok || !b {
		t.Errorf("Bool(exit) = %v, %v", b, ok)
	}
	if v, ok := s.String("logfile"); !ok || v != "/tmp/l" {
		t.Errorf("String(logfile) = %q, %v", v, ok)
	}
	if _, ok := s.String("missing"); ok {
		t.Error("String on unknown key should report absence")
	}
}
