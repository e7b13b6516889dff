// doc.go: Package documentation for Vesta
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

// Package vesta provides the typed configuration store shared by a
// database server and its supervisor daemon, together with the small
// utilities that cluster around daemon configuration: prefix-token
// expansion, human-readable durations, middle-ellipsis abbreviation,
// salt and passphrase-file generation, and UUIDs.
//
// # Configuration Store
//
// A host declares the keys it understands, each with an expected value
// type, then populates them from any combination of sources:
//
//	cfg := vesta.New()
//	cfg.Define("port", vesta.TypeInt)
//	cfg.Define("exit", vesta.TypeBool)
//	cfg.Define("dburi", vesta.TypeMURI)
//
//	f, _ := os.Open(".daemon_properties")
//	cfg.Load(f) // advisory: bad lines never abort startup
//	cfg.LoadEnv("vesta")
//
//	port, _ := cfg.Int("port")
//
// Every write goes through per-type validation: int entries accept only
// decimal digit runs, bool entries coerce true/yes/1 and false/no/0 to
// the canonical "yes"/"no" forms, MURI entries require the
// mapi:monetdb:// prefix. A rejected value leaves the previous value
// untouched and returns a coded diagnostic.
//
// Failure semantics differ by source on purpose. The file loader is
// advisory and discards validation failures so that malformed
// configuration cannot block a daemon; explicit sources (Set, LoadEnv,
// ApplyFlags) report them.
//
// # Sources
//
// Entries bind to FlashFlags command-line flags (BindFlags/ApplyFlags)
// and to environment variables (LoadEnv). Structured JSON and YAML
// documents load through LoadFile/LoadMap with the same advisory
// semantics as the native key=value grammar.
//
// # Audit
//
// The store itself never logs. Hosts that need accountability attach an
// AuditLogger, which records every value transition with a
// tamper-detection checksum into SQLite (unified trail) or JSONL.
//
// # Utilities
//
// GenerateSalt, GeneratePassphraseFile and GenerateUUID thread an
// explicit random source supplied, and seeded, by the host.
package vesta
