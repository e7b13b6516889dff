// secret.go: Salt, passphrase file and UUID generation
//
// The supervisor uses a random salt as the shared secret between the
// daemon and the tools that attach to it, and tags each deployment with
// a UUID. The random source is supplied by the host, which is also
// responsible for seeding it.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package vesta

import (
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/agilira/go-errors"
	"github.com/google/uuid"
)

// saltChars is the 62-character alphabet salts are drawn from:
// lowercase, uppercase, digits, in that order.
var saltChars = []byte("abcdefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"1234567890")

// PassphraseLen is the exact size in bytes of a generated passphrase
// file: a random alphanumeric prefix padded with null bytes.
const PassphraseLen = 48

// GenerateSalt returns a buffer of n bytes whose prefix of random
// length is drawn from the 62-character alphanumeric alphabet and whose
// remainder is null bytes. The prefix length is uniform in
// [floor(0.42*n), floor(0.75*n)). Lengths too small to leave a
// non-empty range are rejected.
func GenerateSalt(rng *rand.Rand, n int) ([]byte, error) {
	fill := int(float64(n) * 0.75)
	min := int(float64(n) * 0.42)
	if fill <= min {
		return nil, errors.New(ErrCodeInvalidSaltLength, fmt.Sprintf(
			"salt length %d is too small", n))
	}

	buf := make([]byte, n)
	size := min + rng.Intn(fill-min)
	for i := 0; i < size; i++ {
		buf[i] = saltChars[rng.Intn(len(saltChars))]
	}
	return buf, nil
}

// GeneratePassphraseFile writes a fresh 48-byte salt to path,
// truncating any existing file. The file holds the raw bytes: no
// header, no terminator. The handle is closed on every path, including
// failures.
func GeneratePassphraseFile(rng *rand.Rand, path string) error {
	salt, err := GenerateSalt(rng, PassphraseLen)
	if err != nil {
		return err
	}

	f, err := os.Create(path) // #nosec G304 -- path is host-provided intentionally
	if err != nil {
		return errors.Wrap(err, ErrCodeIOError, fmt.Sprintf("unable to open '%s'", path)).
			WithContext("path", path)
	}
	if n, err := f.Write(salt); err != nil || n < len(salt) {
		_ = f.Close()
		if err == nil {
			err = io.ErrShortWrite
		}
		return errors.Wrap(err, ErrCodeIOError, "cannot write secret")
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, ErrCodeIOError, "cannot write secret")
	}
	return nil
}

// GenerateUUID returns a canonical 36-character hyphenated lowercase
// UUID. The platform facility (a random RFC-4122 UUID) is preferred;
// when it is unavailable the result is synthesized from rng and only
// preserves the 8-4-4-4-12 shape, with no conformance claim.
func GenerateUUID(rng *rand.Rand) string {
	if u, err := uuid.NewRandom(); err == nil {
		return u.String()
	}
	return fmt.Sprintf("%08x-%04x-%04x-%04x-%04x%08x",
		rng.Uint32(),
		rng.Intn(1<<16), rng.Intn(1<<16), rng.Intn(1<<16), rng.Intn(1<<16),
		rng.Uint32())
}
