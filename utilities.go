// utilities.go: String helpers shared by the server and the supervisor
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package vesta

import (
	"fmt"
	"strings"
)

// prefixToken is the literal substituted by ReplacePrefix.
const prefixToken = "${prefix}"

// ReplacePrefix returns a copy of s with the first occurrence of
// "${prefix}" replaced by prefix. Only the first occurrence is
// substituted. A nil s returns nil. Expansions are expected to stay
// within the native grammar's 1023-byte payload limit.
func ReplacePrefix(s *string, prefix string) *string {
	if s == nil {
		return nil
	}
	out := *s
	if i := strings.Index(out, prefixToken); i >= 0 {
		out = out[:i] + prefix + out[i+len(prefixToken):]
	}
	return &out
}

// SecondsToString renders t seconds as a human-readable duration such
// as "1d 1h 1m 1s". At most longness components are emitted, largest
// non-zero unit first, drawn from weeks, days, hours, minutes and
// seconds. A trailing seconds component is emitted unless a component
// was already written and no seconds remain.
//
// Unit boundaries use strict greater-than comparisons, so exactly 60
// seconds renders as "60s", not "1m". Historical behaviour, kept.
func SecondsToString(t int64, longness int) string {
	var b strings.Builder

	units := []struct {
		div    int64
		suffix byte
	}{
		{7 * 24 * 60 * 60, 'w'},
		{24 * 60 * 60, 'd'},
		{60 * 60, 'h'},
		{60, 'm'},
	}
	for _, u := range units {
		if t > u.div {
			fmt.Fprintf(&b, "%d%c", t/u.div, u.suffix)
			t -= (t / u.div) * u.div
			longness--
			if longness == 0 {
				return b.String()
			}
			b.WriteByte(' ')
		}
	}

	// t is now below one minute
	longness--
	if longness == 0 || !(b.Len() > 0 && t == 0) {
		fmt.Fprintf(&b, "%ds", t)
		return b.String()
	}
	return strings.TrimSuffix(b.String(), " ")
}

// AbbreviateString shortens in to exactly width bytes by replacing its
// middle with "...", keeping the head and tail. The dots sit two bytes
// left of center (Mac style, not Windows style). Inputs that already
// fit are returned verbatim. Widths below 4 cannot hold the marker and
// degrade to a plain prefix.
func AbbreviateString(in string, width int) string {
	if len(in) <= width {
		return in
	}
	if width < 4 {
		return in[:width]
	}
	head := width/2 - 2
	tail := width - head - 3
	return in[:head] + "..." + in[len(in)-tail:]
}
