// parsers.go: Configuration format detection and structured parsers
//
// Besides the native key=value grammar, hosts keep the same settings in
// JSON or YAML files. Structured documents are parsed into a flat map
// of scalars and applied through the same advisory path as the native
// loader: unknown keys are ignored, invalid values are discarded.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package vesta

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/agilira/go-errors"
	"go.yaml.in/yaml/v3"
)

// Format identifies a supported configuration file format.
type Format int

const (
	FormatNative Format = iota // line-oriented key=value grammar
	FormatJSON
	FormatYAML
	FormatUnknown
)

// String returns the format name for diagnostics and debugging.
func (f Format) String() string {
	switch f {
	case FormatNative:
		return "Native"
	case FormatJSON:
		return "JSON"
	case FormatYAML:
		return "YAML"
	default:
		return "Unknown"
	}
}

// DetectFormat detects the configuration format from the file
// extension. Properties-style extensions map onto the native grammar;
// files without a recognised extension report FormatUnknown and are
// treated as native by the loader.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".properties", ".conf", ".cfg", ".ini":
		return FormatNative
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatUnknown
	}
}

// LoadMap applies scalar values from a parsed configuration document to
// matching entries. Semantics mirror the native loader: keys that are
// not defined are ignored, values that fail validation are discarded
// and the entry keeps its previous value. Nested structures and other
// non-scalar values are skipped.
func (s *Store) LoadMap(config map[string]interface{}) {
	for _, e := range s.entries {
		raw, ok := config[e.key]
		if !ok {
			continue
		}
		value, ok := formatScalar(raw)
		if !ok {
			continue
		}
		old, had := e.Value()
		if err := e.Set(value); err == nil && s.audit != nil {
			var oldVal interface{}
			if had {
				oldVal = old
			}
			v, _ := e.Value()
			s.audit.Log(AuditInfo, "config_load", e.key, oldVal, v)
		}
	}
}

// parseJSON parses a JSON configuration document into a flat map.
func parseJSON(data []byte) (map[string]interface{}, error) {
	config := make(map[string]interface{})
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(err, ErrCodeInvalidFormat, "invalid JSON configuration")
	}
	return config, nil
}

// parseYAML parses a YAML configuration document into a flat map.
func parseYAML(data []byte) (map[string]interface{}, error) {
	config := make(map[string]interface{})
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(err, ErrCodeInvalidFormat, "invalid YAML configuration")
	}
	return config, nil
}

// formatScalar renders a decoded scalar as its configuration string.
// Booleans become true/false, which the bool validator then coerces to
// the canonical yes/no forms. Integral floats (the usual JSON number
// decoding) are rendered without a fraction so int-typed entries accept
// them.
func formatScalar(v interface{}) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case bool:
		return strconv.FormatBool(val), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10), true
		}
		return fmt.Sprintf("%g", val), true
	default:
		return "", false
	}
}
