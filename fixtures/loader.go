// Package fixtures loads JSON5-authored schema + round-trip test-case
// documents, the cross-language-style fixture format this port's test
// suites exercise (§2.1), adapted from the teacher's test/loader.go.
package fixtures

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aeolun/json5"
)

// TestSuite is one fixture document: a schema (compiled separately by the
// caller via schema.CompileJSON5/schema.Compile) plus a list of
// object-form values and their expected canonical wire bytes. Schema is
// kept as raw JSON rather than decoded into a map, so the struct field
// order schema.CompileJSON5 depends on (§4.3 resolution) survives the
// trip through this loader instead of being scrambled by Go's
// unordered map[string]interface{}.
//
// Unlike the teacher's TestSuite (ABOUTME: "handles BigInt parsing...
// bit-level chunking"), this port's wire format is byte-aligned (§6), so
// the BigInt-string-to-int64 post-processing and bits/chunkSizes handling
// in the teacher's loader have no equivalent here — there is no bit-level
// packing to convert from, and 64-bit values already round-trip exactly
// as decimal strings (codec/integer.go) without a BigInt special case.
type TestSuite struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Schema      json.RawMessage `json:"schema"`
	TestCases   []TestCase      `json:"test_cases"`
}

// TestCase is one round-trip case within a TestSuite.
type TestCase struct {
	Description string      `json:"description"`
	Struct      string      `json:"struct"`
	Value       interface{} `json:"value"`
	BytesHex    string      `json:"bytes_hex"`
	ShouldError bool        `json:"should_error"`
	Error       string      `json:"error,omitempty"`
}

// Bytes decodes BytesHex into the expected canonical wire bytes.
func (c *TestCase) Bytes() ([]byte, error) {
	return hex.DecodeString(c.BytesHex)
}

// LoadTestSuite loads and parses a single fixture file.
func LoadTestSuite(path string) (*TestSuite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file %s: %w", path, err)
	}

	var suite TestSuite
	if err := json5.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("failed to parse fixture file %s: %w", path, err)
	}
	return &suite, nil
}

// LoadAllTestSuites loads every ".fixture.json5" file under rootDir,
// recursively.
func LoadAllTestSuites(rootDir string) ([]*TestSuite, error) {
	var suites []*TestSuite
	err := filepath.Walk(rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".fixture.json5") {
			return nil
		}
		suite, err := LoadTestSuite(path)
		if err != nil {
			return err
		}
		suites = append(suites, suite)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return suites, nil
}
