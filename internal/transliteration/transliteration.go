/*
Package transliteration provides the fallback English to katakana table used
when the custom dictionary has no entry for a word.

The default table is embedded in the binary. A replacement table with the same
YAML layout (a flat mapping of lowercase word to katakana) can be loaded from
disk instead.
*/
package transliteration

import (
	"bytes"
	_ "embed" // Required for go:embed
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed table.yaml
var embeddedTable []byte

var (
	defaultTable    *Table
	defaultTableErr error
	once            sync.Once
)

// Table is a read-only English to katakana lookup table.
type Table struct {
	words map[string]string
}

// Default returns the embedded table, parsed once.
func Default() (*Table, error) {
	once.Do(func() {
		defaultTable, defaultTableErr = Parse(bytes.NewReader(embeddedTable))
	})
	return defaultTable, defaultTableErr
}

// LoadFile parses a table from a YAML file.
func LoadFile(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open > %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	table, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("Parse(%s) > %w", path, err)
	}
	return table, nil
}

// Parse reads a YAML mapping of word to katakana.
func Parse(r io.Reader) (*Table, error) {
	var raw map[string]string
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil && err != io.EOF {
		return nil, fmt.Errorf("yaml.Decode > %w", err)
	}

	words := make(map[string]string, len(raw))
	for word, kana := range raw {
		word = strings.ToLower(strings.TrimSpace(word))
		if word == "" || kana == "" {
			continue
		}
		words[word] = kana
	}
	return &Table{words: words}, nil
}

// Lookup returns the katakana reading for word, ignoring case.
// A nil table knows no words.
func (t *Table) Lookup(word string) (string, bool) {
	if t == nil {
		return "", false
	}
	kana, ok := t.words[strings.ToLower(word)]
	return kana, ok
}

// Len returns the number of words in the table.
func (t *Table) Len() int {
	return len(t.words)
}
