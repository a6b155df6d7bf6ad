// Package testutil provides shared test helpers for creating config files and dictionary fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// SetupTestConfig creates a config file whose dictionary, import cache and
// audio files all live under tmpDir, with the voice API pointing at apiBase
// and playback disabled. Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string, apiBase string) string {
	t.Helper()

	dirs := []string{"imports", "audio"}
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0755))
	}

	configContent := fmt.Sprintf(`voice:
  api_base: %s
  model: zingai_1
  timeout: 5s
  retry_attempts: 0
dictionary:
  file: %s
  import_cache_directory: %s
playback:
  backend: none
  temp_directory: %s
`,
		apiBase,
		filepath.Join(tmpDir, "custom_words.csv"),
		filepath.Join(tmpDir, "imports"),
		filepath.Join(tmpDir, "audio"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// DictionaryPath returns the dictionary file used by SetupTestConfig.
func DictionaryPath(tmpDir string) string {
	return filepath.Join(tmpDir, "custom_words.csv")
}

// WriteDictionary writes rows of (english, katakana) as the dictionary file
// used by SetupTestConfig.
func WriteDictionary(t *testing.T, tmpDir string, rows ...[2]string) string {
	t.Helper()

	var content []byte
	for _, row := range rows {
		content = append(content, []byte(row[0]+","+row[1]+"\n")...)
	}
	path := DictionaryPath(tmpDir)
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}
