package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig() *Config {
	return &Config{
		Voice: VoiceConfig{
			APIBase:       DefaultAPIBase,
			Model:         DefaultModel,
			Timeout:       30 * time.Second,
			RetryAttempts: 2,
		},
		Dictionary: DictionaryConfig{
			File:                 "custom_words.csv",
			ImportCacheDirectory: filepath.Join("dictionaries", "imports"),
		},
		Fallback: FallbackConfig{
			Enabled: true,
		},
		Playback: PlaybackConfig{
			Backend:   BackendCommand,
			KeepFiles: 10,
			QueueSize: 32,
		},
	}
}

func TestConfigLoader_Load(t *testing.T) {
	tableFile := filepath.Join(t.TempDir(), "table.yaml")
	require.NoError(t, os.WriteFile(tableFile, []byte("hello: ハロー\n"), 0644))

	tests := []struct {
		name              string
		configContent     string
		useExplicitPath   bool
		env               map[string]string
		want              func() *Config
		wantErrorContains []string
	}{
		{
			name:            "no config file uses defaults",
			useExplicitPath: false,
			want:            defaultConfig,
		},
		{
			name: "custom values",
			configContent: `voice:
  api_base: http://localhost:8080
  model: seinen_2
  timeout: 5s
  retry_attempts: 0
dictionary:
  file: words/custom.csv
fallback:
  enabled: false
  table_file: ` + tableFile + `
playback:
  backend: none
  temp_directory: /tmp/simplevoice
  keep_files: 3
  queue_size: 4
`,
			useExplicitPath: true,
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Voice = VoiceConfig{
					APIBase:       "http://localhost:8080",
					Model:         "seinen_2",
					Timeout:       5 * time.Second,
					RetryAttempts: 0,
				}
				cfg.Dictionary.File = "words/custom.csv"
				cfg.Fallback = FallbackConfig{Enabled: false, TableFile: tableFile}
				cfg.Playback.Backend = BackendNone
				cfg.Playback.TempDirectory = "/tmp/simplevoice"
				cfg.Playback.KeepFiles = 3
				cfg.Playback.QueueSize = 4
				return cfg
			},
		},
		{
			name: "environment variables override the file",
			configContent: `voice:
  model: seinen_2
`,
			useExplicitPath: true,
			env: map[string]string{
				"VOICE_API_BASE":              "http://voice.internal",
				"VOICE_MODEL":                 "ozisan_1",
				"SIMPLEVOICE_DICTIONARY_FILE": "/data/words.csv",
			},
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Voice.APIBase = "http://voice.internal"
				cfg.Voice.Model = "ozisan_1"
				cfg.Dictionary.File = "/data/words.csv"
				return cfg
			},
		},
		{
			name: "invalid YAML format",
			configContent: `voice:
  model: seinen_2
  invalid yaml format here [[[
`,
			useExplicitPath: true,
			wantErrorContains: []string{
				"configuration file found but could not be read",
			},
		},
		{
			name: "invalid values are translated",
			configContent: `voice:
  api_base: not a url
playback:
  backend: bluetooth
  keep_files: 0
`,
			useExplicitPath: true,
			wantErrorContains: []string{
				"invalid configuration",
				"api_base must be a valid URL",
				"backend must be one of [command speaker none]",
				"keep_files must be 1 or greater",
			},
		},
		{
			name: "missing fallback table file",
			configContent: `fallback:
  table_file: /nonexistent/table.yaml
`,
			useExplicitPath: true,
			wantErrorContains: []string{
				"fallback.table_file must be an existing and readable file",
			},
		},
		{
			name: "player command not in PATH",
			configContent: `playback:
  command: ["surely-not-an-installed-player", "{file}"]
`,
			useExplicitPath: true,
			wantErrorContains: []string{
				"playback.command must start with a program found in PATH",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.env {
				t.Setenv(key, value)
			}
			tempDir := t.TempDir()

			var configPath string
			if tt.useExplicitPath {
				configPath = filepath.Join(tempDir, "config.yml")
				require.NoError(t, os.WriteFile(configPath, []byte(tt.configContent), 0644))
			} else {
				t.Chdir(tempDir)
			}

			loader, err := NewConfigLoader(configPath)
			require.NoError(t, err)
			got, err := loader.Load()

			if len(tt.wantErrorContains) > 0 {
				assert.Error(t, err)
				assert.Nil(t, got)
				for _, wantMsg := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), wantMsg)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want(), got)
		})
	}
}

func TestConfigLoader_Load_PlayerCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	configPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(`playback:
  command: ["sh", "-c", "true", "{file}"]
`), 0644))

	loader, err := NewConfigLoader(configPath)
	require.NoError(t, err)
	got, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"sh", "-c", "true", "{file}"}, got.Playback.Command)
}
