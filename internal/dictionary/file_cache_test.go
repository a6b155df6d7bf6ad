package dictionary

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileCache(t *testing.T) {
	cache := NewFileCache("imports")
	assert.NotNil(t, cache)
	assert.Equal(t, "imports", cache.rootDir)
}

func TestFileCache_filePath(t *testing.T) {
	cache := NewFileCache("imports")

	first := cache.filePath("https://example.com/a.csv")
	second := cache.filePath("https://example.com/b.csv")

	assert.Equal(t, "imports", filepath.Dir(first))
	assert.Equal(t, ".csv", filepath.Ext(first))
	assert.NotEqual(t, first, second)
	assert.Equal(t, first, cache.filePath("https://example.com/a.csv"))
}

func TestFileCache_cache(t *testing.T) {
	tests := []struct {
		name           string
		source         string
		setupCache     bool
		cacheContent   string
		refresh        bool
		fetcherFunc    func() ([]byte, error)
		expectedResult string
		expectError    bool
	}{
		{
			name:   "cache miss - successful fetch",
			source: "https://example.com/miss.csv",
			fetcherFunc: func() ([]byte, error) {
				return []byte("api,エーピーアイ\n"), nil
			},
			expectedResult: "api,エーピーアイ\n",
		},
		{
			name:         "cache hit",
			source:       "https://example.com/hit.csv",
			setupCache:   true,
			cacheContent: "cached,キャッシュ\n",
			fetcherFunc: func() ([]byte, error) {
				return []byte("fetched,フェッチ\n"), nil
			},
			expectedResult: "cached,キャッシュ\n",
		},
		{
			name:         "cache hit ignored on refresh",
			source:       "https://example.com/refresh.csv",
			setupCache:   true,
			cacheContent: "cached,キャッシュ\n",
			refresh:      true,
			fetcherFunc: func() ([]byte, error) {
				return []byte("fetched,フェッチ\n"), nil
			},
			expectedResult: "fetched,フェッチ\n",
		},
		{
			name:   "cache miss - fetch error",
			source: "https://example.com/error.csv",
			fetcherFunc: func() ([]byte, error) {
				return nil, errors.New("API error")
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := NewFileCache(filepath.Join(t.TempDir(), "imports"))

			if tt.setupCache {
				require.NoError(t, os.MkdirAll(cache.rootDir, 0755))
				require.NoError(t, os.WriteFile(cache.filePath(tt.source), []byte(tt.cacheContent), 0644))
			}

			result, err := cache.cache(tt.source, tt.refresh, tt.fetcherFunc)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedResult, string(result))

			stored, err := os.ReadFile(cache.filePath(tt.source))
			require.NoError(t, err)
			assert.Equal(t, tt.expectedResult, string(stored))
		})
	}
}

func TestFileCache_read(t *testing.T) {
	cache := NewFileCache(t.TempDir())

	_, err := cache.read("missing")
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(cache.filePath("present"), []byte("a,エー\n"), 0644))
	contents, err := cache.read("present")
	require.NoError(t, err)
	assert.Equal(t, "a,エー\n", string(contents))
}
