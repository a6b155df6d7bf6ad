package dictionary

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FileCache stores downloaded dictionary files on disk, one file per source.
type FileCache struct {
	rootDir string
}

func NewFileCache(cacheDirectory string) *FileCache {
	return &FileCache{
		rootDir: cacheDirectory,
	}
}

func (f *FileCache) filePath(source string) string {
	sum := sha256.Sum256([]byte(source))
	return filepath.Join(f.rootDir, hex.EncodeToString(sum[:8])+".csv")
}

// cache returns the cached contents for source, or calls fetch and stores its
// result. When refresh is set the cached copy is ignored and overwritten.
func (cache *FileCache) cache(source string, refresh bool, fetch func() ([]byte, error)) ([]byte, error) {
	localFilePath := cache.filePath(source)
	if !refresh {
		if _, err := os.Stat(localFilePath); err == nil {
			contents, err := cache.read(source)
			if err != nil {
				return nil, fmt.Errorf("cache.read > %w", err)
			}
			return contents, nil
		}
	}

	contents, err := fetch()
	if err != nil {
		return nil, fmt.Errorf("fetch > %w", err)
	}

	if err := os.MkdirAll(cache.rootDir, 0755); err != nil {
		return contents, fmt.Errorf("os.MkdirAll > %w", err)
	}
	file, err := os.Create(localFilePath)
	if err != nil {
		return contents, fmt.Errorf("os.Create > %w", err)
	}
	defer func() {
		_ = file.Close()
	}()
	if _, err := file.Write(contents); err != nil {
		return contents, fmt.Errorf("file.Write > %w", err)
	}
	return contents, nil
}

func (cache *FileCache) read(source string) ([]byte, error) {
	file, err := os.Open(cache.filePath(source))
	if err != nil {
		return nil, fmt.Errorf("os.Open > %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	contents, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("io.ReadAll > %w", err)
	}
	return contents, nil
}
