package dictionary

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-resty/resty/v2"
)

// ImportResult counts what an import did to the store.
type ImportResult struct {
	Added   int
	Updated int
	Skipped int
}

// Importer merges a remote two-column CSV dictionary into a Store.
// Downloads are cached per URL so repeated imports work offline.
type Importer struct {
	store     *Store
	fileCache *FileCache
	client    *resty.Client
}

func NewImporter(store *Store, cacheDirectory string) *Importer {
	return &Importer{
		store:     store,
		fileCache: NewFileCache(cacheDirectory),
		client:    resty.New(),
	}
}

func (i *Importer) download(ctx context.Context, url string) ([]byte, error) {
	res, err := i.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/csv, text/plain").
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("client.R.Get > %w", err)
	}
	if res.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("status code: %d, body: %s", res.StatusCode(), string(res.Body()))
	}
	return res.Body(), nil
}

// Import downloads url (or reads the cached copy) and upserts every row.
// Rows with a blank column are skipped rather than failing the import.
func (i *Importer) Import(ctx context.Context, url string, refresh bool) (ImportResult, error) {
	var result ImportResult
	contents, err := i.fileCache.cache(url, refresh, func() ([]byte, error) {
		body, err := i.download(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("i.download > %w", err)
		}
		return body, nil
	})
	if err != nil {
		return result, fmt.Errorf("i.fileCache.cache > %w", err)
	}

	rows, err := parseRows(bytes.NewReader(contents))
	if err != nil {
		return result, fmt.Errorf("parseRows > %w", err)
	}
	for _, row := range rows {
		updated, err := i.store.Upsert(row[0], row[1])
		if errors.Is(err, ErrEmptyEntry) {
			result.Skipped++
			continue
		}
		if err != nil {
			return result, fmt.Errorf("store.Upsert(%s) > %w", row[0], err)
		}
		if updated {
			result.Updated++
		} else {
			result.Added++
		}
	}
	slog.Default().Info("dictionary imported",
		"url", url,
		"added", result.Added,
		"updated", result.Updated,
		"skipped", result.Skipped)
	return result, nil
}
