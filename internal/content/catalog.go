package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/verte-zerg/lumen/internal/model"
)

const (
	catalogFileName = "catalog.json"
	maxCatalogSize  = 4 << 20
	userAgent       = "lumen (+https://github.com/verte-zerg/lumen)"
)

// Meditation describes one recorded meditation offered by the remote catalog.
type Meditation struct {
	ID       string
	Category model.MysteryCategory
	Title    string
	AudioURL string
	Duration time.Duration
}

// Catalog is a cached copy of the remote meditation catalog.
type Catalog struct {
	Version     string
	Meditations []Meditation
	Path        string
	Cached      bool
}

type catalogPayload struct {
	Version     string             `json:"version"`
	Meditations []meditationRecord `json:"meditations"`
}

type meditationRecord struct {
	ID              string `json:"id"`
	Category        string `json:"category"`
	Title           string `json:"title"`
	AudioURL        string `json:"audio_url"`
	DurationSeconds int    `json:"duration_seconds"`
}

// FetchCatalog downloads the catalog at url into cacheDir. A cached copy is
// returned when the server answers 304 Not Modified.
func FetchCatalog(ctx context.Context, client *http.Client, url, cacheDir string) (Catalog, error) {
	if url == "" {
		return Catalog{}, fmt.Errorf("catalog url is required")
	}
	if cacheDir == "" {
		return Catalog{}, fmt.Errorf("cache directory is required")
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return Catalog{}, fmt.Errorf("failed to create cache dir: %w", err)
	}
	destPath := filepath.Join(cacheDir, catalogFileName)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if info, err := os.Stat(destPath); err == nil {
		req.Header.Set("If-Modified-Since", info.ModTime().UTC().Format(http.TimeFormat))
	} else if !errors.Is(err, os.ErrNotExist) {
		return Catalog{}, fmt.Errorf("failed to stat cached catalog: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotModified:
		cat, err := LoadCatalog(destPath)
		if err != nil {
			return Catalog{}, err
		}
		cat.Cached = true
		return cat, nil
	default:
		return Catalog{}, fmt.Errorf("unexpected catalog status: %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxCatalogSize+1))
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to read catalog: %w", err)
	}
	if len(body) > maxCatalogSize {
		return Catalog{}, fmt.Errorf("catalog exceeds %d bytes", maxCatalogSize)
	}
	cat, err := parseCatalog(body)
	if err != nil {
		return Catalog{}, err
	}

	tmpFile, err := os.CreateTemp(cacheDir, "catalog-*.json")
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to create temp catalog: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()
	if _, err := tmpFile.Write(body); err != nil {
		return Catalog{}, fmt.Errorf("failed to write catalog: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return Catalog{}, fmt.Errorf("failed to close temp catalog: %w", err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return Catalog{}, fmt.Errorf("failed to move catalog into cache: %w", err)
	}
	cat.Path = destPath
	return cat, nil
}

// CatalogPath returns where FetchCatalog stores the catalog in cacheDir.
func CatalogPath(cacheDir string) string {
	return filepath.Join(cacheDir, catalogFileName)
}

// LoadCatalog reads a previously cached catalog.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to read catalog: %w", err)
	}
	cat, err := parseCatalog(data)
	if err != nil {
		return Catalog{}, err
	}
	cat.Path = path
	return cat, nil
}

// ForCategory returns the meditations for one category.
func (c Catalog) ForCategory(category model.MysteryCategory) []Meditation {
	var out []Meditation
	for _, m := range c.Meditations {
		if m.Category == category {
			out = append(out, m)
		}
	}
	return out
}

func parseCatalog(data []byte) (Catalog, error) {
	var payload catalogPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return Catalog{}, fmt.Errorf("failed to decode catalog: %w", err)
	}
	cat := Catalog{Version: payload.Version}
	for _, rec := range payload.Meditations {
		if rec.ID == "" {
			return Catalog{}, fmt.Errorf("catalog entry without id")
		}
		category, err := model.ParseCategory(rec.Category)
		if err != nil {
			return Catalog{}, fmt.Errorf("catalog entry %q: %w", rec.ID, err)
		}
		cat.Meditations = append(cat.Meditations, Meditation{
			ID:       rec.ID,
			Category: category,
			Title:    rec.Title,
			AudioURL: rec.AudioURL,
			Duration: time.Duration(rec.DurationSeconds) * time.Second,
		})
	}
	sort.SliceStable(cat.Meditations, func(i, j int) bool {
		return cat.Meditations[i].Category < cat.Meditations[j].Category
	})
	return cat, nil
}
