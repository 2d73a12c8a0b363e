// Package caching memoizes article summaries on disk with a TTL, so
// unchanged articles are not re-summarized across report runs.
package caching

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Cache stores one summary per file, named by the SHA-256 of the article
// content that produced it.
type Cache struct {
	path string
	ttl  time.Duration
}

// NewCache creates a new Cache instance.
// The cache directory will be created if it doesn't exist.
func NewCache(path string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{
		path: path,
		ttl:  ttl,
	}, nil
}

// entryFile turns article content into the summary's filename.
func (c *Cache) entryFile(article string) string {
	hash := sha256.Sum256([]byte(article))
	return filepath.Join(c.path, fmt.Sprintf("%x", hash))
}

// Get retrieves the cached summary for an article.
// It returns the summary and true if the entry is found and not expired.
func (c *Cache) Get(article string) (string, bool) {
	filePath := c.entryFile(article)

	info, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return "", false // Cache miss
	}

	// Check if expired
	if time.Since(info.ModTime()) > c.ttl {
		return "", false // Cache miss (expired)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", false // Cache miss (read error)
	}

	return string(data), true // Cache hit
}

// Set stores an article's summary.
func (c *Cache) Set(article, summary string) error {
	if err := os.WriteFile(c.entryFile(article), []byte(summary), 0644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}
