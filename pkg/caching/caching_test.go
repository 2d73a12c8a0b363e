package caching

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCache_SetGet(t *testing.T) {
	cache, err := NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}

	if err := cache.Set("article body", "one line summary"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	summary, ok := cache.Get("article body")
	if !ok {
		t.Fatal("Get() ok = false, want hit")
	}
	if summary != "one line summary" {
		t.Errorf("Get() = %q, want %q", summary, "one line summary")
	}
}

func TestCache_MissForUnknownArticle(t *testing.T) {
	cache, err := NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}

	if _, ok := cache.Get("never summarized"); ok {
		t.Error("Get() ok = true, want miss")
	}
}

func TestCache_ExpiredEntryIsMiss(t *testing.T) {
	dir := t.TempDir()
	cache, err := NewCache(dir, time.Minute)
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}

	if err := cache.Set("stale article", "old summary"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	// Age the entry past the TTL.
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected one cache file, got %d (err %v)", len(entries), err)
	}
	old := time.Now().Add(-2 * time.Minute)
	if err := os.Chtimes(filepath.Join(dir, entries[0].Name()), old, old); err != nil {
		t.Fatalf("Chtimes() error = %v", err)
	}

	if _, ok := cache.Get("stale article"); ok {
		t.Error("Get() ok = true, want miss for expired entry")
	}
}

func TestCache_DistinctArticles(t *testing.T) {
	cache, err := NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}

	if err := cache.Set("article a", "summary a"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := cache.Set("article b", "summary b"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if summary, _ := cache.Get("article a"); summary != "summary a" {
		t.Errorf("Get(article a) = %q, want summary a", summary)
	}
	if summary, _ := cache.Get("article b"); summary != "summary b" {
		t.Errorf("Get(article b) = %q, want summary b", summary)
	}
}
