package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gomoku/engine"
)

func positionKey(i int) string {
	var board engine.Board
	board.Set(i/engine.BoardSize, i%engine.BoardSize, engine.CellBlack)
	return board.Key()
}

func TestCachePersistenceRoundTripKeepsOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "position_cache.gob")
	cache := engine.NewPositionCache(3)
	for i := 0; i < 4; i++ {
		cache.Put(positionKey(i), i*10)
	}
	if err := saveCache(cache, path); err != nil {
		t.Fatalf("save: %v", err)
	}

	restored := engine.NewPositionCache(3)
	n, err := loadCache(restored, path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if n != 3 || restored.Len() != 3 {
		t.Fatalf("expected 3 entries restored, got %d (len %d)", n, restored.Len())
	}
	if _, ok := restored.Get(positionKey(0)); ok {
		t.Fatalf("expected evicted entry to stay evicted")
	}
	restored.Put(positionKey(9), 90)
	if _, ok := restored.Get(positionKey(1)); ok {
		t.Fatalf("expected oldest restored entry to be evicted first")
	}
	if score, ok := restored.Get(positionKey(3)); !ok || score != 30 {
		t.Fatalf("expected newest entry kept, got %d %v", score, ok)
	}
}

func TestLoadCacheMissingFile(t *testing.T) {
	cache := engine.NewPositionCache(4)
	n, err := loadCache(cache, filepath.Join(t.TempDir(), "absent.gob"))
	if err != nil || n != 0 {
		t.Fatalf("expected missing file to be ignored, got %d %v", n, err)
	}
}

func TestLoadCacheRemovesTruncatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "position_cache.gob")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	n, err := loadCache(engine.NewPositionCache(4), path)
	if err != nil || n != 0 {
		t.Fatalf("expected truncated file to be ignored, got %d %v", n, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected truncated file to be removed")
	}
}

func TestLoadCacheSkipsMalformedKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "position_cache.gob")
	source := engine.NewPositionCache(4)
	source.Put("short", 1)
	source.Put(strings.Repeat("0", engine.BoardSize*engine.BoardSize), 2)
	if err := saveCache(source, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	restored := engine.NewPositionCache(4)
	n, err := loadCache(restored, path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected only the well-formed key, got %d", n)
	}
}
