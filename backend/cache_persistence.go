package main

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gomoku/engine"
)

const cacheSnapshotVersion = 1

type cacheSnapshot struct {
	Version int
	Entries []engine.CacheEntry
}

func ensureCacheDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}

// saveCache writes the cache oldest entry first so a reload keeps the
// eviction order. The file is replaced atomically.
func saveCache(cache *engine.PositionCache, path string) error {
	if err := ensureCacheDir(path); err != nil {
		return fmt.Errorf("ensure cache dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".position_cache-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	dump := cacheSnapshot{Version: cacheSnapshotVersion, Entries: cache.Entries()}
	if err := gob.NewEncoder(tmp).Encode(&dump); err != nil {
		tmp.Close()
		return fmt.Errorf("encode cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// loadCache restores a snapshot written by saveCache. A missing file is
// not an error; a truncated one is removed and ignored. It returns the
// number of entries read.
func loadCache(cache *engine.PositionCache, path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}
	defer file.Close()
	var dump cacheSnapshot
	if err := gob.NewDecoder(file).Decode(&dump); err != nil {
		if isEOFError(err) {
			file.Close()
			os.Remove(path)
			return 0, nil
		}
		return 0, fmt.Errorf("decode cache: %w", err)
	}
	if dump.Version != cacheSnapshotVersion {
		return 0, fmt.Errorf("cache snapshot version %d, want %d", dump.Version, cacheSnapshotVersion)
	}
	entries := dump.Entries[:0]
	for _, entry := range dump.Entries {
		if len(entry.Key) == engine.BoardSize*engine.BoardSize {
			entries = append(entries, entry)
		}
	}
	cache.Restore(entries)
	return len(entries), nil
}

func isEOFError(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}
