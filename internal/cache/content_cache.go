// Package cache provides a content-addressed file cache for provider
// artifacts. Keys derive from a provider tag plus a normalized input, so a
// repeated lookup for the same input reuses the stored artifact. A miss is
// never an error: callers always fall through to the provider.
package cache

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

type ContentCache struct {
	rootDir string
}

func New(rootDir string) *ContentCache {
	return &ContentCache{rootDir: rootDir}
}

// Key returns the content hash used to address an artifact for the given
// provider tag and normalized input.
func Key(input string) string {
	sum := sha1.Sum([]byte(input))
	return hex.EncodeToString(sum[:])
}

func (c *ContentCache) filePath(provider, input string) string {
	return filepath.Join(c.rootDir, fmt.Sprintf("%s-%s.json", provider, Key(input)))
}

// Get unmarshals a cached artifact into out. It reports false on any miss,
// including unreadable or corrupt entries.
func (c *ContentCache) Get(provider, input string, out interface{}) bool {
	contents, err := os.ReadFile(c.filePath(provider, input))
	if err != nil {
		return false
	}
	if err := json.Unmarshal(contents, out); err != nil {
		return false
	}
	return true
}

// Put stores an artifact. Failures are returned but callers may treat the
// cache as best-effort.
func (c *ContentCache) Put(provider, input string, value interface{}) error {
	if err := os.MkdirAll(c.rootDir, 0o755); err != nil {
		return fmt.Errorf("os.MkdirAll > %w", err)
	}
	contents, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("json.Marshal > %w", err)
	}
	if err := os.WriteFile(c.filePath(provider, input), contents, 0o644); err != nil {
		return fmt.Errorf("os.WriteFile > %w", err)
	}
	return nil
}
