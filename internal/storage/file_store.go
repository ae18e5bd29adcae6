// Package storage owns the uploads directory layout: source images at the
// top level, synthesized audio under audio/, provider artifacts under
// .cache/. Paths handed to clients are rewritten to /uploads/ URLs.
package storage

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const (
	audioSubdir = "audio"
	cacheSubdir = ".cache"
	publicBase  = "/uploads/"
)

var remoteURLPattern = regexp.MustCompile(`(?i)^https?:`)

type FileStore struct {
	uploadsDir string
}

func NewFileStore(uploadsDir string) *FileStore {
	return &FileStore{uploadsDir: uploadsDir}
}

// UploadsDir returns the root directory served under /uploads/.
func (s *FileStore) UploadsDir() string {
	return s.uploadsDir
}

// CacheDir returns the directory backing the content cache.
func (s *FileStore) CacheDir() string {
	return filepath.Join(s.uploadsDir, cacheSubdir)
}

// SaveUpload persists raw image bytes under a collision-resistant name and
// returns the stored path.
func (s *FileStore) SaveUpload(data []byte, originalName string) (string, error) {
	if err := os.MkdirAll(s.uploadsDir, 0o755); err != nil {
		return "", fmt.Errorf("os.MkdirAll > %w", err)
	}
	ext := filepath.Ext(originalName)
	if ext == "" {
		ext = ".jpg"
	}
	filename := fmt.Sprintf("%d-%06d%s", time.Now().UnixMilli(), rand.Intn(1_000_000), ext)
	targetPath := filepath.Join(s.uploadsDir, filename)
	if err := os.WriteFile(targetPath, data, 0o644); err != nil {
		return "", fmt.Errorf("os.WriteFile > %w", err)
	}
	return targetPath, nil
}

// SaveAudio writes an audio artifact under audio/ and returns its path.
func (s *FileStore) SaveAudio(filename string, data []byte) (string, error) {
	dir := filepath.Join(s.uploadsDir, audioSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("os.MkdirAll > %w", err)
	}
	targetPath := filepath.Join(dir, filename)
	if err := os.WriteFile(targetPath, data, 0o644); err != nil {
		return "", fmt.Errorf("os.WriteFile > %w", err)
	}
	return targetPath, nil
}

// AudioPath returns where an audio artifact with the given name would live.
func (s *FileStore) AudioPath(filename string) string {
	return filepath.Join(s.uploadsDir, audioSubdir, filename)
}

// PublicURL maps a stored path to the URL clients fetch it from.
func (s *FileStore) PublicURL(path string) string {
	relative, err := filepath.Rel(s.uploadsDir, path)
	if err != nil {
		return ""
	}
	return publicBase + filepath.ToSlash(relative)
}

// ResolvePath maps a public /uploads/ URL back to a local path. Remote URLs
// and empty references resolve to "".
func (s *FileStore) ResolvePath(url string) string {
	if url == "" || remoteURLPattern.MatchString(url) {
		return ""
	}
	if strings.HasPrefix(url, s.uploadsDir) {
		return url
	}
	cleaned := strings.TrimPrefix(url, publicBase)
	return filepath.Join(s.uploadsDir, filepath.FromSlash(cleaned))
}

// Exists reports whether the path refers to an existing file.
func (s *FileStore) Exists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// Remove deletes a file best-effort; a failure is logged, never returned.
func (s *FileStore) Remove(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to remove file", "path", path, "error", err)
	}
}
